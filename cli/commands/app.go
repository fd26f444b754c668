// Package commands implements the CLI command structure using Cobra.
package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/weco-ai/weco-go/cli/config"
	"github.com/weco-ai/weco-go/cli/keystore"
	"github.com/weco-ai/weco-go/core"
	"github.com/weco-ai/weco-go/weco"
)

// Exit codes
const (
	ExitSuccess    = 0
	ExitValidation = 1
	ExitService    = 2
	ExitNetwork    = 3
)

// ConfigLoader loads CLI config from a path.
type ConfigLoader func(path string) (*config.Config, error)

// KeystoreFactory creates a keystore instance.
type KeystoreFactory func() (keystore.Keystore, error)

// ClientFactory creates an API client using the resolved key.
type ClientFactory func(apiKey string, opts ...weco.Option) (*weco.Client, error)

// AppOption customizes App dependencies.
type AppOption func(*App)

// App holds CLI state and runtime dependencies.
type App struct {
	root *cobra.Command

	loadConfig   ConfigLoader
	newKeystore  KeystoreFactory
	createClient ClientFactory
	stdin        io.Reader
	stdout       io.Writer
	stderr       io.Writer

	cfgFile    string
	apiKey     string
	baseURL    string
	jsonOutput bool
	cfg        *config.Config

	buildTask       string
	buildSchemaFile string
	buildMultimodal bool

	queryText      string
	queryImages    []string
	queryReasoning bool
	queryVersion   int

	batchInputsFile  string
	batchConcurrency int
	batchFailFast    bool
	batchReasoning   bool
	batchVersion     int
}

// WithConfigLoader injects a config loader dependency.
func WithConfigLoader(loader ConfigLoader) AppOption {
	return func(a *App) {
		if loader != nil {
			a.loadConfig = loader
		}
	}
}

// WithKeystoreFactory injects a keystore factory dependency.
func WithKeystoreFactory(factory KeystoreFactory) AppOption {
	return func(a *App) {
		if factory != nil {
			a.newKeystore = factory
		}
	}
}

// WithClientFactory injects a client factory dependency.
func WithClientFactory(factory ClientFactory) AppOption {
	return func(a *App) {
		if factory != nil {
			a.createClient = factory
		}
	}
}

// WithIO injects process I/O streams.
func WithIO(stdin io.Reader, stdout, stderr io.Writer) AppOption {
	return func(a *App) {
		if stdin != nil {
			a.stdin = stdin
		}
		if stdout != nil {
			a.stdout = stdout
		}
		if stderr != nil {
			a.stderr = stderr
		}
	}
}

// NewApp creates a new CLI app with default dependencies.
func NewApp(opts ...AppOption) *App {
	a := &App{
		loadConfig:   config.LoadConfig,
		newKeystore:  keystore.NewKeystore,
		createClient: weco.New,
		stdin:        os.Stdin,
		stdout:       os.Stdout,
		stderr:       os.Stderr,
	}

	for _, opt := range opts {
		opt(a)
	}

	a.root = a.newRootCommand()
	return a
}

func (a *App) newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "weco",
		Short: "Weco - build and query AI-powered functions",
		Long: `Weco is a command-line interface for the Weco function service.

Use it to build functions from task descriptions, query them with text
and images, and run batches of inputs.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initConfig()
		},
		SilenceUsage: true,
	}

	// Global flags available to all commands.
	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is ~/.weco/config.yaml)")
	root.PersistentFlags().StringVar(&a.apiKey, "api-key", "", "API key (overrides env and keystore)")
	root.PersistentFlags().StringVar(&a.baseURL, "base-url", "", "service base URL")
	root.PersistentFlags().BoolVar(&a.jsonOutput, "json", false, "emit JSON output")

	root.AddCommand(a.newBuildCommand())
	root.AddCommand(a.newQueryCommand())
	root.AddCommand(a.newBatchCommand())
	root.AddCommand(a.newKeysCommand())
	root.AddCommand(a.newVersionCommand())

	return root
}

// Execute runs the root command.
func (a *App) Execute() error {
	return a.root.Execute()
}

// SetArgs sets command-line arguments, primarily for tests.
func (a *App) SetArgs(args []string) {
	a.root.SetArgs(args)
}

func (a *App) initConfig() error {
	path := a.cfgFile
	if path == "" {
		path = config.DefaultConfigPath()
	}

	cfg, err := a.loadConfig(path)
	if err != nil {
		return err
	}
	a.cfg = cfg
	return nil
}

// resolveAPIKey finds the key to use: flag, then environment, then
// keystore.
func (a *App) resolveAPIKey() (string, error) {
	if a.apiKey != "" {
		return a.apiKey, nil
	}
	if env := os.Getenv(weco.DefaultAPIKeyEnvVar); env != "" {
		return env, nil
	}

	ks, err := a.newKeystore()
	if err != nil {
		return "", fmt.Errorf("failed to open keystore: %w", err)
	}

	ref := keystore.DefaultKeyName
	if a.cfg != nil && a.cfg.APIKeyRef != "" {
		ref = a.cfg.APIKeyRef
	}

	key, err := ks.Get(ref)
	if err != nil {
		var notFound *keystore.ErrKeyNotFound
		if errors.As(err, &notFound) {
			return "", fmt.Errorf("no API key: pass --api-key, set %s, or run 'weco keys set'", weco.DefaultAPIKeyEnvVar)
		}
		return "", fmt.Errorf("failed to read API key: %w", err)
	}
	return key, nil
}

// clientOptions maps flags and config onto client options.
func (a *App) clientOptions() []weco.Option {
	var opts []weco.Option
	switch {
	case a.baseURL != "":
		opts = append(opts, weco.WithBaseURL(a.baseURL))
	case a.cfg != nil && a.cfg.BaseURL != "":
		opts = append(opts, weco.WithBaseURL(a.cfg.BaseURL))
	}
	if a.cfg != nil {
		if t := a.cfg.Timeout(); t > 0 {
			opts = append(opts, weco.WithTimeout(t))
		}
		if a.cfg.Concurrency > 0 {
			opts = append(opts, weco.WithBatchConcurrency(a.cfg.Concurrency))
		}
	}
	return opts
}

func (a *App) newClient(extra ...weco.Option) (*weco.Client, error) {
	key, err := a.resolveAPIKey()
	if err != nil {
		return nil, exitWithCode(ExitValidation, err)
	}
	client, err := a.createClient(key, append(a.clientOptions(), extra...)...)
	if err != nil {
		return nil, a.handleError(err)
	}
	return client, nil
}

// handleError prints the error and maps it to an exit code.
func (a *App) handleError(err error) error {
	code := ExitService

	var inputErr *core.InputError
	var authErr *core.AuthError
	var svcErr *core.ServiceError
	switch {
	case errors.As(err, &inputErr), errors.As(err, &authErr):
		code = ExitValidation
	case errors.As(err, &svcErr):
		if errors.Is(err, core.ErrNetwork) || errors.Is(err, core.ErrTimeout) {
			code = ExitNetwork
		}
	}

	if a.jsonOutput {
		a.outputErrorJSON(err)
	} else {
		fmt.Fprintf(a.stderr, "Error: %v\n", err)
	}
	return exitWithCode(code, err)
}

func (a *App) outputJSON(v any) error {
	enc := json.NewEncoder(a.stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (a *App) outputErrorJSON(err error) {
	output := map[string]any{
		"error": map[string]any{
			"type":    errorType(err),
			"message": err.Error(),
		},
	}

	enc := json.NewEncoder(a.stderr)
	enc.SetIndent("", "  ")
	enc.Encode(output)
}

func errorType(err error) string {
	var inputErr *core.InputError
	var authErr *core.AuthError
	var reqErr *core.RequestError
	var svcErr *core.ServiceError
	var respErr *core.ResponseError
	switch {
	case errors.As(err, &inputErr):
		return "input_error"
	case errors.As(err, &authErr):
		return "auth_error"
	case errors.As(err, &reqErr):
		return "request_error"
	case errors.As(err, &svcErr):
		return "service_error"
	case errors.As(err, &respErr):
		return "response_error"
	}
	return "error"
}

// exitError wraps an error with an exit code.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	return e.err.Error()
}

func (e *exitError) ExitCode() int {
	return e.code
}

func exitWithCode(code int, err error) error {
	return &exitError{code: code, err: err}
}

var defaultApp = NewApp()

// Execute runs the default app root command.
func Execute() error {
	return defaultApp.Execute()
}
