package commands

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/weco-ai/weco-go/cli/config"
	"github.com/weco-ai/weco-go/cli/keystore"
	"github.com/weco-ai/weco-go/core"
	"github.com/weco-ai/weco-go/weco"
)

// memKeystore is an in-memory Keystore for command tests.
type memKeystore struct {
	data map[string]string
}

func newMemKeystore() *memKeystore {
	return &memKeystore{data: make(map[string]string)}
}

func (m *memKeystore) Set(name, value string) error {
	m.data[name] = value
	return nil
}

func (m *memKeystore) Get(name string) (string, error) {
	v, ok := m.data[name]
	if !ok {
		return "", &keystore.ErrKeyNotFound{Name: name}
	}
	return v, nil
}

func (m *memKeystore) Delete(name string) error {
	if _, ok := m.data[name]; !ok {
		return &keystore.ErrKeyNotFound{Name: name}
	}
	delete(m.data, name)
	return nil
}

func (m *memKeystore) List() ([]string, error) {
	names := make([]string, 0, len(m.data))
	for name := range m.data {
		names = append(names, name)
	}
	return names, nil
}

// testApp wires an App with in-memory dependencies and captured output.
func testApp(t *testing.T, ks *memKeystore, cfg *config.Config, args ...string) (*App, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	t.Setenv(weco.DefaultAPIKeyEnvVar, "")
	if cfg == nil {
		cfg = &config.Config{}
	}
	var stdout, stderr bytes.Buffer
	app := NewApp(
		WithConfigLoader(func(path string) (*config.Config, error) { return cfg, nil }),
		WithKeystoreFactory(func() (keystore.Keystore, error) { return ks, nil }),
		WithIO(strings.NewReader(""), &stdout, &stderr),
	)
	app.SetArgs(args)
	return app, &stdout, &stderr
}

func TestExitError(t *testing.T) {
	err := exitWithCode(ExitValidation, errors.New("test error"))

	if err.Error() != "test error" {
		t.Errorf("Error() = %q, want 'test error'", err.Error())
	}

	exitErr, ok := err.(*exitError)
	if !ok {
		t.Fatal("expected *exitError type")
	}
	if exitErr.ExitCode() != ExitValidation {
		t.Errorf("ExitCode() = %d, want %d", exitErr.ExitCode(), ExitValidation)
	}
}

func TestHandleErrorCodes(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"input error", &core.InputError{Message: "bad"}, ExitValidation},
		{"auth error", &core.AuthError{Message: "no key"}, ExitValidation},
		{"request error", &core.RequestError{Status: 400}, ExitService},
		{"response error", &core.ResponseError{Field: "output"}, ExitService},
		{"service error rate limited", &core.ServiceError{Status: 429, Attempts: 3, Err: core.ErrRateLimited}, ExitService},
		{"service error network", &core.ServiceError{Attempts: 3, Err: core.ErrNetwork}, ExitNetwork},
		{"service error timeout", &core.ServiceError{Attempts: 3, Err: core.ErrTimeout}, ExitNetwork},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, _, stderr := testApp(t, newMemKeystore(), nil)

			err := app.handleError(tt.err)
			exitErr, ok := err.(*exitError)
			if !ok {
				t.Fatal("expected *exitError type")
			}
			if exitErr.ExitCode() != tt.want {
				t.Errorf("ExitCode() = %d, want %d", exitErr.ExitCode(), tt.want)
			}
			if stderr.Len() == 0 {
				t.Error("error should be written to stderr")
			}
		})
	}
}

func TestErrorType(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{&core.InputError{}, "input_error"},
		{&core.AuthError{}, "auth_error"},
		{&core.RequestError{}, "request_error"},
		{&core.ServiceError{}, "service_error"},
		{&core.ResponseError{}, "response_error"},
		{errors.New("plain"), "error"},
	}

	for _, tt := range tests {
		if got := errorType(tt.err); got != tt.want {
			t.Errorf("errorType(%T) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestResolveAPIKey(t *testing.T) {
	t.Run("flag wins over env and keystore", func(t *testing.T) {
		ks := newMemKeystore()
		ks.data["weco"] = "from-keystore"
		app, _, _ := testApp(t, ks, nil)
		t.Setenv(weco.DefaultAPIKeyEnvVar, "from-env")
		app.apiKey = "from-flag"

		key, err := app.resolveAPIKey()
		if err != nil {
			t.Fatalf("resolveAPIKey() error = %v", err)
		}
		if key != "from-flag" {
			t.Errorf("key = %q, want from-flag", key)
		}
	})

	t.Run("env wins over keystore", func(t *testing.T) {
		ks := newMemKeystore()
		ks.data["weco"] = "from-keystore"
		app, _, _ := testApp(t, ks, nil)
		t.Setenv(weco.DefaultAPIKeyEnvVar, "from-env")

		key, err := app.resolveAPIKey()
		if err != nil {
			t.Fatalf("resolveAPIKey() error = %v", err)
		}
		if key != "from-env" {
			t.Errorf("key = %q, want from-env", key)
		}
	})

	t.Run("keystore entry named by config", func(t *testing.T) {
		ks := newMemKeystore()
		ks.data["weco_staging"] = "from-keystore"
		app, _, _ := testApp(t, ks, &config.Config{APIKeyRef: "weco_staging"})
		app.cfg = &config.Config{APIKeyRef: "weco_staging"}

		key, err := app.resolveAPIKey()
		if err != nil {
			t.Fatalf("resolveAPIKey() error = %v", err)
		}
		if key != "from-keystore" {
			t.Errorf("key = %q, want from-keystore", key)
		}
	})

	t.Run("no key anywhere is an actionable error", func(t *testing.T) {
		app, _, _ := testApp(t, newMemKeystore(), nil)

		_, err := app.resolveAPIKey()
		if err == nil {
			t.Fatal("resolveAPIKey() should fail with no key configured")
		}
		if !strings.Contains(err.Error(), "weco keys set") {
			t.Errorf("err = %v, should mention 'weco keys set'", err)
		}
	})
}

func TestClientOptions(t *testing.T) {
	app, _, _ := testApp(t, newMemKeystore(), nil)
	app.cfg = &config.Config{BaseURL: "https://cfg.example.com", TimeoutSeconds: 9, Concurrency: 5}

	if got := len(app.clientOptions()); got != 3 {
		t.Errorf("len(clientOptions()) = %d, want 3", got)
	}

	app.cfg = &config.Config{}
	if got := len(app.clientOptions()); got != 0 {
		t.Errorf("len(clientOptions()) = %d, want 0 for empty config", got)
	}
}
