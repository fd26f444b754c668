package commands

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestQueryCommand(t *testing.T) {
	t.Run("prints the output object", func(t *testing.T) {
		server, bodies := fakeService(t)
		ks := newMemKeystore()
		ks.data["weco"] = "test-key"

		app, stdout, stderr := testApp(t, ks, nil,
			"query", "parse-receipt", "-i", "Total: $42.50", "--base-url", server.URL)
		if err := app.Execute(); err != nil {
			t.Fatalf("Execute() error = %v", err)
		}

		if !strings.Contains(stdout.String(), "42.5") {
			t.Errorf("stdout = %q, want output object", stdout.String())
		}
		if !strings.Contains(stderr.String(), "10 in, 5 out") {
			t.Errorf("stderr = %q, want token summary", stderr.String())
		}

		var sent map[string]any
		if err := json.Unmarshal((*bodies)[0], &sent); err != nil {
			t.Fatal(err)
		}
		if sent["fn_name"] != "parse-receipt" || sent["text_input"] != "Total: $42.50" {
			t.Errorf("request = %v", sent)
		}
		if sent["version_number"] != float64(-1) {
			t.Errorf("version_number = %v, want -1 (latest)", sent["version_number"])
		}
	})

	t.Run("version and reasoning flags reach the wire", func(t *testing.T) {
		server, bodies := fakeService(t)
		ks := newMemKeystore()
		ks.data["weco"] = "test-key"

		app, _, _ := testApp(t, ks, nil,
			"query", "parse-receipt", "-i", "hi", "--version", "3", "--reasoning",
			"--base-url", server.URL)
		if err := app.Execute(); err != nil {
			t.Fatalf("Execute() error = %v", err)
		}

		var sent map[string]any
		if err := json.Unmarshal((*bodies)[0], &sent); err != nil {
			t.Fatal(err)
		}
		if sent["version_number"] != float64(3) {
			t.Errorf("version_number = %v, want 3", sent["version_number"])
		}
		if sent["return_reasoning"] != true {
			t.Errorf("return_reasoning = %v, want true", sent["return_reasoning"])
		}
	})

	t.Run("service failure maps to an exit code", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]any{
				"error": map[string]string{"message": "unknown function"},
			})
		}))
		defer server.Close()

		ks := newMemKeystore()
		ks.data["weco"] = "test-key"

		app, _, stderr := testApp(t, ks, nil,
			"query", "nope", "-i", "hi", "--base-url", server.URL)
		err := app.Execute()
		if err == nil {
			t.Fatal("Execute() should fail")
		}
		exitErr, ok := err.(*exitError)
		if !ok || exitErr.ExitCode() != ExitService {
			t.Errorf("err = %v, want service exit code", err)
		}
		if !strings.Contains(stderr.String(), "unknown function") {
			t.Errorf("stderr = %q", stderr.String())
		}
	})

	t.Run("missing key is a validation failure", func(t *testing.T) {
		server, bodies := fakeService(t)
		app, _, _ := testApp(t, newMemKeystore(), nil,
			"query", "parse-receipt", "-i", "hi", "--base-url", server.URL)

		err := app.Execute()
		if err == nil {
			t.Fatal("Execute() should fail without a key")
		}
		exitErr, ok := err.(*exitError)
		if !ok || exitErr.ExitCode() != ExitValidation {
			t.Errorf("err = %v, want validation exit code", err)
		}
		if len(*bodies) != 0 {
			t.Errorf("network calls = %d, want 0", len(*bodies))
		}
	})
}
