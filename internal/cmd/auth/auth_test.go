package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/spf13/cobra"

	"github.com/wrklg/jira-wrklg/internal/api"
	"github.com/wrklg/jira-wrklg/internal/cmdutil"
	"github.com/wrklg/jira-wrklg/internal/config"
)

func setup(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	for _, name := range []string{"URL", "USERNAME", "TOKEN", "OUTPUT", "COLOR", "HTTP_TIMEOUT", "PAGE_SIZE"} {
		t.Setenv(config.EnvPrefix+name, "")
		os.Unsetenv(config.EnvPrefix + name)
	}
	config.ResetConfig()
	t.Cleanup(config.ResetConfig)
	authQuiet = false
}

func newServer(t *testing.T, status int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if status == http.StatusOK {
			_ = json.NewEncoder(w).Encode(map[string]any{"displayName": "Alice Example", "name": "alice"})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"errorMessages": []string{"Unauthorized"}})
	}))
	t.Cleanup(srv.Close)

	t.Setenv(config.EnvPrefix+"URL", srv.URL+"/")
	t.Setenv(config.EnvPrefix+"USERNAME", "alice")
	t.Setenv(config.EnvPrefix+"TOKEN", "token")
	return srv
}

func run(t *testing.T) (string, error) {
	t.Helper()
	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())
	var out bytes.Buffer
	cmd.SetOut(&out)
	err := runAuth(cmd, nil)
	return out.String(), err
}

func TestAuth(t *testing.T) {
	setup(t)
	srv := newServer(t, http.StatusOK)

	got, err := run(t)
	if err != nil {
		t.Fatalf("runAuth() error = %v", err)
	}
	// 末尾スラッシュは取り除かれる
	want := "Authenticated as Alice Example (" + srv.URL + ")\n"
	if got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestAuthQuiet(t *testing.T) {
	setup(t)
	newServer(t, http.StatusOK)
	authQuiet = true

	got, err := run(t)
	if err != nil {
		t.Fatalf("runAuth() error = %v", err)
	}
	if got != "" {
		t.Errorf("quiet output = %q, want empty", got)
	}
}

func TestAuthNotInitialized(t *testing.T) {
	setup(t)

	called := false
	orig := cmdutil.OpenSession
	cmdutil.OpenSession = func(ctx context.Context, cfg *config.Store) (*api.Session, error) {
		called = true
		return orig(ctx, cfg)
	}
	t.Cleanup(func() { cmdutil.OpenSession = orig })

	_, err := run(t)
	if !errors.Is(err, config.ErrNotInitialized) {
		t.Fatalf("runAuth() error = %v, want ErrNotInitialized", err)
	}
	if !called {
		t.Error("OpenSession was not consulted")
	}
}

func TestAuthUnauthorizedQuiet(t *testing.T) {
	setup(t)
	newServer(t, http.StatusUnauthorized)
	authQuiet = true

	got, err := run(t)
	if !cmdutil.IsSilent(err) {
		t.Fatalf("runAuth() error = %v, want silent error", err)
	}
	var apiErr *api.APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusUnauthorized {
		t.Errorf("runAuth() error = %v, want 401 APIError", err)
	}
	if got != "" {
		t.Errorf("quiet output = %q, want empty", got)
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		user api.User
		want string
	}{
		{api.User{DisplayName: "Alice", Name: "alice"}, "Alice"},
		{api.User{Name: "alice", EmailAddress: "a@example.com"}, "alice"},
		{api.User{EmailAddress: "a@example.com", AccountID: "1"}, "a@example.com"},
		{api.User{AccountID: "1"}, "1"},
	}
	for _, tt := range tests {
		if got := displayName(tt.user); got != tt.want {
			t.Errorf("displayName(%+v) = %q, want %q", tt.user, got, tt.want)
		}
	}
}
