package timecmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/spf13/cobra"

	"github.com/wrklg/jira-wrklg/internal/api"
	"github.com/wrklg/jira-wrklg/internal/config"
	"github.com/wrklg/jira-wrklg/internal/ui"
	"github.com/wrklg/jira-wrklg/internal/worklog"
)

var envNames = []string{"URL", "USERNAME", "TOKEN", "OUTPUT", "COLOR", "HTTP_TIMEOUT", "PAGE_SIZE"}

// setup は設定ディレクトリと環境変数を切り離し、フラグを初期値に戻す
func setup(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	for _, name := range envNames {
		t.Setenv(config.EnvPrefix+name, "")
		os.Unsetenv(config.EnvPrefix + name)
	}
	config.ResetConfig()
	t.Cleanup(config.ResetConfig)
	ui.SetColorEnabled(false)

	timeIssues, timeFrom, timeTo, timeSummary, timeJQ = nil, "", "", 0, ""
}

func useServer(t *testing.T, srv *httptest.Server) {
	t.Helper()
	t.Setenv(config.EnvPrefix+"URL", srv.URL)
	t.Setenv(config.EnvPrefix+"USERNAME", "alice")
	t.Setenv(config.EnvPrefix+"TOKEN", "token")
}

type fakeJira struct {
	*httptest.Server
	requests atomic.Int32
}

func newFakeJira(t *testing.T, worklogs map[string][]map[string]any) *fakeJira {
	t.Helper()
	f := &fakeJira{}

	mux := http.NewServeMux()
	mux.HandleFunc("/rest/api/2/myself", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"displayName": "Alice Example"})
	})
	mux.HandleFunc("/rest/api/2/issue/{key}/worklog", func(w http.ResponseWriter, r *http.Request) {
		items, ok := worklogs[r.PathValue("key")]
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]any{
				"errorMessages": []string{"Issue does not exist or you do not have permission to see it."},
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"startAt":    0,
			"maxResults": len(items),
			"total":      len(items),
			"worklogs":   items,
		})
	})

	f.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.requests.Add(1)
		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(f.Close)
	return f
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func record(author, created, updated string, seconds int) map[string]any {
	return map[string]any{
		"author":           map[string]any{"displayName": author},
		"created":          created,
		"updated":          updated,
		"timeSpentSeconds": seconds,
	}
}

func run(t *testing.T) (string, error) {
	t.Helper()
	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())
	var out bytes.Buffer
	cmd.SetOut(&out)
	err := runTime(cmd, nil)
	return out.String(), err
}

var sampleWorklogs = map[string][]map[string]any{
	"PROJ-1": {
		record("Alice", "2024-03-05T10:30:00.000+0000", "2024-03-05T10:30:00.000+0000", 3600),
		record("Bob", "2024-02-20T09:00:00.000+0000", "2024-03-02T14:15:00.000+0000", 1800),
		record("Alice", "2024-03-06T08:00:00.000+0000", "2024-03-06T08:00:00.000+0000", 61),
	},
	"PROJ-2": {
		record("Carol", "2024-01-01T08:00:00.000+0000", "2024-01-01T08:00:00.000+0000", 900),
	},
}

func TestTimeText(t *testing.T) {
	setup(t)
	useServer(t, newFakeJira(t, sampleWorklogs).Server)

	timeIssues = []string{"PROJ-1", "PROJ-2"}
	timeFrom = "01.03.2024"
	timeTo = "01.04.2024"

	got, err := run(t)
	if err != nil {
		t.Fatalf("runTime() error = %v", err)
	}

	want := "PROJ-1:\n" +
		"\tAlice: 01:00:00 (created 05.03.2024 10:30)\n" +
		"\tBob: 00:30:00 (changed) (created: 20.02.2024 09:00 | updated: 02.03.2024 14:15)\n" +
		"\tAlice: 00:01:01 (created 06.03.2024 08:00)\n" +
		"\n\tTotal:\n" +
		"\t\tAlice: 01:01:01\n" +
		"PROJ-2:\n" +
		"\tNo new time\n"
	if got != want {
		t.Errorf("output mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestTimeJSON(t *testing.T) {
	setup(t)
	t.Setenv(config.EnvPrefix+"OUTPUT", "json")
	useServer(t, newFakeJira(t, sampleWorklogs).Server)

	timeIssues = []string{"PROJ-1"}
	timeFrom = "01.03.2024"

	got, err := run(t)
	if err != nil {
		t.Fatalf("runTime() error = %v", err)
	}

	var reports []worklog.IssueReport
	if err := json.Unmarshal([]byte(got), &reports); err != nil {
		t.Fatalf("invalid json: %v\n%s", err, got)
	}
	if len(reports) != 1 || len(reports[0].Totals) != 1 || reports[0].Totals[0].Seconds != 3661 {
		t.Errorf("reports = %+v", reports)
	}
}

func TestTimeNoIssues(t *testing.T) {
	setup(t)
	useServer(t, newFakeJira(t, sampleWorklogs).Server)

	got, err := run(t)
	if err != nil {
		t.Fatalf("runTime() error = %v", err)
	}
	if got != "" {
		t.Errorf("expected no output, got %q", got)
	}
}

func TestTimeNotInitialized(t *testing.T) {
	setup(t)
	timeIssues = []string{"PROJ-1"}

	_, err := run(t)
	if !errors.Is(err, config.ErrNotInitialized) {
		t.Errorf("runTime() error = %v, want ErrNotInitialized", err)
	}
}

func TestTimeInvalidDateBeforeNetwork(t *testing.T) {
	setup(t)
	srv := newFakeJira(t, sampleWorklogs)
	useServer(t, srv.Server)

	timeIssues = []string{"PROJ-1"}
	timeFrom = "2024-03-01"

	_, err := run(t)
	if !errors.Is(err, worklog.ErrInvalidDate) {
		t.Errorf("runTime() error = %v, want ErrInvalidDate", err)
	}
	if n := srv.requests.Load(); n != 0 {
		t.Errorf("made %d requests, want 0", n)
	}
}

func TestTimeJQRequiresJSON(t *testing.T) {
	setup(t)
	timeJQ = ".[]"

	_, err := run(t)
	if err == nil || !strings.Contains(err.Error(), "--jq") {
		t.Errorf("runTime() error = %v, want --jq usage error", err)
	}
}

func TestTimeStopsOnFirstError(t *testing.T) {
	setup(t)
	useServer(t, newFakeJira(t, sampleWorklogs).Server)

	timeIssues = []string{"PROJ-1", "MISSING-1", "PROJ-2"}

	got, err := run(t)
	var apiErr *api.APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusNotFound {
		t.Fatalf("runTime() error = %v, want 404 APIError", err)
	}
	if !strings.HasPrefix(got, "PROJ-1:\n") || strings.Contains(got, "PROJ-2") {
		t.Errorf("output should contain only PROJ-1:\n%s", got)
	}
}
