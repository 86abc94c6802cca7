package cmd

import (
	"fmt"
	"net/http"

	"github.com/go-faster/errors"

	"github.com/wrklg/jira-wrklg/internal/api"
	"github.com/wrklg/jira-wrklg/internal/cmdutil"
	"github.com/wrklg/jira-wrklg/internal/config"
	"github.com/wrklg/jira-wrklg/internal/ui"
	"github.com/wrklg/jira-wrklg/internal/worklog"
)

// ExitCode はエラーの終了コード
type ExitCode int

const (
	ExitOK       ExitCode = 0
	ExitError    ExitCode = 1
	ExitAuth     ExitCode = 2
	ExitNotFound ExitCode = 3
	ExitConfig   ExitCode = 4
)

// HandleError はエラーを処理して適切なメッセージを表示する
// cmdutil.Silent で包まれたエラーは終了コードだけを返す
func HandleError(err error) ExitCode {
	code, msg := Classify(err)
	if code != ExitOK && !cmdutil.IsSilent(err) {
		ui.Error("%s", msg)
	}
	return code
}

// Classify はエラーを終了コードと利用者向けメッセージに変換する
func Classify(err error) (ExitCode, string) {
	if err == nil {
		return ExitOK, ""
	}

	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		return classifyAPIError(apiErr)
	}

	switch {
	case errors.Is(err, config.ErrNotInitialized):
		return ExitConfig, "You need to init first. Run 'jira-wrklg init' to store your credentials."
	case errors.Is(err, worklog.ErrInvalidDate),
		errors.Is(err, worklog.ErrInvertedWindow),
		errors.Is(err, cmdutil.ErrUsage):
		return ExitConfig, err.Error()
	}

	// 一般的なエラー
	return ExitError, err.Error()
}

func classifyAPIError(err *api.APIError) (ExitCode, string) {
	switch err.StatusCode {
	case http.StatusUnauthorized:
		return ExitAuth, "Authentication failed. Check your credentials with 'jira-wrklg init --force'."
	case http.StatusForbidden:
		return ExitAuth, fmt.Sprintf("Permission denied: %s", err.Message())
	case http.StatusNotFound:
		return ExitNotFound, fmt.Sprintf("Not found: %s", err.Message())
	default:
		return ExitError, fmt.Sprintf("API error (%d): %s", err.StatusCode, err.Message())
	}
}
