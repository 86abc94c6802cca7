package api

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/andygrunwald/go-jira"
	"github.com/go-faster/errors"
)

// APIError は Jira API エラー
type APIError struct {
	StatusCode int
	Messages   []string
	Err        error
}

func (e *APIError) Error() string {
	if len(e.Messages) > 0 {
		return fmt.Sprintf("Jira API error: %s (status %d)", strings.Join(e.Messages, "; "), e.StatusCode)
	}
	return fmt.Sprintf("Jira API error: status %d", e.StatusCode)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// Message は最初のエラーメッセージを返す
func (e *APIError) Message() string {
	if len(e.Messages) > 0 {
		return e.Messages[0]
	}
	return fmt.Sprintf("status %d", e.StatusCode)
}

// wrapError はHTTPエラー応答を APIError に変換する
// レスポンスのないネットワークエラーはそのまま返す
func wrapError(resp *jira.Response, err error) error {
	if resp == nil || resp.Response == nil || resp.StatusCode < 400 {
		return err
	}

	apiErr := &APIError{StatusCode: resp.StatusCode, Err: err}

	// go-jira がボディをパース済みならその結果を使い、未読ならここで読む
	var jerr *jira.Error
	if errors.As(err, &jerr) {
		apiErr.Messages = errorMessages(jerr.ErrorMessages, jerr.Errors)
		return apiErr
	}

	defer resp.Body.Close()
	body, rerr := io.ReadAll(resp.Body)
	if rerr != nil {
		return apiErr
	}
	var payload struct {
		ErrorMessages []string          `json:"errorMessages"`
		Errors        map[string]string `json:"errors"`
	}
	if json.Unmarshal(body, &payload) == nil {
		apiErr.Messages = errorMessages(payload.ErrorMessages, payload.Errors)
	}

	return apiErr
}

// errorMessages は Jira のエラー形式（errorMessages + フィールド別 errors）を1列にまとめる
func errorMessages(messages []string, fields map[string]string) []string {
	out := append([]string(nil), messages...)
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		out = append(out, k+": "+fields[k])
	}
	return out
}
