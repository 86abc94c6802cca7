package cmdutil

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-faster/errors"
	"github.com/spf13/cobra"

	"github.com/wrklg/jira-wrklg/internal/api"
	"github.com/wrklg/jira-wrklg/internal/config"
)

// ErrUsage はフラグや引数の誤り
var ErrUsage = errors.New("invalid usage")

type usageError struct {
	msg string
}

func (e *usageError) Error() string { return e.msg }

func (e *usageError) Is(target error) bool { return target == ErrUsage }

// Usagef は errors.Is(err, ErrUsage) を満たすエラーを返す
func Usagef(format string, args ...any) error {
	return &usageError{msg: fmt.Sprintf(format, args...)}
}

type silentError struct {
	err error
}

func (e *silentError) Error() string { return e.err.Error() }

func (e *silentError) Unwrap() error { return e.err }

// Silent はメッセージを表示せず終了コードだけ反映させるエラーに包む（--quiet 用）
func Silent(err error) error {
	if err == nil {
		return nil
	}
	return &silentError{err: err}
}

// IsSilent は Silent で包まれたエラーかどうかを返す
func IsSilent(err error) bool {
	var s *silentError
	return errors.As(err, &s)
}

// OpenSession はセッションを開く関数（テストで差し替える）
var OpenSession = func(ctx context.Context, cfg *config.Store) (*api.Session, error) {
	return api.OpenFromConfig(ctx, cfg)
}

// GetConfigStore はConfigStoreを取得する
// グローバルフラグはrootCmd.PersistentPreRunEで適用済み
func GetConfigStore(cmd *cobra.Command) (*config.Store, error) {
	cfg, err := config.Load(cmd.Context())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// GetSession は認証済みセッションを取得する
// クレデンシャル未設定ならネットワークに触れずに config.ErrNotInitialized を返す
func GetSession(cmd *cobra.Command) (*api.Session, *config.Store, error) {
	cfg, err := GetConfigStore(cmd)
	if err != nil {
		return nil, nil, err
	}

	session, err := OpenSession(cmd.Context(), cfg)
	if err != nil {
		return nil, nil, err
	}
	return session, cfg, nil
}

// SplitIssueKeys は -i で渡された課題キーを整える
// カンマ区切りも受け付け、空要素は捨てる。順序と重複はそのまま保つ
func SplitIssueKeys(values []string) []string {
	keys := make([]string, 0, len(values))
	for _, v := range values {
		for _, key := range strings.Split(v, ",") {
			if key = strings.TrimSpace(key); key != "" {
				keys = append(keys, key)
			}
		}
	}
	return keys
}
