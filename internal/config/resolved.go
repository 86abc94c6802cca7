package config

import (
	"strings"
	"time"
)

// ResolvedConfig は全レイヤーをマージし、デフォルト適用後の設定
// jubakoのmaterializationはJSONを使用するため、jsonタグが必須
type ResolvedConfig struct {
	// クレデンシャル（credentials.yaml）
	Credential Credential `json:"credential"`

	// 表示設定
	Display ResolvedDisplay `json:"display"`

	// HTTP設定
	HTTP ResolvedHTTP `json:"http"`

	// ワークログ取得設定
	Worklog ResolvedWorklog `json:"worklog"`
}

// Credential はトラッカーの認証情報
// token のみセンシティブ扱いとし、一覧表示ではマスクされる
type Credential struct {
	URL      string `yaml:"url,omitempty" json:"url,omitempty" jubako:"/credential/url,env:URL"`
	Username string `yaml:"username,omitempty" json:"username,omitempty" jubako:"/credential/username,env:USERNAME"`
	Token    string `yaml:"token,omitempty" json:"token,omitempty" jubako:"/credential/token,env:TOKEN,sensitive"`
}

// Complete は3項目すべてが設定されているかを返す
func (c *Credential) Complete() bool {
	return c.URL != "" && c.Username != "" && c.Token != ""
}

// Normalize は前後の空白と URL 末尾のスラッシュを取り除く
func (c *Credential) Normalize() {
	c.URL = strings.TrimRight(strings.TrimSpace(c.URL), "/")
	c.Username = strings.TrimSpace(c.Username)
	c.Token = strings.TrimSpace(c.Token)
}

// ResolvedDisplay はマージ済みの表示設定
type ResolvedDisplay struct {
	// text / json / yaml
	Output string `json:"output" jubako:"/display/output,env:OUTPUT"`
	// auto / always / never
	Color string `json:"color" jubako:"/display/color,env:COLOR"`
}

// ResolvedHTTP はマージ済みのHTTP設定
type ResolvedHTTP struct {
	// 秒。0 はタイムアウトなし
	Timeout int `json:"timeout" jubako:"/http/timeout,env:HTTP_TIMEOUT"`
}

// TimeoutDuration はタイムアウトを time.Duration で返す
func (h *ResolvedHTTP) TimeoutDuration() time.Duration {
	if h.Timeout <= 0 {
		return 0
	}
	return time.Duration(h.Timeout) * time.Second
}

// ResolvedWorklog はマージ済みのワークログ取得設定
type ResolvedWorklog struct {
	PageSize int `json:"page_size" jubako:"/worklog/page_size,env:PAGE_SIZE"`
}
