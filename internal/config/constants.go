package config

import (
	_ "embed"
)

// レイヤー名定数
const (
	LayerDefaults    = "defaults"
	LayerUser        = "user"
	LayerCredentials = "credentials"
	LayerEnv         = "env"
	LayerArgs        = "args"
)

// EnvPrefix は環境変数レイヤーのプレフィックス
const EnvPrefix = "JIRA_WRKLG_"

// 設定パス（JSON Pointer）
const (
	PathCredential    = "/credential"
	PathDisplayOutput = "/display/output"
	PathDisplayColor  = "/display/color"
)

// 出力フォーマット
const (
	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"
)

//go:embed defaults.yaml
var defaultConfigYAML []byte
