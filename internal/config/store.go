package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/go-faster/errors"
	"github.com/yacchi/jubako"
	"github.com/yacchi/jubako/format/yaml"
	"github.com/yacchi/jubako/layer"
	"github.com/yacchi/jubako/layer/env"
	"github.com/yacchi/jubako/layer/mapdata"
	"github.com/yacchi/jubako/source/bytes"
	"github.com/yacchi/jubako/source/fs"
)

// ErrNotInitialized はクレデンシャルが保存されていない場合のエラー
var ErrNotInitialized = errors.New("credentials not initialized")

// Store は設定のレイヤー管理を行うjubakoベースの実装
type Store struct {
	mu sync.RWMutex

	// メインの設定ストア
	store *jubako.Store[ResolvedConfig]

	// クレデンシャルファイルのパス
	credentialsPath string
}

// SensitiveMaskString はセンシティブフィールドのマスク文字列
const SensitiveMaskString = "********"

// newConfigStore は新しいConfigStoreを作成する
// すべてのレイヤーを静的に追加する。ファイルが存在しない場合は空として扱う。
func newConfigStore() (*Store, error) {
	store := jubako.New[ResolvedConfig](
		jubako.WithSensitiveMaskString(SensitiveMaskString),
	)

	// Layer 1: Defaults (embedded YAML)
	if err := store.Add(
		layer.New(
			LayerDefaults,
			bytes.FromString(string(defaultConfigYAML)),
			yaml.New(),
		),
		jubako.WithReadOnly(),
		jubako.WithNoWatch(),
	); err != nil {
		return nil, errors.Wrap(err, "add defaults layer")
	}

	// Layer 2: User config (~/.config/jira-wrklg/config.yaml)
	userConfigPath, err := configPath()
	if err != nil {
		return nil, err
	}
	if err := store.Add(
		layer.New(
			LayerUser,
			fs.New(userConfigPath),
			yaml.New(),
		),
		jubako.WithOptional(),
	); err != nil {
		return nil, errors.Wrap(err, "add user layer")
	}

	// Layer 3: Credentials (~/.config/jira-wrklg/credentials.yaml)
	// - 最上位のファイルレイヤーに置き、設定が誤って書き込まれることを防ぐ
	// - ファイルが存在しなくても空として扱う（未初期化の判定は Credential で行う）
	credentialsPath, err := credentialsPath()
	if err != nil {
		return nil, err
	}
	if err := store.Add(
		layer.New(
			LayerCredentials,
			fs.New(credentialsPath, fs.WithFileMode(0600)),
			yaml.New(),
		),
		jubako.WithSensitive(),
		jubako.WithOptional(),
	); err != nil {
		return nil, errors.Wrap(err, "add credentials layer")
	}

	// Layer 4: Environment variables (JIRA_WRKLG_*)
	if err := store.Add(
		env.NewWithAutoSchema(LayerEnv, EnvPrefix),
		jubako.WithReadOnly(),
	); err != nil {
		return nil, errors.Wrap(err, "add env layer")
	}

	// Layer 5: Command-line flags
	// 静的に空のレイヤーを追加。SetFlagsLayer で値を設定
	if err := store.Add(
		mapdata.New(LayerArgs, nil),
	); err != nil {
		return nil, errors.Wrap(err, "add args layer")
	}

	return &Store{
		store:           store,
		credentialsPath: credentialsPath,
	}, nil
}

// LoadAll は全レイヤーを読み込む
func (s *Store) LoadAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Load(ctx); err != nil {
		return errors.Wrap(err, "load config")
	}
	return nil
}

// SetFlagsLayer はコマンドラインフラグからのオーバーライドを設定する
func (s *Store) SetFlagsLayer(options []jubako.SetOption) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Set(LayerArgs, options...)
}

// Reload は設定を再読み込みする
func (s *Store) Reload(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.store.Reload(ctx)
}

// ====================
// アクセサ（読み取り）
// ====================

// Resolved は解決済み設定を返す
func (s *Store) Resolved() *ResolvedConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()

	resolved := s.store.Get()
	return &resolved
}

// Credential は保存済みのクレデンシャルを返す
// url / username / token のいずれかが欠けていれば ErrNotInitialized を返す
func (s *Store) Credential() (*Credential, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cred := s.store.Get().Credential
	cred.Normalize()
	if !cred.Complete() {
		return nil, ErrNotInitialized
	}
	return &cred, nil
}

// HasCredentialsFile はクレデンシャルファイルが存在するかを返す
func (s *Store) HasCredentialsFile() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, err := os.Stat(s.credentialsPath)
	return err == nil
}

// Display は表示設定を取得する
func (s *Store) Display() *ResolvedDisplay {
	s.mu.RLock()
	defer s.mu.RUnlock()
	resolved := s.store.Get()
	return &resolved.Display
}

// HTTP はHTTP設定を取得する
func (s *Store) HTTP() *ResolvedHTTP {
	s.mu.RLock()
	defer s.mu.RUnlock()
	resolved := s.store.Get()
	return &resolved.HTTP
}

// Worklog はワークログ取得設定を取得する
func (s *Store) Worklog() *ResolvedWorklog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	resolved := s.store.Get()
	return &resolved.Worklog
}

// GetUserConfigPath はユーザー設定ファイルのパスを返す
func (s *Store) GetUserConfigPath() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if info := s.store.GetLayerInfo(LayerUser); info != nil {
		return info.Path()
	}
	return ""
}

// GetCredentialsPath はクレデンシャルファイルのパスを返す
func (s *Store) GetCredentialsPath() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.credentialsPath
}

// ====================
// セッター（書き込み）
// ====================

// SetCredential はクレデンシャルを設定する
// クレデンシャルは専用のクレデンシャルレイヤーにのみ書き込まれる
func (s *Store) SetCredential(cred *Credential) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.store.Set(LayerCredentials,
		jubako.Struct(PathCredential, cred),
		jubako.SkipZeroValues(),
	)
}

// ====================
// 保存
// ====================

// Save は更新があったレイヤーを保存する
func (s *Store) Save(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// 初回保存時は設定ディレクトリがまだない
	if err := os.MkdirAll(filepath.Dir(s.credentialsPath), 0o700); err != nil {
		return errors.Wrap(err, "create config dir")
	}
	return s.store.Save(ctx)
}

// ====================
// CLIコマンド用メソッド
// ====================

// Get は指定キーの値を取得する（CLIコマンド用）
func (s *Store) Get(key string) any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rv := s.store.GetAt(DotToPointer(key))
	if rv.Exists {
		return rv.Value
	}
	return nil
}

// WalkEntry は WalkEx で返されるエントリ情報
type WalkEntry struct {
	Path         string // ドット区切りのパス
	Value        any    // マスク済みの値
	Layer        string // 値の出所となるレイヤー名
	DefaultValue any    // デフォルト値（存在しない場合は nil）
}

// WalkExFunc は WalkEx で使用するコールバック関数の型
type WalkExFunc func(entry WalkEntry) bool

// WalkEx は全設定パスをイテレートし、デフォルト値も含めたエントリ情報を返す
// センシティブフィールドはマスクされた値が渡される
func (s *Store) WalkEx(fn WalkExFunc) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	s.store.Walk(func(ctx jubako.WalkContext) bool {
		rv := ctx.Value() // マスク済み
		if !rv.Exists {
			return true
		}
		// /credential/url → credential.url
		key := strings.ReplaceAll(ctx.Path[1:], "/", ".")
		layerName := ""
		if rv.Layer != nil {
			layerName = string(rv.Layer.Name())
		}

		var defaultValue any
		for _, v := range ctx.AllValues() {
			if v.Layer != nil && string(v.Layer.Name()) == LayerDefaults {
				defaultValue = v.Value
				break
			}
		}

		return fn(WalkEntry{
			Path:         key,
			Value:        rv.Value,
			Layer:        layerName,
			DefaultValue: defaultValue,
		})
	})
}

// ====================
// グローバルストア管理
// ====================

var (
	globalStore   *Store
	globalStoreMu sync.RWMutex
)

// Load はグローバル設定ストアを初期化してロードする
// すでにロード済みの場合は既存のストアを返す
func Load(ctx context.Context) (*Store, error) {
	globalStoreMu.Lock()
	defer globalStoreMu.Unlock()

	if globalStore != nil {
		return globalStore, nil
	}

	store, err := newConfigStore()
	if err != nil {
		return nil, err
	}

	if err := store.LoadAll(ctx); err != nil {
		return nil, err
	}

	globalStore = store
	return globalStore, nil
}

// ResetConfig はグローバル設定ストアをリセットする（テスト用）
func ResetConfig() {
	globalStoreMu.Lock()
	defer globalStoreMu.Unlock()
	globalStore = nil
}
