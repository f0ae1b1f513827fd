package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DefaultPort は開発サーバーが待ち受けるポート番号
const DefaultPort = 8000

// Config はアプリケーション全体の設定を保持する構造体
// 起動時に一度だけ作成され、以後変更されない
type Config struct {
	Server ServerConfig `yaml:"server"`
	Root   string       `yaml:"root"` // 配信するルートディレクトリ（絶対パス）
}

// ServerConfig はHTTPサーバーの設定
type ServerConfig struct {
	Host string `yaml:"host"` // リッスンするホスト（空なら全インターフェース）
	Port int    `yaml:"port"` // リッスンするポート番号

	// タイムアウト設定
	ReadTimeout time.Duration `yaml:"read_timeout"` // 読み込みタイムアウト
}

// Load は設定を読み込む
// フラグや環境変数は参照せず、ルートは実行ファイルのあるディレクトリに固定する
func Load() (*Config, error) {
	root, err := entryDir()
	if err != nil {
		return nil, fmt.Errorf("ルートディレクトリの解決に失敗: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:        "",
			Port:        DefaultPort,
			ReadTimeout: 10 * time.Second,
		},
		Root: root,
	}

	// 設定の検証
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("設定の検証に失敗: %w", err)
	}

	return cfg, nil
}

// Validate は設定の妥当性を検証する
func (c *Config) Validate() error {
	// サーバー設定の検証
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("無効なポート番号: %d", c.Server.Port)
	}

	// ルートディレクトリの検証
	if !filepath.IsAbs(c.Root) {
		return fmt.Errorf("ルートディレクトリが絶対パスではありません: %q", c.Root)
	}
	info, err := os.Stat(c.Root)
	if err != nil {
		return fmt.Errorf("ルートディレクトリを参照できません: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("ルートがディレクトリではありません: %s", c.Root)
	}

	return nil
}

// ServerAddress はサーバーのリッスンアドレスを返す
func (c *Config) ServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// entryDir は実行ファイルが置かれているディレクトリを返す
// go run で起動された場合はビルドキャッシュを指すため、作業ディレクトリで代用する
func entryDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}

	dir := filepath.Dir(exe)
	if isBuildCache(dir) {
		return os.Getwd()
	}
	return dir, nil
}

// isBuildCache は go run の一時ビルドディレクトリかどうかを判定する
func isBuildCache(dir string) bool {
	for _, part := range strings.Split(filepath.ToSlash(dir), "/") {
		if strings.HasPrefix(part, "go-build") {
			return true
		}
	}
	return false
}
