// Package config はクライアントの実行時設定を提供する。
//
// 環境変数と.envファイル（存在する場合）から設定を読み込み、
// 未設定の項目には開発用のデフォルト値を適用する。
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config はmarketcliの実行時設定。
type Config struct {
	// APIBaseURL は接続先マーケットプレイスAPIのベースURL。
	APIBaseURL string
	// SessionFile はセッションを永続化するファイルのパス。
	SessionFile string
	// PageSize はテーブル表示の1ページあたりの行数。
	PageSize int
	// LogLevel はログレベル（debug/info/warn/error）。
	LogLevel string
	// LogFile はログの出力先ファイル。空の場合は標準エラー出力。
	LogFile string
}

// Load は環境変数と.envファイルから設定を読み込む。
func Load() (*Config, error) {
	// .envはあれば読む。なくてもエラーにしない。
	_ = godotenv.Load()

	pageSize, err := strconv.Atoi(getEnvOr("MARKETCLI_PAGE_SIZE", "10"))
	if err != nil {
		return nil, fmt.Errorf("MARKETCLI_PAGE_SIZEが不正です: %w", err)
	}
	if pageSize <= 0 {
		return nil, fmt.Errorf("MARKETCLI_PAGE_SIZEは正の整数を指定してください: %d", pageSize)
	}

	sessionFile := os.Getenv("MARKETCLI_SESSION_FILE")
	if sessionFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("ホームディレクトリの取得に失敗: %w", err)
		}
		sessionFile = filepath.Join(home, ".marketcli", "session.json")
	}

	return &Config{
		APIBaseURL:  getEnvOr("MARKETCLI_API_URL", "http://localhost:8080"),
		SessionFile: sessionFile,
		PageSize:    pageSize,
		LogLevel:    getEnvOr("MARKETCLI_LOG_LEVEL", "info"),
		LogFile:     os.Getenv("MARKETCLI_LOG_FILE"),
	}, nil
}

// getEnvOr は環境変数を取得し、設定されていない場合はデフォルト値を返す。
func getEnvOr(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}
