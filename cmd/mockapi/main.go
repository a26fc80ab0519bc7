// 開発・検証用モックAPIサーバーのエントリポイント。
// marketcliの接続先となるマーケットプレイスAPIをインメモリSQLiteで提供する。
package main

import (
	"log"
	"os"

	"github.com/nao1215/marketcli/internal/logging"
	"github.com/nao1215/marketcli/internal/mockapi"
)

func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	dbPath := os.Getenv("MOCKAPI_DB")
	if dbPath == "" {
		dbPath = ":memory:"
	}
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = "dev-secret-change-me"
	}

	logger, err := logging.New(os.Getenv("MOCKAPI_LOG_LEVEL"), "stdout")
	if err != nil {
		log.Fatalf("ロガーの初期化に失敗: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	server, err := mockapi.NewServer(port, dbPath, jwtSecret, logger)
	if err != nil {
		log.Fatalf("モックAPIサーバーの初期化に失敗: %v", err)
	}
	defer server.Close()

	log.Printf("モックAPIサーバーを起動します: :%s", port)
	if err := server.Run(); err != nil {
		log.Fatalf("モックAPIサーバーの起動に失敗: %v", err)
	}
}
