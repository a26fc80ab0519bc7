// マーケットプレイスCLIクライアントのエントリポイント。
// ログイン後、ロールに応じたダッシュボードの対話ループを起動する。
package main

import (
	"context"
	"log"
	"os"
	"path/filepath"

	"github.com/nao1215/marketcli/internal/config"
	"github.com/nao1215/marketcli/internal/logging"
	"github.com/nao1215/marketcli/internal/screen"
	"github.com/nao1215/marketcli/pkg/apiclient"
	"github.com/nao1215/marketcli/pkg/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("設定の読み込みに失敗: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		log.Fatalf("ロガーの初期化に失敗: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	if err := os.MkdirAll(filepath.Dir(cfg.SessionFile), 0o700); err != nil {
		log.Fatalf("セッションディレクトリの作成に失敗: %v", err)
	}
	store, err := session.NewStore(cfg.SessionFile)
	if err != nil {
		log.Fatalf("セッションストアの初期化に失敗: %v", err)
	}

	// 401でセッションが破棄されたらループをログイン画面へ戻す。
	var loop *screen.Loop
	client := apiclient.New(cfg.APIBaseURL, store, apiclient.WithUnauthorizedHook(func() {
		if loop != nil {
			loop.ForceLogin()
		}
	}))
	loop = screen.NewLoop(client, cfg.PageSize, os.Stdin, os.Stdout, logger)

	if err := loop.Run(context.Background()); err != nil {
		log.Fatalf("対話ループが異常終了: %v", err)
	}
}
