package mockapi

import (
	"database/sql"
	"embed"

	"go.uber.org/zap"

	"github.com/nao1215/marketcli/pkg/migration"
)

//go:embed migrations
var migrationsFS embed.FS

// initSchema はマイグレーションを実行してモックAPIのスキーマを適用する。
func initSchema(db *sql.DB, logger *zap.Logger) error {
	return migration.Run(db, migrationsFS, "migrations", logger)
}
