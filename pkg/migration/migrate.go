// Package migration はSQLiteスキーマのバージョン管理を提供する。
// embedされたディレクトリから連番のSQLスクリプトを読み込み、
// schema_migrationsテーブルに記録された適用済みバージョンとの差分だけを実行する。
package migration

import (
	"database/sql"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// script は1本のマイグレーションスクリプト。
// ファイル名形式は 000001_description.up.sql で、先頭の連番がバージョンになる。
type script struct {
	// version はスクリプトのバージョン番号。
	version int
	// name はファイル名から連番と拡張子を除いた説明部分。
	name string
	// path はfsys内のファイルパス。
	path string
}

// Run は未適用のマイグレーションをバージョン順に適用する。
// 各スクリプトは1トランザクションで実行され、適用のたびにバージョンが記録される。
func Run(db *sql.DB, fsys fs.FS, dir string, logger *zap.Logger) error {
	applied, err := appliedVersions(db)
	if err != nil {
		return fmt.Errorf("適用済みバージョンの取得に失敗: %w", err)
	}

	scripts, err := collectScripts(fsys, dir)
	if err != nil {
		return fmt.Errorf("マイグレーションスクリプトの収集に失敗: %w", err)
	}

	for _, sc := range scripts {
		if applied[sc.version] {
			continue
		}
		if err := apply(db, fsys, sc); err != nil {
			return fmt.Errorf("マイグレーション %06d_%s の適用に失敗: %w", sc.version, sc.name, err)
		}
		logger.Info("マイグレーションを適用",
			zap.Int("version", sc.version),
			zap.String("name", sc.name),
		)
	}

	return nil
}

// appliedVersions は管理テーブルを（なければ作成して）読み、
// 適用済みのバージョン集合を返す。
func appliedVersions(db *sql.DB) (map[int]bool, error) {
	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME NOT NULL DEFAULT (datetime('now'))
		)
	`); err != nil {
		return nil, err
	}

	rows, err := db.Query("SELECT version FROM schema_migrations")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	applied := make(map[int]bool)
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		applied[v] = true
	}
	return applied, rows.Err()
}

// collectScripts はディレクトリから *.up.sql を集めてバージョン昇順に並べる。
// 連番として読めないファイル名は対象外。
func collectScripts(fsys fs.FS, dir string) ([]script, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, err
	}

	var scripts []script
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".up.sql") {
			continue
		}
		prefix, rest, found := strings.Cut(entry.Name(), "_")
		if !found {
			continue
		}
		version, err := strconv.Atoi(prefix)
		if err != nil {
			continue
		}
		scripts = append(scripts, script{
			version: version,
			name:    strings.TrimSuffix(rest, ".up.sql"),
			path:    path.Join(dir, entry.Name()),
		})
	}

	sort.Slice(scripts, func(i, j int) bool {
		return scripts[i].version < scripts[j].version
	})
	return scripts, nil
}

// apply は1本のスクリプトをトランザクション内で実行してバージョンを記録する。
func apply(db *sql.DB, fsys fs.FS, sc script) error {
	content, err := fs.ReadFile(fsys, sc.path)
	if err != nil {
		return fmt.Errorf("スクリプトの読み込みに失敗: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("トランザクション開始に失敗: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.Exec(string(content)); err != nil {
		return fmt.Errorf("SQL実行に失敗: %w", err)
	}
	if _, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES (?)", sc.version); err != nil {
		return fmt.Errorf("バージョン記録に失敗: %w", err)
	}
	return tx.Commit()
}
