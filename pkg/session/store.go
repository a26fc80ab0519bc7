package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Store はセッションをJSONファイルに永続化するストア。
// トークンとユーザー情報は常にまとめて書き込み、まとめて削除する。
// 書き込みを行うのはAPI Gatewayと認証フローのみ。
type Store struct {
	// path はセッションファイルのパス。
	path string

	// mu はcurrentへのアクセスを保護する。
	mu sync.RWMutex
	// current はメモリ上のセッション。未認証時はnil。
	current *Session
}

// NewStore は指定パスのセッションストアを生成する。
// ファイルが存在する場合は読み込み、存在しない場合は未認証状態で開始する。
func NewStore(path string) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("セッションファイルのパスが指定されていません")
	}

	s := &Store{path: path}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Current は現在のセッションのコピーを返す。未認証時はnil。
func (s *Store) Current() *Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return nil
	}
	copied := *s.current
	return &copied
}

// Token は現在のトークンを返す。未認証時は空文字列。
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return ""
	}
	return s.current.Token
}

// Save はセッションを保存する。トークンとユーザー情報を
// ひとつのJSONドキュメントとして書き込む。
func (s *Store) Save(sess Session) error {
	if sess.Token == "" {
		return fmt.Errorf("空のトークンは保存できません")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = &sess
	return s.persistLocked()
}

// Clear はセッションを破棄する。
// メモリ上の状態とファイルの両方を削除する。
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = nil
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("セッションファイルの削除に失敗: %w", err)
	}
	return nil
}

// load はセッションファイルを読み込む。
// ファイルが存在しない、または空の場合は未認証状態とする。
func (s *Store) load() error {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("セッションファイルの読み込みに失敗: %w", err)
	}
	if len(b) == 0 {
		return nil
	}

	var decoded Session
	if err := json.Unmarshal(b, &decoded); err != nil {
		return fmt.Errorf("セッションファイルの解析に失敗: %w", err)
	}
	// トークンのないセッションは未認証として扱う
	if decoded.Token == "" {
		return nil
	}

	s.current = &decoded
	return nil
}

// persistLocked はメモリ上のセッションをファイルに書き込む。
// 呼び出し元がmuをロックしていること。
func (s *Store) persistLocked() error {
	b, err := json.MarshalIndent(s.current, "", "  ")
	if err != nil {
		return fmt.Errorf("セッションのシリアライズに失敗: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("セッションディレクトリの作成に失敗: %w", err)
	}
	// トークンを含むため所有者のみ読み書き可能とする
	if err := os.WriteFile(s.path, b, 0o600); err != nil {
		return fmt.Errorf("セッションファイルの書き込みに失敗: %w", err)
	}
	return nil
}
