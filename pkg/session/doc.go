// Package session はクライアント側のセッション管理を提供する。
//
// 認証トークンとユーザー情報（ロール・メールアドレス等）を
// ひとつのJSONファイルに永続化する。書き込みはAPI Gatewayと
// 認証フローのみが行い、他のコンポーネントは参照専用として扱う。
package session
