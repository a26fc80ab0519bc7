// Package authgate は画面単位のロールゲート判定を提供する。
//
// 現在のセッションと許可ロール集合から、画面の描画可否を決定する
// 純粋関数のみを含む。ビジネスロジックは持たない。
package authgate

import "github.com/nao1215/marketcli/pkg/session"

// Decision はロールゲートの判定結果。
type Decision int

const (
	// DecisionAllow は画面の描画を許可する。
	DecisionAllow Decision = iota
	// DecisionRedirectLogin はセッションが存在しないため、ログイン画面へ誘導する。
	DecisionRedirectLogin
	// DecisionForbidden はセッションは存在するがロールが許可されていないため、
	// 403エラー画面を表示する。
	DecisionForbidden
)

// String は判定結果の文字列表現を返す。
func (d Decision) String() string {
	switch d {
	case DecisionAllow:
		return "allow"
	case DecisionRedirectLogin:
		return "redirect-login"
	case DecisionForbidden:
		return "forbidden"
	default:
		return "unknown"
	}
}

// Check はセッションと許可ロール集合から描画可否を判定する。
// セッションがなければログイン画面へ、ロールが許可集合に含まれなければ403へ。
// allowedが空の場合は認証済みであれば許可する。
func Check(sess *session.Session, allowed ...session.Role) Decision {
	if sess == nil || sess.Token == "" {
		return DecisionRedirectLogin
	}
	if len(allowed) == 0 {
		return DecisionAllow
	}
	for _, role := range allowed {
		if sess.Identity.Role == role {
			return DecisionAllow
		}
	}
	return DecisionForbidden
}
