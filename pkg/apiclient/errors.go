package apiclient

import (
	"fmt"
	"net/http"
)

// Kind はエラー分類を表す判別子。
// 網羅的なswitchで扱えるよう、タグ付きバリアントとして定義する。
type Kind int

const (
	// KindOffline はネットワーク到達不能を表す。
	KindOffline Kind = iota
	// KindBadRequest はHTTP 400を表す。
	KindBadRequest
	// KindUnauthorized はHTTP 401を表す。セッションは破棄済み。
	KindUnauthorized
	// KindForbidden はHTTP 403を表す。
	KindForbidden
	// KindNotFound はHTTP 404を表す。
	KindNotFound
	// KindConflict はHTTP 409を表す。
	KindConflict
	// KindServerError はHTTP 500を表す。
	KindServerError
	// KindUnknown は上記以外の失敗を表す。
	KindUnknown
)

// String はエラー分類の文字列表現を返す。
func (k Kind) String() string {
	switch k {
	case KindOffline:
		return "offline"
	case KindBadRequest:
		return "bad-request"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not-found"
	case KindConflict:
		return "conflict"
	case KindServerError:
		return "server-error"
	default:
		return "unknown"
	}
}

// Error はGatewayが生成する正規化済みエラー。
// 失敗経路はすべてこの型のただ一つの値に収束し、
// 呼び出し元が生の通信エラーを目にすることはない。
type Error struct {
	// Kind はエラー分類。
	Kind Kind
	// Code はHTTPステータスコード。通信断の場合は0。
	Code int
	// Message は利用者に提示するメッセージ。
	// サーバーがメッセージを返した場合はそれを、なければ汎用文言を使用する。
	Message string
	// Fatal は画面全体をエラー表示に切り替えるべき致命的エラーかどうか。
	// falseの場合はインラインバナーでの表示にとどめる。
	Fatal bool
}

// Error はerrorインターフェースを実装する。
func (e *Error) Error() string {
	return fmt.Sprintf("%s (code=%d): %s", e.Kind, e.Code, e.Message)
}

// Classify はHTTPステータスコードとサーバーメッセージの有無から
// エラー分類と致命フラグを決定する純粋関数。
// 分類規則はここにのみ存在し、Gateway以外からも単体テスト可能。
//
//   - 400はサーバーメッセージがない場合のみ致命（クライアント側のバグを示唆）
//   - 500は常に致命（バックエンド障害）
//   - 401は常に致命（セッション破棄を伴う）
//   - それ以外は回復可能としてインライン表示に委ねる
func Classify(status int, hasServerMessage bool) (Kind, bool) {
	switch status {
	case http.StatusBadRequest:
		return KindBadRequest, !hasServerMessage
	case http.StatusUnauthorized:
		return KindUnauthorized, true
	case http.StatusForbidden:
		return KindForbidden, false
	case http.StatusNotFound:
		return KindNotFound, false
	case http.StatusConflict:
		return KindConflict, false
	case http.StatusInternalServerError:
		return KindServerError, true
	default:
		return KindUnknown, false
	}
}

// fallbackMessage はサーバーメッセージがない場合の汎用文言を返す。
func fallbackMessage(kind Kind) string {
	switch kind {
	case KindOffline:
		return "ネットワークに接続できません"
	case KindBadRequest:
		return "リクエストが不正です"
	case KindUnauthorized:
		return "認証の有効期限が切れました。再度ログインしてください"
	case KindForbidden:
		return "この操作を行う権限がありません"
	case KindNotFound:
		return "対象が見つかりません"
	case KindConflict:
		return "他の操作と競合しました"
	case KindServerError:
		return "サーバーでエラーが発生しました"
	default:
		return "予期しないエラーが発生しました"
	}
}

// newOfflineError は通信断を表すエラーを生成する。
func newOfflineError() *Error {
	return &Error{
		Kind:    KindOffline,
		Code:    0,
		Message: fallbackMessage(KindOffline),
		Fatal:   true,
	}
}

// newStatusError はHTTPステータスコードからエラーを生成する。
func newStatusError(status int, serverMessage string) *Error {
	kind, fatal := Classify(status, serverMessage != "")
	message := serverMessage
	if message == "" {
		message = fallbackMessage(kind)
	}
	return &Error{
		Kind:    kind,
		Code:    status,
		Message: message,
		Fatal:   fatal,
	}
}
