// Package account は認証とプロフィールのリソース呼び出し関数を提供する。
//
// 各関数はひとつのエンドポイントへの薄い変換であり、
// Gatewayが生成したエラーを加工せずそのまま呼び出し元へ伝播する。
// セッションの書き込み（ログイン・登録・プロフィール更新・退会）はこのパッケージと
// Gatewayのみが行う。
package account

import (
	"context"
	"io"

	"github.com/nao1215/marketcli/pkg/apiclient"
	"github.com/nao1215/marketcli/pkg/session"
)

// Login は認証を行い、成功時にセッションを保存して返す。
// 必須項目の検証はネットワーク呼び出しの前に行う。
func Login(ctx context.Context, client *apiclient.Client, creds Credentials) (*session.Session, error) {
	if creds.Email == "" || creds.Password == "" {
		return nil, validationError("メールアドレスとパスワードを入力してください")
	}

	var resp tokenResponse
	if err := client.PostJSON(ctx, "/api/v1/auth/login", creds, &resp); err != nil {
		return nil, err
	}
	return saveSession(client, resp.Token)
}

// Register はユーザー登録を行い、成功時にセッションを保存して返す。
func Register(ctx context.Context, client *apiclient.Client, reg Registration) (*session.Session, error) {
	if reg.Name == "" || reg.Email == "" || reg.Password == "" {
		return nil, validationError("名前・メールアドレス・パスワードを入力してください")
	}
	if _, err := session.ParseRole(reg.Role); err != nil {
		return nil, validationError("ロールはadmin・seller・buyer・courierのいずれかを指定してください")
	}

	var resp tokenResponse
	if err := client.PostJSON(ctx, "/api/v1/auth/register", reg, &resp); err != nil {
		return nil, err
	}
	return saveSession(client, resp.Token)
}

// Logout はセッションを破棄する。サーバーへの通知は行わない。
func Logout(client *apiclient.Client) error {
	return client.Sessions().Clear()
}

// GetProfile は現在のユーザーのプロフィールを取得する。
func GetProfile(ctx context.Context, client *apiclient.Client) (Profile, error) {
	var profile Profile
	if err := client.GetJSON(ctx, "/api/v1/profile", nil, &profile); err != nil {
		return Profile{}, err
	}
	return profile, nil
}

// UpdateProfile はプロフィールを更新し、セッションのユーザー情報も更新する。
func UpdateProfile(ctx context.Context, client *apiclient.Client, update ProfileUpdate) (Profile, error) {
	if update.Name == "" {
		return Profile{}, validationError("名前を入力してください")
	}

	var profile Profile
	if err := client.PutJSON(ctx, "/api/v1/profile", update, &profile); err != nil {
		return Profile{}, err
	}

	// トークンは据え置き、ユーザー情報のみ更新して保存し直す
	if current := client.Sessions().Current(); current != nil {
		current.Identity.Name = profile.Name
		current.Identity.Phone = profile.Phone
		if err := client.Sessions().Save(*current); err != nil {
			return Profile{}, err
		}
	}
	return profile, nil
}

// DeleteAccount は退会処理を行い、セッションを破棄する。
func DeleteAccount(ctx context.Context, client *apiclient.Client) error {
	if err := client.DeleteJSON(ctx, "/api/v1/profile", nil); err != nil {
		return err
	}
	return client.Sessions().Clear()
}

// UploadAvatar はアバター画像をアップロードする。
func UploadAvatar(ctx context.Context, client *apiclient.Client, filename string, file io.Reader) (Profile, error) {
	var profile Profile
	if err := client.Upload(ctx, "/api/v1/profile/avatar", "avatar", filename, file, &profile); err != nil {
		return Profile{}, err
	}
	return profile, nil
}

// saveSession はトークンからユーザー情報を復元し、セッションを保存する。
func saveSession(client *apiclient.Client, token string) (*session.Session, error) {
	if token == "" {
		return nil, &apiclient.Error{
			Kind:    apiclient.KindUnknown,
			Code:    0,
			Message: "サーバーがトークンを返しませんでした",
			Fatal:   false,
		}
	}

	identity, err := session.IdentityFromToken(token)
	if err != nil {
		return nil, &apiclient.Error{
			Kind:    apiclient.KindUnknown,
			Code:    0,
			Message: "トークンの内容が不正です",
			Fatal:   false,
		}
	}

	sess := session.Session{Token: token, Identity: identity}
	if err := client.Sessions().Save(sess); err != nil {
		return nil, &apiclient.Error{
			Kind:    apiclient.KindUnknown,
			Code:    0,
			Message: "セッションの保存に失敗しました",
			Fatal:   true,
		}
	}
	return &sess, nil
}

// validationError はクライアント側検証エラーを生成する。
// サーバー拒否と同じバナー機構で表示されるよう、回復可能なエラーとして扱う。
func validationError(message string) *apiclient.Error {
	return &apiclient.Error{
		Kind:    apiclient.KindBadRequest,
		Code:    0,
		Message: message,
		Fatal:   false,
	}
}
