package account

// Credentials はログインリクエスト。
type Credentials struct {
	// Email はメールアドレス。
	Email string `json:"email"`
	// Password はパスワード。
	Password string `json:"password"`
}

// Registration はユーザー登録リクエスト。
type Registration struct {
	// Name は表示名。
	Name string `json:"name"`
	// Email はメールアドレス。
	Email string `json:"email"`
	// Password はパスワード。
	Password string `json:"password"`
	// Phone は電話番号。
	Phone string `json:"phone"`
	// Role は登録するロール。
	Role string `json:"role"`
}

// tokenResponse は認証成功時のレスポンス。
type tokenResponse struct {
	// Token は発行されたJWTトークン。
	Token string `json:"token"`
}

// Profile はプロフィール情報。
type Profile struct {
	// Name は表示名。
	Name string `json:"name"`
	// Email はメールアドレス。
	Email string `json:"email"`
	// Phone は電話番号。
	Phone string `json:"phone"`
	// Role はロール。
	Role string `json:"role"`
	// AvatarURL はアバター画像のURL。
	AvatarURL string `json:"avatar_url"`
}

// ProfileUpdate はプロフィール更新リクエスト。
type ProfileUpdate struct {
	// Name は表示名。
	Name string `json:"name"`
	// Phone は電話番号。
	Phone string `json:"phone"`
}
