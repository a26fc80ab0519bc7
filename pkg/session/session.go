package session

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Role はマーケットプレイス上のユーザーロールを表す。
type Role string

const (
	// RoleAdmin は管理者ロール。全コレクションの管理操作が可能。
	RoleAdmin Role = "admin"
	// RoleSeller は出品者ロール。自身の商品と注文を管理する。
	RoleSeller Role = "seller"
	// RoleBuyer は購入者ロール。商品の閲覧・カート・注文作成を行う。
	RoleBuyer Role = "buyer"
	// RoleCourier は配達員ロール。割り当てられた注文の配送を担当する。
	RoleCourier Role = "courier"
)

// ParseRole は文字列をRoleに変換する。
// 未知のロール文字列はエラーとして拒否する。
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleSeller, RoleBuyer, RoleCourier:
		return Role(s), nil
	default:
		return "", fmt.Errorf("未知のロールです: %q", s)
	}
}

// String はロールの文字列表現を返す。
func (r Role) String() string {
	return string(r)
}

// Identity はセッションに紐づくユーザー情報を表す。
type Identity struct {
	// Role はユーザーのロール。
	Role Role `json:"role"`
	// Email はユーザーのメールアドレス。
	Email string `json:"email"`
	// Name はユーザーの表示名。
	Name string `json:"name"`
	// Phone はユーザーの電話番号。
	Phone string `json:"phone"`
}

// Session は認証済みユーザーのセッションを表す。
// トークンが空でないことが「認証済み」の唯一の判定基準であり、
// 有効期限の検証は行わない（失効はAPI呼び出しの401で検出する）。
type Session struct {
	// Token はBearer認証に使用するJWTトークン。
	Token string `json:"token"`
	// Identity はユーザー情報。
	Identity Identity `json:"identity"`
}

// tokenClaims はサーバーが発行するJWTトークンのクレーム。
type tokenClaims struct {
	jwt.RegisteredClaims
	// Role はユーザーのロール。
	Role string `json:"role"`
	// Email はユーザーのメールアドレス。
	Email string `json:"email"`
	// Name はユーザーの表示名。
	Name string `json:"name"`
	// Phone はユーザーの電話番号。
	Phone string `json:"phone"`
}

// IdentityFromToken はJWTトークンのクレームからユーザー情報を復元する。
// クライアントは署名鍵を持たないため署名検証は行わない。
// トークンの真正性はサーバー側でのみ検証される。
func IdentityFromToken(token string) (Identity, error) {
	claims := &tokenClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return Identity{}, fmt.Errorf("トークンの解析に失敗: %w", err)
	}

	role, err := ParseRole(claims.Role)
	if err != nil {
		return Identity{}, fmt.Errorf("トークンのロールが不正: %w", err)
	}

	return Identity{
		Role:  role,
		Email: claims.Email,
		Name:  claims.Name,
		Phone: claims.Phone,
	}, nil
}
