// Package admin は管理者向けエンドポイントへのAPI呼び出しを提供するパッケージ。
package admin

import "github.com/shopspring/decimal"

// User は管理画面で参照するユーザー情報。管理者・配達員・購入者の一覧で共用する。
type User struct {
	// ID はユーザーID。
	ID string `json:"id"`
	// Name はユーザー名。
	Name string `json:"name"`
	// Email はメールアドレス。
	Email string `json:"email"`
	// Phone は電話番号。
	Phone string `json:"phone"`
	// CreatedAt は登録日時。
	CreatedAt string `json:"created_at"`
}

// Seller は出品者情報。承認状態を持つ。
type Seller struct {
	// ID はユーザーID。
	ID string `json:"id"`
	// Name はユーザー名。
	Name string `json:"name"`
	// Email はメールアドレス。
	Email string `json:"email"`
	// Approved は承認済みかどうか。
	Approved bool `json:"approved"`
	// CreatedAt は登録日時。
	CreatedAt string `json:"created_at"`
}

// Order は全体注文一覧の1件。
type Order struct {
	// ID は注文ID。
	ID string `json:"id"`
	// BuyerName は購入者名。
	BuyerName string `json:"buyer_name"`
	// Status は注文ステータス。
	Status string `json:"status"`
	// Total は注文合計金額。
	Total decimal.Decimal `json:"total"`
	// CreatedAt は注文作成日時。
	CreatedAt string `json:"created_at"`
}

// Product は全体商品一覧の1件。
type Product struct {
	// ID は商品ID。
	ID string `json:"id"`
	// SellerName は出品者名。
	SellerName string `json:"seller_name"`
	// Name は商品名。
	Name string `json:"name"`
	// Price は価格。
	Price decimal.Decimal `json:"price"`
	// Stock は在庫数。
	Stock int `json:"stock"`
}

// Complaint は購入者からの苦情。
type Complaint struct {
	// ID は苦情ID。
	ID string `json:"id"`
	// BuyerName は申告者名。
	BuyerName string `json:"buyer_name"`
	// OrderID は対象の注文ID。
	OrderID string `json:"order_id"`
	// Description は苦情の内容。
	Description string `json:"description"`
	// Status は対応状況。
	Status string `json:"status"`
	// CreatedAt は申告日時。
	CreatedAt string `json:"created_at"`
}

// Analytics はマーケット全体のサマリー情報。
type Analytics struct {
	// TotalSales は総売上金額。
	TotalSales decimal.Decimal `json:"total_sales"`
	// OrderCount は総注文件数。
	OrderCount int `json:"order_count"`
	// UserCount は総ユーザー数。
	UserCount int `json:"user_count"`
	// SellerCount は出品者数。
	SellerCount int `json:"seller_count"`
}
