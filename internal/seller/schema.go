package seller

import "github.com/shopspring/decimal"

// Product は出品中の商品。
type Product struct {
	// ID は商品の一意識別子。
	ID string `json:"id"`
	// CategoryID は所属カテゴリのID。
	CategoryID string `json:"category_id"`
	// Name は商品名。
	Name string `json:"name"`
	// Description は商品説明。
	Description string `json:"description"`
	// Price は販売価格。
	Price decimal.Decimal `json:"price"`
	// Stock は在庫数。
	Stock int `json:"stock"`
	// ImageURL は商品画像のURL。
	ImageURL string `json:"image_url"`
}

// ProductInput は商品の作成・更新リクエスト。
type ProductInput struct {
	// CategoryID は所属カテゴリのID。
	CategoryID string `json:"category_id"`
	// Name は商品名。
	Name string `json:"name"`
	// Description は商品説明。
	Description string `json:"description"`
	// Price は販売価格。
	Price decimal.Decimal `json:"price"`
	// Stock は在庫数。
	Stock int `json:"stock"`
}

// Order は自分の商品を含む注文。
type Order struct {
	// ID は注文の一意識別子。
	ID string `json:"id"`
	// BuyerName は購入者名。
	BuyerName string `json:"buyer_name"`
	// Status は注文ステータス。
	Status string `json:"status"`
	// Total は自分の商品分の合計金額。
	Total decimal.Decimal `json:"total"`
	// CreatedAt は注文日時。
	CreatedAt string `json:"created_at"`
}

// Analytics は出品者向けの売上サマリー。
type Analytics struct {
	// TotalSales は累計売上金額。
	TotalSales decimal.Decimal `json:"total_sales"`
	// OrderCount は注文件数。
	OrderCount int `json:"order_count"`
	// ProductCount は出品中の商品数。
	ProductCount int `json:"product_count"`
}
