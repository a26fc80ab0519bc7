package buyer

import "github.com/shopspring/decimal"

// CartItem はカート内の1商品。
type CartItem struct {
	// ProductID は商品のID。
	ProductID string `json:"product_id"`
	// Name は商品名。
	Name string `json:"name"`
	// Quantity は数量。
	Quantity int `json:"quantity"`
	// UnitPrice は単価。
	UnitPrice decimal.Decimal `json:"unit_price"`
	// Subtotal は小計（単価×数量）。
	Subtotal decimal.Decimal `json:"subtotal"`
}

// Cart はカートの内容。
type Cart struct {
	// Items はカート内の商品一覧。
	Items []CartItem `json:"items"`
	// Total は合計金額。
	Total decimal.Decimal `json:"total"`
}

// CartItemInput はカートへの商品追加・数量変更リクエスト。
type CartItemInput struct {
	// ProductID は商品のID。
	ProductID string `json:"product_id"`
	// Quantity は数量。
	Quantity int `json:"quantity"`
}

// OrderItem は注文内の1商品。
type OrderItem struct {
	// ProductID は商品のID。
	ProductID string `json:"product_id"`
	// Name は商品名。
	Name string `json:"name"`
	// Quantity は数量。
	Quantity int `json:"quantity"`
	// UnitPrice は注文時点の単価。
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// Order は注文。
type Order struct {
	// ID は注文の一意識別子。
	ID string `json:"id"`
	// Status は注文ステータス（pending/shipped/delivered/cancelled）。
	Status string `json:"status"`
	// Total は合計金額。
	Total decimal.Decimal `json:"total"`
	// Address は配送先住所。
	Address string `json:"address"`
	// Items は注文内の商品一覧。
	Items []OrderItem `json:"items"`
	// CreatedAt は注文日時。
	CreatedAt string `json:"created_at"`
}

// OrderInput は注文作成リクエスト。
type OrderInput struct {
	// Address は配送先住所。
	Address string `json:"address"`
}
