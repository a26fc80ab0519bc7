package catalog

import "github.com/shopspring/decimal"

// Category は商品カテゴリ。サブカテゴリを入れ子で保持する。
type Category struct {
	// ID はカテゴリの一意識別子。
	ID string `json:"id"`
	// Name はカテゴリ名。
	Name string `json:"name"`
	// Description はカテゴリの説明。
	Description string `json:"description"`
	// ParentID は親カテゴリのID。最上位カテゴリでは空。
	ParentID string `json:"parent_id"`
	// Subcategories はサブカテゴリの一覧。
	Subcategories []Category `json:"subcategories"`
}

// CategoryInput はカテゴリの作成・更新リクエスト。
type CategoryInput struct {
	// Name はカテゴリ名。
	Name string `json:"name"`
	// Description はカテゴリの説明。
	Description string `json:"description"`
	// ParentID は親カテゴリのID。サブカテゴリとして作成する場合に指定する。
	ParentID string `json:"parent_id"`
}

// Product は商品。
type Product struct {
	// ID は商品の一意識別子。
	ID string `json:"id"`
	// SellerID は出品者のID。
	SellerID string `json:"seller_id"`
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

// ProductQuery は商品の閲覧・検索条件。
type ProductQuery struct {
	// Search は商品名の部分一致キーワード。
	Search string
	// CategoryID は絞り込むカテゴリのID。
	CategoryID string
	// Page は取得するページ番号（1始まり）。
	Page int
	// Limit は1ページあたりの件数。
	Limit int
}
