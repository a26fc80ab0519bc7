// Package courier は配達員向けエンドポイントへのAPI呼び出しを提供するパッケージ。
package courier

import "github.com/shopspring/decimal"

// Order は配達員に割り当てられた注文情報。
type Order struct {
	// ID は注文ID。
	ID string `json:"id"`
	// BuyerName は購入者名。
	BuyerName string `json:"buyer_name"`
	// Address は配達先住所。
	Address string `json:"address"`
	// Status は注文ステータス。
	Status string `json:"status"`
	// Total は注文合計金額。
	Total decimal.Decimal `json:"total"`
	// CreatedAt は注文作成日時。
	CreatedAt string `json:"created_at"`
}

// StatusUpdate は注文ステータス更新リクエスト。
type StatusUpdate struct {
	// Status は更新後のステータス。
	Status string `json:"status"`
}

// IssueInput は配達トラブル報告リクエスト。
type IssueInput struct {
	// OrderID は対象の注文ID。
	OrderID string `json:"order_id"`
	// Description はトラブルの内容。
	Description string `json:"description"`
}

// Issue は報告済みの配達トラブル。
type Issue struct {
	// ID はトラブル報告ID。
	ID string `json:"id"`
	// OrderID は対象の注文ID。
	OrderID string `json:"order_id"`
	// Description はトラブルの内容。
	Description string `json:"description"`
	// CreatedAt は報告日時。
	CreatedAt string `json:"created_at"`
}

// Analytics は配達員の実績情報。
type Analytics struct {
	// DeliveredCount は配達完了件数。
	DeliveredCount int `json:"delivered_count"`
	// PendingCount は配達中件数。
	PendingCount int `json:"pending_count"`
	// IssueCount はトラブル報告件数。
	IssueCount int `json:"issue_count"`
}
