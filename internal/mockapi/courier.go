package mockapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nao1215/marketcli/pkg/middleware"
)

// courierOrderResponse は配達員向けの注文JSONレスポンス構造。
type courierOrderResponse struct {
	// ID は注文の一意識別子。
	ID string `json:"id"`
	// BuyerName は購入者名。
	BuyerName string `json:"buyer_name"`
	// Address は配達先住所。
	Address string `json:"address"`
	// Status は注文ステータス。
	Status string `json:"status"`
	// Total は合計金額（10進文字列）。
	Total string `json:"total"`
	// CreatedAt は注文日時。
	CreatedAt string `json:"created_at"`
}

// statusUpdateRequest は注文ステータス更新リクエストのJSON構造。
type statusUpdateRequest struct {
	// Status は更新後のステータス。
	Status string `json:"status" binding:"required"`
}

// issueRequest は配達トラブル報告リクエストのJSON構造。
type issueRequest struct {
	// OrderID は対象の注文ID。
	OrderID string `json:"order_id" binding:"required"`
	// Description はトラブルの内容。
	Description string `json:"description" binding:"required"`
}

// issueResponse は配達トラブル報告のJSONレスポンス構造。
type issueResponse struct {
	// ID はトラブル報告の一意識別子。
	ID string `json:"id"`
	// OrderID は対象の注文ID。
	OrderID string `json:"order_id"`
	// Description はトラブルの内容。
	Description string `json:"description"`
}

// courierAnalyticsResponse は配達実績のJSONレスポンス構造。
type courierAnalyticsResponse struct {
	// DeliveredCount は配達完了件数。
	DeliveredCount int `json:"delivered_count"`
	// PendingCount は配達中件数。
	PendingCount int `json:"pending_count"`
	// IssueCount はトラブル報告件数。
	IssueCount int `json:"issue_count"`
}

func toCourierOrderResponse(row orderRow) courierOrderResponse {
	return courierOrderResponse{
		ID:        row.ID,
		BuyerName: row.BuyerName,
		Address:   row.Address,
		Status:    row.Status,
		Total:     row.Total,
		CreatedAt: row.CreatedAt,
	}
}

// handleListCourierOrders は配達員に割り当てられた注文一覧の取得を処理する。
func (s *Server) handleListCourierOrders() gin.HandlerFunc {
	return func(c *gin.Context) {
		page, limit := pageParams(c)
		rows, total, err := s.store.listOrders("", middleware.UserID(c), "", limit, (page-1)*limit)
		if err != nil {
			s.logger.Error("担当注文一覧の取得に失敗", zap.Error(err))
			respondError(c, http.StatusInternalServerError, "担当注文一覧の取得に失敗しました")
			return
		}

		orders := make([]courierOrderResponse, 0, len(rows))
		for _, row := range rows {
			orders = append(orders, toCourierOrderResponse(row))
		}
		respondList(c, orders, page, limit, total)
	}
}

// handleUpdateOrderStatus は担当注文のステータス更新を処理する。
// 担当外の注文は存在しない扱いで404を返す。
func (s *Server) handleUpdateOrderStatus() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req statusUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "更新後のステータスは必須です")
			return
		}

		orderID := c.Param("id")
		courierID := middleware.UserID(c)
		if err := s.store.updateOrderStatus(orderID, courierID, req.Status); err != nil {
			if errors.Is(err, errNotFound) {
				respondError(c, http.StatusNotFound, "担当している注文が見つかりません")
				return
			}
			s.logger.Error("注文ステータスの更新に失敗", zap.Error(err))
			respondError(c, http.StatusInternalServerError, "注文ステータスの更新に失敗しました")
			return
		}

		rows, _, err := s.store.listOrders("", courierID, "", 100, 0)
		if err != nil {
			s.logger.Error("注文の再取得に失敗", zap.Error(err))
			respondError(c, http.StatusInternalServerError, "注文の取得に失敗しました")
			return
		}
		for _, row := range rows {
			if row.ID == orderID {
				respondData(c, http.StatusOK, toCourierOrderResponse(row))
				return
			}
		}
		respondError(c, http.StatusNotFound, "担当している注文が見つかりません")
	}
}

// handleReportIssue は配達トラブル報告の登録を処理する。
func (s *Server) handleReportIssue() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req issueRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "注文IDとトラブル内容は必須です")
			return
		}

		id, err := s.store.createIssue(middleware.UserID(c), req.OrderID, req.Description)
		if err != nil {
			s.logger.Error("トラブル報告の登録に失敗", zap.Error(err))
			respondError(c, http.StatusInternalServerError, "トラブル報告の登録に失敗しました")
			return
		}
		respondData(c, http.StatusCreated, issueResponse{
			ID:          id,
			OrderID:     req.OrderID,
			Description: req.Description,
		})
	}
}

// handleCourierAnalytics は配達実績サマリーの取得を処理する。
func (s *Server) handleCourierAnalytics() gin.HandlerFunc {
	return func(c *gin.Context) {
		delivered, pending, issues, err := s.store.courierAnalytics(middleware.UserID(c))
		if err != nil {
			s.logger.Error("配達実績の集計に失敗", zap.Error(err))
			respondError(c, http.StatusInternalServerError, "配達実績の集計に失敗しました")
			return
		}
		respondData(c, http.StatusOK, courierAnalyticsResponse{
			DeliveredCount: delivered,
			PendingCount:   pending,
			IssueCount:     issues,
		})
	}
}
