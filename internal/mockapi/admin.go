package mockapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// adminUserResponse は管理画面向けのユーザーJSONレスポンス構造。
type adminUserResponse struct {
	// ID はユーザーの一意識別子。
	ID string `json:"id"`
	// Name は表示名。
	Name string `json:"name"`
	// Email はメールアドレス。
	Email string `json:"email"`
	// Phone は電話番号。
	Phone string `json:"phone"`
	// CreatedAt は登録日時。
	CreatedAt string `json:"created_at"`
}

// adminSellerResponse は管理画面向けの出品者JSONレスポンス構造。
type adminSellerResponse struct {
	// ID はユーザーの一意識別子。
	ID string `json:"id"`
	// Name は表示名。
	Name string `json:"name"`
	// Email はメールアドレス。
	Email string `json:"email"`
	// Approved は承認済みかどうか。
	Approved bool `json:"approved"`
	// CreatedAt は登録日時。
	CreatedAt string `json:"created_at"`
}

// complaintResponse は苦情のJSONレスポンス構造。
type complaintResponse struct {
	// ID は苦情の一意識別子。
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

// marketAnalyticsResponse はマーケット全体のサマリーJSONレスポンス構造。
type marketAnalyticsResponse struct {
	// TotalSales は総売上金額（10進文字列）。
	TotalSales string `json:"total_sales"`
	// OrderCount は総注文件数。
	OrderCount int `json:"order_count"`
	// UserCount は総ユーザー数。
	UserCount int `json:"user_count"`
	// SellerCount は出品者数。
	SellerCount int `json:"seller_count"`
}

func toAdminUserResponse(u userRow) adminUserResponse {
	return adminUserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Phone:     u.Phone,
		CreatedAt: u.CreatedAt,
	}
}

func toAdminSellerResponse(u userRow) adminSellerResponse {
	return adminSellerResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Approved:  u.Approved,
		CreatedAt: u.CreatedAt,
	}
}

// handleListUsersByRole は指定ロールのユーザー一覧の取得を処理する。
func (s *Server) handleListUsersByRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, limit := pageParams(c)
		rows, total, err := s.store.usersByRole(role, limit, (page-1)*limit)
		if err != nil {
			s.logger.Error("ユーザー一覧の取得に失敗", zap.String("role", role), zap.Error(err))
			respondError(c, http.StatusInternalServerError, "ユーザー一覧の取得に失敗しました")
			return
		}

		users := make([]adminUserResponse, 0, len(rows))
		for _, row := range rows {
			users = append(users, toAdminUserResponse(row))
		}
		respondList(c, users, page, limit, total)
	}
}

// handleListSellers は出品者一覧の取得を処理する。pendingOnlyで承認待ちに絞る。
func (s *Server) handleListSellers(pendingOnly bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, limit := pageParams(c)
		rows, total, err := s.store.sellers(pendingOnly, limit, (page-1)*limit)
		if err != nil {
			s.logger.Error("出品者一覧の取得に失敗", zap.Error(err))
			respondError(c, http.StatusInternalServerError, "出品者一覧の取得に失敗しました")
			return
		}

		sellers := make([]adminSellerResponse, 0, len(rows))
		for _, row := range rows {
			sellers = append(sellers, toAdminSellerResponse(row))
		}
		respondList(c, sellers, page, limit, total)
	}
}

// handleApproveSeller は出品者の承認を処理する。
func (s *Server) handleApproveSeller() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := s.store.approveSeller(c.Param("id"))
		if errors.Is(err, errNotFound) {
			respondError(c, http.StatusNotFound, "出品者が見つかりません")
			return
		}
		if err != nil {
			s.logger.Error("出品者の承認に失敗", zap.Error(err))
			respondError(c, http.StatusInternalServerError, "出品者の承認に失敗しました")
			return
		}
		respondData(c, http.StatusOK, toAdminSellerResponse(user))
	}
}

// handleListAllOrders は全注文一覧の取得を処理する。
func (s *Server) handleListAllOrders() gin.HandlerFunc {
	return func(c *gin.Context) {
		page, limit := pageParams(c)
		rows, total, err := s.store.listOrders("", "", "", limit, (page-1)*limit)
		if err != nil {
			s.logger.Error("注文一覧の取得に失敗", zap.Error(err))
			respondError(c, http.StatusInternalServerError, "注文一覧の取得に失敗しました")
			return
		}

		orders := make([]orderResponse, 0, len(rows))
		for _, row := range rows {
			order, err := s.toOrderResponse(row)
			if err != nil {
				s.logger.Error("注文明細の取得に失敗", zap.Error(err))
				respondError(c, http.StatusInternalServerError, "注文一覧の取得に失敗しました")
				return
			}
			orders = append(orders, order)
		}
		respondList(c, orders, page, limit, total)
	}
}

// handleListAllProducts は全商品一覧の取得を処理する。
func (s *Server) handleListAllProducts() gin.HandlerFunc {
	return func(c *gin.Context) {
		page, limit := pageParams(c)
		rows, total, err := s.store.searchProducts("", "", "", limit, (page-1)*limit)
		if err != nil {
			s.logger.Error("商品一覧の取得に失敗", zap.Error(err))
			respondError(c, http.StatusInternalServerError, "商品一覧の取得に失敗しました")
			return
		}

		products := make([]productResponse, 0, len(rows))
		for _, row := range rows {
			products = append(products, toProductResponse(row))
		}
		respondList(c, products, page, limit, total)
	}
}

// handleListComplaints は苦情一覧の取得を処理する。
func (s *Server) handleListComplaints() gin.HandlerFunc {
	return func(c *gin.Context) {
		page, limit := pageParams(c)
		rows, total, err := s.store.listComplaints(limit, (page-1)*limit)
		if err != nil {
			s.logger.Error("苦情一覧の取得に失敗", zap.Error(err))
			respondError(c, http.StatusInternalServerError, "苦情一覧の取得に失敗しました")
			return
		}

		complaints := make([]complaintResponse, 0, len(rows))
		for _, row := range rows {
			complaints = append(complaints, complaintResponse{
				ID:          row.ID,
				BuyerName:   row.BuyerName,
				OrderID:     row.OrderID,
				Description: row.Description,
				Status:      row.Status,
				CreatedAt:   row.CreatedAt,
			})
		}
		respondList(c, complaints, page, limit, total)
	}
}

// handleMarketAnalytics はマーケット全体のサマリー取得を処理する。
func (s *Server) handleMarketAnalytics() gin.HandlerFunc {
	return func(c *gin.Context) {
		totalSales, orderCount, userCount, sellerCount, err := s.store.marketAnalytics()
		if err != nil {
			s.logger.Error("サマリーの集計に失敗", zap.Error(err))
			respondError(c, http.StatusInternalServerError, "サマリーの集計に失敗しました")
			return
		}
		respondData(c, http.StatusOK, marketAnalyticsResponse{
			TotalSales:  totalSales.String(),
			OrderCount:  orderCount,
			UserCount:   userCount,
			SellerCount: sellerCount,
		})
	}
}
