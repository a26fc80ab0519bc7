package mockapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/nao1215/marketcli/pkg/middleware"
)

// productRequest は商品の出品・更新リクエストのJSON構造。
type productRequest struct {
	// CategoryID はカテゴリID。
	CategoryID string `json:"category_id" binding:"required"`
	// Name は商品名。
	Name string `json:"name" binding:"required"`
	// Description は商品の説明。
	Description string `json:"description"`
	// Price は価格（10進文字列）。
	Price string `json:"price" binding:"required"`
	// Stock は在庫数。
	Stock int `json:"stock"`
}

// sellerAnalyticsResponse は出品者の売上サマリーのJSONレスポンス構造。
type sellerAnalyticsResponse struct {
	// TotalSales は総売上金額（10進文字列）。
	TotalSales string `json:"total_sales"`
	// OrderCount は販売件数。
	OrderCount int `json:"order_count"`
	// ProductCount は出品中の商品数。
	ProductCount int `json:"product_count"`
}

// parsePrice は価格文字列を検証する。負の値は受け付けない。
func parsePrice(raw string) (decimal.Decimal, error) {
	price, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, err
	}
	if price.IsNegative() {
		return decimal.Zero, errors.New("価格が負")
	}
	return price, nil
}

// handleListSellerProducts は出品者自身の商品一覧の取得を処理する。
func (s *Server) handleListSellerProducts() gin.HandlerFunc {
	return func(c *gin.Context) {
		page, limit := pageParams(c)
		rows, total, err := s.store.searchProducts("", "", middleware.UserID(c), limit, (page-1)*limit)
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

// handleCreateProduct は商品の出品を処理する。
func (s *Server) handleCreateProduct() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req productRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "カテゴリ・商品名・価格は必須です")
			return
		}
		price, err := parsePrice(req.Price)
		if err != nil {
			respondError(c, http.StatusBadRequest, "価格は0以上の数値で指定してください")
			return
		}

		sellerID := middleware.UserID(c)
		id, err := s.store.createProduct(sellerID, req.CategoryID, req.Name, req.Description, price.String(), req.Stock)
		if err != nil {
			s.logger.Error("商品の登録に失敗", zap.Error(err))
			respondError(c, http.StatusInternalServerError, "商品の登録に失敗しました")
			return
		}

		row, err := s.store.productByID(id)
		if err != nil {
			s.logger.Error("商品の再取得に失敗", zap.Error(err))
			respondError(c, http.StatusInternalServerError, "商品の取得に失敗しました")
			return
		}
		respondData(c, http.StatusCreated, toProductResponse(row))
	}
}

// handleUpdateProduct は出品者自身の商品更新を処理する。
// 他の出品者の商品は存在しない扱いで404を返す。
func (s *Server) handleUpdateProduct() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req productRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "カテゴリ・商品名・価格は必須です")
			return
		}
		price, err := parsePrice(req.Price)
		if err != nil {
			respondError(c, http.StatusBadRequest, "価格は0以上の数値で指定してください")
			return
		}

		id := c.Param("id")
		sellerID := middleware.UserID(c)
		if err := s.store.updateProduct(id, sellerID, req.CategoryID, req.Name, req.Description, price.String(), req.Stock); err != nil {
			if errors.Is(err, errNotFound) {
				respondError(c, http.StatusNotFound, "商品が見つかりません")
				return
			}
			s.logger.Error("商品の更新に失敗", zap.Error(err))
			respondError(c, http.StatusInternalServerError, "商品の更新に失敗しました")
			return
		}

		row, err := s.store.productByID(id)
		if err != nil {
			s.logger.Error("商品の再取得に失敗", zap.Error(err))
			respondError(c, http.StatusInternalServerError, "商品の取得に失敗しました")
			return
		}
		respondData(c, http.StatusOK, toProductResponse(row))
	}
}

// handleDeleteProduct は出品者自身の商品削除を処理する。
func (s *Server) handleDeleteProduct() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := s.store.deleteProduct(c.Param("id"), middleware.UserID(c)); err != nil {
			if errors.Is(err, errNotFound) {
				respondError(c, http.StatusNotFound, "商品が見つかりません")
				return
			}
			s.logger.Error("商品の削除に失敗", zap.Error(err))
			respondError(c, http.StatusInternalServerError, "商品の削除に失敗しました")
			return
		}
		respondData(c, http.StatusOK, gin.H{"message": "商品を取り下げました"})
	}
}

// handleListSellerOrders は出品者の商品を含む注文一覧の取得を処理する。
func (s *Server) handleListSellerOrders() gin.HandlerFunc {
	return func(c *gin.Context) {
		page, limit := pageParams(c)
		rows, total, err := s.store.listOrders("", "", middleware.UserID(c), limit, (page-1)*limit)
		if err != nil {
			s.logger.Error("受注一覧の取得に失敗", zap.Error(err))
			respondError(c, http.StatusInternalServerError, "受注一覧の取得に失敗しました")
			return
		}

		orders := make([]orderResponse, 0, len(rows))
		for _, row := range rows {
			order, err := s.toOrderResponse(row)
			if err != nil {
				s.logger.Error("注文明細の取得に失敗", zap.Error(err))
				respondError(c, http.StatusInternalServerError, "受注一覧の取得に失敗しました")
				return
			}
			orders = append(orders, order)
		}
		respondList(c, orders, page, limit, total)
	}
}

// handleSellerAnalytics は出品者の売上サマリーの取得を処理する。
func (s *Server) handleSellerAnalytics() gin.HandlerFunc {
	return func(c *gin.Context) {
		totalSales, orderCount, productCount, err := s.store.sellerAnalytics(middleware.UserID(c))
		if err != nil {
			s.logger.Error("売上サマリーの集計に失敗", zap.Error(err))
			respondError(c, http.StatusInternalServerError, "売上サマリーの集計に失敗しました")
			return
		}
		respondData(c, http.StatusOK, sellerAnalyticsResponse{
			TotalSales:   totalSales.String(),
			OrderCount:   orderCount,
			ProductCount: productCount,
		})
	}
}
