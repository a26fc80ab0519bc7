package mockapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/nao1215/marketcli/pkg/middleware"
)

// cartItemResponse はカート内の1商品のJSONレスポンス構造。
type cartItemResponse struct {
	// ProductID は商品ID。
	ProductID string `json:"product_id"`
	// Name は商品名。
	Name string `json:"name"`
	// Quantity は数量。
	Quantity int `json:"quantity"`
	// UnitPrice は単価（10進文字列）。
	UnitPrice string `json:"unit_price"`
	// Subtotal は小計（10進文字列）。
	Subtotal string `json:"subtotal"`
}

// cartResponse はカートのJSONレスポンス構造。
type cartResponse struct {
	// Items はカート内の商品。
	Items []cartItemResponse `json:"items"`
	// Total は合計金額（10進文字列）。
	Total string `json:"total"`
}

// cartItemRequest はカート追加・更新リクエストのJSON構造。
type cartItemRequest struct {
	// ProductID は商品ID。
	ProductID string `json:"product_id"`
	// Quantity は数量。
	Quantity int `json:"quantity" binding:"required"`
}

// orderResponse は注文のJSONレスポンス構造。
type orderResponse struct {
	// ID は注文の一意識別子。
	ID string `json:"id"`
	// BuyerName は購入者名。
	BuyerName string `json:"buyer_name"`
	// Status は注文ステータス。
	Status string `json:"status"`
	// Total は合計金額（10進文字列）。
	Total string `json:"total"`
	// Address は配達先住所。
	Address string `json:"address"`
	// Items は注文明細。
	Items []orderItemResponse `json:"items"`
	// CreatedAt は注文日時。
	CreatedAt string `json:"created_at"`
}

// orderItemResponse は注文明細のJSONレスポンス構造。
type orderItemResponse struct {
	// ProductID は商品ID。
	ProductID string `json:"product_id"`
	// Name は注文時点の商品名。
	Name string `json:"name"`
	// Quantity は数量。
	Quantity int `json:"quantity"`
	// UnitPrice は注文時点の単価（10進文字列）。
	UnitPrice string `json:"unit_price"`
}

// placeOrderRequest は注文確定リクエストのJSON構造。
type placeOrderRequest struct {
	// Address は配達先住所。
	Address string `json:"address" binding:"required"`
}

// buildCartResponse はカート行から合計金額付きのレスポンスを組み立てる。
func buildCartResponse(items []cartItemRow) (cartResponse, error) {
	resp := cartResponse{Items: make([]cartItemResponse, 0, len(items))}
	total := decimal.Zero
	for _, item := range items {
		price, err := decimal.NewFromString(item.UnitPrice)
		if err != nil {
			return cartResponse{}, err
		}
		subtotal := price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		total = total.Add(subtotal)
		resp.Items = append(resp.Items, cartItemResponse{
			ProductID: item.ProductID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Subtotal:  subtotal.String(),
		})
	}
	resp.Total = total.String()
	return resp, nil
}

// respondCart は現在のカート内容を封筒で返す共通処理。
func (s *Server) respondCart(c *gin.Context, userID string) {
	items, err := s.store.cartItems(userID)
	if err != nil {
		s.logger.Error("カートの取得に失敗", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "カートの取得に失敗しました")
		return
	}
	resp, err := buildCartResponse(items)
	if err != nil {
		s.logger.Error("カートの集計に失敗", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "カートの集計に失敗しました")
		return
	}
	respondData(c, http.StatusOK, resp)
}

// handleGetCart はカート取得を処理する。
func (s *Server) handleGetCart() gin.HandlerFunc {
	return func(c *gin.Context) {
		s.respondCart(c, middleware.UserID(c))
	}
}

// handleAddCartItem はカートへの商品追加を処理する。
func (s *Server) handleAddCartItem() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req cartItemRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.ProductID == "" || req.Quantity < 1 {
			respondError(c, http.StatusBadRequest, "商品IDと1以上の数量を指定してください")
			return
		}

		if _, err := s.store.productByID(req.ProductID); err != nil {
			if errors.Is(err, errNotFound) {
				respondError(c, http.StatusNotFound, "商品が見つかりません")
				return
			}
			s.logger.Error("商品の取得に失敗", zap.Error(err))
			respondError(c, http.StatusInternalServerError, "カートへの追加に失敗しました")
			return
		}

		userID := middleware.UserID(c)
		if err := s.store.upsertCartItem(userID, req.ProductID, req.Quantity); err != nil {
			s.logger.Error("カートへの追加に失敗", zap.Error(err))
			respondError(c, http.StatusInternalServerError, "カートへの追加に失敗しました")
			return
		}
		s.respondCart(c, userID)
	}
}

// handleUpdateCartItem はカート内の数量変更を処理する。
func (s *Server) handleUpdateCartItem() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req cartItemRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.Quantity < 1 {
			respondError(c, http.StatusBadRequest, "1以上の数量を指定してください")
			return
		}

		userID := middleware.UserID(c)
		if err := s.store.setCartItemQuantity(userID, c.Param("product_id"), req.Quantity); err != nil {
			if errors.Is(err, errNotFound) {
				respondError(c, http.StatusNotFound, "カートに該当商品がありません")
				return
			}
			s.logger.Error("カートの更新に失敗", zap.Error(err))
			respondError(c, http.StatusInternalServerError, "カートの更新に失敗しました")
			return
		}
		s.respondCart(c, userID)
	}
}

// handleRemoveCartItem はカートからの商品削除を処理する。
func (s *Server) handleRemoveCartItem() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.UserID(c)
		if err := s.store.removeCartItem(userID, c.Param("product_id")); err != nil {
			if errors.Is(err, errNotFound) {
				respondError(c, http.StatusNotFound, "カートに該当商品がありません")
				return
			}
			s.logger.Error("カートからの削除に失敗", zap.Error(err))
			respondError(c, http.StatusInternalServerError, "カートからの削除に失敗しました")
			return
		}
		s.respondCart(c, userID)
	}
}

// handlePlaceOrder はカートの内容での注文確定を処理する。
func (s *Server) handlePlaceOrder() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req placeOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "配達先住所は必須です")
			return
		}

		userID := middleware.UserID(c)
		orderID, err := s.store.createOrder(userID, req.Address)
		if errors.Is(err, errEmptyCart) {
			respondError(c, http.StatusConflict, "カートが空です")
			return
		}
		if err != nil {
			s.logger.Error("注文の作成に失敗", zap.Error(err))
			respondError(c, http.StatusInternalServerError, "注文の作成に失敗しました")
			return
		}

		order, err := s.orderWithItems(orderID, userID)
		if err != nil {
			s.logger.Error("注文の再取得に失敗", zap.Error(err))
			respondError(c, http.StatusInternalServerError, "注文の取得に失敗しました")
			return
		}
		respondData(c, http.StatusCreated, order)
	}
}

// handleListBuyerOrders は購入者の注文履歴の取得を処理する。
func (s *Server) handleListBuyerOrders() gin.HandlerFunc {
	return func(c *gin.Context) {
		page, limit := pageParams(c)
		rows, total, err := s.store.listOrders(middleware.UserID(c), "", "", limit, (page-1)*limit)
		if err != nil {
			s.logger.Error("注文履歴の取得に失敗", zap.Error(err))
			respondError(c, http.StatusInternalServerError, "注文履歴の取得に失敗しました")
			return
		}

		orders := make([]orderResponse, 0, len(rows))
		for _, row := range rows {
			order, err := s.toOrderResponse(row)
			if err != nil {
				s.logger.Error("注文明細の取得に失敗", zap.Error(err))
				respondError(c, http.StatusInternalServerError, "注文履歴の取得に失敗しました")
				return
			}
			orders = append(orders, order)
		}
		respondList(c, orders, page, limit, total)
	}
}

// orderWithItems は注文を明細付きで取得する。buyerIDで所有者を確認する。
func (s *Server) orderWithItems(orderID, buyerID string) (orderResponse, error) {
	row, err := s.store.orderByID(orderID, buyerID)
	if err != nil {
		return orderResponse{}, err
	}
	return s.toOrderResponse(row)
}

// toOrderResponse は注文行を明細付きのレスポンスに変換する。
func (s *Server) toOrderResponse(row orderRow) (orderResponse, error) {
	items, err := s.store.orderItems(row.ID)
	if err != nil {
		return orderResponse{}, err
	}

	resp := orderResponse{
		ID:        row.ID,
		BuyerName: row.BuyerName,
		Status:    row.Status,
		Total:     row.Total,
		Address:   row.Address,
		Items:     make([]orderItemResponse, 0, len(items)),
		CreatedAt: row.CreatedAt,
	}
	for _, item := range items {
		resp.Items = append(resp.Items, orderItemResponse{
			ProductID: item.ProductID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}
	return resp, nil
}
