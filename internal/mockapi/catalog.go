package mockapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// categoryResponse はカテゴリのJSONレスポンス構造。サブカテゴリを入れ子にする。
type categoryResponse struct {
	// ID はカテゴリの一意識別子。
	ID string `json:"id"`
	// Name はカテゴリ名。
	Name string `json:"name"`
	// Description はカテゴリの説明。
	Description string `json:"description"`
	// ParentID は親カテゴリのID。最上位は空文字。
	ParentID string `json:"parent_id"`
	// Subcategories は直下のサブカテゴリ。
	Subcategories []categoryResponse `json:"subcategories"`
}

// categoryRequest はカテゴリ作成・更新リクエストのJSON構造。
type categoryRequest struct {
	// Name はカテゴリ名。
	Name string `json:"name" binding:"required"`
	// Description はカテゴリの説明。
	Description string `json:"description"`
	// ParentID は親カテゴリのID。
	ParentID string `json:"parent_id"`
}

// productResponse は商品のJSONレスポンス構造。
type productResponse struct {
	// ID は商品の一意識別子。
	ID string `json:"id"`
	// SellerID は出品者のユーザーID。
	SellerID string `json:"seller_id"`
	// SellerName は出品者名。
	SellerName string `json:"seller_name"`
	// CategoryID はカテゴリID。
	CategoryID string `json:"category_id"`
	// Name は商品名。
	Name string `json:"name"`
	// Description は商品の説明。
	Description string `json:"description"`
	// Price は価格（10進文字列）。
	Price string `json:"price"`
	// Stock は在庫数。
	Stock int `json:"stock"`
	// ImageURL は商品画像のURL。
	ImageURL string `json:"image_url"`
	// CreatedAt は出品日時。
	CreatedAt string `json:"created_at"`
}

func toProductResponse(p productRow) productResponse {
	return productResponse{
		ID:          p.ID,
		SellerID:    p.SellerID,
		SellerName:  p.SellerName,
		CategoryID:  p.CategoryID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		ImageURL:    p.ImageURL,
		CreatedAt:   p.CreatedAt,
	}
}

// buildCategoryTree はフラットなカテゴリ一覧を親子関係の木に組み立てる。
func buildCategoryTree(rows []categoryRow) []categoryResponse {
	children := map[string][]categoryRow{}
	for _, row := range rows {
		children[row.ParentID] = append(children[row.ParentID], row)
	}

	var build func(parentID string) []categoryResponse
	build = func(parentID string) []categoryResponse {
		nodes := []categoryResponse{}
		for _, row := range children[parentID] {
			nodes = append(nodes, categoryResponse{
				ID:            row.ID,
				Name:          row.Name,
				Description:   row.Description,
				ParentID:      row.ParentID,
				Subcategories: build(row.ID),
			})
		}
		return nodes
	}
	return build("")
}

// handleListCategories はカテゴリ一覧の取得を処理する。
func (s *Server) handleListCategories() gin.HandlerFunc {
	return func(c *gin.Context) {
		rows, err := s.store.listCategories()
		if err != nil {
			s.logger.Error("カテゴリ一覧の取得に失敗", zap.Error(err))
			respondError(c, http.StatusInternalServerError, "カテゴリ一覧の取得に失敗しました")
			return
		}
		respondData(c, http.StatusOK, buildCategoryTree(rows))
	}
}

// handleGetCategory はカテゴリ詳細の取得を処理する。
func (s *Server) handleGetCategory() gin.HandlerFunc {
	return func(c *gin.Context) {
		row, err := s.store.categoryByID(c.Param("id"))
		if errors.Is(err, errNotFound) {
			respondError(c, http.StatusNotFound, "カテゴリが見つかりません")
			return
		}
		if err != nil {
			s.logger.Error("カテゴリの取得に失敗", zap.Error(err))
			respondError(c, http.StatusInternalServerError, "カテゴリの取得に失敗しました")
			return
		}
		respondData(c, http.StatusOK, categoryResponse{
			ID: row.ID, Name: row.Name, Description: row.Description, ParentID: row.ParentID,
			Subcategories: []categoryResponse{},
		})
	}
}

// handleCreateCategory はカテゴリ作成を処理する。管理者のみ。
func (s *Server) handleCreateCategory() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req categoryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "カテゴリ名は必須です")
			return
		}

		id, err := s.store.createCategory(req.Name, req.Description, req.ParentID)
		if err != nil {
			s.logger.Error("カテゴリの作成に失敗", zap.Error(err))
			respondError(c, http.StatusInternalServerError, "カテゴリの作成に失敗しました")
			return
		}
		respondData(c, http.StatusCreated, categoryResponse{
			ID: id, Name: req.Name, Description: req.Description, ParentID: req.ParentID,
			Subcategories: []categoryResponse{},
		})
	}
}

// handleUpdateCategory はカテゴリ更新を処理する。管理者のみ。
func (s *Server) handleUpdateCategory() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req categoryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "カテゴリ名は必須です")
			return
		}

		id := c.Param("id")
		if err := s.store.updateCategory(id, req.Name, req.Description, req.ParentID); err != nil {
			if errors.Is(err, errNotFound) {
				respondError(c, http.StatusNotFound, "カテゴリが見つかりません")
				return
			}
			s.logger.Error("カテゴリの更新に失敗", zap.Error(err))
			respondError(c, http.StatusInternalServerError, "カテゴリの更新に失敗しました")
			return
		}
		respondData(c, http.StatusOK, categoryResponse{
			ID: id, Name: req.Name, Description: req.Description, ParentID: req.ParentID,
			Subcategories: []categoryResponse{},
		})
	}
}

// handleDeleteCategory はカテゴリ削除を処理する。管理者のみ。
func (s *Server) handleDeleteCategory() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := s.store.deleteCategory(c.Param("id")); err != nil {
			if errors.Is(err, errNotFound) {
				respondError(c, http.StatusNotFound, "カテゴリが見つかりません")
				return
			}
			s.logger.Error("カテゴリの削除に失敗", zap.Error(err))
			respondError(c, http.StatusInternalServerError, "カテゴリの削除に失敗しました")
			return
		}
		respondData(c, http.StatusOK, gin.H{"message": "カテゴリを削除しました"})
	}
}

// handleSearchProducts は商品の検索・閲覧を処理する。
func (s *Server) handleSearchProducts() gin.HandlerFunc {
	return func(c *gin.Context) {
		page, limit := pageParams(c)
		rows, total, err := s.store.searchProducts(
			c.Query("search"), c.Query("category_id"), "", limit, (page-1)*limit,
		)
		if err != nil {
			s.logger.Error("商品の検索に失敗", zap.Error(err))
			respondError(c, http.StatusInternalServerError, "商品の検索に失敗しました")
			return
		}

		products := make([]productResponse, 0, len(rows))
		for _, row := range rows {
			products = append(products, toProductResponse(row))
		}
		respondList(c, products, page, limit, total)
	}
}

// handleGetProduct は商品詳細の取得を処理する。
func (s *Server) handleGetProduct() gin.HandlerFunc {
	return func(c *gin.Context) {
		row, err := s.store.productByID(c.Param("id"))
		if errors.Is(err, errNotFound) {
			respondError(c, http.StatusNotFound, "商品が見つかりません")
			return
		}
		if err != nil {
			s.logger.Error("商品の取得に失敗", zap.Error(err))
			respondError(c, http.StatusInternalServerError, "商品の取得に失敗しました")
			return
		}
		respondData(c, http.StatusOK, toProductResponse(row))
	}
}
