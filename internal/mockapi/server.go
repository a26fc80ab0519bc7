package mockapi

import (
	"database/sql"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/nao1215/marketcli/pkg/middleware"
)

// Server はモックAPIサーバーのHTTPサーバー。
type Server struct {
	// router はGinのHTTPルーター。
	router *gin.Engine
	// port はサーバーのリッスンポート。
	port string
	// store はSQLiteへのクエリ実行オブジェクト。
	store *store
	// db はSQLiteデータベース接続。
	db *sql.DB
	// jwtSecret はJWT署名用の秘密鍵。
	jwtSecret string
	// logger は構造化ログ。
	logger *zap.Logger
}

// NewServer は新しいモックAPIサーバーを生成する。
// SQLiteデータベースの初期化とスキーマ作成、デモデータの投入を行う。
func NewServer(port, dbPath, jwtSecret string, logger *zap.Logger) (*Server, error) {
	sqlDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("データベース接続に失敗: %w", err)
	}
	// modernc.org/sqliteは接続ごとに独立したインメモリDBを持つため直列化する。
	sqlDB.SetMaxOpenConns(1)

	if err := initSchema(sqlDB, logger); err != nil {
		return nil, fmt.Errorf("スキーマ初期化に失敗: %w", err)
	}

	st := &store{db: sqlDB}
	if err := seed(st); err != nil {
		return nil, fmt.Errorf("デモデータの投入に失敗: %w", err)
	}

	router := gin.New()
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.RequestLogger(logger))

	s := &Server{
		router:    router,
		port:      port,
		store:     st,
		db:        sqlDB,
		jwtSecret: jwtSecret,
		logger:    logger,
	}
	s.setupRoutes()

	return s, nil
}

// Run はHTTPサーバーを起動する。
func (s *Server) Run() error {
	return s.router.Run(fmt.Sprintf(":%s", s.port))
}

// Close はデータベース接続を閉じる。
func (s *Server) Close() error {
	return s.db.Close()
}

// Handler はHTTPハンドラを返す。テストからhttptestに載せるために使用する。
func (s *Server) Handler() http.Handler {
	return s.router
}

// setupRoutes はAPIルーティングを設定する。
func (s *Server) setupRoutes() {
	api := s.router.Group("/api/v1")

	// 認証不要
	auth := api.Group("/auth")
	{
		// ユーザー登録
		auth.POST("/register", s.handleRegister())
		// ログイン
		auth.POST("/login", s.handleLogin())
	}

	authed := api.Group("")
	authed.Use(middleware.JWTAuth(s.jwtSecret))
	{
		// プロフィール
		authed.GET("/profile", s.handleGetProfile())
		authed.PUT("/profile", s.handleUpdateProfile())
		authed.DELETE("/profile", s.handleDeleteProfile())
		authed.POST("/profile/avatar", s.handleUploadAvatar())

		// カタログ（閲覧は全ロール）
		authed.GET("/categories", s.handleListCategories())
		authed.GET("/categories/:id", s.handleGetCategory())
		authed.GET("/products", s.handleSearchProducts())
		authed.GET("/products/:id", s.handleGetProduct())

		// カテゴリの編集は管理者のみ
		adminCatalog := authed.Group("/categories", middleware.RequireRole("admin"))
		{
			adminCatalog.POST("", s.handleCreateCategory())
			adminCatalog.PUT("/:id", s.handleUpdateCategory())
			adminCatalog.DELETE("/:id", s.handleDeleteCategory())
		}

		// 購入者
		buyer := authed.Group("", middleware.RequireRole("buyer"))
		{
			buyer.GET("/cart", s.handleGetCart())
			buyer.POST("/cart", s.handleAddCartItem())
			buyer.PUT("/cart/:product_id", s.handleUpdateCartItem())
			buyer.DELETE("/cart/:product_id", s.handleRemoveCartItem())
			buyer.POST("/orders", s.handlePlaceOrder())
			buyer.GET("/orders", s.handleListBuyerOrders())
		}

		// 出品者
		seller := authed.Group("/seller", middleware.RequireRole("seller"))
		{
			seller.GET("/products", s.handleListSellerProducts())
			seller.POST("/products", s.handleCreateProduct())
			seller.PUT("/products/:id", s.handleUpdateProduct())
			seller.DELETE("/products/:id", s.handleDeleteProduct())
			seller.GET("/orders", s.handleListSellerOrders())
			seller.GET("/analytics", s.handleSellerAnalytics())
		}

		// 配達員
		courier := authed.Group("/courier", middleware.RequireRole("courier"))
		{
			courier.GET("/orders", s.handleListCourierOrders())
			courier.PUT("/orders/:id/status", s.handleUpdateOrderStatus())
			courier.POST("/issues", s.handleReportIssue())
			courier.GET("/analytics", s.handleCourierAnalytics())
		}

		// 管理者
		admin := authed.Group("/admin", middleware.RequireRole("admin"))
		{
			admin.GET("/admins", s.handleListUsersByRole("admin"))
			admin.GET("/couriers", s.handleListUsersByRole("courier"))
			admin.GET("/buyers", s.handleListUsersByRole("buyer"))
			admin.GET("/sellers", s.handleListSellers(false))
			admin.GET("/sellers/pending", s.handleListSellers(true))
			admin.PUT("/sellers/:id/approve", s.handleApproveSeller())
			admin.GET("/orders", s.handleListAllOrders())
			admin.GET("/products", s.handleListAllProducts())
			admin.GET("/complaints", s.handleListComplaints())
			admin.GET("/analytics", s.handleMarketAnalytics())
		}
	}

	// ヘルスチェック
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "mockapi"})
	})
}

// respondData は成功レスポンスの封筒を返す。
func respondData(c *gin.Context, status int, data any) {
	c.JSON(status, gin.H{"success": true, "data": data})
}

// respondList はページネーション付きの成功レスポンスの封筒を返す。
func respondList(c *gin.Context, data any, page, limit, total int) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    data,
		"pagination": gin.H{
			"page":  page,
			"limit": limit,
			"total": total,
		},
	})
}

// respondError は失敗レスポンスの封筒を返す。
func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "message": message})
}

// pageParams はクエリ文字列からページ番号とページサイズを読み取る。
func pageParams(c *gin.Context) (page, limit int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err = strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}
