package mockapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/nao1215/marketcli/pkg/middleware"
	"github.com/nao1215/marketcli/pkg/session"
)

// registerRequest はユーザー登録リクエストのJSON構造。
type registerRequest struct {
	// Name は表示名。
	Name string `json:"name" binding:"required"`
	// Email はメールアドレス。
	Email string `json:"email" binding:"required"`
	// Password はパスワード。
	Password string `json:"password" binding:"required"`
	// Phone は電話番号。
	Phone string `json:"phone"`
	// Role はロール（admin/seller/buyer/courier）。
	Role string `json:"role" binding:"required"`
}

// loginRequest はログインリクエストのJSON構造。
type loginRequest struct {
	// Email はメールアドレス。
	Email string `json:"email" binding:"required"`
	// Password はパスワード。
	Password string `json:"password" binding:"required"`
}

// tokenResponse は認証成功レスポンスのJSON構造。
type tokenResponse struct {
	// Token はJWTトークン。
	Token string `json:"token"`
}

// handleRegister はユーザー登録を処理する。
func (s *Server) handleRegister() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req registerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "名前・メールアドレス・パスワード・ロールは必須です")
			return
		}
		if _, err := session.ParseRole(req.Role); err != nil {
			respondError(c, http.StatusBadRequest, "不明なロールです")
			return
		}
		if _, err := s.store.userByEmail(req.Email); err == nil {
			respondError(c, http.StatusConflict, "このメールアドレスは既に登録されています")
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			s.logger.Error("パスワードのハッシュ化に失敗", zap.Error(err))
			respondError(c, http.StatusInternalServerError, "登録処理に失敗しました")
			return
		}

		// 出品者は管理者の承認を待つ。他のロールは即時有効。
		approved := req.Role != "seller"
		userID, err := s.store.createUser(req.Role, req.Name, req.Email, req.Phone, string(hash), approved)
		if err != nil {
			s.logger.Error("ユーザーの登録に失敗", zap.Error(err))
			respondError(c, http.StatusInternalServerError, "登録処理に失敗しました")
			return
		}

		token, err := middleware.GenerateToken(s.jwtSecret, userID, req.Role, req.Email, req.Name, req.Phone)
		if err != nil {
			s.logger.Error("トークンの生成に失敗", zap.Error(err))
			respondError(c, http.StatusInternalServerError, "登録処理に失敗しました")
			return
		}
		respondData(c, http.StatusCreated, tokenResponse{Token: token})
	}
}

// handleLogin はログインを処理する。
func (s *Server) handleLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "メールアドレスとパスワードは必須です")
			return
		}

		user, err := s.store.userByEmail(req.Email)
		if errors.Is(err, errNotFound) {
			respondError(c, http.StatusUnauthorized, "メールアドレスまたはパスワードが違います")
			return
		}
		if err != nil {
			s.logger.Error("ユーザーの取得に失敗", zap.Error(err))
			respondError(c, http.StatusInternalServerError, "ログイン処理に失敗しました")
			return
		}
		if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
			respondError(c, http.StatusUnauthorized, "メールアドレスまたはパスワードが違います")
			return
		}

		token, err := middleware.GenerateToken(s.jwtSecret, user.ID, user.Role, user.Email, user.Name, user.Phone)
		if err != nil {
			s.logger.Error("トークンの生成に失敗", zap.Error(err))
			respondError(c, http.StatusInternalServerError, "ログイン処理に失敗しました")
			return
		}
		respondData(c, http.StatusOK, tokenResponse{Token: token})
	}
}
