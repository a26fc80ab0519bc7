package mockapi

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nao1215/marketcli/pkg/middleware"
)

// profileResponse はプロフィールのJSONレスポンス構造。
type profileResponse struct {
	// Name は表示名。
	Name string `json:"name"`
	// Email はメールアドレス。
	Email string `json:"email"`
	// Phone は電話番号。
	Phone string `json:"phone"`
	// Role はロール。
	Role string `json:"role"`
	// AvatarURL はアバター画像のURL。
	AvatarURL string `json:"avatar_url"`
}

// updateProfileRequest はプロフィール更新リクエストのJSON構造。
type updateProfileRequest struct {
	// Name は表示名。
	Name string `json:"name" binding:"required"`
	// Phone は電話番号。
	Phone string `json:"phone"`
}

func toProfileResponse(u userRow) profileResponse {
	return profileResponse{
		Name:      u.Name,
		Email:     u.Email,
		Phone:     u.Phone,
		Role:      u.Role,
		AvatarURL: u.AvatarURL,
	}
}

// handleGetProfile はプロフィール取得を処理する。
func (s *Server) handleGetProfile() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := s.store.userByID(middleware.UserID(c))
		if errors.Is(err, errNotFound) {
			respondError(c, http.StatusNotFound, "ユーザーが見つかりません")
			return
		}
		if err != nil {
			s.logger.Error("プロフィールの取得に失敗", zap.Error(err))
			respondError(c, http.StatusInternalServerError, "プロフィールの取得に失敗しました")
			return
		}
		respondData(c, http.StatusOK, toProfileResponse(user))
	}
}

// handleUpdateProfile はプロフィール更新を処理する。
func (s *Server) handleUpdateProfile() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req updateProfileRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "名前は必須です")
			return
		}

		userID := middleware.UserID(c)
		if err := s.store.updateUser(userID, req.Name, req.Phone); err != nil {
			if errors.Is(err, errNotFound) {
				respondError(c, http.StatusNotFound, "ユーザーが見つかりません")
				return
			}
			s.logger.Error("プロフィールの更新に失敗", zap.Error(err))
			respondError(c, http.StatusInternalServerError, "プロフィールの更新に失敗しました")
			return
		}

		user, err := s.store.userByID(userID)
		if err != nil {
			s.logger.Error("プロフィールの再取得に失敗", zap.Error(err))
			respondError(c, http.StatusInternalServerError, "プロフィールの取得に失敗しました")
			return
		}
		respondData(c, http.StatusOK, toProfileResponse(user))
	}
}

// handleDeleteProfile はアカウント削除を処理する。
func (s *Server) handleDeleteProfile() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := s.store.deleteUser(middleware.UserID(c)); err != nil {
			if errors.Is(err, errNotFound) {
				respondError(c, http.StatusNotFound, "ユーザーが見つかりません")
				return
			}
			s.logger.Error("アカウントの削除に失敗", zap.Error(err))
			respondError(c, http.StatusInternalServerError, "アカウントの削除に失敗しました")
			return
		}
		respondData(c, http.StatusOK, gin.H{"message": "アカウントを削除しました"})
	}
}

// handleUploadAvatar はアバター画像のアップロードを処理する。
// 受け取ったファイルは保存せず、ファイル名から導出したURLを記録する。
func (s *Server) handleUploadAvatar() gin.HandlerFunc {
	return func(c *gin.Context) {
		file, err := c.FormFile("avatar")
		if err != nil {
			respondError(c, http.StatusBadRequest, "avatarフィールドにファイルを添付してください")
			return
		}

		userID := middleware.UserID(c)
		avatarURL := fmt.Sprintf("/static/avatars/%s/%s", userID, file.Filename)
		if err := s.store.updateAvatar(userID, avatarURL); err != nil {
			if errors.Is(err, errNotFound) {
				respondError(c, http.StatusNotFound, "ユーザーが見つかりません")
				return
			}
			s.logger.Error("アバターの更新に失敗", zap.Error(err))
			respondError(c, http.StatusInternalServerError, "アバターの更新に失敗しました")
			return
		}

		user, err := s.store.userByID(userID)
		if err != nil {
			s.logger.Error("プロフィールの再取得に失敗", zap.Error(err))
			respondError(c, http.StatusInternalServerError, "プロフィールの取得に失敗しました")
			return
		}
		respondData(c, http.StatusOK, toProfileResponse(user))
	}
}
