package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// testSecret はテスト用のJWTシークレット。
const testSecret = "test-secret-key-for-unit-tests"

// TestGenerateToken はGenerateToken関数を検証する。
func TestGenerateToken(t *testing.T) {
	t.Parallel()

	t.Run("ロールクレーム付きのJWTトークンを生成できること", func(t *testing.T) {
		t.Parallel()

		tokenStr, err := GenerateToken(testSecret, "user-123", "buyer", "buyer@example.com", "購入者", "090-0000-0000")
		if err != nil {
			t.Fatalf("GenerateToken()でエラーが発生: %v", err)
		}
		if tokenStr == "" {
			t.Fatal("GenerateToken()が空文字列を返した")
		}

		// トークンをパースして検証する
		claims := &TokenClaims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(_ *jwt.Token) (any, error) {
			return []byte(testSecret), nil
		})
		if err != nil {
			t.Fatalf("トークンのパースに失敗: %v", err)
		}
		if !token.Valid {
			t.Fatal("トークンが無効")
		}

		if claims.Subject != "user-123" {
			t.Errorf("Subject = %q, want %q", claims.Subject, "user-123")
		}
		if claims.Role != "buyer" {
			t.Errorf("Role = %q, want %q", claims.Role, "buyer")
		}
		if claims.Email != "buyer@example.com" {
			t.Errorf("Email = %q, want %q", claims.Email, "buyer@example.com")
		}
		if claims.Name != "購入者" {
			t.Errorf("Name = %q, want %q", claims.Name, "購入者")
		}
		if claims.Issuer != "marketcli-mockapi" {
			t.Errorf("Issuer = %q, want %q", claims.Issuer, "marketcli-mockapi")
		}
	})

	t.Run("トークンの有効期限が24時間後であること", func(t *testing.T) {
		t.Parallel()

		before := time.Now()
		tokenStr, err := GenerateToken(testSecret, "user-exp", "seller", "exp@example.com", "出品者", "")
		if err != nil {
			t.Fatalf("GenerateToken()でエラーが発生: %v", err)
		}

		claims := &TokenClaims{}
		_, err = jwt.ParseWithClaims(tokenStr, claims, func(_ *jwt.Token) (any, error) {
			return []byte(testSecret), nil
		})
		if err != nil {
			t.Fatalf("トークンのパースに失敗: %v", err)
		}

		expectedExpiry := before.Add(24 * time.Hour)
		// 有効期限が24時間後の前後1分以内であること
		if claims.ExpiresAt.Time.Before(expectedExpiry.Add(-1 * time.Minute)) {
			t.Errorf("ExpiresAt = %v, 期待する最小値: %v", claims.ExpiresAt.Time, expectedExpiry.Add(-1*time.Minute))
		}
		if claims.ExpiresAt.Time.After(expectedExpiry.Add(1 * time.Minute)) {
			t.Errorf("ExpiresAt = %v, 期待する最大値: %v", claims.ExpiresAt.Time, expectedExpiry.Add(1*time.Minute))
		}
	})
}

// newAuthedRouter はJWTAuthを適用したテスト用ルーターを生成するヘルパー関数。
func newAuthedRouter(extra ...gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	handlers := append([]gin.HandlerFunc{JWTAuth(testSecret)}, extra...)
	router.GET("/protected", append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": UserID(c), "role": UserRole(c)})
	})...)
	return router
}

// TestJWTAuth はJWTAuthミドルウェアを検証する。
func TestJWTAuth(t *testing.T) {
	t.Parallel()

	t.Run("有効なトークンでユーザーIDとロールが設定されること", func(t *testing.T) {
		t.Parallel()

		tokenStr, err := GenerateToken(testSecret, "user-1", "courier", "c@example.com", "配達員", "")
		if err != nil {
			t.Fatalf("GenerateToken()でエラーが発生: %v", err)
		}

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+tokenStr)
		w := httptest.NewRecorder()
		newAuthedRouter().ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("ステータスコード = %d, want %d", w.Code, http.StatusOK)
		}
		var body map[string]string
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("レスポンスのパースに失敗: %v", err)
		}
		if body["user_id"] != "user-1" {
			t.Errorf("user_id = %q, want %q", body["user_id"], "user-1")
		}
		if body["role"] != "courier" {
			t.Errorf("role = %q, want %q", body["role"], "courier")
		}
	})

	t.Run("Authorizationヘッダーが無いと401が返ること", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		w := httptest.NewRecorder()
		newAuthedRouter().ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("ステータスコード = %d, want %d", w.Code, http.StatusUnauthorized)
		}
	})

	t.Run("Bearer形式でないヘッダーで401が返ること", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Basic abcdef")
		w := httptest.NewRecorder()
		newAuthedRouter().ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("ステータスコード = %d, want %d", w.Code, http.StatusUnauthorized)
		}
	})

	t.Run("別のシークレットで署名されたトークンで401が返ること", func(t *testing.T) {
		t.Parallel()

		tokenStr, err := GenerateToken("other-secret", "user-1", "buyer", "b@example.com", "購入者", "")
		if err != nil {
			t.Fatalf("GenerateToken()でエラーが発生: %v", err)
		}

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+tokenStr)
		w := httptest.NewRecorder()
		newAuthedRouter().ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("ステータスコード = %d, want %d", w.Code, http.StatusUnauthorized)
		}
	})
}

// TestRequireRole はRequireRoleミドルウェアを検証する。
func TestRequireRole(t *testing.T) {
	t.Parallel()

	t.Run("許可されたロールのユーザーが通過できること", func(t *testing.T) {
		t.Parallel()

		tokenStr, err := GenerateToken(testSecret, "user-1", "admin", "a@example.com", "管理者", "")
		if err != nil {
			t.Fatalf("GenerateToken()でエラーが発生: %v", err)
		}

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+tokenStr)
		w := httptest.NewRecorder()
		newAuthedRouter(RequireRole("admin")).ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("ステータスコード = %d, want %d", w.Code, http.StatusOK)
		}
	})

	t.Run("許可されていないロールのユーザーに403が返ること", func(t *testing.T) {
		t.Parallel()

		tokenStr, err := GenerateToken(testSecret, "user-1", "buyer", "b@example.com", "購入者", "")
		if err != nil {
			t.Fatalf("GenerateToken()でエラーが発生: %v", err)
		}

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+tokenStr)
		w := httptest.NewRecorder()
		newAuthedRouter(RequireRole("admin")).ServeHTTP(w, req)

		if w.Code != http.StatusForbidden {
			t.Fatalf("ステータスコード = %d, want %d", w.Code, http.StatusForbidden)
		}
		var body map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("レスポンスのパースに失敗: %v", err)
		}
		if success, ok := body["success"].(bool); !ok || success {
			t.Errorf("success = %v, want false", body["success"])
		}
	})
}
