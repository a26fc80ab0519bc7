package admin

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/nao1215/marketcli/pkg/apiclient"
	"github.com/nao1215/marketcli/pkg/session"
)

// newTestClient はテスト用のAPIクライアントを生成するヘルパー関数。
func newTestClient(t *testing.T, baseURL string) *apiclient.Client {
	t.Helper()

	store, err := session.NewStore(filepath.Join(t.TempDir(), "session.json"))
	if err != nil {
		t.Fatalf("セッションストアの作成に失敗: %v", err)
	}
	err = store.Save(session.Session{
		Token:    "test-token",
		Identity: session.Identity{Role: session.RoleAdmin},
	})
	if err != nil {
		t.Fatalf("テスト用セッションの保存に失敗: %v", err)
	}
	return apiclient.New(baseURL, store)
}

// TestListUsers はユーザー一覧系の関数を検証する。
func TestListUsers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		wantPath string
		call     func(ctx context.Context, client *apiclient.Client) ([]User, *apiclient.Pagination, error)
	}{
		{"管理者一覧", "/api/v1/admin/admins", func(ctx context.Context, c *apiclient.Client) ([]User, *apiclient.Pagination, error) {
			return ListAdmins(ctx, c, 1, 10)
		}},
		{"配達員一覧", "/api/v1/admin/couriers", func(ctx context.Context, c *apiclient.Client) ([]User, *apiclient.Pagination, error) {
			return ListCouriers(ctx, c, 1, 10)
		}},
		{"購入者一覧", "/api/v1/admin/buyers", func(ctx context.Context, c *apiclient.Client) ([]User, *apiclient.Pagination, error) {
			return ListBuyers(ctx, c, 1, 10)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name+"を取得できること", func(t *testing.T) {
			t.Parallel()

			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != tt.wantPath {
					t.Errorf("path = %q, want %q", r.URL.Path, tt.wantPath)
				}
				w.Header().Set("Content-Type", "application/json")
				fmt.Fprint(w, `{"success":true,"data":[
					{"id":"u1","name":"佐藤","email":"sato@example.com"}
				],"pagination":{"page":1,"limit":10,"total":1}}`)
			}))
			defer ts.Close()

			client := newTestClient(t, ts.URL)
			users, pagination, err := tt.call(context.Background(), client)
			if err != nil {
				t.Fatalf("一覧取得でエラーが発生: %v", err)
			}
			if len(users) != 1 || users[0].Name != "佐藤" {
				t.Errorf("users = %+v", users)
			}
			if pagination.Total != 1 {
				t.Errorf("Total = %d, want 1", pagination.Total)
			}
		})
	}
}

// TestListPendingSellers はListPendingSellers関数を検証する。
func TestListPendingSellers(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/admin/sellers/pending" {
			t.Errorf("path = %q, want %q", r.URL.Path, "/api/v1/admin/sellers/pending")
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"success":true,"data":[
			{"id":"s1","name":"田中商店","approved":false}
		],"pagination":{"page":1,"limit":10,"total":1}}`)
	}))
	defer ts.Close()

	client := newTestClient(t, ts.URL)
	sellers, _, err := ListPendingSellers(context.Background(), client, 1, 10)
	if err != nil {
		t.Fatalf("ListPendingSellers()でエラーが発生: %v", err)
	}

	if len(sellers) != 1 {
		t.Fatalf("len(sellers) = %d, want 1", len(sellers))
	}
	if sellers[0].Approved {
		t.Error("承認待ち一覧のApprovedはfalseであるべき")
	}
}

// TestApproveSeller はApproveSeller関数を検証する。
func TestApproveSeller(t *testing.T) {
	t.Parallel()

	t.Run("出品者を承認できること", func(t *testing.T) {
		t.Parallel()

		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPut || r.URL.Path != "/api/v1/admin/sellers/s1/approve" {
				t.Errorf("%s %s, want PUT /api/v1/admin/sellers/s1/approve", r.Method, r.URL.Path)
			}
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `{"success":true,"data":{"id":"s1","name":"田中商店","approved":true}}`)
		}))
		defer ts.Close()

		client := newTestClient(t, ts.URL)
		seller, err := ApproveSeller(context.Background(), client, "s1")
		if err != nil {
			t.Fatalf("ApproveSeller()でエラーが発生: %v", err)
		}
		if !seller.Approved {
			t.Error("承認後のApprovedはtrueであるべき")
		}
	})

	t.Run("存在しない出品者の承認で404が伝播すること", func(t *testing.T) {
		t.Parallel()

		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, `{"success":false,"message":"出品者が見つかりません"}`)
		}))
		defer ts.Close()

		client := newTestClient(t, ts.URL)
		_, err := ApproveSeller(context.Background(), client, "nope")

		var apiErr *apiclient.Error
		if !errors.As(err, &apiErr) {
			t.Fatalf("*apiclient.Errorが返るべきだが、%T が返った", err)
		}
		if apiErr.Kind != apiclient.KindNotFound || apiErr.Fatal {
			t.Errorf("Kind = %v, Fatal = %v, want not-found/false", apiErr.Kind, apiErr.Fatal)
		}
		if apiErr.Message != "出品者が見つかりません" {
			t.Errorf("Message = %q", apiErr.Message)
		}
	})
}

// TestListComplaints はListComplaints関数を検証する。
func TestListComplaints(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/admin/complaints" {
			t.Errorf("path = %q, want %q", r.URL.Path, "/api/v1/admin/complaints")
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"success":true,"data":[
			{"id":"c1","buyer_name":"鈴木","order_id":"o1","description":"商品が破損していた","status":"open"}
		],"pagination":{"page":1,"limit":10,"total":1}}`)
	}))
	defer ts.Close()

	client := newTestClient(t, ts.URL)
	complaints, _, err := ListComplaints(context.Background(), client, 1, 10)
	if err != nil {
		t.Fatalf("ListComplaints()でエラーが発生: %v", err)
	}

	if len(complaints) != 1 || complaints[0].Status != "open" {
		t.Errorf("complaints = %+v", complaints)
	}
}

// TestGetAnalytics はGetAnalytics関数を検証する。
func TestGetAnalytics(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/admin/analytics" {
			t.Errorf("path = %q, want %q", r.URL.Path, "/api/v1/admin/analytics")
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"success":true,"data":{"total_sales":"99999.99","order_count":120,"user_count":45,"seller_count":8}}`)
	}))
	defer ts.Close()

	client := newTestClient(t, ts.URL)
	analytics, err := GetAnalytics(context.Background(), client)
	if err != nil {
		t.Fatalf("GetAnalytics()でエラーが発生: %v", err)
	}

	if analytics.TotalSales.String() != "99999.99" {
		t.Errorf("TotalSales = %s, want 99999.99", analytics.TotalSales)
	}
	if analytics.UserCount != 45 {
		t.Errorf("UserCount = %d, want 45", analytics.UserCount)
	}
}
