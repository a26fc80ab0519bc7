package courier

import (
	"context"
	"encoding/json"
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
		Identity: session.Identity{Role: session.RoleCourier},
	})
	if err != nil {
		t.Fatalf("テスト用セッションの保存に失敗: %v", err)
	}
	return apiclient.New(baseURL, store)
}

// TestListAssignedOrders はListAssignedOrders関数を検証する。
func TestListAssignedOrders(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/courier/orders" {
			t.Errorf("path = %q, want %q", r.URL.Path, "/api/v1/courier/orders")
		}
		if got := r.URL.Query().Get("page"); got != "2" {
			t.Errorf("page = %q, want %q", got, "2")
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"success":true,"data":[
			{"id":"o1","buyer_name":"山田","address":"東京都","status":"assigned","total":"1200"}
		],"pagination":{"page":2,"limit":10,"total":11}}`)
	}))
	defer ts.Close()

	client := newTestClient(t, ts.URL)
	orders, pagination, err := ListAssignedOrders(context.Background(), client, 2, 10)
	if err != nil {
		t.Fatalf("ListAssignedOrders()でエラーが発生: %v", err)
	}

	if len(orders) != 1 {
		t.Fatalf("len(orders) = %d, want 1", len(orders))
	}
	if orders[0].Address != "東京都" {
		t.Errorf("Address = %q, want %q", orders[0].Address, "東京都")
	}
	if pagination.Total != 11 {
		t.Errorf("Total = %d, want 11", pagination.Total)
	}
}

// TestUpdateOrderStatus はUpdateOrderStatus関数を検証する。
func TestUpdateOrderStatus(t *testing.T) {
	t.Parallel()

	t.Run("配達ステータスを更新できること", func(t *testing.T) {
		t.Parallel()

		var gotUpdate StatusUpdate
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPut || r.URL.Path != "/api/v1/courier/orders/o1/status" {
				t.Errorf("%s %s, want PUT /api/v1/courier/orders/o1/status", r.Method, r.URL.Path)
			}
			json.NewDecoder(r.Body).Decode(&gotUpdate)
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `{"success":true,"data":{"id":"o1","status":"delivered"}}`)
		}))
		defer ts.Close()

		client := newTestClient(t, ts.URL)
		order, err := UpdateOrderStatus(context.Background(), client, "o1", "delivered")
		if err != nil {
			t.Fatalf("UpdateOrderStatus()でエラーが発生: %v", err)
		}

		if gotUpdate.Status != "delivered" {
			t.Errorf("送信されたStatus = %q, want %q", gotUpdate.Status, "delivered")
		}
		if order.Status != "delivered" {
			t.Errorf("Status = %q, want %q", order.Status, "delivered")
		}
	})

	t.Run("空のステータスがネットワーク呼び出しなしでエラーになること", func(t *testing.T) {
		t.Parallel()

		client := newTestClient(t, "http://127.0.0.1:1")
		_, err := UpdateOrderStatus(context.Background(), client, "o1", "")

		var apiErr *apiclient.Error
		if !errors.As(err, &apiErr) {
			t.Fatalf("*apiclient.Errorが返るべきだが、%T が返った", err)
		}
		if apiErr.Kind != apiclient.KindBadRequest || apiErr.Fatal {
			t.Errorf("検証エラーは回復可能なbad-requestであるべき: %+v", apiErr)
		}
	})
}

// TestReportIssue はReportIssue関数を検証する。
func TestReportIssue(t *testing.T) {
	t.Parallel()

	t.Run("配達トラブルを報告できること", func(t *testing.T) {
		t.Parallel()

		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost || r.URL.Path != "/api/v1/courier/issues" {
				t.Errorf("%s %s, want POST /api/v1/courier/issues", r.Method, r.URL.Path)
			}
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusCreated)
			fmt.Fprint(w, `{"success":true,"data":{"id":"i1","order_id":"o1","description":"不在"}}`)
		}))
		defer ts.Close()

		client := newTestClient(t, ts.URL)
		issue, err := ReportIssue(context.Background(), client, IssueInput{OrderID: "o1", Description: "不在"})
		if err != nil {
			t.Fatalf("ReportIssue()でエラーが発生: %v", err)
		}
		if issue.ID != "i1" {
			t.Errorf("ID = %q, want %q", issue.ID, "i1")
		}
	})

	t.Run("内容が空だとネットワーク呼び出しなしでエラーになること", func(t *testing.T) {
		t.Parallel()

		client := newTestClient(t, "http://127.0.0.1:1")
		if _, err := ReportIssue(context.Background(), client, IssueInput{OrderID: "o1"}); err == nil {
			t.Fatal("ReportIssue()がエラーを返すべきだが、nilが返った")
		}
	})
}

// TestGetAnalytics はGetAnalytics関数を検証する。
func TestGetAnalytics(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/courier/analytics" {
			t.Errorf("path = %q, want %q", r.URL.Path, "/api/v1/courier/analytics")
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"success":true,"data":{"delivered_count":30,"pending_count":4,"issue_count":2}}`)
	}))
	defer ts.Close()

	client := newTestClient(t, ts.URL)
	analytics, err := GetAnalytics(context.Background(), client)
	if err != nil {
		t.Fatalf("GetAnalytics()でエラーが発生: %v", err)
	}

	if analytics.DeliveredCount != 30 || analytics.PendingCount != 4 || analytics.IssueCount != 2 {
		t.Errorf("analytics = %+v", analytics)
	}
}
