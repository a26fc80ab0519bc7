package mockapi

import (
	"context"
	"errors"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/nao1215/marketcli/internal/account"
	"github.com/nao1215/marketcli/internal/admin"
	"github.com/nao1215/marketcli/internal/buyer"
	"github.com/nao1215/marketcli/internal/catalog"
	"github.com/nao1215/marketcli/internal/courier"
	"github.com/nao1215/marketcli/internal/seller"
	"github.com/nao1215/marketcli/pkg/apiclient"
	"github.com/nao1215/marketcli/pkg/session"
)

// newTestServer はインメモリSQLiteでモックAPIサーバーを起動するヘルパー関数。
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	srv, err := NewServer("0", ":memory:", "test-secret", zap.NewNop())
	if err != nil {
		t.Fatalf("サーバーの生成に失敗: %v", err)
	}
	t.Cleanup(func() { srv.Close() })

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

// newClient はテスト用のAPIクライアントを生成するヘルパー関数。
func newClient(t *testing.T, baseURL string) *apiclient.Client {
	t.Helper()

	store, err := session.NewStore(filepath.Join(t.TempDir(), "session.json"))
	if err != nil {
		t.Fatalf("セッションストアの作成に失敗: %v", err)
	}
	return apiclient.New(baseURL, store)
}

// loginAs はシードユーザーでログインするヘルパー関数。
func loginAs(t *testing.T, client *apiclient.Client, email string) *session.Session {
	t.Helper()

	sess, err := account.Login(context.Background(), client, account.Credentials{
		Email:    email,
		Password: seedPassword,
	})
	if err != nil {
		t.Fatalf("%s でのログインに失敗: %v", email, err)
	}
	return sess
}

// TestAuthFlow は登録・ログイン・プロフィール操作の一連の流れを検証する。
func TestAuthFlow(t *testing.T) {
	t.Parallel()

	t.Run("シードユーザーでログインできロールがトークンに載ること", func(t *testing.T) {
		t.Parallel()

		ts := newTestServer(t)
		client := newClient(t, ts.URL)

		sess := loginAs(t, client, "buyer@example.com")
		if sess.Identity.Role != session.RoleBuyer {
			t.Errorf("Role = %q, want %q", sess.Identity.Role, session.RoleBuyer)
		}
		if sess.Identity.Name != "山田太郎" {
			t.Errorf("Name = %q, want %q", sess.Identity.Name, "山田太郎")
		}
	})

	t.Run("誤ったパスワードで致命的な401が返ること", func(t *testing.T) {
		t.Parallel()

		ts := newTestServer(t)
		client := newClient(t, ts.URL)

		_, err := account.Login(context.Background(), client, account.Credentials{
			Email:    "buyer@example.com",
			Password: "wrong-password",
		})
		var apiErr *apiclient.Error
		if !errors.As(err, &apiErr) {
			t.Fatalf("*apiclient.Errorが返るべきだが、%T が返った", err)
		}
		if apiErr.Kind != apiclient.KindUnauthorized || !apiErr.Fatal {
			t.Errorf("Kind = %v, Fatal = %v, want unauthorized/true", apiErr.Kind, apiErr.Fatal)
		}
	})

	t.Run("新規登録したユーザーでそのまま操作できること", func(t *testing.T) {
		t.Parallel()

		ts := newTestServer(t)
		client := newClient(t, ts.URL)

		sess, err := account.Register(context.Background(), client, account.Registration{
			Name:     "新規購入者",
			Email:    "new-buyer@example.com",
			Password: "secret123",
			Role:     "buyer",
		})
		if err != nil {
			t.Fatalf("Register()でエラーが発生: %v", err)
		}
		if sess.Identity.Role != session.RoleBuyer {
			t.Errorf("Role = %q, want %q", sess.Identity.Role, session.RoleBuyer)
		}

		profile, err := account.GetProfile(context.Background(), client)
		if err != nil {
			t.Fatalf("GetProfile()でエラーが発生: %v", err)
		}
		if profile.Name != "新規購入者" {
			t.Errorf("Name = %q, want %q", profile.Name, "新規購入者")
		}
	})

	t.Run("登録済みメールアドレスの再登録で409が返ること", func(t *testing.T) {
		t.Parallel()

		ts := newTestServer(t)
		client := newClient(t, ts.URL)

		_, err := account.Register(context.Background(), client, account.Registration{
			Name:     "重複",
			Email:    "buyer@example.com",
			Password: "secret123",
			Role:     "buyer",
		})
		var apiErr *apiclient.Error
		if !errors.As(err, &apiErr) {
			t.Fatalf("*apiclient.Errorが返るべきだが、%T が返った", err)
		}
		if apiErr.Kind != apiclient.KindConflict {
			t.Errorf("Kind = %v, want conflict", apiErr.Kind)
		}
	})

	t.Run("プロフィールを更新するとセッションの表示名も変わること", func(t *testing.T) {
		t.Parallel()

		ts := newTestServer(t)
		client := newClient(t, ts.URL)
		loginAs(t, client, "buyer@example.com")

		profile, err := account.UpdateProfile(context.Background(), client, account.ProfileUpdate{
			Name:  "山田次郎",
			Phone: "090-9999-9999",
		})
		if err != nil {
			t.Fatalf("UpdateProfile()でエラーが発生: %v", err)
		}
		if profile.Name != "山田次郎" {
			t.Errorf("Name = %q, want %q", profile.Name, "山田次郎")
		}
		if got := client.Sessions().Current().Identity.Name; got != "山田次郎" {
			t.Errorf("セッションのName = %q, want %q", got, "山田次郎")
		}
	})
}

// TestRoleGate はロールによるアクセス制御を検証する。
func TestRoleGate(t *testing.T) {
	t.Parallel()

	t.Run("トークン無しの保護エンドポイントで401が返ること", func(t *testing.T) {
		t.Parallel()

		ts := newTestServer(t)
		client := newClient(t, ts.URL)

		_, err := account.GetProfile(context.Background(), client)
		var apiErr *apiclient.Error
		if !errors.As(err, &apiErr) {
			t.Fatalf("*apiclient.Errorが返るべきだが、%T が返った", err)
		}
		if apiErr.Kind != apiclient.KindUnauthorized {
			t.Errorf("Kind = %v, want unauthorized", apiErr.Kind)
		}
	})

	t.Run("購入者が管理者エンドポイントを叩くと回復可能な403が返ること", func(t *testing.T) {
		t.Parallel()

		ts := newTestServer(t)
		client := newClient(t, ts.URL)
		loginAs(t, client, "buyer@example.com")

		_, _, err := admin.ListBuyers(context.Background(), client, 1, 10)
		var apiErr *apiclient.Error
		if !errors.As(err, &apiErr) {
			t.Fatalf("*apiclient.Errorが返るべきだが、%T が返った", err)
		}
		if apiErr.Kind != apiclient.KindForbidden || apiErr.Fatal {
			t.Errorf("Kind = %v, Fatal = %v, want forbidden/false", apiErr.Kind, apiErr.Fatal)
		}
		// 403ではセッションは破棄されない。
		if client.Sessions().Token() == "" {
			t.Error("403でセッションが破棄されてはいけない")
		}
	})

	t.Run("カテゴリの作成が管理者以外に拒否されること", func(t *testing.T) {
		t.Parallel()

		ts := newTestServer(t)
		client := newClient(t, ts.URL)
		loginAs(t, client, "seller@example.com")

		_, err := catalog.CreateCategory(context.Background(), client, catalog.CategoryInput{Name: "勝手なカテゴリ"})
		var apiErr *apiclient.Error
		if !errors.As(err, &apiErr) {
			t.Fatalf("*apiclient.Errorが返るべきだが、%T が返った", err)
		}
		if apiErr.Kind != apiclient.KindForbidden {
			t.Errorf("Kind = %v, want forbidden", apiErr.Kind)
		}
	})
}

// TestCatalogFlow はカタログ閲覧とカテゴリ管理を検証する。
func TestCatalogFlow(t *testing.T) {
	t.Parallel()

	t.Run("カテゴリ一覧がサブカテゴリ入れ子で返ること", func(t *testing.T) {
		t.Parallel()

		ts := newTestServer(t)
		client := newClient(t, ts.URL)
		loginAs(t, client, "buyer@example.com")

		categories, err := catalog.ListCategories(context.Background(), client)
		if err != nil {
			t.Fatalf("ListCategories()でエラーが発生: %v", err)
		}

		var fruit *catalog.Category
		for i := range categories {
			if categories[i].Name == "くだもの" {
				fruit = &categories[i]
			}
		}
		if fruit == nil {
			t.Fatalf("くだものカテゴリが見つからない: %+v", categories)
		}
		if len(fruit.Subcategories) != 1 || fruit.Subcategories[0].Name != "柑橘類" {
			t.Errorf("Subcategories = %+v, want 柑橘類のみ", fruit.Subcategories)
		}
	})

	t.Run("商品を検索語とページサイズで絞り込めること", func(t *testing.T) {
		t.Parallel()

		ts := newTestServer(t)
		client := newClient(t, ts.URL)
		loginAs(t, client, "buyer@example.com")

		products, pagination, err := catalog.SearchProducts(context.Background(), client, catalog.ProductQuery{
			Search: "りんご", Page: 1, Limit: 10,
		})
		if err != nil {
			t.Fatalf("SearchProducts()でエラーが発生: %v", err)
		}
		if len(products) != 1 || products[0].Name != "りんご" {
			t.Fatalf("products = %+v, want りんごのみ", products)
		}
		if pagination.Total != 1 {
			t.Errorf("Total = %d, want 1", pagination.Total)
		}

		// 全商品をページサイズ2で取ると2ページに分かれる。
		all, pagination, err := catalog.SearchProducts(context.Background(), client, catalog.ProductQuery{Page: 1, Limit: 2})
		if err != nil {
			t.Fatalf("SearchProducts()でエラーが発生: %v", err)
		}
		if len(all) != 2 || pagination.Total != 3 {
			t.Errorf("len = %d, Total = %d, want 2件/全3件", len(all), pagination.Total)
		}
	})

	t.Run("管理者がカテゴリを作成・更新・削除できること", func(t *testing.T) {
		t.Parallel()

		ts := newTestServer(t)
		client := newClient(t, ts.URL)
		loginAs(t, client, "admin@example.com")

		created, err := catalog.CreateCategory(context.Background(), client, catalog.CategoryInput{
			Name: "魚介類", Description: "鮮魚",
		})
		if err != nil {
			t.Fatalf("CreateCategory()でエラーが発生: %v", err)
		}
		if created.ID == "" {
			t.Fatal("作成されたカテゴリにIDが無い")
		}

		updated, err := catalog.UpdateCategory(context.Background(), client, created.ID, catalog.CategoryInput{
			Name: "海産物",
		})
		if err != nil {
			t.Fatalf("UpdateCategory()でエラーが発生: %v", err)
		}
		if updated.Name != "海産物" {
			t.Errorf("Name = %q, want %q", updated.Name, "海産物")
		}

		if err := catalog.DeleteCategory(context.Background(), client, created.ID); err != nil {
			t.Fatalf("DeleteCategory()でエラーが発生: %v", err)
		}
		_, err = catalog.GetCategory(context.Background(), client, created.ID)
		var apiErr *apiclient.Error
		if !errors.As(err, &apiErr) || apiErr.Kind != apiclient.KindNotFound {
			t.Errorf("削除後のGetCategory()は404を返すべき: %v", err)
		}
	})
}

// TestBuyerFlow は購入者のカート操作から注文確定までを検証する。
func TestBuyerFlow(t *testing.T) {
	t.Parallel()

	t.Run("カートへ追加して注文を確定できること", func(t *testing.T) {
		t.Parallel()

		ts := newTestServer(t)
		client := newClient(t, ts.URL)
		loginAs(t, client, "buyer@example.com")

		products, _, err := catalog.SearchProducts(context.Background(), client, catalog.ProductQuery{Search: "みかん"})
		if err != nil {
			t.Fatalf("SearchProducts()でエラーが発生: %v", err)
		}
		if len(products) != 1 {
			t.Fatalf("len(products) = %d, want 1", len(products))
		}

		cart, err := buyer.AddCartItem(context.Background(), client, buyer.CartItemInput{
			ProductID: products[0].ID, Quantity: 3,
		})
		if err != nil {
			t.Fatalf("AddCartItem()でエラーが発生: %v", err)
		}
		if len(cart.Items) != 1 || cart.Items[0].Quantity != 3 {
			t.Fatalf("cart = %+v, want みかん3個", cart)
		}
		// 80円 x 3個
		if cart.Total.String() != "240" {
			t.Errorf("Total = %s, want 240", cart.Total)
		}

		order, err := buyer.PlaceOrder(context.Background(), client, buyer.OrderInput{Address: "大阪府大阪市1-2-3"})
		if err != nil {
			t.Fatalf("PlaceOrder()でエラーが発生: %v", err)
		}
		if order.Status != "pending" {
			t.Errorf("Status = %q, want %q", order.Status, "pending")
		}
		if len(order.Items) != 1 {
			t.Errorf("len(Items) = %d, want 1", len(order.Items))
		}

		// 注文確定でカートは空になる。
		cart, err = buyer.GetCart(context.Background(), client)
		if err != nil {
			t.Fatalf("GetCart()でエラーが発生: %v", err)
		}
		if len(cart.Items) != 0 {
			t.Errorf("注文確定後のカートは空であるべき: %+v", cart.Items)
		}
	})

	t.Run("空のカートでの注文確定は409が返ること", func(t *testing.T) {
		t.Parallel()

		ts := newTestServer(t)
		client := newClient(t, ts.URL)
		loginAs(t, client, "buyer@example.com")

		_, err := buyer.PlaceOrder(context.Background(), client, buyer.OrderInput{Address: "どこか"})
		var apiErr *apiclient.Error
		if !errors.As(err, &apiErr) {
			t.Fatalf("*apiclient.Errorが返るべきだが、%T が返った", err)
		}
		if apiErr.Kind != apiclient.KindConflict || apiErr.Fatal {
			t.Errorf("Kind = %v, Fatal = %v, want conflict/false", apiErr.Kind, apiErr.Fatal)
		}
	})

	t.Run("カートの数量変更と削除ができること", func(t *testing.T) {
		t.Parallel()

		ts := newTestServer(t)
		client := newClient(t, ts.URL)
		loginAs(t, client, "buyer@example.com")

		products, _, err := catalog.SearchProducts(context.Background(), client, catalog.ProductQuery{Search: "りんご"})
		if err != nil {
			t.Fatalf("SearchProducts()でエラーが発生: %v", err)
		}

		if _, err := buyer.AddCartItem(context.Background(), client, buyer.CartItemInput{
			ProductID: products[0].ID, Quantity: 1,
		}); err != nil {
			t.Fatalf("AddCartItem()でエラーが発生: %v", err)
		}

		cart, err := buyer.UpdateCartItem(context.Background(), client, buyer.CartItemInput{
			ProductID: products[0].ID, Quantity: 5,
		})
		if err != nil {
			t.Fatalf("UpdateCartItem()でエラーが発生: %v", err)
		}
		if cart.Items[0].Quantity != 5 {
			t.Errorf("Quantity = %d, want 5", cart.Items[0].Quantity)
		}

		cart, err = buyer.RemoveCartItem(context.Background(), client, products[0].ID)
		if err != nil {
			t.Fatalf("RemoveCartItem()でエラーが発生: %v", err)
		}
		if len(cart.Items) != 0 {
			t.Errorf("削除後のカートは空であるべき: %+v", cart.Items)
		}
	})

	t.Run("注文履歴にシードの配達済み注文があること", func(t *testing.T) {
		t.Parallel()

		ts := newTestServer(t)
		client := newClient(t, ts.URL)
		loginAs(t, client, "buyer@example.com")

		orders, pagination, err := buyer.ListOrders(context.Background(), client, 1, 10)
		if err != nil {
			t.Fatalf("ListOrders()でエラーが発生: %v", err)
		}
		if pagination.Total != 1 || len(orders) != 1 {
			t.Fatalf("orders = %+v, want 1件", orders)
		}
		if orders[0].Status != "delivered" {
			t.Errorf("Status = %q, want %q", orders[0].Status, "delivered")
		}
	})
}

// TestSellerFlow は出品者の商品管理と売上サマリーを検証する。
func TestSellerFlow(t *testing.T) {
	t.Parallel()

	t.Run("商品の出品・更新・取り下げができること", func(t *testing.T) {
		t.Parallel()

		ts := newTestServer(t)
		client := newClient(t, ts.URL)
		loginAs(t, client, "seller@example.com")

		categories, err := catalog.ListCategories(context.Background(), client)
		if err != nil {
			t.Fatalf("ListCategories()でエラーが発生: %v", err)
		}

		created, err := seller.CreateProduct(context.Background(), client, seller.ProductInput{
			CategoryID: categories[0].ID,
			Name:       "いちご",
			Price:      mustDecimal(t, "980.50"),
			Stock:      12,
		})
		if err != nil {
			t.Fatalf("CreateProduct()でエラーが発生: %v", err)
		}
		if created.Price.String() != "980.5" {
			t.Errorf("Price = %s, want 980.5", created.Price)
		}

		updated, err := seller.UpdateProduct(context.Background(), client, created.ID, seller.ProductInput{
			CategoryID: categories[0].ID,
			Name:       "あまおう",
			Price:      mustDecimal(t, "1200"),
			Stock:      8,
		})
		if err != nil {
			t.Fatalf("UpdateProduct()でエラーが発生: %v", err)
		}
		if updated.Name != "あまおう" {
			t.Errorf("Name = %q, want %q", updated.Name, "あまおう")
		}

		if err := seller.DeleteProduct(context.Background(), client, created.ID); err != nil {
			t.Fatalf("DeleteProduct()でエラーが発生: %v", err)
		}

		products, _, err := seller.ListProducts(context.Background(), client, 1, 10)
		if err != nil {
			t.Fatalf("ListProducts()でエラーが発生: %v", err)
		}
		for _, p := range products {
			if p.ID == created.ID {
				t.Error("取り下げた商品が一覧に残っている")
			}
		}
	})

	t.Run("売上サマリーにシード注文の売上が載ること", func(t *testing.T) {
		t.Parallel()

		ts := newTestServer(t)
		client := newClient(t, ts.URL)
		loginAs(t, client, "seller@example.com")

		analytics, err := seller.GetAnalytics(context.Background(), client)
		if err != nil {
			t.Fatalf("GetAnalytics()でエラーが発生: %v", err)
		}
		// りんご120円 x 2個の配達済み注文がシードされている。
		if analytics.TotalSales.String() != "240" {
			t.Errorf("TotalSales = %s, want 240", analytics.TotalSales)
		}
		if analytics.ProductCount != 3 {
			t.Errorf("ProductCount = %d, want 3", analytics.ProductCount)
		}
	})

	t.Run("受注一覧に自分の商品を含む注文だけが載ること", func(t *testing.T) {
		t.Parallel()

		ts := newTestServer(t)
		client := newClient(t, ts.URL)
		loginAs(t, client, "seller@example.com")

		orders, pagination, err := seller.ListOrders(context.Background(), client, 1, 10)
		if err != nil {
			t.Fatalf("ListOrders()でエラーが発生: %v", err)
		}
		if pagination.Total != 1 || len(orders) != 1 {
			t.Errorf("orders = %+v, want シードの1件", orders)
		}
	})
}

// TestCourierFlow は配達員の担当注文操作を検証する。
func TestCourierFlow(t *testing.T) {
	t.Parallel()

	t.Run("担当注文のステータスを更新できること", func(t *testing.T) {
		t.Parallel()

		ts := newTestServer(t)
		client := newClient(t, ts.URL)
		loginAs(t, client, "courier@example.com")

		orders, _, err := courier.ListAssignedOrders(context.Background(), client, 1, 10)
		if err != nil {
			t.Fatalf("ListAssignedOrders()でエラーが発生: %v", err)
		}
		if len(orders) != 1 {
			t.Fatalf("len(orders) = %d, want 1", len(orders))
		}

		updated, err := courier.UpdateOrderStatus(context.Background(), client, orders[0].ID, "shipped")
		if err != nil {
			t.Fatalf("UpdateOrderStatus()でエラーが発生: %v", err)
		}
		if updated.Status != "shipped" {
			t.Errorf("Status = %q, want %q", updated.Status, "shipped")
		}
	})

	t.Run("担当外の注文の更新で404が返ること", func(t *testing.T) {
		t.Parallel()

		ts := newTestServer(t)
		client := newClient(t, ts.URL)
		loginAs(t, client, "courier@example.com")

		_, err := courier.UpdateOrderStatus(context.Background(), client, "no-such-order", "shipped")
		var apiErr *apiclient.Error
		if !errors.As(err, &apiErr) || apiErr.Kind != apiclient.KindNotFound {
			t.Errorf("担当外の注文は404を返すべき: %v", err)
		}
	})

	t.Run("トラブル報告と実績サマリーが取得できること", func(t *testing.T) {
		t.Parallel()

		ts := newTestServer(t)
		client := newClient(t, ts.URL)
		loginAs(t, client, "courier@example.com")

		orders, _, err := courier.ListAssignedOrders(context.Background(), client, 1, 10)
		if err != nil {
			t.Fatalf("ListAssignedOrders()でエラーが発生: %v", err)
		}

		issue, err := courier.ReportIssue(context.Background(), client, courier.IssueInput{
			OrderID: orders[0].ID, Description: "住所不明",
		})
		if err != nil {
			t.Fatalf("ReportIssue()でエラーが発生: %v", err)
		}
		if issue.ID == "" {
			t.Error("報告されたトラブルにIDが無い")
		}

		analytics, err := courier.GetAnalytics(context.Background(), client)
		if err != nil {
			t.Fatalf("GetAnalytics()でエラーが発生: %v", err)
		}
		// シード1件 + いま報告した1件。
		if analytics.IssueCount != 2 {
			t.Errorf("IssueCount = %d, want 2", analytics.IssueCount)
		}
		if analytics.DeliveredCount != 1 {
			t.Errorf("DeliveredCount = %d, want 1", analytics.DeliveredCount)
		}
	})
}

// TestAdminFlow は管理者の一覧・承認・サマリー操作を検証する。
func TestAdminFlow(t *testing.T) {
	t.Parallel()

	t.Run("承認待ちの出品者を承認すると一覧から消えること", func(t *testing.T) {
		t.Parallel()

		ts := newTestServer(t)
		client := newClient(t, ts.URL)
		loginAs(t, client, "admin@example.com")

		pending, _, err := admin.ListPendingSellers(context.Background(), client, 1, 10)
		if err != nil {
			t.Fatalf("ListPendingSellers()でエラーが発生: %v", err)
		}
		if len(pending) != 1 {
			t.Fatalf("len(pending) = %d, want 1", len(pending))
		}

		approved, err := admin.ApproveSeller(context.Background(), client, pending[0].ID)
		if err != nil {
			t.Fatalf("ApproveSeller()でエラーが発生: %v", err)
		}
		if !approved.Approved {
			t.Error("承認後のApprovedはtrueであるべき")
		}

		pending, _, err = admin.ListPendingSellers(context.Background(), client, 1, 10)
		if err != nil {
			t.Fatalf("ListPendingSellers()でエラーが発生: %v", err)
		}
		if len(pending) != 0 {
			t.Errorf("承認後の承認待ち一覧は空であるべき: %+v", pending)
		}
	})

	t.Run("ロール別のユーザー一覧と苦情一覧が取得できること", func(t *testing.T) {
		t.Parallel()

		ts := newTestServer(t)
		client := newClient(t, ts.URL)
		loginAs(t, client, "admin@example.com")

		buyers, pagination, err := admin.ListBuyers(context.Background(), client, 1, 10)
		if err != nil {
			t.Fatalf("ListBuyers()でエラーが発生: %v", err)
		}
		if pagination.Total != 1 || buyers[0].Name != "山田太郎" {
			t.Errorf("buyers = %+v, want 山田太郎のみ", buyers)
		}

		complaints, _, err := admin.ListComplaints(context.Background(), client, 1, 10)
		if err != nil {
			t.Fatalf("ListComplaints()でエラーが発生: %v", err)
		}
		if len(complaints) != 1 || complaints[0].Status != "open" {
			t.Errorf("complaints = %+v, want openの1件", complaints)
		}
	})

	t.Run("マーケットサマリーにシードの集計が載ること", func(t *testing.T) {
		t.Parallel()

		ts := newTestServer(t)
		client := newClient(t, ts.URL)
		loginAs(t, client, "admin@example.com")

		analytics, err := admin.GetAnalytics(context.Background(), client)
		if err != nil {
			t.Fatalf("GetAnalytics()でエラーが発生: %v", err)
		}
		if analytics.TotalSales.String() != "240" {
			t.Errorf("TotalSales = %s, want 240", analytics.TotalSales)
		}
		if analytics.UserCount != 5 {
			t.Errorf("UserCount = %d, want 5", analytics.UserCount)
		}
		if analytics.SellerCount != 2 {
			t.Errorf("SellerCount = %d, want 2", analytics.SellerCount)
		}
	})
}

// mustDecimal は文字列から10進数を生成するヘルパー関数。
func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()

	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("10進数の解釈に失敗: %v", err)
	}
	return d
}
