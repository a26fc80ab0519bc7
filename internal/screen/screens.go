package screen

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/nao1215/marketcli/internal/admin"
	"github.com/nao1215/marketcli/internal/buyer"
	"github.com/nao1215/marketcli/internal/catalog"
	"github.com/nao1215/marketcli/internal/courier"
	"github.com/nao1215/marketcli/internal/seller"
	"github.com/nao1215/marketcli/pkg/apiclient"
	"github.com/nao1215/marketcli/pkg/pagetable"
	"github.com/nao1215/marketcli/pkg/session"
)

// View は1画面分のページ付きテーブル。pagetable.Table が満たす。
type View interface {
	// Render はテーブル本体・ページ番号・操作ヒントを描画する。
	Render(w io.Writer, narrow bool)
	// Next は次ページへ移動する。
	Next()
	// Prev は前ページへ移動する。
	Prev()
	// JumpTo は指定ページへ移動する（範囲外は補正される）。
	JumpTo(page int)
	// CurrentPage は現在のページ番号を返す。
	CurrentPage() int
	// TotalPages は総ページ数を返す。
	TotalPages() int
	// RunAction は現在のページのrow行目にaction番目の行操作を適用する。
	RunAction(action, row int) error
}

// Listing はダッシュボードに並ぶ一覧画面の定義。
type Listing struct {
	// Name はダッシュボードに表示する画面名。
	Name string
	// Load は全行を取得してテーブルを組み立てる。
	Load func(ctx context.Context) (View, error)
}

// ScreensFor はロールに応じた画面の集合を返す。
// ロールを追加したときはここへの追加がコンパイルエラーで強制される
// よう、このswitchにdefault節を置かない。
func ScreensFor(client *apiclient.Client, pageSize int, role session.Role) []Listing {
	switch role {
	case session.RoleAdmin:
		return adminScreens(client, pageSize)
	case session.RoleSeller:
		return sellerScreens(client, pageSize)
	case session.RoleBuyer:
		return buyerScreens(client, pageSize)
	case session.RoleCourier:
		return courierScreens(client, pageSize)
	}
	return nil
}

func buyerScreens(client *apiclient.Client, pageSize int) []Listing {
	return []Listing{
		{
			Name: "商品をさがす",
			Load: func(ctx context.Context) (View, error) {
				products, err := fetchAll(ctx, func(ctx context.Context, page, limit int) ([]catalog.Product, *apiclient.Pagination, error) {
					return catalog.SearchProducts(ctx, client, catalog.ProductQuery{Page: page, Limit: limit})
				})
				if err != nil {
					return nil, err
				}
				columns := []pagetable.Column[catalog.Product]{
					{Key: "name", Label: "商品名", Render: func(p catalog.Product) string { return p.Name }},
					{Key: "price", Label: "価格", Render: func(p catalog.Product) string { return p.Price.String() }},
					{Key: "stock", Label: "在庫", Render: func(p catalog.Product) string { return strconv.Itoa(p.Stock) }, HideNarrow: true},
				}
				actions := []pagetable.Action[catalog.Product]{
					{Label: "カートに追加", Handler: func(p catalog.Product) error {
						_, err := buyer.AddCartItem(ctx, client, buyer.CartItemInput{ProductID: p.ID, Quantity: 1})
						return err
					}},
				}
				return pagetable.New(products, columns,
					pagetable.WithPageSize[catalog.Product](pageSize),
					pagetable.WithEmptyMessage[catalog.Product]("商品がありません"),
					pagetable.WithActions(actions),
				), nil
			},
		},
		{
			Name: "カート",
			Load: func(ctx context.Context) (View, error) {
				cart, err := buyer.GetCart(ctx, client)
				if err != nil {
					return nil, err
				}
				columns := []pagetable.Column[buyer.CartItem]{
					{Key: "name", Label: "商品名", Render: func(i buyer.CartItem) string { return i.Name }},
					{Key: "quantity", Label: "数量", Render: func(i buyer.CartItem) string { return strconv.Itoa(i.Quantity) }},
					{Key: "subtotal", Label: "小計", Render: func(i buyer.CartItem) string { return i.Subtotal.String() }, HideNarrow: true},
				}
				actions := []pagetable.Action[buyer.CartItem]{
					{Label: "削除", Handler: func(i buyer.CartItem) error {
						_, err := buyer.RemoveCartItem(ctx, client, i.ProductID)
						return err
					}},
				}
				return pagetable.New(cart.Items, columns,
					pagetable.WithPageSize[buyer.CartItem](pageSize),
					pagetable.WithEmptyMessage[buyer.CartItem]("カートは空です"),
					pagetable.WithActions(actions),
				), nil
			},
		},
		{
			Name: "注文履歴",
			Load: func(ctx context.Context) (View, error) {
				orders, err := fetchAll(ctx, func(ctx context.Context, page, limit int) ([]buyer.Order, *apiclient.Pagination, error) {
					return buyer.ListOrders(ctx, client, page, limit)
				})
				if err != nil {
					return nil, err
				}
				columns := []pagetable.Column[buyer.Order]{
					{Key: "id", Label: "注文ID", Render: func(o buyer.Order) string { return o.ID }},
					{Key: "status", Label: "状態", Render: func(o buyer.Order) string { return o.Status }},
					{Key: "total", Label: "合計", Render: func(o buyer.Order) string { return o.Total.String() }},
					{Key: "created_at", Label: "注文日時", Render: func(o buyer.Order) string { return o.CreatedAt }, HideNarrow: true},
				}
				return pagetable.New(orders, columns,
					pagetable.WithPageSize[buyer.Order](pageSize),
					pagetable.WithEmptyMessage[buyer.Order]("注文はまだありません"),
				), nil
			},
		},
	}
}

func sellerScreens(client *apiclient.Client, pageSize int) []Listing {
	return []Listing{
		{
			Name: "出品中の商品",
			Load: func(ctx context.Context) (View, error) {
				products, err := fetchAll(ctx, func(ctx context.Context, page, limit int) ([]seller.Product, *apiclient.Pagination, error) {
					return seller.ListProducts(ctx, client, page, limit)
				})
				if err != nil {
					return nil, err
				}
				columns := []pagetable.Column[seller.Product]{
					{Key: "name", Label: "商品名", Render: func(p seller.Product) string { return p.Name }},
					{Key: "price", Label: "価格", Render: func(p seller.Product) string { return p.Price.String() }},
					{Key: "stock", Label: "在庫", Render: func(p seller.Product) string { return strconv.Itoa(p.Stock) }},
				}
				actions := []pagetable.Action[seller.Product]{
					{Label: "取り下げ", Handler: func(p seller.Product) error {
						return seller.DeleteProduct(ctx, client, p.ID)
					}},
				}
				return pagetable.New(products, columns,
					pagetable.WithPageSize[seller.Product](pageSize),
					pagetable.WithEmptyMessage[seller.Product]("出品中の商品はありません"),
					pagetable.WithActions(actions),
				), nil
			},
		},
		{
			Name: "受注一覧",
			Load: func(ctx context.Context) (View, error) {
				orders, err := fetchAll(ctx, func(ctx context.Context, page, limit int) ([]seller.Order, *apiclient.Pagination, error) {
					return seller.ListOrders(ctx, client, page, limit)
				})
				if err != nil {
					return nil, err
				}
				columns := []pagetable.Column[seller.Order]{
					{Key: "id", Label: "注文ID", Render: func(o seller.Order) string { return o.ID }},
					{Key: "buyer", Label: "購入者", Render: func(o seller.Order) string { return o.BuyerName }},
					{Key: "status", Label: "状態", Render: func(o seller.Order) string { return o.Status }},
					{Key: "total", Label: "合計", Render: func(o seller.Order) string { return o.Total.String() }, HideNarrow: true},
				}
				return pagetable.New(orders, columns,
					pagetable.WithPageSize[seller.Order](pageSize),
					pagetable.WithEmptyMessage[seller.Order]("受注はまだありません"),
				), nil
			},
		},
		{
			Name: "売上サマリー",
			Load: func(ctx context.Context) (View, error) {
				analytics, err := seller.GetAnalytics(ctx, client)
				if err != nil {
					return nil, err
				}
				columns := []pagetable.Column[seller.Analytics]{
					{Key: "total_sales", Label: "総売上", Render: func(a seller.Analytics) string { return a.TotalSales.String() }},
					{Key: "order_count", Label: "注文数", Render: func(a seller.Analytics) string { return strconv.Itoa(a.OrderCount) }},
					{Key: "product_count", Label: "商品数", Render: func(a seller.Analytics) string { return strconv.Itoa(a.ProductCount) }},
				}
				return pagetable.New([]seller.Analytics{analytics}, columns), nil
			},
		},
	}
}

func courierScreens(client *apiclient.Client, pageSize int) []Listing {
	return []Listing{
		{
			Name: "担当中の配達",
			Load: func(ctx context.Context) (View, error) {
				orders, err := fetchAll(ctx, func(ctx context.Context, page, limit int) ([]courier.Order, *apiclient.Pagination, error) {
					return courier.ListAssignedOrders(ctx, client, page, limit)
				})
				if err != nil {
					return nil, err
				}
				columns := []pagetable.Column[courier.Order]{
					{Key: "id", Label: "注文ID", Render: func(o courier.Order) string { return o.ID }},
					{Key: "address", Label: "配達先", Render: func(o courier.Order) string { return o.Address }},
					{Key: "status", Label: "状態", Render: func(o courier.Order) string { return o.Status }},
				}
				actions := []pagetable.Action[courier.Order]{
					{Label: "発送済みにする", Handler: func(o courier.Order) error {
						_, err := courier.UpdateOrderStatus(ctx, client, o.ID, "shipped")
						return err
					}},
					{Label: "配達完了にする", Handler: func(o courier.Order) error {
						_, err := courier.UpdateOrderStatus(ctx, client, o.ID, "delivered")
						return err
					}},
				}
				return pagetable.New(orders, columns,
					pagetable.WithPageSize[courier.Order](pageSize),
					pagetable.WithEmptyMessage[courier.Order]("担当中の配達はありません"),
					pagetable.WithActions(actions),
				), nil
			},
		},
		{
			Name: "配達実績",
			Load: func(ctx context.Context) (View, error) {
				analytics, err := courier.GetAnalytics(ctx, client)
				if err != nil {
					return nil, err
				}
				columns := []pagetable.Column[courier.Analytics]{
					{Key: "delivered", Label: "配達完了", Render: func(a courier.Analytics) string { return strconv.Itoa(a.DeliveredCount) }},
					{Key: "pending", Label: "配達中", Render: func(a courier.Analytics) string { return strconv.Itoa(a.PendingCount) }},
					{Key: "issues", Label: "トラブル", Render: func(a courier.Analytics) string { return strconv.Itoa(a.IssueCount) }},
				}
				return pagetable.New([]courier.Analytics{analytics}, columns), nil
			},
		},
	}
}

func adminScreens(client *apiclient.Client, pageSize int) []Listing {
	userColumns := []pagetable.Column[admin.User]{
		{Key: "name", Label: "名前", Render: func(u admin.User) string { return u.Name }},
		{Key: "email", Label: "メール", Render: func(u admin.User) string { return u.Email }},
		{Key: "created_at", Label: "登録日時", Render: func(u admin.User) string { return u.CreatedAt }, HideNarrow: true},
	}
	userListing := func(name string, list func(ctx context.Context, c *apiclient.Client, page, limit int) ([]admin.User, *apiclient.Pagination, error)) Listing {
		return Listing{
			Name: name,
			Load: func(ctx context.Context) (View, error) {
				users, err := fetchAll(ctx, func(ctx context.Context, page, limit int) ([]admin.User, *apiclient.Pagination, error) {
					return list(ctx, client, page, limit)
				})
				if err != nil {
					return nil, err
				}
				return pagetable.New(users, userColumns,
					pagetable.WithPageSize[admin.User](pageSize),
					pagetable.WithEmptyMessage[admin.User](fmt.Sprintf("%sはいません", name)),
				), nil
			},
		}
	}
	sellerColumns := []pagetable.Column[admin.Seller]{
		{Key: "name", Label: "名前", Render: func(s admin.Seller) string { return s.Name }},
		{Key: "email", Label: "メール", Render: func(s admin.Seller) string { return s.Email }},
		{Key: "approved", Label: "承認", Render: func(s admin.Seller) string {
			if s.Approved {
				return "済"
			}
			return "未"
		}},
	}
	// actionsForは行操作を組み立てる。操作を持たない画面ではnil。
	sellerListing := func(name string, list func(ctx context.Context, c *apiclient.Client, page, limit int) ([]admin.Seller, *apiclient.Pagination, error), actionsFor func(ctx context.Context) []pagetable.Action[admin.Seller]) Listing {
		return Listing{
			Name: name,
			Load: func(ctx context.Context) (View, error) {
				sellers, err := fetchAll(ctx, func(ctx context.Context, page, limit int) ([]admin.Seller, *apiclient.Pagination, error) {
					return list(ctx, client, page, limit)
				})
				if err != nil {
					return nil, err
				}
				opts := []pagetable.TableOption[admin.Seller]{
					pagetable.WithPageSize[admin.Seller](pageSize),
					pagetable.WithEmptyMessage[admin.Seller](fmt.Sprintf("%sはいません", name)),
				}
				if actionsFor != nil {
					opts = append(opts, pagetable.WithActions(actionsFor(ctx)))
				}
				return pagetable.New(sellers, sellerColumns, opts...), nil
			},
		}
	}

	return []Listing{
		userListing("管理者", admin.ListAdmins),
		userListing("配達員", admin.ListCouriers),
		userListing("購入者", admin.ListBuyers),
		sellerListing("出品者", admin.ListSellers, nil),
		sellerListing("承認待ち出品者", admin.ListPendingSellers, func(ctx context.Context) []pagetable.Action[admin.Seller] {
			return []pagetable.Action[admin.Seller]{
				{Label: "承認", Handler: func(s admin.Seller) error {
					_, err := admin.ApproveSeller(ctx, client, s.ID)
					return err
				}},
			}
		}),
		{
			Name: "注文一覧",
			Load: func(ctx context.Context) (View, error) {
				orders, err := fetchAll(ctx, func(ctx context.Context, page, limit int) ([]admin.Order, *apiclient.Pagination, error) {
					return admin.ListOrders(ctx, client, page, limit)
				})
				if err != nil {
					return nil, err
				}
				columns := []pagetable.Column[admin.Order]{
					{Key: "id", Label: "注文ID", Render: func(o admin.Order) string { return o.ID }},
					{Key: "buyer", Label: "購入者", Render: func(o admin.Order) string { return o.BuyerName }},
					{Key: "status", Label: "状態", Render: func(o admin.Order) string { return o.Status }},
					{Key: "total", Label: "合計", Render: func(o admin.Order) string { return o.Total.String() }, HideNarrow: true},
				}
				return pagetable.New(orders, columns,
					pagetable.WithPageSize[admin.Order](pageSize),
					pagetable.WithEmptyMessage[admin.Order]("注文はありません"),
				), nil
			},
		},
		{
			Name: "商品一覧",
			Load: func(ctx context.Context) (View, error) {
				products, err := fetchAll(ctx, func(ctx context.Context, page, limit int) ([]admin.Product, *apiclient.Pagination, error) {
					return admin.ListProducts(ctx, client, page, limit)
				})
				if err != nil {
					return nil, err
				}
				columns := []pagetable.Column[admin.Product]{
					{Key: "name", Label: "商品名", Render: func(p admin.Product) string { return p.Name }},
					{Key: "seller", Label: "出品者", Render: func(p admin.Product) string { return p.SellerName }},
					{Key: "price", Label: "価格", Render: func(p admin.Product) string { return p.Price.String() }},
				}
				return pagetable.New(products, columns,
					pagetable.WithPageSize[admin.Product](pageSize),
					pagetable.WithEmptyMessage[admin.Product]("商品はありません"),
				), nil
			},
		},
		{
			Name: "苦情一覧",
			Load: func(ctx context.Context) (View, error) {
				complaints, err := fetchAll(ctx, func(ctx context.Context, page, limit int) ([]admin.Complaint, *apiclient.Pagination, error) {
					return admin.ListComplaints(ctx, client, page, limit)
				})
				if err != nil {
					return nil, err
				}
				columns := []pagetable.Column[admin.Complaint]{
					{Key: "buyer", Label: "申告者", Render: func(c admin.Complaint) string { return c.BuyerName }},
					{Key: "description", Label: "内容", Render: func(c admin.Complaint) string { return c.Description }},
					{Key: "status", Label: "対応", Render: func(c admin.Complaint) string { return c.Status }},
				}
				return pagetable.New(complaints, columns,
					pagetable.WithPageSize[admin.Complaint](pageSize),
					pagetable.WithEmptyMessage[admin.Complaint]("苦情はありません"),
				), nil
			},
		},
		{
			Name: "マーケットサマリー",
			Load: func(ctx context.Context) (View, error) {
				analytics, err := admin.GetAnalytics(ctx, client)
				if err != nil {
					return nil, err
				}
				columns := []pagetable.Column[admin.Analytics]{
					{Key: "total_sales", Label: "総売上", Render: func(a admin.Analytics) string { return a.TotalSales.String() }},
					{Key: "order_count", Label: "注文数", Render: func(a admin.Analytics) string { return strconv.Itoa(a.OrderCount) }},
					{Key: "user_count", Label: "ユーザー数", Render: func(a admin.Analytics) string { return strconv.Itoa(a.UserCount) }},
					{Key: "seller_count", Label: "出品者数", Render: func(a admin.Analytics) string { return strconv.Itoa(a.SellerCount) }},
				}
				return pagetable.New([]admin.Analytics{analytics}, columns), nil
			},
		},
	}
}

// fetchAll は一覧エンドポイントを先頭ページから順に取得し、全行を1つのスライスにまとめる。
// ページ番号の計算はサーバーではなくテーブル側で行うため、画面は常に全行を保持する。
func fetchAll[T any](ctx context.Context, fetch func(ctx context.Context, page, limit int) ([]T, *apiclient.Pagination, error)) ([]T, error) {
	const limit = 100

	var all []T
	for page := 1; ; page++ {
		rows, pagination, err := fetch(ctx, page, limit)
		if err != nil {
			return nil, err
		}
		all = append(all, rows...)
		if len(rows) == 0 || pagination == nil || len(all) >= pagination.Total {
			return all, nil
		}
	}
}
