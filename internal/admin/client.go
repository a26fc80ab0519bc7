package admin

import (
	"context"
	"net/url"
	"strconv"

	"github.com/nao1215/marketcli/pkg/apiclient"
)

// ListAdmins は管理者の一覧をページ単位で取得する。
func ListAdmins(ctx context.Context, client *apiclient.Client, page, limit int) ([]User, *apiclient.Pagination, error) {
	return listUsers(ctx, client, "/api/v1/admin/admins", page, limit)
}

// ListCouriers は配達員の一覧をページ単位で取得する。
func ListCouriers(ctx context.Context, client *apiclient.Client, page, limit int) ([]User, *apiclient.Pagination, error) {
	return listUsers(ctx, client, "/api/v1/admin/couriers", page, limit)
}

// ListBuyers は購入者の一覧をページ単位で取得する。
func ListBuyers(ctx context.Context, client *apiclient.Client, page, limit int) ([]User, *apiclient.Pagination, error) {
	return listUsers(ctx, client, "/api/v1/admin/buyers", page, limit)
}

// ListSellers は出品者の一覧をページ単位で取得する。
func ListSellers(ctx context.Context, client *apiclient.Client, page, limit int) ([]Seller, *apiclient.Pagination, error) {
	var sellers []Seller
	pagination, err := client.GetList(ctx, "/api/v1/admin/sellers", pageQuery(page, limit), &sellers)
	if err != nil {
		return nil, nil, err
	}
	return sellers, pagination, nil
}

// ListPendingSellers は承認待ちの出品者一覧をページ単位で取得する。
func ListPendingSellers(ctx context.Context, client *apiclient.Client, page, limit int) ([]Seller, *apiclient.Pagination, error) {
	var sellers []Seller
	pagination, err := client.GetList(ctx, "/api/v1/admin/sellers/pending", pageQuery(page, limit), &sellers)
	if err != nil {
		return nil, nil, err
	}
	return sellers, pagination, nil
}

// ApproveSeller は出品者を承認する。
func ApproveSeller(ctx context.Context, client *apiclient.Client, sellerID string) (Seller, error) {
	var seller Seller
	if err := client.PutJSON(ctx, "/api/v1/admin/sellers/"+sellerID+"/approve", nil, &seller); err != nil {
		return Seller{}, err
	}
	return seller, nil
}

// ListOrders は全注文の一覧をページ単位で取得する。
func ListOrders(ctx context.Context, client *apiclient.Client, page, limit int) ([]Order, *apiclient.Pagination, error) {
	var orders []Order
	pagination, err := client.GetList(ctx, "/api/v1/admin/orders", pageQuery(page, limit), &orders)
	if err != nil {
		return nil, nil, err
	}
	return orders, pagination, nil
}

// ListProducts は全商品の一覧をページ単位で取得する。
func ListProducts(ctx context.Context, client *apiclient.Client, page, limit int) ([]Product, *apiclient.Pagination, error) {
	var products []Product
	pagination, err := client.GetList(ctx, "/api/v1/admin/products", pageQuery(page, limit), &products)
	if err != nil {
		return nil, nil, err
	}
	return products, pagination, nil
}

// ListComplaints は苦情の一覧をページ単位で取得する。
func ListComplaints(ctx context.Context, client *apiclient.Client, page, limit int) ([]Complaint, *apiclient.Pagination, error) {
	var complaints []Complaint
	pagination, err := client.GetList(ctx, "/api/v1/admin/complaints", pageQuery(page, limit), &complaints)
	if err != nil {
		return nil, nil, err
	}
	return complaints, pagination, nil
}

// GetAnalytics はマーケット全体のサマリーを取得する。
func GetAnalytics(ctx context.Context, client *apiclient.Client) (Analytics, error) {
	var analytics Analytics
	if err := client.GetJSON(ctx, "/api/v1/admin/analytics", nil, &analytics); err != nil {
		return Analytics{}, err
	}
	return analytics, nil
}

// listUsers はユーザー一覧系エンドポイントの共通処理。
func listUsers(ctx context.Context, client *apiclient.Client, path string, page, limit int) ([]User, *apiclient.Pagination, error) {
	var users []User
	pagination, err := client.GetList(ctx, path, pageQuery(page, limit), &users)
	if err != nil {
		return nil, nil, err
	}
	return users, pagination, nil
}

// pageQuery はページネーション用のクエリ文字列を組み立てる。
func pageQuery(page, limit int) url.Values {
	query := url.Values{}
	if page > 0 {
		query.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	return query
}
