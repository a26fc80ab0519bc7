// Package seller は出品者向けのリソース呼び出し関数を提供する。
// 自分の商品の管理・注文の参照・売上サマリーの取得を扱う。
package seller

import (
	"context"
	"net/url"
	"strconv"

	"github.com/nao1215/marketcli/pkg/apiclient"
)

// ListProducts は自分の商品をページ単位で取得する。
func ListProducts(ctx context.Context, client *apiclient.Client, page, limit int) ([]Product, *apiclient.Pagination, error) {
	var products []Product
	pagination, err := client.GetList(ctx, "/api/v1/seller/products", pageQuery(page, limit), &products)
	if err != nil {
		return nil, nil, err
	}
	return products, pagination, nil
}

// CreateProduct は商品を出品する。
func CreateProduct(ctx context.Context, client *apiclient.Client, input ProductInput) (Product, error) {
	if err := validateProduct(input); err != nil {
		return Product{}, err
	}

	var product Product
	if err := client.PostJSON(ctx, "/api/v1/seller/products", input, &product); err != nil {
		return Product{}, err
	}
	return product, nil
}

// UpdateProduct は商品情報を更新する。
func UpdateProduct(ctx context.Context, client *apiclient.Client, id string, input ProductInput) (Product, error) {
	if err := validateProduct(input); err != nil {
		return Product{}, err
	}

	var product Product
	if err := client.PutJSON(ctx, "/api/v1/seller/products/"+id, input, &product); err != nil {
		return Product{}, err
	}
	return product, nil
}

// DeleteProduct は商品を取り下げる。
func DeleteProduct(ctx context.Context, client *apiclient.Client, id string) error {
	return client.DeleteJSON(ctx, "/api/v1/seller/products/"+id, nil)
}

// ListOrders は自分の商品を含む注文をページ単位で取得する。
func ListOrders(ctx context.Context, client *apiclient.Client, page, limit int) ([]Order, *apiclient.Pagination, error) {
	var orders []Order
	pagination, err := client.GetList(ctx, "/api/v1/seller/orders", pageQuery(page, limit), &orders)
	if err != nil {
		return nil, nil, err
	}
	return orders, pagination, nil
}

// GetAnalytics は売上サマリーを取得する。
func GetAnalytics(ctx context.Context, client *apiclient.Client) (Analytics, error) {
	var analytics Analytics
	if err := client.GetJSON(ctx, "/api/v1/seller/analytics", nil, &analytics); err != nil {
		return Analytics{}, err
	}
	return analytics, nil
}

// validateProduct は商品入力の必須項目を検証する。
func validateProduct(input ProductInput) error {
	if input.Name == "" || input.CategoryID == "" {
		return &apiclient.Error{
			Kind: apiclient.KindBadRequest, Code: 0,
			Message: "商品名とカテゴリを入力してください", Fatal: false,
		}
	}
	if input.Price.IsNegative() {
		return &apiclient.Error{
			Kind: apiclient.KindBadRequest, Code: 0,
			Message: "価格は0以上を指定してください", Fatal: false,
		}
	}
	return nil
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
