// Package catalog はカテゴリと商品閲覧のリソース呼び出し関数を提供する。
package catalog

import (
	"context"
	"net/url"
	"strconv"

	"github.com/nao1215/marketcli/pkg/apiclient"
)

// ListCategories はカテゴリ一覧をサブカテゴリ込みで取得する。
func ListCategories(ctx context.Context, client *apiclient.Client) ([]Category, error) {
	var categories []Category
	if err := client.GetJSON(ctx, "/api/v1/categories", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// GetCategory は指定カテゴリを取得する。
func GetCategory(ctx context.Context, client *apiclient.Client, id string) (Category, error) {
	var category Category
	if err := client.GetJSON(ctx, "/api/v1/categories/"+id, nil, &category); err != nil {
		return Category{}, err
	}
	return category, nil
}

// CreateCategory はカテゴリを作成する。管理者専用。
// ParentIDを指定するとサブカテゴリとして作成される。
func CreateCategory(ctx context.Context, client *apiclient.Client, input CategoryInput) (Category, error) {
	if input.Name == "" {
		return Category{}, &apiclient.Error{
			Kind: apiclient.KindBadRequest, Code: 0,
			Message: "カテゴリ名を入力してください", Fatal: false,
		}
	}

	var category Category
	if err := client.PostJSON(ctx, "/api/v1/categories", input, &category); err != nil {
		return Category{}, err
	}
	return category, nil
}

// UpdateCategory はカテゴリを更新する。管理者専用。
func UpdateCategory(ctx context.Context, client *apiclient.Client, id string, input CategoryInput) (Category, error) {
	if input.Name == "" {
		return Category{}, &apiclient.Error{
			Kind: apiclient.KindBadRequest, Code: 0,
			Message: "カテゴリ名を入力してください", Fatal: false,
		}
	}

	var category Category
	if err := client.PutJSON(ctx, "/api/v1/categories/"+id, input, &category); err != nil {
		return Category{}, err
	}
	return category, nil
}

// DeleteCategory はカテゴリを削除する。管理者専用。
func DeleteCategory(ctx context.Context, client *apiclient.Client, id string) error {
	return client.DeleteJSON(ctx, "/api/v1/categories/"+id, nil)
}

// SearchProducts は条件に一致する商品をページ単位で取得する。
func SearchProducts(ctx context.Context, client *apiclient.Client, q ProductQuery) ([]Product, *apiclient.Pagination, error) {
	query := url.Values{}
	if q.Search != "" {
		query.Set("search", q.Search)
	}
	if q.CategoryID != "" {
		query.Set("category_id", q.CategoryID)
	}
	if q.Page > 0 {
		query.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		query.Set("limit", strconv.Itoa(q.Limit))
	}

	var products []Product
	pagination, err := client.GetList(ctx, "/api/v1/products", query, &products)
	if err != nil {
		return nil, nil, err
	}
	return products, pagination, nil
}

// GetProduct は指定商品を取得する。
func GetProduct(ctx context.Context, client *apiclient.Client, id string) (Product, error) {
	var product Product
	if err := client.GetJSON(ctx, "/api/v1/products/"+id, nil, &product); err != nil {
		return Product{}, err
	}
	return product, nil
}
