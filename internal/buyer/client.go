// Package buyer は購入者向けのリソース呼び出し関数を提供する。
// カートの操作と注文の作成・参照を扱う。商品の閲覧はcatalogパッケージを参照。
package buyer

import (
	"context"
	"net/url"
	"strconv"

	"github.com/nao1215/marketcli/pkg/apiclient"
)

// GetCart は現在のカート内容を取得する。
func GetCart(ctx context.Context, client *apiclient.Client) (Cart, error) {
	var cart Cart
	if err := client.GetJSON(ctx, "/api/v1/cart", nil, &cart); err != nil {
		return Cart{}, err
	}
	return cart, nil
}

// AddCartItem は商品をカートに追加する。
func AddCartItem(ctx context.Context, client *apiclient.Client, input CartItemInput) (Cart, error) {
	if input.ProductID == "" || input.Quantity <= 0 {
		return Cart{}, &apiclient.Error{
			Kind: apiclient.KindBadRequest, Code: 0,
			Message: "商品と数量を指定してください", Fatal: false,
		}
	}

	var cart Cart
	if err := client.PostJSON(ctx, "/api/v1/cart", input, &cart); err != nil {
		return Cart{}, err
	}
	return cart, nil
}

// UpdateCartItem はカート内商品の数量を変更する。
func UpdateCartItem(ctx context.Context, client *apiclient.Client, input CartItemInput) (Cart, error) {
	if input.ProductID == "" || input.Quantity <= 0 {
		return Cart{}, &apiclient.Error{
			Kind: apiclient.KindBadRequest, Code: 0,
			Message: "商品と数量を指定してください", Fatal: false,
		}
	}

	var cart Cart
	if err := client.PutJSON(ctx, "/api/v1/cart/"+input.ProductID, input, &cart); err != nil {
		return Cart{}, err
	}
	return cart, nil
}

// RemoveCartItem はカートから商品を削除する。
func RemoveCartItem(ctx context.Context, client *apiclient.Client, productID string) (Cart, error) {
	var cart Cart
	if err := client.DeleteJSON(ctx, "/api/v1/cart/"+productID, &cart); err != nil {
		return Cart{}, err
	}
	return cart, nil
}

// PlaceOrder はカートの内容から注文を作成する。
func PlaceOrder(ctx context.Context, client *apiclient.Client, input OrderInput) (Order, error) {
	if input.Address == "" {
		return Order{}, &apiclient.Error{
			Kind: apiclient.KindBadRequest, Code: 0,
			Message: "配送先住所を入力してください", Fatal: false,
		}
	}

	var order Order
	if err := client.PostJSON(ctx, "/api/v1/orders", input, &order); err != nil {
		return Order{}, err
	}
	return order, nil
}

// ListOrders は自分の注文履歴をページ単位で取得する。
func ListOrders(ctx context.Context, client *apiclient.Client, page, limit int) ([]Order, *apiclient.Pagination, error) {
	query := url.Values{}
	if page > 0 {
		query.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}

	var orders []Order
	pagination, err := client.GetList(ctx, "/api/v1/orders", query, &orders)
	if err != nil {
		return nil, nil, err
	}
	return orders, pagination, nil
}
