package courier

import (
	"context"
	"net/url"
	"strconv"

	"github.com/nao1215/marketcli/pkg/apiclient"
)

// ListAssignedOrders は自分に割り当てられた注文をページ単位で取得する。
func ListAssignedOrders(ctx context.Context, client *apiclient.Client, page, limit int) ([]Order, *apiclient.Pagination, error) {
	var orders []Order
	pagination, err := client.GetList(ctx, "/api/v1/courier/orders", pageQuery(page, limit), &orders)
	if err != nil {
		return nil, nil, err
	}
	return orders, pagination, nil
}

// UpdateOrderStatus は注文の配達ステータスを更新する。
func UpdateOrderStatus(ctx context.Context, client *apiclient.Client, orderID, status string) (Order, error) {
	if status == "" {
		return Order{}, &apiclient.Error{
			Kind: apiclient.KindBadRequest, Code: 0,
			Message: "更新後のステータスを指定してください", Fatal: false,
		}
	}

	var order Order
	if err := client.PutJSON(ctx, "/api/v1/courier/orders/"+orderID+"/status", StatusUpdate{Status: status}, &order); err != nil {
		return Order{}, err
	}
	return order, nil
}

// ReportIssue は配達トラブルを報告する。
func ReportIssue(ctx context.Context, client *apiclient.Client, input IssueInput) (Issue, error) {
	if input.OrderID == "" || input.Description == "" {
		return Issue{}, &apiclient.Error{
			Kind: apiclient.KindBadRequest, Code: 0,
			Message: "注文IDとトラブル内容を入力してください", Fatal: false,
		}
	}

	var issue Issue
	if err := client.PostJSON(ctx, "/api/v1/courier/issues", input, &issue); err != nil {
		return Issue{}, err
	}
	return issue, nil
}

// GetAnalytics は配達実績サマリーを取得する。
func GetAnalytics(ctx context.Context, client *apiclient.Client) (Analytics, error) {
	var analytics Analytics
	if err := client.GetJSON(ctx, "/api/v1/courier/analytics", nil, &analytics); err != nil {
		return Analytics{}, err
	}
	return analytics, nil
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
