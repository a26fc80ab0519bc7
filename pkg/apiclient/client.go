package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/nao1215/marketcli/pkg/session"
)

// Client はマーケットプレイスAPIへのHTTPクライアント。
// すべてのネットワーク呼び出しはこのクライアントを経由する。
type Client struct {
	// httpClient は内部で使用するHTTPクライアント。
	httpClient *http.Client
	// baseURL は接続先APIのベースURL。
	baseURL string
	// sessions はセッションストア。トークンの参照と401時の破棄に使用する。
	sessions *session.Store
	// onUnauthorized は401応答によるセッション破棄後に呼ばれるフック。
	// ログイン画面への強制遷移に使用する。
	onUnauthorized func()
}

// Option はClientの生成オプション。
type Option func(*Client)

// WithHTTPClient は内部のHTTPクライアントを差し替える。
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithUnauthorizedHook は401応答によるセッション破棄後に呼ばれるフックを登録する。
func WithUnauthorizedHook(fn func()) Option {
	return func(c *Client) {
		c.onUnauthorized = fn
	}
}

// New は新しいAPIクライアントを生成する。
// baseURLには接続先APIのベースURL（例: "http://localhost:8080"）を指定する。
func New(baseURL string, sessions *session.Store, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL:  baseURL,
		sessions: sessions,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// IsAuthenticated はトークンが保存されているかどうかを返す。
// 有効期限の検証は行わない。失効はAPI呼び出しの401で検出する。
func (c *Client) IsAuthenticated() bool {
	return c.sessions.Token() != ""
}

// Sessions はセッションストアを返す。
// 認証フロー（ログイン・登録・プロフィール更新）がセッションを書き込むために使用する。
func (c *Client) Sessions() *session.Store {
	return c.sessions
}

// Pagination はサーバーが返すページネーション情報。
type Pagination struct {
	// Page は現在のページ番号（1始まり）。
	Page int `json:"page"`
	// Limit は1ページあたりの件数。
	Limit int `json:"limit"`
	// Total は全件数。
	Total int `json:"total"`
}

// envelope はサーバーが返すレスポンスの共通形式。
type envelope struct {
	// Success は処理の成否。
	Success bool `json:"success"`
	// Data はペイロード本体。
	Data json.RawMessage `json:"data"`
	// Pagination はコレクション応答のページネーション情報。
	Pagination *Pagination `json:"pagination"`
	// Message はエラー時のメッセージ。
	Message string `json:"message"`
	// ErrorMessage はエラー時のメッセージ（別形式のキー）。
	ErrorMessage string `json:"error"`
}

// GetJSON は指定パスにGETリクエストを送信し、ペイロードをresultにデシリアライズする。
func (c *Client) GetJSON(ctx context.Context, path string, query url.Values, result any) error {
	_, err := c.doJSON(ctx, http.MethodGet, path, query, nil, result, false)
	return err
}

// PostJSON は指定パスにJSONボディでPOSTリクエストを送信する。
func (c *Client) PostJSON(ctx context.Context, path string, body any, result any) error {
	_, err := c.doJSON(ctx, http.MethodPost, path, nil, body, result, false)
	return err
}

// PutJSON は指定パスにJSONボディでPUTリクエストを送信する。
func (c *Client) PutJSON(ctx context.Context, path string, body any, result any) error {
	_, err := c.doJSON(ctx, http.MethodPut, path, nil, body, result, false)
	return err
}

// DeleteJSON は指定パスにDELETEリクエストを送信する。
func (c *Client) DeleteJSON(ctx context.Context, path string, result any) error {
	_, err := c.doJSON(ctx, http.MethodDelete, path, nil, nil, result, false)
	return err
}

// GetList はコレクションを取得し、ページネーション情報とともに返す。
// 2xx応答であってもエンベロープが欠落・不正な場合はエラーとする。
func (c *Client) GetList(ctx context.Context, path string, query url.Values, result any) (*Pagination, error) {
	return c.doJSON(ctx, http.MethodGet, path, query, nil, result, true)
}

// Upload は指定パスにmultipart/form-dataでファイルをアップロードする。
// fieldはファイルペイロードのフィールド名。
func (c *Client) Upload(ctx context.Context, path, field, filename string, file io.Reader, result any) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile(field, filename)
	if err != nil {
		return &Error{Kind: KindUnknown, Code: 0, Message: "アップロードデータの構築に失敗しました", Fatal: false}
	}
	if _, err := io.Copy(part, file); err != nil {
		return &Error{Kind: KindUnknown, Code: 0, Message: "アップロードデータの読み取りに失敗しました", Fatal: false}
	}
	if err := writer.Close(); err != nil {
		return &Error{Kind: KindUnknown, Code: 0, Message: "アップロードデータの構築に失敗しました", Fatal: false}
	}

	return c.execute(ctx, http.MethodPost, path, nil, &buf, writer.FormDataContentType(), result, false)
}

// doJSON はJSON形式のHTTPリクエストを実行する共通処理。
func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, body any, result any, wantPagination bool) (*Pagination, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, &Error{Kind: KindUnknown, Code: 0, Message: "リクエストのシリアライズに失敗しました", Fatal: false}
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	requestURL := path
	if len(query) > 0 {
		requestURL += "?" + query.Encode()
	}

	var pagination *Pagination
	err := c.executeWith(ctx, method, requestURL, bodyReader, "application/json", func(status int, respBody []byte) *Error {
		p, apiErr := c.decodeSuccess(status, respBody, result, wantPagination)
		pagination = p
		return apiErr
	})
	if err != nil {
		return nil, err
	}
	return pagination, nil
}

// execute はボディとContent-Typeを指定してリクエストを実行する共通処理。
func (c *Client) execute(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string, result any, wantPagination bool) error {
	requestURL := path
	if len(query) > 0 {
		requestURL += "?" + query.Encode()
	}
	return c.executeWith(ctx, method, requestURL, body, contentType, func(status int, respBody []byte) *Error {
		_, apiErr := c.decodeSuccess(status, respBody, result, wantPagination)
		return apiErr
	})
}

// executeWith はHTTPリクエストの送信とエラー正規化の中核処理。
// Gatewayの中でステータスコードを検査するのはここだけ。
func (c *Client) executeWith(ctx context.Context, method, requestURL string, body io.Reader, contentType string, onSuccess func(status int, respBody []byte) *Error) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+requestURL, body)
	if err != nil {
		return &Error{Kind: KindUnknown, Code: 0, Message: "リクエストの作成に失敗しました", Fatal: false}
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("X-Request-ID", uuid.New().String())
	if token := c.sessions.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// DNS解決失敗・接続拒否・タイムアウト等はすべて通信断として扱う
		return newOfflineError()
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return newOfflineError()
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.normalizeFailure(resp.StatusCode, respBody)
	}

	if apiErr := onSuccess(resp.StatusCode, respBody); apiErr != nil {
		return apiErr
	}
	return nil
}

// normalizeFailure は非2xx応答を正規化済みエラーに変換する。
// 401の場合はセッションを破棄し、登録済みフックを一度だけ呼び出す。
func (c *Client) normalizeFailure(status int, respBody []byte) *Error {
	apiErr := newStatusError(status, serverMessage(respBody))

	if status == http.StatusUnauthorized {
		// セッション破棄とログイン画面遷移は失敗1回につき1回だけ。リトライはしない。
		_ = c.sessions.Clear()
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
	}

	return apiErr
}

// decodeSuccess は2xx応答のボディをデコードする。
// エンベロープ形式であればdataを、そうでなければボディ全体をresultに展開する。
// wantPaginationが真の場合、エンベロープの欠落・不正はエラーとする。
func (c *Client) decodeSuccess(status int, respBody []byte, result any, wantPagination bool) (*Pagination, *Error) {
	if result == nil && !wantPagination {
		return nil, nil
	}

	var env envelope
	envErr := json.Unmarshal(respBody, &env)

	if wantPagination {
		if envErr != nil || !env.Success || env.Pagination == nil {
			return nil, &Error{Kind: KindUnknown, Code: status, Message: "サーバー応答の形式が不正です", Fatal: false}
		}
		if result != nil {
			if err := json.Unmarshal(env.Data, result); err != nil {
				return nil, &Error{Kind: KindUnknown, Code: status, Message: "サーバー応答の形式が不正です", Fatal: false}
			}
		}
		return env.Pagination, nil
	}

	// エンベロープ形式ならdataを、そうでなければペイロードをそのまま展開する
	if envErr == nil && env.Success && env.Data != nil {
		if err := json.Unmarshal(env.Data, result); err != nil {
			return nil, &Error{Kind: KindUnknown, Code: status, Message: "サーバー応答の形式が不正です", Fatal: false}
		}
		return nil, nil
	}
	if err := json.Unmarshal(respBody, result); err != nil {
		return nil, &Error{Kind: KindUnknown, Code: status, Message: "サーバー応答の形式が不正です", Fatal: false}
	}
	return nil, nil
}

// serverMessage はエラー応答ボディからサーバー提供のメッセージを取り出す。
// "message"と"error"の両方のキーを受け付ける。どちらもなければ空文字列。
func serverMessage(respBody []byte) string {
	var env envelope
	if err := json.Unmarshal(respBody, &env); err != nil {
		return ""
	}
	if env.Message != "" {
		return env.Message
	}
	return env.ErrorMessage
}
