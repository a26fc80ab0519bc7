// Package apiclient はマーケットプレイスAPIへの唯一の窓口となるHTTPクライアントを提供する。
//
// すべてのリクエストに保存済みのBearerトークンを付与し、
// あらゆる失敗（通信断・4xx・5xx）を統一されたエラー型Errorに正規化する。
// 401応答を受け取った場合はセッションを破棄し、登録されたフックを通じて
// ログイン画面への遷移を強制する。リトライは一切行わない。
package apiclient
