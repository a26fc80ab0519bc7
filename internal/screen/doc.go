// Package screen は端末上の画面遷移とコマンドループを提供する。
//
// ロールごとのダッシュボード（一覧画面の集合）、取得中表示、
// 回復可能エラーのバナー表示と致命的エラーのエラーページ表示、
// 遅れて届いた古い取得結果の破棄（シーケンスフェンシング）を担当する。
package screen
