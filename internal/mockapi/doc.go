// Package mockapi はmarketcliの開発・検証用モックAPIサーバーを提供する。
//
// 本物のバックエンドと同じ封筒形式（success/data/pagination/message）で応答する。
// ユーザー認証（JWT）、ロール別のアクセス制御、SQLiteによる永続化、
// limit/offsetページネーションを備え、全ロールのエンドポイント群を実装する。
package mockapi
