// Package middleware はGinベースのHTTP APIで使用する共通ミドルウェアを提供する。
//
// JWT認証トークンの生成と検証、ロールによるアクセス制御、
// リクエストログ、パニックリカバリを含む。
package middleware
