// Package pagetable はメモリ上のレコード列に対する決定的なページング処理と
// 固定幅テキストのテーブル描画を提供する。
//
// データ取得には関与せず、入力された行・列定義・内部のページ番号のみから
// 出力が定まる。ネットワークアクセスもAPI Gatewayへの依存も持たない。
package pagetable
