package pagetable

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// Render は現在のページを固定幅テキストとしてwに描画する。
// narrowが真の場合、HideNarrowが指定された列を省略する。
// rowsが空の場合は全列にまたがるプレースホルダー行を1行だけ描画する。
func (t *Table[T]) Render(w io.Writer, narrow bool) {
	columns := t.visibleColumns(narrow)
	rows := t.PageRows()

	widths := t.columnWidths(columns, rows)
	totalWidth := tableWidth(widths)

	// ヘッダー
	fmt.Fprintln(w, strings.Repeat("=", totalWidth))
	for i, col := range columns {
		if i > 0 {
			fmt.Fprint(w, "  ")
		}
		fmt.Fprint(w, pad(col.Label, widths[i]))
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, strings.Repeat("-", totalWidth))

	// 本体
	if len(t.rows) == 0 {
		fmt.Fprintf(w, "  %s\n", t.emptyMessage)
		fmt.Fprintln(w, strings.Repeat("=", totalWidth))
		return
	}
	for _, row := range rows {
		for i, col := range columns {
			if i > 0 {
				fmt.Fprint(w, "  ")
			}
			fmt.Fprint(w, pad(cellValue(col, row), widths[i]))
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w, strings.Repeat("=", totalWidth))

	// フッター: ページ位置とページ番号リンク
	fmt.Fprintf(w, "ページ %d/%d（全%d件）  %s\n", t.CurrentPage(), t.TotalPages(), t.TotalCount(), t.pageLinkLine())

	// 行操作のヒント
	if len(t.actions) > 0 {
		labels := make([]string, 0, len(t.actions))
		for i, action := range t.actions {
			labels = append(labels, fmt.Sprintf("[%d] %s", i+1, action.Label))
		}
		fmt.Fprintf(w, "操作: %s\n", strings.Join(labels, "  "))
	}
}

// visibleColumns は画面幅に応じて表示する列を選択する。
func (t *Table[T]) visibleColumns(narrow bool) []Column[T] {
	if !narrow {
		return t.columns
	}
	columns := make([]Column[T], 0, len(t.columns))
	for _, col := range t.columns {
		if col.HideNarrow {
			continue
		}
		columns = append(columns, col)
	}
	return columns
}

// columnWidths は各列の表示幅を計算する。
// ヘッダーと現在ページのセル値のうち最長のものに合わせる。
func (t *Table[T]) columnWidths(columns []Column[T], rows []T) []int {
	widths := make([]int, len(columns))
	for i, col := range columns {
		widths[i] = utf8.RuneCountInString(col.Label)
		for _, row := range rows {
			if l := utf8.RuneCountInString(cellValue(col, row)); l > widths[i] {
				widths[i] = l
			}
		}
	}
	return widths
}

// pageLinkLine はページ番号リンクの行を組み立てる。
// 現在ページは[n]、それ以外はn、省略範囲は...で表す。
func (t *Table[T]) pageLinkLine() string {
	nums := t.PageNumbers()
	if len(nums) == 0 {
		return ""
	}

	current := t.CurrentPage()
	parts := make([]string, 0, len(nums))
	for _, n := range nums {
		switch {
		case n == Ellipsis:
			parts = append(parts, "...")
		case n == current:
			parts = append(parts, fmt.Sprintf("[%d]", n))
		default:
			parts = append(parts, fmt.Sprintf("%d", n))
		}
	}
	return strings.Join(parts, " ")
}

// cellValue は列定義に従ってセル文字列を生成する。
func cellValue[T any](col Column[T], row T) string {
	if col.Render == nil {
		return ""
	}
	return col.Render(row)
}

// pad は文字列を指定幅まで空白で右詰めする。
func pad(s string, width int) string {
	if l := utf8.RuneCountInString(s); l < width {
		return s + strings.Repeat(" ", width-l)
	}
	return s
}

// tableWidth は列幅と区切り空白からテーブル全体の幅を計算する。
func tableWidth(widths []int) int {
	total := 0
	for _, w := range widths {
		total += w
	}
	if len(widths) > 1 {
		total += 2 * (len(widths) - 1)
	}
	if total < 20 {
		total = 20
	}
	return total
}
