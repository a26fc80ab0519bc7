package pagetable

import "fmt"

// DefaultPageSize はページサイズ未指定時の1ページあたりの行数。
const DefaultPageSize = 10

// Ellipsis はPageNumbersが返すページ番号列の中で、
// 省略された範囲を表すマーカー。
const Ellipsis = -1

// maxPlainPages はページ番号を省略なしで全表示する上限。
// これを超えると先頭・末尾・現在ページ周辺のみを表示する。
const maxPlainPages = 5

// Column はテーブルの列定義。
type Column[T any] struct {
	// Key は列の識別子。
	Key string
	// Label はヘッダーに表示する列名。
	Label string
	// Render は行レコードからセル文字列を生成する。nilの場合は空セルになる。
	Render func(T) string
	// HideNarrow は狭い画面幅でこの列を非表示にするかどうか。
	HideNarrow bool
}

// Action は行に対する操作。
type Action[T any] struct {
	// Label は操作名。
	Label string
	// Handler は対象行のレコードを引数に呼び出される。
	Handler func(T) error
}

// Table はレコード列のページングと描画を行うテーブル。
// 保持する状態は現在のページ番号のみで、元データは所有しない。
type Table[T any] struct {
	// rows は表示対象のレコード列。
	rows []T
	// pageSize は1ページあたりの行数。
	pageSize int
	// columns は列定義。
	columns []Column[T]
	// actions は行操作。
	actions []Action[T]
	// emptyMessage はrowsが空のときに表示するメッセージ。
	emptyMessage string
	// page は現在のページ番号（1始まり）。
	page int
}

// TableOption はTableの生成オプション。
type TableOption[T any] func(*Table[T])

// WithPageSize は1ページあたりの行数を指定する。0以下は無視される。
func WithPageSize[T any](n int) TableOption[T] {
	return func(t *Table[T]) {
		if n > 0 {
			t.pageSize = n
		}
	}
}

// WithActions は行操作を指定する。
func WithActions[T any](actions []Action[T]) TableOption[T] {
	return func(t *Table[T]) {
		t.actions = actions
	}
}

// WithEmptyMessage はrowsが空のときに表示するメッセージを指定する。
func WithEmptyMessage[T any](msg string) TableOption[T] {
	return func(t *Table[T]) {
		t.emptyMessage = msg
	}
}

// New は新しいテーブルを生成する。初期ページは1。
// 行データや列定義が変わる場合は呼び出し元が生成し直す。
func New[T any](rows []T, columns []Column[T], opts ...TableOption[T]) *Table[T] {
	t := &Table[T]{
		rows:         rows,
		pageSize:     DefaultPageSize,
		columns:      columns,
		emptyMessage: "データがありません",
		page:         1,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// TotalPages は総ページ数を返す。rowsが空の場合は0。
func (t *Table[T]) TotalPages() int {
	if len(t.rows) == 0 {
		return 0
	}
	return (len(t.rows) + t.pageSize - 1) / t.pageSize
}

// CurrentPage は現在のページ番号を返す。
// 常に[1, TotalPages]（空の場合は1）にクランプされた値を返す。
func (t *Table[T]) CurrentPage() int {
	return t.clamp(t.page)
}

// PageSize は1ページあたりの行数を返す。
func (t *Table[T]) PageSize() int {
	return t.pageSize
}

// TotalCount は全件数を返す。
func (t *Table[T]) TotalCount() int {
	return len(t.rows)
}

// PageRows は現在のページに含まれる行を返す。
// ページpは添字範囲 [(p-1)*pageSize, min(p*pageSize, len(rows))) を覆う。
func (t *Table[T]) PageRows() []T {
	if len(t.rows) == 0 {
		return nil
	}
	page := t.CurrentPage()
	start := (page - 1) * t.pageSize
	end := min(start+t.pageSize, len(t.rows))
	return t.rows[start:end]
}

// HasPrev は前のページが存在するかどうかを返す。
func (t *Table[T]) HasPrev() bool {
	return t.CurrentPage() > 1
}

// HasNext は次のページが存在するかどうかを返す。
func (t *Table[T]) HasNext() bool {
	return t.CurrentPage() < t.TotalPages()
}

// Prev は前のページに移動する。先頭ページでは何もしない。
func (t *Table[T]) Prev() {
	t.JumpTo(t.CurrentPage() - 1)
}

// Next は次のページに移動する。末尾ページでは何もしない。
func (t *Table[T]) Next() {
	t.JumpTo(t.CurrentPage() + 1)
}

// JumpTo は指定ページに移動する。
// 範囲外の指定は最も近い有効なページにクランプされる。
func (t *Table[T]) JumpTo(page int) {
	t.page = t.clamp(page)
}

// clamp はページ番号を[1, TotalPages]に収める。rowsが空の場合は常に1。
func (t *Table[T]) clamp(page int) int {
	total := t.TotalPages()
	if total == 0 {
		return 1
	}
	if page < 1 {
		return 1
	}
	if page > total {
		return total
	}
	return page
}

// Actions は行操作の一覧を返す。
func (t *Table[T]) Actions() []Action[T] {
	return t.actions
}

// RunAction は現在のページのrow行目にaction番目の操作を適用する。
// actionとrowはいずれも1始まりで、rowはページ内の表示位置を指す。
func (t *Table[T]) RunAction(action, row int) error {
	if action < 1 || action > len(t.actions) {
		return fmt.Errorf("操作番号が範囲外です: %d", action)
	}
	rows := t.PageRows()
	if row < 1 || row > len(rows) {
		return fmt.Errorf("行番号が範囲外です: %d", row)
	}
	return t.actions[action-1].Handler(rows[row-1])
}

// PageNumbers はページ移動リンクとして表示するページ番号列を返す。
// 総ページ数が5以下なら全ページを、それを超える場合は先頭・末尾と
// 現在ページ周辺のみを返し、省略範囲はEllipsisで表す。
// rowsが空の場合はnilを返す。
func (t *Table[T]) PageNumbers() []int {
	total := t.TotalPages()
	if total == 0 {
		return nil
	}
	if total <= maxPlainPages {
		nums := make([]int, 0, total)
		for i := 1; i <= total; i++ {
			nums = append(nums, i)
		}
		return nums
	}

	current := t.CurrentPage()
	nums := []int{1}

	start := max(2, current-1)
	end := min(total-1, current+1)
	if start > 2 {
		nums = append(nums, Ellipsis)
	}
	for i := start; i <= end; i++ {
		nums = append(nums, i)
	}
	if end < total-1 {
		nums = append(nums, Ellipsis)
	}

	return append(nums, total)
}
