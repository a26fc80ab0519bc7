package screen

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/nao1215/marketcli/internal/account"
	"github.com/nao1215/marketcli/pkg/apiclient"
	"github.com/nao1215/marketcli/pkg/authgate"
	"github.com/nao1215/marketcli/pkg/session"
)

// Loop は端末上の対話ループ。ログイン画面とロール別ダッシュボードを行き来する。
type Loop struct {
	// client はAPIクライアント。
	client *apiclient.Client
	// pageSize はテーブルの1ページあたりの行数。
	pageSize int
	// in は入力の読み取り元。
	in *bufio.Scanner
	// out は画面の出力先。
	out io.Writer
	// logger は構造化ログ。
	logger *zap.Logger
	// gate は取得結果のシーケンスフェンシング。
	gate fetchGate
	// view は現在表示中のテーブル。未表示ならnil。
	view View
	// openIndex は表示中の画面の添字。未表示なら-1。
	openIndex int
	// banner は次のプロンプト前に1度だけ表示する回復可能エラー。
	banner string
	// narrow は狭い端末向けの列省略を有効にする。
	narrow bool
	// loginForced は401によりログイン画面へ強制送還されたことを示す。
	loginForced bool
}

// NewLoop は対話ループを生成する。
func NewLoop(client *apiclient.Client, pageSize int, in io.Reader, out io.Writer, logger *zap.Logger) *Loop {
	return &Loop{
		client:    client,
		pageSize:  pageSize,
		in:        bufio.NewScanner(in),
		out:       out,
		logger:    logger,
		openIndex: -1,
	}
}

// ForceLogin はログイン画面への強制送還を予約する。
// APIクライアントの401フックから呼ばれる。
func (l *Loop) ForceLogin() {
	l.loginForced = true
}

// leaveReason はダッシュボードを抜けた理由。
type leaveReason int

const (
	leaveQuit leaveReason = iota
	leaveLogout
	leaveLogin
)

// Run は終了コマンドか入力の終端までループする。
func (l *Loop) Run(ctx context.Context) error {
	for {
		sess := l.client.Sessions().Current()
		if l.loginForced || authgate.Check(sess) == authgate.DecisionRedirectLogin {
			l.loginForced = false
			ok, err := l.login(ctx)
			if err != nil {
				return err
			}
			if !ok {
				return nil
			}
			continue
		}

		switch l.dashboard(ctx, sess) {
		case leaveQuit:
			return nil
		case leaveLogout:
			if err := account.Logout(l.client); err != nil {
				return fmt.Errorf("ログアウトに失敗: %w", err)
			}
			fmt.Fprintln(l.out, "ログアウトしました。")
		case leaveLogin:
			// 次の周回でログイン画面へ。
		}
	}
}

// login はログインに成功するまで資格情報の入力を求める。
// 入力の終端に達したときは ok=false を返す。
func (l *Loop) login(ctx context.Context) (ok bool, err error) {
	fmt.Fprintln(l.out, "=== ログイン ===")
	for {
		email, ok := l.prompt("メールアドレス> ")
		if !ok {
			return false, nil
		}
		if email == "quit" {
			return false, nil
		}
		password, ok := l.prompt("パスワード> ")
		if !ok {
			return false, nil
		}

		sess, err := account.Login(ctx, l.client, account.Credentials{Email: email, Password: password})
		if err != nil {
			l.showError(err)
			l.renderBanner()
			continue
		}
		fmt.Fprintf(l.out, "ようこそ、%sさん（%s）\n", sess.Identity.Name, sess.Identity.Role)
		return true, nil
	}
}

// dashboard はロールに応じた画面一覧を表示し、コマンドを受け付ける。
func (l *Loop) dashboard(ctx context.Context, sess *session.Session) leaveReason {
	screens := ScreensFor(l.client, l.pageSize, sess.Identity.Role)
	l.view = nil
	l.openIndex = -1
	l.printMenu(sess, screens)

	for {
		l.renderBanner()
		line, ok := l.prompt("> ")
		if !ok {
			return leaveQuit
		}
		if l.loginForced {
			return leaveLogin
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		cmd := strings.ToLower(fields[0])
		l.logger.Debug("コマンド入力", zap.String("command", cmd))

		switch cmd {
		case "quit", "exit":
			return leaveQuit
		case "logout":
			return leaveLogout
		case "menu":
			l.view = nil
			l.openIndex = -1
			l.printMenu(sess, screens)
		case "next":
			l.withView(func(v View) { v.Next() })
		case "prev":
			l.withView(func(v View) { v.Prev() })
		case "page":
			if len(fields) < 2 {
				l.banner = "使い方: page <ページ番号>"
				continue
			}
			n, err := strconv.Atoi(fields[1])
			if err != nil {
				l.banner = "ページ番号は数値で指定してください"
				continue
			}
			l.withView(func(v View) { v.JumpTo(n) })
		case "do":
			if len(fields) < 3 {
				l.banner = "使い方: do <操作番号> <行番号>"
				continue
			}
			action, actionErr := strconv.Atoi(fields[1])
			row, rowErr := strconv.Atoi(fields[2])
			if actionErr != nil || rowErr != nil {
				l.banner = "操作番号と行番号は数値で指定してください"
				continue
			}
			cur := l.current(screens)
			if cur == nil {
				l.banner = "表示中の画面がありません"
				continue
			}
			if err := l.view.RunAction(action, row); err != nil {
				l.showError(err)
			} else {
				// 操作で行データが変わったので取り直す。
				l.open(ctx, *cur)
			}
		case "reload":
			if l.current(screens) == nil {
				l.banner = "表示中の画面がありません"
				continue
			}
			l.open(ctx, *l.current(screens))
		default:
			idx, err := strconv.Atoi(cmd)
			if err != nil || idx < 1 || idx > len(screens) {
				l.banner = "不明なコマンドです（menuで画面一覧）"
				continue
			}
			l.openIndex = idx - 1
			l.open(ctx, screens[idx-1])
		}

		if l.loginForced {
			return leaveLogin
		}
	}
}

// current は表示中の画面定義を返す。未表示ならnil。
func (l *Loop) current(screens []Listing) *Listing {
	if l.view == nil || l.openIndex < 0 || l.openIndex >= len(screens) {
		return nil
	}
	return &screens[l.openIndex]
}

// open は画面の全行を取得してテーブルを表示する。
// 取得開始時のチケットが最新でなくなっていたら結果を破棄する。
// 現状Loadはこの場で同期的に完了するためチケットが古くなることはなく、
// 破棄が実際に起きるのはLoadを別ゴルーチンへ逃がしたときに限られる。
// 表示してよいのは最後に開始した取得の結果だけ、という規約はその時も変わらない。
func (l *Loop) open(ctx context.Context, listing Listing) {
	ticket := l.gate.Begin()
	fmt.Fprintln(l.out, "読み込み中...")

	view, err := listing.Load(ctx)
	if !l.gate.Commit(ticket) {
		l.logger.Debug("古い取得結果を破棄", zap.String("screen", listing.Name), zap.Uint64("ticket", ticket))
		return
	}
	if err != nil {
		l.showError(err)
		return
	}

	l.view = view
	fmt.Fprintf(l.out, "--- %s ---\n", listing.Name)
	view.Render(l.out, l.narrow)
}

// withView は表示中のテーブルへページ操作を適用して再描画する。
func (l *Loop) withView(op func(View)) {
	if l.view == nil {
		l.banner = "表示中の画面がありません"
		return
	}
	op(l.view)
	l.view.Render(l.out, l.narrow)
}

// showError はエラーを致命度に応じてバナーまたはエラーページへ振り分ける。
func (l *Loop) showError(err error) {
	var apiErr *apiclient.Error
	if !errors.As(err, &apiErr) {
		l.banner = err.Error()
		return
	}

	l.logger.Warn("API呼び出しに失敗",
		zap.String("kind", apiErr.Kind.String()),
		zap.Int("code", apiErr.Code),
		zap.Bool("fatal", apiErr.Fatal),
	)
	if apiErr.Kind == apiclient.KindUnauthorized {
		// 401フックが既にセッションを破棄している。ログイン画面へ。
		l.loginForced = true
		fmt.Fprintln(l.out, "セッションの有効期限が切れました。もう一度ログインしてください。")
		return
	}
	if apiErr.Fatal {
		l.renderErrorPage(apiErr)
		return
	}
	l.banner = apiErr.Message
}

// renderBanner は保留中のバナーを1度だけ表示して破棄する。
func (l *Loop) renderBanner() {
	if l.banner == "" {
		return
	}
	fmt.Fprintf(l.out, "! %s\n", l.banner)
	l.banner = ""
}

// renderErrorPage は致命的エラーの全画面表示を行う。
func (l *Loop) renderErrorPage(apiErr *apiclient.Error) {
	fmt.Fprintln(l.out, "==============================")
	fmt.Fprintln(l.out, "エラーが発生しました")
	fmt.Fprintf(l.out, "  %s\n", apiErr.Message)
	fmt.Fprintln(l.out, "reloadで再試行できます。")
	fmt.Fprintln(l.out, "==============================")
}

// printMenu はダッシュボードの画面一覧とコマンドの案内を表示する。
func (l *Loop) printMenu(sess *session.Session, screens []Listing) {
	fmt.Fprintf(l.out, "=== %s ダッシュボード ===\n", sess.Identity.Role)
	for i, s := range screens {
		fmt.Fprintf(l.out, "  %d: %s\n", i+1, s.Name)
	}
	fmt.Fprintln(l.out, "コマンド: <番号> / next / prev / page N / do <操作> <行> / reload / menu / logout / quit")
}

// prompt はプロンプトを表示して1行読み取る。入力の終端では ok=false を返す。
func (l *Loop) prompt(p string) (line string, ok bool) {
	fmt.Fprint(l.out, p)
	if !l.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(l.in.Text()), true
}
