package screen

import "sync"

// fetchGate は画面単位の取得に単調増加のチケットを払い出し、
// 最後に開始された取得だけを採用するためのゲート。
// 先に開始された取得が後から完了しても、その結果は破棄される。
type fetchGate struct {
	mu     sync.Mutex
	latest uint64
}

// Begin は新しい取得の開始を記録し、チケットを払い出す。
func (g *fetchGate) Begin() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.latest++
	return g.latest
}

// Commit はチケットの取得が依然として最新かどうかを報告する。
// falseを受け取った呼び出し側は結果を破棄しなければならない。
func (g *fetchGate) Commit(ticket uint64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return ticket == g.latest
}
