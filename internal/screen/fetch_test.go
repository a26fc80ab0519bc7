package screen

import (
	"sync"
	"testing"
)

// TestFetchGate はfetchGateのシーケンスフェンシングを検証する。
func TestFetchGate(t *testing.T) {
	t.Parallel()

	t.Run("最後に開始された取得だけが採用されること", func(t *testing.T) {
		t.Parallel()

		var gate fetchGate
		first := gate.Begin()
		second := gate.Begin()

		// 先に開始された取得が後から完了しても破棄される。
		if gate.Commit(first) {
			t.Error("古いチケットのCommit()はfalseを返すべき")
		}
		if !gate.Commit(second) {
			t.Error("最新チケットのCommit()はtrueを返すべき")
		}
	})

	t.Run("チケットが単調増加すること", func(t *testing.T) {
		t.Parallel()

		var gate fetchGate
		prev := gate.Begin()
		for range 100 {
			next := gate.Begin()
			if next <= prev {
				t.Fatalf("チケットが増加していない: %d -> %d", prev, next)
			}
			prev = next
		}
	})

	t.Run("並行して開始しても採用されるのは1件だけであること", func(t *testing.T) {
		t.Parallel()

		var gate fetchGate
		const workers = 50

		tickets := make([]uint64, workers)
		var wg sync.WaitGroup
		for i := range workers {
			wg.Add(1)
			go func() {
				defer wg.Done()
				tickets[i] = gate.Begin()
			}()
		}
		wg.Wait()

		committed := 0
		for _, ticket := range tickets {
			if gate.Commit(ticket) {
				committed++
			}
		}
		if committed != 1 {
			t.Errorf("採用された取得 = %d件, want 1件", committed)
		}
	})
}
