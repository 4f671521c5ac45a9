package cart

import "spiceshop/internal/domain/money"

// State はカート全体。値として扱い、変更は Reduce だけが行う。
// lines の quantity は常に 1..MaxLineQuantity。
type State struct {
	lines map[string]Line
	// 表示順（最初に追加された順）
	order  []string
	IsOpen bool
}

func Empty() State {
	return State{}
}

func (s State) Len() int {
	return len(s.lines)
}

func (s State) IsEmpty() bool {
	return len(s.lines) == 0
}

func (s State) Line(id string) (Line, bool) {
	l, ok := s.lines[id]
	return l, ok
}

// Lines は表示順のコピーを返す。
func (s State) Lines() []Line {
	out := make([]Line, 0, len(s.order))
	for _, id := range s.order {
		if l, ok := s.lines[id]; ok {
			out = append(out, l)
		}
	}
	return out
}

// Snapshot は注文用のコピー。Line は値型なので返した後にカートが変わっても影響しない。
func (s State) Snapshot() []Line {
	return s.Lines()
}

// 毎回計算する（キャッシュしない）
func (s State) ItemCount() int64 {
	var n int64
	for _, l := range s.lines {
		n += l.Quantity
	}
	return n
}

func (s State) Total() money.Money {
	var total money.Money
	for _, l := range s.lines {
		total = total.Add(l.Total())
	}
	return total
}

func (s State) clone() State {
	next := State{
		lines:  make(map[string]Line, len(s.lines)+1),
		order:  make([]string, len(s.order), len(s.order)+1),
		IsOpen: s.IsOpen,
	}
	for id, l := range s.lines {
		next.lines[id] = l
	}
	copy(next.order, s.order)
	return next
}
