package cart

// Action はカートに対する操作。下の5種類だけ。
type Action interface {
	isAction()
}

// 1行あたりの数量の上限。これを超える分は切り捨てる。
const MaxLineQuantity int64 = 9999

// AddItem は同じIDがあれば数量を加算する（上限 MaxLineQuantity）。
type AddItem struct {
	Line Line
}

// UpdateQuantity は Quantity <= 0 なら RemoveItem と同じ。
type UpdateQuantity struct {
	ID       string
	Quantity int64
}

type RemoveItem struct {
	ID string
}

// ClearCart は行だけを空にする（IsOpenはそのまま）。
type ClearCart struct{}

type ToggleCartVisibility struct{}

func (AddItem) isAction()              {}
func (UpdateQuantity) isAction()       {}
func (RemoveItem) isAction()           {}
func (ClearCart) isAction()            {}
func (ToggleCartVisibility) isAction() {}

// Reduce は現在の状態と操作から次の状態を返す。
// 入力の State は変更しない。不正な入力は無視する（panicしない）。
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case AddItem:
		return addItem(s, a.Line)
	case UpdateQuantity:
		return updateQuantity(s, a.ID, a.Quantity)
	case RemoveItem:
		return removeItem(s, a.ID)
	case ClearCart:
		return State{IsOpen: s.IsOpen}
	case ToggleCartVisibility:
		s.IsOpen = !s.IsOpen
		return s
	default:
		return s
	}
}

func addItem(s State, l Line) State {
	if l.Quantity < 1 {
		return s
	}

	next := s.clone()
	if existing, ok := next.lines[l.ID]; ok {
		existing.Quantity = addQuantity(existing.Quantity, l.Quantity)
		next.lines[l.ID] = existing
		return next
	}

	l.Quantity = clampQuantity(l.Quantity)
	next.lines[l.ID] = l
	next.order = append(next.order, l.ID)
	return next
}

func updateQuantity(s State, id string, qty int64) State {
	if qty <= 0 {
		return removeItem(s, id)
	}
	existing, ok := s.lines[id]
	if !ok {
		return s
	}

	next := s.clone()
	existing.Quantity = clampQuantity(qty)
	next.lines[id] = existing
	return next
}

func removeItem(s State, id string) State {
	if _, ok := s.lines[id]; !ok {
		return s
	}

	next := s.clone()
	delete(next.lines, id)
	for i, v := range next.order {
		if v == id {
			next.order = append(next.order[:i], next.order[i+1:]...)
			break
		}
	}
	return next
}

// 両方とも 1 以上の前提。足す前に比べるので溢れない。
func addQuantity(cur, add int64) int64 {
	if add >= MaxLineQuantity-cur {
		return MaxLineQuantity
	}
	return cur + add
}

func clampQuantity(q int64) int64 {
	if q > MaxLineQuantity {
		return MaxLineQuantity
	}
	return q
}
