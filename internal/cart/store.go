package cart

import "sync"

// Store はカート状態の持ち主。変更は Dispatch 経由だけ。
// HTTPリクエストが同じセッションで並行しても1操作ずつ適用される。
type Store struct {
	mu    sync.Mutex
	state State
}

func NewStore() *Store {
	return &Store{state: Empty()}
}

// Dispatch は actions を順番に、まとめて1回で適用する。
func (st *Store) Dispatch(actions ...Action) State {
	st.mu.Lock()
	defer st.mu.Unlock()

	for _, a := range actions {
		st.state = Reduce(st.state, a)
	}
	return st.state
}

// DispatchFunc は現在の状態を見てから操作を決めたいとき用。
func (st *Store) DispatchFunc(decide func(State) []Action) State {
	st.mu.Lock()
	defer st.mu.Unlock()

	for _, a := range decide(st.state) {
		st.state = Reduce(st.state, a)
	}
	return st.state
}

func (st *Store) State() State {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.state
}
