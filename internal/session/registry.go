package session

import (
	"sync"
	"time"

	"spiceshop/internal/cart"
	"spiceshop/internal/checkout"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Session は1つのブラウザに対応するカートと注文フォーム。
type Session struct {
	ID       string
	Cart     *cart.Store
	Checkout *checkout.Workflow
}

// WorkflowFactory は新しいセッション用の Workflow を作る。
type WorkflowFactory func(store *cart.Store) *checkout.Workflow

// Registry はセッションIDから Session を引く。
// 一定時間使われないセッションと、上限を超えた古いセッションは捨てる（カートは永続化しない）。
type Registry struct {
	// GetOrCreate の検索と登録をまとめて1つにする
	mu          sync.Mutex
	sessions    *expirable.LRU[string, *Session]
	newWorkflow WorkflowFactory
}

func NewRegistry(size int, ttl time.Duration, newWorkflow WorkflowFactory) *Registry {
	return &Registry{
		sessions:    expirable.NewLRU[string, *Session](size, nil, ttl),
		newWorkflow: newWorkflow,
	}
}

// GetOrCreate は id のセッションを返す。無ければ（期限切れ含む）新しく作る。
// 2つ目の戻り値は新規作成したかどうか。
func (r *Registry) GetOrCreate(id string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if id != "" {
		if s, ok := r.sessions.Get(id); ok {
			// 触るたびに期限を延ばす
			r.sessions.Add(id, s)
			return s, false
		}
	}
	if _, err := uuid.Parse(id); err != nil {
		id = uuid.NewString()
	}

	store := cart.NewStore()
	s := &Session{ID: id, Cart: store, Checkout: r.newWorkflow(store)}
	r.sessions.Add(id, s)
	return s, true
}

func (r *Registry) Get(id string) (*Session, bool) {
	return r.sessions.Get(id)
}

func (r *Registry) Remove(id string) {
	r.sessions.Remove(id)
}

func (r *Registry) Len() int {
	return r.sessions.Len()
}
