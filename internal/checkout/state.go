package checkout

// State は1回の注文送信の状態。
type State int

const (
	Idle State = iota
	Submitting
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Submitting:
		return "submitting"
	default:
		return "unknown"
	}
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// 遷移表
// Idle -> Submitting : 入力OKで送信開始
// Submitting -> Idle : 成功でも失敗でも戻る（再送信できる）
var transitions = map[State][]State{
	Idle:       {Submitting},
	Submitting: {Idle},
}

func canTransition(from, to State) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}
