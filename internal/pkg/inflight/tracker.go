package inflight

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrInFlight 同一条记录已有操作在处理中
var ErrInFlight = errors.New("another action on this advertisement is still in progress")

type Kind string

const (
	KindIdle    Kind = "idle"
	KindPending Kind = "pending"
	KindFailed  Kind = "failed"
)

// State 单条记录的请求状态：Idle | Pending(action) | Failed(error)
type State struct {
	Kind      Kind      `json:"kind"`
	Action    string    `json:"action,omitempty"`
	Error     string    `json:"error,omitempty"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func Idle() State {
	return State{Kind: KindIdle}
}

func Pending(action string) State {
	return State{Kind: KindPending, Action: action, UpdatedAt: time.Now()}
}

func Failed(action string, err error) State {
	s := State{Kind: KindFailed, Action: action, UpdatedAt: time.Now()}
	if err != nil {
		s.Error = err.Error()
	}
	return s
}

// Tracker 保证每条记录同时最多一个进行中的操作
type Tracker interface {
	// Begin 进入 Pending；记录已处于 Pending 时返回 ErrInFlight
	Begin(ctx context.Context, id int64, action string) error
	// Succeed 回到 Idle
	Succeed(ctx context.Context, id int64) error
	// Fail 进入 Failed，记录错误信息
	Fail(ctx context.Context, id int64, action string, cause error) error
	Get(ctx context.Context, id int64) (State, error)
}

// MemoryTracker 单实例部署或测试使用
type MemoryTracker struct {
	mu     sync.Mutex
	states map[int64]State
}

func NewMemoryTracker() *MemoryTracker {
	return &MemoryTracker{states: make(map[int64]State)}
}

func (t *MemoryTracker) Begin(_ context.Context, id int64, action string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if s, ok := t.states[id]; ok && s.Kind == KindPending {
		return ErrInFlight
	}
	t.states[id] = Pending(action)
	return nil
}

func (t *MemoryTracker) Succeed(_ context.Context, id int64) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	delete(t.states, id)
	return nil
}

func (t *MemoryTracker) Fail(_ context.Context, id int64, action string, cause error) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.states[id] = Failed(action, cause)
	return nil
}

func (t *MemoryTracker) Get(_ context.Context, id int64) (State, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if s, ok := t.states[id]; ok {
		return s, nil
	}
	return Idle(), nil
}
