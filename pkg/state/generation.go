package state

import (
	"sync"

	"github.com/sheetssend-cloud/tewtest/pkg/domain"
)

// Listener は状態遷移のたびに新しいスナップショットを受け取ります。
type Listener func(domain.GenerationState)

// GenerationStore は生成リクエストの状態 (loading / error / result) を保持します。
// 状態を変えられるのは BeginLoading, Succeed, Fail, ClearError の 4 つだけです。
type GenerationStore struct {
	// deliver は遷移と通知を直列化する。リスナーが最後に受け取る状態は常に Snapshot と一致する。
	deliver sync.Mutex

	mu        sync.RWMutex
	state     domain.GenerationState
	listeners map[int]Listener
	nextID    int
}

// NewGenerationStore は Idle 状態のストアを返します。
func NewGenerationStore() *GenerationStore {
	return &GenerationStore{listeners: make(map[int]Listener)}
}

// BeginLoading は読み込み中にし、前回のエラーと結果を消します。
func (s *GenerationStore) BeginLoading() {
	s.transition(func(st *domain.GenerationState) {
		*st = domain.GenerationState{IsLoading: true}
	})
}

// Succeed は生成結果を設定します。
func (s *GenerationStore) Succeed(image domain.ImageData) {
	s.transition(func(st *domain.GenerationState) {
		*st = domain.GenerationState{ImageURL: image}
	})
}

// Fail はエラーメッセージを設定し、結果を消します。
func (s *GenerationStore) Fail(message string) {
	s.transition(func(st *domain.GenerationState) {
		*st = domain.GenerationState{Error: message}
	})
}

// ClearError はエラーだけを消します。
func (s *GenerationStore) ClearError() {
	s.transition(func(st *domain.GenerationState) {
		st.Error = ""
	})
}

// Snapshot は現在の状態のコピーを返します。
func (s *GenerationStore) Snapshot() domain.GenerationState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Subscribe は状態遷移の通知先を登録し、登録解除用の関数を返します。
func (s *GenerationStore) Subscribe(fn Listener) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.listeners, id)
			s.mu.Unlock()
		})
	}
}

// リスナーから遷移メソッドを呼んではいけない (deliver を再取得してデッドロックする)。
func (s *GenerationStore) transition(apply func(*domain.GenerationState)) {
	s.deliver.Lock()
	defer s.deliver.Unlock()

	s.mu.Lock()
	apply(&s.state)
	snapshot := s.state
	listeners := make([]Listener, 0, len(s.listeners))
	for _, fn := range s.listeners {
		listeners = append(listeners, fn)
	}
	s.mu.Unlock()

	// 通知は mu の外で行う。リスナーから Snapshot を呼んでもデッドロックしない。
	for _, fn := range listeners {
		fn(snapshot)
	}
}
