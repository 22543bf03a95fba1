package onboarding

import (
	"sync"
	"time"
)

// draftEntry はユーザーごとのドラフトと最終アクセス時刻を保持する。
type draftEntry struct {
	draft      *Draft
	lastAccess time.Time
}

// DraftStore はユーザーIDをキーにウィザードドラフトを保持する
// インメモリストア。長期間放置されたドラフトはバックグラウンドで
// 破棄される。ドラフトは送信成功時にも明示的に破棄される。
type DraftStore struct {
	mu      sync.Mutex
	entries map[string]*draftEntry

	ttl           time.Duration
	sweepInterval time.Duration
	stopCh        chan struct{}
}

// NewDraftStore は新しいDraftStoreを生成する。
// バックグラウンドで期限切れドラフトの破棄を開始する。
func NewDraftStore(ttl time.Duration) *DraftStore {
	s := &DraftStore{
		entries:       make(map[string]*draftEntry),
		ttl:           ttl,
		sweepInterval: ttl / 4,
		stopCh:        make(chan struct{}),
	}

	go s.sweepLoop()

	return s
}

// Stop はバックグラウンドの破棄ゴルーチンを停止する。
func (s *DraftStore) Stop() {
	close(s.stopCh)
}

// GetOrCreate はユーザーのドラフトを取得する。存在しなければ
// Step1の空ドラフトを作成して返す。
func (s *DraftStore) GetOrCreate(userID string) *Draft {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.entries[userID]; ok {
		e.lastAccess = time.Now()
		return e.draft
	}

	draft := NewDraft()
	s.entries[userID] = &draftEntry{
		draft:      draft,
		lastAccess: time.Now(),
	}
	return draft
}

// Get はユーザーのドラフトを取得する。存在しなければnilを返す。
func (s *DraftStore) Get(userID string) *Draft {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[userID]
	if !ok {
		return nil
	}
	e.lastAccess = time.Now()
	return e.draft
}

// Discard はユーザーのドラフトを破棄する。
func (s *DraftStore) Discard(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, userID)
}

// Mutate はユーザーのドラフトをロック保持下で変更する。
// ドラフトごとの並行アクセスを直列化するための唯一の変更経路。
func (s *DraftStore) Mutate(userID string, fn func(d *Draft) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[userID]
	if !ok {
		e = &draftEntry{draft: NewDraft()}
		s.entries[userID] = e
	}
	e.lastAccess = time.Now()
	return fn(e.draft)
}

// Count は現在保持しているドラフト数を返す。テストおよびメトリクス用。
func (s *DraftStore) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// sweepLoop はバックグラウンドで期限切れドラフトを定期的に破棄する。
func (s *DraftStore) sweepLoop() {
	ticker := time.NewTicker(s.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweep()
		case <-s.stopCh:
			return
		}
	}
}

// sweep は最終アクセスからTTLを超えたドラフトを削除する。
func (s *DraftStore) sweep() {
	now := time.Now()

	s.mu.Lock()
	for userID, e := range s.entries {
		if now.Sub(e.lastAccess) > s.ttl {
			delete(s.entries, userID)
		}
	}
	s.mu.Unlock()
}
