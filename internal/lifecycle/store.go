package lifecycle

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrSessionNotFound 会话不存在或已过期
var ErrSessionNotFound = errors.New("wizard session not found")

// Session 一次扫描向导会话。
// 状态只在持有会话自身锁时变更；离开向导（删除或过期）即放弃全部
// 已积累状态，不产生任何持久化。
type Session struct {
	ID        string
	State     State
	Device    *CaptureDevice
	CreatedAt time.Time
	UpdatedAt time.Time

	// mu 串行化本会话的状态转移；转移内可能有数据库往返，
	// 不得在 Store 锁内执行
	mu sync.Mutex
}

// Store 进程内会话存储。
// 会话按定义是进程本地的草稿（最终确认前不落库），因此不走数据库。
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
	backend  CaptureBackend
}

// NewStore 创建会话存储
func NewStore(ttl time.Duration, backend CaptureBackend) *Store {
	return &Store{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		backend:  backend,
	}
}

// Start 以扫入的业务键开启新会话
func (st *Store) Start(auftragsnummer string) (*Session, error) {
	state, err := Start(auftragsnummer)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	sess := &Session{
		ID:        uuid.NewString(),
		State:     state,
		Device:    NewCaptureDevice(st.backend),
		CreatedAt: now,
		UpdatedAt: now,
	}

	st.mu.Lock()
	st.sessions[sess.ID] = sess
	st.mu.Unlock()

	return sess, nil
}

// Get 读取会话；过期会话视同不存在
func (st *Store) Get(id string) (*Session, error) {
	st.mu.RLock()
	defer st.mu.RUnlock()

	sess, ok := st.sessions[id]
	if !ok || st.expired(sess, time.Now()) {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

// Update 在会话自身的锁内执行状态转移。
// Store 锁只用于查表；慢转移（比如确认时的落库）只阻塞同一会话
func (st *Store) Update(id string, fn func(*Session) error) error {
	st.mu.RLock()
	sess, ok := st.sessions[id]
	expired := ok && st.expired(sess, time.Now())
	st.mu.RUnlock()
	if !ok || expired {
		return ErrSessionNotFound
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if err := fn(sess); err != nil {
		return err
	}

	st.mu.Lock()
	sess.UpdatedAt = time.Now()
	st.mu.Unlock()
	return nil
}

// Abandon 放弃会话：删除草稿并释放可能持有的采集设备句柄
func (st *Store) Abandon(ctx context.Context, id string) {
	st.mu.Lock()
	sess, ok := st.sessions[id]
	if ok {
		delete(st.sessions, id)
	}
	st.mu.Unlock()

	if ok && sess.Device != nil {
		// 忽略释放错误：会话已经结束，句柄只需尽力归还
		_ = sess.Device.Release(ctx)
	}
}

// RunJanitor 周期清扫过期会话，直到 ctx 结束
func (st *Store) RunJanitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			st.sweep(ctx, now)
		}
	}
}

func (st *Store) sweep(ctx context.Context, now time.Time) {
	st.mu.Lock()
	var stale []*Session
	for id, sess := range st.sessions {
		if st.expired(sess, now) {
			stale = append(stale, sess)
			delete(st.sessions, id)
		}
	}
	st.mu.Unlock()

	for _, sess := range stale {
		if sess.Device != nil {
			_ = sess.Device.Release(ctx)
		}
	}
}

func (st *Store) expired(sess *Session, now time.Time) bool {
	return now.Sub(sess.UpdatedAt) > st.ttl
}
