package session

import (
	"sync"
	"time"
)

type Store struct {
	mu       sync.RWMutex
	sessions map[ID]*Session
	now      func() time.Time
}

func NewStore() *Store {
	return &Store{
		sessions: make(map[ID]*Session),
		now:      time.Now,
	}
}

func (st *Store) Get(id ID) (*Session, bool) {
	st.mu.RLock()
	sess, ok := st.sessions[id]
	st.mu.RUnlock()

	if ok {
		sess.Touch(st.now())
	}

	return sess, ok
}

func (st *Store) Create() *Session {
	sess := New(NewID(), st.now())

	st.mu.Lock()
	st.sessions[sess.ID()] = sess
	st.mu.Unlock()

	return sess
}

// Resolve returns the session named by raw. When raw names no live session
// a new one is started, but it is kept in the store only when persist is
// set; stored reports whether the returned session lives in the store.
func (st *Store) Resolve(raw string, persist bool) (sess *Session, stored bool) {
	if id, err := ParseID(raw); err == nil {
		if known, ok := st.Get(id); ok {
			return known, true
		}
	}

	if !persist {
		return New(NewID(), st.now()), false
	}

	return st.Create(), true
}

func (st *Store) Delete(id ID) {
	st.mu.Lock()
	delete(st.sessions, id)
	st.mu.Unlock()
}

func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()

	return len(st.sessions)
}

// Evict drops sessions idle for longer than ttl. Sessions with an operation
// in flight are kept.
func (st *Store) Evict(ttl time.Duration) int {
	deadline := st.now().Add(-ttl)

	st.mu.Lock()
	defer st.mu.Unlock()

	evicted := 0

	for id, sess := range st.sessions {
		if !sess.LastSeen().Before(deadline) {
			continue
		}

		if sess.TryAcquire() != nil {
			continue
		}

		delete(st.sessions, id)
		sess.Release()

		evicted++
	}

	return evicted
}
