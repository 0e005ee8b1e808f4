// Package session owns the per-customer state: one order wizard, one
// assistant conversation and a cached menu catalog. A session serves one
// operation at a time; a second one arriving while the first is in flight is
// rejected with ErrBusy instead of racing it.
package session

import (
	"fmt"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/AndreyVLZ/mr-daebak/internal/daebak/app/internal/model/assistant"
	"github.com/AndreyVLZ/mr-daebak/internal/daebak/app/internal/model/catalog"
	"github.com/AndreyVLZ/mr-daebak/internal/daebak/app/internal/model/flow"
	"github.com/google/uuid"
)

type busyError struct{}

func (busyError) Error() string { return "another request for this session is still in progress" }
func (busyError) Busy() bool    { return true }

var ErrBusy error = busyError{}

type ID uuid.UUID

func NewID() ID { return ID(uuid.New()) }

func ParseID(val string) (ID, error) {
	uid, err := uuid.Parse(val)
	if err != nil {
		return ID(uuid.Nil), fmt.Errorf("ParseID [%s]: %w", val, err)
	}

	return ID(uid), nil
}

func (id ID) String() string { return uuid.UUID(id).String() }

type Session struct {
	id       ID
	mu       sync.Mutex
	flow     *flow.State
	convo    *assistant.Conversation
	menu     []catalog.MenuItem
	lastSeen atomic.Int64
}

func New(id ID, now time.Time) *Session {
	sess := &Session{
		id:    id,
		flow:  flow.New(),
		convo: assistant.NewConversation(),
	}
	sess.lastSeen.Store(now.UnixNano())

	return sess
}

func (s *Session) ID() ID { return s.id }

// TryAcquire takes the session for one operation. Every successful call
// must be paired with Release.
func (s *Session) TryAcquire() error {
	if !s.mu.TryLock() {
		return ErrBusy
	}

	return nil
}

func (s *Session) Release() { s.mu.Unlock() }

// Flow, Conversation, Menu and SetMenu are only valid between TryAcquire and Release.
func (s *Session) Flow() *flow.State                    { return s.flow }
func (s *Session) Conversation() *assistant.Conversation { return s.convo }
func (s *Session) Menu() []catalog.MenuItem             { return slices.Clone(s.menu) }
func (s *Session) SetMenu(items []catalog.MenuItem)     { s.menu = slices.Clone(items) }

func (s *Session) Touch(now time.Time) { s.lastSeen.Store(now.UnixNano()) }

func (s *Session) LastSeen() time.Time { return time.Unix(0, s.lastSeen.Load()) }
