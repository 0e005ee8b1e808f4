// Package fakebackend is an in-memory stand-in for the Mr. Daeback backend.
// It prices draft orders the way the real backend does, records every call
// and can be told to fail specific ones.
package fakebackend

import (
	"fmt"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/AndreyVLZ/mr-daebak/internal/daebak/app/internal/model/assistant"
	"github.com/AndreyVLZ/mr-daebak/internal/daebak/app/internal/model/catalog"
	"github.com/AndreyVLZ/mr-daebak/internal/daebak/app/internal/model/order"
	"github.com/AndreyVLZ/mr-daebak/internal/daebak/app/internal/model/product"
	"github.com/AndreyVLZ/mr-daebak/internal/daebak/app/repository/backend"
	"github.com/google/uuid"
)

type cart struct {
	order.Cart
	req order.CartRequest
}

type Backend struct {
	mu       sync.Mutex
	dinners  []catalog.Dinner
	styles   []catalog.ServingStyle
	menu     []catalog.MenuItem
	defaults map[string][]catalog.DefaultMenuItem
	products map[string]*product.Product
	carts    map[string]cart
	orders   []order.Order
	cards    []order.PaymentCard
	chat     []assistant.ChatReply
	calls    []string
	failures map[string]error
	seq      int
	now      func() time.Time
}

func New() *Backend {
	return &Backend{
		dinners:  seedDinners(),
		styles:   seedStyles(),
		menu:     seedMenu(),
		defaults: seedDefaults(),
		products: make(map[string]*product.Product),
		carts:    make(map[string]cart),
		cards:    seedCards(),
		failures: make(map[string]error),
		now:      time.Now,
	}
}

func (b *Backend) Name() string { return "fake backend" }

// Calls lists the requests received so far as "METHOD /path".
func (b *Backend) Calls() []string {
	b.mu.Lock()
	defer b.mu.Unlock()

	return slices.Clone(b.calls)
}

func (b *Backend) ResetCalls() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.calls = nil
}

// FailOn makes the call (in Calls format) return err until cleared with a nil err.
func (b *Backend) FailOn(call string, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err == nil {
		delete(b.failures, call)
		return
	}

	b.failures[call] = err
}

func (b *Backend) SetPaymentCards(cards []order.PaymentCard) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.cards = slices.Clone(cards)
}

// ScriptChat queues replies returned by Chat in order.
func (b *Backend) ScriptChat(replies ...assistant.ChatReply) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.chat = append(b.chat, replies...)
}

// Product returns a copy of the stored draft order.
func (b *Backend) Product(id string) (product.Product, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	p, ok := b.products[id]
	if !ok {
		return product.Product{}, false
	}

	return p.Clone(), true
}

// enter records the call and returns the injected failure for it, if any.
// The caller holds b.mu.
func (b *Backend) enter(method, path string) error {
	call := method + " " + path
	b.calls = append(b.calls, call)

	return b.failures[call]
}

func (b *Backend) nextID(prefix string) string {
	b.seq++
	return fmt.Sprintf("%s-%d-%s", prefix, b.seq, uuid.NewString()[:8])
}

func notFound(format string, args ...any) error {
	return backend.NewStatusError(http.StatusNotFound, fmt.Sprintf(format, args...))
}

func badRequest(format string, args ...any) error {
	return backend.NewStatusError(http.StatusBadRequest, fmt.Sprintf(format, args...))
}
