// Package memory keeps checkout receipts in process memory. Used when no
// database is configured.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/AndreyVLZ/mr-daebak/internal/daebak/app/internal/model/order"
)

type Receipts struct {
	mu   sync.RWMutex
	list []order.Receipt
}

func New() *Receipts { return &Receipts{} }

func (store *Receipts) Name() string { return "memory receipts" }

func (store *Receipts) SaveReceipt(_ context.Context, r order.Receipt) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	for i := range store.list {
		if store.list[i].OrderID == r.OrderID {
			return nil
		}
	}

	store.list = append(store.list, r)

	return nil
}

func (store *Receipts) Receipts(_ context.Context, filter order.ReceiptFilter) ([]order.Receipt, error) {
	store.mu.RLock()
	defer store.mu.RUnlock()

	out := make([]order.Receipt, 0, len(store.list))
	for i := range store.list {
		if filter.Match(store.list[i]) {
			out = append(out, store.list[i])
		}
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })

	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}

	return out, nil
}
