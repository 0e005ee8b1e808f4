package wizard

import (
	"context"
	"fmt"

	"github.com/AndreyVLZ/mr-daebak/internal/daebak/app/internal/model/flow"
	"github.com/AndreyVLZ/mr-daebak/internal/daebak/app/internal/model/product"
	"github.com/AndreyVLZ/mr-daebak/internal/daebak/app/service/internal"
)

type OpKind uint8

const (
	OpUpdate OpKind = iota + 1
	OpCreate
	OpDelete
)

func (k OpKind) String() string {
	switch k {
	case OpUpdate:
		return "update"
	case OpCreate:
		return "create"
	case OpDelete:
		return "delete"
	default:
		return fmt.Sprintf("OpKind(%d)", uint8(k))
	}
}

// Op is one remote mutation of a draft order line.
type Op struct {
	Kind       OpKind
	MenuItemID string
	Quantity   int
}

func (op Op) String() string {
	if op.Kind == OpDelete {
		return fmt.Sprintf("%s %s", op.Kind, op.MenuItemID)
	}

	return fmt.Sprintf("%s %s x%d", op.Kind, op.MenuItemID, op.Quantity)
}

// Plan diffs local edits against the remote lines of a draft order.
//
// customs must hold the dinner's whole default composition. Default items
// are never deleted: zero restores the default quantity. Additional items
// are created, updated, or deleted at zero. Remote lines that are neither
// default nor current additional items are deleted.
// Ops come in a fixed order: default items, additional items, stale lines.
func Plan(customs []flow.MenuItemCustomization, extras []flow.AdditionalMenuItem, lines []product.Line) []Op {
	remote := make(map[string]product.Line, len(lines))
	for _, l := range lines {
		remote[l.MenuItemID] = l
	}

	known := make(map[string]struct{}, len(customs)+len(extras))
	ops := make([]Op, 0)

	for _, c := range customs {
		known[c.MenuItemID] = struct{}{}

		line, ok := remote[c.MenuItemID]
		if !ok {
			continue
		}

		switch {
		case c.CurrentQuantity == 0:
			ops = append(ops, Op{Kind: OpUpdate, MenuItemID: c.MenuItemID, Quantity: c.DefaultQuantity})
		case c.CurrentQuantity != c.DefaultQuantity:
			ops = append(ops, Op{Kind: OpUpdate, MenuItemID: c.MenuItemID, Quantity: c.CurrentQuantity})
		case line.Quantity != c.DefaultQuantity:
			// reverted locally after an earlier sync
			ops = append(ops, Op{Kind: OpUpdate, MenuItemID: c.MenuItemID, Quantity: c.DefaultQuantity})
		}
	}

	for _, a := range extras {
		known[a.MenuItemID] = struct{}{}
		_, exists := remote[a.MenuItemID]

		switch {
		case a.Quantity == 0 && exists:
			ops = append(ops, Op{Kind: OpDelete, MenuItemID: a.MenuItemID})
		case a.Quantity == 0:
		case !exists:
			ops = append(ops, Op{Kind: OpCreate, MenuItemID: a.MenuItemID, Quantity: a.Quantity})
		default:
			ops = append(ops, Op{Kind: OpUpdate, MenuItemID: a.MenuItemID, Quantity: a.Quantity})
		}
	}

	for _, l := range lines {
		if _, ok := known[l.MenuItemID]; !ok {
			ops = append(ops, Op{Kind: OpDelete, MenuItemID: l.MenuItemID})
		}
	}

	return ops
}

// ReconcileError reports a sync that stopped part way. Done lists the ops
// that were applied remotely before Failed; they are not rolled back.
type ReconcileError struct {
	Done   []Op
	Failed Op
	Err    error
}

func (e *ReconcileError) Error() string {
	return fmt.Sprintf("sync draft order: %s failed after %d applied changes: %v", e.Failed, len(e.Done), e.Err)
}

func (e *ReconcileError) Unwrap() error { return e.Err }
func (e *ReconcileError) Remote() bool  { return true }

// Apply runs ops one by one. Deleting a line that is already gone counts as
// success. The first other failure stops the run with a *ReconcileError.
func (srv wizardService) Apply(ctx context.Context, productID string, ops []Op) error {
	done := make([]Op, 0, len(ops))

	for _, op := range ops {
		var err error

		switch op.Kind {
		case OpUpdate:
			err = srv.api.UpdateProductMenuItem(ctx, productID, op.MenuItemID, op.Quantity)
		case OpCreate:
			err = srv.api.AddProductMenuItem(ctx, productID, op.MenuItemID, op.Quantity)
		case OpDelete:
			err = srv.api.DeleteProductMenuItem(ctx, productID, op.MenuItemID)
			if internal.IsNotFound(err) {
				srv.log.Debug("line already gone", "productID", productID, "menuItemID", op.MenuItemID)
				err = nil
			}
		default:
			err = fmt.Errorf("unsupported op %s", op.Kind)
		}

		if err != nil {
			return &ReconcileError{Done: done, Failed: op, Err: err}
		}

		done = append(done, op)
	}

	return nil
}

// reconcile syncs the draft order with local edits and refreshes its lines.
func (srv wizardService) reconcile(ctx context.Context, st *flow.State) error {
	p := st.CreatedProduct()
	if p == nil {
		return internal.Invalid("createdProduct", "no draft order yet, go back to the style step")
	}

	// without the default composition its lines would look stale
	if err := srv.loadDefaults(ctx, st); err != nil {
		return err
	}

	ops := Plan(st.MenuCustomizations(), st.AdditionalMenuItems(), p.Lines)
	srv.log.Debug("reconcile plan", "productID", p.ID, "ops", len(ops))

	if err := srv.Apply(ctx, p.ID, ops); err != nil {
		// the next attempt plans against what was actually applied
		if lines, rerr := srv.api.ProductMenuItems(ctx, p.ID); rerr == nil {
			st.SetProductLines(lines)
		} else {
			srv.log.Warn("refresh after failed sync", "productID", p.ID, "err", rerr)
		}

		return err
	}

	lines, err := srv.api.ProductMenuItems(ctx, p.ID)
	if err != nil {
		return fmt.Errorf("refresh draft order: %w", err)
	}

	st.SetProductLines(lines)

	return nil
}
