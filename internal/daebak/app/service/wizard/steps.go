package wizard

import (
	"context"
	"fmt"

	"github.com/AndreyVLZ/mr-daebak/internal/daebak/app/internal/model/flow"
	"github.com/AndreyVLZ/mr-daebak/internal/daebak/app/internal/model/product"
	"github.com/AndreyVLZ/mr-daebak/internal/daebak/app/service/internal"
	"github.com/AndreyVLZ/mr-daebak/internal/daebak/app/service/session"
)

// Next advances one step once the current step is complete. Leaving the
// style step creates the draft order; leaving the customize step syncs it.
func (srv wizardService) Next(ctx context.Context, sess *session.Session) (View, error) {
	return run(sess, func(st *flow.State) error {
		switch st.Step() {
		case flow.StepIntro:
		case flow.StepAddress:
			if st.Address() == "" {
				return internal.Invalid("selectedAddress", "select a delivery address")
			}
		case flow.StepDinner:
			if st.Dinner() == nil {
				return internal.Invalid("selectedDinner", "select a dinner")
			}
		case flow.StepStyle:
			if err := srv.createDraft(ctx, st); err != nil {
				return err
			}
		case flow.StepCustomize:
			if err := srv.reconcile(ctx, st); err != nil {
				return err
			}
		case flow.StepCheckout:
			return nil
		default:
			return fmt.Errorf("next: unsupported step %s", st.Step())
		}

		st.NextStep()

		return nil
	})
}

// Back moves one step back. Leaving the style or customize step with work
// that would be lost needs confirmed, otherwise a ConfirmError is returned
// and nothing changes.
func (srv wizardService) Back(ctx context.Context, sess *session.Session, confirmed bool) (View, error) {
	return run(sess, func(st *flow.State) error {
		switch st.Step() {
		case flow.StepStyle:
			if st.Style() != nil || st.CreatedProduct() != nil {
				if !confirmed {
					return ConfirmError{Step: flow.StepStyle}
				}

				srv.discardDraft(ctx, st)
				st.SetStyle(nil)
			}
		case flow.StepCustomize:
			if st.HasMenuChanges() {
				if !confirmed {
					return ConfirmError{Step: flow.StepCustomize}
				}

				st.ResetCustomizations()
			}
		case flow.StepIntro, flow.StepAddress, flow.StepDinner, flow.StepCheckout:
		default:
			return fmt.Errorf("back: unsupported step %s", st.Step())
		}

		st.PrevStep()

		return nil
	})
}

// createDraft replaces any previous draft order with a new one built from
// the current selections.
func (srv wizardService) createDraft(ctx context.Context, st *flow.State) error {
	style, dinner, address := st.Style(), st.Dinner(), st.Address()

	switch {
	case style == nil:
		return internal.Invalid("selectedStyle", "select a serving style")
	case dinner == nil:
		return internal.Invalid("selectedDinner", "select a dinner")
	case address == "":
		return internal.Invalid("selectedAddress", "select a delivery address")
	}

	srv.discardDraft(ctx, st)

	created, err := srv.api.CreateProduct(ctx, product.CreateRequest{
		DinnerID:       dinner.ID,
		ServingStyleID: style.ID,
		Quantity:       st.Quantity(),
		Memo:           st.Memo(),
		Address:        address,
	})
	if err != nil {
		return fmt.Errorf("create draft order: %w", err)
	}

	st.SetCreatedProduct(&created)
	srv.log.Debug("draft order created", "productID", created.ID, "totalPrice", created.TotalPrice.Int64())

	return nil
}

// discardDraft deletes the held draft order remotely and forgets it.
// A draft that is already gone is fine; other failures are only logged.
func (srv wizardService) discardDraft(ctx context.Context, st *flow.State) {
	p := st.CreatedProduct()
	if p == nil {
		return
	}

	if err := srv.api.DeleteProduct(ctx, p.ID); err != nil && !internal.IsNotFound(err) {
		srv.log.Warn("delete previous draft order", "productID", p.ID, "err", err)
	}

	st.SetCreatedProduct(nil)
}
