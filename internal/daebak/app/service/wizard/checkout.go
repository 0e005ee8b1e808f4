package wizard

import (
	"context"
	"fmt"

	"github.com/AndreyVLZ/mr-daebak/internal/daebak/app/internal/model/flow"
	"github.com/AndreyVLZ/mr-daebak/internal/daebak/app/internal/model/order"
	"github.com/AndreyVLZ/mr-daebak/internal/daebak/app/pkg/idempotency"
	"github.com/AndreyVLZ/mr-daebak/internal/daebak/app/service/internal"
	"github.com/AndreyVLZ/mr-daebak/internal/daebak/app/service/pricing"
	"github.com/AndreyVLZ/mr-daebak/internal/daebak/app/service/session"
)

// Checkout wraps the draft order into a cart and places the order. It is
// only allowed on the checkout step and syncs the draft order first. On
// success the wizard starts over; on failure nothing local changes and the
// customer may retry.
func (srv wizardService) Checkout(ctx context.Context, sess *session.Session) (order.Confirmation, error) {
	if err := sess.TryAcquire(); err != nil {
		return order.Confirmation{}, err
	}
	defer sess.Release()

	st := sess.Flow()

	if st.Step() != flow.StepCheckout {
		return order.Confirmation{}, internal.Invalid("currentStep", "finish customizing the order before checking out")
	}

	draft := st.CreatedProduct()
	if draft == nil {
		return order.Confirmation{}, internal.Invalid("createdProduct", "there is no order to check out")
	}

	// a jump may have skipped the sync on leaving the customize step
	if err := srv.reconcile(ctx, st); err != nil {
		return order.Confirmation{}, err
	}

	cards, err := srv.api.PaymentCards(ctx)
	if err != nil {
		return order.Confirmation{}, fmt.Errorf("load payment methods: %w", err)
	}

	if len(cards) == 0 {
		return order.Confirmation{}, ErrNoPaymentMethod
	}

	key := idempotency.Key("checkout", draft.ID)

	seen, err := srv.once.Seen(ctx, key)
	if err != nil {
		return order.Confirmation{}, fmt.Errorf("checkout guard: %w", err)
	}

	if seen {
		return order.Confirmation{}, ErrCheckoutInProgress
	}

	preview := pricing.CheckoutTotal(st)

	placed, err := srv.placeOrder(ctx, draft.ID, st.Quantity(), st.Address(), st.Memo())
	if err != nil {
		if ferr := srv.once.Forget(ctx, key); ferr != nil {
			srv.log.Warn("release checkout guard", "key", key, "err", ferr)
		}

		return order.Confirmation{}, err
	}

	receipt := order.Receipt{
		OrderID:      placed.ID,
		OrderNumber:  placed.OrderNumber,
		SessionID:    sess.ID().String(),
		GrandTotal:   placed.GrandTotal,
		PreviewTotal: preview,
		CreatedAt:    srv.now(),
	}

	if err := srv.receipts.SaveReceipt(ctx, receipt); err != nil {
		srv.log.Error("save receipt", "orderNumber", placed.OrderNumber, "err", err)
	}

	if preview != placed.GrandTotal {
		srv.log.Info("preview diverged from order total",
			"orderNumber", placed.OrderNumber,
			"preview", preview.Int64(),
			"grandTotal", placed.GrandTotal.Int64(),
		)
	}

	st.ResetOrder()
	sess.SetMenu(nil)

	return order.Confirmation{
		OrderID:     placed.ID,
		OrderNumber: placed.OrderNumber,
		GrandTotal:  placed.GrandTotal,
	}, nil
}

func (srv wizardService) placeOrder(ctx context.Context, productID string, qty int, address, memo string) (order.Order, error) {
	cart, err := srv.api.CreateCart(ctx, order.CartRequest{
		Items:           []order.CartItem{{ProductID: productID, Quantity: qty}},
		DeliveryAddress: address,
		DeliveryMethod:  order.MethodDelivery,
		Memo:            memo,
	})
	if err != nil {
		return order.Order{}, err
	}

	placed, err := srv.api.CheckoutCart(ctx, cart.ID)
	if err != nil {
		return order.Order{}, err
	}

	return placed, nil
}
