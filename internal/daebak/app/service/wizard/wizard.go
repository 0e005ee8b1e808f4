// Package wizard drives the guided order flow of a session against the
// backend: step guards, draft order creation, reconciliation and checkout.
package wizard

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/AndreyVLZ/mr-daebak/internal/daebak/app/internal/model/catalog"
	"github.com/AndreyVLZ/mr-daebak/internal/daebak/app/internal/model/flow"
	"github.com/AndreyVLZ/mr-daebak/internal/daebak/app/internal/model/order"
	"github.com/AndreyVLZ/mr-daebak/internal/daebak/app/internal/model/product"
	"github.com/AndreyVLZ/mr-daebak/internal/daebak/app/service/pricing"
	"github.com/AndreyVLZ/mr-daebak/internal/daebak/app/service/session"
)

type catalogRepo interface {
	Dinners(context.Context) ([]catalog.Dinner, error)
	ServingStyles(context.Context) ([]catalog.ServingStyle, error)
	DefaultMenuItems(context.Context, string) ([]catalog.DefaultMenuItem, error)
	MenuItems(context.Context) ([]catalog.MenuItem, error)
}

type productRepo interface {
	CreateProduct(context.Context, product.CreateRequest) (product.Product, error)
	DeleteProduct(context.Context, string) error
	ProductMenuItems(context.Context, string) ([]product.Line, error)
	AddProductMenuItem(ctx context.Context, productID, menuItemID string, qty int) error
	UpdateProductMenuItem(ctx context.Context, productID, menuItemID string, qty int) error
	DeleteProductMenuItem(ctx context.Context, productID, menuItemID string) error
}

type cartRepo interface {
	PaymentCards(context.Context) ([]order.PaymentCard, error)
	CreateCart(context.Context, order.CartRequest) (order.Cart, error)
	CheckoutCart(context.Context, string) (order.Order, error)
}

type backendRepo interface {
	catalogRepo
	productRepo
	cartRepo
}

type receiptSaver interface {
	SaveReceipt(context.Context, order.Receipt) error
}

type onceGuard interface {
	Seen(context.Context, string) (bool, error)
	Forget(context.Context, string) error
}

type wizardService struct {
	api      backendRepo
	receipts receiptSaver
	once     onceGuard
	log      *slog.Logger
	now      func() time.Time
}

func NewWizardService(api backendRepo, receipts receiptSaver, once onceGuard, log *slog.Logger) wizardService {
	return wizardService{
		api:      api,
		receipts: receipts,
		once:     once,
		log:      log,
		now:      time.Now,
	}
}

// View is what the wizard renders after every operation.
type View struct {
	flow.Snapshot
	Totals         pricing.Totals     `json:"totals"`
	MenuItems      []catalog.MenuItem `json:"menuItems"`
	HasMenuChanges bool               `json:"hasMenuChanges"`
}

func viewOf(sess *session.Session) View {
	st := sess.Flow()
	menu := sess.Menu()

	return View{
		Snapshot:       st.Snapshot(),
		Totals:         pricing.Summarize(st, menu),
		MenuItems:      menu,
		HasMenuChanges: st.HasMenuChanges(),
	}
}

// run executes fn while holding the session and renders the result.
func run(sess *session.Session, fn func(st *flow.State) error) (View, error) {
	if err := sess.TryAcquire(); err != nil {
		return View{}, err
	}
	defer sess.Release()

	if err := fn(sess.Flow()); err != nil {
		return View{}, err
	}

	return viewOf(sess), nil
}

func (srv wizardService) View(_ context.Context, sess *session.Session) (View, error) {
	return run(sess, func(*flow.State) error { return nil })
}

func (srv wizardService) Jump(_ context.Context, sess *session.Session, step flow.Step) (View, error) {
	return run(sess, func(st *flow.State) error {
		if !step.Valid() {
			return fmt.Errorf("jump: %s", step)
		}

		st.SetStep(step)

		return nil
	})
}

// Reset starts over. A draft order still held is deleted on a best-effort basis.
func (srv wizardService) Reset(ctx context.Context, sess *session.Session) (View, error) {
	return run(sess, func(st *flow.State) error {
		srv.discardDraft(ctx, st)
		st.ResetOrder()
		sess.SetMenu(nil)

		return nil
	})
}
