package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/AndreyVLZ/mr-daebak/internal/daebak/app/internal/model/catalog"
	"github.com/AndreyVLZ/mr-daebak/internal/daebak/app/internal/model/flow"
	"github.com/AndreyVLZ/mr-daebak/internal/daebak/app/internal/model/order"
	"github.com/AndreyVLZ/mr-daebak/internal/daebak/app/service/session"
	"github.com/AndreyVLZ/mr-daebak/internal/daebak/app/service/wizard"
	"github.com/go-chi/chi/v5"
)

type wizardService interface {
	View(context.Context, *session.Session) (wizard.View, error)
	Next(context.Context, *session.Session) (wizard.View, error)
	Back(context.Context, *session.Session, bool) (wizard.View, error)
	Jump(context.Context, *session.Session, flow.Step) (wizard.View, error)
	Reset(context.Context, *session.Session) (wizard.View, error)
	SelectAddress(context.Context, *session.Session, string) (wizard.View, error)
	Dinners(context.Context) ([]catalog.Dinner, error)
	SelectDinner(context.Context, *session.Session, string) (wizard.View, error)
	Styles(context.Context, *session.Session) ([]wizard.StyleOption, error)
	SelectStyle(context.Context, *session.Session, string) (wizard.View, error)
	Customize(context.Context, *session.Session) (wizard.View, error)
	SetQuantity(context.Context, *session.Session, int) (wizard.View, error)
	SetMemo(context.Context, *session.Session, string) (wizard.View, error)
	UpdateMenuItemQuantity(context.Context, *session.Session, string, int) (wizard.View, error)
	AddAdditionalMenuItem(context.Context, *session.Session, string) (wizard.View, error)
	RemoveAdditionalMenuItem(context.Context, *session.Session, string) (wizard.View, error)
	UpdateAdditionalMenuItemQuantity(context.Context, *session.Session, string, int) (wizard.View, error)
	Checkout(context.Context, *session.Session) (order.Confirmation, error)
}

type WizardHandler struct {
	srv wizardService
	log *slog.Logger
}

func NewWizardHandler(srv wizardService, log *slog.Logger) WizardHandler {
	return WizardHandler{srv: srv, log: log}
}

// serve runs fn for the caller's session and writes what it returns.
func serve[T any](log *slog.Logger, fn func(*http.Request, *session.Session) (T, error)) http.HandlerFunc {
	return func(rw http.ResponseWriter, req *http.Request) {
		sess, err := sessionFromReq(req)
		if err != nil {
			writeError(log, rw, err)
			return
		}

		out, err := fn(req, sess)
		if err != nil {
			writeError(log, rw, err)
			return
		}

		writeJSON(rw, statusOK, out)
	}
}

type quantityReq struct {
	Quantity int `json:"quantity"`
}

// GET /api/order/flow
func (wh WizardHandler) View() http.HandlerFunc {
	return serve(wh.log, func(req *http.Request, sess *session.Session) (wizard.View, error) {
		return wh.srv.View(req.Context(), sess)
	})
}

// POST /api/order/flow/next
func (wh WizardHandler) Next() http.HandlerFunc {
	return serve(wh.log, func(req *http.Request, sess *session.Session) (wizard.View, error) {
		return wh.srv.Next(req.Context(), sess)
	})
}

// POST /api/order/flow/back
// The body is optional; {"confirmed":true} accepts losing selections.
func (wh WizardHandler) Back() http.HandlerFunc {
	return serve(wh.log, func(req *http.Request, sess *session.Session) (wizard.View, error) {
		body := struct {
			Confirmed bool `json:"confirmed"`
		}{}

		if err := parseOptionalBody(req.Body, &body); err != nil {
			return wizard.View{}, err
		}

		return wh.srv.Back(req.Context(), sess, body.Confirmed)
	})
}

// POST /api/order/flow/step
func (wh WizardHandler) Jump() http.HandlerFunc {
	return serve(wh.log, func(req *http.Request, sess *session.Session) (wizard.View, error) {
		body := struct {
			Step flow.Step `json:"step"`
		}{}

		if err := parseBody(req.Body, &body); err != nil {
			return wizard.View{}, err
		}

		return wh.srv.Jump(req.Context(), sess, body.Step)
	})
}

// POST /api/order/flow/reset
func (wh WizardHandler) Reset() http.HandlerFunc {
	return serve(wh.log, func(req *http.Request, sess *session.Session) (wizard.View, error) {
		return wh.srv.Reset(req.Context(), sess)
	})
}

// POST /api/order/flow/address
func (wh WizardHandler) SelectAddress() http.HandlerFunc {
	return serve(wh.log, func(req *http.Request, sess *session.Session) (wizard.View, error) {
		body := struct {
			Address string `json:"address"`
		}{}

		if err := parseBody(req.Body, &body); err != nil {
			return wizard.View{}, err
		}

		return wh.srv.SelectAddress(req.Context(), sess, body.Address)
	})
}

// GET /api/order/catalog/dinners
func (wh WizardHandler) Dinners() http.HandlerFunc {
	return serve(wh.log, func(req *http.Request, _ *session.Session) ([]catalog.Dinner, error) {
		return wh.srv.Dinners(req.Context())
	})
}

// POST /api/order/flow/dinner
func (wh WizardHandler) SelectDinner() http.HandlerFunc {
	return serve(wh.log, func(req *http.Request, sess *session.Session) (wizard.View, error) {
		body := struct {
			DinnerID string `json:"dinnerId"`
		}{}

		if err := parseBody(req.Body, &body); err != nil {
			return wizard.View{}, err
		}

		return wh.srv.SelectDinner(req.Context(), sess, body.DinnerID)
	})
}

// GET /api/order/catalog/styles
func (wh WizardHandler) Styles() http.HandlerFunc {
	return serve(wh.log, func(req *http.Request, sess *session.Session) ([]wizard.StyleOption, error) {
		return wh.srv.Styles(req.Context(), sess)
	})
}

// POST /api/order/flow/style
func (wh WizardHandler) SelectStyle() http.HandlerFunc {
	return serve(wh.log, func(req *http.Request, sess *session.Session) (wizard.View, error) {
		body := struct {
			StyleID string `json:"styleId"`
		}{}

		if err := parseBody(req.Body, &body); err != nil {
			return wizard.View{}, err
		}

		return wh.srv.SelectStyle(req.Context(), sess, body.StyleID)
	})
}

// GET /api/order/flow/customize
func (wh WizardHandler) Customize() http.HandlerFunc {
	return serve(wh.log, func(req *http.Request, sess *session.Session) (wizard.View, error) {
		return wh.srv.Customize(req.Context(), sess)
	})
}

// POST /api/order/flow/quantity
func (wh WizardHandler) SetQuantity() http.HandlerFunc {
	return serve(wh.log, func(req *http.Request, sess *session.Session) (wizard.View, error) {
		var body quantityReq
		if err := parseBody(req.Body, &body); err != nil {
			return wizard.View{}, err
		}

		return wh.srv.SetQuantity(req.Context(), sess, body.Quantity)
	})
}

// POST /api/order/flow/memo
func (wh WizardHandler) SetMemo() http.HandlerFunc {
	return serve(wh.log, func(req *http.Request, sess *session.Session) (wizard.View, error) {
		body := struct {
			Memo string `json:"memo"`
		}{}

		if err := parseBody(req.Body, &body); err != nil {
			return wizard.View{}, err
		}

		return wh.srv.SetMemo(req.Context(), sess, body.Memo)
	})
}

// POST /api/order/flow/menu-items/{id}
func (wh WizardHandler) UpdateMenuItem() http.HandlerFunc {
	return serve(wh.log, func(req *http.Request, sess *session.Session) (wizard.View, error) {
		var body quantityReq
		if err := parseBody(req.Body, &body); err != nil {
			return wizard.View{}, err
		}

		return wh.srv.UpdateMenuItemQuantity(req.Context(), sess, chi.URLParam(req, "id"), body.Quantity)
	})
}

// POST /api/order/flow/extras
func (wh WizardHandler) AddExtra() http.HandlerFunc {
	return serve(wh.log, func(req *http.Request, sess *session.Session) (wizard.View, error) {
		body := struct {
			MenuItemID string `json:"menuItemId"`
		}{}

		if err := parseBody(req.Body, &body); err != nil {
			return wizard.View{}, err
		}

		return wh.srv.AddAdditionalMenuItem(req.Context(), sess, body.MenuItemID)
	})
}

// PATCH /api/order/flow/extras/{id}
func (wh WizardHandler) UpdateExtra() http.HandlerFunc {
	return serve(wh.log, func(req *http.Request, sess *session.Session) (wizard.View, error) {
		var body quantityReq
		if err := parseBody(req.Body, &body); err != nil {
			return wizard.View{}, err
		}

		return wh.srv.UpdateAdditionalMenuItemQuantity(req.Context(), sess, chi.URLParam(req, "id"), body.Quantity)
	})
}

// DELETE /api/order/flow/extras/{id}
func (wh WizardHandler) RemoveExtra() http.HandlerFunc {
	return serve(wh.log, func(req *http.Request, sess *session.Session) (wizard.View, error) {
		return wh.srv.RemoveAdditionalMenuItem(req.Context(), sess, chi.URLParam(req, "id"))
	})
}

// POST /api/order/checkout
func (wh WizardHandler) Checkout() http.HandlerFunc {
	return serve(wh.log, func(req *http.Request, sess *session.Session) (order.Confirmation, error) {
		return wh.srv.Checkout(req.Context(), sess)
	})
}
