package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/AndreyVLZ/mr-daebak/internal/daebak/app/internal/model/order"
	"github.com/go-chi/chi/v5"
)

type adminService interface {
	Orders(ctx context.Context, orderNumber, username string) ([]order.Order, error)
	Approve(context.Context, string) error
	Reject(ctx context.Context, orderID, reason string) error
	UpdateDeliveryStatus(context.Context, string, order.DeliveryStatus) error
}

type AdminHandler struct {
	srv adminService
	log *slog.Logger
}

func NewAdminHandler(srv adminService, log *slog.Logger) AdminHandler {
	return AdminHandler{srv: srv, log: log}
}

// GET /api/admin/orders?orderNumber=&username=
func (ah AdminHandler) Orders() http.HandlerFunc {
	return func(rw http.ResponseWriter, req *http.Request) {
		query := req.URL.Query()

		orders, err := ah.srv.Orders(req.Context(), query.Get("orderNumber"), query.Get("username"))
		if err != nil {
			writeError(ah.log, rw, err)
			return
		}

		writeJSON(rw, statusOK, orders)
	}
}

// POST /api/admin/orders/{id}/approve
func (ah AdminHandler) Approve() http.HandlerFunc {
	return func(rw http.ResponseWriter, req *http.Request) {
		if err := ah.srv.Approve(req.Context(), chi.URLParam(req, "id")); err != nil {
			writeError(ah.log, rw, err)
			return
		}

		rw.WriteHeader(statusNoContent)
	}
}

// POST /api/admin/orders/{id}/reject
func (ah AdminHandler) Reject() http.HandlerFunc {
	return func(rw http.ResponseWriter, req *http.Request) {
		body := struct {
			Reason string `json:"reason"`
		}{}

		if err := parseBody(req.Body, &body); err != nil {
			writeError(ah.log, rw, err)
			return
		}

		if err := ah.srv.Reject(req.Context(), chi.URLParam(req, "id"), body.Reason); err != nil {
			writeError(ah.log, rw, err)
			return
		}

		rw.WriteHeader(statusNoContent)
	}
}

// PATCH /api/admin/orders/{id}/delivery-status
func (ah AdminHandler) DeliveryStatus() http.HandlerFunc {
	return func(rw http.ResponseWriter, req *http.Request) {
		body := struct {
			DeliveryStatus order.DeliveryStatus `json:"deliveryStatus"`
		}{}

		if err := parseBody(req.Body, &body); err != nil {
			writeError(ah.log, rw, err)
			return
		}

		if err := ah.srv.UpdateDeliveryStatus(req.Context(), chi.URLParam(req, "id"), body.DeliveryStatus); err != nil {
			writeError(ah.log, rw, err)
			return
		}

		rw.WriteHeader(statusNoContent)
	}
}
