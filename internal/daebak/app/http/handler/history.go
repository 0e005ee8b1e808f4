package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/AndreyVLZ/mr-daebak/internal/daebak/app/internal/model/order"
	"github.com/AndreyVLZ/mr-daebak/internal/daebak/app/service/session"
)

type historyService interface {
	Orders(context.Context) ([]order.Order, error)
	Receipts(context.Context, order.ReceiptFilter) ([]order.Receipt, error)
}

type HistoryHandler struct {
	srv historyService
	log *slog.Logger
}

func NewHistoryHandler(srv historyService, log *slog.Logger) HistoryHandler {
	return HistoryHandler{srv: srv, log: log}
}

// GET /api/orders
func (hh HistoryHandler) Orders() http.HandlerFunc {
	return serve(hh.log, func(req *http.Request, _ *session.Session) ([]order.Order, error) {
		return hh.srv.Orders(req.Context())
	})
}

// GET /api/receipts?scope=session&limit=n
func (hh HistoryHandler) Receipts() http.HandlerFunc {
	return serve(hh.log, func(req *http.Request, sess *session.Session) ([]order.Receipt, error) {
		query := req.URL.Query()

		var filter order.ReceiptFilter
		if query.Get("scope") == "session" {
			filter.SessionIDs = []string{sess.ID().String()}
		}

		if raw := query.Get("limit"); raw != "" {
			limit, err := strconv.Atoi(raw)
			if err != nil || limit < 0 {
				return nil, badRequest{errors.New("limit must be a non-negative integer")}
			}

			filter.Limit = limit
		}

		return hh.srv.Receipts(req.Context(), filter)
	})
}
