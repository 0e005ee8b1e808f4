package history

import (
	"context"
	"fmt"

	"github.com/AndreyVLZ/mr-daebak/internal/daebak/app/internal/model/order"
)

type orderGetter interface {
	MyOrders(context.Context) ([]order.Order, error)
}

type receiptGetter interface {
	Receipts(context.Context, order.ReceiptFilter) ([]order.Receipt, error)
}

type historyService struct {
	orderRepo   orderGetter
	receiptRepo receiptGetter
}

func NewHistoryService(orderRepo orderGetter, receiptRepo receiptGetter) historyService {
	return historyService{
		orderRepo:   orderRepo,
		receiptRepo: receiptRepo,
	}
}

// GET /api/orders
func (srv historyService) Orders(ctx context.Context) ([]order.Order, error) {
	orders, err := srv.orderRepo.MyOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("historyService Orders: %w", err)
	}

	order.SortNewestFirst(orders)

	return orders, nil
}

// GET /api/receipts
func (srv historyService) Receipts(ctx context.Context, filter order.ReceiptFilter) ([]order.Receipt, error) {
	receipts, err := srv.receiptRepo.Receipts(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("historyService Receipts: %w", err)
	}

	return receipts, nil
}
