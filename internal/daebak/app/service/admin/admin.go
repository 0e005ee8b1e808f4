// Package admin manages placed orders on behalf of staff.
package admin

import (
	"context"
	"fmt"
	"strings"

	"github.com/AndreyVLZ/mr-daebak/internal/daebak/app/internal/model/order"
	"github.com/AndreyVLZ/mr-daebak/internal/daebak/app/service/internal"
)

type orderRepo interface {
	AdminOrders(context.Context) ([]order.Order, error)
	SearchOrders(ctx context.Context, orderNumber, username string) ([]order.Order, error)
	ApproveOrder(context.Context, string, order.ApproveRequest) error
	UpdateDeliveryStatus(context.Context, string, order.DeliveryStatus) error
}

type adminService struct {
	orderRepo orderRepo
}

func NewAdminService(orderRepo orderRepo) adminService {
	return adminService{orderRepo: orderRepo}
}

// GET /api/admin/orders
// Without filters every order is listed.
func (srv adminService) Orders(ctx context.Context, orderNumber, username string) ([]order.Order, error) {
	orderNumber = strings.TrimSpace(orderNumber)
	username = strings.TrimSpace(username)

	var (
		orders []order.Order
		err    error
	)

	if orderNumber == "" && username == "" {
		orders, err = srv.orderRepo.AdminOrders(ctx)
	} else {
		orders, err = srv.orderRepo.SearchOrders(ctx, orderNumber, username)
	}

	if err != nil {
		return nil, fmt.Errorf("adminService Orders: %w", err)
	}

	order.SortNewestFirst(orders)

	return orders, nil
}

func (srv adminService) Approve(ctx context.Context, orderID string) error {
	return srv.orderRepo.ApproveOrder(ctx, orderID, order.ApproveRequest{Approved: true})
}

func (srv adminService) Reject(ctx context.Context, orderID, reason string) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return internal.Invalid("reason", "a rejection reason is required")
	}

	return srv.orderRepo.ApproveOrder(ctx, orderID, order.ApproveRequest{RejectionReason: reason})
}

func (srv adminService) UpdateDeliveryStatus(ctx context.Context, orderID string, status order.DeliveryStatus) error {
	if status == order.DeliveryUnknown {
		return internal.Invalid("deliveryStatus", "delivery status is required")
	}

	return srv.orderRepo.UpdateDeliveryStatus(ctx, orderID, status)
}
