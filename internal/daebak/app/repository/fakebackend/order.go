package fakebackend

import (
	"context"
	"fmt"
	"net/http"
	"slices"
	"strings"

	"github.com/AndreyVLZ/mr-daebak/internal/daebak/app/internal/model/money"
	"github.com/AndreyVLZ/mr-daebak/internal/daebak/app/internal/model/order"
)

const fakeUsername = "customer"

func (b *Backend) PaymentCards(context.Context) ([]order.PaymentCard, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.enter(http.MethodGet, "/users/cards"); err != nil {
		return nil, err
	}

	return slices.Clone(b.cards), nil
}

func (b *Backend) CreateCart(_ context.Context, req order.CartRequest) (order.Cart, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.enter(http.MethodPost, "/carts/createCart"); err != nil {
		return order.Cart{}, err
	}

	if len(req.Items) == 0 {
		return order.Cart{}, badRequest("cart is empty")
	}

	var total money.Won

	for _, it := range req.Items {
		p, ok := b.products[it.ProductID]
		if !ok {
			return order.Cart{}, notFound("product %s not found", it.ProductID)
		}

		total += p.TotalPrice
	}

	c := cart{
		Cart: order.Cart{ID: b.nextID("cart"), GrandTotal: total},
		req:  req,
	}
	b.carts[c.ID] = c

	return c.Cart, nil
}

func (b *Backend) CheckoutCart(_ context.Context, cartID string) (order.Order, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.enter(http.MethodPost, "/carts/"+cartID+"/checkout"); err != nil {
		return order.Order{}, err
	}

	c, ok := b.carts[cartID]
	if !ok {
		return order.Order{}, notFound("cart %s not found", cartID)
	}

	placed := b.placeOrder(c.GrandTotal, c.req.DeliveryAddress, c.req.Memo)
	for _, it := range c.req.Items {
		p := b.products[it.ProductID]
		if p == nil {
			continue
		}

		placed.Items = append(placed.Items, order.Item{
			ProductID:        p.ID,
			ProductName:      p.Name,
			DinnerName:       p.DinnerName,
			ServingStyleName: p.ServingStyleName,
			Quantity:         p.Quantity,
			UnitPrice:        p.TotalPrice,
			LineTotal:        p.TotalPrice,
		})
		delete(b.products, it.ProductID)
	}

	delete(b.carts, cartID)
	b.orders = append(b.orders, placed)

	return placed, nil
}

// placeOrder builds a new order awaiting approval. The caller holds b.mu.
func (b *Backend) placeOrder(total money.Won, address, memo string) order.Order {
	now := b.now()

	return order.Order{
		ID:              b.nextID("order"),
		OrderNumber:     fmt.Sprintf("ORD-%s-%04d", now.Format("20060102"), len(b.orders)+1),
		Username:        fakeUsername,
		Status:          order.StatusPendingApproval,
		PaymentStatus:   order.PaymentSucceeded,
		DeliveryStatus:  order.DeliveryReady,
		Subtotal:        total,
		GrandTotal:      total,
		DeliveryMethod:  order.MethodDelivery,
		DeliveryAddress: address,
		Memo:            memo,
		OrderedAt:       order.Timestamp{Time: now},
	}
}

func (b *Backend) MyOrders(context.Context) ([]order.Order, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.enter(http.MethodGet, "/orders"); err != nil {
		return nil, err
	}

	return slices.Clone(b.orders), nil
}

func (b *Backend) AdminOrders(context.Context) ([]order.Order, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.enter(http.MethodGet, "/orders/admin/all"); err != nil {
		return nil, err
	}

	return slices.Clone(b.orders), nil
}

func (b *Backend) SearchOrders(_ context.Context, orderNumber, username string) ([]order.Order, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.enter(http.MethodGet, "/orders/admin/search"); err != nil {
		return nil, err
	}

	out := make([]order.Order, 0)

	for _, o := range b.orders {
		if orderNumber != "" && !strings.Contains(strings.ToLower(o.OrderNumber), strings.ToLower(orderNumber)) {
			continue
		}

		if username != "" && !strings.EqualFold(o.Username, username) {
			continue
		}

		out = append(out, o)
	}

	return out, nil
}

func (b *Backend) ApproveOrder(_ context.Context, orderID string, req order.ApproveRequest) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.enter(http.MethodPost, "/orders/admin/"+orderID+"/approve"); err != nil {
		return err
	}

	o, err := b.findOrder(orderID)
	if err != nil {
		return err
	}

	if req.Approved {
		o.Status = order.StatusApproved
		o.RejectionReason = ""

		return nil
	}

	if strings.TrimSpace(req.RejectionReason) == "" {
		return badRequest("rejection reason is required")
	}

	o.Status = order.StatusRejected
	o.RejectionReason = req.RejectionReason

	return nil
}

func (b *Backend) UpdateDeliveryStatus(_ context.Context, orderID string, status order.DeliveryStatus) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.enter(http.MethodPatch, "/orders/admin/"+orderID+"/delivery-status"); err != nil {
		return err
	}

	o, err := b.findOrder(orderID)
	if err != nil {
		return err
	}

	o.DeliveryStatus = status

	return nil
}

func (b *Backend) findOrder(id string) (*order.Order, error) {
	for i := range b.orders {
		if b.orders[i].ID == id {
			return &b.orders[i], nil
		}
	}

	return nil, notFound("order %s not found", id)
}
