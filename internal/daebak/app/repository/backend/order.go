package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/AndreyVLZ/mr-daebak/internal/daebak/app/internal/model/order"
)

func (c *Client) PaymentCards(ctx context.Context) ([]order.PaymentCard, error) {
	var cards []order.PaymentCard
	if err := c.do(ctx, http.MethodGet, p("users", "cards"), nil, nil, &cards); err != nil {
		return nil, fmt.Errorf("payment cards: %w", err)
	}

	return cards, nil
}

func (c *Client) CreateCart(ctx context.Context, req order.CartRequest) (order.Cart, error) {
	var cart order.Cart
	if err := c.do(ctx, http.MethodPost, p("carts", "createCart"), nil, req, &cart); err != nil {
		return order.Cart{}, fmt.Errorf("create cart: %w", err)
	}

	return cart, nil
}

func (c *Client) CheckoutCart(ctx context.Context, cartID string) (order.Order, error) {
	var placed order.Order
	if err := c.do(ctx, http.MethodPost, p("carts", cartID, "checkout"), nil, nil, &placed); err != nil {
		return order.Order{}, fmt.Errorf("checkout cart [%s]: %w", cartID, err)
	}

	return placed, nil
}

func (c *Client) MyOrders(ctx context.Context) ([]order.Order, error) {
	var orders []order.Order
	if err := c.do(ctx, http.MethodGet, p("orders"), nil, nil, &orders); err != nil {
		return nil, fmt.Errorf("my orders: %w", err)
	}

	return orders, nil
}

func (c *Client) AdminOrders(ctx context.Context) ([]order.Order, error) {
	var orders []order.Order
	if err := c.do(ctx, http.MethodGet, p("orders", "admin", "all"), nil, nil, &orders); err != nil {
		return nil, fmt.Errorf("admin orders: %w", err)
	}

	return orders, nil
}

func (c *Client) SearchOrders(ctx context.Context, orderNumber, username string) ([]order.Order, error) {
	query := url.Values{}
	if orderNumber != "" {
		query.Set("orderNumber", orderNumber)
	}

	if username != "" {
		query.Set("username", username)
	}

	var orders []order.Order
	if err := c.do(ctx, http.MethodGet, p("orders", "admin", "search"), query, nil, &orders); err != nil {
		return nil, fmt.Errorf("search orders: %w", err)
	}

	return orders, nil
}

func (c *Client) ApproveOrder(ctx context.Context, orderID string, req order.ApproveRequest) error {
	if err := c.do(ctx, http.MethodPost, p("orders", "admin", orderID, "approve"), nil, req, nil); err != nil {
		return fmt.Errorf("approve order [%s]: %w", orderID, err)
	}

	return nil
}

func (c *Client) UpdateDeliveryStatus(ctx context.Context, orderID string, status order.DeliveryStatus) error {
	body := struct {
		DeliveryStatus order.DeliveryStatus `json:"deliveryStatus"`
	}{DeliveryStatus: status}

	if err := c.do(ctx, http.MethodPatch, p("orders", "admin", orderID, "delivery-status"), nil, body, nil); err != nil {
		return fmt.Errorf("delivery status [%s]: %w", orderID, err)
	}

	return nil
}
