package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/AndreyVLZ/mr-daebak/internal/daebak/app/internal/model/product"
)

type lineQuantity struct {
	MenuItemID string `json:"menuItemId,omitempty"`
	Quantity   int    `json:"quantity"`
}

func (c *Client) CreateProduct(ctx context.Context, req product.CreateRequest) (product.Product, error) {
	var created product.Product
	if err := c.do(ctx, http.MethodPost, p("products", "createProduct"), nil, req, &created); err != nil {
		return product.Product{}, fmt.Errorf("create product: %w", err)
	}

	return created, nil
}

func (c *Client) DeleteProduct(ctx context.Context, productID string) error {
	if err := c.do(ctx, http.MethodDelete, p("products", productID), nil, nil, nil); err != nil {
		return fmt.Errorf("delete product [%s]: %w", productID, err)
	}

	return nil
}

func (c *Client) ProductMenuItems(ctx context.Context, productID string) ([]product.Line, error) {
	var lines []product.Line
	if err := c.do(ctx, http.MethodGet, p("products", productID, "menu-items"), nil, nil, &lines); err != nil {
		return nil, fmt.Errorf("product lines [%s]: %w", productID, err)
	}

	return lines, nil
}

func (c *Client) AddProductMenuItem(ctx context.Context, productID, menuItemID string, qty int) error {
	body := lineQuantity{MenuItemID: menuItemID, Quantity: qty}
	if err := c.do(ctx, http.MethodPost, p("products", productID, "menu-items"), nil, body, nil); err != nil {
		return fmt.Errorf("add line [%s/%s]: %w", productID, menuItemID, err)
	}

	return nil
}

func (c *Client) UpdateProductMenuItem(ctx context.Context, productID, menuItemID string, qty int) error {
	body := lineQuantity{Quantity: qty}
	if err := c.do(ctx, http.MethodPatch, p("products", productID, "menu-items", menuItemID), nil, body, nil); err != nil {
		return fmt.Errorf("update line [%s/%s]: %w", productID, menuItemID, err)
	}

	return nil
}

func (c *Client) DeleteProductMenuItem(ctx context.Context, productID, menuItemID string) error {
	if err := c.do(ctx, http.MethodDelete, p("products", productID, "menu-items", menuItemID), nil, nil, nil); err != nil {
		return fmt.Errorf("delete line [%s/%s]: %w", productID, menuItemID, err)
	}

	return nil
}
