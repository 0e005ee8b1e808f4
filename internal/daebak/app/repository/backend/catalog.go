package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/AndreyVLZ/mr-daebak/internal/daebak/app/internal/model/catalog"
)

func (c *Client) Dinners(ctx context.Context) ([]catalog.Dinner, error) {
	var dinners []catalog.Dinner
	if err := c.do(ctx, http.MethodGet, p("dinners", "getAllDinners"), nil, nil, &dinners); err != nil {
		return nil, fmt.Errorf("dinners: %w", err)
	}

	return dinners, nil
}

func (c *Client) ServingStyles(ctx context.Context) ([]catalog.ServingStyle, error) {
	var styles []catalog.ServingStyle
	if err := c.do(ctx, http.MethodGet, p("serving-styles", "getAllServingStyles"), nil, nil, &styles); err != nil {
		return nil, fmt.Errorf("serving styles: %w", err)
	}

	return styles, nil
}

func (c *Client) DefaultMenuItems(ctx context.Context, dinnerID string) ([]catalog.DefaultMenuItem, error) {
	var items []catalog.DefaultMenuItem
	if err := c.do(ctx, http.MethodGet, p("dinners", dinnerID, "default-menu-items"), nil, nil, &items); err != nil {
		return nil, fmt.Errorf("default menu items [%s]: %w", dinnerID, err)
	}

	return items, nil
}

func (c *Client) MenuItems(ctx context.Context) ([]catalog.MenuItem, error) {
	var items []catalog.MenuItem
	if err := c.do(ctx, http.MethodGet, p("menu-items", "getAllMenuItems"), nil, nil, &items); err != nil {
		return nil, fmt.Errorf("menu items: %w", err)
	}

	return items, nil
}
