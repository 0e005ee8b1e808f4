package fakebackend

import (
	"context"
	"net/http"
	"slices"

	"github.com/AndreyVLZ/mr-daebak/internal/daebak/app/internal/model/catalog"
)

func (b *Backend) Dinners(context.Context) ([]catalog.Dinner, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.enter(http.MethodGet, "/dinners/getAllDinners"); err != nil {
		return nil, err
	}

	return slices.Clone(b.dinners), nil
}

func (b *Backend) ServingStyles(context.Context) ([]catalog.ServingStyle, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.enter(http.MethodGet, "/serving-styles/getAllServingStyles"); err != nil {
		return nil, err
	}

	return slices.Clone(b.styles), nil
}

func (b *Backend) DefaultMenuItems(_ context.Context, dinnerID string) ([]catalog.DefaultMenuItem, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.enter(http.MethodGet, "/dinners/"+dinnerID+"/default-menu-items"); err != nil {
		return nil, err
	}

	if _, ok := catalog.FindDinner(b.dinners, dinnerID); !ok {
		return nil, notFound("dinner %s not found", dinnerID)
	}

	return slices.Clone(b.defaults[dinnerID]), nil
}

func (b *Backend) MenuItems(context.Context) ([]catalog.MenuItem, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.enter(http.MethodGet, "/menu-items/getAllMenuItems"); err != nil {
		return nil, err
	}

	return slices.Clone(b.menu), nil
}

func (b *Backend) defaultQuantity(dinnerID, menuItemID string) int {
	for _, d := range b.defaults[dinnerID] {
		if d.MenuItemID == menuItemID {
			return d.DefaultQuantity
		}
	}

	return 0
}
