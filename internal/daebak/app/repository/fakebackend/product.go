package fakebackend

import (
	"context"
	"net/http"
	"slices"

	"github.com/AndreyVLZ/mr-daebak/internal/daebak/app/internal/model/catalog"
	"github.com/AndreyVLZ/mr-daebak/internal/daebak/app/internal/model/product"
	"github.com/AndreyVLZ/mr-daebak/internal/daebak/app/repository/backend"
)

func (b *Backend) CreateProduct(_ context.Context, req product.CreateRequest) (product.Product, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.enter(http.MethodPost, "/products/createProduct"); err != nil {
		return product.Product{}, err
	}

	dinner, ok := catalog.FindDinner(b.dinners, req.DinnerID)
	if !ok || !dinner.Active {
		return product.Product{}, notFound("dinner %s not found", req.DinnerID)
	}

	style, ok := catalog.FindStyle(b.styles, req.ServingStyleID)
	if !ok || !style.Active {
		return product.Product{}, notFound("serving style %s not found", req.ServingStyleID)
	}

	if !style.Allows(dinner) {
		return product.Product{}, badRequest("%s cannot be served in %s style", dinner.Name, style.Name)
	}

	if req.Address == "" {
		return product.Product{}, badRequest("address is required")
	}

	p := &product.Product{
		ID:               b.nextID("product"),
		Name:             dinner.Name + " (" + style.Name + ")",
		DinnerID:         dinner.ID,
		DinnerName:       dinner.Name,
		ServingStyleID:   style.ID,
		ServingStyleName: style.Name,
		Quantity:         max(1, req.Quantity),
		Memo:             req.Memo,
		Address:          req.Address,
	}

	for _, d := range b.defaults[dinner.ID] {
		item, _ := catalog.FindMenuItem(b.menu, d.MenuItemID)
		p.Lines = append(p.Lines, product.Line{
			MenuItemID:   d.MenuItemID,
			MenuItemName: d.MenuItemName,
			Quantity:     d.DefaultQuantity,
			UnitPrice:    item.UnitPrice,
		})
	}

	b.reprice(p)
	b.products[p.ID] = p

	return p.Clone(), nil
}

func (b *Backend) DeleteProduct(_ context.Context, productID string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.enter(http.MethodDelete, "/products/"+productID); err != nil {
		return err
	}

	if _, ok := b.products[productID]; !ok {
		return notFound("product %s not found", productID)
	}

	delete(b.products, productID)

	return nil
}

func (b *Backend) ProductMenuItems(_ context.Context, productID string) ([]product.Line, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.enter(http.MethodGet, "/products/"+productID+"/menu-items"); err != nil {
		return nil, err
	}

	p, ok := b.products[productID]
	if !ok {
		return nil, notFound("product %s not found", productID)
	}

	return slices.Clone(p.Lines), nil
}

func (b *Backend) AddProductMenuItem(_ context.Context, productID, menuItemID string, qty int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.enter(http.MethodPost, "/products/"+productID+"/menu-items"); err != nil {
		return err
	}

	p, ok := b.products[productID]
	if !ok {
		return notFound("product %s not found", productID)
	}

	item, ok := catalog.FindMenuItem(b.menu, menuItemID)
	if !ok {
		return notFound("menu item %s not found", menuItemID)
	}

	if _, exists := p.Line(menuItemID); exists {
		return backend.NewStatusError(http.StatusConflict, "menu item already in product")
	}

	if qty < 1 {
		return badRequest("quantity must be positive")
	}

	p.Lines = append(p.Lines, product.Line{
		MenuItemID:   item.ID,
		MenuItemName: item.Name,
		Quantity:     qty,
		UnitPrice:    item.UnitPrice,
	})
	b.reprice(p)

	return nil
}

func (b *Backend) UpdateProductMenuItem(_ context.Context, productID, menuItemID string, qty int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.enter(http.MethodPatch, "/products/"+productID+"/menu-items/"+menuItemID); err != nil {
		return err
	}

	p, ok := b.products[productID]
	if !ok {
		return notFound("product %s not found", productID)
	}

	if qty < 0 {
		return badRequest("quantity must not be negative")
	}

	for i := range p.Lines {
		if p.Lines[i].MenuItemID == menuItemID {
			p.Lines[i].Quantity = qty
			b.reprice(p)

			return nil
		}
	}

	return notFound("menu item %s not in product", menuItemID)
}

func (b *Backend) DeleteProductMenuItem(_ context.Context, productID, menuItemID string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.enter(http.MethodDelete, "/products/"+productID+"/menu-items/"+menuItemID); err != nil {
		return err
	}

	p, ok := b.products[productID]
	if !ok {
		return notFound("product %s not found", productID)
	}

	idx := slices.IndexFunc(p.Lines, func(l product.Line) bool { return l.MenuItemID == menuItemID })
	if idx < 0 {
		return notFound("menu item %s not in product", menuItemID)
	}

	p.Lines = slices.Delete(p.Lines, idx, idx+1)
	b.reprice(p)

	return nil
}

// reprice recomputes line totals and the product total: the dinner and style
// per unit, plus every quantity above the default composition.
func (b *Backend) reprice(p *product.Product) {
	dinner, _ := catalog.FindDinner(b.dinners, p.DinnerID)
	style, _ := catalog.FindStyle(b.styles, p.ServingStyleID)

	total := (dinner.BasePrice + style.ExtraPrice).Mul(p.Quantity)

	for i := range p.Lines {
		line := &p.Lines[i]
		line.LineTotal = line.UnitPrice.Mul(line.Quantity)

		if extra := line.Quantity - b.defaultQuantity(p.DinnerID, line.MenuItemID); extra > 0 {
			total += line.UnitPrice.Mul(extra * p.Quantity)
		}
	}

	p.TotalPrice = total
}
