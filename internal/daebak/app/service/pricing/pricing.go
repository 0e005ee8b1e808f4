// Package pricing projects order prices on the client side.
//
// Three projections exist, one per wizard surface:
//
//   - flow.State.TotalPrice: the style step summary, customizations ignored.
//   - Calculate: the customize step preview, deltas priced from the catalog.
//   - CheckoutTotal: the checkout step preview, deltas priced from the draft
//     order's own lines.
//
// None of them is authoritative; the draft order's TotalPrice from the
// backend is.
package pricing

import (
	"github.com/AndreyVLZ/mr-daebak/internal/daebak/app/internal/model/catalog"
	"github.com/AndreyVLZ/mr-daebak/internal/daebak/app/internal/model/flow"
	"github.com/AndreyVLZ/mr-daebak/internal/daebak/app/internal/model/money"
	"github.com/AndreyVLZ/mr-daebak/internal/daebak/app/internal/model/product"
)

type Input struct {
	Dinner         *catalog.Dinner
	Style          *catalog.ServingStyle
	Quantity       int
	Customizations []flow.MenuItemCustomization
	Additional     []flow.AdditionalMenuItem
	MenuItems      []catalog.MenuItem
}

func FromState(st *flow.State, menuItems []catalog.MenuItem) Input {
	return Input{
		Dinner:         st.Dinner(),
		Style:          st.Style(),
		Quantity:       st.Quantity(),
		Customizations: st.MenuCustomizations(),
		Additional:     st.AdditionalMenuItems(),
		MenuItems:      menuItems,
	}
}

// Calculate returns the running preview price. Decreases below the default
// quantity are not refunded and unknown menu items are priced at 0.
func Calculate(in Input) money.Won {
	if in.Dinner == nil {
		return 0
	}

	unit := in.Dinner.BasePrice
	if in.Style != nil {
		unit += in.Style.ExtraPrice
	}

	total := unit.Mul(in.Quantity)

	for _, c := range in.Customizations {
		if c.CurrentQuantity <= c.DefaultQuantity {
			continue
		}

		total += catalogPrice(in.MenuItems, c.MenuItemID).Mul((c.CurrentQuantity - c.DefaultQuantity) * in.Quantity)
	}

	for _, a := range in.Additional {
		total += catalogPrice(in.MenuItems, a.MenuItemID).Mul(a.Quantity * in.Quantity)
	}

	return total
}

// CheckoutTotal prices the order the way the checkout screen shows it, using
// the unit prices of the draft order's lines. It needs both dinner and style.
func CheckoutTotal(st *flow.State) money.Won {
	dinner, style := st.Dinner(), st.Style()
	if dinner == nil || style == nil {
		return 0
	}

	var lines []product.Line
	if p := st.CreatedProduct(); p != nil {
		lines = p.Lines
	}

	qty := st.Quantity()
	total := (dinner.BasePrice + style.ExtraPrice).Mul(qty)

	for _, c := range st.MenuCustomizations() {
		if c.CurrentQuantity <= c.DefaultQuantity {
			continue
		}

		total += linePrice(lines, c.MenuItemID).Mul((c.CurrentQuantity - c.DefaultQuantity) * qty)
	}

	for _, a := range st.AdditionalMenuItems() {
		if a.Quantity <= 0 {
			continue
		}

		total += linePrice(lines, a.MenuItemID).Mul(a.Quantity * qty)
	}

	return total
}

// Totals puts every projection side by side.
type Totals struct {
	Quick    money.Won  `json:"quickTotal"`
	Preview  money.Won  `json:"previewTotal"`
	Checkout money.Won  `json:"checkoutTotal"`
	Server   *money.Won `json:"serverTotal"`
}

func Summarize(st *flow.State, menuItems []catalog.MenuItem) Totals {
	totals := Totals{
		Quick:    st.TotalPrice(),
		Preview:  Calculate(FromState(st, menuItems)),
		Checkout: CheckoutTotal(st),
	}

	if p := st.CreatedProduct(); p != nil {
		server := p.TotalPrice
		totals.Server = &server
	}

	return totals
}

func catalogPrice(items []catalog.MenuItem, id string) money.Won {
	item, ok := catalog.FindMenuItem(items, id)
	if !ok {
		return 0
	}

	return item.UnitPrice
}

func linePrice(lines []product.Line, id string) money.Won {
	for i := range lines {
		if lines[i].MenuItemID == id {
			return lines[i].UnitPrice
		}
	}

	return 0
}
