// Package product describes the draft order the backend keeps while the
// customer customizes a dinner.
package product

import "github.com/AndreyVLZ/mr-daebak/internal/daebak/app/internal/model/money"

// Line is one menu item of a draft order as the backend sees it.
type Line struct {
	MenuItemID   string    `json:"menuItemId"`
	MenuItemName string    `json:"menuItemName"`
	Quantity     int       `json:"quantity"`
	UnitPrice    money.Won `json:"unitPrice"`
	LineTotal    money.Won `json:"lineTotal"`
}

// Product is the backend's draft order. TotalPrice is authoritative.
type Product struct {
	ID               string    `json:"id"`
	Name             string    `json:"productName,omitempty"`
	DinnerID         string    `json:"dinnerId,omitempty"`
	DinnerName       string    `json:"dinnerName,omitempty"`
	ServingStyleID   string    `json:"servingStyleId,omitempty"`
	ServingStyleName string    `json:"servingStyleName,omitempty"`
	TotalPrice       money.Won `json:"totalPrice"`
	Quantity         int       `json:"quantity"`
	Memo             string    `json:"memo,omitempty"`
	Address          string    `json:"address,omitempty"`
	Lines            []Line    `json:"productMenuItems"`
}

// Line returns the remote line for the menu item.
func (p Product) Line(menuItemID string) (Line, bool) {
	for i := range p.Lines {
		if p.Lines[i].MenuItemID == menuItemID {
			return p.Lines[i], true
		}
	}

	return Line{}, false
}

func (p Product) Clone() Product {
	out := p
	if p.Lines != nil {
		out.Lines = make([]Line, len(p.Lines))
		copy(out.Lines, p.Lines)
	}

	return out
}

// CreateRequest is the payload of a new draft order.
type CreateRequest struct {
	DinnerID       string `json:"dinnerId"`
	ServingStyleID string `json:"servingStyleId"`
	Quantity       int    `json:"quantity"`
	Memo           string `json:"memo,omitempty"`
	Address        string `json:"address"`
}
