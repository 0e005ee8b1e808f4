// Package catalog holds the read-only menu published by the backend.
package catalog

import (
	"strings"

	"github.com/AndreyVLZ/mr-daebak/internal/daebak/app/internal/model/money"
)

type Dinner struct {
	ID          string    `json:"id"`
	Name        string    `json:"dinnerName"`
	Description string    `json:"description,omitempty"`
	BasePrice   money.Won `json:"basePrice"`
	Active      bool      `json:"active"`
}

// IsChampagne reports whether the dinner is a champagne feast,
// which can only be served in grand or deluxe style.
func (d Dinner) IsChampagne() bool {
	name := strings.ToLower(d.Name)
	return strings.Contains(name, "champagne") || strings.Contains(d.Name, "샴페인")
}

type ServingStyle struct {
	ID          string    `json:"id"`
	Name        string    `json:"styleName"`
	Description string    `json:"description,omitempty"`
	ExtraPrice  money.Won `json:"extraPrice"`
	Active      bool      `json:"active"`
}

// IsSimple reports the basic serving style (the only one a champagne dinner refuses).
func (s ServingStyle) IsSimple() bool {
	name := strings.ToLower(s.Name)
	return strings.Contains(name, "simple") || strings.Contains(s.Name, "심플")
}

// Allows reports whether the style may be chosen for the dinner.
func (s ServingStyle) Allows(d Dinner) bool {
	return !d.IsChampagne() || !s.IsSimple()
}

type MenuItem struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Stock     int       `json:"stock"`
	UnitPrice money.Won `json:"unitPrice"`
	UnitType  string    `json:"unitType,omitempty"`
}

// DefaultMenuItem is a line of a dinner's standard composition.
type DefaultMenuItem struct {
	MenuItemID      string `json:"menuItemId"`
	MenuItemName    string `json:"menuItemName"`
	DefaultQuantity int    `json:"defaultQuantity"`
}

func ActiveDinners(dinners []Dinner) []Dinner {
	out := make([]Dinner, 0, len(dinners))
	for i := range dinners {
		if dinners[i].Active {
			out = append(out, dinners[i])
		}
	}

	return out
}

func ActiveStyles(styles []ServingStyle) []ServingStyle {
	out := make([]ServingStyle, 0, len(styles))
	for i := range styles {
		if styles[i].Active {
			out = append(out, styles[i])
		}
	}

	return out
}

func FindDinner(dinners []Dinner, id string) (Dinner, bool) {
	for i := range dinners {
		if dinners[i].ID == id {
			return dinners[i], true
		}
	}

	return Dinner{}, false
}

func FindStyle(styles []ServingStyle, id string) (ServingStyle, bool) {
	for i := range styles {
		if styles[i].ID == id {
			return styles[i], true
		}
	}

	return ServingStyle{}, false
}

func FindMenuItem(items []MenuItem, id string) (MenuItem, bool) {
	for i := range items {
		if items[i].ID == id {
			return items[i], true
		}
	}

	return MenuItem{}, false
}
