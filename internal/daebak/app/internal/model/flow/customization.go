package flow

// MenuItemCustomization tracks one line of the dinner's default composition.
// CurrentQuantity equal to DefaultQuantity means the line is unmodified.
type MenuItemCustomization struct {
	MenuItemID      string `json:"menuItemId"`
	MenuItemName    string `json:"menuItemName"`
	DefaultQuantity int    `json:"defaultQuantity"`
	CurrentQuantity int    `json:"currentQuantity"`
}

func (c MenuItemCustomization) Modified() bool { return c.CurrentQuantity != c.DefaultQuantity }

// AdditionalMenuItem is an a la carte item outside the default composition.
type AdditionalMenuItem struct {
	MenuItemID   string `json:"menuItemId"`
	MenuItemName string `json:"menuItemName"`
	Quantity     int    `json:"quantity"`
}
