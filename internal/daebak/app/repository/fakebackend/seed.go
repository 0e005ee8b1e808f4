package fakebackend

import (
	"github.com/AndreyVLZ/mr-daebak/internal/daebak/app/internal/model/catalog"
	"github.com/AndreyVLZ/mr-daebak/internal/daebak/app/internal/model/order"
)

func seedDinners() []catalog.Dinner {
	return []catalog.Dinner{
		{ID: "valentine", Name: "Valentine Dinner", Description: "Wine and steak with heart-shaped plates", BasePrice: 30000, Active: true},
		{ID: "french", Name: "French Dinner", Description: "Coffee, wine, salad and steak", BasePrice: 48000, Active: true},
		{ID: "english", Name: "English Dinner", Description: "Scrambled eggs, bacon, bread and steak", BasePrice: 42000, Active: true},
		{ID: "champagne", Name: "Champagne Feast Dinner", Description: "A bottle of champagne for two", BasePrice: 90000, Active: true},
		{ID: "seasonal", Name: "Seasonal Dinner", BasePrice: 25000, Active: false},
	}
}

func seedStyles() []catalog.ServingStyle {
	return []catalog.ServingStyle{
		{ID: "simple", Name: "Simple", Description: "Plastic plates and cups, paper napkins", ExtraPrice: 0, Active: true},
		{ID: "grand", Name: "Grand", Description: "Ceramic plates, plastic wine glass, cotton napkins", ExtraPrice: 5000, Active: true},
		{ID: "deluxe", Name: "Deluxe", Description: "Small vase, ceramic plates, crystal glass, linen napkins", ExtraPrice: 10000, Active: true},
		{ID: "royal", Name: "Royal", ExtraPrice: 20000, Active: false},
	}
}

func seedMenu() []catalog.MenuItem {
	return []catalog.MenuItem{
		{ID: "steak", Name: "Steak", Stock: 100, UnitPrice: 12000, UnitType: "piece"},
		{ID: "wine", Name: "Wine", Stock: 100, UnitPrice: 8000, UnitType: "glass"},
		{ID: "coffee", Name: "Coffee", Stock: 100, UnitPrice: 3000, UnitType: "cup"},
		{ID: "salad", Name: "Salad", Stock: 100, UnitPrice: 5000, UnitType: "bowl"},
		{ID: "eggs", Name: "Scrambled Eggs", Stock: 100, UnitPrice: 2000, UnitType: "plate"},
		{ID: "bacon", Name: "Bacon", Stock: 100, UnitPrice: 3000, UnitType: "strip"},
		{ID: "bread", Name: "Bread", Stock: 100, UnitPrice: 1500, UnitType: "piece"},
		{ID: "baguette", Name: "Baguette", Stock: 100, UnitPrice: 2000, UnitType: "piece"},
		{ID: "champagne-bottle", Name: "Champagne", Stock: 50, UnitPrice: 30000, UnitType: "bottle"},
	}
}

func seedDefaults() map[string][]catalog.DefaultMenuItem {
	return map[string][]catalog.DefaultMenuItem{
		"valentine": {
			{MenuItemID: "wine", MenuItemName: "Wine", DefaultQuantity: 1},
			{MenuItemID: "steak", MenuItemName: "Steak", DefaultQuantity: 1},
		},
		"french": {
			{MenuItemID: "coffee", MenuItemName: "Coffee", DefaultQuantity: 1},
			{MenuItemID: "wine", MenuItemName: "Wine", DefaultQuantity: 1},
			{MenuItemID: "salad", MenuItemName: "Salad", DefaultQuantity: 1},
			{MenuItemID: "steak", MenuItemName: "Steak", DefaultQuantity: 1},
		},
		"english": {
			{MenuItemID: "eggs", MenuItemName: "Scrambled Eggs", DefaultQuantity: 1},
			{MenuItemID: "bacon", MenuItemName: "Bacon", DefaultQuantity: 1},
			{MenuItemID: "bread", MenuItemName: "Bread", DefaultQuantity: 1},
			{MenuItemID: "steak", MenuItemName: "Steak", DefaultQuantity: 1},
		},
		"champagne": {
			{MenuItemID: "champagne-bottle", MenuItemName: "Champagne", DefaultQuantity: 1},
			{MenuItemID: "baguette", MenuItemName: "Baguette", DefaultQuantity: 4},
			{MenuItemID: "coffee", MenuItemName: "Coffee", DefaultQuantity: 2},
			{MenuItemID: "wine", MenuItemName: "Wine", DefaultQuantity: 1},
			{MenuItemID: "steak", MenuItemName: "Steak", DefaultQuantity: 2},
		},
	}
}

func seedCards() []order.PaymentCard {
	return []order.PaymentCard{{ID: "card-1", CardBrand: "VISA", CardNumber: "****-****-****-4242"}}
}
