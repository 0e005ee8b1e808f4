package pricing

import (
	"testing"

	"github.com/AndreyVLZ/mr-daebak/internal/daebak/app/internal/model/catalog"
	"github.com/AndreyVLZ/mr-daebak/internal/daebak/app/internal/model/flow"
	"github.com/AndreyVLZ/mr-daebak/internal/daebak/app/internal/model/money"
	"github.com/AndreyVLZ/mr-daebak/internal/daebak/app/internal/model/product"
	"github.com/stretchr/testify/assert"
)

func TestCalculate(t *testing.T) {
	dinner := &catalog.Dinner{ID: "d1", BasePrice: 30000}
	style := &catalog.ServingStyle{ID: "s1", ExtraPrice: 5000}
	menu := []catalog.MenuItem{
		{ID: "steak", UnitPrice: 2000},
		{ID: "salad", UnitPrice: 1500},
	}

	type testCase struct {
		name string
		in   Input
		want money.Won
	}

	tc := []testCase{
		{
			name: "#1 no dinner",
			in:   Input{Style: style, Quantity: 3, MenuItems: menu},
			want: 0,
		},
		{
			name: "#2 dinner without style",
			in:   Input{Dinner: dinner, Quantity: 2},
			want: 60000,
		},
		{
			name: "#3 dinner and style",
			in:   Input{Dinner: dinner, Style: style, Quantity: 2},
			want: 70000,
		},
		{
			name: "#4 raised default item",
			in: Input{
				Dinner: dinner, Style: style, Quantity: 2, MenuItems: menu,
				Customizations: []flow.MenuItemCustomization{{MenuItemID: "steak", DefaultQuantity: 1, CurrentQuantity: 3}},
			},
			want: 78000,
		},
		{
			name: "#5 lowered default item",
			in: Input{
				Dinner: dinner, Style: style, Quantity: 2, MenuItems: menu,
				Customizations: []flow.MenuItemCustomization{{MenuItemID: "steak", DefaultQuantity: 2, CurrentQuantity: 0}},
			},
			want: 70000,
		},
		{
			name: "#6 additional item",
			in: Input{
				Dinner: dinner, Style: style, Quantity: 2, MenuItems: menu,
				Additional: []flow.AdditionalMenuItem{{MenuItemID: "salad", Quantity: 2}},
			},
			want: 76000,
		},
		{
			name: "#7 unknown ids are free",
			in: Input{
				Dinner: dinner, Style: style, Quantity: 1, MenuItems: menu,
				Customizations: []flow.MenuItemCustomization{{MenuItemID: "ghost", DefaultQuantity: 0, CurrentQuantity: 4}},
				Additional:     []flow.AdditionalMenuItem{{MenuItemID: "caviar", Quantity: 9}},
			},
			want: 35000,
		},
	}

	for _, test := range tc {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.want, Calculate(test.in))
		})
	}
}

func TestCalculateLinearInQuantity(t *testing.T) {
	dinner := &catalog.Dinner{ID: "d1", BasePrice: 41000}
	style := &catalog.ServingStyle{ID: "s3", ExtraPrice: 10000}

	for q := 1; q <= 20; q++ {
		assert.Equal(t, money.Won(51000*q), Calculate(Input{Dinner: dinner, Style: style, Quantity: q}))
	}
}

func TestCalculateDoesNotMutate(t *testing.T) {
	in := Input{
		Dinner:         &catalog.Dinner{ID: "d1", BasePrice: 1},
		Quantity:       1,
		Customizations: []flow.MenuItemCustomization{{MenuItemID: "a", DefaultQuantity: 1, CurrentQuantity: 2}},
		Additional:     []flow.AdditionalMenuItem{{MenuItemID: "b", Quantity: 1}},
		MenuItems:      []catalog.MenuItem{{ID: "a", UnitPrice: 5}},
	}

	before := Input{
		Dinner:         &catalog.Dinner{ID: "d1", BasePrice: 1},
		Quantity:       1,
		Customizations: []flow.MenuItemCustomization{{MenuItemID: "a", DefaultQuantity: 1, CurrentQuantity: 2}},
		Additional:     []flow.AdditionalMenuItem{{MenuItemID: "b", Quantity: 1}},
		MenuItems:      []catalog.MenuItem{{ID: "a", UnitPrice: 5}},
	}

	first := Calculate(in)
	assert.Equal(t, first, Calculate(in))
	assert.Equal(t, before, in)
}

func TestCheckoutTotal(t *testing.T) {
	st := flow.New()
	st.SetDinner(&catalog.Dinner{ID: "d1", BasePrice: 30000})
	st.SetQuantity(2)
	assert.EqualValues(t, 0, CheckoutTotal(st), "style required")

	st.SetStyle(&catalog.ServingStyle{ID: "s1", ExtraPrice: 5000})
	st.SetMenuCustomizations([]flow.MenuItemCustomization{{MenuItemID: "steak", DefaultQuantity: 1, CurrentQuantity: 3}})
	st.AddAdditionalMenuItem("salad", "Salad")
	st.UpdateAdditionalMenuItemQuantity("salad", 2)

	st.SetCreatedProduct(&product.Product{ID: "p1", TotalPrice: 79000, Lines: []product.Line{
		{MenuItemID: "steak", UnitPrice: 2500},
		{MenuItemID: "salad", UnitPrice: 1500},
	}})

	// 70000 + 2500*2*2 + 1500*2*2
	assert.EqualValues(t, 86000, CheckoutTotal(st))

	totals := Summarize(st, []catalog.MenuItem{{ID: "steak", UnitPrice: 2000}, {ID: "salad", UnitPrice: 1500}})
	assert.EqualValues(t, 70000, totals.Quick)
	assert.EqualValues(t, 84000, totals.Preview)
	assert.EqualValues(t, 86000, totals.Checkout)
	if assert.NotNil(t, totals.Server) {
		assert.EqualValues(t, 79000, *totals.Server)
	}
}
