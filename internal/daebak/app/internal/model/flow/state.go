// Package flow holds the order wizard state of one customer session.
//
// A State is plain data: every operation clamps or ignores bad input instead
// of failing and nothing here performs I/O. Callers own the State they create
// and are responsible for serializing access to it.
package flow

import (
	"github.com/AndreyVLZ/mr-daebak/internal/daebak/app/internal/model/catalog"
	"github.com/AndreyVLZ/mr-daebak/internal/daebak/app/internal/model/money"
	"github.com/AndreyVLZ/mr-daebak/internal/daebak/app/internal/model/product"
)

type State struct {
	step           Step
	address        string
	dinner         *catalog.Dinner
	style          *catalog.ServingStyle
	product        *product.Product
	quantity       int
	memo           string
	customizations []MenuItemCustomization
	additional     []AdditionalMenuItem
}

func New() *State {
	st := new(State)
	st.ResetOrder()

	return st
}

func (st *State) Step() Step      { return st.step }
func (st *State) Address() string { return st.address }
func (st *State) Quantity() int   { return st.quantity }
func (st *State) Memo() string    { return st.memo }

func (st *State) Dinner() *catalog.Dinner {
	if st.dinner == nil {
		return nil
	}

	d := *st.dinner

	return &d
}

func (st *State) Style() *catalog.ServingStyle {
	if st.style == nil {
		return nil
	}

	s := *st.style

	return &s
}

func (st *State) CreatedProduct() *product.Product {
	if st.product == nil {
		return nil
	}

	p := st.product.Clone()

	return &p
}

func (st *State) MenuCustomizations() []MenuItemCustomization {
	out := make([]MenuItemCustomization, len(st.customizations))
	copy(out, st.customizations)

	return out
}

func (st *State) AdditionalMenuItems() []AdditionalMenuItem {
	out := make([]AdditionalMenuItem, len(st.additional))
	copy(out, st.additional)

	return out
}

// SetStep jumps to any legal step. Illegal values are ignored.
func (st *State) SetStep(step Step) {
	if step.Valid() {
		st.step = step
	}
}

func (st *State) NextStep() {
	if st.step < StepCheckout {
		st.step++
	}
}

func (st *State) PrevStep() {
	if st.step > StepIntro {
		st.step--
	}
}

func (st *State) SetAddress(address string) { st.address = address }

// SetDinner replaces the dinner. Switching to another dinner drops the
// customizations of the previous one.
func (st *State) SetDinner(dinner *catalog.Dinner) {
	if dinner == nil {
		st.dinner = nil
		st.customizations = nil
		st.additional = nil

		return
	}

	if st.dinner != nil && st.dinner.ID != dinner.ID {
		st.customizations = nil
		st.additional = nil
	}

	d := *dinner
	st.dinner = &d
}

func (st *State) SetStyle(style *catalog.ServingStyle) {
	if style == nil {
		st.style = nil
		return
	}

	s := *style
	st.style = &s
}

func (st *State) SetCreatedProduct(p *product.Product) {
	if p == nil {
		st.product = nil
		return
	}

	cp := p.Clone()
	st.product = &cp
}

// SetProductLines replaces only the menu item lines of the draft order.
func (st *State) SetProductLines(lines []product.Line) {
	if st.product == nil {
		return
	}

	st.product.Lines = make([]product.Line, len(lines))
	copy(st.product.Lines, lines)
}

func (st *State) SetQuantity(n int) { st.quantity = max(1, n) }

func (st *State) SetMemo(memo string) { st.memo = memo }

func (st *State) SetMenuCustomizations(items []MenuItemCustomization) {
	st.customizations = make([]MenuItemCustomization, len(items))
	for i := range items {
		st.customizations[i] = items[i]
		st.customizations[i].CurrentQuantity = max(0, items[i].CurrentQuantity)
	}
}

func (st *State) UpdateMenuItemQuantity(menuItemID string, n int) {
	for i := range st.customizations {
		if st.customizations[i].MenuItemID == menuItemID {
			st.customizations[i].CurrentQuantity = max(0, n)
			return
		}
	}
}

func (st *State) SetAdditionalMenuItems(items []AdditionalMenuItem) {
	st.additional = make([]AdditionalMenuItem, 0, len(items))
	for i := range items {
		st.AddAdditionalMenuItem(items[i].MenuItemID, items[i].MenuItemName)
		st.UpdateAdditionalMenuItemQuantity(items[i].MenuItemID, items[i].Quantity)
	}
}

// AddAdditionalMenuItem appends the item with quantity 1. The first call for
// an id wins; later calls are ignored.
func (st *State) AddAdditionalMenuItem(menuItemID, name string) {
	for i := range st.additional {
		if st.additional[i].MenuItemID == menuItemID {
			return
		}
	}

	st.additional = append(st.additional, AdditionalMenuItem{
		MenuItemID:   menuItemID,
		MenuItemName: name,
		Quantity:     1,
	})
}

func (st *State) RemoveAdditionalMenuItem(menuItemID string) {
	out := st.additional[:0]
	for i := range st.additional {
		if st.additional[i].MenuItemID != menuItemID {
			out = append(out, st.additional[i])
		}
	}

	st.additional = out
}

// UpdateAdditionalMenuItemQuantity floors at 1; removal is a separate action.
func (st *State) UpdateAdditionalMenuItemQuantity(menuItemID string, n int) {
	for i := range st.additional {
		if st.additional[i].MenuItemID == menuItemID {
			st.additional[i].Quantity = max(1, n)
			return
		}
	}
}

// HasMenuChanges reports whether leaving the customize step would lose edits.
func (st *State) HasMenuChanges() bool {
	if len(st.additional) > 0 {
		return true
	}

	for i := range st.customizations {
		if st.customizations[i].Modified() {
			return true
		}
	}

	return false
}

// ResetCustomizations restores default quantities and drops additional items.
func (st *State) ResetCustomizations() {
	for i := range st.customizations {
		st.customizations[i].CurrentQuantity = st.customizations[i].DefaultQuantity
	}

	st.additional = nil
}

func (st *State) ResetOrder() {
	*st = State{
		step:     StepIntro,
		quantity: 1,
	}
}

// TotalPrice is the quick estimate (base price plus style extra, times
// quantity). It ignores customizations.
func (st *State) TotalPrice() money.Won {
	if st.dinner == nil {
		return 0
	}

	unit := st.dinner.BasePrice
	if st.style != nil {
		unit += st.style.ExtraPrice
	}

	return unit.Mul(st.quantity)
}

// Snapshot is a read-only copy of a State.
type Snapshot struct {
	Step                Step                    `json:"currentStep"`
	Address             string                  `json:"selectedAddress"`
	Dinner              *catalog.Dinner         `json:"selectedDinner"`
	Style               *catalog.ServingStyle   `json:"selectedStyle"`
	CreatedProduct      *product.Product        `json:"createdProduct"`
	Quantity            int                     `json:"quantity"`
	Memo                string                  `json:"memo"`
	MenuCustomizations  []MenuItemCustomization `json:"menuCustomizations"`
	AdditionalMenuItems []AdditionalMenuItem    `json:"additionalMenuItems"`
}

func (st *State) Snapshot() Snapshot {
	return Snapshot{
		Step:                st.step,
		Address:             st.address,
		Dinner:              st.Dinner(),
		Style:               st.Style(),
		CreatedProduct:      st.CreatedProduct(),
		Quantity:            st.quantity,
		Memo:                st.memo,
		MenuCustomizations:  st.MenuCustomizations(),
		AdditionalMenuItems: st.AdditionalMenuItems(),
	}
}
