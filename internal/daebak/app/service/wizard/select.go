package wizard

import (
	"context"
	"fmt"
	"strings"

	"github.com/AndreyVLZ/mr-daebak/internal/daebak/app/internal/model/catalog"
	"github.com/AndreyVLZ/mr-daebak/internal/daebak/app/internal/model/flow"
	"github.com/AndreyVLZ/mr-daebak/internal/daebak/app/service/internal"
	"github.com/AndreyVLZ/mr-daebak/internal/daebak/app/service/session"
)

func (srv wizardService) SelectAddress(_ context.Context, sess *session.Session, address string) (View, error) {
	address = strings.TrimSpace(address)

	return run(sess, func(st *flow.State) error {
		if address == "" {
			return internal.Invalid("address", "address must not be empty")
		}

		st.SetAddress(address)

		return nil
	})
}

// Dinners lists the dinners that can be ordered.
func (srv wizardService) Dinners(ctx context.Context) ([]catalog.Dinner, error) {
	dinners, err := srv.api.Dinners(ctx)
	if err != nil {
		return nil, err
	}

	return catalog.ActiveDinners(dinners), nil
}

func (srv wizardService) SelectDinner(ctx context.Context, sess *session.Session, dinnerID string) (View, error) {
	return run(sess, func(st *flow.State) error {
		dinners, err := srv.api.Dinners(ctx)
		if err != nil {
			return err
		}

		dinner, ok := catalog.FindDinner(dinners, dinnerID)
		if !ok || !dinner.Active {
			return internal.Invalid("dinnerId", fmt.Sprintf("dinner %s is not available", dinnerID))
		}

		st.SetDinner(&dinner)

		return nil
	})
}

// StyleOption is a serving style with its availability for the chosen dinner.
type StyleOption struct {
	catalog.ServingStyle
	Disabled bool `json:"disabled"`
}

func (srv wizardService) Styles(ctx context.Context, sess *session.Session) ([]StyleOption, error) {
	if err := sess.TryAcquire(); err != nil {
		return nil, err
	}
	defer sess.Release()

	styles, err := srv.api.ServingStyles(ctx)
	if err != nil {
		return nil, err
	}

	dinner := sess.Flow().Dinner()
	active := catalog.ActiveStyles(styles)
	out := make([]StyleOption, 0, len(active))

	for _, s := range active {
		out = append(out, StyleOption{
			ServingStyle: s,
			Disabled:     dinner != nil && !s.Allows(*dinner),
		})
	}

	return out, nil
}

func (srv wizardService) SelectStyle(ctx context.Context, sess *session.Session, styleID string) (View, error) {
	return run(sess, func(st *flow.State) error {
		dinner := st.Dinner()
		if dinner == nil {
			return internal.Invalid("selectedDinner", "select a dinner first")
		}

		styles, err := srv.api.ServingStyles(ctx)
		if err != nil {
			return err
		}

		style, ok := catalog.FindStyle(styles, styleID)
		if !ok || !style.Active {
			return internal.Invalid("styleId", fmt.Sprintf("serving style %s is not available", styleID))
		}

		if !style.Allows(*dinner) {
			return internal.Invalid("styleId", fmt.Sprintf("%s is served in grand or deluxe style only", dinner.Name))
		}

		st.SetStyle(&style)

		return nil
	})
}

// Customize loads what the customize step needs: the dinner's default
// composition (once per dinner) and the full menu catalog.
func (srv wizardService) Customize(ctx context.Context, sess *session.Session) (View, error) {
	return run(sess, func(st *flow.State) error {
		dinner := st.Dinner()
		if dinner == nil {
			return internal.Invalid("selectedDinner", "select a dinner")
		}

		if err := srv.loadDefaults(ctx, st); err != nil {
			return err
		}

		menu, err := srv.api.MenuItems(ctx)
		if err != nil {
			srv.log.Warn("load menu catalog", "err", err)
			return nil
		}

		sess.SetMenu(menu)

		return nil
	})
}

func (srv wizardService) SetQuantity(_ context.Context, sess *session.Session, n int) (View, error) {
	return run(sess, func(st *flow.State) error {
		st.SetQuantity(n)
		return nil
	})
}

func (srv wizardService) SetMemo(_ context.Context, sess *session.Session, memo string) (View, error) {
	return run(sess, func(st *flow.State) error {
		st.SetMemo(strings.TrimSpace(memo))
		return nil
	})
}

func (srv wizardService) UpdateMenuItemQuantity(_ context.Context, sess *session.Session, menuItemID string, n int) (View, error) {
	return run(sess, func(st *flow.State) error {
		st.UpdateMenuItemQuantity(menuItemID, n)
		return nil
	})
}

func (srv wizardService) AddAdditionalMenuItem(ctx context.Context, sess *session.Session, menuItemID string) (View, error) {
	return run(sess, func(st *flow.State) error {
		for _, c := range st.MenuCustomizations() {
			if c.MenuItemID == menuItemID {
				return internal.Invalid("menuItemId", c.MenuItemName+" is part of the dinner, change its quantity instead")
			}
		}

		menu := sess.Menu()
		if len(menu) == 0 {
			loaded, err := srv.api.MenuItems(ctx)
			if err != nil {
				return fmt.Errorf("load menu catalog: %w", err)
			}

			sess.SetMenu(loaded)
			menu = loaded
		}

		item, ok := catalog.FindMenuItem(menu, menuItemID)
		if !ok {
			return internal.Invalid("menuItemId", fmt.Sprintf("menu item %s does not exist", menuItemID))
		}

		if item.Stock <= 0 {
			return internal.Invalid("menuItemId", item.Name+" is out of stock")
		}

		st.AddAdditionalMenuItem(item.ID, item.Name)

		return nil
	})
}

func (srv wizardService) RemoveAdditionalMenuItem(_ context.Context, sess *session.Session, menuItemID string) (View, error) {
	return run(sess, func(st *flow.State) error {
		st.RemoveAdditionalMenuItem(menuItemID)
		return nil
	})
}

func (srv wizardService) UpdateAdditionalMenuItemQuantity(_ context.Context, sess *session.Session, menuItemID string, n int) (View, error) {
	return run(sess, func(st *flow.State) error {
		st.UpdateAdditionalMenuItemQuantity(menuItemID, n)
		return nil
	})
}

// loadDefaults fills the customizations with the dinner's default
// composition unless they are already loaded.
func (srv wizardService) loadDefaults(ctx context.Context, st *flow.State) error {
	if len(st.MenuCustomizations()) > 0 {
		return nil
	}

	dinner := st.Dinner()
	if dinner == nil {
		return internal.Invalid("selectedDinner", "select a dinner")
	}

	defaults, err := srv.api.DefaultMenuItems(ctx, dinner.ID)
	if err != nil {
		return fmt.Errorf("load default menu: %w", err)
	}

	items := make([]flow.MenuItemCustomization, 0, len(defaults))
	for _, d := range defaults {
		items = append(items, flow.MenuItemCustomization{
			MenuItemID:      d.MenuItemID,
			MenuItemName:    d.MenuItemName,
			DefaultQuantity: d.DefaultQuantity,
			CurrentQuantity: d.DefaultQuantity,
		})
	}

	st.SetMenuCustomizations(items)

	return nil
}
