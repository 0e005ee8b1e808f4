package assistant

import "fmt"

// FlowState is where the server-side conversation currently stands.
type FlowState uint8

const (
	FlowIdle FlowState = iota
	FlowSelectingAddress
	FlowSelectingMenu
	FlowSelectingStyle
	FlowSelectingQuantity
	FlowAskingMoreDinner
	FlowCustomizingMenu
	FlowSelectingAdditionalMenu
	FlowEnteringMemo
	FlowConfirming
	FlowCheckoutReady
)

func supportFlowState() [11]string {
	return [11]string{
		"IDLE",
		"SELECTING_ADDRESS",
		"SELECTING_MENU",
		"SELECTING_STYLE",
		"SELECTING_QUANTITY",
		"ASKING_MORE_DINNER",
		"CUSTOMIZING_MENU",
		"SELECTING_ADDITIONAL_MENU",
		"ENTERING_MEMO",
		"CONFIRMING",
		"CHECKOUT_READY",
	}
}

func ParseFlowState(val string) (FlowState, error) {
	states := supportFlowState()
	for i := range states {
		if states[i] == val {
			return FlowState(i), nil
		}
	}

	return FlowIdle, fmt.Errorf("unknown flow state [%s]", val)
}

func (s FlowState) String() string {
	if int(s) >= len(supportFlowState()) {
		return fmt.Sprintf("FlowState(%d)", uint8(s))
	}

	return supportFlowState()[s]
}

func (s FlowState) MarshalText() ([]byte, error) {
	if int(s) >= len(supportFlowState()) {
		return nil, fmt.Errorf("marshal %s", s)
	}

	return []byte(s.String()), nil
}

func (s *FlowState) UnmarshalText(text []byte) error {
	val, err := ParseFlowState(string(text))
	if err != nil {
		return err
	}

	*s = val

	return nil
}

// UiAction is the directive the server attaches to each reply.
type UiAction uint8

const (
	ActionNone UiAction = iota
	ActionShowConfirmModal
	ActionShowCancelConfirm
	ActionUpdateOrderList
	ActionProceedToCheckout
)

func supportUiAction() [5]string {
	return [5]string{
		"NONE",
		"SHOW_CONFIRM_MODAL",
		"SHOW_CANCEL_CONFIRM",
		"UPDATE_ORDER_LIST",
		"PROCEED_TO_CHECKOUT",
	}
}

func ParseUiAction(val string) (UiAction, error) {
	actions := supportUiAction()
	for i := range actions {
		if actions[i] == val {
			return UiAction(i), nil
		}
	}

	return ActionNone, fmt.Errorf("unknown ui action [%s]", val)
}

func (a UiAction) String() string {
	if int(a) >= len(supportUiAction()) {
		return fmt.Sprintf("UiAction(%d)", uint8(a))
	}

	return supportUiAction()[a]
}

func (a UiAction) MarshalText() ([]byte, error) {
	if int(a) >= len(supportUiAction()) {
		return nil, fmt.Errorf("marshal %s", a)
	}

	return []byte(a.String()), nil
}

func (a *UiAction) UnmarshalText(text []byte) error {
	val, err := ParseUiAction(string(text))
	if err != nil {
		return err
	}

	*a = val

	return nil
}
