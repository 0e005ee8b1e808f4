package wizard

import (
	"fmt"

	"github.com/AndreyVLZ/mr-daebak/internal/daebak/app/internal/model/flow"
)

// ConfirmError asks the customer to confirm a back step that discards work.
type ConfirmError struct {
	Step flow.Step
}

func (e ConfirmError) Error() string {
	return fmt.Sprintf("leaving the %s step discards your selections, confirm to continue", e.Step)
}

func (e ConfirmError) ConfirmRequired() bool { return true }

type paymentError struct{}

func (paymentError) Error() string         { return "register a payment card before checking out" }
func (paymentError) PaymentRequired() bool { return true }

var ErrNoPaymentMethod error = paymentError{}

type inProgressError struct{}

func (inProgressError) Error() string { return "this order is already being checked out" }
func (inProgressError) Busy() bool    { return true }

var ErrCheckoutInProgress error = inProgressError{}
