package order

// Status is the lifecycle of an order on the backend.
type Status uint8

const (
	StatusUnknown Status = iota
	StatusPlaced
	StatusPendingApproval
	StatusApproved
	StatusRejected
	StatusPaid
	StatusCancelled
	StatusRefunded
)

func supportStatus() []string {
	return []string{
		"",
		"PLACED",
		"PENDING_APPROVAL",
		"APPROVED",
		"REJECTED",
		"PAID",
		"CANCELLED",
		"REFUNDED",
	}
}

func ParseStatus(val string) (Status, error) { return parseEnum[Status](supportStatus(), "order status", val) }

func (s Status) String() string {
	name, err := enumName(supportStatus(), "order status", uint8(s))
	if err != nil {
		return err.Error()
	}

	return name
}

func (s Status) MarshalText() ([]byte, error) {
	name, err := enumName(supportStatus(), "order status", uint8(s))
	return []byte(name), err
}

func (s *Status) UnmarshalText(text []byte) error {
	val, err := ParseStatus(string(text))
	*s = val

	return err
}

type PaymentStatus uint8

const (
	PaymentUnknown PaymentStatus = iota
	PaymentPending
	PaymentSucceeded
	PaymentFailed
	PaymentRefunded
)

func supportPayment() []string {
	return []string{"", "PENDING", "SUCCEEDED", "FAILED", "REFUNDED"}
}

func ParsePaymentStatus(val string) (PaymentStatus, error) {
	return parseEnum[PaymentStatus](supportPayment(), "payment status", val)
}

func (s PaymentStatus) String() string {
	name, err := enumName(supportPayment(), "payment status", uint8(s))
	if err != nil {
		return err.Error()
	}

	return name
}

func (s PaymentStatus) MarshalText() ([]byte, error) {
	name, err := enumName(supportPayment(), "payment status", uint8(s))
	return []byte(name), err
}

func (s *PaymentStatus) UnmarshalText(text []byte) error {
	val, err := ParsePaymentStatus(string(text))
	*s = val

	return err
}

type DeliveryStatus uint8

const (
	DeliveryUnknown DeliveryStatus = iota
	DeliveryReady
	DeliveryCooking
	DeliveryShipping
	DeliveryDelivered
	DeliveryPickupReady
	DeliveryPickedUp
)

func supportDelivery() []string {
	return []string{"", "READY", "COOKING", "SHIPPING", "DELIVERED", "PICKUP_READY", "PICKED_UP"}
}

func ParseDeliveryStatus(val string) (DeliveryStatus, error) {
	return parseEnum[DeliveryStatus](supportDelivery(), "delivery status", val)
}

func (s DeliveryStatus) String() string {
	name, err := enumName(supportDelivery(), "delivery status", uint8(s))
	if err != nil {
		return err.Error()
	}

	return name
}

func (s DeliveryStatus) MarshalText() ([]byte, error) {
	name, err := enumName(supportDelivery(), "delivery status", uint8(s))
	return []byte(name), err
}

func (s *DeliveryStatus) UnmarshalText(text []byte) error {
	val, err := ParseDeliveryStatus(string(text))
	*s = val

	return err
}

type DeliveryMethod uint8

const (
	MethodUnknown DeliveryMethod = iota
	MethodPickup
	MethodDelivery
)

func supportMethod() []string { return []string{"", "Pickup", "Delivery"} }

func ParseDeliveryMethod(val string) (DeliveryMethod, error) {
	return parseEnum[DeliveryMethod](supportMethod(), "delivery method", val)
}

func (m DeliveryMethod) String() string {
	name, err := enumName(supportMethod(), "delivery method", uint8(m))
	if err != nil {
		return err.Error()
	}

	return name
}

func (m DeliveryMethod) MarshalText() ([]byte, error) {
	name, err := enumName(supportMethod(), "delivery method", uint8(m))
	return []byte(name), err
}

func (m *DeliveryMethod) UnmarshalText(text []byte) error {
	val, err := ParseDeliveryMethod(string(text))
	*m = val

	return err
}
