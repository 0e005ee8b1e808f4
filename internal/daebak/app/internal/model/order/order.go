// Package order models what the backend returns once a draft order has been
// committed: carts, orders, payment cards and the local checkout receipts.
package order

import (
	"sort"
	"time"

	"github.com/AndreyVLZ/mr-daebak/internal/daebak/app/internal/model/money"
)

type Item struct {
	ProductID        string    `json:"productId,omitempty"`
	ProductName      string    `json:"productName,omitempty"`
	DinnerName       string    `json:"dinnerName,omitempty"`
	ServingStyleName string    `json:"servingStyleName,omitempty"`
	Quantity         int       `json:"quantity"`
	UnitPrice        money.Won `json:"unitPrice"`
	LineTotal        money.Won `json:"lineTotal"`
}

type Order struct {
	ID                    string         `json:"id"`
	OrderNumber           string         `json:"orderNumber"`
	UserID                string         `json:"userId,omitempty"`
	Username              string         `json:"username,omitempty"`
	Status                Status         `json:"orderStatus"`
	PaymentStatus         PaymentStatus  `json:"paymentStatus"`
	DeliveryStatus        DeliveryStatus `json:"deliveryStatus"`
	Subtotal              money.Won      `json:"subtotal"`
	DiscountAmount        money.Won      `json:"discountAmount"`
	DeliveryFee           money.Won      `json:"deliveryFee"`
	GrandTotal            money.Won      `json:"grandTotal"`
	DeliveryMethod        DeliveryMethod `json:"deliveryMethod"`
	DeliveryAddress       string         `json:"deliveryAddress,omitempty"`
	RecipientName         string         `json:"recipientName,omitempty"`
	RecipientPhone        string         `json:"recipientPhone,omitempty"`
	Memo                  string         `json:"memo,omitempty"`
	RejectionReason       string         `json:"rejectionReason,omitempty"`
	RequestedDeliveryTime string         `json:"requestedDeliveryTime,omitempty"`
	OccasionType          string         `json:"occasionType,omitempty"`
	OrderedAt             Timestamp      `json:"orderedAt"`
	Items                 []Item         `json:"items"`
}

// SortNewestFirst orders by OrderedAt descending, keeping the input order for ties.
func SortNewestFirst(orders []Order) {
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].OrderedAt.After(orders[j].OrderedAt.Time)
	})
}

type CartItem struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type CartRequest struct {
	Items           []CartItem     `json:"items"`
	DeliveryAddress string         `json:"deliveryAddress"`
	DeliveryMethod  DeliveryMethod `json:"deliveryMethod"`
	Memo            string         `json:"memo,omitempty"`
}

type Cart struct {
	ID         string    `json:"id"`
	GrandTotal money.Won `json:"grandTotal"`
}

type PaymentCard struct {
	ID         string `json:"id"`
	CardBrand  string `json:"cardBrand,omitempty"`
	CardNumber string `json:"cardNumber,omitempty"`
}

type ApproveRequest struct {
	Approved        bool   `json:"approved"`
	RejectionReason string `json:"rejectionReason,omitempty"`
}

// Confirmation is what a customer sees after a successful checkout.
type Confirmation struct {
	OrderID     string    `json:"id"`
	OrderNumber string    `json:"orderNumber"`
	GrandTotal  money.Won `json:"grandTotal"`
}

// Receipt records a checkout performed through this service, pairing the
// authoritative total with the preview the customer was shown.
type Receipt struct {
	OrderID      string    `json:"orderId"`
	OrderNumber  string    `json:"orderNumber"`
	SessionID    string    `json:"sessionId"`
	GrandTotal   money.Won `json:"grandTotal"`
	PreviewTotal money.Won `json:"previewTotal"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ReceiptFilter narrows a receipt listing. Zero values mean no restriction.
type ReceiptFilter struct {
	SessionIDs []string
	Limit      int
}

func (f ReceiptFilter) Match(r Receipt) bool {
	if len(f.SessionIDs) == 0 {
		return true
	}

	for _, id := range f.SessionIDs {
		if id == r.SessionID {
			return true
		}
	}

	return false
}
