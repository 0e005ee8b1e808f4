package order

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeOrder(t *testing.T) {
	data := `{
		"id": "o1",
		"orderNumber": "ORD-20250101-0001",
		"orderStatus": "PENDING_APPROVAL",
		"paymentStatus": "SUCCEEDED",
		"deliveryStatus": "COOKING",
		"grandTotal": "78000.00",
		"deliveryMethod": "Delivery",
		"orderedAt": "2025-01-01T12:30:00",
		"items": [{"productId": "p1", "quantity": 2, "unitPrice": 39000, "lineTotal": 78000}]
	}`

	var o Order
	require.NoError(t, json.Unmarshal([]byte(data), &o))

	assert.Equal(t, StatusPendingApproval, o.Status)
	assert.Equal(t, PaymentSucceeded, o.PaymentStatus)
	assert.Equal(t, DeliveryCooking, o.DeliveryStatus)
	assert.Equal(t, MethodDelivery, o.DeliveryMethod)
	assert.EqualValues(t, 78000, o.GrandTotal)
	assert.Equal(t, 12, o.OrderedAt.Hour())
	assert.Len(t, o.Items, 1)
}

func TestDecodeUnknownEnum(t *testing.T) {
	type testCase struct {
		name string
		data string
	}

	tc := []testCase{
		{name: "#1 order status", data: `{"orderStatus":"LOST"}`},
		{name: "#2 payment status", data: `{"paymentStatus":"MAYBE"}`},
		{name: "#3 delivery status", data: `{"deliveryStatus":"TELEPORTED"}`},
		{name: "#4 delivery method", data: `{"deliveryMethod":"Drone"}`},
	}

	for _, test := range tc {
		t.Run(test.name, func(t *testing.T) {
			var o Order
			assert.Error(t, json.Unmarshal([]byte(test.data), &o))
		})
	}
}

func TestEnumRoundTrip(t *testing.T) {
	for _, name := range supportDelivery()[1:] {
		s, err := ParseDeliveryStatus(name)
		require.NoError(t, err)
		assert.Equal(t, name, s.String())
	}

	data, err := json.Marshal(CartRequest{DeliveryMethod: MethodDelivery, Items: []CartItem{{ProductID: "p1", Quantity: 1}}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"items":[{"productId":"p1","quantity":1}],"deliveryAddress":"","deliveryMethod":"Delivery"}`, string(data))
}

func TestSortNewestFirst(t *testing.T) {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	orders := []Order{
		{ID: "old", OrderedAt: Timestamp{base}},
		{ID: "new", OrderedAt: Timestamp{base.Add(2 * time.Hour)}},
		{ID: "mid", OrderedAt: Timestamp{base.Add(time.Hour)}},
	}

	SortNewestFirst(orders)

	assert.Equal(t, "new", orders[0].ID)
	assert.Equal(t, "mid", orders[1].ID)
	assert.Equal(t, "old", orders[2].ID)
}
