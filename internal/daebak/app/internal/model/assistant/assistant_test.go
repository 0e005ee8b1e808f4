package assistant

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeReply(t *testing.T) {
	data := `{
		"userMessage": "발렌타인 디너 주세요",
		"assistantMessage": "서빙 스타일을 골라주세요",
		"flowState": "SELECTING_STYLE",
		"uiAction": "UPDATE_ORDER_LIST",
		"currentOrder": [{"dinnerId": "d1", "dinnerName": "Valentine", "quantity": 1, "totalPrice": "30000"}],
		"totalPrice": 30000
	}`

	var reply ChatReply
	require.NoError(t, json.Unmarshal([]byte(data), &reply))
	assert.Equal(t, FlowSelectingStyle, reply.FlowState)
	assert.Equal(t, ActionUpdateOrderList, reply.UiAction)
	assert.EqualValues(t, 30000, reply.CurrentOrder[0].TotalPrice)
}

func TestDecodeUnknownVariants(t *testing.T) {
	var reply ChatReply
	assert.Error(t, json.Unmarshal([]byte(`{"uiAction":"OPEN_PORTAL"}`), &reply))
	assert.Error(t, json.Unmarshal([]byte(`{"flowState":"DANCING"}`), &reply))
}

func TestSplitOrder(t *testing.T) {
	items := []OrderItem{
		{DinnerID: "d1", DinnerName: "Valentine", ServingStyleID: "s2", Quantity: 2},
		{DinnerID: "d2", DinnerName: "French", Quantity: 1},
		{DinnerID: "d3", DinnerName: "English", ServingStyleID: "s1", Quantity: 0},
		{DinnerName: "추가: 샐러드", Quantity: 2},
		{DinnerName: "와인", Quantity: 1},
		{DinnerName: "추가: ", Quantity: 1},
	}

	dinners, extras := SplitOrder(items)

	require.Len(t, dinners, 1)
	assert.Equal(t, "d1", dinners[0].DinnerID)
	assert.NotNil(t, dinners[0].Components)
	assert.Equal(t, []CheckoutAdditional{
		{MenuItemName: "샐러드", Quantity: 2},
		{MenuItemName: "와인", Quantity: 1},
	}, extras)
}

func TestConversation(t *testing.T) {
	c := NewConversation()
	assert.Equal(t, FlowIdle, c.State())

	c.AddUser("hello")
	req := c.Request()
	assert.Len(t, req.ConversationHistory, 1)

	c.Apply(ChatReply{
		AssistantMessage: "where to?",
		FlowState:        FlowSelectingMenu,
		SelectedAddress:  "Seoul",
		Memo:             "no onions",
		CurrentOrder:     []OrderItem{{DinnerID: "d1", ServingStyleID: "s1", Quantity: 1}},
	})

	c.Apply(ChatReply{AssistantMessage: "ok", FlowState: FlowConfirming, CurrentOrder: c.Order()})
	view := c.View()
	assert.Equal(t, "Seoul", view.SelectedAddress)
	assert.Equal(t, "no onions", view.Memo)
	assert.Len(t, view.Messages, 3)

	c.Cancel()
	assert.Equal(t, FlowIdle, c.State())
	assert.Empty(t, c.Order())
	assert.Empty(t, c.Address())

	id := c.ID()
	c.Restart()
	assert.NotEqual(t, id, c.ID())
	assert.Equal(t, FlowSelectingAddress, c.State())
	assert.Empty(t, c.View().Messages)
}
