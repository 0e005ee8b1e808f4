package assistant

import (
	"github.com/AndreyVLZ/mr-daebak/internal/daebak/app/internal/model/money"
	"github.com/google/uuid"
)

// Conversation is the client half of an assistant dialogue.
type Conversation struct {
	id           uuid.UUID
	history      []Message
	order        []OrderItem
	total        money.Won
	address      string
	memo         string
	deliveryTime string
	occasion     string
	state        FlowState
	checkoutDone bool
}

func NewConversation() *Conversation {
	return &Conversation{id: uuid.New(), state: FlowIdle}
}

// Restart drops everything and waits for an address, the way a freshly
// opened assistant greets the customer.
func (c *Conversation) Restart() {
	*c = Conversation{id: uuid.New(), state: FlowSelectingAddress}
}

func (c *Conversation) ID() string            { return c.id.String() }
func (c *Conversation) State() FlowState      { return c.state }
func (c *Conversation) Address() string       { return c.address }
func (c *Conversation) CheckoutStarted() bool { return c.checkoutDone }

func (c *Conversation) Order() []OrderItem {
	out := make([]OrderItem, len(c.order))
	copy(out, c.order)

	return out
}

// Request builds the next chat request from the current state. The history
// sent excludes the turn being asked.
func (c *Conversation) Request() ChatRequest {
	history := make([]Message, len(c.history))
	copy(history, c.history)

	return ChatRequest{
		ConversationHistory: history,
		CurrentOrder:        c.Order(),
		SelectedAddress:     c.address,
		CurrentFlowState:    c.state,
	}
}

func (c *Conversation) AddUser(content string) {
	c.history = append(c.history, Message{Role: RoleUser, Content: content})
}

func (c *Conversation) AddAssistant(content string) {
	c.history = append(c.history, Message{Role: RoleAssistant, Content: content})
}

// Apply folds a reply into the conversation. Empty optional fields keep the
// previous values.
func (c *Conversation) Apply(reply ChatReply) {
	c.AddAssistant(reply.AssistantMessage)

	c.order = make([]OrderItem, len(reply.CurrentOrder))
	copy(c.order, reply.CurrentOrder)
	c.total = reply.TotalPrice
	c.state = reply.FlowState

	if reply.SelectedAddress != "" {
		c.address = reply.SelectedAddress
	}

	if reply.Memo != "" {
		c.memo = reply.Memo
	}

	if reply.RequestedDeliveryTime != "" {
		c.deliveryTime = reply.RequestedDeliveryTime
	}

	if reply.OccasionType != "" {
		c.occasion = reply.OccasionType
	}
}

// Cancel clears the order after the customer called it off.
func (c *Conversation) Cancel() {
	c.order = nil
	c.total = 0
	c.address = ""
	c.memo = ""
	c.state = FlowIdle
}

// CheckoutRequest assembles the voice checkout payload.
func (c *Conversation) CheckoutRequest() CheckoutRequest {
	dinners, extras := SplitOrder(c.order)

	return CheckoutRequest{
		OrderItems:            dinners,
		AdditionalMenuItems:   extras,
		DeliveryAddress:       c.address,
		Memo:                  c.memo,
		RequestedDeliveryTime: c.deliveryTime,
		OccasionType:          c.occasion,
	}
}

func (c *Conversation) MarkCheckout(started bool) { c.checkoutDone = started }

// View is a read-only copy for rendering.
type View struct {
	ID                    string      `json:"conversationId"`
	Messages              []Message   `json:"messages"`
	CurrentOrder          []OrderItem `json:"currentOrder"`
	TotalPrice            money.Won   `json:"totalPrice"`
	SelectedAddress       string      `json:"selectedAddress"`
	Memo                  string      `json:"memo"`
	RequestedDeliveryTime string      `json:"requestedDeliveryTime"`
	OccasionType          string      `json:"occasionType"`
	FlowState             FlowState   `json:"flowState"`
	CheckoutCompleted     bool        `json:"checkoutCompleted"`
}

func (c *Conversation) View() View {
	history := make([]Message, len(c.history))
	copy(history, c.history)

	return View{
		ID:                    c.ID(),
		Messages:              history,
		CurrentOrder:          c.Order(),
		TotalPrice:            c.total,
		SelectedAddress:       c.address,
		Memo:                  c.memo,
		RequestedDeliveryTime: c.deliveryTime,
		OccasionType:          c.occasion,
		FlowState:             c.state,
		CheckoutCompleted:     c.checkoutDone,
	}
}
