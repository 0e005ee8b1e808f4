// Package assistant models the conversational ordering relay. The language
// understanding happens on the backend; this side keeps the transcript and
// the order the backend has assembled so far.
package assistant

import (
	"strings"

	"github.com/AndreyVLZ/mr-daebak/internal/daebak/app/internal/model/money"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// AdditionalPrefix marks additional items in the assembled order's names.
const AdditionalPrefix = "추가: "

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// OrderItem is a line of the order the assistant has assembled.
// Additional menu items carry no DinnerID.
type OrderItem struct {
	DinnerID         string         `json:"dinnerId,omitempty"`
	DinnerName       string         `json:"dinnerName"`
	ServingStyleID   string         `json:"servingStyleId,omitempty"`
	ServingStyleName string         `json:"servingStyleName,omitempty"`
	Quantity         int            `json:"quantity"`
	BasePrice        money.Won      `json:"basePrice"`
	UnitPrice        money.Won      `json:"unitPrice"`
	TotalPrice       money.Won      `json:"totalPrice"`
	Components       map[string]int `json:"components"`
	ExcludedItems    []string       `json:"excludedItems"`
}

func (it OrderItem) IsDinner() bool { return it.DinnerID != "" }

type ChatRequest struct {
	Message             string      `json:"message,omitempty"`
	AudioBase64         string      `json:"audioBase64,omitempty"`
	AudioFormat         string      `json:"audioFormat,omitempty"`
	ConversationHistory []Message   `json:"conversationHistory"`
	CurrentOrder        []OrderItem `json:"currentOrder"`
	SelectedAddress     string      `json:"selectedAddress,omitempty"`
	CurrentFlowState    FlowState   `json:"currentFlowState"`
}

type ChatReply struct {
	UserMessage           string      `json:"userMessage"`
	AssistantMessage      string      `json:"assistantMessage"`
	FlowState             FlowState   `json:"flowState"`
	UiAction              UiAction    `json:"uiAction"`
	CurrentOrder          []OrderItem `json:"currentOrder"`
	TotalPrice            money.Won   `json:"totalPrice"`
	SelectedAddress       string      `json:"selectedAddress"`
	Memo                  string      `json:"memo"`
	RequestedDeliveryTime string      `json:"requestedDeliveryTime"`
	OccasionType          string      `json:"occasionType"`
}

type CheckoutAdditional struct {
	MenuItemName string `json:"menuItemName"`
	Quantity     int    `json:"quantity"`
}

type CheckoutRequest struct {
	OrderItems            []OrderItem          `json:"orderItems"`
	AdditionalMenuItems   []CheckoutAdditional `json:"additionalMenuItems"`
	DeliveryAddress       string               `json:"deliveryAddress"`
	Memo                  string               `json:"memo,omitempty"`
	RequestedDeliveryTime string               `json:"requestedDeliveryTime,omitempty"`
	OccasionType          string               `json:"occasionType,omitempty"`
}

// Empty reports a request with nothing to order.
func (r CheckoutRequest) Empty() bool {
	return len(r.OrderItems) == 0 && len(r.AdditionalMenuItems) == 0
}

type CheckoutResult struct {
	Success      bool      `json:"success"`
	OrderID      string    `json:"orderId,omitempty"`
	OrderNumber  string    `json:"orderNumber"`
	TotalPrice   money.Won `json:"totalPrice"`
	ErrorMessage string    `json:"errorMessage"`
}

// SplitOrder turns the assembled order into checkout lines: dinners with a
// style and a positive quantity, and additional items with the display
// prefix stripped from their names.
func SplitOrder(items []OrderItem) ([]OrderItem, []CheckoutAdditional) {
	dinners := make([]OrderItem, 0, len(items))
	extras := make([]CheckoutAdditional, 0)

	for _, it := range items {
		if it.Quantity <= 0 {
			continue
		}

		if it.IsDinner() {
			if it.ServingStyleID == "" {
				continue
			}

			if it.Components == nil {
				it.Components = map[string]int{}
			}

			if it.ExcludedItems == nil {
				it.ExcludedItems = []string{}
			}

			dinners = append(dinners, it)

			continue
		}

		name := strings.TrimSpace(strings.TrimPrefix(it.DinnerName, AdditionalPrefix))
		if name == "" {
			continue
		}

		extras = append(extras, CheckoutAdditional{MenuItemName: name, Quantity: it.Quantity})
	}

	return dinners, extras
}
