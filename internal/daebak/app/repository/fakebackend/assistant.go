package fakebackend

import (
	"context"
	"net/http"

	"github.com/AndreyVLZ/mr-daebak/internal/daebak/app/internal/model/assistant"
	"github.com/AndreyVLZ/mr-daebak/internal/daebak/app/internal/model/money"
)

// Chat answers with the next scripted reply, or echoes the message back
// without changing the conversation.
func (b *Backend) Chat(_ context.Context, req assistant.ChatRequest) (assistant.ChatReply, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.enter(http.MethodPost, "/voice-order/chat"); err != nil {
		return assistant.ChatReply{}, err
	}

	userMsg := req.Message
	if userMsg == "" && req.AudioBase64 != "" {
		userMsg = "(voice message)"
	}

	if len(b.chat) > 0 {
		reply := b.chat[0]
		b.chat = b.chat[1:]

		if reply.UserMessage == "" {
			reply.UserMessage = userMsg
		}

		return reply, nil
	}

	return assistant.ChatReply{
		UserMessage:      userMsg,
		AssistantMessage: "말씀하신 내용을 확인했어요: " + userMsg,
		FlowState:        req.CurrentFlowState,
		UiAction:         assistant.ActionNone,
		CurrentOrder:     req.CurrentOrder,
		SelectedAddress:  req.SelectedAddress,
	}, nil
}

func (b *Backend) VoiceCheckout(_ context.Context, req assistant.CheckoutRequest) (assistant.CheckoutResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.enter(http.MethodPost, "/voice-order/checkout"); err != nil {
		return assistant.CheckoutResult{}, err
	}

	if req.Empty() {
		return assistant.CheckoutResult{Success: false, ErrorMessage: "주문할 상품이 없습니다"}, nil
	}

	if req.DeliveryAddress == "" {
		return assistant.CheckoutResult{Success: false, ErrorMessage: "배달 주소가 필요합니다"}, nil
	}

	var total money.Won
	for _, it := range req.OrderItems {
		total += it.TotalPrice
	}

	placed := b.placeOrder(total, req.DeliveryAddress, req.Memo)
	placed.RequestedDeliveryTime = req.RequestedDeliveryTime
	placed.OccasionType = req.OccasionType
	b.orders = append(b.orders, placed)

	return assistant.CheckoutResult{
		Success:     true,
		OrderID:     placed.ID,
		OrderNumber: placed.OrderNumber,
		TotalPrice:  total,
	}, nil
}
