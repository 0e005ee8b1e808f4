package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/AndreyVLZ/mr-daebak/internal/daebak/app/internal/model/assistant"
)

func (c *Client) Chat(ctx context.Context, req assistant.ChatRequest) (assistant.ChatReply, error) {
	var reply assistant.ChatReply
	if err := c.do(ctx, http.MethodPost, p("voice-order", "chat"), nil, req, &reply); err != nil {
		return assistant.ChatReply{}, fmt.Errorf("chat: %w", err)
	}

	return reply, nil
}

func (c *Client) VoiceCheckout(ctx context.Context, req assistant.CheckoutRequest) (assistant.CheckoutResult, error) {
	var res assistant.CheckoutResult
	if err := c.do(ctx, http.MethodPost, p("voice-order", "checkout"), nil, req, &res); err != nil {
		return assistant.CheckoutResult{}, fmt.Errorf("voice checkout: %w", err)
	}

	return res, nil
}
