// Package assistant relays the conversational ordering dialogue between the
// customer and the backend assistant and runs the voice checkout it asks for.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/AndreyVLZ/mr-daebak/internal/daebak/app/internal/model/assistant"
	"github.com/AndreyVLZ/mr-daebak/internal/daebak/app/internal/model/order"
	"github.com/AndreyVLZ/mr-daebak/internal/daebak/app/pkg/idempotency"
	"github.com/AndreyVLZ/mr-daebak/internal/daebak/app/service/internal"
	"github.com/AndreyVLZ/mr-daebak/internal/daebak/app/service/session"
)

const (
	msgFailed     = "죄송해요, 문제가 발생했어요: %s"
	msgEmptyOrder = "아직 주문하신 메뉴가 없어요. 먼저 디너를 골라주세요."
	msgPlaced     = "주문이 완료되었습니다!\n\n주문번호: %s\n총 금액: %s원"
)

type chatRepo interface {
	Chat(context.Context, assistant.ChatRequest) (assistant.ChatReply, error)
	VoiceCheckout(context.Context, assistant.CheckoutRequest) (assistant.CheckoutResult, error)
	DeleteProduct(context.Context, string) error
}

type receiptSaver interface {
	SaveReceipt(context.Context, order.Receipt) error
}

type onceGuard interface {
	Seen(context.Context, string) (bool, error)
	Forget(context.Context, string) error
}

type assistantService struct {
	api      chatRepo
	receipts receiptSaver
	once     onceGuard
	log      *slog.Logger
	now      func() time.Time
}

func NewAssistantService(api chatRepo, receipts receiptSaver, once onceGuard, log *slog.Logger) assistantService {
	return assistantService{
		api:      api,
		receipts: receipts,
		once:     once,
		log:      log,
		now:      time.Now,
	}
}

// Reply is the conversation after a turn together with the action the
// backend asked the UI to take.
type Reply struct {
	assistant.View
	UiAction assistant.UiAction `json:"uiAction"`
}

func (srv assistantService) SendText(ctx context.Context, sess *session.Session, msg string) (Reply, error) {
	msg = strings.TrimSpace(msg)
	if msg == "" {
		return Reply{}, internal.Invalid("message", "message must not be empty")
	}

	return srv.send(ctx, sess, msg, func(req *assistant.ChatRequest) {
		req.Message = msg
	})
}

// SendVoice relays recorded audio. The user turn is the transcription the
// backend sends back.
func (srv assistantService) SendVoice(ctx context.Context, sess *session.Session, audioBase64, format string) (Reply, error) {
	if audioBase64 == "" {
		return Reply{}, internal.Invalid("audioBase64", "audio must not be empty")
	}

	return srv.send(ctx, sess, "", func(req *assistant.ChatRequest) {
		req.AudioBase64 = audioBase64
		req.AudioFormat = format
	})
}

func (srv assistantService) send(ctx context.Context, sess *session.Session, typed string, fill func(*assistant.ChatRequest)) (Reply, error) {
	if err := sess.TryAcquire(); err != nil {
		return Reply{}, err
	}
	defer sess.Release()

	convo := sess.Conversation()

	req := convo.Request()
	fill(&req)

	if typed != "" {
		convo.AddUser(typed)
	}

	reply, err := srv.api.Chat(ctx, req)
	if err != nil {
		if internal.IsUnauthorized(err) {
			return Reply{}, err
		}

		srv.log.Warn("assistant chat", "conversationID", convo.ID(), "err", err)
		convo.AddAssistant(fmt.Sprintf(msgFailed, internal.Message(err)))

		return Reply{View: convo.View()}, nil
	}

	if typed == "" && reply.UserMessage != "" {
		convo.AddUser(reply.UserMessage)
	}

	convo.Apply(reply)

	if err := srv.handleAction(ctx, sess, reply.UiAction); err != nil {
		return Reply{}, err
	}

	return Reply{View: convo.View(), UiAction: reply.UiAction}, nil
}

func (srv assistantService) handleAction(ctx context.Context, sess *session.Session, action assistant.UiAction) error {
	switch action {
	case assistant.ActionNone, assistant.ActionShowConfirmModal, assistant.ActionUpdateOrderList:
		return nil
	case assistant.ActionShowCancelConfirm:
		sess.Conversation().Cancel()
		return nil
	case assistant.ActionProceedToCheckout:
		return srv.checkout(ctx, sess)
	default:
		return fmt.Errorf("unsupported ui action %s", action)
	}
}

var errCheckoutRejected = errors.New("checkout rejected")

// checkout places the assembled order at most once per conversation. The
// outcome is reported as an assistant turn; only a 401 is returned.
func (srv assistantService) checkout(ctx context.Context, sess *session.Session) error {
	convo := sess.Conversation()
	if convo.CheckoutStarted() {
		return nil
	}

	req := convo.CheckoutRequest()
	if req.Empty() {
		convo.AddAssistant(msgEmptyOrder)
		return nil
	}

	key := idempotency.Key("voice-checkout", convo.ID())

	seen, err := srv.once.Seen(ctx, key)
	if err != nil {
		srv.log.Error("voice checkout guard", "key", key, "err", err)
		convo.AddAssistant(fmt.Sprintf(msgFailed, "잠시 후 다시 시도해주세요"))

		return nil
	}

	if seen {
		return nil
	}

	convo.MarkCheckout(true)

	res, err := srv.api.VoiceCheckout(ctx, req)
	if err == nil && !res.Success {
		err = fmt.Errorf("%w: %s", errCheckoutRejected, res.ErrorMessage)
	}

	if err != nil {
		convo.MarkCheckout(false)

		if ferr := srv.once.Forget(ctx, key); ferr != nil {
			srv.log.Warn("release voice checkout guard", "key", key, "err", ferr)
		}

		if internal.IsUnauthorized(err) {
			return err
		}

		msg := res.ErrorMessage
		if msg == "" {
			msg = internal.Message(err)
		}

		srv.log.Warn("voice checkout", "conversationID", convo.ID(), "err", err)
		convo.AddAssistant(fmt.Sprintf(msgFailed, msg))

		return nil
	}

	convo.AddAssistant(fmt.Sprintf(msgPlaced, res.OrderNumber, res.TotalPrice))

	receipt := order.Receipt{
		OrderID:      res.OrderID,
		OrderNumber:  res.OrderNumber,
		SessionID:    sess.ID().String(),
		GrandTotal:   res.TotalPrice,
		PreviewTotal: convo.View().TotalPrice,
		CreatedAt:    srv.now(),
	}

	if err := srv.receipts.SaveReceipt(ctx, receipt); err != nil {
		srv.log.Error("save receipt", "orderNumber", res.OrderNumber, "err", err)
	}

	return nil
}

func (srv assistantService) View(_ context.Context, sess *session.Session) (Reply, error) {
	if err := sess.TryAcquire(); err != nil {
		return Reply{}, err
	}
	defer sess.Release()

	return Reply{View: sess.Conversation().View()}, nil
}

// Reset starts a new conversation waiting for an address and clears the
// order wizard of the same session.
func (srv assistantService) Reset(ctx context.Context, sess *session.Session) (Reply, error) {
	if err := sess.TryAcquire(); err != nil {
		return Reply{}, err
	}
	defer sess.Release()

	sess.Conversation().Restart()

	// the wizard may still hold a draft order
	if p := sess.Flow().CreatedProduct(); p != nil {
		if err := srv.api.DeleteProduct(ctx, p.ID); err != nil && !internal.IsNotFound(err) {
			srv.log.Warn("delete draft order on reset", "productID", p.ID, "err", err)
		}
	}

	sess.Flow().ResetOrder()
	sess.SetMenu(nil)

	return Reply{View: sess.Conversation().View()}, nil
}
