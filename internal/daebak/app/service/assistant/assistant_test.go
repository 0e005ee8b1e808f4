package assistant

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/AndreyVLZ/mr-daebak/internal/daebak/app/internal/model/assistant"
	"github.com/AndreyVLZ/mr-daebak/internal/daebak/app/internal/model/order"
	"github.com/AndreyVLZ/mr-daebak/internal/daebak/app/internal/model/product"
	"github.com/AndreyVLZ/mr-daebak/internal/daebak/app/pkg/idempotency"
	"github.com/AndreyVLZ/mr-daebak/internal/daebak/app/repository/backend"
	"github.com/AndreyVLZ/mr-daebak/internal/daebak/app/repository/fakebackend"
	"github.com/AndreyVLZ/mr-daebak/internal/daebak/app/repository/memory"
	"github.com/AndreyVLZ/mr-daebak/internal/daebak/app/service/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingAPI keeps every chat request sent to the fake backend.
type recordingAPI struct {
	*fakebackend.Backend
	requests []assistant.ChatRequest
}

func (r *recordingAPI) Chat(ctx context.Context, req assistant.ChatRequest) (assistant.ChatReply, error) {
	r.requests = append(r.requests, req)
	return r.Backend.Chat(ctx, req)
}

type fixture struct {
	srv      assistantService
	api      *recordingAPI
	receipts *memory.Receipts
	sess     *session.Session
}

func newFixture() fixture {
	api := &recordingAPI{Backend: fakebackend.New()}
	receipts := memory.New()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	return fixture{
		srv:      NewAssistantService(api, receipts, idempotency.NewMemory(time.Minute), log),
		api:      api,
		receipts: receipts,
		sess:     session.New(session.NewID(), time.Now()),
	}
}

func orderReply(action assistant.UiAction, address string) assistant.ChatReply {
	return assistant.ChatReply{
		AssistantMessage: "발렌타인 디너 그랜드 스타일로 준비할게요.",
		FlowState:        assistant.FlowCheckoutReady,
		UiAction:         action,
		CurrentOrder: []assistant.OrderItem{
			{
				DinnerID: "valentine", DinnerName: "Valentine Dinner",
				ServingStyleID: "grand", ServingStyleName: "Grand",
				Quantity: 1, UnitPrice: 35000, TotalPrice: 35000,
			},
			{DinnerName: assistant.AdditionalPrefix + "Salad", Quantity: 1, TotalPrice: 5000},
		},
		TotalPrice:      40000,
		SelectedAddress: address,
	}
}

func TestSendText(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	_, err := f.srv.SendText(ctx, f.sess, "   ")
	var v interface{ Invalid() bool }
	require.True(t, errors.As(err, &v))
	assert.Empty(t, f.api.Calls())

	f.api.ScriptChat(assistant.ChatReply{
		AssistantMessage: "어디로 배달해 드릴까요?",
		FlowState:        assistant.FlowSelectingAddress,
	})

	reply, err := f.srv.SendText(ctx, f.sess, "주문할게요")
	require.NoError(t, err)
	assert.Equal(t, assistant.FlowSelectingAddress, reply.FlowState)
	assert.Equal(t, []assistant.Message{
		{Role: assistant.RoleUser, Content: "주문할게요"},
		{Role: assistant.RoleAssistant, Content: "어디로 배달해 드릴까요?"},
	}, reply.Messages)

	_, err = f.srv.SendText(ctx, f.sess, "서울 강남구")
	require.NoError(t, err)

	require.Len(t, f.api.requests, 2)
	assert.Equal(t, "주문할게요", f.api.requests[0].Message)
	assert.Empty(t, f.api.requests[0].ConversationHistory)
	assert.Equal(t, assistant.FlowIdle, f.api.requests[0].CurrentFlowState)
	assert.Len(t, f.api.requests[1].ConversationHistory, 2, "the turn being asked is not in history")
	assert.Equal(t, assistant.FlowSelectingAddress, f.api.requests[1].CurrentFlowState)
}

func TestSendVoice(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	_, err := f.srv.SendVoice(ctx, f.sess, "", "webm")
	require.Error(t, err)

	f.api.ScriptChat(assistant.ChatReply{
		UserMessage:      "발렌타인 디너 하나 주세요",
		AssistantMessage: "서빙 스타일을 골라주세요.",
		FlowState:        assistant.FlowSelectingStyle,
	})

	reply, err := f.srv.SendVoice(ctx, f.sess, "UklGRg==", "webm")
	require.NoError(t, err)

	require.Len(t, reply.Messages, 2)
	assert.Equal(t, assistant.Message{Role: assistant.RoleUser, Content: "발렌타인 디너 하나 주세요"}, reply.Messages[0])
	assert.Equal(t, "UklGRg==", f.api.requests[0].AudioBase64)
	assert.Equal(t, "webm", f.api.requests[0].AudioFormat)
	assert.Empty(t, f.api.requests[0].Message)
}

func TestChatFailure(t *testing.T) {
	ctx := context.Background()

	type testCase struct {
		name      string
		err       error
		wantErr   bool
		wantTurns int
	}

	tc := []testCase{
		{
			name:      "#1 backend error becomes an assistant turn",
			err:       backend.NewStatusError(http.StatusInternalServerError, "assistant unavailable"),
			wantTurns: 2,
		},
		{
			name:    "#2 unauthorized is returned",
			err:     backend.NewStatusError(http.StatusUnauthorized, "token expired"),
			wantErr: true,
		},
	}

	for _, test := range tc {
		t.Run(test.name, func(t *testing.T) {
			f := newFixture()
			f.api.FailOn("POST /voice-order/chat", test.err)

			reply, err := f.srv.SendText(ctx, f.sess, "안녕하세요")
			if test.wantErr {
				assert.ErrorIs(t, err, backend.ErrUnauthorized)
				return
			}

			require.NoError(t, err)
			require.Len(t, reply.Messages, test.wantTurns)
			assert.Contains(t, reply.Messages[1].Content, "assistant unavailable")
		})
	}
}

func TestCancelAction(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	f.api.ScriptChat(
		orderReply(assistant.ActionUpdateOrderList, "Seoul"),
		assistant.ChatReply{AssistantMessage: "주문을 취소할까요?", FlowState: assistant.FlowConfirming, UiAction: assistant.ActionShowCancelConfirm},
	)

	reply, err := f.srv.SendText(ctx, f.sess, "발렌타인 디너")
	require.NoError(t, err)
	assert.Len(t, reply.CurrentOrder, 2)
	assert.Equal(t, "Seoul", reply.SelectedAddress)

	reply, err = f.srv.SendText(ctx, f.sess, "취소")
	require.NoError(t, err)
	assert.Equal(t, assistant.ActionShowCancelConfirm, reply.UiAction)
	assert.Empty(t, reply.CurrentOrder)
	assert.Empty(t, reply.SelectedAddress)
	assert.Equal(t, assistant.FlowIdle, reply.FlowState)
}

func TestProceedToCheckout(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	f.api.ScriptChat(
		orderReply(assistant.ActionProceedToCheckout, "Seoul, Gangnam-gu"),
		orderReply(assistant.ActionProceedToCheckout, ""),
	)

	reply, err := f.srv.SendText(ctx, f.sess, "결제해주세요")
	require.NoError(t, err)
	assert.True(t, reply.CheckoutCompleted)

	last := reply.Messages[len(reply.Messages)-1]
	assert.Contains(t, last.Content, "주문이 완료되었습니다!")
	assert.Contains(t, last.Content, "35,000원")

	reply, err = f.srv.SendText(ctx, f.sess, "결제해주세요")
	require.NoError(t, err)
	assert.True(t, reply.CheckoutCompleted)

	orders, err := f.api.MyOrders(ctx)
	require.NoError(t, err)
	assert.Len(t, orders, 1, "checkout runs once per conversation")

	receipts, err := f.receipts.Receipts(ctx, order.ReceiptFilter{})
	require.NoError(t, err)
	require.Len(t, receipts, 1)
	assert.EqualValues(t, 35000, receipts[0].GrandTotal)
	assert.EqualValues(t, 40000, receipts[0].PreviewTotal)
	assert.Equal(t, orders[0].OrderNumber, receipts[0].OrderNumber)
}

func TestCheckoutFailureRearms(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	f.api.ScriptChat(
		orderReply(assistant.ActionProceedToCheckout, ""),
		orderReply(assistant.ActionProceedToCheckout, "Busan"),
	)

	reply, err := f.srv.SendText(ctx, f.sess, "결제")
	require.NoError(t, err)
	assert.False(t, reply.CheckoutCompleted)
	assert.Contains(t, reply.Messages[len(reply.Messages)-1].Content, "배달 주소가 필요합니다")

	reply, err = f.srv.SendText(ctx, f.sess, "부산으로 보내주세요")
	require.NoError(t, err)
	assert.True(t, reply.CheckoutCompleted)
}

func TestCheckoutEmptyOrder(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	f.api.ScriptChat(assistant.ChatReply{
		AssistantMessage: "결제를 진행할게요.",
		FlowState:        assistant.FlowCheckoutReady,
		UiAction:         assistant.ActionProceedToCheckout,
		CurrentOrder:     []assistant.OrderItem{{DinnerName: "Valentine Dinner", Quantity: 1}},
	})

	reply, err := f.srv.SendText(ctx, f.sess, "결제")
	require.NoError(t, err)
	assert.False(t, reply.CheckoutCompleted)
	assert.Equal(t, msgEmptyOrder, reply.Messages[len(reply.Messages)-1].Content)
	assert.NotContains(t, f.api.Calls(), "POST /voice-order/checkout")
}

func TestReset(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	before, err := f.srv.View(ctx, f.sess)
	require.NoError(t, err)
	assert.Equal(t, assistant.FlowIdle, before.FlowState)

	require.NoError(t, f.sess.TryAcquire())
	f.sess.Flow().SetAddress("Seoul")
	f.sess.Flow().NextStep()
	f.sess.Release()

	_, err = f.srv.SendText(ctx, f.sess, "hello")
	require.NoError(t, err)

	reply, err := f.srv.Reset(ctx, f.sess)
	require.NoError(t, err)
	assert.Equal(t, assistant.FlowSelectingAddress, reply.FlowState)
	assert.Empty(t, reply.Messages)
	assert.NotEqual(t, before.ID, reply.ID)

	require.NoError(t, f.sess.TryAcquire())
	defer f.sess.Release()
	assert.Empty(t, f.sess.Flow().Address())
}

func TestResetDiscardsWizardDraft(t *testing.T) {
	ctx := context.Background()

	type testCase struct {
		name      string
		deleteErr error
		wantGone  bool
	}

	tc := []testCase{
		{name: "#1 draft deleted", wantGone: true},
		{name: "#2 delete failure is logged only", deleteErr: backend.NewStatusError(http.StatusInternalServerError, "boom")},
		{name: "#3 draft already gone", deleteErr: backend.NewStatusError(http.StatusNotFound, "gone")},
	}

	for _, test := range tc {
		t.Run(test.name, func(t *testing.T) {
			f := newFixture()

			p, err := f.api.CreateProduct(ctx, product.CreateRequest{
				DinnerID: "valentine", ServingStyleID: "grand", Quantity: 1, Address: "Seoul",
			})
			require.NoError(t, err)

			f.sess.Flow().SetCreatedProduct(&p)

			if test.deleteErr != nil {
				f.api.FailOn("DELETE /products/"+p.ID, test.deleteErr)
			}

			_, err = f.srv.Reset(ctx, f.sess)
			require.NoError(t, err)

			assert.Contains(t, f.api.Calls(), "DELETE /products/"+p.ID)
			assert.Nil(t, f.sess.Flow().CreatedProduct())

			_, exists := f.api.Product(p.ID)
			assert.Equal(t, !test.wantGone, exists)
		})
	}
}

func TestBusy(t *testing.T) {
	f := newFixture()

	require.NoError(t, f.sess.TryAcquire())
	defer f.sess.Release()

	_, err := f.srv.SendText(context.Background(), f.sess, "hello")
	assert.ErrorIs(t, err, session.ErrBusy)
}
