package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/AndreyVLZ/mr-daebak/internal/daebak/app/internal/model/flow"
	"github.com/AndreyVLZ/mr-daebak/internal/daebak/app/internal/model/order"
	"github.com/AndreyVLZ/mr-daebak/internal/daebak/app/pkg/idempotency"
	"github.com/AndreyVLZ/mr-daebak/internal/daebak/app/repository/backend"
	"github.com/AndreyVLZ/mr-daebak/internal/daebak/app/repository/fakebackend"
	"github.com/AndreyVLZ/mr-daebak/internal/daebak/app/repository/memory"
	"github.com/AndreyVLZ/mr-daebak/internal/daebak/app/service/admin"
	"github.com/AndreyVLZ/mr-daebak/internal/daebak/app/service/assistant"
	"github.com/AndreyVLZ/mr-daebak/internal/daebak/app/service/history"
	"github.com/AndreyVLZ/mr-daebak/internal/daebak/app/service/session"
	"github.com/AndreyVLZ/mr-daebak/internal/daebak/app/service/wizard"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	type testCase struct {
		name    string
		err     error
		status  int
		message string
	}

	tc := []testCase{
		{name: "#1 confirm", err: wizard.ConfirmError{Step: flow.StepStyle}, status: http.StatusConflict},
		{name: "#2 busy", err: session.ErrBusy, status: http.StatusConflict},
		{name: "#3 bad body", err: badRequest{errors.New("parse body: EOF")}, status: http.StatusBadRequest, message: "parse body: EOF"},
		{name: "#4 no payment card", err: wizard.ErrNoPaymentMethod, status: http.StatusPaymentRequired},
		{name: "#5 backend 401", err: backend.NewStatusError(401, "token expired"), status: http.StatusUnauthorized, message: "token expired"},
		{name: "#6 backend 403", err: backend.NewStatusError(403, ""), status: http.StatusForbidden},
		{name: "#7 backend 404", err: backend.NewStatusError(404, "order not found"), status: http.StatusNotFound, message: "order not found"},
		{name: "#8 backend 409", err: backend.NewStatusError(409, "out of stock"), status: http.StatusUnprocessableEntity, message: "out of stock"},
		{name: "#9 backend 500", err: backend.NewStatusError(500, "db down"), status: http.StatusBadGateway, message: "db down"},
		{
			name:   "#10 partial sync hides the 404",
			err:    &wizard.ReconcileError{Failed: wizard.Op{Kind: wizard.OpUpdate, MenuItemID: "steak", Quantity: 2}, Err: backend.NewStatusError(404, "gone")},
			status: http.StatusBadGateway,
		},
		{name: "#11 unknown", err: errors.New("boom"), status: http.StatusInternalServerError, message: "boom"},
		{name: "#12 checkout in progress", err: wizard.ErrCheckoutInProgress, status: http.StatusConflict},
	}

	for _, test := range tc {
		t.Run(test.name, func(t *testing.T) {
			status, body := classify(test.err)
			assert.Equal(t, test.status, status)
			assert.NotEmpty(t, body.Message)

			if test.message != "" {
				assert.Equal(t, test.message, body.Message)
			}
		})
	}

	_, body := classify(wizard.ConfirmError{Step: flow.StepCustomize})
	assert.True(t, body.ConfirmRequired)
	assert.Equal(t, "customize", body.Step)
}

type testServer struct {
	*httptest.Server
	api  *fakebackend.Backend
	sess *session.Session
}

// newTestServer wires real services over the fake backend. Every request
// runs in the same session.
func newTestServer(t *testing.T) testServer {
	t.Helper()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	api := fakebackend.New()
	receipts := memory.New()
	once := idempotency.NewMemory(time.Minute)
	sess := session.New(session.NewID(), time.Now())

	wh := NewWizardHandler(wizard.NewWizardService(api, receipts, once, log), log)
	ah := NewAssistantHandler(assistant.NewAssistantService(api, receipts, once, log), log)
	hh := NewHistoryHandler(history.NewHistoryService(api, receipts), log)
	adm := NewAdminHandler(admin.NewAdminService(api), log)

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
			ctx := context.WithValue(req.Context(), GetContextKey(), sess)
			next.ServeHTTP(rw, req.WithContext(ctx))
		})
	})

	r.Get("/order/flow", wh.View())
	r.Post("/order/flow/next", wh.Next())
	r.Post("/order/flow/back", wh.Back())
	r.Post("/order/flow/step", wh.Jump())
	r.Post("/order/flow/address", wh.SelectAddress())
	r.Get("/order/catalog/dinners", wh.Dinners())
	r.Post("/order/flow/dinner", wh.SelectDinner())
	r.Get("/order/catalog/styles", wh.Styles())
	r.Post("/order/flow/style", wh.SelectStyle())
	r.Get("/order/flow/customize", wh.Customize())
	r.Post("/order/flow/quantity", wh.SetQuantity())
	r.Post("/order/flow/menu-items/{id}", wh.UpdateMenuItem())
	r.Post("/order/flow/extras", wh.AddExtra())
	r.Patch("/order/flow/extras/{id}", wh.UpdateExtra())
	r.Delete("/order/flow/extras/{id}", wh.RemoveExtra())
	r.Post("/order/checkout", wh.Checkout())
	r.Post("/assistant/chat", ah.Chat())
	r.Get("/orders", hh.Orders())
	r.Get("/receipts", hh.Receipts())
	r.Get("/admin/orders", adm.Orders())
	r.Post("/admin/orders/{id}/approve", adm.Approve())
	r.Post("/admin/orders/{id}/reject", adm.Reject())
	r.Patch("/admin/orders/{id}/delivery-status", adm.DeliveryStatus())

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	return testServer{Server: srv, api: api, sess: sess}
}

func (ts testServer) call(t *testing.T, method, path, body string, out any) int {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req, err := http.NewRequest(method, ts.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	res, err := ts.Client().Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	if out != nil && res.StatusCode != http.StatusNoContent {
		require.NoError(t, json.NewDecoder(res.Body).Decode(out))
	}

	return res.StatusCode
}

type viewResp struct {
	CurrentStep    string `json:"currentStep"`
	CreatedProduct *struct {
		ID         string `json:"id"`
		TotalPrice int64  `json:"totalPrice"`
	} `json:"createdProduct"`
	Totals struct {
		Quick    int64  `json:"quickTotal"`
		Preview  int64  `json:"previewTotal"`
		Checkout int64  `json:"checkoutTotal"`
		Server   *int64 `json:"serverTotal"`
	} `json:"totals"`
	HasMenuChanges bool `json:"hasMenuChanges"`
}

func TestWizardFlow(t *testing.T) {
	ts := newTestServer(t)

	type step struct {
		method string
		path   string
		body   string
		status int
		want   string
	}

	steps := []step{
		{http.MethodPost, "/order/flow/next", "", http.StatusOK, "address"},
		{http.MethodPost, "/order/flow/next", "", http.StatusBadRequest, ""},
		{http.MethodPost, "/order/flow/address", `{"address":"Seoul"}`, http.StatusOK, "address"},
		{http.MethodPost, "/order/flow/address", `{"address":`, http.StatusBadRequest, ""},
		{http.MethodPost, "/order/flow/next", "", http.StatusOK, "dinner"},
		{http.MethodPost, "/order/flow/dinner", `{"dinnerId":"valentine"}`, http.StatusOK, "dinner"},
		{http.MethodPost, "/order/flow/next", "", http.StatusOK, "style"},
		{http.MethodPost, "/order/flow/style", `{"styleId":"grand"}`, http.StatusOK, "style"},
		{http.MethodPost, "/order/flow/next", "", http.StatusOK, "customize"},
		{http.MethodGet, "/order/flow/customize", "", http.StatusOK, "customize"},
		{http.MethodPost, "/order/flow/menu-items/steak", `{"quantity":3}`, http.StatusOK, "customize"},
		{http.MethodPost, "/order/flow/extras", `{"menuItemId":"salad"}`, http.StatusOK, "customize"},
		{http.MethodPatch, "/order/flow/extras/salad", `{"quantity":2}`, http.StatusOK, "customize"},
		{http.MethodPost, "/order/flow/next", "", http.StatusOK, "checkout"},
	}

	var view viewResp

	for i, s := range steps {
		view = viewResp{}

		status := ts.call(t, s.method, s.path, s.body, &view)
		require.Equal(t, s.status, status, "step %d %s %s", i, s.method, s.path)

		if s.want != "" {
			require.Equal(t, s.want, view.CurrentStep, "step %d", i)
		}
	}

	// 35000 + steak 12000*2 + salad 5000*2
	assert.EqualValues(t, 69000, view.Totals.Preview)
	assert.EqualValues(t, 69000, view.Totals.Checkout)
	require.NotNil(t, view.Totals.Server)
	assert.EqualValues(t, 69000, *view.Totals.Server)

	var conf order.Confirmation
	require.Equal(t, http.StatusOK, ts.call(t, http.MethodPost, "/order/checkout", "", &conf))
	assert.EqualValues(t, 69000, conf.GrandTotal)

	var receipts []order.Receipt
	require.Equal(t, http.StatusOK, ts.call(t, http.MethodGet, "/receipts?scope=session", "", &receipts))
	require.Len(t, receipts, 1)
	assert.Equal(t, ts.sess.ID().String(), receipts[0].SessionID)

	var orders []order.Order
	require.Equal(t, http.StatusOK, ts.call(t, http.MethodGet, "/orders", "", &orders))
	assert.Len(t, orders, 1)
}

func TestBackNeedsConfirmation(t *testing.T) {
	ts := newTestServer(t)

	for _, s := range []struct{ path, body string }{
		{"/order/flow/step", `{"step":"dinner"}`},
		{"/order/flow/dinner", `{"dinnerId":"french"}`},
		{"/order/flow/step", `{"step":"style"}`},
		{"/order/flow/style", `{"styleId":"deluxe"}`},
	} {
		require.Equal(t, http.StatusOK, ts.call(t, http.MethodPost, s.path, s.body, nil), s.path)
	}

	var body errorBody
	require.Equal(t, http.StatusConflict, ts.call(t, http.MethodPost, "/order/flow/back", "", &body))
	assert.True(t, body.ConfirmRequired)
	assert.Equal(t, "style", body.Step)

	var view viewResp
	require.Equal(t, http.StatusOK, ts.call(t, http.MethodPost, "/order/flow/back", `{"confirmed":true}`, &view))
	assert.Equal(t, "dinner", view.CurrentStep)

	require.Equal(t, http.StatusBadRequest, ts.call(t, http.MethodPost, "/order/flow/step", `{"step":"payment"}`, &body))
}

func TestBusySession(t *testing.T) {
	ts := newTestServer(t)

	require.NoError(t, ts.sess.TryAcquire())
	defer ts.sess.Release()

	var body errorBody
	require.Equal(t, http.StatusConflict, ts.call(t, http.MethodGet, "/order/flow", "", &body))
	assert.False(t, body.ConfirmRequired)
	assert.NotEmpty(t, body.Message)
}

func TestStyles(t *testing.T) {
	ts := newTestServer(t)

	require.Equal(t, http.StatusOK, ts.call(t, http.MethodPost, "/order/flow/dinner", `{"dinnerId":"champagne"}`, nil))

	var styles []struct {
		ID       string `json:"id"`
		Disabled bool   `json:"disabled"`
	}
	require.Equal(t, http.StatusOK, ts.call(t, http.MethodGet, "/order/catalog/styles", "", &styles))
	require.Len(t, styles, 3)
	assert.Equal(t, "simple", styles[0].ID)
	assert.True(t, styles[0].Disabled)

	var dinners []struct {
		ID string `json:"id"`
	}
	require.Equal(t, http.StatusOK, ts.call(t, http.MethodGet, "/order/catalog/dinners", "", &dinners))
	assert.Len(t, dinners, 4)
}

func TestCheckoutWithoutCard(t *testing.T) {
	ts := newTestServer(t)
	ts.api.SetPaymentCards(nil)

	var body errorBody
	require.Equal(t, http.StatusBadRequest, ts.call(t, http.MethodPost, "/order/checkout", "", &body), "no draft yet")

	for _, s := range []struct{ path, body string }{
		{"/order/flow/address", `{"address":"Seoul"}`},
		{"/order/flow/dinner", `{"dinnerId":"valentine"}`},
		{"/order/flow/style", `{"styleId":"simple"}`},
		{"/order/flow/step", `{"step":"style"}`},
		{"/order/flow/next", ""},
		{"/order/flow/next", ""},
	} {
		require.Equal(t, http.StatusOK, ts.call(t, http.MethodPost, s.path, s.body, nil), s.path)
	}

	require.Equal(t, http.StatusPaymentRequired, ts.call(t, http.MethodPost, "/order/checkout", "", &body))
	assert.NotEmpty(t, body.Message)
}

func TestCheckoutBeforeCheckoutStep(t *testing.T) {
	ts := newTestServer(t)

	for _, s := range []struct{ path, body string }{
		{"/order/flow/address", `{"address":"Seoul"}`},
		{"/order/flow/dinner", `{"dinnerId":"valentine"}`},
		{"/order/flow/style", `{"styleId":"simple"}`},
		{"/order/flow/step", `{"step":"style"}`},
		{"/order/flow/next", ""},
	} {
		require.Equal(t, http.StatusOK, ts.call(t, http.MethodPost, s.path, s.body, nil), s.path)
	}

	var body errorBody
	require.Equal(t, http.StatusBadRequest, ts.call(t, http.MethodPost, "/order/checkout", "", &body))
	assert.Equal(t, "currentStep", body.Field)
	assert.NotContains(t, ts.api.Calls(), "POST /carts/createCart")
}

func TestAssistantChat(t *testing.T) {
	ts := newTestServer(t)

	var body errorBody
	require.Equal(t, http.StatusBadRequest, ts.call(t, http.MethodPost, "/assistant/chat", `{"message":""}`, &body))

	var reply struct {
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
		FlowState string `json:"flowState"`
		UiAction  string `json:"uiAction"`
	}
	require.Equal(t, http.StatusOK, ts.call(t, http.MethodPost, "/assistant/chat", `{"message":"안녕하세요"}`, &reply))
	assert.Len(t, reply.Messages, 2)
	assert.Equal(t, "IDLE", reply.FlowState)
	assert.Equal(t, "NONE", reply.UiAction)

	ts.api.FailOn("POST /voice-order/chat", backend.NewStatusError(http.StatusUnauthorized, "login required"))
	require.Equal(t, http.StatusUnauthorized, ts.call(t, http.MethodPost, "/assistant/chat", `{"message":"hi"}`, &body))
	assert.Equal(t, "login required", body.Message)
}

func TestAdmin(t *testing.T) {
	ts := newTestServer(t)

	for _, s := range []struct{ path, body string }{
		{"/order/flow/address", `{"address":"Seoul"}`},
		{"/order/flow/dinner", `{"dinnerId":"english"}`},
		{"/order/flow/style", `{"styleId":"grand"}`},
		{"/order/flow/step", `{"step":"style"}`},
		{"/order/flow/next", ""},
		{"/order/checkout", ""},
	} {
		require.Equal(t, http.StatusOK, ts.call(t, http.MethodPost, s.path, s.body, nil), s.path)
	}

	var orders []order.Order
	require.Equal(t, http.StatusOK, ts.call(t, http.MethodGet, "/admin/orders", "", &orders))
	require.Len(t, orders, 1)
	id := orders[0].ID

	type testCase struct {
		name   string
		method string
		path   string
		body   string
		status int
	}

	tc := []testCase{
		{name: "#1 reject without reason", method: http.MethodPost, path: "/admin/orders/" + id + "/reject", body: `{"reason":" "}`, status: http.StatusBadRequest},
		{name: "#2 reject bad body", method: http.MethodPost, path: "/admin/orders/" + id + "/reject", body: `[`, status: http.StatusBadRequest},
		{name: "#3 unknown delivery status", method: http.MethodPatch, path: "/admin/orders/" + id + "/delivery-status", body: `{"deliveryStatus":"FLYING"}`, status: http.StatusBadRequest},
		{name: "#4 approve", method: http.MethodPost, path: "/admin/orders/" + id + "/approve", status: http.StatusNoContent},
		{name: "#5 delivery status", method: http.MethodPatch, path: "/admin/orders/" + id + "/delivery-status", body: `{"deliveryStatus":"COOKING"}`, status: http.StatusNoContent},
		{name: "#6 unknown order", method: http.MethodPost, path: "/admin/orders/nope/approve", status: http.StatusNotFound},
	}

	for _, test := range tc {
		t.Run(test.name, func(t *testing.T) {
			var body errorBody
			assert.Equal(t, test.status, ts.call(t, test.method, test.path, test.body, &body))
		})
	}

	require.Equal(t, http.StatusOK, ts.call(t, http.MethodGet, "/admin/orders?orderNumber="+orders[0].OrderNumber, "", &orders))
	require.Len(t, orders, 1)
	assert.Equal(t, order.StatusApproved, orders[0].Status)
	assert.Equal(t, order.DeliveryCooking, orders[0].DeliveryStatus)
}
