package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/AndreyVLZ/mr-daebak/internal/daebak/app/service/session"
	"github.com/AndreyVLZ/mr-daebak/internal/daebak/app/service/wizard"
)

var (
	statusOK         = http.StatusOK                  // 200
	statusNoContent  = http.StatusNoContent           // 204
	statusBadReq     = http.StatusBadRequest          // 400
	statusUnauth     = http.StatusUnauthorized        // 401
	statusPaymentReq = http.StatusPaymentRequired     // 402
	statusForbidden  = http.StatusForbidden           // 403
	statusNotFound   = http.StatusNotFound            // 404
	statusConflict   = http.StatusConflict            // 409
	statusUnprocess  = http.StatusUnprocessableEntity // 422
	statusInternal   = http.StatusInternalServerError // 500
	statusBadGateway = http.StatusBadGateway          // 502
)

type contextKey struct{}

func GetContextKey() contextKey { return contextKey{} }

func sessionFromReq(req *http.Request) (*session.Session, error) {
	sess, ok := req.Context().Value(GetContextKey()).(*session.Session)
	if !ok || sess == nil {
		return nil, errors.New("no session in request context")
	}

	return sess, nil
}

func parseBody(r io.ReadCloser, data any) error {
	defer r.Close()

	if err := json.NewDecoder(r).Decode(data); err != nil {
		return badRequest{fmt.Errorf("parse body: %w", err)}
	}

	return nil
}

// parseOptionalBody is parseBody that accepts an empty body.
func parseOptionalBody(r io.ReadCloser, data any) error {
	defer r.Close()

	if err := json.NewDecoder(r).Decode(data); err != nil && !errors.Is(err, io.EOF) {
		return badRequest{fmt.Errorf("parse body: %w", err)}
	}

	return nil
}

type badRequest struct{ error }

func (badRequest) Invalid() bool { return true }

func writeJSON(rw http.ResponseWriter, status int, data any) {
	rw.Header().Set("Content-Type", "application/json")
	rw.WriteHeader(status)
	_ = json.NewEncoder(rw).Encode(data)
}

type errorBody struct {
	Message         string `json:"message"`
	Field           string `json:"field,omitempty"`
	ConfirmRequired bool   `json:"confirmRequired,omitempty"`
	Step            string `json:"step,omitempty"`
}

type (
	errConfirm   interface{ ConfirmRequired() bool }
	errBusy      interface{ Busy() bool }
	errInvalid   interface{ Invalid() bool }
	errPayment   interface{ PaymentRequired() bool }
	errUnauth    interface{ Unauthorized() bool }
	errForbidden interface{ Forbidden() bool }
	errNotFound  interface{ NotFound() bool }
	errRejected  interface{ Rejected() bool }
	errRemote    interface{ Remote() bool }
	errField     interface{ Data() any }
	errUserMsg   interface{ UserMessage() string }
)

func is[T any](err error, ok func(T) bool) bool {
	var target T
	return errors.As(err, &target) && ok(target)
}

// classify maps a service error to its status. A partially applied sync is
// a gateway failure whatever the backend answered.
func classify(err error) (int, errorBody) {
	body := errorBody{Message: err.Error()}

	var um errUserMsg
	if errors.As(err, &um) && um.UserMessage() != "" {
		body.Message = um.UserMessage()
	}

	var rerr *wizard.ReconcileError

	switch {
	case is(err, errConfirm.ConfirmRequired):
		body.ConfirmRequired = true

		var ce wizard.ConfirmError
		if errors.As(err, &ce) {
			body.Step = ce.Step.String()
		}

		return statusConflict, body
	case is(err, errBusy.Busy):
		return statusConflict, body
	case is(err, errInvalid.Invalid):
		var ef errField
		if errors.As(err, &ef) {
			body.Field, _ = ef.Data().(string)
		}

		return statusBadReq, body
	case is(err, errPayment.PaymentRequired):
		return statusPaymentReq, body
	case is(err, errUnauth.Unauthorized):
		return statusUnauth, body
	case is(err, errForbidden.Forbidden):
		return statusForbidden, body
	case errors.As(err, &rerr):
		body.Message = rerr.Error()
		return statusBadGateway, body
	case is(err, errNotFound.NotFound):
		return statusNotFound, body
	case is(err, errRejected.Rejected):
		return statusUnprocess, body
	case is(err, errRemote.Remote):
		return statusBadGateway, body
	default:
		return statusInternal, body
	}
}

func writeError(log *slog.Logger, rw http.ResponseWriter, err error) {
	status, body := classify(err)
	if status >= statusInternal {
		log.Error("request failed", "status", status, "err", err)
	} else {
		log.Debug("request rejected", "status", status, "err", err)
	}

	writeJSON(rw, status, body)
}
