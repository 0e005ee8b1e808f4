package backend

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// StatusError is a non-2xx answer of the backend.
type StatusError struct {
	Code    int
	Message string
}

func NewStatusError(code int, msg string) *StatusError {
	return &StatusError{Code: code, Message: msg}
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend [%d]: %s", e.Code, e.Message)
	}

	return fmt.Sprintf("backend [%d]: %s", e.Code, http.StatusText(e.Code))
}

func (e *StatusError) NotFound() bool     { return e.Code == http.StatusNotFound }
func (e *StatusError) Unauthorized() bool { return e.Code == http.StatusUnauthorized }
func (e *StatusError) Forbidden() bool    { return e.Code == http.StatusForbidden }

// Rejected reports a client error other than auth and not found, e.g. an
// out-of-stock menu item.
func (e *StatusError) Rejected() bool {
	return e.Code >= 400 && e.Code < 500 && !e.NotFound() && !e.Unauthorized() && !e.Forbidden()
}

func (e *StatusError) Remote() bool        { return true }
func (e *StatusError) UserMessage() string { return e.Message }

// Is lets errors.Is match the sentinels by status code.
func (e *StatusError) Is(target error) bool {
	t, ok := target.(*StatusError)
	return ok && t.Message == "" && t.Code == e.Code
}

var (
	ErrNotFound     = &StatusError{Code: http.StatusNotFound}
	ErrUnauthorized = &StatusError{Code: http.StatusUnauthorized}
	ErrForbidden    = &StatusError{Code: http.StatusForbidden}
)

const maxErrBody = 4 << 10

func readStatusError(res *http.Response) *StatusError {
	body, _ := io.ReadAll(io.LimitReader(res.Body, maxErrBody))

	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}

	msg := ""
	if err := json.Unmarshal(body, &payload); err == nil {
		msg = payload.Message
		if msg == "" {
			msg = payload.Error
		}
	} else if !strings.HasPrefix(strings.TrimSpace(string(body)), "<") {
		msg = strings.TrimSpace(string(body))
	}

	return NewStatusError(res.StatusCode, msg)
}
