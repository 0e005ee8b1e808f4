package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/AndreyVLZ/mr-daebak/internal/daebak/app/service/assistant"
	"github.com/AndreyVLZ/mr-daebak/internal/daebak/app/service/session"
)

type assistantService interface {
	SendText(context.Context, *session.Session, string) (assistant.Reply, error)
	SendVoice(ctx context.Context, sess *session.Session, audioBase64, format string) (assistant.Reply, error)
	View(context.Context, *session.Session) (assistant.Reply, error)
	Reset(context.Context, *session.Session) (assistant.Reply, error)
}

type AssistantHandler struct {
	srv assistantService
	log *slog.Logger
}

func NewAssistantHandler(srv assistantService, log *slog.Logger) AssistantHandler {
	return AssistantHandler{srv: srv, log: log}
}

// POST /api/assistant/chat
// Audio wins over text when both are sent.
func (ah AssistantHandler) Chat() http.HandlerFunc {
	return serve(ah.log, func(req *http.Request, sess *session.Session) (assistant.Reply, error) {
		body := struct {
			Message     string `json:"message"`
			AudioBase64 string `json:"audioBase64"`
			AudioFormat string `json:"audioFormat"`
		}{}

		if err := parseBody(req.Body, &body); err != nil {
			return assistant.Reply{}, err
		}

		if body.AudioBase64 != "" {
			return ah.srv.SendVoice(req.Context(), sess, body.AudioBase64, body.AudioFormat)
		}

		return ah.srv.SendText(req.Context(), sess, body.Message)
	})
}

// GET /api/assistant
func (ah AssistantHandler) View() http.HandlerFunc {
	return serve(ah.log, func(req *http.Request, sess *session.Session) (assistant.Reply, error) {
		return ah.srv.View(req.Context(), sess)
	})
}

// POST /api/assistant/reset
func (ah AssistantHandler) Reset() http.HandlerFunc {
	return serve(ah.log, func(req *http.Request, sess *session.Session) (assistant.Reply, error) {
		return ah.srv.Reset(req.Context(), sess)
	})
}
