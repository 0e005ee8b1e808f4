package middle

import (
	"context"
	"mime"
	"net/http"
	"strings"

	"github.com/AndreyVLZ/mr-daebak/internal/daebak/app/service/session"
)

const appJSON string = "application/json"

type middle func(http.Handler) http.Handler

// Select dispatches by method. A method without a handler is answered with 405.
type Select struct {
	Get    http.Handler
	Post   http.Handler
	Patch  http.Handler
	Delete http.Handler
}

func (s Select) ServeHTTP(rw http.ResponseWriter, req *http.Request) {
	switch {
	case req.Method == http.MethodGet && s.Get != nil:
		s.Get.ServeHTTP(rw, req)
	case req.Method == http.MethodPost && s.Post != nil:
		s.Post.ServeHTTP(rw, req)
	case req.Method == http.MethodPatch && s.Patch != nil:
		s.Patch.ServeHTTP(rw, req)
	case req.Method == http.MethodDelete && s.Delete != nil:
		s.Delete.ServeHTTP(rw, req)
	default:
		rw.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func Use(use http.HandlerFunc, arrMiddle ...middle) http.Handler {
	for i := range arrMiddle {
		use = arrMiddle[len(arrMiddle)-1-i](use).ServeHTTP
	}

	return use
}

func Get() middle     { return method(http.MethodGet) }
func Post() middle    { return method(http.MethodPost) }
func Patch() middle   { return method(http.MethodPatch) }
func Delete() middle  { return method(http.MethodDelete) }
func AppJSON() middle { return contentType(appJSON) }

func method(method string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
			if req.Method != method {
				rw.WriteHeader(http.StatusMethodNotAllowed)
				return
			}

			next.ServeHTTP(rw, req)
		})
	}
}

// contentType accepts the media type with any parameters, e.g. a charset.
func contentType(contentType string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
			mediaType, _, err := mime.ParseMediaType(req.Header.Get("Content-Type"))
			if err != nil || mediaType != contentType {
				rw.WriteHeader(http.StatusUnsupportedMediaType)
				return
			}

			next.ServeHTTP(rw, req)
		})
	}
}

// Token passes the caller's bearer token on through the request context.
// Requests without one pass unchanged.
func Token(fnWith func(context.Context, string) context.Context) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
			auth := req.Header.Get("Authorization")

			token, ok := strings.CutPrefix(auth, "Bearer ")
			if ok && strings.TrimSpace(token) != "" {
				req = req.WithContext(fnWith(req.Context(), strings.TrimSpace(token)))
			}

			next.ServeHTTP(rw, req)
		})
	}
}

type sessionResolver interface {
	Resolve(raw string, persist bool) (*session.Session, bool)
}

// Session puts the caller's session into the context under ctxKey. A missing
// or expired cookie starts a new session. Reads get a throwaway one; only a
// mutating request keeps it and sets the cookie.
func Session(ctxKey any, cookieKey string, store sessionResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
			raw := ""
			if c, err := req.Cookie(cookieKey); err == nil {
				raw = c.Value
			}

			persist := req.Method != http.MethodGet && req.Method != http.MethodHead

			sess, stored := store.Resolve(raw, persist)
			if id := sess.ID().String(); stored && id != raw {
				http.SetCookie(rw, &http.Cookie{
					Name:     cookieKey,
					Value:    id,
					Path:     "/",
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}

			ctx := context.WithValue(req.Context(), ctxKey, sess)

			next.ServeHTTP(rw, req.WithContext(ctx))
		})
	}
}
