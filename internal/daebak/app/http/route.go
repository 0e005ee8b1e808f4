package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

type Router interface {
	Handle(string, http.Handler)
	Group(string, func(r Router))
	Use(func(http.Handler) http.Handler)
}

// route keeps the Handle/Group/Use surface over a chi mux so patterns can
// carry path parameters such as {id}.
type route struct {
	mux chi.Router
}

func NewRouter() *route {
	return &route{mux: chi.NewRouter()}
}

func (r *route) Handle(pattern string, handler http.Handler) {
	r.mux.Handle(pattern, handler)
}

// Group with an empty pattern shares the parent prefix and only scopes
// middlewares; otherwise it mounts a sub-router at pattern.
func (r *route) Group(pattern string, fn func(r Router)) {
	if pattern == "" {
		r.mux.Group(func(sub chi.Router) { fn(&route{mux: sub}) })
		return
	}

	r.mux.Route(pattern, func(sub chi.Router) { fn(&route{mux: sub}) })
}

func (r *route) Use(middle func(http.Handler) http.Handler) {
	r.mux.Use(middle)
}

func (r *route) ServeHTTP(rw http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(rw, req)
}
