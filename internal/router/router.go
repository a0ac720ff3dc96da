package router

import (
	"strings"

	"github.com/DavidBarbosag/taller2AREP/internal/request"
	"github.com/DavidBarbosag/taller2AREP/internal/response"
	"github.com/DavidBarbosag/taller2AREP/internal/static"
)

// APIPrefix is handed to the tasks API for any method.
const APIPrefix = "/api/tasks"

// Handler produces the plain-text body for a registered GET route.
type Handler interface {
	Handle(req *request.Request) string
}

// HandlerFunc adapts a function to Handler
type HandlerFunc func(req *request.Request) string

func (f HandlerFunc) Handle(req *request.Request) string {
	return f(req)
}

// Responder writes a full response for a request.
type Responder interface {
	ServeRequest(w *response.Writer, req *request.Request) error
}

// Router dispatches a request, in order, to an exact-path GET route, the
// tasks API, or a static file.
//
// Routes must be registered before the server starts accepting; the table
// is read without locking afterwards.
type Router struct {
	routes map[string]Handler
	api    Responder
	files  *static.Resolver
}

// New creates a router. api or files may be nil, in which case the
// corresponding requests end in 404.
func New(api Responder, files *static.Resolver) *Router {
	return &Router{
		routes: make(map[string]Handler),
		api:    api,
		files:  files,
	}
}

// GET registers h for the exact path. A later registration of the same
// path replaces the earlier one.
func (r *Router) GET(path string, h Handler) {
	r.routes[path] = h
}

// GETFunc is GET for plain functions
func (r *Router) GETFunc(path string, fn func(req *request.Request) string) {
	r.GET(path, HandlerFunc(fn))
}


// ServeRequest implements Responder
func (r *Router) ServeRequest(w *response.Writer, req *request.Request) error {
	if req.Method == "GET" {
		if h, ok := r.routes[req.Path]; ok {
			return w.TextResponse(response.StatusOK, h.Handle(req))
		}
	}

	if strings.HasPrefix(req.Path, APIPrefix) && r.api != nil {
		return r.api.ServeRequest(w, req)
	}

	return r.serveStatic(w, req)
}

func (r *Router) serveStatic(w *response.Writer, req *request.Request) error {
	if r.files == nil {
		return w.StatusResponse(response.StatusNotFound)
	}

	f, err := r.files.Resolve(req.Path)
	if err != nil {
		return w.StatusResponse(response.StatusNotFound)
	}
	return w.BytesResponse(response.StatusOK, f.ContentType, f.Body)
}
