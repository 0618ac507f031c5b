package transport

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// ChiConfig configures the chi-backed transport.
type ChiConfig struct {
	// Router is the chi router to register into. A new router is created
	// when nil, and can be retrieved with Router() for mounting.
	Router chi.Router

	// Renderer handles template rendering for Response.Render. Optional;
	// renders fail with ErrNoRenderer without one.
	Renderer Renderer

	// Fallback handles requests the catch-all passed on (outside-framework
	// routes). Optional; without one a passed request ends with no bytes
	// written, leaving the connection to the server's defaults.
	Fallback http.Handler

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// Chi registers routes into a chi router and maintains the error-handling
// chain chi itself does not have. The catch-all maps onto chi's NotFound
// handler, which fires for any path no installed route matched.
type Chi struct {
	router   chi.Router
	renderer Renderer
	fallback http.Handler
	logger   *slog.Logger
	chain    []ErrorHandler
}

var _ Transport = (*Chi)(nil)

// NewChi creates a chi-backed transport.
func NewChi(cfg ChiConfig) *Chi {
	if cfg.Router == nil {
		cfg.Router = chi.NewRouter()
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Chi{
		router:   cfg.Router,
		renderer: cfg.Renderer,
		fallback: cfg.Fallback,
		logger:   cfg.Logger,
	}
}

// Router returns the underlying chi router for mounting or for attaching
// routes outside the engine's control.
func (t *Chi) Router() chi.Router {
	return t.router
}

// SetFallback sets the handler for requests the catch-all passed on.
func (t *Chi) SetFallback(h http.Handler) {
	t.fallback = h
}

// ServeHTTP implements http.Handler.
func (t *Chi) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	t.router.ServeHTTP(w, r)
}

// Handle implements Transport.
func (t *Chi) Handle(method, path string, h Handler, mw ...Middleware) {
	target := t.router
	if len(mw) > 0 {
		wrapped := make([]func(http.Handler) http.Handler, len(mw))
		for i, m := range mw {
			wrapped[i] = m
		}
		target = t.router.With(wrapped...)
	}
	target.Method(method, path, t.wrap(h))
}

// HandleCatchAll implements Transport. chi invokes the NotFound handler for
// any unmatched path regardless of method. A matched path hit with the
// wrong method is answered by chi's MethodNotAllowed default (405) and
// never reaches the catch-all or its exemption set.
func (t *Chi) HandleCatchAll(h Handler) {
	t.router.NotFound(t.wrap(h))
}

// HandleError implements Transport. Stages run in the order they were
// appended; an error no stage resolves falls through to the default
// behavior (a plain-text error response).
func (t *Chi) HandleError(h ErrorHandler) {
	t.chain = append(t.chain, h)
}

// wrap adapts a Handler to http.HandlerFunc, constructing the Response and
// hooking it into the error chain and the fallback stage.
func (t *Chi) wrap(h Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var resp *Response
		resp = NewResponse(w, t.renderer, func(err error) {
			t.dispatch(err, resp, r)
		})
		h(resp, r)
		if resp.Passed() && !resp.Written() {
			if t.fallback != nil {
				t.fallback.ServeHTTP(w, r)
			}
		}
	}
}

// dispatch walks the error chain. Each stage decides whether to resolve the
// error or forward it; calling next with nil keeps the current error.
func (t *Chi) dispatch(err error, resp *Response, r *http.Request) {
	var run func(i int, err error)
	run = func(i int, err error) {
		if i >= len(t.chain) {
			t.finish(err, resp)
			return
		}
		t.chain[i](err, resp, r, func(next error) {
			if next == nil {
				next = err
			}
			run(i+1, next)
		})
	}
	run(0, err)
}

// finish is the chain's default tail: a plain-text error response with the
// pending status, unless something was already written.
func (t *Chi) finish(err error, resp *Response) {
	if resp.Written() {
		return
	}
	status := resp.Status()
	if status < http.StatusBadRequest {
		status = http.StatusInternalServerError
	}
	http.Error(resp, err.Error(), status)
}
