// Package transport defines the narrow contract the registration engine
// holds against the host HTTP layer, and a chi-backed implementation of it.
//
// The engine only needs three primitives: verb-specific route registration,
// a catch-all matching any otherwise-unmatched path, and an error-handling
// chain receiving (error, response, request, next). Everything else the host
// router offers stays outside the contract.
package transport

import "net/http"

// Handler is the request handler shape the engine registers. The Response
// tracks status and write state so error controllers can gate on them.
type Handler func(resp *Response, r *http.Request)

// Middleware is standard net/http middleware, applied in order ahead of a
// single route's handler.
type Middleware func(http.Handler) http.Handler

// ErrorHandler is one stage of the error-handling chain. Calling next
// forwards to the following stage; not calling it ends the chain.
type ErrorHandler func(err error, resp *Response, r *http.Request, next func(error))

// Transport is the host HTTP layer as seen by the registration engine.
//
// Handle order is significant: routes are applied in the order given, the
// catch-all is installed after every route, and error handlers after the
// catch-all. Implementations must preserve the chain order of HandleError
// calls.
type Transport interface {
	// Handle registers a handler for one verb and path, wrapped by the
	// given middleware in order.
	Handle(method, path string, h Handler, mw ...Middleware)

	// HandleCatchAll registers the fallback handler invoked for any path no
	// previously installed route matched.
	HandleCatchAll(h Handler)

	// HandleError appends a stage to the error-handling chain.
	HandleError(h ErrorHandler)
}
