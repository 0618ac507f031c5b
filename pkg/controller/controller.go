// Package controller defines the unit model consumed by the registration
// engine: handler-bearing controllers with descriptor tables, parent/child
// ownership, and status-bound error controllers.
package controller

import (
	"net/http"

	"github.com/chassis-go/chassis/pkg/transport"
)

// Controller is a handler-bearing unit. It exposes its route descriptors
// through a pure Routes method; the registration engine consumes the table
// and drives all transport side effects. Building the table must not touch
// the transport.
//
// The engine tracks units by identity (map keys and equality on the
// interface value), so implementations must be comparable. Use a pointer
// receiver, as every example here does; a non-comparable value type (one
// embedding a slice or map) would panic during registration.
//
// The capability is granted by embedding Base:
//
//	type HomeController struct {
//	    controller.Base
//	}
//
//	func (c *HomeController) Routes() *controller.RouteSet {
//	    return controller.NewRouteSet().
//	        GET("/", c.Index).
//	        GET("/about", c.About)
//	}
type Controller interface {
	// Routes returns the unit's descriptor table. It must be free of
	// registration side effects and stable across calls.
	Routes() *RouteSet

	isController()
}

// Base marks a struct as a Controller. Embed it by value.
type Base struct{}

func (Base) isController() {}

// Parent is a Controller that owns other controllers. Children are
// activated through the parent's setup, never independently; the order of
// the returned slice is the order they are registered in.
//
// A unit should appear as a child of at most one parent. The engine does
// not deduplicate multiple-parent claims: a unit claimed by two parents has
// its routes registered once per parent.
type Parent interface {
	Controller

	// Children returns the ordered set of controllers this unit activates
	// before registering its own descriptors.
	Children() []Controller
}

// ErrorController handles request errors for exactly one status code. It
// participates in the status-gated chain installed after the catch-all: the
// engine invokes Handle only when the response's current status matches
// Status and nothing has been written yet.
type ErrorController interface {
	// Status returns the response status code this unit is bound to.
	Status() int

	// Handle renders or otherwise resolves the error. Calling next forwards
	// to the rest of the chain; not calling it ends the chain here.
	Handle(err error, resp *transport.Response, r *http.Request, next func(error))

	isErrorController()
}

// ErrorBase marks a struct as an ErrorController. Embed it by value.
type ErrorBase struct{}

func (ErrorBase) isErrorController() {}

// Labeled is optionally implemented by error controllers to surface a
// human-readable label in the registration report.
type Labeled interface {
	Label() string
}
