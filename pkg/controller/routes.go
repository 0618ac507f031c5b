package controller

import (
	"reflect"
	"runtime"
	"strings"

	"github.com/chassis-go/chassis/pkg/transport"
)

// Verb is an HTTP method a descriptor may carry.
type Verb string

// Supported verbs.
const (
	GET    Verb = "GET"
	POST   Verb = "POST"
	PUT    Verb = "PUT"
	DELETE Verb = "DELETE"
)

// VerbOrder is the order descriptors are applied within one unit during
// registration. Within a verb, descriptors keep builder order.
var VerbOrder = [...]Verb{GET, POST, PUT, DELETE}

// Descriptor binds one handler method to a verb, a path, and an ordered
// middleware list. A method carries at most one descriptor per verb; a unit
// may expose many descriptors across many methods.
//
// Two descriptors claiming the same (verb, path) on one unit are not
// validated against each other: the transport applies them in order and the
// last registration wins.
type Descriptor struct {
	Verb       Verb
	Path       string
	Middleware []transport.Middleware

	// Handler is the raw handler method. It is wrapped by the
	// response-composition wrapper when the descriptor reaches the
	// transport; see the render package for the supported shapes.
	Handler any

	// Name is the handler's short name, used in report lines.
	Name string
}

// RouteSet is the statically-checked descriptor table of one unit. Build it
// with the fluent verb methods:
//
//	controller.NewRouteSet().
//	    GET("/users", c.List).
//	    POST("/users", c.Create, audit)
//
// GET takes no middleware; POST, PUT and DELETE accept an ordered list.
type RouteSet struct {
	descriptors []Descriptor
}

// NewRouteSet creates an empty descriptor table.
func NewRouteSet() *RouteSet {
	return &RouteSet{}
}

// GET adds a GET descriptor. GET routes carry no middleware.
func (rs *RouteSet) GET(path string, handler any) *RouteSet {
	return rs.add(GET, path, handler, nil)
}

// POST adds a POST descriptor with optional middleware.
func (rs *RouteSet) POST(path string, handler any, mw ...transport.Middleware) *RouteSet {
	return rs.add(POST, path, handler, mw)
}

// PUT adds a PUT descriptor with optional middleware.
func (rs *RouteSet) PUT(path string, handler any, mw ...transport.Middleware) *RouteSet {
	return rs.add(PUT, path, handler, mw)
}

// DELETE adds a DELETE descriptor with optional middleware.
func (rs *RouteSet) DELETE(path string, handler any, mw ...transport.Middleware) *RouteSet {
	return rs.add(DELETE, path, handler, mw)
}

func (rs *RouteSet) add(verb Verb, path string, handler any, mw []transport.Middleware) *RouteSet {
	rs.descriptors = append(rs.descriptors, Descriptor{
		Verb:       verb,
		Path:       path,
		Middleware: mw,
		Handler:    handler,
		Name:       HandlerName(handler),
	})
	return rs
}

// Descriptors returns the table in builder order.
func (rs *RouteSet) Descriptors() []Descriptor {
	return rs.descriptors
}

// InVerbOrder returns the table ordered GET, POST, PUT, DELETE, keeping
// builder order within each verb. This is the order the engine applies
// descriptors to the transport.
func (rs *RouteSet) InVerbOrder() []Descriptor {
	ordered := make([]Descriptor, 0, len(rs.descriptors))
	for _, verb := range VerbOrder {
		for _, d := range rs.descriptors {
			if d.Verb == verb {
				ordered = append(ordered, d)
			}
		}
	}
	return ordered
}

// Len returns the number of descriptors in the table.
func (rs *RouteSet) Len() int {
	return len(rs.descriptors)
}

// HandlerName derives a short display name for a handler func, e.g. "Index"
// for the bound method (*HomeController).Index. Falls back to "handler" when
// the name cannot be resolved.
func HandlerName(handler any) string {
	v := reflect.ValueOf(handler)
	if v.Kind() != reflect.Func {
		return "handler"
	}
	fn := runtime.FuncForPC(v.Pointer())
	if fn == nil {
		return "handler"
	}
	name := fn.Name()
	// Bound methods reflect as "pkg.(*Type).Method-fm".
	name = strings.TrimSuffix(name, "-fm")
	if idx := strings.LastIndex(name, "."); idx != -1 {
		name = name[idx+1:]
	}
	if name == "" {
		return "handler"
	}
	return name
}
