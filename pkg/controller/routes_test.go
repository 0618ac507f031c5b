package controller

import (
	"net/http"
	"testing"

	"github.com/chassis-go/chassis/pkg/transport"
)

type testController struct {
	Base
}

func (c *testController) Routes() *RouteSet {
	return NewRouteSet()
}

func (c *testController) Show(resp *transport.Response, r *http.Request) any { return nil }

func TestRouteSetBuilderOrder(t *testing.T) {
	c := &testController{}

	rs := NewRouteSet().
		GET("/a", c.Show).
		GET("/b", c.Show).
		POST("/a", c.Show)

	ds := rs.Descriptors()
	if len(ds) != 3 {
		t.Fatalf("len(Descriptors()) = %d, want 3", len(ds))
	}
	if ds[0].Path != "/a" || ds[1].Path != "/b" || ds[2].Path != "/a" {
		t.Errorf("builder order not preserved: %v %v %v", ds[0].Path, ds[1].Path, ds[2].Path)
	}
}

func TestRouteSetInVerbOrder(t *testing.T) {
	c := &testController{}

	// Built deliberately out of verb order.
	rs := NewRouteSet().
		DELETE("/x", c.Show).
		POST("/x", c.Show).
		GET("/second", c.Show).
		PUT("/x", c.Show)
	rs.GET("/third", c.Show)

	got := rs.InVerbOrder()
	wantVerbs := []Verb{GET, GET, POST, PUT, DELETE}
	if len(got) != len(wantVerbs) {
		t.Fatalf("len(InVerbOrder()) = %d, want %d", len(got), len(wantVerbs))
	}
	for i, d := range got {
		if d.Verb != wantVerbs[i] {
			t.Errorf("InVerbOrder()[%d].Verb = %s, want %s", i, d.Verb, wantVerbs[i])
		}
	}

	// Within a verb, builder order holds.
	if got[0].Path != "/second" || got[1].Path != "/third" {
		t.Errorf("GET order = %q, %q; want /second, /third", got[0].Path, got[1].Path)
	}
}

func TestRouteSetMiddlewareOrder(t *testing.T) {
	c := &testController{}
	var order []string
	mw := func(tag string) transport.Middleware {
		return func(next http.Handler) http.Handler {
			order = append(order, tag)
			return next
		}
	}

	rs := NewRouteSet().POST("/x", c.Show, mw("first"), mw("second"))

	ds := rs.Descriptors()
	if len(ds[0].Middleware) != 2 {
		t.Fatalf("len(Middleware) = %d, want 2", len(ds[0].Middleware))
	}
	for _, m := range ds[0].Middleware {
		m(nil)
	}
	if order[0] != "first" || order[1] != "second" {
		t.Errorf("middleware order = %v, want [first second]", order)
	}
}

func TestHandlerName(t *testing.T) {
	c := &testController{}

	if got := HandlerName(c.Show); got != "Show" {
		t.Errorf("HandlerName(c.Show) = %q, want %q", got, "Show")
	}
	if got := HandlerName(42); got != "handler" {
		t.Errorf("HandlerName(42) = %q, want fallback %q", got, "handler")
	}
}

func TestMarkerInterfaces(t *testing.T) {
	var unit any = &testController{}

	if _, ok := unit.(Controller); !ok {
		t.Error("embedding Base should satisfy Controller")
	}
	if _, ok := unit.(Parent); ok {
		t.Error("testController declares no children, should not be a Parent")
	}
	if _, ok := unit.(ErrorController); ok {
		t.Error("testController should not satisfy ErrorController")
	}
}
