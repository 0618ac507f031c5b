// Package example is a small demo application exercising the public
// surface: standalone controllers, a parent/child pair, middleware on a
// mutating route, and status-bound error controllers. The chassis-demo
// command serves it; the integration tests register it against a real chi
// transport.
package example

import (
	"log/slog"
	"net/http"

	"github.com/chassis-go/chassis/pkg/controller"
	"github.com/chassis-go/chassis/pkg/transport"
)

// HomeController serves the public pages. It declares no children.
type HomeController struct {
	controller.Base
}

func (c *HomeController) Routes() *controller.RouteSet {
	return controller.NewRouteSet().
		GET("/", c.Index).
		GET("/about", c.About)
}

// Index renders the base template with default parameters.
func (c *HomeController) Index(resp *transport.Response, r *http.Request) {}

// About overrides the page title.
func (c *HomeController) About(resp *transport.Response, r *http.Request) any {
	return map[string]any{
		"title": "About",
	}
}

// UsersController manages the user admin pages. It is activated through
// AdminController, never directly.
type UsersController struct {
	controller.Base
}

func (c *UsersController) Routes() *controller.RouteSet {
	return controller.NewRouteSet().
		GET("/admin/users", c.List).
		POST("/admin/users", c.Create, Audit(nil)).
		DELETE("/admin/users/{id}", c.Delete, Audit(nil))
}

func (c *UsersController) List(resp *transport.Response, r *http.Request) any {
	return map[string]any{
		"title": "Users",
		"users": []string{"ada", "grace", "edsger"},
	}
}

// Create redirects back to the list and owns the response, so it returns
// false to suppress the render.
func (c *UsersController) Create(resp *transport.Response, r *http.Request) any {
	resp.Redirect(r, "/admin/users", http.StatusSeeOther)
	return false
}

func (c *UsersController) Delete(resp *transport.Response, r *http.Request) any {
	resp.Redirect(r, "/admin/users", http.StatusSeeOther)
	return false
}

// AdminController owns the admin area. It declares UsersController as a
// child, so the users routes register transitively through this unit.
type AdminController struct {
	controller.Base
	users *UsersController
}

// NewAdminController creates the admin controller owning the given child.
func NewAdminController(users *UsersController) *AdminController {
	return &AdminController{users: users}
}

func (c *AdminController) Routes() *controller.RouteSet {
	return controller.NewRouteSet().
		GET("/admin", c.Dashboard)
}

func (c *AdminController) Children() []controller.Controller {
	return []controller.Controller{c.users}
}

func (c *AdminController) Dashboard(resp *transport.Response, r *http.Request) any {
	return map[string]any{
		"title": "Admin",
	}
}

// NotFoundController renders the 404 page.
type NotFoundController struct {
	controller.ErrorBase
}

func (c *NotFoundController) Status() int {
	return http.StatusNotFound
}

func (c *NotFoundController) Label() string {
	return "Not Found"
}

func (c *NotFoundController) Handle(err error, resp *transport.Response, r *http.Request, next func(error)) {
	resp.Header().Set("Content-Type", "text/html; charset=utf-8")
	resp.Write([]byte("<h1>Page not found</h1>"))
}

// ServerErrorController renders the 500 page.
type ServerErrorController struct {
	controller.ErrorBase
}

func (c *ServerErrorController) Status() int {
	return http.StatusInternalServerError
}

func (c *ServerErrorController) Label() string {
	return "Server Error"
}

func (c *ServerErrorController) Handle(err error, resp *transport.Response, r *http.Request, next func(error)) {
	resp.Header().Set("Content-Type", "text/html; charset=utf-8")
	resp.Write([]byte("<h1>Something went wrong</h1>"))
}

// Audit logs mutating requests before they reach the handler.
func Audit(logger *slog.Logger) transport.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log := logger
			if log == nil {
				log = slog.Default()
			}
			log.Info("audit", "method", r.Method, "path", r.URL.Path)
			next.ServeHTTP(w, r)
		})
	}
}
