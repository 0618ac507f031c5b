package example

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chassis-go/chassis"
	"github.com/chassis-go/chassis/pkg/render"
	"github.com/chassis-go/chassis/pkg/transport"
)

type stubRenderer struct{}

func (stubRenderer) Render(w io.Writer, name string, params map[string]any) error {
	_, err := fmt.Fprintf(w, "<%s title=%v>", name, params["title"])
	return err
}

func newApp(t *testing.T) (*chassis.Engine, *transport.Chi, *chassis.Report) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	engine := chassis.New(chassis.Config{
		Logger: logger,
		Render: render.Config{Template: "layout", Title: "Demo"},
	})
	tr := transport.NewChi(transport.ChiConfig{
		Renderer: stubRenderer{},
		Logger:   logger,
	})
	report := engine.Register(tr, Manifest().Classify(logger))
	return engine, tr, report
}

func TestExampleRegistrationReport(t *testing.T) {
	_, _, report := newApp(t)

	lines := report.Lines()
	require.NotEmpty(t, lines)

	// Admin registers before standalone home, users through admin first.
	assert.Equal(t, "GET /admin/users -> UsersController.List", lines[0])
	assert.Contains(t, lines, "GET /admin -> AdminController.Dashboard")
	assert.Contains(t, lines, "GET / -> HomeController.Index")
	assert.Contains(t, lines, "error 404 -> NotFoundController (Not Found)")
	assert.Contains(t, lines, "error 500 -> ServerErrorController (Server Error)")

	// Each route exactly once, child routes included.
	counts := make(map[string]int)
	for _, line := range lines {
		counts[line]++
	}
	for line, n := range counts {
		assert.Equal(t, 1, n, "duplicate report line: %s", line)
	}
}

func TestExamplePagesRender(t *testing.T) {
	_, tr, _ := newApp(t)

	rec := httptest.NewRecorder()
	tr.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "<layout title=Demo>", rec.Body.String())

	rec = httptest.NewRecorder()
	tr.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/about", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "<layout title=About>", rec.Body.String())
}

func TestExampleChildRoutesServed(t *testing.T) {
	_, tr, _ := newApp(t)

	rec := httptest.NewRecorder()
	tr.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/users", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "<layout title=Users>", rec.Body.String())

	rec = httptest.NewRecorder()
	tr.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/admin/users", nil))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin/users", rec.Header().Get("Location"))
}

func TestExampleNotFoundPage(t *testing.T) {
	_, tr, _ := newApp(t)

	rec := httptest.NewRecorder()
	tr.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/no/such/page", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "<h1>Page not found</h1>", rec.Body.String())
}

func TestExampleOutsideRouteExemption(t *testing.T) {
	engine, tr, _ := newApp(t)
	engine.OutsideRoutes().Add("/oauth/callback")

	rec := httptest.NewRecorder()
	tr.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/oauth/callback", nil))

	assert.NotEqual(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, rec.Body.String())
}
