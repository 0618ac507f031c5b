package transport

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

// stubRenderer records the last render and writes a fixed body.
type stubRenderer struct {
	name   string
	params map[string]any
	err    error
}

func (s *stubRenderer) Render(w io.Writer, name string, params map[string]any) error {
	s.name = name
	s.params = params
	if s.err != nil {
		return s.err
	}
	_, err := fmt.Fprintf(w, "<rendered %s>", name)
	return err
}

func TestResponsePendingStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	resp := NewResponse(rec, nil, nil)

	resp.SetStatus(http.StatusNotFound)
	if resp.Status() != http.StatusNotFound {
		t.Errorf("Status() = %d, want 404", resp.Status())
	}
	if resp.Written() {
		t.Error("SetStatus must not begin transmission")
	}
	if rec.Code != http.StatusOK {
		t.Errorf("recorder code = %d, nothing should be written yet", rec.Code)
	}

	resp.Write([]byte("gone"))
	if !resp.Written() {
		t.Error("Write must mark the response written")
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("recorder code = %d, want 404 flushed on first write", rec.Code)
	}
}

func TestResponseSetStatusAfterWriteIsIgnored(t *testing.T) {
	rec := httptest.NewRecorder()
	resp := NewResponse(rec, nil, nil)

	resp.WriteHeader(http.StatusTeapot)
	resp.SetStatus(http.StatusOK)

	if resp.Status() != http.StatusTeapot {
		t.Errorf("Status() = %d, want 418 after transmission began", resp.Status())
	}
}

func TestResponseWriteHeaderOnce(t *testing.T) {
	rec := httptest.NewRecorder()
	resp := NewResponse(rec, nil, nil)

	resp.WriteHeader(http.StatusCreated)
	resp.WriteHeader(http.StatusInternalServerError)

	if rec.Code != http.StatusCreated {
		t.Errorf("recorder code = %d, want first WriteHeader to win", rec.Code)
	}
}

func TestResponseRender(t *testing.T) {
	rec := httptest.NewRecorder()
	renderer := &stubRenderer{}
	resp := NewResponse(rec, renderer, nil)
	resp.SetStatus(http.StatusNotFound)

	err := resp.Render("layout", map[string]any{"title": "x"})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	if renderer.name != "layout" {
		t.Errorf("renderer name = %q, want %q", renderer.name, "layout")
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("recorder code = %d, want pending status 404", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); got != "text/html; charset=utf-8" {
		t.Errorf("Content-Type = %q", got)
	}
	if rec.Body.String() != "<rendered layout>" {
		t.Errorf("body = %q", rec.Body.String())
	}
}

func TestResponseRenderWithoutRenderer(t *testing.T) {
	resp := NewResponse(httptest.NewRecorder(), nil, nil)

	if err := resp.Render("layout", nil); !errors.Is(err, ErrNoRenderer) {
		t.Errorf("Render() error = %v, want ErrNoRenderer", err)
	}
}

func TestResponseRenderAfterWrite(t *testing.T) {
	resp := NewResponse(httptest.NewRecorder(), &stubRenderer{}, nil)
	resp.Write([]byte("already streaming"))

	if err := resp.Render("layout", nil); !errors.Is(err, ErrResponseWritten) {
		t.Errorf("Render() error = %v, want ErrResponseWritten", err)
	}
}

func TestResponseRenderFailureLeavesResponseUntouched(t *testing.T) {
	rec := httptest.NewRecorder()
	renderer := &stubRenderer{err: errors.New("template blew up")}
	resp := NewResponse(rec, renderer, nil)

	err := resp.Render("layout", nil)

	var renderErr *RenderError
	if !errors.As(err, &renderErr) {
		t.Fatalf("Render() error = %v, want *RenderError", err)
	}
	if renderErr.Template != "layout" {
		t.Errorf("RenderError.Template = %q", renderErr.Template)
	}
	if resp.Written() {
		t.Error("a failed render must not begin transmission")
	}
	if rec.Body.Len() != 0 {
		t.Errorf("body = %q, want empty", rec.Body.String())
	}
}

func TestResponseFail(t *testing.T) {
	var got error
	resp := NewResponse(httptest.NewRecorder(), nil, func(err error) { got = err })

	want := errors.New("no route")
	resp.Fail(want)

	if got != want {
		t.Errorf("fail hook received %v, want %v", got, want)
	}

	// A response without a hook ignores Fail.
	NewResponse(httptest.NewRecorder(), nil, nil).Fail(want)
}

func TestResponsePass(t *testing.T) {
	resp := NewResponse(httptest.NewRecorder(), nil, nil)

	if resp.Passed() {
		t.Error("Passed() true before Pass()")
	}
	resp.Pass()
	if !resp.Passed() {
		t.Error("Passed() false after Pass()")
	}
}

func TestResponseRedirect(t *testing.T) {
	rec := httptest.NewRecorder()
	resp := NewResponse(rec, nil, nil)
	r := httptest.NewRequest(http.MethodPost, "/admin/users", nil)

	resp.Redirect(r, "/admin/users", http.StatusSeeOther)

	if rec.Code != http.StatusSeeOther {
		t.Errorf("recorder code = %d, want 303", rec.Code)
	}
	if got := rec.Header().Get("Location"); got != "/admin/users" {
		t.Errorf("Location = %q", got)
	}
	if !resp.Written() {
		t.Error("redirect must mark the response written")
	}
}
