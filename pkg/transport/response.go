package transport

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// Sentinel errors for response composition.
var (
	// ErrResponseWritten is returned when a render is attempted after the
	// response has begun transmitting.
	ErrResponseWritten = errors.New("transport: response already written")

	// ErrNoRenderer is returned when a render is attempted on a transport
	// configured without a renderer.
	ErrNoRenderer = errors.New("transport: no renderer configured")
)

// Renderer is the template-engine collaborator. The engine depends only on
// this method's existence; template loading and synthesis live elsewhere.
type Renderer interface {
	Render(w io.Writer, name string, params map[string]any) error
}

// RenderError wraps a renderer failure with the template name.
type RenderError struct {
	Template string
	Err      error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("transport: render %q: %v", e.Template, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As.
func (e *RenderError) Unwrap() error {
	return e.Err
}

// Response wraps http.ResponseWriter with a pending status code, write
// tracking, and render/redirect/fail helpers. The pending status lets a
// handler (or the catch-all) record a status before anything is written, so
// the error chain can still gate on it and rewrite the response.
//
// Response implements http.ResponseWriter and can be handed to stdlib
// helpers like http.Redirect.
type Response struct {
	w        http.ResponseWriter
	renderer Renderer

	status int
	wrote  bool
	passed bool

	// fail forwards an error into the transport's error chain. Set by the
	// transport when the response is constructed.
	fail func(error)
}

// NewResponse creates a Response over w. Custom transports and tests use
// this directly; the chi transport constructs responses itself.
func NewResponse(w http.ResponseWriter, renderer Renderer, fail func(error)) *Response {
	return &Response{
		w:        w,
		renderer: renderer,
		status:   http.StatusOK,
		fail:     fail,
	}
}

// Header returns the header map that will be sent.
func (resp *Response) Header() http.Header {
	return resp.w.Header()
}

// SetStatus records the status code without starting transmission. The code
// is sent when the first write happens.
func (resp *Response) SetStatus(code int) {
	if !resp.wrote {
		resp.status = code
	}
}

// Status returns the sent status if transmission has begun, the pending
// status otherwise.
func (resp *Response) Status() int {
	return resp.status
}

// Written reports whether the response has begun transmitting. Once true,
// status and headers can no longer change.
func (resp *Response) Written() bool {
	return resp.wrote
}

// WriteHeader sends the status line and headers. Subsequent calls are
// no-ops, matching net/http semantics without the log noise.
func (resp *Response) WriteHeader(code int) {
	if resp.wrote {
		return
	}
	resp.status = code
	resp.wrote = true
	resp.w.WriteHeader(code)
}

// Write sends body bytes, flushing the pending status first.
func (resp *Response) Write(p []byte) (int, error) {
	if !resp.wrote {
		resp.WriteHeader(resp.status)
	}
	return resp.w.Write(p)
}

// Render renders the named template with params and writes the result with
// the pending status. The template output is buffered so a renderer failure
// leaves the response untouched.
func (resp *Response) Render(name string, params map[string]any) error {
	if resp.wrote {
		return ErrResponseWritten
	}
	if resp.renderer == nil {
		return ErrNoRenderer
	}

	var buf bytes.Buffer
	if err := resp.renderer.Render(&buf, name, params); err != nil {
		return &RenderError{Template: name, Err: err}
	}

	if resp.Header().Get("Content-Type") == "" {
		resp.Header().Set("Content-Type", "text/html; charset=utf-8")
	}
	resp.WriteHeader(resp.status)
	_, err := resp.w.Write(buf.Bytes())
	return err
}

// Redirect sends an HTTP redirect. Handlers that redirect should return
// false so the response-composition wrapper performs no further action.
func (resp *Response) Redirect(r *http.Request, url string, code int) {
	http.Redirect(resp, r, url, code)
}

// Pass marks the request as deliberately unhandled: the transport defers it
// to its fallback stage instead of treating it as an error. Used by the
// catch-all for outside-framework routes.
func (resp *Response) Pass() {
	resp.passed = true
}

// Passed reports whether Pass was called.
func (resp *Response) Passed() bool {
	return resp.passed
}

// Fail forwards err into the transport's error-handling chain. A Response
// constructed without a chain hook ignores the call.
func (resp *Response) Fail(err error) {
	if resp.fail != nil {
		resp.fail(err)
	}
}
