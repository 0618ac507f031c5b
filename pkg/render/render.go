// Package render implements the response-composition wrapper: it adapts a
// controller handler method into a transport.Handler that translates the
// method's return value into a page render or a short-circuit.
package render

import (
	"fmt"
	"log/slog"
	"net/http"
	"reflect"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/chassis-go/chassis/pkg/transport"
)

var tracer = otel.Tracer("github.com/chassis-go/chassis/pkg/render")

// Config controls how wrapped handlers render. All renders go against the
// single base Template; handlers contribute parameters, not template names.
type Config struct {
	// Template is the base template name every render targets.
	Template string

	// Title seeds the "title" render parameter.
	Title string

	// ExtraStyles and ExtraScripts seed the parameters of the same name.
	ExtraStyles  []string
	ExtraScripts []string

	// ExtraParams are merged into every render's parameters ahead of the
	// handler's own output.
	ExtraParams map[string]any
}

// DefaultConfig returns the default render configuration.
func DefaultConfig() Config {
	return Config{
		Template: "layout",
	}
}

var (
	responseType = reflect.TypeOf((*transport.Response)(nil))
	requestType  = reflect.TypeOf((*http.Request)(nil))
)

// Wrap adapts a handler method to a transport.Handler.
//
// The handler must be a function returning at most one value. Its arguments
// are filled by type: *transport.Response and *http.Request receive the
// request's values, anything else its zero value. After the handler runs to
// completion its return value decides what happens next:
//
//   - the boolean false: no further action, the handler owns the response
//     (it already redirected or wrote);
//   - a map[string]any: entries merge into the render parameters, overriding
//     defaults of the same key, then the base template renders;
//   - anything else, including no return value: the base template renders
//     with the default parameters.
//
// Render parameters are seeded as {title, page, extraStyles, extraScripts}
// plus Config.ExtraParams. "page" is the request path with the leading
// slash trimmed.
//
// The handler must take exactly one *transport.Response argument. With zero
// or several, Wrap logs a warning and the returned handler still runs the
// method but never renders.
func Wrap(handler any, cfg Config, logger *slog.Logger) transport.Handler {
	if logger == nil {
		logger = slog.Default()
	}

	v := reflect.ValueOf(handler)
	t := v.Type()
	if t.Kind() != reflect.Func {
		panic(fmt.Sprintf("render: handler must be a function, got %T", handler))
	}
	if t.NumOut() > 1 {
		panic(fmt.Sprintf("render: handler %s must return at most one value, returns %d",
			handlerLabel(t), t.NumOut()))
	}

	responseArgs := 0
	for i := 0; i < t.NumIn(); i++ {
		if t.In(i) == responseType {
			responseArgs++
		}
	}
	renderable := responseArgs == 1
	if !renderable {
		logger.Warn("render: handler does not take exactly one *transport.Response, renders disabled",
			"handler", handlerLabel(t), "responseArgs", responseArgs)
	}

	return func(resp *transport.Response, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "chassis.handler",
			trace.WithSpanKind(trace.SpanKindServer))
		span.SetAttributes(
			attribute.String("http.route.template", cfg.Template),
			attribute.String("http.target", r.URL.Path),
		)
		defer span.End()
		r = r.WithContext(ctx)

		args := make([]reflect.Value, t.NumIn())
		for i := 0; i < t.NumIn(); i++ {
			switch t.In(i) {
			case responseType:
				args[i] = reflect.ValueOf(resp)
			case requestType:
				args[i] = reflect.ValueOf(r)
			default:
				args[i] = reflect.Zero(t.In(i))
			}
		}

		out := v.Call(args)

		if !renderable {
			return
		}

		var output any
		if len(out) == 1 {
			output = out[0].Interface()
		}

		// The boolean false means the handler fully owns the response.
		if b, ok := output.(bool); ok && !b {
			return
		}

		params := map[string]any{
			"title":        cfg.Title,
			"page":         strings.TrimPrefix(r.URL.Path, "/"),
			"extraStyles":  cfg.ExtraStyles,
			"extraScripts": cfg.ExtraScripts,
		}
		for k, val := range cfg.ExtraParams {
			params[k] = val
		}
		if m, ok := output.(map[string]any); ok {
			for k, val := range m {
				params[k] = val
			}
		}

		if err := resp.Render(cfg.Template, params); err != nil {
			logger.Error("render: page render failed",
				"template", cfg.Template, "path", r.URL.Path, "error", err)
		}
	}
}

func handlerLabel(t reflect.Type) string {
	return t.String()
}
