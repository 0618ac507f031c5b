package chassis

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/chassis-go/chassis/pkg/controller"
	"github.com/chassis-go/chassis/pkg/manifest"
	"github.com/chassis-go/chassis/pkg/metrics"
	"github.com/chassis-go/chassis/pkg/render"
	"github.com/chassis-go/chassis/pkg/transport"
)

// Engine drives one registration pass: it partitions classified units,
// applies their descriptors to the transport, installs the catch-all, and
// composes the error-controller chain. Units are registered once at startup
// and immutable afterwards.
type Engine struct {
	logger  *slog.Logger
	render  render.Config
	metrics *metrics.Metrics
	outside *OutsideRoutes
}

// New creates an engine with the given configuration. Zero-value fields
// fall back to DefaultConfig.
func New(cfg Config) *Engine {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Render.Template == "" {
		cfg.Render.Template = render.DefaultConfig().Template
	}
	return &Engine{
		logger:  cfg.Logger,
		render:  cfg.Render,
		metrics: cfg.Metrics,
		outside: NewOutsideRoutes(),
	}
}

// OutsideRoutes returns the engine's catch-all exemption set. External
// subsystems (an OAuth collaborator, for example) add the paths they own,
// before or after registration completes.
func (e *Engine) OutsideRoutes() *OutsideRoutes {
	return e.outside
}

// Register applies every classified unit to the transport and returns the
// registration report.
//
// Controllers are partitioned into parents-with-children, children, and
// standalone units. Setup runs exactly once per top-level unit
// (parents-with-children first, then standalone, in classification order);
// each parent activates its declared children before registering its own
// descriptors, so child routes reach the transport exactly once, through
// their parent. Children are then walked purely for reporting. The
// catch-all is installed after all routes, and the error-controller chain
// after the catch-all.
//
// A unit whose descriptor table cannot be built is logged and skipped;
// registration of the remaining units continues.
func (e *Engine) Register(t transport.Transport, cls *manifest.Classified) *Report {
	report := newReport()

	withChildren, children, standalone := partition(cls.Controllers)

	for _, unit := range withChildren {
		e.setup(t, unit, report)
	}
	for _, unit := range standalone {
		e.setup(t, unit, report)
	}

	// Children registered transitively above; walk them only to complete
	// the report. Units already recorded during setup are skipped, so each
	// route appears exactly once.
	for _, unit := range children {
		e.record(unit, report)
	}

	t.HandleCatchAll(e.catchAll())
	report.addCatchAll()

	for _, unit := range cls.ErrorControllers {
		e.installErrorController(t, unit, report)
	}

	return report
}

// partition splits units by child-relation membership. Identity is pointer
// identity: the same unit value declared as a child and discovered directly
// is recognized as one unit.
//
// Multiple-parent claims are not deduplicated (such a unit registers once
// per parent) and cycles in the child graph are not detected.
func partition(units []controller.Controller) (withChildren, children, standalone []controller.Controller) {
	isParent := make(map[controller.Controller]bool)
	isChild := make(map[controller.Controller]bool)

	for _, unit := range units {
		parent, ok := unit.(controller.Parent)
		if !ok || len(parent.Children()) == 0 {
			continue
		}
		isParent[unit] = true
		withChildren = append(withChildren, unit)
		for _, child := range parent.Children() {
			if !isChild[child] {
				isChild[child] = true
				children = append(children, child)
			}
		}
	}

	for _, unit := range units {
		if !isParent[unit] && !isChild[unit] {
			standalone = append(standalone, unit)
		}
	}
	return withChildren, children, standalone
}

// setup activates one unit: declared children first, then the unit's own
// descriptors in verb order GET, POST, PUT, DELETE (builder order within a
// verb).
func (e *Engine) setup(t transport.Transport, unit controller.Controller, report *Report) {
	if parent, ok := unit.(controller.Parent); ok {
		for _, child := range parent.Children() {
			e.setup(t, child, report)
		}
	}

	if err := e.applyRoutes(t, unit, report); err != nil {
		e.logger.Error("chassis: unit skipped", "controller", unitName(unit), "error", err)
	}
}

// applyRoutes registers the unit's own descriptors. A panic from the unit's
// Routes method (or from wrapping one of its handlers) is converted into an
// IntrospectionError so one broken unit never prevents the rest of the
// application from starting.
func (e *Engine) applyRoutes(t transport.Transport, unit controller.Controller, report *Report) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = &IntrospectionError{Unit: unitName(unit), Err: recoveredError(rec)}
		}
	}()

	// A unit claimed by several parents passes through here once per parent
	// and registers each time, but its routes enter the report only once.
	record := !report.reported(unit)

	for _, d := range unit.Routes().InVerbOrder() {
		handler := render.Wrap(d.Handler, e.render, e.logger)
		t.Handle(string(d.Verb), d.Path, handler, d.Middleware...)
		if record {
			report.addRoute(unit, d)
		}
		e.metrics.RouteRegistered(string(d.Verb))
	}
	return nil
}

// record adds a unit's routes to the report without touching the transport.
// Used for the children walk; units already reported during setup are
// skipped.
func (e *Engine) record(unit controller.Controller, report *Report) {
	if report.reported(unit) {
		return
	}

	descriptors, err := introspect(unit)
	if err != nil {
		e.logger.Error("chassis: unit omitted from report", "controller", unitName(unit), "error", err)
		return
	}
	for _, d := range descriptors {
		report.addRoute(unit, d)
	}
}

// introspect builds a unit's ordered descriptor list, converting a Routes
// panic into an error.
func introspect(unit controller.Controller) (descriptors []controller.Descriptor, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = &IntrospectionError{Unit: unitName(unit), Err: recoveredError(rec)}
		}
	}()
	return unit.Routes().InVerbOrder(), nil
}

// catchAll builds the fallback handler installed after every route. Paths
// in the exemption set pass through to the transport's next stage; anything
// else gets a not-found status and an UnmatchedRouteError forwarded into
// the error chain.
func (e *Engine) catchAll() transport.Handler {
	return func(resp *transport.Response, r *http.Request) {
		if e.outside.Contains(r.URL.Path) {
			e.metrics.CatchAllHit(metrics.OutcomeExempt)
			resp.Pass()
			return
		}
		e.metrics.CatchAllHit(metrics.OutcomeNotFound)
		resp.SetStatus(http.StatusNotFound)
		resp.Fail(&UnmatchedRouteError{Method: r.Method, Path: r.URL.Path})
	}
}

// installErrorController wraps one unit into a status-gated chain stage: it
// forwards unconditionally once the response has begun transmitting,
// forwards on status mismatch, and invokes the unit's Handle on match.
func (e *Engine) installErrorController(t transport.Transport, unit controller.ErrorController, report *Report) {
	t.HandleError(func(err error, resp *transport.Response, r *http.Request, next func(error)) {
		if resp.Written() {
			next(err)
			return
		}
		if resp.Status() != unit.Status() {
			next(err)
			return
		}
		e.metrics.ErrorChainInvoked(unit.Status())
		unit.Handle(err, resp, r, next)
	})
	report.addErrorController(unit)
}

func recoveredError(rec any) error {
	if err, ok := rec.(error); ok {
		return err
	}
	return &panicError{value: rec}
}

type panicError struct {
	value any
}

func (e *panicError) Error() string {
	return fmt.Sprintf("panic: %v", e.value)
}
