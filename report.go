package chassis

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/chassis-go/chassis/pkg/controller"
)

// Report is the ordered, human-readable record of every route and error
// handler installed during one registration pass. It exists for
// observability only; nothing dispatches off it.
type Report struct {
	lines []string
	seen  map[controller.Controller]bool
}

func newReport() *Report {
	return &Report{seen: make(map[controller.Controller]bool)}
}

// Lines returns the report lines in registration order.
func (r *Report) Lines() []string {
	return r.lines
}

// String returns the report as one newline-joined block.
func (r *Report) String() string {
	return strings.Join(r.lines, "\n")
}

// addRoute records one descriptor of one unit and marks the unit reported.
func (r *Report) addRoute(unit controller.Controller, d controller.Descriptor) {
	r.seen[unit] = true
	r.lines = append(r.lines, fmt.Sprintf("%s %s -> %s.%s", d.Verb, d.Path, unitName(unit), d.Name))
}

// reported tells whether the unit's routes are already in the report.
func (r *Report) reported(unit controller.Controller) bool {
	return r.seen[unit]
}

// addErrorController records one installed error controller.
func (r *Report) addErrorController(unit controller.ErrorController) {
	line := fmt.Sprintf("error %d -> %s", unit.Status(), errorUnitName(unit))
	if labeled, ok := unit.(controller.Labeled); ok {
		line += fmt.Sprintf(" (%s)", labeled.Label())
	}
	r.lines = append(r.lines, line)
}

// addCatchAll records the catch-all installation.
func (r *Report) addCatchAll() {
	r.lines = append(r.lines, "* (catch-all) -> not found")
}

func unitName(unit controller.Controller) string {
	return typeName(reflect.TypeOf(unit))
}

func errorUnitName(unit controller.ErrorController) string {
	return typeName(reflect.TypeOf(unit))
}

func typeName(t reflect.Type) string {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Name() == "" {
		return "controller"
	}
	return t.Name()
}
