// Package manifest holds the declared collection of controller constructors
// and classifies it into the unit sets the registration engine consumes.
//
// Discovery is deliberately not filesystem-based: applications register
// constructors explicitly at startup, so classification iterates a known,
// typed collection instead of loading modules from disk. Classification
// stays free of registration side effects; constructing a unit must not
// touch the transport.
package manifest

import (
	"fmt"
	"log/slog"

	"github.com/chassis-go/chassis/pkg/controller"
)

// Entry is one declared constructor. Path is a display label (conventionally
// the source file that defines the unit) used only in diagnostics; several
// entries may share one path when a file defines several units.
type Entry struct {
	Path string
	New  func() any
}

// Manifest is the ordered collection of declared constructors.
type Manifest struct {
	entries []Entry
}

// New creates an empty manifest.
func New() *Manifest {
	return &Manifest{}
}

// Add declares a constructor under a display path. Returns the manifest for
// chaining:
//
//	m := manifest.New().
//	    Add("example/home.go", func() any { return &HomeController{} }).
//	    Add("example/errors.go", func() any { return &NotFoundController{} })
func (m *Manifest) Add(path string, ctor func() any) *Manifest {
	m.entries = append(m.entries, Entry{Path: path, New: ctor})
	return m
}

// Entries returns the declared entries in registration order.
func (m *Manifest) Entries() []Entry {
	return m.entries
}

// Len returns the number of declared entries.
func (m *Manifest) Len() int {
	return len(m.entries)
}

// Classified is the outcome of classification: the controller units and
// error-controller units the manifest produced, in declaration order.
type Classified struct {
	Controllers      []controller.Controller
	ErrorControllers []controller.ErrorController
}

// Classify constructs every declared entry and sorts the results by
// capability. A constructor that panics, or a value carrying neither
// capability, is logged and excluded; sibling entries are unaffected.
func (m *Manifest) Classify(logger *slog.Logger) *Classified {
	if logger == nil {
		logger = slog.Default()
	}

	out := &Classified{}
	for _, entry := range m.entries {
		value, err := construct(entry)
		if err != nil {
			logger.Error("manifest: entry failed to construct, skipping",
				"path", entry.Path, "error", err)
			continue
		}

		switch unit := value.(type) {
		case controller.Controller:
			out.Controllers = append(out.Controllers, unit)
		case controller.ErrorController:
			out.ErrorControllers = append(out.ErrorControllers, unit)
		default:
			logger.Warn("manifest: entry carries no controller capability, skipping",
				"path", entry.Path, "type", fmt.Sprintf("%T", value))
		}
	}
	return out
}

// construct runs a constructor, converting a panic into an error so one bad
// entry cannot abort classification of its siblings.
func construct(entry Entry) (value any, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("manifest: constructor for %s panicked: %v", entry.Path, rec)
		}
	}()
	return entry.New(), nil
}
