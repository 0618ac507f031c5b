// Package chassis turns declarative controller units into a single,
// order-correct route registration pass over a host HTTP transport.
//
// Applications declare handlers as methods on plain controller types,
// describe them with a statically-checked descriptor table, and list the
// controllers in a startup manifest. The registration engine partitions the
// discovered units into parents, children and standalone controllers,
// registers every route exactly once, installs a catch-all with an
// outside-framework exemption set, and layers a status-gated
// error-controller chain on top.
//
// Usage:
//
//	m := manifest.New().
//	    Add("app/home.go", func() any { return &HomeController{} }).
//	    Add("app/errors.go", func() any { return &NotFoundController{} })
//
//	engine := chassis.New(chassis.Config{})
//	t := transport.NewChi(transport.ChiConfig{Renderer: renderer})
//	report := engine.Register(t, m.Classify(nil))
//	http.ListenAndServe(":8080", t)
package chassis

import (
	"github.com/chassis-go/chassis/pkg/controller"
	"github.com/chassis-go/chassis/pkg/manifest"
	"github.com/chassis-go/chassis/pkg/transport"
)

// Re-exports so simple applications only import the root package.

// Controller is a handler-bearing unit. See pkg/controller.
type Controller = controller.Controller

// Base marks a struct as a Controller.
type Base = controller.Base

// Parent is a Controller that owns children.
type Parent = controller.Parent

// ErrorController is a status-bound error handler unit.
type ErrorController = controller.ErrorController

// ErrorBase marks a struct as an ErrorController.
type ErrorBase = controller.ErrorBase

// RouteSet is the fluent descriptor table builder.
type RouteSet = controller.RouteSet

// NewRouteSet creates an empty descriptor table.
var NewRouteSet = controller.NewRouteSet

// Manifest is the declared collection of controller constructors.
type Manifest = manifest.Manifest

// NewManifest creates an empty manifest.
var NewManifest = manifest.New

// Transport is the host HTTP layer contract.
type Transport = transport.Transport

// Response is the status-tracking response wrapper handlers receive.
type Response = transport.Response
