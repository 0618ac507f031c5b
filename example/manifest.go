package example

import "github.com/chassis-go/chassis/pkg/manifest"

// Manifest declares the demo application's controllers. UsersController is
// listed directly and referenced as AdminController's child; the engine's
// partition recognizes the shared instance and registers its routes only
// through the parent.
func Manifest() *manifest.Manifest {
	users := &UsersController{}

	return manifest.New().
		Add("example/controllers.go", func() any { return &HomeController{} }).
		Add("example/controllers.go", func() any { return users }).
		Add("example/controllers.go", func() any { return NewAdminController(users) }).
		Add("example/controllers.go", func() any { return &NotFoundController{} }).
		Add("example/controllers.go", func() any { return &ServerErrorController{} })
}
