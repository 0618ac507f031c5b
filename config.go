package chassis

import (
	"log/slog"

	"github.com/chassis-go/chassis/pkg/metrics"
	"github.com/chassis-go/chassis/pkg/render"
)

// Config configures the registration engine.
type Config struct {
	// Logger defaults to slog.Default().
	Logger *slog.Logger

	// Render configures the response-composition wrapper applied to every
	// registered handler.
	Render render.Config

	// Metrics is the optional Prometheus collector. Nil disables
	// instrumentation.
	Metrics *metrics.Metrics
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() Config {
	return Config{
		Render: render.DefaultConfig(),
	}
}
