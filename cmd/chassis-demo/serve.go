package main

import (
	"html/template"
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/chassis-go/chassis"
	"github.com/chassis-go/chassis/example"
	"github.com/chassis-go/chassis/pkg/metrics"
	"github.com/chassis-go/chassis/pkg/render"
	"github.com/chassis-go/chassis/pkg/transport"
)

// layoutTemplate is the single base template every handler renders against.
const layoutTemplate = `<!DOCTYPE html>
<html>
<head>
  <title>{{.title}}</title>
  {{range .extraStyles}}<link rel="stylesheet" href="{{.}}">{{end}}
</head>
<body>
  <main data-page="{{.page}}">{{.title}}</main>
  {{range .extraScripts}}<script src="{{.}}"></script>{{end}}
</body>
</html>
`

// templateRenderer is the demo's template-engine collaborator.
type templateRenderer struct {
	tpl *template.Template
}

func newTemplateRenderer() (*templateRenderer, error) {
	tpl, err := template.New("layout").Parse(layoutTemplate)
	if err != nil {
		return nil, err
	}
	return &templateRenderer{tpl: tpl}, nil
}

func (tr *templateRenderer) Render(w io.Writer, name string, params map[string]any) error {
	return tr.tpl.ExecuteTemplate(w, name, params)
}

func serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the example application",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Optional .env for local development.
			_ = godotenv.Load()
			if addr == "" {
				addr = os.Getenv("CHASSIS_ADDR")
			}
			if addr == "" {
				addr = ":8080"
			}

			logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

			renderer, err := newTemplateRenderer()
			if err != nil {
				return err
			}

			router := chi.NewRouter()
			router.Use(chimw.RequestID)
			router.Use(chimw.Logger)
			router.Use(chimw.Recoverer)
			router.Handle("/metrics", promhttp.Handler())

			t := transport.NewChi(transport.ChiConfig{
				Router:   router,
				Renderer: renderer,
				Logger:   logger,
			})

			engine := chassis.New(chassis.Config{
				Logger: logger,
				Render: render.Config{
					Template: "layout",
					Title:    "Chassis Demo",
				},
				Metrics: metrics.New(),
			})

			// The OAuth collaborator owns its callback path; the catch-all
			// must not claim it.
			engine.OutsideRoutes().Add("/oauth/callback")

			report := engine.Register(t, example.Manifest().Classify(logger))
			for _, line := range report.Lines() {
				logger.Info("registered", "route", line)
			}

			logger.Info("listening", "addr", addr)
			return http.ListenAndServe(addr, t)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default $CHASSIS_ADDR or :8080)")
	return cmd
}
