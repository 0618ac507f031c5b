package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/chassis-go/chassis"
	"github.com/chassis-go/chassis/example"
	"github.com/chassis-go/chassis/pkg/transport"
)

func routesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "Print the example application's registration report",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := slog.New(slog.NewTextHandler(io.Discard, nil))

			engine := chassis.New(chassis.Config{Logger: logger})
			t := transport.NewChi(transport.ChiConfig{Logger: logger})

			report := engine.Register(t, example.Manifest().Classify(logger))
			fmt.Println(report.String())
			return nil
		},
	}
}
