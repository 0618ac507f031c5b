// Command chassis-demo serves the example application and prints its
// registration report.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "chassis-demo",
		Short: "Demo server for the chassis controller engine",
		Long: `chassis-demo serves the example application built on chassis:
declarative controllers registered over chi, with a catch-all,
an outside-framework exemption, and a status-gated error chain.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		serveCmd(),
		routesCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("chassis-demo %s (%s)\n", version, commit)
		},
	}
}
