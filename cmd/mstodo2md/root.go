package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/yshiba/mstodo2md/internal/exitcode"
	"github.com/yshiba/mstodo2md/internal/logger"
)

var (
	// Global flags
	sourceToken string
	sourceBase  string
)

var rootCmd = &cobra.Command{
	Use:   "mstodo2md",
	Short: "Export Microsoft To Do tasks to markdown files",
	Long: `mstodo2md reads every list of a Microsoft To Do account through the
Graph API and writes one markdown file per task: a metadata header, the
checklist as a table, and the task body.

The source credential is an opaque bearer token, passed with --source-token
or the MSTODO_SOURCE_TOKEN environment variable (a .env file is honored).`,
	Version:       Version,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// A missing .env file is fine; flags and the environment cover it.
		_ = godotenv.Load()

		logLevel := os.Getenv("LOG_LEVEL")
		if logLevel == "" {
			logLevel = "info"
		}
		if err := logger.Init(logLevel); err != nil {
			fmt.Fprintf(os.Stderr, "Error initializing logger: %v\n", err)
			os.Exit(exitcode.UsageError)
		}

		if sourceToken == "" {
			sourceToken = os.Getenv("MSTODO_SOURCE_TOKEN")
		}
		if sourceBase == "" {
			sourceBase = os.Getenv("MSTODO_SOURCE_BASE")
		}
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitcode.UsageError)
	}
}

// requireToken stops the command when no source token was supplied.
func requireToken() {
	if sourceToken == "" {
		fmt.Fprintln(os.Stderr, "Error: source token is required (--source-token or MSTODO_SOURCE_TOKEN)")
		os.Exit(exitcode.UsageError)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&sourceToken, "source-token", "", "source account bearer token")
	rootCmd.PersistentFlags().StringVar(&sourceBase, "source-base", "", "source lists base URL (defaults to the Graph To Do lists endpoint)")
}
