package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/yshiba/mstodo2md/internal/exitcode"
	"github.com/yshiba/mstodo2md/internal/exporter"
	"github.com/yshiba/mstodo2md/internal/graph"
	"github.com/yshiba/mstodo2md/internal/logger"
	"github.com/yshiba/mstodo2md/internal/migrate"
)

var (
	outputFolder  string
	skipCompleted bool
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Export every task of every list to the output folder",
	Run: func(cmd *cobra.Command, args []string) {
		os.Exit(runMigrate())
	},
}

func runMigrate() int {
	requireToken()

	if outputFolder == "" {
		outputFolder = os.Getenv("OUTPUT_DIR")
		if outputFolder == "" {
			outputFolder = "out"
		}
	}

	client := graph.New(sourceBase, sourceToken)
	m := migrate.New(client, exporter.New(outputFolder), migrate.Options{
		SkipCompleted: skipCompleted,
	})

	summary, err := m.Run(context.Background())
	if err != nil {
		logger.Error("Failed to fetch source lists", err)
		return exitcode.ListFetchError
	}

	logger.Info("Migration completed", map[string]interface{}{
		"lists":          summary.Lists,
		"total_migrated": summary.Migrated,
		"output":         outputFolder,
	})
	return exitcode.Success
}

func init() {
	migrateCmd.Flags().StringVar(&outputFolder, "output", "", "output folder for exported tasks (default \"out\", or OUTPUT_DIR)")
	migrateCmd.Flags().BoolVar(&skipCompleted, "skip-completed", false, "skip tasks whose status is completed")
	rootCmd.AddCommand(migrateCmd)
}
