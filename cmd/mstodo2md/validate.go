package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/yshiba/mstodo2md/internal/exitcode"
	"github.com/yshiba/mstodo2md/internal/graph"
	"github.com/yshiba/mstodo2md/internal/logger"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check that the source token is accepted, without exporting",
	Run: func(cmd *cobra.Command, args []string) {
		os.Exit(runValidate())
	},
}

func runValidate() int {
	requireToken()

	client := graph.New(sourceBase, sourceToken)
	if err := client.Validate(context.Background()); err != nil {
		logger.Error("Credential validation failed", err)
		return exitcode.CredentialError
	}

	logger.Info("Credential accepted")
	return exitcode.Success
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
