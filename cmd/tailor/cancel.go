package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-generator/internal/db"
	"github.com/jonathan/resume-generator/internal/generation"
)

var cancelCmd = &cobra.Command{
	Use:   "cancel <document-id>",
	Short: "Cancel an in-flight generation",
	Long:  "Cancel marks a pending, ranking or enhancing generation as cancelled. Generations that have reached assembly can no longer be cancelled.",
	Args:  cobra.ExactArgs(1),
	RunE:  runCancel,
}

func init() {
	rootCmd.AddCommand(cancelCmd)
}

func runCancel(_ *cobra.Command, args []string) error {
	ctx := context.Background()
	database, err := openDatabase(ctx)
	if err != nil {
		return err
	}
	defer database.Close()

	orch := generation.NewOrchestrator(nil, nil, database,
		db.RankingStore{DB: database}, db.DocumentStore{DB: database})
	if err := orch.Cancel(ctx, args[0]); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Cancelled generation %s\n", args[0])
	return nil
}
