package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-generator/internal/config"
	"github.com/jonathan/resume-generator/internal/db"
	"github.com/jonathan/resume-generator/internal/types"
)

var documentsCmd = &cobra.Command{
	Use:   "documents",
	Short: "List generated documents",
	RunE:  runDocuments,
}

var (
	documentsUser   string
	documentsJob    string
	documentsStatus string
	documentsLimit  int
)

func init() {
	documentsCmd.Flags().StringVarP(&documentsUser, "user", "u", "", "Filter by user ID")
	documentsCmd.Flags().StringVarP(&documentsJob, "job", "j", "", "Filter by job ID")
	documentsCmd.Flags().StringVarP(&documentsStatus, "status", "s", "", "Filter by status")
	documentsCmd.Flags().IntVarP(&documentsLimit, "limit", "n", 20, "Maximum rows to list")

	rootCmd.AddCommand(documentsCmd)
}

func runDocuments(_ *cobra.Command, _ []string) error {
	ctx := context.Background()
	database, err := openDatabase(ctx)
	if err != nil {
		return err
	}
	defer database.Close()

	docs, err := database.ListDocuments(ctx, db.DocumentFilters{
		UserID: documentsUser,
		JobID:  documentsJob,
		Status: types.DocumentStatus(documentsStatus),
		Limit:  documentsLimit,
	})
	if err != nil {
		return err
	}
	if len(docs) == 0 {
		fmt.Fprintln(os.Stdout, "No documents found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTYPE\tSTATUS\tPROGRESS\tUSER\tJOB\tCREATED")
	for _, d := range docs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d%%\t%s\t%s\t%s\n",
			d.ID, d.DocumentType, d.Status, d.Progress, d.UserID, d.JobID,
			d.CreatedAt.Format("2006-01-02 15:04"))
	}
	return w.Flush()
}

func openDatabase(ctx context.Context) (*db.DB, error) {
	cfg := &config.Config{}
	cfg.ApplyEnv()
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(ctx); err != nil {
		database.Close()
		return nil, err
	}
	return database, nil
}
