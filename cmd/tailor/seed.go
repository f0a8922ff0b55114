package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-generator/internal/config"
	"github.com/jonathan/resume-generator/internal/db"
	"github.com/jonathan/resume-generator/internal/generation"
	"github.com/jonathan/resume-generator/internal/types"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load a profile and job into the database",
	Long:  "Seed upserts a profile JSON and/or a job JSON into PostgreSQL so generate can run against them.",
	RunE:  runSeed,
}

var (
	seedProfileFile string
	seedJobFile     string
)

func init() {
	seedCmd.Flags().StringVar(&seedProfileFile, "profile-file", "", "Path to profile JSON file")
	seedCmd.Flags().StringVar(&seedJobFile, "job-file", "", "Path to job JSON file")

	rootCmd.AddCommand(seedCmd)
}

func runSeed(_ *cobra.Command, _ []string) error {
	if seedProfileFile == "" && seedJobFile == "" {
		return fmt.Errorf("at least one of --profile-file and --job-file is required")
	}

	ctx := context.Background()
	cfg := &config.Config{}
	cfg.ApplyEnv()
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required for seeding")
	}

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer database.Close()
	if err := database.Migrate(ctx); err != nil {
		return err
	}

	if seedProfileFile != "" {
		profile, err := loadProfileFile(seedProfileFile)
		if err != nil {
			return err
		}
		if err := database.SaveProfile(ctx, profile); err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "Saved profile %s (%d experiences, %d projects)\n",
			profile.UserID, len(profile.Experiences), len(profile.Projects))
	}
	if seedJobFile != "" {
		job, err := loadJobFile(seedJobFile)
		if err != nil {
			return err
		}
		if err := database.SaveJob(ctx, job); err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "Saved job %s (%s at %s)\n", job.ID, job.Title, job.Company)
	}
	return nil
}

func loadProfileFile(path string) (*types.Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile file %s: %w", path, err)
	}
	var profile types.Profile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("failed to parse profile JSON: %w", err)
	}
	if profile.UserID == "" {
		return nil, fmt.Errorf("profile file %s is missing user_id", path)
	}
	return &profile, nil
}

func loadJobFile(path string) (*types.Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read job file %s: %w", path, err)
	}
	var job types.Job
	if err := json.Unmarshal(data, &job); err != nil {
		return nil, fmt.Errorf("failed to parse job JSON: %w", err)
	}
	if job.ID == "" {
		return nil, fmt.Errorf("job file %s is missing id", path)
	}
	return &job, nil
}

func seedMemoryStore(store *generation.MemoryStore, profilePath, jobPath string) error {
	profile, err := loadProfileFile(profilePath)
	if err != nil {
		return err
	}
	job, err := loadJobFile(jobPath)
	if err != nil {
		return err
	}
	store.PutProfile(profile)
	store.PutJob(job)
	return nil
}
