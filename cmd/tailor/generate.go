package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-generator/internal/assembly"
	"github.com/jonathan/resume-generator/internal/config"
	"github.com/jonathan/resume-generator/internal/db"
	"github.com/jonathan/resume-generator/internal/enhancement"
	"github.com/jonathan/resume-generator/internal/generation"
	"github.com/jonathan/resume-generator/internal/llm"
	"github.com/jonathan/resume-generator/internal/observability"
	"github.com/jonathan/resume-generator/internal/ranking"
	"github.com/jonathan/resume-generator/internal/types"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a tailored resume or cover letter",
	Long:  "Generate runs the full pipeline for one (user, job) pair: rank the user's content against the job, enhance the selected items, and assemble the document. With a database URL it reads the profile and job from PostgreSQL; otherwise --profile-file and --job-file supply them.",
	RunE:  runGenerate,
}

var (
	generateConfig      string
	generateUserID      string
	generateJobID       string
	generateDocType     string
	generateProfileFile string
	generateJobFile     string
	generateOutput      string
	generateRerank      bool
	generateMaxExp      int
	generateMaxProj     int
	generateNoSummary   bool
	generateExpOrder    []string
	generateProjOrder   []string
	generateVerifyFacts bool
	generateVerbose     bool
)

func init() {
	generateCmd.Flags().StringVarP(&generateConfig, "config", "c", "", "Path to JSON config file")
	generateCmd.Flags().StringVarP(&generateUserID, "user", "u", "", "User ID to generate for")
	generateCmd.Flags().StringVarP(&generateJobID, "job", "j", "", "Job ID to tailor against")
	generateCmd.Flags().StringVarP(&generateDocType, "type", "t", "resume", "Document type: resume or cover_letter")
	generateCmd.Flags().StringVar(&generateProfileFile, "profile-file", "", "Path to profile JSON (in-memory mode)")
	generateCmd.Flags().StringVar(&generateJobFile, "job-file", "", "Path to job JSON (in-memory mode)")
	generateCmd.Flags().StringVarP(&generateOutput, "out", "o", "", "Write the document text to this file instead of stdout")
	generateCmd.Flags().BoolVar(&generateRerank, "rerank", false, "Discard the stored ranking and rank again")
	generateCmd.Flags().IntVar(&generateMaxExp, "max-experiences", 0, "Maximum experiences to include (0 = default)")
	generateCmd.Flags().IntVar(&generateMaxProj, "max-projects", 0, "Maximum projects to include (0 = default)")
	generateCmd.Flags().BoolVar(&generateNoSummary, "no-summary", false, "Omit the professional summary section")
	generateCmd.Flags().StringSliceVar(&generateExpOrder, "experience-order", nil, "Manual experience order, overrides the ranking")
	generateCmd.Flags().StringSliceVar(&generateProjOrder, "project-order", nil, "Manual project order, overrides the ranking")
	generateCmd.Flags().BoolVar(&generateVerifyFacts, "verify-facts", false, "Flag numeric claims in enhanced text that the original does not support")
	generateCmd.Flags().BoolVarP(&generateVerbose, "verbose", "v", false, "Print progress events")

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := loadGenerateConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.UserID == "" || cfg.JobID == "" {
		return fmt.Errorf("user and job are required (flags or config file)")
	}
	if cfg.APIKey == "" {
		return fmt.Errorf("Gemini API key is required (GEMINI_API_KEY or config file)")
	}

	client, err := llm.NewGeminiClient(ctx, cfg.APIKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer func() { _ = client.Close() }()

	params := cfg.LLMParams()
	ranker := ranking.NewRanker(client, params.Ranking)
	enhancer := enhancement.NewEnhancer(client, params.Enhancement)

	profiles, rankings, documents, cleanup, err := openStores(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	opts := generation.Options{
		UserID:             cfg.UserID,
		JobID:              cfg.JobID,
		DocumentType:       types.DocumentType(cfg.DocumentType),
		Rerank:             generateRerank,
		ExperienceOverride: generateExpOrder,
		ProjectOverride:    generateProjOrder,
		VerifyFacts:        generateVerifyFacts,
		Assembly:           assemblyOptions(cfg),
	}
	if generateVerbose {
		opts.OnProgress = func(e generation.ProgressEvent) {
			fmt.Fprintf(os.Stderr, "[%3d%%] %s %s\n", e.Progress, e.Status, e.Message)
		}
	}

	printer := observability.NewPrinter(os.Stderr)
	if generateVerbose {
		if job, jobErr := profiles.GetJob(ctx, cfg.JobID); jobErr == nil {
			printer.PrintJob(job)
		}
	}

	orch := generation.NewOrchestrator(ranker, enhancer, profiles, rankings, documents)
	doc, err := orch.Run(ctx, opts)
	if err != nil {
		if doc != nil {
			return fmt.Errorf("generation %s failed at %s: %s", doc.ID, doc.Stage, doc.ErrorMessage)
		}
		return err
	}

	if doc.Status != types.StatusCompleted {
		fmt.Fprintf(os.Stderr, "Generation %s finished with status %s\n", doc.ID, doc.Status)
		return nil
	}

	if generateOutput != "" {
		if dir := filepath.Dir(generateOutput); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("failed to create output directory %s: %w", dir, err)
			}
		}
		if err := os.WriteFile(generateOutput, []byte(doc.ContentText), 0644); err != nil {
			return fmt.Errorf("failed to write output file %s: %w", generateOutput, err)
		}
		fmt.Fprintf(os.Stdout, "Wrote %s %s to %s\n", doc.DocumentType, doc.ID, generateOutput)
	} else {
		fmt.Fprintln(os.Stdout, doc.ContentText)
	}

	if generateVerbose {
		if current, rankErr := rankings.Current(ctx, cfg.UserID, cfg.JobID); rankErr == nil {
			printer.PrintRanking(current)
		}
		printer.PrintDocument(doc)
	} else if doc.ATSScore != nil {
		fmt.Fprintf(os.Stderr, "Keyword coverage: %.0f%% (%d/%d)\n",
			doc.ATSScore.KeywordCoverage*100, doc.ATSScore.KeywordsMatched, doc.ATSScore.KeywordsTotal)
	}
	return nil
}

// loadGenerateConfig merges the config file, environment and flags. Flags
// the user set win over the file; the file wins over the environment.
func loadGenerateConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := &config.Config{}
	if generateConfig != "" {
		loaded, err := config.LoadConfig(generateConfig)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	cfg.ApplyEnv()

	if generateUserID != "" {
		cfg.UserID = generateUserID
	}
	if generateJobID != "" {
		cfg.JobID = generateJobID
	}
	if cmd.Flags().Changed("type") || cfg.DocumentType == "" {
		cfg.DocumentType = generateDocType
	}
	if generateMaxExp != 0 {
		cfg.MaxExperiences = generateMaxExp
	}
	if generateMaxProj != 0 {
		cfg.MaxProjects = generateMaxProj
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func assemblyOptions(cfg *config.Config) assembly.Options {
	opts := assembly.DefaultOptions()
	opts.DocumentType = types.DocumentType(cfg.DocumentType)
	if cfg.MaxExperiences != 0 {
		opts.MaxExperiences = cfg.MaxExperiences
	}
	if cfg.MaxProjects != 0 {
		opts.MaxProjects = cfg.MaxProjects
	}
	if generateNoSummary {
		opts.IncludeSummary = false
	}
	return opts
}

// openStores returns the three orchestrator stores. With a database URL the
// stores are PostgreSQL-backed; otherwise an in-memory store is seeded from
// the profile and job files.
func openStores(ctx context.Context, cfg *config.Config) (generation.ProfileStore, generation.RankingStore, generation.DocumentStore, func(), error) {
	if cfg.DatabaseURL != "" {
		database, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, nil, nil, err
		}
		if err := database.Migrate(ctx); err != nil {
			database.Close()
			return nil, nil, nil, nil, err
		}
		return database, db.RankingStore{DB: database}, db.DocumentStore{DB: database}, database.Close, nil
	}

	if generateProfileFile == "" || generateJobFile == "" {
		return nil, nil, nil, nil, fmt.Errorf("without a database URL, --profile-file and --job-file are required")
	}
	store := generation.NewMemoryStore()
	if err := seedMemoryStore(store, generateProfileFile, generateJobFile); err != nil {
		return nil, nil, nil, nil, err
	}
	return store, store, store, func() {}, nil
}
