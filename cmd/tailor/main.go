// Package main provides the tailor CLI for generating job-tailored resumes
// and cover letters.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tailor",
	Short: "LLM-assisted resume and cover letter generator",
	Long:  "Tailor ranks a user's experiences, projects and skills against a job posting, rewrites the selected content for relevance, and assembles a complete resume or cover letter.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
