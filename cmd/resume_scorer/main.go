// Package main provides the entry point for the resume scorer CLI and HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "resume_scorer",
		Short: "Resume ATS compatibility scorer",
		Long: "Resume scorer rates plain-text resumes for applicant tracking system compatibility: " +
			"keyword coverage, skills coverage and section structure, with improvement recommendations.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newAnalyzeCmd(), newLexiconCmd(), newServeCmd(), newWorkerCmd())
	return root
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
