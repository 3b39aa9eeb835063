package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/AdamKaabyia/weekly-report-ai/internal/app"
	"github.com/AdamKaabyia/weekly-report-ai/internal/config"
	"github.com/AdamKaabyia/weekly-report-ai/internal/github"
	"github.com/AdamKaabyia/weekly-report-ai/internal/llm"
	"github.com/AdamKaabyia/weekly-report-ai/internal/logger"
)

func main() {
	var (
		author  string
		out     string
		envFile string
	)

	root := &cobra.Command{
		Use:   "weekly-report-ai",
		Short: "Generate a weekly Markdown report of your pull requests",
		Long: "Fetches the pull requests you created during the previous Monday-Sunday week,\n" +
			"resolves their status, summarizes each one with an LLM endpoint, and writes a\n" +
			"Markdown dashboard.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.New(envFile)
			if err != nil {
				return err
			}
			if author != "" {
				cfg.GitHub.Author = author
			}
			if out != "" {
				cfg.Output.Path = out
			}

			log, err := logger.New(cfg.Logging.Level)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			ctx := cmd.Context()
			src := github.New(ctx, cfg.GitHub, log)
			sum := llm.New(cfg.LLM, log)

			opts := app.Options{
				Author:     cfg.GitHub.Author,
				OutputPath: cfg.Output.Path,
			}
			return app.Run(ctx, opts, src, sum, log)
		},
	}

	root.Flags().StringVar(&author, "author", "", "GitHub login to report on (default: the token's user)")
	root.Flags().StringVar(&out, "out", "", "output Markdown path (default from config)")
	root.Flags().StringVar(&envFile, "env-file", ".env", "optional .env file with credentials")

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
