package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/EricChiu147/link-saver/internal/ai"
	"github.com/EricChiu147/link-saver/internal/config"
	"github.com/EricChiu147/link-saver/internal/router"
	"github.com/EricChiu147/link-saver/internal/store"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var flagConfig string

var rootCmd = &cobra.Command{
	Use:   "linksaver",
	Short: "Save links with AI summaries and search them with questions",
	Long: `linksaver bookmarks web pages, generates a short AI summary for each,
and answers free-text questions against the saved collection.`,
	RunE: runTUI,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to config file")

	rootCmd.AddCommand(saveCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(keyCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(versionCmd)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
}

// openRouter builds the router with its store and AI client. The caller
// must Close the returned store.
func openRouter() (*router.Router, *store.Store, *config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("loading config: %w", err)
	}

	st, err := store.Open(config.DBPath())
	if err != nil {
		return nil, nil, nil, fmt.Errorf("opening store: %w", err)
	}

	client := ai.New(cfg.GetModel(), cfg.APIBaseURL)
	return router.New(st, client), st, cfg, nil
}
