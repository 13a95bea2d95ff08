package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/EricChiu147/link-saver/internal/update"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("linksaver %s (commit: %s, built: %s)\n", version, commit, date)

		if res := update.Check(cmd.Context(), version); res != nil {
			fmt.Printf("A newer version is available: %s\n", res.LatestVersion)
		}
	},
}
