package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/EricChiu147/link-saver/internal/feed"
)

var flagImportLimit int

var importCmd = &cobra.Command{
	Use:   "import <feed-url>",
	Short: "Import links from an RSS/Atom feed",
	Long: `Save every entry of a feed through the normal save flow. Entries whose
URL is already in the collection are skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, st, _, err := openRouter()
		if err != nil {
			return err
		}
		defer st.Close()

		res, err := feed.Import(cmd.Context(), r, args[0], flagImportLimit)
		if err != nil {
			return err
		}

		fmt.Printf("Imported %q: %d saved, %d skipped.\n", res.FeedTitle, res.Saved, res.Skipped)
		for _, f := range res.Failed {
			fmt.Printf("  [warn] %s\n", f)
		}
		return nil
	},
}

func init() {
	importCmd.Flags().IntVar(&flagImportLimit, "limit", 0, "import at most N entries (0 = all)")
}
