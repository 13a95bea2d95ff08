package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/EricChiu147/link-saver/internal/router"
)

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask a question against the saved collection",
	Long: `Forward all saved links plus your question to the AI and print its
recommendation. Requires a configured API key (see "linksaver key set").`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		question := strings.Join(args, " ")

		r, st, _, err := openRouter()
		if err != nil {
			return err
		}
		defer st.Close()

		resp := r.Dispatch(cmd.Context(), router.Search{Query: question}).(router.SearchResult)
		if !resp.OK {
			return errors.New(resp.Error)
		}

		fmt.Println(resp.Answer)
		return nil
	},
}
