package cmd

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/EricChiu147/link-saver/internal/capture"
	"github.com/EricChiu147/link-saver/internal/router"
	"github.com/EricChiu147/link-saver/internal/tui"
)

var saveCmd = &cobra.Command{
	Use:   "save <url>",
	Short: "Fetch a page, summarize it, and save it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, st, _, err := openRouter()
		if err != nil {
			return err
		}
		defer st.Close()

		page, err := capture.Fetch(cmd.Context(), args[0])
		if errors.Is(err, capture.ErrInternalPage) {
			return errors.New("cannot save internal browser pages")
		}
		if err != nil {
			return fmt.Errorf("capturing page: %w", err)
		}

		resp := r.Dispatch(cmd.Context(), router.SaveLink{
			URL:     page.URL,
			Title:   page.Title,
			Content: page.Text,
		})
		saved := resp.(router.SaveResult)
		if !saved.OK {
			return errors.New(saved.Message)
		}

		fmt.Printf("Saved #%d: %s\n", saved.ID, page.Title)
		fmt.Printf("  %s\n", saved.Summary)
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved links, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		r, st, _, err := openRouter()
		if err != nil {
			return err
		}
		defer st.Close()

		resp := r.Dispatch(cmd.Context(), router.ListLinks{}).(router.ListResult)
		if !resp.OK {
			return errors.New(resp.Error)
		}

		if len(resp.Links) == 0 {
			fmt.Println("No saved links yet.")
			return nil
		}
		for _, l := range resp.Links {
			fmt.Printf("#%d  %s\n    %s\n", l.ID, l.Title, l.URL)
			if l.Summary != "" {
				fmt.Printf("    %s\n", l.Summary)
			}
		}
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a saved link by id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid id %q", args[0])
		}

		r, st, _, err := openRouter()
		if err != nil {
			return err
		}
		defer st.Close()

		resp := r.Dispatch(cmd.Context(), router.DeleteLink{ID: id}).(router.StatusResult)
		if !resp.OK {
			return errors.New(resp.Error)
		}
		fmt.Printf("Deleted #%d.\n", id)
		return nil
	},
}

func runTUI(cmd *cobra.Command, args []string) error {
	r, st, _, err := openRouter()
	if err != nil {
		return err
	}
	defer st.Close()

	return tui.Run(r)
}
