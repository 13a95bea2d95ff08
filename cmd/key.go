package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/EricChiu147/link-saver/internal/ai"
	"github.com/EricChiu147/link-saver/internal/router"
)

var keyCmd = &cobra.Command{
	Use:   "key",
	Short: "Manage the OpenAI API key",
}

var keyGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show whether an API key is configured",
	RunE: func(cmd *cobra.Command, args []string) error {
		r, st, _, err := openRouter()
		if err != nil {
			return err
		}
		defer st.Close()

		resp := r.Dispatch(cmd.Context(), router.GetAPIKey{}).(router.KeyResult)
		if !resp.OK {
			return errors.New(resp.Error)
		}
		if resp.Key == "" {
			fmt.Println("No API key configured.")
			return nil
		}
		fmt.Printf("API key configured (%s).\n", maskKey(resp.Key))
		return nil
	},
}

var keySetCmd = &cobra.Command{
	Use:   "set <key>",
	Short: "Store the API key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, st, _, err := openRouter()
		if err != nil {
			return err
		}
		defer st.Close()

		resp := r.Dispatch(cmd.Context(), router.SetAPIKey{Key: args[0]}).(router.StatusResult)
		if !resp.OK {
			return errors.New(resp.Error)
		}
		fmt.Println("API key saved.")
		return nil
	},
}

var keyTestCmd = &cobra.Command{
	Use:   "test",
	Short: "Verify the stored API key against the API",
	RunE: func(cmd *cobra.Command, args []string) error {
		r, st, cfg, err := openRouter()
		if err != nil {
			return err
		}
		defer st.Close()

		resp := r.Dispatch(cmd.Context(), router.GetAPIKey{}).(router.KeyResult)
		if !resp.OK {
			return errors.New(resp.Error)
		}

		client := ai.New(cfg.GetModel(), cfg.APIBaseURL)
		if err := client.CheckKey(cmd.Context(), resp.Key); err != nil {
			return err
		}
		fmt.Println("Connection successful. API key is valid.")
		return nil
	},
}

func init() {
	keyCmd.AddCommand(keyGetCmd)
	keyCmd.AddCommand(keySetCmd)
	keyCmd.AddCommand(keyTestCmd)
}

// maskKey keeps just enough of the key to identify it.
func maskKey(key string) string {
	if len(key) <= 7 {
		return "sk-..."
	}
	return key[:7] + "..."
}
