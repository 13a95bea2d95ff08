package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/EricChiu147/link-saver/internal/server"
)

var flagListen string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the action channel over local HTTP",
	Long: `Run the long-lived background process. External UI surfaces send tagged
requests (saveLink, getAllLinks, deleteLink, searchWithAI, getApiKey,
saveApiKey) as JSON POSTs and receive the matching tagged response.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		r, st, cfg, err := openRouter()
		if err != nil {
			return err
		}
		defer st.Close()

		log, err := zap.NewProduction()
		if err != nil {
			return fmt.Errorf("initializing logger: %w", err)
		}
		defer log.Sync()

		addr := cfg.GetListen()
		if flagListen != "" {
			addr = flagListen
		}

		return server.New(r, log).ListenAndServe(addr)
	},
}

func init() {
	serveCmd.Flags().StringVar(&flagListen, "listen", "", "override the configured bind address")
}
