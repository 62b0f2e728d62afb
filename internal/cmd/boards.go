package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/keefcreative/dwb-mcp-server-trello/internal/core/engine"
	"github.com/keefcreative/dwb-mcp-server-trello/internal/output"
	"github.com/keefcreative/dwb-mcp-server-trello/internal/trello"
)

var boardsFormat string

var boardsCmd = &cobra.Command{
	Use:   "boards",
	Short: "List the boards visible to the configured credentials",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		format, err := output.ParseFormat(boardsFormat)
		if err != nil {
			return err
		}

		limiter := engine.NewRateLimiter(
			engine.WindowConfig{Capacity: cfg.RateLimit.KeyCapacity, Interval: cfg.RateLimit.KeyInterval},
			engine.WindowConfig{Capacity: cfg.RateLimit.TokenCapacity, Interval: cfg.RateLimit.TokenInterval},
		)
		executor := engine.NewExecutor(limiter)
		executor.RetryDelay = cfg.Retry.Delay
		executor.MaxAttempts = cfg.Retry.MaxAttempts

		client := trello.NewClient(cfg.Trello.APIKey, cfg.Trello.Token, executor)
		if cfg.Trello.BaseURL != "" {
			client.BaseURL = cfg.Trello.BaseURL
		}
		client.Timeout = cfg.Trello.Timeout

		boards, err := client.GetMyBoards(cmd.Context())
		if err != nil {
			return err
		}

		rendered, err := output.NewFormatter(format).FormatBoards(boards)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), rendered)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(boardsCmd)
	boardsCmd.Flags().StringVarP(&boardsFormat, "format", "f", "table", "output format (table, json, markdown)")
}
