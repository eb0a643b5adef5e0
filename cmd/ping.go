package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"onedocs/internal/model"
	"onedocs/internal/service"
)

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Check that the API key, base URL and model work",
	Args:  cobra.NoArgs,
	RunE:  runPing,
}

func init() {
	rootCmd.AddCommand(pingCmd)
}

func runPing(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	if err := cfg.AI.Validate(); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	svc := service.NewAnalyzeService(&cfg.AI)
	if err := svc.TestConnection(context.Background(), &model.TestConnectionRequest{}); err != nil {
		return err
	}

	printSuccess("connection ok (provider=%s)", cfg.AI.Provider)
	return nil
}
