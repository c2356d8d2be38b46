package main

import (
	"matka_backend/internal/app"

	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run HTTP API",
		RunE: func(_ *cobra.Command, _ []string) error {
			return app.NewApp(configPath).Run()
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "config.yaml", "game config (rates, panna lists)")
	return cmd
}
