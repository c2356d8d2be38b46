package main

import (
	"errors"
	"fmt"

	"matka_backend/internal/config"
	"matka_backend/internal/config/env"
	"matka_backend/pkg/token"

	"github.com/spf13/cobra"
)

func newTokenCmd() *cobra.Command {
	var operatorID int

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an operator access token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if operatorID <= 0 {
				return errors.New("operator id must be positive")
			}
			_ = config.Load(".env")

			cfg, err := env.NewJWTConfig()
			if err != nil {
				return err
			}

			tok, err := token.GenerateAccessToken(operatorID, cfg.AccessTokenSecretKey(), cfg.AccessTokenDuration())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}

	cmd.Flags().IntVar(&operatorID, "operator", 0, "operator id")
	_ = cmd.MarkFlagRequired("operator")
	return cmd
}
