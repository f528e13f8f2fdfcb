package cmd

import (
	"fmt"

	"github.com/SscSPs/ledger_engine/internal/utils"
	"github.com/spf13/cobra"
)

var tokenUserID, tokenWorkplaceID string

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue a signed bearer token for local development",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.IsProduction {
			return fmt.Errorf("token issuing is disabled in production")
		}
		token, err := utils.GenerateJWT(tokenUserID, tokenWorkplaceID, cfg.JWTSecret, cfg.JWTExpiryDuration, cfg.JWTIssuer)
		if err != nil {
			return fmt.Errorf("failed to generate token: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	tokenCmd.Flags().StringVar(&tokenUserID, "user", "", "user id (token subject)")
	tokenCmd.Flags().StringVar(&tokenWorkplaceID, "workplace", "", "workplace id")
	_ = tokenCmd.MarkFlagRequired("user")
	_ = tokenCmd.MarkFlagRequired("workplace")
}
