package cmd

import (
	"fmt"

	"github.com/killallgit/waveform-comments/internal/services/auth"
	"github.com/killallgit/waveform-comments/internal/services/users"
	"github.com/spf13/cobra"
)

// tokenCmd issues bearer tokens for comment authors
var tokenCmd = &cobra.Command{
	Use:   "token <name>",
	Short: "Issue a bearer token for a user",
	Long: `Issue a bearer token for the named user, creating the user if needed.

The token is signed with the configured secret and is accepted by the
comment and track endpoints that require authentication.

Example:
  waveform-comments token alex`,
	Args: cobra.ExactArgs(1),
	RunE: runToken,
}

func init() {
	rootCmd.AddCommand(tokenCmd)
}

func runToken(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	userService := users.NewService(users.NewRepository(db.DB))
	user, err := userService.GetOrCreate(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("resolving user %q: %w", args[0], err)
	}

	tokens, err := auth.NewService(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.TokenTTL)
	if err != nil {
		return err
	}
	token, err := tokens.IssueToken(user.ID, user.Name)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
