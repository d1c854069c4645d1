package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"linkvault/internal/api"
	"linkvault/internal/config"
	"linkvault/internal/logger"
)

var version = "1.0.0"

// cfg is set once by Execute before any command runs.
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "linkvault",
	Short: "LinkVault CLI - manage your link vault and billing ledger",
	Long: `LinkVault CLI is the command-line companion for a LinkVault server.

It manages your vault (todos and categories) and the billing module
(clients and invoices), derives ledger summaries, and exports invoices
as printable PDF documents.

Log in first with 'linkvault login'; the session is stored locally and
reused until it expires or you log out.`,
	Version: version,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("Welcome to LinkVault CLI!")
		fmt.Println("Use --help to see available commands and options.")
	},
}

func Execute(c *config.Config) {
	cfg = c
	log := logger.WithComponent("cmd")

	if err := rootCmd.Execute(); err != nil {
		log.Error().
			Err(err).
			Msg("Command execution failed")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print version information")
}

// newClient builds the adapter from the stored session. Commands that need
// authentication fail up front when no session exists.
func newClient(requireAuth bool) (*api.Client, error) {
	sess, err := api.LoadSession()
	if err != nil {
		return nil, err
	}
	if requireAuth && sess == nil {
		return nil, errors.New("not logged in; run 'linkvault login' first")
	}
	return api.New(cfg.APIBaseURL, sess), nil
}

// friendly maps adapter errors to user-facing messages. A 401 destroys the
// stored session: the user is back in the unauthenticated view.
func friendly(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, api.ErrSessionExpired) {
		if clearErr := api.ClearSession(); clearErr != nil {
			log := logger.WithComponent("cmd")
			log.Warn().Err(clearErr).Msg("Failed to clear session")
		}
		return errors.New("session expired; run 'linkvault login' again")
	}
	return err
}
