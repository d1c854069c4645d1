package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"linkvault/internal/api"
	"linkvault/internal/logger"
)

const authTimeout = 30 * time.Second

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate against the LinkVault server",
	Long: `Exchange a username and password for an API token pair.

The session is stored under your user config directory and reused by all
other commands until it expires or you run 'linkvault logout'.`,
	Example: `  linkvault login -u alice -p secret`,
	RunE:    runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Discard the stored session",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := api.ClearSession(); err != nil {
			return err
		}
		fmt.Println("Logged out.")
		return nil
	},
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a new account and log in",
	RunE:  runRegister,
}

func init() {
	rootCmd.AddCommand(loginCmd, logoutCmd, registerCmd)

	loginCmd.Flags().StringP("username", "u", "", "Account username")
	loginCmd.Flags().StringP("password", "p", "", "Account password")
	loginCmd.MarkFlagRequired("username")
	loginCmd.MarkFlagRequired("password")

	registerCmd.Flags().StringP("username", "u", "", "Account username")
	registerCmd.Flags().StringP("password", "p", "", "Account password")
	registerCmd.Flags().StringP("email", "e", "", "Email address (optional)")
	registerCmd.MarkFlagRequired("username")
	registerCmd.MarkFlagRequired("password")
}

func runLogin(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("login")

	username, _ := cmd.Flags().GetString("username")
	password, _ := cmd.Flags().GetString("password")

	ctx, cancel := context.WithTimeout(cmd.Context(), authTimeout)
	defer cancel()

	client, err := newClient(false)
	if err != nil {
		return err
	}
	sess, err := client.Login(ctx, username, password)
	if err != nil {
		return err
	}
	if err := sess.Save(); err != nil {
		return err
	}

	log.Info().Str("username", username).Msg("Session stored")
	fmt.Printf("Logged in as %s.\n", username)
	return nil
}

func runRegister(cmd *cobra.Command, args []string) error {
	username, _ := cmd.Flags().GetString("username")
	password, _ := cmd.Flags().GetString("password")
	email, _ := cmd.Flags().GetString("email")

	ctx, cancel := context.WithTimeout(cmd.Context(), authTimeout)
	defer cancel()

	client, err := newClient(false)
	if err != nil {
		return err
	}
	if err := client.Register(ctx, username, password, email); err != nil {
		return fmt.Errorf("registration failed (the username may already exist): %w", err)
	}

	// Log the fresh account in right away, like the web client does.
	sess, err := client.Login(ctx, username, password)
	if err != nil {
		return err
	}
	if err := sess.Save(); err != nil {
		return err
	}

	fmt.Printf("Account %s created, you are logged in.\n", username)
	return nil
}
