package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"linkvault/internal/ledger"
)

var clientCmd = &cobra.Command{
	Use:   "client",
	Short: "Manage billing clients",
}

var clientListCmd = &cobra.Command{
	Use:   "list",
	Short: "List billing clients",
	RunE:  runClientList,
}

var clientAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create a billing client",
	Example: `  linkvault client add "Acme SARL" --email billing@acme.test --address "2 avenue des Champs, Paris"`,
	Args: cobra.ExactArgs(1),
	RunE: runClientAdd,
}

func init() {
	rootCmd.AddCommand(clientCmd)
	clientCmd.AddCommand(clientListCmd, clientAddCmd)

	clientAddCmd.Flags().String("email", "", "Contact email")
	clientAddCmd.Flags().String("address", "", "Postal address")
}

func runClientList(cmd *cobra.Command, args []string) error {
	client, err := newClient(true)
	if err != nil {
		return err
	}
	clients, err := client.ListClients(cmd.Context())
	if err != nil {
		return friendly(err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tEMAIL\tADDRESS")
	for _, c := range clients {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", c.ID, c.Name, c.Email, c.Address)
	}
	return w.Flush()
}

func runClientAdd(cmd *cobra.Command, args []string) error {
	name := strings.TrimSpace(args[0])
	if name == "" {
		return errors.New("client name must not be empty")
	}
	email, _ := cmd.Flags().GetString("email")
	address, _ := cmd.Flags().GetString("address")

	client, err := newClient(true)
	if err != nil {
		return err
	}
	created, err := client.CreateClient(cmd.Context(), ledger.Client{
		Name:    name,
		Email:   email,
		Address: address,
	})
	if err != nil {
		return friendly(err)
	}

	fmt.Printf("Added client #%d %s\n", created.ID, created.Name)
	return nil
}
