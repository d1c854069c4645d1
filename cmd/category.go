package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"linkvault/internal/ledger"
)

var categoryCmd = &cobra.Command{
	Use:     "category",
	Aliases: []string{"cat"},
	Short:   "Manage vault categories",
}

var categoryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List categories",
	RunE:  runCategoryList,
}

var categoryAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create a category",
	Args:  cobra.ExactArgs(1),
	RunE:  runCategoryAdd,
}

var categoryRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a category",
	Long: `Delete a category. Entries that referenced it are kept; the server
clears their category reference.`,
	Args: cobra.ExactArgs(1),
	RunE: runCategoryRm,
}

func init() {
	rootCmd.AddCommand(categoryCmd)
	categoryCmd.AddCommand(categoryListCmd, categoryAddCmd, categoryRmCmd)

	categoryAddCmd.Flags().String("color", "#6366f1", "Display color (hex code)")
}

func runCategoryList(cmd *cobra.Command, args []string) error {
	client, err := newClient(true)
	if err != nil {
		return err
	}
	categories, err := client.ListCategories(cmd.Context())
	if err != nil {
		return friendly(err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCOLOR")
	for _, c := range categories {
		fmt.Fprintf(w, "%d\t%s\t%s\n", c.ID, c.Name, c.Color)
	}
	return w.Flush()
}

func runCategoryAdd(cmd *cobra.Command, args []string) error {
	name := strings.TrimSpace(args[0])
	if name == "" {
		return errors.New("category name must not be empty")
	}
	color, _ := cmd.Flags().GetString("color")

	client, err := newClient(true)
	if err != nil {
		return err
	}
	created, err := client.CreateCategory(cmd.Context(), ledger.Category{Name: name, Color: color})
	if err != nil {
		return friendly(err)
	}

	fmt.Printf("Added category #%d %s\n", created.ID, created.Name)
	return nil
}

func runCategoryRm(cmd *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid category id %q", args[0])
	}

	client, err := newClient(true)
	if err != nil {
		return err
	}
	if err := client.DeleteCategory(cmd.Context(), id); err != nil {
		return friendly(err)
	}
	fmt.Printf("Deleted category #%d\n", id)
	return nil
}
