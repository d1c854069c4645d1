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

var todoCmd = &cobra.Command{
	Use:   "todo",
	Short: "Manage vault entries",
}

var todoListCmd = &cobra.Command{
	Use:   "list",
	Short: "List vault entries",
	Example: `  linkvault todo list
  linkvault todo list --search golang`,
	RunE: runTodoList,
}

var todoAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a vault entry",
	Args:  cobra.ExactArgs(1),
	RunE:  runTodoAdd,
}

var todoToggleCmd = &cobra.Command{
	Use:   "toggle <id>",
	Short: "Flip the completion state of an entry",
	Args:  cobra.ExactArgs(1),
	RunE:  runTodoToggle,
}

var todoRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a vault entry",
	Args:  cobra.ExactArgs(1),
	RunE:  runTodoRm,
}

func init() {
	rootCmd.AddCommand(todoCmd)
	todoCmd.AddCommand(todoListCmd, todoAddCmd, todoToggleCmd, todoRmCmd)

	todoListCmd.Flags().String("search", "", "Filter by title or description substring")
	todoAddCmd.Flags().StringP("description", "d", "", "Description or URL")
	todoAddCmd.Flags().IntP("category", "c", 0, "Category id")
}

func runTodoList(cmd *cobra.Command, args []string) error {
	search, _ := cmd.Flags().GetString("search")

	client, err := newClient(true)
	if err != nil {
		return err
	}
	todos, err := client.ListTodos(cmd.Context())
	if err != nil {
		return friendly(err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDONE\tTITLE\tDESCRIPTION")
	for _, t := range todos {
		if search != "" && !matchesSearch(t, search) {
			continue
		}
		done := " "
		if t.Completed {
			done = "x"
		}
		fmt.Fprintf(w, "%d\t[%s]\t%s\t%s\n", t.ID, done, t.Title, t.Description)
	}
	return w.Flush()
}

// matchesSearch mirrors the web client's filter: case-insensitive substring
// over title and description.
func matchesSearch(t ledger.Todo, term string) bool {
	term = strings.ToLower(term)
	return strings.Contains(strings.ToLower(t.Title), term) ||
		strings.Contains(strings.ToLower(t.Description), term)
}

func runTodoAdd(cmd *cobra.Command, args []string) error {
	title := strings.TrimSpace(args[0])
	if title == "" {
		return errors.New("title must not be empty")
	}
	description, _ := cmd.Flags().GetString("description")
	categoryID, _ := cmd.Flags().GetInt("category")

	todo := ledger.Todo{Title: title, Description: description}
	if categoryID != 0 {
		todo.CategoryID = &categoryID
	}

	client, err := newClient(true)
	if err != nil {
		return err
	}
	created, err := client.CreateTodo(cmd.Context(), todo)
	if err != nil {
		return friendly(err)
	}

	fmt.Printf("Added #%d %s\n", created.ID, created.Title)
	return nil
}

func runTodoToggle(cmd *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid todo id %q", args[0])
	}

	client, err := newClient(true)
	if err != nil {
		return err
	}
	todos, err := client.ListTodos(cmd.Context())
	if err != nil {
		return friendly(err)
	}

	for _, t := range todos {
		if t.ID != id {
			continue
		}
		updated, err := client.SetTodoCompleted(cmd.Context(), id, !t.Completed)
		if err != nil {
			return friendly(err)
		}
		state := "pending"
		if updated.Completed {
			state = "done"
		}
		fmt.Printf("#%d %s is now %s\n", updated.ID, updated.Title, state)
		return nil
	}
	return fmt.Errorf("no todo with id %d", id)
}

func runTodoRm(cmd *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid todo id %q", args[0])
	}

	client, err := newClient(true)
	if err != nil {
		return err
	}
	if err := client.DeleteTodo(cmd.Context(), id); err != nil {
		return friendly(err)
	}
	fmt.Printf("Deleted #%d\n", id)
	return nil
}
