package api

import (
	"context"
	"fmt"
	"net/http"

	"linkvault/internal/ledger"
)

// ListTodos fetches all vault entries.
func (c *Client) ListTodos(ctx context.Context) ([]ledger.Todo, error) {
	var todos []ledger.Todo
	if err := c.do(ctx, "ListTodos", http.MethodGet, "todos/", nil, &todos, true); err != nil {
		return nil, err
	}
	return todos, nil
}

// CreateTodo creates a vault entry and returns the server-assigned record.
func (c *Client) CreateTodo(ctx context.Context, todo ledger.Todo) (*ledger.Todo, error) {
	var created ledger.Todo
	if err := c.do(ctx, "CreateTodo", http.MethodPost, "todos/", todo, &created, true); err != nil {
		return nil, err
	}
	return &created, nil
}

// SetTodoCompleted flips the completion flag of one entry and returns the
// updated record.
func (c *Client) SetTodoCompleted(ctx context.Context, id int, completed bool) (*ledger.Todo, error) {
	patch := map[string]any{"completed": completed}
	var updated ledger.Todo
	path := fmt.Sprintf("todos/%d/", id)
	if err := c.do(ctx, "SetTodoCompleted", http.MethodPatch, path, patch, &updated, true); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteTodo removes a vault entry.
func (c *Client) DeleteTodo(ctx context.Context, id int) error {
	path := fmt.Sprintf("todos/%d/", id)
	return c.do(ctx, "DeleteTodo", http.MethodDelete, path, nil, nil, true)
}

// ListCategories fetches all categories.
func (c *Client) ListCategories(ctx context.Context) ([]ledger.Category, error) {
	var categories []ledger.Category
	if err := c.do(ctx, "ListCategories", http.MethodGet, "categories/", nil, &categories, true); err != nil {
		return nil, err
	}
	return categories, nil
}

// CreateCategory creates a category and returns the server-assigned record.
func (c *Client) CreateCategory(ctx context.Context, cat ledger.Category) (*ledger.Category, error) {
	var created ledger.Category
	if err := c.do(ctx, "CreateCategory", http.MethodPost, "categories/", cat, &created, true); err != nil {
		return nil, err
	}
	return &created, nil
}

// DeleteCategory removes a category. Entries that referenced it keep
// working; the server nulls the reference.
func (c *Client) DeleteCategory(ctx context.Context, id int) error {
	path := fmt.Sprintf("categories/%d/", id)
	return c.do(ctx, "DeleteCategory", http.MethodDelete, path, nil, nil, true)
}
