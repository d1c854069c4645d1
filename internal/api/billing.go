package api

import (
	"context"
	"fmt"
	"net/http"

	"golang.org/x/sync/errgroup"

	"linkvault/internal/ledger"
)

// ListClients fetches all billing clients.
func (c *Client) ListClients(ctx context.Context) ([]ledger.Client, error) {
	var clients []ledger.Client
	if err := c.do(ctx, "ListClients", http.MethodGet, "billing/clients/", nil, &clients, true); err != nil {
		return nil, err
	}
	return clients, nil
}

// CreateClient creates a billing client and returns the server-assigned
// record.
func (c *Client) CreateClient(ctx context.Context, client ledger.Client) (*ledger.Client, error) {
	var created ledger.Client
	if err := c.do(ctx, "CreateClient", http.MethodPost, "billing/clients/", client, &created, true); err != nil {
		return nil, err
	}
	return &created, nil
}

// ListInvoices fetches all invoices.
func (c *Client) ListInvoices(ctx context.Context) ([]ledger.Invoice, error) {
	var invoices []ledger.Invoice
	if err := c.do(ctx, "ListInvoices", http.MethodGet, "billing/invoices/", nil, &invoices, true); err != nil {
		return nil, err
	}
	return invoices, nil
}

// CreateInvoice submits a new invoice. The invoice is validated locally
// before any remote call is made; the returned record carries the
// server-assigned id and timestamps.
func (c *Client) CreateInvoice(ctx context.Context, inv ledger.Invoice) (*ledger.Invoice, error) {
	if err := inv.Validate(); err != nil {
		return nil, err
	}
	var created ledger.Invoice
	if err := c.do(ctx, "CreateInvoice", http.MethodPost, "billing/invoices/", inv, &created, true); err != nil {
		return nil, err
	}
	return &created, nil
}

// MarkInvoicePaid transitions an invoice to PAID and returns the updated
// record. Marking an already-paid invoice succeeds unchanged.
func (c *Client) MarkInvoicePaid(ctx context.Context, id int) (*ledger.Invoice, error) {
	patch := map[string]any{"status": ledger.StatusPaid}
	var updated ledger.Invoice
	path := fmt.Sprintf("billing/invoices/%d/", id)
	if err := c.do(ctx, "MarkInvoicePaid", http.MethodPatch, path, patch, &updated, true); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Ledger fetches invoices and clients concurrently. The two result slices
// are independent view state; the first failure cancels the other fetch.
func (c *Client) Ledger(ctx context.Context) ([]ledger.Invoice, []ledger.Client, error) {
	var (
		invoices []ledger.Invoice
		clients  []ledger.Client
	)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		invoices, err = c.ListInvoices(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		clients, err = c.ListClients(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return invoices, clients, nil
}
