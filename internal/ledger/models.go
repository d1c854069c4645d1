// Package ledger holds the record types served by the remote store and the
// pure derivations computed over them.
//
// The records are transient, read-only copies of server state: the remote
// service owns them, the CLI only fetches them for the current view and
// writes back through the API adapter.
package ledger

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Status is the payment state of an invoice. The only transition is
// PENDING → PAID; there is no reversal.
type Status string

const (
	StatusPending Status = "PENDING"
	StatusPaid    Status = "PAID"
)

// ErrInvalidInvoice is returned when an invoice is structurally unusable:
// missing label, missing client reference, or inconsistent totals.
var ErrInvalidInvoice = errors.New("invalid invoice")

// Client is a billing counterparty.
type Client struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

// Invoice is a single billing record.
//
// TotalHT is the tax-exclusive amount and TotalTTC the tax-inclusive one;
// both are stored server-side and taken as given. The difference is the tax
// amount.
type Invoice struct {
	ID       int    `json:"id,omitempty"`
	Number   string `json:"number"`
	ClientID int    `json:"client"`
	Label    string `json:"label"`

	TotalHT  decimal.Decimal `json:"total_ht"`
	TotalTTC decimal.Decimal `json:"total_ttc"`

	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// Validate checks the structural invariants of an invoice before it is
// submitted or rendered.
func (inv *Invoice) Validate() error {
	switch {
	case inv.Number == "":
		return fmt.Errorf("%w: number is required", ErrInvalidInvoice)
	case inv.ClientID == 0:
		return fmt.Errorf("%w: client is required", ErrInvalidInvoice)
	case inv.Label == "":
		return fmt.Errorf("%w: label is required", ErrInvalidInvoice)
	case inv.TotalHT.IsNegative() || inv.TotalTTC.IsNegative():
		return fmt.Errorf("%w: totals must not be negative", ErrInvalidInvoice)
	case inv.TotalTTC.LessThan(inv.TotalHT):
		return fmt.Errorf("%w: TTC %s is below HT %s", ErrInvalidInvoice,
			inv.TotalTTC.StringFixed(2), inv.TotalHT.StringFixed(2))
	}
	return nil
}

// Paid reports whether the invoice has been settled.
func (inv *Invoice) Paid() bool { return inv.Status == StatusPaid }

// MarkPaid moves the invoice to PAID. Marking an already-paid invoice is a
// no-op, not an error; there is no way back to PENDING.
func (inv *Invoice) MarkPaid() {
	inv.Status = StatusPaid
}

// Todo is a vault entry: a bookmark or task, optionally categorized.
type Todo struct {
	ID          int       `json:"id,omitempty"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	CategoryID  *int      `json:"category,omitempty"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
	UpdatedAt   time.Time `json:"updated_at,omitempty"`
}

// Category groups vault entries under a name and a display color.
type Category struct {
	ID    int    `json:"id,omitempty"`
	Name  string `json:"name"`
	Color string `json:"color"`
}
