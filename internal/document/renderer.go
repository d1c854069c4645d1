// Package document renders invoices into fixed-layout printable documents.
//
// Rendering is a pure formatting pass over stored data: totals are taken as
// given and never recomputed, and a structurally valid invoice always
// produces a document, even when its client record is missing.
package document

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"

	"linkvault/internal/ledger"
	"linkvault/internal/money"
)

// ErrInvalidInvoice is returned when an invoice cannot be rendered: its
// label is empty or its totals are inconsistent.
var ErrInvalidInvoice = errors.New("invoice cannot be rendered")

// Issuer is the party emitting the document, printed in the header block.
type Issuer struct {
	Name    string
	Address string
	Email   string
}

// placeholder stands in for a client the store no longer knows about, so
// that rendering never fails on a dangling reference.
var placeholder = ledger.Client{Name: "Unknown Client", Email: "-", Address: ""}

// Document is a fully resolved invoice layout. Name identifies the export
// artifact and is deterministic given the invoice number.
type Document struct {
	Name string

	Issuer    Issuer
	Number    string
	IssueDate time.Time
	Client    ledger.Client

	// Single line item at quantity 1, derived from the invoice label.
	ItemLabel string
	Quantity  int

	TotalHT     decimal.Decimal
	Tax         decimal.Decimal
	RatePercent decimal.Decimal
	TotalTTC    decimal.Decimal
}

// Render resolves an invoice and its client collection into a Document.
//
// A client id with no matching record substitutes the "Unknown Client"
// placeholder rather than failing. A zero CreatedAt defaults to the current
// time. The tax line is total_ttc - total_ht; the rate shown next to it is
// derived for display only.
func Render(inv ledger.Invoice, clients []ledger.Client, issuer Issuer) (*Document, error) {
	if inv.Label == "" {
		return nil, fmt.Errorf("%w: label is empty", ErrInvalidInvoice)
	}
	tax, err := money.ComputeTax(inv.TotalHT, inv.TotalTTC)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInvoice, err)
	}

	client, ok := ledger.ClientByID(clients, inv.ClientID)
	if !ok {
		client = placeholder
	}

	issued := inv.CreatedAt
	if issued.IsZero() {
		issued = time.Now()
	}

	return &Document{
		Name:        "Facture_" + inv.Number,
		Issuer:      issuer,
		Number:      inv.Number,
		IssueDate:   issued,
		Client:      client,
		ItemLabel:   inv.Label,
		Quantity:    1,
		TotalHT:     inv.TotalHT,
		Tax:         tax,
		RatePercent: money.RatePercent(inv.TotalHT, tax),
		TotalTTC:    inv.TotalTTC,
	}, nil
}

// FileName is the name of the exported artifact, Facture_<number>.pdf.
func (d *Document) FileName() string { return d.Name + ".pdf" }

// PDF produces the printable artifact. Layout order is fixed: issuer
// header, invoice number, issue date, client block, line-item table,
// totals block.
func (d *Document) PDF() ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	// Issuer header
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, tr(d.Issuer.Name))
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 10)
	if d.Issuer.Address != "" {
		pdf.Cell(40, 5, tr(d.Issuer.Address))
		pdf.Ln(5)
	}
	if d.Issuer.Email != "" {
		pdf.Cell(40, 5, tr(d.Issuer.Email))
		pdf.Ln(5)
	}
	pdf.Ln(8)

	// Invoice number and issue date
	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(40, 8, tr("Facture "+d.Number))
	pdf.Ln(7)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(40, 6, tr("Date : "+d.IssueDate.Format("02/01/2006")))
	pdf.Ln(12)

	// Client block
	pdf.SetFont("Arial", "B", 11)
	pdf.Cell(40, 6, tr("Client"))
	pdf.Ln(6)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(40, 5, tr(d.Client.Name))
	pdf.Ln(5)
	if d.Client.Email != "" {
		pdf.Cell(40, 5, tr(d.Client.Email))
		pdf.Ln(5)
	}
	if d.Client.Address != "" {
		pdf.Cell(40, 5, tr(d.Client.Address))
		pdf.Ln(5)
	}
	pdf.Ln(8)

	// Line-item table
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(110, 7, tr("Désignation"), "1", 0, "L", false, 0, "")
	pdf.CellFormat(20, 7, tr("Qté"), "1", 0, "C", false, 0, "")
	pdf.CellFormat(60, 7, tr("Montant HT"), "1", 1, "R", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(110, 7, tr(d.ItemLabel), "1", 0, "L", false, 0, "")
	pdf.CellFormat(20, 7, fmt.Sprintf("%d", d.Quantity), "1", 0, "C", false, 0, "")
	pdf.CellFormat(60, 7, tr(money.FormatCurrency(d.TotalHT)), "1", 1, "R", false, 0, "")
	pdf.Ln(6)

	// Totals block
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(130, 7, "")
	pdf.CellFormat(30, 7, tr("Total HT"), "", 0, "L", false, 0, "")
	pdf.CellFormat(30, 7, tr(money.FormatCurrency(d.TotalHT)), "", 1, "R", false, 0, "")
	pdf.Cell(130, 7, "")
	pdf.CellFormat(30, 7, tr(fmt.Sprintf("TVA (%s%%)", d.RatePercent)), "", 0, "L", false, 0, "")
	pdf.CellFormat(30, 7, tr(money.FormatCurrency(d.Tax)), "", 1, "R", false, 0, "")
	pdf.SetFont("Arial", "B", 11)
	pdf.Cell(130, 7, "")
	pdf.CellFormat(30, 7, tr("Total TTC"), "", 0, "L", false, 0, "")
	pdf.CellFormat(30, 7, tr(money.FormatCurrency(d.TotalTTC)), "", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf output failed: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteFile renders the PDF into dir under the deterministic artifact name
// and returns the written path.
func (d *Document) WriteFile(dir string) (string, error) {
	data, err := d.PDF()
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, d.FileName())
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}
