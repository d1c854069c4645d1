package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"linkvault/internal/document"
	"linkvault/internal/ledger"
	"linkvault/internal/logger"
	"linkvault/internal/money"
)

var invoiceCmd = &cobra.Command{
	Use:   "invoice",
	Short: "Manage invoices",
}

var invoiceListCmd = &cobra.Command{
	Use:   "list",
	Short: "List invoices",
	RunE:  runInvoiceList,
}

var invoiceAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create an invoice",
	Long: `Create an invoice for a client.

Amounts are decimal with at most two places. The invoice number is
client-generated: pass one with --number or let the CLI stamp one.
New invoices start PENDING.`,
	Example: `  linkvault invoice add --client 2 --label "Consulting" --ht 100.00 --ttc 120.00
  linkvault invoice add --client 2 --label "Hosting" --ht 50 --ttc 60 --number FAC-2026-007`,
	RunE: runInvoiceAdd,
}

var invoicePayCmd = &cobra.Command{
	Use:   "pay <id>",
	Short: "Mark an invoice as paid",
	Long: `Mark an invoice as paid. This is the only status transition; paying an
already-paid invoice leaves it unchanged.`,
	Args: cobra.ExactArgs(1),
	RunE: runInvoicePay,
}

var invoiceExportCmd = &cobra.Command{
	Use:   "export <number>",
	Short: "Export an invoice as a PDF document",
	Long: `Render one invoice into a fixed-layout PDF named Facture_<number>.pdf.

The document shows the issuer header, invoice number, issue date, client
block, a single line item, and the totals block (HT, tax, TTC). An invoice
whose client no longer exists renders with an "Unknown Client" block.`,
	Example: `  linkvault invoice export FAC-2026-007
  linkvault invoice export FAC-2026-007 -o /tmp`,
	Args: cobra.ExactArgs(1),
	RunE: runInvoiceExport,
}

func init() {
	rootCmd.AddCommand(invoiceCmd)
	invoiceCmd.AddCommand(invoiceListCmd, invoiceAddCmd, invoicePayCmd, invoiceExportCmd)

	invoiceAddCmd.Flags().Int("client", 0, "Client id (required)")
	invoiceAddCmd.Flags().String("label", "", "Line item description (required)")
	invoiceAddCmd.Flags().String("ht", "", "Tax-exclusive total (required)")
	invoiceAddCmd.Flags().String("ttc", "", "Tax-inclusive total (required)")
	invoiceAddCmd.Flags().String("number", "", "Invoice number (default: generated stamp)")
	invoiceAddCmd.MarkFlagRequired("client")
	invoiceAddCmd.MarkFlagRequired("label")
	invoiceAddCmd.MarkFlagRequired("ht")
	invoiceAddCmd.MarkFlagRequired("ttc")

	invoiceExportCmd.Flags().StringP("output", "o", "", "Output directory (default: configured export dir)")
}

func runInvoiceList(cmd *cobra.Command, args []string) error {
	client, err := newClient(true)
	if err != nil {
		return err
	}
	invoices, err := client.ListInvoices(cmd.Context())
	if err != nil {
		return friendly(err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNUMBER\tCLIENT\tLABEL\tHT\tTTC\tSTATUS")
	for _, inv := range invoices {
		fmt.Fprintf(w, "%d\t%s\t%d\t%s\t%s\t%s\t%s\n",
			inv.ID, inv.Number, inv.ClientID, inv.Label,
			money.FormatCurrency(inv.TotalHT), money.FormatCurrency(inv.TotalTTC), inv.Status)
	}
	return w.Flush()
}

func runInvoiceAdd(cmd *cobra.Command, args []string) error {
	clientID, _ := cmd.Flags().GetInt("client")
	label, _ := cmd.Flags().GetString("label")
	htStr, _ := cmd.Flags().GetString("ht")
	ttcStr, _ := cmd.Flags().GetString("ttc")
	number, _ := cmd.Flags().GetString("number")

	// Validation happens before any remote call.
	if strings.TrimSpace(label) == "" {
		return errors.New("label must not be empty")
	}
	ht, err := money.ParseAmount(htStr)
	if err != nil {
		return fmt.Errorf("--ht: %w", err)
	}
	ttc, err := money.ParseAmount(ttcStr)
	if err != nil {
		return fmt.Errorf("--ttc: %w", err)
	}
	if _, err := money.ComputeTax(ht, ttc); err != nil {
		return err
	}
	if number == "" {
		number = "FAC-" + time.Now().Format("20060102-150405")
	}

	inv := ledger.Invoice{
		Number:   number,
		ClientID: clientID,
		Label:    strings.TrimSpace(label),
		TotalHT:  ht,
		TotalTTC: ttc,
		Status:   ledger.StatusPending,
	}

	client, err := newClient(true)
	if err != nil {
		return err
	}
	created, err := client.CreateInvoice(cmd.Context(), inv)
	if err != nil {
		return friendly(err)
	}

	fmt.Printf("Created invoice %s (#%d) for %s\n",
		created.Number, created.ID, money.FormatCurrency(created.TotalTTC))
	return nil
}

func runInvoicePay(cmd *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid invoice id %q", args[0])
	}

	client, err := newClient(true)
	if err != nil {
		return err
	}
	updated, err := client.MarkInvoicePaid(cmd.Context(), id)
	if err != nil {
		return friendly(err)
	}

	fmt.Printf("Invoice %s is %s\n", updated.Number, updated.Status)
	return nil
}

func runInvoiceExport(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("export")
	number := args[0]

	outDir, _ := cmd.Flags().GetString("output")
	if outDir == "" {
		outDir = cfg.ExportDir
	}

	client, err := newClient(true)
	if err != nil {
		return err
	}
	invoices, clients, err := client.Ledger(cmd.Context())
	if err != nil {
		return friendly(err)
	}

	inv, ok := findInvoice(invoices, number)
	if !ok {
		return fmt.Errorf("no invoice with number %q", number)
	}

	issuer := document.Issuer{
		Name:    cfg.IssuerName,
		Address: cfg.IssuerAddress,
		Email:   cfg.IssuerEmail,
	}
	doc, err := document.Render(inv, clients, issuer)
	if err != nil {
		return err
	}

	path, err := doc.WriteFile(outDir)
	if err != nil {
		return err
	}

	log.Info().
		Str("invoice", inv.Number).
		Str("path", path).
		Msg("Invoice exported")
	fmt.Printf("Exported %s\n", path)
	return nil
}

// findInvoice resolves an invoice by its number, falling back to a numeric
// id when the number does not match.
func findInvoice(invoices []ledger.Invoice, key string) (ledger.Invoice, bool) {
	for _, inv := range invoices {
		if inv.Number == key {
			return inv, true
		}
	}
	if id, err := strconv.Atoi(key); err == nil {
		for _, inv := range invoices {
			if inv.ID == id {
				return inv, true
			}
		}
	}
	return ledger.Invoice{}, false
}
