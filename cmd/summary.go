package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"linkvault/internal/ledger"
	"linkvault/internal/money"
	"linkvault/internal/sheets"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show the billing ledger summary",
	Long: `Fetch invoices and clients and derive the ledger summary: paid revenue,
outstanding balance, and client count. The summary is recomputed from the
remote collections on every run, never cached.

With --sheet, the full ledger and its summary are also appended to the
configured Google Sheet.`,
	Example: `  linkvault summary
  linkvault summary --sheet`,
	RunE: runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)

	summaryCmd.Flags().Bool("sheet", false, "Also export the ledger to the configured Google Sheet")
}

func runSummary(cmd *cobra.Command, args []string) error {
	exportSheet, _ := cmd.Flags().GetBool("sheet")

	client, err := newClient(true)
	if err != nil {
		return err
	}

	// Invoices and clients are fetched concurrently; the slices are
	// independent view state.
	invoices, clients, err := client.Ledger(cmd.Context())
	if err != nil {
		return friendly(err)
	}

	s := ledger.Summarize(invoices, clients)

	fmt.Printf("Revenue (paid, HT):      %s\n", money.FormatCurrency(s.RevenuePaidHT))
	fmt.Printf("Outstanding (pending, HT): %s\n", money.FormatCurrency(s.OutstandingPendingHT))
	fmt.Printf("Clients:                 %d\n", s.ClientCount)
	fmt.Printf("Invoices:                %d\n", len(invoices))

	if !exportSheet {
		return nil
	}

	if cfg.SheetURL == "" {
		return fmt.Errorf("no Google Sheet configured; set LINKVAULT_SHEET_URL")
	}
	svc, err := sheets.NewService(cmd.Context(), cfg.SheetURL)
	if err != nil {
		return err
	}
	if err := svc.ExportLedger(cmd.Context(), invoices, clients, cfg.SheetWorksheet); err != nil {
		return err
	}
	fmt.Printf("Ledger exported to worksheet %q.\n", cfg.SheetWorksheet)
	return nil
}
