// Package sheets exports the current ledger to a Google Sheet, one row per
// invoice plus a trailing summary block, for hand-off to an accountant.
package sheets

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"linkvault/internal/ledger"
	"linkvault/internal/logger"
	"linkvault/internal/money"
)

// Service handles Google Sheets operations
type Service struct {
	sheetsService *sheets.Service
	spreadsheetID string
	log           zerolog.Logger
}

var headerRow = []interface{}{
	"Numéro", "Date", "Client", "Désignation", "Total HT", "TVA", "Total TTC", "Statut", "Exporté le",
}

// NewService creates a Google Sheets service for the spreadsheet behind
// sheetURL, authenticating with service-account JWT credentials from
// GOOGLE_APPLICATION_CREDENTIALS or GOOGLE_CREDENTIALS.
func NewService(ctx context.Context, sheetURL string) (*Service, error) {
	const op = "NewService"

	log := logger.WithComponent("sheets")

	spreadsheetID, err := extractSpreadsheetID(sheetURL)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to extract spreadsheet ID: %w", op, err)
	}

	log.Debug().Str("spreadsheet_id", spreadsheetID).Msg("Extracted spreadsheet ID")

	var creds []byte
	if credsFile := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); credsFile != "" {
		creds, err = os.ReadFile(credsFile)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to read credentials file: %w", op, err)
		}
	} else if credsJSON := os.Getenv("GOOGLE_CREDENTIALS"); credsJSON != "" {
		creds = []byte(credsJSON)
	} else {
		return nil, fmt.Errorf("%s: neither GOOGLE_APPLICATION_CREDENTIALS nor GOOGLE_CREDENTIALS is set", op)
	}

	config, err := google.JWTConfigFromJSON(creds, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse credentials: %w", op, err)
	}

	client := config.Client(ctx)
	sheetsService, err := sheets.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("%s: failed to create sheets service: %w", op, err)
	}

	return &Service{
		sheetsService: sheetsService,
		spreadsheetID: spreadsheetID,
		log:           log,
	}, nil
}

// extractSpreadsheetID extracts the spreadsheet ID from a Google Sheets URL
func extractSpreadsheetID(url string) (string, error) {
	re := regexp.MustCompile(`/spreadsheets/d/([a-zA-Z0-9-_]+)`)
	matches := re.FindStringSubmatch(url)

	if len(matches) < 2 {
		return "", fmt.Errorf("invalid Google Sheets URL format")
	}

	return matches[1], nil
}

// ExportLedger writes the invoice collection and its summary to sheetName.
// Existing rows are appended to, never rewritten: each export is a new
// snapshot block.
func (s *Service) ExportLedger(ctx context.Context, invoices []ledger.Invoice, clients []ledger.Client, sheetName string) error {
	const op = "ExportLedger"

	s.log.Info().
		Str("sheet", sheetName).
		Int("invoices", len(invoices)).
		Msg("Exporting ledger to Google Sheet")

	if err := s.ensureSheetWithHeaders(ctx, sheetName); err != nil {
		return fmt.Errorf("%s: failed to ensure sheet exists: %w", op, err)
	}

	values := ledgerRows(invoices, clients, time.Now())

	valueRange := &sheets.ValueRange{Values: values}
	_, err := s.sheetsService.Spreadsheets.Values.Append(
		s.spreadsheetID,
		sheetName+"!A:I",
		valueRange,
	).ValueInputOption("USER_ENTERED").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("%s: failed to append values to sheet: %w", op, err)
	}

	s.log.Info().
		Int("rows_written", len(values)).
		Msg("Successfully exported ledger to Google Sheet")

	return nil
}

// ledgerRows builds the per-invoice rows followed by the summary block.
func ledgerRows(invoices []ledger.Invoice, clients []ledger.Client, exportedAt time.Time) [][]interface{} {
	stamp := exportedAt.Format("02/01/2006 15:04:05")

	var values [][]interface{}
	for _, inv := range invoices {
		clientName := "Unknown Client"
		if c, ok := ledger.ClientByID(clients, inv.ClientID); ok {
			clientName = c.Name
		}
		date := ""
		if !inv.CreatedAt.IsZero() {
			date = inv.CreatedAt.Format("02/01/2006")
		}
		tax := inv.TotalTTC.Sub(inv.TotalHT)
		values = append(values, []interface{}{
			inv.Number,                  // A: Numéro
			date,                        // B: Date
			clientName,                  // C: Client
			inv.Label,                   // D: Désignation
			inv.TotalHT.StringFixed(2),  // E: Total HT
			tax.StringFixed(2),          // F: TVA
			inv.TotalTTC.StringFixed(2), // G: Total TTC
			string(inv.Status),          // H: Statut
			stamp,                       // I: Exporté le
		})
	}

	summary := ledger.Summarize(invoices, clients)
	values = append(values,
		[]interface{}{"", "", "", "", "", "", "", "", ""},
		[]interface{}{"Chiffre d'affaires (HT)", money.FormatCurrency(summary.RevenuePaidHT)},
		[]interface{}{"En attente (HT)", money.FormatCurrency(summary.OutstandingPendingHT)},
		[]interface{}{"Clients", summary.ClientCount},
	)
	return values
}

// ensureSheetWithHeaders ensures the sheet exists and has proper headers
func (s *Service) ensureSheetWithHeaders(ctx context.Context, sheetName string) error {
	const op = "ensureSheetWithHeaders"

	spreadsheet, err := s.sheetsService.Spreadsheets.Get(s.spreadsheetID).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("%s: failed to get spreadsheet: %w", op, err)
	}

	var sheetExists bool
	for _, sheet := range spreadsheet.Sheets {
		if sheet.Properties.Title == sheetName {
			sheetExists = true
			break
		}
	}

	if !sheetExists {
		s.log.Info().Str("sheet", sheetName).Msg("Creating new sheet")

		batchUpdateReq := &sheets.BatchUpdateSpreadsheetRequest{
			Requests: []*sheets.Request{
				{AddSheet: &sheets.AddSheetRequest{
					Properties: &sheets.SheetProperties{Title: sheetName},
				}},
			},
		}
		if _, err := s.sheetsService.Spreadsheets.BatchUpdate(s.spreadsheetID, batchUpdateReq).Context(ctx).Do(); err != nil {
			return fmt.Errorf("%s: failed to create sheet: %w", op, err)
		}
	}

	headerRange := fmt.Sprintf("%s!A1:I1", sheetName)
	resp, err := s.sheetsService.Spreadsheets.Values.Get(s.spreadsheetID, headerRange).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("%s: failed to get headers: %w", op, err)
	}

	if len(resp.Values) == 0 || len(resp.Values[0]) == 0 {
		s.log.Info().Str("sheet", sheetName).Msg("Adding headers to sheet")

		valueRange := &sheets.ValueRange{Values: [][]interface{}{headerRow}}
		_, err = s.sheetsService.Spreadsheets.Values.Update(
			s.spreadsheetID,
			headerRange,
			valueRange,
		).ValueInputOption("USER_ENTERED").Context(ctx).Do()
		if err != nil {
			return fmt.Errorf("%s: failed to write headers: %w", op, err)
		}
	}

	return nil
}
