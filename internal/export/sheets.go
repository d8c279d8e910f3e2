package export

import (
	"context"
	"fmt"
	"log/slog"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

// SheetsWriter pushes snapshots into a Google Sheets spreadsheet. Each
// collection lands in its own tab, which must already exist.
type SheetsWriter struct {
	svc           *gsheet.Service
	spreadsheetID string
}

// NewSheetsWriter builds a writer authenticated with a service account
// credentials file. An empty credentialsFile falls back to application
// default credentials.
func NewSheetsWriter(ctx context.Context, spreadsheetID, credentialsFile string) (*SheetsWriter, error) {
	if spreadsheetID == "" {
		return nil, fmt.Errorf("missing spreadsheet id")
	}

	var opts []goption.ClientOption
	opts = append(opts, goption.WithScopes(gsheet.SpreadsheetsScope))
	if credentialsFile != "" {
		opts = append(opts, goption.WithCredentialsFile(credentialsFile))
	}

	svc, err := gsheet.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}
	return &SheetsWriter{svc: svc, spreadsheetID: spreadsheetID}, nil
}

// Write replaces the contents of the Clients, Invoices and Expenses tabs
// with the snapshot in d.
func (w *SheetsWriter) Write(ctx context.Context, d Data) error {
	for _, name := range SheetNames {
		rows, err := sheetRows(name, d)
		if err != nil {
			return err
		}

		// Clear first so rows removed since the last export do not linger.
		rng := fmt.Sprintf("%s!A1:Z", name)
		if _, err := w.svc.Spreadsheets.Values.Clear(w.spreadsheetID, rng,
			&gsheet.ClearValuesRequest{}).Context(ctx).Do(); err != nil {
			return fmt.Errorf("clear %s: %w", name, err)
		}

		vr := &gsheet.ValueRange{Values: rows}
		if _, err := w.svc.Spreadsheets.Values.Update(w.spreadsheetID, name+"!A1", vr).
			ValueInputOption("RAW").Context(ctx).Do(); err != nil {
			return fmt.Errorf("update %s: %w", name, err)
		}

		slog.InfoContext(ctx, "Exported sheet", "sheet", name, "rows", len(rows)-1)
	}
	return nil
}
