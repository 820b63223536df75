package mcp

import (
	"context"
	"fmt"

	"github.com/honeycarbs/remote-jobs/internal/mcp/tools"
	sheetsclient "github.com/honeycarbs/remote-jobs/pkg/sheets"
)

// sheetsWriter is the subset of the Sheets client the adapter uses
type sheetsWriter interface {
	UpdateValues(ctx context.Context, spreadsheetID, rng string, values [][]interface{}) error
	AppendValues(ctx context.Context, spreadsheetID, rng string, values [][]interface{}) error
	ClearValues(ctx context.Context, spreadsheetID, rng string) error
}

var _ sheetsWriter = (*sheetsclient.Client)(nil)

type sheetsClientAdapter struct {
	client sheetsWriter
}

// Export writes the header to row 1 and appends rows below it
func (a *sheetsClientAdapter) Export(ctx context.Context, export tools.SheetExport) error {
	if a.client == nil {
		return tools.ErrSheetsNotConfigured
	}

	if export.ClearTab {
		if err := a.client.ClearValues(ctx, export.SpreadsheetID, clearRange(export.Tab)); err != nil {
			return fmt.Errorf("sheets: failed to clear sheet: %w", err)
		}
	}

	if len(export.Header) > 0 {
		if err := a.client.UpdateValues(ctx, export.SpreadsheetID, headerRange(export.Tab), [][]interface{}{export.Header}); err != nil {
			return fmt.Errorf("sheets: failed to write header: %w", err)
		}
	}

	if len(export.Rows) == 0 {
		return nil
	}

	values := make([][]interface{}, len(export.Rows))
	for i, row := range export.Rows {
		values[i] = row
	}
	if err := a.client.AppendValues(ctx, export.SpreadsheetID, dataRange(export.Tab), values); err != nil {
		return fmt.Errorf("sheets: failed to append rows: %w", err)
	}
	return nil
}

func headerRange(tab string) string {
	return fmt.Sprintf("%s!A1", tab)
}

func dataRange(tab string) string {
	return fmt.Sprintf("%s!A2", tab)
}

func clearRange(tab string) string {
	return fmt.Sprintf("%s!A2:Z", tab)
}
