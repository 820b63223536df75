package tools

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/remote-jobs/internal/domain"
	"github.com/honeycarbs/remote-jobs/internal/domain/job"
	"github.com/honeycarbs/remote-jobs/pkg/logging"
)

const defaultTab = "Jobs"

// ErrSheetsNotConfigured is returned by export_jobs when no Sheets client is set
var ErrSheetsNotConfigured = errors.New("google sheets export is not configured")

// SheetExport is one write to a spreadsheet tab
type SheetExport struct {
	SpreadsheetID string
	Tab           string
	Header        []any
	Rows          [][]any
	ClearTab      bool
}

// SheetsClient writes rows to Google Sheets
type SheetsClient interface {
	Export(ctx context.Context, export SheetExport) error
}

// ExportJobsParams defines the arguments for the export_jobs tool
type ExportJobsParams struct {
	JobIDs        []string          `json:"job_ids,omitempty" jsonschema:"Export exactly these jobs; takes precedence over search"`
	Search        *SearchJobsParams `json:"search,omitempty" jsonschema:"Export the results of this search"`
	SpreadsheetID string            `json:"spreadsheet_id,omitempty" jsonschema:"Target spreadsheet; defaults to the configured one"`
	Tab           string            `json:"tab,omitempty" jsonschema:"Tab name, default Jobs"`
	ClearTab      bool              `json:"clear_tab,omitempty" jsonschema:"Clear existing rows below the header first"`
}

// ExportJobsResult describes the summary returned after export
type ExportJobsResult struct {
	SpreadsheetID string   `json:"spreadsheet_id"`
	Tab           string   `json:"tab"`
	WrittenRows   int      `json:"written_rows"`
	Missing       []string `json:"missing,omitempty" jsonschema:"Requested ids that could not be found"`
	CompletedAt   string   `json:"completed_at" jsonschema:"RFC 3339 timestamp"`
}

var sheetHeader = []any{"ID", "Title", "Company", "Category", "Location", "Type", "Experience", "Salary Min", "Salary Max", "Posted", "Source", "Apply URL"}

type exportTool struct {
	service       job.Service
	client        SheetsClient
	spreadsheetID string
	logger        *logging.Logger
	clock         func() time.Time
}

// WithJobExport registers export_jobs. client may be nil, in which case the
// tool is still listed but reports that export is unavailable.
func WithJobExport(service job.Service, client SheetsClient, defaultSpreadsheetID string) Option {
	return func(reg *registry) {
		t := exportTool{
			service:       service,
			client:        client,
			spreadsheetID: defaultSpreadsheetID,
			logger:        reg.logger,
			clock:         time.Now,
		}
		addTool(reg, &sdkmcp.Tool{
			Name:        "export_jobs",
			Description: "Export jobs, by id or by search, to a Google Sheets tab",
		}, t.handle)
	}
}

func (t exportTool) handle(ctx context.Context, _ *sdkmcp.CallToolRequest, in ExportJobsParams) (*sdkmcp.CallToolResult, ExportJobsResult, error) {
	if t.client == nil {
		return nil, ExportJobsResult{}, ErrSheetsNotConfigured
	}

	spreadsheetID := in.SpreadsheetID
	if spreadsheetID == "" {
		spreadsheetID = t.spreadsheetID
	}
	if spreadsheetID == "" {
		return nil, ExportJobsResult{}, fmt.Errorf("spreadsheet_id is required")
	}
	tab := in.Tab
	if tab == "" {
		tab = defaultTab
	}

	jobs, missing, err := t.collect(ctx, in)
	if err != nil {
		return nil, ExportJobsResult{}, err
	}

	rows := make([][]any, 0, len(jobs))
	for _, j := range jobs {
		rows = append(rows, sheetRow(j))
	}

	if len(rows) > 0 || in.ClearTab {
		err := t.client.Export(ctx, SheetExport{
			SpreadsheetID: spreadsheetID,
			Tab:           tab,
			Header:        sheetHeader,
			Rows:          rows,
			ClearTab:      in.ClearTab,
		})
		if err != nil {
			t.logger.Error("export_jobs failed", "spreadsheet_id", spreadsheetID, "err", err)
			return nil, ExportJobsResult{}, fmt.Errorf("export jobs: %w", err)
		}
	}

	out := ExportJobsResult{
		SpreadsheetID: spreadsheetID,
		Tab:           tab,
		WrittenRows:   len(rows),
		Missing:       missing,
		CompletedAt:   t.clock().UTC().Format(time.RFC3339),
	}
	return textResult(fmt.Sprintf("exported %d row(s) to %s!%s", out.WrittenRows, spreadsheetID, tab)), out, nil
}

func (t exportTool) collect(ctx context.Context, in ExportJobsParams) ([]domain.Job, []string, error) {
	if len(in.JobIDs) > 0 {
		var (
			jobs    = make([]domain.Job, 0, len(in.JobIDs))
			missing []string
		)
		for _, id := range in.JobIDs {
			j, err := t.service.GetJobDetails(ctx, id)
			if err != nil {
				return nil, nil, fmt.Errorf("get job %q: %w", id, err)
			}
			if j == nil {
				missing = append(missing, id)
				continue
			}
			jobs = append(jobs, *j)
		}
		return jobs, missing, nil
	}

	var search SearchJobsParams
	if in.Search != nil {
		search = *in.Search
	}
	res, err := t.service.Search(ctx, search.toDomain())
	if err != nil {
		return nil, nil, fmt.Errorf("search jobs: %w", err)
	}
	return res.Jobs, nil, nil
}

func sheetRow(j domain.Job) []any {
	s := summarize(j)
	return []any{
		s.ID,
		s.Title,
		s.Company,
		s.Category,
		s.Location,
		s.Type,
		s.Experience,
		salaryCell(j.SalaryMin),
		salaryCell(j.SalaryMax),
		s.PostedAt,
		s.Source,
		s.ApplyURL,
	}
}

func salaryCell(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}
