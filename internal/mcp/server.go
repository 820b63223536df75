// Package mcp exposes the job aggregator to MCP clients over streamable HTTP.
package mcp

import (
	"net/http"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/remote-jobs/internal/domain/job"
	"github.com/honeycarbs/remote-jobs/internal/mcp/tools"
	"github.com/honeycarbs/remote-jobs/pkg/logging"
	sheetsclient "github.com/honeycarbs/remote-jobs/pkg/sheets"
)

const (
	serverName    = "remote-jobs"
	serverVersion = "0.1.0"
)

// Resources are the collaborators the tools call into. Sheets and Skills are optional.
type Resources struct {
	JobService    job.Service
	Sheets        *sheetsclient.Client
	SpreadsheetID string
	Skills        job.SkillStats
}

// NewServer builds an MCP server with every tool the resources allow
func NewServer(res Resources, logger *logging.Logger) *sdkmcp.Server {
	if logger == nil {
		logger = logging.NewNop()
	}

	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    serverName,
		Version: serverVersion,
	}, nil)

	var exporter tools.SheetsClient
	if res.Sheets != nil {
		exporter = &sheetsClientAdapter{client: res.Sheets}
	}

	names := tools.Register(server, logger.Named("mcp"),
		tools.WithJobSearch(res.JobService),
		tools.WithJobExport(res.JobService, exporter, res.SpreadsheetID),
		tools.WithTopSkills(res.Skills),
	)
	logger.Info("MCP tools registered", "tools", names)

	return server
}

// NewHandler serves server over the streamable HTTP transport
func NewHandler(server *sdkmcp.Server) http.Handler {
	return sdkmcp.NewStreamableHTTPHandler(func(*http.Request) *sdkmcp.Server {
		return server
	}, nil)
}
