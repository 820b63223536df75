package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	mcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"google.golang.org/api/option"
)

const (
	maxIterations = 10
	toolTimeout   = 2 * time.Minute
)

const systemPromptTemplate = `You are a remote job search assistant.

YOUR ROLE:
- Help users find remote jobs across several job boards and export them to spreadsheets
- Turn natural language requests into tool calls with precise filters
- Ask a clarifying question only when the request cannot be mapped to filters

AVAILABLE TOOLS:
- search_jobs: search remote jobs by keyword, category, location, job type, experience, minimum salary and timezone
- get_job: fetch a single job by id, including its description and skills
- export_jobs: write jobs to Google Sheets, either by id or by a search
- top_skills: list the skills most often required by archived jobs%s

TOOL USAGE GUIDELINES:
- For "find", "show me" or "search" requests call search_jobs once and summarize the results
- For questions about a specific job call get_job with its id
- For "what skills are in demand" style questions call top_skills
- Call export_jobs only when the user asks to save or export

IMPORTANT RULES:
1. Never make up jobs, salaries or companies. Only use tool responses
2. If the response says fallback is true, tell the user the results come from the curated local list
3. If a tool call fails, explain the error plainly and suggest what to try next`

func systemPrompt(sheetsID string) string {
	if sheetsID == "" {
		return fmt.Sprintf(systemPromptTemplate, "")
	}
	instruction := fmt.Sprintf(
		"\n\nFor export_jobs, ALWAYS use this Google Sheets ID: %s\n"+
			"Format: {\"job_ids\": [\"id1\", \"id2\"], \"spreadsheet_id\": \"%s\", \"tab\": \"Jobs\"}\n"+
			"DO NOT ask the user for the spreadsheet ID.",
		sheetsID, sheetsID)
	return fmt.Sprintf(systemPromptTemplate, instruction)
}

type Client struct {
	mcpSession *mcp.ClientSession
	gemini     *genai.Client
	model      *genai.GenerativeModel
	tools      []*mcp.Tool
}

func NewClient(ctx context.Context, endpoint, apiKey, model, sheetsID string) (*Client, error) {
	mcpClient := mcp.NewClient(&mcp.Implementation{
		Name:    "remote-jobs-assistant",
		Version: "0.1.0",
	}, nil)

	fmt.Printf("Connecting to MCP server at: %s\n", endpoint)

	session, err := mcpClient.Connect(ctx, &mcp.StreamableClientTransport{Endpoint: endpoint}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MCP server at %s: %w", endpoint, err)
	}

	geminiClient, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		_ = session.Close()
		return nil, fmt.Errorf("failed to initialize Gemini: %w", err)
	}

	geminiModel := geminiClient.GenerativeModel(model)
	geminiModel.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(systemPrompt(sheetsID))},
	}

	toolsResp, err := session.ListTools(ctx, &mcp.ListToolsParams{})
	if err != nil {
		_ = geminiClient.Close()
		_ = session.Close()
		return nil, fmt.Errorf("failed to list tools: %w", err)
	}

	c := &Client{
		mcpSession: session,
		gemini:     geminiClient,
		model:      geminiModel,
		tools:      toolsResp.Tools,
	}
	c.model.Tools = c.buildGeminiTools()
	return c, nil
}

func (c *Client) Close() error {
	var errs []error
	if err := c.gemini.Close(); err != nil {
		errs = append(errs, fmt.Errorf("gemini close: %w", err))
	}
	if err := c.mcpSession.Close(); err != nil {
		errs = append(errs, fmt.Errorf("mcp session close: %w", err))
	}
	return errors.Join(errs...)
}

// RunQuery drives one user request through the model, executing tool calls
// until the model answers in text.
func (c *Client) RunQuery(ctx context.Context, userQuery string) error {
	fmt.Printf("\nUser Query: %s\n\n", userQuery)
	fmt.Println(strings.Repeat("=", 80))

	chat := c.model.StartChat()
	parts := []genai.Part{genai.Text(userQuery)}

	for iteration := 1; iteration <= maxIterations; iteration++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		if iteration == 1 {
			fmt.Println("[Agent] Analyzing your request...")
		} else {
			fmt.Printf("[Agent] Processing step %d...\n", iteration)
		}

		resp, err := chat.SendMessage(ctx, parts...)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("gemini API error: %w", err)
		}

		var text strings.Builder
		var responses []genai.Part

		for _, candidate := range resp.Candidates {
			if candidate.Content == nil {
				continue
			}
			for _, part := range candidate.Content.Parts {
				switch p := part.(type) {
				case genai.FunctionCall:
					responses = append(responses, c.runTool(ctx, p))
				case genai.Text:
					text.WriteString(string(p))
				}
			}
		}

		if len(responses) > 0 {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			parts = responses
			continue
		}

		if text.Len() > 0 {
			fmt.Println("\n" + strings.Repeat("=", 80))
			fmt.Println(text.String())
			fmt.Println(strings.Repeat("=", 80))
			return nil
		}

		if len(resp.Candidates) == 0 {
			return errors.New("unexpected response format from Gemini")
		}
	}

	return errors.New("max iterations reached")
}

func (c *Client) runTool(ctx context.Context, fc genai.FunctionCall) genai.Part {
	args := fc.Args
	if args == nil {
		args = map[string]any{}
	}

	fmt.Printf("\n[Tool] %s...\n", toolDisplayName(fc.Name))

	result, err := c.callMCPTool(ctx, fc.Name, args)
	if err != nil {
		fmt.Printf("[Error] %s: %v\n", fc.Name, err)
		return genai.FunctionResponse{Name: fc.Name, Response: map[string]any{"error": err.Error()}}
	}

	fmt.Printf("[Success] %s completed\n", toolDisplayName(fc.Name))
	return genai.FunctionResponse{Name: fc.Name, Response: result}
}

func (c *Client) buildGeminiTools() []*genai.Tool {
	declarations := make([]*genai.FunctionDeclaration, 0, len(c.tools))
	for _, tool := range c.tools {
		declarations = append(declarations, &genai.FunctionDeclaration{
			Name:        tool.Name,
			Description: tool.Description,
			Parameters:  convertSchema(tool.InputSchema),
		})
	}
	if len(declarations) == 0 {
		return nil
	}
	return []*genai.Tool{{FunctionDeclarations: declarations}}
}

func (c *Client) callMCPTool(ctx context.Context, name string, args map[string]any) (map[string]any, error) {
	toolCtx, cancel := context.WithTimeout(ctx, toolTimeout)
	defer cancel()

	result, err := c.mcpSession.CallTool(toolCtx, &mcp.CallToolParams{
		Name:      name,
		Arguments: args,
	})
	if err != nil {
		return nil, err
	}

	var texts []string
	for _, content := range result.Content {
		if tc, ok := content.(*mcp.TextContent); ok {
			texts = append(texts, tc.Text)
		}
	}
	summary := strings.Join(texts, "\n")

	if result.IsError {
		return nil, errors.New(summary)
	}

	out := map[string]any{"summary": summary}
	if result.StructuredContent != nil {
		out["result"] = result.StructuredContent
	}
	return out, nil
}

func toolDisplayName(name string) string {
	switch name {
	case "search_jobs":
		return "Job search"
	case "get_job":
		return "Job details"
	case "export_jobs":
		return "Google Sheets export"
	case "top_skills":
		return "Skill statistics"
	default:
		return name
	}
}
