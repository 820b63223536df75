package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"

	mcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

func main() {
	endpoint := flag.String("endpoint", "http://localhost:8080/mcp/stream", "MCP streamable HTTP endpoint")
	query := flag.String("query", "golang", "search_jobs query")
	flag.Parse()

	ctx := context.Background()

	client := mcp.NewClient(&mcp.Implementation{
		Name:    "remote-jobs-test-client",
		Version: "0.1.0",
	}, nil)

	session, err := client.Connect(ctx, &mcp.StreamableClientTransport{Endpoint: *endpoint}, nil)
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer func() { _ = session.Close() }()

	log.Printf("Connected to server (session ID: %s)\n", session.ID())

	testListTools(ctx, session)
	firstID := testSearchJobs(ctx, session, *query)
	if firstID != "" {
		testGetJob(ctx, session, firstID)
	}

	fmt.Println("\nAll tests completed")
}

func testListTools(ctx context.Context, session *mcp.ClientSession) {
	fmt.Println("\nTEST: list tools")

	res, err := session.ListTools(ctx, &mcp.ListToolsParams{})
	if err != nil {
		log.Printf("list tools failed: %v", err)
		return
	}
	for _, t := range res.Tools {
		fmt.Printf("  %s: %s\n", t.Name, t.Description)
	}
}

// testSearchJobs returns the id of the first job found
func testSearchJobs(ctx context.Context, session *mcp.ClientSession, query string) string {
	fmt.Println("\nTEST: search_jobs")

	result, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name: "search_jobs",
		Arguments: map[string]any{
			"query": query,
			"limit": 5,
			"sort":  "newest",
		},
	})
	if err != nil {
		log.Printf("search_jobs failed: %v", err)
		return ""
	}
	printResult(result)

	var out struct {
		Jobs []struct {
			ID    string `json:"id"`
			Title string `json:"title"`
		} `json:"jobs"`
	}
	raw, _ := json.Marshal(result.StructuredContent)
	if err := json.Unmarshal(raw, &out); err != nil || len(out.Jobs) == 0 {
		return ""
	}
	for _, j := range out.Jobs {
		fmt.Printf("  %s  %s\n", j.ID, j.Title)
	}
	fmt.Println("search_jobs passed")
	return out.Jobs[0].ID
}

func testGetJob(ctx context.Context, session *mcp.ClientSession, id string) {
	fmt.Println("\nTEST: get_job")

	result, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name:      "get_job",
		Arguments: map[string]any{"id": id},
	})
	if err != nil {
		log.Printf("get_job failed: %v", err)
		return
	}
	printResult(result)
	if result.IsError {
		log.Printf("get_job returned an error for %q", id)
		return
	}
	fmt.Println("get_job passed")
}

func printResult(res *mcp.CallToolResult) {
	for _, c := range res.Content {
		if txt, ok := c.(*mcp.TextContent); ok {
			fmt.Println(txt.Text)
		}
	}
}
