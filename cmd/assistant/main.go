package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
)

const defaultMCPURL = "http://localhost:8080"

func mcpEndpoint(raw string) string {
	if raw == "" {
		raw = defaultMCPURL
	}
	if strings.HasSuffix(raw, "/mcp/stream") {
		return raw
	}
	return strings.TrimSuffix(raw, "/") + "/mcp/stream"
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}

func main() {
	_ = godotenv.Load()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	endpoint := mcpEndpoint(os.Getenv("MCP_URL"))

	apiKey := firstEnv("GOOGLE_API_KEY", "GEMINI_API_KEY")
	if apiKey == "" {
		log.Fatal("GOOGLE_API_KEY or GEMINI_API_KEY environment variable must be set")
	}

	model := firstEnv("GOOGLE_MODEL")
	if model == "" {
		model = "gemini-2.5-flash"
	}

	sheetsID := firstEnv("GOOGLE_SHEETS_SPREADSHEET_ID", "GOOGLE_SHEETS_ID")

	fmt.Println(strings.Repeat("=", 80))
	fmt.Printf("MCP Server URL: %s\n", endpoint)
	fmt.Printf("Google Model: %s\n", model)
	if sheetsID != "" {
		fmt.Printf("Google Sheets ID: %s\n", sheetsID)
	} else {
		fmt.Println("Google Sheets ID: not set")
	}
	fmt.Println(strings.Repeat("=", 80))

	client, err := NewClient(ctx, endpoint, apiKey, model, sheetsID)
	if err != nil {
		log.Fatalf("Failed to create client: %v", err)
	}
	defer func() {
		done := make(chan struct{})
		go func() {
			_ = client.Close()
			close(done)
		}()
		select {
		case <-done:
		case <-time.After(500 * time.Millisecond):
			fmt.Println("Warning: client close timed out")
		}
	}()

	fmt.Printf("\nConnected (session ID: %s), %d tools available\n", client.mcpSession.ID(), len(client.tools))
	for i, tool := range client.tools {
		fmt.Printf("  %d. %s\n", i+1, tool.Name)
	}

	if len(os.Args) > 1 {
		if err := client.RunQuery(ctx, strings.Join(os.Args[1:], " ")); err != nil {
			log.Printf("Error: %v", err)
		}
		return
	}

	fmt.Println("\nType 'quit' or 'exit' to end the session.")

	inputs := make(chan string)
	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			inputs <- scanner.Text()
		}
		close(inputs)
	}()

	for {
		fmt.Print("\nYour request: ")

		select {
		case <-ctx.Done():
			fmt.Println("\nShutting down...")
			return
		case input, ok := <-inputs:
			if !ok {
				return
			}
			input = strings.TrimSpace(input)
			switch strings.ToLower(input) {
			case "":
				continue
			case "quit", "exit", "q":
				return
			}

			if err := client.RunQuery(ctx, input); err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					return
				}
				fmt.Printf("\nAn error occurred: %v\n", err)
			}
		}
	}
}
