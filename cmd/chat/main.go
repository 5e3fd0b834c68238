package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"tripwise-backend/internal/client"
	"tripwise-backend/internal/config"
)

const banner = `
🧭 TRIPWISE 🧭
Your travel planning companion

I can help you with:
• Destination recommendations
• Packing suggestions
• Local attractions, budgets, visas and more

Type 'quit' to exit, 'help' for commands, 'summary' for the conversation so far
`

const helpText = `
Available commands:
• quit/exit/bye - leave the chat
• help          - show this message
• summary       - show the conversation so far
• clear         - reset the conversation

Example questions:
• "Where should I go for a beach vacation with a $2000 budget?"
• "What should I pack for a week in Japan in spring?"
• "What are the best attractions in Paris?"
`

func main() {
	cfg := config.Load()
	baseURL := os.Getenv("BACKEND_URL")
	if baseURL == "" {
		baseURL = fmt.Sprintf("http://localhost:%s", cfg.Port)
	}

	// Generous timeout: the backend may be waiting on a local model.
	c := client.New(baseURL, uuid.New().String(), 120*time.Second)

	fmt.Print(banner, "\n")
	fmt.Println("🔮 Assistant: Hello! How can I help you with your travel plans today?")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("\n🧳 You: ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}

		switch strings.ToLower(input) {
		case "quit", "exit", "bye":
			fmt.Println("\n🔮 Assistant: Safe travels! Come back if you need more travel advice. 👋")
			return
		case "help":
			fmt.Print(helpText, "\n")
			continue
		case "summary":
			summary, err := c.Summary(context.Background())
			if err != nil {
				printError(err)
				continue
			}
			fmt.Printf("\n📊 Conversation Summary:\n%v\n", summary.Summary)
			continue
		case "clear":
			if err := c.Reset(context.Background()); err != nil {
				printError(err)
				continue
			}
			fmt.Println("🔮 Assistant: Conversation cleared! How can I help you now?")
			continue
		}

		fmt.Println("\n🤖 Thinking...")
		resp, err := c.Ask(context.Background(), input)
		if err != nil {
			printError(err)
			continue
		}

		fmt.Printf("🔮 Assistant: %s\n", resp.Answer)
		if resp.Followup != "" {
			fmt.Printf("💬 %s\n", resp.Followup)
		}
	}

	if err := scanner.Err(); err != nil {
		log.Fatalf("read input: %v", err)
	}
}

func printError(err error) {
	if errors.Is(err, client.ErrBackendUnreachable) {
		fmt.Println("❌ Could not reach the backend. Is the server running?")
		return
	}
	fmt.Printf("❌ Error: %v\n", err)
}
