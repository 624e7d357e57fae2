package repl

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/atemmel/sims-chatbot/internal/service"

	"github.com/fatih/color"
)

// connectionID is the fixed identifier the REPL registers with the session
// registry in place of a websocket connection.
const connectionID = "cli"

// Run drives a single-session read-print loop over stdin/stdout, for
// manual testing without a frontend. It returns when stdin closes or the
// context is cancelled.
func Run(ctx context.Context, chat service.IChatService) error {
	prompt := color.New(color.FgCyan, color.Bold)
	warn := color.New(color.FgYellow)

	greeting := chat.Connect(ctx, connectionID)
	defer chat.Disconnect(context.Background(), connectionID)

	printFragments(greeting)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		select {
		case <-ctx.Done():
			fmt.Println("\nExiting...")
			return nil
		default:
		}

		prompt.Print(">> ")
		if !scanner.Scan() {
			fmt.Println("\nExiting...")
			return scanner.Err()
		}

		fragments, err := chat.Message(ctx, connectionID, scanner.Text())
		if err != nil {
			warn.Printf("Could not send message: %v\n", err)
			continue
		}
		printFragments(fragments)
	}
}

func printFragments(fragments interface{}) {
	data, err := json.MarshalIndent(fragments, "", "  ")
	if err != nil {
		fmt.Printf("%+v\n", fragments)
		return
	}
	fmt.Println(string(data))
}
