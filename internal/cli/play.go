package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"
)

// clientMessage mirrors the server's inbound message payload
type clientMessage struct {
	Type    string `json:"type"`
	Number  string `json:"number,omitempty"`
	Guess   string `json:"guess,omitempty"`
	Message string `json:"message,omitempty"`
}

func newPlayCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "play <session-id>",
		Short: "Join a session and play interactively",
		Long: `Join a session and play a game from the terminal.

Commands at the prompt:
  lock <number>   Lock in your secret 4-digit number (unique digits)
  guess <number>  Guess the opponent's number on your turn
  say <message>   Send a chat message
  quit            Leave the session

Incoming events are printed as they arrive.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, err := dialSession(args[0], name)
			if err != nil {
				return err
			}
			defer conn.Close()

			fmt.Printf("Joined session %s as %s\n", args[0], name)
			fmt.Println(`Lock your number with "lock <number>", then guess with "guess <number>".`)

			// Print incoming events until the server drops us
			done := make(chan error, 1)
			go func() {
				for {
					_, data, err := conn.ReadMessage()
					if err != nil {
						if reason := rejectionReason(err); reason != "" {
							done <- fmt.Errorf("%s", reason)
						} else {
							done <- nil
						}
						return
					}
					printGameEvent(data, false)
				}
			}()

			// Read commands from stdin
			input := make(chan string)
			go func() {
				scanner := bufio.NewScanner(os.Stdin)
				for scanner.Scan() {
					input <- scanner.Text()
				}
				close(input)
			}()

			for {
				select {
				case err := <-done:
					if err != nil {
						return err
					}
					fmt.Println("Disconnected")
					return nil

				case line, ok := <-input:
					if !ok {
						return nil
					}
					msg, quit := parseCommand(line)
					if quit {
						_ = conn.WriteControl(websocket.CloseMessage,
							websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
							time.Now().Add(time.Second))
						return nil
					}
					if msg == nil {
						continue
					}
					data, _ := json.Marshal(msg)
					if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
						return fmt.Errorf("send failed: %w", err)
					}
				}
			}
		},
	}

	cmd.Flags().StringVar(&name, "name", "Player", "Display name to join with")

	return cmd
}

// parseCommand turns one prompt line into a message to send. It returns
// (nil, false) for lines that don't produce one.
func parseCommand(line string) (*clientMessage, bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil, false
	}

	cmd, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	switch cmd {
	case "lock":
		if rest == "" {
			fmt.Println("Usage: lock <number>")
			return nil, false
		}
		return &clientMessage{Type: "lock_number", Number: rest}, false
	case "guess":
		if rest == "" {
			fmt.Println("Usage: guess <number>")
			return nil, false
		}
		return &clientMessage{Type: "make_guess", Guess: rest}, false
	case "say":
		if rest == "" {
			fmt.Println("Usage: say <message>")
			return nil, false
		}
		return &clientMessage{Type: "chat", Message: rest}, false
	case "quit", "exit":
		return nil, true
	default:
		fmt.Printf("Unknown command %q (try lock, guess, say, quit)\n", cmd)
		return nil, false
	}
}
