package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"
)

// Close codes the server uses to reject a join
const (
	closeSessionNotFound = 4004
	closeSessionFull     = 4003
)

func newWatchCmd() *cobra.Command {
	var name string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "watch <session-id>",
		Short: "Join a session and stream its events",
		Long: `Connect to a session's websocket endpoint and stream events in real-time.

Events include:
  - player_joined: A player joined the session
  - number_locked: A player locked in their secret number
  - guess_made: A guess was made and evaluated
  - player_left: A player disconnected
  - chat: A chat message
  - error: The server rejected a request

Connecting counts as joining: the session must have a free seat.
Press Ctrl+C to disconnect.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, err := dialSession(args[0], name)
			if err != nil {
				return err
			}
			defer conn.Close()

			if !jsonOutput {
				fmt.Printf("Connected to session %s as %s\n", args[0], name)
			}

			// Handle interrupt
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			go func() {
				<-sigCh
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
					time.Now().Add(time.Second))
				conn.Close()
			}()

			for {
				_, data, err := conn.ReadMessage()
				if err != nil {
					if reason := rejectionReason(err); reason != "" {
						return fmt.Errorf("%s", reason)
					}
					if !jsonOutput {
						fmt.Println("Disconnected")
					}
					return nil
				}
				printGameEvent(data, jsonOutput)
			}
		},
	}

	cmd.Flags().StringVar(&name, "name", "Watcher", "Display name to join with")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output events as JSON lines")

	return cmd
}

// rejectionReason maps the server's join-rejection close codes to readable
// messages. It returns "" for a normal disconnect.
func rejectionReason(err error) string {
	var closeErr *websocket.CloseError
	if !errors.As(err, &closeErr) {
		return ""
	}
	switch closeErr.Code {
	case closeSessionNotFound, closeSessionFull:
		return closeErr.Text
	}
	return ""
}

// dialSession opens a websocket connection to a session. A rejected join
// still dials successfully; the server reports it with a close code on the
// first read.
func dialSession(sessionID, name string) (*websocket.Conn, error) {
	wsURL, err := sessionWSURL(cfg.ServerURL, sessionID, name)
	if err != nil {
		return nil, err
	}

	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("connection failed: HTTP %d", resp.StatusCode)
		}
		return nil, fmt.Errorf("connection failed: %w", err)
	}

	return conn, nil
}

// sessionWSURL converts the configured HTTP base URL into the session's
// websocket endpoint
func sessionWSURL(baseURL, sessionID, name string) (string, error) {
	u, err := url.Parse(strings.TrimSuffix(baseURL, "/"))
	if err != nil {
		return "", fmt.Errorf("invalid server URL: %w", err)
	}

	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	}

	u.Path += "/api/v1/sessions/" + sessionID + "/ws"
	u.RawQuery = url.Values{"name": {name}}.Encode()
	return u.String(), nil
}

// GameEvent mirrors the server's event payload
type GameEvent struct {
	Type       string   `json:"type"`
	PlayerID   string   `json:"player_id,omitempty"`
	PlayerName string   `json:"player_name,omitempty"`
	Player     *Player  `json:"player,omitempty"`
	Guess      *Guess   `json:"guess,omitempty"`
	Session    *Session `json:"session,omitempty"`
	Message    string   `json:"message,omitempty"`
}

func printGameEvent(data []byte, jsonOutput bool) {
	if jsonOutput {
		fmt.Println(string(data))
		return
	}

	var evt GameEvent
	if err := json.Unmarshal(data, &evt); err != nil {
		fmt.Println(string(data))
		return
	}

	timestamp := time.Now().Format("15:04:05")

	switch evt.Type {
	case "player_joined":
		name := evt.PlayerID
		if evt.Player != nil {
			name = evt.Player.Name
		}
		fmt.Printf("[%s] %s joined", timestamp, name)
		if evt.Session != nil {
			fmt.Printf(" (%d/%d, %s)", len(evt.Session.Players), evt.Session.MaxPlayers, evt.Session.Status)
		}
		fmt.Println()
	case "number_locked":
		fmt.Printf("[%s] %s locked their number", timestamp, evt.PlayerID)
		if evt.Session != nil && evt.Session.Status == "in_progress" {
			fmt.Printf(" - game on! %s goes first", evt.Session.CurrentTurn)
		}
		fmt.Println()
	case "guess_made":
		if evt.Guess != nil {
			fmt.Printf("[%s] %s guessed %s: %d digits, %d in place\n",
				timestamp, evt.Guess.PlayerName, evt.Guess.Guess,
				evt.Guess.CorrectDigits, evt.Guess.CorrectPositions)
			if evt.Session != nil && evt.Session.Winner != "" {
				fmt.Printf("[%s] *** %s wins! ***\n", timestamp, evt.Guess.PlayerName)
			}
		}
	case "player_left":
		fmt.Printf("[%s] %s left\n", timestamp, evt.PlayerName)
	case "chat":
		fmt.Printf("[%s] <%s> %s\n", timestamp, evt.PlayerName, evt.Message)
	case "error":
		fmt.Printf("[%s] error: %s\n", timestamp, evt.Message)
	default:
		fmt.Printf("[%s] %s: %s\n", timestamp, evt.Type, string(data))
	}
}
