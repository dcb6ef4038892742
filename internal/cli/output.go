package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Session:
		o.printSession(v)
	case SessionList:
		o.printSessionList(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Player response type (matches API)
type Player struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	JoinedAt time.Time `json:"joined_at"`
	IsReady  bool      `json:"is_ready"`
}

// Guess response type
type Guess struct {
	PlayerID         string    `json:"player_id"`
	PlayerName       string    `json:"player_name"`
	Guess            string    `json:"guess"`
	CorrectDigits    int       `json:"correct_digits"`
	CorrectPositions int       `json:"correct_positions"`
	Timestamp        time.Time `json:"timestamp"`
}

// Session response type
type Session struct {
	ID          string    `json:"session_id"`
	CreatedAt   time.Time `json:"created_at"`
	Players     []Player  `json:"players"`
	MaxPlayers  int       `json:"max_players"`
	Status      string    `json:"status"`
	CurrentTurn string    `json:"current_turn"`
	Guesses     []Guess   `json:"guesses"`
	Winner      string    `json:"winner"`
}

// SessionList response type
type SessionList struct {
	Sessions []Session `json:"sessions"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printSession(s Session) {
	fmt.Printf("Session: %s\n", s.ID)
	fmt.Printf("Status: %s\n", s.Status)
	fmt.Printf("Created: %s\n", s.CreatedAt.Format(time.RFC3339))
	fmt.Printf("Players (%d/%d):\n", len(s.Players), s.MaxPlayers)
	for _, p := range s.Players {
		readyStr := ""
		if p.IsReady {
			readyStr = " [ready]"
		}
		turnStr := ""
		if s.CurrentTurn == p.ID {
			turnStr = " [turn]"
		}
		fmt.Printf("  - %s (%s)%s%s\n", p.Name, p.ID, readyStr, turnStr)
	}
	if len(s.Guesses) > 0 {
		fmt.Printf("Guesses (%d):\n", len(s.Guesses))
		for _, g := range s.Guesses {
			fmt.Printf("  - %s guessed %s: %d digits, %d in place\n",
				g.PlayerName, g.Guess, g.CorrectDigits, g.CorrectPositions)
		}
	}
	if s.Winner != "" {
		fmt.Printf("Winner: %s\n", s.Winner)
	}
}

func (o *Output) printSessionList(l SessionList) {
	if len(l.Sessions) == 0 {
		fmt.Println("No sessions")
		return
	}
	fmt.Printf("Sessions (%d):\n", len(l.Sessions))
	for _, s := range l.Sessions {
		fmt.Printf("  - %s  %-11s  %d/%d players\n", s.ID, s.Status, len(s.Players), s.MaxPlayers)
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
