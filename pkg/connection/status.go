package connection

import "fmt"

// Splash status texts.
const (
	TextConnecting   = "Connecting..."
	TextConnected    = "Connected! Loading..."
	TextExhausted    = "Check your connection and try again"
	TextReconnecting = "Reconnecting..."
)

// Status is the message sent to the display layer whenever the splash text
// changes.
type Status struct {
	Phase       Phase  `json:"phase"`
	Text        string `json:"text"`
	Attempt     int    `json:"attempt"`
	MaxAttempts int    `json:"maxAttempts"`
}

// RetryingText returns the status text for automatic attempt k of max.
func RetryingText(attempt, max int) string {
	return fmt.Sprintf("Retrying (%d/%d)...", attempt, max)
}

// attemptText returns the text announced when an automatic attempt starts.
func attemptText(attempt, max int) string {
	if attempt <= 1 {
		return TextConnecting
	}
	return RetryingText(attempt, max)
}
