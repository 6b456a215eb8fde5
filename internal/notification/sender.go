// Package notification sends end-of-run messages through the openclaw CLI.
package notification

import (
	"context"
	"os/exec"
	"time"
)

// sendTimeout bounds each openclaw invocation.
const sendTimeout = 10 * time.Second

// Notifier delivers messages to one chat through openclaw.
type Notifier struct {
	Webhook string
	Channel string
	ChatID  string
	Bin     string // default "openclaw"
}

// Enabled reports whether a recipient is configured.
func (n *Notifier) Enabled() bool {
	return n != nil && n.ChatID != ""
}

// Args builds the openclaw argument list for message.
func (n *Notifier) Args(message string) []string {
	return []string{"message", "send",
		"--webhook", n.Webhook,
		"--channel", n.Channel,
		"--chat-id", n.ChatID,
		"--message", message,
	}
}

// Send delivers message. Fire-and-forget: never fails the run, silent on
// failure, no-op when no chat ID is configured.
func (n *Notifier) Send(message string) {
	if !n.Enabled() {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
	defer cancel()

	bin := n.Bin
	if bin == "" {
		bin = "openclaw"
	}
	_ = exec.CommandContext(ctx, bin, n.Args(message)...).Run()
}
