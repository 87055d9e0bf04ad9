// Package chat is the boundary to the hosted text-completion service that
// answers streaming questions. A Gateway takes the prior conversation plus a
// new message and returns the model's reply as markdown.
package chat

import (
	"context"
	"errors"
)

// Role is the author of a Turn.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// Turn is one message of a conversation.
type Turn struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

// ErrNetwork covers every failure to get a reply: transport, auth, quota
// and empty responses alike.
var ErrNetwork = errors.New("error communicating with AI")

// Gateway sends history plus message and returns the reply text.
type Gateway interface {
	Send(ctx context.Context, history []Turn, message string) (string, error)
}

const (
	// WelcomeText opens every conversation.
	WelcomeText = "Hello! I'm your Streaming Assistant. I can help you with FFmpeg commands, Alist configuration errors, or GitHub Actions syntax. What are you stuck on?"

	// FailureText replaces the reply when the gateway fails.
	FailureText = "Error communicating with AI - check your API key and connection."

	DefaultModel = "gemini-2.5-flash"

	DefaultSystemInstruction = "You are a technical assistant for StreamForge. You help users configure their " +
		"streaming setup involving Alist, Termux, and GitHub Actions. You can provide FFmpeg command fixes, " +
		"debug bot scripts, and explain configuration options. Be concise and technical."
)

// Welcome returns the opening model turn.
func Welcome() Turn { return Turn{Role: RoleModel, Text: WelcomeText} }
