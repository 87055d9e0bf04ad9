package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/edirooss/streamforge/internal/chat"
)

func newChatCmd() *cobra.Command {
	var (
		model   string
		timeout time.Duration
		plain   bool
	)
	cmd := &cobra.Command{
		Use:   "chat <question...>",
		Short: "Ask the streaming assistant",
		Long: `Ask about FFmpeg, Alist, aria2 or GitHub Actions.

Uses Gemini when GEMINI_API_KEY is set and the offline Termux help otherwise.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := buildLogger()
			defer log.Sync()

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			var gw chat.Gateway = chat.OfflineGateway{}
			if key := os.Getenv("GEMINI_API_KEY"); key != "" {
				g, err := chat.NewGeminiGateway(ctx, log, chat.GeminiConfig{APIKey: key, Model: model})
				if err != nil {
					return err
				}
				gw = g
			}

			reply, err := gw.Send(ctx, []chat.Turn{chat.Welcome()}, strings.Join(args, " "))
			if err != nil {
				return fmt.Errorf("%s: %w", chat.FailureText, err)
			}
			if plain {
				fmt.Fprintln(cmd.OutOrStdout(), reply)
				return nil
			}
			return renderMarkdown(cmd, reply)
		},
	}
	cmd.Flags().StringVar(&model, "model", chat.DefaultModel, "Gemini model")
	cmd.Flags().DurationVar(&timeout, "timeout", 60*time.Second, "request timeout")
	cmd.Flags().BoolVar(&plain, "plain", false, "print raw markdown")
	return cmd
}

func renderMarkdown(cmd *cobra.Command, md string) error {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return fmt.Errorf("markdown renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return fmt.Errorf("render markdown: %w", err)
	}
	fmt.Fprint(cmd.OutOrStdout(), out)
	return nil
}
