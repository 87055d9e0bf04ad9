package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/spf13/cobra"

	"github.com/edirooss/streamforge/pkg/forge"
)

// field is one form question bound to a Config field.
type field struct {
	msg    string
	help   string
	secret bool
	ptr    *string
}

func formFields(cfg *forge.Config) []field {
	return []field{
		{"GitHub user", "owner of the repository running the stream workflow", false, &cfg.GithubUser},
		{"GitHub repository", "repository holding .github/workflows/stream.yml", false, &cfg.GithubRepo},
		{"GitHub token", "personal access token allowed to dispatch workflows", true, &cfg.GithubPAT},
		{"Telegram bot token", "from @BotFather", true, &cfg.TelegramBotToken},
		{"Telegram admin id", "numeric user id allowed to control the bot", false, &cfg.TelegramAdminID},
		{"Telegram RTMP server", "stream server URL from the live stream settings", false, &cfg.TelegramRtmpURL},
		{"Telegram stream key", "appended to the RTMP server URL", true, &cfg.TelegramStreamKey},
		{"Alist admin password", "", true, &cfg.AlistPassword},
		{"aria2 RPC secret", "letters and digits only", true, &cfg.Aria2Secret},
		{"Default cover URL", "image shown while streaming audio", false, &cfg.DefaultCoverURL},
		{"Video bitrate", "ffmpeg bitrate such as 6000k", false, &cfg.VideoBitrate},
	}
}

func newInitCmd() *cobra.Command {
	var (
		outPath string
		force   bool
	)
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a config file interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := os.Stat(outPath); err == nil && !force {
				return fmt.Errorf("%s exists (use --force to overwrite)", outPath)
			}

			cfg, err := loadForgeConfig("")
			if err != nil {
				return err
			}
			for _, f := range formFields(&cfg) {
				if err := ask(f); err != nil {
					if errors.Is(err, terminal.InterruptErr) {
						return errors.New("aborted")
					}
					return fmt.Errorf("%s: %w", f.msg, err)
				}
			}

			printIssues(cmd.ErrOrStderr(), forge.Check(cfg))
			if err := saveForgeConfig(outPath, cfg); err != nil {
				return fmt.Errorf("save config: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s; next: streamforge render -c %s\n", outPath, outPath)
			return nil
		},
	}
	cmd.Flags().StringVarP(&outPath, "out", "o", "streamforge.yaml", "config file to write")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")
	return cmd
}

// ask prompts for one field. An empty secret answer keeps the current value.
func ask(f field) error {
	var out string
	if f.secret {
		msg := f.msg
		if *f.ptr != "" {
			msg += " (enter keeps current)"
		}
		if err := survey.AskOne(&survey.Password{Message: msg, Help: f.help}, &out); err != nil {
			return err
		}
		if out != "" {
			*f.ptr = out
		}
		return nil
	}
	if err := survey.AskOne(&survey.Input{Message: f.msg, Help: f.help, Default: *f.ptr}, &out); err != nil {
		return err
	}
	*f.ptr = out
	return nil
}
