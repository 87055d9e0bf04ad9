package forge_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/edirooss/streamforge/pkg/forge"
)

func fields(issues []forge.Issue, sev forge.Severity) []string {
	var out []string
	for _, is := range issues {
		if is.Severity == sev {
			out = append(out, is.Field)
		}
	}
	return out
}

func TestCheckDefaults(t *testing.T) {
	issues := forge.Check(forge.DefaultConfig())
	if !forge.Ready(issues) {
		t.Fatalf("defaults should be ready, got %+v", issues)
	}
	want := []string{"telegramBotToken", "telegramStreamKey", "githubPat"}
	if diff := cmp.Diff(want, fields(issues, forge.SeverityWarning)); diff != "" {
		t.Fatalf("warnings mismatch (-want +got):\n%s", diff)
	}
}

func TestCheckFlagsCorruptingValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*forge.Config)
		errors []string
	}{
		{"newline in token", func(c *forge.Config) { c.TelegramBotToken = "a\nb" }, []string{"telegramBotToken"}},
		{"EOF line in pat", func(c *forge.Config) { c.GithubPAT = "x\nEOF\ny" }, []string{"githubPat", "githubPat"}},
		{"empty rtmp", func(c *forge.Config) { c.TelegramRtmpURL = "" }, []string{"telegramRtmpUrl"}},
		{"shell in secret", func(c *forge.Config) { c.Aria2Secret = "a b;rm" }, []string{"aria2Secret"}},
		{"equals in secret", func(c *forge.Config) { c.Aria2Secret = "a=b" }, []string{"aria2Secret"}},
		{"bad bitrate", func(c *forge.Config) { c.VideoBitrate = "fast" }, []string{"videoBitrate"}},
		{"empty bitrate", func(c *forge.Config) { c.VideoBitrate = "" }, []string{"videoBitrate"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := forge.DefaultConfig()
			cfg.TelegramBotToken = "1:x"
			cfg.TelegramStreamKey = "k"
			cfg.GithubPAT = "p"
			tt.mutate(&cfg)

			issues := forge.Check(cfg)
			if forge.Ready(issues) {
				t.Fatal("expected not ready")
			}
			if diff := cmp.Diff(tt.errors, fields(issues, forge.SeverityError)); diff != "" {
				t.Fatalf("errors mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCheckWarnings(t *testing.T) {
	cfg := forge.DefaultConfig()
	cfg.TelegramBotToken = "1:x"
	cfg.TelegramStreamKey = "k"
	cfg.GithubPAT = "p"
	cfg.TelegramAdminID = "me"
	cfg.AlistPassword = "pa$$"
	cfg.TelegramRtmpURL = "https://example.com/"

	issues := forge.Check(cfg)
	if !forge.Ready(issues) {
		t.Fatalf("warnings only, got %+v", issues)
	}
	want := []string{"alistPassword", "telegramAdminId", "telegramRtmpUrl"}
	if diff := cmp.Diff(want, fields(issues, forge.SeverityWarning)); diff != "" {
		t.Fatalf("warnings mismatch (-want +got):\n%s", diff)
	}
}

func TestCheckDoesNotAlterOutput(t *testing.T) {
	cfg := forge.Config{TelegramBotToken: "a\nEOF\n$x"}
	before := forge.SetupScript(cfg)
	forge.Check(cfg)
	if after := forge.SetupScript(cfg); after != before {
		t.Fatal("Check changed rendered output")
	}
}
