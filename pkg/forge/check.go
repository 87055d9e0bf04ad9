package forge

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/edirooss/streamforge/pkg/avurl"
)

type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Issue flags a Config value that renders into a broken or surprising
// document. Issues never change what the renderers produce.
type Issue struct {
	Field    string   `json:"field"` // JSON field name
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

var (
	bitrateRe = regexp.MustCompile(`^[0-9]+[kKmM]?$`)
	digitsRe  = regexp.MustCompile(`^-?[0-9]+$`)
)

// envFields are substituted into the env file, and through it into the
// setup script's EOF here-document.
func envFields(cfg Config) []struct{ name, value string } {
	return []struct{ name, value string }{
		{"telegramBotToken", cfg.TelegramBotToken},
		{"telegramAdminId", cfg.TelegramAdminID},
		{"githubUser", cfg.GithubUser},
		{"githubRepo", cfg.GithubRepo},
		{"githubPat", cfg.GithubPAT},
		{"telegramRtmpUrl", cfg.TelegramRtmpURL},
		{"telegramStreamKey", cfg.TelegramStreamKey},
		{"defaultCoverUrl", cfg.DefaultCoverURL},
		{"alistPassword", cfg.AlistPassword},
	}
}

// Check reports values the renderers will embed verbatim but that corrupt a
// generated document, plus missing values the stream cannot start without.
// Issues are ordered by field as they appear in the env file, then the
// setup, then the workflow.
func Check(cfg Config) []Issue {
	var out []Issue
	add := func(field string, sev Severity, format string, args ...any) {
		out = append(out, Issue{Field: field, Severity: sev, Message: fmt.Sprintf(format, args...)})
	}

	for _, f := range envFields(cfg) {
		if strings.ContainsAny(f.value, "\r\n") {
			add(f.name, SeverityError, "contains a line break; the .env file will be split into extra lines")
		}
		if hasLine(f.value, "EOF") {
			add(f.name, SeverityError, "contains a line \"EOF\"; it ends the setup script's .env here-document early")
		}
		if strings.Contains(f.value, "$") || strings.Contains(f.value, "`") {
			add(f.name, SeverityWarning, "contains '$' or '`'; the setup script's unquoted here-document will expand it")
		}
	}

	if cfg.TelegramBotToken == "" {
		add("telegramBotToken", SeverityWarning, "is empty; the bot cannot start")
	}
	if cfg.TelegramAdminID != "" && !digitsRe.MatchString(cfg.TelegramAdminID) {
		add("telegramAdminId", SeverityWarning, "%q is not a numeric Telegram user id", cfg.TelegramAdminID)
	}
	if cfg.TelegramRtmpURL == "" {
		add("telegramRtmpUrl", SeverityError, "is empty; the workflow has nowhere to stream")
	} else if _, err := avurl.ParseRTMP(cfg.TelegramRtmpURL + cfg.TelegramStreamKey); err != nil {
		add("telegramRtmpUrl", SeverityWarning, "RTMP_URL %q: %v", cfg.TelegramRtmpURL+cfg.TelegramStreamKey, err)
	}
	if cfg.TelegramStreamKey == "" {
		add("telegramStreamKey", SeverityWarning, "is empty; RTMP_URL will be the bare server URL")
	}
	if cfg.GithubPAT == "" {
		add("githubPat", SeverityWarning, "is empty; the bot cannot dispatch the workflow")
	}

	if strings.ContainsAny(cfg.Aria2Secret, " \t\r\n;&|<>()$`\"'\\") {
		add("aria2Secret", SeverityError, "contains whitespace or shell metacharacters; ARIA_RPC=%s is not a plain assignment", cfg.Aria2Secret)
	}
	if strings.Contains(cfg.Aria2Secret, "=") {
		add("aria2Secret", SeverityError, "contains '='; aria2.conf will misread rpc-secret")
	}

	if !bitrateRe.MatchString(cfg.VideoBitrate) {
		add("videoBitrate", SeverityError, "%q is not an ffmpeg bitrate like 6000k", cfg.VideoBitrate)
	}

	return out
}

// Ready reports whether issues hold no errors.
func Ready(issues []Issue) bool {
	for _, is := range issues {
		if is.Severity == SeverityError {
			return false
		}
	}
	return true
}

func hasLine(s, line string) bool {
	for _, l := range strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n") {
		if l == line {
			return true
		}
	}
	return false
}
