package forge

import (
	"embed"
	"strings"
	"text/template"
)

//go:embed templates
var templatesFS embed.FS

var (
	envTmpl      = mustParse("templates/env.tmpl")
	setupTmpl    = mustParse("templates/setup.sh.tmpl")
	workflowTmpl = mustParse("templates/stream.yml.tmpl")
	echoBotTmpl  = mustParse("templates/echo_bot.py.tmpl")

	botScript = mustRead("templates/bot.py")
)

// EnvFile renders the ".env" document loaded by the bot at runtime.
//
// RTMP_URL is TelegramRtmpURL immediately followed by TelegramStreamKey; no
// separator is inserted. The document has no trailing newline.
func EnvFile(cfg Config) string {
	return execute(envTmpl, cfg)
}

// SetupScript renders the Termux installer.
//
// The existence check for "$HOME/.env" is part of the generated script and
// runs on the target device, not here.
func SetupScript(cfg Config) string {
	return execute(setupTmpl, struct {
		Config Config
		Env    string
		Bot    string
	}{cfg, EnvFile(cfg), BotScript()})
}

// BotScript returns the Python bot source. It takes no configuration; the bot
// reads everything from the ".env" file written by SetupScript.
func BotScript() string {
	return botScript
}

// WorkflowFile renders the GitHub Actions workflow.
//
// Only VideoBitrate is substituted. The audio/video branching is shell text
// evaluated by the job.
func WorkflowFile(cfg Config) string {
	return execute(workflowTmpl, struct{ Config Config }{cfg})
}

// EchoBot renders the minimal echo bot used to smoke-test a Termux setup.
// An empty token becomes YOUR_BOT_TOKEN_HERE and an empty owner ID becomes 0.
func EchoBot(token, ownerID string) string {
	if token == "" {
		token = "YOUR_BOT_TOKEN_HERE"
	}
	if ownerID == "" {
		ownerID = "0"
	}
	return execute(echoBotTmpl, struct{ Token, OwnerID string }{token, ownerID})
}

// --- helpers ---

func mustRead(name string) string {
	b, err := templatesFS.ReadFile(name)
	if err != nil {
		panic("forge: " + err.Error()) // programming fault
	}
	return string(b)
}

func mustParse(name string) *template.Template {
	return template.Must(template.New(name).Delims("[[", "]]").Parse(mustRead(name)))
}

// execute runs a parsed skeleton. Data is always plain strings, so a failure
// here can only come from a broken skeleton.
func execute(t *template.Template, data any) string {
	var sb strings.Builder
	if err := t.Execute(&sb, data); err != nil {
		panic("forge: " + err.Error()) // programming fault
	}
	return sb.String()
}
