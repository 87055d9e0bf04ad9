package forge_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/edirooss/streamforge/pkg/forge"
)

func sampleConfig() forge.Config {
	cfg := forge.DefaultConfig()
	cfg.GithubUser = "alice"
	cfg.GithubRepo = "streams"
	cfg.GithubPAT = "ghp_secret"
	cfg.TelegramBotToken = "123456:ABC-def"
	cfg.TelegramAdminID = "1878794912"
	cfg.TelegramStreamKey = "ABC123"
	return cfg
}

func TestEnvFile(t *testing.T) {
	got := forge.EnvFile(sampleConfig())
	want := strings.Join([]string{
		"TG_BOT_TOKEN=123456:ABC-def",
		"TG_ADMIN_ID=1878794912",
		"GITHUB_OWNER=alice",
		"GITHUB_REPO=streams",
		"GITHUB_PAT=ghp_secret",
		"RTMP_URL=rtmp://x.rtmp.t.me/s/ABC123",
		"DEFAULT_COVER=" + forge.DefaultCoverURL,
		"ALIST_HOST=http://127.0.0.1:5244",
		"ALIST_USER=admin",
		"ALIST_PASSWORD=admin",
	}, "\n")
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("env file mismatch (-want +got):\n%s", diff)
	}
}

func TestEnvFileSubstitutesVerbatim(t *testing.T) {
	for _, token := range []string{"", " padded ", "a=b", "x\ny", "${HOME}", "EOF"} {
		cfg := forge.Config{TelegramBotToken: token}
		if got := forge.EnvFile(cfg); !strings.Contains(got, "TG_BOT_TOKEN="+token+"\n") {
			t.Errorf("token %q not substituted verbatim:\n%s", token, got)
		}
	}
}

func TestEnvFileRTMPConcatenation(t *testing.T) {
	cfg := forge.Config{TelegramRtmpURL: "rtmp://x.rtmp.t.me/s/", TelegramStreamKey: "ABC123"}
	if got := forge.EnvFile(cfg); !containsLine(got, "RTMP_URL=rtmp://x.rtmp.t.me/s/ABC123") {
		t.Fatalf("missing concatenated RTMP_URL line:\n%s", got)
	}
}

func TestSetupScriptEmbedsDocuments(t *testing.T) {
	cfg := sampleConfig()
	got := forge.SetupScript(cfg)

	if !strings.Contains(got, forge.BotScript()) {
		t.Fatal("setup script does not contain the bot script verbatim")
	}
	if !strings.Contains(got, "cat << 'PYTHON_EOF' > bot.py\n"+forge.BotScript()+"\nPYTHON_EOF\n") {
		t.Fatal("bot script is not wrapped in the quoted PYTHON_EOF here-document")
	}
	if !strings.Contains(got, "cat << EOF > \"$ENV_FILE\"\n"+forge.EnvFile(cfg)+"\nEOF\nfi\n") {
		t.Fatal("env file is not wrapped in the EOF here-document")
	}
	if !strings.HasPrefix(got, "#!/bin/bash\n") {
		t.Fatal("missing shebang")
	}
	if !containsLine(got, `ENV_FILE="$HOME/.env"`) || !containsLine(got, `if [ -f "$ENV_FILE" ]; then`) {
		t.Fatal("missing .env existence guard")
	}
}

// The secret is assigned once and expanded by the unquoted aria2.conf
// here-document, so the written aria2.conf holds rpc-secret=<secret>.
func TestSetupScriptAria2Secret(t *testing.T) {
	for _, secret := range []string{"streamforge", "s3cret"} {
		got := forge.SetupScript(forge.Config{Aria2Secret: secret})
		for _, line := range []string{"ARIA_RPC=" + secret, "rpc-secret=$ARIA_RPC", "cat << EOF > ~/.config/aria2/aria2.conf"} {
			if !containsLine(got, line) {
				t.Errorf("secret %q: missing line %q", secret, line)
			}
		}
	}
}

func TestWorkflowFileBitrate(t *testing.T) {
	cfg := forge.Config{VideoBitrate: "4500k"}
	got := forge.WorkflowFile(cfg)

	if n := strings.Count(got, "4500k"); n < 3 {
		t.Fatalf("bitrate substituted %d times, want at least 3", n)
	}
	if !strings.Contains(got, "-b:v 4500k -maxrate 4500k -bufsize 12000k") {
		t.Fatal("video branch flags not substituted")
	}
	if !strings.Contains(got, "-b:v 4000k -maxrate 4000k -bufsize 8000k") {
		t.Fatal("audio branch flags changed")
	}
	for _, literal := range []string{
		`FILE_URL="${{ github.event.inputs.file_url }}"`,
		`IMAGE_URL="${{ github.event.inputs.image_url }}"`,
		`RTMP_URL="${{ github.event.inputs.rtmp_url }}"`,
		`if [ -n "$IMAGE_URL" ]; then`,
	} {
		if !strings.Contains(got, literal) {
			t.Errorf("workflow lost literal %q", literal)
		}
	}
	if !strings.HasPrefix(got, "name: Alist Stream to Telegram\n") {
		t.Error("workflow name changed")
	}
}

func TestRenderersAreDeterministic(t *testing.T) {
	cfg := sampleConfig()
	for _, d := range forge.Documents {
		a, err := forge.Render(d, cfg)
		if err != nil {
			t.Fatalf("Render(%s): %v", d, err)
		}
		b, _ := forge.Render(d, cfg)
		if a != b {
			t.Errorf("Render(%s) is not deterministic", d)
		}
	}
}

func TestRenderDoesNotMutateConfig(t *testing.T) {
	cfg := sampleConfig()
	before := cfg
	forge.RenderAll(cfg)
	if diff := cmp.Diff(before, cfg); diff != "" {
		t.Fatalf("config mutated (-before +after):\n%s", diff)
	}
}

func TestEmptyConfigRenders(t *testing.T) {
	var cfg forge.Config
	skeleton := map[forge.Document]string{
		forge.DocEnv:      "ALIST_HOST=http://127.0.0.1:5244",
		forge.DocSetup:    "pm2 save",
		forge.DocBot:      "app.run_polling()",
		forge.DocWorkflow: "runs-on: ubuntu-latest",
	}
	for d, marker := range skeleton {
		got, err := forge.Render(d, cfg)
		if err != nil {
			t.Fatalf("Render(%s): %v", d, err)
		}
		if !strings.Contains(got, marker) {
			t.Errorf("Render(%s) with empty config lost skeleton text %q", d, marker)
		}
	}
	if !containsLine(forge.EnvFile(cfg), "RTMP_URL=") {
		t.Error("empty RTMP_URL line missing")
	}
}

func TestRenderUnknownDocument(t *testing.T) {
	if _, err := forge.Render("zip", forge.Config{}); !errors.Is(err, forge.ErrUnknownDocument) {
		t.Fatalf("want ErrUnknownDocument, got %v", err)
	}
	if _, err := forge.ParseDocument("nope"); !errors.Is(err, forge.ErrUnknownDocument) {
		t.Fatalf("want ErrUnknownDocument, got %v", err)
	}
	if d, err := forge.ParseDocument(" Workflow "); err != nil || d != forge.DocWorkflow {
		t.Fatalf("ParseDocument(Workflow) = %q, %v", d, err)
	}
}

func TestRenderAll(t *testing.T) {
	got := forge.RenderAll(forge.DefaultConfig())
	var names []string
	for _, a := range got {
		names = append(names, a.FileName)
		if a.Content == "" {
			t.Errorf("%s rendered empty", a.FileName)
		}
	}
	want := []string{"setup.sh", "bot.py", ".env", ".github/workflows/stream.yml"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Fatalf("artifact order mismatch (-want +got):\n%s", diff)
	}
}

func TestBotScriptIsFixed(t *testing.T) {
	got := forge.BotScript()
	for _, want := range []string{
		`load_dotenv(env_path)`,
		`BOT_TOKEN = os.getenv("TG_BOT_TOKEN")`,
		`"actions/workflows/stream.yml/dispatches"`,
		`return ext in ['mp3', 'flac', 'wav', 'm4a', 'aac', 'ogg']`,
		"txt = f\"📂 路径: `${path}`\\n📄 页码: ${page}\"",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("bot script missing %q", want)
		}
	}
	if containsLine(got, "PYTHON_EOF") {
		t.Error("bot script holds its own here-document terminator")
	}
}

func TestEchoBot(t *testing.T) {
	got := forge.EchoBot("", "")
	if !containsLine(got, `TOKEN = "YOUR_BOT_TOKEN_HERE"`) || !containsLine(got, "OWNER_ID = 0") {
		t.Fatalf("defaults not applied:\n%s", got)
	}
	got = forge.EchoBot("42:xyz", "1878794912")
	if !containsLine(got, `TOKEN = "42:xyz"`) || !containsLine(got, "OWNER_ID = 1878794912") {
		t.Fatalf("values not substituted:\n%s", got)
	}
}

func TestDocumentMetadata(t *testing.T) {
	if forge.DocEnv.Mode() != 0o600 || forge.DocSetup.Mode() != 0o755 || forge.DocBot.Mode() != 0o644 {
		t.Fatal("unexpected file modes")
	}
	if forge.DocWorkflow.Language() != "yaml" || forge.DocSetup.Language() != "bash" {
		t.Fatal("unexpected languages")
	}
}

func containsLine(s, line string) bool {
	for _, l := range strings.Split(s, "\n") {
		if l == line {
			return true
		}
	}
	return false
}
