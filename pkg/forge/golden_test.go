package forge_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/edirooss/streamforge/pkg/forge"
)

// Golden files under testdata/ are the reference documents for these
// configs. Output must match them byte for byte.
func goldenConfigs() map[string]forge.Config {
	filled := forge.DefaultConfig()
	filled.GithubUser = "alice"
	filled.GithubRepo = "streams"
	filled.GithubPAT = "ghp_secret"
	filled.TelegramBotToken = "123456:ABC-def {{ .Token }} [[ .Config ]]"
	filled.TelegramAdminID = "1878794912"
	filled.TelegramStreamKey = "ABC123"
	filled.AlistPassword = "pa$$ `w`"
	filled.Aria2Secret = "s3cret"
	filled.VideoBitrate = "4500k"

	return map[string]forge.Config{
		"defaults": forge.DefaultConfig(),
		"filled":   filled,
	}
}

func readGolden(t *testing.T, name string) string {
	t.Helper()
	b, err := os.ReadFile(filepath.Join("testdata", name))
	if err != nil {
		t.Fatal(err)
	}
	return string(b)
}

func TestRenderMatchesGolden(t *testing.T) {
	docs := map[forge.Document]string{
		forge.DocEnv:      "env.golden",
		forge.DocSetup:    "setup.sh.golden",
		forge.DocWorkflow: "stream.yml.golden",
	}
	for name, cfg := range goldenConfigs() {
		for doc, file := range docs {
			t.Run(name+"/"+file, func(t *testing.T) {
				got, err := forge.Render(doc, cfg)
				if err != nil {
					t.Fatal(err)
				}
				if diff := cmp.Diff(readGolden(t, filepath.Join(name, file)), got); diff != "" {
					t.Fatalf("%s mismatch (-want +got):\n%s", doc, diff)
				}
			})
		}
	}
}

func TestBotScriptMatchesGolden(t *testing.T) {
	if diff := cmp.Diff(readGolden(t, "bot.py.golden"), forge.BotScript()); diff != "" {
		t.Fatalf("bot script mismatch (-want +got):\n%s", diff)
	}
}
