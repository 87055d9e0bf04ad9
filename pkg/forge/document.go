package forge

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
)

var ErrUnknownDocument = errors.New("unknown document")

// Document names one of the generated artifacts.
type Document string

const (
	DocEnv      Document = "env"
	DocSetup    Document = "setup"
	DocBot      Document = "bot"
	DocWorkflow Document = "workflow"
)

// Documents lists every artifact in canonical order.
var Documents = []Document{DocSetup, DocBot, DocEnv, DocWorkflow}

// ParseDocument resolves a document name (case-insensitive).
func ParseDocument(s string) (Document, error) {
	d := Document(strings.ToLower(strings.TrimSpace(s)))
	switch d {
	case DocEnv, DocSetup, DocBot, DocWorkflow:
		return d, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownDocument, s)
}

// FileName is the path the artifact is meant to be saved under.
func (d Document) FileName() string {
	switch d {
	case DocEnv:
		return ".env"
	case DocSetup:
		return "setup.sh"
	case DocBot:
		return "bot.py"
	case DocWorkflow:
		return ".github/workflows/stream.yml"
	}
	return ""
}

// Language is the highlighting hint for the artifact.
func (d Document) Language() string {
	switch d {
	case DocEnv:
		return "properties"
	case DocSetup:
		return "bash"
	case DocBot:
		return "python"
	case DocWorkflow:
		return "yaml"
	}
	return ""
}

// Mode is the file mode the artifact should be written with. The env file
// carries secrets; the setup script is executable.
func (d Document) Mode() fs.FileMode {
	switch d {
	case DocEnv:
		return 0o600
	case DocSetup:
		return 0o755
	}
	return 0o644
}

// Artifact is one rendered document.
type Artifact struct {
	Document Document `json:"document"`
	FileName string   `json:"fileName"`
	Language string   `json:"language"`
	Content  string   `json:"content"`
}

// Render renders a single document. The only error is ErrUnknownDocument.
func Render(d Document, cfg Config) (string, error) {
	switch d {
	case DocEnv:
		return EnvFile(cfg), nil
	case DocSetup:
		return SetupScript(cfg), nil
	case DocBot:
		return BotScript(), nil
	case DocWorkflow:
		return WorkflowFile(cfg), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownDocument, string(d))
}

// RenderAll renders every document in canonical order.
func RenderAll(cfg Config) []Artifact {
	out := make([]Artifact, 0, len(Documents))
	for _, d := range Documents {
		content, _ := Render(d, cfg) // Documents holds known names only
		out = append(out, Artifact{
			Document: d,
			FileName: d.FileName(),
			Language: d.Language(),
			Content:  content,
		})
	}
	return out
}
