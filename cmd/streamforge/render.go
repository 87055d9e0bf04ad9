package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/edirooss/streamforge/pkg/forge"
)

func newRenderCmd() *cobra.Command {
	var (
		configPath string
		outDir     string
		docName    string
		stdout     bool
	)
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Write setup.sh, bot.py, .env and the stream workflow",
		Long: `Render the deployment documents from a config file (see "streamforge init").

Values are embedded verbatim. Problems that would break a generated file are
reported on stderr but never block rendering.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadForgeConfig(configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			printIssues(cmd.ErrOrStderr(), forge.Check(cfg))

			if stdout {
				doc, err := forge.ParseDocument(docName)
				if err != nil {
					return err
				}
				out, _ := forge.Render(doc, cfg)
				_, err = io.WriteString(cmd.OutOrStdout(), out)
				return err
			}

			artifacts := forge.RenderAll(cfg)
			if docName != "" {
				doc, err := forge.ParseDocument(docName)
				if err != nil {
					return err
				}
				artifacts = filterArtifacts(artifacts, doc)
			}
			for _, a := range artifacts {
				p, err := writeArtifact(outDir, a)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "config YAML (defaults when omitted)")
	cmd.Flags().StringVarP(&outDir, "out", "o", ".", "output directory")
	cmd.Flags().StringVarP(&docName, "doc", "d", "", "only this document: setup, bot, env or workflow")
	cmd.Flags().BoolVar(&stdout, "stdout", false, "print the --doc document instead of writing it")
	return cmd
}

func filterArtifacts(all []forge.Artifact, doc forge.Document) []forge.Artifact {
	for _, a := range all {
		if a.Document == doc {
			return []forge.Artifact{a}
		}
	}
	return nil
}

// writeArtifact writes a under dir with the document's file mode and
// returns the path written.
func writeArtifact(dir string, a forge.Artifact) (string, error) {
	p := filepath.Join(dir, filepath.FromSlash(a.FileName))
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return "", fmt.Errorf("mkdir: %w", err)
	}
	mode := a.Document.Mode()
	if err := os.WriteFile(p, []byte(a.Content), mode); err != nil {
		return "", fmt.Errorf("write %s: %w", a.FileName, err)
	}
	// WriteFile keeps the mode of an existing file
	if err := os.Chmod(p, mode); err != nil {
		return "", fmt.Errorf("chmod %s: %w", a.FileName, err)
	}
	return p, nil
}

func printIssues(w io.Writer, issues []forge.Issue) {
	for _, is := range issues {
		fmt.Fprintf(w, "%s: %s %s\n", is.Severity, is.Field, is.Message)
	}
}
