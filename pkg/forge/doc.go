// Package forge renders the StreamForge deployment artifacts from a Config.
//
// Design:
//
//   - This layer is a pure "text construction" module: no execution, no I/O.
//     Each renderer maps a Config to one document and nothing else.
//   - Renderers are total and deterministic: every Config (including the zero
//     value) renders, and the same Config always yields byte-identical text.
//   - Values are substituted verbatim. Nothing is trimmed, quoted or escaped,
//     so generated files stay byte-compatible with what StreamForge has always
//     produced. Use Check to surface values that would corrupt a document.
//
// Documents:
//
//	forge.EnvFile(cfg)      // ".env"            KEY=value lines
//	forge.SetupScript(cfg)  // "setup.sh"        installer, embeds EnvFile and BotScript
//	forge.BotScript()       // "bot.py"          fixed payload, no substitution
//	forge.WorkflowFile(cfg) // "stream.yml"      GitHub Actions job
//
// Nesting:
//
//	The setup script embeds EnvFile(cfg) in an unquoted EOF here-document and
//	BotScript() in a quoted 'PYTHON_EOF' here-document. The embedded bodies are
//	not escaped; a line equal to a terminator inside them ends the block early.
//
// Skeletons live in templates/ and are parsed once with "[[ ]]" delimiters,
// which keeps GitHub Actions "${{ }}" expressions literal.
package forge
