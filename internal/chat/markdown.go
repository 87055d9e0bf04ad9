package chat

import (
	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/microcosm-cc/bluemonday"
)

var policy = func() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("class").Matching(bluemonday.SpaceSeparatedTokens).OnElements("code")
	p.RequireNoFollowOnLinks(true)
	p.AddTargetBlankToFullyQualifiedLinks(true)
	return p
}()

// RenderHTML converts a markdown reply to sanitized HTML.
func RenderHTML(md string) string {
	// parsers are stateful, one per call
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.NoEmptyLineBeforeBlock)
	r := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return string(policy.SanitizeBytes(markdown.ToHTML([]byte(md), p, r)))
}
