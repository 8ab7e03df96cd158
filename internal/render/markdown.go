package render

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"
)

var (
	markdown = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(goldmarkhtml.WithHardWraps()),
	)

	sanitizer = bluemonday.UGCPolicy()
)

// MarkdownHTML turns backend text into sanitized HTML. Single newlines are
// kept as line breaks.
func MarkdownHTML(text string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(text), &buf); err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}

	return template.HTML(sanitizer.SanitizeBytes(buf.Bytes())), nil //nolint:gosec // sanitized above
}
