package render

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

const (
	// DefaultLanguage is used when the caller does not name one.
	DefaultLanguage = "javascript"

	highlightStyle = "dracula"
)

// HighlightHTML renders code as a line-numbered HTML block with inline
// styles.
func HighlightHTML(code, language string) (template.HTML, error) {
	formatter := chromahtml.New(
		chromahtml.WithLineNumbers(true),
		chromahtml.TabWidth(4),
	)

	var buf bytes.Buffer
	if err := highlight(&buf, formatter, code, language); err != nil {
		return "", err
	}

	return template.HTML(buf.String()), nil //nolint:gosec // chroma escapes token text
}

// HighlightTerminal renders code with 256-colour ANSI escapes.
func HighlightTerminal(code, language string) (string, error) {
	var buf bytes.Buffer
	if err := highlight(&buf, formatters.Get("terminal256"), code, language); err != nil {
		return "", err
	}

	return buf.String(), nil
}

func highlight(buf *bytes.Buffer, formatter chroma.Formatter, code, language string) error {
	iterator, err := lexerFor(code, language).Tokenise(nil, code)
	if err != nil {
		return fmt.Errorf("failed to tokenise code: %w", err)
	}

	if err := formatter.Format(buf, styles.Get(highlightStyle), iterator); err != nil {
		return fmt.Errorf("failed to format code: %w", err)
	}

	return nil
}

// picks a lexer by name, then by content, then plain text
func lexerFor(code, language string) chroma.Lexer {
	if language == "" {
		language = DefaultLanguage
	}

	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Analyse(code)
	}

	if lexer == nil {
		lexer = lexers.Fallback
	}

	return chroma.Coalesce(lexer)
}
