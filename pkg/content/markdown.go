package content

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	goldmark.WithRendererOptions(html.WithUnsafe()),
)

// RenderHTML converts a record body to HTML. Raw HTML in the body is passed through.
func RenderHTML(rec *Record) ([]byte, error) {
	if rec == nil {
		return nil, nil
	}
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(rec.Body), &buf); err != nil {
		return nil, fmt.Errorf("render %s: %w", rec.Slug, err)
	}
	return buf.Bytes(), nil
}
