package parser

import (
	"bytes"
	"fmt"
	"io"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmparser "github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"golang.org/x/net/html"

	"github.com/dgallion1/contentkit/internal/doctree"
)

// MarkdownParser handles Markdown files using goldmark.
//
// Raw HTML is passed through so that tab markers and embeds written as HTML
// comments or tags survive into the tree. Heading ids are left to the
// transforms; only explicit "{#id}" attributes are applied here.
type MarkdownParser struct {
	md goldmark.Markdown
}

// NewMarkdownParser builds a parser with GFM and footnotes enabled.
func NewMarkdownParser() *MarkdownParser {
	return &MarkdownParser{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM, extension.Footnote),
			goldmark.WithParserOptions(gmparser.WithAttribute()),
			goldmark.WithRendererOptions(gmhtml.WithUnsafe()),
		),
	}
}

func (p *MarkdownParser) Parse(r io.Reader, filename string) (*html.Node, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := p.md.Convert(src, &buf); err != nil {
		return nil, fmt.Errorf("markdown %s: %w", filename, err)
	}

	root, err := doctree.ParseFragment(&buf)
	if err != nil {
		return nil, fmt.Errorf("markdown %s: %w", filename, err)
	}
	return root, nil
}
