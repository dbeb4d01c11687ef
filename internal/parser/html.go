package parser

import (
	"fmt"
	"io"

	"golang.org/x/net/html"

	"github.com/dgallion1/contentkit/internal/doctree"
)

// HTMLParser handles HTML fragments (post bodies authored as HTML).
type HTMLParser struct{}

func (p *HTMLParser) Parse(r io.Reader, filename string) (*html.Node, error) {
	root, err := doctree.ParseFragment(r)
	if err != nil {
		return nil, fmt.Errorf("html %s: %w", filename, err)
	}
	return root, nil
}
