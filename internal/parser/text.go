package parser

import (
	"bufio"
	"io"
	"strings"

	"golang.org/x/net/html"

	"github.com/dgallion1/contentkit/internal/doctree"
)

// TextParser handles plain text posts. Blank lines separate paragraphs.
type TextParser struct{}

func (p *TextParser) Parse(r io.Reader, filename string) (*html.Node, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var paragraphs []string
	var current strings.Builder

	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			if current.Len() > 0 {
				paragraphs = append(paragraphs, current.String())
				current.Reset()
			}
		} else {
			if current.Len() > 0 {
				current.WriteString("\n")
			}
			current.WriteString(line)
		}
	}
	if current.Len() > 0 {
		paragraphs = append(paragraphs, current.String())
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	root := doctree.Document()
	for _, para := range paragraphs {
		root.AppendChild(doctree.Element("p", nil, doctree.Text(para)))
	}
	return root, nil
}
