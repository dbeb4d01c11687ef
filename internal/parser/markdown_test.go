package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/dgallion1/contentkit/internal/doctree"
)

func topLevelTags(root *html.Node) []string {
	var tags []string
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.ElementNode:
			tags = append(tags, c.Data)
		case html.CommentNode:
			tags = append(tags, "<!--"+c.Data+"-->")
		}
	}
	return tags
}

func TestMarkdownParser_HeadingsAndParagraphs(t *testing.T) {
	input := `# Title

Intro text.

## Section A

Section A content.
`
	root, err := NewMarkdownParser().Parse(strings.NewReader(input), "doc.md")
	require.NoError(t, err)

	assert.Equal(t, []string{"h1", "p", "h2", "p"}, topLevelTags(root))

	// no automatic ids: those are assigned after the tab transform
	_, ok := doctree.Attr(root.FirstChild, "id")
	assert.False(t, ok)
}

func TestMarkdownParser_KeepsTabMarkers(t *testing.T) {
	input := "<!-- tabs:start -->\n\n# A\n\ncontent-a\n\n# B\n\ncontent-b\n\n<!-- tabs:end -->\n"

	root, err := NewMarkdownParser().Parse(strings.NewReader(input), "tabs.md")
	require.NoError(t, err)

	assert.Equal(t, []string{"<!-- tabs:start -->", "h1", "p", "h1", "p", "<!-- tabs:end -->"}, topLevelTags(root))
}

func TestMarkdownParser_ExplicitHeadingID(t *testing.T) {
	root, err := NewMarkdownParser().Parse(strings.NewReader("## Install {#setup}\n"), "id.md")
	require.NoError(t, err)

	id, ok := doctree.Attr(root.FirstChild, "id")
	require.True(t, ok)
	assert.Equal(t, "setup", id)
	assert.Equal(t, "Install", doctree.TextContent(root.FirstChild))
}

func TestMarkdownParser_GFMTable(t *testing.T) {
	input := "| a | b |\n|---|---|\n| 1 | 2 |\n"
	root, err := NewMarkdownParser().Parse(strings.NewReader(input), "table.md")
	require.NoError(t, err)
	assert.Equal(t, []string{"table"}, topLevelTags(root))
}

func TestMarkdownParser_RawHTMLPassesThrough(t *testing.T) {
	input := "<div class=\"note\">hi</div>\n"
	root, err := NewMarkdownParser().Parse(strings.NewReader(input), "raw.md")
	require.NoError(t, err)

	require.NotNil(t, root.FirstChild)
	class, _ := doctree.Attr(root.FirstChild, "class")
	assert.Equal(t, "note", class)
}

func TestMarkdownParser_EmptyInput(t *testing.T) {
	root, err := NewMarkdownParser().Parse(strings.NewReader(""), "empty.md")
	require.NoError(t, err)
	assert.Nil(t, root.FirstChild)
}

func TestForFile(t *testing.T) {
	tests := []struct {
		filename string
		want     any
		wantErr  bool
	}{
		{"post.md", &MarkdownParser{}, false},
		{"POST.MARKDOWN", &MarkdownParser{}, false},
		{"page.html", &HTMLParser{}, false},
		{"page.htm", &HTMLParser{}, false},
		{"notes.txt", &TextParser{}, false},
		{"report.pdf", nil, true},
		{"noext", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			p, err := ForFile(tt.filename)
			if tt.wantErr {
				assert.Error(t, err)
				assert.False(t, IsSupportedExtension(tt.filename))
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.want, p)
			assert.True(t, IsSupportedExtension(tt.filename))
		})
	}
}

func TestHTMLParser_Fragment(t *testing.T) {
	root, err := (&HTMLParser{}).Parse(strings.NewReader("<h2>A</h2><!-- tabs:end -->"), "body.html")
	require.NoError(t, err)
	assert.Equal(t, []string{"h2", "<!-- tabs:end -->"}, topLevelTags(root))
}
