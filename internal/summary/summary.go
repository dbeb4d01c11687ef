// Package summary derives the plain-text facts a post listing needs: word
// counts and excerpts.
package summary

import (
	"strings"

	"golang.org/x/net/html"
)

// DefaultExcerptWords is the excerpt length used when none is configured.
const DefaultExcerptWords = 50

const ellipsis = "…"

// block-level elements that end a paragraph in the extracted text
var blockTags = map[string]bool{
	"p": true, "div": true, "li": true, "pre": true, "blockquote": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"table": true, "tr": true, "section": true, "article": true, "figure": true,
}

// skipped entirely: not prose
var skipTags = map[string]bool{
	"script": true, "style": true, "template": true, "svg": true, "button": true,
}

// PlainText extracts readable text from a rendered tree. Block elements are
// separated by blank lines.
func PlainText(root *html.Node) string {
	var paragraphs []string
	var current strings.Builder

	flush := func() {
		if t := strings.Join(strings.Fields(current.String()), " "); t != "" {
			paragraphs = append(paragraphs, t)
		}
		current.Reset()
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			current.WriteString(n.Data)
			return
		case html.ElementNode:
			if skipTags[n.Data] {
				return
			}
			if n.Data == "br" {
				current.WriteString(" ")
				return
			}
		}
		block := n.Type == html.ElementNode && blockTags[n.Data]
		if block {
			flush()
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if block {
			flush()
		}
	}
	walk(root)
	flush()

	return strings.Join(paragraphs, "\n\n")
}

// CountWords counts whitespace-separated words.
func CountWords(text string) int {
	return len(strings.Fields(text))
}

// Excerpt returns the opening of text, at most maxWords long. It prefers to
// stop at a sentence end; otherwise it cuts at a word and appends an ellipsis.
func Excerpt(text string, maxWords int) string {
	if maxWords <= 0 {
		maxWords = DefaultExcerptWords
	}
	text = strings.Join(strings.Fields(text), " ")
	if CountWords(text) <= maxWords {
		return text
	}

	var out []string
	words := 0
	for _, sent := range splitSentences(text) {
		n := CountWords(sent)
		if words+n > maxWords {
			break
		}
		out = append(out, sent)
		words += n
	}
	if len(out) > 0 {
		return strings.Join(out, " ")
	}

	return strings.Join(strings.Fields(text)[:maxWords], " ") + ellipsis
}

// splitSentences does basic sentence splitting.
func splitSentences(text string) []string {
	var sentences []string
	var current strings.Builder

	for i, r := range text {
		current.WriteRune(r)
		if (r == '.' || r == '!' || r == '?') && i+1 < len(text) && text[i+1] == ' ' {
			sentences = append(sentences, strings.TrimSpace(current.String()))
			current.Reset()
		}
	}
	if current.Len() > 0 {
		sentences = append(sentences, strings.TrimSpace(current.String()))
	}

	return sentences
}
