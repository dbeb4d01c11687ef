// Package iframe renders the static stand-in shown instead of an embedded
// page until the reader asks for the real iframe.
package iframe

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/dgallion1/contentkit/internal/doctree"
)

// Class names consumed by the site stylesheet.
const (
	ClassContainer = "iframe-replacement-container"
	ClassIcon      = "iframe-replacement-icon"
	ClassTitle     = "iframe-replacement-title"
	ClassButton    = "iframe-replacement-button"
)

const (
	hiddenLabel = "An embedded webpage:"
	buttonLabel = "Run embed"
)

// Dimension is a CSS size. Plain numbers are pixels; anything else ("auto",
// "50%", "20rem") is passed through.
type Dimension string

// Px builds a numeric dimension.
func Px(n float64) Dimension {
	return Dimension(strconv.FormatFloat(n, 'f', -1, 64))
}

// UnmarshalJSON accepts both 400 and "400px".
func (d *Dimension) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		s, err := strconv.Unquote(string(b))
		if err != nil {
			return fmt.Errorf("dimension: %w", err)
		}
		*d = Dimension(s)
		return nil
	}
	if string(b) == "null" {
		return nil
	}
	f, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return fmt.Errorf("dimension: %w", err)
	}
	*d = Px(f)
	return nil
}

// CSS renders the dimension for an inline style.
func (d Dimension) CSS() string {
	s := strings.TrimSpace(string(d))
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
		return s + "px"
	}
	return string(d)
}

// Source is one <source> candidate of a responsive picture.
type Source struct {
	Srcset string `json:"srcset"`
	Type   string `json:"type,omitempty"`
	Sizes  string `json:"sizes,omitempty"`
	Media  string `json:"media,omitempty"`
}

// Image is the fallback <img> of a responsive picture.
type Image struct {
	Src        string            `json:"src"`
	Attributes map[string]string `json:"attributes,omitempty"`
}

// Picture is a pre-computed responsive image, as produced by the site's
// image pipeline.
type Picture struct {
	Sources []Source `json:"sources"`
	Image   Image    `json:"image"`
}

// Spec describes one placeholder.
type Spec struct {
	Width     Dimension `json:"width"`
	Height    Dimension `json:"height"`
	Src       string    `json:"src"`
	PageTitle string    `json:"pageTitle"`
	PageIcon  Picture   `json:"pageIcon"`
}

// Style returns the inline size style of the container.
func (s Spec) Style() string {
	return "height: " + s.Height.CSS() + "; width: " + s.Width.CSS() + ";"
}

// Render builds the placeholder element.
func Render(spec Spec) *html.Node {
	picture := doctree.Element("picture", nil)
	for _, src := range spec.PageIcon.Sources {
		picture.AppendChild(doctree.Element("source", sourceAttrs(src)))
	}
	picture.AppendChild(doctree.Element("img", imageAttrs(spec.PageIcon.Image)))

	title := doctree.Element("p", []html.Attribute{{Key: "class", Val: ClassTitle}},
		doctree.Element("span", []html.Attribute{{Key: "class", Val: "visually-hidden"}}, doctree.Text(hiddenLabel)),
		doctree.Text(spec.PageTitle),
	)

	button := doctree.Element("button", []html.Attribute{{Key: "class", Val: ClassButton}}, doctree.Text(buttonLabel))

	return doctree.Element("div", []html.Attribute{
		{Key: "class", Val: ClassContainer},
		{Key: "data-iframeurl", Val: spec.Src},
		{Key: "style", Val: spec.Style()},
	}, picture, title, button)
}

// RenderString renders the placeholder markup.
func RenderString(spec Spec) string {
	return doctree.RenderString(Render(spec))
}

func sourceAttrs(s Source) []html.Attribute {
	var attrs []html.Attribute
	add := func(k, v string) {
		if v != "" {
			attrs = append(attrs, html.Attribute{Key: k, Val: v})
		}
	}
	add("srcset", s.Srcset)
	add("type", s.Type)
	add("sizes", s.Sizes)
	add("media", s.Media)
	return attrs
}

// fixed attributes always override the descriptor's own
var fixedImageAttrs = []html.Attribute{
	{Key: "class", Val: ClassIcon},
	{Key: "alt", Val: ""},
	{Key: "loading", Val: "lazy"},
	{Key: "decoding", Val: "async"},
	{Key: "data-nozoom", Val: "true"},
}

func imageAttrs(img Image) []html.Attribute {
	fixed := make(map[string]bool, len(fixedImageAttrs))
	for _, a := range fixedImageAttrs {
		fixed[a.Key] = true
	}

	var attrs []html.Attribute
	if img.Src != "" {
		attrs = append(attrs, html.Attribute{Key: "src", Val: img.Src})
	}
	keys := make([]string, 0, len(img.Attributes))
	for k := range img.Attributes {
		if k == "src" || fixed[k] {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		attrs = append(attrs, html.Attribute{Key: k, Val: img.Attributes[k]})
	}
	return append(attrs, fixedImageAttrs...)
}
