// Package slugs assigns unique anchor ids to headings.
//
// A Registry remembers every slug it has handed out and suffixes repeats with
// -1, -2, ... Registries are plain values: each document (and each tab region
// within it) gets its own, so concurrent renders never share state.
package slugs

import (
	"regexp"
	"strconv"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	goslug "github.com/goliatone/go-slug"
	"golang.org/x/net/html"
	"golang.org/x/text/unicode/norm"

	"github.com/dgallion1/contentkit/internal/doctree"
)

// Used when nothing anchor-safe is left of the text.
const emptySlug = "section"

var (
	invalidChars = regexp.MustCompile(`[^\p{L}\p{N}-]+`)
	dashRuns     = regexp.MustCompile(`-+`)
	customID     = regexp.MustCompile(`\s*\{#([^}\s]+)\}\s*$`)
)

// Registry hands out unique slugs until Reset.
type Registry struct {
	occurrences map[string]int
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{occurrences: make(map[string]int)}
}

// Reset forgets every slug handed out so far.
func (r *Registry) Reset() {
	r.occurrences = make(map[string]int)
}

// Slug returns a unique slug for text.
func (r *Registry) Slug(text string) string {
	return r.Unique(Normalize(text))
}

// Unique returns id, suffixed with -1, -2, ... when it was already handed out
// or claimed, and records the result.
func (r *Registry) Unique(id string) string {
	result := id
	for r.taken(result) {
		r.occurrences[id]++
		result = id + "-" + strconv.Itoa(r.occurrences[id])
	}
	r.occurrences[result] = 0
	return result
}

// Claim records id as used without altering it.
func (r *Registry) Claim(id string) {
	if !r.taken(id) {
		r.occurrences[id] = 0
	}
}

func (r *Registry) taken(s string) bool {
	if r.occurrences == nil {
		r.occurrences = make(map[string]int)
	}
	_, ok := r.occurrences[s]
	return ok
}

// Normalize turns arbitrary heading text into an anchor-safe slug without
// uniqueness tracking. Latin letters with diacritics are transliterated
// (é to e, ß to ss); letters without a mapping, such as CJK, are kept.
func Normalize(text string) string {
	text = norm.NFC.String(strings.TrimSpace(text))
	return sanitize(transliterate(text))
}

// letterMap is the letter subset of go-slug's character map. Symbol entries
// ("&" to "and") are left out so punctuation never turns into words.
var letterMap = sync.OnceValue(func() map[rune]string {
	cm, err := goslug.GetCharMap()
	if err != nil {
		return nil
	}
	out := make(map[rune]string, len(cm))
	for k, v := range cm {
		r, size := utf8.DecodeRuneInString(k)
		if size != len(k) || !unicode.IsLetter(r) {
			continue
		}
		out[r] = v
	}
	return out
})

func transliterate(s string) string {
	m := letterMap()
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if v, ok := m[r]; ok {
			b.WriteString(v)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func sanitize(s string) string {
	s = strings.ToLower(s)
	s = invalidChars.ReplaceAllString(s, "-")
	s = dashRuns.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if s == "" {
		return emptySlug
	}
	return s
}

// HeaderID returns the anchor id for a heading element.
//
// An existing id attribute is preferred. Otherwise a trailing "{#custom-id}"
// in the heading text is used (and stripped from the text). Otherwise the
// heading text is slugged. Either way the result is unique in r: an explicit
// id that is already taken gets a numeric suffix.
func (r *Registry) HeaderID(n *html.Node) string {
	if id, ok := doctree.Attr(n, "id"); ok && id != "" {
		return r.Unique(id)
	}
	if id := takeCustomID(n); id != "" {
		return r.Unique(id)
	}
	return r.Slug(doctree.TextContent(n))
}

// takeCustomID strips a "{#id}" suffix from the last text node under n.
func takeCustomID(n *html.Node) string {
	last := lastText(n)
	if last == nil {
		return ""
	}
	m := customID.FindStringSubmatchIndex(last.Data)
	if m == nil {
		return ""
	}
	id := last.Data[m[2]:m[3]]
	last.Data = last.Data[:m[0]]
	return id
}

func lastText(n *html.Node) *html.Node {
	for c := n.LastChild; c != nil; c = c.PrevSibling {
		if c.Type == html.TextNode {
			if strings.TrimSpace(c.Data) == "" {
				continue
			}
			return c
		}
		if t := lastText(c); t != nil {
			return t
		}
	}
	return nil
}

// ClaimIDs records every id attribute under root in reg. A heading whose id
// was already seen, earlier in root or in reg, is renamed with a numeric
// suffix; other elements keep their ids.
func ClaimIDs(root *html.Node, reg *Registry) {
	if root.Type == html.ElementNode {
		if id, ok := doctree.Attr(root, "id"); ok && id != "" {
			if reg.taken(id) && isHeadingTag(root.Data) {
				doctree.SetAttr(root, "id", reg.Unique(id))
			} else {
				reg.Claim(id)
			}
		}
	}
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		ClaimIDs(c, reg)
	}
}

// AssignHeadingIDs sets an id on every h1-h6 element under root that lacks
// one, in document order. Run ClaimIDs on root with the same registry first
// so new ids never collide with existing ones.
func AssignHeadingIDs(root *html.Node, reg *Registry) {
	if root.Type == html.ElementNode && isHeadingTag(root.Data) {
		if _, ok := doctree.Attr(root, "id"); !ok {
			doctree.SetAttr(root, "id", reg.HeaderID(root))
		}
		return
	}
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		AssignHeadingIDs(c, reg)
	}
}

func isHeadingTag(tag string) bool {
	return len(tag) == 2 && tag[0] == 'h' && tag[1] >= '1' && tag[1] <= '6'
}
