package tabs

import (
	"fmt"

	"golang.org/x/net/html"

	"github.com/dgallion1/contentkit/internal/doctree"
)

func h(level int, text string, attrs ...html.Attribute) *html.Node {
	return doctree.Element(fmt.Sprintf("h%d", level), attrs, doctree.Text(text))
}

func p(text string) *html.Node {
	return doctree.Element("p", nil, doctree.Text(text))
}

func names(g TabGroup) []string {
	out := make([]string, 0, len(g.Tabs))
	for _, t := range g.Tabs {
		out = append(out, t.Name)
	}
	return out
}

func tabSlugs(g TabGroup) []string {
	out := make([]string, 0, len(g.Tabs))
	for _, t := range g.Tabs {
		out = append(out, t.Slug)
	}
	return out
}

type recordedGroup struct {
	tabs  int
	small bool
}

type fakeRecorder struct {
	groups []recordedGroup
}

func (f *fakeRecorder) ObserveTabGroup(tabs int, small bool) {
	f.groups = append(f.groups, recordedGroup{tabs: tabs, small: small})
}
