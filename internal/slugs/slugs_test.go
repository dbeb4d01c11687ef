package slugs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/dgallion1/contentkit/internal/doctree"
)

func TestRegistry_SuffixesRepeats(t *testing.T) {
	reg := New()
	assert.Equal(t, "example", reg.Slug("Example"))
	assert.Equal(t, "example-1", reg.Slug("Example"))
	assert.Equal(t, "example-2", reg.Slug("example"))
	assert.Equal(t, "hello-world", reg.Slug("Hello World"))
}

func TestRegistry_Reset(t *testing.T) {
	reg := New()
	reg.Slug("A")
	reg.Reset()
	assert.Equal(t, "a", reg.Slug("A"))
}

func TestRegistry_ZeroValueUsable(t *testing.T) {
	var reg Registry
	assert.Equal(t, "a", reg.Slug("A"))
	assert.Equal(t, "a-1", reg.Slug("A"))
}

func TestRegistry_EmptyTextFallsBack(t *testing.T) {
	reg := New()
	assert.Equal(t, emptySlug, reg.Slug("   "))
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Hello, World!", "hello-world"},
		{"--already--slugged--", "already-slugged"},
		{"Ünïcode Café", "unicode-cafe"},
		{"Straße", "strasse"},
		{"Łódź Ørsted", "lodz-orsted"},
		{"日本語", "日本語"},
		{"Tom & Jerry", "tom-jerry"},
		{"!!!", emptySlug},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Normalize(tt.in), tt.in)
	}
}

func TestNormalize_DecomposedInput(t *testing.T) {
	// "e" followed by a combining acute accent
	assert.Equal(t, "cafe", Normalize("Cafe\u0301"))
}

func TestRegistry_AccentedTextStaysDistinct(t *testing.T) {
	reg := New()
	assert.Equal(t, "cafe", reg.Slug("Café"))
	assert.Equal(t, "caf", reg.Slug("Caf"))
	assert.Equal(t, "cafe-1", reg.Slug("Cafe"))
}

func TestRegistry_Unique(t *testing.T) {
	reg := New()
	reg.Claim("tab-npm")
	assert.Equal(t, "tab-npm-1", reg.Unique("tab-npm"))
	assert.Equal(t, "tab-npm-2", reg.Unique("tab-npm"))
	assert.Equal(t, "tab-yarn", reg.Unique("tab-yarn"))
}

func TestHeaderID_ExplicitIDWins(t *testing.T) {
	reg := New()
	h := doctree.Element("h2", []html.Attribute{{Key: "id", Val: "custom"}}, doctree.Text("Title"))
	assert.Equal(t, "custom", reg.HeaderID(h))
	// the explicit id is now taken
	assert.Equal(t, "custom-1", reg.Slug("custom"))
}

func TestHeaderID_CustomIDSuffix(t *testing.T) {
	reg := New()
	h := doctree.Element("h1", nil, doctree.Text("Install "), doctree.Element("code", nil, doctree.Text("npm")), doctree.Text(" {#install-npm}"))
	assert.Equal(t, "install-npm", reg.HeaderID(h))
	assert.Equal(t, "Install npm", doctree.TextContent(h))
}

func TestHeaderID_TakenCustomIDSuffixed(t *testing.T) {
	reg := New()
	assert.Equal(t, "example", reg.Slug("Example"))

	h := doctree.Element("h2", nil, doctree.Text("Foo {#example}"))
	assert.Equal(t, "example-1", reg.HeaderID(h))
	assert.Equal(t, "Foo", doctree.TextContent(h))

	h = doctree.Element("h2", []html.Attribute{{Key: "id", Val: "example"}}, doctree.Text("Bar"))
	assert.Equal(t, "example-2", reg.HeaderID(h))
}

func TestHeaderID_FromText(t *testing.T) {
	reg := New()
	h := doctree.Element("h3", nil, doctree.Text("Getting Started"))
	assert.Equal(t, "getting-started", reg.HeaderID(h))
}

func TestAssignHeadingIDs(t *testing.T) {
	root := doctree.Document(
		doctree.Element("h1", nil, doctree.Text("Intro")),
		doctree.Element("div", nil,
			doctree.Element("h2", []html.Attribute{{Key: "id", Val: "intro"}}, doctree.Text("Kept")),
		),
		doctree.Element("h2", nil, doctree.Text("Intro")),
	)
	reg := New()
	ClaimIDs(root, reg)
	AssignHeadingIDs(root, reg)

	kids := doctree.ChildNodes(root)
	id, ok := doctree.Attr(kids[0], "id")
	require.True(t, ok)
	assert.Equal(t, "intro-1", id, "existing ids are claimed before any are assigned")

	id, _ = doctree.Attr(kids[1].FirstChild, "id")
	assert.Equal(t, "intro", id)

	id, _ = doctree.Attr(kids[2], "id")
	assert.Equal(t, "intro-2", id)
}

func TestClaimIDs_RenamesRepeatedHeadingIDs(t *testing.T) {
	root := doctree.Document(
		doctree.Element("h2", []html.Attribute{{Key: "id", Val: "example"}}, doctree.Text("Foo")),
		doctree.Element("div", []html.Attribute{{Key: "id", Val: "example"}}),
		doctree.Element("h3", []html.Attribute{{Key: "id", Val: "example"}}, doctree.Text("Bar")),
	)
	reg := New()
	ClaimIDs(root, reg)

	kids := doctree.ChildNodes(root)
	id, _ := doctree.Attr(kids[0], "id")
	assert.Equal(t, "example", id)
	id, _ = doctree.Attr(kids[1], "id")
	assert.Equal(t, "example", id, "only headings are renamed")
	id, _ = doctree.Attr(kids[2], "id")
	assert.Equal(t, "example-1", id)
	assert.Equal(t, "example-2", reg.Slug("Example"))
}
