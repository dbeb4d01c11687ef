package summary

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dgallion1/contentkit/internal/doctree"
)

func TestPlainText_SeparatesBlocks(t *testing.T) {
	root, err := doctree.ParseFragment(strings.NewReader(
		"<h1>Title</h1>\n<p>First <em>para</em>.</p><ul><li>one</li><li>two</li></ul><script>var x;</script><p>Last<br>line</p>",
	))
	require.NoError(t, err)

	assert.Equal(t, "Title\n\nFirst para.\n\none\n\ntwo\n\nLast line", PlainText(root))
}

func TestPlainText_SkipsPlaceholderButton(t *testing.T) {
	root, err := doctree.ParseFragment(strings.NewReader(`<p>See</p><button>Run embed</button>`))
	require.NoError(t, err)
	assert.Equal(t, "See", PlainText(root))
}

func TestCountWords(t *testing.T) {
	assert.Equal(t, 0, CountWords(""))
	assert.Equal(t, 0, CountWords("   \n\t"))
	assert.Equal(t, 4, CountWords("one two\nthree\t four"))
}

func TestExcerpt_ShortTextUnchanged(t *testing.T) {
	assert.Equal(t, "A short post.", Excerpt("A short   post.", 10))
}

func TestExcerpt_StopsAtSentence(t *testing.T) {
	text := "First sentence here. Second sentence is longer than the limit allows."
	assert.Equal(t, "First sentence here.", Excerpt(text, 6))
}

func TestExcerpt_CutsLongSentence(t *testing.T) {
	text := strings.Repeat("word ", 80)
	got := Excerpt(text, 5)
	assert.Equal(t, "word word word word word…", got)
}

func TestExcerpt_DefaultLength(t *testing.T) {
	got := Excerpt(strings.Repeat("w ", 200), 0)
	assert.Equal(t, DefaultExcerptWords, CountWords(strings.TrimSuffix(got, ellipsis)))
}
