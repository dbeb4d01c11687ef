package content

import (
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

// stubRenderer wraps the body in a paragraph.
type stubRenderer struct {
	calls atomic.Int32
	err   error
}

func (r *stubRenderer) RenderBody(_ context.Context, _ string, src []byte) (RenderedBody, error) {
	r.calls.Add(1)
	if r.err != nil {
		return RenderedBody{}, r.err
	}
	text := strings.TrimSpace(string(src))
	return RenderedBody{HTML: "<p>" + text + "</p>", PlainText: text}, nil
}

const (
	unicornsYAML = `- id: crutchcorn
  name: Corbin Crutchley
  firstName: Corbin
  lastName: Crutchley
  description: Writer of words
  socials:
    github: crutchcorn
  profileImg: ./crutchcorn.png
  color: "#ba2343"
  roles: [developer, author]
  achievements: []
- id: fennifith
  name: James Fenn
  profileImg: ./fennifith.png
  color: "#1e88e5"
  roles: [developer]
`
	rolesYAML = `- id: developer
  prettyname: Developer
- id: author
  prettyname: Author
`
	licensesYAML = `- id: cc-by-4
  name: Attribution 4.0 International
  licenceURL: https://creativecommons.org/licenses/by/4.0/
`
)

func post(title, published string, authors ...string) string {
	return "---\n" +
		"title: \"" + title + "\"\n" +
		"published: \"" + published + "\"\n" +
		"tags: [go]\n" +
		"authors: [" + strings.Join(authors, ", ") + "]\n" +
		"license: cc-by-4\n" +
		"---\n\n" +
		title + " body text.\n"
}

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, image.NewRGBA(image.Rect(0, 0, w, h))))
}

// newContentDir lays out a small site with two posts.
func newContentDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, DataDir, "unicorns.yaml"), unicornsYAML)
	writeFile(t, filepath.Join(dir, DataDir, "roles.yaml"), rolesYAML)
	writeFile(t, filepath.Join(dir, DataDir, "licenses.yaml"), licensesYAML)
	writePNG(t, filepath.Join(dir, DataDir, "crutchcorn.png"), 4, 3)
	writeFile(t, filepath.Join(dir, BlogDir, "older-post", "index.md"), post("Older Post", "2023-05-01", "crutchcorn"))
	writeFile(t, filepath.Join(dir, BlogDir, "newer-post", "index.md"), post("Newer Post", "2024-02-10", "fennifith", "crutchcorn"))
	return dir
}
