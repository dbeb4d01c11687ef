package content

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/google/uuid"

	"github.com/dgallion1/contentkit/internal/summary"
)

// ErrNotFound is returned when a post, author or license does not exist.
var ErrNotFound = errors.New("not found")

// postNamespace scopes post ids so the same slug always yields the same id.
var postNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("contentkit:post"))

// RenderedBody is a post body after the full render pipeline.
type RenderedBody struct {
	HTML      string
	PlainText string
}

// BodyRenderer turns a post body into HTML.
type BodyRenderer interface {
	RenderBody(ctx context.Context, filename string, src []byte) (RenderedBody, error)
}

// PostDeps carries what ParsePost needs to resolve references.
type PostDeps struct {
	Renderer     BodyRenderer
	Unicorns     map[string]UnicornInfo
	Licenses     map[string]LicenseInfo
	ExcerptWords int
}

// SlugFromPath returns the post slug for a post file: the name of its
// directory for index files, the file name without extension otherwise.
func SlugFromPath(path string) string {
	base := filepath.Base(path)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	if name == "index" {
		return filepath.Base(filepath.Dir(path))
	}
	return name
}

// PostID derives the stable id of a post from its slug.
func PostID(slug string) string {
	return uuid.NewSHA1(postNamespace, []byte(slug)).String()
}

// ParsePost builds a PostInfo from a post file.
func ParsePost(ctx context.Context, path string, src []byte, deps PostDeps) (*PostInfo, error) {
	var raw rawFrontmatter
	body, err := frontmatter.MustParse(bytes.NewReader(src), &raw)
	if err != nil {
		return nil, fmt.Errorf("post %s: frontmatter: %w", path, err)
	}
	if err := raw.Validate(); err != nil {
		return nil, fmt.Errorf("post %s: %w", path, err)
	}

	fm := PostFrontmatter{
		Title:       raw.Title,
		Published:   raw.Published,
		Tags:        raw.Tags,
		Edited:      raw.Edited,
		Description: raw.Description,
	}
	if fm.Tags == nil {
		fm.Tags = []string{}
	}
	for _, id := range raw.Authors {
		u, ok := deps.Unicorns[id]
		if !ok {
			return nil, fmt.Errorf("post %s: author %q: %w", path, id, ErrNotFound)
		}
		fm.Authors = append(fm.Authors, u)
	}
	lic, ok := deps.Licenses[raw.License]
	if !ok {
		return nil, fmt.Errorf("post %s: license %q: %w", path, raw.License, ErrNotFound)
	}
	fm.License = lic

	if deps.Renderer == nil {
		return nil, fmt.Errorf("post %s: no body renderer", path)
	}
	rendered, err := deps.Renderer.RenderBody(ctx, path, body)
	if err != nil {
		return nil, fmt.Errorf("post %s: render: %w", path, err)
	}

	excerptWords := deps.ExcerptWords
	if excerptWords <= 0 {
		excerptWords = summary.DefaultExcerptWords
	}
	excerpt := raw.Description
	if excerpt == "" {
		excerpt = summary.Excerpt(rendered.PlainText, excerptWords)
	}

	slug := SlugFromPath(path)
	return &PostInfo{
		ID:          PostID(slug),
		Excerpt:     excerpt,
		HTML:        rendered.HTML,
		Frontmatter: fm,
		Fields:      PostFields{Slug: slug},
		WordCount:   WordCount{Words: summary.CountWords(rendered.PlainText)},
	}, nil
}
