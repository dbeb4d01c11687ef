package content

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dgallion1/contentkit/internal/parser"
)

// Layout of a content directory.
const (
	DataDir = "data"
	BlogDir = "blog"
)

var dataExts = []string{".yaml", ".yml", ".json"}

// StoreOptions configures a Store.
type StoreOptions struct {
	// Concurrency bounds how many posts render at once. Defaults to 4.
	Concurrency  int
	ExcerptWords int
	Metrics      ReloadRecorder
	Log          *slog.Logger
}

// ReloadRecorder observes every reload attempt.
type ReloadRecorder interface {
	ObserveContentReload(d time.Duration, posts int, err error)
}

// Store holds every post and author loaded from a content directory.
// It is safe for concurrent use; Reload swaps the whole snapshot.
type Store struct {
	dir      string
	renderer BodyRenderer
	opts     StoreOptions
	log      *slog.Logger

	mu       sync.RWMutex
	posts    []*PostInfo
	bySlug   map[string]*PostInfo
	unicorns map[string]UnicornInfo
	licenses map[string]LicenseInfo
	loadedAt time.Time
}

// NewStore creates an empty store over dir. Call Reload to populate it.
func NewStore(dir string, renderer BodyRenderer, opts StoreOptions) *Store {
	if opts.Concurrency <= 0 {
		opts.Concurrency = 4
	}
	log := opts.Log
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Store{
		dir:      dir,
		renderer: renderer,
		opts:     opts,
		log:      log.With("component", "content"),
		bySlug:   map[string]*PostInfo{},
		unicorns: map[string]UnicornInfo{},
		licenses: map[string]LicenseInfo{},
	}
}

// Dir returns the content directory.
func (s *Store) Dir() string { return s.dir }

// Reload reads the content directory again. On error the previous snapshot
// is kept.
func (s *Store) Reload(ctx context.Context) error {
	start := time.Now()
	posts, err := s.reload(ctx)
	if s.opts.Metrics != nil {
		s.opts.Metrics.ObserveContentReload(time.Since(start), posts, err)
	}
	if err != nil {
		return err
	}
	s.log.Info("content loaded", "posts", posts, "duration_ms", time.Since(start).Milliseconds())
	return nil
}

func (s *Store) reload(ctx context.Context) (int, error) {
	raw, err := readData(s.dir, "unicorns", DecodeUnicorns)
	if err != nil {
		return 0, err
	}
	roles, err := readData(s.dir, "roles", DecodeRoles)
	if err != nil {
		return 0, err
	}
	licenses, err := readData(s.dir, "licenses", DecodeLicenses)
	if err != nil {
		return 0, err
	}
	unicorns, err := ResolveUnicorns(raw, roles, s.dir)
	if err != nil {
		return 0, err
	}

	deps := PostDeps{
		Renderer:     s.renderer,
		Unicorns:     make(map[string]UnicornInfo, len(unicorns)),
		Licenses:     make(map[string]LicenseInfo, len(licenses)),
		ExcerptWords: s.opts.ExcerptWords,
	}
	for _, u := range unicorns {
		deps.Unicorns[u.ID] = u
	}
	for _, l := range licenses {
		deps.Licenses[l.ID] = l
	}

	files, err := postFiles(filepath.Join(s.dir, BlogDir))
	if err != nil {
		return 0, err
	}
	posts, err := s.buildPosts(ctx, files, deps)
	if err != nil {
		return 0, err
	}
	sortNewestFirst(posts)

	bySlug := make(map[string]*PostInfo, len(posts))
	for _, p := range posts {
		if prev, dup := bySlug[p.Fields.Slug]; dup {
			return 0, fmt.Errorf("duplicate post slug %q (%s)", p.Fields.Slug, prev.Frontmatter.Title)
		}
		bySlug[p.Fields.Slug] = p
	}

	s.mu.Lock()
	s.posts = posts
	s.bySlug = bySlug
	s.unicorns = deps.Unicorns
	s.licenses = deps.Licenses
	s.loadedAt = time.Now()
	s.mu.Unlock()

	s.log.Debug("content snapshot swapped", "unicorns", len(unicorns), "licenses", len(licenses))
	return len(posts), nil
}

func (s *Store) buildPosts(ctx context.Context, files []string, deps PostDeps) ([]*PostInfo, error) {
	type result struct {
		post *PostInfo
		err  error
	}
	results := make([]result, len(files))
	sem := make(chan struct{}, s.opts.Concurrency)
	var wg sync.WaitGroup

	for i, path := range files {
		if err := ctx.Err(); err != nil {
			wg.Wait()
			return nil, err
		}
		sem <- struct{}{}
		wg.Add(1)
		go func(i int, path string) {
			defer wg.Done()
			defer func() { <-sem }()
			src, err := os.ReadFile(path)
			if err != nil {
				results[i] = result{err: fmt.Errorf("read %s: %w", path, err)}
				return
			}
			p, err := ParsePost(ctx, path, src, deps)
			results[i] = result{post: p, err: err}
		}(i, path)
	}
	wg.Wait()

	posts := make([]*PostInfo, 0, len(files))
	var errs []error
	for _, r := range results {
		if r.err != nil {
			errs = append(errs, r.err)
			continue
		}
		posts = append(posts, r.post)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return posts, nil
}

// Posts returns all posts, newest first.
func (s *Store) Posts() []*PostInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*PostInfo, len(s.posts))
	copy(out, s.posts)
	return out
}

// Post returns the post with the given slug.
func (s *Store) Post(slug string) (*PostInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.bySlug[slug]
	if !ok {
		return nil, fmt.Errorf("post %q: %w", slug, ErrNotFound)
	}
	return p, nil
}

// Unicorn returns the author with the given id.
func (s *Store) Unicorn(id string) (UnicornInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.unicorns[id]
	if !ok {
		return UnicornInfo{}, fmt.Errorf("unicorn %q: %w", id, ErrNotFound)
	}
	return u, nil
}

// Unicorns returns every author, sorted by id.
func (s *Store) Unicorns() []UnicornInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]UnicornInfo, 0, len(s.unicorns))
	for _, u := range s.unicorns {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// PostsByAuthor returns the posts the author contributed to, newest first.
func (s *Store) PostsByAuthor(id string) []*PostInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*PostInfo
	for _, p := range s.posts {
		for _, a := range p.Frontmatter.Authors {
			if a.ID == id {
				out = append(out, p)
				break
			}
		}
	}
	return out
}

// LoadedAt reports when the current snapshot was built.
func (s *Store) LoadedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadedAt
}

func readData[T any](dir, name string, decode func(io.Reader) ([]T, error)) ([]T, error) {
	for _, ext := range dataExts {
		path := filepath.Join(dir, DataDir, name+ext)
		f, err := os.Open(path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", path, err)
		}
		defer f.Close()
		out, err := decode(f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return out, nil
	}
	return nil, fmt.Errorf("%s data file in %s: %w", name, filepath.Join(dir, DataDir), ErrNotFound)
}

// postFiles finds the index file of every post directory under blogDir,
// sorted by path.
func postFiles(blogDir string) ([]string, error) {
	entries, err := os.ReadDir(blogDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", blogDir, err)
	}

	var files []string
	for _, e := range entries {
		if !e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		if path := indexFile(filepath.Join(blogDir, e.Name())); path != "" {
			files = append(files, path)
		}
	}
	sort.Strings(files)
	return files, nil
}

// indexFile returns the first supported index.* file in dir, or "".
func indexFile(dir string) string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return ""
	}
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.TrimSuffix(name, filepath.Ext(name)) != "index" {
			continue
		}
		if parser.IsSupportedExtension(name) {
			return filepath.Join(dir, name)
		}
	}
	return ""
}

func sortNewestFirst(posts []*PostInfo) {
	sort.SliceStable(posts, func(i, j int) bool {
		ti, _ := ParseDate(posts[i].Frontmatter.Published)
		tj, _ := ParseDate(posts[j].Frontmatter.Published)
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return posts[i].Fields.Slug < posts[j].Fields.Slug
	})
}
