package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/net/html"

	"github.com/dgallion1/contentkit/internal/content"
	"github.com/dgallion1/contentkit/internal/doctree"
	"github.com/dgallion1/contentkit/internal/metrics"
	"github.com/dgallion1/contentkit/internal/parser"
	"github.com/dgallion1/contentkit/internal/slugs"
	"github.com/dgallion1/contentkit/internal/summary"
	"github.com/dgallion1/contentkit/internal/tabs"
)

// Result is a rendered post body.
type Result struct {
	HTML      string          `json:"html"`
	PlainText string          `json:"plain_text"`
	Words     int             `json:"words"`
	Tabs      []tabs.TabGroup `json:"tabs"`
}

// Renderer runs the post body pipeline: parse, tab transform, heading ids,
// serialise. It holds no per-document state and is safe for concurrent use.
type Renderer struct {
	strict  bool
	metrics metrics.Recorder
	stats   *RenderStats
	log     *slog.Logger
}

// NewRenderer creates a renderer. rec and stats may be nil.
func NewRenderer(strict bool, rec metrics.Recorder, stats *RenderStats, log *slog.Logger) *Renderer {
	if rec == nil {
		rec = metrics.NoopRecorder{}
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Renderer{strict: strict, metrics: rec, stats: stats, log: log}
}

// Stats returns the latency tracker, or nil when none was configured.
func (r *Renderer) Stats() *RenderStats {
	return r.stats
}

// Render renders src synchronously.
func (r *Renderer) Render(ctx context.Context, filename string, src []byte) (*Result, error) {
	return r.render(ctx, metrics.SourcePreview, filename, src, r.strict)
}

// RenderStrict renders src and fails on malformed tab markers regardless of
// the renderer's default.
func (r *Renderer) RenderStrict(ctx context.Context, filename string, src []byte) (*Result, error) {
	return r.render(ctx, metrics.SourcePreview, filename, src, true)
}

// RenderBody renders a post body for the content store.
func (r *Renderer) RenderBody(ctx context.Context, filename string, src []byte) (content.RenderedBody, error) {
	res, err := r.render(ctx, metrics.SourceContent, filename, src, r.strict)
	if err != nil {
		return content.RenderedBody{}, err
	}
	return content.RenderedBody{HTML: res.HTML, PlainText: res.PlainText}, nil
}

func (r *Renderer) render(ctx context.Context, source, filename string, src []byte, strict bool) (*Result, error) {
	start := time.Now()
	res, err := r.run(ctx, filename, src, strict, nil)
	r.observe(source, start, res, err)
	return res, err
}

func (r *Renderer) observe(source string, start time.Time, res *Result, err error) {
	d := time.Since(start)
	r.metrics.ObserveRender(source, d, err)
	if r.stats != nil && err == nil {
		r.stats.Record(source, d, res.Tabs)
	}
}

// run executes the phases. onPhase, when set, is told before each phase.
func (r *Renderer) run(ctx context.Context, filename string, src []byte, strict bool, onPhase func(JobStatus)) (*Result, error) {
	phase := func(s JobStatus) {
		if onPhase != nil {
			onPhase(s)
		}
	}

	phase(StatusParsing)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	root, err := r.parse(filename, src)
	if err != nil {
		return nil, err
	}

	phase(StatusTransforming)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	groups, err := r.transform(root, strict, filename)
	if err != nil {
		return nil, err
	}

	plain := summary.PlainText(root)
	return &Result{
		HTML:      doctree.RenderString(root),
		PlainText: plain,
		Words:     summary.CountWords(plain),
		Tabs:      groups,
	}, nil
}

func (r *Renderer) parse(filename string, src []byte) (*html.Node, error) {
	p, err := parser.ForFile(filename)
	if err != nil {
		return nil, err
	}
	root, err := p.Parse(bytes.NewReader(src), filename)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	return root, nil
}

// transform replaces tab regions, then gives every remaining heading a
// document-unique id. Tab slugs are unique per region; every element id,
// inside a tab group or not, comes from one document registry.
func (r *Renderer) transform(root *html.Node, strict bool, filename string) ([]tabs.TabGroup, error) {
	t := tabs.Transformer{
		Strict:  strict,
		Metrics: r.metrics,
		Log:     r.log.With("file", filename),
	}
	doc := slugs.New()
	slugs.ClaimIDs(root, doc)
	groups, err := t.Apply(root, doc)
	if err != nil {
		return nil, fmt.Errorf("tabs: %w", err)
	}
	slugs.AssignHeadingIDs(root, doc)
	return groups, nil
}
