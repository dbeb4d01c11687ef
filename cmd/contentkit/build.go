package main

import (
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"time"

	"github.com/dgallion1/contentkit/internal/content"
	"github.com/dgallion1/contentkit/internal/pipeline"
)

type buildCmd struct {
	Content     string `short:"c" type:"existingdir" help:"Content directory holding data/ and blog/" default:"./content"`
	Out         string `short:"o" help:"Output directory" default:"./public"`
	Strict      bool   `help:"Fail on unbalanced or nested tab markers"`
	Concurrency int    `help:"Posts rendered at once" default:"4"`
}

var pageTemplate = template.Must(template.New("post").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Frontmatter.Title}}</title>
{{- with .Frontmatter.Description}}
<meta name="description" content="{{.}}">
{{- end}}
</head>
<body>
<article id="{{.ID}}">
<h1>{{.Frontmatter.Title}}</h1>
{{.Body}}
</article>
</body>
</html>
`))

type page struct {
	*content.PostInfo
	Body template.HTML
}

func (c *buildCmd) Run(g *globals) error {
	start := time.Now()
	store := content.NewStore(c.Content, pipeline.NewRenderer(c.Strict, nil, nil, g.Log), content.StoreOptions{
		Concurrency: c.Concurrency,
		Log:         g.Log,
	})
	if err := store.Reload(context.Background()); err != nil {
		return err
	}

	posts := store.Posts()
	for _, p := range posts {
		if err := writePage(c.Out, p); err != nil {
			return err
		}
	}
	if err := writeJSONFile(filepath.Join(c.Out, "posts.json"), posts); err != nil {
		return err
	}
	if err := writeJSONFile(filepath.Join(c.Out, "unicorns.json"), store.Unicorns()); err != nil {
		return err
	}

	g.Log.Info("build complete", "posts", len(posts), "out", c.Out, "duration", time.Since(start).Round(time.Millisecond))
	return nil
}

func writePage(outDir string, p *content.PostInfo) error {
	dir := filepath.Join(outDir, p.Fields.Slug)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.Create(filepath.Join(dir, "index.html"))
	if err != nil {
		return err
	}
	defer f.Close()
	// Body is our own serialised tree, not author input.
	if err := pageTemplate.Execute(f, page{PostInfo: p, Body: template.HTML(p.HTML)}); err != nil {
		return fmt.Errorf("write %s: %w", p.Fields.Slug, err)
	}
	return f.Close()
}

func writeJSONFile(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
