package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dgallion1/contentkit/internal/pipeline"
)

type renderCmd struct {
	File   string `arg:"" type:"existingfile" help:"Markdown or HTML file"`
	Strict bool   `help:"Fail on unbalanced or nested tab markers"`
	JSON   bool   `name:"json" help:"Print the full result (HTML, plain text, tab groups) as JSON"`
}

func (c *renderCmd) Run(g *globals) error {
	src, err := os.ReadFile(c.File)
	if err != nil {
		return fmt.Errorf("read %s: %w", c.File, err)
	}

	r := pipeline.NewRenderer(c.Strict, nil, nil, g.Log)
	res, err := r.Render(context.Background(), filepath.Base(c.File), src)
	if err != nil {
		return fmt.Errorf("render %s: %w", c.File, err)
	}
	g.Log.Debug("rendered", "file", c.File, "tab_groups", len(res.Tabs), "words", res.Words)

	if c.JSON {
		enc := json.NewEncoder(g.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}
	_, err = fmt.Fprintln(g.Out, res.HTML)
	return err
}
