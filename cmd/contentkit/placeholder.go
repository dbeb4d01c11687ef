package main

import (
	"fmt"
	"mime"
	"path"

	"github.com/dgallion1/contentkit/internal/iframe"
)

type placeholderCmd struct {
	Src         string   `required:"" help:"URL of the embedded page"`
	Width       string   `default:"100%" help:"Width; plain numbers are pixels"`
	Height      string   `default:"500" help:"Height; plain numbers are pixels"`
	Title       string   `help:"Title of the embedded page"`
	Icon        string   `required:"" help:"Fallback icon image URL"`
	IconSources []string `name:"icon-source" help:"Extra icon candidates (srcset); type comes from the extension"`
}

func (c *placeholderCmd) Run(g *globals) error {
	spec := iframe.Spec{
		Width:     iframe.Dimension(c.Width),
		Height:    iframe.Dimension(c.Height),
		Src:       c.Src,
		PageTitle: c.Title,
		PageIcon:  iframe.Picture{Image: iframe.Image{Src: c.Icon}},
	}
	for _, s := range c.IconSources {
		spec.PageIcon.Sources = append(spec.PageIcon.Sources, iframe.Source{
			Srcset: s,
			Type:   mime.TypeByExtension(path.Ext(s)),
		})
	}
	_, err := fmt.Fprintln(g.Out, iframe.RenderString(spec))
	return err
}
