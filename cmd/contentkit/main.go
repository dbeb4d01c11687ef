// Command contentkit renders posts and builds content snapshots from the
// command line, without running the HTTP service.
package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	charmlog "github.com/charmbracelet/log"
)

// globals is bound into every command's Run method.
type globals struct {
	Log *slog.Logger
	Out io.Writer
}

type cli struct {
	Verbose bool `short:"v" help:"Enable debug logging"`

	Render      renderCmd      `cmd:"" help:"Render one Markdown or HTML file to HTML"`
	Build       buildCmd       `cmd:"" help:"Render every post in a content directory"`
	Placeholder placeholderCmd `cmd:"" help:"Print the placeholder markup for an embedded page"`
}

func main() {
	var c cli
	ctx := kong.Parse(&c,
		kong.Name("contentkit"),
		kong.Description("Blog content tooling: tab sections, embeds, post snapshots."),
		kong.UsageOnError(),
	)
	err := ctx.Run(&globals{Log: newLogger(os.Stderr, c.Verbose), Out: os.Stdout})
	ctx.FatalIfErrorf(err)
}

// newLogger returns an slog logger backed by charmbracelet/log's terminal
// handler.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := charmlog.InfoLevel
	if verbose {
		level = charmlog.DebugLevel
	}
	return slog.New(charmlog.NewWithOptions(w, charmlog.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	}))
}
