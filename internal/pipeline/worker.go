package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/dgallion1/contentkit/internal/metrics"
)

// Worker processes render jobs.
type Worker struct {
	renderer *Renderer
	metrics  metrics.Recorder
	log      *slog.Logger
}

func NewWorker(r *Renderer, rec metrics.Recorder, log *slog.Logger) *Worker {
	if rec == nil {
		rec = metrics.NoopRecorder{}
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Worker{renderer: r, metrics: rec, log: log}
}

// Process runs the render pipeline for a job and records its outcome.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "filename", job.Filename)
	start := time.Now()

	res, err := w.renderer.run(ctx, job.Filename, job.Source(), job.Strict || w.renderer.strict, func(s JobStatus) {
		job.SetStatus(s, string(s))
	})
	w.renderer.observe(metrics.SourceJob, start, res, err)

	if err != nil {
		log.Error("render failed", "phase", job.Snapshot().Phase, "error", err)
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, job.Snapshot().Phase)
		w.metrics.IncJobOutcome(string(StatusFailed))
		return
	}

	job.Complete(res)
	w.metrics.IncJobOutcome(string(StatusCompleted))
	log.Info("render complete",
		"tab_groups", len(res.Tabs),
		"words", res.Words,
		"duration_ms", time.Since(start).Milliseconds(),
	)
}
