package metrics

import (
	"net/http"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	promhttp "github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "contentkit"

// PrometheusRecorder implements Recorder using Prometheus metrics. A nil
// *PrometheusRecorder is valid and records nothing.
type PrometheusRecorder struct {
	reg            *prom.Registry
	tabGroups      *prom.CounterVec
	tabsPerGroup   prom.Histogram
	renderDuration *prom.HistogramVec
	renderResults  *prom.CounterVec
	jobOutcomes    *prom.CounterVec
	reloadDuration prom.Histogram
	reloadResults  *prom.CounterVec
	posts          prom.Gauge
}

// NewPrometheusRecorder constructs and registers the metrics on reg, or on a
// fresh registry when reg is nil.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		reg: reg,
		tabGroups: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "tab_groups_total",
			Help:      "Tab groups produced, by size class",
		}, []string{"size"}),
		tabsPerGroup: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "tabs_per_group",
			Help:      "Number of tabs in each tab group",
			Buckets:   []float64{0, 1, 2, 3, 4, 6, 8, 12},
		}),
		renderDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "render_duration_seconds",
			Help:      "Duration of post body renders",
			Buckets:   prom.DefBuckets,
		}, []string{"source"}),
		renderResults: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "render_results_total",
			Help:      "Render results by source and outcome",
		}, []string{"source", "result"}),
		jobOutcomes: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "render_jobs_total",
			Help:      "Async render jobs by final status",
		}, []string{"status"}),
		reloadDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "content_reload_duration_seconds",
			Help:      "Duration of content directory reloads",
			Buckets:   prom.DefBuckets,
		}),
		reloadResults: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "content_reloads_total",
			Help:      "Content reloads by outcome",
		}, []string{"result"}),
		posts: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "posts",
			Help:      "Posts in the current content snapshot",
		}),
	}
	reg.MustRegister(pr.tabGroups, pr.tabsPerGroup, pr.renderDuration, pr.renderResults,
		pr.jobOutcomes, pr.reloadDuration, pr.reloadResults, pr.posts)
	return pr
}

func (p *PrometheusRecorder) ObserveTabGroup(tabs int, small bool) {
	if p == nil {
		return
	}
	size := "large"
	if small {
		size = "small"
	}
	p.tabGroups.WithLabelValues(size).Inc()
	p.tabsPerGroup.Observe(float64(tabs))
}

func (p *PrometheusRecorder) ObserveRender(source string, d time.Duration, err error) {
	if p == nil {
		return
	}
	p.renderDuration.WithLabelValues(source).Observe(d.Seconds())
	p.renderResults.WithLabelValues(source, result(err)).Inc()
}

func (p *PrometheusRecorder) IncJobOutcome(status string) {
	if p == nil {
		return
	}
	p.jobOutcomes.WithLabelValues(status).Inc()
}

func (p *PrometheusRecorder) ObserveContentReload(d time.Duration, posts int, err error) {
	if p == nil {
		return
	}
	p.reloadDuration.Observe(d.Seconds())
	p.reloadResults.WithLabelValues(result(err)).Inc()
	if err == nil {
		p.posts.Set(float64(posts))
	}
}

// Handler serves the recorder's registry in the Prometheus exposition format.
func (p *PrometheusRecorder) Handler() http.Handler {
	if p == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(p.reg, promhttp.HandlerOpts{EnableOpenMetrics: true})
}

func result(err error) string {
	if err != nil {
		return "failed"
	}
	return "success"
}
