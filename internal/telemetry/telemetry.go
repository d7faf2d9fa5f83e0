// Package telemetry provides OpenTelemetry instrumentation for the testgen
// service. It exports Prometheus metrics and provides tracing capabilities.
package telemetry

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const serviceName = "testgen"

// Metrics holds all testgen Prometheus metrics
type Metrics struct {
	// Resolution metrics
	ResolutionsTotal   *prometheus.CounterVec
	ResolutionDuration prometheus.Histogram
	MatchCandidates    prometheus.Histogram

	// Validation metrics
	ValidationsTotal *prometheus.CounterVec
	RuleViolations   prometheus.Counter
	InvalidSelectors prometheus.Counter

	// Generation metrics
	GenerationsTotal   *prometheus.CounterVec
	GenerationDuration prometheus.Histogram
	ConfidenceScore    prometheus.Histogram
	TruncatedOutputs   prometheus.Counter
	PromptTokens       prometheus.Counter
	CompletionTokens   prometheus.Counter

	// Catalog metrics
	CatalogSize prometheus.Gauge

	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
}

// Provider wraps telemetry providers
type Provider struct {
	Tracer  trace.Tracer
	Metrics *Metrics
}

// NewProvider initializes telemetry with Prometheus metrics
func NewProvider() *Provider {
	return &Provider{
		Tracer:  otel.Tracer(serviceName),
		Metrics: initMetrics(),
	}
}

// Handler returns the Prometheus HTTP handler for /metrics endpoint
func (p *Provider) Handler() http.Handler {
	return promhttp.Handler()
}

func initMetrics() *Metrics {
	m := &Metrics{}
	initResolutionMetrics(m)
	initValidationMetrics(m)
	initGenerationMetrics(m)
	initHTTPMetrics(m)
	return m
}

func initResolutionMetrics(m *Metrics) {
	m.ResolutionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "testgen_resolutions_total",
		Help: "Total selector resolution attempts by outcome status",
	}, []string{"status"})

	m.ResolutionDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "testgen_resolution_duration_seconds",
		Help:    "Time to resolve one element description",
		Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1},
	})

	m.MatchCandidates = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "testgen_match_candidates",
		Help:    "Number of catalog candidates returned per fuzzy match",
		Buckets: []float64{0, 1, 2, 3, 4, 5},
	})

	m.CatalogSize = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "testgen_catalog_size",
		Help: "Active selectors in the catalog snapshot last matched against",
	})
}

func initValidationMetrics(m *Metrics) {
	m.ValidationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "testgen_validations_total",
		Help: "Total code validation runs by resulting status",
	}, []string{"status"})

	m.RuleViolations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "testgen_rule_violations_total",
		Help: "Total rule violations found across validation runs",
	})

	m.InvalidSelectors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "testgen_invalid_selectors_total",
		Help: "Total unverified selector usages found across validation runs",
	})
}

func initGenerationMetrics(m *Metrics) {
	m.GenerationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "testgen_generations_total",
		Help: "Total code generation attempts by outcome",
	}, []string{"outcome"})

	m.GenerationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "testgen_generation_duration_seconds",
		Help:    "End-to-end time of one generation pipeline run",
		Buckets: []float64{0.5, 1, 2.5, 5, 10, 20, 30, 60},
	})

	m.ConfidenceScore = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "testgen_confidence_score",
		Help:    "Confidence score distribution of generated code",
		Buckets: []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1.0},
	})

	m.TruncatedOutputs = promauto.NewCounter(prometheus.CounterOpts{
		Name: "testgen_truncated_outputs_total",
		Help: "Total generation responses flagged as truncated",
	})

	m.PromptTokens = promauto.NewCounter(prometheus.CounterOpts{
		Name: "testgen_prompt_tokens_total",
		Help: "Total prompt tokens sent to the generation provider",
	})

	m.CompletionTokens = promauto.NewCounter(prometheus.CounterOpts{
		Name: "testgen_completion_tokens_total",
		Help: "Total completion tokens returned by the generation provider",
	})
}

func initHTTPMetrics(m *Metrics) {
	m.RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "testgen_http_requests_total",
		Help: "Total HTTP requests by route and status code",
	}, []string{"route", "status"})

	m.RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "testgen_http_request_duration_seconds",
		Help:    "HTTP request latency by route",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0},
	}, []string{"route"})
}

// RecordResolution records one resolution attempt.
func (p *Provider) RecordResolution(ctx context.Context, status string, candidates int, duration time.Duration) {
	p.Metrics.ResolutionsTotal.WithLabelValues(status).Inc()
	p.Metrics.ResolutionDuration.Observe(duration.Seconds())
	p.Metrics.MatchCandidates.Observe(float64(candidates))
}

// RecordValidation records one validation run.
func (p *Provider) RecordValidation(ctx context.Context, status string, violations, invalidSelectors int) {
	p.Metrics.ValidationsTotal.WithLabelValues(status).Inc()
	p.Metrics.RuleViolations.Add(float64(violations))
	p.Metrics.InvalidSelectors.Add(float64(invalidSelectors))
}

// RecordGeneration records one generation pipeline run.
func (p *Provider) RecordGeneration(ctx context.Context, outcome string, duration time.Duration) {
	p.Metrics.GenerationsTotal.WithLabelValues(outcome).Inc()
	p.Metrics.GenerationDuration.Observe(duration.Seconds())
}

// RecordGeneratedCode records the quality and token usage of one result.
func (p *Provider) RecordGeneratedCode(ctx context.Context, confidence float64, truncated bool, promptTokens, completionTokens int) {
	p.Metrics.ConfidenceScore.Observe(confidence)
	if truncated {
		p.Metrics.TruncatedOutputs.Inc()
	}
	p.Metrics.PromptTokens.Add(float64(promptTokens))
	p.Metrics.CompletionTokens.Add(float64(completionTokens))
}

// SetCatalogSize sets the size of the last catalog snapshot matched against.
func (p *Provider) SetCatalogSize(size int) {
	p.Metrics.CatalogSize.Set(float64(size))
}

// RecordRequest records one HTTP request.
func (p *Provider) RecordRequest(route, status string, duration time.Duration) {
	p.Metrics.RequestsTotal.WithLabelValues(route, status).Inc()
	p.Metrics.RequestDuration.WithLabelValues(route).Observe(duration.Seconds())
}

// StartSpan starts a new trace span.
// The caller is responsible for ending the span with span.End().
//
//nolint:spancheck // Caller is responsible for ending the span
func (p *Provider) StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	ctx, span := p.Tracer.Start(ctx, name, trace.WithAttributes(attrs...))
	return ctx, span
}
