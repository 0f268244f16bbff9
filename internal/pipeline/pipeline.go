// Package pipeline runs the report end to end: locate, load, profile, select
// numeric columns, render and write.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/KaramelBytes/edareport-cli/internal/dataset"
	"github.com/KaramelBytes/edareport-cli/internal/logging"
	"github.com/KaramelBytes/edareport-cli/internal/profile"
	"github.com/KaramelBytes/edareport-cli/internal/render"
	"github.com/KaramelBytes/edareport-cli/internal/report"
	"github.com/KaramelBytes/edareport-cli/internal/telemetry"
)

// Result describes a finished run.
type Result struct {
	RunID          string           `json:"run_id"`
	DataPath       string           `json:"data_path"`
	Profile        *profile.Profile `json:"profile"`
	NumericColumns []string         `json:"numeric_columns"`
	Outcomes       []report.Outcome `json:"outcomes"`
}

// Outcome returns the recorded outcome of artifact a.
func (r *Result) Outcome(a report.Artifact) (report.Outcome, bool) {
	for _, o := range r.Outcomes {
		if o.Artifact == a {
			return o, true
		}
	}
	return report.Outcome{}, false
}

// Produced returns the paths written during the run, in generation order.
func (r *Result) Produced() []string {
	var out []string
	for _, o := range r.Outcomes {
		if o.IsProduced() {
			out = append(out, o.Path)
		}
	}
	return out
}

// Runner carries the run's collaborators. The zero value discards console
// output and logs.
type Runner struct {
	Out     io.Writer
	Logger  *slog.Logger
	Metrics *telemetry.Metrics
}

// Run executes the pipeline with a zero Runner writing console text to out.
func Run(ctx context.Context, cfg Config, out io.Writer) (*Result, error) {
	return (&Runner{Out: out}).Run(ctx, cfg)
}

// Run executes the pipeline. Fatal conditions (dataset not found, load
// failure, output write failure, cancellation) return an error; unmet
// artifact preconditions are recorded as skipped outcomes.
func (r *Runner) Run(ctx context.Context, cfg Config) (*Result, error) {
	out := r.Out
	if out == nil {
		out = io.Discard
	}
	runID := uuid.NewString()
	log := r.Logger
	if log == nil {
		log = logging.Discard()
	}
	log = log.With(slog.String("run_id", runID))

	ctx, span := telemetry.Tracer().Start(ctx, "edareport.run", trace.WithAttributes(attribute.String("run_id", runID)))
	defer span.End()

	res := &Result{RunID: runID}

	start := time.Now()
	path, err := dataset.Locate(cfg.CandidatePaths)
	if err != nil {
		telemetry.RecordError(ctx, err)
		log.ErrorContext(ctx, "dataset not found", slog.Any("tried", cfg.CandidatePaths))
		return nil, err
	}
	res.DataPath = path
	span.SetAttributes(attribute.String("data_path", path))
	r.Metrics.Stage("locate", time.Since(start))
	log.InfoContext(ctx, "dataset located", slog.String("path", path))

	ds, err := r.load(ctx, path, cfg.Parse)
	if err != nil {
		telemetry.RecordError(ctx, err)
		return nil, err
	}
	r.Metrics.Dataset(ds.Rows(), kindCounts(ds))

	if err := r.profile(ctx, ds, out, res); err != nil {
		return nil, err
	}

	series := render.NumericSeries(ds)
	res.NumericColumns = render.Names(series)
	log.InfoContext(ctx, "numeric columns selected", slog.Int("count", len(series)), slog.Any("columns", res.NumericColumns))

	w := report.NewWriter(cfg.OutputDir)
	if len(series) == 0 {
		fmt.Fprintf(out, "\n⚠ %s\n", report.EmptyNumericSet.Message())
		log.WarnContext(ctx, "no numeric columns; skipping plots")
		for _, a := range report.Artifacts {
			if err := w.Remove(a); err != nil {
				return nil, err
			}
			res.Outcomes = append(res.Outcomes, report.Skipped(a, report.EmptyNumericSet))
			r.Metrics.Artifact(string(a), "skipped")
		}
		return res, nil
	}
	fmt.Fprintf(out, "\nNumeric columns: %s\n", strings.Join(res.NumericColumns, ", "))

	if err := w.EnsureDir(); err != nil {
		telemetry.RecordError(ctx, err)
		return nil, err
	}

	start = time.Now()
	for _, a := range report.Artifacts {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("run cancelled before %s: %w", a, err)
		}
		o, err := r.artifact(ctx, a, series, cfg.Render, w, log)
		if err != nil {
			telemetry.RecordError(ctx, err)
			return nil, err
		}
		res.Outcomes = append(res.Outcomes, o)
		if o.IsProduced() {
			fmt.Fprintf(out, "✓ Saved %s -> %s\n", a.Title(), o.Path)
			r.Metrics.Artifact(string(a), "produced")
		} else {
			fmt.Fprintf(out, "⚠ Skipped %s: %s\n", a.Title(), o.Reason.Message())
			r.Metrics.Artifact(string(a), "skipped")
		}
	}
	r.Metrics.Stage("render", time.Since(start))

	fmt.Fprintf(out, "\n✓ EDA complete. Plots saved to %s/\n", strings.TrimRight(w.Dir(), "/"))
	log.InfoContext(ctx, "run complete", slog.Int("produced", len(res.Produced())))
	return res, nil
}

func (r *Runner) load(ctx context.Context, path string, opt dataset.ParseOptions) (*dataset.Dataset, error) {
	_, span := telemetry.Tracer().Start(ctx, "edareport.load")
	defer span.End()
	start := time.Now()
	ds, err := dataset.Load(path, opt)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	span.SetAttributes(attribute.Int("rows", ds.Rows()), attribute.Int("columns", ds.NumCols()))
	r.Metrics.Stage("load", time.Since(start))
	return ds, nil
}

func (r *Runner) profile(ctx context.Context, ds *dataset.Dataset, out io.Writer, res *Result) error {
	_, span := telemetry.Tracer().Start(ctx, "edareport.profile")
	defer span.End()
	start := time.Now()
	res.Profile = profile.Build(ds)
	if err := res.Profile.WriteText(out); err != nil {
		return fmt.Errorf("print profile: %w", err)
	}
	r.Metrics.Stage("profile", time.Since(start))
	return nil
}

// artifact renders and writes one artifact, or removes a stale copy when its
// preconditions are unmet.
func (r *Runner) artifact(ctx context.Context, a report.Artifact, series []render.Series, opt render.Options, w *report.Writer, log *slog.Logger) (report.Outcome, error) {
	ctx, span := telemetry.Tracer().Start(ctx, "edareport.artifact", trace.WithAttributes(attribute.String("artifact", string(a))))
	defer span.End()

	data, reason, err := draw(a, series, opt)
	if err != nil {
		return report.Outcome{}, fmt.Errorf("render %s: %w", a, err)
	}
	if reason != "" {
		span.SetAttributes(attribute.String("skip_reason", string(reason)))
		log.WarnContext(ctx, "artifact skipped", slog.String("artifact", string(a)), slog.String("reason", string(reason)))
		if err := w.Remove(a); err != nil {
			return report.Outcome{}, err
		}
		return report.Skipped(a, reason), nil
	}
	path, err := w.Write(a, data)
	if err != nil {
		return report.Outcome{}, err
	}
	log.InfoContext(ctx, "artifact saved", slog.String("artifact", string(a)), slog.String("path", path), slog.Int("bytes", len(data)))
	return report.Produced(a, path), nil
}

func draw(a report.Artifact, series []render.Series, opt render.Options) ([]byte, report.SkipReason, error) {
	switch a {
	case report.Histograms:
		b, err := render.Histograms(series, opt)
		return b, "", err
	case report.Boxplots:
		b, err := render.Boxplots(series, opt)
		return b, "", err
	case report.CorrelationHeatmap:
		cols, reason := render.SelectCorrelation(series)
		if reason != "" {
			return nil, reason, nil
		}
		b, err := render.CorrelationHeatmap(render.Correlation(cols))
		return b, "", err
	case report.Pairplot:
		limit := opt.MaxPairplotCols
		if limit < 1 {
			limit = render.DefaultOptions().MaxPairplotCols
		}
		frame, reason := render.SelectPairplot(series, limit)
		if reason != "" {
			return nil, reason, nil
		}
		b, err := render.Pairplot(frame, opt)
		return b, "", err
	default:
		return nil, "", fmt.Errorf("unknown artifact %q", a)
	}
}

func kindCounts(ds *dataset.Dataset) map[string]int {
	out := map[string]int{}
	for _, c := range ds.Schema() {
		out[string(c.Kind)]++
	}
	return out
}
