package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/binheat/pkg/errors"
	pkgio "github.com/matzehuels/binheat/pkg/io"
	"github.com/matzehuels/binheat/pkg/observability"
	"github.com/matzehuels/binheat/pkg/relation"
)

// Runner executes runs. It holds no per-run state, so multiple goroutines
// can share one Runner; each run builds its own index.
type Runner struct {
	Logger *log.Logger
}

// NewRunner creates a runner that logs to logger, or to the default logger
// when nil.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger}
}

// Execute runs label loading → ingest → sort → render.
func (r *Runner) Execute(ctx context.Context, src Sources, opts Options) (*Result, error) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	if src.Input == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no input")
	}

	result := &Result{Format: opts.Format}

	// Stage 1: Ingest
	ingestStart := time.Now()
	idx, st, err := r.Ingest(ctx, src, opts)
	if err != nil {
		return nil, err
	}
	result.Index = idx
	result.Stats = Stats{
		Rows:       idx.RowCount(),
		Columns:    idx.ColumnCount(),
		Pairs:      idx.PairCount(),
		Lines:      st.Lines,
		Dropped:    st.Dropped(),
		IngestTime: time.Since(ingestStart),
	}

	opts.Logger.Info("read relation",
		"rows", result.Stats.Rows,
		"columns", result.Stats.Columns,
		"pairs", result.Stats.Pairs,
		"duration", result.Stats.IngestTime)
	if result.Stats.Dropped > 0 {
		opts.Logger.Warn("dropped pairs outside fixed label sets", "count", result.Stats.Dropped)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 2: Render
	renderStart := time.Now()
	artifact, err := Render(ctx, idx, opts)
	if err != nil {
		return nil, err
	}
	result.Artifact = artifact
	result.Stats.RenderTime = time.Since(renderStart)

	opts.Logger.Info("rendered output",
		"format", opts.Format,
		"bytes", len(artifact),
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Ingest builds an index from src: label files first, then the relation,
// then sorting of the automatic axes when opts.Sort is set.
func (r *Runner) Ingest(ctx context.Context, src Sources, opts Options) (idx *relation.Index, st pkgio.Stats, err error) {
	hooks := observability.Pipeline()
	hooks.OnIngestStart(ctx, "relation")
	start := time.Now()
	defer func() {
		pairs := 0
		if idx != nil {
			pairs = idx.PairCount()
		}
		hooks.OnIngestComplete(ctx, "relation", pairs, time.Since(start), err)
	}()

	var idxOpts []relation.Option
	if opts.AllowExtra {
		idxOpts = append(idxOpts, relation.WithAllowExtra())
	}
	idx = relation.New(idxOpts...)

	if err := pkgio.LoadLabels(idx, src.RowLabels, src.ColumnLabels, opts.Transpose); err != nil {
		return nil, st, err
	}
	if err := applyLabelLists(idx, src, opts.Transpose); err != nil {
		return nil, st, err
	}
	if opts.Logger != nil && (idx.RowsFixed() || idx.ColumnsFixed()) {
		opts.Logger.Debug("fixed label sets",
			"rows", idx.RowsFixed(),
			"columns", idx.ColumnsFixed())
	}

	st, err = pkgio.Feed(idx, src.Input, pkgio.Options{
		Transpose: opts.Transpose,
		Multiline: opts.Multiline,
	})
	if err != nil {
		return nil, st, fmt.Errorf("read relation: %w", err)
	}

	if opts.Sort {
		idx.SortLabels()
	}
	return idx, st, nil
}

func applyLabelLists(idx *relation.Index, src Sources, transpose bool) error {
	rows, cols := src.RowLabelList, src.ColumnLabelList
	if transpose {
		rows, cols = cols, rows
	}
	if rows != nil {
		if err := idx.SetRowLabels(rows); err != nil {
			return err
		}
	}
	if cols != nil {
		if err := idx.SetColumnLabels(cols); err != nil {
			return err
		}
	}
	return nil
}
