package bench

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/rowflux/rowflux/internal/clock"
	"github.com/rowflux/rowflux/internal/idgen"
	"github.com/rowflux/rowflux/model/matrix"
	"github.com/rowflux/rowflux/service/dispatcher"
	"github.com/rowflux/rowflux/service/event"
	"github.com/rowflux/rowflux/tracing"
)

// Progress is published after every timed run so a caller can follow a long
// sweep without polling.
type Progress struct {
	Size      int           `json:"size"`
	Workers   int           `json:"workers"`
	Run       int           `json:"run"`
	TotalRuns int           `json:"totalRuns"`
	Elapsed   time.Duration `json:"elapsed"`
}

// Service drives the benchmark: it owns no concurrency of its own, it just
// times dispatcher calls from the outside and aggregates the samples.
type Service struct {
	config     Config
	dispatcher *dispatcher.Service
	publisher  *event.Publisher[Progress]
}

// New creates a benchmark driver
func New(options ...Option) (*Service, error) {
	s := &Service{config: DefaultConfig()}
	for _, opt := range options {
		opt(s)
	}
	if err := s.config.Validate(); err != nil {
		return nil, err
	}
	if s.dispatcher == nil {
		s.dispatcher = dispatcher.New()
	}
	return s, nil
}

// Run executes the configured sweep. Each matrix is generated once per size;
// every timed dispatch gets a fresh working copy so run N cannot see run
// N-1's output. Any dispatch or validation error halts the sweep: partial
// aggregates are never returned.
func (s *Service) Run(ctx context.Context) (*Suite, error) {
	suite := &Suite{StartedAt: clock.Now(), Config: s.config}
	totalRuns := len(s.config.Sizes) * len(s.config.Workers) * s.config.Repeats
	runIndex := 0

	for _, size := range s.config.Sizes {
		cols := s.config.Columns
		if cols == 0 {
			cols = size
		}
		original := matrix.Generate(size, cols, s.config.Seed)

		for _, workers := range s.config.Workers {
			cellCtx, span := tracing.StartSpan(ctx, "bench.cell", "INTERNAL")
			span.WithAttributes(map[string]string{
				"size":    strconv.Itoa(size),
				"workers": strconv.Itoa(workers),
			})
			cell := &Cell{Size: size, Workers: workers}
			err := s.runCell(cellCtx, cell, original, &runIndex, totalRuns)
			tracing.EndSpan(span, err)
			if err != nil {
				return nil, err
			}
			suite.Cells = append(suite.Cells, cell)
		}
	}
	return suite, nil
}

func (s *Service) runCell(ctx context.Context, cell *Cell, original matrix.Matrix, runIndex *int, totalRuns int) error {
	for r := 0; r < s.config.Repeats; r++ {
		working := original.Clone()
		started := clock.Now()
		sorted, err := s.dispatcher.Dispatch(ctx, working, cell.Workers)
		elapsed := clock.Since(started)
		if err != nil {
			return fmt.Errorf("dispatch size=%v workers=%v run=%v: %w", cell.Size, cell.Workers, r, err)
		}
		if err := matrix.Validate(original, sorted); err != nil {
			return fmt.Errorf("invalid result size=%v workers=%v run=%v: %w", cell.Size, cell.Workers, r, err)
		}
		cell.Runs = append(cell.Runs, Run{ID: idgen.New(), Elapsed: elapsed})
		*runIndex++
		if s.publisher != nil {
			_ = s.publisher.Publish(ctx, Progress{
				Size:      cell.Size,
				Workers:   cell.Workers,
				Run:       *runIndex,
				TotalRuns: totalRuns,
				Elapsed:   elapsed,
			})
		}
	}
	cell.aggregate()
	return nil
}
