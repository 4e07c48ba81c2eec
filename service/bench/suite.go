package bench

import "time"

// Run is one timed dispatch.
type Run struct {
	ID      string        `json:"id"`
	Elapsed time.Duration `json:"elapsed"`
}

// Cell aggregates all runs of one (size, workers) configuration.
type Cell struct {
	Size    int           `json:"size"`
	Workers int           `json:"workers"`
	Runs    []Run         `json:"runs"`
	Min     time.Duration `json:"min"`
	Mean    time.Duration `json:"mean"`
	Max     time.Duration `json:"max"`
}

func (c *Cell) aggregate() {
	if len(c.Runs) == 0 {
		return
	}
	c.Min, c.Max = c.Runs[0].Elapsed, c.Runs[0].Elapsed
	var total time.Duration
	for _, run := range c.Runs {
		total += run.Elapsed
		if run.Elapsed < c.Min {
			c.Min = run.Elapsed
		}
		if run.Elapsed > c.Max {
			c.Max = run.Elapsed
		}
	}
	c.Mean = total / time.Duration(len(c.Runs))
}

// Suite is the complete sweep result consumed by the report writer.
type Suite struct {
	StartedAt time.Time `json:"startedAt"`
	Config    Config    `json:"config"`
	Cells     []*Cell   `json:"cells"`
}

// Sizes returns the distinct matrix sizes in sweep order.
func (s *Suite) Sizes() []int {
	var sizes []int
	seen := make(map[int]bool)
	for _, cell := range s.Cells {
		if !seen[cell.Size] {
			seen[cell.Size] = true
			sizes = append(sizes, cell.Size)
		}
	}
	return sizes
}

// BySize returns the cells for one matrix size in sweep order.
func (s *Suite) BySize(size int) []*Cell {
	var cells []*Cell
	for _, cell := range s.Cells {
		if cell.Size == size {
			cells = append(cells, cell)
		}
	}
	return cells
}
