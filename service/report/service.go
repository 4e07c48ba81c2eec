// Package report renders a finished benchmark suite into its consumable
// artifacts: one CSV per matrix size, a system-info companion file and a
// self-contained HTML report. All writes go through afs so the destination
// can be a local directory, an object store or an in-memory filesystem in
// tests.
package report

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/url"

	"github.com/rowflux/rowflux/service/bench"
	"github.com/rowflux/rowflux/service/sysinfo"
)

// Service writes benchmark artifacts under a base URL.
type Service struct {
	fs      afs.Service
	baseURL string
}

// New creates a report writer. A nil fs falls back to the default afs
// service.
func New(fs afs.Service, baseURL string) *Service {
	if fs == nil {
		fs = afs.New()
	}
	return &Service{fs: fs, baseURL: baseURL}
}

// Write renders and uploads every artifact for the suite.
func (s *Service) Write(ctx context.Context, suite *bench.Suite, info *sysinfo.Info) error {
	for _, size := range suite.Sizes() {
		name := fmt.Sprintf("times_%d.csv", size)
		if err := s.upload(ctx, name, CSV(suite.BySize(size))); err != nil {
			return err
		}
	}
	if info != nil {
		if err := s.upload(ctx, "sysinfo.txt", info.Render()); err != nil {
			return err
		}
	}
	return s.upload(ctx, "report.html", HTML(suite, info))
}

func (s *Service) upload(ctx context.Context, name, content string) error {
	dest := url.Join(s.baseURL, name)
	if err := s.fs.Upload(ctx, dest, file.DefaultFileOsMode, strings.NewReader(content)); err != nil {
		return fmt.Errorf("failed to write %v: %w", dest, err)
	}
	return nil
}

// CSV renders one matrix size's cells with the columns threads,time_ms,
// one line per pool size, mean time in milliseconds.
func CSV(cells []*bench.Cell) string {
	var b strings.Builder
	b.WriteString("threads,time_ms\n")
	for _, cell := range cells {
		fmt.Fprintf(&b, "%d,%.3f\n", cell.Workers, ms(cell.Mean))
	}
	return b.String()
}

func ms(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
