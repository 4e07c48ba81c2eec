package rowflux

import (
	"context"
	"time"

	"github.com/rowflux/rowflux/service/bench"
	"github.com/rowflux/rowflux/service/event"
	"github.com/rowflux/rowflux/service/messaging/memory"
	"github.com/rowflux/rowflux/service/report"
	"github.com/rowflux/rowflux/service/sysinfo"
)

// Runtime runs a configured benchmark end to end.
type Runtime struct {
	bench         *bench.Service
	report        *report.Service
	sysinfo       *sysinfo.Service
	listener      *event.Listener[bench.Progress]
	progressQueue *memory.Queue[event.Event[bench.Progress]]
}

// Run collects host information, executes the benchmark sweep and writes
// every report artifact. It returns the suite so callers can print their own
// summaries.
func (r *Runtime) Run(ctx context.Context) (*bench.Suite, error) {
	if r.listener != nil {
		r.listener.Start()
		defer r.stopListener()
	}

	info, err := r.sysinfo.Collect(ctx)
	if err != nil {
		return nil, err
	}
	suite, err := r.bench.Run(ctx)
	if err != nil {
		return nil, err
	}
	if err := r.report.Write(ctx, suite, info); err != nil {
		return nil, err
	}
	return suite, nil
}

// stopListener lets the listener drain already-published progress events
// before shutting it down, so a caller sees one callback per timed run.
func (r *Runtime) stopListener() {
	for i := 0; i < 100 && r.progressQueue.Size() > 0; i++ {
		time.Sleep(10 * time.Millisecond)
	}
	r.listener.Stop()
}
