package dispatcher

import (
	"context"
	"log"
	"sync"

	"github.com/rowflux/rowflux/service/messaging/memory"
)

// workerState tracks a worker handle through its lifecycle. The scheduler
// is the only writer; the states make the single-outstanding-assignment
// invariant auditable.
type workerState int

const (
	stateIdle workerState = iota
	stateAssigned
	stateRetired
)

func (s workerState) String() string {
	switch s {
	case stateIdle:
		return "idle"
	case stateAssigned:
		return "assigned"
	case stateRetired:
		return "retired"
	}
	return "unknown"
}

// assignment is the only message a worker ever receives. Retire tells the
// worker to confirm shutdown and stop consuming.
type assignment struct {
	Row    int
	Values []int
	Retire bool
}

// completion is the only message a worker ever sends. A retirement
// confirmation carries Retired=true and no row data; a failed task carries
// Err and no values.
type completion struct {
	Worker  int
	Row     int
	Values  []int
	Err     error
	Retired bool
}

// handle is the scheduler-side view of one live worker. It owns the worker's
// inbox; the worker itself never sees the handle.
type handle struct {
	id       int
	state    workerState
	retiring bool
	inbox    *memory.Queue[assignment]
}

// worker is a purely reactive execution context: it consumes one assignment
// at a time, runs the task and reports back. It never touches the matrix,
// the pending queue or the result buffer; all data moves through message
// payloads.
type worker struct {
	id    int
	task  Task
	inbox *memory.Queue[assignment]
	done  *memory.Queue[completion]
}

func (w *worker) run(ctx context.Context, wg *sync.WaitGroup) {
	defer wg.Done()
	// Retirement confirmations must go out even after the dispatch context
	// is cancelled, otherwise the join barrier never resolves.
	confirm := context.Background()
	for {
		msg, err := w.inbox.Consume(ctx)
		if err != nil {
			// dispatch context cancelled; self-retire
			_ = w.done.Publish(confirm, &completion{Worker: w.id, Retired: true})
			return
		}
		a := msg.T()
		_ = msg.Ack()
		if a.Retire {
			_ = w.done.Publish(confirm, &completion{Worker: w.id, Retired: true})
			return
		}
		values, taskErr := w.task(ctx, a.Values)
		c := completion{Worker: w.id, Row: a.Row, Err: taskErr}
		if taskErr == nil {
			c.Values = values
		}
		if pErr := w.done.Publish(confirm, &c); pErr != nil {
			log.Printf("worker %d: failed to report row %d: %v", w.id, a.Row, pErr)
			return
		}
	}
}
