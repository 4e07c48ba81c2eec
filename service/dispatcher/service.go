package dispatcher

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/rowflux/rowflux/model/matrix"
	"github.com/rowflux/rowflux/service/messaging/memory"
	"github.com/rowflux/rowflux/service/sorter"
	"github.com/rowflux/rowflux/tracing"
)

var (
	// ErrWorkerCount rejects a non-positive worker count before any worker
	// is spawned.
	ErrWorkerCount = errors.New("workerCount must be positive")

	// ErrEmptyMatrix rejects a dispatch with no rows to hand out.
	ErrEmptyMatrix = errors.New("matrix must have at least one row")
)

// Task transforms a single row. The default task sorts the row descending;
// tests inject failing tasks to exercise the error path.
type Task func(ctx context.Context, row []int) ([]int, error)

// Config represents dispatcher service configuration
type Config struct {
	// QueueBuffer sizes each worker inbox and the shared completion queue
	QueueBuffer int
}

// DefaultConfig returns the default dispatcher configuration
func DefaultConfig() Config {
	return Config{QueueBuffer: 4}
}

// Stats summarises one dispatch: how many workers were actually spawned,
// how work spread across them and that every one of them retired. It backs
// the work-conservation and pool-sizing checks.
type Stats struct {
	Workers     int
	Assignments []int
	Completions int
	Retired     int
}

// Service parallelizes row-independent work across a bounded worker pool
// using a pull-based pending queue: a worker that finishes early pulls the
// next row, so wall-clock time tracks total assigned work rather than a
// static partition.
type Service struct {
	config  Config
	task    Task
	onStats func(Stats)
}

// New creates a dispatcher service
func New(options ...Option) *Service {
	s := &Service{config: DefaultConfig()}
	for _, opt := range options {
		opt(s)
	}
	if s.task == nil {
		s.task = func(_ context.Context, row []int) ([]int, error) {
			return sorter.Sort(row), nil
		}
	}
	return s
}

// Dispatch hands every row of m to a pool of min(workerCount, rows) workers
// and returns a matrix whose slot i holds the task output for row i. It
// resolves only after every spawned worker has confirmed retirement; on any
// error no partial result is returned. Parallelism never changes the
// result, only its timing.
func (s *Service) Dispatch(ctx context.Context, m matrix.Matrix, workerCount int) (matrix.Matrix, error) {
	if workerCount < 1 {
		return nil, ErrWorkerCount
	}
	if len(m) == 0 {
		return nil, ErrEmptyMatrix
	}
	ctx, span := tracing.StartSpan(ctx, "dispatcher.Dispatch", "INTERNAL")
	span.WithAttributes(map[string]string{
		"rows":    strconv.Itoa(len(m)),
		"workers": strconv.Itoa(workerCount),
	})

	sess := s.newSession(m, workerCount)
	result, err := sess.run(ctx)
	tracing.EndSpan(span, err)

	if s.onStats != nil {
		s.onStats(sess.stats)
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}

// session owns all mutable dispatch state: the pending queue, the result
// buffer and the worker handles. It is confined to the Dispatch goroutine
// and mutated only in response to inbound completion messages, so no lock
// guards any of it.
type session struct {
	service *Service
	rows    matrix.Matrix
	results matrix.Matrix
	pending []int
	handles []*handle
	done    *memory.Queue[completion]
	wg      sync.WaitGroup
	stats   Stats
}

func (s *Service) newSession(m matrix.Matrix, workerCount int) *session {
	// never spawn more workers than there is work
	effective := workerCount
	if rows := len(m); effective > rows {
		effective = rows
	}
	pending := make([]int, len(m))
	for i := range pending {
		pending[i] = i
	}
	sess := &session{
		service: s,
		rows:    m,
		results: make(matrix.Matrix, len(m)),
		pending: pending,
		done:    memory.NewQueue[completion](s.queueConfig()),
		stats:   Stats{Workers: effective, Assignments: make([]int, effective)},
	}
	for i := 0; i < effective; i++ {
		sess.handles = append(sess.handles, &handle{
			id:    i,
			inbox: memory.NewQueue[assignment](s.queueConfig()),
		})
	}
	return sess
}

func (s *Service) queueConfig() memory.Config {
	config := memory.DefaultConfig()
	config.QueueBuffer = s.config.QueueBuffer
	return config
}

func (sess *session) run(ctx context.Context) (matrix.Matrix, error) {
	for _, h := range sess.handles {
		w := &worker{id: h.id, task: sess.service.task, inbox: h.inbox, done: sess.done}
		sess.wg.Add(1)
		go w.run(ctx, &sess.wg)
	}

	// Bootstrap: every spawned worker gets its first row; the min-clamp
	// guarantees the pending queue cannot run dry here.
	var err error
	for _, h := range sess.handles {
		if bootErr := sess.assign(h); bootErr != nil {
			err = fmt.Errorf("pool start-up failed: %w", bootErr)
			break
		}
	}
	if err != nil {
		sess.retireAll()
	}

	// Completion loop: woken once per worker message until the all-of-N
	// retirement barrier. Per-worker delivery is FIFO; across workers the
	// arrival order is whatever the wall clock produced.
	for sess.stats.Retired < sess.stats.Workers {
		msg, consumeErr := sess.done.Consume(context.Background())
		if consumeErr != nil {
			return nil, consumeErr
		}
		c := msg.T()
		_ = msg.Ack()

		if c.Retired {
			sess.handles[c.Worker].state = stateRetired
			sess.stats.Retired++
			continue
		}

		h := sess.handles[c.Worker]
		if stepErr := sess.complete(h, c); stepErr != nil && err == nil {
			err = stepErr
		}
		if err == nil && ctx.Err() != nil {
			err = ctx.Err()
		}
		if err != nil || len(sess.pending) == 0 {
			sess.retire(h)
			continue
		}
		if aErr := sess.assign(h); aErr != nil {
			err = fmt.Errorf("re-dispatch failed: %w", aErr)
			sess.retire(h)
		}
	}
	sess.wg.Wait()

	// Cancellation may have retired every worker without a completion
	// passing through the loop above.
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		return nil, err
	}
	return sess.results, nil
}

// assign pops the front of the pending queue and sends it to h. A worker
// never holds more than one outstanding assignment; that invariant is what
// keeps the protocol deadlock- and corruption-free.
func (sess *session) assign(h *handle) error {
	row := sess.pending[0]
	sess.pending = sess.pending[1:]
	if err := h.inbox.Publish(context.Background(), &assignment{Row: row, Values: sess.rows[row]}); err != nil {
		return err
	}
	h.state = stateAssigned
	sess.stats.Assignments[h.id]++
	return nil
}

// complete validates and records a worker's result message.
func (sess *session) complete(h *handle, c *completion) error {
	if h.state != stateAssigned {
		return fmt.Errorf("protocol violation: result from %v worker %v", h.state, h.id)
	}
	h.state = stateIdle
	sess.stats.Completions++
	if c.Err != nil {
		return fmt.Errorf("worker %v failed on row %v: %w", c.Worker, c.Row, c.Err)
	}
	if sess.results[c.Row] != nil {
		return fmt.Errorf("protocol violation: row %v written twice", c.Row)
	}
	if c.Values == nil {
		// nil is the empty-slot marker; an empty row still fills its slot
		c.Values = []int{}
	}
	sess.results[c.Row] = c.Values
	return nil
}

// retire signals shutdown; the worker confirms through the completion queue
// and that confirmation is what the join barrier counts.
func (sess *session) retire(h *handle) {
	if h.retiring || h.state == stateRetired {
		return
	}
	h.retiring = true
	_ = h.inbox.Publish(context.Background(), &assignment{Retire: true})
}

func (sess *session) retireAll() {
	for _, h := range sess.handles {
		sess.retire(h)
	}
}
