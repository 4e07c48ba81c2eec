package rowflux

import (
	"github.com/viant/afs"

	"github.com/rowflux/rowflux/service/bench"
	"github.com/rowflux/rowflux/service/dispatcher"
	"github.com/rowflux/rowflux/service/event"
	"github.com/rowflux/rowflux/service/messaging/memory"
	"github.com/rowflux/rowflux/service/report"
	"github.com/rowflux/rowflux/service/sysinfo"
)

// Service assembles the benchmark tool: the dispatcher under measurement,
// the driver that times it, the host-info collector and the report writer.
type Service struct {
	config            *Config
	fs                afs.Service
	dispatcherOptions []dispatcher.Option
	sysinfoOptions    []sysinfo.Option
	onProgress        func(bench.Progress)
	runtime           *Runtime
}

// New creates a configured service
func New(options ...Option) (*Service, error) {
	s := &Service{config: DefaultConfig()}
	for _, opt := range options {
		opt(s)
	}
	if err := s.config.Validate(); err != nil {
		return nil, err
	}
	if s.fs == nil {
		s.fs = afs.New()
	}
	if err := s.init(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Service) init() error {
	dispatchOptions := append([]dispatcher.Option{
		dispatcher.WithConfig(s.config.Dispatcher),
	}, s.dispatcherOptions...)
	d := dispatcher.New(dispatchOptions...)

	benchOptions := []bench.Option{
		bench.WithConfig(s.config.Bench),
		bench.WithDispatcher(d),
	}

	runtime := &Runtime{}
	if s.onProgress != nil {
		// progress events only flow when someone listens; an unconsumed
		// queue would eventually block the driver
		queue := memory.NewQueue[event.Event[bench.Progress]](memory.DefaultConfig())
		publisher := event.NewPublisher[bench.Progress](queue)
		handler := s.onProgress
		runtime.progressQueue = queue
		runtime.listener = event.NewListener(publisher, func(e *event.Event[bench.Progress]) {
			handler(e.Data)
		})
		benchOptions = append(benchOptions, bench.WithProgressPublisher(publisher))
	}

	benchService, err := bench.New(benchOptions...)
	if err != nil {
		return err
	}

	sysOptions := s.sysinfoOptions
	if s.config.Host != "" {
		sysOptions = append([]sysinfo.Option{sysinfo.WithHost(s.config.Host)}, sysOptions...)
	}

	runtime.bench = benchService
	runtime.report = report.New(s.fs, s.config.Output.URL)
	runtime.sysinfo = sysinfo.New(sysOptions...)
	s.runtime = runtime
	return nil
}

// Runtime returns the executable face of this service.
func (s *Service) Runtime() *Runtime {
	return s.runtime
}
