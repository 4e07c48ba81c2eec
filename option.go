package rowflux

import (
	"github.com/viant/afs"

	"github.com/rowflux/rowflux/service/bench"
	"github.com/rowflux/rowflux/service/dispatcher"
	"github.com/rowflux/rowflux/service/sysinfo"
)

// Option customises the top-level service.
type Option func(*Service)

// WithConfig replaces the default configuration
func WithConfig(config *Config) Option {
	return func(s *Service) {
		if config != nil {
			s.config = config
		}
	}
}

// WithFS sets the afs service used by the report writer
func WithFS(fs afs.Service) Option {
	return func(s *Service) {
		s.fs = fs
	}
}

// WithDispatcherOptions forwards options to the dispatcher under test
func WithDispatcherOptions(options ...dispatcher.Option) Option {
	return func(s *Service) {
		s.dispatcherOptions = append(s.dispatcherOptions, options...)
	}
}

// WithSysinfoOptions forwards options to the host-info collector
func WithSysinfoOptions(options ...sysinfo.Option) Option {
	return func(s *Service) {
		s.sysinfoOptions = append(s.sysinfoOptions, options...)
	}
}

// WithProgressListener registers a callback invoked once per timed run.
func WithProgressListener(fn func(bench.Progress)) Option {
	return func(s *Service) {
		s.onProgress = fn
	}
}
