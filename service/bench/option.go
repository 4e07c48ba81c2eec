package bench

import (
	"github.com/rowflux/rowflux/service/dispatcher"
	"github.com/rowflux/rowflux/service/event"
)

// Option customises the benchmark driver.
type Option func(*Service)

// WithConfig sets the sweep configuration
func WithConfig(config Config) Option {
	return func(s *Service) {
		s.config = config
	}
}

// WithDispatcher sets the dispatcher under measurement
func WithDispatcher(d *dispatcher.Service) Option {
	return func(s *Service) {
		s.dispatcher = d
	}
}

// WithProgressPublisher wires per-run progress events
func WithProgressPublisher(p *event.Publisher[Progress]) Option {
	return func(s *Service) {
		s.publisher = p
	}
}
