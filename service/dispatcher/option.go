package dispatcher

// Option customises a dispatcher service.
type Option func(*Service)

// WithConfig sets the configuration for the service
func WithConfig(config Config) Option {
	return func(s *Service) {
		s.config = config
	}
}

// WithQueueBuffer sets the per-queue channel capacity
func WithQueueBuffer(n int) Option {
	return func(s *Service) {
		s.config.QueueBuffer = n
	}
}

// WithTask replaces the default descending row sort with a custom task
func WithTask(task Task) Option {
	return func(s *Service) {
		s.task = task
	}
}

// WithStatsListener registers a callback invoked with the dispatch stats
// after every join barrier resolves.
func WithStatsListener(fn func(Stats)) Option {
	return func(s *Service) {
		s.onStats = fn
	}
}
