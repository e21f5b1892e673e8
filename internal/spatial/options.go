package spatial

import "runtime"

type config struct {
	workers int
}

type Option func(*config)

// WithWorkers caps the number of goroutines used for a single call.
// Values <= 0 fall back to GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(c *config) {
		c.workers = n
	}
}

func newConfig(opts ...Option) config {
	c := config{}
	for _, opt := range opts {
		opt(&c)
	}
	if c.workers <= 0 {
		c.workers = runtime.GOMAXPROCS(0)
	}
	return c
}
