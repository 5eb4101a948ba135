package dispatch

import "log"

// Option configures a Dispatcher.
type Option func(*config)

type config struct {
	table  Table
	logger *log.Logger
}

func defaultConfig() config {
	return config{
		table: DefaultTable(),
	}
}

// WithTable replaces the dispatch table. A nil or empty table disables
// every demo and the links are always shown.
func WithTable(t Table) Option {
	return func(c *config) {
		c.table = t
	}
}

// WithLogger sets where dispatch decisions are logged. Default discards them.
func WithLogger(l *log.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}
