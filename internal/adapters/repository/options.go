package repository

import "github.com/okian/deckgen/pkg/logger"

// MaxRecentLimit caps Recent.
const MaxRecentLimit = 1000

// Option applies a configuration option to the SQLiteLedger.
type Option func(*SQLiteLedger)

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(s *SQLiteLedger) {
		if l != nil {
			s.log = l
		}
	}
}

// WithMaxLimit lowers the cap applied to Recent.
func WithMaxLimit(n int) Option {
	return func(s *SQLiteLedger) {
		if n > 0 && n < MaxRecentLimit {
			s.maxLimit = n
		}
	}
}
