package voting

import (
	"io"
	"log/slog"
	"time"

	"github.com/luca-patrignani/voting-chain/domain/election"
)

type options struct {
	clock  election.Clock
	logger *slog.Logger
}

// Option configures a Ledger.
type Option func(options) options

func defaultOptions() options {
	return options{
		clock:  time.Now,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// WithClock sets the clock used for block and transaction timestamps.
func WithClock(clock election.Clock) Option {
	return func(o options) options {
		if clock != nil {
			o.clock = clock
		}
		return o
	}
}

// WithLogger sets the logger. Accepted actions are logged at Info level,
// rejected ones at Debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(o options) options {
		if logger != nil {
			o.logger = logger
		}
		return o
	}
}
