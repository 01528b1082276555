package gameloop

import "log/slog"

// Option configures a Loop at construction.
type Option func(*options)

type options struct {
	clock         Clock
	sleeper       Sleeper
	customSleeper bool
	logger        *slog.Logger
}

func defaultOptions() options {
	return options{
		clock:   SystemClock(),
		sleeper: systemSleeper{},
		logger:  slog.Default(),
	}
}

// WithClock replaces the wall-clock source.
func WithClock(c Clock) Option {
	return func(o *options) {
		if c != nil {
			o.clock = c
		}
	}
}

// WithSleeper replaces the sleep used while the window is occluded. Run will
// not substitute the backend's event wait when a sleeper is given here.
func WithSleeper(s Sleeper) Option {
	return func(o *options) {
		if s != nil {
			o.sleeper = s
			o.customSleeper = true
		}
	}
}

// WithLogger sets the logger for loop diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}
