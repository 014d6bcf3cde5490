package dashboard

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	DefaultPollInterval = 2 * time.Second
	DefaultSettleDelay  = 500 * time.Millisecond
)

type options struct {
	pollInterval time.Duration
	settleDelay  time.Duration
	logger       *zap.Logger
	onView       func(View)
	onLocation   func(Location)
	onOutcome    func(Outcome)
	newID        func() string
}

// Option configures the components built by this package.
type Option func(*options)

func buildOptions(opts []Option) options {
	o := options{
		pollInterval: DefaultPollInterval,
		settleDelay:  DefaultSettleDelay,
		logger:       zap.NewNop(),
		newID:        func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithPollInterval sets how often the synchronizer refreshes.
func WithPollInterval(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.pollInterval = d
		}
	}
}

// WithSettleDelay sets the pause between a successful init and the refresh
// that follows it.
func WithSettleDelay(d time.Duration) Option {
	return func(o *options) {
		if d >= 0 {
			o.settleDelay = d
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithOnView registers a callback run after every synchronizer swap.
func WithOnView(fn func(View)) Option {
	return func(o *options) { o.onView = fn }
}

// WithOnLocation registers a callback run after every navigator move.
func WithOnLocation(fn func(Location)) Option {
	return func(o *options) { o.onLocation = fn }
}

// WithOnOutcome registers a callback run on every init phase transition.
func WithOnOutcome(fn func(Outcome)) Option {
	return func(o *options) { o.onOutcome = fn }
}

// WithIDGenerator replaces the submission id generator.
func WithIDGenerator(fn func() string) Option {
	return func(o *options) {
		if fn != nil {
			o.newID = fn
		}
	}
}
