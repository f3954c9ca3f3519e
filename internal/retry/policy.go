package retry

import (
	"time"

	"github.com/cenkalti/backoff/v4"
)

const (
	DefaultInitialInterval = 200 * time.Millisecond
	DefaultMaxInterval     = 10 * time.Second
	defaultMultiplier      = 2.0
	defaultJitter          = 0.1
)

// Policy bounds the retries of one operation.
type Policy struct {
	// MaxRetries is the number of attempts after the first one. 0 disables retries.
	MaxRetries int

	InitialInterval time.Duration
	MaxInterval     time.Duration

	// Jitter is the randomization factor applied to every delay (0.0-1.0).
	Jitter float64
}

func NoRetry() Policy {
	return Policy{}
}

func DefaultPolicy(maxRetries int) Policy {
	return Policy{
		MaxRetries:      maxRetries,
		InitialInterval: DefaultInitialInterval,
		MaxInterval:     DefaultMaxInterval,
		Jitter:          defaultJitter,
	}
}

func (p Policy) Enabled() bool {
	return p.MaxRetries > 0
}

func (p Policy) newBackOff() backoff.BackOff {
	initial := p.InitialInterval
	if initial <= 0 {
		initial = DefaultInitialInterval
	}
	maxInterval := p.MaxInterval
	if maxInterval < initial {
		maxInterval = initial
	}

	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = initial
	eb.MaxInterval = maxInterval
	eb.Multiplier = defaultMultiplier
	eb.RandomizationFactor = p.Jitter
	// attempts are bounded by MaxRetries only
	eb.MaxElapsedTime = 0
	eb.Reset()

	return backoff.WithMaxRetries(eb, uint64(max(p.MaxRetries, 0)))
}
