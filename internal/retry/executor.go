package retry

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Classifier decides whether an error is worth another attempt.
type Classifier interface {
	IsTransient(err error) bool
}

// Executor runs an operation under a Policy.
//
// WithOnRetry returns a copy, so one Executor can be shared by concurrent
// batch workers.
type Executor struct {
	policy     Policy
	classifier Classifier
	onRetry    func(attempt int, err error, delay time.Duration)
}

// NewExecutor creates an executor. A nil classifier falls back to DefaultClassifier.
func NewExecutor(policy Policy, classifier Classifier) *Executor {
	if classifier == nil {
		classifier = NewDefaultClassifier()
	}
	return &Executor{
		policy:     policy,
		classifier: classifier,
	}
}

func (e *Executor) WithOnRetry(callback func(attempt int, err error, delay time.Duration)) *Executor {
	clone := *e
	clone.onRetry = callback
	return &clone
}

func (e *Executor) Policy() Policy {
	return e.policy
}

// Execute runs operation until it succeeds, fails with a non-transient error,
// the policy is exhausted or ctx is done. It returns the number of attempts made.
func (e *Executor) Execute(ctx context.Context, operation func(ctx context.Context) error) (int, error) {
	attempts := 0

	if !e.policy.Enabled() {
		attempts++
		return attempts, operation(ctx)
	}

	op := func() error {
		attempts++
		err := operation(ctx)
		if err != nil && !e.classifier.IsTransient(err) {
			return backoff.Permanent(err)
		}
		return err
	}

	notify := func(err error, delay time.Duration) {
		if e.onRetry != nil {
			e.onRetry(attempts, err, delay)
		}
	}

	err := backoff.RetryNotify(op, backoff.WithContext(e.policy.newBackOff(), ctx), notify)
	return attempts, err
}
