package es

import "context"

type HealthChecker struct {
	upserter *Upserter
}

func NewHealthChecker(u *Upserter) *HealthChecker {
	return &HealthChecker{upserter: u}
}

func (hc *HealthChecker) Healthy(ctx context.Context) bool {
	if hc.upserter == nil {
		return false
	}

	ok, err := hc.upserter.client.Ping().Do(ctx)
	return err == nil && ok
}
