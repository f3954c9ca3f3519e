package pg

import (
	"context"
	"log/slog"
)

// HealthChecker reports healthy when the pool answers and the target table
// exists.
type HealthChecker struct {
	pool  *ConnectionPool
	table string
}

func NewHealthChecker(pool *ConnectionPool, table string) *HealthChecker {
	if table == "" {
		table = DefaultTable
	}
	return &HealthChecker{
		pool:  pool,
		table: table,
	}
}

func (hc *HealthChecker) Healthy(ctx context.Context) bool {
	if hc.pool == nil {
		return false
	}

	if err := hc.pool.Ping(ctx); err != nil {
		slog.Warn("PostgreSQL ping failed", "error", err)
		return false
	}

	var exists bool
	err := hc.pool.GetConn().QueryRow(ctx, "SELECT to_regclass($1) IS NOT NULL", hc.table).Scan(&exists)
	if err != nil {
		slog.Warn("PostgreSQL table check failed", "table", hc.table, "error", err)
		return false
	}
	return exists
}
