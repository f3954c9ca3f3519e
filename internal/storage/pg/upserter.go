package pg

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/DjordjeVuckovic/word-importer/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const DefaultTable = "danish_words"

type UpserterConfig struct {
	// Table may be schema qualified, e.g. public.danish_words.
	Table          string
	ConflictColumn string
	Resolution     domain.ConflictResolution
}

// Upserter writes words with a single INSERT ... ON CONFLICT per batch.
type Upserter struct {
	pool  *ConnectionPool
	db    *pgxpool.Pool
	query string
}

func NewUpserter(pool *ConnectionPool, cfg UpserterConfig) (*Upserter, error) {
	query, err := buildUpsertQuery(cfg)
	if err != nil {
		return nil, err
	}

	return &Upserter{pool: pool, db: pool.conn, query: query}, nil
}

func buildUpsertQuery(cfg UpserterConfig) (string, error) {
	table := cfg.Table
	if table == "" {
		table = DefaultTable
	}
	column := cfg.ConflictColumn
	if column == "" {
		column = domain.DefaultConflictColumn
	}

	tableParts := strings.Split(table, ".")
	for _, p := range tableParts {
		if p == "" {
			return "", fmt.Errorf("invalid table name %q", table)
		}
	}

	tableIdent := pgx.Identifier(tableParts).Sanitize()
	columnIdent := pgx.Identifier{column}.Sanitize()

	// DISTINCT keeps DO UPDATE from touching the same row twice in one statement.
	query := fmt.Sprintf(
		"INSERT INTO %s (%s) SELECT DISTINCT unnest($1::text[]) ON CONFLICT (%s) ",
		tableIdent, columnIdent, columnIdent,
	)

	switch cfg.Resolution {
	case "", domain.IgnoreDuplicates:
		query += "DO NOTHING"
	case domain.MergeDuplicates:
		query += fmt.Sprintf("DO UPDATE SET %s = EXCLUDED.%s", columnIdent, columnIdent)
	default:
		return "", fmt.Errorf("unsupported conflict resolution %q", cfg.Resolution)
	}

	return query, nil
}

func (s *Upserter) Upsert(ctx context.Context, words []domain.Word) error {
	if len(words) == 0 {
		return nil
	}

	tag, err := s.db.Exec(ctx, s.query, domain.ToStrings(words))
	if err != nil {
		return fmt.Errorf("failed to upsert words: %w", err)
	}

	slog.Debug("Words upserted", "count", len(words), "affected", tag.RowsAffected())
	return nil
}

func (s *Upserter) Close() error {
	s.pool.Close()
	return nil
}
