package storage

import (
	"context"

	"github.com/DjordjeVuckovic/word-importer/internal/domain"
	"github.com/DjordjeVuckovic/word-importer/internal/loader"
)

// Upserter writes a batch of words keyed by the word itself. Calling Upsert
// twice with the same words must leave the store unchanged the second time.
type Upserter interface {
	Upsert(ctx context.Context, words []domain.Word) error
	Close() error
}

type Type string

const (
	REST  Type = "rest"
	PG    Type = "pg"
	ES    Type = "es"
	InMem Type = "in_mem"
)

var Types = []Type{REST, PG, ES, InMem}

func (t Type) Valid() bool {
	for _, v := range Types {
		if t == v {
			return true
		}
	}
	return false
}

type StorerError string

const (
	ErrUnsupportedStorer StorerError = "unsupported storer type: %s"
)

func (e StorerError) Error() string {
	return string(e)
}

// Submit adapts u to the loader.
func Submit(u Upserter) loader.SubmitFunc[domain.Word] {
	return func(ctx context.Context, batch []domain.Word) error {
		return u.Upsert(ctx, batch)
	}
}
