package repository

import (
	"context"

	"gorm.io/gorm"
)

// Transactor hands out database handles to use cases. Repositories take the
// handle as their first argument so a use case decides the transaction scope.
type Transactor interface {
	// Conn returns a non-transactional handle bound to ctx.
	Conn(ctx context.Context) *gorm.DB
	// WithinTransaction runs fn in one transaction, committing when fn
	// returns nil and rolling back otherwise.
	WithinTransaction(ctx context.Context, fn func(tx *gorm.DB) error) error
	// WithinReadSnapshot runs fn in a read-only REPEATABLE READ transaction
	// so every read inside fn sees the same committed state.
	WithinReadSnapshot(ctx context.Context, fn func(tx *gorm.DB) error) error
}
