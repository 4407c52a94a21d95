package repository

import (
	"context"

	"github.com/fastygo/deskapps/domain"
)

// LibrarySnapshot is the full persisted state of the library, in insertion order.
type LibrarySnapshot struct {
	Books []domain.BookRecord
	Users []domain.UserRecord
}

type LibraryStorage interface {
	LoadLibrary(ctx context.Context) (*LibrarySnapshot, error)
	SaveLibrary(ctx context.Context, snapshot *LibrarySnapshot) error
}
