package jsonfile

import (
	"context"

	"github.com/fastygo/deskapps/domain"
	"github.com/fastygo/deskapps/repository"
)

// LibraryStore keeps books and users as JSON arrays.
type LibraryStore struct {
	booksPath string
	usersPath string
}

func NewLibraryStore(booksPath, usersPath string) *LibraryStore {
	if booksPath == "" {
		booksPath = DefaultBooksFile
	}
	if usersPath == "" {
		usersPath = DefaultUsersFile
	}
	return &LibraryStore{booksPath: booksPath, usersPath: usersPath}
}

func (s *LibraryStore) LoadLibrary(ctx context.Context) (*repository.LibrarySnapshot, error) {
	snapshot := &repository.LibrarySnapshot{}
	if err := readDocument(ctx, s.booksPath, &snapshot.Books); err != nil {
		return nil, err
	}
	if err := readDocument(ctx, s.usersPath, &snapshot.Users); err != nil {
		return nil, err
	}
	return snapshot, nil
}

func (s *LibraryStore) SaveLibrary(ctx context.Context, snapshot *repository.LibrarySnapshot) error {
	books := snapshot.Books
	if books == nil {
		books = []domain.BookRecord{}
	}
	users := snapshot.Users
	if users == nil {
		users = []domain.UserRecord{}
	}
	if err := writeDocument(ctx, s.booksPath, books, "    "); err != nil {
		return err
	}
	return writeDocument(ctx, s.usersPath, users, "    ")
}

var _ repository.LibraryStorage = (*LibraryStore)(nil)
