package library

import (
	"context"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/fastygo/deskapps/domain"
	"github.com/fastygo/deskapps/repository"
	"github.com/fastygo/deskapps/usecase"
)

// Library tracks books and the users borrowing them. Books are indexed by
// ISBN, users by id; both keep insertion order for listing and storage.
type Library struct {
	storage  repository.LibraryStorage
	recorder usecase.ChangeRecorder
	logger   *zap.Logger

	books     map[string]*domain.Book
	bookOrder []string
	users     map[string]*domain.User
	userOrder []string
}

func New(ctx context.Context, storage repository.LibraryStorage, recorder usecase.ChangeRecorder, logger *zap.Logger) (*Library, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	l := &Library{
		storage:  storage,
		recorder: recorder,
		logger:   logger,
	}
	snapshot, err := storage.LoadLibrary(ctx)
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeInternal, "load library", err)
	}
	l.apply(snapshot)
	logger.Info("library loaded",
		zap.Int("books", len(l.books)),
		zap.Int("users", len(l.users)))
	return l, nil
}

func (l *Library) AddBook(ctx context.Context, title, author, isbn string) (*domain.Book, error) {
	if _, exists := l.books[isbn]; exists {
		return nil, domain.Errorf(domain.ErrCodeConflict, "book with ISBN %s already exists", isbn)
	}
	book, err := domain.NewBook(title, author, isbn)
	if err != nil {
		return nil, err
	}
	prev := l.snapshot()
	l.books[isbn] = book
	l.bookOrder = append(l.bookOrder, isbn)
	if err := l.commit(ctx, prev, "add_book", isbn, book.Record()); err != nil {
		return nil, err
	}
	return domain.BookFromRecord(book.Record()), nil
}

func (l *Library) RemoveBook(ctx context.Context, isbn string) error {
	book, err := l.book(isbn)
	if err != nil {
		return err
	}
	if book.IsBorrowed() {
		return domain.NewError(domain.ErrCodeRejected, "cannot remove a borrowed book")
	}
	prev := l.snapshot()
	delete(l.books, isbn)
	l.bookOrder = remove(l.bookOrder, isbn)
	return l.commit(ctx, prev, "remove_book", isbn, nil)
}

func (l *Library) RegisterUser(ctx context.Context, name, id string) (*domain.User, error) {
	if _, exists := l.users[id]; exists {
		return nil, domain.Errorf(domain.ErrCodeConflict, "user id %s already exists", id)
	}
	user, err := domain.NewUser(name, id)
	if err != nil {
		return nil, err
	}
	prev := l.snapshot()
	l.users[id] = user
	l.userOrder = append(l.userOrder, id)
	if err := l.commit(ctx, prev, "register_user", id, user.Record()); err != nil {
		return nil, err
	}
	return domain.UserFromRecord(user.Record()), nil
}

// RemoveUser deletes a user who holds no borrowed books.
func (l *Library) RemoveUser(ctx context.Context, id string) error {
	user, err := l.user(id)
	if err != nil {
		return err
	}
	if len(user.BorrowedISBNs()) > 0 {
		return domain.NewError(domain.ErrCodeRejected, "user has borrowed books, cannot remove")
	}
	prev := l.snapshot()
	delete(l.users, id)
	l.userOrder = remove(l.userOrder, id)
	return l.commit(ctx, prev, "remove_user", id, nil)
}

// BorrowBook flips the book to Borrowed and records it on the user in one persist.
func (l *Library) BorrowBook(ctx context.Context, isbn, userID string) error {
	book, err := l.book(isbn)
	if err != nil {
		return err
	}
	user, err := l.user(userID)
	if err != nil {
		return err
	}
	prev := l.snapshot()
	if err := book.Borrow(); err != nil {
		return err
	}
	user.AddBorrowedBook(isbn)
	return l.commit(ctx, prev, "borrow_book", isbn, map[string]any{"user_id": userID})
}

// ReturnBook requires the user to actually hold the book.
func (l *Library) ReturnBook(ctx context.Context, isbn, userID string) error {
	book, err := l.book(isbn)
	if err != nil {
		return err
	}
	user, err := l.user(userID)
	if err != nil {
		return err
	}
	if !user.HasBorrowed(isbn) {
		return domain.NewError(domain.ErrCodeRejected, "this user didn't borrow this book")
	}
	prev := l.snapshot()
	if err := book.Return(); err != nil {
		return err
	}
	user.RemoveBorrowedBook(isbn)
	return l.commit(ctx, prev, "return_book", isbn, map[string]any{"user_id": userID})
}

// SearchBooks matches title and author case-insensitively and the ISBN as a substring.
func (l *Library) SearchBooks(query string) []*domain.Book {
	q := strings.ToLower(query)
	var out []*domain.Book
	for _, isbn := range l.bookOrder {
		b := l.books[isbn]
		if strings.Contains(strings.ToLower(b.Title()), q) ||
			strings.Contains(strings.ToLower(b.Author()), q) ||
			strings.Contains(b.ISBN(), query) {
			out = append(out, domain.BookFromRecord(b.Record()))
		}
	}
	return out
}

func (l *Library) Books(availableOnly bool) []*domain.Book {
	out := make([]*domain.Book, 0, len(l.bookOrder))
	for _, isbn := range l.bookOrder {
		b := l.books[isbn]
		if availableOnly && b.IsBorrowed() {
			continue
		}
		out = append(out, domain.BookFromRecord(b.Record()))
	}
	return out
}

func (l *Library) Book(isbn string) (*domain.Book, bool) {
	b, ok := l.books[isbn]
	if !ok {
		return nil, false
	}
	return domain.BookFromRecord(b.Record()), true
}

func (l *Library) Users() []*domain.User {
	out := make([]*domain.User, 0, len(l.userOrder))
	for _, id := range l.userOrder {
		out = append(out, domain.UserFromRecord(l.users[id].Record()))
	}
	return out
}

func (l *Library) User(id string) (*domain.User, bool) {
	u, ok := l.users[id]
	if !ok {
		return nil, false
	}
	return domain.UserFromRecord(u.Record()), true
}

// BorrowedBooks resolves the user's borrowed ISBNs; unknown ISBNs are skipped.
func (l *Library) BorrowedBooks(userID string) ([]*domain.Book, error) {
	user, err := l.user(userID)
	if err != nil {
		return nil, err
	}
	var out []*domain.Book
	for _, isbn := range user.BorrowedISBNs() {
		if b, ok := l.books[isbn]; ok {
			out = append(out, domain.BookFromRecord(b.Record()))
		}
	}
	return out, nil
}

func (l *Library) book(isbn string) (*domain.Book, error) {
	b, ok := l.books[isbn]
	if !ok {
		return nil, domain.NewError(domain.ErrCodeNotFound, "book not found")
	}
	return b, nil
}

func (l *Library) user(id string) (*domain.User, error) {
	u, ok := l.users[id]
	if !ok {
		return nil, domain.NewError(domain.ErrCodeNotFound, "user not found")
	}
	return u, nil
}

func (l *Library) snapshot() *repository.LibrarySnapshot {
	s := &repository.LibrarySnapshot{
		Books: make([]domain.BookRecord, 0, len(l.bookOrder)),
		Users: make([]domain.UserRecord, 0, len(l.userOrder)),
	}
	for _, isbn := range l.bookOrder {
		s.Books = append(s.Books, l.books[isbn].Record())
	}
	for _, id := range l.userOrder {
		s.Users = append(s.Users, l.users[id].Record())
	}
	return s
}

func (l *Library) apply(s *repository.LibrarySnapshot) {
	l.books = make(map[string]*domain.Book, len(s.Books))
	l.bookOrder = l.bookOrder[:0]
	l.users = make(map[string]*domain.User, len(s.Users))
	l.userOrder = l.userOrder[:0]

	for _, rec := range s.Books {
		if _, dup := l.books[rec.ISBN]; dup {
			l.logger.Warn("skipping duplicate book record", zap.String("isbn", rec.ISBN))
			continue
		}
		l.books[rec.ISBN] = domain.BookFromRecord(rec)
		l.bookOrder = append(l.bookOrder, rec.ISBN)
	}
	for _, rec := range s.Users {
		if _, dup := l.users[rec.UserID]; dup {
			l.logger.Warn("skipping duplicate user record", zap.String("user_id", rec.UserID))
			continue
		}
		l.users[rec.UserID] = domain.UserFromRecord(rec)
		l.userOrder = append(l.userOrder, rec.UserID)
	}
}

// commit persists the current state. On failure memory returns to prev and
// prev is written back once more; if that write fails too the files may stay
// out of step until the next successful save.
func (l *Library) commit(ctx context.Context, prev *repository.LibrarySnapshot, operation, subject string, payload any) error {
	if err := l.storage.SaveLibrary(ctx, l.snapshot()); err != nil {
		l.apply(prev)
		l.logger.Error("library persist failed", zap.String("operation", operation), zap.Error(err))
		if restoreErr := l.storage.SaveLibrary(ctx, prev); restoreErr != nil {
			l.logger.Warn("library files may disagree until the next save", zap.Error(restoreErr))
		}
		return domain.WrapError(domain.ErrCodeInternal, "save library", err)
	}
	if l.recorder != nil {
		change := usecase.Change{App: usecase.AppLibrary, Operation: operation, Subject: subject, Payload: payload}
		if err := l.recorder.RecordChange(ctx, change); err != nil {
			l.logger.Warn("failed to journal library change", zap.String("operation", operation), zap.Error(err))
		}
	}
	return nil
}

func remove(ids []string, id string) []string {
	if i := slices.Index(ids, id); i >= 0 {
		return slices.Delete(ids, i, i+1)
	}
	return ids
}
