package domain

import (
	"fmt"
	"slices"
)

// User is a library member holding borrowed books by ISBN.
type User struct {
	name          string
	id            string
	borrowedISBNs []string
}

func NewUser(name, id string) (*User, error) {
	if id == "" {
		return nil, NewError(ErrCodeInvalid, "user id cannot be empty")
	}
	return &User{name: name, id: id}, nil
}

func (u *User) Name() string { return u.name }
func (u *User) ID() string   { return u.id }

// BorrowedISBNs returns a copy of the borrowed book list.
func (u *User) BorrowedISBNs() []string {
	return slices.Clone(u.borrowedISBNs)
}

func (u *User) HasBorrowed(isbn string) bool {
	return slices.Contains(u.borrowedISBNs, isbn)
}

func (u *User) AddBorrowedBook(isbn string) {
	if u.HasBorrowed(isbn) {
		return
	}
	u.borrowedISBNs = append(u.borrowedISBNs, isbn)
}

func (u *User) RemoveBorrowedBook(isbn string) {
	if i := slices.Index(u.borrowedISBNs, isbn); i >= 0 {
		u.borrowedISBNs = slices.Delete(u.borrowedISBNs, i, i+1)
	}
}

func (u *User) String() string {
	return fmt.Sprintf("User: %s (ID: %s), Borrowed Books: %d", u.name, u.id, len(u.borrowedISBNs))
}

// UserRecord is the persisted form of a library User.
type UserRecord struct {
	Name               string   `json:"name"`
	UserID             string   `json:"user_id"`
	BorrowedBooksISBNs []string `json:"borrowed_books_isbns"`
}

func (u *User) Record() UserRecord {
	isbns := u.BorrowedISBNs()
	if isbns == nil {
		isbns = []string{}
	}
	return UserRecord{Name: u.name, UserID: u.id, BorrowedBooksISBNs: isbns}
}

func UserFromRecord(rec UserRecord) *User {
	u := &User{name: rec.Name, id: rec.UserID}
	for _, isbn := range rec.BorrowedBooksISBNs {
		u.AddBorrowedBook(isbn)
	}
	return u
}
