package domain

import "fmt"

// Book is either Available or Borrowed.
type Book struct {
	title    string
	author   string
	isbn     string
	borrowed bool
}

func NewBook(title, author, isbn string) (*Book, error) {
	if isbn == "" {
		return nil, NewError(ErrCodeInvalid, "isbn cannot be empty")
	}
	return &Book{title: title, author: author, isbn: isbn}, nil
}

func (b *Book) Title() string    { return b.title }
func (b *Book) Author() string   { return b.author }
func (b *Book) ISBN() string     { return b.isbn }
func (b *Book) IsBorrowed() bool { return b.borrowed }

func (b *Book) Borrow() error {
	if b.borrowed {
		return ErrAlreadyBorrowed
	}
	b.borrowed = true
	return nil
}

func (b *Book) Return() error {
	if !b.borrowed {
		return ErrNotBorrowed
	}
	b.borrowed = false
	return nil
}

func (b *Book) Status() string {
	if b.borrowed {
		return "Borrowed"
	}
	return "Available"
}

func (b *Book) String() string {
	return fmt.Sprintf("Title: %s, Author: %s, ISBN: %s, Status: %s", b.title, b.author, b.isbn, b.Status())
}

// BookRecord is the persisted form of a Book.
type BookRecord struct {
	Title      string `json:"title"`
	Author     string `json:"author"`
	ISBN       string `json:"isbn"`
	IsBorrowed bool   `json:"is_borrowed"`
}

func (b *Book) Record() BookRecord {
	return BookRecord{Title: b.title, Author: b.author, ISBN: b.isbn, IsBorrowed: b.borrowed}
}

func BookFromRecord(rec BookRecord) *Book {
	return &Book{title: rec.Title, author: rec.Author, isbn: rec.ISBN, borrowed: rec.IsBorrowed}
}
