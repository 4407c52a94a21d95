package main

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/fastygo/deskapps/domain"
	"github.com/fastygo/deskapps/internal/console"
	"github.com/fastygo/deskapps/usecase"
	"github.com/fastygo/deskapps/usecase/library"
)

type menuDeps struct {
	prompt       *console.Prompter
	out          io.Writer
	history      console.HistorySource
	historyLimit int
	logger       *zap.Logger
}

func buildMenu(l *library.Library, d menuDeps) *console.Menu {
	p, out := d.prompt, d.out
	m := console.NewMenu("--- Library Management System ---", "X", p, out, d.logger)

	m.Register("1", "Add Book", func(ctx context.Context) error {
		title, err := p.Ask(ctx, "Enter book title: ")
		if err != nil {
			return err
		}
		author, err := p.Ask(ctx, "Enter author: ")
		if err != nil {
			return err
		}
		isbn, err := p.Ask(ctx, "Enter ISBN: ")
		if err != nil {
			return err
		}
		if _, err := l.AddBook(ctx, title, author, isbn); err != nil {
			return err
		}
		fmt.Fprintln(out, "Book added successfully.")
		return nil
	})

	m.Register("2", "Remove Book", func(ctx context.Context) error {
		isbn, err := p.Ask(ctx, "Enter ISBN of the book to remove: ")
		if err != nil {
			return err
		}
		if err := l.RemoveBook(ctx, isbn); err != nil {
			return err
		}
		fmt.Fprintln(out, "Book removed.")
		return nil
	})

	m.Register("3", "Register User", func(ctx context.Context) error {
		name, err := p.Ask(ctx, "Enter user name: ")
		if err != nil {
			return err
		}
		id, err := p.Ask(ctx, "Enter user ID: ")
		if err != nil {
			return err
		}
		if _, err := l.RegisterUser(ctx, name, id); err != nil {
			return err
		}
		fmt.Fprintln(out, "User registered.")
		return nil
	})

	m.Register("4", "Remove User", func(ctx context.Context) error {
		id, err := p.Ask(ctx, "Enter user ID to remove: ")
		if err != nil {
			return err
		}
		if err := l.RemoveUser(ctx, id); err != nil {
			return err
		}
		fmt.Fprintln(out, "User removed.")
		return nil
	})

	m.Register("5", "Borrow Book", func(ctx context.Context) error {
		isbn, userID, err := askLoan(ctx, p, "Enter ISBN of the book to borrow: ")
		if err != nil {
			return err
		}
		if err := l.BorrowBook(ctx, isbn, userID); err != nil {
			return err
		}
		fmt.Fprintln(out, "Book borrowed successfully.")
		return nil
	})

	m.Register("6", "Return Book", func(ctx context.Context) error {
		isbn, userID, err := askLoan(ctx, p, "Enter ISBN of the book to return: ")
		if err != nil {
			return err
		}
		if err := l.ReturnBook(ctx, isbn, userID); err != nil {
			return err
		}
		fmt.Fprintln(out, "Book returned successfully.")
		return nil
	})

	m.Register("7", "Search Books", func(ctx context.Context) error {
		query, err := p.Ask(ctx, "Enter title, author, or ISBN to search: ")
		if err != nil {
			return err
		}
		results := l.SearchBooks(query)
		if len(results) == 0 {
			fmt.Fprintln(out, "No matching books found.")
			return nil
		}
		fmt.Fprintln(out, "Search Results:")
		printBooks(out, results)
		return nil
	})

	m.Register("8", "Display All Books", func(context.Context) error {
		fmt.Fprintln(out, "All Books:")
		printBooks(out, l.Books(false))
		return nil
	})

	m.Register("9", "Display All Users", func(context.Context) error {
		fmt.Fprintln(out, "All Users:")
		for _, u := range l.Users() {
			fmt.Fprintln(out, u)
		}
		return nil
	})

	m.Register("10", "Show User Borrowed Books", func(ctx context.Context) error {
		id, err := p.Ask(ctx, "Enter user ID: ")
		if err != nil {
			return err
		}
		books, err := l.BorrowedBooks(id)
		if err != nil {
			return err
		}
		if len(books) == 0 {
			fmt.Fprintln(out, "No borrowed books.")
			return nil
		}
		printBooks(out, books)
		return nil
	})

	m.Register("11", "Display Available Books", func(context.Context) error {
		fmt.Fprintln(out, "Available Books:")
		printBooks(out, l.Books(true))
		return nil
	})

	m.Register("12", "History", console.HistoryHandler(d.history, usecase.AppLibrary, d.historyLimit, out))
	return m
}

func askLoan(ctx context.Context, p *console.Prompter, isbnPrompt string) (string, string, error) {
	isbn, err := p.Ask(ctx, isbnPrompt)
	if err != nil {
		return "", "", err
	}
	userID, err := p.Ask(ctx, "Enter user ID: ")
	if err != nil {
		return "", "", err
	}
	return isbn, userID, nil
}

func printBooks(out io.Writer, books []*domain.Book) {
	for _, b := range books {
		fmt.Fprintln(out, b)
	}
}
