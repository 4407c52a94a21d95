package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fastygo/deskapps/internal/console"
	"github.com/fastygo/deskapps/repository/jsonfile"
	"github.com/fastygo/deskapps/usecase/library"
)

func runMenu(t *testing.T, l *library.Library, lines ...string) string {
	t.Helper()
	out := &bytes.Buffer{}
	p := console.NewPrompter(strings.NewReader(strings.Join(lines, "\n")+"\n"), out)
	require.NoError(t, buildMenu(l, menuDeps{prompt: p, out: out}).Run(context.Background()))
	return out.String()
}

func TestLibraryGuardFlow(t *testing.T) {
	dir := t.TempDir()
	l, err := library.New(context.Background(), jsonfile.NewLibraryStore(filepath.Join(dir, "books.json"), filepath.Join(dir, "users.json")), nil, nil)
	require.NoError(t, err)

	out := runMenu(t, l,
		"1", "Dune", "Frank Herbert", "B1",
		"1", "Emma", "Jane Austen", "B2",
		"3", "Ann", "U1",
		"5", "B1", "U1",
		"5", "B1", "U1",
		"4", "U1",
		"10", "U1",
		"11",
		"7", "austen",
		"6", "B1", "U1",
		"4", "U1",
		"9",
		"x",
	)
	require.Contains(t, out, "Book added successfully.")
	require.Contains(t, out, "User registered.")
	require.Contains(t, out, "Book borrowed successfully.")
	require.Contains(t, out, "book is already borrowed")
	require.Contains(t, out, "user has borrowed books, cannot remove")
	require.Contains(t, out, "Title: Dune, Author: Frank Herbert, ISBN: B1, Status: Borrowed")
	require.Contains(t, out, "Title: Emma, Author: Jane Austen, ISBN: B2, Status: Available")
	require.Contains(t, out, "Book returned successfully.")
	require.Contains(t, out, "User removed.")
	require.Contains(t, out, "Goodbye!")
	require.Empty(t, l.Users())
}

func TestSearchWithoutResults(t *testing.T) {
	dir := t.TempDir()
	l, err := library.New(context.Background(), jsonfile.NewLibraryStore(filepath.Join(dir, "books.json"), filepath.Join(dir, "users.json")), nil, nil)
	require.NoError(t, err)

	out := runMenu(t, l, "7", "nothing", "2", "B9", "13", "X")
	require.Contains(t, out, "No matching books found.")
	require.Contains(t, out, "book not found")
	require.Contains(t, out, "Invalid choice. Please try again.")
}
