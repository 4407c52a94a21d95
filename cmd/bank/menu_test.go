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
	"github.com/fastygo/deskapps/usecase/bank"
)

func newBank(t *testing.T) *bank.Bank {
	t.Helper()
	dir := t.TempDir()
	b, err := bank.New(context.Background(), jsonfile.NewBankStore(filepath.Join(dir, "customers.json"), filepath.Join(dir, "accounts.json")), nil, nil)
	require.NoError(t, err)
	return b
}

func runMenu(t *testing.T, b *bank.Bank, lines ...string) string {
	t.Helper()
	out := &bytes.Buffer{}
	p := console.NewPrompter(strings.NewReader(strings.Join(lines, "\n")+"\n"), out)
	require.NoError(t, buildMenu(b, menuDeps{prompt: p, out: out}).Run(context.Background()))
	return out.String()
}

func TestSavingsFlow(t *testing.T) {
	b := newBank(t)
	out := runMenu(t, b,
		"1", "C1", "Ann", "Elm 1",
		"1", "C1", "Bob", "Oak 2",
		"2", "C1", "Savings", "100", "0.05",
		"7",
		"6", "C1",
		"0",
	)
	require.Contains(t, out, "Customer added successfully.")
	require.Contains(t, out, "already exists")
	require.Contains(t, out, "Savings account created successfully.")
	require.Contains(t, out, "Interest applied to 1 savings account(s).")
	require.Contains(t, out, "Balance: $105.00")

	accounts, err := b.CustomerAccounts("C1")
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	number := accounts[0].Number()

	out = runMenu(t, b, "4", number, "200", "4", number, "5", "0")
	require.Contains(t, out, "insufficient funds")
	require.Contains(t, out, "Withdrawal successful.")
	got, _ := b.Account(number)
	require.InDelta(t, 100.0, got.Balance(), 1e-9)
}

func TestCreateAccountInputErrors(t *testing.T) {
	b := newBank(t)
	out := runMenu(t, b,
		"2", "ghost",
		"1", "C1", "Ann", "Elm 1",
		"2", "C1", "brokerage",
		"2", "C1", "checking", "lots",
		"0",
	)
	require.Contains(t, out, "Customer ID does not exist.")
	require.Contains(t, out, "Invalid account type.")
	require.Contains(t, out, `"lots" is not a number`)
	c, _ := b.Customer("C1")
	require.Empty(t, c.AccountNumbers())
}

func TestCloseAndRemove(t *testing.T) {
	b := newBank(t)
	runMenu(t, b, "1", "C1", "Ann", "Elm 1", "2", "C1", "checking", "0", "50", "0")
	accounts, err := b.CustomerAccounts("C1")
	require.NoError(t, err)
	number := accounts[0].Number()

	out := runMenu(t, b,
		"11", "C1",
		"10", number,
		"11", "C1",
		"8",
		"12",
		"0",
	)
	require.Contains(t, out, "still holds 1 account(s)")
	require.Contains(t, out, "Account closed.")
	require.Contains(t, out, "Customer removed.")
	require.Contains(t, out, "No customers.")
	require.Contains(t, out, "History is disabled.")
}
