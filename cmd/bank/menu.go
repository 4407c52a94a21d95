package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/fastygo/deskapps/domain"
	"github.com/fastygo/deskapps/internal/console"
	"github.com/fastygo/deskapps/usecase"
	"github.com/fastygo/deskapps/usecase/bank"
)

type menuDeps struct {
	prompt       *console.Prompter
	out          io.Writer
	history      console.HistorySource
	historyLimit int
	logger       *zap.Logger
}

func buildMenu(b *bank.Bank, d menuDeps) *console.Menu {
	p, out := d.prompt, d.out
	m := console.NewMenu("--- Banking System ---", "0", p, out, d.logger)

	m.Register("1", "Add Customer", func(ctx context.Context) error {
		id, err := p.Ask(ctx, "Enter customer ID: ")
		if err != nil {
			return err
		}
		name, err := p.Ask(ctx, "Enter customer name: ")
		if err != nil {
			return err
		}
		address, err := p.Ask(ctx, "Enter customer address: ")
		if err != nil {
			return err
		}
		if _, err := b.AddCustomer(ctx, id, name, address); err != nil {
			return err
		}
		fmt.Fprintln(out, "Customer added successfully.")
		return nil
	})

	m.Register("2", "Create Account", func(ctx context.Context) error {
		customerID, err := p.Ask(ctx, "Enter customer ID: ")
		if err != nil {
			return err
		}
		if _, ok := b.Customer(customerID); !ok {
			fmt.Fprintln(out, "Customer ID does not exist.")
			return nil
		}
		raw, err := p.Ask(ctx, "Enter account type (savings/checking): ")
		if err != nil {
			return err
		}
		kind, err := domain.ParseAccountKind(strings.ToLower(raw))
		if err != nil {
			fmt.Fprintln(out, "Invalid account type.")
			return nil
		}
		balance, err := p.AskFloat(ctx, "Enter initial balance: ")
		if err != nil {
			return err
		}
		variantPrompt := "Enter interest rate: "
		if kind == domain.AccountChecking {
			variantPrompt = "Enter overdraft limit: "
		}
		variant, err := p.AskFloat(ctx, variantPrompt)
		if err != nil {
			return err
		}
		account, err := b.CreateAccount(ctx, customerID, kind, balance, variant)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s account created successfully. Account Number: %s\n", capitalize(string(kind)), account.Number())
		return nil
	})

	m.Register("3", "Deposit", func(ctx context.Context) error {
		number, amount, err := askAmount(ctx, p, "Enter amount to deposit: ")
		if err != nil {
			return err
		}
		if err := b.Deposit(ctx, number, amount); err != nil {
			return err
		}
		fmt.Fprintln(out, "Deposit successful.")
		return nil
	})

	m.Register("4", "Withdraw", func(ctx context.Context) error {
		number, amount, err := askAmount(ctx, p, "Enter amount to withdraw: ")
		if err != nil {
			return err
		}
		if err := b.Withdraw(ctx, number, amount); err != nil {
			return err
		}
		fmt.Fprintln(out, "Withdrawal successful.")
		return nil
	})

	m.Register("5", "Transfer", func(ctx context.Context) error {
		from, err := p.Ask(ctx, "Enter source account number: ")
		if err != nil {
			return err
		}
		to, err := p.Ask(ctx, "Enter destination account number: ")
		if err != nil {
			return err
		}
		amount, err := p.AskFloat(ctx, "Enter amount to transfer: ")
		if err != nil {
			return err
		}
		if err := b.Transfer(ctx, from, to, amount); err != nil {
			return err
		}
		fmt.Fprintln(out, "Transfer successful.")
		return nil
	})

	m.Register("6", "View Customer Accounts", func(ctx context.Context) error {
		id, err := p.Ask(ctx, "Enter customer ID: ")
		if err != nil {
			return err
		}
		accounts, err := b.CustomerAccounts(id)
		if err != nil {
			return err
		}
		if len(accounts) == 0 {
			fmt.Fprintln(out, "No accounts.")
		}
		for _, a := range accounts {
			fmt.Fprintln(out, a.Details())
		}
		return nil
	})

	m.Register("7", "Apply Interest", func(ctx context.Context) error {
		n, err := b.ApplyInterestAll(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Interest applied to %d savings account(s).\n", n)
		return nil
	})

	m.Register("8", "View Customers", func(context.Context) error {
		customers := b.Customers()
		if len(customers) == 0 {
			fmt.Fprintln(out, "No customers.")
		}
		for _, c := range customers {
			fmt.Fprintln(out, c.Details())
		}
		return nil
	})

	m.Register("9", "Update Address", func(ctx context.Context) error {
		id, err := p.Ask(ctx, "Enter customer ID: ")
		if err != nil {
			return err
		}
		address, err := p.Ask(ctx, "Enter new address: ")
		if err != nil {
			return err
		}
		if err := b.UpdateAddress(ctx, id, address); err != nil {
			return err
		}
		fmt.Fprintln(out, "Address updated.")
		return nil
	})

	m.Register("10", "Close Account", func(ctx context.Context) error {
		number, err := p.Ask(ctx, "Enter account number: ")
		if err != nil {
			return err
		}
		if err := b.CloseAccount(ctx, number); err != nil {
			return err
		}
		fmt.Fprintln(out, "Account closed.")
		return nil
	})

	m.Register("11", "Remove Customer", func(ctx context.Context) error {
		id, err := p.Ask(ctx, "Enter customer ID to remove: ")
		if err != nil {
			return err
		}
		if err := b.RemoveCustomer(ctx, id); err != nil {
			return err
		}
		fmt.Fprintln(out, "Customer removed.")
		return nil
	})

	m.Register("12", "History", console.HistoryHandler(d.history, usecase.AppBank, d.historyLimit, out))
	return m
}

func askAmount(ctx context.Context, p *console.Prompter, prompt string) (string, float64, error) {
	number, err := p.Ask(ctx, "Enter account number: ")
	if err != nil {
		return "", 0, err
	}
	amount, err := p.AskFloat(ctx, prompt)
	if err != nil {
		return "", 0, err
	}
	return number, amount, nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
