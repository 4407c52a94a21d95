package domain

import (
	"fmt"
	"math"
)

// AccountKind discriminates the account variants.
type AccountKind string

const (
	AccountSavings  AccountKind = "savings"
	AccountChecking AccountKind = "checking"
)

// ParseAccountKind maps a discriminator onto a known account variant.
func ParseAccountKind(s string) (AccountKind, error) {
	switch AccountKind(s) {
	case AccountSavings, AccountChecking:
		return AccountKind(s), nil
	default:
		return "", ErrUnknownKind
	}
}

// Account is a bank account. Kind selects which payload field is meaningful:
// interestRate for savings, overdraftLimit for checking.
type Account struct {
	number   string
	holderID string
	kind     AccountKind
	balance  float64

	interestRate   float64
	overdraftLimit float64
}

// finite reports whether v is neither NaN nor an infinity.
func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// nonNegative reports whether v is a finite value of at least zero.
func nonNegative(v float64) bool {
	return finite(v) && v >= 0
}

// NewSavingsAccount builds a savings account.
func NewSavingsAccount(number, holderID string, balance, interestRate float64) (*Account, error) {
	if !nonNegative(balance) {
		return nil, NewError(ErrCodeInvalid, "initial balance cannot be negative")
	}
	if !nonNegative(interestRate) {
		return nil, NewError(ErrCodeInvalid, "interest rate cannot be negative")
	}
	return &Account{
		number:       number,
		holderID:     holderID,
		kind:         AccountSavings,
		balance:      balance,
		interestRate: interestRate,
	}, nil
}

// NewCheckingAccount builds a checking account.
func NewCheckingAccount(number, holderID string, balance, overdraftLimit float64) (*Account, error) {
	if !nonNegative(balance) {
		return nil, NewError(ErrCodeInvalid, "initial balance cannot be negative")
	}
	if !nonNegative(overdraftLimit) {
		return nil, NewError(ErrCodeInvalid, "overdraft limit cannot be negative")
	}
	return &Account{
		number:         number,
		holderID:       holderID,
		kind:           AccountChecking,
		balance:        balance,
		overdraftLimit: overdraftLimit,
	}, nil
}

func (a *Account) Number() string          { return a.number }
func (a *Account) HolderID() string        { return a.holderID }
func (a *Account) Kind() AccountKind       { return a.kind }
func (a *Account) Balance() float64        { return a.balance }
func (a *Account) InterestRate() float64   { return a.interestRate }
func (a *Account) OverdraftLimit() float64 { return a.overdraftLimit }

// Available is the amount that can currently be withdrawn.
func (a *Account) Available() float64 {
	if a.kind == AccountChecking {
		return a.balance + a.overdraftLimit
	}
	return a.balance
}

func (a *Account) Deposit(amount float64) error {
	if !finite(amount) || amount <= 0 {
		return ErrInvalidAmount
	}
	if !finite(a.balance + amount) {
		return NewError(ErrCodeInvalid, "balance would overflow")
	}
	a.balance += amount
	return nil
}

// Withdraw removes amount from the balance. Checking accounts may dip below
// zero down to -overdraftLimit.
func (a *Account) Withdraw(amount float64) error {
	if !finite(amount) || amount <= 0 {
		return ErrInvalidAmount
	}
	if amount > a.Available() {
		return ErrInsufficientFunds
	}
	a.balance -= amount
	return nil
}

// ApplyInterest credits one period of interest. Nothing prevents a second
// call within the same period.
func (a *Account) ApplyInterest() error {
	if a.kind != AccountSavings {
		return ErrNotSavings
	}
	credited := a.balance + a.balance*a.interestRate
	if !finite(credited) {
		return NewError(ErrCodeInvalid, "balance would overflow")
	}
	a.balance = credited
	return nil
}

func (a *Account) SetInterestRate(rate float64) error {
	if a.kind != AccountSavings {
		return NewError(ErrCodeInvalid, "interest rate applies to savings accounts only")
	}
	if !nonNegative(rate) {
		return NewError(ErrCodeInvalid, "interest rate cannot be negative")
	}
	a.interestRate = rate
	return nil
}

func (a *Account) SetOverdraftLimit(limit float64) error {
	if a.kind != AccountChecking {
		return NewError(ErrCodeInvalid, "overdraft limit applies to checking accounts only")
	}
	if !nonNegative(limit) {
		return NewError(ErrCodeInvalid, "overdraft limit cannot be negative")
	}
	a.overdraftLimit = limit
	return nil
}

// Details renders the account for the console.
func (a *Account) Details() string {
	base := fmt.Sprintf("Acc No: %s, Balance: $%.2f", a.number, a.balance)
	switch a.kind {
	case AccountSavings:
		return fmt.Sprintf("%s, Interest Rate: %g%%", base, a.interestRate*100)
	case AccountChecking:
		return fmt.Sprintf("%s, Overdraft Limit: $%.2f", base, a.overdraftLimit)
	default:
		return base
	}
}

// AccountRecord is the persisted form of an Account.
type AccountRecord struct {
	AccountNumber   string   `json:"account_number"`
	AccountHolderID string   `json:"account_holder_id"`
	Balance         float64  `json:"balance"`
	Type            string   `json:"type"`
	InterestRate    *float64 `json:"interest_rate,omitempty"`
	OverdraftLimit  *float64 `json:"overdraft_limit,omitempty"`
}

func (a *Account) Record() AccountRecord {
	rec := AccountRecord{
		AccountNumber:   a.number,
		AccountHolderID: a.holderID,
		Balance:         a.balance,
		Type:            string(a.kind),
	}
	switch a.kind {
	case AccountSavings:
		rate := a.interestRate
		rec.InterestRate = &rate
	case AccountChecking:
		limit := a.overdraftLimit
		rec.OverdraftLimit = &limit
	}
	return rec
}

// AccountFromRecord rebuilds an account. The stored balance is trusted as-is,
// so a checking account may come back overdrawn. Unknown types yield ErrUnknownKind.
func AccountFromRecord(rec AccountRecord) (*Account, error) {
	kind, err := ParseAccountKind(rec.Type)
	if err != nil {
		return nil, err
	}
	acc := &Account{
		number:   rec.AccountNumber,
		holderID: rec.AccountHolderID,
		kind:     kind,
		balance:  rec.Balance,
	}
	switch kind {
	case AccountSavings:
		if rec.InterestRate != nil {
			acc.interestRate = *rec.InterestRate
		}
	case AccountChecking:
		if rec.OverdraftLimit != nil {
			acc.overdraftLimit = *rec.OverdraftLimit
		}
	}
	return acc, nil
}
