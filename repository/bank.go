package repository

import (
	"context"

	"github.com/fastygo/deskapps/domain"
)

// BankSnapshot is the full persisted state of the bank.
type BankSnapshot struct {
	Customers []domain.CustomerRecord
	Accounts  []domain.AccountRecord
}

type BankStorage interface {
	LoadBank(ctx context.Context) (*BankSnapshot, error)
	SaveBank(ctx context.Context, snapshot *BankSnapshot) error
}
