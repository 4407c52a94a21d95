package jsonfile

import (
	"context"

	"github.com/fastygo/deskapps/domain"
	"github.com/fastygo/deskapps/repository"
)

// BankStore keeps customers and accounts as objects keyed by identifier.
type BankStore struct {
	customersPath string
	accountsPath  string
}

func NewBankStore(customersPath, accountsPath string) *BankStore {
	if customersPath == "" {
		customersPath = DefaultCustomersFile
	}
	if accountsPath == "" {
		accountsPath = DefaultAccountsFile
	}
	return &BankStore{customersPath: customersPath, accountsPath: accountsPath}
}

// LoadBank reads both documents, keeping customers and accounts in file order.
func (s *BankStore) LoadBank(ctx context.Context) (*repository.BankSnapshot, error) {
	var customers keyedObject[domain.CustomerRecord]
	if err := readDocument(ctx, s.customersPath, &customers); err != nil {
		return nil, err
	}
	var accounts keyedObject[domain.AccountRecord]
	if err := readDocument(ctx, s.accountsPath, &accounts); err != nil {
		return nil, err
	}

	snapshot := &repository.BankSnapshot{}
	for _, id := range customers.keys {
		rec := customers.values[id]
		rec.CustomerID = id
		snapshot.Customers = append(snapshot.Customers, rec)
	}
	for _, number := range accounts.keys {
		rec := accounts.values[number]
		rec.AccountNumber = number
		snapshot.Accounts = append(snapshot.Accounts, rec)
	}
	return snapshot, nil
}

// SaveBank rewrites both documents in snapshot order. Each file is replaced
// atomically, the pair is not.
func (s *BankStore) SaveBank(ctx context.Context, snapshot *repository.BankSnapshot) error {
	var customers keyedObject[domain.CustomerRecord]
	for _, rec := range snapshot.Customers {
		customers.set(rec.CustomerID, rec)
	}
	var accounts keyedObject[domain.AccountRecord]
	for _, rec := range snapshot.Accounts {
		accounts.set(rec.AccountNumber, rec)
	}
	if err := writeDocument(ctx, s.customersPath, customers, "    "); err != nil {
		return err
	}
	return writeDocument(ctx, s.accountsPath, accounts, "    ")
}

var _ repository.BankStorage = (*BankStore)(nil)
