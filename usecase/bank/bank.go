package bank

import (
	"context"
	"slices"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fastygo/deskapps/domain"
	"github.com/fastygo/deskapps/repository"
	"github.com/fastygo/deskapps/usecase"
)

// Bank owns every customer and account in memory and rewrites the whole
// snapshot after each successful mutation. It is not safe for concurrent use,
// and two Banks over the same storage will overwrite each other.
type Bank struct {
	storage  repository.BankStorage
	recorder usecase.ChangeRecorder
	logger   *zap.Logger

	customers     map[string]*domain.Customer
	customerOrder []string
	accounts      map[string]*domain.Account
	accountOrder  []string
}

// New loads the bank from storage. Missing documents mean an empty bank.
func New(ctx context.Context, storage repository.BankStorage, recorder usecase.ChangeRecorder, logger *zap.Logger) (*Bank, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	b := &Bank{
		storage:  storage,
		recorder: recorder,
		logger:   logger,
	}
	snapshot, err := storage.LoadBank(ctx)
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeInternal, "load bank", err)
	}
	b.apply(snapshot)
	logger.Info("bank loaded",
		zap.Int("customers", len(b.customers)),
		zap.Int("accounts", len(b.accounts)))
	return b, nil
}

func (b *Bank) AddCustomer(ctx context.Context, id, name, address string) (*domain.Customer, error) {
	if _, exists := b.customers[id]; exists {
		return nil, domain.Errorf(domain.ErrCodeConflict, "customer id %s already exists", id)
	}
	customer, err := domain.NewCustomer(id, name, address)
	if err != nil {
		return nil, err
	}
	prev := b.snapshot()
	b.customers[id] = customer
	b.customerOrder = append(b.customerOrder, id)
	if err := b.commit(ctx, prev, "add_customer", id, customer.Record()); err != nil {
		return nil, err
	}
	return cloneCustomer(customer), nil
}

// RemoveCustomer deletes a customer that no longer holds any account.
func (b *Bank) RemoveCustomer(ctx context.Context, id string) error {
	customer, err := b.customer(id)
	if err != nil {
		return err
	}
	if customer.HasAccounts() {
		return domain.Errorf(domain.ErrCodeRejected, "customer %s still holds %d account(s)", id, len(customer.AccountNumbers()))
	}
	prev := b.snapshot()
	delete(b.customers, id)
	b.customerOrder = remove(b.customerOrder, id)
	return b.commit(ctx, prev, "remove_customer", id, nil)
}

func (b *Bank) UpdateAddress(ctx context.Context, id, address string) error {
	customer, err := b.customer(id)
	if err != nil {
		return err
	}
	prev := b.snapshot()
	customer.SetAddress(address)
	return b.commit(ctx, prev, "update_address", id, customer.Record())
}

// CreateAccount opens an account of the given kind for an existing customer.
// variantValue is the interest rate for savings and the overdraft limit for checking.
func (b *Bank) CreateAccount(ctx context.Context, customerID string, kind domain.AccountKind, initialBalance, variantValue float64) (*domain.Account, error) {
	customer, err := b.customer(customerID)
	if err != nil {
		return nil, err
	}

	number := uuid.NewString()
	var account *domain.Account
	switch kind {
	case domain.AccountSavings:
		account, err = domain.NewSavingsAccount(number, customerID, initialBalance, variantValue)
	case domain.AccountChecking:
		account, err = domain.NewCheckingAccount(number, customerID, initialBalance, variantValue)
	default:
		return nil, domain.Errorf(domain.ErrCodeInvalid, "unknown account type %q", kind)
	}
	if err != nil {
		return nil, err
	}

	prev := b.snapshot()
	b.accounts[number] = account
	b.accountOrder = append(b.accountOrder, number)
	customer.AddAccountNumber(number)
	if err := b.commit(ctx, prev, "create_account", number, account.Record()); err != nil {
		return nil, err
	}
	return cloneAccount(account), nil
}

// CloseAccount removes an account whose balance is exactly zero and detaches it from its holder.
func (b *Bank) CloseAccount(ctx context.Context, number string) error {
	account, err := b.account(number)
	if err != nil {
		return err
	}
	if account.Balance() != 0 {
		return domain.Errorf(domain.ErrCodeRejected, "account %s has a non-zero balance", number)
	}
	prev := b.snapshot()
	delete(b.accounts, number)
	b.accountOrder = remove(b.accountOrder, number)
	if holder, ok := b.customers[account.HolderID()]; ok {
		holder.RemoveAccountNumber(number)
	}
	return b.commit(ctx, prev, "close_account", number, nil)
}

func (b *Bank) Deposit(ctx context.Context, number string, amount float64) error {
	account, err := b.account(number)
	if err != nil {
		return err
	}
	prev := b.snapshot()
	if err := account.Deposit(amount); err != nil {
		return err
	}
	return b.commit(ctx, prev, "deposit", number, map[string]any{"amount": amount, "balance": account.Balance()})
}

func (b *Bank) Withdraw(ctx context.Context, number string, amount float64) error {
	account, err := b.account(number)
	if err != nil {
		return err
	}
	prev := b.snapshot()
	if err := account.Withdraw(amount); err != nil {
		return err
	}
	return b.commit(ctx, prev, "withdraw", number, map[string]any{"amount": amount, "balance": account.Balance()})
}

// Transfer moves amount between two accounts and persists once. A rejected
// withdrawal leaves both accounts untouched.
func (b *Bank) Transfer(ctx context.Context, from, to string, amount float64) error {
	source, err := b.account(from)
	if err != nil {
		return err
	}
	destination, err := b.account(to)
	if err != nil {
		return err
	}
	if from == to {
		return domain.NewError(domain.ErrCodeInvalid, "source and destination accounts must differ")
	}

	prev := b.snapshot()
	if err := source.Withdraw(amount); err != nil {
		return err
	}
	if err := destination.Deposit(amount); err != nil {
		b.apply(prev)
		return err
	}
	return b.commit(ctx, prev, "transfer", from, map[string]any{"to": to, "amount": amount})
}

func (b *Bank) ApplyInterest(ctx context.Context, number string) error {
	account, err := b.account(number)
	if err != nil {
		return err
	}
	prev := b.snapshot()
	if err := account.ApplyInterest(); err != nil {
		return err
	}
	return b.commit(ctx, prev, "apply_interest", number, map[string]any{"balance": account.Balance()})
}

// ApplyInterestAll credits interest to every savings account and reports how many were touched.
func (b *Bank) ApplyInterestAll(ctx context.Context) (int, error) {
	prev := b.snapshot()
	applied := 0
	for _, number := range b.accountOrder {
		account := b.accounts[number]
		if account.Kind() != domain.AccountSavings {
			continue
		}
		if err := account.ApplyInterest(); err != nil {
			b.apply(prev)
			return 0, err
		}
		applied++
	}
	if applied == 0 {
		return 0, nil
	}
	if err := b.commit(ctx, prev, "apply_interest_all", "", map[string]any{"accounts": applied}); err != nil {
		return 0, err
	}
	return applied, nil
}

// Customer returns a detached copy of the customer.
func (b *Bank) Customer(id string) (*domain.Customer, bool) {
	c, ok := b.customers[id]
	if !ok {
		return nil, false
	}
	return cloneCustomer(c), true
}

// Account returns a detached copy of the account.
func (b *Bank) Account(number string) (*domain.Account, bool) {
	a, ok := b.accounts[number]
	if !ok {
		return nil, false
	}
	return cloneAccount(a), true
}

func (b *Bank) Customers() []*domain.Customer {
	out := make([]*domain.Customer, 0, len(b.customerOrder))
	for _, id := range b.customerOrder {
		out = append(out, cloneCustomer(b.customers[id]))
	}
	return out
}

// CustomerAccounts resolves the customer's account numbers through the index.
// Numbers that no longer resolve are skipped.
func (b *Bank) CustomerAccounts(id string) ([]*domain.Account, error) {
	customer, err := b.customer(id)
	if err != nil {
		return nil, err
	}
	var out []*domain.Account
	for _, number := range customer.AccountNumbers() {
		if account, ok := b.accounts[number]; ok {
			out = append(out, cloneAccount(account))
		}
	}
	return out, nil
}

func (b *Bank) customer(id string) (*domain.Customer, error) {
	c, ok := b.customers[id]
	if !ok {
		return nil, domain.Errorf(domain.ErrCodeNotFound, "customer %s not found", id)
	}
	return c, nil
}

func (b *Bank) account(number string) (*domain.Account, error) {
	a, ok := b.accounts[number]
	if !ok {
		return nil, domain.Errorf(domain.ErrCodeNotFound, "account %s not found", number)
	}
	return a, nil
}

func (b *Bank) snapshot() *repository.BankSnapshot {
	s := &repository.BankSnapshot{
		Customers: make([]domain.CustomerRecord, 0, len(b.customerOrder)),
		Accounts:  make([]domain.AccountRecord, 0, len(b.accountOrder)),
	}
	for _, id := range b.customerOrder {
		s.Customers = append(s.Customers, b.customers[id].Record())
	}
	for _, number := range b.accountOrder {
		s.Accounts = append(s.Accounts, b.accounts[number].Record())
	}
	return s
}

// apply replaces the in-memory index with the snapshot. Accounts with an
// unknown type are skipped.
func (b *Bank) apply(s *repository.BankSnapshot) {
	b.customers = make(map[string]*domain.Customer, len(s.Customers))
	b.customerOrder = b.customerOrder[:0]
	b.accounts = make(map[string]*domain.Account, len(s.Accounts))
	b.accountOrder = b.accountOrder[:0]

	for _, rec := range s.Customers {
		if _, dup := b.customers[rec.CustomerID]; dup {
			continue
		}
		b.customers[rec.CustomerID] = domain.CustomerFromRecord(rec)
		b.customerOrder = append(b.customerOrder, rec.CustomerID)
	}
	for _, rec := range s.Accounts {
		account, err := domain.AccountFromRecord(rec)
		if err != nil {
			b.logger.Warn("skipping account record",
				zap.String("account_number", rec.AccountNumber),
				zap.String("type", rec.Type),
				zap.Error(err))
			continue
		}
		if _, dup := b.accounts[rec.AccountNumber]; dup {
			continue
		}
		b.accounts[rec.AccountNumber] = account
		b.accountOrder = append(b.accountOrder, rec.AccountNumber)
	}
}

// commit persists the current state. On failure memory returns to prev and
// prev is written back once more; if that write fails too the files may stay
// out of step until the next successful save.
func (b *Bank) commit(ctx context.Context, prev *repository.BankSnapshot, operation, subject string, payload any) error {
	if err := b.storage.SaveBank(ctx, b.snapshot()); err != nil {
		b.apply(prev)
		b.logger.Error("bank persist failed", zap.String("operation", operation), zap.Error(err))
		if restoreErr := b.storage.SaveBank(ctx, prev); restoreErr != nil {
			b.logger.Warn("bank files may disagree until the next save", zap.Error(restoreErr))
		}
		return domain.WrapError(domain.ErrCodeInternal, "save bank", err)
	}
	b.record(ctx, operation, subject, payload)
	return nil
}

func (b *Bank) record(ctx context.Context, operation, subject string, payload any) {
	if b.recorder == nil {
		return
	}
	change := usecase.Change{App: usecase.AppBank, Operation: operation, Subject: subject, Payload: payload}
	if err := b.recorder.RecordChange(ctx, change); err != nil {
		b.logger.Warn("failed to journal bank change", zap.String("operation", operation), zap.Error(err))
	}
}

func cloneCustomer(c *domain.Customer) *domain.Customer {
	return domain.CustomerFromRecord(c.Record())
}

func cloneAccount(a *domain.Account) *domain.Account {
	clone, _ := domain.AccountFromRecord(a.Record())
	return clone
}

func remove(ids []string, id string) []string {
	if i := slices.Index(ids, id); i >= 0 {
		return slices.Delete(ids, i, i+1)
	}
	return ids
}
