package domain

import (
	"fmt"
	"slices"
)

// Customer owns accounts by number only; the accounts live in the bank index.
type Customer struct {
	id             string
	name           string
	address        string
	accountNumbers []string
}

func NewCustomer(id, name, address string) (*Customer, error) {
	if id == "" {
		return nil, NewError(ErrCodeInvalid, "customer id cannot be empty")
	}
	return &Customer{id: id, name: name, address: address}, nil
}

func (c *Customer) ID() string      { return c.id }
func (c *Customer) Name() string    { return c.name }
func (c *Customer) Address() string { return c.address }

func (c *Customer) SetAddress(address string) {
	c.address = address
}

// AccountNumbers returns a copy of the held account numbers in opening order.
func (c *Customer) AccountNumbers() []string {
	return slices.Clone(c.accountNumbers)
}

func (c *Customer) HasAccounts() bool {
	return len(c.accountNumbers) > 0
}

func (c *Customer) AddAccountNumber(number string) {
	if slices.Contains(c.accountNumbers, number) {
		return
	}
	c.accountNumbers = append(c.accountNumbers, number)
}

func (c *Customer) RemoveAccountNumber(number string) {
	if i := slices.Index(c.accountNumbers, number); i >= 0 {
		c.accountNumbers = slices.Delete(c.accountNumbers, i, i+1)
	}
}

func (c *Customer) Details() string {
	return fmt.Sprintf("Customer ID: %s, Name: %s, Address: %s, Accounts: %d",
		c.id, c.name, c.address, len(c.accountNumbers))
}

// CustomerRecord is the persisted form of a Customer.
type CustomerRecord struct {
	CustomerID     string   `json:"customer_id"`
	Name           string   `json:"name"`
	Address        string   `json:"address"`
	AccountNumbers []string `json:"account_numbers"`
}

func (c *Customer) Record() CustomerRecord {
	numbers := c.AccountNumbers()
	if numbers == nil {
		numbers = []string{}
	}
	return CustomerRecord{
		CustomerID:     c.id,
		Name:           c.name,
		Address:        c.address,
		AccountNumbers: numbers,
	}
}

func CustomerFromRecord(rec CustomerRecord) *Customer {
	c := &Customer{id: rec.CustomerID, name: rec.Name, address: rec.Address}
	for _, number := range rec.AccountNumbers {
		c.AddAccountNumber(number)
	}
	return c
}
