package domain

import (
	"testing"

	"github.com/Pallinder/go-randomdata"
	"github.com/stretchr/testify/require"
)

func TestCustomerAccountNumbers(t *testing.T) {
	c, err := NewCustomer("C1", randomdata.SillyName(), "1 Main St")
	require.NoError(t, err)
	require.False(t, c.HasAccounts())

	c.AddAccountNumber("a")
	c.AddAccountNumber("b")
	c.AddAccountNumber("a")
	require.Equal(t, []string{"a", "b"}, c.AccountNumbers())

	c.RemoveAccountNumber("missing")
	require.Equal(t, []string{"a", "b"}, c.AccountNumbers())

	c.RemoveAccountNumber("a")
	require.Equal(t, []string{"b"}, c.AccountNumbers())
	require.True(t, c.HasAccounts())
}

func TestCustomerAccountNumbersIsACopy(t *testing.T) {
	c, err := NewCustomer("C1", "n", "a")
	require.NoError(t, err)
	c.AddAccountNumber("a")

	numbers := c.AccountNumbers()
	numbers[0] = "tampered"
	require.Equal(t, []string{"a"}, c.AccountNumbers())
}

func TestCustomerRequiresID(t *testing.T) {
	_, err := NewCustomer("", "n", "a")
	require.True(t, IsDomainError(err, ErrCodeInvalid))
}

func TestCustomerRecordRoundTrip(t *testing.T) {
	c, err := NewCustomer("C1", randomdata.SillyName(), "1 Main St")
	require.NoError(t, err)
	c.SetAddress("2 Side St")
	c.AddAccountNumber("a")
	c.AddAccountNumber("b")

	rebuilt := CustomerFromRecord(c.Record())
	require.Equal(t, c.ID(), rebuilt.ID())
	require.Equal(t, c.Name(), rebuilt.Name())
	require.Equal(t, "2 Side St", rebuilt.Address())
	require.Equal(t, c.AccountNumbers(), rebuilt.AccountNumbers())

	empty, err := NewCustomer("C2", "n", "a")
	require.NoError(t, err)
	require.NotNil(t, empty.Record().AccountNumbers)
}
