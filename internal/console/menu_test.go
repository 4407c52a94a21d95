package console

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fastygo/deskapps/domain"
)

func newMenu(input string) (*Menu, *bytes.Buffer, *Prompter) {
	out := &bytes.Buffer{}
	p := NewPrompter(strings.NewReader(input), out)
	return NewMenu("Test Menu", "0", p, out, nil), out, p
}

func TestRunDispatchesAndExits(t *testing.T) {
	m, out, p := newMenu("1\n2\n9\n0\n")
	var got []string
	m.Register("1", "Greet", func(ctx context.Context) error {
		name, err := p.Ask(ctx, "Name: ")
		if err != nil {
			return err
		}
		got = append(got, name)
		return nil
	})
	m.Register("9", "Fail", func(context.Context) error {
		return domain.ErrInsufficientFunds
	})

	require.NoError(t, m.Run(context.Background()))
	require.Equal(t, []string{"2"}, got)
	require.Contains(t, out.String(), "1. Greet")
	require.Contains(t, out.String(), "0. Exit")
	require.Contains(t, out.String(), "Error: "+domain.ErrInsufficientFunds.Error())
	require.Contains(t, out.String(), "Goodbye!")
}

func TestRunReportsInvalidChoiceAndEndsOnEOF(t *testing.T) {
	m, out, _ := newMenu("7\n")
	m.Register("1", "Noop", func(context.Context) error { return nil })

	require.NoError(t, m.Run(context.Background()))
	require.Contains(t, out.String(), "Invalid choice. Please try again.")
	require.Contains(t, out.String(), "Goodbye!")
}

func TestRunContinuesAfterParseError(t *testing.T) {
	m, out, p := newMenu("1\nabc\n1\n12.5\n0\n")
	var amounts []float64
	m.Register("1", "Deposit", func(ctx context.Context) error {
		v, err := p.AskFloat(ctx, "Amount: ")
		if err != nil {
			return err
		}
		amounts = append(amounts, v)
		return nil
	})

	require.NoError(t, m.Run(context.Background()))
	require.Equal(t, []float64{12.5}, amounts)
	require.Contains(t, out.String(), `"abc" is not a number`)
}

func TestRunStopsWhenHandlerHitsEOF(t *testing.T) {
	m, _, p := newMenu("1\n")
	m.Register("1", "Ask", func(ctx context.Context) error {
		_, err := p.AskInt(ctx, "Qty: ")
		return err
	})
	require.NoError(t, m.Run(context.Background()))
}

func TestRunReturnsUnexpectedHandlerErrorsWithoutStopping(t *testing.T) {
	m, out, _ := newMenu("1\n0\n")
	m.Register("1", "Broken", func(context.Context) error { return errors.New("disk on fire") })
	require.NoError(t, m.Run(context.Background()))
	require.Contains(t, out.String(), "Error: disk on fire")
}

func TestRunStopsOnCancel(t *testing.T) {
	r, w := io.Pipe()
	defer w.Close()
	out := &bytes.Buffer{}
	m := NewMenu("Test Menu", "0", NewPrompter(r, out), out, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- m.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("menu did not stop after cancel")
	}
}

func TestExecuteUnknownKey(t *testing.T) {
	m, _, _ := newMenu("")
	require.Error(t, m.Execute(context.Background(), "42"))
}

func TestAskInt(t *testing.T) {
	out := &bytes.Buffer{}
	p := NewPrompter(strings.NewReader(" 7 \nx\nYes\n"), out)
	ctx := context.Background()

	n, err := p.AskInt(ctx, "n: ")
	require.NoError(t, err)
	require.Equal(t, 7, n)

	_, err = p.AskInt(ctx, "n: ")
	require.ErrorIs(t, err, ErrInvalidInput)

	line, err := p.Ask(ctx, "sure? ")
	require.NoError(t, err)
	require.Equal(t, "Yes", line)

	_, err = p.Ask(ctx, "more: ")
	require.ErrorIs(t, err, io.EOF)
	require.Equal(t, "n: n: sure? more: ", out.String())
}
