package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/fastygo/deskapps/domain"
)

// Handler runs one menu option and returns its outcome.
type Handler func(ctx context.Context) error

type option struct {
	key     string
	label   string
	handler Handler
}

// Menu is a numbered console menu that dispatches each choice to its handler.
type Menu struct {
	title   string
	exitKey string
	out     io.Writer
	prompt  *Prompter
	logger  *zap.Logger

	options []option
	byKey   map[string]int
}

func NewMenu(title, exitKey string, prompt *Prompter, out io.Writer, logger *zap.Logger) *Menu {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Menu{
		title:   title,
		exitKey: exitKey,
		out:     out,
		prompt:  prompt,
		logger:  logger,
		byKey:   make(map[string]int),
	}
}

// Register adds an option. Registering an existing key replaces its handler.
func (m *Menu) Register(key, label string, handler Handler) {
	if i, ok := m.byKey[key]; ok {
		m.options[i] = option{key: key, label: label, handler: handler}
		return
	}
	m.byKey[key] = len(m.options)
	m.options = append(m.options, option{key: key, label: label, handler: handler})
}

// Execute runs the handler registered under key.
func (m *Menu) Execute(ctx context.Context, key string) error {
	i, ok := m.byKey[key]
	if !ok {
		return fmt.Errorf("menu option %s not registered", key)
	}
	return m.options[i].handler(ctx)
}

// Run shows the menu until the exit key is chosen, the input ends or ctx is canceled.
func (m *Menu) Run(ctx context.Context) error {
	for {
		m.render()
		choice, err := m.prompt.Ask(ctx, "Enter your choice: ")
		if err != nil {
			return m.finish(err)
		}
		if strings.EqualFold(choice, m.exitKey) {
			fmt.Fprintln(m.out, "Goodbye!")
			return nil
		}
		if _, ok := m.byKey[choice]; !ok {
			fmt.Fprintln(m.out, "Invalid choice. Please try again.")
			continue
		}
		if err := m.Execute(ctx, choice); err != nil {
			if stop := m.report(choice, err); stop != nil {
				return m.finish(stop)
			}
		}
	}
}

func (m *Menu) render() {
	fmt.Fprintf(m.out, "\n%s\n", m.title)
	for _, opt := range m.options {
		fmt.Fprintf(m.out, "%s. %s\n", opt.key, opt.label)
	}
	fmt.Fprintf(m.out, "%s. Exit\n", m.exitKey)
}

// report prints a failed option and returns a non-nil error when the loop must stop.
func (m *Menu) report(choice string, err error) error {
	switch {
	case errors.Is(err, io.EOF), errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	case errors.Is(err, ErrInvalidInput):
		fmt.Fprintf(m.out, "Error: %v\n", err)
	case domain.IsRejection(err), domain.IsDomainError(err, domain.ErrCodeInvalid):
		fmt.Fprintf(m.out, "Error: %v\n", err)
	default:
		m.logger.Error("menu option failed", zap.String("option", choice), zap.Error(err))
		fmt.Fprintf(m.out, "Error: %v\n", err)
	}
	return nil
}

func (m *Menu) finish(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
		fmt.Fprintln(m.out, "\nGoodbye!")
		return nil
	}
	return err
}
