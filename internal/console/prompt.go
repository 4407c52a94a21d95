package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrInvalidInput is returned when a line cannot be parsed as the requested type.
var ErrInvalidInput = errors.New("invalid input")

// Prompter reads single answers from a line-oriented input. A background
// goroutine feeds lines so that reads can be abandoned when ctx is canceled.
type Prompter struct {
	out   io.Writer
	lines chan string
	err   error
	done  chan struct{}
}

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	p := &Prompter{
		out:   out,
		lines: make(chan string),
		done:  make(chan struct{}),
	}
	go p.scan(in)
	return p
}

func (p *Prompter) scan(in io.Reader) {
	defer close(p.done)
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		p.lines <- scanner.Text()
	}
	p.err = scanner.Err()
}

// Ask prints the prompt and returns the trimmed line. It returns io.EOF once
// the input is exhausted and ctx.Err() when ctx is canceled first.
func (p *Prompter) Ask(ctx context.Context, prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	select {
	case line := <-p.lines:
		return strings.TrimSpace(line), nil
	case <-p.done:
		if p.err != nil {
			return "", p.err
		}
		return "", io.EOF
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (p *Prompter) AskFloat(ctx context.Context, prompt string) (float64, error) {
	line, err := p.Ask(ctx, prompt)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(line, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidInput, line)
	}
	return v, nil
}

func (p *Prompter) AskInt(ctx context.Context, prompt string) (int, error) {
	line, err := p.Ask(ctx, prompt)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(line)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a whole number", ErrInvalidInput, line)
	}
	return v, nil
}
