package auth

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
)

// Prompter shows the authorization URL to the operator and blocks until the
// operator types back the authorization code, or ctx is done.
type Prompter interface {
	Prompt(ctx context.Context, authURL string) (string, error)
}

// PrompterFunc adapts a function to the Prompter interface.
type PrompterFunc func(ctx context.Context, authURL string) (string, error)

func (f PrompterFunc) Prompt(ctx context.Context, authURL string) (string, error) {
	return f(ctx, authURL)
}

// ConsolePrompter prompts on a terminal, reading one line from its input.
// A read abandoned by a cancelled Prompt is handed to the next Prompt, so no
// typed line is lost.
type ConsolePrompter struct {
	in  *bufio.Reader
	out io.Writer

	mu      sync.Mutex
	pending chan readResult
}

type readResult struct {
	line string
	err  error
}

func NewConsolePrompter(in io.Reader, out io.Writer) *ConsolePrompter {
	return &ConsolePrompter{
		in:  bufio.NewReader(in),
		out: out,
	}
}

func (p *ConsolePrompter) Prompt(ctx context.Context, authURL string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	fmt.Fprintf(p.out, "Authorize this app by visiting this url:\n\n  %s\n\n", authURL)
	fmt.Fprint(p.out, "Enter the code from that page here: ")

	if p.pending == nil {
		ch := make(chan readResult, 1)
		go func() {
			line, err := p.in.ReadString('\n')
			ch <- readResult{line, err}
		}()
		p.pending = ch
	}

	select {
	case <-ctx.Done():
		return "", ctx.Err()

	case r := <-p.pending:
		p.pending = nil
		if r.err != nil && !(errors.Is(r.err, io.EOF) && r.line != "") {
			return "", fmt.Errorf("unable to read authorization code: %w", r.err)
		}
		return strings.TrimSpace(r.line), nil
	}
}
