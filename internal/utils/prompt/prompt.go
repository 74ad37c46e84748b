// Package prompt asks the user for confirmation on the terminal.
package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

// ErrNotInteractive is returned when stdin cannot answer a prompt.
var ErrNotInteractive = errors.New("stdin is not a terminal; pass --yes to confirm non-interactively")

// StdinIsTerminal reports whether os.Stdin is attached to a terminal.
func StdinIsTerminal() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Confirm prints promptMsg and waits for a yes/no answer on in.
// Only "y" and "yes" (any case) confirm.
func Confirm(ctx context.Context, in io.Reader, out io.Writer, promptMsg string) (bool, error) {
	if _, err := fmt.Fprintf(out, "%s [y/N]: ", promptMsg); err != nil {
		return false, err
	}

	type answer struct {
		line string
		err  error
	}
	answerChan := make(chan answer, 1)

	go func() {
		line, err := bufio.NewReader(in).ReadString('\n')
		answerChan <- answer{line: line, err: err}
	}()

	select {
	case a := <-answerChan:
		if a.err != nil && !errors.Is(a.err, io.EOF) {
			return false, fmt.Errorf("failed to read answer: %w", a.err)
		}
		switch strings.ToLower(strings.TrimSpace(a.line)) {
		case "y", "yes":
			return true, nil
		default:
			return false, nil
		}

	case <-ctx.Done():
		return false, fmt.Errorf("confirmation canceled: %w", ctx.Err())
	}
}
