package prompt_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"mdload/internal/utils/prompt"
)

func TestConfirm(t *testing.T) {
	tests := map[string]bool{
		"y\n":     true,
		"YES\n":   true,
		" yes ":   true,
		"n\n":     false,
		"\n":      false,
		"":        false,
		"maybe\n": false,
	}

	for input, want := range tests {
		var out bytes.Buffer
		got, err := prompt.Confirm(context.Background(), strings.NewReader(input), &out, "Continue?")
		if err != nil {
			t.Fatalf("input %q: unexpected error %v", input, err)
		}
		if got != want {
			t.Fatalf("input %q: got %v, want %v", input, got, want)
		}
		if !strings.Contains(out.String(), "Continue? [y/N]") {
			t.Fatalf("prompt not printed: %q", out.String())
		}
	}
}

func TestConfirmCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	blocking := &blockingReader{done: make(chan struct{})}
	defer close(blocking.done)

	_, err := prompt.Confirm(ctx, blocking, &bytes.Buffer{}, "Continue?")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

type blockingReader struct {
	done chan struct{}
}

func (b *blockingReader) Read(_ []byte) (int, error) {
	<-b.done
	return 0, nil
}
