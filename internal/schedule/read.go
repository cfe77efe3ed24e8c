package schedule

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"unicode/utf8"
)

// MaxUploadSize is the largest schedule file accepted
const MaxUploadSize = 1 << 20

// ErrNotText is returned when the selected file is not UTF-8 text
var ErrNotText = errors.New("schedule file is not valid UTF-8 text")

// ErrTooLarge is returned when the file is bigger than MaxUploadSize
var ErrTooLarge = errors.New("schedule file is larger than 1 MiB")

// ReadText returns the text content of a user-selected schedule file.
// The read is abandoned if ctx is cancelled first.
func ReadText(ctx context.Context, path string) (string, error) {
	type result struct {
		text string
		err  error
	}

	done := make(chan result, 1)
	go func() {
		text, err := readFile(path)
		done <- result{text: text, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.text, r.err
	}
}

func readFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open schedule file: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, MaxUploadSize+1))
	if err != nil {
		return "", fmt.Errorf("failed to read schedule file: %w", err)
	}
	if len(data) > MaxUploadSize {
		return "", ErrTooLarge
	}
	if !utf8.Valid(data) {
		return "", ErrNotText
	}

	return string(data), nil
}
