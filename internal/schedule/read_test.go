package schedule

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestReadText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.txt")
	if err := os.WriteFile(path, []byte("Day1 - Wake up\r\nDay2 - Work\r\n"), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	text, err := ReadText(context.Background(), path)
	if err != nil {
		t.Fatalf("ReadText failed: %v", err)
	}
	if got := len(Parse(text)); got != 2 {
		t.Errorf("expected 2 entries from file, got %d", got)
	}
}

func TestReadTextErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := ReadText(context.Background(), filepath.Join(dir, "missing.txt")); err == nil {
		t.Error("expected error for missing file")
	}

	binary := filepath.Join(dir, "blob.bin")
	if err := os.WriteFile(binary, []byte{0xff, 0xfe, 0x00, 0xc3}, 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}
	if _, err := ReadText(context.Background(), binary); !errors.Is(err, ErrNotText) {
		t.Errorf("expected ErrNotText, got %v", err)
	}

	empty := filepath.Join(dir, "empty.txt")
	if err := os.WriteFile(empty, nil, 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}
	text, err := ReadText(context.Background(), empty)
	if err != nil || text != "" {
		t.Errorf("empty file: got %q, %v", text, err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := ReadText(ctx, empty); err != nil && !errors.Is(err, context.Canceled) {
		t.Errorf("expected nil or context.Canceled, got %v", err)
	}
}

func TestReadTextSizeLimit(t *testing.T) {
	dir := t.TempDir()

	// Exactly at the limit, ending in a complete line
	line := "Day 1 - " + strings.Repeat("x", 55) + "\n"
	exact := strings.Repeat(line, MaxUploadSize/len(line))
	exact += strings.Repeat("y", MaxUploadSize-len(exact))
	atLimit := filepath.Join(dir, "exact.txt")
	if err := os.WriteFile(atLimit, []byte(exact), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}
	text, err := ReadText(context.Background(), atLimit)
	if err != nil {
		t.Fatalf("file at the limit: %v", err)
	}
	if len(text) != MaxUploadSize {
		t.Errorf("expected %d bytes, got %d", MaxUploadSize, len(text))
	}

	// Over the limit is rejected rather than cut short, even mid-character
	big := strings.Repeat(line, MaxUploadSize/len(line)+1) + "Day 2 - LAST é\n"
	over := filepath.Join(dir, "big.txt")
	if err := os.WriteFile(over, []byte(big), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}
	if _, err := ReadText(context.Background(), over); !errors.Is(err, ErrTooLarge) {
		t.Errorf("expected ErrTooLarge, got %v", err)
	}
}
