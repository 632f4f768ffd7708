package testsupport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-json2beamer/pkg/bank"
)

// WriteBank marshals records as a JSON question bank under dir and returns the
// file path. Strings are written verbatim so tests can exercise malformed
// payloads.
func WriteBank(t *testing.T, dir, name string, records any) string {
	t.Helper()

	path, err := WriteBankFile(dir, name, records)
	if err != nil {
		t.Fatalf("write bank: %v", err)
	}
	return path
}

// WriteBankFile is WriteBank without testing.T, for godog step definitions
// and other setup code.
func WriteBankFile(dir, name string, records any) (string, error) {
	if name == "" {
		return "", errors.New("testsupport: bank name is required")
	}

	var payload []byte
	switch value := records.(type) {
	case string:
		payload = []byte(value)
	case []byte:
		payload = value
	default:
		encoded, err := json.MarshalIndent(value, "", "  ")
		if err != nil {
			return "", fmt.Errorf("testsupport: marshal bank: %w", err)
		}
		payload = encoded
	}

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("testsupport: mkdir bank dir: %w", err)
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return "", fmt.Errorf("testsupport: write bank: %w", err)
	}
	return path, nil
}

// MustRecords decodes a JSON array literal into bank records.
func MustRecords(t *testing.T, payload string) []bank.Record {
	t.Helper()

	var raw []map[string]any
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		t.Fatalf("decode records: %v", err)
	}
	out := make([]bank.Record, len(raw))
	for i, item := range raw {
		out[i] = bank.Record(item)
	}
	return out
}

// MustBank builds an in-memory bank from a JSON array literal.
func MustBank(t *testing.T, name, payload string) bank.Bank {
	t.Helper()

	b, err := bank.NewBank(bank.SourceFromBytes(name, []byte(payload)), MustRecords(t, payload))
	if err != nil {
		t.Fatalf("new bank: %v", err)
	}
	return b
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// CaptureTemplateOutput executes a render function that writes to an io.Writer,
// returning both the string result and the writer contents.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}

	return out, buf.String()
}
