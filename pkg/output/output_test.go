package output

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/goliatone/go-json2beamer/pkg/bank"
)

func TestDocumentPath(t *testing.T) {
	cases := []struct {
		name   string
		inputs []string
		dir    string
		want   string
	}{
		{name: "Single", inputs: []string{filepath.Join("banks", "week1.json")}, want: filepath.Join("banks", "week1_slides.tex")},
		{name: "Several", inputs: []string{filepath.Join("banks", "a.json"), "b.json"}, want: filepath.Join("banks", "a_combined_slides.tex")},
		{name: "OutDir", inputs: []string{"a.yaml"}, dir: "out", want: filepath.Join("out", "a_slides.tex")},
		{name: "URL", inputs: []string{"https://example.test/banks/week2.json?v=1"}, want: "week2_slides.tex"},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got, err := DocumentPath(tc.inputs, tc.dir)
			if err != nil {
				t.Fatalf("document path: %v", err)
			}
			if got != tc.want {
				t.Fatalf("want %q, got %q", tc.want, got)
			}
		})
	}

	if _, err := DocumentPath(nil, ""); err == nil {
		t.Fatalf("expected error without inputs")
	}
}

func TestKeyPath(t *testing.T) {
	got, err := KeyPath([]string{"a.json", "b.json"}, "out")
	if err != nil {
		t.Fatalf("key path: %v", err)
	}
	if want := filepath.Join("out", "a_combined_key.json"); got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
}

func TestPreviewPath(t *testing.T) {
	got, err := PreviewPath([]string{filepath.Join("banks", "quiz.json")}, "")
	if err != nil {
		t.Fatalf("preview path: %v", err)
	}
	if want := filepath.Join("banks", "quiz_preview.html"); got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
}

func TestMergedPath(t *testing.T) {
	got, err := MergedPath([]string{filepath.Join("x", "a.json"), "b.json"}, "")
	if err != nil {
		t.Fatalf("merged path: %v", err)
	}
	if want := filepath.Join("x", "a_combined.json"); got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
}

func TestWriteMerged(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "a_combined.json")
	records := []bank.Record{{"prompt": "café <b>", "id": float64(1)}}

	if err := WriteMerged(path, records); err != nil {
		t.Fatalf("write merged: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	want := "[\n  {\n    \"id\": 1,\n    \"prompt\": \"café <b>\"\n  }\n]\n"
	if string(data) != want {
		t.Fatalf("unexpected artifact:\n%s", data)
	}
}

func TestWriteDocument_ReplacesAtomically(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "deck_slides.tex")

	if err := WriteDocument(path, []byte("first")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := WriteDocument(path, []byte("second")); err != nil {
		t.Fatalf("rewrite: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil || string(data) != "second" {
		t.Fatalf("unexpected content %q (%v)", data, err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected no temp files left, found %d entries", len(entries))
	}
}

func TestWriteDocument_FailureLeavesNothing(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "taken")
	if err := os.Mkdir(target, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	if err := WriteDocument(target, []byte("data")); err == nil {
		t.Fatalf("expected rename over a directory to fail")
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected temp file cleaned up, found %d entries", len(entries))
	}
}

func TestRemove(t *testing.T) {
	if err := Remove(filepath.Join(t.TempDir(), "gone.json")); err != nil {
		t.Fatalf("remove missing: %v", err)
	}
}
