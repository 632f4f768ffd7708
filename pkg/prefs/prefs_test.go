package prefs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-json2beamer/pkg/model"
)

func TestOpen_MissingFileUsesDefaults(t *testing.T) {
	dir := t.TempDir()
	store, err := Open(WithWorkingDir(dir), WithConfigDir(filepath.Join(dir, "config")))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if want := filepath.Join(dir, "config", "json2beamer", FileName); store.Path() != want {
		t.Fatalf("want path %q, got %q", want, store.Path())
	}
	if diff := cmp.Diff(Defaults(), store.Load()); diff != "" {
		t.Fatalf("defaults mismatch (-want +got):\n%s", diff)
	}
}

func TestOpen_PrefersLocalFile(t *testing.T) {
	dir := t.TempDir()
	local := filepath.Join(dir, FileName)
	content := "[preferences]\ntitle = Week 3\nfsq = Huge\nalert_color = 00FF00\nshuffle_seed = 42\n"
	if err := os.WriteFile(local, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	store, err := Open(WithWorkingDir(dir), WithConfigDir(filepath.Join(dir, "config")))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if store.Path() != local {
		t.Fatalf("expected local file, got %q", store.Path())
	}

	want := Preferences{
		Title:       "Week 3",
		FSQ:         "Huge",
		FSA:         string(model.DefaultAnswerFontSize),
		AlertColor:  "00FF00",
		ShuffleSeed: "42",
	}
	if diff := cmp.Diff(want, store.Load()); diff != "" {
		t.Fatalf("preferences mismatch (-want +got):\n%s", diff)
	}
}

func TestSave_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", FileName)
	store, err := Open(WithPath(path))
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	saved := Preferences{Title: "Review", FSQ: "LARGE", FSA: "small", AlertColor: "#336699", ShuffleSeed: "spring"}
	if err := store.Save(saved); err != nil {
		t.Fatalf("save: %v", err)
	}

	reopened, err := Open(WithPath(path))
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if diff := cmp.Diff(saved, reopened.Load()); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestOpen_YAMLByExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.yaml")
	if err := os.WriteFile(path, []byte("preferences:\n  title: From YAML\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	store, err := Open(WithPath(path))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if got := store.Load().Title; got != "From YAML" {
		t.Fatalf("unexpected title %q", got)
	}
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("JSON2BEAMER_TITLE", "From Env")
	t.Setenv("JSON2BEAMER_SHUFFLE_SEED", "7")

	store, err := Open(WithPath(filepath.Join(t.TempDir(), FileName)))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	prefs := store.Load()
	if prefs.Title != "From Env" || prefs.ShuffleSeed != "7" {
		t.Fatalf("env overrides not applied: %+v", prefs)
	}
}

func TestResolve(t *testing.T) {
	opts := Preferences{FSQ: `\Huge`, ShuffleSeed: " 42 "}.Resolve()
	if opts.Title != model.DefaultTitle || opts.AlertColor != "" {
		t.Fatalf("blank values should take defaults and leave the alert color to the theme: %+v", opts)
	}
	if opts.QuestionFontSize != model.FontSizeHuge2 || opts.AnswerFontSize != model.DefaultAnswerFontSize {
		t.Fatalf("unexpected sizes: %+v", opts)
	}
	if opts.ShuffleSeed == nil || *opts.ShuffleSeed != 42 {
		t.Fatalf("unexpected seed %v", opts.ShuffleSeed)
	}
	if err := opts.WithDefaults().Validate(); err != nil {
		t.Fatalf("resolved options invalid: %v", err)
	}
}

func TestParseSeed(t *testing.T) {
	if ParseSeed("  ") != nil {
		t.Fatalf("blank seed should be nil")
	}
	if got := ParseSeed("-3"); got == nil || *got != -3 {
		t.Fatalf("unexpected integer seed %v", got)
	}

	first, second := ParseSeed("week one"), ParseSeed("week one")
	if first == nil || second == nil || *first != *second {
		t.Fatalf("text seeds must hash reproducibly")
	}
	if other := ParseSeed("week two"); *other == *first {
		t.Fatalf("different text should hash differently")
	}
}

func TestMerge(t *testing.T) {
	base := Defaults()
	got := base.Merge(Preferences{Title: "Override", AlertColor: "  "})
	want := base
	want.Title = "Override"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("merge mismatch (-want +got):\n%s", diff)
	}
}
