// Package output names and writes the files a generation produces: the deck
// next to its first input and the optional merged bank artifact.
package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-json2beamer/pkg/bank"
)

const (
	slidesSuffix   = "_slides.tex"
	keySuffix      = "_key.json"
	previewSuffix  = "_preview.html"
	combinedSuffix = "_combined"
)

// Stem returns the file name of location without directory and extension.
// For URLs the last segment of the URL path is used.
func Stem(location string) string {
	base := filepath.Base(location)
	if bank.IsURL(location) {
		base = "bank"
		if u, err := url.Parse(location); err == nil && strings.Trim(u.Path, "/") != "" {
			base = path.Base(u.Path)
		}
	}
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// DocumentPath names the deck for inputs: <stem>_slides.tex for one input and
// <first-stem>_combined_slides.tex for several. An empty dir places the file
// next to the first input, or in the working directory when the first input
// is a URL.
func DocumentPath(inputs []string, dir string) (string, error) {
	return suffixedPath(inputs, dir, slidesSuffix)
}

// KeyPath names the answer key the same way, ending in _key.json.
func KeyPath(inputs []string, dir string) (string, error) {
	return suffixedPath(inputs, dir, keySuffix)
}

// PreviewPath names the HTML preview, ending in _preview.html.
func PreviewPath(inputs []string, dir string) (string, error) {
	return suffixedPath(inputs, dir, previewSuffix)
}

// MergedPath names the merged artifact: <first-stem>_combined.json.
func MergedPath(inputs []string, dir string) (string, error) {
	first, err := firstInput(inputs)
	if err != nil {
		return "", err
	}
	return filepath.Join(outputDir(first, dir), Stem(first)+combinedSuffix+".json"), nil
}

// EncodeMerged renders records as a JSON array with two-space indentation.
// Non-ASCII text is written as is.
func EncodeMerged(records []bank.Record) ([]byte, error) {
	if records == nil {
		records = []bank.Record{}
	}
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(records); err != nil {
		return nil, fmt.Errorf("output: encode merged bank: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteMerged writes the merged artifact to path.
func WriteMerged(path string, records []bank.Record) error {
	payload, err := EncodeMerged(records)
	if err != nil {
		return err
	}
	return WriteDocument(path, payload)
}

// WriteDocument writes data to a temporary file in the target directory and
// renames it into place, so a failed write never leaves a partial file.
func WriteDocument(path string, data []byte) (err error) {
	if strings.TrimSpace(path) == "" {
		return errors.New("output: path is required")
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("output: create directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("output: create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return fmt.Errorf("output: write %s: %w", path, err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("output: sync %s: %w", path, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("output: close %s: %w", path, err)
	}
	if err = os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("output: chmod %s: %w", path, err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("output: rename into %s: %w", path, err)
	}
	return nil
}

// Remove deletes path, ignoring a file that is already gone.
func Remove(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("output: remove %s: %w", path, err)
	}
	return nil
}

func suffixedPath(inputs []string, dir, suffix string) (string, error) {
	first, err := firstInput(inputs)
	if err != nil {
		return "", err
	}
	name := Stem(first)
	if len(inputs) > 1 {
		name += combinedSuffix
	}
	return filepath.Join(outputDir(first, dir), name+suffix), nil
}

func firstInput(inputs []string) (string, error) {
	if len(inputs) == 0 || strings.TrimSpace(inputs[0]) == "" {
		return "", errors.New("output: at least one input path is required")
	}
	return inputs[0], nil
}

func outputDir(first, dir string) string {
	if strings.TrimSpace(dir) != "" {
		return dir
	}
	if bank.IsURL(first) {
		return "."
	}
	return filepath.Dir(first)
}
