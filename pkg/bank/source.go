package bank

import (
	"path/filepath"
	"strings"
)

// Source identifies where a question bank originated so loaders can operate on
// files, fs.FS entries or in-memory payloads without leaking implementation
// details.
type Source interface {
	Kind() SourceKind
	Location() string
}

// SourceKind enumerates the loader modalities.
type SourceKind string

const (
	SourceKindFile  SourceKind = "file"
	SourceKindFS    SourceKind = "fs"
	SourceKindBytes SourceKind = "bytes"
	SourceKindURL   SourceKind = "url"
)

// fileSource identifies on-disk question banks.
type fileSource struct {
	path string
}

func (s fileSource) Location() string {
	return s.path
}

func (s fileSource) Kind() SourceKind {
	return SourceKindFile
}

// SourceFromFile returns a Source pointing to a file path.
func SourceFromFile(path string) Source {
	return fileSource{path: filepath.Clean(path)}
}

// IsURL reports whether raw names an http or https resource.
func IsURL(raw string) bool {
	lower := strings.ToLower(strings.TrimSpace(raw))
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// SourceFromPath returns a URL Source for http(s) locations and a file Source
// otherwise.
func SourceFromPath(raw string) Source {
	if IsURL(raw) {
		return SourceFromURL(raw)
	}
	return SourceFromFile(raw)
}

// SourcesFromPaths maps every entry through SourceFromPath, preserving order.
func SourcesFromPaths(paths ...string) []Source {
	out := make([]Source, 0, len(paths))
	for _, path := range paths {
		out = append(out, SourceFromPath(path))
	}
	return out
}

// SourcesFromFiles maps every path to a file Source, preserving order.
func SourcesFromFiles(paths ...string) []Source {
	out := make([]Source, 0, len(paths))
	for _, path := range paths {
		out = append(out, SourceFromFile(path))
	}
	return out
}

// fsSource references a path within an fs.FS.
type fsSource struct {
	name string
}

func (s fsSource) Location() string {
	return s.name
}

func (s fsSource) Kind() SourceKind {
	return SourceKindFS
}

// SourceFromFS returns a Source identifying a resource inside an fs.FS.
func SourceFromFS(name string) Source {
	return fsSource{name: name}
}

// urlSource references a bank served over HTTP.
type urlSource struct {
	url string
}

func (s urlSource) Location() string {
	return s.url
}

func (s urlSource) Kind() SourceKind {
	return SourceKindURL
}

// SourceFromURL returns a Source fetched with an HTTP GET.
func SourceFromURL(url string) Source {
	return urlSource{url: strings.TrimSpace(url)}
}

// BytesSource carries an in-memory payload, used when banks arrive over the
// wire instead of from disk. Name is only used for error messages and to pick
// the decoder (a ".yaml"/".yml" suffix selects YAML).
type BytesSource struct {
	Name string
	Data []byte
}

func (s BytesSource) Location() string {
	if strings.TrimSpace(s.Name) == "" {
		return "<memory>"
	}
	return s.Name
}

func (s BytesSource) Kind() SourceKind {
	return SourceKindBytes
}

// SourceFromBytes wraps a payload in a Source. The payload is copied.
func SourceFromBytes(name string, data []byte) Source {
	return BytesSource{Name: name, Data: append([]byte(nil), data...)}
}
