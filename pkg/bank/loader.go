package bank

import (
	"context"
	"io/fs"
	"net/http"
	"time"
)

// Loader reads a question bank from a Source. Implementations live under
// internal/bank but satisfy this contract.
type Loader interface {
	Load(ctx context.Context, src Source) (Bank, error)
}

// LoaderOptions configures how a Loader resolves sources.
type LoaderOptions struct {
	// FileSystem resolves SourceKindFS sources. Nil disables fs.FS loading.
	FileSystem fs.FS
	// HTTPClient fetches SourceKindURL sources. Nil selects a client with
	// HTTPTimeout.
	HTTPClient *http.Client
	// HTTPTimeout bounds each fetch. Zero means DefaultHTTPTimeout.
	HTTPTimeout time.Duration
}

// DefaultHTTPTimeout bounds URL fetches when no timeout is configured.
const DefaultHTTPTimeout = 30 * time.Second

// LoaderOption mutates LoaderOptions prior to construction.
type LoaderOption func(*LoaderOptions)

// WithFileSystem injects an fs.FS implementation for SourceFromFS paths.
func WithFileSystem(files fs.FS) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.FileSystem = files
	}
}

// WithHTTPClient sets the client used for SourceFromURL banks.
func WithHTTPClient(client *http.Client) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.HTTPClient = client
	}
}

// WithHTTPTimeout bounds each URL fetch.
func WithHTTPTimeout(timeout time.Duration) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.HTTPTimeout = timeout
	}
}

// NewLoaderOptions applies a set of LoaderOption values and returns the
// resulting configuration.
func NewLoaderOptions(options ...LoaderOption) LoaderOptions {
	cfg := LoaderOptions{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	return cfg
}

// Construction helpers live in the top-level json2beamer package to prevent import cycles.
