package loader

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"github.com/goliatone/go-json2beamer/pkg/bank"
)

// Loader implements bank.Loader by delegating to file, fs.FS, HTTP or
// in-memory strategies. Construction helpers live in the top-level
// json2beamer package.
type Loader struct {
	fs      fs.FS
	client  *http.Client
	timeout time.Duration
}

// Ensure the implementation satisfies the public interface.
var _ bank.Loader = (*Loader)(nil)

// New constructs a Loader from pre-resolved options.
func New(options bank.LoaderOptions) bank.Loader {
	timeout := options.HTTPTimeout
	if timeout <= 0 {
		timeout = bank.DefaultHTTPTimeout
	}
	client := options.HTTPClient
	if client == nil {
		client = &http.Client{}
	}
	return &Loader{fs: options.FileSystem, client: client, timeout: timeout}
}

// Load reads the source and decodes it into a Bank of raw records.
func (l *Loader) Load(ctx context.Context, src bank.Source) (bank.Bank, error) {
	if src == nil {
		return bank.Bank{}, errors.New("bank loader: source is nil")
	}

	var (
		data []byte
		err  error
	)

	switch src.Kind() {
	case bank.SourceKindFile:
		data, err = loadFile(ctx, src.Location())
	case bank.SourceKindFS:
		data, err = loadFromFS(ctx, l.fs, src.Location())
	case bank.SourceKindURL:
		data, err = loadHTTP(ctx, l.client, src.Location(), l.timeout)
	case bank.SourceKindBytes:
		data, err = loadBytes(ctx, src)
	default:
		err = fmt.Errorf("bank loader: unsupported source kind %q", src.Kind())
	}
	if err != nil {
		return bank.Bank{}, classifyReadError(src.Location(), err)
	}

	records, err := parseRecords(data, src.Location())
	if err != nil {
		return bank.Bank{}, err
	}
	return bank.NewBank(src, records)
}

// LoadAll loads every source in order and stops at the first failure.
func LoadAll(ctx context.Context, l bank.Loader, sources []bank.Source) ([]bank.Bank, error) {
	if l == nil {
		return nil, errors.New("bank loader: loader is nil")
	}
	banks := make([]bank.Bank, 0, len(sources))
	for _, src := range sources {
		b, err := l.Load(ctx, src)
		if err != nil {
			return nil, err
		}
		banks = append(banks, b)
	}
	return banks, nil
}

func loadBytes(ctx context.Context, src bank.Source) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	payload, ok := src.(bank.BytesSource)
	if !ok {
		return nil, errors.New("bank loader: bytes source must be a bank.BytesSource")
	}
	return payload.Data, nil
}

func classifyReadError(location string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return &bank.NotFoundError{Path: location, Err: err}
	}
	return err
}
