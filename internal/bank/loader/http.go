package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"time"
)

// maxHTTPBank caps the size of a fetched bank.
const maxHTTPBank = 32 << 20

func loadHTTP(ctx context.Context, client *http.Client, url string, timeout time.Duration) ([]byte, error) {
	if client == nil {
		return nil, errors.New("bank loader: http client is not configured")
	}
	if url == "" {
		return nil, errors.New("bank loader: url is required")
	}

	reqCtx := ctx
	var cancel context.CancelFunc
	if timeout > 0 {
		reqCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json, application/yaml;q=0.9")

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	switch {
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		return nil, fmt.Errorf("bank loader: %s: %w", resp.Status, fs.ErrNotExist)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return nil, errors.New("bank loader: unexpected status " + resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxHTTPBank+1))
	if err != nil {
		return nil, err
	}
	if len(data) > maxHTTPBank {
		return nil, fmt.Errorf("bank loader: %s exceeds %d bytes", url, maxHTTPBank)
	}
	return data, nil
}
