package loader

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"
)

func loadHTTP(ctx context.Context, client *http.Client, url string, timeout time.Duration) ([]byte, error) {
	if client == nil {
		return nil, errors.New("config loader: http client is not configured")
	}
	if url == "" {
		return nil, errors.New("config loader: url is required")
	}

	reqCtx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		reqCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errors.New("config loader: unexpected status " + resp.Status)
	}
	return io.ReadAll(resp.Body)
}
