package status

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultTimeout = 10 * time.Second

type doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Checker делает GET на url и считает успехом любой 2xx.
type Checker struct {
	client doer
	url    string
}

func New(client doer, url string) *Checker {
	return &Checker{
		client: client,
		url:    url,
	}
}

// NewDefault - проверка с отдельным http.Client и собственным таймаутом.
func NewDefault(url string) *Checker {
	return New(&http.Client{Timeout: defaultTimeout}, url)
}

func (c *Checker) Check(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("http check %s: %w", c.url, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	detail := fmt.Sprintf("HTTP %d", resp.StatusCode)
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return detail, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	return detail, nil
}

func (c *Checker) Close() error {
	return nil
}
