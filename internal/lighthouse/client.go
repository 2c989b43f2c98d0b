package lighthouse

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// ErrorKind classifies audit transport failures so the presentation
// layer can give different guidance for each.
type ErrorKind string

const (
	ErrorKindTimeout ErrorKind = "timeout"
	ErrorKindNetwork ErrorKind = "network"
	ErrorKindHTTP    ErrorKind = "http"
)

type FetchError struct {
	Kind ErrorKind
	Err  error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("audit fetch failed (%s): %v", e.Kind, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Client retrieves Lighthouse reports from an audit provider endpoint.
// One overall timeout bounds the call; expired calls are reported as
// timeouts and never retried.
type Client struct {
	httpClient *http.Client
	timeout    time.Duration
}

func NewClient(timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{},
		timeout:    timeout,
	}
}

func (c *Client) FetchReport(ctx context.Context, url string) (*RawReport, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{Kind: ErrorKindNetwork, Err: err}
	}
	request.Header.Set("Accept", "application/json")

	response, err := c.httpClient.Do(request)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, &FetchError{Kind: ErrorKindTimeout, Err: err}
		}
		return nil, &FetchError{Kind: ErrorKindNetwork, Err: err}
	}
	defer func(body io.ReadCloser) {
		err := body.Close()
		if err != nil {
			fmt.Printf("Error closing response body: %v\n", err)
		}
	}(response.Body)

	if response.StatusCode != http.StatusOK {
		return nil, &FetchError{
			Kind: ErrorKindHTTP,
			Err:  fmt.Errorf("audit provider returned status %d", response.StatusCode),
		}
	}

	data, err := io.ReadAll(response.Body)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, &FetchError{Kind: ErrorKindTimeout, Err: err}
		}
		return nil, &FetchError{Kind: ErrorKindNetwork, Err: err}
	}

	return ParseReport(data)
}

// LoadReport reads a Lighthouse JSON report from disk.
func LoadReport(path string) (*RawReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read audit report: %w", err)
	}
	return ParseReport(data)
}

func ParseReport(data []byte) (*RawReport, error) {
	var raw RawReport
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse audit report: %w", err)
	}
	return &raw, nil
}
