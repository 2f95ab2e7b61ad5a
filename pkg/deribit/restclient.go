package deribit

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// ErrNoResult is returned when a response decodes but carries no "result" field.
var ErrNoResult = errors.New("deribit: response has no result")

type RESTClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewRESTClient(baseURL string, timeout time.Duration) *RESTClient {
	return &RESTClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// GetInstruments lists instruments of one kind for a currency.
func (c *RESTClient) GetInstruments(ctx context.Context, currency string, kind Kind, expired bool) ([]Instrument, error) {
	if !kind.IsValid() {
		return nil, fmt.Errorf("get instruments: invalid kind %q", kind)
	}

	query := url.Values{}
	query.Set("currency", currency)
	query.Set("kind", string(kind))
	query.Set("expired", strconv.FormatBool(expired))

	raw, err := c.getResult(ctx, pathGetInstruments, query)
	if err != nil {
		return nil, fmt.Errorf("get instruments %s/%s: %w", currency, kind, err)
	}

	var result []Instrument
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("decode instruments: %w", err)
	}
	return result, nil
}

// GetBookSummaryByInstrument returns the book summary list for one instrument.
// The exchange answers with a list that is empty for instruments without a book.
func (c *RESTClient) GetBookSummaryByInstrument(ctx context.Context, instrumentName string) ([]BookSummary, error) {
	query := url.Values{}
	query.Set("instrument_name", instrumentName)

	raw, err := c.getResult(ctx, pathGetBookSummaryByInstrument, query)
	if err != nil {
		return nil, fmt.Errorf("get book summary %s: %w", instrumentName, err)
	}

	var result []BookSummary
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("decode book summary: %w", err)
	}
	return result, nil
}

// getResult performs a GET and unwraps the JSON-RPC envelope.
func (c *RESTClient) getResult(ctx context.Context, path string, query url.Values) (json.RawMessage, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	// Construct the GET request with context for timeout/cancel support
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("making request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	// Deribit reports failures as a JSON-RPC error body, usually with HTTP 400
	var rawResp Response
	if err := json.Unmarshal(body, &rawResp); err != nil {
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("deribit http %d: %s", resp.StatusCode, truncate(body, 256))
		}
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if rawResp.Error != nil {
		return nil, rawResp.Error
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("deribit http %d: %s", resp.StatusCode, truncate(body, 256))
	}

	if len(rawResp.Result) == 0 || bytes.Equal(rawResp.Result, []byte("null")) {
		return nil, ErrNoResult
	}
	return rawResp.Result, nil
}

func truncate(b []byte, n int) []byte {
	if len(b) <= n {
		return b
	}
	return b[:n]
}
