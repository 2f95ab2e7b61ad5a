package deribit

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const instrumentsBody = `{
  "jsonrpc": "2.0",
  "result": [
    {"instrument_name": "BTC-18OCT26-60000-C", "base_currency": "BTC", "kind": "option",
     "option_type": "call", "strike": 60000, "expiration_timestamp": 1792310400000, "is_active": true},
    {"instrument_name": "BTC-18OCT26-60000-P", "base_currency": "BTC", "kind": "option",
     "option_type": "put", "strike": 60000, "expiration_timestamp": 1792310400000, "is_active": true}
  ],
  "usIn": 1, "usOut": 2, "usDiff": 1, "testnet": false
}`

func newTestServer(t *testing.T, handler http.HandlerFunc) *RESTClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewRESTClient(srv.URL, 2*time.Second)
}

// go test -v --run TestGetInstruments
func TestGetInstruments(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, pathGetInstruments, r.URL.Path)
		assert.Equal(t, "BTC", r.URL.Query().Get("currency"))
		assert.Equal(t, "option", r.URL.Query().Get("kind"))
		assert.Equal(t, "false", r.URL.Query().Get("expired"))
		_, _ = w.Write([]byte(instrumentsBody))
	})

	got, err := client.GetInstruments(context.Background(), "BTC", KindOption, false)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "BTC-18OCT26-60000-C", got[0].InstrumentName)
	assert.Equal(t, "call", got[0].OptionType)
	assert.Equal(t, 60000.0, got[0].Strike)
	assert.Equal(t, int64(1792310400000), got[0].ExpirationTimestamp)
	assert.Equal(t, "put", got[1].OptionType)
}

// go test -v --run TestGetInstrumentsInvalidKind
func TestGetInstrumentsInvalidKind(t *testing.T) {
	client := NewRESTClient("http://127.0.0.1:0", time.Second)
	_, err := client.GetInstruments(context.Background(), "BTC", Kind("bond"), false)
	assert.Error(t, err)
}

// go test -v --run TestGetBookSummaryNullableFields
func TestGetBookSummaryNullableFields(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, pathGetBookSummaryByInstrument, r.URL.Path)
		assert.Equal(t, "BTC-18OCT26-60000-C", r.URL.Query().Get("instrument_name"))
		_, _ = w.Write([]byte(`{"jsonrpc":"2.0","result":[
			{"instrument_name":"BTC-18OCT26-60000-C","last":null,"mark_iv":48.5,"open_interest":12.3}
		]}`))
	})

	got, err := client.GetBookSummaryByInstrument(context.Background(), "BTC-18OCT26-60000-C")
	require.NoError(t, err)
	require.Len(t, got, 1)

	assert.Nil(t, got[0].Last)
	require.NotNil(t, got[0].MarkIV)
	assert.Equal(t, 48.5, *got[0].MarkIV)
	require.NotNil(t, got[0].OpenInterest)
	assert.Equal(t, 12.3, *got[0].OpenInterest)
	assert.Nil(t, got[0].Volume)
}

// go test -v --run TestGetBookSummaryEmptyList
func TestGetBookSummaryEmptyList(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"jsonrpc":"2.0","result":[]}`))
	})

	got, err := client.GetBookSummaryByInstrument(context.Background(), "BTC-X")
	require.NoError(t, err)
	assert.Empty(t, got)
}

// go test -v --run TestMissingResult
func TestMissingResult(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"jsonrpc":"2.0","usIn":1}`))
	})

	_, err := client.GetInstruments(context.Background(), "BTC", KindOption, false)
	assert.True(t, errors.Is(err, ErrNoResult), "got %v", err)
}

// go test -v --run TestAPIErrorBody
func TestAPIErrorBody(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"jsonrpc":"2.0","error":{"code":-32602,"message":"Invalid params"}}`))
	})

	_, err := client.GetBookSummaryByInstrument(context.Background(), "nope")
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr), "got %v", err)
	assert.Equal(t, -32602, apiErr.Code)
	assert.Equal(t, "Invalid params", apiErr.Message)
}

// go test -v --run TestNonJSONBody
func TestNonJSONBody(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`<html>bad gateway</html>`))
	})

	_, err := client.GetInstruments(context.Background(), "BTC", KindOption, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

// go test -v --run TestDecodeFailureOK
func TestDecodeFailureOK(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	})

	_, err := client.GetInstruments(context.Background(), "BTC", KindOption, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode response")
}

// go test -v --run TestLiveGetInstruments
func TestLiveGetInstruments(t *testing.T) {
	if os.Getenv("DERIBIT_LIVE") == "" {
		t.Skip("set DERIBIT_LIVE=1 to hit the public API")
	}

	client := NewRESTClient(MainnetBaseURL, 10*time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	got, err := client.GetInstruments(ctx, "BTC", KindOption, false)
	require.NoError(t, err)
	require.NotEmpty(t, got)

	t.Logf("got %d BTC options (example: %s)", len(got), got[0].InstrumentName)
}
