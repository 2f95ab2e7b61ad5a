package deribit

import (
	"encoding/json"
	"fmt"
)

// Response is the JSON-RPC envelope Deribit wraps around every public REST result.
type Response struct {
	JSONRPC string          `json:"jsonrpc"` // always "2.0"
	ID      *int64          `json:"id,omitempty"`
	Result  json.RawMessage `json:"result"` // Delay decoding // payload varies per endpoint
	Error   *APIError       `json:"error,omitempty"`
	UsIn    int64           `json:"usIn"`    // request received (microseconds since epoch)
	UsOut   int64           `json:"usOut"`   // response sent (microseconds since epoch)
	UsDiff  int64           `json:"usDiff"`  // server processing time (microseconds)
	Testnet bool            `json:"testnet"` // true on test.deribit.com
}

// APIError is the "error" object of a failed JSON-RPC call.
type APIError struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("deribit api error %d: %s", e.Code, e.Message)
}

// Instrument is one entry of public/get_instruments for kind=option.
type Instrument struct {
	InstrumentName      string  `json:"instrument_name"`      // e.g. "BTC-27DEC24-60000-C"
	BaseCurrency        string  `json:"base_currency"`        // e.g. "BTC"
	QuoteCurrency       string  `json:"quote_currency"`       // e.g. "USD"
	Kind                string  `json:"kind"`                 // "option"
	OptionType          string  `json:"option_type"`          // "call" or "put"
	Strike              float64 `json:"strike"`               // strike price in quote currency
	ExpirationTimestamp int64   `json:"expiration_timestamp"` // milliseconds since epoch
	CreationTimestamp   int64   `json:"creation_timestamp"`   // milliseconds since epoch
	SettlementPeriod    string  `json:"settlement_period"`    // "day", "week", "month"
	IsActive            bool    `json:"is_active"`
	TickSize            float64 `json:"tick_size"`
	ContractSize        float64 `json:"contract_size"`
	MinTradeAmount      float64 `json:"min_trade_amount"`
}

// BookSummary is one entry of public/get_book_summary_by_instrument.
// Every numeric field is nullable on the wire; nil means the exchange sent
// null or omitted the field.
type BookSummary struct {
	InstrumentName  string   `json:"instrument_name"`
	BaseCurrency    string   `json:"base_currency"`
	Last            *float64 `json:"last"`             // last traded price
	MarkPrice       *float64 `json:"mark_price"`       // current mark price
	MarkIV          *float64 `json:"mark_iv"`          // implied volatility of the mark price
	BidPrice        *float64 `json:"bid_price"`        // best bid
	AskPrice        *float64 `json:"ask_price"`        // best ask
	OpenInterest    *float64 `json:"open_interest"`    // outstanding contracts
	Volume          *float64 `json:"volume"`           // 24h volume in contracts
	PriceChange     *float64 `json:"price_change"`     // 24h change in percent
	UnderlyingPrice *float64 `json:"underlying_price"` // underlying index or future price
	CreationTime    int64    `json:"creation_timestamp"`
}
