package bpi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"bpilive/internal/date"
)

const DefaultBaseURL = "https://api.coindesk.com/v1/bpi"

const maxBodyBytes = 1 << 20

// Fetcher is the data source for the two price slices.
type Fetcher interface {
	FetchCurrentPrice(ctx context.Context, currency string) (*CurrentPrice, error)
	FetchHistoricalSeries(ctx context.Context, currency string, start, end date.Date) (*HistoricalSeries, error)
	Name() string
}

// Client talks to the CoinDesk Bitcoin Price Index API.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *Client) Name() string { return "coindesk" }

type currentPriceResponse struct {
	Time struct {
		UpdatedISO string `json:"updatedISO"`
	} `json:"time"`
	BPI map[string]struct {
		Code        string           `json:"code"`
		Rate        string           `json:"rate"`
		Description string           `json:"description"`
		RateFloat   *decimal.Decimal `json:"rate_float"`
	} `json:"bpi"`
}

type historicalResponse struct {
	BPI *orderedCloses `json:"bpi"`
}

// FetchCurrentPrice gets the current BPI in currency.
func (c *Client) FetchCurrentPrice(ctx context.Context, currency string) (*CurrentPrice, error) {
	u := fmt.Sprintf("%s/currentprice/%s.json", c.BaseURL, url.PathEscape(currency))
	body, err := c.get(ctx, currency, u)
	if err != nil {
		return nil, err
	}

	var resp currentPriceResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &MalformedResponseError{Currency: currency, Reason: "JSON parse error", Err: err}
	}

	price := &CurrentPrice{ByCurrency: make(map[string]Rate, len(resp.BPI))}
	for code, entry := range resp.BPI {
		var rate decimal.Decimal
		if entry.RateFloat != nil {
			rate = *entry.RateFloat
		} else {
			rate, err = decimal.NewFromString(strings.ReplaceAll(entry.Rate, ",", ""))
			if err != nil {
				return nil, &MalformedResponseError{
					Currency: currency,
					Reason:   fmt.Sprintf("invalid price format, Received Price: %s", entry.Rate),
					Err:      err,
				}
			}
		}
		if entry.Code != "" {
			code = entry.Code
		}
		price.ByCurrency[code] = Rate{Code: code, Description: entry.Description, Rate: rate}
	}
	if _, ok := price.ByCurrency[currency]; !ok {
		return nil, &MalformedResponseError{Currency: currency, Reason: "no rate for requested currency"}
	}
	if t, err := time.Parse(time.RFC3339, resp.Time.UpdatedISO); err == nil {
		price.Updated = t
	}
	return price, nil
}

// FetchHistoricalSeries gets daily closes in currency for [start, end].
func (c *Client) FetchHistoricalSeries(ctx context.Context, currency string, start, end date.Date) (*HistoricalSeries, error) {
	q := url.Values{}
	q.Set("currency", currency)
	q.Set("start", start.String())
	q.Set("end", end.String())
	u := fmt.Sprintf("%s/historical/close.json?%s", c.BaseURL, q.Encode())

	body, err := c.get(ctx, currency, u)
	if err != nil {
		return nil, err
	}

	var resp historicalResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &MalformedResponseError{Currency: currency, Reason: "JSON parse error", Err: err}
	}
	if resp.BPI == nil {
		return nil, &MalformedResponseError{Currency: currency, Reason: "missing bpi object"}
	}
	return &HistoricalSeries{Currency: currency, Closes: []Close(*resp.BPI)}, nil
}

func (c *Client) get(ctx context.Context, currency, u string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, &NetworkError{Currency: currency, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, &NetworkError{Currency: currency, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &NetworkError{Currency: currency, Err: fmt.Errorf("body read error: %w", err)}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &NetworkError{
			Currency: currency,
			Status:   resp.Status,
			Body:     trimBody(body),
		}
	}
	return body, nil
}

func trimBody(b []byte) string {
	s := strings.TrimSpace(string(b))
	if len(s) > 200 {
		s = s[:200] + "..."
	}
	return s
}

// orderedCloses decodes a date-keyed JSON object without losing key order.
type orderedCloses []Close

func (o *orderedCloses) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("bpi: expected object, got %v", tok)
	}

	closes := make([]Close, 0, 32)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("bpi: unexpected key %v", tok)
		}
		d, err := date.Parse(key)
		if err != nil {
			return err
		}
		var n json.Number
		if err := dec.Decode(&n); err != nil {
			return fmt.Errorf("bpi[%s]: %w", key, err)
		}
		price, err := decimal.NewFromString(n.String())
		if err != nil {
			return fmt.Errorf("bpi[%s]: %w", key, err)
		}
		closes = append(closes, Close{Date: d, Price: price})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*o = closes
	return nil
}
