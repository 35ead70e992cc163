package quotes

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/JoaoVF25/dashboard/internal/domain/apperr"
	"github.com/JoaoVF25/dashboard/internal/domain/models"
)

// BrapiClient talks to the brapi.dev REST API.
//
// The free plan allows one ticker per request, so the analyzer calls it
// once per symbol with a configurable delay in between; the client itself
// performs exactly one attempt per call.
type BrapiClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewBrapiClient builds a client against the given base URL (normally
// "https://brapi.dev"; tests point it at a local httptest server).
func NewBrapiClient(baseURL, apiKey string) *BrapiClient {
	return &BrapiClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *BrapiClient) Name() string { return "brapi" }

// AdaptSymbol strips the ".SA" suffix; brapi identifies B3 tickers bare.
func (c *BrapiClient) AdaptSymbol(symbol string) string {
	return strings.TrimSuffix(strings.ToUpper(strings.TrimSpace(symbol)), ".SA")
}

// quoteResponse mirrors the subset of GET /api/quote/{ticker} we consume.
type quoteResponse struct {
	Results []struct {
		Symbol              string   `json:"symbol"`
		RegularMarketPrice  *float64 `json:"regularMarketPrice"`
		RegularMarketVolume int64    `json:"regularMarketVolume"`
	} `json:"results"`
}

// historicalResponse mirrors GET /api/quote/historical/{ticker}.
type historicalResponse struct {
	Results []struct {
		Historical []struct {
			Date   int64    `json:"date"` // unix seconds
			Close  *float64 `json:"close"`
			Volume int64    `json:"volume"`
		} `json:"historical"`
	} `json:"results"`
}

// Quote fetches the current quote for one ticker.
//
// A 200 response without a regularMarketPrice is treated the same as a
// 404: the symbol does not resolve, which is non-fatal for the batch.
func (c *BrapiClient) Quote(ctx context.Context, symbol string) (models.Quote, error) {
	url := fmt.Sprintf("%s/api/quote/%s", c.baseURL, symbol)

	var payload quoteResponse
	if err := c.get(ctx, symbol, url, &payload); err != nil {
		return models.Quote{}, err
	}

	if len(payload.Results) == 0 || payload.Results[0].RegularMarketPrice == nil {
		return models.Quote{}, fmt.Errorf("%w: %s has no market price at brapi", apperr.ErrSymbolNotFound, symbol)
	}

	r := payload.Results[0]
	return models.Quote{
		Symbol: symbol,
		Price:  *r.RegularMarketPrice,
		Volume: r.RegularMarketVolume,
	}, nil
}

// History fetches daily bars for the requested date range.
func (c *BrapiClient) History(ctx context.Context, symbol string, from, to time.Time) ([]models.DailyBar, error) {
	url := fmt.Sprintf("%s/api/quote/historical/%s?start=%s&end=%s&interval=1d",
		c.baseURL, symbol, from.Format("2006-01-02"), to.Format("2006-01-02"))

	var payload historicalResponse
	if err := c.get(ctx, symbol, url, &payload); err != nil {
		return nil, err
	}

	if len(payload.Results) == 0 {
		return nil, nil
	}

	bars := make([]models.DailyBar, 0, len(payload.Results[0].Historical))
	for _, day := range payload.Results[0].Historical {
		if day.Close == nil {
			continue
		}
		bars = append(bars, models.DailyBar{
			Date:   time.Unix(day.Date, 0).UTC(),
			Close:  *day.Close,
			Volume: day.Volume,
		})
	}
	return bars, nil
}

// get performs one authenticated GET and decodes the JSON body into out.
// Failures are wrapped in *apperr.ProviderError carrying the HTTP status
// (0 when the request never reached the server) so the analyzer can apply
// its fatal-vs-not-found boundary.
func (c *BrapiClient) get(ctx context.Context, symbol, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return &apperr.ProviderError{Symbol: symbol, Err: err}
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &apperr.ProviderError{Symbol: symbol, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return &apperr.ProviderError{
			Symbol:     symbol,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected status %s", resp.Status),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &apperr.ProviderError{Symbol: symbol, Err: err}
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &apperr.ProviderError{Symbol: symbol, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}
