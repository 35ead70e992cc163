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

// YahooClient talks to the Yahoo Finance v8 chart API. It needs no API
// key, only a browser-like User-Agent, and expects B3 tickers with the
// ".SA" suffix.
type YahooClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewYahooClient builds a client against the given base URL (normally
// "https://query1.finance.yahoo.com").
func NewYahooClient(baseURL string) *YahooClient {
	return &YahooClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *YahooClient) Name() string { return "yahoo" }

// AdaptSymbol appends the ".SA" suffix Yahoo requires for B3 tickers.
func (c *YahooClient) AdaptSymbol(symbol string) string {
	s := strings.ToUpper(strings.TrimSpace(symbol))
	if strings.HasSuffix(s, ".SA") {
		return s
	}
	return s + ".SA"
}

// chartResponse mirrors the subset of the chart API we consume.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close  []*float64 `json:"close"`
					Volume []*int64   `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// Quote derives the current quote from the most recent bar of a short
// range query, the same way the chart UI does.
func (c *YahooClient) Quote(ctx context.Context, symbol string) (models.Quote, error) {
	url := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&range=5d", c.baseURL, symbol)

	bars, err := c.fetchBars(ctx, symbol, url)
	if err != nil {
		return models.Quote{}, err
	}
	if len(bars) == 0 {
		return models.Quote{}, fmt.Errorf("%w: %s has no recent bars at yahoo", apperr.ErrSymbolNotFound, symbol)
	}

	last := bars[len(bars)-1]
	return models.Quote{Symbol: symbol, Price: last.Close, Volume: last.Volume}, nil
}

// History fetches daily bars for [from, to] using the unix-period form of
// the chart endpoint.
func (c *YahooClient) History(ctx context.Context, symbol string, from, to time.Time) ([]models.DailyBar, error) {
	url := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&period1=%d&period2=%d",
		c.baseURL, symbol, from.Unix(), to.Unix())
	return c.fetchBars(ctx, symbol, url)
}

// fetchBars runs one chart query and flattens the parallel timestamp and
// indicator arrays into daily bars, dropping days with null close or
// volume (Yahoo pads holidays with nulls).
func (c *YahooClient) fetchBars(ctx context.Context, symbol, url string) ([]models.DailyBar, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &apperr.ProviderError{Symbol: symbol, Err: err}
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &apperr.ProviderError{Symbol: symbol, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, &apperr.ProviderError{
			Symbol:     symbol,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected status %s", resp.Status),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &apperr.ProviderError{Symbol: symbol, Err: err}
	}

	var payload chartResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, &apperr.ProviderError{Symbol: symbol, Err: fmt.Errorf("decode response: %w", err)}
	}
	if payload.Chart.Error != nil {
		return nil, fmt.Errorf("%w: yahoo reports %s for %s", apperr.ErrSymbolNotFound, payload.Chart.Error.Code, symbol)
	}
	if len(payload.Chart.Result) == 0 || len(payload.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, nil
	}

	result := payload.Chart.Result[0]
	quote := result.Indicators.Quote[0]

	bars := make([]models.DailyBar, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		if i >= len(quote.Close) || i >= len(quote.Volume) {
			break
		}
		if quote.Close[i] == nil || quote.Volume[i] == nil {
			continue
		}
		bars = append(bars, models.DailyBar{
			Date:   time.Unix(ts, 0).UTC(),
			Close:  *quote.Close[i],
			Volume: *quote.Volume[i],
		})
	}
	return bars, nil
}
