package finnhub

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"net/http"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"marketmuse_backend/models"
)

type quoteResponse struct {
	Current       *float64 `json:"c"`
	Change        *float64 `json:"d"`
	PercentChange *float64 `json:"dp"`
	Volume        *float64 `json:"v"`
}

type profileResponse struct {
	Name     string `json:"name"`
	Exchange string `json:"exchange"`
}

type metricResponse struct {
	Metric struct {
		PENormalizedAnnual   *float64 `json:"peNormalizedAnnual"`
		MarketCapitalization *float64 `json:"marketCapitalization"`
		WeekHigh52           *float64 `json:"52WeekHigh"`
		WeekLow52            *float64 `json:"52WeekLow"`
	} `json:"metric"`
}

// sparkline multipliers applied to the current price
var historyFactors = []string{"0.97", "0.99", "1.01"}

// FetchSymbolInfo retrieves quote, profile and fundamentals for symbol.
// The quote is required; a quote with no usable field ends the lookup with
// ErrNoData. Profile and metric failures only drop their fields.
func (c *Client) FetchSymbolInfo(ctx context.Context, symbol string) (models.SymbolInfo, error) {
	var info models.SymbolInfo

	var quote quoteResponse
	if err := c.get(ctx, "/quote", url.Values{"symbol": {symbol}}, &quote); err != nil {
		return info, fmt.Errorf("quote %s: %w", symbol, err)
	}
	if quote.Current != nil && *quote.Current != 0 {
		price := *quote.Current
		info.Price = &price
		info.History = simulateHistory(price)
	}
	info.Change = quote.Change
	info.PercentChange = quote.PercentChange
	if quote.Volume != nil && *quote.Volume != 0 {
		v := int64(*quote.Volume)
		info.Volume = &v
	}
	if info.IsEmpty() {
		return models.SymbolInfo{}, fmt.Errorf("%s: %w", symbol, ErrNoData)
	}

	var profile profileResponse
	if err := c.get(ctx, "/stock/profile2", url.Values{"symbol": {symbol}}, &profile); err != nil {
		c.log.Warn("Profile lookup failed", zap.String("symbol", symbol), zap.Error(err))
	} else {
		if name := strings.TrimSpace(profile.Name); name != "" {
			info.FullName = &name
			display := name
			info.DisplayName = &display
		}
		if exchange := strings.TrimSpace(profile.Exchange); exchange != "" {
			info.Exchange = &exchange
		}
	}

	var metric metricResponse
	if err := c.get(ctx, "/stock/metric", url.Values{"symbol": {symbol}, "metric": {"all"}}, &metric); err != nil {
		c.log.Warn("Metric lookup failed", zap.String("symbol", symbol), zap.Error(err))
	} else {
		info.PERatio = metric.Metric.PENormalizedAnnual
		info.MarketCap = metric.Metric.MarketCapitalization
		info.High52W = metric.Metric.WeekHigh52
		info.Low52W = metric.Metric.WeekLow52
	}

	if err := ctx.Err(); err != nil {
		return models.SymbolInfo{}, err
	}
	return info, nil
}

// simulateHistory builds a short sparkline ending at price until a candle
// endpoint is wired in.
func simulateHistory(price float64) []float64 {
	p := decimal.NewFromFloat(price)
	history := make([]float64, 0, len(historyFactors)+1)
	for _, f := range historyFactors {
		history = append(history, p.Mul(decimal.RequireFromString(f)).Round(2).InexactFloat64())
	}
	return append(history, price)
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	query := maps.Clone(c.query)
	for key, values := range params {
		query[key] = values
	}

	url := fmt.Sprintf("%s%s?%s", c.baseURL, path, query.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header = c.header.Clone()

	res, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("performing request: %w", err)
	}
	defer res.Body.Close()

	switch res.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("unauthorized")
	case http.StatusTooManyRequests:
		return fmt.Errorf("rate limited")
	default:
		return fmt.Errorf("unexpected status code: %d", res.StatusCode)
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s response: %w", path, err)
	}
	return nil
}
