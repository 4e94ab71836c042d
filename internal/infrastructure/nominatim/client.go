package nominatim

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/doleances-service/internal/config"
	"github.com/doleances-service/internal/domain"
	"github.com/doleances-service/internal/domain/repository"
	"github.com/doleances-service/internal/pkg/metrics"
)

const (
	DefaultLimit = 10
	MaxLimit     = 50
)

// Client - клиент OpenStreetMap Nominatim (/search).
// Запросы ограничены по частоте: публичный сервер допускает не больше 1 запроса в секунду.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	userAgent      string
	acceptLanguage string
	countryCodes   string
	limiter        *rate.Limiter
	logger         *zap.Logger
}

var _ repository.GeocodeRepository = (*Client)(nil)

// NewClient создает клиент Nominatim
func NewClient(cfg *config.NominatimConfig, logger *zap.Logger) *Client {
	limit := rate.Inf
	if cfg.RatePerSecond > 0 {
		limit = rate.Limit(cfg.RatePerSecond)
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL:        strings.TrimRight(cfg.BaseURL, "/"),
		userAgent:      cfg.UserAgent,
		acceptLanguage: cfg.AcceptLanguage,
		countryCodes:   cfg.CountryCodes,
		limiter:        rate.NewLimiter(limit, 1),
		logger:         logger,
	}
}

// ClampLimit приводит limit к диапазону 1..MaxLimit, 0 и меньше - DefaultLimit
func ClampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultLimit
	case limit > MaxLimit:
		return MaxLimit
	}
	return limit
}

// Search ищет места по свободному тексту с детализацией адреса
func (c *Client) Search(ctx context.Context, query string, opts domain.GeocodeOptions) ([]domain.GeocodeResult, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return []domain.GeocodeResult{}, nil
	}

	countryCodes := opts.CountryCodes
	if countryCodes == "" {
		countryCodes = c.countryCodes
	}

	params := url.Values{}
	params.Set("q", q)
	params.Set("format", "json")
	params.Set("addressdetails", "1")
	params.Set("limit", strconv.Itoa(ClampLimit(opts.Limit)))
	if countryCodes != "" {
		params.Set("countrycodes", countryCodes)
	}
	endpoint := c.baseURL + "/search?" + params.Encode()

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if c.acceptLanguage != "" {
		req.Header.Set("Accept-Language", c.acceptLanguage)
	}

	c.logger.Debug("Calling Nominatim search",
		zap.String("query", q),
		zap.String("country_codes", countryCodes))

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	metrics.GeocodeDurationMs.Observe(float64(time.Since(start).Milliseconds()))
	if err != nil {
		metrics.GeocodeRequestsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		metrics.GeocodeRequestsTotal.WithLabelValues("http_error").Inc()
		c.logger.Warn("Nominatim returned error",
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(body)))
		return nil, fmt.Errorf("nominatim error: status %d", resp.StatusCode)
	}

	results, err := decodePlaces(resp.Body)
	if err != nil {
		metrics.GeocodeRequestsTotal.WithLabelValues("decode_error").Inc()
		return nil, err
	}

	metrics.GeocodeRequestsTotal.WithLabelValues("ok").Inc()
	c.logger.Debug("Nominatim search successful",
		zap.String("query", q),
		zap.Int("count", len(results)))

	return results, nil
}

// flexString принимает как строку, так и число
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}

type rawPlace struct {
	PlaceID     flexString             `json:"place_id"`
	Lat         flexString             `json:"lat"`
	Lon         flexString             `json:"lon"`
	DisplayName string                 `json:"display_name"`
	Address     map[string]interface{} `json:"address"`
	Type        string                 `json:"type"`
	Class       string                 `json:"class"`
}

// decodePlaces разбирает ответ /search. Ответ не-массив считается ошибкой формата,
// места без display_name пропускаются.
func decodePlaces(r io.Reader) ([]domain.GeocodeResult, error) {
	var raw []rawPlace
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	results := make([]domain.GeocodeResult, 0, len(raw))
	for _, p := range raw {
		if strings.TrimSpace(p.DisplayName) == "" {
			continue
		}
		id, _ := strconv.ParseInt(string(p.PlaceID), 10, 64)

		var address map[string]string
		if len(p.Address) > 0 {
			address = make(map[string]string, len(p.Address))
			for k, v := range p.Address {
				switch val := v.(type) {
				case string:
					address[k] = val
				case float64:
					address[k] = strconv.FormatFloat(val, 'f', -1, 64)
				}
			}
		}

		results = append(results, domain.GeocodeResult{
			ID:          id,
			DisplayName: p.DisplayName,
			Lat:         string(p.Lat),
			Lon:         string(p.Lon),
			Address:     address,
			Type:        p.Type,
			Class:       p.Class,
		})
	}
	return results, nil
}
