// Package geoapi - клиент собственных эндпоинтов сервиса /api/geo/* и /api/nominatim/search.
// Используется терминальным клиентом locsearch как источник каталога и геокодер.
package geoapi

import (
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

	"github.com/doleances-service/internal/domain"
	"github.com/doleances-service/internal/domain/repository"
)

// Config - параметры подключения к API
type Config struct {
	BaseURL string
	// AuthToken - значение cookie авторизации; пусто, если API открыт
	AuthToken  string
	CookieName string
	Timeout    time.Duration
}

type Client struct {
	httpClient *http.Client
	cfg        Config
	logger     *zap.Logger
}

var (
	_ repository.AreaRepository    = (*Client)(nil)
	_ repository.GeocodeRepository = (*Client)(nil)
)

// NewClient создает клиент API
func NewClient(cfg Config, logger *zap.Logger) *Client {
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.CookieName == "" {
		cfg.CookieName = "auth-token"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		cfg:        cfg,
		logger:     logger,
	}
}

// Areas загружает список уровня с /api/geo/{regions,districts,communes}
func (c *Client) Areas(ctx context.Context, level domain.AdminLevel) ([]domain.AdminArea, error) {
	path, err := areasPath(level)
	if err != nil {
		return nil, err
	}

	var areas []domain.AdminArea
	if err := c.getJSON(ctx, path, nil, &areas); err != nil {
		return nil, fmt.Errorf("load %s: %w", level, err)
	}
	if areas == nil {
		areas = []domain.AdminArea{}
	}
	return areas, nil
}

// Search вызывает прокси геокодера /api/nominatim/search
func (c *Client) Search(ctx context.Context, query string, opts domain.GeocodeOptions) ([]domain.GeocodeResult, error) {
	params := url.Values{}
	params.Set("q", query)
	if opts.CountryCodes != "" {
		params.Set("countryCodes", opts.CountryCodes)
	}
	if opts.Limit > 0 {
		params.Set("limit", strconv.Itoa(opts.Limit))
	}

	var places []domain.GeocodeResult
	if err := c.getJSON(ctx, "/api/nominatim/search", params, &places); err != nil {
		return nil, err
	}
	if places == nil {
		places = []domain.GeocodeResult{}
	}
	return places, nil
}

func areasPath(level domain.AdminLevel) (string, error) {
	switch level {
	case domain.LevelRegion:
		return "/api/geo/regions", nil
	case domain.LevelDistrict:
		return "/api/geo/districts", nil
	case domain.LevelCommune:
		return "/api/geo/communes", nil
	}
	return "", fmt.Errorf("unknown admin level %q", level)
}

func (c *Client) getJSON(ctx context.Context, path string, params url.Values, out interface{}) error {
	endpoint := c.cfg.BaseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.cfg.AuthToken != "" {
		req.AddCookie(&http.Cookie{Name: c.cfg.CookieName, Value: c.cfg.AuthToken})
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.logger.Debug("API returned error",
			zap.String("path", path),
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(body)))
		return fmt.Errorf("api error: %s status %d", path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
