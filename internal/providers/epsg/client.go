package epsg

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"stookwijzer/internal/config"
	"stookwijzer/internal/observability"
	"stookwijzer/internal/types"
)

// API Docs: https://epsg.io/transform
// Sample request: https://epsg.io/trans?x=5.1214&y=52.0907&s_srs=4326&t_srs=28992
const (
	baseTransformURL = "https://epsg.io/trans"
	providerName     = "epsg"
)

type Client struct {
	httpClient *http.Client
	baseURL    string
	sourceSRS  string
	targetSRS  string
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates a transform client from the provider configuration.
func NewClient(cfg config.ProvidersConfig, metrics *observability.Metrics, logger *slog.Logger) *Client {
	baseURL := cfg.EPSG.BaseURL
	if baseURL == "" {
		baseURL = baseTransformURL
	}
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    baseURL,
		sourceSRS:  cfg.EPSG.SourceSRS,
		targetSRS:  cfg.EPSG.TargetSRS,
		metrics:    metrics,
		logger:     logger.With("component", "epsg-client"),
	}
}

// Transform converts a WGS84 latitude/longitude into planar coordinates of the
// target reference system. It makes exactly one request; any failure is
// returned as an error and no coordinates.
func (c *Client) Transform(ctx context.Context, latitude, longitude float64) (result *types.PlanarCoords, err error) {
	start := time.Now()
	defer func() {
		c.metrics.ObserveProvider(providerName, start, err)
	}()

	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	// The service takes longitude as x and latitude as y
	q := u.Query()
	q.Set("x", strconv.FormatFloat(longitude, 'f', -1, 64))
	q.Set("y", strconv.FormatFloat(latitude, 'f', -1, 64))
	q.Set("s_srs", c.sourceSRS)
	q.Set("t_srs", c.targetSRS)
	u.RawQuery = q.Encode()

	c.logger.Debug("transforming coordinates",
		"latitude", latitude,
		"longitude", longitude,
		"url", u.String(),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch: %w", err)
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("fetch returned status %d: %s", resp.StatusCode, string(body))
	}

	var apiResp TransformAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if apiResp.X == nil || apiResp.Y == nil {
		return nil, errors.New("response is missing x or y")
	}

	planar := types.NewPlanarCoords(float64(*apiResp.X), float64(*apiResp.Y))

	c.logger.Debug("transformed coordinates",
		"x", planar.X,
		"y", planar.Y,
	)

	return &planar, nil
}
