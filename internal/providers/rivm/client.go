package rivm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"stookwijzer/internal/config"
	"stookwijzer/internal/observability"
)

// API Docs: https://www.rivm.nl/stookwijzer
// WMS 1.3.0 GetFeatureInfo against the ALO geoserver, one pixel wide, in RD New.
const (
	baseWMSURL   = "https://data.rivm.nl/geo/alo/wms"
	defaultLayer = "stookwijzer"
	providerName = "rivm"
	crsRDNew     = "EPSG:28992"
)

var ErrNoBoundingBox = errors.New("no bounding box available")

type Client struct {
	httpClient *http.Client
	baseURL    string
	layer      string
	serviceKey string
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates a WMS client from the provider configuration. Redirects
// are never followed.
func NewClient(cfg config.ProvidersConfig, metrics *observability.Metrics, logger *slog.Logger) *Client {
	baseURL := cfg.RIVM.BaseURL
	if baseURL == "" {
		baseURL = baseWMSURL
	}
	layer := cfg.RIVM.Layer
	if layer == "" {
		layer = defaultLayer
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		baseURL:    baseURL,
		layer:      layer,
		serviceKey: cfg.RIVM.ServiceKey,
		metrics:    metrics,
		logger:     logger.With("component", "rivm-client"),
	}
}

// GetFeatureInfo queries the stookwijzer layer inside the bounding box. It
// makes at most one request and returns an error for an empty box, transport
// failures, timeouts, redirects, non-200 answers and undecodable bodies.
func (c *Client) GetFeatureInfo(ctx context.Context, bbox BoundingBox) (*FeatureInfoResponse, error) {
	if bbox == "" {
		c.logger.Error("no bounding box available")
		return nil, ErrNoBoundingBox
	}

	start := time.Now()
	resp, err := c.getFeatureInfo(ctx, bbox)
	c.metrics.ObserveProvider(providerName, start, err)
	if err != nil {
		c.logger.Error("failed to get stookwijzer features", "bbox", string(bbox), "error", err)
		return nil, err
	}

	c.logger.Debug("successfully fetched stookwijzer features", "feature_count", len(resp.Features))

	return resp, nil
}

func (c *Client) getFeatureInfo(ctx context.Context, bbox BoundingBox) (*FeatureInfoResponse, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	q := u.Query()
	q.Set("service", "WMS")
	q.Set("VERSION", "1.3.0")
	q.Set("REQUEST", "GetFeatureInfo")
	q.Set("FORMAT", "application/json")
	q.Set("QUERY_LAYERS", c.layer)
	q.Set("LAYERS", c.layer)
	q.Set("servicekey", c.serviceKey)
	q.Set("STYLES", "")
	q.Set("BUFFER", "1")
	q.Set("info_format", "application/json")
	q.Set("feature_count", "1")
	q.Set("I", "1")
	q.Set("J", "1")
	q.Set("WIDTH", "1")
	q.Set("HEIGHT", "1")
	q.Set("CRS", crsRDNew)
	// The box is already escaped; going through url.Values would escape it twice
	u.RawQuery = q.Encode() + "&BBOX=" + string(bbox)

	c.logger.Debug("fetching stookwijzer features", "bbox", string(bbox))

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

	var apiResp FeatureInfoResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &apiResp, nil
}
