package epsg

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"stookwijzer/internal/config"
	"stookwijzer/internal/observability"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(baseURL string, timeout time.Duration) *Client {
	cfg := config.ProvidersConfig{
		Timeout: timeout,
		EPSG: config.EPSGConfig{
			BaseURL:   baseURL,
			SourceSRS: "4326",
			TargetSRS: "28992",
		},
	}
	return NewClient(cfg, observability.NewMetricsForTesting(), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func respondWith(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_Transform_QueryParameters(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "5.1214", q.Get("x"))
		assert.Equal(t, "52.0907", q.Get("y"))
		assert.Equal(t, "4326", q.Get("s_srs"))
		assert.Equal(t, "28992", q.Get("t_srs"))
		_, _ = w.Write([]byte(`{"x": "136013.58", "y": "455723.89", "z": "0"}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL, 5*time.Second)
	got, err := c.Transform(context.Background(), 52.0907, 5.1214)
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, 136013.58, got.X)
	assert.Equal(t, 455723.89, got.Y)
	assert.Equal(t, 1.0, testutil.ToFloat64(c.metrics.ProviderRequests.WithLabelValues(providerName, observability.OutcomeSuccess)))
}

func TestClient_Transform_NumericBody(t *testing.T) {
	srv := respondWith(t, http.StatusOK, `{"x": 155000, "y": 463000.5}`)

	got, err := testClient(srv.URL, 5*time.Second).Transform(context.Background(), 52.15, 5.38)
	require.NoError(t, err)

	assert.Equal(t, 155000.0, got.X)
	assert.Equal(t, 463000.5, got.Y)
}

func TestClient_Transform_IgnoresHeight(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty string", `{"x": "136013.58", "y": "455723.89", "z": ""}`},
		{"null", `{"x": "136013.58", "y": "455723.89", "z": null}`},
		{"not numeric", `{"x": "136013.58", "y": "455723.89", "z": "n/a"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := respondWith(t, http.StatusOK, tt.body)

			got, err := testClient(srv.URL, 5*time.Second).Transform(context.Background(), 52.0907, 5.1214)
			require.NoError(t, err)
			assert.Equal(t, 136013.58, got.X)
			assert.Equal(t, 455723.89, got.Y)
		})
	}
}

func TestClient_Transform_Failures(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		errContains string
	}{
		{"malformed body", http.StatusOK, `<html>oops</html>`, "failed to decode response"},
		{"missing y", http.StatusOK, `{"x": "155000"}`, "missing x or y"},
		{"null x", http.StatusOK, `{"x": null, "y": "463000"}`, "missing x or y"},
		{"non-numeric", http.StatusOK, `{"x": "abc", "y": "463000"}`, "not numeric"},
		{"non-finite", http.StatusOK, `{"x": "NaN", "y": "463000"}`, "not finite"},
		{"server error", http.StatusInternalServerError, `{"error": "down"}`, "status 500"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := respondWith(t, tt.status, tt.body)
			c := testClient(srv.URL, 5*time.Second)

			got, err := c.Transform(context.Background(), 52.0, 5.0)
			require.Error(t, err)
			assert.Nil(t, got)
			assert.Contains(t, err.Error(), tt.errContains)
			assert.Equal(t, 1.0, testutil.ToFloat64(c.metrics.ProviderRequests.WithLabelValues(providerName, observability.OutcomeError)))
		})
	}
}

func TestClient_Transform_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte(`{"x": "1", "y": "2"}`))
	}))
	defer srv.Close()

	got, err := testClient(srv.URL, 50*time.Millisecond).Transform(context.Background(), 52.0, 5.0)
	require.Error(t, err)
	assert.Nil(t, got)
}

func TestClient_Transform_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	got, err := testClient(url, time.Second).Transform(context.Background(), 52.0, 5.0)
	require.Error(t, err)
	assert.Nil(t, got)
	assert.Contains(t, err.Error(), "failed to fetch")
}
