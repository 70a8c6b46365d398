//go:build integration

package epsg

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"stookwijzer/internal/config"
	"stookwijzer/internal/observability"
)

func TestClient_Transform_Integration(t *testing.T) {
	// Utrecht, Domtoren
	lat := 52.0907
	lon := 5.1214

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	client := NewClient(config.ProvidersConfig{
		Timeout: 10 * time.Second,
		EPSG:    config.EPSGConfig{BaseURL: baseTransformURL, SourceSRS: "4326", TargetSRS: "28992"},
	}, observability.NewMetricsForTesting(), logger)

	t.Logf("Coordinates: lat=%f, lon=%f", lat, lon)

	got, err := client.Transform(context.Background(), lat, lon)
	if err != nil {
		t.Fatalf("Failed to transform coordinates: %v", err)
	}

	t.Logf("Transformed: x=%f, y=%f", got.X, got.Y)

	// RD New coordinates of the Domtoren are roughly (136000, 455800)
	if got.X < 135000 || got.X > 137000 || got.Y < 455000 || got.Y > 456500 {
		t.Errorf("Transformed coordinates seem unreasonable: (%f, %f)", got.X, got.Y)
	}
}
