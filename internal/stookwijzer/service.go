package stookwijzer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"stookwijzer/internal/config"
	"stookwijzer/internal/observability"
	"stookwijzer/internal/providers/epsg"
	"stookwijzer/internal/providers/rivm"
	"stookwijzer/internal/timezone"
	"stookwijzer/internal/types"

	"github.com/jonboulle/clockwork"
)

// ErrCoordinateTransform means the input could not be converted to RD New;
// callers should treat it as a client error.
var ErrCoordinateTransform = errors.New("failed to transform coordinates")

// CoordinateTransformer converts WGS84 coordinates to the RD New grid.
type CoordinateTransformer interface {
	Transform(ctx context.Context, latitude, longitude float64) (*types.PlanarCoords, error)
}

// FeatureProvider fetches the stookwijzer features inside a bounding box.
type FeatureProvider interface {
	GetFeatureInfo(ctx context.Context, bbox rivm.BoundingBox) (*rivm.FeatureInfoResponse, error)
}

// Service provides burn advice for a location.
type Service interface {
	// GetAdvice returns a report whose Advisory is empty when no data is
	// available. It fails with ErrCoordinateTransform when the location cannot
	// be transformed.
	GetAdvice(ctx context.Context, latitude, longitude float64) (*Report, error)
}

type stookwijzerService struct {
	transformer     CoordinateTransformer
	featureProvider FeatureProvider
	timezoneService timezone.Service
	clock           clockwork.Clock
	metrics         *observability.Metrics
	logger          *slog.Logger
}

// NewStookwijzerService creates a service backed by the real epsg.io and RIVM clients.
func NewStookwijzerService(cfg *config.Config, metrics *observability.Metrics, logger *slog.Logger) (Service, error) {
	tzSvc, err := timezone.NewService()
	if err != nil {
		return nil, fmt.Errorf("failed to create timezone service: %w", err)
	}
	return NewStookwijzerServiceWithProviders(
		epsg.NewClient(cfg.Providers, metrics, logger),
		rivm.NewClient(cfg.Providers, metrics, logger),
		tzSvc,
		clockwork.NewRealClock(),
		metrics,
		logger,
	), nil
}

// NewStookwijzerServiceWithProviders creates a service with custom providers.
// timezoneService may be nil, in which case reports carry no timezone.
func NewStookwijzerServiceWithProviders(
	transformer CoordinateTransformer,
	featureProvider FeatureProvider,
	timezoneService timezone.Service,
	clock clockwork.Clock,
	metrics *observability.Metrics,
	logger *slog.Logger,
) Service {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &stookwijzerService{
		transformer:     transformer,
		featureProvider: featureProvider,
		timezoneService: timezoneService,
		clock:           clock,
		metrics:         metrics,
		logger:          logger.With("component", "stookwijzer-service"),
	}
}

func (s *stookwijzerService) GetAdvice(ctx context.Context, latitude, longitude float64) (*Report, error) {
	s.logger.Debug("getting stookwijzer advice",
		"latitude", latitude,
		"longitude", longitude,
	)

	planar, err := s.transformer.Transform(ctx, latitude, longitude)
	if err != nil {
		s.logger.Error("failed to transform coordinates",
			"latitude", latitude,
			"longitude", longitude,
			"error", err,
		)
		s.metrics.ObserveAdvice(observability.OutcomeError)
		return nil, fmt.Errorf("%w: %w", ErrCoordinateTransform, err)
	}

	s.logger.Debug("coordinates transformed",
		"x", planar.X,
		"y", planar.Y,
	)

	// An invalid box stays empty and the fetch below short-circuits on it
	bbox, err := rivm.NewBoundingBoxFromPoint(*planar)
	if err != nil {
		s.logger.Error("failed to build bounding box", "x", planar.X, "y", planar.Y, "error", err)
	}

	// A failed fetch is not fatal: the advisory simply stays empty
	payload, err := s.featureProvider.GetFeatureInfo(ctx, bbox)
	if err != nil {
		s.logger.Warn("stookwijzer data unavailable", "error", err)
		payload = nil
	}

	advisory, err := mapAdvisory(payload, s.clock.Now())
	if err != nil {
		s.logger.Error("failed to map stookwijzer data", "error", err)
		s.metrics.ObserveAdvice(observability.OutcomeError)
		return nil, fmt.Errorf("failed to map stookwijzer data: %w", err)
	}

	report := &Report{
		Advisory: *advisory,
		Coordinates: ReportCoordinates{
			Original: OriginalCoordinates{
				Latitude:  latitude,
				Longitude: longitude,
				Timezone:  s.lookupTimezone(latitude, longitude),
			},
			Transformed: TransformedCoordinates{
				X: planar.X,
				Y: planar.Y,
			},
		},
	}

	if report.HasAdvice() {
		s.metrics.ObserveAdvice(observability.OutcomeSuccess)
		s.logger.Debug("successfully mapped stookwijzer advice",
			"advice", string(*report.Advice),
			"alert", *report.Alert,
			"forecast_steps", len(report.ForecastAdvice),
		)
	} else {
		s.metrics.ObserveAdvice(observability.OutcomeEmpty)
		s.logger.Debug("no current advice for coordinates",
			"latitude", latitude,
			"longitude", longitude,
		)
	}

	return report, nil
}

func (s *stookwijzerService) lookupTimezone(latitude, longitude float64) string {
	if s.timezoneService == nil {
		return ""
	}
	tz, err := s.timezoneService.GetTimezone(latitude, longitude)
	if err != nil {
		s.logger.Warn("failed to determine timezone",
			"latitude", latitude,
			"longitude", longitude,
			"error", err,
		)
		return ""
	}
	return tz
}
