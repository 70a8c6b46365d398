package main

import (
	"context"
	"errors"

	"stookwijzer/internal/stookwijzer"

	"github.com/danielgtaylor/huma/v2"
)

// GetAdviceInput defines the query parameters for the advice endpoint
type GetAdviceInput struct {
	Latitude  float64 `query:"latitude" required:"true" minimum:"-90" maximum:"90" example:"52.0907" doc:"Latitude in decimal degrees (WGS84)"`
	Longitude float64 `query:"longitude" required:"true" minimum:"-180" maximum:"180" example:"5.1214" doc:"Longitude in decimal degrees (WGS84)"`
}

// GetAdviceOutput wraps the advice report
type GetAdviceOutput struct {
	Body *stookwijzer.Report
}

func (app *App) handleGetAdvice(ctx context.Context, input *GetAdviceInput) (*GetAdviceOutput, error) {
	report, err := app.stookwijzerService.GetAdvice(ctx, input.Latitude, input.Longitude)
	if err != nil {
		if errors.Is(err, stookwijzer.ErrCoordinateTransform) {
			return nil, huma.Error400BadRequest("Failed to transform coordinates")
		}

		app.logger.Error("failed to get stookwijzer advice",
			"latitude", input.Latitude,
			"longitude", input.Longitude,
			"error", err,
		)
		return nil, huma.Error500InternalServerError(err.Error())
	}

	if !report.HasAdvice() {
		return nil, huma.Error404NotFound("No data available for these coordinates")
	}

	return &GetAdviceOutput{Body: report}, nil
}
