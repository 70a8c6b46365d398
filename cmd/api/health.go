package main

import (
	"context"
	"time"
)

// RootOutput represents the response for the welcome endpoint
type RootOutput struct {
	Body struct {
		Message string `json:"message" example:"Welcome to Stookwijzer API" doc:"Welcome message"`
	}
}

// HealthcheckOutput represents the response for the healthcheck endpoint
type HealthcheckOutput struct {
	Body struct {
		Status    string    `json:"status" example:"healthy" doc:"Service status"`
		Timestamp time.Time `json:"timestamp" doc:"Current server time"`
	}
}

// PingOutput represents the response for the ping endpoint
type PingOutput struct {
	Body struct {
		Message string `json:"message" example:"pong" doc:"Response message"`
	}
}

func (app *App) handleRoot(ctx context.Context, input *struct{}) (*RootOutput, error) {
	resp := &RootOutput{}
	resp.Body.Message = "Welcome to Stookwijzer API"
	return resp, nil
}

// handleHealthcheck reports the service as healthy together with the server time
func (app *App) handleHealthcheck(ctx context.Context, input *struct{}) (*HealthcheckOutput, error) {
	resp := &HealthcheckOutput{}
	resp.Body.Status = "healthy"
	resp.Body.Timestamp = app.clock.Now()
	return resp, nil
}

// handlePing is a health check endpoint that returns a simple pong message
func (app *App) handlePing(ctx context.Context, input *struct{}) (*PingOutput, error) {
	resp := &PingOutput{}
	resp.Body.Message = "pong"
	return resp, nil
}
