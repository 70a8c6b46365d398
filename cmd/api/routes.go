package main

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

// registerRoutes sets up all API endpoints
func (app *App) registerRoutes() {
	huma.Register(app.api, huma.Operation{
		OperationID: "root",
		Method:      http.MethodGet,
		Path:        "/",
		Summary:     "Welcome",
		Tags:        []string{"health"},
	}, app.handleRoot)

	// Health check endpoints
	huma.Register(app.api, huma.Operation{
		OperationID: "healthcheck",
		Method:      http.MethodGet,
		Path:        "/healthcheck",
		Summary:     "Health check",
		Description: "Report service health with the current server time",
		Tags:        []string{"health"},
	}, app.handleHealthcheck)

	huma.Register(app.api, huma.Operation{
		OperationID: "ping",
		Method:      http.MethodGet,
		Path:        "/ping",
		Summary:     "Ping health check",
		Description: "Check if the API is running",
		Tags:        []string{"health"},
	}, app.handlePing)

	// Stookwijzer endpoints
	huma.Register(app.api, huma.Operation{
		OperationID: "get-stookwijzer-advice",
		Method:      http.MethodGet,
		Path:        "/api/stookwijzer",
		Summary:     "Get wood-burning advice",
		Description: "Current burn advice, wind, air quality and a 24 hour forecast for a WGS84 location",
		Tags:        []string{"stookwijzer"},
		Errors:      []int{http.StatusBadRequest, http.StatusNotFound, http.StatusInternalServerError},
	}, app.handleGetAdvice)

	// Prometheus metrics stay outside the OpenAPI document
	app.router.GET("/metrics", app.metricsHandler())
}
