package stookwijzer

import (
	"fmt"
	"strconv"
	"time"
	_ "time/tzdata" // forecasts are localised without relying on the host zoneinfo

	"stookwijzer/internal/providers/rivm"
)

const (
	propertyModelRuntime = "model_runtime"
	propertyWind         = "wind"
	propertyWindBft      = "wind_bft"
	propertyLKI          = "lki"

	modelRuntimeLayout = "02-01-2006 15:04"

	forecastStepHours = 2
	forecastSteps     = 12
)

// forecastLocation is the zone the model runtime is published in.
var forecastLocation = mustLoadLocation("Europe/Amsterdam")

func mustLoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(fmt.Sprintf("failed to load timezone %s: %v", name, err))
	}
	return loc
}

func adviceProperty(offset int) string {
	return "advies_" + strconv.Itoa(offset)
}

func alertProperty(offset int) string {
	return "alert_" + strconv.Itoa(offset)
}

// mapAdvisory derives a complete advisory from a feature payload. A nil payload
// yields an empty advisory. now becomes LastUpdated when a current advice exists.
func mapAdvisory(resp *rivm.FeatureInfoResponse, now time.Time) (*Advisory, error) {
	advisory := &Advisory{
		WindspeedBft:    mapWindspeedBft(resp),
		WindspeedMs:     mapWindspeedMs(resp),
		AirQualityIndex: mapAirQualityIndex(resp),
	}

	if raw, ok := resp.StringProperty(adviceProperty(0)); ok && raw != "" {
		advice := ParseColor(raw)
		alert := mapAlert(resp, 0)
		updated := now
		advisory.Advice = &advice
		advisory.Alert = &alert
		advisory.LastUpdated = &updated
	}

	// Without a current advice the lookup ends in "no data", so a bad
	// runtime only leaves the series empty.
	forecastAdvice, err := mapForecastAdvice(resp)
	if err != nil {
		if !advisory.HasAdvice() {
			return advisory, nil
		}
		return nil, err
	}
	forecastAlert, err := mapForecastAlert(resp)
	if err != nil {
		return nil, err
	}
	advisory.ForecastAdvice = forecastAdvice
	advisory.ForecastAlert = forecastAlert

	return advisory, nil
}

// mapAlert is true only when alert_<offset> is exactly "1".
func mapAlert(resp *rivm.FeatureInfoResponse, offset int) bool {
	raw, _ := resp.StringProperty(alertProperty(offset))
	return raw == "1"
}

func mapWindspeedBft(resp *rivm.FeatureInfoResponse) *int {
	bft, ok := resp.IntProperty(propertyWindBft)
	if !ok {
		return nil
	}
	return &bft
}

func mapWindspeedMs(resp *rivm.FeatureInfoResponse) *float64 {
	wind, ok := resp.FloatProperty(propertyWind)
	if !ok {
		return nil
	}
	rounded := roundToOneDecimal(wind)
	return &rounded
}

func mapAirQualityIndex(resp *rivm.FeatureInfoResponse) *int {
	lki, ok := resp.IntProperty(propertyLKI)
	if !ok {
		return nil
	}
	return &lki
}

// roundToOneDecimal rounds half to even on the exact binary value, so 4.25
// becomes 4.2 and 4.35 (stored as 4.3499...) becomes 4.3.
func roundToOneDecimal(f float64) float64 {
	rounded, err := strconv.ParseFloat(strconv.FormatFloat(f, 'f', 1, 64), 64)
	if err != nil {
		return f
	}
	return rounded
}

// forecastRuntime returns the model run time interpreted as Amsterdam wall
// clock. ok is false when the payload carries no runtime.
func forecastRuntime(resp *rivm.FeatureInfoResponse) (runtime time.Time, ok bool, err error) {
	raw, found := resp.StringProperty(propertyModelRuntime)
	if !found || raw == "" {
		return time.Time{}, false, nil
	}
	runtime, err = time.ParseInLocation(modelRuntimeLayout, raw, forecastLocation)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("failed to parse %s %q: %w", propertyModelRuntime, raw, err)
	}
	return runtime, true, nil
}

// forecastOffsets are the hours after the model runtime covered by a forecast.
func forecastOffsets() []int {
	offsets := make([]int, 0, forecastSteps)
	for i := 1; i <= forecastSteps; i++ {
		offsets = append(offsets, i*forecastStepHours)
	}
	return offsets
}

// mapForecastAdvice returns nil when the payload has no model runtime.
func mapForecastAdvice(resp *rivm.FeatureInfoResponse) ([]ForecastAdvice, error) {
	runtime, ok, err := forecastRuntime(resp)
	if err != nil || !ok {
		return nil, err
	}

	forecast := make([]ForecastAdvice, 0, forecastSteps)
	for _, offset := range forecastOffsets() {
		raw, _ := resp.StringProperty(adviceProperty(offset))
		forecast = append(forecast, ForecastAdvice{
			Datetime: runtime.Add(time.Duration(offset) * time.Hour),
			Advice:   ParseColor(raw),
		})
	}
	return forecast, nil
}

// mapForecastAlert returns nil when the payload has no model runtime.
func mapForecastAlert(resp *rivm.FeatureInfoResponse) ([]ForecastAlert, error) {
	runtime, ok, err := forecastRuntime(resp)
	if err != nil || !ok {
		return nil, err
	}

	forecast := make([]ForecastAlert, 0, forecastSteps)
	for _, offset := range forecastOffsets() {
		forecast = append(forecast, ForecastAlert{
			Datetime: runtime.Add(time.Duration(offset) * time.Hour),
			Alert:    mapAlert(resp, offset),
		})
	}
	return forecast, nil
}
