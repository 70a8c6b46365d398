package stookwijzer

import (
	"time"
)

// Color is the advisory category published by the Stookwijzer. The zero value
// means the raw code was missing or not recognised.
type Color string

const (
	ColorUnknown Color = ""
	ColorYellow  Color = "code_yellow"
	ColorOrange  Color = "code_orange"
	ColorRed     Color = "code_red"
)

// ParseColor maps a raw advisory code to a Color. Only the exact strings
// "0", "1" and "2" are recognised.
func ParseColor(raw string) Color {
	switch raw {
	case "0":
		return ColorYellow
	case "1":
		return ColorOrange
	case "2":
		return ColorRed
	default:
		return ColorUnknown
	}
}

// Advisory is the burn advice for one location at one moment. Advice, Alert
// and LastUpdated are either all set or all nil.
type Advisory struct {
	Advice          *Color           `json:"advice" doc:"Current advice: code_yellow, code_orange, code_red, or empty when unknown"`
	Alert           *bool            `json:"alert" doc:"Whether a stookalert is in effect"`
	WindspeedBft    *int             `json:"windspeed_bft" doc:"Wind speed in Beaufort"`
	WindspeedMs     *float64         `json:"windspeed_ms" doc:"Wind speed in m/s, one decimal"`
	AirQualityIndex *int             `json:"lki" doc:"Air quality index (LKI)"`
	ForecastAdvice  []ForecastAdvice `json:"forecast_advice" doc:"Advice for the next 24 hours in 2 hour steps, null without model data"`
	ForecastAlert   []ForecastAlert  `json:"forecast_alert" doc:"Alerts for the next 24 hours in 2 hour steps, null without model data"`
	LastUpdated     *time.Time       `json:"last_updated" doc:"When the current advice was retrieved"`
}

// HasAdvice reports whether the upstream published a current advice.
func (a *Advisory) HasAdvice() bool {
	return a != nil && a.Advice != nil
}

// ForecastAdvice is the expected advice at a point in time.
type ForecastAdvice struct {
	Datetime time.Time `json:"datetime"`
	Advice   Color     `json:"advice"`
}

// ForecastAlert is the expected alert state at a point in time.
type ForecastAlert struct {
	Datetime time.Time `json:"datetime"`
	Alert    bool      `json:"alert"`
}

// Report is the advisory together with the coordinates it was derived from.
type Report struct {
	Advisory
	Coordinates ReportCoordinates `json:"coordinates"`
}

type ReportCoordinates struct {
	Original    OriginalCoordinates    `json:"original"`
	Transformed TransformedCoordinates `json:"transformed"`
}

type OriginalCoordinates struct {
	Latitude  float64 `json:"latitude" example:"52.0907"`
	Longitude float64 `json:"longitude" example:"5.1214"`
	Timezone  string  `json:"timezone,omitempty" example:"Europe/Amsterdam" doc:"IANA timezone of the location"`
}

type TransformedCoordinates struct {
	X float64 `json:"x" example:"136013.58" doc:"RD New x in meters"`
	Y float64 `json:"y" example:"455723.89" doc:"RD New y in meters"`
}
