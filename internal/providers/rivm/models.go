package rivm

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
)

// FeatureInfoResponse is the GeoJSON FeatureCollection returned by a WMS
// GetFeatureInfo request with info_format=application/json. Only the feature
// properties are decoded; ids and type members vary between servers.
type FeatureInfoResponse struct {
	Features []Feature `json:"features"`
}

type Feature struct {
	Properties map[string]json.RawMessage `json:"properties"`
}

// Property returns the raw value of the named property of the first feature.
// It reports false when there is no payload, no feature, no such property, or
// the value is JSON null.
func (r *FeatureInfoResponse) Property(name string) (json.RawMessage, bool) {
	if r == nil || len(r.Features) == 0 {
		return nil, false
	}
	raw, ok := r.Features[0].Properties[name]
	if !ok {
		return nil, false
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, false
	}
	return raw, true
}

// StringProperty returns the property as text. Strings are unquoted; numbers
// and booleans are returned as written in the payload. A present but empty
// string is ("", true).
func (r *FeatureInfoResponse) StringProperty(name string) (string, bool) {
	raw, ok := r.Property(name)
	if !ok {
		return "", false
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", false
		}
		return s, true
	}
	// Objects and arrays are not scalar properties
	if raw[0] == '{' || raw[0] == '[' {
		return "", false
	}
	return string(raw), true
}

// FloatProperty parses the property as a real number. Empty or non-numeric
// values are reported as absent; zero is present.
func (r *FeatureInfoResponse) FloatProperty(name string) (float64, bool) {
	s, ok := r.StringProperty(name)
	if !ok || s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// IntProperty parses the property as an integer. "3" and "3.0" are accepted;
// fractional, empty or non-numeric values are reported as absent.
func (r *FeatureInfoResponse) IntProperty(name string) (int, bool) {
	s, ok := r.StringProperty(name)
	if !ok || s == "" {
		return 0, false
	}
	if i, err := strconv.Atoi(s); err == nil {
		return i, true
	}
	f, ok := r.FloatProperty(name)
	if !ok || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}
