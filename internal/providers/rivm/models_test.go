package rivm

import (
	"encoding/json"
	"testing"
)

func mustDecode(t *testing.T, body string) *FeatureInfoResponse {
	t.Helper()
	var resp FeatureInfoResponse
	if err := json.Unmarshal([]byte(body), &resp); err != nil {
		t.Fatalf("failed to decode test payload: %v", err)
	}
	return &resp
}

const samplePayload = `{
	"type": "FeatureCollection",
	"features": [{
		"type": "Feature",
		"id": "stookwijzer.1",
		"properties": {
			"advies_0": "1",
			"alert_0": "0",
			"wind": "4.27",
			"wind_bft": "3",
			"lki": 5,
			"pm10": 12.5,
			"empty": "",
			"zero": "0",
			"whole_float": "4.0",
			"fraction": "4.5",
			"flag": true,
			"missing": null,
			"nested": {"a": 1}
		}
	}]
}`

func TestFeatureInfoResponse_StringProperty(t *testing.T) {
	resp := mustDecode(t, samplePayload)

	tests := []struct {
		name      string
		property  string
		want      string
		wantFound bool
	}{
		{"string value", "advies_0", "1", true},
		{"numeric value", "lki", "5", true},
		{"decimal value", "pm10", "12.5", true},
		{"boolean value", "flag", "true", true},
		{"present but empty", "empty", "", true},
		{"null value", "missing", "", false},
		{"object value", "nested", "", false},
		{"absent", "advies_2", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := resp.StringProperty(tt.property)
			if got != tt.want || found != tt.wantFound {
				t.Errorf("StringProperty(%q) = (%q, %v), want (%q, %v)", tt.property, got, found, tt.want, tt.wantFound)
			}
		})
	}
}

func TestFeatureInfoResponse_FloatProperty(t *testing.T) {
	resp := mustDecode(t, samplePayload)

	tests := []struct {
		property  string
		want      float64
		wantFound bool
	}{
		{"wind", 4.27, true},
		{"pm10", 12.5, true},
		{"zero", 0, true},
		{"empty", 0, false},
		{"flag", 0, false},
		{"absent", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.property, func(t *testing.T) {
			got, found := resp.FloatProperty(tt.property)
			if got != tt.want || found != tt.wantFound {
				t.Errorf("FloatProperty(%q) = (%v, %v), want (%v, %v)", tt.property, got, found, tt.want, tt.wantFound)
			}
		})
	}
}

func TestFeatureInfoResponse_IntProperty(t *testing.T) {
	resp := mustDecode(t, samplePayload)

	tests := []struct {
		property  string
		want      int
		wantFound bool
	}{
		{"wind_bft", 3, true},
		{"lki", 5, true},
		{"zero", 0, true},
		{"whole_float", 4, true},
		{"fraction", 0, false},
		{"empty", 0, false},
		{"advies_9", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.property, func(t *testing.T) {
			got, found := resp.IntProperty(tt.property)
			if got != tt.want || found != tt.wantFound {
				t.Errorf("IntProperty(%q) = (%v, %v), want (%v, %v)", tt.property, got, found, tt.want, tt.wantFound)
			}
		})
	}
}

func TestFeatureInfoResponse_NoFeatures(t *testing.T) {
	tests := []struct {
		name string
		resp *FeatureInfoResponse
	}{
		{"nil payload", nil},
		{"empty collection", mustDecode(t, `{"type": "FeatureCollection", "features": []}`)},
		{"features omitted", mustDecode(t, `{"type": "FeatureCollection"}`)},
		{"feature without properties", mustDecode(t, `{"features": [{"type": "Feature"}]}`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, found := tt.resp.Property("advies_0"); found {
				t.Error("Property() found a value in a payload without one")
			}
			if got, found := tt.resp.StringProperty("advies_0"); found || got != "" {
				t.Errorf("StringProperty() = (%q, %v), want (\"\", false)", got, found)
			}
			if _, found := tt.resp.IntProperty("lki"); found {
				t.Error("IntProperty() found a value in a payload without one")
			}
			if _, found := tt.resp.FloatProperty("wind"); found {
				t.Error("FloatProperty() found a value in a payload without one")
			}
		})
	}
}
