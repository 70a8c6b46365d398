package epsg

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// TransformAPIResponse is the body of the epsg.io transform endpoint.
// Fields are pointers so a missing coordinate can be told apart from zero.
// The height (z) is not decoded.
type TransformAPIResponse struct {
	X *Coordinate `json:"x"`
	Y *Coordinate `json:"y"`
}

// Coordinate accepts both JSON numbers and numeric strings; epsg.io sends the latter.
type Coordinate float64

func (c *Coordinate) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return fmt.Errorf("coordinate is null")
	}

	raw := string(data)
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
	}

	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("coordinate %q is not numeric: %w", raw, err)
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return fmt.Errorf("coordinate %q is not finite", raw)
	}

	*c = Coordinate(value)
	return nil
}
