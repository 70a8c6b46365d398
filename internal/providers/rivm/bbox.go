package rivm

import (
	"errors"
	"fmt"
	"math"

	"stookwijzer/internal/types"
)

// boundingBoxSize is the edge length, in RD New meters, of the square queried around a point.
const boundingBoxSize = 10.0

// bboxSeparator is a comma, already escaped for use inside a query string.
const bboxSeparator = "%2C"

var ErrInvalidBoundingBox = errors.New("invalid coordinates for bounding box")

// BoundingBox is the WMS BBOX parameter value: minx,miny,maxx,maxy with escaped commas.
type BoundingBox string

// NewBoundingBox anchors a square at (x, y) extending boundingBoxSize along both axes.
func NewBoundingBox(x, y float64) (BoundingBox, error) {
	if !isFinite(x) || !isFinite(y) {
		return "", fmt.Errorf("%w: (%v, %v)", ErrInvalidBoundingBox, x, y)
	}

	return BoundingBox(fmt.Sprintf("%.6f%s%.6f%s%.6f%s%.6f",
		x, bboxSeparator,
		y, bboxSeparator,
		x+boundingBoxSize, bboxSeparator,
		y+boundingBoxSize,
	)), nil
}

// NewBoundingBoxFromPoint is NewBoundingBox for a transformed point.
func NewBoundingBoxFromPoint(p types.PlanarCoords) (BoundingBox, error) {
	return NewBoundingBox(p.X, p.Y)
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
