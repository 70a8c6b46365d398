package types

// PlanarCoords is a point in the Dutch RD New (EPSG:28992) grid, in meters
type PlanarCoords struct {
	X float64
	Y float64
}

func NewPlanarCoords(x, y float64) PlanarCoords {
	return PlanarCoords{
		X: x,
		Y: y,
	}
}
