package intarsia

import "math"

// ColorDistance calculates the Euclidean distance between two colors in
// the RGB color space.
func ColorDistance(a, b RGB) float64 {
	return math.Sqrt(float64(distanceSquared(a, b)))
}

// distanceSquared is the exact integer form of ColorDistance. It orders
// colors identically, ties included.
func distanceSquared(a, b RGB) int {
	dr := int(a.R) - int(b.R)
	dg := int(a.G) - int(b.G)
	db := int(a.B) - int(b.B)
	return dr*dr + dg*dg + db*db
}
