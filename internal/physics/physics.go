// Package physics provides collision detection and distance utilities.
package physics

// DistanceSquared calculates the squared distance between two points.
func DistanceSquared(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return dx*dx + dy*dy
}

// WithinDistance reports whether two points are strictly closer than dist.
func WithinDistance(x1, y1, x2, y2, dist float64) bool {
	return DistanceSquared(x1, y1, x2, y2) < dist*dist
}

// RectsOverlap checks if two axis-aligned boxes (top-left corner + size) intersect.
// Boxes that only touch along an edge do not overlap.
func RectsOverlap(x1, y1, w1, h1, x2, y2, w2, h2 float64) bool {
	return x1 < x2+w2 && x1+w1 > x2 && y1 < y2+h2 && y1+h1 > y2
}

// PointInRect checks if a point lies strictly inside a box (top-left corner + size).
func PointInRect(px, py, x, y, w, h float64) bool {
	return px > x && px < x+w && py > y && py < y+h
}
