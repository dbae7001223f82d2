package dungeon

// Vec3 is a world-space position.
type Vec3 struct {
	X float64
	Y float64
	Z float64
}

// Point is a grid cell coordinate.
type Point struct {
	X int
	Y int
}

// Rect is an axis-aligned rectangle in grid cells. X,Y is the minimum corner;
// the rectangle covers [X, X+W) by [Y, Y+H).
type Rect struct {
	X int
	Y int
	W int
	H int
}

// Pad grows the rectangle by n cells on every side.
func (r Rect) Pad(n int) Rect {
	return Rect{X: r.X - n, Y: r.Y - n, W: r.W + 2*n, H: r.H + 2*n}
}

// Overlaps reports whether two rectangles share at least one cell.
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.X+o.W && o.X < r.X+r.W &&
		r.Y < o.Y+o.H && o.Y < r.Y+r.H
}

// Contains reports whether the cell p lies inside the rectangle.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

// Center returns the center cell, rounding toward the minimum corner.
func (r Rect) Center() Point {
	return Point{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// WorldRect is a rectangle in world units on the horizontal plane.
type WorldRect struct {
	MinX float64
	MinY float64
	MaxX float64
	MaxY float64
}

// Contains reports whether the point lies inside the rectangle. Edges count.
func (w WorldRect) Contains(x, y float64) bool {
	return x >= w.MinX && x <= w.MaxX && y >= w.MinY && y <= w.MaxY
}

// Center returns the center of the rectangle.
func (w WorldRect) Center() (float64, float64) {
	return (w.MinX + w.MaxX) / 2, (w.MinY + w.MaxY) / 2
}

// ToWorld converts a grid rectangle into world units relative to origin.
func ToWorld(r Rect, origin Vec3, cellSize float64) WorldRect {
	return WorldRect{
		MinX: origin.X + float64(r.X)*cellSize,
		MinY: origin.Y + float64(r.Y)*cellSize,
		MaxX: origin.X + float64(r.X+r.W)*cellSize,
		MaxY: origin.Y + float64(r.Y+r.H)*cellSize,
	}
}

// CellToWorld returns the world position of the center of a grid cell.
func CellToWorld(p Point, origin Vec3, cellSize float64) Vec3 {
	return Vec3{
		X: origin.X + (float64(p.X)+0.5)*cellSize,
		Y: origin.Y + (float64(p.Y)+0.5)*cellSize,
		Z: origin.Z,
	}
}

// Segment is one axis-aligned leg of a corridor, inclusive at both ends.
// A zero-length segment has From == To.
type Segment struct {
	From Point
	To   Point
}

// Horizontal reports whether the segment runs along the X axis.
func (s Segment) Horizontal() bool {
	return s.From.Y == s.To.Y
}

// Len returns the segment length in cells.
func (s Segment) Len() int {
	return abs(s.To.X-s.From.X) + abs(s.To.Y-s.From.Y)
}

// Manhattan returns the grid distance between two points.
func Manhattan(a, b Point) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
