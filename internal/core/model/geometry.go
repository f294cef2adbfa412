package model

// Point is a position in logical pixels.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Add returns the point translated by delta.
func (point Point) Add(delta Point) Point {
	return Point{X: point.X + delta.X, Y: point.Y + delta.Y}
}

// Sub returns the vector from other to this point.
func (point Point) Sub(other Point) Point {
	return Point{X: point.X - other.X, Y: point.Y - other.Y}
}

// Size is a width and height in logical pixels.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Rect is an axis-aligned rectangle in logical pixels.
type Rect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// RectAt builds a rectangle from an origin and a size.
func RectAt(origin Point, size Size) Rect {
	return Rect{X: origin.X, Y: origin.Y, Width: size.Width, Height: size.Height}
}

// Contains reports whether the point lies inside the rectangle. The right
// and bottom edges are exclusive.
func (rect Rect) Contains(point Point) bool {
	return point.X >= rect.X && point.X < rect.X+rect.Width &&
		point.Y >= rect.Y && point.Y < rect.Y+rect.Height
}
