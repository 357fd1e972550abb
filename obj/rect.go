package obj

// Point is a position in screen pixels.
type Point struct {
	X, Y float32
}

type Rect struct {
	X, Y          float32
	Width, Height float32
}

// Intersects reports whether r and other overlap. Rects that only share an
// edge do not intersect.
func (r *Rect) Intersects(other *Rect) bool {
	return r.X < other.X+other.Width &&
		r.X+r.Width > other.X &&
		r.Y < other.Y+other.Height &&
		r.Y+r.Height > other.Y
}

// Contains reports whether the point lies inside r. The right and bottom
// edges are exclusive.
func (r *Rect) Contains(x, y float32) bool {
	return x >= r.X && x < r.X+r.Width &&
		y >= r.Y && y < r.Y+r.Height
}

func (r *Rect) Bottom() float32 {
	return r.Y + r.Height
}

// SetBottom moves r vertically so its bottom edge sits at y.
func (r *Rect) SetBottom(y float32) {
	r.Y = y - r.Height
}
