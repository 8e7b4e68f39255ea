package pixmap

// Rect is an axis-aligned integer rectangle with non-negative extent.
// (X, Y) is the top-left corner; the rectangle covers X..X+W-1 horizontally
// and Y..Y+H-1 vertically.
type Rect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

// Empty reports whether the rectangle covers no pixels.
func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

// Contains reports whether (x, y) lies inside the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && y >= r.Y && x < r.X+r.W && y < r.Y+r.H
}

// IncludePoint returns the smallest rectangle covering both r and (x, y).
// An empty rectangle becomes the single-pixel rectangle at (x, y).
func (r Rect) IncludePoint(x, y int) Rect {
	if r.Empty() {
		return Rect{X: x, Y: y, W: 1, H: 1}
	}
	x1, y1 := r.X+r.W, r.Y+r.H
	if x < r.X {
		r.X = x
	}
	if y < r.Y {
		r.Y = y
	}
	if x+1 > x1 {
		x1 = x + 1
	}
	if y+1 > y1 {
		y1 = y + 1
	}
	r.W = x1 - r.X
	r.H = y1 - r.Y
	return r
}

// RectList is a growable list of rectangles.
type RectList struct {
	rects []Rect
}

// Push appends a rectangle to the list.
func (l *RectList) Push(r Rect) { l.rects = append(l.rects, r) }

// Get returns the rectangle at index i, or (Rect{}, false) when i is out of
// range.
func (l *RectList) Get(i int) (Rect, bool) {
	if i < 0 || i >= len(l.rects) {
		return Rect{}, false
	}
	return l.rects[i], true
}

// Len returns the number of rectangles in the list.
func (l *RectList) Len() int { return len(l.rects) }
