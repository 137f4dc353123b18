package timeline

import "errors"

// ErrNoTouches is returned when a touch sample carries no contact points.
var ErrNoTouches = errors.New("touch event has no touches")

// Pointer is a normalized input coordinate. Mouse and touch input are
// resolved into this one shape at the input boundary; nothing downstream
// branches on the input device again.
type Pointer struct {
	X float64
	Y float64
}

// PointerFromMouse normalizes a mouse sample's client coordinates.
func PointerFromMouse(clientX, clientY float64) Pointer {
	return Pointer{X: clientX, Y: clientY}
}

// PointerFromTouch normalizes a touch sample. The first contact point wins.
func PointerFromTouch(touches []Pointer) (Pointer, error) {
	if len(touches) == 0 {
		return Pointer{}, ErrNoTouches
	}
	return touches[0], nil
}

// Rect is the rendered geometry of a timeline element.
type Rect struct {
	Left  float64
	Width float64
}

// OffsetIn returns the pointer's horizontal offset from the element's left
// edge.
func (p Pointer) OffsetIn(r Rect) float64 {
	return p.X - r.Left
}
