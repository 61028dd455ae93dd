// Package style defines the paint attributes captured by value whenever a
// drawable item is committed.
package style

import (
	"errors"
	"fmt"
	"image/color"
	"math"
)

// ErrInvalid is wrapped by every validation error in this package.
var ErrInvalid = errors.New("invalid style")

// Cap is the shape drawn at the ends of open strokes.
type Cap int

const (
	CapRound Cap = iota
	CapButt
	CapSquare
)

// Join is the shape drawn where two stroke segments meet.
type Join int

const (
	JoinRound Join = iota
	JoinMiter
	JoinBevel
)

// Composite selects how new paint combines with what is already on a surface.
type Composite int

const (
	// SourceOver paints on top of existing pixels.
	SourceOver Composite = iota
	// DestinationOut removes existing pixels where the new paint lands.
	DestinationOut
)

// Font describes the text face used by the text tool.
type Font struct {
	Size   float64
	Family string
}

func (f Font) String() string {
	return fmt.Sprintf("%gpx %s", f.Size, f.Family)
}

// Snapshot is an immutable set of paint attributes. It is a value type: an
// item holding a Snapshot is unaffected by later changes to the active
// style.
type Snapshot struct {
	Font        Font
	StrokeColor color.RGBA
	FillColor   color.RGBA
	Alpha       float64
	LineWidth   float64
	LineCap     Cap
	LineJoin    Join
	MiterLimit  float64
	Composite   Composite
}

// Default returns the initial paint configuration of a new board.
func Default() Snapshot {
	return Snapshot{
		Font:        Font{Size: 22, Family: "sans"},
		StrokeColor: color.RGBA{0, 0, 0, 255},
		FillColor:   color.RGBA{0, 0, 0, 255},
		Alpha:       1,
		LineWidth:   6,
		LineCap:     CapRound,
		LineJoin:    JoinRound,
		MiterLimit:  10,
		Composite:   SourceOver,
	}
}

// Partial carries the subset of attributes a caller wants to change.
// Nil fields are left alone.
type Partial struct {
	Font        *Font
	StrokeColor *color.RGBA
	FillColor   *color.RGBA
	Alpha       *float64
	LineWidth   *float64
	LineCap     *Cap
	LineJoin    *Join
	MiterLimit  *float64
	Composite   *Composite
}

// Validate checks every field that is set.
func (p Partial) Validate() error {
	if p.Font != nil {
		if !finite(p.Font.Size) || p.Font.Size <= 0 {
			return fmt.Errorf("%w: font size %v", ErrInvalid, p.Font.Size)
		}
		if p.Font.Family == "" {
			return fmt.Errorf("%w: empty font family", ErrInvalid)
		}
	}
	if p.Alpha != nil && (!finite(*p.Alpha) || *p.Alpha < 0 || *p.Alpha > 1) {
		return fmt.Errorf("%w: alpha %v outside 0..1", ErrInvalid, *p.Alpha)
	}
	if p.LineWidth != nil && (!finite(*p.LineWidth) || *p.LineWidth <= 0) {
		return fmt.Errorf("%w: line width %v", ErrInvalid, *p.LineWidth)
	}
	if p.MiterLimit != nil && (!finite(*p.MiterLimit) || *p.MiterLimit <= 0) {
		return fmt.Errorf("%w: miter limit %v", ErrInvalid, *p.MiterLimit)
	}
	if p.LineCap != nil && (*p.LineCap < CapRound || *p.LineCap > CapSquare) {
		return fmt.Errorf("%w: line cap %d", ErrInvalid, *p.LineCap)
	}
	if p.LineJoin != nil && (*p.LineJoin < JoinRound || *p.LineJoin > JoinBevel) {
		return fmt.Errorf("%w: line join %d", ErrInvalid, *p.LineJoin)
	}
	if p.Composite != nil && (*p.Composite < SourceOver || *p.Composite > DestinationOut) {
		return fmt.Errorf("%w: composite %d", ErrInvalid, *p.Composite)
	}
	return nil
}

// Apply returns s with every set field of p copied over. If any field of p
// is invalid, s is returned unchanged together with the error.
func (s Snapshot) Apply(p Partial) (Snapshot, error) {
	if err := p.Validate(); err != nil {
		return s, err
	}
	if p.Font != nil {
		s.Font = *p.Font
	}
	if p.StrokeColor != nil {
		s.StrokeColor = *p.StrokeColor
	}
	if p.FillColor != nil {
		s.FillColor = *p.FillColor
	}
	if p.Alpha != nil {
		s.Alpha = *p.Alpha
	}
	if p.LineWidth != nil {
		s.LineWidth = *p.LineWidth
	}
	if p.LineCap != nil {
		s.LineCap = *p.LineCap
	}
	if p.LineJoin != nil {
		s.LineJoin = *p.LineJoin
	}
	if p.MiterLimit != nil {
		s.MiterLimit = *p.MiterLimit
	}
	if p.Composite != nil {
		s.Composite = *p.Composite
	}
	return s, nil
}

func finite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }
