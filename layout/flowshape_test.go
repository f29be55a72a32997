package layout

import "testing"

func TestRectShapeConstantBounds(t *testing.T) {
	s := RectShape{X0: FromPixels(10), X1: FromPixels(200)}
	if got := s.Left(0, 1000); got != FromPixels(10) {
		t.Errorf("Left = %v, want 10px", ToPixels(got))
	}
	if got := s.Right(0, 1000); got != FromPixels(200) {
		t.Errorf("Right = %v, want 200px", ToPixels(got))
	}
	if s.Left2(0, 1000) != s.Left(0, 1000) || s.Right2(0, 1000) != s.Right(0, 1000) {
		t.Errorf("Left2/Right2 should match Left/Right for a rectangular shape")
	}
}

func TestIndentShapeNarrowsInner(t *testing.T) {
	inner := RectShape{X0: FromPixels(0), X1: FromPixels(100)}
	s := IndentShape{Inner: inner, LeftInset: FromPixels(10), RightInset: FromPixels(20)}
	if got := s.Left(0, 10); got != FromPixels(10) {
		t.Errorf("Left = %vpx, want 10px", ToPixels(got))
	}
	if got := s.Right(0, 10); got != FromPixels(80) {
		t.Errorf("Right = %vpx, want 80px", ToPixels(got))
	}
}

func TestShiftShapeOffsetsVerticalAxis(t *testing.T) {
	// inner is wider above y=50 than below it; shifting by dy should move
	// the boundary in the outer shape's coordinate space.
	inner := steppedShape{split: FromPixels(50), narrow: FromPixels(10), wide: FromPixels(100)}
	s := ShiftShape{Inner: inner, DY: FromPixels(50)}

	if got := s.Right(-1, 0); got != FromPixels(100) {
		t.Errorf("at outer top=-1 unit (inner 3199 units, still before the 3200-unit split), want wide bound 100px, got %vpx", ToPixels(got))
	}
	if got := s.Right(1, 2); got != FromPixels(10) {
		t.Errorf("at outer top=1 unit (inner 3201 units, past the split), want narrow bound 10px, got %vpx", ToPixels(got))
	}
}

// steppedShape is a tiny test fixture whose Right bound narrows once top
// crosses split, used to prove ShiftShape actually translates the queried
// interval before delegating.
type steppedShape struct {
	split, narrow, wide Unit
}

func (s steppedShape) Left(top, bottom Unit) Unit  { return 0 }
func (s steppedShape) Left2(top, bottom Unit) Unit { return 0 }
func (s steppedShape) Right(top, bottom Unit) Unit {
	if top < s.split {
		return s.wide
	}
	return s.narrow
}
func (s steppedShape) Right2(top, bottom Unit) Unit { return s.wide }
