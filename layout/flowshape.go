package layout

// RectShape is the trivial rectangular flow shape: a fixed-width column
// with no vertical variation.
type RectShape struct {
	X0, X1 Unit
}

func (r RectShape) Left(top, bottom Unit) Unit  { return r.X0 }
func (r RectShape) Right(top, bottom Unit) Unit { return r.X1 }
func (r RectShape) Left2(top, bottom Unit) Unit  { return r.X0 }
func (r RectShape) Right2(top, bottom Unit) Unit { return r.X1 }

// IndentShape narrows an underlying shape by fixed left/right insets,
// composing the way spec.md's design notes describe: "a shifted shape
// wrapping a rectangular shape".
type IndentShape struct {
	Inner       Shape
	LeftInset   Unit
	RightInset  Unit
}

func (s IndentShape) Left(top, bottom Unit) Unit {
	return s.Inner.Left(top, bottom) + s.LeftInset
}

func (s IndentShape) Right(top, bottom Unit) Unit {
	return s.Inner.Right(top, bottom) - s.RightInset
}

func (s IndentShape) Left2(top, bottom Unit) Unit {
	return s.Inner.Left2(top, bottom) + s.LeftInset
}

func (s IndentShape) Right2(top, bottom Unit) Unit {
	return s.Inner.Right2(top, bottom) - s.RightInset
}

// ShiftShape offsets an underlying shape's vertical axis, letting a caller
// reuse one shape definition at a different y-origin (e.g. where a flowed
// paragraph continues below a figure).
type ShiftShape struct {
	Inner Shape
	DY    Unit
}

func (s ShiftShape) Left(top, bottom Unit) Unit {
	return s.Inner.Left(top+s.DY, bottom+s.DY)
}

func (s ShiftShape) Right(top, bottom Unit) Unit {
	return s.Inner.Right(top+s.DY, bottom+s.DY)
}

func (s ShiftShape) Left2(top, bottom Unit) Unit {
	return s.Inner.Left2(top+s.DY, bottom+s.DY)
}

func (s ShiftShape) Right2(top, bottom Unit) Unit {
	return s.Inner.Right2(top+s.DY, bottom+s.DY)
}
