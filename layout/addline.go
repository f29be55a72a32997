package layout

// addLine implements §4.7: given the run-index range [a,b) chosen for one
// line, reorder it into visual order, choose the alignment offset and
// space-stretch amount, position every run's commands absolutely, merge
// link rectangles into the layout's link table, and append commands in
// back-to-front paint order.
//
// smallSpace selects the optimizer's small-space pen advance: a space
// run advances the pen by 9/10 of its DX instead of the full width, to
// stay consistent with measureOptimized's identical 9/10 discount on
// space-run width when the line-break optimizer judged this line fit the
// shape. greedy.go never sets it, since the greedy measurer it matches
// against uses full-width spaces throughout.
func addLine(out *TextLayout, runs []Run, a, b int, shape Shape, props *Properties, ypos Unit, first, isLast, smallSpace bool) {
	_, asc, desc := measureRuns(runs, a, b)
	top, bottom := ypos, ypos+asc-desc

	order := visualOrder(runs, a, b)

	width, spaceCount := lineMetrics(runs, a, b, smallSpace)
	left := shape.Left(top, bottom)
	right := shape.Right(top, bottom)
	if first {
		left += props.FirstLineIndent
	}
	available := right - left - width

	var xstart, spaceAdder Unit
	switch props.Alignment {
	case AlignLeft:
		xstart = left
	case AlignRight:
		xstart = left + available
	case AlignCenter:
		xstart = left + available/2
	case JustifyLeft:
		xstart = left
		if !isLast && spaceCount > 0 {
			spaceAdder = available / Unit(spaceCount)
		}
	case JustifyRight:
		xstart = left + available
		if !isLast && spaceCount > 0 {
			spaceAdder = available / Unit(spaceCount)
			xstart = left // a fully-stretched line spans exactly [left, right]
		}
	}

	if out.FirstBaseline < 0 {
		out.FirstBaseline = top + asc
	}

	pen := xstart

	for _, idx := range order {
		r := runs[idx]
		if r.IsShy && idx != b-1 {
			continue
		}

		runPenX := pen
		for _, c := range r.Commands {
			c.X += runPenX
			c.Y += top + asc
			if c.Kind == DrawRect && r.IsSpace {
				c.W += spaceAdder
			}
			out.Commands = append(out.Commands, c)
		}
		for _, lk := range r.Links {
			rect := lk.Rect
			rect.X += runPenX
			rect.Y += top + asc
			if r.IsSpace {
				rect.W += spaceAdder
			}
			mergeLink(out, props, lk.LinkID, rect)
		}

		pen += runAdvance(r, smallSpace)
		if r.IsSpace {
			pen += spaceAdder
		}
	}

	reorderByLayer(out, len(out.Commands)-countCommands(runs, a, b))

	updateBounds(out, left, right)
}

func countCommands(runs []Run, a, b int) int {
	n := 0
	for i := a; i < b; i++ {
		if runs[i].IsShy && i != b-1 {
			continue
		}
		n += len(runs[i].Commands)
	}
	return n
}

// reorderByLayer re-sorts the commands just appended for one line (the
// slice out.Commands[from:]) so they paint in the order step 5 of §4.7
// demands: from the line's highest layer down to 0, so shadows — which
// were assigned larger layer numbers — paint before their glyph.
func reorderByLayer(out *TextLayout, from int) {
	if from < 0 || from >= len(out.Commands) {
		return
	}
	tail := out.Commands[from:]
	maxLayer := 0
	for _, c := range tail {
		if c.Layer > maxLayer {
			maxLayer = c.Layer
		}
	}
	ordered := make([]DrawCommand, 0, len(tail))
	for layer := maxLayer; layer >= 0; layer-- {
		for _, c := range tail {
			if c.Layer == layer {
				ordered = append(ordered, c)
			}
		}
	}
	copy(tail, ordered)
}

func mergeLink(out *TextLayout, props *Properties, linkID int, rect LinkRect) {
	if linkID <= 0 || linkID > len(props.Links) {
		return
	}
	url := props.Links[linkID-1]
	for i := range out.Links {
		if out.Links[i].URL == url {
			out.Links[i].Rects = append(out.Links[i].Rects, rect)
			return
		}
	}
	out.Links = append(out.Links, LinkRecord{URL: url, Rects: []LinkRect{rect}})
}

func updateBounds(out *TextLayout, left, right Unit) {
	if !out.boundsSet {
		out.Left, out.Right = left, right
		out.boundsSet = true
		return
	}
	out.Left = minUnit(out.Left, left)
	out.Right = maxUnit(out.Right, right)
}

// lineMetrics sums run widths (excluding a non-terminal shy run) and
// counts space runs, for use by width fitting and justification. When
// smallSpace is set, space runs contribute their 9/10-discounted width,
// matching the pen advance addLine itself uses below.
func lineMetrics(runs []Run, a, b int, smallSpace bool) (width Unit, spaceCount int) {
	for i := a; i < b; i++ {
		r := runs[i]
		if r.IsShy && i != b-1 {
			continue
		}
		width += runAdvance(r, smallSpace)
		if r.IsSpace {
			spaceCount++
		}
	}
	return width, spaceCount
}

// runAdvance is the pen advance contributed by r's own glyphs: r.DX, or
// 9/10 of it for a space run under the optimizer's small-space mode.
func runAdvance(r Run, smallSpace bool) Unit {
	if smallSpace && r.IsSpace {
		return (9 * r.DX) / 10
	}
	return r.DX
}

// visualOrder implements the level-based reversal algorithm: find the
// maximum embedding level present, then for each level from max-1 down to
// 0, reverse every maximal contiguous subrange whose runs all have a level
// greater than that level.
func visualOrder(runs []Run, a, b int) []int {
	order := make([]int, 0, b-a)
	for i := a; i < b; i++ {
		order = append(order, i)
	}

	maxLevel := 0
	for _, i := range order {
		if runs[i].Level > maxLevel {
			maxLevel = runs[i].Level
		}
	}

	for level := maxLevel - 1; level >= 0; level-- {
		i := 0
		for i < len(order) {
			if runs[order[i]].Level > level {
				j := i
				for j < len(order) && runs[order[j]].Level > level {
					j++
				}
				reverseInts(order[i:j])
				i = j
			} else {
				i++
			}
		}
	}
	return order
}

func reverseInts(s []int) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

func finalizeBounds(out *TextLayout, shape Shape, ystart, yend Unit) {
	l2 := shape.Left2(ystart, yend)
	r2 := shape.Right2(ystart, yend)
	updateBounds(out, l2, r2)
}
