package layout

// greedyAssemble implements §4.5: fill lines left-to-right, testing at each
// legal break position whether the accumulated width still fits the flow
// shape at the predicted line height, and falling back to an oversized
// single-run line rather than ever emitting an empty one.
func greedyAssemble(runs []Run, shape Shape, props *Properties, ystart Unit) *TextLayout {
	out := &TextLayout{FirstBaseline: -1}
	ypos := ystart
	i := 0
	n := len(runs)
	first := true

	for i < n {
		for i < n && runs[i].IsSpace && !isLineEnder(runs[i]) {
			i++
		}
		if i >= n {
			break
		}

		start := i
		lastGoodEnd := -1
		j := i
		for j < n {
			j++
			cls := runs[j-1].BreakAfter
			if cls != AllowBreak && cls != MustBreak && j < n {
				continue
			}

			width, asc, desc := measureRuns(runs, start, j)
			avail := shape.Right(ypos, ypos+asc-desc) - shape.Left(ypos, ypos+asc-desc)
			if first {
				avail -= props.FirstLineIndent
			}

			if width <= avail || lastGoodEnd == -1 {
				lastGoodEnd = j
			} else {
				j = lastGoodEnd
				break
			}

			if cls == MustBreak {
				break
			}
		}
		if lastGoodEnd == -1 {
			lastGoodEnd = j
		}

		end := lastGoodEnd
		_, asc, desc := measureRuns(runs, start, end)
		addLine(out, runs, start, end, shape, props, ypos, first, end == n, false)
		ypos += asc - desc
		first = false
		i = end
	}

	out.Height = ypos - ystart
	if out.FirstBaseline < 0 {
		out.FirstBaseline = ystart
	}
	finalizeBounds(out, shape, ystart, ypos)
	return out
}

func isLineEnder(r Run) bool {
	return r.BreakAfter == MustBreak
}

// measureRuns sums width/ascender/descender over [a,b). Space runs count
// like any other run (greedyAssemble skips leading ones before calling);
// a shy run is skipped unless it is the very last run in the slice (it
// only shows when it terminates the line).
func measureRuns(runs []Run, a, b int) (width, asc, desc Unit) {
	for i := a; i < b; i++ {
		r := runs[i]
		if r.IsShy && i != b-1 {
			continue
		}
		width += r.DX
		asc = maxUnit(asc, r.Ascender)
		desc = minUnit(desc, r.Descender)
	}
	return width, asc, desc
}
