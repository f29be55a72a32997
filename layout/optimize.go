package layout

import "math"

// lineTightness mirrors §4.6's four-way classification of how far a
// candidate line's fill is from its natural width.
type lineTightness int

const (
	tight lineTightness = iota
	decent
	loose
	veryLoose
)

type dpNode struct {
	from       int
	demerits   float64
	asc, desc  Unit
	width      Unit
	spaceCount int
	y          Unit
	force      bool
	tightness  lineTightness
	hyphen     bool
	valid      bool
}

// optimizeAssemble implements §4.6: break positions are nodes in a DAG;
// for each candidate end, scan candidate starts in decreasing order until
// the line overflows, scoring each with the demerits formula below, and
// keep the predecessor that minimizes cumulative demerits. At each forced
// break the batch backtraces to its start, emits every line, and restarts
// the DP so memory stays bounded by one batch rather than the whole
// paragraph.
func optimizeAssemble(runs []Run, shape Shape, props *Properties, ystart Unit) *TextLayout {
	out := &TextLayout{FirstBaseline: -1}
	ypos := ystart
	n := len(runs)
	batchStart := 0
	firstLineOfParagraph := true
	prevTightness := decent
	prevHyphen := false

	for batchStart < n {
		local := runs[batchStart:]
		m := len(local)

		var breakPos []int
		for k := 1; k <= m; k++ {
			if k == m {
				breakPos = append(breakPos, k)
				break
			}
			cls := local[k-1].BreakAfter
			if cls == AllowBreak || cls == MustBreak {
				breakPos = append(breakPos, k)
			}
		}

		positions := append([]int{0}, breakPos...)
		best := make(map[int]dpNode, len(positions))
		best[0] = dpNode{from: -1, y: ypos, tightness: prevTightness, hyphen: prevHyphen, valid: true}

		var forcedAt = -1
		for _, i := range breakPos {
			node := bestPredecessor(local, positions, best, i, shape, props, firstLineOfParagraph)
			best[i] = node
			forced := i == m || local[i-1].BreakAfter == MustBreak
			if forced {
				forcedAt = i
				break
			}
		}
		if forcedAt == -1 {
			forcedAt = breakPos[len(breakPos)-1]
		}

		segments := backtrace(best, forcedAt)
		for _, seg := range segments {
			_, asc, desc := measureRuns(local, seg.from, seg.to)
			isLast := batchStart+seg.to == n
			addLine(out, local, seg.from, seg.to, shape, props, ypos, firstLineOfParagraph, isLast, true)
			ypos += asc - desc
			firstLineOfParagraph = false
		}
		if last, ok := best[forcedAt]; ok {
			prevTightness = last.tightness
			prevHyphen = last.hyphen
		}

		batchStart += forcedAt
	}

	out.Height = ypos - ystart
	if out.FirstBaseline < 0 {
		out.FirstBaseline = ystart
	}
	finalizeBounds(out, shape, ystart, ypos)
	return out
}

type segment struct{ from, to int }

func backtrace(best map[int]dpNode, end int) []segment {
	var segs []segment
	for cur := end; cur > 0; {
		node := best[cur]
		segs = append(segs, segment{from: node.from, to: cur})
		cur = node.from
	}
	for i, j := 0, len(segs)-1; i < j; i, j = i+1, j-1 {
		segs[i], segs[j] = segs[j], segs[i]
	}
	return segs
}

func bestPredecessor(local []Run, positions []int, best map[int]dpNode, i int, shape Shape, props *Properties, firstLineOfParagraph bool) dpNode {
	result := dpNode{demerits: math.Inf(1)}

	for k := len(positions) - 1; k >= 0; k-- {
		s := positions[k]
		if s >= i {
			continue
		}
		pred, ok := best[s]
		if !ok || !pred.valid {
			continue
		}

		width, spaceWidth, asc, desc, spaceCount, endsHyphen := measureOptimized(local, s, i)
		top := pred.y
		bottom := top + asc - desc
		avail := shape.Right(top, bottom) - shape.Left(top, bottom)
		if firstLineOfParagraph && s == 0 {
			avail -= props.FirstLineIndent
		}

		var optimalFillin Unit
		if spaceWidth != 0 {
			optimalFillin = spaceWidth - width
		}
		fillin := avail - width

		var badness float64
		if optimalFillin != 0 {
			ratio := float64(absUnit(fillin-optimalFillin)) / float64(optimalFillin)
			badness = 100 * ratio * ratio * ratio
		} else if fillin != 0 {
			badness = 100
		}
		if badness < 0 {
			badness = -badness
		}

		var tn lineTightness
		switch {
		case badness >= 100:
			tn = veryLoose
		case badness >= 13:
			if fillin > optimalFillin {
				tn = loose
			} else {
				tn = tight
			}
		default:
			tn = decent
		}

		demerits := math.Pow(10+badness, 2)
		if pred.hyphen && endsHyphen {
			demerits += 10000
		}
		diff := int(tn) - int(pred.tightness)
		if diff < 0 {
			diff = -diff
		}
		if diff > 1 {
			demerits += 10000
		} else if diff == 1 {
			demerits += 5000
		}

		forced := i == len(local) || local[i-1].BreakAfter == MustBreak
		if forced {
			if width > avail/3 {
				demerits = pred.demerits
			} else {
				demerits = pred.demerits + 100000
			}
		} else {
			demerits = pred.demerits + demerits
		}

		if demerits < result.demerits {
			result = dpNode{
				from: s, demerits: demerits,
				asc: asc, desc: desc, width: width, spaceCount: spaceCount,
				y: bottom, force: forced, tightness: tn, hyphen: endsHyphen,
				valid: true,
			}
		}

		if width > avail {
			break
		}
	}

	if !result.valid {
		// No predecessor was scored at all: fall back to the
		// immediately preceding break position so the line is still
		// emitted, per the oversized-run fallback noted for the greedy
		// assembler and carried over here.
		s := 0
		for _, p := range positions {
			if q, ok := best[p]; ok && q.valid && p < i {
				s = p
			}
		}
		pred := best[s]
		width, _, asc, desc, spaceCount, endsHyphen := measureOptimized(local, s, i)
		result = dpNode{
			from: s, demerits: pred.demerits + 100000,
			asc: asc, desc: desc, width: width, spaceCount: spaceCount,
			y: pred.y + asc - desc, force: true, tightness: veryLoose, hyphen: endsHyphen,
			valid: true,
		}
	}

	return result
}

// measureOptimized computes the §4.6 line metrics over runs [s,i) of
// local, trimming leading/trailing space runs and including a shy run's
// width only when it is the terminal run of the segment.
func measureOptimized(local []Run, s, i int) (width, spaceWidth, asc, desc Unit, spaceCount int, endsHyphen bool) {
	start, end := s, i
	for start < end && local[start].IsSpace {
		start++
	}
	for end > start && local[end-1].IsSpace {
		end--
	}

	var nonSpace Unit
	for k := start; k < end; k++ {
		r := local[k]
		if r.IsShy && k != i-1 {
			continue
		}
		asc = maxUnit(asc, r.Ascender)
		desc = minUnit(desc, r.Descender)
		if r.IsSpace {
			spaceWidth += r.DX
			spaceCount++
		} else {
			nonSpace += r.DX
		}
	}
	width = nonSpace + (spaceWidth*9)/10
	endsHyphen = i > 0 && local[i-1].IsShy
	return width, spaceWidth, asc, desc, spaceCount, endsHyphen
}
