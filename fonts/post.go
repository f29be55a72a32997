package fonts

import "encoding/binary"

// readPostMetrics hand-parses the sfnt table directory to locate the
// 'post' table and reads its UnderlinePosition/UnderlineThickness fields
// (bytes 8:10 and 10:12 of the table), the way
// boxesandglue-textshape/ot/post.go reads the same fields once its own
// table-directory walk (ot/font.go's parseOffsetTable) has handed it the
// table's raw bytes. golang.org/x/image/font/sfnt's Metrics carries
// Ascent/Descent/XHeight/CapHeight only, so the underline fields have to
// come from the raw font bytes instead.
//
// pos and thick are returned scaled to pixels at sizePx; ok is false if
// the font has no readable post table, in which case the caller should
// fall back to a derived heuristic.
func readPostMetrics(data []byte, unitsPerEm, sizePx float64) (pos, thick float64, ok bool) {
	if len(data) < 12 || unitsPerEm <= 0 {
		return 0, 0, false
	}
	numTables := int(binary.BigEndian.Uint16(data[4:6]))
	const recSize = 16
	dirStart := 12
	if dirStart+numTables*recSize > len(data) {
		return 0, 0, false
	}
	for i := 0; i < numTables; i++ {
		rec := data[dirStart+i*recSize : dirStart+(i+1)*recSize]
		if string(rec[0:4]) != "post" {
			continue
		}
		offset := binary.BigEndian.Uint32(rec[8:12])
		length := binary.BigEndian.Uint32(rec[12:16])
		end := uint64(offset) + uint64(length)
		if length < 12 || end > uint64(len(data)) {
			return 0, 0, false
		}
		post := data[offset : offset+12]
		scale := sizePx / unitsPerEm
		rawPos := float64(int16(binary.BigEndian.Uint16(post[8:10])))
		rawThick := float64(int16(binary.BigEndian.Uint16(post[10:12])))
		return rawPos * scale, rawThick * scale, true
	}
	return 0, 0, false
}
