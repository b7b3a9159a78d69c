package fai

// span is the physical byte range backing a logical [start, stop) range.
type span struct {
	off int64 // first byte to read
	n   int   // bytes to consume, terminators included
}

// readSpan translates logical [start, stop) of rec into the bytes to read.
// Every full line crossed contributes LineTail terminator bytes.
func readSpan(rec IndexRecord, start, stop int) span {
	if stop <= start || rec.BasesPerLine == 0 {
		return span{off: rec.DataStart + int64(start)}
	}
	tail := rec.LineTail()
	nlStart := start / rec.BasesPerLine
	nlStop := stop / rec.BasesPerLine
	return span{
		off: rec.DataStart + int64(start) + int64(nlStart)*int64(tail),
		n:   (stop - start) + (nlStop-nlStart)*tail,
	}
}

// chunk is one contiguous write within a single physical line.
type chunk struct {
	off  int64
	from int // offset into the replacement
	to   int
}

// writeChunks splits a write of n symbols at logical start into per-line
// chunks. The first chunk fills the rest of the starting line; each later
// chunk starts at the beginning of the next line, whose offset is derived
// from the line number rather than from the previous chunk's end.
func writeChunks(rec IndexRecord, start, n int) []chunk {
	if n <= 0 || rec.BasesPerLine == 0 {
		return nil
	}
	bpl := rec.BasesPerLine
	line := start / bpl
	first := (line+1)*bpl - start
	if first > n {
		first = n
	}
	out := []chunk{{
		off:  rec.DataStart + int64(start) + int64(line)*int64(rec.LineTail()),
		from: 0,
		to:   first,
	}}
	for i := first; i < n; i += bpl {
		line++
		end := i + bpl
		if end > n {
			end = n
		}
		out = append(out, chunk{
			off:  rec.DataStart + int64(line)*int64(rec.BytesPerLine),
			from: i,
			to:   end,
		})
	}
	return out
}
