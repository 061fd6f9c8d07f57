package deflate

// bitReader is a cursor over a byte slice with a wide bit accumulator,
// serving the inflater (spec §4.1). It never owns the underlying input
// slice; the caller (the Inflater, via a Stream) advances next_in/avail_in
// as bytes are pulled into the accumulator, which is what lets a suspended
// inflate resume bit-for-bit identical to an uninterrupted call: buf and
// nbits are the entire state that crosses a suspension point.
type bitReader struct {
	buf   uint64 // bit accumulator; bits are appended at position nbits
	nbits uint   // number of valid low bits in buf, 0..63
}

// fill tries to make at least need bits available in the accumulator,
// pulling whole bytes from the stream's input cursor. DEFLATE streams
// bits little-endian: the first bit of each byte lands in the lowest
// unused position of buf.
//
// If the input is exhausted and haveMoreInput is true, fill stops short
// and returns false: the caller must suspend with NeedsMoreInput. If
// haveMoreInput is false (the caller flushed with Finish and supplied
// everything it has), fill instead lets the missing bits stand in as
// zero and returns true, since the stored-block and end-of-stream paths
// tolerate reading past the last meaningful bit.
func (b *bitReader) fill(s *Stream, need uint, haveMoreInput bool) bool {
	for b.nbits < need {
		if len(s.nextIn) == 0 {
			if haveMoreInput {
				return false
			}
			return true
		}
		b.buf |= uint64(s.nextIn[0]) << b.nbits
		s.nextIn = s.nextIn[1:]
		s.totalIn++
		b.nbits += 8
	}
	return true
}

// peek returns the low n bits of the accumulator without consuming them.
func (b *bitReader) peek(n uint) uint32 {
	return uint32(b.buf & ((1 << n) - 1))
}

// drop discards the low n bits of the accumulator.
func (b *bitReader) drop(n uint) {
	b.buf >>= n
	b.nbits -= n
}

// take peeks and drops n bits in one step.
func (b *bitReader) take(n uint) uint32 {
	v := b.peek(n)
	b.drop(n)
	return v
}

// alignByte discards whatever partial bits remain in the current byte,
// leaving the accumulator positioned at the next byte boundary.
func (b *bitReader) alignByte() {
	drop := b.nbits & 7
	b.drop(drop)
}
