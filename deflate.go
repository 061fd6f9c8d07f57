package deflate

// Deflater is a resumable DEFLATE/zlib compressor built on the matcher
// and block emitter above. Unlike the bit-exact resumable Inflater, it
// buffers each finished block's compressed bytes in pending and drains
// that into the caller's output across as many Deflate calls as it
// takes; this keeps the encoder's internal state (match tables, staged
// records) simple while still honoring the same small-output-buffer
// streaming contract the spec requires.
type Deflater struct {
	wrap  Wrap
	flags Flags

	mf  *matcher
	lzr *lzRecords

	parsedUpTo uint64 // matcher position up to which input has been tokenized
	blockStart uint64 // matcher position where the in-progress block began

	rawBuf []byte // buffered input for FlagForceAllRawBlocks (bypasses the matcher)

	pending []byte

	adler        uint32
	computeAdler bool

	headerWritten bool
	finished      bool
	doneReturned  bool
}

// NewDeflater constructs a ready-to-use Deflater with the given flags.
func NewDeflater(flags Flags) *Deflater {
	d := &Deflater{}
	d.Reset(flags)
	return d
}

// Reset returns the Deflater to its initial state for encoding a new
// stream with the given flags.
func (d *Deflater) Reset(flags Flags) {
	*d = Deflater{flags: flags, adler: 1}
	d.mf = newMatcher()
	d.lzr = newLZRecords()
	d.computeAdler = flags.Has(FlagComputeAdler32)
	if flags.Has(FlagWriteZlibHeader) {
		d.wrap = Zlib
	} else {
		d.wrap = Raw
	}
}

// Deflate consumes s.nextIn and produces into s.nextOut. Finish must be
// passed, eventually, for the stream to be closed out with its final
// block (and, for a Zlib wrap, its Adler-32 trailer); NoFlush/SyncFlush/
// FullFlush may be used any number of times first to feed input
// incrementally.
func (d *Deflater) Deflate(s *Stream, flush Flush) (Status, error) {
	if d.doneReturned {
		return StatusStreamError, ErrStreamError
	}
	if flush == PartialFlush {
		flush = SyncFlush
	}
	if flush != NoFlush && flush != SyncFlush && flush != FullFlush && flush != Finish {
		return StatusParamError, ErrInvalidFlush
	}

	if d.flags.Has(FlagForceAllRawBlocks) {
		return d.deflateStoredOnly(s, flush)
	}

	d.writeHeaderOnce()
	finish := flush == Finish

	// Feed the matcher in bounded increments, parsing and closing blocks
	// between them: acceptInput alone could hand the matcher an arbitrarily
	// large slice in one call, growing its window past what append's
	// compaction retains before blockStart has ever advanced, which would
	// make the blockStart-d.mf.base slice below underflow. Keeping each
	// increment well under the window's retention budget guarantees a
	// block is always closed (see the span check) before that can happen.
	for len(s.nextIn) > 0 {
		n := len(s.nextIn)
		if n > inputFeedChunk {
			n = inputFeedChunk
		}
		d.acceptInput(s, n)
		// Only the span cap applies mid-feed; the caller's flush request
		// is honored once, after all of this call's input has been fed,
		// so a SyncFlush/FullFlush on a large buffer still produces one
		// flush point rather than one per internal chunk.
		d.advanceAndClose(NoFlush, false)
	}

	d.advanceAndClose(flush, finish)

	return d.drain(s)
}

// advanceAndClose parses as much of the matcher's window as parse allows
// and closes the in-progress block whenever closeBlockIfDue finds it due,
// repeating until a parse call makes no further progress. A single
// parse+close pass isn't enough on its own: parse never lets a block's
// raw span pass maxStoredBlockSize (see the cap passed below), so once
// that span is reached mid-stream there can still be more already
// buffered, unparsed window data waiting behind it - this loop keeps
// closing and re-parsing until it drains that backlog or genuinely runs
// out of input, instead of letting a single Deflate call leave one
// oversized span straddling what should be several stored-sized blocks.
func (d *Deflater) advanceAndClose(flush Flush, finish bool) {
	for {
		cap := d.blockStart + maxStoredBlockSize
		prevParsed := d.parsedUpTo
		d.parse(finish, cap)
		final := finish && d.parsedUpTo == d.mf.absPos()
		prevBlockStart := d.blockStart
		d.closeBlockIfDue(flush, final)
		if d.finished || d.blockStart == prevBlockStart || d.parsedUpTo == prevParsed {
			return
		}
	}
}

// closeBlockIfDue emits the records staged since blockStart when flush
// demands it, the in-progress block's raw byte span has reached the
// 65535-byte limit a stored block's LEN field can name, or this is the
// final block of the stream. Record count alone is not a valid trigger:
// closing on record count rather than byte span would force extra block
// headers for match-heavy input well under 65535 bytes, and for
// incompressible (all-literal) input it let the encoder split a single
// 65535-byte stream into more than the one stored block spec.md §8's
// size-overhead law assumes.
func (d *Deflater) closeBlockIfDue(flush Flush, final bool) {
	if d.finished {
		return
	}
	shouldEmit := final ||
		flush == SyncFlush || flush == FullFlush ||
		d.parsedUpTo-d.blockStart >= maxStoredBlockSize
	if !shouldEmit {
		return
	}
	raw := d.mf.window[d.blockStart-d.mf.base : d.parsedUpTo-d.mf.base]
	d.pending = append(d.pending, d.buildBlock(final, raw)...)
	d.blockStart = d.parsedUpTo
	d.lzr.reset()
	if flush == FullFlush {
		d.mf.resetHashes()
	}
	if final {
		d.appendTrailer()
		d.finished = true
	}
}

func (d *Deflater) writeHeaderOnce() {
	if d.wrap == Zlib && !d.headerWritten {
		cmf, flg := zlibHeaderBytes()
		d.pending = append(d.pending, cmf, flg)
		d.headerWritten = true
	}
}

// inputFeedChunk bounds how much input Deflate hands the matcher per
// increment (see the loop in Deflate), keeping blockStart's staleness
// between close-checks well under matcher.go's keepBytes retention budget
// so a block can always be closed before the window compacts past it.
const inputFeedChunk = 4096

func (d *Deflater) acceptInput(s *Stream, n int) {
	if n == 0 {
		return
	}
	chunk := s.nextIn[:n]
	if d.computeAdler {
		d.adler = Adler32(d.adler, chunk)
		s.Adler = d.adler
	}
	d.mf.append(chunk)
	s.totalIn += uint64(n)
	s.nextIn = s.nextIn[n:]
}

func (d *Deflater) appendTrailer() {
	if d.wrap != Zlib {
		return
	}
	a := d.adler
	d.pending = append(d.pending, byte(a>>24), byte(a>>16), byte(a>>8), byte(a))
}

// drain copies as much of pending as s.nextOut has room for, and reports
// StreamEnd once the final block and trailer have been fully delivered.
func (d *Deflater) drain(s *Stream) (Status, error) {
	n := len(d.pending)
	if n > len(s.nextOut) {
		n = len(s.nextOut)
	}
	copy(s.nextOut, d.pending[:n])
	s.nextOut = s.nextOut[n:]
	s.totalOut += uint64(n)
	d.pending = d.pending[n:]

	if d.finished && len(d.pending) == 0 {
		d.doneReturned = true
		return StatusStreamEnd, nil
	}
	return StatusOK, nil
}

// buildBlock tries dynamic, fixed, and stored encodings of the records
// staged in d.lzr (plus the original bytes raw, for the stored fallback)
// and keeps whichever is smallest, per spec §4.6's cost comparison -
// except when a force-static/force-raw flag pins the choice.
func (d *Deflater) buildBlock(final bool, raw []byte) []byte {
	d.lzr.litFreq[256]++

	// Each block is written into its own bitWriter, so a non-final block
	// that ends mid-byte is followed by an empty stored block: that pads
	// the stream to a byte boundary without the decoder reading the
	// padding as the next block's header.
	seal := func(bw *bitWriter) []byte {
		if !final && bw.nbits > 0 {
			writeStoredBlock(bw, false, nil)
		}
		return finishBits(bw)
	}

	dynBW := &bitWriter{}
	writeDynamicBlock(dynBW, final, d.lzr)
	best := dynBW

	if d.flags.Has(FlagForceAllStaticBlocks) {
		fixedBW := &bitWriter{}
		writeFixedBlock(fixedBW, final, d.lzr)
		return seal(fixedBW)
	}

	fixedBW := &bitWriter{}
	writeFixedBlock(fixedBW, final, d.lzr)
	if fixedBW.bitLength() < best.bitLength() {
		best = fixedBW
	}

	if len(raw) <= maxStoredBlockSize {
		storedBits := uint64(len(raw)+5) * 8
		if storedBits < best.bitLength() {
			sbw := &bitWriter{}
			writeStoredBlock(sbw, final, raw)
			return seal(sbw)
		}
	}
	return seal(best)
}

// parse tokenizes window bytes from parsedUpTo up to either the safe
// lookahead boundary (absPos-maxMatchLen), or, when finish is set, all
// the way to the end of the window, using greedy or one-step-lazy
// matching per the flags word (spec §4.5).
// parse tokenizes buffered input into literal/match records up to cap,
// an absolute position the caller promises never to exceed - used to keep
// a single in-progress block's raw span within maxStoredBlockSize even
// when finish allows parsing all the way to the matcher's current
// position otherwise.
func (d *Deflater) parse(finish bool, cap uint64) {
	end := d.mf.absPos()
	limit := end
	if !finish {
		if end < uint64(maxMatchLen) {
			return
		}
		limit = end - uint64(maxMatchLen)
	}
	if limit > cap {
		limit = cap
	}
	if d.parsedUpTo >= limit {
		return
	}

	maxProbes := d.flags.MaxProbes()
	if maxProbes <= 0 {
		maxProbes = 1
	}
	greedy := d.flags.Has(FlagGreedyParsing) || d.flags.Has(FlagRLEMatches)
	rle := d.flags.Has(FlagRLEMatches)
	filter := d.flags.Has(FlagFilterMatches)

	p := d.parsedUpTo
	prevLen := minMatchLen - 1
	prevDist := 0
	haveByteAvailable := false

	for p < limit {
		lookahead := int(end - p)
		length, dist, ok := 0, 0, false
		if lookahead >= minMatchLen {
			if rle {
				length, ok = d.mf.findRLEMatch(p, lookahead)
				dist = 1
			} else {
				length, dist, ok = d.mf.findMatch(p, maxProbes, lookahead)
			}
			if ok && filter && length <= 5 {
				ok = false
			}
			if ok && greedy && length == minMatchLen && dist >= 8192 {
				ok = false
			}
		}
		if !ok {
			length = 0
		}
		d.mf.insert(p)

		if greedy {
			if length >= minMatchLen {
				d.lzr.addMatch(uint32(length), uint32(dist))
				for i := uint64(1); i < uint64(length) && p+i < end; i++ {
					d.mf.insert(p + i)
				}
				p += uint64(length)
			} else {
				d.lzr.addLiteral(d.mf.at(p))
				p++
			}
			continue
		}

		if prevLen >= minMatchLen && prevLen >= length {
			d.lzr.addMatch(uint32(prevLen), uint32(prevDist))
			for i := uint64(2); i < uint64(prevLen) && p-1+i < end; i++ {
				d.mf.insert(p - 1 + i)
			}
			p += uint64(prevLen) - 1
			haveByteAvailable = false
			prevLen = minMatchLen - 1
		} else {
			if haveByteAvailable {
				d.lzr.addLiteral(d.mf.at(p - 1))
			}
			prevLen = length
			prevDist = dist
			haveByteAvailable = true
			p++
		}
	}

	if !greedy && haveByteAvailable && p-1 < end {
		d.lzr.addLiteral(d.mf.at(p - 1))
	}
	if finish {
		for p < limit {
			d.lzr.addLiteral(d.mf.at(p))
			p++
		}
	}
	d.parsedUpTo = p
}

// deflateStoredOnly implements FlagForceAllRawBlocks (compression level
// 0): every block is a stored block, built straight from buffered input
// with no matching at all.
func (d *Deflater) deflateStoredOnly(s *Stream, flush Flush) (Status, error) {
	d.writeHeaderOnce()
	if len(s.nextIn) > 0 {
		if d.computeAdler {
			d.adler = Adler32(d.adler, s.nextIn)
			s.Adler = d.adler
		}
		d.rawBuf = append(d.rawBuf, s.nextIn...)
		s.totalIn += uint64(len(s.nextIn))
		s.nextIn = nil
	}

	for len(d.rawBuf) > maxStoredBlockSize {
		bw := &bitWriter{}
		writeStoredBlock(bw, false, d.rawBuf[:maxStoredBlockSize])
		d.pending = append(d.pending, finishBits(bw)...)
		d.rawBuf = d.rawBuf[maxStoredBlockSize:]
	}

	finish := flush == Finish
	switch {
	case finish && !d.finished:
		bw := &bitWriter{}
		writeStoredBlock(bw, true, d.rawBuf)
		d.pending = append(d.pending, finishBits(bw)...)
		d.rawBuf = nil
		d.appendTrailer()
		d.finished = true
	case (flush == SyncFlush || flush == FullFlush) && len(d.rawBuf) > 0:
		bw := &bitWriter{}
		writeStoredBlock(bw, false, d.rawBuf)
		d.pending = append(d.pending, finishBits(bw)...)
		d.rawBuf = nil
	}

	return d.drain(s)
}
