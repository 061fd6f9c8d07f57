package deflate

import "errors"

// Inflater is a resumable DEFLATE/zlib decompressor, modeled on zlib's
// inflate.c mode-switch rather than miniz's macro-based coroutine: each
// suspension point is an explicit state in inflateMode, and every field a
// partially-decoded symbol needs survives on the Inflater itself, so a
// call that returns for lack of input or output resumes exactly where it
// left off on the next call (spec §4.4, §5 "Suspension points").
type inflateMode int

const (
	modeZlibHeader inflateMode = iota
	modeBlockHeader
	modeStoredAlign
	modeStoredLen
	modeStoredCopy
	modeTableSizes
	modeCLLengths
	modeCodeLengths
	modeBuildTables
	modeSymbol
	modeEmitLiteral
	modeLenExtra
	modeDistSymbol
	modeDistExtra
	modeMatchCopy
	modeBlockEnd
	modeCheckAlign
	modeCheckBytes
	modeDone
	modeBad
)

// errSuspendInput and errSuspendOutput are sentinel, unexported signals
// from step(): they never escape Inflate, they only tell its driving loop
// why no forward progress was possible this round.
var (
	errSuspendInput  = errors.New("deflate: need more input")
	errSuspendOutput = errors.New("deflate: need more output room")
)

// Inflater decodes one DEFLATE or zlib stream. The zero value is not
// usable; construct with NewInflater.
type Inflater struct {
	mode inflateMode
	wrap Wrap

	br bitReader

	final uint32
	btype uint32

	// dynamic block header
	hlit, hdist, hclen uint32
	clIdx              uint32
	clLengths          [maxHuffSymbolsCL]uint8
	clTable            huffTable
	allLengths         [maxHuffSymbolsLit + maxHuffSymbolsDist]uint8
	lenIdx             uint32

	litTable  huffTable
	distTable huffTable

	// stored block
	storedLen uint32

	// symbol decode scratch
	pendingByte byte
	lengthSym   int
	distSym     int
	length      int
	dist        int

	// sliding output window: a 32 KiB ring plus the bookkeeping needed to
	// drain it into the caller's output buffer incrementally.
	dict    [windowSize]byte
	pos     uint64 // absolute count of bytes decompressed so far
	flushed uint64 // absolute count of bytes already copied into a Stream

	adler  uint32 // running checksum over bytes emitted so far
	zadler uint32 // unused, kept for symmetry with the trailer read

	doneReturned bool

	err error
}

// NewInflater constructs a ready-to-use Inflater for the given wrapping.
func NewInflater(wrap Wrap) *Inflater {
	inf := &Inflater{}
	inf.Reset(wrap)
	return inf
}

// Reset returns the Inflater to its initial state, ready to decode a new
// stream with the given wrapping.
func (inf *Inflater) Reset(wrap Wrap) {
	*inf = Inflater{wrap: wrap, adler: 1}
	if wrap == Zlib {
		inf.mode = modeZlibHeader
	} else {
		inf.mode = modeBlockHeader
	}
}

func (inf *Inflater) ringFull() bool { return inf.pos-inf.flushed >= windowSize }

func (inf *Inflater) emit(b byte) {
	inf.dict[inf.pos&windowMask] = b
	inf.pos++
}

// flushOutput copies whatever has been decompressed but not yet delivered
// into s.nextOut, as far as there is room, updating the running Adler-32
// over exactly the bytes that cross the boundary into the caller's buffer.
func (inf *Inflater) flushOutput(s *Stream) {
	for inf.flushed < inf.pos && len(s.nextOut) > 0 {
		start := inf.flushed & windowMask
		avail := inf.pos - inf.flushed
		run := uint64(windowSize) - start
		if run > avail {
			run = avail
		}
		if run > uint64(len(s.nextOut)) {
			run = uint64(len(s.nextOut))
		}
		copy(s.nextOut[:run], inf.dict[start:start+run])
		if inf.wrap == Zlib {
			inf.adler = Adler32(inf.adler, inf.dict[start:start+run])
			s.Adler = inf.adler
		}
		s.nextOut = s.nextOut[run:]
		s.totalOut += run
		inf.flushed += run
	}
}

// Inflate consumes s.nextIn and produces into s.nextOut, returning a
// Status describing what happened. On StatusOK the caller should top up
// whichever of s.nextIn/s.nextOut is now empty and call again; StreamEnd
// means the whole stream (including, for Zlib wraps, its trailer) has
// been verified and delivered.
func (inf *Inflater) Inflate(s *Stream, flush Flush) (Status, error) {
	if inf.mode == modeBad {
		return StatusDataError, inf.err
	}
	if inf.doneReturned {
		return StatusStreamError, ErrStreamError
	}
	if flush == PartialFlush {
		flush = SyncFlush
	}
	if flush != NoFlush && flush != SyncFlush && flush != FullFlush && flush != Finish {
		return StatusParamError, ErrInvalidFlush
	}
	haveMoreInput := flush != Finish
	origAvailIn := len(s.nextIn)

	for {
		inf.flushOutput(s)

		if inf.mode == modeDone {
			if inf.flushed == inf.pos {
				inf.doneReturned = true
				return StatusStreamEnd, nil
			}
			return StatusOK, nil
		}
		if inf.ringFull() {
			return StatusOK, nil
		}
		if len(s.nextOut) == 0 && inf.flushed < inf.pos {
			return StatusOK, nil
		}

		err := inf.step(s, haveMoreInput)
		switch err {
		case nil:
			continue
		case errSuspendOutput:
			return StatusOK, nil
		case errSuspendInput:
			if origAvailIn == 0 {
				return StatusBufError, nil
			}
			return StatusOK, nil
		default:
			inf.mode = modeBad
			inf.err = err
			return StatusDataError, err
		}
	}
}

// step performs exactly one state transition's worth of work, returning
// errSuspendInput/errSuspendOutput to request a resumable pause, or a
// data error if the stream is malformed.
func (inf *Inflater) step(s *Stream, haveMoreInput bool) error {
	switch inf.mode {
	case modeZlibHeader:
		if !inf.br.fill(s, 16, haveMoreInput) {
			return errSuspendInput
		}
		hdr := inf.br.take(16)
		cmf := hdr & 0xFF
		flg := (hdr >> 8) & 0xFF
		if (cmf*256+flg)%31 != 0 || flg&0x20 != 0 || cmf&0x0F != 8 || (cmf>>4) > 7 {
			return ErrInvalidZlibHeader
		}
		inf.mode = modeBlockHeader
		return nil

	case modeBlockHeader:
		if !inf.br.fill(s, 3, haveMoreInput) {
			return errSuspendInput
		}
		v := inf.br.take(3)
		inf.final = v & 1
		inf.btype = v >> 1
		switch inf.btype {
		case 0:
			inf.mode = modeStoredAlign
		case 1:
			inf.installFixedTables()
			inf.mode = modeSymbol
		case 2:
			inf.mode = modeTableSizes
		default:
			return ErrInvalidBlockType
		}
		return nil

	case modeStoredAlign:
		inf.br.alignByte()
		inf.mode = modeStoredLen
		return nil

	case modeStoredLen:
		if !inf.br.fill(s, 32, haveMoreInput) {
			return errSuspendInput
		}
		v := inf.br.take(32)
		length := v & 0xFFFF
		nlen := (v >> 16) & 0xFFFF
		if length != (^nlen & 0xFFFF) {
			return ErrBadStoredBlock
		}
		inf.storedLen = length
		inf.mode = modeStoredCopy
		return nil

	case modeStoredCopy:
		for inf.storedLen > 0 && inf.br.nbits >= 8 {
			if inf.ringFull() {
				return errSuspendOutput
			}
			inf.emit(byte(inf.br.take(8)))
			inf.storedLen--
		}
		for inf.storedLen > 0 {
			if inf.ringFull() {
				return errSuspendOutput
			}
			if len(s.nextIn) == 0 {
				if haveMoreInput {
					return errSuspendInput
				}
				return ErrBadStoredBlock
			}
			b := s.nextIn[0]
			s.nextIn = s.nextIn[1:]
			s.totalIn++
			inf.emit(b)
			inf.storedLen--
		}
		inf.mode = modeBlockEnd
		return nil

	case modeTableSizes:
		if !inf.br.fill(s, 14, haveMoreInput) {
			return errSuspendInput
		}
		inf.hlit = inf.br.take(5) + 257
		inf.hdist = inf.br.take(5) + 1
		inf.hclen = inf.br.take(4) + 4
		inf.clIdx = 0
		for i := range inf.clLengths {
			inf.clLengths[i] = 0
		}
		inf.mode = modeCLLengths
		return nil

	case modeCLLengths:
		for inf.clIdx < inf.hclen {
			if !inf.br.fill(s, 3, haveMoreInput) {
				return errSuspendInput
			}
			inf.clLengths[codeLengthOrder[inf.clIdx]] = uint8(inf.br.take(3))
			inf.clIdx++
		}
		inf.clTable.reset()
		copy(inf.clTable.codeSize[:maxHuffSymbolsCL], inf.clLengths[:])
		if err := inf.clTable.build(maxHuffSymbolsCL); err != nil {
			return err
		}
		inf.lenIdx = 0
		for i := range inf.allLengths {
			inf.allLengths[i] = 0
		}
		inf.mode = modeCodeLengths
		return nil

	case modeCodeLengths:
		total := inf.hlit + inf.hdist
		for inf.lenIdx < total {
			if !inf.br.fill(s, maxCodeLen, haveMoreInput) && haveMoreInput {
				return errSuspendInput
			}
			sym, length := inf.clTable.decode(&inf.br)
			inf.br.drop(length)
			switch {
			case sym < 16:
				inf.allLengths[inf.lenIdx] = uint8(sym)
				inf.lenIdx++
			case sym == 16:
				if inf.lenIdx == 0 {
					return ErrInvalidRepeatCode
				}
				if !inf.br.fill(s, 2, haveMoreInput) {
					return errSuspendInput
				}
				rep := inf.br.take(2) + 3
				prev := inf.allLengths[inf.lenIdx-1]
				for i := uint32(0); i < rep && inf.lenIdx < total; i++ {
					inf.allLengths[inf.lenIdx] = prev
					inf.lenIdx++
				}
			case sym == 17:
				if !inf.br.fill(s, 3, haveMoreInput) {
					return errSuspendInput
				}
				rep := inf.br.take(3) + 3
				for i := uint32(0); i < rep && inf.lenIdx < total; i++ {
					inf.allLengths[inf.lenIdx] = 0
					inf.lenIdx++
				}
			case sym == 18:
				if !inf.br.fill(s, 7, haveMoreInput) {
					return errSuspendInput
				}
				rep := inf.br.take(7) + 11
				for i := uint32(0); i < rep && inf.lenIdx < total; i++ {
					inf.allLengths[inf.lenIdx] = 0
					inf.lenIdx++
				}
			default:
				return ErrBadHuffmanTable
			}
		}
		inf.mode = modeBuildTables
		return nil

	case modeBuildTables:
		inf.litTable.reset()
		copy(inf.litTable.codeSize[:inf.hlit], inf.allLengths[:inf.hlit])
		if err := inf.litTable.build(int(inf.hlit)); err != nil {
			return err
		}
		inf.distTable.reset()
		copy(inf.distTable.codeSize[:inf.hdist], inf.allLengths[inf.hlit:inf.hlit+inf.hdist])
		if err := inf.distTable.build(int(inf.hdist)); err != nil {
			return err
		}
		inf.mode = modeSymbol
		return nil

	case modeSymbol:
		if !inf.br.fill(s, maxCodeLen, haveMoreInput) && haveMoreInput {
			return errSuspendInput
		}
		sym, length := inf.litTable.decode(&inf.br)
		inf.br.drop(length)
		switch {
		case sym < 256:
			inf.pendingByte = byte(sym)
			inf.mode = modeEmitLiteral
		case sym == 256:
			inf.mode = modeBlockEnd
		default:
			idx := sym - 257
			if idx < 0 || idx >= len(lengthBase) {
				return ErrBadHuffmanTable
			}
			inf.lengthSym = idx
			inf.mode = modeLenExtra
		}
		return nil

	case modeEmitLiteral:
		if inf.ringFull() {
			return errSuspendOutput
		}
		inf.emit(inf.pendingByte)
		inf.mode = modeSymbol
		return nil

	case modeLenExtra:
		n := lengthExtra[inf.lengthSym]
		var extra uint32
		if n > 0 {
			if !inf.br.fill(s, n, haveMoreInput) {
				return errSuspendInput
			}
			extra = inf.br.take(n)
		}
		inf.length = int(lengthBase[inf.lengthSym]) + int(extra)
		inf.mode = modeDistSymbol
		return nil

	case modeDistSymbol:
		if !inf.br.fill(s, maxCodeLen, haveMoreInput) && haveMoreInput {
			return errSuspendInput
		}
		sym, length := inf.distTable.decode(&inf.br)
		inf.br.drop(length)
		if sym < 0 || sym >= len(distBase) {
			return ErrBadHuffmanTable
		}
		inf.distSym = sym
		inf.mode = modeDistExtra
		return nil

	case modeDistExtra:
		n := distExtra[inf.distSym]
		var extra uint32
		if n > 0 {
			if !inf.br.fill(s, n, haveMoreInput) {
				return errSuspendInput
			}
			extra = inf.br.take(n)
		}
		dist := uint64(distBase[inf.distSym]) + uint64(extra)
		if dist > inf.pos || dist > maxDistance {
			return ErrDistanceTooFar
		}
		inf.dist = int(dist)
		inf.mode = modeMatchCopy
		return nil

	case modeMatchCopy:
		for inf.length > 0 {
			if inf.ringFull() {
				return errSuspendOutput
			}
			inf.emit(inf.dict[(inf.pos-uint64(inf.dist))&windowMask])
			inf.length--
		}
		inf.mode = modeSymbol
		return nil

	case modeBlockEnd:
		if inf.final != 0 {
			if inf.wrap == Zlib {
				inf.mode = modeCheckAlign
			} else {
				inf.mode = modeDone
			}
		} else {
			inf.mode = modeBlockHeader
		}
		return nil

	case modeCheckAlign:
		inf.br.alignByte()
		inf.mode = modeCheckBytes
		return nil

	case modeCheckBytes:
		if !inf.br.fill(s, 32, haveMoreInput) {
			return errSuspendInput
		}
		v := inf.br.take(32)
		trailer := uint32(byte(v))<<24 | uint32(byte(v>>8))<<16 | uint32(byte(v>>16))<<8 | uint32(byte(v>>24))
		if trailer != inf.adler {
			return ErrChecksumMismatch
		}
		inf.mode = modeDone
		return nil

	default:
		return ErrStreamError
	}
}

func (inf *Inflater) installFixedTables() {
	inf.litTable.reset()
	ll := fixedLitLengths()
	copy(inf.litTable.codeSize[:], ll[:])
	_ = inf.litTable.build(maxHuffSymbolsLit)
	inf.distTable.reset()
	dl := fixedDistLengths()
	copy(inf.distTable.codeSize[:32], dl[:32])
	_ = inf.distTable.build(32)
}
