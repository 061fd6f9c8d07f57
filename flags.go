package deflate

// Wrap selects the container placed around the raw DEFLATE bitstream.
type Wrap int

const (
	// Raw selects bare RFC 1951 DEFLATE, no header or trailer.
	Raw Wrap = iota
	// Zlib selects the RFC 1950 envelope: a 2-byte header and a
	// trailing big-endian Adler-32 of the uncompressed data.
	Zlib
)

// Flush selects how aggressively Deflater.Deflate and Inflater.Inflate
// should flush their output before returning.
type Flush int

// Flush values, matching the streaming contract of spec §6.
const (
	NoFlush Flush = iota
	SyncFlush
	FullFlush
	Finish
	// PartialFlush is an alias for SyncFlush, kept for compatibility with
	// callers following the zlib naming convention.
	PartialFlush = SyncFlush
)

// Flags packs the deflater's tuning knobs into a single 32-bit word, per
// spec §6's "Deflate flag word" layout:
//
//	bits 0-11:  max probes (0..4095)
//	bit 12:     write zlib header
//	bit 13:     compute Adler-32
//	bit 14:     greedy parsing
//	bit 15:     non-deterministic init (accepted but ignored: the hash
//	            table is always cleared, so output stays deterministic)
//	bit 16:     RLE matches only (distance 1)
//	bit 17:     filter matches (discard length <= 5)
//	bit 18:     force all-static-Huffman blocks
//	bit 19:     force all-raw (stored) blocks
type Flags uint32

const (
	maxProbesMask = 0xFFF

	FlagWriteZlibHeader         Flags = 1 << 12
	FlagComputeAdler32          Flags = 1 << 13
	FlagGreedyParsing           Flags = 1 << 14
	FlagNonDeterministicParsing Flags = 1 << 15
	FlagRLEMatches              Flags = 1 << 16
	FlagFilterMatches           Flags = 1 << 17
	FlagForceAllStaticBlocks    Flags = 1 << 18
	FlagForceAllRawBlocks       Flags = 1 << 19
)

// MaxProbes returns the max-probe count packed into the low 12 bits.
func (f Flags) MaxProbes() int { return int(f & maxProbesMask) }

// Has reports whether every bit in mask is set.
func (f Flags) Has(mask Flags) bool { return f&mask == mask }

// defaultProbesForLevel maps a compression level 0..10 to a default max
// probe count, per spec §6.
var defaultProbesForLevel = [11]int{0, 1, 6, 32, 16, 32, 128, 256, 512, 768, 1500}

// CheckWindowBits validates a zlib-style window_bits parameter. This
// codec only ever implements the fixed 32 KiB window, so - matching
// mmz_inflateInit2/mmz_deflateInit2 exactly - the only accepted values
// are +15 (zlib-wrapped) and -15 (raw), returning ErrInvalidWindowBits
// for anything else rather than silently rounding to the nearest
// supported size.
func CheckWindowBits(windowBits int) (Wrap, error) {
	switch windowBits {
	case 15:
		return Zlib, nil
	case -15:
		return Raw, nil
	default:
		return 0, ErrInvalidWindowBits
	}
}

// FlagsForLevel builds a Flags word for compression level 0..10, with the
// zlib-wrap and Adler-32 bits set when wrap is true, matching the default level mapping and
// the level-0/level-1 special cases from spec §6.
func FlagsForLevel(level int, wrap bool) (Flags, error) {
	if level < 0 || level > 10 {
		return 0, ErrInvalidProbes
	}
	f := Flags(defaultProbesForLevel[level])
	if wrap {
		f |= FlagWriteZlibHeader | FlagComputeAdler32
	}
	switch level {
	case 0:
		f |= FlagForceAllRawBlocks
	case 1:
		f |= FlagGreedyParsing
	}
	return f, nil
}
