package deflate

// matcher is the LZ77 match finder (spec §4.5): a hash-chain index over a
// sliding dictionary window. Positions are tracked as absolute stream
// offsets rather than the mirrored-tail / masked-pointer tricks the
// C original uses to avoid unaligned loads and wraparound branches -
// a Go slice doesn't need either, so the window is just an append-only
// buffer that is periodically compacted, and next/hash entries hold
// plain absolute offsets that stay valid across a compaction.
//
// The hash-chain shape (a hash table of most-recent positions plus a
// per-position "previous occurrence" chain) and the lazy one-token
// lookahead parse below are grounded in the vendored klauspost/compress
// flate matcher from other_examples/.
type matcher struct {
	window []byte
	base   uint64 // absolute position corresponding to window[0]

	hash [1 << 15]int64 // hash(3 bytes) -> most recent absolute position, or -1
	next [windowSize]int64
}

func newMatcher() *matcher {
	m := &matcher{}
	for i := range m.hash {
		m.hash[i] = -1
	}
	for i := range m.next {
		m.next[i] = -1
	}
	return m
}

func (m *matcher) resetHashes() {
	for i := range m.hash {
		m.hash[i] = -1
	}
	for i := range m.next {
		m.next[i] = -1
	}
}

func (m *matcher) absPos() uint64 { return m.base + uint64(len(m.window)) }

func (m *matcher) at(p uint64) byte { return m.window[p-m.base] }

// keepBytes is how much of the tail append's compaction retains. It needs
// more slack than the windowSize+maxMatchLen a single back-reference can
// span: Deflater.Deflate feeds the matcher in inputFeedChunk-sized
// increments and only checks whether to close the in-progress block
// between increments, so blockStart can trail the matcher's absPos by as
// much as maxStoredBlockSize (the block-close byte-span cap) plus one
// increment before the next check fires. keepBytes must stay comfortably
// above that so an append's compaction never trims bytes blockStart still
// refers to.
const keepBytes = maxStoredBlockSize * 3

// append grows the window with new input, compacting once it has grown
// far enough that the oldest bytes can no longer be reached by any legal
// back-reference.
func (m *matcher) append(b []byte) {
	m.window = append(m.window, b...)
	if len(m.window) > 2*keepBytes {
		drop := len(m.window) - keepBytes
		rest := make([]byte, len(m.window)-drop)
		copy(rest, m.window[drop:])
		m.window = rest
		m.base += uint64(drop)
	}
}

func hash3(b0, b1, b2 byte) uint32 {
	v := uint32(b0) | uint32(b1)<<8 | uint32(b2)<<16
	return (v * 2654435761) >> (32 - 15)
}

// insert records position p's 3-byte prefix in the hash chain.
func (m *matcher) insert(p uint64) {
	if p+3 > m.absPos() {
		return
	}
	h := hash3(m.at(p), m.at(p+1), m.at(p+2))
	m.next[p&windowMask] = m.hash[h]
	m.hash[h] = int64(p)
}

// matchLen returns the number of bytes that match between positions a and
// b, capped at max.
func (m *matcher) matchLen(a, b uint64, max int) int {
	n := 0
	for n < max && m.at(a+uint64(n)) == m.at(b+uint64(n)) {
		n++
	}
	return n
}

// findMatch searches the hash chain at p for the longest match within the
// 32 KiB window, trying at most maxProbes candidates.
func (m *matcher) findMatch(p uint64, maxProbes, lookahead int) (length, dist int, ok bool) {
	if lookahead < minMatchLen || p+3 > m.absPos() {
		return 0, 0, false
	}
	h := hash3(m.at(p), m.at(p+1), m.at(p+2))
	cand := m.hash[h]
	var limit int64
	if int64(p) > windowSize {
		limit = int64(p) - windowSize
	}
	maxLen := lookahead
	if maxLen > maxMatchLen {
		maxLen = maxMatchLen
	}
	best := minMatchLen - 1
	tries := maxProbes
	if tries <= 0 {
		tries = 1
	}
	// Skip p itself (and anything after it) if already inserted.
	for cand >= int64(p) {
		cand = m.next[uint64(cand)&windowMask]
	}
	for cand >= limit && cand < int64(p) && tries > 0 {
		l := m.matchLen(uint64(cand), p, maxLen)
		if l > best {
			best = l
			dist = int(p - uint64(cand))
			ok = true
			if l >= maxLen {
				break
			}
		}
		cand = m.next[uint64(cand)&windowMask]
		tries--
	}
	length = best
	return
}

// findRLEMatch restricts the search to distance 1 (a run of a single
// repeated byte), as used by FlagRLEMatches.
func (m *matcher) findRLEMatch(p uint64, lookahead int) (length int, ok bool) {
	if p < 1 || lookahead < minMatchLen {
		return 0, false
	}
	maxLen := lookahead
	if maxLen > maxMatchLen {
		maxLen = maxMatchLen
	}
	l := m.matchLen(p-1, p, maxLen)
	if l >= minMatchLen {
		return l, true
	}
	return 0, false
}
