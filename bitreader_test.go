package deflate

import "testing"

func TestBitReaderTakeLSBFirst(t *testing.T) {
	// 0xB4 = 0b10110100; DEFLATE's bit order reads the low bit of the byte
	// first, so the first 3 bits taken should be 0b100 (=4) and the next
	// 5 should be 0b10110 (=22).
	s := &Stream{nextIn: []byte{0xB4}}
	var br bitReader
	if !br.fill(s, 8, true) {
		t.Fatal("fill: unexpected suspend with a full byte available")
	}
	if got := br.take(3); got != 4 {
		t.Errorf("take(3) = %d, want 4", got)
	}
	if got := br.take(5); got != 22 {
		t.Errorf("take(5) = %d, want 22", got)
	}
}

func TestBitReaderFillSuspendsWithoutInput(t *testing.T) {
	s := &Stream{}
	var br bitReader
	if br.fill(s, 8, true) {
		t.Fatal("fill: expected suspend on empty input with haveMoreInput=true")
	}
}

func TestBitReaderFillZeroPadsAtEOF(t *testing.T) {
	s := &Stream{}
	var br bitReader
	if !br.fill(s, 8, false) {
		t.Fatal("fill: expected success (zero-padded) with haveMoreInput=false")
	}
	if got := br.take(8); got != 0 {
		t.Errorf("take(8) after EOF padding = %d, want 0", got)
	}
}

func TestBitReaderAlignByte(t *testing.T) {
	s := &Stream{nextIn: []byte{0xFF, 0x00}}
	var br bitReader
	br.fill(s, 16, true)
	br.take(3)
	br.alignByte()
	if br.nbits%8 != 0 {
		t.Errorf("alignByte left %d bits, want a multiple of 8", br.nbits)
	}
}

func TestBitReaderConsumesFromStream(t *testing.T) {
	s := &Stream{nextIn: []byte{0x01, 0x02, 0x03}}
	var br bitReader
	br.fill(s, 24, true)
	if len(s.nextIn) != 0 {
		t.Errorf("fill left %d unconsumed bytes, want 0", len(s.nextIn))
	}
	if s.totalIn != 3 {
		t.Errorf("totalIn = %d, want 3", s.totalIn)
	}
}
