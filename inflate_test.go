package deflate

import "testing"

func TestInflateInvalidZlibHeader(t *testing.T) {
	inf := NewInflater(Zlib)
	s := &Stream{nextIn: []byte{0x01, 0x02}, nextOut: make([]byte, 16)}
	_, err := inf.Inflate(s, Finish)
	if err != ErrInvalidZlibHeader {
		t.Fatalf("Inflate with bogus header: err = %v, want ErrInvalidZlibHeader", err)
	}
}

func TestInflateChecksumMismatch(t *testing.T) {
	compressed, err := Compress([]byte("hello, deflate"), 0)
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}
	// Flip the last trailer byte to corrupt the Adler-32.
	compressed[len(compressed)-1] ^= 0xFF

	inf := NewInflater(Zlib)
	out := make([]byte, 256)
	s := &Stream{nextIn: compressed, nextOut: out}
	_, err = inf.Inflate(s, Finish)
	if err != ErrChecksumMismatch {
		t.Fatalf("Inflate with corrupted trailer: err = %v, want ErrChecksumMismatch", err)
	}
}

func TestInflateInvalidBlockType(t *testing.T) {
	flags, _ := FlagsForLevel(0, false) // level 0: raw wrap, all-stored blocks
	compressed, err := func() ([]byte, error) {
		def := NewDeflater(flags)
		out := make([]byte, 0, 64)
		chunk := make([]byte, 64)
		s := &Stream{nextOut: chunk}
		_, err := def.Deflate(s, Finish)
		out = append(out, chunk[:len(chunk)-len(s.nextOut)]...)
		return out, err
	}()
	if err != nil {
		t.Fatalf("Deflate: %v", err)
	}
	if len(compressed) == 0 {
		t.Fatal("expected at least the empty final stored block's header byte")
	}
	// bits 1-2 of the first byte carry the block type; force both set (3 = reserved).
	compressed[0] |= 0b110

	inf := NewInflater(Raw)
	s := &Stream{nextIn: compressed, nextOut: make([]byte, 16)}
	_, err = inf.Inflate(s, Finish)
	if err != ErrInvalidBlockType {
		t.Fatalf("Inflate with reserved block type: err = %v, want ErrInvalidBlockType", err)
	}
}

func TestInflateStreamErrorAfterDone(t *testing.T) {
	compressed, err := Compress([]byte("a"), 0)
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}
	inf := NewInflater(Zlib)
	out := make([]byte, 64)
	s := &Stream{nextIn: compressed, nextOut: out}
	status, err := inf.Inflate(s, Finish)
	if err != nil || status != StatusStreamEnd {
		t.Fatalf("first Inflate: status=%v err=%v, want StreamEnd/nil", status, err)
	}
	_, err = inf.Inflate(s, Finish)
	if err != ErrStreamError {
		t.Fatalf("Inflate after StreamEnd: err = %v, want ErrStreamError", err)
	}
}

func TestInflateSplitAcrossCalls(t *testing.T) {
	data := []byte("the quick brown fox jumps over the lazy dog, repeatedly, repeatedly")
	compressed, err := Compress(data, 0)
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}
	mid := len(compressed) / 2

	inf := NewInflater(Zlib)
	out := make([]byte, 0, len(data))
	chunk := make([]byte, 256)

	s := &Stream{nextIn: compressed[:mid], nextOut: chunk}
	status, err := inf.Inflate(s, NoFlush)
	if err != nil {
		t.Fatalf("Inflate first half: %v", err)
	}
	out = append(out, chunk[:len(chunk)-len(s.nextOut)]...)
	if status == StatusStreamEnd {
		t.Fatal("unexpectedly finished after only half the input")
	}

	s2 := &Stream{nextIn: compressed[mid:], nextOut: chunk}
	status, err = inf.Inflate(s2, Finish)
	if err != nil {
		t.Fatalf("Inflate second half: %v", err)
	}
	out = append(out, chunk[:len(chunk)-len(s2.nextOut)]...)
	if status != StatusStreamEnd {
		t.Fatalf("status after final half = %v, want StreamEnd", status)
	}
	if string(out) != string(data) {
		t.Fatalf("split-input round trip mismatch: got %q, want %q", out, data)
	}
}
