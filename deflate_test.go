package deflate

import (
	"bytes"
	"testing"
)

func TestDeflateSyncFlushBoundary(t *testing.T) {
	def := NewDeflater(FlagWriteZlibHeader | FlagComputeAdler32 | 16)
	chunk := make([]byte, 4096)
	var out []byte

	s := &Stream{nextIn: []byte("first part "), nextOut: chunk}
	if _, err := def.Deflate(s, SyncFlush); err != nil {
		t.Fatalf("Deflate SyncFlush: %v", err)
	}
	out = append(out, chunk[:len(chunk)-len(s.nextOut)]...)
	firstLen := len(out)
	if firstLen == 0 {
		t.Fatal("SyncFlush produced no output for non-empty input")
	}

	s2 := &Stream{nextIn: []byte("second part"), nextOut: chunk}
	if _, err := def.Deflate(s2, Finish); err != nil {
		t.Fatalf("Deflate Finish: %v", err)
	}
	out = append(out, chunk[:len(chunk)-len(s2.nextOut)]...)

	got, err := Decompress(out)
	if err != nil {
		t.Fatalf("Decompress: %v", err)
	}
	if string(got) != "first part second part" {
		t.Fatalf("round trip after SyncFlush = %q, want %q", got, "first part second part")
	}
}

func TestDeflateFullFlushResetsHistory(t *testing.T) {
	def := NewDeflater(FlagWriteZlibHeader | FlagComputeAdler32 | FlagGreedyParsing | 32)
	chunk := make([]byte, 4096)
	var out []byte

	part := bytes.Repeat([]byte("pattern-"), 50)
	s := &Stream{nextIn: part, nextOut: chunk}
	def.Deflate(s, FullFlush)
	out = append(out, chunk[:len(chunk)-len(s.nextOut)]...)

	s2 := &Stream{nextIn: part, nextOut: chunk}
	def.Deflate(s2, Finish)
	out = append(out, chunk[:len(chunk)-len(s2.nextOut)]...)

	got, err := Decompress(out)
	if err != nil {
		t.Fatalf("Decompress: %v", err)
	}
	want := append(append([]byte{}, part...), part...)
	if !bytes.Equal(got, want) {
		t.Fatalf("round trip after FullFlush mismatch: got %d bytes, want %d", len(got), len(want))
	}
}

func TestDeflateOutputBufferStarvation(t *testing.T) {
	data := bytes.Repeat([]byte("abcdefgh"), 20000)
	def := NewDeflater(FlagWriteZlibHeader | FlagComputeAdler32 | 32)
	var out []byte
	tiny := make([]byte, 3) // deliberately too small to hold a whole block
	in := data
	for {
		flush := NoFlush
		if len(in) == 0 {
			flush = Finish
		}
		s := &Stream{nextIn: in, nextOut: tiny}
		status, err := def.Deflate(s, flush)
		if err != nil {
			t.Fatalf("Deflate: %v", err)
		}
		in = s.nextIn
		out = append(out, tiny[:len(tiny)-len(s.nextOut)]...)
		if status == StatusStreamEnd {
			break
		}
	}
	got, err := Decompress(out)
	if err != nil {
		t.Fatalf("Decompress: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Fatal("round trip mismatch under output-buffer starvation")
	}
}

func TestLengthDistSymbolTablesAgreeWithBaseTables(t *testing.T) {
	for sym, base := range lengthBase {
		got := lengthToSymbol(base)
		if got != 257+sym {
			t.Errorf("lengthToSymbol(%d) = %d, want %d", base, got, 257+sym)
		}
	}
	for sym, base := range distBase {
		got := distToSymbol(base)
		if got != sym {
			t.Errorf("distToSymbol(%d) = %d, want %d", base, got, sym)
		}
	}
}
