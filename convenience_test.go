package deflate

import (
	"bytes"
	"math/rand"
	"testing"
)

func TestCompressDecompressRoundTrip(t *testing.T) {
	cases := map[string][]byte{
		"empty":      {},
		"single":     []byte("a"),
		"short":      []byte("AIAIAIAIAIAIA"),
		"repetitive": bytes.Repeat([]byte("abcabcabcabc"), 5000),
		"random":     randomBytes(70000, 1),
	}
	for name, data := range cases {
		compressed, err := Compress(data, 0)
		if err != nil {
			t.Fatalf("%s: Compress: %v", name, err)
		}
		got, err := Decompress(compressed)
		if err != nil {
			t.Fatalf("%s: Decompress: %v", name, err)
		}
		if !bytes.Equal(got, data) {
			t.Fatalf("%s: round trip mismatch: got %d bytes, want %d bytes", name, len(got), len(data))
		}
	}
}

func TestCompressNoExpansionForSmallInput(t *testing.T) {
	data := []byte("x")
	compressed, err := Compress(data, 0)
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}
	// header(2) + one stored block(5 + len) + trailer(4)
	if len(compressed) > 2+5+len(data)+4 {
		t.Errorf("Compress(%q) produced %d bytes, want <= %d", data, len(compressed), 2+5+len(data)+4)
	}
}

func TestDeflateByteAtATimeResumes(t *testing.T) {
	data := randomBytes(5000, 7)
	compressed, err := Compress(data, 0)
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}

	inf := NewInflater(Zlib)
	var out []byte
	outChunk := make([]byte, 37) // an awkward size, to exercise partial flushes too
	for i := 0; i < len(compressed); i++ {
		in := compressed[i : i+1]
		finish := i == len(compressed)-1
		for {
			s := &Stream{nextIn: in, nextOut: outChunk}
			flush := NoFlush
			if finish {
				flush = Finish
			}
			status, err := inf.Inflate(s, flush)
			if err != nil {
				t.Fatalf("Inflate at byte %d: %v", i, err)
			}
			out = append(out, outChunk[:len(outChunk)-len(s.nextOut)]...)
			in = s.nextIn
			if status == StatusStreamEnd {
				break
			}
			if len(in) == 0 && len(s.nextOut) > 0 {
				break
			}
		}
	}
	if !bytes.Equal(out, data) {
		t.Fatalf("byte-at-a-time resumption mismatch: got %d bytes, want %d", len(out), len(data))
	}
}

func TestDeflateFlagVariants(t *testing.T) {
	data := bytes.Repeat([]byte("mississippi river "), 400)
	variants := []Flags{
		FlagGreedyParsing,
		FlagFilterMatches,
		FlagForceAllStaticBlocks,
		FlagForceAllRawBlocks,
	}
	for _, f := range variants {
		flags := f | 32 // a handful of probes
		compressed, err := Compress(data, flags)
		if err != nil {
			t.Fatalf("flags %v: Compress: %v", f, err)
		}
		got, err := Decompress(compressed)
		if err != nil {
			t.Fatalf("flags %v: Decompress: %v", f, err)
		}
		if !bytes.Equal(got, data) {
			t.Fatalf("flags %v: round trip mismatch", f)
		}
	}
}

func TestDeflateRLEFlag(t *testing.T) {
	data := bytes.Repeat([]byte{0x42}, 10000)
	compressed, err := Compress(data, FlagRLEMatches|8)
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}
	got, err := Decompress(compressed)
	if err != nil {
		t.Fatalf("Decompress: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Fatal("RLE round trip mismatch")
	}
}

func randomBytes(n int, seed int64) []byte {
	r := rand.New(rand.NewSource(seed))
	b := make([]byte, n)
	r.Read(b)
	return b
}
