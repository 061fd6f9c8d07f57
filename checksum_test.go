package deflate

import "testing"

func TestAdler32KnownVectors(t *testing.T) {
	cases := []struct {
		data []byte
		want uint32
	}{
		{nil, 1},
		{[]byte(""), 1},
		{[]byte("Wikipedia"), 0x11E60398},
		{[]byte("a"), 0x00620062},
	}
	for _, c := range cases {
		got := Adler32(1, c.data)
		if c.data == nil {
			got = Adler32(1, nil)
		}
		if got != c.want {
			t.Errorf("Adler32(1, %q) = %#x, want %#x", c.data, got, c.want)
		}
	}
}

func TestAdler32Incremental(t *testing.T) {
	data := []byte("the quick brown fox jumps over the lazy dog")
	whole := Adler32(1, data)

	running := uint32(1)
	for i := range data {
		running = Adler32(running, data[i:i+1])
	}
	if running != whole {
		t.Errorf("incremental Adler32 = %#x, want %#x", running, whole)
	}
}

func TestCRC32KnownVector(t *testing.T) {
	got := CRC32(0, []byte("123456789"))
	const want = 0xCBF43926 // standard CRC-32/ISO-HDLC check value
	if got != want {
		t.Errorf("CRC32(\"123456789\") = %#x, want %#x", got, want)
	}
}

func TestCRC32Incremental(t *testing.T) {
	data := []byte("123456789")
	whole := CRC32(0, data)
	running := uint32(0)
	for i := range data {
		running = CRC32(running, data[i:i+1])
	}
	if running != whole {
		t.Errorf("incremental CRC32 = %#x, want %#x", running, whole)
	}
}
