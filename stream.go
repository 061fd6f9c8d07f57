package deflate

// Stream is the streaming contract both codecs are driven through (spec
// §6). Unlike the C original this models next_in/next_out as Go slices:
// avail_in and avail_out are simply len(nextIn)/len(nextOut), and a
// successful call reslices them by however much was consumed/produced,
// exactly the way a io.Reader/io.Writer pair would leave a buffer
// positioned after a partial operation.
type Stream struct {
	nextIn  []byte
	totalIn uint64

	nextOut  []byte
	totalOut uint64

	// Adler is the running Adler-32 checksum for a zlib-wrapped stream.
	// Inflate keeps it current with the checksum of the bytes emitted so
	// far; Deflate keeps it current with the checksum of the bytes
	// consumed so far.
	Adler uint32
}

// SetInput points the stream at the next chunk of input to consume.
func (s *Stream) SetInput(p []byte) { s.nextIn = p }

// SetOutput points the stream at the next chunk of output space to fill.
func (s *Stream) SetOutput(p []byte) { s.nextOut = p }

// AvailIn is the number of unconsumed bytes left at the input cursor.
func (s *Stream) AvailIn() int { return len(s.nextIn) }

// AvailOut is the number of unfilled bytes left at the output cursor.
func (s *Stream) AvailOut() int { return len(s.nextOut) }

// TotalIn is the cumulative number of input bytes consumed.
func (s *Stream) TotalIn() uint64 { return s.totalIn }

// TotalOut is the cumulative number of output bytes produced.
func (s *Stream) TotalOut() uint64 { return s.totalOut }

// zlibHeaderBytes builds the 2-byte RFC 1950 header: CMF names method 8
// (deflate) with a 32 KiB window (CINFO=7), FLG is chosen with the
// preset-dictionary bit clear and a check value so that
// (CMF*256+FLG) % 31 == 0, per spec §4.7.
func zlibHeaderBytes() (cmf, flg byte) {
	cmf = 0x78 // CINFO=7 (32K window), CM=8 (deflate)
	flg = 0
	rem := (int(cmf)*256 + int(flg)) % 31
	if rem != 0 {
		flg += byte(31 - rem)
	}
	return cmf, flg
}
