package deflate

// One-shot helpers for the common case of compressing or decompressing
// an entire buffer in memory, mirroring miniz's mmz_compress()/
// mmz_uncompress() convenience pair built entirely on top of the
// streaming Deflater/Inflater API below (spec "Supplemented features").

// Compress returns the zlib-wrapped DEFLATE encoding of data, using the
// tuning knobs in flags.
func Compress(data []byte, flags Flags) ([]byte, error) {
	flags |= FlagWriteZlibHeader | FlagComputeAdler32
	def := NewDeflater(flags)
	out := make([]byte, 0, len(data)/2+64)
	chunk := make([]byte, 32*1024)
	in := data
	for {
		flush := NoFlush
		if len(in) == 0 {
			flush = Finish
		}
		s := &Stream{nextIn: in, nextOut: chunk}
		status, err := def.Deflate(s, flush)
		if err != nil {
			return nil, err
		}
		in = s.nextIn
		out = append(out, chunk[:len(chunk)-len(s.nextOut)]...)
		if status == StatusStreamEnd {
			return out, nil
		}
	}
}

// Decompress returns the decompressed form of a zlib-wrapped DEFLATE
// stream produced by Compress (or any conforming encoder).
func Decompress(data []byte) ([]byte, error) {
	inf := NewInflater(Zlib)
	out := make([]byte, 0, len(data)*3+64)
	chunk := make([]byte, 32*1024)
	in := data
	for {
		s := &Stream{nextIn: in, nextOut: chunk}
		status, err := inf.Inflate(s, Finish)
		if err != nil {
			return nil, err
		}
		in = s.nextIn
		out = append(out, chunk[:len(chunk)-len(s.nextOut)]...)
		if status == StatusStreamEnd {
			return out, nil
		}
	}
}

// DecompressRaw is Decompress for a bare RFC 1951 stream with no zlib
// container.
func DecompressRaw(data []byte) ([]byte, error) {
	inf := NewInflater(Raw)
	out := make([]byte, 0, len(data)*3+64)
	chunk := make([]byte, 32*1024)
	in := data
	for {
		s := &Stream{nextIn: in, nextOut: chunk}
		status, err := inf.Inflate(s, Finish)
		if err != nil {
			return nil, err
		}
		in = s.nextIn
		out = append(out, chunk[:len(chunk)-len(s.nextOut)]...)
		if status == StatusStreamEnd {
			return out, nil
		}
	}
}
