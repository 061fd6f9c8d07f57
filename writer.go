package deflate

import "io"

/*
 * Copyright (c) 2018 Josh Varga
 *
 * This software is provided 'as-is', without any express or implied
 * warranty. In no event will the authors be held liable for any damages
 * arising from the use of this software.
 *
 * Permission is granted to anyone to use this software for any purpose,
 * including commercial applications, and to alter it and redistribute it
 * freely, subject to the following restrictions:
 *
 * 1. The origin of this software must not be misrepresented; you must not
 *    claim that you wrote the original software. If you use this software
 *    in a product, an acknowledgment in the product documentation would be
 *    appreciated but is not required.
 * 2. Altered source versions must be plainly marked as such, and must not be
 *    misrepresented as being the original software.
 * 3. This notice may not be removed or altered from any source distribution.
 */

const writerOutChunkSize = 32 * 1024

// Writer takes data written to it and writes the compressed form of that
// data to an underlying writer (see NewWriter). Unlike blast's Writer,
// which buffers the whole input and compresses it all on Close, this one
// feeds the deflater incrementally: Write can flush compressed bytes to
// the underlying writer before Close.
type Writer struct {
	w   io.Writer
	def *Deflater
	buf []byte
	err error
}

// NewWriter creates a new Writer. Writes to the returned Writer are
// compressed and written to w. Close must be called to emit the final
// block and (for a zlib wrap) the trailer.
func NewWriter(w io.Writer, flags Flags) *Writer {
	return &Writer{w: w, def: NewDeflater(flags), buf: make([]byte, writerOutChunkSize)}
}

// Write compresses p and writes whatever compressed bytes that produces
// to the underlying writer.
func (w *Writer) Write(p []byte) (int, error) {
	if w.err != nil {
		return 0, w.err
	}
	n := len(p)
	for len(p) > 0 {
		s := &Stream{nextIn: p, nextOut: w.buf}
		_, err := w.def.Deflate(s, NoFlush)
		if err != nil {
			w.err = err
			return n - len(p), err
		}
		consumed := len(p) - len(s.nextIn)
		produced := len(w.buf) - len(s.nextOut)
		p = s.nextIn
		if produced > 0 {
			if _, werr := w.w.Write(w.buf[:produced]); werr != nil {
				w.err = werr
				return n - len(p), werr
			}
		}
		if consumed == 0 && produced == 0 {
			break
		}
	}
	return n, nil
}

// Close flushes any buffered input through a final block (and Adler-32
// trailer, for a zlib wrap) and writes the remaining compressed bytes.
func (w *Writer) Close() error {
	if w.err != nil {
		return w.err
	}
	for {
		s := &Stream{nextOut: w.buf}
		status, err := w.def.Deflate(s, Finish)
		if err != nil {
			w.err = err
			return err
		}
		if produced := len(w.buf) - len(s.nextOut); produced > 0 {
			if _, werr := w.w.Write(w.buf[:produced]); werr != nil {
				w.err = werr
				return werr
			}
		}
		if status == StatusStreamEnd {
			return nil
		}
	}
}
