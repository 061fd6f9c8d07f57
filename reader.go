/*
Package deflate implements RFC 1951 DEFLATE and its RFC 1950 zlib
container as a resumable push-style codec, plus io.Reader/io.Writer
wrappers for the common case of decompressing or compressing a whole
stream.

For example, to read compressed data from a reader:

	r := deflate.NewReader(src, deflate.Zlib)
	io.Copy(dst, r)
	r.Close()
*/
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

const readerChunkSize = 32 * 1024

// reader adapts an Inflater to io.Reader, pulling input from an
// underlying io.Reader on demand rather than decompressing everything up
// front.
type reader struct {
	src  io.Reader
	inf  *Inflater
	in   []byte // unconsumed compressed bytes pulled from src
	eof  bool   // src has returned io.EOF
	done bool   // inflater has returned StreamEnd
}

// NewReader returns an io.ReadCloser that decompresses r as it is read.
// wrap selects whether r holds a bare DEFLATE stream or a zlib-wrapped
// one.
func NewReader(r io.Reader, wrap Wrap) io.ReadCloser {
	return &reader{src: r, inf: NewInflater(wrap), in: make([]byte, 0, readerChunkSize)}
}

func (r *reader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	for {
		s := &Stream{nextIn: r.in, nextOut: p}
		flush := NoFlush
		if r.eof {
			flush = Finish
		}
		status, err := r.inf.Inflate(s, flush)
		consumed := len(r.in) - len(s.nextIn)
		r.in = r.in[consumed:]
		produced := len(p) - len(s.nextOut)

		if err != nil {
			return produced, err
		}
		if produced > 0 {
			return produced, nil
		}
		if status == StatusStreamEnd {
			r.done = true
			return 0, io.EOF
		}
		if status == StatusBufError && r.eof {
			return 0, io.ErrUnexpectedEOF
		}
		if len(r.in) == 0 && !r.eof {
			if err := r.fill(); err != nil && err != io.EOF {
				return 0, err
			}
			continue
		}
		if len(r.in) == 0 && r.eof {
			// no more input and the inflater still wants some: truncated stream.
			return 0, io.ErrUnexpectedEOF
		}
	}
}

func (r *reader) fill() error {
	buf := make([]byte, readerChunkSize)
	n, err := r.src.Read(buf)
	if n > 0 {
		r.in = append(r.in, buf[:n]...)
	}
	if err == io.EOF {
		r.eof = true
		return nil
	}
	return err
}

func (r *reader) Close() error { return nil }
