package deflate

import "fmt"

/*
 * Copyright (c) 2018 Josh Varga
 * Original C version: Copyright (C) 2003, 2012, 2013 Mark Adler
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

// Status is the return code of a single Inflate or Deflate call, mirroring
// the streaming codec contract's status codes.
type Status int

// Status codes returned by Inflater.Inflate and Deflater.Deflate.
const (
	StatusOK           Status = 0
	StatusStreamEnd    Status = 1
	StatusNeedDict     Status = 2
	StatusStreamError  Status = -2
	StatusDataError    Status = -3
	StatusMemError     Status = -4
	StatusBufError     Status = -5
	StatusVersionError Status = -6
	StatusParamError   Status = -10000
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusStreamEnd:
		return "stream end"
	case StatusNeedDict:
		return "need dictionary"
	case StatusStreamError:
		return "stream error"
	case StatusDataError:
		return "data error"
	case StatusMemError:
		return "memory error"
	case StatusBufError:
		return "buffer error"
	case StatusVersionError:
		return "version error"
	case StatusParamError:
		return "parameter error"
	default:
		return fmt.Sprintf("deflate: unknown status %d", int(s))
	}
}

// Error adapts a Status into the error interface so it can be returned or
// wrapped like any other package error.
type Error struct {
	Status Status
}

func (e *Error) Error() string {
	return "deflate: " + e.Status.String()
}

var (
	// ErrInvalidBlockType is returned when a DEFLATE block header names
	// block type 3 (reserved, invalid).
	ErrInvalidBlockType = &Error{StatusDataError}
	// ErrBadHuffmanTable is returned when a set of Huffman code lengths
	// over- or under-subscribes the code space (fails the Kraft equality
	// completeness check).
	ErrBadHuffmanTable = &Error{StatusDataError}
	// ErrBadStoredBlock is returned when a stored block's LEN and ~LEN
	// halves don't match.
	ErrBadStoredBlock = &Error{StatusDataError}
	// ErrDistanceTooFar is returned when a back-reference points before
	// the start of the output produced so far.
	ErrDistanceTooFar = &Error{StatusDataError}
	// ErrInvalidRepeatCode is returned when code-length symbol 16
	// (repeat previous) appears with no previous length to repeat.
	ErrInvalidRepeatCode = &Error{StatusDataError}
	// ErrInvalidZlibHeader is returned when the 2-byte zlib header fails
	// its checksum, names a compression method other than 8 (deflate),
	// sets the preset-dictionary bit, or names a window size above 32 KiB.
	ErrInvalidZlibHeader = &Error{StatusDataError}
	// ErrChecksumMismatch is returned when the trailing Adler-32 does not
	// match the checksum computed over the decompressed bytes.
	ErrChecksumMismatch = &Error{StatusDataError}

	// ErrStreamError is returned when a codec instance is used after it
	// has already produced StatusStreamEnd, or otherwise misused.
	ErrStreamError = &Error{StatusStreamError}

	// ErrInvalidWindowBits is returned by CheckWindowBits when asked for a
	// window size other than the fixed 32 KiB raw DEFLATE window.
	ErrInvalidWindowBits = &Error{StatusParamError}
	// ErrInvalidFlush is returned for a flush value the codec does not
	// recognize.
	ErrInvalidFlush = &Error{StatusParamError}
	// ErrInvalidProbes is returned by FlagsForLevel for a compression
	// level outside 0..10.
	ErrInvalidProbes = &Error{StatusParamError}
	// ErrNilBuffer names a nil required buffer argument; no function in
	// this package returns it.
	ErrNilBuffer = &Error{StatusParamError}
)
