package deflate

// Static tables shared by the inflater and deflater, taken directly from
// RFC 1951 §3.2.5 (length/distance bases and extra-bit counts) and §3.2.6
// (fixed Huffman code lengths), matching the s_length_base/s_length_extra/
// s_dist_base/s_dist_extra/s_length_dezigzag tables in original_source's
// miniminiz.h tinfl_decompress.

// lengthBase/lengthExtra are indexed by (symbol - 257); symbols 257..285
// are valid, 286/287 never appear in a conforming stream.
var lengthBase = [29]uint32{
	3, 4, 5, 6, 7, 8, 9, 10, 11, 13,
	15, 17, 19, 23, 27, 31, 35, 43, 51, 59,
	67, 83, 99, 115, 131, 163, 195, 227, 258,
}

var lengthExtra = [29]uint{
	0, 0, 0, 0, 0, 0, 0, 0, 1, 1,
	1, 1, 2, 2, 2, 2, 3, 3, 3, 3,
	4, 4, 4, 4, 5, 5, 5, 5, 0,
}

// distBase/distExtra are indexed by distance symbol 0..29.
var distBase = [30]uint32{
	1, 2, 3, 4, 5, 7, 9, 13, 17, 25,
	33, 49, 65, 97, 129, 193, 257, 385, 513, 769,
	1025, 1537, 2049, 3073, 4097, 6145, 8193, 12289, 16385, 24577,
}

var distExtra = [30]uint{
	0, 0, 0, 0, 1, 1, 2, 2, 3, 3,
	4, 4, 5, 5, 6, 6, 7, 7, 8, 8,
	9, 9, 10, 10, 11, 11, 12, 12, 13, 13,
}

// codeLengthOrder is the fixed permutation in which HCLEN code-length
// code-lengths are transmitted for a dynamic block.
var codeLengthOrder = [19]int{
	16, 17, 18, 0, 8, 7, 9, 6, 10, 5, 11, 4, 12, 3, 13, 2, 14, 1, 15,
}

// fixedLitLengths/fixedDistLengths are the hard-coded code lengths for a
// type-1 (fixed Huffman) block. All 32 distance codes are length 5; codes
// 30 and 31 never carry a valid distance but complete the code space.
func fixedLitLengths() [maxHuffSymbolsLit]uint8 {
	var l [maxHuffSymbolsLit]uint8
	for i := 0; i <= 143; i++ {
		l[i] = 8
	}
	for i := 144; i <= 255; i++ {
		l[i] = 9
	}
	for i := 256; i <= 279; i++ {
		l[i] = 7
	}
	for i := 280; i <= 287; i++ {
		l[i] = 8
	}
	return l
}

func fixedDistLengths() [maxHuffSymbolsLit]uint8 {
	var l [maxHuffSymbolsLit]uint8
	for i := 0; i < 32; i++ {
		l[i] = 5
	}
	return l
}

const (
	minMatchLen = 3
	maxMatchLen = 258
	minDistance = 1
	maxDistance = 32768

	windowSize = 32768 // 32 KiB sliding dictionary
	windowMask = windowSize - 1
)
