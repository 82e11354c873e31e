package codec

// The M-Bus wireless physical layer (EN 13757-4) encodes each 4-bit data
// nibble as one of the 6-bit codewords containing exactly three set bits
// (an "n-of-6" code, chosen for its DC balance and minimum Hamming
// distance). Decode3of6 and Decode4of6 below are table-driven inverses of
// that encoding: the 6-bit values with the required population count are
// assigned to nibbles 0, 1, 2, ... in ascending numeric order, and values
// left over once all 16 nibbles are assigned are not part of the table.

var table3of6 = buildPopcountTable(3)
var table4of6 = buildPopcountTable(4)

func buildPopcountTable(ones int) map[byte]byte {
	table := make(map[byte]byte)
	var nibble byte
	for v := 0; v < 64 && nibble < 16; v++ {
		if popcount6(byte(v)) == ones {
			table[byte(v)] = nibble
			nibble++
		}
	}
	return table
}

func popcount6(b byte) int {
	n := 0
	for i := 0; i < 6; i++ {
		if b&(1<<uint(i)) != 0 {
			n++
		}
	}
	return n
}

// Decode3of6 maps a 6-bit symbol (in the low 6 bits of sym) to its 4-bit
// data nibble. ok is false if the symbol isn't one of the 16 three-ones
// codewords in the table (a transmission error).
func Decode3of6(sym byte) (nibble byte, ok bool) {
	n, found := table3of6[sym&0x3F]
	return n, found
}

// Decode4of6 is the four-ones-per-symbol analogue of Decode3of6, for the
// less common M-Bus variant using a four-bit population count per
// codeword.
func Decode4of6(sym byte) (nibble byte, ok bool) {
	n, found := table4of6[sym&0x3F]
	return n, found
}
