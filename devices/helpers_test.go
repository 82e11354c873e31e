package devices

import "github.com/merbanan/rtl-433-sub002/bitbuf"

func bitsOfByte(b byte) []byte {
	out := make([]byte, 8)
	for i := 0; i < 8; i++ {
		out[i] = (b >> uint(7-i)) & 1
	}
	return out
}

func bufFromBytes(bs ...byte) *bitbuf.Buffer {
	var bits []byte
	for _, b := range bs {
		bits = append(bits, bitsOfByte(b)...)
	}
	return bitbuf.FromBits(bits)
}

func invertAll(bs []byte) []byte {
	out := make([]byte, len(bs))
	for i, b := range bs {
		out[i] = ^b
	}
	return out
}
