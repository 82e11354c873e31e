package bitbuf

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseLiteral initializes buf from a "{nbits}hex-or-binary" literal,
// supporting "/"-separated rows, per spec.md §4.6's bitspec grammar:
// {<decimal>}<hex-digits> or {<decimal>}<bin-digits>. Hex bits fill from
// the top; any final partial nibble is zero-padded on the right.
func ParseLiteral(literal string) (*Buffer, error) {
	buf := &Buffer{}
	for _, rowLit := range strings.Split(literal, "/") {
		bits, err := DecodeLiteral(rowLit)
		if err != nil {
			return nil, err
		}
		if buf.n > 0 {
			buf.AddRow()
		}
		for _, bit := range bits {
			buf.AddBit(bit)
		}
	}
	return buf, nil
}

// DecodeLiteral decodes a single "{nbits}hex-or-binary" literal into a
// slice of 0/1 bytes, one per bit, MSB-first.
func DecodeLiteral(literal string) ([]byte, error) {
	if !strings.HasPrefix(literal, "{") {
		return nil, fmt.Errorf("bitbuf: literal %q missing leading {nbits}", literal)
	}
	closeIdx := strings.IndexByte(literal, '}')
	if closeIdx < 0 {
		return nil, fmt.Errorf("bitbuf: literal %q missing closing }", literal)
	}
	nbits, err := strconv.Atoi(literal[1:closeIdx])
	if err != nil {
		return nil, fmt.Errorf("bitbuf: literal %q has bad bit count: %w", literal, err)
	}
	body := literal[closeIdx+1:]
	body = strings.TrimPrefix(body, "0x")
	body = strings.TrimPrefix(body, "0X")

	isBinary := nbits > 0 && len(body) == nbits && onlyBinaryDigits(body)

	var bits []byte
	if isBinary {
		bits = make([]byte, 0, nbits)
		for _, c := range body {
			if c == '1' {
				bits = append(bits, 1)
			} else {
				bits = append(bits, 0)
			}
		}
	} else {
		bits = make([]byte, 0, nbits)
		for _, c := range body {
			v, err := strconv.ParseUint(string(c), 16, 8)
			if err != nil {
				return nil, fmt.Errorf("bitbuf: literal %q has bad hex digit %q: %w", literal, c, err)
			}
			for i := 3; i >= 0; i-- {
				bits = append(bits, byte((v>>uint(i))&1))
			}
		}
	}
	if len(bits) > nbits {
		bits = bits[:nbits]
	}
	for len(bits) < nbits {
		bits = append(bits, 0)
	}
	return bits, nil
}

func onlyBinaryDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c != '0' && c != '1' {
			return false
		}
	}
	return true
}

// FromBits builds a single-row Buffer directly from a slice of 0/1 bytes,
// convenient for tests.
func FromBits(bits []byte) *Buffer {
	buf := &Buffer{}
	for _, bit := range bits {
		buf.AddBit(bit)
	}
	return buf
}
