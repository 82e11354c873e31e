package flex

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/merbanan/rtl-433-sub002/bitbuf"
	"github.com/merbanan/rtl-433-sub002/event"
)

func bitsOfByte(b byte) []byte {
	out := make([]byte, 8)
	for i := 0; i < 8; i++ {
		out[i] = (b >> uint(7-i)) & 1
	}
	return out
}

func rowFromBytes(bs ...byte) []byte {
	var bits []byte
	for _, b := range bs {
		bits = append(bits, bitsOfByte(b)...)
	}
	return bits
}

// TestFlexDecoderMatchFilter is testable property #7: a flex decoder with
// match={8}0xAB consumes a row beginning 0xAB... and rejects one beginning
// 0xAC....
func TestFlexDecoderMatchFilter(t *testing.T) {
	spec, err := Parse("probe:OOK_PCM:100:220:1200,match={8}0xAB")
	require.NoError(t, err)
	d := New(spec)

	matching := bitbuf.FromBits(rowFromBytes(0xAB, 0x10, 0x20))
	var got []event.Record
	r := d.Decode(matching, func(rec event.Record) { got = append(got, rec) })
	if r <= 0 {
		t.Fatalf("Decode on matching row returned %d, want > 0", r)
	}
	if len(got) != 1 {
		t.Fatalf("emitted %d records, want 1", len(got))
	}

	nonMatching := bitbuf.FromBits(rowFromBytes(0xAC, 0x10, 0x20))
	got = nil
	r = d.Decode(nonMatching, func(rec event.Record) { got = append(got, rec) })
	if r != 0 {
		t.Fatalf("Decode on non-matching row returned %d, want 0", r)
	}
	if len(got) != 0 {
		t.Fatalf("emitted %d records for a non-matching row, want 0", len(got))
	}
}

func TestFlexDecoderGetExtractsField(t *testing.T) {
	spec, err := Parse("probe:OOK_PCM:100:220:1200,get=@8:{8}:temperature")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	d := New(spec)
	buf := bitbuf.FromBits(rowFromBytes(0x01, 0x2A, 0x03))

	var got event.Record
	r := d.Decode(buf, func(rec event.Record) { got = rec })
	if r != 1 {
		t.Fatalf("Decode returned %d, want 1", r)
	}
	v, ok := got.Get("temperature")
	if !ok {
		t.Fatalf("temperature field missing")
	}
	if v.Int != 0x2A {
		t.Fatalf("temperature = %d, want %d", v.Int, 0x2A)
	}
}

// TestFlexDecoderCountOnlyEmitsSingleCountRecord mirrors the S5-style
// repeats/count scenario: with countonly set, per-row records are
// suppressed and a single trailing count record is emitted instead.
func TestFlexDecoderCountOnlyEmitsSingleCountRecord(t *testing.T) {
	spec, err := Parse("probe:OOK_PCM:100:220:1200,countonly")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	d := New(spec)

	buf := bitbuf.FromBits(rowFromBytes(0x11, 0x22))
	buf.AddRow()
	for _, b := range rowFromBytes(0x33, 0x44) {
		buf.AddBit(b)
	}

	var got []event.Record
	r := d.Decode(buf, func(rec event.Record) { got = append(got, rec) })
	if r != 2 {
		t.Fatalf("Decode returned %d, want 2", r)
	}
	if len(got) != 1 {
		t.Fatalf("emitted %d records, want exactly 1 count record", len(got))
	}
	v, ok := got[0].Get("count")
	if !ok || v.Int != 2 {
		t.Fatalf("count field = %+v, want 2", v)
	}
}

func TestFlexDecoderRowsFilter(t *testing.T) {
	spec, err := Parse("probe:OOK_PCM:100:220:1200,rows=2")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	d := New(spec)

	buf := bitbuf.FromBits(rowFromBytes(0x11))
	r := d.Decode(buf, func(event.Record) {})
	if r != 0 {
		t.Fatalf("Decode with 1 row against rows=2 filter returned %d, want 0", r)
	}
}
