package devices

import (
	"github.com/merbanan/rtl-433-sub002/bitbuf"
	"github.com/merbanan/rtl-433-sub002/codec"
	"github.com/merbanan/rtl-433-sub002/decoder"
	"github.com/merbanan/rtl-433-sub002/event"
)

// mbusSymbols is the number of 6-bit 3-of-6 codewords a frame carries: a
// 2-byte (4-nibble) manufacturer id, a 7-nibble meter reading, and a
// checksum nibble.
const mbusSymbols = 12

// MBus3of6 decodes a wireless M-Bus-style physical layer that encodes every
// data nibble as a 6-bit three-ones-per-symbol codeword (codec.Decode3of6),
// over FSK_PCM.
type MBus3of6 struct{}

func (MBus3of6) Name() string                  { return "MBus-3of6" }
func (MBus3of6) ID() int                       { return 7 }
func (MBus3of6) Modulation() decoder.Modulation { return decoder.FSKPCM }
func (MBus3of6) Priority() int                 { return 0 }
func (MBus3of6) Disabled() decoder.DisableLevel { return decoder.Enabled }
func (MBus3of6) Fields() []string {
	return []string{"model", "id", "value"}
}

func (MBus3of6) Timings() decoder.Timings {
	return decoder.Timings{ShortWidth: 50, LongWidth: 50, ResetLimit: 1000, Tolerance: 20}
}

func (MBus3of6) Decode(buf *bitbuf.Buffer, emit func(event.Record)) decoder.Result {
	if buf.NumRows() == 0 {
		return 0
	}
	r := 0
	if buf.BitsInRow(r) < mbusSymbols*6 {
		return decoder.AbortLen
	}

	nibbles := make([]byte, mbusSymbols)
	for i := 0; i < mbusSymbols; i++ {
		sym := buf.ExtractBytes(r, i*6, 6)[0] >> 2 // left-aligned byte -> low 6 bits
		nibble, ok := codec.Decode3of6(sym)
		if !ok {
			return decoder.FailMIC
		}
		nibbles[i] = nibble
	}

	var checksum byte
	for _, n := range nibbles[:mbusSymbols-1] {
		checksum ^= n
	}
	if checksum != nibbles[mbusSymbols-1] {
		return decoder.FailMIC
	}

	id := int(nibbles[0])<<12 | int(nibbles[1])<<8 | int(nibbles[2])<<4 | int(nibbles[3])
	value := int64(0)
	for _, n := range nibbles[4 : mbusSymbols-1] {
		value = value<<4 | int64(n)
	}

	rec := event.New("MBus-3of6")
	rec.Set("id", event.IntValue(int64(id)))
	rec.Set("value", event.IntValue(value))
	emit(*rec)
	return 1
}
