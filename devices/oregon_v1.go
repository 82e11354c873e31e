package devices

import (
	"github.com/merbanan/rtl-433-sub002/bitbuf"
	"github.com/merbanan/rtl-433-sub002/codec"
	"github.com/merbanan/rtl-433-sub002/decoder"
	"github.com/merbanan/rtl-433-sub002/event"
)

// OregonV1 decodes the Oregon Scientific v1 protocol family: a nibble-swapped
// byte stream (the protocol transmits each byte low-nibble-first) carrying a
// sensor type, channel, rolling id, BCD temperature, and a nibble checksum.
type OregonV1 struct{}

func (OregonV1) Name() string                  { return "Oregon-V1" }
func (OregonV1) ID() int                       { return 6 }
func (OregonV1) Modulation() decoder.Modulation { return decoder.OOKOSV1 }
func (OregonV1) Priority() int                 { return 0 }
func (OregonV1) Disabled() decoder.DisableLevel { return decoder.Enabled }
func (OregonV1) Fields() []string {
	return []string{"model", "id", "channel", "temperature_C"}
}

func (OregonV1) Timings() decoder.Timings {
	return decoder.Timings{ShortWidth: 512, LongWidth: 1024, ResetLimit: 4000, Tolerance: 150}
}

func (OregonV1) Decode(buf *bitbuf.Buffer, emit func(event.Record)) decoder.Result {
	if buf.NumRows() == 0 {
		return 0
	}
	r := 0
	if buf.BitsInRow(r) < 40 {
		return decoder.AbortLen
	}

	raw := buf.ExtractBytes(r, 0, 40)
	b := codec.ReflectNibbles(raw)

	if codec.XorBytes(b[:4])&0x0F != b[4]&0x0F {
		return decoder.FailMIC
	}

	channel := int(b[0] & 0x0F)
	id := int(b[1])
	tempBCD := b[2]
	tempTenths := int(tempBCD>>4)*10 + int(tempBCD&0x0F)
	sign := b[3] & 0x08
	tempC := float64(tempTenths) / 10.0
	if sign != 0 {
		tempC = -tempC
	}

	rec := event.New("Oregon-V1")
	rec.Set("id", event.IntValue(int64(id)))
	rec.Set("channel", event.IntValue(int64(channel)))
	rec.Set("temperature_C", event.DoubleValue(tempC))
	emit(*rec)
	return 1
}
