// Package devices holds the built-in device decoders (spec.md §4.5): small,
// self-contained implementations of decoder.Device, each grounded on one
// modulation family and bit-encoding helper from codec.
package devices

import (
	"github.com/merbanan/rtl-433-sub002/bitbuf"
	"github.com/merbanan/rtl-433-sub002/codec"
	"github.com/merbanan/rtl-433-sub002/decoder"
	"github.com/merbanan/rtl-433-sub002/event"
)

// Bresser3CH decodes the Bresser 3-channel temperature/humidity sensor: a
// 48-bit OOK_PCM frame, active-low on the air (the row is bit-inverted
// before field extraction), with a trailing mod-256 sum checksum.
type Bresser3CH struct{}

func (Bresser3CH) Name() string                  { return "Bresser-3CH" }
func (Bresser3CH) ID() int                       { return 1 }
func (Bresser3CH) Modulation() decoder.Modulation { return decoder.OOKPCM }
func (Bresser3CH) Priority() int                 { return 0 }
func (Bresser3CH) Disabled() decoder.DisableLevel { return decoder.Enabled }
func (Bresser3CH) Fields() []string {
	return []string{"model", "id", "channel", "battery", "temperature_F", "humidity"}
}

func (Bresser3CH) Timings() decoder.Timings {
	return decoder.Timings{ShortWidth: 250, LongWidth: 500, ResetLimit: 2000, Tolerance: 100}
}

func (Bresser3CH) Decode(buf *bitbuf.Buffer, emit func(event.Record)) decoder.Result {
	if buf.NumRows() == 0 {
		return 0
	}
	r := 0
	if buf.BitsInRow(r) != 48 {
		return decoder.AbortLen
	}

	raw := buf.ExtractBytes(r, 0, 48)
	b := make([]byte, len(raw))
	for i, v := range raw {
		b[i] = ^v // the sensor transmits active-low
	}

	sum := codec.SumBytes(b[:5])
	if sum != b[5] {
		return decoder.FailMIC
	}

	id := int(b[0])
	channel := int((b[1] >> 5) & 0x07)
	batteryLow := b[1]&0x10 != 0
	tempRaw := int(b[2])*100 + int(b[3])
	tempF := float64(tempRaw-900) / 10.0
	humidity := int(b[4])

	if humidity > 100 || tempF < -40 || tempF > 140 {
		return decoder.FailSanity
	}

	battery := "OK"
	if batteryLow {
		battery = "LOW"
	}

	rec := event.New("Bresser-3CH")
	rec.Set("id", event.IntValue(int64(id)))
	rec.Set("channel", event.IntValue(int64(channel)))
	rec.Set("battery", event.StringValue(battery))
	rec.Set("temperature_F", event.DoubleValue(tempF))
	rec.Set("humidity", event.IntValue(int64(humidity)))
	emit(*rec)
	return 1
}
