package devices

import (
	"fmt"

	"github.com/merbanan/rtl-433-sub002/bitbuf"
	"github.com/merbanan/rtl-433-sub002/codec"
	"github.com/merbanan/rtl-433-sub002/decoder"
	"github.com/merbanan/rtl-433-sub002/event"
)

// SteelmateTPMS decodes a Steelmate tire-pressure sensor: a 72-bit
// OOK_MC_ZEROBIT (Manchester) frame, bit-inverted on the air, with a 16-bit
// id, 8-bit pressure and temperature readings, an 8-bit battery reading,
// three reserved bytes, and a trailing XOR checksum.
type SteelmateTPMS struct{}

func (SteelmateTPMS) Name() string                  { return "Steelmate-TPMS" }
func (SteelmateTPMS) ID() int                       { return 5 }
func (SteelmateTPMS) Modulation() decoder.Modulation { return decoder.OOKManchesterZerobit }
func (SteelmateTPMS) Priority() int                 { return 0 }
func (SteelmateTPMS) Disabled() decoder.DisableLevel { return decoder.Enabled }
func (SteelmateTPMS) Fields() []string {
	return []string{"type", "id", "pressure_kPa", "temperature_C", "battery_mV"}
}

func (SteelmateTPMS) Timings() decoder.Timings {
	return decoder.Timings{ShortWidth: 120, LongWidth: 240, ResetLimit: 3000, Tolerance: 60}
}

func (SteelmateTPMS) Decode(buf *bitbuf.Buffer, emit func(event.Record)) decoder.Result {
	if buf.NumRows() == 0 {
		return 0
	}
	r := 0
	if buf.BitsInRow(r) != 72 {
		return decoder.AbortLen
	}

	raw := buf.ExtractBytes(r, 0, 72)
	b := make([]byte, len(raw))
	for i, v := range raw {
		b[i] = ^v
	}

	if codec.XorBytes(b[:8]) != b[8] {
		return decoder.FailMIC
	}

	id := fmt.Sprintf("0x%02x%02x", b[0], b[1])
	pressureKPa := float64(b[2]) * 2.5
	temperatureC := int(b[3]) - 50
	batteryMV := int(b[4]) * 20

	rec := event.New("Steelmate-TPMS")
	rec.Set("type", event.StringValue("TPMS"))
	rec.Set("id", event.StringValue(id))
	rec.Set("pressure_kPa", event.DoubleValue(pressureKPa))
	rec.Set("temperature_C", event.IntValue(int64(temperatureC)))
	rec.Set("battery_mV", event.IntValue(int64(batteryMV)))
	emit(*rec)
	return 1
}
