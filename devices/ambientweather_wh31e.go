package devices

import (
	"github.com/merbanan/rtl-433-sub002/bitbuf"
	"github.com/merbanan/rtl-433-sub002/codec"
	"github.com/merbanan/rtl-433-sub002/decoder"
	"github.com/merbanan/rtl-433-sub002/event"
)

// ambientweatherSync is the 16-bit 0x2DD4 sync word that ends the WH31E's
// preamble of alternating 0xAA bytes.
var ambientweatherSync = []byte{0x2D, 0xD4}

// AmbientWeatherWH31E decodes the AmbientWeather WH31E temperature/humidity
// sensor: an OOK_PCM frame found by searching for its 0x2DD4 sync word, a
// 5-byte body, and a trailing CRC-8 (poly 0x31, init 0x00).
type AmbientWeatherWH31E struct{}

func (AmbientWeatherWH31E) Name() string                  { return "AmbientWeather-WH31E" }
func (AmbientWeatherWH31E) ID() int                       { return 2 }
func (AmbientWeatherWH31E) Modulation() decoder.Modulation { return decoder.OOKPCM }
func (AmbientWeatherWH31E) Priority() int                 { return 0 }
func (AmbientWeatherWH31E) Disabled() decoder.DisableLevel { return decoder.Enabled }
func (AmbientWeatherWH31E) Fields() []string {
	return []string{"model", "id", "channel", "battery", "temperature_C", "humidity"}
}

func (AmbientWeatherWH31E) Timings() decoder.Timings {
	return decoder.Timings{ShortWidth: 252, LongWidth: 504, ResetLimit: 4000, Tolerance: 100}
}

func (AmbientWeatherWH31E) Decode(buf *bitbuf.Buffer, emit func(event.Record)) decoder.Result {
	total := 0
	for r := 0; r < buf.NumRows(); r++ {
		bits := buf.BitsInRow(r)
		pos := buf.Search(r, 0, ambientweatherSync, 16)
		if pos >= bits {
			continue
		}
		start := pos + 16
		if bits-start < 48 {
			continue
		}
		body := buf.ExtractBytes(r, start, 48)

		crc := codec.CRC8(body[:5], 0x31, 0x00)
		if crc != body[5] {
			continue
		}

		id := int(body[1])
		channel := int(body[0]&0x07) + 1
		batteryLow := body[0]&0x80 != 0
		tempRaw := (int(body[2]&0x03) << 8) | int(body[3])
		tempC := float64(tempRaw)*0.1 - 40
		humidity := int(body[4])

		battery := "OK"
		if batteryLow {
			battery = "LOW"
		}

		rec := event.New("AmbientWeather-WH31E")
		rec.Set("id", event.IntValue(int64(id)))
		rec.Set("channel", event.IntValue(int64(channel)))
		rec.Set("battery", event.StringValue(battery))
		rec.Set("temperature_C", event.DoubleValue(tempC))
		rec.Set("humidity", event.IntValue(int64(humidity)))
		emit(*rec)
		total++
	}
	if total == 0 {
		return decoder.AbortEarly
	}
	return decoder.Result(total)
}
