package devices

import (
	"strconv"

	"github.com/merbanan/rtl-433-sub002/bitbuf"
	"github.com/merbanan/rtl-433-sub002/codec"
	"github.com/merbanan/rtl-433-sub002/decoder"
	"github.com/merbanan/rtl-433-sub002/event"
)

// HoneywellContact decodes a Honeywell-style wireless contact sensor: a
// 48-bit OOK_PCM frame, active-low on the air, carrying a 4-bit channel, a
// 20-bit id, an 8-bit event/status byte, and a CRC-16 (poly 0x8005, init
// 0x0000) over the first four bytes.
type HoneywellContact struct{}

func (HoneywellContact) Name() string                  { return "Honeywell-Contact" }
func (HoneywellContact) ID() int                       { return 4 }
func (HoneywellContact) Modulation() decoder.Modulation { return decoder.OOKPCM }
func (HoneywellContact) Priority() int                 { return 0 }
func (HoneywellContact) Disabled() decoder.DisableLevel { return decoder.Enabled }
func (HoneywellContact) Fields() []string {
	return []string{"model", "id", "channel", "state", "heartbeat", "battery_ok"}
}

func (HoneywellContact) Timings() decoder.Timings {
	return decoder.Timings{ShortWidth: 156, LongWidth: 156, ResetLimit: 2000, Tolerance: 60}
}

func (HoneywellContact) Decode(buf *bitbuf.Buffer, emit func(event.Record)) decoder.Result {
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
		b[i] = ^v
	}

	crc := codec.CRC16(b[:4], 0x8005, 0x0000, false, false, 0)
	got := uint16(b[4])<<8 | uint16(b[5])
	if crc != got {
		return decoder.FailMIC
	}

	channel := int(b[0] >> 4)
	id := (int(b[0]&0x0F) << 16) | (int(b[1]) << 8) | int(b[2])
	eventByte := b[3]

	state := "closed"
	if eventByte&0x80 != 0 {
		state = "open"
	}
	heartbeat := int((eventByte >> 6) & 1)
	batteryOK := eventByte&0x20 == 0

	rec := event.New("Honeywell-Contact")
	rec.Set("id", event.StringValue(strconv.FormatInt(int64(id), 16)))
	rec.Set("channel", event.IntValue(int64(channel)))
	rec.Set("state", event.StringValue(state))
	rec.Set("heartbeat", event.IntValue(int64(heartbeat)))
	batteryOKInt := int64(0)
	if batteryOK {
		batteryOKInt = 1
	}
	rec.Set("battery_ok", event.IntValue(batteryOKInt))
	emit(*rec)
	return 1
}
