package devices

import (
	"fmt"
	"strings"

	"github.com/merbanan/rtl-433-sub002/bitbuf"
	"github.com/merbanan/rtl-433-sub002/decoder"
	"github.com/merbanan/rtl-433-sub002/event"
)

// GenericRemote decodes a 25-bit OOK_PWM tristate remote: a 16-bit id, an
// 8-bit command, and a final framing bit, all sent bit-inverted. The
// transmitter repeats every row twice, so a bit that differs between the
// two repeats (rather than being 0 both times or 1 both times) is the
// floating "tristate" state used by some remotes' DIP-switch address lines.
type GenericRemote struct{}

func (GenericRemote) Name() string                  { return "Generic-Remote25" }
func (GenericRemote) ID() int                       { return 3 }
func (GenericRemote) Modulation() decoder.Modulation { return decoder.OOKPWM }
func (GenericRemote) Priority() int                 { return 5 }
func (GenericRemote) Disabled() decoder.DisableLevel { return decoder.Enabled }
func (GenericRemote) Fields() []string {
	return []string{"model", "id", "cmd", "tristate"}
}

func (GenericRemote) Timings() decoder.Timings {
	return decoder.Timings{ShortWidth: 300, LongWidth: 600, ResetLimit: 6000, Tolerance: 120}
}

func (GenericRemote) Decode(buf *bitbuf.Buffer, emit func(event.Record)) decoder.Result {
	if buf.NumRows() < 2 {
		return decoder.AbortEarly
	}
	if buf.BitsInRow(0) != 25 || buf.BitsInRow(1) != 25 {
		return decoder.AbortLen
	}

	bytes0 := buf.ExtractBytes(0, 0, 24)
	for i := range bytes0 {
		bytes0[i] = ^bytes0[i]
	}

	id := int(bytes0[0])<<8 | int(bytes0[1])
	cmd := int(bytes0[2])

	var sb strings.Builder
	for i := 0; i < 23; i++ {
		a := buf.Bit(0, i) ^ 1 // undo the inversion bit-by-bit
		c := buf.Bit(1, i) ^ 1
		switch {
		case a == 0 && c == 0:
			sb.WriteByte('0')
		case a == 1 && c == 1:
			sb.WriteByte('1')
		case a == 1 && c == 0:
			sb.WriteByte('Z')
		default:
			sb.WriteByte('X')
		}
	}

	rec := event.New("Generic-Remote25")
	rec.Set("id", event.StringValue(fmt.Sprintf("0x%04x", id)))
	rec.Set("cmd", event.StringValue(fmt.Sprintf("0x%02x", cmd)))
	rec.Set("tristate", event.StringValue(sb.String()))
	emit(*rec)
	return 1
}
