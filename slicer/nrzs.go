package slicer

import (
	"github.com/merbanan/rtl-433-sub002/bitbuf"
	"github.com/merbanan/rtl-433-sub002/decoder"
	"github.com/merbanan/rtl-433-sub002/pulse"
)

// SliceNRZS implements non-return-to-zero space coding, spec.md §4.2: a
// pulse longer than short_width emits floor(pulse/short_width) ones
// followed by a zero; otherwise a single zero. A reset gap ends the
// message.
func SliceNRZS(pd *pulse.Data, t decoder.ScaledTimings, onRow onRowFunc) bool {
	if !requireNonZero(t.Short) {
		return false
	}

	buf := &bitbuf.Buffer{}
	events := 0

	for i := 0; i < pd.NumPulses(); i++ {
		p := int(pd.Pulse[i])
		if p > t.Short {
			ones := p / t.Short
			for k := 0; k < ones; k++ {
				buf.AddBit(1)
			}
		}
		buf.AddBit(0)

		g := int(pd.Gap[i])
		if g > t.Reset {
			events += int(onRow(buf))
			buf = &bitbuf.Buffer{}
		} else if t.Gap > 0 && g > t.Gap {
			buf.AddRow()
		}
	}
	events += finish(buf, onRow)
	_ = events
	return true
}
