package slicer

import (
	"github.com/merbanan/rtl-433-sub002/bitbuf"
	"github.com/merbanan/rtl-433-sub002/decoder"
	"github.com/merbanan/rtl-433-sub002/pulse"
)

// SlicePIWMRaw implements Pulse Interval and Width Modulation (raw
// variant), spec.md §4.2: both pulse and gap widths encode data. Each
// width divided by short_width gives a run length w, which emits w
// alternating-polarity bits — 1s for pulse positions, 0s for gap
// positions. A width exceeding long_width starts a new row instead of
// emitting bits; a reset-length width ends the message.
func SlicePIWMRaw(pd *pulse.Data, t decoder.ScaledTimings, onRow onRowFunc) bool {
	if !requireNonZero(t.Short, t.Long) {
		return false
	}

	buf := &bitbuf.Buffer{}
	events := 0

	emit := func(width int, bit byte) {
		switch {
		case width >= t.Reset:
			events += int(onRow(buf))
			buf = &bitbuf.Buffer{}
		case width > t.Long:
			buf.AddRow()
		default:
			w := round(float64(width) / float64(t.Short))
			for k := 0; k < w; k++ {
				buf.AddBit(bit)
			}
		}
	}

	for i := 0; i < pd.NumPulses(); i++ {
		emit(int(pd.Pulse[i]), 1)
		emit(int(pd.Gap[i]), 0)
	}
	events += finish(buf, onRow)
	_ = events
	return true
}

// SlicePIWMDC implements the differentially-coded PIWM variant, spec.md
// §4.2: each width classified individually, short->1, long->0.
func SlicePIWMDC(pd *pulse.Data, t decoder.ScaledTimings, onRow onRowFunc) bool {
	if !requireNonZero(t.Short, t.Long) {
		return false
	}

	buf := &bitbuf.Buffer{}
	events := 0

	classify := func(width int) {
		switch {
		case width >= t.Reset:
			events += int(onRow(buf))
			buf = &bitbuf.Buffer{}
		case abs(width-t.Short) <= t.Tolerance:
			buf.AddBit(1)
		case abs(width-t.Long) <= t.Tolerance:
			buf.AddBit(0)
		default:
			// noise, ignored
		}
	}

	for i := 0; i < pd.NumPulses(); i++ {
		classify(int(pd.Pulse[i]))
		classify(int(pd.Gap[i]))
	}
	events += finish(buf, onRow)
	_ = events
	return true
}
