package slicer

import (
	"github.com/merbanan/rtl-433-sub002/bitbuf"
	"github.com/merbanan/rtl-433-sub002/decoder"
	"github.com/merbanan/rtl-433-sub002/pulse"
)

// SliceDMC implements Differential Manchester Code, spec.md §4.2: a short
// symbol (within tolerance) requires a matching second short symbol to
// complete a 1 bit; a long symbol (within tolerance) is a 0 bit on its
// own. A reset-length symbol ends the message.
func SliceDMC(pd *pulse.Data, t decoder.ScaledTimings, onRow onRowFunc) bool {
	if !requireNonZero(t.Short, t.Long) {
		return false
	}

	widths := interleave(pd)

	buf := &bitbuf.Buffer{}
	events := 0
	pendingShort := false

	for _, w := range widths {
		switch {
		case w >= t.Reset:
			events += int(onRow(buf))
			buf = &bitbuf.Buffer{}
			pendingShort = false

		case abs(w-t.Short) <= t.Tolerance:
			if pendingShort {
				buf.AddBit(1)
				pendingShort = false
			} else {
				pendingShort = true
			}

		case abs(w-t.Long) <= t.Tolerance:
			// A long symbol can't complete a pending short; that's
			// a framing error, so the decoder starts a fresh row
			// rather than emitting a bogus bit.
			if pendingShort {
				buf.AddRow()
				pendingShort = false
			}
			buf.AddBit(0)

		default:
			// Unrecognized symbol width: noise, ignored.
			pendingShort = false
		}
	}
	events += finish(buf, onRow)
	_ = events
	return true
}

// interleave flattens a burst's pulse/gap pairs into a single sequence of
// symbol widths, pulse then gap for each index, the shape DMC/PIWM decode
// over since both halves of a period carry information equally.
func interleave(pd *pulse.Data) []int {
	n := pd.NumPulses()
	out := make([]int, 0, n*2)
	for i := 0; i < n; i++ {
		out = append(out, int(pd.Pulse[i]), int(pd.Gap[i]))
	}
	return out
}
