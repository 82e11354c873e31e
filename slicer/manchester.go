package slicer

import (
	"github.com/merbanan/rtl-433-sub002/bitbuf"
	"github.com/merbanan/rtl-433-sub002/decoder"
	"github.com/merbanan/rtl-433-sub002/pulse"
)

// SliceManchesterZerobit implements the Manchester-zero-bit slicer of
// spec.md §4.2: bi-phase decoding where the first rising edge is
// hard-coded as a 0. A data edge exists once the accumulated time since
// the last bit exceeds short_width*1.5; a falling edge (high->low) then
// yields 1, a rising edge (low->high) yields 0. An anomalously wide
// half-period resets decoder state and starts a new row (bits already in
// the buffer are kept); a reset gap ends the message.
func SliceManchesterZerobit(pd *pulse.Data, t decoder.ScaledTimings, onRow onRowFunc) bool {
	if !requireNonZero(t.Short) {
		return false
	}

	threshold := float64(t.Short) * 1.5
	anomaly := t.Short * 4

	buf := &bitbuf.Buffer{}
	events := 0

	// First half-period's rising edge is hard-coded 0; AddBit(0) is
	// only emitted once we've actually started a row via the first
	// observed data edge, matching "the first rising edge is 0" rather
	// than always prepending a bit before any data arrives.
	seenFirstEdge := false
	elapsed := 0.0

	processHalf := func(width int, isHigh bool) {
		if width > anomaly {
			// Anomalous pulse width: reset decoder state.
			buf.AddRow()
			elapsed = 0
			seenFirstEdge = false
			return
		}
		elapsed += float64(width)
		if elapsed < threshold {
			return
		}
		elapsed = 0
		if !seenFirstEdge {
			seenFirstEdge = true
			buf.AddBit(0)
			return
		}
		if isHigh {
			// This half-period ending was a falling edge
			// (high -> low transition follows): 1.
			buf.AddBit(1)
		} else {
			// Rising edge (low -> high follows): 0.
			buf.AddBit(0)
		}
	}

	for i := 0; i < pd.NumPulses(); i++ {
		processHalf(int(pd.Pulse[i]), true)

		g := int(pd.Gap[i])
		if g > t.Reset {
			events += int(onRow(buf))
			buf = &bitbuf.Buffer{}
			elapsed = 0
			seenFirstEdge = false
			continue
		}
		processHalf(g, false)
	}
	events += finish(buf, onRow)
	_ = events
	return true
}
