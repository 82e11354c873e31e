package slicer

import (
	"github.com/merbanan/rtl-433-sub002/bitbuf"
	"github.com/merbanan/rtl-433-sub002/decoder"
	"github.com/merbanan/rtl-433-sub002/pulse"
)

// preambleHalfBits is the fixed preamble length spec.md §4.2 requires for
// OSv1: exactly 12 consistent half-bit pulses before the sync landmark.
const preambleHalfBits = 12

// SliceOSV1 implements the Oregon Scientific v1 slicer, spec.md §4.2: a
// preamble of exactly 12 consistent half-bit pulses, then a sync pulse at
// least twice the measured half-bit width, then a Manchester-style decode
// of the remaining pulses where every other half-period yields a bit.
func SliceOSV1(pd *pulse.Data, t decoder.ScaledTimings, onRow onRowFunc) bool {
	if !requireNonZero(t.Short) {
		return false
	}

	n := pd.NumPulses()
	if n < preambleHalfBits+1 {
		return true // not enough data to frame a message; not a slicer failure
	}

	halfBitMax := 0
	sum := 0
	for i := 0; i < preambleHalfBits; i++ {
		p := int(pd.Pulse[i])
		if abs(p-t.Short) > t.Tolerance {
			// Preamble inconsistent: no message this burst, but
			// the slicer itself ran fine.
			return true
		}
		sum += p
		if p > halfBitMax {
			halfBitMax = p
		}
	}
	avgHalfBit := sum / preambleHalfBits

	syncIdx := preambleHalfBits
	if int(pd.Pulse[syncIdx]) < 2*halfBitMax {
		return true
	}

	buf := &bitbuf.Buffer{}
	events := 0
	for i := syncIdx + 1; i < n; i++ {
		p := int(pd.Pulse[i])
		g := int(pd.Gap[i])

		if g > t.Reset {
			events += int(onRow(buf))
			buf = &bitbuf.Buffer{}
			continue
		}

		if p < g {
			buf.AddBit(1)
		} else {
			buf.AddBit(0)
		}
		_ = avgHalfBit
	}
	events += finish(buf, onRow)
	_ = events
	return true
}
