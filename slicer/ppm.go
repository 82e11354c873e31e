package slicer

import (
	"github.com/merbanan/rtl-433-sub002/bitbuf"
	"github.com/merbanan/rtl-433-sub002/decoder"
	"github.com/merbanan/rtl-433-sub002/pulse"
)

// SlicePPM implements Pulse Position Modulation, spec.md §4.2: gaps carry
// the code (short->0, long->1, optional sync->row boundary); a reset gap
// ends the message. Ties resolve to the longer class (spec.md §4.2's
// tie-break rule: "<" on the low bound, "<=" on the high bound).
func SlicePPM(pd *pulse.Data, t decoder.ScaledTimings, onRow onRowFunc) bool {
	if !requireNonZero(t.Short, t.Long) {
		return false
	}

	hasSync := t.Sync > 0

	buf := &bitbuf.Buffer{}
	events := 0

	for i := 0; i < pd.NumPulses(); i++ {
		g := int(pd.Gap[i])

		if g > t.Reset {
			events += int(onRow(buf))
			buf = &bitbuf.Buffer{}
			continue
		}

		switch classifyPPMGap(g, t, hasSync) {
		case ppmZero:
			buf.AddBit(0)
		case ppmOne:
			buf.AddBit(1)
		case ppmSync:
			buf.AddSync()
		case ppmNoise:
			// Unrecognized gap width: ignored, per the
			// noise-tolerant contract shared with bitbuf.
		}
	}
	events += finish(buf, onRow)
	_ = events
	return true
}

type ppmClass int

const (
	ppmNoise ppmClass = iota
	ppmZero
	ppmOne
	ppmSync
)

func classifyPPMGap(g int, t decoder.ScaledTimings, hasSync bool) ppmClass {
	if t.Tolerance > 0 {
		if abs(g-t.Short) <= t.Tolerance {
			return ppmZero
		}
		if abs(g-t.Long) <= t.Tolerance {
			return ppmOne
		}
		if hasSync && abs(g-t.Sync) <= t.Tolerance {
			return ppmSync
		}
		return ppmNoise
	}

	lowMid := (t.Short + t.Long) / 2
	if g < lowMid {
		return ppmZero
	}
	if !hasSync {
		return ppmOne
	}
	highMid := (t.Long + t.Sync) / 2
	if g <= highMid {
		return ppmOne
	}
	return ppmSync
}
