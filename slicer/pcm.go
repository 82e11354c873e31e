package slicer

import (
	"github.com/merbanan/rtl-433-sub002/bitbuf"
	"github.com/merbanan/rtl-433-sub002/decoder"
	"github.com/merbanan/rtl-433-sub002/pulse"
)

// exactRefitMinRZ and exactRefitMinNRZ are the minimum number of
// consistent leading pulses required before the PCM slicer trusts a
// preamble-measured bit rate over the decoder's nominal one (spec.md
// §4.2). exactRefitMinRZ applies when short_width's ratio to long_width
// marks this as RZ coding (pulse = short bit cell, separate from gap);
// exactRefitMinNRZ applies to NRZ coding (pulse encodes a run of bits).
const (
	exactRefitMinRZ  = 4
	exactRefitMinNRZ = 12
	// looseRefitMin gates the second, within-tolerance-anywhere refit
	// pass: spec.md §9's Open Question preserves both passes, since some
	// decoders rely on the looser fit, but keeps the looser one behind a
	// minimum sample count of its own.
	looseRefitMin = 6
)

// SlicePCM implements Pulse Code Modulation (RZ and NRZ), spec.md §4.2.
func SlicePCM(pd *pulse.Data, t decoder.ScaledTimings, onRow onRowFunc) bool {
	if !requireNonZero(t.Short, t.Long) {
		return false
	}

	isRZ := t.Short < t.Long
	short, long := refitPCM(pd, t, isRZ)

	buf := &bitbuf.Buffer{}
	events := 0

	for i := 0; i < pd.NumPulses(); i++ {
		p := int(pd.Pulse[i])
		g := int(pd.Gap[i])

		if isRZ {
			if abs(p-short) > t.Tolerance {
				// Pulse doesn't fit the nominal width: end
				// the current row and start a new one. The
				// bits already in the ended row are kept in
				// the buffer handed to the decoder.
				buf.AddRow()
			} else {
				buf.AddBit(1)
			}
		} else {
			ones := round(float64(p) / float64(short))
			for k := 0; k < ones; k++ {
				buf.AddBit(1)
			}
		}

		zeros := round((float64(g) - float64(long-short)) / float64(long))
		maxZeros := t.Gap / long
		if zeros > maxZeros {
			zeros = maxZeros
		}
		for k := 0; k < zeros; k++ {
			buf.AddBit(0)
		}

		if g > t.Reset {
			events += int(onRow(buf))
			buf = &bitbuf.Buffer{}
		} else if g > t.Gap {
			buf.AddRow()
		}
	}
	events += finish(buf, onRow)
	_ = events
	return true
}

// refitPCM implements spec.md §9's two overlapping preamble-fit passes:
// an exact-match pass over a leading run of consistent pulses, then (only
// if there's enough data) a looser within-tolerance-anywhere pass. Both
// refine short/long as measured averages; if neither pass finds enough
// consistent pulses, the decoder's nominal timings are used unchanged.
func refitPCM(pd *pulse.Data, t decoder.ScaledTimings, isRZ bool) (short, long int) {
	short, long = t.Short, t.Long

	minExact := exactRefitMinNRZ
	if isRZ {
		minExact = exactRefitMinRZ
	}

	n := pd.NumPulses()
	if n == 0 {
		return
	}

	// Pass 1: exact match within tolerance against the nominal width.
	exactCount := 0
	sum := 0
	for i := 0; i < n && i < minExact*2; i++ {
		p := int(pd.Pulse[i])
		if abs(p-t.Short) <= t.Tolerance {
			exactCount++
			sum += p
			continue
		}
		break
	}
	if exactCount >= minExact {
		short = sum / exactCount
		if isRZ {
			long = short + (t.Long - t.Short)
		} else {
			long = t.Long
		}
		return
	}

	// Pass 2: looser fit (twice the tolerance, anywhere in the burst),
	// gated behind looseRefitMin pulses so it only engages for bursts
	// long enough to make it trustworthy.
	if n < looseRefitMin {
		return
	}
	looseCount := 0
	looseSum := 0
	for i := 0; i < n; i++ {
		p := int(pd.Pulse[i])
		if abs(p-t.Short) <= t.Tolerance*2 {
			looseCount++
			looseSum += p
		}
	}
	if looseCount >= looseRefitMin {
		short = looseSum / looseCount
		if isRZ {
			long = short + (t.Long - t.Short)
		} else {
			long = t.Long
		}
	}
	return
}
