package slicer

import (
	"github.com/merbanan/rtl-433-sub002/bitbuf"
	"github.com/merbanan/rtl-433-sub002/decoder"
	"github.com/merbanan/rtl-433-sub002/pulse"
)

// pwmLabel is what a classified pulse width means: a data bit, a sync
// landmark, spurious noise to ignore, or "too long, end this row".
type pwmLabel int

const (
	pwmSpurious pwmLabel = iota
	pwmBitOne
	pwmBitZero
	pwmSync
	pwmEndRow
)

// classifyPWMPulse implements spec.md §4.2 PWM's four sub-cases, each
// deriving lower/upper bounds as midpoints between the nominal widths
// present (short, long, and — in three of the four cases — sync),
// ordered however sync_width actually falls relative to short/long.
func classifyPWMPulse(p int, t decoder.ScaledTimings) pwmLabel {
	short, long, sync := t.Short, t.Long, t.Sync

	switch {
	case sync <= 0: // (i) no sync
		lower := short / 2
		mid := (short + long) / 2
		upper := long + (long-short)/2
		switch {
		case p < lower:
			return pwmSpurious
		case p <= mid:
			return pwmBitOne
		case p <= upper:
			return pwmBitZero
		default:
			return pwmEndRow
		}

	case sync < short: // (ii) sync < short < long
		lower := sync / 2
		b1 := (sync + short) / 2
		b2 := (short + long) / 2
		upper := long + (long-short)/2
		switch {
		case p < lower:
			return pwmSpurious
		case p <= b1:
			return pwmSync
		case p <= b2:
			return pwmBitOne
		case p <= upper:
			return pwmBitZero
		default:
			return pwmEndRow
		}

	case sync < long: // (iii) short < sync < long
		lower := short / 2
		b1 := (short + sync) / 2
		b2 := (sync + long) / 2
		upper := long + (long-sync)/2
		switch {
		case p < lower:
			return pwmSpurious
		case p <= b1:
			return pwmBitOne
		case p <= b2:
			return pwmSync
		case p <= upper:
			return pwmBitZero
		default:
			return pwmEndRow
		}

	default: // (iv) long < sync
		lower := short / 2
		b1 := (short + long) / 2
		b2 := (long + sync) / 2
		upper := sync + (sync-long)/2
		switch {
		case p < lower:
			return pwmSpurious
		case p <= b1:
			return pwmBitOne
		case p <= b2:
			return pwmBitZero
		case p <= upper:
			return pwmSync
		default:
			return pwmEndRow
		}
	}
}

// SlicePWM implements Pulse Width Modulation, spec.md §4.2.
func SlicePWM(pd *pulse.Data, t decoder.ScaledTimings, onRow onRowFunc) bool {
	if !requireNonZero(t.Short, t.Long) {
		return false
	}

	buf := &bitbuf.Buffer{}
	events := 0

	for i := 0; i < pd.NumPulses(); i++ {
		p := int(pd.Pulse[i])
		g := int(pd.Gap[i])

		switch classifyPWMPulse(p, t) {
		case pwmBitOne:
			buf.AddBit(1)
		case pwmBitZero:
			buf.AddBit(0)
		case pwmSync:
			buf.AddSync()
		case pwmEndRow:
			buf.AddRow()
		case pwmSpurious:
			// ignored
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
