// Package slicer implements the nine modulation-specific functions of
// spec.md §4.2, each converting a pulse.Data burst into a sequence of
// bitbuf.Buffer message boundaries for its decoder.
//
// Every slicer shares the same two-phase shape as the teacher's
// PreambleDetector/Receiver split between setup (timings already scaled to
// this burst's sample rate by decoder.Timings.Scaled, which the dispatcher
// calls for each decoder on every burst, in the spirit of
// NewPreambleDetector) and per-burst work (the main loop here, in the
// spirit of Receiver.Run).
package slicer

import (
	"github.com/merbanan/rtl-433-sub002/bitbuf"
	"github.com/merbanan/rtl-433-sub002/decoder"
)

// onRowFunc matches decoder.SliceFunc's callback: invoked at each detected
// message boundary, returns the decoder's Result for that row.
type onRowFunc func(*bitbuf.Buffer) decoder.Result

// finish delivers any in-progress buffer with at least one non-empty row
// to onRow when the burst ends without a trailing reset gap, so a
// truncated final message in a capture isn't silently dropped.
func finish(buf *bitbuf.Buffer, onRow onRowFunc) int {
	if buf.NumRows() == 0 {
		return 0
	}
	if buf.BitsInRow(buf.NumRows()-1) == 0 && buf.NumRows() == 1 {
		return 0
	}
	r := onRow(buf)
	if r > 0 {
		return int(r)
	}
	return 0
}

func round(f float64) int {
	if f >= 0 {
		return int(f + 0.5)
	}
	return -int(-f + 0.5)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// requireNonZero reports whether every width named is > 0, the "timings
// round to zero at this sample rate" guard of spec.md §4.2's preamble.
func requireNonZero(widths ...int) bool {
	for _, w := range widths {
		if w <= 0 {
			return false
		}
	}
	return true
}
