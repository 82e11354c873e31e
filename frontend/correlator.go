// Package frontend adapts an rtl_tcp-compatible SDR stream into pulse.Data
// bursts, the out-of-core front end spec.md §6 hands off to the slicer
// package. It stays out of the core decode path's import graph: nothing
// under decoder/, slicer/, devices/ or runtime/ imports it.
package frontend

import (
	"math/cmplx"

	"github.com/bemasher/fftw"
)

// Correlator locates a known bit pattern in a real-valued signal via
// frequency-domain cross-correlation: forward-transform the signal,
// multiply by the conjugated transform of the pattern's basis function, and
// inverse-transform; the index of the largest resulting sample is the most
// likely alignment. This generalizes the teacher's fixed-SCM-preamble
// PreambleDetector to an arbitrary bit pattern and symbol length, so any
// registered decoder's sync word can be used to pre-align a capture before
// slicing.
type Correlator struct {
	forward  fftw.HCDFT1DPlan
	backward fftw.HCDFT1DPlan

	signal   []float64
	template []complex128
}

// NewCorrelator builds a Correlator for the given DFT size, with its basis
// function derived from patternBits (a string of '0'/'1') transmitted at
// symbolLen samples per bit. dftSize must be at least twice the pattern's
// sample length.
func NewCorrelator(dftSize int, patternBits string, symbolLen float64) *Correlator {
	c := &Correlator{}
	c.forward = fftw.NewHCDFT1D(dftSize, nil, nil, fftw.Forward, fftw.InPlace, fftw.Measure)
	c.signal = c.forward.Real
	c.backward = fftw.NewHCDFT1D(dftSize, c.signal, c.forward.Complex, fftw.Backward, fftw.PreAlloc, fftw.Measure)

	for i := range c.signal {
		c.signal[i] = 0
	}
	for idx, bit := range patternBits {
		lower := intRound(float64(idx) * symbolLen)
		upper := intRound(float64(idx+1) * symbolLen)
		v := -1.0
		if bit == '1' {
			v = 1.0
		}
		for i := lower; i < upper && i < len(c.signal); i++ {
			c.signal[i] = v
		}
	}
	c.forward.Execute()
	c.template = make([]complex128, len(c.forward.Complex))
	copy(c.template, c.forward.Complex)
	for i := range c.template {
		c.template[i] = cmplx.Conj(c.template[i])
	}
	return c
}

// Close releases the underlying FFTW plans.
func (c *Correlator) Close() {
	c.forward.Close()
	c.backward.Close()
}

// Align copies signal into the correlator's real buffer and returns the
// sample offset of the best-matching alignment for the pattern this
// Correlator was built with.
func (c *Correlator) Align(signal []float64) int {
	n := copy(c.signal, signal)
	for i := n; i < len(c.signal); i++ {
		c.signal[i] = 0
	}
	c.forward.Execute()
	for i := range c.template {
		c.backward.Complex[i] = c.forward.Complex[i] * c.template[i]
	}
	c.backward.Execute()
	return argmax(c.backward.Real)
}

func argmax(v []float64) (idx int) {
	max := 0.0
	for i, x := range v {
		if max < x {
			max, idx = x, i
		}
	}
	return idx
}

func intRound(f float64) int {
	if f >= 0 {
		return int(f + 0.5)
	}
	return -int(-f + 0.5)
}
