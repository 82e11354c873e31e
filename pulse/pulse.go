// Package pulse holds the immutable per-burst pulse/gap record produced by
// the (out-of-core) front end and consumed by the slicer package.
package pulse

// MaxPulses bounds the number of pulse/gap pairs held by a single Data
// burst (PD_MAX_PULSES in the original design, ~32k).
const MaxPulses = 1 << 15

// Data is one captured burst: parallel pulse/gap arrays in integer sample
// counts, plus the level estimates and timing metadata the front end
// attaches. It is immutable once handed to a slicer; the producer owns it
// until then and discards it afterwards.
type Data struct {
	SampleRate uint32

	// Pulse[i] and Gap[i] are sample counts for the i'th pulse/gap pair.
	// len(Pulse) == len(Gap); both are bounded by MaxPulses.
	Pulse []int32
	Gap   []int32

	OOKHighEstimate int32
	OOKLowEstimate  int32
	FSKF1Est        int32
	FSKF2Est        int32

	// StartAgo is samples elapsed, at the time this Data was finalized,
	// since the burst actually started.
	StartAgo uint64
}

// NumPulses reports how many pulse/gap pairs are present.
func (d *Data) NumPulses() int {
	if len(d.Pulse) < len(d.Gap) {
		return len(d.Pulse)
	}
	return len(d.Gap)
}

// New allocates a Data with pulse/gap capacity reserved up front, mirroring
// the fixed-capacity burst buffers the front end rotates in place.
func New(sampleRate uint32, capacity int) *Data {
	if capacity > MaxPulses {
		capacity = MaxPulses
	}
	return &Data{
		SampleRate: sampleRate,
		Pulse:      make([]int32, 0, capacity),
		Gap:        make([]int32, 0, capacity),
	}
}

// Add appends one pulse/gap pair, silently dropping it once MaxPulses is
// reached — the same noise-tolerant truncation bitbuf.Buffer uses.
func (d *Data) Add(pulseWidth, gapWidth int32) {
	if len(d.Pulse) >= MaxPulses {
		return
	}
	d.Pulse = append(d.Pulse, pulseWidth)
	d.Gap = append(d.Gap, gapWidth)
}

// Scale returns a copy with every pulse/gap width and the sample rate
// multiplied by factor, rounding to the nearest sample. Used by the
// slicer-monotonicity test (spec.md §8 item 5): scaling widths and sample
// rate by the same factor must yield byte-identical slicer output.
func (d *Data) Scale(factor float64) *Data {
	out := &Data{
		SampleRate:      uint32(float64(d.SampleRate) * factor),
		Pulse:           make([]int32, len(d.Pulse)),
		Gap:             make([]int32, len(d.Gap)),
		OOKHighEstimate: d.OOKHighEstimate,
		OOKLowEstimate:  d.OOKLowEstimate,
		FSKF1Est:        d.FSKF1Est,
		FSKF2Est:        d.FSKF2Est,
		StartAgo:        d.StartAgo,
	}
	for i := range d.Pulse {
		out.Pulse[i] = round32(float64(d.Pulse[i]) * factor)
		out.Gap[i] = round32(float64(d.Gap[i]) * factor)
	}
	return out
}

func round32(f float64) int32 {
	if f >= 0 {
		return int32(f + 0.5)
	}
	return -int32(-f + 0.5)
}
