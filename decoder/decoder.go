// Package decoder defines the device decoder contract (spec.md §4.3), the
// priority-ordered registry, and the dispatcher (§4.4) that fans a pulse
// burst out to every decoder registered for its modulation family.
package decoder

import (
	"github.com/merbanan/rtl-433-sub002/bitbuf"
	"github.com/merbanan/rtl-433-sub002/event"
)

// Modulation enumerates the nine slicer kinds of spec.md §4.2, plus the
// FSK-side variants that reuse the same slicer family keyed off this
// value's Family().
type Modulation int

const (
	OOKPCM Modulation = iota
	OOKPPM
	OOKPWM
	OOKManchesterZerobit
	OOKDMC
	OOKPIWMRaw
	OOKPIWMDC
	OOKNRZS
	OOKOSV1
	FSKPCM
	FSKPWM
)

// Family reports which pulse family (AM/OOK or FM/FSK) a modulation
// belongs to, used by the dispatcher to group decoders (§4.4 step 1).
func (m Modulation) Family() Family {
	if m >= FSKPCM {
		return FamilyFSK
	}
	return FamilyOOK
}

func (m Modulation) String() string {
	switch m {
	case OOKPCM:
		return "OOK_PCM"
	case OOKPPM:
		return "OOK_PPM"
	case OOKPWM:
		return "OOK_PWM"
	case OOKManchesterZerobit:
		return "OOK_MC_ZEROBIT"
	case OOKDMC:
		return "OOK_DMC"
	case OOKPIWMRaw:
		return "OOK_PIWM_RAW"
	case OOKPIWMDC:
		return "OOK_PIWM_DC"
	case OOKNRZS:
		return "OOK_NRZS"
	case OOKOSV1:
		return "OOK_OSV1"
	case FSKPCM:
		return "FSK_PCM"
	case FSKPWM:
		return "FSK_PWM"
	default:
		return "UNKNOWN"
	}
}

// Family is the pulse-burst classification the upstream demodulator
// attaches to a PulseData burst (spec.md §6).
type Family int

const (
	FamilyOOK Family = iota
	FamilyFSK
)

// Timings are a decoder's nominal, microsecond-scale modulation
// parameters (spec.md §3).
type Timings struct {
	ShortWidth int
	LongWidth  int
	ResetLimit int
	GapLimit   int
	SyncWidth  int
	Tolerance  int
}

// Scaled converts microsecond timings to sample counts at sampleRate,
// rounding to the nearest sample — the "scaled timings computed at
// registration" of spec.md §3 (s_short, s_long, ...).
func (t Timings) Scaled(sampleRate uint32) ScaledTimings {
	us := func(microseconds int) int {
		return int(float64(microseconds)*float64(sampleRate)/1e6 + 0.5)
	}
	return ScaledTimings{
		Short:     us(t.ShortWidth),
		Long:      us(t.LongWidth),
		Reset:     us(t.ResetLimit),
		Gap:       us(t.GapLimit),
		Sync:      us(t.SyncWidth),
		Tolerance: us(t.Tolerance),
	}
}

// ScaledTimings are Timings converted to sample counts for one sample
// rate.
type ScaledTimings struct {
	Short, Long, Reset, Gap, Sync, Tolerance int
}

// Result is a decode() return value (spec.md §7): non-negative is a count
// of successfully extracted messages (0 means silent rejection), negative
// is one of the categorized failure codes below.
type Result int

const (
	FailOther  Result = -5
	FailSanity Result = -4
	FailMIC    Result = -3
	AbortEarly Result = -2
	AbortLen   Result = -1
)

// Valid reports whether r is one of the enumerated outcomes a decoder is
// allowed to return; anything else is a contract violation (spec.md §7).
func (r Result) Valid() bool {
	return r >= FailOther
}

// DisableLevel mirrors the decoder's runtime-enable state.
type DisableLevel int

const (
	Enabled DisableLevel = iota
	DisabledByDefault
	DisabledExplicitly
)

// Device is the uniform contract every decoder implements (spec.md §4.3).
// Decode is handed a bit buffer assembled by the slicer at a message
// boundary and an emit callback; its return value is one of the Result
// codes above.
type Device interface {
	Name() string
	ID() int
	Modulation() Modulation
	Timings() Timings
	Priority() int
	Disabled() DisableLevel
	Fields() []string
	Decode(buf *bitbuf.Buffer, emit func(event.Record)) Result
}

// Stats holds the per-decoder statistics counters of spec.md §3.
type Stats struct {
	DecodeEvents   int
	DecodeOK       int
	DecodeMessages int
	DecodeFails    [5]int // indexed by -Result - 1, i.e. AbortLen at 0 .. FailOther at 4
}

func (s *Stats) recordResult(r Result) {
	s.DecodeMessages++
	if r > 0 {
		s.DecodeEvents += int(r)
		s.DecodeOK++
		return
	}
	if r == 0 {
		return
	}
	idx := int(-r) - 1
	if idx >= 0 && idx < len(s.DecodeFails) {
		s.DecodeFails[idx]++
	}
}
