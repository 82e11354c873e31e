// Package runtime wires together a decoder.Registry, a decoder.Dispatcher,
// and the concrete slicer.SliceXxx functions into one owned value — the
// "explicit Runtime instead of a process-wide registry" re-architecture of
// spec.md §9's design notes. It is the only package that imports both
// decoder and slicer, keeping that dependency one-directional.
package runtime

import (
	"github.com/merbanan/rtl-433-sub002/bitbuf"
	"github.com/merbanan/rtl-433-sub002/decoder"
	"github.com/merbanan/rtl-433-sub002/event"
	"github.com/merbanan/rtl-433-sub002/pulse"
	"github.com/merbanan/rtl-433-sub002/slicer"
)

// Runtime owns a decoder registry and the dispatcher that fans pulse bursts
// out across it. Callers construct one with New, Register their decoders
// against it, then call Dispatch per incoming burst.
type Runtime struct {
	Registry   *decoder.Registry
	Dispatcher *decoder.Dispatcher

	overrides map[string]DecoderOverride
}

// New builds a Runtime with every built-in slicer wired into the
// dispatcher's Slicers map, keyed by the Modulation each one implements.
// FSK_PCM and FSK_PWM reuse the OOK PCM/PWM slicers: the width
// classification logic is identical, only the family grouping used for
// dispatch priority differs (spec.md §4.4).
func New(emit func(event.Record)) *Runtime {
	reg := &decoder.Registry{}
	disp := &decoder.Dispatcher{
		Registry: reg,
		Emit:     emit,
		Slicers: map[decoder.Modulation]decoder.SliceFunc{
			decoder.OOKPCM: func(pd *pulse.Data, t decoder.ScaledTimings, onRow func(*bitbuf.Buffer) decoder.Result) bool {
				return slicer.SlicePCM(pd, t, onRow)
			},
			decoder.OOKPPM: func(pd *pulse.Data, t decoder.ScaledTimings, onRow func(*bitbuf.Buffer) decoder.Result) bool {
				return slicer.SlicePPM(pd, t, onRow)
			},
			decoder.OOKPWM: func(pd *pulse.Data, t decoder.ScaledTimings, onRow func(*bitbuf.Buffer) decoder.Result) bool {
				return slicer.SlicePWM(pd, t, onRow)
			},
			decoder.OOKManchesterZerobit: func(pd *pulse.Data, t decoder.ScaledTimings, onRow func(*bitbuf.Buffer) decoder.Result) bool {
				return slicer.SliceManchesterZerobit(pd, t, onRow)
			},
			decoder.OOKDMC: func(pd *pulse.Data, t decoder.ScaledTimings, onRow func(*bitbuf.Buffer) decoder.Result) bool {
				return slicer.SliceDMC(pd, t, onRow)
			},
			decoder.OOKPIWMRaw: func(pd *pulse.Data, t decoder.ScaledTimings, onRow func(*bitbuf.Buffer) decoder.Result) bool {
				return slicer.SlicePIWMRaw(pd, t, onRow)
			},
			decoder.OOKPIWMDC: func(pd *pulse.Data, t decoder.ScaledTimings, onRow func(*bitbuf.Buffer) decoder.Result) bool {
				return slicer.SlicePIWMDC(pd, t, onRow)
			},
			decoder.OOKNRZS: func(pd *pulse.Data, t decoder.ScaledTimings, onRow func(*bitbuf.Buffer) decoder.Result) bool {
				return slicer.SliceNRZS(pd, t, onRow)
			},
			decoder.OOKOSV1: func(pd *pulse.Data, t decoder.ScaledTimings, onRow func(*bitbuf.Buffer) decoder.Result) bool {
				return slicer.SliceOSV1(pd, t, onRow)
			},
			decoder.FSKPCM: func(pd *pulse.Data, t decoder.ScaledTimings, onRow func(*bitbuf.Buffer) decoder.Result) bool {
				return slicer.SlicePCM(pd, t, onRow)
			},
			decoder.FSKPWM: func(pd *pulse.Data, t decoder.ScaledTimings, onRow func(*bitbuf.Buffer) decoder.Result) bool {
				return slicer.SlicePWM(pd, t, onRow)
			},
		},
	}
	return &Runtime{Registry: reg, Dispatcher: disp}
}

// Register adds dev to the runtime, applying any override loaded via
// LoadOverrides for dev.Name() first.
func (rt *Runtime) Register(dev decoder.Device) {
	if o, ok := rt.overrides[dev.Name()]; ok {
		dev = &overriddenDevice{Device: dev, override: o}
	}
	rt.Registry.Register(dev)
}

// Dispatch fans pd out to every enabled decoder of the given family,
// honoring the priority short-circuit rule (spec.md §4.4).
func (rt *Runtime) Dispatch(pd *pulse.Data, family decoder.Family) []decoder.Device {
	return rt.Dispatcher.Dispatch(pd, family)
}
