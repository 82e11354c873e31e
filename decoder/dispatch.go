package decoder

import (
	"fmt"

	"github.com/merbanan/rtl-433-sub002/bitbuf"
	"github.com/merbanan/rtl-433-sub002/event"
	"github.com/merbanan/rtl-433-sub002/pulse"
)

// SliceFunc runs one modulation's slicer over pd using t as the nominal
// timings, invoking onRow at every detected message boundary and
// returning whether all required timings were representable at pd's
// sample rate (false means the slicer refused to run, spec.md §4.2).
// decoder never imports the slicer package directly — the concrete
// slicer.SliceXxx functions are wired in by whoever builds a Dispatcher
// (runtime.Runtime), keeping the dependency one-directional.
type SliceFunc func(pd *pulse.Data, t ScaledTimings, onRow func(*bitbuf.Buffer) Result) (ran bool)

// StatsSink receives statistics updates as they happen, so callers (the
// metrics package) can mirror them into Prometheus counters without the
// decoder package depending on Prometheus.
type StatsSink interface {
	Observe(decoderName string, r Result)
}

// WarnFunc is called once per (decoder, sample rate) pair when a slicer
// can't run because a required timing rounds to zero at this rate
// (spec.md §7).
type WarnFunc func(decoderName string, sampleRate uint32)

// Dispatcher implements spec.md §4.4: given an incoming pulse burst
// classified by family, it groups registered decoders, runs priority
// levels in order with short-circuit on the first level that emits any
// event, and tallies statistics.
type Dispatcher struct {
	Registry *Registry
	Slicers  map[Modulation]SliceFunc
	Emit     func(event.Record)
	Stats    StatsSink
	Warn     WarnFunc

	warned map[warnKey]bool
}

type warnKey struct {
	name string
	rate uint32
}

// Dispatch runs every enabled decoder registered for family against pd,
// honoring the priority short-circuit rule, and returns the decoders that
// actually ran.
func (d *Dispatcher) Dispatch(pd *pulse.Data, family Family) []Device {
	entries := d.Registry.byFamily(family)
	var ran []Device

	i := 0
	for i < len(entries) {
		level := entries[i].dev.Priority()
		j := i
		levelEmitted := false
		for j < len(entries) && entries[j].dev.Priority() == level {
			e := entries[j]
			events := d.runOne(pd, e)
			ran = append(ran, e.dev)
			if events > 0 {
				levelEmitted = true
			}
			j++
		}
		i = j
		if levelEmitted {
			break
		}
	}
	return ran
}

func (d *Dispatcher) runOne(pd *pulse.Data, e *entry) int {
	slice, ok := d.Slicers[e.dev.Modulation()]
	if !ok {
		panic(fmt.Sprintf("decoder: no slicer registered for modulation %s (decoder %s)", e.dev.Modulation(), e.dev.Name()))
	}

	scaled := e.dev.Timings().Scaled(pd.SampleRate)
	total := 0
	ran := slice(pd, scaled, func(buf *bitbuf.Buffer) Result {
		r := e.dev.Decode(buf, d.Emit)
		if !r.Valid() {
			panic(fmt.Sprintf("decoder: %s returned invalid result %d (contract violation)", e.dev.Name(), r))
		}
		e.stats.recordResult(r)
		if d.Stats != nil {
			d.Stats.Observe(e.dev.Name(), r)
		}
		if r > 0 {
			total += int(r)
		}
		return r
	})
	if !ran {
		key := warnKey{e.dev.Name(), pd.SampleRate}
		if d.warned == nil {
			d.warned = make(map[warnKey]bool)
		}
		if !d.warned[key] {
			d.warned[key] = true
			if d.Warn != nil {
				d.Warn(e.dev.Name(), pd.SampleRate)
			}
		}
	}
	return total
}
