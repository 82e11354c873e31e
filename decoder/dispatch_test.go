package decoder

import (
	"testing"

	"github.com/merbanan/rtl-433-sub002/bitbuf"
	"github.com/merbanan/rtl-433-sub002/event"
	"github.com/merbanan/rtl-433-sub002/pulse"
)

type fakeDevice struct {
	name     string
	priority int
	mod      Modulation
	decode   func(buf *bitbuf.Buffer, emit func(event.Record)) Result
	calls    *int
}

func (f *fakeDevice) Name() string           { return f.name }
func (f *fakeDevice) ID() int                { return 0 }
func (f *fakeDevice) Modulation() Modulation  { return f.mod }
func (f *fakeDevice) Timings() Timings       { return Timings{ShortWidth: 100, LongWidth: 200} }
func (f *fakeDevice) Priority() int          { return f.priority }
func (f *fakeDevice) Disabled() DisableLevel { return Enabled }
func (f *fakeDevice) Fields() []string       { return []string{"model"} }
func (f *fakeDevice) Decode(buf *bitbuf.Buffer, emit func(event.Record)) Result {
	*f.calls++
	return f.decode(buf, emit)
}

// oneShotSlicer is a SliceFunc stub that invokes onRow exactly once with an
// empty buffer and reports it ran.
func oneShotSlicer(pd *pulse.Data, t ScaledTimings, onRow func(*bitbuf.Buffer) Result) bool {
	onRow(&bitbuf.Buffer{})
	return true
}

// TestDispatchPriorityShortCircuit is testable property #6: when a
// priority-0 decoder emits, priority-1 decoders registered for the same
// family never run.
func TestDispatchPriorityShortCircuit(t *testing.T) {
	var p0calls, p1calls int
	reg := &Registry{}
	p0 := &fakeDevice{name: "p0", priority: 0, mod: OOKPCM, calls: &p0calls,
		decode: func(*bitbuf.Buffer, func(event.Record)) Result { return 1 }}
	p1 := &fakeDevice{name: "p1", priority: 1, mod: OOKPCM, calls: &p1calls,
		decode: func(*bitbuf.Buffer, func(event.Record)) Result { return 1 }}
	reg.Register(p0)
	reg.Register(p1)

	d := &Dispatcher{
		Registry: reg,
		Slicers:  map[Modulation]SliceFunc{OOKPCM: oneShotSlicer},
		Emit:     func(event.Record) {},
	}

	pd := &pulse.Data{SampleRate: 1_000_000}
	d.Dispatch(pd, FamilyOOK)

	if p0calls != 1 {
		t.Fatalf("priority-0 decoder called %d times, want 1", p0calls)
	}
	if p1calls != 0 {
		t.Fatalf("priority-1 decoder called %d times, want 0 (should be short-circuited)", p1calls)
	}

	stats := reg.Stats(p1)
	if stats.DecodeEvents != 0 {
		t.Fatalf("priority-1 DecodeEvents = %d, want 0", stats.DecodeEvents)
	}
}

// TestDispatchRunsNextLevelWhenNoneEmit confirms the short-circuit only
// triggers on an actual emission: if priority-0 decodes but emits nothing,
// priority-1 still runs.
func TestDispatchRunsNextLevelWhenNoneEmit(t *testing.T) {
	var p0calls, p1calls int
	reg := &Registry{}
	p0 := &fakeDevice{name: "p0", priority: 0, mod: OOKPCM, calls: &p0calls,
		decode: func(*bitbuf.Buffer, func(event.Record)) Result { return 0 }}
	p1 := &fakeDevice{name: "p1", priority: 1, mod: OOKPCM, calls: &p1calls,
		decode: func(*bitbuf.Buffer, func(event.Record)) Result { return 1 }}
	reg.Register(p0)
	reg.Register(p1)

	d := &Dispatcher{
		Registry: reg,
		Slicers:  map[Modulation]SliceFunc{OOKPCM: oneShotSlicer},
		Emit:     func(event.Record) {},
	}

	pd := &pulse.Data{SampleRate: 1_000_000}
	d.Dispatch(pd, FamilyOOK)

	if p0calls != 1 || p1calls != 1 {
		t.Fatalf("p0calls=%d p1calls=%d, want 1,1", p0calls, p1calls)
	}
}

// TestRunOnePanicsOnMissingSlicer confirms the contract-violation panic for
// a modulation with no registered slicer.
func TestRunOnePanicsOnMissingSlicer(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for missing slicer")
		}
	}()
	reg := &Registry{}
	calls := 0
	dev := &fakeDevice{name: "no-slicer", priority: 0, mod: OOKDMC, calls: &calls,
		decode: func(*bitbuf.Buffer, func(event.Record)) Result { return 0 }}
	reg.Register(dev)
	d := &Dispatcher{Registry: reg, Slicers: map[Modulation]SliceFunc{}, Emit: func(event.Record) {}}
	pd := &pulse.Data{SampleRate: 1_000_000}
	d.Dispatch(pd, FamilyOOK)
}

// TestRunOnePanicsOnInvalidResult confirms a decoder returning a Result
// outside the enumerated contract triggers a panic rather than being
// silently tallied.
func TestRunOnePanicsOnInvalidResult(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for invalid Result")
		}
	}()
	reg := &Registry{}
	calls := 0
	dev := &fakeDevice{name: "bad-result", priority: 0, mod: OOKPCM, calls: &calls,
		decode: func(*bitbuf.Buffer, func(event.Record)) Result { return Result(-99) }}
	reg.Register(dev)
	d := &Dispatcher{
		Registry: reg,
		Slicers:  map[Modulation]SliceFunc{OOKPCM: oneShotSlicer},
		Emit:     func(event.Record) {},
	}
	pd := &pulse.Data{SampleRate: 1_000_000}
	d.Dispatch(pd, FamilyOOK)
}
