package flex

import (
	"fmt"

	"github.com/merbanan/rtl-433-sub002/bitbuf"
	"github.com/merbanan/rtl-433-sub002/decoder"
	"github.com/merbanan/rtl-433-sub002/event"
)

// Decoder wraps a parsed Spec as a decoder.Device, the "dynamic decoder
// instance with match/preamble/get rules" of spec.md §4.6.
type Decoder struct {
	spec *Spec
}

// New wraps spec as a decoder.Device.
func New(spec *Spec) *Decoder { return &Decoder{spec: spec} }

func (d *Decoder) Name() string                { return d.spec.Name }
func (d *Decoder) ID() int                     { return 0 }
func (d *Decoder) Modulation() decoder.Modulation { return d.spec.Mod }
func (d *Decoder) Timings() decoder.Timings    { return d.spec.Timings }
func (d *Decoder) Priority() int               { return 10 } // flex decoders default to a low (late) priority
func (d *Decoder) Disabled() decoder.DisableLevel { return decoder.Enabled }

func (d *Decoder) Fields() []string {
	fields := []string{"model", "count"}
	for _, g := range d.spec.Gets {
		fields = append(fields, g.Name)
	}
	return fields
}

// Decode applies the filters in this order: row count, global invert, then
// per row bit length, repeat count, match filter, preamble
// search/align/truncate — then emits one record per surviving row.
// Inverting before the length and repeat checks does not change their
// outcome.
func (d *Decoder) Decode(buf *bitbuf.Buffer, emit func(event.Record)) decoder.Result {
	s := d.spec

	if s.RowsFilter != nil && !s.RowsFilter.Match(buf.NumRows()) {
		return 0
	}

	if s.Invert {
		buf.Invert()
	}

	matched := 0
	for r := 0; r < buf.NumRows(); r++ {
		bits := buf.BitsInRow(r)

		if s.BitsFilter != nil && !s.BitsFilter.Match(bits) {
			continue
		}

		if s.RepeatsFilter != nil {
			repeats := d.countRepeats(buf, r)
			if !s.RepeatsFilter.Match(repeats) {
				continue
			}
		}

		start := 0
		if s.MatchBits > 0 {
			pos := buf.Search(r, 0, s.Match, s.MatchBits)
			if pos >= bits {
				continue
			}
		}

		if s.PreambleBits > 0 {
			pos := buf.Search(r, 0, s.Preamble, s.PreambleBits)
			if pos >= bits {
				continue
			}
			start = pos + s.PreambleBits
		}

		rec := event.New(s.Name)
		if s.CountOnly {
			matched++
			continue
		}
		rec.Set("len", event.IntValue(int64(bits-start)))
		rec.Set("data", event.StringValue(fmt.Sprintf("%x", buf.ExtractBytes(r, start, bits-start))))
		for _, g := range s.Gets {
			rec.Set(g.Name, d.extract(buf, r, start, g))
		}
		emit(*rec)
		matched++
	}

	if s.CountOnly && matched > 0 {
		rec := event.New(s.Name)
		rec.Set("count", event.IntValue(int64(matched)))
		emit(*rec)
	}

	if matched == 0 {
		return 0
	}
	return decoder.Result(matched)
}

func (d *Decoder) countRepeats(buf *bitbuf.Buffer, r int) int {
	bits := buf.BitsInRow(r)
	count := 1
	for j := 0; j < buf.NumRows(); j++ {
		if j == r {
			continue
		}
		if buf.BitsInRow(j) != bits {
			continue
		}
		same := true
		for k := 0; k < bits; k++ {
			if buf.Bit(r, k) != buf.Bit(j, k) {
				same = false
				break
			}
		}
		if same {
			count++
		}
	}
	return count
}

func (d *Decoder) extract(buf *bitbuf.Buffer, r, base int, g GetRule) event.Value {
	bytes := buf.ExtractBytes(r, base+g.BitOffset, g.BitCount)
	var v int64
	for _, b := range bytes {
		v = v<<8 | int64(b)
	}
	if g.BitCount%8 != 0 {
		v >>= uint(len(bytes)*8 - g.BitCount)
	}
	if g.Mask != nil {
		v &= int64(*g.Mask)
	}
	if g.ValueMap != nil {
		if s, ok := g.ValueMap[v]; ok {
			return event.StringValue(s)
		}
	}
	return event.IntValue(v)
}
