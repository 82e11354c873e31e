// Package event defines the typed structured record decoders emit, per the
// spec.md §9 Design Note that replaces the original's linked-list
// (key,type,value) chain with a sum type owned by the emitter.
// Serialization to any wire format is entirely a sink-layer concern and
// out of scope here (spec.md §1).
package event

// Kind discriminates the payload carried by a Value.
type Kind int

const (
	KindInt Kind = iota
	KindDouble
	KindString
	KindArray
	KindRecord
)

// Value is a sum type over the field payload kinds a decoder can emit.
type Value struct {
	Kind   Kind
	Int    int64
	Double float64
	Str    string
	Arr    []Value
	Rec    *Record
}

// IntValue, DoubleValue, StringValue, ArrayValue and RecordValue are
// convenience constructors mirroring the spec's four leaf kinds plus the
// nested-record kind.
func IntValue(v int64) Value      { return Value{Kind: KindInt, Int: v} }
func DoubleValue(v float64) Value { return Value{Kind: KindDouble, Double: v} }
func StringValue(v string) Value  { return Value{Kind: KindString, Str: v} }
func ArrayValue(v []Value) Value  { return Value{Kind: KindArray, Arr: v} }
func RecordValue(v *Record) Value { return Value{Kind: KindRecord, Rec: v} }

// Field is one (key, label, value, format) entry in a Record. Format is an
// optional printf-style hint for sinks (e.g. "%.1f"); it carries no
// meaning within the core.
type Field struct {
	Key    string
	Label  string
	Format string
	Value  Value
}

// Record is the decoded-message payload handed to the consumer callback.
// It is constructed fresh per successful decode; the emitter's ownership
// passes entirely to whoever receives it from the emit callback.
type Record struct {
	Fields []Field
}

// Set appends or replaces a field by key and returns the Record, so
// decoders can build a Record with a terse chain of calls.
func (r *Record) Set(key string, v Value) *Record {
	for i := range r.Fields {
		if r.Fields[i].Key == key {
			r.Fields[i].Value = v
			return r
		}
	}
	r.Fields = append(r.Fields, Field{Key: key, Value: v})
	return r
}

// SetLabel is Set with an explicit sink-facing label.
func (r *Record) SetLabel(key, label string, v Value) *Record {
	r.Set(key, v)
	r.Fields[len(r.Fields)-1].Label = label
	return r
}

// Get returns the field value for key and whether it was present.
func (r *Record) Get(key string) (Value, bool) {
	for _, f := range r.Fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return Value{}, false
}

// New returns a Record seeded with a "model" field, the field every device
// decoder sets first.
func New(model string) *Record {
	r := &Record{}
	r.Set("model", StringValue(model))
	return r
}
