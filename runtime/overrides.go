package runtime

import (
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/merbanan/rtl-433-sub002/decoder"
)

// DecoderOverride adjusts one registered decoder's runtime-enable state or
// priority, loaded from a small YAML list — the narrow, decoder-scoped
// slice of "configuration" this system carries; general config-file and
// CLI parsing are out of scope (spec.md §1).
type DecoderOverride struct {
	Name     string `yaml:"name"`
	Disabled *bool  `yaml:"disabled,omitempty"`
	Priority *int   `yaml:"priority,omitempty"`
}

// LoadOverrides parses a YAML document of decoder overrides (a top-level
// list) and stores them for application by subsequent Register calls.
// Overrides loaded after a decoder is already registered have no effect on
// it; LoadOverrides should run before Register.
func (rt *Runtime) LoadOverrides(data []byte) error {
	var list []DecoderOverride
	if err := yaml.Unmarshal(data, &list); err != nil {
		return errors.Wrap(err, "runtime: parsing decoder overrides")
	}
	if rt.overrides == nil {
		rt.overrides = make(map[string]DecoderOverride, len(list))
	}
	for _, o := range list {
		rt.overrides[o.Name] = o
	}
	return nil
}

// overriddenDevice wraps a decoder.Device, substituting its Priority and/or
// Disabled state per a loaded DecoderOverride while delegating every other
// method unchanged.
type overriddenDevice struct {
	decoder.Device
	override DecoderOverride
}

func (o *overriddenDevice) Priority() int {
	if o.override.Priority != nil {
		return *o.override.Priority
	}
	return o.Device.Priority()
}

func (o *overriddenDevice) Disabled() decoder.DisableLevel {
	if o.override.Disabled != nil {
		if *o.override.Disabled {
			return decoder.DisabledExplicitly
		}
		return decoder.Enabled
	}
	return o.Device.Disabled()
}
