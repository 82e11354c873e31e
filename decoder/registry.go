package decoder

import "sort"

// Registry is the explicit, caller-owned list of registered decoders
// (spec.md §9 Design Note: no process-wide mutable registry). It is built
// up once at startup, single-threaded, and treated as read-only during the
// receive loop (spec.md §5).
type Registry struct {
	entries []*entry
}

type entry struct {
	dev   Device
	stats Stats
}

// Register adds dev to the registry. Registration order is preserved and
// is the tie-break for decoders sharing a priority level (spec.md §5:
// "decoders of the same priority run in registration order").
func (reg *Registry) Register(dev Device) {
	reg.entries = append(reg.entries, &entry{dev: dev})
}

// Stats returns a copy of dev's accumulated statistics, or the zero value
// if dev was never registered on reg.
func (reg *Registry) Stats(dev Device) Stats {
	for _, e := range reg.entries {
		if e.dev == dev {
			return e.stats
		}
	}
	return Stats{}
}

// byFamily returns the registered, enabled decoders matching family,
// grouped into ascending-priority levels; decoders within a level keep
// registration order (spec.md §4.4 step 1-2).
func (reg *Registry) byFamily(family Family) []*entry {
	var matched []*entry
	for _, e := range reg.entries {
		if e.dev.Disabled() != Enabled {
			continue
		}
		if e.dev.Modulation().Family() != family {
			continue
		}
		matched = append(matched, e)
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].dev.Priority() < matched[j].dev.Priority()
	})
	return matched
}
