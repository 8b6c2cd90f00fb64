package snapshot

import (
	"cmp"
	"encoding/json"
	"maps"
	"slices"
)

// Metadata stores opaque key-value pairs carried alongside the typed fields
// of a process or resource. Forward-compatible extra fields from snapshot
// producers land here and are written back verbatim on marshal.
type Metadata map[string]any

// Clone returns a deep copy of the metadata. Nested JSON-shaped values
// (objects and arrays) are copied recursively; scalars are shared, which is
// safe because they are immutable.
func (m Metadata) Clone() Metadata {
	if m == nil {
		return nil
	}
	out := make(Metadata, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = cloneValue(e)
		}
		return out
	case Metadata:
		return map[string]any(t.Clone())
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	default:
		return t
	}
}

// Process is one entry in a snapshot's process list.
type Process struct {
	PID   int      // Process id, unique within a snapshot
	Name  string   // Display name, may be empty
	Extra Metadata // Opaque fields passed through from the producer
}

// MarshalJSON flattens Extra into the process object. The typed fields are
// written last so they win over colliding extra keys.
func (p Process) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(p.Extra)+2)
	maps.Copy(m, p.Extra)
	m["pid"] = p.PID
	if p.Name != "" {
		m["name"] = p.Name
	} else {
		delete(m, "name")
	}
	return json.Marshal(m)
}

// UnmarshalJSON fills the typed fields and collects everything else into
// Extra. Extra stays nil when the object carries no unknown fields.
func (p *Process) UnmarshalJSON(data []byte) error {
	type plain struct {
		PID  int    `json:"pid"`
		Name string `json:"name"`
	}
	var known plain
	if err := json.Unmarshal(data, &known); err != nil {
		return err
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	delete(raw, "pid")
	delete(raw, "name")
	p.PID = known.PID
	p.Name = known.Name
	if len(raw) > 0 {
		p.Extra = raw
	} else {
		p.Extra = nil
	}
	return nil
}

// Clone returns a deep copy of the process.
func (p Process) Clone() Process {
	p.Extra = p.Extra.Clone()
	return p
}

// Resource describes one resource type and how many interchangeable units
// of it exist.
type Resource struct {
	Total int      // Number of units that exist, regardless of allocation
	Extra Metadata // Opaque fields passed through from the producer
}

// MarshalJSON flattens Extra into the resource object, typed fields last.
func (r Resource) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(r.Extra)+1)
	maps.Copy(m, r.Extra)
	m["total"] = r.Total
	return json.Marshal(m)
}

// UnmarshalJSON fills Total and collects unknown fields into Extra.
func (r *Resource) UnmarshalJSON(data []byte) error {
	type plain struct {
		Total int `json:"total"`
	}
	var known plain
	if err := json.Unmarshal(data, &known); err != nil {
		return err
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	delete(raw, "total")
	r.Total = known.Total
	if len(raw) > 0 {
		r.Extra = raw
	} else {
		r.Extra = nil
	}
	return nil
}

// Clone returns a deep copy of the resource.
func (r Resource) Clone() Resource {
	r.Extra = r.Extra.Clone()
	return r
}

// Snapshot is a point-in-time capture of system state: which processes
// exist, which resources exist, who holds what, and who waits for what.
//
// The zero value is a valid empty snapshot. Snapshots are plain data with
// no internal synchronization; share them read-only or [Snapshot.Clone]
// them first.
type Snapshot struct {
	// Processes is the ordered process list. Order is preserved through a
	// JSON round trip and determines node order in derived views.
	Processes []Process `json:"processes"`

	// Resources maps resource id to its description.
	Resources map[string]Resource `json:"resources"`

	// Allocation maps (pid, rid) to the number of units the process holds.
	// A count of zero is equivalent to the key being absent.
	Allocation map[Key]int `json:"allocation"`

	// Request maps (pid, rid) to the number of units the process is
	// blocked waiting to acquire. Zero counts are skipped like above.
	Request map[Key]int `json:"request"`
}

// Clone returns a deep copy sharing nothing with the receiver. Analysis
// baselines are captured with Clone so later updates to the live snapshot
// cannot reach back into them.
func (s *Snapshot) Clone() *Snapshot {
	if s == nil {
		return nil
	}
	out := &Snapshot{}
	if s.Processes != nil {
		out.Processes = make([]Process, len(s.Processes))
		for i, p := range s.Processes {
			out.Processes[i] = p.Clone()
		}
	}
	if s.Resources != nil {
		out.Resources = make(map[string]Resource, len(s.Resources))
		for rid, r := range s.Resources {
			out.Resources[rid] = r.Clone()
		}
	}
	if s.Allocation != nil {
		out.Allocation = maps.Clone(s.Allocation)
	}
	if s.Request != nil {
		out.Request = maps.Clone(s.Request)
	}
	return out
}

// PIDs returns the process ids in process-list order.
func (s *Snapshot) PIDs() []int {
	ids := make([]int, len(s.Processes))
	for i, p := range s.Processes {
		ids[i] = p.PID
	}
	return ids
}

// ResourceIDs returns the resource ids in sorted order. Resources live in
// a map, so this is the deterministic iteration order used by every
// derivation.
func (s *Snapshot) ResourceIDs() []string {
	return slices.Sorted(maps.Keys(s.Resources))
}

// AllocationKeys returns the allocation keys sorted by (pid, rid).
func (s *Snapshot) AllocationKeys() []Key {
	return sortedKeys(s.Allocation)
}

// RequestKeys returns the request keys sorted by (pid, rid).
func (s *Snapshot) RequestKeys() []Key {
	return sortedKeys(s.Request)
}

func sortedKeys(table map[Key]int) []Key {
	keys := slices.Collect(maps.Keys(table))
	slices.SortFunc(keys, func(a, b Key) int {
		if c := cmp.Compare(a.PID, b.PID); c != 0 {
			return c
		}
		return cmp.Compare(a.RID, b.RID)
	})
	return keys
}
