package domain

import "sort"

// Record is the set of completed session ids. Presence of a key means done,
// whatever value it carries; operations never mutate the receiver.
type Record map[string]bool

func Empty() Record { return Record{} }

func (r Record) Has(id string) bool {
	_, ok := r[id]
	return ok
}

func (r Record) Len() int { return len(r) }

// Clone copies every key, normalizing values to true.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for id := range r {
		out[id] = true
	}
	return out
}

func (r Record) Toggle(id string) Record {
	out := r.Clone()
	if out.Has(id) {
		delete(out, id)
	} else {
		out[id] = true
	}
	return out
}

func (r Record) IDs() []string {
	out := make([]string, 0, len(r))
	for id := range r {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

type Status struct {
	Done    int
	Total   int
	Percent float64
	// Orphaned lists completed ids that no longer match a session, usually
	// after a topic was renamed or its hours changed.
	Orphaned []string
}

// View merges a plan's ids with a record.
func View(ids []string, r Record) Status {
	known := make(map[string]struct{}, len(ids))
	status := Status{Total: len(ids)}
	for _, id := range ids {
		known[id] = struct{}{}
		if r.Has(id) {
			status.Done++
		}
	}
	if status.Total > 0 {
		status.Percent = float64(status.Done) / float64(status.Total) * 100
	}
	for _, id := range r.IDs() {
		if _, ok := known[id]; !ok {
			status.Orphaned = append(status.Orphaned, id)
		}
	}
	return status
}
