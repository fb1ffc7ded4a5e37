package rawhttp

import "strings"

// headerEntry is one (originalName, value) pair in insertion order.
type headerEntry struct {
	name  string
	value string
}

// RawHttpHeaders is an ordered, case-insensitive-lookup, repeat-preserving
// header multi-map. It generalizes the teacher's flat Headers slice (see
// pkg/http/types.go's Get/Values/Set/Add) with an explicit
// upper-case-name → positions index, per the multi-map design note: a
// parallel index plus the ordered insertion vector, not a plain map.
// The zero value is an empty, usable header set; RawHttpHeaders is immutable
// once returned from a Builder — construct new values through Builder rather
// than mutating one in place.
type RawHttpHeaders struct {
	entries []headerEntry
	index   map[string][]int
}

// Get returns the ordered values for name (case-insensitive), or an empty
// slice if absent.
func (h RawHttpHeaders) Get(name string) []string {
	positions := h.index[strings.ToUpper(name)]
	if len(positions) == 0 {
		return nil
	}
	values := make([]string, len(positions))
	for i, pos := range positions {
		values[i] = h.entries[pos].value
	}
	return values
}

// First returns the first value for name and whether it was present.
func (h RawHttpHeaders) First(name string) (string, bool) {
	positions := h.index[strings.ToUpper(name)]
	if len(positions) == 0 {
		return "", false
	}
	return h.entries[positions[0]].value, true
}

// AsMap returns every header name (upper-cased) mapped to its ordered
// values. Original casing survives only in iteration via Each.
func (h RawHttpHeaders) AsMap() map[string][]string {
	out := make(map[string][]string, len(h.index))
	for upper, positions := range h.index {
		values := make([]string, len(positions))
		for i, pos := range positions {
			values[i] = h.entries[pos].value
		}
		out[upper] = values
	}
	return out
}

// Each calls fn for every header in insertion order, with original casing.
func (h RawHttpHeaders) Each(fn func(name, value string)) {
	for _, e := range h.entries {
		fn(e.name, e.value)
	}
}

// Len returns the number of header entries (counting repeats).
func (h RawHttpHeaders) Len() int {
	return len(h.entries)
}

// Builder accumulates header entries before they are frozen into a
// RawHttpHeaders. The zero value is ready to use.
type Builder struct {
	entries []headerEntry
	index   map[string][]int
}

// With appends (name, value), preserving any existing entries for name.
func (b *Builder) With(name, value string) *Builder {
	if b.index == nil {
		b.index = make(map[string][]int)
	}
	upper := strings.ToUpper(name)
	b.index[upper] = append(b.index[upper], len(b.entries))
	b.entries = append(b.entries, headerEntry{name: name, value: value})
	return b
}

// Overwrite removes every existing entry whose upper-cased name equals
// upper(name), then appends a single (name, value) entry, retaining the
// casing given here.
func (b *Builder) Overwrite(name, value string) *Builder {
	b.delete(name)
	return b.With(name, value)
}

// Delete removes every existing entry for name.
func (b *Builder) Delete(name string) *Builder {
	b.delete(name)
	return b
}

func (b *Builder) delete(name string) {
	if b.index == nil {
		return
	}
	upper := strings.ToUpper(name)
	if _, ok := b.index[upper]; !ok {
		return
	}
	kept := b.entries[:0:0]
	newIndex := make(map[string][]int, len(b.index))
	for _, e := range b.entries {
		if strings.ToUpper(e.name) == upper {
			continue
		}
		eu := strings.ToUpper(e.name)
		newIndex[eu] = append(newIndex[eu], len(kept))
		kept = append(kept, e)
	}
	b.entries = kept
	b.index = newIndex
}

// Build freezes the accumulated entries into a RawHttpHeaders.
func (b *Builder) Build() RawHttpHeaders {
	entries := make([]headerEntry, len(b.entries))
	copy(entries, b.entries)
	index := make(map[string][]int, len(b.index))
	for k, v := range b.index {
		positions := make([]int, len(v))
		copy(positions, v)
		index[k] = positions
	}
	return RawHttpHeaders{entries: entries, index: index}
}

// Builder returns a Builder pre-populated with h's entries, for deriving a
// modified copy without mutating h.
func (h RawHttpHeaders) Builder() *Builder {
	b := &Builder{}
	for _, e := range h.entries {
		b.With(e.name, e.value)
	}
	return b
}

// String re-serializes the headers to "Name: Value\r\n" wire form, one line
// per entry in insertion order, matching the teacher's appendHeaders.
func (h RawHttpHeaders) String() string {
	var b strings.Builder
	h.Each(func(name, value string) {
		b.WriteString(name)
		b.WriteString(": ")
		b.WriteString(value)
		b.WriteString("\r\n")
	})
	return b.String()
}
