package stats

// Counter helpers layered over the generic group/entry contract.
// Counters live in the "counters" group with their descriptions in
// "counters_desc".
const (
	counterGroup     = "counters"
	counterDescGroup = "counters_desc"
)

// AddCounter registers a counter starting at zero. Returns false if the
// counter already exists.
func (s *Statistics) AddCounter(name, desc string) bool {
	g := s.Group(counterGroup)
	if g.HasEntry(name) {
		return false
	}
	if desc == "" {
		desc = "no description"
	}
	if err := g.WriteEntry(name, 0); err != nil {
		return false
	}
	return s.Group(counterDescGroup).WriteEntry(name, desc) == nil
}

// IncCounter adds delta to a counter. Returns false for unknown counters.
func (s *Statistics) IncCounter(name string, delta int) bool {
	g := s.Group(counterGroup)
	if !g.HasEntry(name) {
		return false
	}
	return g.WriteEntry(name, g.ReadInt(name, 0)+delta) == nil
}

// Counter reads a counter's current value, zero if unknown.
func (s *Statistics) Counter(name string) int {
	return s.Group(counterGroup).ReadInt(name, 0)
}

// CounterDesc reads a counter's description.
func (s *Statistics) CounterDesc(name string) string {
	return s.Group(counterDescGroup).ReadString(name, "no description")
}

// ResetCounter sets a counter to an explicit value. Returns false for
// unknown counters.
func (s *Statistics) ResetCounter(name string, value int) bool {
	g := s.Group(counterGroup)
	if !g.HasEntry(name) {
		return false
	}
	return g.WriteEntry(name, value) == nil
}

// Counters lists registered counter names, sorted.
func (s *Statistics) Counters() []string {
	return s.Group(counterGroup).Entries()
}
