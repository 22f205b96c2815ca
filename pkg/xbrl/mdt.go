package xbrl

// SingleDimensionType (SDT) is one (dimension, domain-member) pair: a
// fact's coordinate along a single dimensional axis.
type SingleDimensionType struct {
	Dimension    *Concept
	DomainMember *Concept // nil for typed dimensions
	TypedValue   string   // raw inner XML, set only for typed dimensions
}

// sameDimension reports whether two SDTs share the same dimension
// concept.
func (s SingleDimensionType) sameDimension(o SingleDimensionType) bool {
	return s.Dimension == o.Dimension
}

func (s SingleDimensionType) equal(o SingleDimensionType) bool {
	return s.Dimension == o.Dimension && s.DomainMember == o.DomainMember && s.TypedValue == o.TypedValue
}

// MultipleDimensionType (MDT) is the full set of dimensional
// coordinates of a fact: one *current* (dimension, domain-member) pair
// plus an unordered set of *previous* pairs reached while navigating
// dimension defaults and hypercube unions.
type MultipleDimensionType struct {
	current  *SingleDimensionType
	previous []SingleDimensionType
}

// NewMultipleDimensionType creates an MDT with the given SDT as the
// current coordinate and no previous coordinates.
func NewMultipleDimensionType(current SingleDimensionType) *MultipleDimensionType {
	return &MultipleDimensionType{current: &current}
}

// Clone returns a deep copy of m.
func (m *MultipleDimensionType) Clone() *MultipleDimensionType {
	if m == nil {
		return nil
	}
	out := &MultipleDimensionType{}
	if m.current != nil {
		cur := *m.current
		out.current = &cur
	}
	out.previous = append([]SingleDimensionType(nil), m.previous...)
	return out
}

// AddPredecessorDimensionDomain unions sdt (or every SDT in an MDT)
// into the previous set, leaving current untouched.
func (m *MultipleDimensionType) AddPredecessorDimensionDomain(sdt SingleDimensionType) {
	if m == nil {
		return
	}
	for _, p := range m.previous {
		if p.equal(sdt) {
			return
		}
	}
	if m.current != nil && m.current.equal(sdt) {
		return
	}
	m.previous = append(m.previous, sdt)
}

// AddPredecessorDimensionDomainSet unions every SDT in other's current
// and previous set into m's previous set.
func (m *MultipleDimensionType) AddPredecessorDimensionDomainSet(other *MultipleDimensionType) {
	if m == nil || other == nil {
		return
	}
	if other.current != nil {
		m.AddPredecessorDimensionDomain(*other.current)
	}
	for _, p := range other.previous {
		m.AddPredecessorDimensionDomain(p)
	}
}

// Shuffle pushes the current SDT into the previous set (if any) and
// installs sdt as the new current.
func (m *MultipleDimensionType) Shuffle(sdt SingleDimensionType) {
	if m == nil {
		return
	}
	if m.current != nil {
		m.previous = append(m.previous, *m.current)
	}
	cur := sdt
	m.current = &cur
}

// Activate promotes the previous-set SDT for dimConcept (if any) to
// current, pushing the old current into the previous set. It reports
// whether an SDT for dimConcept was found in the previous set.
func (m *MultipleDimensionType) Activate(dimConcept *Concept) bool {
	if m == nil {
		return false
	}
	for i, p := range m.previous {
		if p.Dimension == dimConcept {
			oldCurrent := m.current
			m.current = &p
			m.previous = append(m.previous[:i:i], m.previous[i+1:]...)
			if oldCurrent != nil {
				m.previous = append(m.previous, *oldCurrent)
			}
			return true
		}
	}
	return false
}

// Override replaces the existing SDT for sdt.Dimension (wherever it
// is, current or previous) with sdt, leaving its position (current vs.
// previous) unchanged.
func (m *MultipleDimensionType) Override(sdt SingleDimensionType) {
	if m == nil {
		return
	}
	if m.current != nil && m.current.Dimension == sdt.Dimension {
		m.current = &sdt
		return
	}
	for i, p := range m.previous {
		if p.Dimension == sdt.Dimension {
			m.previous[i] = sdt
			return
		}
	}
	// Not present anywhere: treat as a new previous entry.
	m.previous = append(m.previous, sdt)
}

// ContainsDimension reports whether any SDT (current or previous) in m
// is keyed on dimConcept.
func (m *MultipleDimensionType) ContainsDimension(dimConcept *Concept) bool {
	if m == nil {
		return false
	}
	if m.current != nil && m.current.Dimension == dimConcept {
		return true
	}
	for _, p := range m.previous {
		if p.Dimension == dimConcept {
			return true
		}
	}
	return false
}

// GetSingleDimensionType returns the current SDT, if any.
func (m *MultipleDimensionType) GetSingleDimensionType() (SingleDimensionType, bool) {
	if m == nil || m.current == nil {
		return SingleDimensionType{}, false
	}
	return *m.current, true
}

// GetDomainMemberElement returns the domain-member concept bound to
// dimConcept, searching current then previous.
func (m *MultipleDimensionType) GetDomainMemberElement(dimConcept *Concept) (*Concept, bool) {
	if m == nil {
		return nil, false
	}
	if m.current != nil && m.current.Dimension == dimConcept {
		return m.current.DomainMember, true
	}
	for _, p := range m.previous {
		if p.Dimension == dimConcept {
			return p.DomainMember, true
		}
	}
	return nil, false
}

// GetAllDimensionDomainMap returns every (dimension -> domain-member)
// pair known to m, current and previous combined.
func (m *MultipleDimensionType) GetAllDimensionDomainMap() map[*Concept]*Concept {
	out := make(map[*Concept]*Concept)
	if m == nil {
		return out
	}
	if m.current != nil {
		out[m.current.Dimension] = m.current.DomainMember
	}
	for _, p := range m.previous {
		out[p.Dimension] = p.DomainMember
	}
	return out
}

// Len returns the number of distinct dimensions bound in m (current +
// previous).
func (m *MultipleDimensionType) Len() int {
	if m == nil {
		return 0
	}
	return len(m.GetAllDimensionDomainMap())
}

// Equal reports MDT equality: equal current pair and an
// order-independent-equal previous set.
func (m *MultipleDimensionType) Equal(o *MultipleDimensionType) bool {
	if m == nil || o == nil {
		return m == o
	}
	if (m.current == nil) != (o.current == nil) {
		return false
	}
	if m.current != nil && !m.current.equal(*o.current) {
		return false
	}
	if len(m.previous) != len(o.previous) {
		return false
	}
	used := make([]bool, len(o.previous))
	for _, p := range m.previous {
		found := false
		for i, q := range o.previous {
			if used[i] {
				continue
			}
			if p.equal(q) {
				used[i] = true
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
