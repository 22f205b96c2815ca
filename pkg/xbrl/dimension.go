package xbrl

// Dimension is a concept with substitutionGroup=xbrldt:dimensionItem,
// together with whether it is typed, and, for explicit dimensions, the
// set of domain-member concepts reachable via domain-member arcs.
type Dimension struct {
	Concept *Concept
	Typed   bool

	// domainMembers is the transitive domain-member network for an
	// explicit dimension, keyed by concept for O(1) membership tests.
	// Values record whether the member is usable (not prohibited by a
	// targeting arc).
	domainMembers map[*Concept]bool
}

// NewDimensionStub creates an empty Dimension for concept, to be
// populated by the build phase.
func NewDimensionStub(concept *Concept) *Dimension {
	return &Dimension{Concept: concept, domainMembers: make(map[*Concept]bool)}
}

// Clone returns a shallow-independent copy of d (its domain-member set
// is copied so the clone can be mutated independently).
func (d *Dimension) Clone() *Dimension {
	if d == nil {
		return nil
	}
	out := &Dimension{Concept: d.Concept, Typed: d.Typed, domainMembers: make(map[*Concept]bool, len(d.domainMembers))}
	for k, v := range d.domainMembers {
		out.domainMembers[k] = v
	}
	return out
}

// addDomainMember records member as reachable, with the given usable
// flag.
func (d *Dimension) addDomainMember(member *Concept, usable bool) {
	if d.domainMembers == nil {
		d.domainMembers = make(map[*Concept]bool)
	}
	d.domainMembers[member] = usable
}

// mergeDomainMembers unions other's domain members into d (used by
// hypercube union).
func (d *Dimension) mergeDomainMembers(other *Dimension) {
	for k, v := range other.domainMembers {
		if cur, ok := d.domainMembers[k]; !ok || (!cur && v) {
			d.domainMembers[k] = v
		}
	}
}

// DomainMembers returns the known domain-member concepts.
func (d *Dimension) DomainMembers() []*Concept {
	out := make([]*Concept, 0, len(d.domainMembers))
	for c := range d.domainMembers {
		out = append(out, c)
	}
	return out
}

// ContainsUsableDimensionDomain reports whether dom is an allowed,
// usable member of d. For typed dimensions this is always true
// (pending a schema-type check against typedDomainRef, an open
// question the source also leaves unresolved). For explicit
// dimensions, dom must be in the domain-member set with usable=true.
func (d *Dimension) ContainsUsableDimensionDomain(dom *Concept) bool {
	if d == nil {
		return false
	}
	if d.Typed {
		return true
	}
	usable, ok := d.domainMembers[dom]
	return ok && usable
}

// Hypercube is a concept with substitutionGroup=xbrldt:hypercubeItem,
// an optional extended link role, and a set of Dimensions.
type Hypercube struct {
	Concept          *Concept
	ExtendedLinkRole string
	dims             map[*Concept]*Dimension // keyed by dimension concept
	dimOrder         []*Concept
}

// NewHypercubeStub creates an empty Hypercube for concept.
func NewHypercubeStub(concept *Concept, role string) *Hypercube {
	return &Hypercube{Concept: concept, ExtendedLinkRole: role, dims: make(map[*Concept]*Dimension)}
}

// AddDimension attaches dim to h, or merges its domain-member set into
// an already-attached Dimension for the same concept.
func (h *Hypercube) AddDimension(dim *Dimension) {
	if existing, ok := h.dims[dim.Concept]; ok {
		existing.mergeDomainMembers(dim)
		return
	}
	h.dims[dim.Concept] = dim
	h.dimOrder = append(h.dimOrder, dim.Concept)
}

// Dimensions returns the hypercube's dimensions in attach order.
func (h *Hypercube) Dimensions() []*Dimension {
	out := make([]*Dimension, 0, len(h.dimOrder))
	for _, c := range h.dimOrder {
		out = append(out, h.dims[c])
	}
	return out
}

// Equal reports hypercube equality per spec: (concept, extended link
// role, dimension set).
func (h *Hypercube) Equal(o *Hypercube) bool {
	if h == nil || o == nil {
		return h == o
	}
	if h.Concept != o.Concept || h.ExtendedLinkRole != o.ExtendedLinkRole {
		return false
	}
	if len(h.dims) != len(o.dims) {
		return false
	}
	for c := range h.dims {
		if _, ok := o.dims[c]; !ok {
			return false
		}
	}
	return true
}

// addHypercube unions other's dimensions into a fresh relevant
// hypercube, merging domain-member sets for shared dimensions and
// cloning new ones.
func addHypercube(into *Hypercube, other *Hypercube) {
	for _, dim := range other.Dimensions() {
		if existing, ok := into.dims[dim.Concept]; ok {
			existing.mergeDomainMembers(dim)
			continue
		}
		into.AddDimension(dim.Clone())
	}
}

// hasDimensionCombination reports whether mdt's coordinates are all
// present in h as usable members, and mdt has exactly as many
// dimensions as h.
func (h *Hypercube) hasDimensionCombination(mdt *MultipleDimensionType) bool {
	coords := mdt.GetAllDimensionDomainMap()
	if len(coords) != len(h.dims) {
		return false
	}
	for dimConcept, dom := range coords {
		dim, ok := h.dims[dimConcept]
		if !ok {
			return false
		}
		if !dim.Typed && !dim.ContainsUsableDimensionDomain(dom) {
			return false
		}
	}
	return true
}

// dimensionModel is the DTS-scoped result of the build phase: every
// Hypercube and every Dimension indexed by its concept.
type dimensionModel struct {
	hypercubesByConcept map[*Concept]*Hypercube
	dimensionsByConcept map[*Concept]*Dimension
}

// buildDimensionModel implements §4.5's build phase: collect dimension
// and hypercube concepts, then walk every extended link role's
// hypercube-dimension arcs to populate Dimension domain-member sets
// and attach dimensions to hypercubes.
func buildDimensionModel(dts *DTS) (*dimensionModel, error) {
	m := &dimensionModel{
		hypercubesByConcept: make(map[*Concept]*Hypercube),
		dimensionsByConcept: make(map[*Concept]*Dimension),
	}

	for _, c := range dts.concepts.bySubstitutionGroup(QName{uri: nsXBRLDT, local: sgDimensionItem}) {
		m.dimensionsByConcept[c] = NewDimensionStub(c)
	}
	for _, c := range dts.concepts.bySubstitutionGroup(QName{uri: nsXBRLDT, local: sgHypercubeItem}) {
		m.hypercubesByConcept[c] = NewHypercubeStub(c, "")
	}

	if dts.definition == nil {
		return m, nil
	}

	for _, role := range dts.definition.ExtendedLinkRoles() {
		for _, a := range dts.definition.ArcsByRole(ArcRoleHypercubeDimension, role) {
			srcLoc, ok := a.source.(*Locator)
			if !ok || srcLoc.concept == nil || !srcLoc.concept.IsHypercube() {
				return nil, &TaxonomyCreationError{
					LinkbaseFile: a.source.SourceFile(),
					Detail:       "hypercube-dimension arc source is not a hypercube concept: wrong substitution group",
				}
			}
			tgtLoc, ok := a.target.(*Locator)
			if !ok || tgtLoc.concept == nil || !tgtLoc.concept.IsDimension() {
				return nil, &TaxonomyCreationError{
					LinkbaseFile: a.target.SourceFile(),
					Detail:       "hypercube-dimension arc target is not a dimension concept: wrong substitution group",
				}
			}

			dim, ok := m.dimensionsByConcept[tgtLoc.concept]
			if !ok {
				dim = NewDimensionStub(tgtLoc.concept)
				m.dimensionsByConcept[tgtLoc.concept] = dim
			}

			if tgtLoc.concept.IsTypedDimension() {
				dim.Typed = true
			} else {
				targetRole := role
				if a.targetRole != "" {
					targetRole = a.targetRole
				}
				network := dts.definition.BuildTargetNetwork(tgtLoc.concept, "", targetRole)
				if len(network) == 0 {
					return nil, &TaxonomyCreationError{
						LinkbaseFile: a.target.SourceFile(),
						Detail:       "missing domain-member network for explicit dimension " + tgtLoc.concept.Name(),
					}
				}
				for _, el := range network {
					loc, ok := el.(*Locator)
					if !ok || loc.concept == nil {
						continue
					}
					dim.addDomainMember(loc.concept, loc.usable)
				}
			}

			hc, ok := m.hypercubesByConcept[srcLoc.concept]
			if !ok {
				hc = NewHypercubeStub(srcLoc.concept, role)
				m.hypercubesByConcept[srcLoc.concept] = hc
			}
			hc.AddDimension(dim)
		}
	}

	return m, nil
}

// dimensionAllowed implements the primary §4.5 query:
// dimensionAllowed(primaryConcept, MDT, contextElement) -> bool.
func (dts *DTS) dimensionAllowed(primaryConcept *Concept, mdt *MultipleDimensionType, ctxElem ContextElementKind) bool {
	if dts.dims == nil || dts.definition == nil {
		return mdt == nil || mdt.Len() == 0
	}

	for _, role := range dts.definition.ExtendedLinkRoles() {
		if dts.roleAllows(role, primaryConcept, mdt, ctxElem) {
			return true
		}
	}
	return false
}

func (dts *DTS) roleAllows(role string, primaryConcept *Concept, mdt *MultipleDimensionType, ctxElem ContextElementKind) bool {
	hasHypercubeArcs := dts.definition.ArcsByRole(ArcRoleAll, role)
	hasHypercubeArcs = append(hasHypercubeArcs, dts.definition.ArcsByRole(ArcRoleNotAll, role)...)

	type binding struct {
		hc    *Hypercube
		notAll bool
	}
	var relevant []binding
	anyQualifying := false

	for _, arcRole := range []string{ArcRoleAll, ArcRoleNotAll} {
		for _, a := range dts.definition.ArcsByRole(arcRole, role) {
			if a.contextElement != ctxElem {
				continue
			}
			srcLoc, ok := a.source.(*Locator)
			if !ok || srcLoc.concept == nil {
				continue
			}
			if !dts.conceptInSourceDomain(srcLoc.concept, primaryConcept, role) {
				continue
			}
			tgtLoc, ok := a.target.(*Locator)
			if !ok || tgtLoc.concept == nil {
				continue
			}
			hc, ok := dts.dims.hypercubesByConcept[tgtLoc.concept]
			if !ok {
				continue
			}
			anyQualifying = true
			relevant = append(relevant, binding{hc: hc, notAll: arcRole == ArcRoleNotAll})
		}
	}

	if !anyQualifying {
		return false
	}

	for _, b := range relevant {
		if b.notAll && b.hc.hasDimensionCombination(mdt) {
			return false
		}
	}

	union := NewHypercubeStub(nil, role)
	for _, b := range relevant {
		if !b.notAll {
			addHypercube(union, b.hc)
		}
	}

	return union.hasDimensionCombination(mdt)
}

// conceptInSourceDomain reports whether primaryConcept is the source
// locator's concept itself, or reachable from it via domain-member
// arcs in the given role.
func (dts *DTS) conceptInSourceDomain(source, primaryConcept *Concept, role string) bool {
	if source == primaryConcept {
		return true
	}
	for _, el := range dts.definition.BuildTargetNetwork(source, ArcRoleDomainMember, role) {
		if loc, ok := el.(*Locator); ok && loc.concept == primaryConcept {
			return true
		}
	}
	return false
}
