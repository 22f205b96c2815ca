package xbrl

import "maps"

// Instance represents a parsed XBRL instance document, resolved
// against every DTS its schemaRefs point at.
type Instance struct {
	schemaRefs []SchemaRef
	contexts   map[string]*Context
	units      map[string]*Unit
	facts      []*Fact
	dtsSet     []*DTS

	rootNamespace        string            // the default (xmlns=) namespace of the <xbrl> root
	additionalNamespaces map[string]string // prefix -> URI, every xmlns:prefix declared on the root
	schemaLocations      map[string]string // namespace URI -> schema location, from xsi:schemaLocation
}

// RootNamespace returns the root element's default namespace URI
// (normally "http://www.xbrl.org/2003/instance").
func (in *Instance) RootNamespace() string { return in.rootNamespace }

// AdditionalNamespaces returns every xmlns:prefix binding declared on
// the instance's root element, keyed by prefix.
func (in *Instance) AdditionalNamespaces() map[string]string {
	out := make(map[string]string, len(in.additionalNamespaces))
	maps.Copy(out, in.additionalNamespaces)
	return out
}

// SchemaLocations returns the namespace-URI -> schema-location pairs
// parsed from the root element's xsi:schemaLocation attribute, if any.
func (in *Instance) SchemaLocations() map[string]string {
	out := make(map[string]string, len(in.schemaLocations))
	maps.Copy(out, in.schemaLocations)
	return out
}

// SchemaRef represents a <schemaRef> element in an XBRL instance.
type SchemaRef struct {
	href string
}

// Href returns the href of the schema reference.
func (s SchemaRef) Href() string { return s.href }

// Context represents an XBRL <context> element. Dimensional qualifiers
// from <segment> and <scenario> are each modeled as a
// MultipleDimensionType so the calculation/dimension engines can query
// them uniformly.
type Context struct {
	id       string
	entity   Entity
	period   Period
	segment  *MultipleDimensionType
	scenario *MultipleDimensionType

	// segmentRaw/scenarioRaw hold the as-parsed (dimension QName, member
	// QName or typed value) pairs before concept resolution. Populated
	// by the instance loader, consumed and cleared by resolveDimensions
	// once a DTS set is available.
	segmentRaw  []rawDimMember
	scenarioRaw []rawDimMember
}

// ID returns the context ID.
func (c *Context) ID() string {
	if c == nil {
		return ""
	}
	return c.id
}

// Entity returns the entity of the context.
func (c *Context) Entity() Entity {
	if c == nil {
		return Entity{}
	}
	return c.entity
}

// Period returns the period of the context.
func (c *Context) Period() Period {
	if c == nil {
		return Period{}
	}
	return c.period
}

// Segment returns the context's segment dimensional qualifiers, if any.
func (c *Context) Segment() *MultipleDimensionType {
	if c == nil {
		return nil
	}
	return c.segment
}

// Scenario returns the context's scenario dimensional qualifiers, if any.
func (c *Context) Scenario() *MultipleDimensionType {
	if c == nil {
		return nil
	}
	return c.scenario
}

// MDTFor returns the MultipleDimensionType attached to the given
// context element (scenario or segment), or nil if unset/not present.
func (c *Context) MDTFor(elem ContextElementKind) *MultipleDimensionType {
	if c == nil {
		return nil
	}
	switch elem {
	case ContextElementSegment:
		return c.segment
	case ContextElementScenario:
		return c.scenario
	default:
		return nil
	}
}

// Entity represents the <entity> of a context.
type Entity struct {
	identifier ContextIdentifier
}

// Identifier returns the identifier of the entity.
func (e Entity) Identifier() ContextIdentifier { return e.identifier }

// ContextIdentifier represents <identifier> inside <entity>.
type ContextIdentifier struct {
	scheme string
	value  string
}

// Scheme returns the identifier scheme.
func (ci ContextIdentifier) Scheme() string { return ci.scheme }

// Value returns the identifier value.
func (ci ContextIdentifier) Value() string { return ci.value }

// Period represents the <period> of a context.
type Period struct {
	instant   *string
	startDate *string
	endDate   *string
	forever   bool
}

// Instant returns the instant date if the period is an instant.
func (p Period) Instant() (string, bool) {
	if p.instant == nil {
		return "", false
	}
	return *p.instant, true
}

// StartDate returns the start date of a duration period.
func (p Period) StartDate() (string, bool) {
	if p.startDate == nil {
		return "", false
	}
	return *p.startDate, true
}

// EndDate returns the end date of a duration period.
func (p Period) EndDate() (string, bool) {
	if p.endDate == nil {
		return "", false
	}
	return *p.endDate, true
}

// IsInstant reports whether the period represents an instant.
func (p Period) IsInstant() bool {
	return p.instant != nil && p.startDate == nil && p.endDate == nil && !p.forever
}

// IsForever reports whether the period represents "forever".
func (p Period) IsForever() bool { return p.forever }

// Unit represents an XBRL <unit> element.
//
// There are two major forms:
//   - simple unit: <unit><measure>...</measure></unit>
//   - divide unit: <unit><divide><unitNumerator>...</unitNumerator><unitDenominator>...</unitDenominator></divide></unit>
type Unit struct {
	id string

	measures []QName

	divide      bool
	numerator   []QName
	denominator []QName
}

// ID returns the unit ID.
func (u *Unit) ID() string {
	if u == nil {
		return ""
	}
	return u.id
}

// Measures returns a copy of the simple measures of the unit.
func (u *Unit) Measures() []QName {
	if u == nil {
		return nil
	}
	out := make([]QName, len(u.measures))
	copy(out, u.measures)
	return out
}

// IsDivide reports whether this unit uses a <divide> structure.
func (u *Unit) IsDivide() bool {
	if u == nil {
		return false
	}
	return u.divide
}

// NumeratorMeasures returns a copy of the measures in <unitNumerator>.
func (u *Unit) NumeratorMeasures() []QName {
	if u == nil {
		return nil
	}
	out := make([]QName, len(u.numerator))
	copy(out, u.numerator)
	return out
}

// DenominatorMeasures returns a copy of the measures in <unitDenominator>.
func (u *Unit) DenominatorMeasures() []QName {
	if u == nil {
		return nil
	}
	out := make([]QName, len(u.denominator))
	copy(out, u.denominator)
	return out
}

// FactKind describes the kind of fact.
type FactKind int

const (
	FactKindUnknown FactKind = iota
	FactKindItem
)

// Fact represents a single XBRL fact (item).
type Fact struct {
	kind FactKind
	name QName

	value string

	contextRef string
	unitRef    string
	decimals   string
	precision  string
	id         string
	lang       string
	nilValue   bool
}

// Kind returns the kind of the fact.
func (f *Fact) Kind() FactKind {
	if f == nil {
		return FactKindUnknown
	}
	return f.kind
}

// Name returns the QName of the fact.
func (f *Fact) Name() QName {
	if f == nil {
		return QName{}
	}
	return f.name
}

// Value returns the raw value of the fact as stored in the instance document.
func (f *Fact) Value() string {
	if f == nil {
		return ""
	}
	return f.value
}

// NormalizedValue returns a normalized form of the fact value where
// various space-like characters are converted to ASCII space and
// consecutive whitespace is collapsed into a single space.
func (f *Fact) NormalizedValue() string {
	if f == nil {
		return ""
	}
	return normalizeSpace(f.value)
}

// ContextRef returns the ID of the context referenced by the fact.
func (f *Fact) ContextRef() string {
	if f == nil {
		return ""
	}
	return f.contextRef
}

// UnitRef returns the ID of the unit referenced by the fact.
func (f *Fact) UnitRef() string {
	if f == nil {
		return ""
	}
	return f.unitRef
}

// Decimals returns the decimals attribute of the fact.
func (f *Fact) Decimals() string {
	if f == nil {
		return ""
	}
	return f.decimals
}

// Precision returns the precision attribute of the fact.
func (f *Fact) Precision() string {
	if f == nil {
		return ""
	}
	return f.precision
}

// ID returns the ID attribute of the fact.
func (f *Fact) ID() string {
	if f == nil {
		return ""
	}
	return f.id
}

// Lang returns the xml:lang of the fact.
func (f *Fact) Lang() string {
	if f == nil {
		return ""
	}
	return f.lang
}

// IsNil reports whether the fact is marked as xsi:nil="true".
func (f *Fact) IsNil() bool {
	if f == nil {
		return false
	}
	return f.nilValue
}

// SchemaRefs returns a copy of the schema references in the instance.
func (in *Instance) SchemaRefs() []SchemaRef {
	if in == nil {
		return nil
	}
	out := make([]SchemaRef, len(in.schemaRefs))
	copy(out, in.schemaRefs)
	return out
}

// Contexts returns a copy of the contexts in the instance.
func (in *Instance) Contexts() map[string]*Context {
	if in == nil {
		return nil
	}
	out := make(map[string]*Context, len(in.contexts))
	maps.Copy(out, in.contexts)
	return out
}

// Units returns a copy of the units in the instance.
func (in *Instance) Units() map[string]*Unit {
	if in == nil {
		return nil
	}
	out := make(map[string]*Unit, len(in.units))
	maps.Copy(out, in.units)
	return out
}

// Facts returns a copy of the facts in the instance.
func (in *Instance) Facts() []*Fact {
	if in == nil {
		return nil
	}
	out := make([]*Fact, len(in.facts))
	copy(out, in.facts)
	return out
}

// DTSSet returns the DTS(es) the instance's schemaRefs resolved to.
func (in *Instance) DTSSet() []*DTS {
	if in == nil {
		return nil
	}
	out := make([]*DTS, len(in.dtsSet))
	copy(out, in.dtsSet)
	return out
}

// ContextByID returns the context with the given ID, if present.
func (in *Instance) ContextByID(id string) (*Context, bool) {
	if in == nil {
		return nil, false
	}
	ctx, ok := in.contexts[id]
	return ctx, ok
}

// UnitByID returns the unit with the given ID, if present.
func (in *Instance) UnitByID(id string) (*Unit, bool) {
	if in == nil {
		return nil, false
	}
	u, ok := in.units[id]
	return u, ok
}

// ContextOf returns the context referenced by the given fact, if available.
func (in *Instance) ContextOf(f *Fact) (*Context, bool) {
	if in == nil || f == nil {
		return nil, false
	}
	return in.ContextByID(f.ContextRef())
}

// UnitOf returns the unit referenced by the given fact, if available.
func (in *Instance) UnitOf(f *Fact) (*Unit, bool) {
	if in == nil || f == nil {
		return nil, false
	}
	return in.UnitByID(f.UnitRef())
}

// ConceptOf returns the taxonomy concept corresponding to the fact's
// QName, searching every DTS attached to the instance in order.
func (in *Instance) ConceptOf(f *Fact) (*Concept, bool) {
	if in == nil || f == nil {
		return nil, false
	}
	for _, dts := range in.dtsSet {
		if c, ok := dts.ConceptByQName(f.name); ok {
			return c, true
		}
	}
	return nil, false
}

// addFact appends f to the instance's fact list. Per the instance
// model's overwrite semantics, a fact whose (QName, contextRef)
// duplicates an already-added fact replaces it in place rather than
// producing a second entry.
func (in *Instance) addFact(f *Fact) {
	for i, existing := range in.facts {
		if existing.name == f.name && existing.contextRef == f.contextRef {
			in.facts[i] = f
			return
		}
	}
	in.facts = append(in.facts, f)
}

// factByConceptContext returns the fact bound to concept's QName within
// the given context, if present.
func (in *Instance) factByConceptContext(concept *Concept, contextRef string) (*Fact, bool) {
	if in == nil || concept == nil {
		return nil, false
	}
	for _, f := range in.facts {
		if f.contextRef == contextRef && identityOf(f.name) == identityOf(concept.qname) {
			return f, true
		}
	}
	return nil, false
}
