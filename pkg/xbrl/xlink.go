package xbrl

// Well-known arc roles, by canonical URI.
const (
	ArcRoleHypercubeDimension = "http://xbrl.org/int/dim/arcrole/hypercube-dimension"
	ArcRoleDimensionDomain    = "http://xbrl.org/int/dim/arcrole/dimension-domain"
	ArcRoleDomainMember       = "http://xbrl.org/int/dim/arcrole/domain-member"
	ArcRoleAll                = "http://xbrl.org/int/dim/arcrole/all"
	ArcRoleNotAll             = "http://xbrl.org/int/dim/arcrole/notAll"
	ArcRoleSummationItem      = "http://www.xbrl.org/2003/arcrole/summation-item"
	ArcRoleParentChild        = "http://www.xbrl.org/2003/arcrole/parent-child"
	ArcRoleConceptLabel       = "http://www.xbrl.org/2003/arcrole/concept-label"
)

// ContextElementKind is the xbrldt:contextElement of a has-hypercube arc.
type ContextElementKind int

const (
	ContextElementUnset ContextElementKind = iota
	ContextElementScenario
	ContextElementSegment
)

// ArcUse is the xlink use attribute: optional (default) or prohibited.
type ArcUse int

const (
	ArcUseOptional ArcUse = iota
	ArcUseProhibited
)

// ExtendedLinkElement is the sum type Locator | Resource. Both variants
// live inside one extended link role and one source linkbase file.
type ExtendedLinkElement interface {
	Label() string
	Role() string
	Title() string
	ID() string
	SourceFile() string
	ExtendedLinkRole() string

	extendedLinkElement() // unexported marker
}

// Locator is an extended-link element that points at a resolved
// Concept (or, in rarer cases, a Resource in the same linkbase file).
type Locator struct {
	label            string
	role             string
	title            string
	id               string
	concept          *Concept
	resource         *Resource // set instead of concept when the href resolves to a resource id
	usable           bool
	sourceFile       string
	extendedLinkRole string
}

func (l *Locator) Label() string            { return l.label }
func (l *Locator) Role() string             { return l.role }
func (l *Locator) Title() string            { return l.title }
func (l *Locator) ID() string               { return l.id }
func (l *Locator) SourceFile() string       { return l.sourceFile }
func (l *Locator) ExtendedLinkRole() string { return l.extendedLinkRole }
func (l *Locator) Concept() *Concept        { return l.concept }
func (l *Locator) Resource() *Resource      { return l.resource }
func (l *Locator) Usable() bool             { return l.usable }
func (*Locator) extendedLinkElement()       {}

// Resource is an extended-link element carrying a literal value, e.g.
// a human-readable label.
type Resource struct {
	label            string
	role             string
	title            string
	id               string
	lang             string
	value            string
	sourceFile       string
	extendedLinkRole string
}

func (r *Resource) Label() string            { return r.label }
func (r *Resource) Role() string             { return r.role }
func (r *Resource) Title() string            { return r.title }
func (r *Resource) ID() string               { return r.id }
func (r *Resource) SourceFile() string       { return r.sourceFile }
func (r *Resource) ExtendedLinkRole() string { return r.extendedLinkRole }
func (r *Resource) Lang() string             { return r.lang }
func (r *Resource) Value() string            { return r.value }
func (*Resource) extendedLinkElement()       {}

// Arc is a directed, labeled edge between two extended-link elements
// that live in the same extended link role.
type Arc struct {
	source ExtendedLinkElement
	target ExtendedLinkElement

	arcrole          string
	xbrlExtendedLinkRole string
	contextElement   ContextElementKind
	targetRole       string
	order            float64
	weight           float64
	weightLex        string // raw weight attribute text, "" when defaulted
	priority         int
	use              ArcUse

	attrs map[string]string
}

func (a *Arc) Source() ExtendedLinkElement   { return a.source }
func (a *Arc) Target() ExtendedLinkElement   { return a.target }
func (a *Arc) ArcRole() string                { return a.arcrole }
func (a *Arc) ExtendedLinkRole() string       { return a.xbrlExtendedLinkRole }
func (a *Arc) ContextElement() ContextElementKind { return a.contextElement }
func (a *Arc) TargetRole() string             { return a.targetRole }
func (a *Arc) Order() float64                 { return a.order }
func (a *Arc) Weight() float64                { return a.weight }
func (a *Arc) WeightLex() string              { return a.weightLex }
func (a *Arc) Priority() int                  { return a.priority }
func (a *Arc) Use() ArcUse                    { return a.use }
func (a *Arc) Attr(name string) (string, bool) {
	v, ok := a.attrs[name]
	return v, ok
}

// equivalentKey groups arcs that are candidates for priority/use
// collapsing: same source, target, arc role and link role.
type equivalentKey struct {
	sourceLabel, targetLabel, arcrole, role string
}

func (a *Arc) equivalentKey() equivalentKey {
	return equivalentKey{
		sourceLabel: a.source.Label(),
		targetLabel: a.target.Label(),
		arcrole:     a.arcrole,
		role:        a.xbrlExtendedLinkRole,
	}
}

// collapseEquivalentArcs applies the base-set priority/use collapsing
// rule: among arcs sharing the same (source, target, arcrole, role),
// the highest priority wins; at equal priority, use=prohibited hides
// use=optional. Input order (insertion/document order) is preserved
// for the surviving arcs.
func collapseEquivalentArcs(arcs []*Arc) []*Arc {
	if len(arcs) == 0 {
		return nil
	}

	best := make(map[equivalentKey]*Arc)
	var order []equivalentKey

	for _, a := range arcs {
		k := a.equivalentKey()
		cur, ok := best[k]
		if !ok {
			best[k] = a
			order = append(order, k)
			continue
		}
		if a.priority > cur.priority {
			best[k] = a
		} else if a.priority == cur.priority && a.use == ArcUseProhibited {
			best[k] = a
		}
	}

	out := make([]*Arc, 0, len(order))
	for _, k := range order {
		winner := best[k]
		if winner.use == ArcUseProhibited {
			continue
		}
		out = append(out, winner)
	}
	return out
}
