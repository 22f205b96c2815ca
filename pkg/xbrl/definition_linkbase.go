package xbrl

// DefinitionLinkbase holds the dimensional arcs (hypercube-dimension,
// dimension-domain, domain-member, all, notAll) grouped by extended
// link role. The derived Hypercube/Dimension structures are computed
// separately by the dimension engine (dimension.go).
type DefinitionLinkbase struct {
	base *baseLinkbase
}

// NewDefinitionLinkbase creates an empty definition linkbase.
func NewDefinitionLinkbase() *DefinitionLinkbase {
	return &DefinitionLinkbase{base: newBaseLinkbase("definition")}
}

func (lb *DefinitionLinkbase) addElement(e ExtendedLinkElement) { lb.base.addElement(e) }
func (lb *DefinitionLinkbase) addArc(a *Arc)                     { lb.base.addArc(a) }

// ExtendedLinkRoles returns every role that appears on at least one
// arc or element of this linkbase, in first-seen order.
func (lb *DefinitionLinkbase) ExtendedLinkRoles() []string {
	return lb.base.getExtendedLinkRoles()
}

// ArcsByRole returns the collapsed base set of arcs with the given arc
// role, in the given extended link role.
func (lb *DefinitionLinkbase) ArcsByRole(arcRole, role string) []*Arc {
	return lb.base.getArcBaseSet(arcRole, role)
}

// BuildTargetNetwork delegates to the underlying base linkbase; used
// by the dimension engine to compute explicit-dimension domain-member
// sets and has-hypercube source domain-member networks.
func (lb *DefinitionLinkbase) BuildTargetNetwork(concept *Concept, arcRole, role string) []ExtendedLinkElement {
	return lb.base.buildTargetNetwork(concept, arcRole, role)
}

// ResourceByID resolves an xlink:href fragment against this
// linkbase's resources.
func (lb *DefinitionLinkbase) ResourceByID(href string) (*Resource, bool) {
	return lb.base.resourceByID(href)
}
