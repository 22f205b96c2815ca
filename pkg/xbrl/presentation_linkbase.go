package xbrl

// PresentationLinkbase holds parent-child arcs grouped by extended
// link role. The derived tree structures (depth, leaf counts) are
// computed separately by the presentation engine (presentation.go).
type PresentationLinkbase struct {
	base *baseLinkbase
}

// NewPresentationLinkbase creates an empty presentation linkbase.
func NewPresentationLinkbase() *PresentationLinkbase {
	return &PresentationLinkbase{base: newBaseLinkbase("presentation")}
}

func (lb *PresentationLinkbase) addElement(e ExtendedLinkElement) { lb.base.addElement(e) }
func (lb *PresentationLinkbase) addArc(a *Arc)                     { lb.base.addArc(a) }

// ExtendedLinkRoles returns every role that appears on at least one
// arc or element of this linkbase, in first-seen order.
func (lb *PresentationLinkbase) ExtendedLinkRoles() []string {
	return lb.base.getExtendedLinkRoles()
}

// ParentChildArcs returns the collapsed base set of parent-child arcs
// for the given role.
func (lb *PresentationLinkbase) ParentChildArcs(role string) []*Arc {
	return lb.base.getArcBaseSet(ArcRoleParentChild, role)
}

// ResourceByID resolves an xlink:href fragment against this
// linkbase's resources.
func (lb *PresentationLinkbase) ResourceByID(href string) (*Resource, bool) {
	return lb.base.resourceByID(href)
}
