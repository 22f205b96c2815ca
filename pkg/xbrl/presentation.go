package xbrl

import "sort"

// PresentationLinkbaseElement is one node of a presentation tree: a
// concept positioned within one extended link role.
type PresentationLinkbaseElement struct {
	Concept          *Concept
	ExtendedLinkRole string

	parent    *PresentationLinkbaseElement
	children  []*PresentationLinkbaseElement // ordered by arc order, ascending

	level                      int
	numSuccessorAtDeepestLevel int
	positionDeepestLevel       int
}

// Parent returns the node's parent within its link role, or nil for a
// root.
func (p *PresentationLinkbaseElement) Parent() *PresentationLinkbaseElement { return p.parent }

// Children returns the node's ordered direct successors.
func (p *PresentationLinkbaseElement) Children() []*PresentationLinkbaseElement {
	out := make([]*PresentationLinkbaseElement, len(p.children))
	copy(out, p.children)
	return out
}

// Level returns 1 for roots, else 1 + parent.Level().
func (p *PresentationLinkbaseElement) Level() int { return p.level }

// NumSuccessorAtDeepestLevel returns the count of leaves beneath this node.
func (p *PresentationLinkbaseElement) NumSuccessorAtDeepestLevel() int {
	return p.numSuccessorAtDeepestLevel
}

// PositionDeepestLevel returns the left-to-right index assigned during
// depth-first traversal of non-abstract/leaf nodes.
func (p *PresentationLinkbaseElement) PositionDeepestLevel() int { return p.positionDeepestLevel }

// presentationTree is the per-role materialized tree built by
// buildPresentationTreeForRole.
type presentationTree struct {
	roots    []*PresentationLinkbaseElement
	byLabel  map[string]*PresentationLinkbaseElement // locator label -> node
	flat     []*PresentationLinkbaseElement          // depth-first order
	strictParent bool
}

// presentationModel holds one presentationTree per extended link role.
type presentationModel struct {
	byRole map[string]*presentationTree
}

// buildPresentationModel implements §4.4: for every extended link
// role, build the ordered PresentationLinkbaseElement list with
// depth/leaf metadata.
func buildPresentationModel(lb *PresentationLinkbase, strictParent bool) (*presentationModel, error) {
	model := &presentationModel{byRole: make(map[string]*presentationTree)}
	if lb == nil {
		return model, nil
	}

	for _, role := range lb.ExtendedLinkRoles() {
		tree, err := buildPresentationTreeForRole(lb, role, strictParent)
		if err != nil {
			return nil, err
		}
		model.byRole[role] = tree
	}
	return model, nil
}

func buildPresentationTreeForRole(lb *PresentationLinkbase, role string, strictParent bool) (*presentationTree, error) {
	arcs := lb.ParentChildArcs(role)

	byLabel := make(map[string]*PresentationLinkbaseElement)
	childArcs := make(map[string][]*Arc) // source label -> arcs, will sort by order
	var srcOrder []string                // source labels in first-seen order, for deterministic conflict resolution

	ensure := func(el ExtendedLinkElement) *PresentationLinkbaseElement {
		loc, ok := el.(*Locator)
		if !ok || loc.concept == nil {
			return nil
		}
		if n, ok := byLabel[loc.label]; ok {
			return n
		}
		n := &PresentationLinkbaseElement{Concept: loc.concept, ExtendedLinkRole: role}
		byLabel[loc.label] = n
		return n
	}

	for _, a := range arcs {
		sn := ensure(a.source)
		tn := ensure(a.target)
		if sn == nil || tn == nil {
			continue
		}
		srcLabel := a.source.Label()
		if _, ok := childArcs[srcLabel]; !ok {
			srcOrder = append(srcOrder, srcLabel)
		}
		childArcs[srcLabel] = append(childArcs[srcLabel], a)
		_ = tn
	}

	// Assign parents: first-source-wins per the spec's Open Question
	// resolution (or reject when strictParent is set). srcOrder is
	// iterated instead of ranging childArcs directly, since map
	// iteration order is randomized and the winning source in a
	// conflict must not vary across runs.
	assigned := make(map[string]bool)
	for _, srcLabel := range srcOrder {
		arcs := childArcs[srcLabel]
		sorted := append([]*Arc(nil), arcs...)
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].order < sorted[j].order })
		srcNode := byLabel[srcLabel]
		for _, a := range sorted {
			tgtLoc := a.target.(*Locator)
			tgtNode := byLabel[tgtLoc.label]
			if assigned[tgtLoc.label] {
				if strictParent {
					return nil, &TaxonomyCreationError{
						LinkbaseFile: a.target.SourceFile(),
						Detail:       "concept " + tgtLoc.concept.Name() + " has more than one presentation parent in role " + role,
					}
				}
				continue // first parent wins
			}
			assigned[tgtLoc.label] = true
			tgtNode.parent = srcNode
			srcNode.children = append(srcNode.children, tgtNode)
		}
	}

	var roots []*PresentationLinkbaseElement
	for label, n := range byLabel {
		if n.parent == nil {
			roots = append(roots, n)
		}
		_ = label
	}
	sort.SliceStable(roots, func(i, j int) bool { return roots[i].Concept.Name() < roots[j].Concept.Name() })

	var flat []*PresentationLinkbaseElement
	position := 0

	var walk func(n *PresentationLinkbaseElement, level int) int
	walk = func(n *PresentationLinkbaseElement, level int) int {
		n.level = level
		flat = append(flat, n)

		if len(n.children) == 0 {
			position++
			n.positionDeepestLevel = position
			n.numSuccessorAtDeepestLevel = 0
			return 1
		}

		leaves := 0
		for _, c := range n.children {
			leaves += walk(c, level+1)
		}
		n.numSuccessorAtDeepestLevel = leaves
		if !n.Concept.Abstract() {
			position++
			n.positionDeepestLevel = position
		}
		return leaves
	}

	for _, r := range roots {
		walk(r, 1)
	}

	return &presentationTree{roots: roots, byLabel: byLabel, flat: flat, strictParent: strictParent}, nil
}

// ElementsFor returns every presentation element for taxonomyName (or
// every taxonomy when taxonomyName is "") in the given extended link
// role, in depth-first, order-respecting traversal from the roots.
func (m *presentationModel) ElementsFor(taxonomyName, role string) []*PresentationLinkbaseElement {
	tree, ok := m.byRole[role]
	if !ok {
		return nil
	}
	if taxonomyName == "" {
		out := make([]*PresentationLinkbaseElement, len(tree.flat))
		copy(out, tree.flat)
		return out
	}
	var out []*PresentationLinkbaseElement
	for _, n := range tree.flat {
		if n.Concept.Schema() != nil && n.Concept.Schema().Name() == taxonomyName {
			out = append(out, n)
		}
	}
	return out
}

// SubtreeFor returns the depth-first traversal starting at concept
// within role.
func (m *presentationModel) SubtreeFor(concept *Concept, role string) []*PresentationLinkbaseElement {
	tree, ok := m.byRole[role]
	if !ok {
		return nil
	}
	var start *PresentationLinkbaseElement
	for _, n := range tree.flat {
		if n.Concept == concept {
			start = n
			break
		}
	}
	if start == nil {
		return nil
	}

	var out []*PresentationLinkbaseElement
	var walk func(n *PresentationLinkbaseElement)
	walk = func(n *PresentationLinkbaseElement) {
		out = append(out, n)
		for _, c := range n.children {
			walk(c)
		}
	}
	walk(start)
	return out
}

// Root returns the elements with no parent in role.
func (m *presentationModel) Root(role string) []*PresentationLinkbaseElement {
	tree, ok := m.byRole[role]
	if !ok {
		return nil
	}
	out := make([]*PresentationLinkbaseElement, len(tree.roots))
	copy(out, tree.roots)
	return out
}
