package xbrl

// LabelLinkbase indexes label resources by concept and by role,
// supporting lookup of a human-readable label for a concept in a
// given role and language.
type LabelLinkbase struct {
	base *baseLinkbase

	// byConceptRoleLang[conceptID][role][lang] = resource value
	byConceptRoleLang map[string]map[string]map[string]string
}

// NewLabelLinkbase creates an empty label linkbase.
func NewLabelLinkbase() *LabelLinkbase {
	return &LabelLinkbase{
		base:              newBaseLinkbase("label"),
		byConceptRoleLang: make(map[string]map[string]map[string]string),
	}
}

func (lb *LabelLinkbase) addElement(e ExtendedLinkElement) { lb.base.addElement(e) }
func (lb *LabelLinkbase) addArc(a *Arc)                     { lb.base.addArc(a) }

// index must be called once after all arcs/elements for this linkbase
// have been added. It walks concept-label arcs and records each
// resource's value keyed by (concept id, role, lang).
func (lb *LabelLinkbase) index() {
	for _, role := range lb.base.getExtendedLinkRoles() {
		for _, a := range lb.base.getArcBaseSet(ArcRoleConceptLabel, role) {
			loc, ok := a.source.(*Locator)
			if !ok || loc.concept == nil {
				continue
			}
			res, ok := a.target.(*Resource)
			if !ok {
				continue
			}
			byRole, ok := lb.byConceptRoleLang[loc.concept.ID()]
			if !ok {
				byRole = make(map[string]map[string]string)
				lb.byConceptRoleLang[loc.concept.ID()] = byRole
			}
			byLang, ok := byRole[res.role]
			if !ok {
				byLang = make(map[string]string)
				byRole[res.role] = byLang
			}
			byLang[res.lang] = res.value
		}
	}
}

// LabelFor returns the label text for concept in the given role and
// language. If lang is empty, any available language is returned.
func (lb *LabelLinkbase) LabelFor(concept *Concept, role, lang string) (string, bool) {
	if lb == nil || concept == nil {
		return "", false
	}
	byRole, ok := lb.byConceptRoleLang[concept.ID()]
	if !ok {
		return "", false
	}
	byLang, ok := byRole[role]
	if !ok {
		return "", false
	}
	if lang != "" {
		v, ok := byLang[lang]
		return v, ok
	}
	for _, v := range byLang {
		return v, true
	}
	return "", false
}

// ResourceByID resolves an xlink:href fragment against this
// linkbase's resources.
func (lb *LabelLinkbase) ResourceByID(href string) (*Resource, bool) {
	return lb.base.resourceByID(href)
}
