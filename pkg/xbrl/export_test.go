package xbrl

// White-box constructors and helpers used only by this package's tests,
// to build values whose fields are otherwise unexported.

// NewQNameForTest builds a QName directly from its parts.
func NewQNameForTest(prefix, local, uri string) QName {
	return QName{prefix: prefix, local: local, uri: uri}
}

// NormalizeSpace exposes normalizeSpace for tests.
func NormalizeSpace(s string) string {
	return normalizeSpace(s)
}

// NewTaxonomySchemaForTest builds a TaxonomySchema.
func NewTaxonomySchemaForTest(name, namespace, prefix string, imports []string, concepts []*Concept) *TaxonomySchema {
	return &TaxonomySchema{
		name:      name,
		namespace: namespace,
		prefix:    prefix,
		imports:   imports,
		concepts:  concepts,
	}
}

// NewConceptForTest builds a Concept with every field set explicitly.
func NewConceptForTest(
	qname QName,
	id string,
	substitutionGroup QName,
	typeName QName,
	abstract, nillable bool,
	periodType PeriodTypeKind,
	balance string,
	typedDomainRef string,
	schema *TaxonomySchema,
) *Concept {
	return &Concept{
		qname:             qname,
		id:                id,
		substitutionGroup: substitutionGroup,
		typeName:          typeName,
		typedDomainRef:    typedDomainRef,
		abstract:          abstract,
		nillable:          nillable,
		periodType:        periodType,
		balance:           balance,
		schema:            schema,
	}
}

// NewDTSForTest builds a DTS whose concept registry is populated with
// concepts, for tests that only need concept lookup (no linkbases).
func NewDTSForTest(concepts []*Concept) *DTS {
	reg := newConceptRegistry()
	for _, c := range concepts {
		_ = reg.register(c)
	}
	return &DTS{concepts: reg}
}

// NewDimensionalDTSForTest builds a DTS with a concept registry, a
// definition linkbase and a built dimension model, for tests of the
// dimensional query engine.
func NewDimensionalDTSForTest(concepts []*Concept, definition *DefinitionLinkbase) (*DTS, error) {
	reg := newConceptRegistry()
	for _, c := range concepts {
		_ = reg.register(c)
	}
	dts := &DTS{concepts: reg, definition: definition}
	dims, err := buildDimensionModel(dts)
	if err != nil {
		return nil, err
	}
	dts.dims = dims
	return dts, nil
}

// AddElementForTest registers a locator or resource on a
// DefinitionLinkbase.
func AddElementForTest(lb *DefinitionLinkbase, e ExtendedLinkElement) {
	lb.addElement(e)
}

// AddArcForTest registers an arc on a DefinitionLinkbase.
func AddArcForTest(lb *DefinitionLinkbase, a *Arc) {
	lb.addArc(a)
}

// AddDomainMemberForTest exposes Dimension.addDomainMember.
func AddDomainMemberForTest(d *Dimension, member *Concept, usable bool) {
	d.addDomainMember(member, usable)
}

// DimensionAllowedForTest exposes DTS.dimensionAllowed.
func DimensionAllowedForTest(dts *DTS, primaryConcept *Concept, mdt *MultipleDimensionType, ctxElem ContextElementKind) bool {
	return dts.dimensionAllowed(primaryConcept, mdt, ctxElem)
}

// AddCalculationElementForTest registers a locator or resource on a
// CalculationLinkbase.
func AddCalculationElementForTest(lb *CalculationLinkbase, e ExtendedLinkElement) {
	lb.addElement(e)
}

// AddCalculationArcForTest registers an arc on a CalculationLinkbase.
func AddCalculationArcForTest(lb *CalculationLinkbase, a *Arc) {
	lb.addArc(a)
}

// NewCalculationDTSForTest builds a DTS with a concept registry and a
// calculation linkbase, for calculation-engine tests.
func NewCalculationDTSForTest(concepts []*Concept, calculation *CalculationLinkbase) *DTS {
	reg := newConceptRegistry()
	for _, c := range concepts {
		_ = reg.register(c)
	}
	return &DTS{concepts: reg, calculation: calculation}
}

// AddPresentationElementForTest registers a locator or resource on a
// PresentationLinkbase.
func AddPresentationElementForTest(lb *PresentationLinkbase, e ExtendedLinkElement) {
	lb.addElement(e)
}

// AddPresentationArcForTest registers an arc on a PresentationLinkbase.
func AddPresentationArcForTest(lb *PresentationLinkbase, a *Arc) {
	lb.addArc(a)
}

// BuildPresentationModelForTest exposes buildPresentationModel.
func BuildPresentationModelForTest(lb *PresentationLinkbase, strictParent bool) (*presentationModel, error) {
	return buildPresentationModel(lb, strictParent)
}

// ElementsForTest exposes presentationModel.ElementsFor.
func ElementsForTest(m *presentationModel, taxonomyName, role string) []*PresentationLinkbaseElement {
	return m.ElementsFor(taxonomyName, role)
}

// SubtreeForTest exposes presentationModel.SubtreeFor.
func SubtreeForTest(m *presentationModel, concept *Concept, role string) []*PresentationLinkbaseElement {
	return m.SubtreeFor(concept, role)
}

// RootForTest exposes presentationModel.Root.
func RootForTest(m *presentationModel, role string) []*PresentationLinkbaseElement {
	return m.Root(role)
}

// NewFactForTest builds a Fact with every field set explicitly.
func NewFactForTest(
	kind FactKind,
	name QName,
	value, contextRef, unitRef, decimals, precision, id, lang string,
	nilValue bool,
) *Fact {
	return &Fact{
		kind:       kind,
		name:       name,
		value:      value,
		contextRef: contextRef,
		unitRef:    unitRef,
		decimals:   decimals,
		precision:  precision,
		id:         id,
		lang:       lang,
		nilValue:   nilValue,
	}
}

// NewEntityForTest builds an Entity.
func NewEntityForTest(identifier ContextIdentifier) Entity {
	return Entity{identifier: identifier}
}

// NewContextIdentifierForTest builds a ContextIdentifier.
func NewContextIdentifierForTest(scheme, value string) ContextIdentifier {
	return ContextIdentifier{scheme: scheme, value: value}
}

// NewInstantPeriodForTest builds an instant Period.
func NewInstantPeriodForTest(instant string) Period {
	return Period{instant: &instant}
}

// NewDurationPeriodForTest builds a duration Period.
func NewDurationPeriodForTest(start, end string) Period {
	return Period{startDate: &start, endDate: &end}
}

// NewForeverPeriodForTest builds a forever Period.
func NewForeverPeriodForTest() Period {
	return Period{forever: true}
}

// NewContextForTest builds a Context with dimensional qualifiers
// already resolved (segment/scenario, may be nil).
func NewContextForTest(id string, entity Entity, period Period, segment, scenario *MultipleDimensionType) *Context {
	return &Context{
		id:       id,
		entity:   entity,
		period:   period,
		segment:  segment,
		scenario: scenario,
	}
}

// NewUnitForTest builds a Unit.
func NewUnitForTest(id string, measures []QName, divide bool, numerator, denominator []QName) *Unit {
	return &Unit{
		id:          id,
		measures:    measures,
		divide:      divide,
		numerator:   numerator,
		denominator: denominator,
	}
}

// NewLocatorForTest builds a Locator.
func NewLocatorForTest(label, role, title, id string, concept *Concept, usable bool, sourceFile, extendedLinkRole string) *Locator {
	return &Locator{
		label:            label,
		role:             role,
		title:            title,
		id:               id,
		concept:          concept,
		usable:           usable,
		sourceFile:       sourceFile,
		extendedLinkRole: extendedLinkRole,
	}
}

// NewResourceForTest builds a Resource.
func NewResourceForTest(label, role, title, id, lang, value, sourceFile, extendedLinkRole string) *Resource {
	return &Resource{
		label:            label,
		role:             role,
		title:            title,
		id:               id,
		lang:             lang,
		value:            value,
		sourceFile:       sourceFile,
		extendedLinkRole: extendedLinkRole,
	}
}

// NewArcForTest builds an Arc.
func NewArcForTest(
	source, target ExtendedLinkElement,
	arcrole, extendedLinkRole string,
	contextElement ContextElementKind,
	targetRole string,
	order, weight float64,
	priority int,
	use ArcUse,
	attrs map[string]string,
) *Arc {
	return &Arc{
		source:               source,
		target:               target,
		arcrole:              arcrole,
		xbrlExtendedLinkRole: extendedLinkRole,
		contextElement:       contextElement,
		targetRole:           targetRole,
		order:                order,
		weight:               weight,
		priority:             priority,
		use:                  use,
		attrs:                attrs,
	}
}

// NewArcForTestWithWeightLex builds an Arc carrying a raw lexical
// weight attribute, for tests that exercise exact-rational weight
// parsing (e.g. CompatFloatWeights).
func NewArcForTestWithWeightLex(
	source, target ExtendedLinkElement,
	arcrole, extendedLinkRole string,
	order, weight float64,
	weightLex string,
) *Arc {
	return &Arc{
		source:               source,
		target:               target,
		arcrole:              arcrole,
		xbrlExtendedLinkRole: extendedLinkRole,
		order:                order,
		weight:               weight,
		weightLex:            weightLex,
		use:                  ArcUseOptional,
	}
}

// CollapseEquivalentArcsForTest exposes collapseEquivalentArcs for tests.
func CollapseEquivalentArcsForTest(arcs []*Arc) []*Arc {
	return collapseEquivalentArcs(arcs)
}

// NewInstanceForTest builds an Instance with every field set
// explicitly, bypassing Parse/ParseFile.
func NewInstanceForTest(
	schemaRefs []SchemaRef,
	contexts map[string]*Context,
	units map[string]*Unit,
	facts []*Fact,
	dtsSet []*DTS,
) *Instance {
	if contexts == nil {
		contexts = make(map[string]*Context)
	}
	if units == nil {
		units = make(map[string]*Unit)
	}
	return &Instance{
		schemaRefs: schemaRefs,
		contexts:   contexts,
		units:      units,
		facts:      facts,
		dtsSet:     dtsSet,
	}
}
