package xbrl_test

import (
	"testing"

	"github.com/go-xbrl/dts-engine/pkg/xbrl"
	"github.com/stretchr/testify/assert"
)

const nsXBRLDTForTest = "http://xbrl.org/2005/xbrldt"

func dimensionItemConcept(local string) *xbrl.Concept {
	return xbrl.NewConceptForTest(
		xbrl.NewQNameForTest("d", local, "urn:dim"), local,
		xbrl.NewQNameForTest("xbrldt", "dimensionItem", nsXBRLDTForTest),
		xbrl.QName{}, true, false, 0, "", "", nil,
	)
}

func typedDimensionItemConcept(local, typedDomainRef string) *xbrl.Concept {
	return xbrl.NewConceptForTest(
		xbrl.NewQNameForTest("d", local, "urn:dim"), local,
		xbrl.NewQNameForTest("xbrldt", "dimensionItem", nsXBRLDTForTest),
		xbrl.QName{}, true, false, 0, "", typedDomainRef, nil,
	)
}

func hypercubeItemConcept(local string) *xbrl.Concept {
	return xbrl.NewConceptForTest(
		xbrl.NewQNameForTest("h", local, "urn:hc"), local,
		xbrl.NewQNameForTest("xbrldt", "hypercubeItem", nsXBRLDTForTest),
		xbrl.QName{}, true, false, 0, "", "", nil,
	)
}

func primaryItemConcept(local string) *xbrl.Concept {
	return xbrl.NewConceptForTest(
		xbrl.NewQNameForTest("p", local, "urn:item"), local,
		xbrl.NewQNameForTest("xbrli", "item", "http://www.xbrl.org/2003/instance"),
		xbrl.QName{}, false, false, 0, "", "", nil,
	)
}

func memberConcept(local string) *xbrl.Concept {
	return xbrl.NewConceptForTest(xbrl.NewQNameForTest("m", local, "urn:mem"), local, xbrl.QName{}, xbrl.QName{}, false, false, 0, "", "", nil)
}

func TestDimension_Clone(t *testing.T) {
	t.Parallel()

	dimConcept := dimensionItemConcept("Dim1")
	mem := memberConcept("Mem1")

	d := xbrl.NewDimensionStub(dimConcept)
	xbrl.AddDomainMemberForTest(d, mem, true)

	clone := d.Clone()
	assert.True(t, clone.ContainsUsableDimensionDomain(mem))

	xbrl.AddDomainMemberForTest(clone, memberConcept("Mem2"), true)
	assert.False(t, d.ContainsUsableDimensionDomain(memberConcept("Mem2")))
}

func TestDimension_Clone_Nil(t *testing.T) {
	t.Parallel()

	var d *xbrl.Dimension
	assert.Nil(t, d.Clone())
}

func TestDimension_ContainsUsableDimensionDomain(t *testing.T) {
	t.Parallel()

	dimConcept := dimensionItemConcept("Dim1")
	memUsable := memberConcept("MemUsable")
	memProhibited := memberConcept("MemProhibited")

	d := xbrl.NewDimensionStub(dimConcept)
	xbrl.AddDomainMemberForTest(d, memUsable, true)
	xbrl.AddDomainMemberForTest(d, memProhibited, false)

	assert.True(t, d.ContainsUsableDimensionDomain(memUsable))
	assert.False(t, d.ContainsUsableDimensionDomain(memProhibited))
	assert.False(t, d.ContainsUsableDimensionDomain(memberConcept("Unknown")))
}

func TestDimension_ContainsUsableDimensionDomain_Typed(t *testing.T) {
	t.Parallel()

	d := xbrl.NewDimensionStub(typedDimensionItemConcept("TypedDim", "urn:type#Domain"))
	d.Typed = true

	assert.True(t, d.ContainsUsableDimensionDomain(memberConcept("Anything")))
}

func TestDimension_ContainsUsableDimensionDomain_NilReceiver(t *testing.T) {
	t.Parallel()

	var d *xbrl.Dimension
	assert.False(t, d.ContainsUsableDimensionDomain(memberConcept("Mem1")))
}

func TestDimension_DomainMembers(t *testing.T) {
	t.Parallel()

	dimConcept := dimensionItemConcept("Dim1")
	mem1 := memberConcept("Mem1")
	mem2 := memberConcept("Mem2")

	d := xbrl.NewDimensionStub(dimConcept)
	xbrl.AddDomainMemberForTest(d, mem1, true)
	xbrl.AddDomainMemberForTest(d, mem2, false)

	got := d.DomainMembers()
	assert.ElementsMatch(t, []*xbrl.Concept{mem1, mem2}, got)
}

func TestHypercube_AddDimensionMergesExisting(t *testing.T) {
	t.Parallel()

	dimConcept := dimensionItemConcept("Dim1")
	mem1 := memberConcept("Mem1")
	mem2 := memberConcept("Mem2")

	hc := xbrl.NewHypercubeStub(hypercubeItemConcept("HC1"), "urn:role")

	d1 := xbrl.NewDimensionStub(dimConcept)
	xbrl.AddDomainMemberForTest(d1, mem1, true)
	hc.AddDimension(d1)

	d2 := xbrl.NewDimensionStub(dimConcept)
	xbrl.AddDomainMemberForTest(d2, mem2, true)
	hc.AddDimension(d2)

	dims := hc.Dimensions()
	if assert.Len(t, dims, 1) {
		assert.True(t, dims[0].ContainsUsableDimensionDomain(mem1))
		assert.True(t, dims[0].ContainsUsableDimensionDomain(mem2))
	}
}

func TestHypercube_Dimensions_PreservesAttachOrder(t *testing.T) {
	t.Parallel()

	hc := xbrl.NewHypercubeStub(hypercubeItemConcept("HC1"), "urn:role")

	dimA := xbrl.NewDimensionStub(dimensionItemConcept("DimA"))
	dimB := xbrl.NewDimensionStub(dimensionItemConcept("DimB"))

	hc.AddDimension(dimA)
	hc.AddDimension(dimB)

	dims := hc.Dimensions()
	if assert.Len(t, dims, 2) {
		assert.Same(t, dimA, dims[0])
		assert.Same(t, dimB, dims[1])
	}
}

func TestHypercube_Equal(t *testing.T) {
	t.Parallel()

	hcConcept := hypercubeItemConcept("HC1")
	dim := xbrl.NewDimensionStub(dimensionItemConcept("Dim1"))

	a := xbrl.NewHypercubeStub(hcConcept, "urn:role")
	a.AddDimension(dim)

	b := xbrl.NewHypercubeStub(hcConcept, "urn:role")
	b.AddDimension(dim)

	assert.True(t, a.Equal(b))

	c := xbrl.NewHypercubeStub(hcConcept, "urn:other-role")
	c.AddDimension(dim)
	assert.False(t, a.Equal(c))

	var nilA, nilB *xbrl.Hypercube
	assert.True(t, nilA.Equal(nilB))
	assert.False(t, a.Equal(nilB))
}

func TestBuildDimensionModelAndDimensionAllowed_ExplicitDimension(t *testing.T) {
	t.Parallel()

	primary := primaryItemConcept("Revenue")
	dim := dimensionItemConcept("ProductAxis")
	mem := memberConcept("WidgetMember")
	hc := hypercubeItemConcept("ProductTable")

	locPrimary := xbrl.NewLocatorForTest("loc_primary", "", "", "", primary, true, "defn.xml", "urn:role/disclosure")
	locHC := xbrl.NewLocatorForTest("loc_hc", "", "", "", hc, true, "defn.xml", "urn:role/disclosure")
	locDim := xbrl.NewLocatorForTest("loc_dim", "", "", "", dim, true, "defn.xml", "urn:role/disclosure")
	locMem := xbrl.NewLocatorForTest("loc_mem", "", "", "", mem, true, "defn.xml", "urn:role/disclosure")

	lb := xbrl.NewDefinitionLinkbase()
	for _, l := range []*xbrl.Locator{locPrimary, locHC, locDim, locMem} {
		xbrl.AddElementForTest(lb, l)
	}

	allArc := xbrl.NewArcForTest(locPrimary, locHC, xbrl.ArcRoleAll, "urn:role/disclosure", xbrl.ContextElementSegment, "", 1, 1, 0, xbrl.ArcUseOptional, nil)
	hcDimArc := xbrl.NewArcForTest(locHC, locDim, xbrl.ArcRoleHypercubeDimension, "urn:role/disclosure", xbrl.ContextElementUnset, "", 1, 1, 0, xbrl.ArcUseOptional, nil)
	domMemArc := xbrl.NewArcForTest(locDim, locMem, xbrl.ArcRoleDomainMember, "urn:role/disclosure", xbrl.ContextElementUnset, "", 1, 1, 0, xbrl.ArcUseOptional, nil)

	xbrl.AddArcForTest(lb, allArc)
	xbrl.AddArcForTest(lb, hcDimArc)
	xbrl.AddArcForTest(lb, domMemArc)

	dts, err := xbrl.NewDimensionalDTSForTest([]*xbrl.Concept{primary, dim, mem, hc}, lb)
	if !assert.NoError(t, err) {
		return
	}

	allowedMDT := xbrl.NewMultipleDimensionType(xbrl.SingleDimensionType{Dimension: dim, DomainMember: mem})
	assert.True(t, xbrl.DimensionAllowedForTest(dts, primary, allowedMDT, xbrl.ContextElementSegment))

	// Wrong dimension element (scenario instead of segment): not allowed.
	assert.False(t, xbrl.DimensionAllowedForTest(dts, primary, allowedMDT, xbrl.ContextElementScenario))

	// No dimensional qualifiers at all: not allowed, since the hypercube
	// requires exactly one.
	assert.False(t, xbrl.DimensionAllowedForTest(dts, primary, nil, xbrl.ContextElementSegment))

	// Unrelated primary concept: no qualifying "all" relationship.
	other := primaryItemConcept("Unrelated")
	assert.False(t, xbrl.DimensionAllowedForTest(dts, other, allowedMDT, xbrl.ContextElementSegment))
}

func TestBuildDimensionModelAndDimensionAllowed_NotAllExcludes(t *testing.T) {
	t.Parallel()

	primary := primaryItemConcept("Revenue")
	dim := dimensionItemConcept("ProductAxis")
	mem := memberConcept("WidgetMember")
	hc := hypercubeItemConcept("ProductTable")

	locPrimary := xbrl.NewLocatorForTest("loc_primary", "", "", "", primary, true, "defn.xml", "urn:role/disclosure")
	locHC := xbrl.NewLocatorForTest("loc_hc", "", "", "", hc, true, "defn.xml", "urn:role/disclosure")
	locDim := xbrl.NewLocatorForTest("loc_dim", "", "", "", dim, true, "defn.xml", "urn:role/disclosure")
	locMem := xbrl.NewLocatorForTest("loc_mem", "", "", "", mem, true, "defn.xml", "urn:role/disclosure")

	lb := xbrl.NewDefinitionLinkbase()
	for _, l := range []*xbrl.Locator{locPrimary, locHC, locDim, locMem} {
		xbrl.AddElementForTest(lb, l)
	}

	allArc := xbrl.NewArcForTest(locPrimary, locHC, xbrl.ArcRoleAll, "urn:role/disclosure", xbrl.ContextElementSegment, "", 1, 1, 0, xbrl.ArcUseOptional, nil)
	notAllArc := xbrl.NewArcForTest(locPrimary, locHC, xbrl.ArcRoleNotAll, "urn:role/disclosure", xbrl.ContextElementSegment, "", 2, 1, 1, xbrl.ArcUseOptional, nil)
	hcDimArc := xbrl.NewArcForTest(locHC, locDim, xbrl.ArcRoleHypercubeDimension, "urn:role/disclosure", xbrl.ContextElementUnset, "", 1, 1, 0, xbrl.ArcUseOptional, nil)
	domMemArc := xbrl.NewArcForTest(locDim, locMem, xbrl.ArcRoleDomainMember, "urn:role/disclosure", xbrl.ContextElementUnset, "", 1, 1, 0, xbrl.ArcUseOptional, nil)

	xbrl.AddArcForTest(lb, allArc)
	xbrl.AddArcForTest(lb, notAllArc)
	xbrl.AddArcForTest(lb, hcDimArc)
	xbrl.AddArcForTest(lb, domMemArc)

	dts, err := xbrl.NewDimensionalDTSForTest([]*xbrl.Concept{primary, dim, mem, hc}, lb)
	if !assert.NoError(t, err) {
		return
	}

	mdt := xbrl.NewMultipleDimensionType(xbrl.SingleDimensionType{Dimension: dim, DomainMember: mem})
	assert.False(t, xbrl.DimensionAllowedForTest(dts, primary, mdt, xbrl.ContextElementSegment))
}

func TestDimensionAllowed_NoDimensionModel(t *testing.T) {
	t.Parallel()

	dts, err := xbrl.NewDimensionalDTSForTest(nil, nil)
	if !assert.NoError(t, err) {
		return
	}

	primary := primaryItemConcept("Revenue")
	assert.True(t, xbrl.DimensionAllowedForTest(dts, primary, nil, xbrl.ContextElementSegment))

	mdt := xbrl.NewMultipleDimensionType(xbrl.SingleDimensionType{Dimension: dimensionItemConcept("Dim1")})
	assert.False(t, xbrl.DimensionAllowedForTest(dts, primary, mdt, xbrl.ContextElementSegment))
}
