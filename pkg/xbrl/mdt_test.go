package xbrl_test

import (
	"testing"

	"github.com/go-xbrl/dts-engine/pkg/xbrl"
	"github.com/stretchr/testify/assert"
)

func conceptForMDTTest(local string) *xbrl.Concept {
	return xbrl.NewConceptForTest(xbrl.NewQNameForTest("d", local, "urn:dim"), local, xbrl.QName{}, xbrl.QName{}, false, false, 0, "", "", nil)
}

func TestNewMultipleDimensionType(t *testing.T) {
	t.Parallel()

	dim := conceptForMDTTest("Dim1")
	mem := conceptForMDTTest("Mem1")
	sdt := xbrl.SingleDimensionType{Dimension: dim, DomainMember: mem}

	m := xbrl.NewMultipleDimensionType(sdt)

	got, ok := m.GetSingleDimensionType()
	assert.True(t, ok)
	assert.Equal(t, sdt, got)
	assert.Equal(t, 1, m.Len())
}

func TestMultipleDimensionType_Clone(t *testing.T) {
	t.Parallel()

	dim1, mem1 := conceptForMDTTest("Dim1"), conceptForMDTTest("Mem1")
	dim2, mem2 := conceptForMDTTest("Dim2"), conceptForMDTTest("Mem2")

	m := xbrl.NewMultipleDimensionType(xbrl.SingleDimensionType{Dimension: dim1, DomainMember: mem1})
	m.AddPredecessorDimensionDomain(xbrl.SingleDimensionType{Dimension: dim2, DomainMember: mem2})

	clone := m.Clone()
	assert.True(t, m.Equal(clone))

	clone.Shuffle(xbrl.SingleDimensionType{Dimension: conceptForMDTTest("Dim3"), DomainMember: conceptForMDTTest("Mem3")})
	assert.False(t, m.Equal(clone))
	assert.Equal(t, 2, m.Len())
}

func TestMultipleDimensionType_CloneNil(t *testing.T) {
	t.Parallel()

	var m *xbrl.MultipleDimensionType
	assert.Nil(t, m.Clone())
}

func TestMultipleDimensionType_AddPredecessorDimensionDomain(t *testing.T) {
	t.Parallel()

	dim1, mem1 := conceptForMDTTest("Dim1"), conceptForMDTTest("Mem1")
	dim2, mem2 := conceptForMDTTest("Dim2"), conceptForMDTTest("Mem2")

	m := xbrl.NewMultipleDimensionType(xbrl.SingleDimensionType{Dimension: dim1, DomainMember: mem1})
	m.AddPredecessorDimensionDomain(xbrl.SingleDimensionType{Dimension: dim2, DomainMember: mem2})
	assert.Equal(t, 2, m.Len())

	// Adding an SDT equal to the current one is a no-op.
	m.AddPredecessorDimensionDomain(xbrl.SingleDimensionType{Dimension: dim1, DomainMember: mem1})
	assert.Equal(t, 2, m.Len())

	// Adding an SDT equal to an existing previous entry is a no-op.
	m.AddPredecessorDimensionDomain(xbrl.SingleDimensionType{Dimension: dim2, DomainMember: mem2})
	assert.Equal(t, 2, m.Len())
}

func TestMultipleDimensionType_AddPredecessorDimensionDomain_NilReceiver(t *testing.T) {
	t.Parallel()

	var m *xbrl.MultipleDimensionType
	assert.NotPanics(t, func() {
		m.AddPredecessorDimensionDomain(xbrl.SingleDimensionType{})
	})
}

func TestMultipleDimensionType_AddPredecessorDimensionDomainSet(t *testing.T) {
	t.Parallel()

	dim1, mem1 := conceptForMDTTest("Dim1"), conceptForMDTTest("Mem1")
	dim2, mem2 := conceptForMDTTest("Dim2"), conceptForMDTTest("Mem2")
	dim3, mem3 := conceptForMDTTest("Dim3"), conceptForMDTTest("Mem3")

	m := xbrl.NewMultipleDimensionType(xbrl.SingleDimensionType{Dimension: dim1, DomainMember: mem1})
	other := xbrl.NewMultipleDimensionType(xbrl.SingleDimensionType{Dimension: dim2, DomainMember: mem2})
	other.AddPredecessorDimensionDomain(xbrl.SingleDimensionType{Dimension: dim3, DomainMember: mem3})

	m.AddPredecessorDimensionDomainSet(other)

	assert.Equal(t, 3, m.Len())
	assert.True(t, m.ContainsDimension(dim2))
	assert.True(t, m.ContainsDimension(dim3))
}

func TestMultipleDimensionType_AddPredecessorDimensionDomainSet_NilArgs(t *testing.T) {
	t.Parallel()

	var nilM *xbrl.MultipleDimensionType
	m := xbrl.NewMultipleDimensionType(xbrl.SingleDimensionType{Dimension: conceptForMDTTest("Dim1")})

	assert.NotPanics(t, func() {
		nilM.AddPredecessorDimensionDomainSet(m)
		m.AddPredecessorDimensionDomainSet(nil)
	})
	assert.Equal(t, 1, m.Len())
}

func TestMultipleDimensionType_Shuffle(t *testing.T) {
	t.Parallel()

	dim1, mem1 := conceptForMDTTest("Dim1"), conceptForMDTTest("Mem1")
	dim2, mem2 := conceptForMDTTest("Dim2"), conceptForMDTTest("Mem2")

	m := xbrl.NewMultipleDimensionType(xbrl.SingleDimensionType{Dimension: dim1, DomainMember: mem1})
	m.Shuffle(xbrl.SingleDimensionType{Dimension: dim2, DomainMember: mem2})

	cur, ok := m.GetSingleDimensionType()
	assert.True(t, ok)
	assert.Equal(t, dim2, cur.Dimension)
	assert.True(t, m.ContainsDimension(dim1))
	assert.Equal(t, 2, m.Len())
}

func TestMultipleDimensionType_Activate(t *testing.T) {
	t.Parallel()

	dim1, mem1 := conceptForMDTTest("Dim1"), conceptForMDTTest("Mem1")
	dim2, mem2 := conceptForMDTTest("Dim2"), conceptForMDTTest("Mem2")

	m := xbrl.NewMultipleDimensionType(xbrl.SingleDimensionType{Dimension: dim1, DomainMember: mem1})
	m.AddPredecessorDimensionDomain(xbrl.SingleDimensionType{Dimension: dim2, DomainMember: mem2})

	ok := m.Activate(dim2)
	assert.True(t, ok)

	cur, _ := m.GetSingleDimensionType()
	assert.Equal(t, dim2, cur.Dimension)
	assert.True(t, m.ContainsDimension(dim1))
	assert.Equal(t, 2, m.Len())
}

func TestMultipleDimensionType_Activate_NotFound(t *testing.T) {
	t.Parallel()

	dim1 := conceptForMDTTest("Dim1")
	dim2 := conceptForMDTTest("Dim2")

	m := xbrl.NewMultipleDimensionType(xbrl.SingleDimensionType{Dimension: dim1})
	ok := m.Activate(dim2)
	assert.False(t, ok)
}

func TestMultipleDimensionType_Activate_NilReceiver(t *testing.T) {
	t.Parallel()

	var m *xbrl.MultipleDimensionType
	assert.False(t, m.Activate(conceptForMDTTest("Dim1")))
}

func TestMultipleDimensionType_Override(t *testing.T) {
	t.Parallel()

	dim1 := conceptForMDTTest("Dim1")
	memOld := conceptForMDTTest("MemOld")
	memNew := conceptForMDTTest("MemNew")

	t.Run("overrides current", func(t *testing.T) {
		t.Parallel()
		m := xbrl.NewMultipleDimensionType(xbrl.SingleDimensionType{Dimension: dim1, DomainMember: memOld})
		m.Override(xbrl.SingleDimensionType{Dimension: dim1, DomainMember: memNew})

		got, _ := m.GetDomainMemberElement(dim1)
		assert.Same(t, memNew, got)
		assert.Equal(t, 1, m.Len())
	})

	t.Run("overrides previous", func(t *testing.T) {
		t.Parallel()
		dim2 := conceptForMDTTest("Dim2")
		m := xbrl.NewMultipleDimensionType(xbrl.SingleDimensionType{Dimension: dim2})
		m.AddPredecessorDimensionDomain(xbrl.SingleDimensionType{Dimension: dim1, DomainMember: memOld})
		m.Override(xbrl.SingleDimensionType{Dimension: dim1, DomainMember: memNew})

		got, _ := m.GetDomainMemberElement(dim1)
		assert.Same(t, memNew, got)
		assert.Equal(t, 2, m.Len())
	})

	t.Run("appends when dimension absent", func(t *testing.T) {
		t.Parallel()
		dim3 := conceptForMDTTest("Dim3")
		m := xbrl.NewMultipleDimensionType(xbrl.SingleDimensionType{Dimension: dim1, DomainMember: memOld})
		m.Override(xbrl.SingleDimensionType{Dimension: dim3, DomainMember: memNew})

		assert.True(t, m.ContainsDimension(dim3))
		assert.Equal(t, 2, m.Len())
	})
}

func TestMultipleDimensionType_ContainsDimension_NilReceiver(t *testing.T) {
	t.Parallel()

	var m *xbrl.MultipleDimensionType
	assert.False(t, m.ContainsDimension(conceptForMDTTest("Dim1")))
}

func TestMultipleDimensionType_GetSingleDimensionType_NilReceiverOrEmpty(t *testing.T) {
	t.Parallel()

	var nilM *xbrl.MultipleDimensionType
	_, ok := nilM.GetSingleDimensionType()
	assert.False(t, ok)

	m := &xbrl.MultipleDimensionType{}
	_, ok = m.GetSingleDimensionType()
	assert.False(t, ok)
}

func TestMultipleDimensionType_GetDomainMemberElement_NotFound(t *testing.T) {
	t.Parallel()

	dim1 := conceptForMDTTest("Dim1")
	dim2 := conceptForMDTTest("Dim2")
	m := xbrl.NewMultipleDimensionType(xbrl.SingleDimensionType{Dimension: dim1})

	_, ok := m.GetDomainMemberElement(dim2)
	assert.False(t, ok)
}

func TestMultipleDimensionType_GetAllDimensionDomainMap_NilReceiver(t *testing.T) {
	t.Parallel()

	var m *xbrl.MultipleDimensionType
	got := m.GetAllDimensionDomainMap()
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestMultipleDimensionType_Len_NilReceiver(t *testing.T) {
	t.Parallel()

	var m *xbrl.MultipleDimensionType
	assert.Equal(t, 0, m.Len())
}

func TestMultipleDimensionType_Equal(t *testing.T) {
	t.Parallel()

	dim1, mem1 := conceptForMDTTest("Dim1"), conceptForMDTTest("Mem1")
	dim2, mem2 := conceptForMDTTest("Dim2"), conceptForMDTTest("Mem2")

	build := func() *xbrl.MultipleDimensionType {
		m := xbrl.NewMultipleDimensionType(xbrl.SingleDimensionType{Dimension: dim1, DomainMember: mem1})
		m.AddPredecessorDimensionDomain(xbrl.SingleDimensionType{Dimension: dim2, DomainMember: mem2})
		return m
	}

	a := build()
	b := build()
	assert.True(t, a.Equal(b))

	c := xbrl.NewMultipleDimensionType(xbrl.SingleDimensionType{Dimension: dim1, DomainMember: mem2})
	assert.False(t, a.Equal(c))

	var nilA, nilB *xbrl.MultipleDimensionType
	assert.True(t, nilA.Equal(nilB))
	assert.False(t, a.Equal(nilB))
	assert.False(t, nilA.Equal(a))
}

func TestMultipleDimensionType_Equal_DifferentPreviousLength(t *testing.T) {
	t.Parallel()

	dim1 := conceptForMDTTest("Dim1")
	dim2 := conceptForMDTTest("Dim2")

	a := xbrl.NewMultipleDimensionType(xbrl.SingleDimensionType{Dimension: dim1})
	a.AddPredecessorDimensionDomain(xbrl.SingleDimensionType{Dimension: dim2})

	b := xbrl.NewMultipleDimensionType(xbrl.SingleDimensionType{Dimension: dim1})

	assert.False(t, a.Equal(b))
}
