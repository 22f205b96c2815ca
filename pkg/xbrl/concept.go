package xbrl

import "strings"

// Namespaces commonly used in XBRL types and substitution groups.
const (
	nsXBRLI  = "http://www.xbrl.org/2003/instance"
	nsXSD    = "http://www.w3.org/2001/XMLSchema"
	nsXBRLDT = "http://xbrl.org/2005/xbrldt"
	nsXLink  = "http://www.w3.org/1999/xlink"
	nsXML    = "http://www.w3.org/XML/1998/namespace"
)

// Well-known substitution group local names under nsXBRLDT.
const (
	sgDimensionItem = "dimensionItem"
	sgHypercubeItem = "hypercubeItem"
)

// PeriodTypeKind classifies a concept's declared periodType.
type PeriodTypeKind int

const (
	PeriodTypeUnset PeriodTypeKind = iota
	PeriodTypeInstant
	PeriodTypeDuration
)

// Concept represents a taxonomy concept declared by an xs:element in a
// schema owned by exactly one DTS.
type Concept struct {
	qname QName
	id    string

	substitutionGroup QName
	typeName          QName
	typedDomainRef    string

	abstract   bool
	nillable   bool
	periodType PeriodTypeKind
	balance    string

	schema *TaxonomySchema
}

// QName returns the QName of the concept.
func (c *Concept) QName() QName {
	if c == nil {
		return QName{}
	}
	return c.qname
}

// Name returns the local name of the concept.
func (c *Concept) Name() string {
	if c == nil {
		return ""
	}
	return c.qname.Local()
}

// ID returns the @id of the concept, unique within its owning schema
// and, by invariant, across the whole DTS.
func (c *Concept) ID() string {
	if c == nil {
		return ""
	}
	return c.id
}

// Schema returns the TaxonomySchema that declared this concept.
func (c *Concept) Schema() *TaxonomySchema {
	if c == nil {
		return nil
	}
	return c.schema
}

// SubstitutionGroup returns the substitutionGroup of the concept
// (e.g. xbrli:item, xbrldt:dimensionItem, xbrldt:hypercubeItem).
func (c *Concept) SubstitutionGroup() QName {
	if c == nil {
		return QName{}
	}
	return c.substitutionGroup
}

// Type returns the @type of the concept.
func (c *Concept) Type() QName {
	if c == nil {
		return QName{}
	}
	return c.typeName
}

// TypedDomainRef returns the xbrldt:typedDomainRef attribute, present
// iff the concept is a typed dimension.
func (c *Concept) TypedDomainRef() string {
	if c == nil {
		return ""
	}
	return c.typedDomainRef
}

// Abstract reports whether the concept is abstract.
func (c *Concept) Abstract() bool {
	if c == nil {
		return false
	}
	return c.abstract
}

// Nillable reports whether the concept is nillable.
func (c *Concept) Nillable() bool {
	if c == nil {
		return false
	}
	return c.nillable
}

// PeriodType returns instant/duration/unset.
func (c *Concept) PeriodType() PeriodTypeKind {
	if c == nil {
		return PeriodTypeUnset
	}
	return c.periodType
}

// Balance returns the balance ("debit"/"credit") if set.
func (c *Concept) Balance() string {
	if c == nil {
		return ""
	}
	return c.balance
}

// IsItem reports whether the concept's substitution group is xbrli:item.
func (c *Concept) IsItem() bool {
	if c == nil {
		return false
	}
	sg := c.SubstitutionGroup()
	return sg.URI() == nsXBRLI && sg.Local() == "item"
}

// IsDimension reports whether the concept is a dimension (explicit or
// typed): substitutionGroup == xbrldt:dimensionItem.
func (c *Concept) IsDimension() bool {
	if c == nil {
		return false
	}
	sg := c.SubstitutionGroup()
	return sg.URI() == nsXBRLDT && sg.Local() == sgDimensionItem
}

// IsTypedDimension reports whether the concept is a typed dimension:
// a dimension with a typedDomainRef present.
func (c *Concept) IsTypedDimension() bool {
	if c == nil {
		return false
	}
	return c.IsDimension() && c.typedDomainRef != ""
}

// IsExplicitDimension reports whether the concept is an explicit
// dimension: a dimension without a typedDomainRef.
func (c *Concept) IsExplicitDimension() bool {
	if c == nil {
		return false
	}
	return c.IsDimension() && c.typedDomainRef == ""
}

// IsHypercube reports whether the concept is a hypercube:
// substitutionGroup == xbrldt:hypercubeItem.
func (c *Concept) IsHypercube() bool {
	if c == nil {
		return false
	}
	sg := c.SubstitutionGroup()
	return sg.URI() == nsXBRLDT && sg.Local() == sgHypercubeItem
}

// ConceptValueKind classifies the conceptual value type of a concept.
// This is a coarse-grained classification based on its @type.
type ConceptValueKind int

const (
	ConceptValueUnknown ConceptValueKind = iota
	ConceptValueString
	ConceptValueNumeric
	ConceptValueMonetary
	ConceptValueBoolean
	ConceptValueDate
	ConceptValueDateTime
)

// String implements fmt.Stringer.
func (k ConceptValueKind) String() string {
	switch k {
	case ConceptValueString:
		return "string"
	case ConceptValueNumeric:
		return "numeric"
	case ConceptValueMonetary:
		return "monetary"
	case ConceptValueBoolean:
		return "boolean"
	case ConceptValueDate:
		return "date"
	case ConceptValueDateTime:
		return "dateTime"
	default:
		return "unknown"
	}
}

// ValueKind returns a coarse-grained classification of the concept's
// value type, based on its @type QName. It does not look at linkbases
// or custom type derivations; it inspects well-known XBRL and XML
// Schema types and falls back to ConceptValueString for unknown types.
func (c *Concept) ValueKind() ConceptValueKind {
	if c == nil {
		return ConceptValueUnknown
	}

	t := c.Type()
	uri := t.URI()
	local := t.Local()

	switch uri {
	case nsXBRLI:
		switch local {
		case "monetaryItemType":
			return ConceptValueMonetary
		case "sharesItemType", "perShareItemType",
			"decimalItemType", "integerItemType",
			"nonNegativeIntegerItemType", "nonPositiveIntegerItemType",
			"positiveIntegerItemType", "negativeIntegerItemType",
			"pureItemType", "fractionItemType":
			return ConceptValueNumeric
		case "booleanItemType":
			return ConceptValueBoolean
		case "dateItemType":
			return ConceptValueDate
		case "dateTimeItemType":
			return ConceptValueDateTime
		case "stringItemType":
			return ConceptValueString
		default:
			return ConceptValueString
		}
	case nsXSD:
		switch local {
		case "decimal", "integer", "nonNegativeInteger", "nonPositiveInteger",
			"positiveInteger", "negativeInteger", "int", "long", "short", "byte",
			"unsignedInt", "unsignedLong", "unsignedShort", "unsignedByte", "float", "double":
			return ConceptValueNumeric
		case "boolean":
			return ConceptValueBoolean
		case "date":
			return ConceptValueDate
		case "dateTime":
			return ConceptValueDateTime
		case "string", "normalizedString":
			return ConceptValueString
		default:
			return ConceptValueString
		}
	default:
		return ConceptValueString
	}
}

// IsNumericItem reports whether facts of this concept carry numeric
// values (monetary or other numeric item types) and therefore require
// a unit. Resolved from the concept's type rather than hard-coded, per
// the spec's Open Question resolution.
func (c *Concept) IsNumericItem() bool {
	switch c.ValueKind() {
	case ConceptValueNumeric, ConceptValueMonetary:
		return true
	default:
		return false
	}
}

// TaxonomySchema is one schema file discovered while building a DTS.
type TaxonomySchema struct {
	name      string // file name
	namespace string
	prefix    string
	imports   []string // ordered, deduplicated schema names

	concepts []*Concept
}

// Name returns the schema's file name.
func (s *TaxonomySchema) Name() string {
	if s == nil {
		return ""
	}
	return s.name
}

// Namespace returns the schema's targetNamespace.
func (s *TaxonomySchema) Namespace() string {
	if s == nil {
		return ""
	}
	return s.namespace
}

// Prefix returns the synthesized or declared namespace prefix for this
// schema's target namespace.
func (s *TaxonomySchema) Prefix() string {
	if s == nil {
		return ""
	}
	return s.prefix
}

// Imports returns the ordered list of schema file names imported by
// this schema.
func (s *TaxonomySchema) Imports() []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s.imports))
	copy(out, s.imports)
	return out
}

// Concepts returns the concepts declared directly in this schema.
func (s *TaxonomySchema) Concepts() []*Concept {
	if s == nil {
		return nil
	}
	out := make([]*Concept, len(s.concepts))
	copy(out, s.concepts)
	return out
}

// synthesizePrefix builds the "ns_<trailing path segment>" fallback
// prefix used when a schema declares no prefix for its own namespace.
func synthesizePrefix(schemaFileName string) string {
	name := schemaFileName
	if i := strings.LastIndexAny(name, "/\\"); i >= 0 {
		name = name[i+1:]
	}
	name = strings.TrimSuffix(name, ".xsd")
	return "ns_" + name
}

// qnameIdentity is the (uri, local) portion of a QName used as a map
// key wherever prefix must not affect identity: the same namespace can
// be aliased to different prefixes across schema documents.
type qnameIdentity struct {
	uri, local string
}

func identityOf(q QName) qnameIdentity {
	return qnameIdentity{uri: q.uri, local: q.local}
}

// conceptRegistry indexes concepts by id, by (namespace, name), and by
// substitution group, for O(1) lookup. Owned by a DTS.
type conceptRegistry struct {
	byID    map[string]*Concept
	byQName map[qnameIdentity]*Concept
	bySubst map[qnameIdentity][]*Concept // insertion order preserved
}

func newConceptRegistry() *conceptRegistry {
	return &conceptRegistry{
		byID:    make(map[string]*Concept),
		byQName: make(map[qnameIdentity]*Concept),
		bySubst: make(map[qnameIdentity][]*Concept),
	}
}

// register adds c to the registry. It returns a *TaxonomyCreationError
// if c.id collides with an existing concept's id (id must be unique
// across the DTS) or if (namespace, name) collides with a concept
// already registered anywhere in the DTS.
func (r *conceptRegistry) register(c *Concept) error {
	if c.id != "" {
		if existing, ok := r.byID[c.id]; ok && existing != c {
			return &TaxonomyCreationError{
				SchemaFile: c.schema.Name(),
				Detail:     "duplicate concept id: " + c.id,
			}
		}
		r.byID[c.id] = c
	}
	key := identityOf(c.qname)
	if _, ok := r.byQName[key]; ok {
		return &TaxonomyCreationError{
			SchemaFile: c.schema.Name(),
			Detail:     "duplicate concept name in schema: " + c.qname.String(),
		}
	}
	r.byQName[key] = c
	sgKey := identityOf(c.substitutionGroup)
	r.bySubst[sgKey] = append(r.bySubst[sgKey], c)
	return nil
}

// byIDLookup returns the concept with the given id, if any.
func (r *conceptRegistry) byIDLookup(id string) (*Concept, bool) {
	c, ok := r.byID[id]
	return c, ok
}

// byQNameLookup returns the concept with the given (namespace, name)
// QName, if any. Lookup is by (uri, local) only: prefix does not
// affect identity.
func (r *conceptRegistry) byQNameLookup(q QName) (*Concept, bool) {
	c, ok := r.byQName[identityOf(q)]
	return c, ok
}

// bySubstitutionGroup returns all concepts whose substitutionGroup
// matches sg's (uri, local) identity, in registration order.
func (r *conceptRegistry) bySubstitutionGroup(sg QName) []*Concept {
	key := identityOf(sg)
	out := make([]*Concept, len(r.bySubst[key]))
	copy(out, r.bySubst[key])
	return out
}
