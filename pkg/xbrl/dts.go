package xbrl

import (
	"encoding/xml"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// DTS is a Discoverable Taxonomy Set: a root schema plus every schema
// transitively reachable from it by <import>, and the four linkbase
// graphs (presentation, definition, calculation, label) shared across
// the whole set.
type DTS struct {
	rootSchema string
	dir        string // directory root schemas/linkbases are resolved against

	schemas     map[string]*TaxonomySchema // keyed by file name
	schemaOrder []string

	// linkbaseRefs accumulates every <link:linkbaseRef> harvested while
	// schemas are discovered, consumed once schema discovery completes.
	linkbaseRefs []schemaLinkbaseRef

	concepts *conceptRegistry

	presentationLB *PresentationLinkbase
	definition     *DefinitionLinkbase
	calculation    *CalculationLinkbase
	label          *LabelLinkbase

	presentation *presentationModel
	dims         *dimensionModel

	// StrictPresentationParent is passed to the presentation builder,
	// which rejects (rather than silently picking the first) a concept
	// with more than one presentation parent in a single extended link
	// role when it is true. CreateDTS builds the presentation model on
	// the DTS value it allocates itself, where this field is false, and
	// setting it on a returned DTS does not rebuild the model: a DTS
	// from CreateDTS always uses the first-parent-wins rule.
	StrictPresentationParent bool
}

// RootSchema returns the file name of the DTS's root schema.
func (d *DTS) RootSchema() string { return d.rootSchema }

// Schemas returns every schema in the DTS, root first, in discovery
// order.
func (d *DTS) Schemas() []*TaxonomySchema {
	out := make([]*TaxonomySchema, 0, len(d.schemaOrder))
	for _, name := range d.schemaOrder {
		out = append(out, d.schemas[name])
	}
	return out
}

// ConceptByID looks up a concept by its DTS-unique id.
func (d *DTS) ConceptByID(id string) (*Concept, bool) {
	return d.concepts.byIDLookup(id)
}

// ConceptByQName looks up a concept by (namespace, name).
func (d *DTS) ConceptByQName(q QName) (*Concept, bool) {
	return d.concepts.byQNameLookup(q)
}

// ConceptsBySubstitutionGroup returns every concept whose
// substitutionGroup equals sg.
func (d *DTS) ConceptsBySubstitutionGroup(sg QName) []*Concept {
	return d.concepts.bySubstitutionGroup(sg)
}

// PresentationLinkbase returns the DTS's presentation linkbase.
func (d *DTS) PresentationLinkbase() *PresentationLinkbase { return d.presentationLB }

// DefinitionLinkbase returns the DTS's definition linkbase.
func (d *DTS) DefinitionLinkbase() *DefinitionLinkbase { return d.definition }

// CalculationLinkbase returns the DTS's calculation linkbase.
func (d *DTS) CalculationLinkbase() *CalculationLinkbase { return d.calculation }

// LabelLinkbase returns the DTS's label linkbase.
func (d *DTS) LabelLinkbase() *LabelLinkbase { return d.label }

// Presentation returns the derived presentation tree model (built
// after DTS construction completes).
func (d *DTS) Presentation() *presentationModel { return d.presentation }

// DimensionAllowed evaluates §4.5's dimensionAllowed query.
func (d *DTS) DimensionAllowed(primaryConcept *Concept, mdt *MultipleDimensionType, ctxElem ContextElementKind) bool {
	return d.dimensionAllowed(primaryConcept, mdt, ctxElem)
}

// Hypercube returns the built Hypercube for a hypercube concept, if any.
func (d *DTS) Hypercube(concept *Concept) (*Hypercube, bool) {
	if d.dims == nil {
		return nil, false
	}
	hc, ok := d.dims.hypercubesByConcept[concept]
	return hc, ok
}

// Dimension returns the built Dimension for a dimension concept, if any.
func (d *DTS) Dimension(concept *Concept) (*Dimension, bool) {
	if d.dims == nil {
		return nil, false
	}
	dim, ok := d.dims.dimensionsByConcept[concept]
	return dim, ok
}

// CreateDTS builds a DTS from a root schema file path, per §4.8.
func CreateDTS(rootSchemaPath string) (*DTS, error) {
	dts := &DTS{
		dir:            filepath.Dir(rootSchemaPath),
		schemas:        make(map[string]*TaxonomySchema),
		concepts:       newConceptRegistry(),
		presentationLB: NewPresentationLinkbase(),
		definition:     NewDefinitionLinkbase(),
		calculation:    NewCalculationLinkbase(),
		label:          NewLabelLinkbase(),
	}

	rootName := filepath.Base(rootSchemaPath)
	dts.rootSchema = rootName

	if err := dts.discoverSchemas(rootName); err != nil {
		return nil, err
	}

	if err := dts.loadLinkbases(); err != nil {
		return nil, err
	}

	dts.label.index()

	pres, err := buildPresentationModel(dts.presentationLB, dts.StrictPresentationParent)
	if err != nil {
		return nil, err
	}
	dts.presentation = pres

	dims, err := buildDimensionModel(dts)
	if err != nil {
		return nil, err
	}
	dts.dims = dims

	return dts, nil
}

// discoverSchemas BFS-walks <import> edges starting at rootName,
// deduplicating by file name with a visited set so accidental import
// cycles are tolerated rather than looping forever. Grounded on the
// insert-unique + visited-map traversal shape used for dependency
// graphs: each schema is parsed exactly once, in first-seen order.
func (d *DTS) discoverSchemas(rootName string) error {
	visited := map[string]bool{}
	queue := []string{rootName}

	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		if visited[name] {
			continue
		}
		visited[name] = true

		schema, err := d.parseSchemaFile(name)
		if err != nil {
			return err
		}
		d.schemas[name] = schema
		d.schemaOrder = append(d.schemaOrder, name)

		for _, imp := range schema.imports {
			if !visited[imp] {
				queue = append(queue, imp)
			}
		}
	}
	return nil
}

// schemaLinkbaseRef is one <link:linkbaseRef> entry harvested from a
// schema's <xsd:annotation>/<xsd:appinfo>.
type schemaLinkbaseRef struct {
	role string // "presentation" | "label" | "definition" | "calculation"
	href string
}

// parseSchemaFile parses one schema document: targetNamespace,
// <import> edges, <xsd:element> concept declarations, and
// linkbaseRefs (accumulated onto d.linkbaseRefs for the later
// loadLinkbases pass).
func (d *DTS) parseSchemaFile(name string) (*TaxonomySchema, error) {
	path := filepath.Join(d.dir, name)
	f, err := os.Open(path)
	if err != nil {
		return nil, &TaxonomyCreationError{SchemaFile: name, Detail: "open schema: " + err.Error()}
	}
	defer f.Close()

	schema := &TaxonomySchema{name: name}
	ns := newNamespaceStack()
	dec := xml.NewDecoder(f)
	dec.CharsetReader = charsetReader

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &TaxonomyCreationError{SchemaFile: name, Detail: "decode schema: " + err.Error()}
		}

		switch t := tok.(type) {
		case xml.StartElement:
			ns.Push(t)

			switch t.Name.Local {
			case "schema":
				for _, a := range t.Attr {
					if a.Name.Local == "targetNamespace" {
						schema.namespace = strings.TrimSpace(a.Value)
					}
				}
			case "import":
				var loc string
				for _, a := range t.Attr {
					if a.Name.Local == "schemaLocation" {
						loc = strings.TrimSpace(a.Value)
					}
				}
				if loc != "" {
					loc = filepath.Base(loc)
					already := false
					for _, s := range schema.imports {
						if s == loc {
							already = true
							break
						}
					}
					if !already {
						schema.imports = append(schema.imports, loc)
					}
				}
				if err := dec.Skip(); err != nil {
					return nil, err
				}
			case "linkbaseRef":
				ref := parseLinkbaseRefAttrs(t)
				if ref.href != "" {
					d.linkbaseRefs = append(d.linkbaseRefs, ref)
				}
				if err := dec.Skip(); err != nil {
					return nil, err
				}
			case "element":
				c := d.conceptFromElement(t, schema, ns)
				if c != nil {
					if err := d.concepts.register(c); err != nil {
						return nil, err
					}
					schema.concepts = append(schema.concepts, c)
				}
				if err := dec.Skip(); err != nil {
					return nil, err
				}
			}

		case xml.EndElement:
			ns.Pop(t)
		}
	}

	if schema.namespace != "" {
		schema.prefix = ns.PrefixForURI(schema.namespace)
		if schema.prefix == "" {
			schema.prefix = synthesizePrefix(name)
		}
	}

	return schema, nil
}

func parseLinkbaseRefAttrs(se xml.StartElement) schemaLinkbaseRef {
	var ref schemaLinkbaseRef
	for _, a := range se.Attr {
		switch {
		case a.Name.Local == "href":
			ref.href = strings.TrimSpace(a.Value)
		case a.Name.Local == "role" && a.Name.Space == nsXLink:
			ref.role = linkbaseKindFromRole(a.Value)
		case a.Name.Local == "role":
			if ref.role == "" {
				ref.role = linkbaseKindFromRole(a.Value)
			}
		}
	}
	return ref
}

// linkbaseKindFromRole classifies a linkbaseRef's xlink:role into one
// of the four linkbase kinds, falling back to sniffing the href.
func linkbaseKindFromRole(role string) string {
	lower := strings.ToLower(role)
	switch {
	case strings.Contains(lower, "presentation"):
		return "presentation"
	case strings.Contains(lower, "label"):
		return "label"
	case strings.Contains(lower, "calculation"):
		return "calculation"
	case strings.Contains(lower, "definition"):
		return "definition"
	default:
		return ""
	}
}

// conceptFromElement creates a Concept from an xs:element start tag.
func (d *DTS) conceptFromElement(se xml.StartElement, schema *TaxonomySchema, ns *namespaceStack) *Concept {
	var name, id, typ, subst, typedDomainRef string
	var abstractStr, nillableStr, periodTypeStr, balance string

	for _, a := range se.Attr {
		switch {
		case a.Name.Local == "name":
			name = strings.TrimSpace(a.Value)
		case a.Name.Local == "id":
			id = strings.TrimSpace(a.Value)
		case a.Name.Local == "type":
			typ = strings.TrimSpace(a.Value)
		case a.Name.Local == "substitutionGroup":
			subst = strings.TrimSpace(a.Value)
		case a.Name.Local == "abstract":
			abstractStr = strings.TrimSpace(a.Value)
		case a.Name.Local == "nillable":
			nillableStr = strings.TrimSpace(a.Value)
		case a.Name.Local == "periodType":
			periodTypeStr = strings.TrimSpace(a.Value)
		case a.Name.Local == "balance":
			balance = strings.TrimSpace(a.Value)
		case a.Name.Local == "typedDomainRef":
			typedDomainRef = strings.TrimSpace(a.Value)
		}
	}

	if name == "" || schema.namespace == "" {
		return nil
	}

	conceptPrefix := ns.PrefixForURI(schema.namespace)
	cq := QName{prefix: conceptPrefix, local: name, uri: schema.namespace}

	var sgQName, typeQName QName
	if subst != "" {
		sgQName = resolveQName(subst, ns)
	}
	if typ != "" {
		typeQName = resolveQName(typ, ns)
	}

	pt := PeriodTypeUnset
	switch periodTypeStr {
	case "instant":
		pt = PeriodTypeInstant
	case "duration":
		pt = PeriodTypeDuration
	}

	return &Concept{
		qname:             cq,
		id:                id,
		substitutionGroup: sgQName,
		typeName:          typeQName,
		typedDomainRef:    typedDomainRef,
		abstract:          parseBool(abstractStr),
		nillable:          parseBool(nillableStr),
		periodType:        pt,
		balance:           balance,
		schema:            schema,
	}
}

// parseBool interprets common boolean lexical forms. Only "true"/"1"
// (case-insensitive) are treated as true.
func parseBool(s string) bool {
	if s == "" {
		return false
	}
	switch strings.ToLower(s) {
	case "true", "1":
		return true
	default:
		return false
	}
}

// loadLinkbases parses every linkbaseRef harvested during schema
// discovery, in two passes per file (locators/resources, then arcs),
// per §4.8 steps 3-4.
func (d *DTS) loadLinkbases() error {
	for _, ref := range d.linkbaseRefs {
		if ref.role == "" {
			continue
		}
		if err := d.loadOneLinkbase(ref); err != nil {
			return err
		}
	}
	return nil
}

func (d *DTS) loadOneLinkbase(ref schemaLinkbaseRef) error {
	name := filepath.Base(ref.href)
	path := filepath.Join(d.dir, name)
	f, err := os.Open(path)
	if err != nil {
		return &TaxonomyCreationError{LinkbaseFile: name, Detail: "open linkbase: " + err.Error()}
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return &TaxonomyCreationError{LinkbaseFile: name, Detail: "read linkbase: " + err.Error()}
	}

	// Pass 1: locators and resources, grouped by extended link role.
	elements, err := d.parseLinkbaseElements(name, data, ref.role)
	if err != nil {
		return err
	}

	// Pass 2: arcs, resolved against the elements just built.
	return d.parseLinkbaseArcs(name, data, ref.role, elements)
}

// labeledElements groups extended-link elements within one linkbase
// file by their xlink:label, scoped per extended link role.
type labeledElements struct {
	byRoleLabel map[string]map[string][]ExtendedLinkElement
}

func newLabeledElements() *labeledElements {
	return &labeledElements{byRoleLabel: make(map[string]map[string][]ExtendedLinkElement)}
}

func (le *labeledElements) add(role, label string, el ExtendedLinkElement) {
	byLabel, ok := le.byRoleLabel[role]
	if !ok {
		byLabel = make(map[string][]ExtendedLinkElement)
		le.byRoleLabel[role] = byLabel
	}
	byLabel[label] = append(byLabel[label], el)
}

func (le *labeledElements) get(role, label string) []ExtendedLinkElement {
	return le.byRoleLabel[role][label]
}

func (d *DTS) linkbaseForKind(kind string) interface {
	addElement(ExtendedLinkElement)
	addArc(*Arc)
	ResourceByID(href string) (*Resource, bool)
} {
	switch kind {
	case "presentation":
		return d.presentationLB
	case "definition":
		return d.definition
	case "calculation":
		return d.calculation
	case "label":
		return d.label
	default:
		return nil
	}
}

func (d *DTS) parseLinkbaseElements(file string, data []byte, kind string) (*labeledElements, error) {
	le := newLabeledElements()
	lb := d.linkbaseForKind(kind)
	if lb == nil {
		return le, nil
	}

	dec := xml.NewDecoder(strings.NewReader(string(data)))
	dec.CharsetReader = charsetReader
	ns := newNamespaceStack()

	var currentRole string
	var roleStack []string

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &TaxonomyCreationError{LinkbaseFile: file, Detail: "decode linkbase: " + err.Error()}
		}

		switch t := tok.(type) {
		case xml.StartElement:
			ns.Push(t)

			if strings.HasSuffix(t.Name.Local, "Link") && t.Name.Local != "linkbase" {
				role := attrValue(t.Attr, nsXLink, "role")
				roleStack = append(roleStack, role)
				currentRole = role
				continue
			}

			xlinkType := attrValue(t.Attr, nsXLink, "type")
			label := attrValue(t.Attr, nsXLink, "label")

			switch xlinkType {
			case "locator":
				href := attrValue(t.Attr, nsXLink, "href")
				role := attrValue(t.Attr, nsXLink, "role")
				title := attrValue(t.Attr, nsXLink, "title")
				id := attrValue(t.Attr, "", "id")

				concept, resource, err := d.resolveHref(file, href, lb)
				if err != nil {
					return nil, err
				}
				loc := &Locator{
					label: label, role: role, title: title, id: id,
					concept: concept, resource: resource, usable: true,
					sourceFile: file, extendedLinkRole: currentRole,
				}
				le.add(currentRole, label, loc)
				lb.addElement(loc)

			case "resource":
				role := attrValue(t.Attr, nsXLink, "role")
				title := attrValue(t.Attr, nsXLink, "title")
				id := attrValue(t.Attr, "", "id")
				lang := attrValue(t.Attr, nsXML, "lang")

				var value string
				if err := dec.DecodeElement(&value, &t); err != nil {
					return nil, &TaxonomyCreationError{LinkbaseFile: file, Detail: "decode resource: " + err.Error()}
				}
				res := &Resource{
					label: label, role: role, title: title, id: id, lang: lang,
					value: strings.TrimSpace(value),
					sourceFile: file, extendedLinkRole: currentRole,
				}
				le.add(currentRole, label, res)
				lb.addElement(res)
				ns.Pop(xml.EndElement{Name: t.Name})
			}

		case xml.EndElement:
			if strings.HasSuffix(t.Name.Local, "Link") && t.Name.Local != "linkbase" {
				if len(roleStack) > 0 {
					roleStack = roleStack[:len(roleStack)-1]
				}
				if len(roleStack) > 0 {
					currentRole = roleStack[len(roleStack)-1]
				} else {
					currentRole = ""
				}
			}
			ns.Pop(t)
		}
	}

	return le, nil
}

// resolveHref resolves an xlink:href of the form "file#id" against the
// DTS concept registry, falling back to an existing resource id in the
// same linkbase file (resolved against lb) when no concept matches -
// a locator that targets a label/resource rather than a schema
// element.
func (d *DTS) resolveHref(linkbaseFile, href string, lb interface {
	ResourceByID(href string) (*Resource, bool)
}) (*Concept, *Resource, error) {
	parts := strings.SplitN(href, "#", 2)
	if len(parts) != 2 {
		return nil, nil, &TaxonomyCreationError{LinkbaseFile: linkbaseFile, Detail: "malformed locator href: " + href}
	}
	id := parts[1]

	if c, ok := d.concepts.byIDLookup(id); ok {
		return c, nil, nil
	}

	if lb != nil {
		if r, ok := lb.ResourceByID(linkbaseFile + "#" + id); ok {
			return nil, r, nil
		}
	}

	return nil, nil, &TaxonomyCreationError{
		LinkbaseFile: linkbaseFile,
		Detail:       "unresolved locator href: " + href,
	}
}

func (d *DTS) parseLinkbaseArcs(file string, data []byte, kind string, elements *labeledElements) error {
	lb := d.linkbaseForKind(kind)
	if lb == nil {
		return nil
	}

	dec := xml.NewDecoder(strings.NewReader(string(data)))
	dec.CharsetReader = charsetReader

	var currentRole string
	var roleStack []string

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return &TaxonomyCreationError{LinkbaseFile: file, Detail: "decode linkbase arcs: " + err.Error()}
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if strings.HasSuffix(t.Name.Local, "Link") && t.Name.Local != "linkbase" {
				role := attrValue(t.Attr, nsXLink, "role")
				roleStack = append(roleStack, role)
				currentRole = role
				continue
			}

			xlinkType := attrValue(t.Attr, nsXLink, "type")
			if xlinkType != "arc" {
				if attrValue(t.Attr, nsXLink, "label") != "" {
					// locator/resource content already consumed in pass 1;
					// resources have text content we must skip here.
					if err := dec.Skip(); err != nil {
						return err
					}
				}
				continue
			}

			from := attrValue(t.Attr, nsXLink, "from")
			to := attrValue(t.Attr, nsXLink, "to")
			arcrole := attrValue(t.Attr, nsXLink, "arcrole")

			sources := elements.get(currentRole, from)
			targets := elements.get(currentRole, to)

			order := parseFloatAttr(t.Attr, "order", 0)
			weightLex := attrValue(t.Attr, "", "weight")
			weight := parseFloatAttr(t.Attr, "weight", 1)
			priority := int(parseFloatAttr(t.Attr, "priority", 0))
			use := ArcUseOptional
			if attrValue(t.Attr, "", "use") == "prohibited" {
				use = ArcUseProhibited
			}
			targetRole := attrValue(t.Attr, nsXBRLDT, "targetRole")
			ctxElem := ContextElementUnset
			switch attrValue(t.Attr, nsXBRLDT, "contextElement") {
			case "scenario":
				ctxElem = ContextElementScenario
			case "segment":
				ctxElem = ContextElementSegment
			}

			attrs := make(map[string]string)
			for _, a := range t.Attr {
				attrs[a.Name.Local] = a.Value
			}

			for _, s := range sources {
				for _, tgt := range targets {
					a := &Arc{
						source: s, target: tgt,
						arcrole:              arcrole,
						xbrlExtendedLinkRole: currentRole,
						contextElement:       ctxElem,
						targetRole:           targetRole,
						order:                order,
						weight:               weight,
						weightLex:            weightLex,
						priority:             priority,
						use:                  use,
						attrs:                attrs,
					}
					lb.addArc(a)
					if use == ArcUseProhibited {
						if loc, ok := tgt.(*Locator); ok {
							loc.usable = false
						}
					}
				}
			}

		case xml.EndElement:
			if strings.HasSuffix(t.Name.Local, "Link") && t.Name.Local != "linkbase" {
				if len(roleStack) > 0 {
					roleStack = roleStack[:len(roleStack)-1]
				}
				if len(roleStack) > 0 {
					currentRole = roleStack[len(roleStack)-1]
				} else {
					currentRole = ""
				}
			}
		}
	}

	return nil
}

func attrValue(attrs []xml.Attr, space, local string) string {
	for _, a := range attrs {
		if a.Name.Local == local && (space == "" || a.Name.Space == space) {
			return a.Value
		}
	}
	return ""
}

func parseFloatAttr(attrs []xml.Attr, local string, def float64) float64 {
	v := attrValue(attrs, "", local)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}
