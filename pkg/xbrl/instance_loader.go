package xbrl

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

const nsXSI = "http://www.w3.org/2001/XMLSchema-instance"

// ParseFile parses an XBRL instance document from a file path and
// resolves every <schemaRef> into a DTS, building in.dtsSet before
// returning. Dimensional members are resolved against those DTSes, so
// Context.Segment()/Scenario() are populated with concept-bound
// MultipleDimensionType values rather than raw QNames. A fact whose
// concept is a numeric item (Concept.IsNumericItem) but which carries
// no unitRef is an *InstanceLoadError.
func ParseFile(path string) (*Instance, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("xbrl: open file: %w", err)
	}
	defer f.Close()

	in, err := Parse(f)
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(path)
	if err := in.loadDTSSet(dir); err != nil {
		return nil, err
	}
	in.resolveDimensions()

	for _, fact := range in.facts {
		if fact == nil || fact.unitRef != "" {
			continue
		}
		if c, ok := in.ConceptOf(fact); ok && c.IsNumericItem() {
			return nil, &InstanceLoadError{Detail: "numeric fact " + fact.name.String() + " has no unitRef"}
		}
	}

	return in, nil
}

// Parse parses an XBRL instance document from an io.Reader. It does
// not resolve schemaRefs into a DTS; dimensional members remain
// unresolved (Context.Segment()/Scenario() return nil) until
// loadDTSSet and resolveDimensions run, which ParseFile does
// automatically.
func Parse(r io.Reader) (*Instance, error) {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charsetReader

	var in Instance
	in.contexts = make(map[string]*Context)
	in.units = make(map[string]*Unit)

	ns := newNamespaceStack()

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &InstanceLoadError{Detail: "decode token: " + err.Error()}
		}

		switch t := tok.(type) {
		case xml.StartElement:
			ns.Push(t)

			if isXbrlRoot(t) {
				in.rootNamespace = t.Name.Space
				in.additionalNamespaces, in.schemaLocations = parseRootNamespaces(t)
				continue
			}

			switch {
			case t.Name.Local == "schemaRef":
				in.schemaRefs = append(in.schemaRefs, parseSchemaRef(t))

			case t.Name.Local == "context":
				ctx, err := parseContext(dec, t, ns)
				if err != nil {
					return nil, err
				}
				in.contexts[ctx.id] = ctx

			case t.Name.Local == "unit":
				unit, err := parseUnit(dec, t, ns)
				if err != nil {
					return nil, err
				}
				in.units[unit.id] = unit

			default:
				if hasAttr(t.Attr, "contextRef") {
					fact, err := parseItemFact(dec, t, ns)
					if err != nil {
						return nil, err
					}
					in.addFact(fact)
				}
			}

		case xml.EndElement:
			ns.Pop(t)
		}
	}

	return &in, nil
}

// loadDTSSet resolves every schemaRef href, relative to dir, into a
// DTS, appending to in.dtsSet. Multiple schemaRefs pointing at the
// same file resolve to one DTS.
func (in *Instance) loadDTSSet(dir string) error {
	seen := make(map[string]bool)
	for _, sr := range in.schemaRefs {
		href := sr.Href()
		if href == "" {
			continue
		}
		name := filepath.Base(href)
		if seen[name] {
			continue
		}
		seen[name] = true

		dts, err := CreateDTS(filepath.Join(dir, name))
		if err != nil {
			return err
		}
		in.dtsSet = append(in.dtsSet, dts)
	}
	return nil
}

// rawDimMember is a dimensional member as lexically parsed, before its
// dimension/member QNames are resolved to taxonomy concepts.
type rawDimMember struct {
	dimension  QName
	explicit   bool
	member     QName
	typedValue string
}

// resolveDimensions converts each context's raw dimensional members
// into concept-bound MultipleDimensionType values, using whichever DTS
// in in.dtsSet first resolves a given QName.
func (in *Instance) resolveDimensions() {
	for _, ctx := range in.contexts {
		ctx.segment = in.buildMDT(ctx.segmentRaw)
		ctx.scenario = in.buildMDT(ctx.scenarioRaw)
		ctx.segmentRaw = nil
		ctx.scenarioRaw = nil
	}
}

func (in *Instance) buildMDT(raw []rawDimMember) *MultipleDimensionType {
	if len(raw) == 0 {
		return nil
	}

	var mdt *MultipleDimensionType
	for _, r := range raw {
		dimConcept, _ := in.conceptByQName(r.dimension)
		sdt := SingleDimensionType{Dimension: dimConcept}
		if r.explicit {
			memberConcept, _ := in.conceptByQName(r.member)
			sdt.DomainMember = memberConcept
		} else {
			sdt.TypedValue = r.typedValue
		}

		if mdt == nil {
			mdt = NewMultipleDimensionType(sdt)
		} else {
			mdt.AddPredecessorDimensionDomain(sdt)
		}
	}
	return mdt
}

func (in *Instance) conceptByQName(q QName) (*Concept, bool) {
	for _, dts := range in.dtsSet {
		if c, ok := dts.ConceptByQName(q); ok {
			return c, true
		}
	}
	return nil, false
}

// ValidateInstance checks that every fact binds to a known concept in
// some attached DTS, then runs the calculation engine over the
// instance. It returns the first error encountered.
func ValidateInstance(in *Instance) error {
	for _, f := range in.facts {
		if _, ok := in.ConceptOf(f); !ok {
			return &InstanceValidationError{Concept: f.name}
		}
	}
	return NewCalculationEngine().Validate(in)
}

// ---------- element detection / small parsers ----------

func isXbrlRoot(se xml.StartElement) bool {
	return strings.EqualFold(se.Name.Local, "xbrl")
}

// parseRootNamespaces reads every xmlns:prefix binding and the
// xsi:schemaLocation attribute off the instance document's root
// element.
func parseRootNamespaces(se xml.StartElement) (map[string]string, map[string]string) {
	additional := make(map[string]string)
	locations := make(map[string]string)

	for _, a := range se.Attr {
		switch {
		case a.Name.Space == "xmlns":
			additional[a.Name.Local] = a.Value
		case a.Name.Space == nsXSI && a.Name.Local == "schemaLocation":
			locations = parseSchemaLocationPairs(a.Value)
		}
	}

	return additional, locations
}

// parseSchemaLocationPairs splits an xsi:schemaLocation attribute value
// ("ns1 loc1 ns2 loc2 ...") into namespace-URI -> location pairs.
func parseSchemaLocationPairs(s string) map[string]string {
	fields := strings.Fields(s)
	out := make(map[string]string)
	for i := 0; i+1 < len(fields); i += 2 {
		out[fields[i]] = fields[i+1]
	}
	return out
}

func parseSchemaRef(se xml.StartElement) SchemaRef {
	var href string
	for _, a := range se.Attr {
		if a.Name.Local == "href" {
			href = a.Value
			break
		}
	}
	return SchemaRef{href: href}
}

func parseContext(dec *xml.Decoder, start xml.StartElement, ns *namespaceStack) (*Context, error) {
	ctx := &Context{}
	for _, a := range start.Attr {
		if a.Name.Local == "id" {
			ctx.id = a.Value
		}
	}

	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, &InstanceLoadError{Detail: "parse context: " + err.Error()}
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "entity":
				ent, segDims, err := parseEntity(dec, t, ns)
				if err != nil {
					return nil, err
				}
				ctx.entity = *ent
				ctx.segmentRaw = append(ctx.segmentRaw, segDims...)
			case "period":
				p, err := parsePeriod(dec, t)
				if err != nil {
					return nil, err
				}
				ctx.period = *p
			case "scenario":
				scnDims, err := parseDimensionsContainer(dec, t, ns)
				if err != nil {
					return nil, err
				}
				ctx.scenarioRaw = append(ctx.scenarioRaw, scnDims...)
			default:
				if err := dec.Skip(); err != nil {
					return nil, err
				}
			}
		case xml.EndElement:
			if t.Name.Local == start.Name.Local {
				return ctx, nil
			}
		}
	}
}

func parseEntity(dec *xml.Decoder, start xml.StartElement, ns *namespaceStack) (*Entity, []rawDimMember, error) {
	ent := &Entity{}
	var dims []rawDimMember

	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, nil, &InstanceLoadError{Detail: "parse entity: " + err.Error()}
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "identifier":
				var ident ContextIdentifier
				for _, a := range t.Attr {
					if a.Name.Local == "scheme" {
						ident.scheme = a.Value
					}
				}
				var value string
				if err := dec.DecodeElement(&value, &t); err != nil {
					return nil, nil, &InstanceLoadError{Detail: "parse identifier: " + err.Error()}
				}
				ident.value = strings.TrimSpace(value)
				ent.identifier = ident
			case "segment":
				segDims, err := parseDimensionsContainer(dec, t, ns)
				if err != nil {
					return nil, nil, err
				}
				dims = append(dims, segDims...)
			default:
				if err := dec.Skip(); err != nil {
					return nil, nil, err
				}
			}
		case xml.EndElement:
			if t.Name.Local == start.Name.Local {
				return ent, dims, nil
			}
		}
	}
}

func parsePeriod(dec *xml.Decoder, start xml.StartElement) (*Period, error) {
	p := &Period{}
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, &InstanceLoadError{Detail: "parse period: " + err.Error()}
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "instant":
				var v string
				if err := dec.DecodeElement(&v, &t); err != nil {
					return nil, err
				}
				v = strings.TrimSpace(v)
				p.instant = &v
			case "startDate":
				var v string
				if err := dec.DecodeElement(&v, &t); err != nil {
					return nil, err
				}
				v = strings.TrimSpace(v)
				p.startDate = &v
			case "endDate":
				var v string
				if err := dec.DecodeElement(&v, &t); err != nil {
					return nil, err
				}
				v = strings.TrimSpace(v)
				p.endDate = &v
			case "forever":
				if err := dec.Skip(); err != nil {
					return nil, err
				}
				p.forever = true
			default:
				if err := dec.Skip(); err != nil {
					return nil, err
				}
			}
		case xml.EndElement:
			if t.Name.Local == start.Name.Local {
				return p, nil
			}
		}
	}
}

func parseUnit(dec *xml.Decoder, start xml.StartElement, ns *namespaceStack) (*Unit, error) {
	u := &Unit{}
	for _, a := range start.Attr {
		if a.Name.Local == "id" {
			u.id = a.Value
		}
	}

	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, &InstanceLoadError{Detail: "parse unit: " + err.Error()}
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "measure":
				q, err := parseMeasureElement(dec, t, ns)
				if err != nil {
					return nil, err
				}
				u.measures = append(u.measures, q)
			case "divide":
				num, den, err := parseDivide(dec, t, ns)
				if err != nil {
					return nil, err
				}
				u.divide = true
				u.numerator = num
				u.denominator = den
			default:
				if err := dec.Skip(); err != nil {
					return nil, err
				}
			}
		case xml.EndElement:
			if t.Name.Local == start.Name.Local {
				return u, nil
			}
		}
	}
}

func parseMeasureElement(dec *xml.Decoder, start xml.StartElement, ns *namespaceStack) (QName, error) {
	var v string
	if err := dec.DecodeElement(&v, &start); err != nil {
		return QName{}, err
	}
	return resolveQName(strings.TrimSpace(v), ns), nil
}

func parseDivide(dec *xml.Decoder, start xml.StartElement, ns *namespaceStack) ([]QName, []QName, error) {
	var num, den []QName

	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, nil, &InstanceLoadError{Detail: "parse divide: " + err.Error()}
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "unitNumerator":
				n, err := parseUnitMeasureContainer(dec, t, ns)
				if err != nil {
					return nil, nil, err
				}
				num = n
			case "unitDenominator":
				d, err := parseUnitMeasureContainer(dec, t, ns)
				if err != nil {
					return nil, nil, err
				}
				den = d
			default:
				if err := dec.Skip(); err != nil {
					return nil, nil, err
				}
			}
		case xml.EndElement:
			if t.Name.Local == start.Name.Local {
				return num, den, nil
			}
		}
	}
}

func parseUnitMeasureContainer(dec *xml.Decoder, start xml.StartElement, ns *namespaceStack) ([]QName, error) {
	var measures []QName

	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, &InstanceLoadError{Detail: "parse unit measure container: " + err.Error()}
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "measure" {
				q, err := parseMeasureElement(dec, t, ns)
				if err != nil {
					return nil, err
				}
				measures = append(measures, q)
			} else {
				if err := dec.Skip(); err != nil {
					return nil, err
				}
			}
		case xml.EndElement:
			if t.Name.Local == start.Name.Local {
				return measures, nil
			}
		}
	}
}

func parseItemFact(dec *xml.Decoder, start xml.StartElement, ns *namespaceStack) (*Fact, error) {
	prefix := ""
	if ns != nil {
		prefix = ns.PrefixForURI(start.Name.Space)
	}

	f := &Fact{
		kind: FactKindItem,
		name: QName{prefix: prefix, local: start.Name.Local, uri: start.Name.Space},
	}

	for _, a := range start.Attr {
		switch a.Name.Local {
		case "contextRef":
			f.contextRef = a.Value
		case "unitRef":
			f.unitRef = a.Value
		case "decimals":
			f.decimals = a.Value
		case "precision":
			f.precision = a.Value
		case "id":
			f.id = a.Value
		case "lang":
			f.lang = a.Value
		}
		if a.Name.Space == nsXSI && a.Name.Local == "nil" && strings.EqualFold(a.Value, "true") {
			f.nilValue = true
		}
	}

	var value string
	if err := dec.DecodeElement(&value, &start); err != nil {
		return nil, &InstanceLoadError{Detail: "parse fact " + start.Name.Local + ": " + err.Error()}
	}
	f.value = strings.TrimSpace(value)

	return f, nil
}

func parseDimensionsContainer(dec *xml.Decoder, start xml.StartElement, ns *namespaceStack) ([]rawDimMember, error) {
	var dims []rawDimMember

	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, &InstanceLoadError{Detail: "parse dimensions (" + start.Name.Local + "): " + err.Error()}
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "explicitMember":
				d, err := parseExplicitMember(dec, t, ns)
				if err != nil {
					return nil, err
				}
				dims = append(dims, d)
			case "typedMember":
				d, err := parseTypedMember(dec, t, ns)
				if err != nil {
					return nil, err
				}
				dims = append(dims, d)
			default:
				if err := dec.Skip(); err != nil {
					return nil, err
				}
			}
		case xml.EndElement:
			if t.Name.Local == start.Name.Local {
				return dims, nil
			}
		}
	}
}

func parseExplicitMember(dec *xml.Decoder, start xml.StartElement, ns *namespaceStack) (rawDimMember, error) {
	var dimLexical string
	for _, a := range start.Attr {
		if a.Name.Local == "dimension" {
			dimLexical = strings.TrimSpace(a.Value)
			break
		}
	}
	dimQ := resolveQName(dimLexical, ns)

	var value string
	if err := dec.DecodeElement(&value, &start); err != nil {
		return rawDimMember{}, &InstanceLoadError{Detail: "parse explicitMember: " + err.Error()}
	}
	memQ := resolveQName(strings.TrimSpace(value), ns)

	return rawDimMember{dimension: dimQ, explicit: true, member: memQ}, nil
}

func parseTypedMember(dec *xml.Decoder, start xml.StartElement, ns *namespaceStack) (rawDimMember, error) {
	var dimLexical string
	for _, a := range start.Attr {
		if a.Name.Local == "dimension" {
			dimLexical = strings.TrimSpace(a.Value)
			break
		}
	}
	dimQ := resolveQName(dimLexical, ns)

	type inner struct {
		XML string `xml:",innerxml"`
	}
	var in inner
	if err := dec.DecodeElement(&in, &start); err != nil {
		return rawDimMember{}, &InstanceLoadError{Detail: "parse typedMember: " + err.Error()}
	}

	return rawDimMember{dimension: dimQ, explicit: false, typedValue: strings.TrimSpace(in.XML)}, nil
}

func hasAttr(attrs []xml.Attr, local string) bool {
	for _, a := range attrs {
		if a.Name.Local == local {
			return true
		}
	}
	return false
}
