package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/go-xbrl/dts-engine/pkg/xbrl"
)

// FactDTO is an example DTO for exporting facts as JSON.
type FactDTO struct {
	Name       string `json:"name"`
	Value      string `json:"value"`
	ContextRef string `json:"context"`
	UnitRef    string `json:"unit"`
	Nil        bool   `json:"nil"`
}

// ExportFacts converts all facts in an Instance into a slice of DTOs.
func ExportFacts(in *xbrl.Instance) []FactDTO {
	out := make([]FactDTO, 0, len(in.Facts()))
	for _, f := range in.Facts() {
		if f == nil {
			continue
		}

		value := f.NormalizedValue()
		if f.IsNil() {
			value = ""
		}

		out = append(out, FactDTO{
			Name:       f.Name().String(),
			Value:      value,
			ContextRef: f.ContextRef(),
			UnitRef:    f.UnitRef(),
			Nil:        f.IsNil(),
		})
	}
	return out
}

func main() {
	// ParseFile discovers and builds every DTS referenced by
	// <schemaRef>, then resolves dimensional segment/scenario members
	// against it, all in one call.
	in, err := xbrl.ParseFile("sample.xbrl")
	if err != nil {
		log.Fatalf("failed to parse XBRL: %v", err)
	}

	// --- Summary ---
	fmt.Println("== Summary ==")
	fmt.Printf("schemaRefs: %d\n", len(in.SchemaRefs()))
	fmt.Printf("contexts  : %d\n", len(in.Contexts()))
	fmt.Printf("units     : %d\n", len(in.Units()))
	fmt.Printf("facts     : %d\n", len(in.Facts()))
	fmt.Printf("DTS count : %d\n", len(in.DTSSet()))
	fmt.Println()

	// --- List all facts ---
	fmt.Println("== All facts ==")
	for _, f := range in.Facts() {
		if f == nil {
			continue
		}
		name := f.Name().String()
		value := f.Value()
		if f.IsNil() {
			value = "(nil)"
		}
		fmt.Printf("%s  ctx=%s  unit=%s  decimals=%s  value=%s\n",
			name,
			f.ContextRef(),
			f.UnitRef(),
			f.Decimals(),
			value,
		)
	}
	fmt.Println()

	// --- Filter facts: example (concept local name = "Revenue", non-nil only) ---
	fmt.Println("== Filtered facts: conceptLocal=Revenue, non-nil ==")
	filter := xbrl.NewFactFilter().
		ConceptLocal("Revenue").
		ExcludeNil()

	filtered := in.FilterFacts(filter)
	if len(filtered) == 0 {
		fmt.Println("no facts matched the filter")
	} else {
		for _, f := range filtered {
			if f == nil {
				continue
			}
			fmt.Printf("%s  ctx=%s  unit=%s  value=%s\n",
				f.Name().String(),
				f.ContextRef(),
				f.UnitRef(),
				f.Value(),
			)
		}
	}
	fmt.Println()

	// --- Inspect contexts, including dimensional qualifiers ---
	fmt.Println("== Contexts ==")
	for id, ctx := range in.Contexts() {
		fmt.Println("Context ID:", id)

		ent := ctx.Entity().Identifier()
		fmt.Printf("  Entity: %s (scheme=%s)\n", ent.Value(), ent.Scheme())

		p := ctx.Period()
		switch {
		case p.IsInstant():
			inst, _ := p.Instant()
			fmt.Printf("  Period: instant=%s\n", inst)
		case p.IsForever():
			fmt.Println("  Period: forever")
		default:
			start, _ := p.StartDate()
			end, _ := p.EndDate()
			fmt.Printf("  Period: %s to %s\n", start, end)
		}

		if seg := ctx.Segment(); seg != nil {
			for dim, member := range seg.GetAllDimensionDomainMap() {
				if member != nil {
					fmt.Printf("  Segment dimension: %s = %s\n", dim.Name(), member.Name())
				} else {
					fmt.Printf("  Segment dimension: %s (typed)\n", dim.Name())
				}
			}
		}
	}
	fmt.Println()

	// --- Inspect units ---
	fmt.Println("== Units ==")
	for id, unit := range in.Units() {
		fmt.Println("Unit ID:", id)
		if unit.IsDivide() {
			fmt.Println("  (divide unit)")
			for _, m := range unit.NumeratorMeasures() {
				fmt.Printf("  numerator: %s (prefix=%s, uri=%s)\n",
					m.Local(), m.Prefix(), m.URI())
			}
			for _, m := range unit.DenominatorMeasures() {
				fmt.Printf("  denominator: %s (prefix=%s, uri=%s)\n",
					m.Local(), m.Prefix(), m.URI())
			}
		} else {
			for _, m := range unit.Measures() {
				fmt.Printf("  measure: %s (prefix=%s, uri=%s)\n",
					m.Local(), m.Prefix(), m.URI())
			}
		}
	}
	fmt.Println()

	// --- Export to JSON ---
	fmt.Println("== Facts as JSON ==")
	if err := in.EncodeFactsJSON(os.Stdout, true); err != nil {
		log.Fatalf("failed to encode JSON: %v", err)
	}
	fmt.Println()

	// --- Concepts, via the DTS(es) discovered from schemaRef ---
	fmt.Println("== Concepts ==")
	for _, f := range in.Facts() {
		if f == nil {
			continue
		}
		c, ok := in.ConceptOf(f)
		if !ok || c == nil {
			fmt.Printf("%s: concept not found in DTS\n", f.Name().String())
			continue
		}
		fmt.Printf("%s:\n", f.Name().String())
		fmt.Printf("  id          = %s\n", c.ID())
		fmt.Printf("  type        = %s\n", c.Type().String())
		fmt.Printf("  substGroup  = %s\n", c.SubstitutionGroup().String())
		fmt.Printf("  abstract    = %v\n", c.Abstract())
		fmt.Printf("  nillable    = %v\n", c.Nillable())
		fmt.Printf("  periodType  = %v\n", c.PeriodType())
		fmt.Printf("  balance     = %s\n", c.Balance())
		fmt.Println()
	}

	// --- Typed values based on Concept type ---
	fmt.Println("== Typed values based on Concept type ==")
	for _, f := range in.Facts() {
		if f == nil {
			continue
		}
		c, ok := in.ConceptOf(f)
		if !ok || c == nil {
			fmt.Printf("%s: concept not found, treat as raw string: %q\n",
				f.Name().String(), f.Value())
			continue
		}

		kind := c.ValueKind()
		fmt.Printf("%s:\n", f.Name().String())
		fmt.Printf("  valueKind = %s\n", kind)
		fmt.Printf("  raw       = %q\n", f.Value())

		switch kind {
		case xbrl.ConceptValueMonetary, xbrl.ConceptValueNumeric:
			if v, err := in.AsInt64(f); err == nil {
				fmt.Printf("  AsInt64   = %d\n", v)
			} else {
				fmt.Printf("  AsInt64   error: %v\n", err)
			}
			if v, err := in.AsFloat64(f); err == nil {
				fmt.Printf("  AsFloat64 = %f\n", v)
			} else {
				fmt.Printf("  AsFloat64 error: %v\n", err)
			}

		case xbrl.ConceptValueBoolean:
			if v, err := in.AsBool(f); err == nil {
				fmt.Printf("  AsBool    = %v\n", v)
			} else {
				fmt.Printf("  AsBool    error: %v\n", err)
			}

		case xbrl.ConceptValueDate, xbrl.ConceptValueDateTime:
			if t, err := in.AsTime(f, time.Local); err == nil {
				fmt.Printf("  AsTime    = %s\n", t.Format(time.RFC3339))
			} else {
				fmt.Printf("  AsTime    error: %v\n", err)
			}

		default:
			fmt.Printf("  as string = %s\n", f.Value())
			if norm := f.NormalizedValue(); norm != f.Value() {
				fmt.Printf("  normalized= %s\n", norm)
			}
		}

		fmt.Println()
	}

	// --- Presentation tree and calculation/dimension validation ---
	fmt.Println("== DTS graphs ==")
	for _, dts := range in.DTSSet() {
		fmt.Printf("DTS rooted at %s\n", dts.RootSchema())
		for _, schema := range dts.Schemas() {
			fmt.Printf("  schema: %s (%d concepts)\n", schema.Name(), len(schema.Concepts()))
		}
	}
	fmt.Println()

	fmt.Println("== Instance validation ==")
	if err := xbrl.ValidateInstance(in); err != nil {
		fmt.Printf("validation failed: %v\n", err)
	} else {
		fmt.Println("all facts resolve to a known concept and calculations balance")
	}
}
