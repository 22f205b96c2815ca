package xbrl

import (
	"math/big"
	"strings"
)

// CalculationEngine validates weighted-sum calculation rules over the
// facts of an Instance. Decimal arithmetic is exact (big.Rat parsed
// directly from the lexical fact value) unless CompatFloatWeights is
// set, which reproduces the source implementation's lossy
// float64-round-tripped weights for bug-for-bug comparison runs.
type CalculationEngine struct {
	// CompatFloatWeights, when true, rounds each arc weight through
	// float64 before multiplying, matching the documented source bug
	// (new BigDecimal(new Float(w).floatValue())) instead of treating
	// weights as exact decimals.
	CompatFloatWeights bool
}

// NewCalculationEngine creates a CalculationEngine with exact decimal
// arithmetic (the default, and the spec's recommended fix).
func NewCalculationEngine() *CalculationEngine {
	return &CalculationEngine{}
}

// Validate runs the §4.7 algorithm over every fact in inst, for every
// DTS it references. It returns the first failure encountered, or nil
// if every fact's calculation (if any) is consistent.
func (ce *CalculationEngine) Validate(inst *Instance) error {
	for _, f := range inst.facts {
		if err := ce.ValidateFact(inst, f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateFact runs the §4.7 algorithm for a single fact, across every
// DTS attached to inst.
func (ce *CalculationEngine) ValidateFact(inst *Instance, f *Fact) error {
	for _, dts := range inst.dtsSet {
		if dts.calculation == nil {
			continue
		}
		concept, ok := dts.ConceptByQName(f.name)
		if !ok {
			continue
		}

		for _, role := range dts.calculation.ExtendedLinkRoles() {
			summands := dts.calculation.Calculations(concept, role)
			if len(summands) == 0 {
				continue
			}

			fVal, err := parseDecimal(f.value)
			if err != nil {
				continue // non-numeric fact value: not a calculation participant
			}

			sum := new(big.Rat)
			var summandConcepts []QName
			for _, s := range summands {
				g, ok := inst.factByConceptContext(s.Concept, f.contextRef)
				if !ok {
					return &CalculationValidationError{
						Kind:           MissingValues,
						Role:           role,
						Concept:        f.name,
						MissingConcept: s.Concept.QName(),
					}
				}
				gVal, err := parseDecimal(g.value)
				if err != nil {
					return &CalculationValidationError{
						Kind:           MissingValues,
						Role:           role,
						Concept:        f.name,
						MissingConcept: s.Concept.QName(),
					}
				}

				weight := ce.weightAsRat(s)
				sum.Add(sum, new(big.Rat).Mul(gVal, weight))
				summandConcepts = append(summandConcepts, s.Concept.QName())
			}

			if sum.Cmp(fVal) != 0 {
				return &CalculationValidationError{
					Kind:     CalculationMismatch,
					Role:     role,
					Concept:  f.name,
					Expected: fVal.RatString(),
					Computed: sum.RatString(),
					Summands: summandConcepts,
				}
			}
		}
	}
	return nil
}

// weightAsRat converts a summand's arc weight to a big.Rat. By default
// it parses the lexical weight text exactly via big.Rat.SetString, so
// a weight like 0.1 is exact rather than the nearest float64. When
// CompatFloatWeights is set, it instead rounds the weight through
// float64 first, reproducing the source's float-rounding bug
// (new BigDecimal(new Float(w).floatValue())) for bug-for-bug runs.
func (ce *CalculationEngine) weightAsRat(s CalculationSummand) *big.Rat {
	if ce.CompatFloatWeights {
		r := new(big.Rat)
		r.SetFloat64(s.Weight)
		return r
	}
	if s.WeightLex != "" {
		if r, ok := new(big.Rat).SetString(s.WeightLex); ok {
			return r
		}
	}
	return new(big.Rat).SetFloat64(s.Weight)
}

// parseDecimal parses a lexical decimal fact value into a big.Rat,
// normalizing a comma decimal separator to a dot first.
func parseDecimal(s string) (*big.Rat, error) {
	s = strings.TrimSpace(s)
	s = strings.Replace(s, ",", ".", 1)
	r, ok := new(big.Rat).SetString(s)
	if !ok {
		return nil, &XbrlError{Detail: "cannot parse decimal value: " + s}
	}
	return r, nil
}
