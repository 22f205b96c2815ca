package xbrl

import (
	"errors"
	"fmt"
)

// Error kinds, flat and mutually exclusive, per the engine's error
// taxonomy. Each kind is a distinct exported type so callers can
// discriminate with errors.As.

// TaxonomyCreationError reports a fatal problem discovered while
// building a DTS: an unresolved locator target, a wrong substitution
// group on a hypercube-dimension endpoint, a missing domain-member
// network for an explicit dimension, or a duplicate concept id.
type TaxonomyCreationError struct {
	SchemaFile   string
	LinkbaseFile string
	Detail       string
}

func (e *TaxonomyCreationError) Error() string {
	if e.LinkbaseFile != "" {
		return fmt.Sprintf("xbrl: taxonomy creation error in %s: %s", e.LinkbaseFile, e.Detail)
	}
	return fmt.Sprintf("xbrl: taxonomy creation error in %s: %s", e.SchemaFile, e.Detail)
}

// InstanceLoadError reports a problem found while loading an instance
// document: a missing unit/context id, an unresolved contextRef, an
// unknown fact element, a malformed dimensional member, or a missing
// required field in a context.
type InstanceLoadError struct {
	Detail string
}

func (e *InstanceLoadError) Error() string {
	return fmt.Sprintf("xbrl: instance load error: %s", e.Detail)
}

// InstanceValidationError reports a fact that references a concept not
// found in any DTS attached to the instance.
type InstanceValidationError struct {
	Concept QName
}

func (e *InstanceValidationError) Error() string {
	return fmt.Sprintf("xbrl: instance validation error: concept %s not found in any DTS", e.Concept.String())
}

// CalculationErrorKind discriminates the two sub-kinds of
// CalculationValidationError.
type CalculationErrorKind int

const (
	// MissingValues: a summand concept required by a calculation arc
	// has no fact in the same context.
	MissingValues CalculationErrorKind = iota
	// CalculationMismatch: the weighted sum of summand facts does not
	// equal the reported value of the summing fact.
	CalculationMismatch
)

func (k CalculationErrorKind) String() string {
	switch k {
	case MissingValues:
		return "MissingValues"
	case CalculationMismatch:
		return "CalculationMismatch"
	default:
		return "unknown"
	}
}

// CalculationValidationError reports a calculation-linkbase
// inconsistency found while validating an instance's facts.
type CalculationValidationError struct {
	Kind    CalculationErrorKind
	Role    string // extended link role the calculation was evaluated in
	Concept QName  // the summing concept (fact F)

	// MissingValues
	MissingConcept QName

	// CalculationMismatch
	Expected string
	Computed string
	Summands []QName
}

func (e *CalculationValidationError) Error() string {
	switch e.Kind {
	case MissingValues:
		return fmt.Sprintf("xbrl: calculation validation error: missing summand %s for %s in role %s",
			e.MissingConcept.String(), e.Concept.String(), e.Role)
	case CalculationMismatch:
		return fmt.Sprintf("xbrl: calculation validation error: %s expected %s, computed %s in role %s",
			e.Concept.String(), e.Expected, e.Computed, e.Role)
	default:
		return "xbrl: calculation validation error"
	}
}

// XbrlError is the generic fallback error kind.
type XbrlError struct {
	Detail string
}

func (e *XbrlError) Error() string {
	return fmt.Sprintf("xbrl: %s", e.Detail)
}

// Sentinel base errors usable with errors.Is for coarse-grained checks.
var (
	ErrTaxonomyCreation     = errors.New("xbrl: taxonomy creation error")
	ErrInstanceLoad         = errors.New("xbrl: instance load error")
	ErrInstanceValidation   = errors.New("xbrl: instance validation error")
	ErrCalculationValidation = errors.New("xbrl: calculation validation error")
)

func (e *TaxonomyCreationError) Unwrap() error      { return ErrTaxonomyCreation }
func (e *InstanceLoadError) Unwrap() error          { return ErrInstanceLoad }
func (e *InstanceValidationError) Unwrap() error    { return ErrInstanceValidation }
func (e *CalculationValidationError) Unwrap() error { return ErrCalculationValidation }
