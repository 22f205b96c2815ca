package xbrl

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Errors returned by typed value helpers.
var (
	ErrNoConcept       = errors.New("xbrl: concept not found for fact")
	ErrUnsupportedType = errors.New("xbrl: unsupported value type for this conversion")
	ErrInvalidValue    = errors.New("xbrl: invalid lexical form for type")
)

// AsInt64 parses f's value as an int64, based on the type of the
// concept f is bound to in in's DTS set. The concept's ValueKind must
// be ConceptValueNumeric or ConceptValueMonetary.
func (in *Instance) AsInt64(f *Fact) (int64, error) {
	if in == nil {
		return 0, fmt.Errorf("xbrl: instance is nil")
	}
	if f == nil {
		return 0, fmt.Errorf("xbrl: fact is nil")
	}
	if f.IsNil() {
		return 0, ErrInvalidValue
	}

	c, ok := in.ConceptOf(f)
	if !ok || c == nil {
		return 0, ErrNoConcept
	}

	switch c.ValueKind() {
	case ConceptValueNumeric, ConceptValueMonetary:
		v := strings.TrimSpace(f.Value())
		if strings.ContainsAny(v, ".eE") {
			return 0, ErrInvalidValue
		}
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %v", ErrInvalidValue, err)
		}
		return n, nil
	default:
		return 0, ErrUnsupportedType
	}
}

// AsFloat64 parses f's value as a float64. ValueKind must be
// ConceptValueNumeric or ConceptValueMonetary.
func (in *Instance) AsFloat64(f *Fact) (float64, error) {
	if in == nil {
		return 0, fmt.Errorf("xbrl: instance is nil")
	}
	if f == nil {
		return 0, fmt.Errorf("xbrl: fact is nil")
	}
	if f.IsNil() {
		return 0, ErrInvalidValue
	}

	c, ok := in.ConceptOf(f)
	if !ok || c == nil {
		return 0, ErrNoConcept
	}

	switch c.ValueKind() {
	case ConceptValueNumeric, ConceptValueMonetary:
		v := strings.TrimSpace(f.Value())
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %v", ErrInvalidValue, err)
		}
		return n, nil
	default:
		return 0, ErrUnsupportedType
	}
}

// AsBool parses f's value as a bool. ValueKind must be
// ConceptValueBoolean. "true"/"1" → true, "false"/"0" → false.
func (in *Instance) AsBool(f *Fact) (bool, error) {
	if in == nil {
		return false, fmt.Errorf("xbrl: instance is nil")
	}
	if f == nil {
		return false, fmt.Errorf("xbrl: fact is nil")
	}
	if f.IsNil() {
		return false, ErrInvalidValue
	}

	c, ok := in.ConceptOf(f)
	if !ok || c == nil {
		return false, ErrNoConcept
	}

	if c.ValueKind() != ConceptValueBoolean {
		return false, ErrUnsupportedType
	}

	v := strings.TrimSpace(f.Value())
	switch strings.ToLower(v) {
	case "true", "1":
		return true, nil
	case "false", "0":
		return false, nil
	default:
		return false, ErrInvalidValue
	}
}

// AsTime parses f's value as time.Time. ValueKind must be
// ConceptValueDate or ConceptValueDateTime.
func (in *Instance) AsTime(f *Fact, loc *time.Location) (time.Time, error) {
	if in == nil {
		return time.Time{}, fmt.Errorf("xbrl: instance is nil")
	}
	if f == nil {
		return time.Time{}, fmt.Errorf("xbrl: fact is nil")
	}
	if f.IsNil() {
		return time.Time{}, ErrInvalidValue
	}

	c, ok := in.ConceptOf(f)
	if !ok || c == nil {
		return time.Time{}, ErrNoConcept
	}

	if loc == nil {
		loc = time.UTC
	}

	v := strings.TrimSpace(f.Value())

	switch c.ValueKind() {
	case ConceptValueDate:
		// ISO 8601 yyyy-mm-dd
		t, err := time.ParseInLocation("2006-01-02", v, loc)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %v", ErrInvalidValue, err)
		}
		return t, nil
	case ConceptValueDateTime:
		// Try RFC3339
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			return t.In(loc), nil
		}
		// Allow yyyy-mm-ddThh:mm:ss without timezone
		if t, err := time.ParseInLocation("2006-01-02T15:04:05", v, loc); err == nil {
			return t, nil
		}
		return time.Time{}, ErrInvalidValue
	default:
		return time.Time{}, ErrUnsupportedType
	}
}
