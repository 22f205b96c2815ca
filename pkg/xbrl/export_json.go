package xbrl

import (
	"encoding/json"
	"io"
)

// FactJSON is a simple DTO for exporting facts as JSON.
type FactJSON struct {
	Name       string `json:"name"`
	Value      string `json:"value"`
	ContextRef string `json:"context"`
	UnitRef    string `json:"unit"`
	Nil        bool   `json:"nil"`
}

// FactsAsJSONDTOs converts every fact in in into a slice of FactJSON
// DTOs.
func (in *Instance) FactsAsJSONDTOs() []FactJSON {
	if in == nil {
		return nil
	}
	out := make([]FactJSON, 0, len(in.facts))
	for _, f := range in.facts {
		if f == nil {
			continue
		}
		value := f.Value()
		if f.IsNil() {
			value = ""
		}
		out = append(out, FactJSON{
			Name:       f.Name().String(),
			Value:      value,
			ContextRef: f.ContextRef(),
			UnitRef:    f.UnitRef(),
			Nil:        f.IsNil(),
		})
	}
	return out
}

// EncodeFactsJSON writes every fact in in as a JSON array to w.
// - HTML escape is disabled
// - If pretty is true, indented output is used
func (in *Instance) EncodeFactsJSON(w io.Writer, pretty bool) error {
	if in == nil {
		return nil
	}

	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	enc.SetEscapeHTML(false)

	dtos := in.FactsAsJSONDTOs()
	return enc.Encode(dtos)
}
