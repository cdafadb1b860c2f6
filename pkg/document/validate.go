package document

import (
	"fmt"
	"sort"
)

// ValidateParameters checks params against the fields declared on link.
// It fails with a *ValidationError when a parameter has no matching field,
// a required field has no parameter, or a parameter value (recursively,
// including nested mappings and sequences) falls outside the document
// value union. Messages are ordered by parameter name for determinism.
func ValidateParameters(link *Link, params Params) error {
	fields := make(map[string]Field, len(link.fields))
	for _, f := range link.fields {
		fields[f.Name] = f
	}

	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)

	var messages []string
	for _, name := range names {
		if _, ok := fields[name]; !ok {
			messages = append(messages, fmt.Sprintf("unknown parameter %q", name))
			continue
		}
		if _, err := coerce(params[name]); err != nil {
			messages = append(messages, fmt.Sprintf("parameter %q: %v", name, err))
		}
	}
	for _, f := range link.fields {
		if !f.Required {
			continue
		}
		if _, ok := params[f.Name]; !ok {
			messages = append(messages, fmt.Sprintf("missing required parameter %q", f.Name))
		}
	}

	if len(messages) > 0 {
		return &ValidationError{Messages: messages}
	}
	return nil
}
