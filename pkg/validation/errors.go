package validation

import (
	"errors"
	"sort"
	"strings"
)

type (
	// FieldError lists the constraints a single field violated. Children hold
	// the failures of a nested object, keyed by their own field names.
	FieldError struct {
		Field       string            `json:"field"`
		Value       any               `json:"value,omitempty"`
		Constraints map[string]string `json:"constraints,omitempty"`
		Children    []*FieldError     `json:"children,omitempty"`
	}

	// Error is the aggregate report of one validation run.
	Error struct {
		Schema string        `json:"-"`
		Fields []*FieldError `json:"fields"`
	}
)

func (fe *FieldError) add(constraint, msg string) {
	if fe.Constraints == nil {
		fe.Constraints = make(map[string]string)
	}
	fe.Constraints[constraint] = msg
}

// Names returns the violated constraint names in sorted order.
func (fe *FieldError) Names() []string {
	out := make([]string, 0, len(fe.Constraints))
	for k := range fe.Constraints {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func (e *Error) Error() string {
	var parts []string
	for _, fe := range e.Fields {
		parts = fe.describe("", parts)
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

func (fe *FieldError) describe(prefix string, acc []string) []string {
	path := prefix + fe.Field
	if names := fe.Names(); len(names) > 0 {
		acc = append(acc, path+" ("+strings.Join(names, ", ")+")")
	}
	for _, c := range fe.Children {
		acc = c.describe(path+".", acc)
	}
	return acc
}

// Find returns the error for a dotted path such as "filter.role.in".
func (e *Error) Find(path string) *FieldError {
	fields := e.Fields
	var found *FieldError
	for _, name := range strings.Split(path, ".") {
		found = nil
		for _, fe := range fields {
			if fe.Field == name {
				found = fe
				break
			}
		}
		if found == nil {
			return nil
		}
		fields = found.Children
	}
	return found
}

func AsError(err error) (*Error, bool) {
	var verr *Error
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}
