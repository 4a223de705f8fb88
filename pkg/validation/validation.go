// Package validation evaluates declarative rule tables against decoded JSON
// objects. A Schema lists its fields in order; every field carries rules made
// of an optional guard, a check and the name of the constraint it enforces.
// Every failing field is reported, unknown fields are rejected and nested
// schemas report their failures as children of the parent field.
package validation

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

const (
	ConstraintDefined   = "isDefined"
	ConstraintWhitelist = "whitelistValidation"
	ConstraintNested    = "nestedValidation"
	ConstraintObject    = "isObject"
)

type (
	// Object is a decoded JSON object. An absent key is "not provided", a key
	// holding nil is an explicit null.
	Object = map[string]any

	// Check reports whether value satisfies the rule. A non-nil error aborts
	// validation; it is meant for collaborator failures, not for violations.
	Check func(ctx context.Context, value any, obj Object) (bool, error)

	// Guard decides whether a rule is evaluated at all.
	Guard func(obj Object, value any, present bool) bool

	Rule struct {
		Constraint string
		Message    string
		When       Guard
		Check      Check

		nested *Schema
	}

	Field struct {
		Name     string
		Rules    []Rule
		required bool
		def      any
		hasDef   bool
	}

	Schema struct {
		name   string
		fields []Field
		index  map[string]struct{}
	}
)

// IfPresent skips the rule when the field was omitted; explicit null is still
// checked.
func IfPresent(_ Object, _ any, present bool) bool { return present }

// IfNotNull skips the rule when the field was omitted or is null.
func IfNotNull(_ Object, value any, present bool) bool { return present && value != nil }

func NewSchema(name string, fields ...Field) *Schema {
	s := &Schema{name: name, fields: fields, index: make(map[string]struct{}, len(fields))}
	for _, f := range fields {
		s.index[f.Name] = struct{}{}
	}
	return s
}

func (s *Schema) Name() string { return s.name }

// Required declares a field that must be present and non-null; the remaining
// rules only run once that holds.
func Required(name string, rules ...Rule) Field {
	return Field{Name: name, Rules: rules, required: true}
}

// Optional declares a field whose rules are skipped when omitted or null.
func Optional(name string, rules ...Rule) Field {
	return Field{Name: name, Rules: guarded(IfNotNull, rules)}
}

// Omittable declares a field whose rules are skipped only when omitted; an
// explicit null is validated like any other value.
func Omittable(name string, rules ...Rule) Field {
	return Field{Name: name, Rules: guarded(IfPresent, rules)}
}

// Default fills the field when the input omits it. The default is not
// validated.
func (f Field) Default(v any) Field {
	f.def, f.hasDef = v, true
	return f
}

func guarded(g Guard, rules []Rule) []Rule {
	out := make([]Rule, len(rules))
	for i, r := range rules {
		if r.When == nil {
			r.When = g
		}
		out[i] = r
	}
	return out
}

// If returns a copy of the rule evaluated only when g holds.
func (r Rule) If(g Guard) Rule {
	r.When = g
	return r
}

// WithMessage overrides the violation message.
func (r Rule) WithMessage(msg string) Rule {
	r.Message = msg
	return r
}

// Validate checks obj against the schema. It returns obj with defaults
// applied, a *Error describing every violation, or a collaborator error.
func (s *Schema) Validate(ctx context.Context, obj Object) (Object, error) {
	if obj == nil {
		obj = Object{}
	}

	var failed []*FieldError
	for _, f := range s.fields {
		value, present := obj[f.Name]
		if !present && f.hasDef {
			obj[f.Name] = f.def
			continue
		}

		fe, err := s.validateField(ctx, f, obj, value, present)
		if err != nil {
			return nil, err
		}
		if fe != nil {
			failed = append(failed, fe)
		}
	}

	var unknown []string
	for k := range obj {
		if _, ok := s.index[k]; !ok {
			unknown = append(unknown, k)
		}
	}
	sort.Strings(unknown)
	for _, k := range unknown {
		failed = append(failed, &FieldError{
			Field:       k,
			Value:       obj[k],
			Constraints: map[string]string{ConstraintWhitelist: fmt.Sprintf("property %s should not exist", k)},
		})
	}

	if len(failed) > 0 {
		return nil, &Error{Schema: s.name, Fields: failed}
	}

	return obj, nil
}

func (s *Schema) validateField(ctx context.Context, f Field, obj Object, value any, present bool) (*FieldError, error) {
	fe := &FieldError{Field: f.Name, Value: value}

	if f.required && (!present || value == nil) {
		fe.add(ConstraintDefined, fmt.Sprintf("%s should not be null or undefined", f.Name))
		return fe, nil
	}

	for _, r := range f.Rules {
		if r.When != nil && !r.When(obj, value, present) {
			continue
		}

		if r.nested != nil {
			children, ok, err := r.nested.validateNested(ctx, value)
			if err != nil {
				return nil, err
			}
			if !ok {
				fe.add(ConstraintObject, fmt.Sprintf("%s must be an object", f.Name))
				continue
			}
			if len(children) > 0 {
				fe.add(ConstraintNested, fmt.Sprintf("%s contains invalid values", f.Name))
				fe.Children = append(fe.Children, children...)
			}
			continue
		}

		ok, err := r.Check(ctx, value, obj)
		if err != nil {
			return nil, fmt.Errorf("validate %s.%s: %w", s.name, f.Name, err)
		}
		if !ok {
			fe.add(r.Constraint, messageFor(r, f.Name))
		}
	}

	if len(fe.Constraints) == 0 && len(fe.Children) == 0 {
		return nil, nil
	}
	return fe, nil
}

func (s *Schema) validateNested(ctx context.Context, value any) ([]*FieldError, bool, error) {
	child, ok := value.(Object)
	if !ok {
		return nil, false, nil
	}

	if _, err := s.Validate(ctx, child); err != nil {
		if verr, ok := AsError(err); ok {
			return verr.Fields, true, nil
		}
		return nil, true, err
	}

	return nil, true, nil
}

func messageFor(r Rule, field string) string {
	if r.Message != "" {
		return strings.ReplaceAll(r.Message, "$property", field)
	}
	return fmt.Sprintf("%s failed %s", field, r.Constraint)
}

// Decode unmarshals raw JSON into an Object. Anything other than a JSON
// object is reported as a validation error on the root.
func Decode(raw []byte) (Object, error) {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	obj, ok := v.(Object)
	if !ok {
		return nil, &Error{Fields: []*FieldError{{
			Field:       "$root",
			Value:       v,
			Constraints: map[string]string{ConstraintObject: "body must be a JSON object"},
		}}}
	}
	return obj, nil
}
