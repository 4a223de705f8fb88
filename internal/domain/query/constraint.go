// Package query holds the store-agnostic filtering model: comparison and set
// filters, the constraint list they translate to, and pagination arithmetic.
package query

import (
	"reflect"
	"strings"
	"time"
)

type Op string

const (
	OpEq      Op = "eq"
	OpGt      Op = "gt"
	OpGte     Op = "gte"
	OpLt      Op = "lt"
	OpLte     Op = "lte"
	OpIn      Op = "in"
	OpNull    Op = "null"
	OpOverlap Op = "overlap"
)

type (
	// Constraint is one predicate over a single field. For OpIn the value is a
	// []any of candidates, for OpOverlap a []string, for OpNull it is unused.
	Constraint struct {
		Field string
		Op    Op
		Value any
	}
	// Query is an AND of constraints.
	Query []Constraint

	// Record exposes field values to in-memory evaluation. Nil pointers and
	// untyped nil both mean the stored value is null.
	Record interface {
		Value(field string) any
	}
)

func Where(field string, op Op, value any) Query {
	return Query{{Field: field, Op: op, Value: value}}
}

func (q Query) Where(field string, op Op, value any) Query {
	return append(q, Constraint{Field: field, Op: op, Value: value})
}

func (q Query) And(other Query) Query {
	return append(q, other...)
}

// Matches evaluates the constraint against a stored value.
func (c Constraint) Matches(v any) bool {
	v = normalize(v)

	switch c.Op {
	case OpNull:
		return v == nil
	case OpEq, OpGt, OpGte, OpLt, OpLte:
		if v == nil {
			return false
		}
		r, ok := compare(v, c.Value)
		if !ok {
			return false
		}
		switch c.Op {
		case OpEq:
			return r == 0
		case OpGt:
			return r > 0
		case OpGte:
			return r >= 0
		case OpLt:
			return r < 0
		default:
			return r <= 0
		}
	case OpIn:
		if v == nil {
			return false
		}
		candidates, _ := c.Value.([]any)
		for _, cand := range candidates {
			if r, ok := compare(v, cand); ok && r == 0 {
				return true
			}
		}
		return false
	case OpOverlap:
		have, _ := v.([]string)
		want, _ := normalize(c.Value).([]string)
		for _, h := range have {
			for _, w := range want {
				if h == w {
					return true
				}
			}
		}
		return false
	}

	return false
}

// Narrow applies the constraints one at a time to a shrinking candidate set.
func Narrow[R Record](items []R, q Query) []R {
	out := items
	for _, c := range q {
		next := make([]R, 0, len(out))
		for _, it := range out {
			if c.Matches(it.Value(c.Field)) {
				next = append(next, it)
			}
		}
		out = next
	}

	return out
}

// normalize dereferences pointers and folds named scalar types onto their
// underlying kind so that e.g. a Role compares equal to its string value.
func normalize(v any) any {
	if v == nil {
		return nil
	}
	switch t := v.(type) {
	case time.Time, string, bool, int64, float64, []string:
		return t
	case *time.Time:
		if t == nil {
			return nil
		}
		return *t
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.String:
		return rv.String()
	case reflect.Bool:
		return rv.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return int64(rv.Uint())
	case reflect.Float32, reflect.Float64:
		return rv.Float()
	case reflect.Slice:
		if rv.Type().Elem().Kind() == reflect.String {
			out := make([]string, rv.Len())
			for i := range out {
				out[i] = rv.Index(i).String()
			}
			return out
		}
	}

	return rv.Interface()
}

func compare(a, b any) (int, bool) {
	a, b = normalize(a), normalize(b)

	switch x := a.(type) {
	case time.Time:
		y, ok := b.(time.Time)
		if !ok {
			return 0, false
		}
		return x.Compare(y), true
	case string:
		y, ok := b.(string)
		if !ok {
			return 0, false
		}
		return strings.Compare(x, y), true
	case bool:
		y, ok := b.(bool)
		if !ok {
			return 0, false
		}
		switch {
		case x == y:
			return 0, true
		case !x:
			return -1, true
		default:
			return 1, true
		}
	case int64:
		switch y := b.(type) {
		case int64:
			return cmpOrdered(x, y), true
		case float64:
			return cmpOrdered(float64(x), y), true
		}
	case float64:
		switch y := b.(type) {
		case float64:
			return cmpOrdered(x, y), true
		case int64:
			return cmpOrdered(x, float64(y)), true
		}
	}

	return 0, false
}

func cmpOrdered[T int64 | float64](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
