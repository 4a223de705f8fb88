package query

import (
	"user-account-api/pkg/nullable"
)

// Comparison constrains an ordered value. Eq wins over every bound, Gt wins
// over Gte and Lt wins over Lte. An explicit null Eq selects null values only.
type Comparison[T any] struct {
	Eq  nullable.Value[T]
	Gt  *T
	Gte *T
	Lt  *T
	Lte *T
}

// IsEmpty reports whether no sub-field is set; such a filter matches anything.
func (c Comparison[T]) IsEmpty() bool {
	return !c.Eq.IsSet() && c.Gt == nil && c.Gte == nil && c.Lt == nil && c.Lte == nil
}

// Matches evaluates the filter against v, where a nil v is a stored null.
func (c Comparison[T]) Matches(v *T, compare func(a, b T) int) bool {
	if c.Eq.IsSet() {
		want, ok := c.Eq.Get()
		if !ok {
			return v == nil
		}
		return v != nil && compare(*v, want) == 0
	}
	if c.IsEmpty() {
		return true
	}
	if v == nil {
		return false
	}

	switch {
	case c.Gt != nil:
		if compare(*v, *c.Gt) <= 0 {
			return false
		}
	case c.Gte != nil:
		if compare(*v, *c.Gte) < 0 {
			return false
		}
	}
	switch {
	case c.Lt != nil:
		if compare(*v, *c.Lt) >= 0 {
			return false
		}
	case c.Lte != nil:
		if compare(*v, *c.Lte) > 0 {
			return false
		}
	}

	return true
}

// Constraints translates the filter for the given field.
func (c Comparison[T]) Constraints(field string) Query {
	var q Query
	if c.Eq.IsSet() {
		if want, ok := c.Eq.Get(); ok {
			return q.Where(field, OpEq, want)
		}
		return q.Where(field, OpNull, nil)
	}

	switch {
	case c.Gt != nil:
		q = q.Where(field, OpGt, *c.Gt)
	case c.Gte != nil:
		q = q.Where(field, OpGte, *c.Gte)
	}
	switch {
	case c.Lt != nil:
		q = q.Where(field, OpLt, *c.Lt)
	case c.Lte != nil:
		q = q.Where(field, OpLte, *c.Lte)
	}

	return q
}
