package query

// Set is an equality-or-membership filter. Eq wins over In; a nil In means
// "not provided" while an empty, non-nil In matches nothing.
type Set[E comparable] struct {
	Eq *E
	In []E
}

func (s Set[E]) IsEmpty() bool { return s.Eq == nil && s.In == nil }

func (s Set[E]) Matches(v E) bool {
	switch {
	case s.Eq != nil:
		return v == *s.Eq
	case s.In != nil:
		for _, c := range s.In {
			if v == c {
				return true
			}
		}
		return false
	default:
		return true
	}
}

func (s Set[E]) Constraints(field string) Query {
	var q Query
	switch {
	case s.Eq != nil:
		q = q.Where(field, OpEq, *s.Eq)
	case s.In != nil:
		candidates := make([]any, len(s.In))
		for i, c := range s.In {
			candidates[i] = c
		}
		q = q.Where(field, OpIn, candidates)
	}

	return q
}
