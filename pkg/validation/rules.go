package validation

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

var tags = validator.New()

func simple(constraint, msg string, fn func(v any) bool) Rule {
	return Rule{
		Constraint: constraint,
		Message:    msg,
		Check: func(_ context.Context, v any, _ Object) (bool, error) {
			return fn(v), nil
		},
	}
}

// Custom wraps a context-aware check, e.g. one that asks a store.
func Custom(constraint, msg string, check Check) Rule {
	return Rule{Constraint: constraint, Message: msg, Check: check}
}

// Nested delegates the field to another schema.
func Nested(s *Schema) Rule {
	return Rule{Constraint: ConstraintNested, nested: s}
}

func IsString() Rule {
	return simple("isString", "$property must be a string", func(v any) bool {
		_, ok := v.(string)
		return ok
	})
}

func IsBoolean() Rule {
	return simple("isBoolean", "$property must be a boolean value", func(v any) bool {
		_, ok := v.(bool)
		return ok
	})
}

func IsInt() Rule {
	return simple("isInt", "$property must be an integer number", func(v any) bool {
		_, ok := asInt(v)
		return ok
	})
}

func Min(n int) Rule {
	return simple("min", fmt.Sprintf("$property must not be less than %d", n), func(v any) bool {
		i, ok := asInt(v)
		return ok && i >= n
	})
}

// IsIn accepts integers from the allowed set.
func IsIn(allowed ...int) Rule {
	return simple("isIn", fmt.Sprintf("$property must be one of the following values: %s", joinInts(allowed)), func(v any) bool {
		i, ok := asInt(v)
		return ok && slices.Contains(allowed, i)
	})
}

func IsEnum(allowed ...string) Rule {
	return simple("isEnum", "$property must be one of the following values: "+strings.Join(allowed, ", "), func(v any) bool {
		s, ok := v.(string)
		return ok && slices.Contains(allowed, s)
	})
}

func IsEmail() Rule {
	return tagRule("isEmail", "$property must be an email", "email")
}

func IsUUID() Rule {
	return tagRule("isUuid", "$property must be a UUID", "uuid")
}

func tagRule(constraint, msg, tag string) Rule {
	return simple(constraint, msg, func(v any) bool {
		s, ok := v.(string)
		return ok && tags.Var(s, tag) == nil
	})
}

// Length counts runes, inclusive on both ends.
func Length(minLen, maxLen int) Rule {
	msg := fmt.Sprintf("$property must be longer than or equal to %d and shorter than or equal to %d characters", minLen, maxLen)
	return simple("length", msg, func(v any) bool {
		s, ok := v.(string)
		if !ok {
			return false
		}
		n := utf8.RuneCountInString(s)
		return n >= minLen && n <= maxLen
	})
}

func Matches(re *regexp.Regexp, msg string) Rule {
	return simple("matches", msg, func(v any) bool {
		s, ok := v.(string)
		return ok && re.MatchString(s)
	})
}

func IsDateString() Rule {
	return simple("isDateString", "$property must be a valid ISO 8601 date string", func(v any) bool {
		_, ok := AsDate(v)
		return ok
	})
}

// MinDate and MaxDate pass values that are not dates; pair them with
// IsDateString.
func MinDate(bound time.Time) Rule {
	msg := "minimal allowed date for $property is " + bound.Format(time.DateOnly)
	return simple("minDate", msg, func(v any) bool {
		d, ok := AsDate(v)
		return !ok || !d.Before(bound)
	})
}

func MaxDate(bound func() time.Time) Rule {
	return simple("maxDate", "$property must not be in the future", func(v any) bool {
		d, ok := AsDate(v)
		return !ok || !d.After(bound())
	})
}

func IsArray() Rule {
	return simple("isArray", "$property must be an array", func(v any) bool {
		_, ok := v.([]any)
		return ok
	})
}

func ArrayUnique() Rule {
	return simple("arrayUnique", "All $property's elements must be unique", func(v any) bool {
		items, ok := v.([]any)
		if !ok {
			return false
		}
		seen := make(map[any]struct{}, len(items))
		for _, it := range items {
			switch it.(type) {
			case string, float64, bool, nil:
			default:
				return false
			}
			if _, dup := seen[it]; dup {
				return false
			}
			seen[it] = struct{}{}
		}
		return true
	})
}

// Each applies r to every element of an array value.
func Each(r Rule) Rule {
	inner := r.Check
	r.Message = strings.Replace(r.Message, "$property", "each value in $property", 1)
	r.Check = func(ctx context.Context, v any, obj Object) (bool, error) {
		items, ok := v.([]any)
		if !ok {
			return false, nil
		}
		for _, it := range items {
			ok, err := inner(ctx, it, obj)
			if err != nil || !ok {
				return ok, err
			}
		}
		return true, nil
	}
	return r
}

// AsDate accepts RFC 3339 timestamps and YYYY-MM-DD dates.
func AsDate(v any) (time.Time, bool) {
	s, ok := v.(string)
	if !ok {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339Nano, time.DateOnly} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func asInt(v any) (int, bool) {
	f, ok := v.(float64)
	if !ok || f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return int(f), true
}

func joinInts(ns []int) string {
	parts := make([]string, len(ns))
	for i, n := range ns {
		parts[i] = fmt.Sprint(n)
	}
	return strings.Join(parts, ", ")
}
