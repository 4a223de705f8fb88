package validation

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var nameRe = regexp.MustCompile(`^[\p{L} ]+$`)

func personSchema() *Schema {
	address := NewSchema("address",
		Required("city", IsString(), Length(2, 32)),
		Optional("zip", IsString()),
	)

	return NewSchema("person",
		Required("name", IsString(), Length(2, 32), Matches(nameRe, "$property must contain letters only")),
		Optional("email", IsEmail()),
		Omittable("nickname", IsString()),
		Optional("age", IsInt(), Min(0)),
		Optional("tags", IsArray(), ArrayUnique(), Each(IsEnum("a", "b"))),
		Optional("address", Nested(address)),
		Optional("limit", IsIn(0, 10, 25)).Default(10),
	)
}

func TestSchema_Validate_Valid(t *testing.T) {
	obj := Object{
		"name":    "Jane Doe",
		"email":   "jane@example.com",
		"age":     float64(30),
		"tags":    []any{"a", "b"},
		"address": Object{"city": "Paris"},
	}

	out, err := personSchema().Validate(context.Background(), obj)
	require.NoError(t, err)
	assert.Equal(t, 10, out["limit"])
	assert.Equal(t, "Jane Doe", out["name"])
}

func TestSchema_Validate_CollectsAllFields(t *testing.T) {
	obj := Object{
		"email": "nope",
		"age":   1.5,
		"tags":  []any{"a", "a", "c"},
		"extra": true,
	}

	_, err := personSchema().Validate(context.Background(), obj)
	verr, ok := AsError(err)
	require.True(t, ok)

	require.NotNil(t, verr.Find("name"))
	assert.Equal(t, []string{ConstraintDefined}, verr.Find("name").Names())
	assert.Equal(t, []string{"isEmail"}, verr.Find("email").Names())
	assert.Equal(t, []string{"isInt", "min"}, verr.Find("age").Names())
	assert.Equal(t, []string{"arrayUnique", "isEnum"}, verr.Find("tags").Names())
	assert.Equal(t, []string{ConstraintWhitelist}, verr.Find("extra").Names())
	assert.Nil(t, verr.Find("limit"))
}

func TestSchema_Validate_NullVersusOmitted(t *testing.T) {
	s := personSchema()

	_, err := s.Validate(context.Background(), Object{"name": "Jane", "email": nil})
	assert.NoError(t, err, "optional field accepts null")

	_, err = s.Validate(context.Background(), Object{"name": "Jane", "nickname": nil})
	verr, ok := AsError(err)
	require.True(t, ok, "omittable field rejects explicit null")
	assert.Equal(t, []string{"isString"}, verr.Find("nickname").Names())

	_, err = s.Validate(context.Background(), Object{"name": nil})
	verr, ok = AsError(err)
	require.True(t, ok)
	assert.Equal(t, []string{ConstraintDefined}, verr.Find("name").Names())
}

func TestSchema_Validate_Nested(t *testing.T) {
	s := personSchema()

	_, err := s.Validate(context.Background(), Object{
		"name":    "Jane",
		"address": Object{"city": "P", "country": "FR"},
	})
	verr, ok := AsError(err)
	require.True(t, ok)

	parent := verr.Find("address")
	require.NotNil(t, parent)
	assert.Equal(t, []string{ConstraintNested}, parent.Names())
	assert.Equal(t, []string{"length"}, verr.Find("address.city").Names())
	assert.Equal(t, []string{ConstraintWhitelist}, verr.Find("address.country").Names())
	assert.Contains(t, verr.Error(), "address.city (length)")

	_, err = s.Validate(context.Background(), Object{"name": "Jane", "address": "Paris"})
	verr, ok = AsError(err)
	require.True(t, ok)
	assert.Equal(t, []string{ConstraintObject}, verr.Find("address").Names())
}

func TestSchema_Validate_CustomRules(t *testing.T) {
	taken := Custom("isAvailable", "$property is taken", func(ctx context.Context, v any, obj Object) (bool, error) {
		return v != "root", nil
	})
	broken := Custom("reachable", "", func(ctx context.Context, v any, obj Object) (bool, error) {
		return false, errors.New("store unavailable")
	})
	after := Custom("after", "$property must follow from", func(_ context.Context, v any, obj Object) (bool, error) {
		from, ok1 := AsDate(obj["from"])
		to, ok2 := AsDate(v)
		return !ok1 || !ok2 || to.After(from), nil
	})

	s := NewSchema("custom",
		Optional("login", taken),
		Optional("from", IsDateString()),
		Optional("to", IsDateString(), after),
	)

	_, err := s.Validate(context.Background(), Object{"login": "root", "from": "2020-01-02", "to": "2020-01-01"})
	verr, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, "login is taken", verr.Find("login").Constraints["isAvailable"])
	assert.Equal(t, []string{"after"}, verr.Find("to").Names())

	failing := NewSchema("failing", Optional("x", broken))
	_, err = failing.Validate(context.Background(), Object{"x": 1})
	require.Error(t, err)
	_, ok = AsError(err)
	assert.False(t, ok, "collaborator failures are not validation errors")
}

func TestDateRules(t *testing.T) {
	floor := time.Date(1960, 1, 1, 0, 0, 0, 0, time.UTC)
	now := func() time.Time { return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC) }
	s := NewSchema("dates", Optional("d", IsDateString(), MinDate(floor), MaxDate(now)))

	tests := []struct {
		value string
		want  []string
	}{
		{"1990-05-05", nil},
		{"1990-05-05T10:00:00Z", nil},
		{"1959-12-31", []string{"minDate"}},
		{"2030-01-01", []string{"maxDate"}},
		{"05/05/1990", []string{"isDateString"}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.value, func(t *testing.T) {
			_, err := s.Validate(context.Background(), Object{"d": tt.value})
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			verr, ok := AsError(err)
			require.True(t, ok)
			assert.Equal(t, tt.want, verr.Find("d").Names())
		})
	}
}

func TestDecode(t *testing.T) {
	obj, err := Decode([]byte(`{"a":1,"b":null}`))
	require.NoError(t, err)
	_, present := obj["b"]
	assert.True(t, present)

	_, err = Decode([]byte(`[1,2]`))
	_, ok := AsError(err)
	assert.True(t, ok)

	_, err = Decode([]byte(`{bad`))
	require.Error(t, err)
}
