// Package validator holds the rule tables for every request the REST surface
// accepts and binds validated bodies into typed requests.
package validator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"

	"user-account-api/internal/domain/query"
	"user-account-api/internal/domain/user"
	"user-account-api/pkg/validation"
)

const (
	minPasswordLen = 8
	maxPasswordLen = 72 // bcrypt safe

	ConstraintRangeOrder = "rangeOrder"
)

var ErrMalformedBody = errors.New("malformed request body")

var (
	usernameRe = regexp.MustCompile(`^[A-Za-z0-9]+$`)
	nameRe     = regexp.MustCompile(`^[\p{L} ]+$`)

	roles   = enumValues(user.Roles())
	genders = enumValues(user.Genders())
)

var (
	Create = validation.NewSchema("CreateUserInput",
		validation.Optional("email", validation.IsString(), validation.IsEmail()),
		validation.Optional("username", username()...),
		validation.Optional("firstName", personName()...),
		validation.Optional("lastName", personName()...),
		validation.Optional("password", password()...),
		validation.Optional("role", validation.IsEnum(roles...)),
		validation.Optional("gender", validation.IsEnum(genders...)),
		validation.Optional("birthday", birthday()...),
		validation.Optional("active", validation.IsBoolean()),
		validation.Optional("groups", groups()...),
	)

	Update = validation.NewSchema("UpdateUserInput",
		validation.Optional("email", validation.IsString(), validation.IsEmail()),
		validation.Optional("username", username()...),
		validation.Optional("firstName", personName()...),
		validation.Optional("lastName", personName()...),
		validation.Optional("password", password()...),
		validation.Optional("role", validation.IsEnum(roles...)),
		validation.Optional("gender", validation.IsEnum(genders...)),
		validation.Optional("birthday", birthday()...),
		validation.Optional("active", validation.IsBoolean()),
		validation.Optional("groups", groups()...),
		validation.Optional("updateLastLogin", validation.IsBoolean()),
	)

	Filter = validation.NewSchema("UserFilter",
		validation.Omittable("active", validation.IsBoolean()),
		validation.Omittable("deleted", validation.IsBoolean()),
		validation.Omittable("role", validation.Nested(set("RoleQuery", roles))),
		validation.Omittable("gender", validation.Nested(set("GenderQuery", genders))),
		validation.Omittable("groups", validation.IsArray(), validation.Each(validation.IsUUID())),
		validation.Omittable("createdAt", validation.Nested(comparison("DateComparison", false))),
		validation.Omittable("updatedAt", validation.Nested(comparison("DateComparison", false))),
		validation.Omittable("deletedAt", validation.Nested(comparison("NullableDateComparison", true))),
		validation.Omittable("lastLogin", validation.Nested(comparison("NullableDateComparison", true))),
		validation.Omittable("birthday", validation.Nested(comparison("NullableDateComparison", true))),
	)

	Find = validation.NewSchema("FindUsersInput",
		validation.Omittable("filter", validation.Nested(Filter)).Default(validation.Object{}),
		validation.Omittable("page", validation.IsInt(), validation.Min(1)).Default(query.DefaultPage),
		validation.Omittable("limit", validation.IsIn(query.AllowedLimits...)).Default(query.DefaultLimit),
		validation.Omittable("offset", validation.IsInt(), validation.Min(0)).Default(0),
	)

	Credentials = validation.NewSchema("CredentialsInput",
		validation.Required("email", validation.IsString(), validation.IsEmail()),
		validation.Required("password", validation.IsString()),
	)

	Lookup = validation.NewSchema("LookupInput",
		validation.Optional("id", validation.IsUUID()),
		validation.Optional("email", validation.IsEmail()),
		validation.Optional("username", validation.IsString()),
	)
)

func username() []validation.Rule {
	return []validation.Rule{
		validation.IsString(),
		validation.Length(4, 32),
		validation.Matches(usernameRe, "$property must contain only letters and numbers"),
	}
}

func personName() []validation.Rule {
	return []validation.Rule{
		validation.IsString(),
		validation.Length(2, 32),
		validation.Matches(nameRe, "$property must contain only letters and spaces"),
	}
}

func password() []validation.Rule {
	return []validation.Rule{
		validation.IsString(),
		validation.Length(minPasswordLen, maxPasswordLen),
	}
}

func birthday() []validation.Rule {
	return []validation.Rule{
		validation.IsDateString(),
		validation.MinDate(user.BirthdayFloor),
		validation.MaxDate(time.Now),
	}
}

func groups() []validation.Rule {
	return []validation.Rule{
		validation.IsArray(),
		validation.ArrayUnique(),
		validation.Each(validation.IsUUID()),
	}
}

func set(name string, values []string) *validation.Schema {
	return validation.NewSchema(name,
		validation.Omittable("eq", validation.IsEnum(values...)),
		validation.Omittable("in", validation.IsArray(), validation.Each(validation.IsEnum(values...))),
	)
}

// comparison builds the range filter schema. Only nullable fields accept
// eq: null, which then matches records storing null.
func comparison(name string, nullable bool) *validation.Schema {
	eq := validation.Omittable("eq", validation.IsDateString())
	if nullable {
		eq = validation.Optional("eq", validation.IsDateString())
	}

	return validation.NewSchema(name,
		eq,
		validation.Omittable("gt", validation.IsDateString()),
		validation.Omittable("gte", validation.IsDateString()),
		validation.Omittable("lt", validation.IsDateString(), rangeOrder("lt")),
		validation.Omittable("lte", validation.IsDateString(), rangeOrder("lte")),
	)
}

// rangeOrder rejects an upper bound that precedes the effective lower bound of
// the same filter. Gt wins over Gte and Lt wins over Lte, so an overridden
// bound is not compared.
func rangeOrder(bound string) validation.Rule {
	return validation.Custom(ConstraintRangeOrder, "$property must not precede the lower bound",
		func(_ context.Context, v any, obj validation.Object) (bool, error) {
			if bound == "lte" && obj["lt"] != nil {
				return true, nil
			}
			upper, ok := validation.AsDate(v)
			if !ok {
				return true, nil
			}
			lowerKey := "gte"
			if obj["gt"] != nil {
				lowerKey = "gt"
			}
			if lower, ok := validation.AsDate(obj[lowerKey]); ok && upper.Before(lower) {
				return false, nil
			}
			return true, nil
		})
}

func enumValues[E ~string](values []E) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}

// Bind decodes raw, validates it against s and decodes the validated object
// (defaults included) into T.
func Bind[T any](ctx context.Context, raw []byte, s *validation.Schema) (T, error) {
	var out T

	obj, err := validation.Decode(raw)
	if err != nil {
		if _, ok := validation.AsError(err); ok {
			return out, err
		}
		return out, fmt.Errorf("%w: %v", ErrMalformedBody, err)
	}

	return BindObject[T](ctx, obj, s)
}

// BindObject validates an already decoded object, e.g. one built from query
// parameters.
func BindObject[T any](ctx context.Context, obj validation.Object, s *validation.Schema) (T, error) {
	var out T

	validated, err := s.Validate(ctx, obj)
	if err != nil {
		return out, err
	}

	b, err := json.Marshal(validated)
	if err != nil {
		return out, err
	}
	if err = json.Unmarshal(b, &out); err != nil {
		return out, fmt.Errorf("%w: %v", ErrMalformedBody, err)
	}

	return out, nil
}

func IsUUID(s string) (bool, uuid.UUID) {
	id, err := uuid.Parse(s)
	return err == nil, id
}
