package validator

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"user-account-api/internal/interface/api/rest/dto/user"
	"user-account-api/pkg/validation"
)

const groupA = "0b6d3f64-9c1e-4d7a-8a55-6f1f1e0c2a11"

func violations(t *testing.T, err error) map[string][]string {
	t.Helper()
	verr, ok := validation.AsError(err)
	require.True(t, ok, "want *validation.Error, got %v", err)

	out := make(map[string][]string)
	var walk func(prefix string, fields []*validation.FieldError)
	walk = func(prefix string, fields []*validation.FieldError) {
		for _, fe := range fields {
			path := prefix + fe.Field
			if names := fe.Names(); len(names) > 0 {
				out[path] = names
			}
			walk(path+".", fe.Children)
		}
	}
	walk("", verr.Fields)
	return out
}

func TestBind_Create(t *testing.T) {
	tests := []struct {
		name string
		body string
		want map[string][]string
	}{
		{
			name: "valid minimal",
			body: `{"email":"a@b.com","firstName":"A B","lastName":"Bé","role":"ADMIN","password":"12345678"}`,
		},
		{
			name: "missing required fields are left to the lifecycle",
			body: `{}`,
		},
		{
			name: "null gender and birthday are accepted",
			body: `{"gender":null,"birthday":null}`,
		},
		{
			name: "every failing field is reported",
			body: `{"email":"nope","username":"a_b","firstName":"1","password":"short","role":"ROOT","groups":["x","x"],"extra":1}`,
			want: map[string][]string{
				"email":     {"isEmail"},
				"username":  {"length", "matches"},
				"firstName": {"length", "matches"},
				"password":  {"length"},
				"role":      {"isEnum"},
				"groups":    {"arrayUnique", "isUuid"},
				"extra":     {"whitelistValidation"},
			},
		},
		{
			name: "birthday bounds",
			body: `{"birthday":"1959-12-31"}`,
			want: map[string][]string{"birthday": {"minDate"}},
		},
		{
			name: "birthday in the future",
			body: `{"birthday":"2999-01-01"}`,
			want: map[string][]string{"birthday": {"maxDate"}},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			_, err := Bind[user.CreateRequest](context.Background(), []byte(tt.body), Create)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, tt.want, violations(t, err))
		})
	}
}

func TestBind_UpdateKeepsNullsAndPresence(t *testing.T) {
	req, err := Bind[user.UpdateRequest](context.Background(),
		[]byte(`{"gender":null,"birthday":"1990-01-02","active":false,"groups":["`+groupA+`"]}`), Update)
	require.NoError(t, err)

	assert.True(t, req.Gender.IsNull())
	b, ok := req.Birthday.Get()
	require.True(t, ok)
	assert.Equal(t, "1990-01-02", b)
	require.NotNil(t, req.Active)
	assert.False(t, *req.Active)
	gs, ok := req.Groups.Get()
	require.True(t, ok)
	assert.Equal(t, []string{groupA}, gs)

	req, err = Bind[user.UpdateRequest](context.Background(), []byte(`{"groups":null}`), Update)
	require.NoError(t, err)
	assert.True(t, req.Groups.IsSet())
	_, ok = req.Groups.Get()
	assert.False(t, ok)

	_, err = Bind[user.UpdateRequest](context.Background(), []byte(`{"groups":"x"}`), Update)
	assert.Equal(t, map[string][]string{"groups": {"arrayUnique", "isArray", "isUuid"}}, violations(t, err))
}

func TestBind_FindDefaults(t *testing.T) {
	req, err := Bind[user.FindRequest](context.Background(), []byte(`{}`), Find)
	require.NoError(t, err)

	assert.Equal(t, 1, req.Page)
	assert.Equal(t, 10, req.Limit)
	assert.Equal(t, 0, req.Offset)
	assert.Nil(t, req.Filter.Role)
}

func TestBind_FindFilter(t *testing.T) {
	tests := []struct {
		name string
		body string
		want map[string][]string
	}{
		{
			name: "valid filter",
			body: `{"filter":{"active":false,"role":{"in":["ADMIN","STUDENT"]},"deletedAt":{"eq":null},"birthday":{},"createdAt":{"gte":"2020-01-01","lt":"2021-01-01T00:00:00Z"}},"limit":0}`,
		},
		{
			name: "limit outside the allowed set",
			body: `{"limit":7,"page":0,"offset":-1}`,
			want: map[string][]string{"limit": {"isIn"}, "page": {"min"}, "offset": {"min"}},
		},
		{
			name: "nested violations keep their path",
			body: `{"filter":{"role":{"eq":"ROOT","in":["ADMIN","X"]},"gender":{"unknown":1},"groups":["nope"]}}`,
			want: map[string][]string{
				"filter":                {"nestedValidation"},
				"filter.role":           {"nestedValidation"},
				"filter.role.eq":        {"isEnum"},
				"filter.role.in":        {"isEnum"},
				"filter.gender":         {"nestedValidation"},
				"filter.gender.unknown": {"whitelistValidation"},
				"filter.groups":         {"isUuid"},
			},
		},
		{
			name: "null eq only on nullable comparisons",
			body: `{"filter":{"createdAt":{"eq":null},"lastLogin":{"eq":null}}}`,
			want: map[string][]string{
				"filter":              {"nestedValidation"},
				"filter.createdAt":    {"nestedValidation"},
				"filter.createdAt.eq": {"isDateString"},
			},
		},
		{
			name: "upper bound before lower bound",
			body: `{"filter":{"updatedAt":{"gt":"2021-01-01","lte":"2020-01-01"}}}`,
			want: map[string][]string{
				"filter":               {"nestedValidation"},
				"filter.updatedAt":     {"nestedValidation"},
				"filter.updatedAt.lte": {ConstraintRangeOrder},
			},
		},
		{
			name: "overridden bounds are not compared",
			body: `{"filter":{"createdAt":{"gt":"2020-01-01","gte":"2030-01-01","lt":"2025-01-01","lte":"2010-01-01"}}}`,
		},
		{
			name: "upper bound before gte",
			body: `{"filter":{"birthday":{"gte":"2000-05-01","lt":"2000-04-01"}}}`,
			want: map[string][]string{
				"filter":             {"nestedValidation"},
				"filter.birthday":    {"nestedValidation"},
				"filter.birthday.lt": {ConstraintRangeOrder},
			},
		},
		{
			name: "null boolean filter",
			body: `{"filter":{"active":null,"role":null}}`,
			want: map[string][]string{
				"filter":        {"nestedValidation"},
				"filter.active": {"isBoolean"},
				"filter.role":   {"isObject"},
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			_, err := Bind[user.FindRequest](context.Background(), []byte(tt.body), Find)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, tt.want, violations(t, err))
		})
	}
}

func TestBind_Malformed(t *testing.T) {
	_, err := Bind[user.CredentialsRequest](context.Background(), []byte(`{"email":`), Credentials)
	assert.True(t, errors.Is(err, ErrMalformedBody))

	_, err = Bind[user.CredentialsRequest](context.Background(), []byte(`[1,2]`), Credentials)
	assert.Equal(t, map[string][]string{"$root": {"isObject"}}, violations(t, err))

	_, err = Bind[user.CredentialsRequest](context.Background(), []byte(`{"email":null}`), Credentials)
	assert.Equal(t, map[string][]string{"email": {"isDefined"}, "password": {"isDefined"}}, violations(t, err))
}

func TestBindObject_Lookup(t *testing.T) {
	req, err := BindObject[user.LookupRequest](context.Background(), validation.Object{"username": "ann"}, Lookup)
	require.NoError(t, err)
	assert.Equal(t, "ann", req.Username)

	_, err = BindObject[user.LookupRequest](context.Background(), validation.Object{"id": "42", "name": "x"}, Lookup)
	assert.Equal(t, map[string][]string{"id": {"isUuid"}, "name": {"whitelistValidation"}}, violations(t, err))
}
