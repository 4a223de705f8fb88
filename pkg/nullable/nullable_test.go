package nullable

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValue_UnmarshalJSON(t *testing.T) {
	type payload struct {
		Gender Value[string] `json:"gender"`
	}

	tests := []struct {
		name     string
		body     string
		wantSet  bool
		wantNull bool
		wantVal  string
	}{
		{"omitted", `{}`, false, false, ""},
		{"explicit null", `{"gender":null}`, true, true, ""},
		{"value", `{"gender":"MALE"}`, true, false, "MALE"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			var p payload
			require.NoError(t, json.Unmarshal([]byte(tt.body), &p))

			assert.Equal(t, tt.wantSet, p.Gender.IsSet())
			assert.Equal(t, tt.wantNull, p.Gender.IsNull())
			v, ok := p.Gender.Get()
			assert.Equal(t, tt.wantSet && !tt.wantNull, ok)
			assert.Equal(t, tt.wantVal, v)
		})
	}
}

func TestValue_Constructors(t *testing.T) {
	var unset Value[int]
	assert.False(t, unset.IsSet())
	assert.Nil(t, unset.Ptr())

	n := Null[int]()
	assert.True(t, n.IsSet())
	assert.True(t, n.IsNull())
	assert.Nil(t, n.Ptr())

	v := Of(5)
	require.NotNil(t, v.Ptr())
	assert.Equal(t, 5, *v.Ptr())

	b, err := json.Marshal(v)
	require.NoError(t, err)
	assert.Equal(t, "5", string(b))

	b, err = json.Marshal(n)
	require.NoError(t, err)
	assert.Equal(t, "null", string(b))
}
