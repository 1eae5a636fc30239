package testrun

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateQuery_InvalidJSON(t *testing.T) {
	_, err := EvaluateQuery("not json", "$.a")

	require.ErrorIs(t, err, ErrInvalidJSON)
}

func TestEvaluateQuery_InvalidPath(t *testing.T) {
	for _, path := range []string{"", "  ", "$..name", "$.items[?(@.id==1)]", "$.items[*]", "$.items[0"} {
		_, err := EvaluateQuery(`{"a":1}`, path)
		require.ErrorIs(t, err, ErrInvalidPath, "path %q", path)
	}
}

func TestEvaluateQuery_DollarPrefixAndBrackets(t *testing.T) {
	body := `{"items":[{"id":"first"},{"id":"second"}]}`

	value, err := EvaluateQuery(body, "$.items[1].id")

	require.NoError(t, err)
	assert.Equal(t, "second", Stringify(value))
}

func TestEvaluateQuery_MissingPathReturnsNull(t *testing.T) {
	value, err := EvaluateQuery(`{"a":1}`, "$.b")

	require.NoError(t, err)
	assert.True(t, IsNull(value))
	assert.Equal(t, "null", Stringify(value))
}

// A query matching nothing and a query matching a literal null are
// indistinguishable on purpose.
func TestEvaluateQuery_LiteralNullIndistinguishableFromMissing(t *testing.T) {
	missing, err := EvaluateQuery(`{"a":1}`, "$.b")
	require.NoError(t, err)
	literal, err := EvaluateQuery(`{"b":null}`, "$.b")
	require.NoError(t, err)

	assert.True(t, IsNull(missing))
	assert.True(t, IsNull(literal))
	assert.Equal(t, Stringify(missing), Stringify(literal))
}

func TestEvaluateQuery_SingleMatchQueryUnwrapped(t *testing.T) {
	body := `{"users":[{"name":"ana","admin":true},{"name":"bob","admin":false}]}`

	value, err := EvaluateQuery(body, `users.#(admin==true)#.name`)

	require.NoError(t, err)
	assert.Equal(t, "ana", Stringify(value))
}

func TestEvaluateQuery_MultiMatchStaysArray(t *testing.T) {
	body := `{"users":[{"name":"ana"},{"name":"bob"}]}`

	value, err := EvaluateQuery(body, "users.#.name")

	require.NoError(t, err)
	assert.True(t, value.IsArray())
	assert.Equal(t, `["ana","bob"]`, Stringify(value))
}

// A plain path addressing a real one-element array is not a match set and
// must come back as the array itself.
func TestEvaluateQuery_PlainPathToSingleElementArray(t *testing.T) {
	value, err := EvaluateQuery(`{"tags":["solo"]}`, "$.tags")

	require.NoError(t, err)
	assert.True(t, value.IsArray())
	assert.Equal(t, `["solo"]`, Stringify(value))
}

func TestStringify_CanonicalForms(t *testing.T) {
	body := `{"s":"raw text","n":42,"f":1.5,"b":true,"o":{"k":"v"}}`

	cases := []struct {
		path string
		want string
	}{
		{"$.s", "raw text"},
		{"$.n", "42"},
		{"$.f", "1.5"},
		{"$.b", "true"},
		{"$.o", `{"k":"v"}`},
	}
	for _, tc := range cases {
		value, err := EvaluateQuery(body, tc.path)
		require.NoError(t, err)
		assert.Equal(t, tc.want, Stringify(value), "path %s", tc.path)
	}
}
