package testrun

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/istekapp/istek-sub000/pkg/models"
)

func TestExtractVariables_Success(t *testing.T) {
	rules := []models.VariableExtraction{
		{Variable: "userId", Path: "$.user.id"},
		{Variable: "token", Path: "$.auth.token"},
	}
	body := `{"user":{"id":42},"auth":{"token":"abc"}}`

	extracted := ExtractVariables(rules, body)

	require.Len(t, extracted, 2)
	assert.True(t, extracted[0].Success)
	assert.Equal(t, "userId", extracted[0].Name)
	assert.Equal(t, "42", extracted[0].Value)
	assert.True(t, extracted[1].Success)
	assert.Equal(t, "abc", extracted[1].Value)
}

func TestExtractVariables_DisabledRuleSkipped(t *testing.T) {
	rules := []models.VariableExtraction{
		{Variable: "skipped", Path: "$.a", Enabled: boolPtr(false)},
		{Variable: "kept", Path: "$.a"},
	}

	extracted := ExtractVariables(rules, `{"a":1}`)

	require.Len(t, extracted, 1)
	assert.Equal(t, "kept", extracted[0].Name)
}

// One bad rule must not take down the others; each failure is recorded on
// its own entry and the rest still run.
func TestExtractVariables_FailureIsolation(t *testing.T) {
	rules := []models.VariableExtraction{
		{Variable: "good", Path: "$.user.id"},
		{Variable: "bad", Path: "$..broken"},
		{Variable: "alsoGood", Path: "$.user.name"},
	}
	body := `{"user":{"id":7,"name":"ana"}}`

	extracted := ExtractVariables(rules, body)

	require.Len(t, extracted, 3)
	assert.True(t, extracted[0].Success)
	assert.False(t, extracted[1].Success)
	assert.NotEmpty(t, extracted[1].Error)
	assert.True(t, extracted[2].Success)
	assert.Equal(t, "ana", extracted[2].Value)
}

func TestExtractVariables_NullPathFails(t *testing.T) {
	rules := []models.VariableExtraction{
		{Variable: "missing", Path: "$.nope"},
		{Variable: "literal", Path: "$.here"},
	}

	extracted := ExtractVariables(rules, `{"here":null}`)

	require.Len(t, extracted, 2)
	assert.False(t, extracted[0].Success)
	assert.Equal(t, "Path returned null", extracted[0].Error)
	assert.False(t, extracted[1].Success)
	assert.Equal(t, "Path returned null", extracted[1].Error)
}

func TestExtractVariables_InvalidBody(t *testing.T) {
	extracted := ExtractVariables([]models.VariableExtraction{{Variable: "x", Path: "$.a"}}, "oops")

	require.Len(t, extracted, 1)
	assert.False(t, extracted[0].Success)
	assert.Contains(t, extracted[0].Error, "not valid JSON")
}
