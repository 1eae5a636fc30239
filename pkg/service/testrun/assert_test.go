package testrun

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/istekapp/istek-sub000/pkg/models"
)

func intPtr(v int) *int       { return &v }
func int64Ptr(v int64) *int64 { return &v }
func strPtr(v string) *string { return &v }
func boolPtr(v bool) *bool    { return &v }

func TestEvaluateAssertion_StatusDefaultsTo200(t *testing.T) {
	unset := EvaluateAssertion(models.Assertion{Type: models.AssertStatus}, 200, 0, "", nil)
	explicit := EvaluateAssertion(models.Assertion{Type: models.AssertStatus, ExpectedStatus: intPtr(200)}, 200, 0, "", nil)

	assert.Equal(t, explicit, unset)
	assert.True(t, unset.Passed)
	assert.Equal(t, "Status code equals 200", unset.Name)
	assert.Equal(t, "200", unset.Expected)
	assert.Equal(t, "200", unset.Actual)
}

func TestEvaluateAssertion_StatusMismatch(t *testing.T) {
	result := EvaluateAssertion(models.Assertion{Type: models.AssertStatus, ExpectedStatus: intPtr(201)}, 500, 0, "", nil)

	assert.False(t, result.Passed)
	assert.Equal(t, "201", result.Expected)
	assert.Equal(t, "500", result.Actual)
}

func TestEvaluateAssertion_StatusRangeDefaults(t *testing.T) {
	inside := EvaluateAssertion(models.Assertion{Type: models.AssertStatusRange}, 204, 0, "", nil)
	outside := EvaluateAssertion(models.Assertion{Type: models.AssertStatusRange}, 301, 0, "", nil)

	assert.True(t, inside.Passed)
	assert.False(t, outside.Passed)
	assert.Equal(t, "Status code between 200 and 299", inside.Name)
	assert.Equal(t, "200-299", inside.Expected)
}

func TestEvaluateAssertion_StatusRangeBoundsInclusive(t *testing.T) {
	a := models.Assertion{Type: models.AssertStatusRange, MinStatus: intPtr(400), MaxStatus: intPtr(404)}

	assert.True(t, EvaluateAssertion(a, 400, 0, "", nil).Passed)
	assert.True(t, EvaluateAssertion(a, 404, 0, "", nil).Passed)
	assert.False(t, EvaluateAssertion(a, 405, 0, "", nil).Passed)
}

func TestEvaluateAssertion_JSONPathEquals(t *testing.T) {
	a := models.Assertion{
		Type:          models.AssertJSONPath,
		Path:          "$.user.id",
		Operator:      models.OperatorEquals,
		ExpectedValue: "42",
	}

	result := EvaluateAssertion(a, 200, 0, `{"user":{"id":42}}`, nil)

	assert.True(t, result.Passed)
	assert.Equal(t, "JSON path $.user.id equals 42", result.Name)
	assert.Equal(t, "42", result.Expected)
	assert.Equal(t, "42", result.Actual)
}

func TestEvaluateAssertion_JSONPathNotEquals(t *testing.T) {
	a := models.Assertion{
		Type:          models.AssertJSONPath,
		Path:          "$.state",
		Operator:      models.OperatorNotEquals,
		ExpectedValue: "failed",
	}

	result := EvaluateAssertion(a, 200, 0, `{"state":"ok"}`, nil)

	assert.True(t, result.Passed)
	assert.Equal(t, "not failed", result.Expected)
	assert.Equal(t, "ok", result.Actual)
}

func TestEvaluateAssertion_JSONPathContains(t *testing.T) {
	a := models.Assertion{
		Type:          models.AssertJSONPath,
		Path:          "$.message",
		Operator:      models.OperatorContains,
		ExpectedValue: "crea",
	}

	result := EvaluateAssertion(a, 200, 0, `{"message":"user created"}`, nil)

	assert.True(t, result.Passed)
}

func TestEvaluateAssertion_JSONPathExists(t *testing.T) {
	a := models.Assertion{Type: models.AssertJSONPath, Path: "$.token", Operator: models.OperatorExists}

	present := EvaluateAssertion(a, 200, 0, `{"token":"abc"}`, nil)
	absent := EvaluateAssertion(a, 200, 0, `{}`, nil)
	literalNull := EvaluateAssertion(a, 200, 0, `{"token":null}`, nil)

	assert.True(t, present.Passed)
	assert.False(t, absent.Passed)
	assert.False(t, literalNull.Passed)
	assert.Equal(t, "null", absent.Actual)
}

func TestEvaluateAssertion_JSONPathNotExists(t *testing.T) {
	a := models.Assertion{Type: models.AssertJSONPath, Path: "$.error", Operator: models.OperatorNotExists}

	absent := EvaluateAssertion(a, 200, 0, `{}`, nil)
	present := EvaluateAssertion(a, 200, 0, `{"error":"boom"}`, nil)

	assert.True(t, absent.Passed)
	assert.False(t, present.Passed)
}

// A query error is a failing assertion with the error embedded, never a
// panic or an error return.
func TestEvaluateAssertion_JSONPathQueryErrorEmbedded(t *testing.T) {
	a := models.Assertion{
		Type:          models.AssertJSONPath,
		Path:          "$.a",
		Operator:      models.OperatorEquals,
		ExpectedValue: "1",
	}

	result := EvaluateAssertion(a, 200, 0, "<html>", nil)

	assert.False(t, result.Passed)
	assert.Contains(t, result.Actual, "not valid JSON")
}

func TestEvaluateAssertion_BodyContains(t *testing.T) {
	a := models.Assertion{Type: models.AssertBodyContains, Search: "pong"}

	hit := EvaluateAssertion(a, 200, 0, `{"reply":"pong"}`, nil)
	miss := EvaluateAssertion(a, 200, 0, `{"reply":"PONG"}`, nil)

	assert.True(t, hit.Passed)
	assert.Equal(t, "found", hit.Actual)
	assert.False(t, miss.Passed, "the search is case-sensitive")
	assert.Equal(t, "not found", miss.Actual)
}

func TestEvaluateAssertion_ResponseTimeDefault(t *testing.T) {
	a := models.Assertion{Type: models.AssertResponseTime}

	fast := EvaluateAssertion(a, 200, 5000, "", nil)
	slow := EvaluateAssertion(a, 200, 5001, "", nil)

	assert.True(t, fast.Passed)
	assert.False(t, slow.Passed)
	assert.Equal(t, "Response time under 5000ms", fast.Name)
	assert.Equal(t, "<= 5000ms", fast.Expected)
	assert.Equal(t, "5001ms", slow.Actual)
}

func TestEvaluateAssertion_ResponseTimeExplicitLimit(t *testing.T) {
	a := models.Assertion{Type: models.AssertResponseTime, MaxMillis: int64Ptr(100)}

	assert.True(t, EvaluateAssertion(a, 200, 100, "", nil).Passed)
	assert.False(t, EvaluateAssertion(a, 200, 101, "", nil).Passed)
}

func TestEvaluateAssertion_HeaderLookupIsCaseInsensitive(t *testing.T) {
	a := models.Assertion{Type: models.AssertHeader, HeaderName: "Content-Type", HeaderValue: strPtr("application/json")}
	headers := map[string]string{"content-type": "application/json"}

	result := EvaluateAssertion(a, 200, 0, "", headers)

	assert.True(t, result.Passed)
	assert.Equal(t, "application/json", result.Actual)
}

func TestEvaluateAssertion_HeaderAbsent(t *testing.T) {
	a := models.Assertion{Type: models.AssertHeader, HeaderName: "X-Request-Id", HeaderValue: strPtr("abc")}

	result := EvaluateAssertion(a, 200, 0, "", map[string]string{})

	assert.False(t, result.Passed)
	assert.Equal(t, "abc", result.Expected)
	assert.Equal(t, "header not found", result.Actual)
}

func TestEvaluateAssertion_HeaderPresenceOnly(t *testing.T) {
	a := models.Assertion{Type: models.AssertHeader, HeaderName: "ETag"}

	present := EvaluateAssertion(a, 200, 0, "", map[string]string{"etag": `"v1"`})
	absent := EvaluateAssertion(a, 200, 0, "", map[string]string{})

	assert.True(t, present.Passed, "any value passes when no expected value is set")
	assert.Equal(t, "present", present.Expected)
	assert.False(t, absent.Passed)
	assert.Equal(t, "header not found", absent.Actual)
}

func TestEvaluateAssertion_HeaderValueMismatch(t *testing.T) {
	a := models.Assertion{Type: models.AssertHeader, HeaderName: "Content-Type", HeaderValue: strPtr("application/json")}

	result := EvaluateAssertion(a, 200, 0, "", map[string]string{"Content-Type": "text/html"})

	assert.False(t, result.Passed)
	assert.Equal(t, "text/html", result.Actual)
}
