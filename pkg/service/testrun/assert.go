package testrun

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/istekapp/istek-sub000/pkg/models"
)

// EvaluateAssertion checks one enabled assertion against an observed
// response and produces a display-ready result. Query evaluation errors
// degrade to a failing assertion carrying the error text; nothing escapes
// the evaluator.
func EvaluateAssertion(assertion models.Assertion, status int, elapsedMs int64, body string, headers map[string]string) models.AssertionResult {
	switch assertion.Type {
	case models.AssertStatus:
		expected := models.DefaultExpectedStatus
		if assertion.ExpectedStatus != nil {
			expected = *assertion.ExpectedStatus
		}
		return models.AssertionResult{
			Name:     fmt.Sprintf("Status code equals %d", expected),
			Passed:   status == expected,
			Expected: strconv.Itoa(expected),
			Actual:   strconv.Itoa(status),
		}

	case models.AssertStatusRange:
		min, max := models.DefaultMinStatus, models.DefaultMaxStatus
		if assertion.MinStatus != nil {
			min = *assertion.MinStatus
		}
		if assertion.MaxStatus != nil {
			max = *assertion.MaxStatus
		}
		return models.AssertionResult{
			Name:     fmt.Sprintf("Status code between %d and %d", min, max),
			Passed:   status >= min && status <= max,
			Expected: fmt.Sprintf("%d-%d", min, max),
			Actual:   strconv.Itoa(status),
		}

	case models.AssertJSONPath:
		return evaluateJSONPathAssertion(assertion, body)

	case models.AssertBodyContains:
		actual := "not found"
		passed := strings.Contains(body, assertion.Search)
		if passed {
			actual = "found"
		}
		return models.AssertionResult{
			Name:     fmt.Sprintf("Body contains %q", assertion.Search),
			Passed:   passed,
			Expected: assertion.Search,
			Actual:   actual,
		}

	case models.AssertResponseTime:
		max := int64(models.DefaultMaxMillis)
		if assertion.MaxMillis != nil {
			max = *assertion.MaxMillis
		}
		return models.AssertionResult{
			Name:     fmt.Sprintf("Response time under %dms", max),
			Passed:   elapsedMs <= max,
			Expected: fmt.Sprintf("<= %dms", max),
			Actual:   fmt.Sprintf("%dms", elapsedMs),
		}

	case models.AssertHeader:
		return evaluateHeaderAssertion(assertion, headers)

	default:
		return models.AssertionResult{
			Name:     fmt.Sprintf("Assertion %s", assertion.Type),
			Passed:   false,
			Expected: "",
			Actual:   fmt.Sprintf("unsupported assertion type: %s", assertion.Type),
		}
	}
}

func evaluateJSONPathAssertion(assertion models.Assertion, body string) models.AssertionResult {
	result := models.AssertionResult{}
	switch assertion.Operator {
	case models.OperatorEquals:
		result.Name = fmt.Sprintf("JSON path %s equals %s", assertion.Path, assertion.ExpectedValue)
		result.Expected = assertion.ExpectedValue
	case models.OperatorNotEquals:
		result.Name = fmt.Sprintf("JSON path %s does not equal %s", assertion.Path, assertion.ExpectedValue)
		result.Expected = "not " + assertion.ExpectedValue
	case models.OperatorContains:
		result.Name = fmt.Sprintf("JSON path %s contains %s", assertion.Path, assertion.ExpectedValue)
		result.Expected = "contains " + assertion.ExpectedValue
	case models.OperatorExists:
		result.Name = fmt.Sprintf("JSON path %s exists", assertion.Path)
		result.Expected = "exists"
	case models.OperatorNotExists:
		result.Name = fmt.Sprintf("JSON path %s does not exist", assertion.Path)
		result.Expected = "null"
	default:
		result.Name = fmt.Sprintf("JSON path %s", assertion.Path)
		result.Actual = fmt.Sprintf("unsupported operator: %s", assertion.Operator)
		return result
	}

	value, err := EvaluateQuery(body, assertion.Path)
	if err != nil {
		result.Actual = err.Error()
		return result
	}

	actual := Stringify(value)
	result.Actual = actual
	switch assertion.Operator {
	case models.OperatorEquals:
		result.Passed = actual == assertion.ExpectedValue
	case models.OperatorNotEquals:
		result.Passed = actual != assertion.ExpectedValue
	case models.OperatorContains:
		result.Passed = strings.Contains(actual, assertion.ExpectedValue)
	case models.OperatorExists:
		result.Passed = !IsNull(value)
	case models.OperatorNotExists:
		result.Passed = IsNull(value)
	}
	return result
}

func evaluateHeaderAssertion(assertion models.Assertion, headers map[string]string) models.AssertionResult {
	result := models.AssertionResult{
		Name: fmt.Sprintf("Header %s", assertion.HeaderName),
	}
	value, found := lookupHeader(headers, assertion.HeaderName)

	if assertion.HeaderValue == nil {
		result.Expected = "present"
		if found {
			result.Passed = true
			result.Actual = value
		} else {
			result.Actual = "header not found"
		}
		return result
	}

	result.Expected = *assertion.HeaderValue
	if !found {
		result.Actual = "header not found"
		return result
	}
	result.Actual = value
	result.Passed = value == *assertion.HeaderValue
	return result
}

// lookupHeader finds a response header by name, case-insensitively.
func lookupHeader(headers map[string]string, name string) (string, bool) {
	for key, value := range headers {
		if strings.EqualFold(key, name) {
			return value, true
		}
	}
	return "", false
}
