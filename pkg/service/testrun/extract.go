package testrun

import (
	"github.com/istekapp/istek-sub000/pkg/models"
)

// ExtractVariables evaluates every enabled extraction rule against the
// response body. Failures are captured per rule so one bad path never
// drops the others; the caller decides what to do with the successes.
// Output order matches the order of the enabled input rules.
func ExtractVariables(rules []models.VariableExtraction, body string) []models.ExtractedVariable {
	extracted := make([]models.ExtractedVariable, 0, len(rules))
	for _, rule := range rules {
		if !rule.IsEnabled() {
			continue
		}
		item := models.ExtractedVariable{
			Name: rule.Variable,
			Path: rule.Path,
		}
		value, err := EvaluateQuery(body, rule.Path)
		switch {
		case err != nil:
			item.Error = err.Error()
		case IsNull(value):
			item.Error = "Path returned null"
		default:
			item.Success = true
			item.Value = Stringify(value)
		}
		extracted = append(extracted, item)
	}
	return extracted
}
