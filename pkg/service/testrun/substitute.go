package testrun

import "regexp"

// Both placeholder syntaxes the client accepts: {{name}} and {name}. The
// double-brace alternative is listed first so {{x}} never half-matches as
// a single-brace token.
var placeholderRegex = regexp.MustCompile(`\{\{(\w+)\}\}|\{(\w+)\}`)

// Substitute replaces every {{key}} and {key} occurrence in input with the
// matching value from vars. The input is scanned exactly once, left to
// right, so values containing placeholder syntax are never re-substituted.
// Unknown placeholders are left untouched.
func Substitute(input string, vars map[string]string) string {
	if input == "" || len(vars) == 0 {
		return input
	}
	return placeholderRegex.ReplaceAllStringFunc(input, func(match string) string {
		groups := placeholderRegex.FindStringSubmatch(match)
		name := groups[1]
		if name == "" {
			name = groups[2]
		}
		if value, ok := vars[name]; ok {
			return value
		}
		return match
	})
}
