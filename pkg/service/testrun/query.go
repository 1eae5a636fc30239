package testrun

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/tidwall/gjson"
)

// Sentinel errors for the two ways a path query can fail before producing
// a value. Assertion and extraction callers embed the message in their
// results instead of propagating these.
var (
	ErrInvalidJSON = errors.New("response body is not valid JSON")
	ErrInvalidPath = errors.New("invalid path query")
)

var (
	indexBracketRegex  = regexp.MustCompile(`\[(\d+)\]`)
	singleQuotedBraket = regexp.MustCompile(`\['([^']*)'\]`)
	doubleQuotedBraket = regexp.MustCompile(`\["([^"]*)"\]`)
)

// nullValue stands in for both "matched a literal null" and "matched
// nothing". The two are intentionally indistinguishable to callers.
var nullValue = gjson.Result{Type: gjson.Null}

// EvaluateQuery evaluates a path query against a JSON document and
// normalizes the result: a multi-match query that selected exactly one node
// is unwrapped to that node, zero matches become JSON null, and larger
// match sets come back as the raw array.
func EvaluateQuery(body, path string) (gjson.Result, error) {
	if !gjson.Valid(body) {
		return nullValue, ErrInvalidJSON
	}
	translated, err := translatePath(path)
	if err != nil {
		return nullValue, err
	}
	result := gjson.Get(body, translated)
	if !result.Exists() {
		return nullValue, nil
	}
	// Only #-queries produce match sets. A plain path addressing a real
	// one-element array must come back as that array, not its element.
	if result.IsArray() && strings.Contains(translated, "#") {
		matches := result.Array()
		switch len(matches) {
		case 0:
			return nullValue, nil
		case 1:
			return matches[0], nil
		}
	}
	return result, nil
}

// translatePath converts the JSONPath-flavoured syntax stored by the client
// ($.items[0].id) into gjson syntax (items.0.id). Constructs gjson cannot
// express are rejected rather than silently matching nothing.
func translatePath(path string) (string, error) {
	p := strings.TrimSpace(path)
	if p == "" {
		return "", fmt.Errorf("%w: path is empty", ErrInvalidPath)
	}
	if strings.HasPrefix(p, "$") {
		p = strings.TrimPrefix(p, "$")
		p = strings.TrimPrefix(p, ".")
	}
	if p == "" {
		return "@this", nil
	}
	if strings.Contains(p, "..") || strings.Contains(p, "[?") || strings.Contains(p, "[*]") {
		return "", fmt.Errorf("%w: unsupported syntax in %q", ErrInvalidPath, path)
	}
	p = indexBracketRegex.ReplaceAllString(p, ".$1")
	p = singleQuotedBraket.ReplaceAllString(p, ".$1")
	p = doubleQuotedBraket.ReplaceAllString(p, ".$1")
	if strings.ContainsAny(p, "[]") {
		return "", fmt.Errorf("%w: unbalanced brackets in %q", ErrInvalidPath, path)
	}
	p = strings.TrimPrefix(p, ".")
	return p, nil
}

// Stringify renders a query result for comparison and display. Strings pass
// through raw, null renders as the literal "null", and everything else uses
// its canonical JSON text.
func Stringify(value gjson.Result) string {
	switch value.Type {
	case gjson.String:
		return value.Str
	case gjson.Null:
		return "null"
	default:
		return value.Raw
	}
}

// IsNull reports whether a normalized query result is JSON null, which
// covers both literal nulls and queries that matched nothing.
func IsNull(value gjson.Result) bool {
	return value.Type == gjson.Null
}
