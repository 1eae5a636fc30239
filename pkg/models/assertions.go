package models

// AssertionType defines a custom type for assertion types.
type AssertionType string

const (
	AssertStatus       AssertionType = "status"
	AssertStatusRange  AssertionType = "status_range"
	AssertJSONPath     AssertionType = "json_path"
	AssertBodyContains AssertionType = "body_contains"
	AssertResponseTime AssertionType = "response_time"
	AssertHeader       AssertionType = "header"
)

// JSONPathOperator selects how a json_path assertion compares the matched
// value against the expected one.
type JSONPathOperator string

const (
	OperatorEquals    JSONPathOperator = "equals"
	OperatorNotEquals JSONPathOperator = "not_equals"
	OperatorContains  JSONPathOperator = "contains"
	OperatorExists    JSONPathOperator = "exists"
	OperatorNotExists JSONPathOperator = "not_exists"
)

// Defaults applied when the optional expectation fields are absent.
const (
	DefaultExpectedStatus = 200
	DefaultMinStatus      = 200
	DefaultMaxStatus      = 299
	DefaultMaxMillis      = 5000
)

// Assertion is one configured check against a single HTTP response. Which
// fields are meaningful depends on Type; the optional ones are pointers so
// an absent value can fall back to its documented default.
type Assertion struct {
	Type    AssertionType `json:"type" yaml:"type"`
	Enabled *bool         `json:"enabled,omitempty" yaml:"enabled,omitempty"`

	// status
	ExpectedStatus *int `json:"expectedStatus,omitempty" yaml:"expected_status,omitempty"`

	// status_range
	MinStatus *int `json:"minStatus,omitempty" yaml:"min_status,omitempty"`
	MaxStatus *int `json:"maxStatus,omitempty" yaml:"max_status,omitempty"`

	// json_path
	Path          string           `json:"jsonPath,omitempty" yaml:"json_path,omitempty"`
	Operator      JSONPathOperator `json:"operator,omitempty" yaml:"operator,omitempty"`
	ExpectedValue string           `json:"expectedValue,omitempty" yaml:"expected_value,omitempty"`

	// body_contains
	Search string `json:"searchString,omitempty" yaml:"search_string,omitempty"`

	// response_time
	MaxMillis *int64 `json:"maxMs,omitempty" yaml:"max_ms,omitempty"`

	// header
	HeaderName  string  `json:"headerName,omitempty" yaml:"header_name,omitempty"`
	HeaderValue *string `json:"expectedHeaderValue,omitempty" yaml:"expected_header_value,omitempty"`
}

// IsEnabled treats an absent flag as enabled.
func (a *Assertion) IsEnabled() bool {
	return a.Enabled == nil || *a.Enabled
}
