// Package models defines the data structures shared by the test run engine,
// the collection store and the API layer.
package models

// BodyType tags the content of a request body.
type BodyType string

const (
	BodyTypeNone BodyType = "none"
	BodyTypeJSON BodyType = "json"
	BodyTypeXML  BodyType = "xml"
	BodyTypeHTML BodyType = "html"
	BodyTypeRaw  BodyType = "raw"
)

// KeyValue is one header or query parameter row as authored in the client.
// Disabled rows are kept in the document but skipped at execution time.
type KeyValue struct {
	Key     string `json:"key" yaml:"key"`
	Value   string `json:"value" yaml:"value"`
	Enabled bool   `json:"enabled" yaml:"enabled"`
}

// TestRequest is one HTTP call specification. It is immutable once built;
// the engine borrows it read-only for the duration of a run.
type TestRequest struct {
	ID         string               `json:"id" yaml:"id"`
	Name       string               `json:"name" yaml:"name"`
	Method     string               `json:"method" yaml:"method"`
	URL        string               `json:"url" yaml:"url"`
	Headers    []KeyValue           `json:"headers,omitempty" yaml:"headers,omitempty"`
	Params     []KeyValue           `json:"params,omitempty" yaml:"params,omitempty"`
	Body       string               `json:"body,omitempty" yaml:"body,omitempty"`
	BodyType   BodyType             `json:"bodyType,omitempty" yaml:"body_type,omitempty"`
	Assertions []Assertion          `json:"assertions,omitempty" yaml:"assertions,omitempty"`
	Extract    []VariableExtraction `json:"extractVariables,omitempty" yaml:"extract_variables,omitempty"`
}

// VariableExtraction maps a path-query result to a named run variable.
type VariableExtraction struct {
	ID       string `json:"id" yaml:"id"`
	Variable string `json:"variableName" yaml:"variable_name"`
	Path     string `json:"jsonPath" yaml:"json_path"`
	Enabled  *bool  `json:"enabled,omitempty" yaml:"enabled,omitempty"`
}

// IsEnabled treats an absent flag as enabled, matching how the client
// serializes freshly created rules.
func (v *VariableExtraction) IsEnabled() bool {
	return v.Enabled == nil || *v.Enabled
}

// TestStatus is the outcome of a single request execution. PENDING and
// RUNNING exist for UI state only; the engine never produces them.
type TestStatus string

const (
	TestStatusPending TestStatus = "PENDING"
	TestStatusRunning TestStatus = "RUNNING"
	TestStatusPassed  TestStatus = "PASSED"
	TestStatusFailed  TestStatus = "FAILED"
	TestStatusError   TestStatus = "ERROR"
)

// AssertionResult is one evaluated assertion, with display-ready strings.
type AssertionResult struct {
	Name     string `json:"name" yaml:"name"`
	Passed   bool   `json:"passed" yaml:"passed"`
	Expected string `json:"expected" yaml:"expected"`
	Actual   string `json:"actual" yaml:"actual"`
}

// ExtractedVariable is the outcome of one extraction rule. Failed
// extractions carry an error message and never reach the run context.
type ExtractedVariable struct {
	Name    string `json:"name" yaml:"name"`
	Path    string `json:"path" yaml:"path"`
	Value   string `json:"value" yaml:"value"`
	Success bool   `json:"success" yaml:"success"`
	Error   string `json:"error,omitempty" yaml:"error,omitempty"`
}

// TestResult is the per-request outcome. Response fields are nil when a
// transport error occurred before a response existed. Extracted is nil when
// no extraction rules were configured, as opposed to an empty list when
// rules were configured but produced nothing.
type TestResult struct {
	RequestID       string              `json:"requestId" yaml:"request_id"`
	Name            string              `json:"name" yaml:"name"`
	Method          string              `json:"method" yaml:"method"`
	URL             string              `json:"url" yaml:"url"`
	Status          TestStatus          `json:"status" yaml:"status"`
	ResponseStatus  *int                `json:"responseStatus,omitempty" yaml:"response_status,omitempty"`
	ResponseTimeMs  *int64              `json:"responseTime,omitempty" yaml:"response_time,omitempty"`
	ResponseSize    *int64              `json:"responseSize,omitempty" yaml:"response_size,omitempty"`
	ResponseBody    *string             `json:"responseBody,omitempty" yaml:"response_body,omitempty"`
	ResponseHeaders map[string]string   `json:"responseHeaders,omitempty" yaml:"response_headers,omitempty"`
	Error           string              `json:"error,omitempty" yaml:"error,omitempty"`
	Assertions      []AssertionResult   `json:"assertions" yaml:"assertions"`
	Extracted       []ExtractedVariable `json:"extractedVariables,omitempty" yaml:"extracted_variables,omitempty"`
}

// TestRunSummary aggregates a whole run. Total reflects the configured
// request count; Results holds only the executed requests, so the two
// differ when stop-on-failure truncated the run.
type TestRunSummary struct {
	RunID      string       `json:"runId" yaml:"run_id"`
	Name       string       `json:"name" yaml:"name"`
	Total      int          `json:"total" yaml:"total"`
	Passed     int          `json:"passed" yaml:"passed"`
	Failed     int          `json:"failed" yaml:"failed"`
	Errors     int          `json:"errors" yaml:"errors"`
	DurationMs int64        `json:"durationMs" yaml:"duration_ms"`
	Results    []TestResult `json:"results" yaml:"results"`
}

// TestRunRequest is the caller-facing run specification.
type TestRunRequest struct {
	Name          string            `json:"name" yaml:"name"`
	Requests      []TestRequest     `json:"requests" yaml:"requests"`
	StopOnFailure bool              `json:"stopOnFailure" yaml:"stop_on_failure"`
	DelayMs       int64             `json:"delayMs" yaml:"delay_ms"`
	Variables     map[string]string `json:"variables,omitempty" yaml:"variables,omitempty"`
}

// CollectionRunRequest runs the requests stored in a collection, optionally
// narrowed to one folder (including its nested subfolders).
type CollectionRunRequest struct {
	CollectionID  string            `json:"collectionId" yaml:"collection_id"`
	FolderID      string            `json:"folderId,omitempty" yaml:"folder_id,omitempty"`
	Name          string            `json:"name,omitempty" yaml:"name,omitempty"`
	StopOnFailure bool              `json:"stopOnFailure" yaml:"stop_on_failure"`
	DelayMs       int64             `json:"delayMs" yaml:"delay_ms"`
	Variables     map[string]string `json:"variables,omitempty" yaml:"variables,omitempty"`
}

// RunEventKind discriminates streaming run events.
type RunEventKind string

const (
	RunEventStart    RunEventKind = "start"
	RunEventProgress RunEventKind = "progress"
	RunEventComplete RunEventKind = "complete"
)

// RunEvent is one streaming event. Start carries run id, name and total;
// progress carries the 1-based index and the individual result; complete
// carries the full summary.
type RunEvent struct {
	Kind    RunEventKind    `json:"kind" yaml:"kind"`
	RunID   string          `json:"runId,omitempty" yaml:"run_id,omitempty"`
	Name    string          `json:"name,omitempty" yaml:"name,omitempty"`
	Total   int             `json:"total,omitempty" yaml:"total,omitempty"`
	Index   int             `json:"index,omitempty" yaml:"index,omitempty"`
	Result  *TestResult     `json:"result,omitempty" yaml:"result,omitempty"`
	Summary *TestRunSummary `json:"summary,omitempty" yaml:"summary,omitempty"`
}
