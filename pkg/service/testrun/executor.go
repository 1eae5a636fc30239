package testrun

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/istekapp/istek-sub000/pkg/models"
)

// supportedMethods is the method allow-list; anything else fails the
// request before it reaches the network.
var supportedMethods = map[string]bool{
	http.MethodGet:     true,
	http.MethodPost:    true,
	http.MethodPut:     true,
	http.MethodPatch:   true,
	http.MethodDelete:  true,
	http.MethodHead:    true,
	http.MethodOptions: true,
}

var contentTypeByBody = map[models.BodyType]string{
	models.BodyTypeJSON: "application/json",
	models.BodyTypeXML:  "application/xml",
	models.BodyTypeHTML: "text/html",
}

// ExecutorRequest is the fully substituted call handed to the transport.
type ExecutorRequest struct {
	Method  string
	URL     string
	Headers map[string]string
	Body    []byte
}

// ExecutorResponse is what the transport observed.
type ExecutorResponse struct {
	StatusCode int
	Headers    map[string]string
	Body       []byte
}

// HTTPExecutor performs one HTTP call. Implementations own timeouts and
// TLS policy; the engine treats it as a black box.
type HTTPExecutor interface {
	Do(ctx context.Context, req *ExecutorRequest) (*ExecutorResponse, error)
}

type clientExecutor struct {
	client *http.Client
}

// NewHTTPExecutor returns the default transport: 30s timeout and TLS
// certificate verification disabled, since test targets are routinely
// self-signed local endpoints.
func NewHTTPExecutor() HTTPExecutor {
	return &clientExecutor{
		client: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				//nolint:gosec
				TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
			},
		},
	}
}

func (c *clientExecutor) Do(ctx context.Context, req *ExecutorRequest) (*ExecutorResponse, error) {
	var body io.Reader
	if len(req.Body) > 0 {
		body = bytes.NewReader(req.Body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, body)
	if err != nil {
		return nil, err
	}
	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}
	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	headers := make(map[string]string, len(resp.Header))
	for key, values := range resp.Header {
		headers[key] = strings.Join(values, ", ")
	}
	return &ExecutorResponse{
		StatusCode: resp.StatusCode,
		Headers:    headers,
		Body:       respBody,
	}, nil
}

// RequestExecutor turns one TestRequest plus the current run variables into
// a TestResult: substitution, one HTTP call, assertions, extraction.
type RequestExecutor struct {
	logger   *zap.Logger
	executor HTTPExecutor
}

func NewRequestExecutor(logger *zap.Logger, executor HTTPExecutor) *RequestExecutor {
	if executor == nil {
		executor = NewHTTPExecutor()
	}
	return &RequestExecutor{
		logger:   logger,
		executor: executor,
	}
}

// Execute performs exactly one attempt; retries are a test-authoring
// concern left to the caller. The vars map is read-only here.
func (e *RequestExecutor) Execute(ctx context.Context, request models.TestRequest, vars map[string]string) models.TestResult {
	result := models.TestResult{
		RequestID: request.ID,
		Name:      request.Name,
		Method:    request.Method,
		URL:       buildURL(request, vars),
		Status:    models.TestStatusError,
	}

	method := strings.ToUpper(strings.TrimSpace(request.Method))
	if !supportedMethods[method] {
		result.Error = fmt.Sprintf("Unsupported method: %s", request.Method)
		result.Assertions = []models.AssertionResult{}
		return result
	}

	execReq := &ExecutorRequest{
		Method:  method,
		URL:     result.URL,
		Headers: buildHeaders(request, vars),
	}
	if request.Body != "" {
		execReq.Body = []byte(Substitute(request.Body, vars))
		if contentType, ok := contentTypeByBody[request.BodyType]; ok {
			execReq.Headers["Content-Type"] = contentType
		}
	}

	e.logger.Debug("sending request",
		zap.String("method", execReq.Method),
		zap.String("url", execReq.URL),
	)

	started := time.Now()
	resp, err := e.executor.Do(ctx, execReq)
	elapsedMs := time.Since(started).Milliseconds()
	result.ResponseTimeMs = &elapsedMs

	if err != nil {
		result.Error = err.Error()
		result.Assertions = []models.AssertionResult{}
		e.logger.Debug("request transport error", zap.String("url", execReq.URL), zap.Error(err))
		return result
	}

	body := strings.ToValidUTF8(string(resp.Body), "�")
	size := int64(len(resp.Body))
	result.ResponseStatus = &resp.StatusCode
	result.ResponseSize = &size
	result.ResponseBody = &body
	result.ResponseHeaders = resp.Headers

	result.Assertions = e.runAssertions(request.Assertions, resp.StatusCode, elapsedMs, body, resp.Headers)

	// nil means "no extraction configured"; an empty slice means the rules
	// ran and produced nothing. Downstream only observes the distinction.
	if len(request.Extract) > 0 {
		result.Extracted = ExtractVariables(request.Extract, body)
	}

	result.Status = models.TestStatusPassed
	for _, assertion := range result.Assertions {
		if !assertion.Passed {
			result.Status = models.TestStatusFailed
			break
		}
	}
	return result
}

// runAssertions evaluates the enabled configured assertions; when none are
// configured (absent list, empty list, or all disabled) it synthesizes the
// default success check so every response gets at least one verdict.
func (e *RequestExecutor) runAssertions(assertions []models.Assertion, status int, elapsedMs int64, body string, headers map[string]string) []models.AssertionResult {
	results := make([]models.AssertionResult, 0, len(assertions))
	for _, assertion := range assertions {
		if !assertion.IsEnabled() {
			continue
		}
		results = append(results, EvaluateAssertion(assertion, status, elapsedMs, body, headers))
	}
	if len(results) == 0 {
		results = append(results, models.AssertionResult{
			Name:     "Status code is successful (< 400)",
			Passed:   status < 400,
			Expected: "< 400",
			Actual:   fmt.Sprintf("%d", status),
		})
	}
	return results
}

// buildURL substitutes variables into the URL and appends the enabled query
// parameters, respecting any query string already present.
func buildURL(request models.TestRequest, vars map[string]string) string {
	built := Substitute(request.URL, vars)
	pairs := make([]string, 0, len(request.Params))
	for _, param := range request.Params {
		if !param.Enabled || param.Key == "" {
			continue
		}
		key := url.QueryEscape(Substitute(param.Key, vars))
		value := url.QueryEscape(Substitute(param.Value, vars))
		pairs = append(pairs, key+"="+value)
	}
	if len(pairs) == 0 {
		return built
	}
	separator := "?"
	if strings.Contains(built, "?") {
		separator = "&"
	}
	return built + separator + strings.Join(pairs, "&")
}

func buildHeaders(request models.TestRequest, vars map[string]string) map[string]string {
	headers := make(map[string]string)
	for _, header := range request.Headers {
		if !header.Enabled || header.Key == "" {
			continue
		}
		headers[Substitute(header.Key, vars)] = Substitute(header.Value, vars)
	}
	return headers
}
