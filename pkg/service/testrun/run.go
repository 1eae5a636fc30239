package testrun

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/istekapp/istek-sub000/pkg/models"
)

// ErrNoRequests rejects a run before anything executes: running zero
// requests is a configuration error, not a vacuous success.
var ErrNoRequests = errors.New("no requests to test")

// Runner owns the run context for the lifetime of one run and drives the
// requests strictly one at a time, in list order. Each request's extracted
// variables must be visible to the next request's substitution, so there is
// deliberately no parallel fan-out.
type Runner struct {
	logger      *zap.Logger
	executor    *RequestExecutor
	collections CollectionStore
	limiter     *rate.Limiter
}

type RunnerOption func(*Runner)

// WithLimiter paces request starts with a shared rate limiter, used when
// many runs are driven against the same target.
func WithLimiter(limiter *rate.Limiter) RunnerOption {
	return func(r *Runner) {
		r.limiter = limiter
	}
}

// WithCollections enables the collection-scoped entry points.
func WithCollections(store CollectionStore) RunnerOption {
	return func(r *Runner) {
		r.collections = store
	}
}

func New(logger *zap.Logger, executor HTTPExecutor, opts ...RunnerOption) *Runner {
	r := &Runner{
		logger:   logger,
		executor: NewRequestExecutor(logger, executor),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes the whole run and returns the summary.
func (r *Runner) Run(ctx context.Context, req *models.TestRunRequest) (*models.TestRunSummary, error) {
	if len(req.Requests) == 0 {
		return nil, ErrNoRequests
	}
	return r.run(ctx, req, nil), nil
}

// RunStream executes the run in the background and emits one start event,
// one progress event per executed request and a terminal complete event.
// The channel closes when the run ends; cancelling ctx tears the run down,
// aborting any in-flight request.
func (r *Runner) RunStream(ctx context.Context, req *models.TestRunRequest) (<-chan models.RunEvent, error) {
	if len(req.Requests) == 0 {
		return nil, ErrNoRequests
	}
	events := make(chan models.RunEvent)
	go func() {
		defer close(events)
		r.run(ctx, req, func(event models.RunEvent) {
			select {
			case events <- event:
			case <-ctx.Done():
			}
		})
	}()
	return events, nil
}

// RunCollection resolves a stored collection (optionally one folder) and
// runs it with the same semantics as Run.
func (r *Runner) RunCollection(ctx context.Context, req *models.CollectionRunRequest) (*models.TestRunSummary, error) {
	runReq, err := r.resolveCollection(ctx, req)
	if err != nil {
		return nil, err
	}
	return r.run(ctx, runReq, nil), nil
}

func (r *Runner) RunCollectionStream(ctx context.Context, req *models.CollectionRunRequest) (<-chan models.RunEvent, error) {
	runReq, err := r.resolveCollection(ctx, req)
	if err != nil {
		return nil, err
	}
	return r.RunStream(ctx, runReq)
}

func (r *Runner) resolveCollection(ctx context.Context, req *models.CollectionRunRequest) (*models.TestRunRequest, error) {
	if r.collections == nil {
		return nil, errors.New("no collection store configured")
	}
	name, requests, err := r.collections.Resolve(ctx, req.CollectionID, req.FolderID)
	if err != nil {
		return nil, err
	}
	if len(requests) == 0 {
		if req.FolderID != "" {
			return nil, fmt.Errorf("%w in the selected folder", ErrNoRequests)
		}
		return nil, fmt.Errorf("%w in the collection", ErrNoRequests)
	}
	if req.Name != "" {
		name = req.Name
	}
	return &models.TestRunRequest{
		Name:          name,
		Requests:      requests,
		StopOnFailure: req.StopOnFailure,
		DelayMs:       req.DelayMs,
		Variables:     req.Variables,
	}, nil
}

// run is the single loop body behind both entry points, parameterized over
// an optional event sink.
func (r *Runner) run(ctx context.Context, req *models.TestRunRequest, emit func(models.RunEvent)) *models.TestRunSummary {
	if emit == nil {
		emit = func(models.RunEvent) {}
	}

	summary := &models.TestRunSummary{
		RunID:   uuid.New().String(),
		Name:    req.Name,
		Total:   len(req.Requests),
		Results: make([]models.TestResult, 0, len(req.Requests)),
	}

	// The run context: seeded from caller variables, grown only by
	// successful extractions, owned exclusively by this call frame.
	vars := make(map[string]string, len(req.Variables))
	for key, value := range req.Variables {
		vars[key] = value
	}

	r.logger.Debug("starting test run",
		zap.String("runId", summary.RunID),
		zap.String("name", req.Name),
		zap.Int("total", summary.Total),
	)
	emit(models.RunEvent{
		Kind:  models.RunEventStart,
		RunID: summary.RunID,
		Name:  req.Name,
		Total: summary.Total,
	})

	started := time.Now()
	for i, request := range req.Requests {
		if ctx.Err() != nil {
			break
		}
		if r.limiter != nil {
			if err := r.limiter.Wait(ctx); err != nil {
				r.logger.Debug("rate limiter wait interrupted", zap.Error(err))
				break
			}
		}

		result := r.executor.Execute(ctx, request, vars)

		// Fold successful extractions into the run context; failed ones are
		// dropped silently and never overwrite existing entries.
		for _, extracted := range result.Extracted {
			if extracted.Success {
				vars[extracted.Name] = extracted.Value
			}
		}

		switch result.Status {
		case models.TestStatusPassed:
			summary.Passed++
		case models.TestStatusFailed:
			summary.Failed++
		case models.TestStatusError:
			summary.Errors++
		}
		summary.Results = append(summary.Results, result)

		emit(models.RunEvent{
			Kind:   models.RunEventProgress,
			RunID:  summary.RunID,
			Index:  i + 1,
			Total:  summary.Total,
			Result: &result,
		})
		r.logger.Debug("request executed",
			zap.String("name", request.Name),
			zap.String("status", string(result.Status)),
		)

		if req.StopOnFailure && result.Status != models.TestStatusPassed {
			r.logger.Debug("stopping run on failure", zap.Int("executed", i+1))
			break
		}
		if req.DelayMs > 0 && i < len(req.Requests)-1 {
			select {
			case <-time.After(time.Duration(req.DelayMs) * time.Millisecond):
			case <-ctx.Done():
			}
		}
	}
	summary.DurationMs = time.Since(started).Milliseconds()

	emit(models.RunEvent{
		Kind:    models.RunEventComplete,
		RunID:   summary.RunID,
		Summary: summary,
	})
	r.logger.Debug("test run finished",
		zap.String("runId", summary.RunID),
		zap.Int("passed", summary.Passed),
		zap.Int("failed", summary.Failed),
		zap.Int("errors", summary.Errors),
		zap.Int64("durationMs", summary.DurationMs),
	)
	return summary
}
