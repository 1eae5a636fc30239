// Package testrun implements the sequential test run engine: variable
// substitution, request execution, assertions, extraction and run
// orchestration with blocking and streaming entry points.
package testrun

import (
	"context"

	"github.com/istekapp/istek-sub000/pkg/models"
)

// Service is the engine boundary used by the CLI and the API layer.
type Service interface {
	Run(ctx context.Context, req *models.TestRunRequest) (*models.TestRunSummary, error)
	RunStream(ctx context.Context, req *models.TestRunRequest) (<-chan models.RunEvent, error)
	RunCollection(ctx context.Context, req *models.CollectionRunRequest) (*models.TestRunSummary, error)
	RunCollectionStream(ctx context.Context, req *models.CollectionRunRequest) (<-chan models.RunEvent, error)
}

// CollectionStore resolves stored collections into ordered request lists.
// Implemented by the yaml collection store.
type CollectionStore interface {
	Resolve(ctx context.Context, collectionID, folderID string) (name string, requests []models.TestRequest, err error)
}
