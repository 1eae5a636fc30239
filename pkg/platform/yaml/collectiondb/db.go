// Package collectiondb reads stored request collections from yaml
// documents on disk and resolves them into ordered request lists for the
// test run engine.
package collectiondb

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/istekapp/istek-sub000/pkg/models"
)

// ErrNotFound is wrapped by lookup failures so the API layer can map them
// to 404 responses.
var ErrNotFound = errors.New("not found")

// CollectionDB serves collection documents stored as <path>/<id>.yaml.
type CollectionDB struct {
	logger *zap.Logger
	path   string
}

func New(logger *zap.Logger, path string) *CollectionDB {
	return &CollectionDB{
		logger: logger,
		path:   path,
	}
}

// Get reads and parses one collection document.
func (db *CollectionDB) Get(_ context.Context, collectionID string) (*models.Collection, error) {
	file := filepath.Join(db.path, collectionID+".yaml")
	data, err := os.ReadFile(file)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("collection %s %w", collectionID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to read collection %s: %w", collectionID, err)
	}
	var collection models.Collection
	if err := yaml.Unmarshal(data, &collection); err != nil {
		return nil, fmt.Errorf("failed to parse collection %s: %w", collectionID, err)
	}
	if collection.ID == "" {
		collection.ID = collectionID
	}
	db.logger.Debug("collection loaded",
		zap.String("id", collection.ID),
		zap.Int("requests", len(collection.Requests)),
	)
	return &collection, nil
}

// Resolve flattens a collection, or one folder of it including nested
// subfolders, into the execution-ordered request list: requests with a
// numeric test order first (ascending), unordered ones after, ties broken
// by document order.
func (db *CollectionDB) Resolve(ctx context.Context, collectionID, folderID string) (string, []models.TestRequest, error) {
	collection, err := db.Get(ctx, collectionID)
	if err != nil {
		return "", nil, err
	}

	requests := collection.Requests
	if folderID != "" {
		folders := folderSubtree(collection.Folders, folderID)
		if len(folders) == 0 {
			return "", nil, fmt.Errorf("folder %s %w in collection %s", folderID, ErrNotFound, collectionID)
		}
		filtered := make([]models.CollectionRequest, 0, len(requests))
		for _, request := range requests {
			if folders[request.FolderID] {
				filtered = append(filtered, request)
			}
		}
		requests = filtered
	}

	sorted := make([]models.CollectionRequest, len(requests))
	copy(sorted, requests)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i].TestOrder, sorted[j].TestOrder
		switch {
		case a != nil && b != nil:
			return *a < *b
		case a != nil:
			return true
		default:
			return false
		}
	})

	resolved := make([]models.TestRequest, 0, len(sorted))
	for _, request := range sorted {
		resolved = append(resolved, request.TestRequest)
	}
	return collection.Name, resolved, nil
}

// folderSubtree collects the ids of a folder and all folders nested under
// it. An empty result means the root folder id does not exist.
func folderSubtree(folders []models.Folder, rootID string) map[string]bool {
	found := false
	for _, folder := range folders {
		if folder.ID == rootID {
			found = true
			break
		}
	}
	if !found {
		return nil
	}
	subtree := map[string]bool{rootID: true}
	for {
		grew := false
		for _, folder := range folders {
			if !subtree[folder.ID] && subtree[folder.ParentID] {
				subtree[folder.ID] = true
				grew = true
			}
		}
		if !grew {
			return subtree
		}
	}
}
