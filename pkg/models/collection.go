package models

// Folder groups requests inside a collection. Nesting is expressed through
// ParentID; an empty ParentID means the folder sits at the collection root.
type Folder struct {
	ID       string `json:"id" yaml:"id"`
	Name     string `json:"name" yaml:"name"`
	ParentID string `json:"parentId,omitempty" yaml:"parent_id,omitempty"`
}

// CollectionRequest is a stored request plus its placement inside the
// collection. TestOrder drives the execution order of a collection run:
// ordered requests run first (ascending), unordered ones after, ties broken
// by document order.
type CollectionRequest struct {
	TestRequest `yaml:",inline"`
	FolderID    string `json:"folderId,omitempty" yaml:"folder_id,omitempty"`
	TestOrder   *int   `json:"testOrder,omitempty" yaml:"test_order,omitempty"`
}

// Collection is one stored request collection document.
type Collection struct {
	ID       string              `json:"id" yaml:"id"`
	Name     string              `json:"name" yaml:"name"`
	Folders  []Folder            `json:"folders,omitempty" yaml:"folders,omitempty"`
	Requests []CollectionRequest `json:"requests" yaml:"requests"`
}
