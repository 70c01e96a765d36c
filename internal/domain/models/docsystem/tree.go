package docsystem

import "time"

// WorkspaceTree is the root of a user's workspace: root-level folders
// (with nested children) and documents that live outside any folder.
type WorkspaceTree struct {
	Folders   []*FolderNode `json:"folders"`
	Documents []Document    `json:"documents"`
}

// FolderNode is a folder plus its resolved children
type FolderNode struct {
	ID             int64         `json:"id"`
	OwnerID        int64         `json:"user_id"`
	Name           string        `json:"name"`
	ParentFolderID *int64        `json:"parent_folder_id"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
	Children       []*FolderNode `json:"children"` // Pointers for proper nesting
	Documents      []Document    `json:"documents"`
}

// FolderContents is one level of the tree: a folder (nil for root) and its
// immediate children.
type FolderContents struct {
	Folder    *Folder    `json:"folder,omitempty"`
	Folders   []Folder   `json:"folders"`
	Documents []Document `json:"documents"`
}
