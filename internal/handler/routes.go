package handler

import (
	"net/http"

	"notebook/internal/httputil"
)

// Handlers bundles every handler served by the API
type Handlers struct {
	Folders    *FolderHandler
	Documents  *DocumentHandler
	Blocks     *BlockHandler
	Tree       *TreeHandler
	BlockTypes *BlockTypesHandler
	Account    *AccountHandler
}

// Routes registers the API on a new ServeMux (Go 1.22+ method patterns)
func (h *Handlers) Routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", HealthCheck)
	mux.HandleFunc("GET /api/block-types", h.BlockTypes.ListBlockTypes)

	// Workspace
	mux.HandleFunc("GET /api/workspace", h.Tree.GetWorkspace)

	// Folder routes
	mux.HandleFunc("GET /api/folders", h.Folders.ListRootContents)
	mux.HandleFunc("POST /api/folders", h.Folders.CreateFolder)
	mux.HandleFunc("GET /api/folders/{id}", h.Folders.GetFolder)
	mux.HandleFunc("GET /api/folders/{id}/contents", h.Folders.ListFolderContents)
	mux.HandleFunc("PATCH /api/folders/{id}", h.Folders.UpdateFolder)
	mux.HandleFunc("DELETE /api/folders/{id}", h.Folders.DeleteFolder)

	// Document routes
	mux.HandleFunc("POST /api/documents", h.Documents.CreateDocument)
	mux.HandleFunc("GET /api/documents/{id}", h.Documents.GetDocument)
	mux.HandleFunc("PATCH /api/documents/{id}", h.Documents.UpdateDocument)
	mux.HandleFunc("PUT /api/documents/{id}/folder", h.Documents.MoveDocument)
	mux.HandleFunc("DELETE /api/documents/{id}", h.Documents.DeleteDocument)

	// Block routes
	mux.HandleFunc("GET /api/documents/{id}/blocks", h.Blocks.ListBlocks)
	mux.HandleFunc("PUT /api/documents/{id}/blocks/reorder", h.Blocks.ReorderBlocks)
	mux.HandleFunc("POST /api/blocks", h.Blocks.CreateBlock)
	mux.HandleFunc("GET /api/blocks/{id}", h.Blocks.GetBlock)
	mux.HandleFunc("PATCH /api/blocks/{id}", h.Blocks.UpdateBlock)
	mux.HandleFunc("DELETE /api/blocks/{id}", h.Blocks.DeleteBlock)

	// Account routes
	mux.HandleFunc("GET /api/users/me", h.Account.GetAccount)
	mux.HandleFunc("PATCH /api/users/me", h.Account.UpdateAccount)
	mux.HandleFunc("DELETE /api/users/me", h.Account.DeleteAccount)

	return mux
}

// HealthCheck reports liveness
// GET /health
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
