package handler

import (
	"log/slog"
	"net/http"

	"notebook/internal/blocktypes"
	docsysSvc "notebook/internal/domain/services/docsystem"
	"notebook/internal/httputil"
)

// TreeHandler handles HTTP requests for the workspace tree
type TreeHandler struct {
	treeService docsysSvc.TreeService
	logger      *slog.Logger
}

// NewTreeHandler creates a new tree handler
func NewTreeHandler(treeService docsysSvc.TreeService, logger *slog.Logger) *TreeHandler {
	return &TreeHandler{
		treeService: treeService,
		logger:      logger,
	}
}

// GetWorkspace returns the nested folder/document tree of the requester
// GET /api/workspace
func (h *TreeHandler) GetWorkspace(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	tree, err := h.treeService.GetWorkspaceTree(r.Context(), userID)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, tree)
}

// BlockTypesHandler serves the block type registry
type BlockTypesHandler struct {
	registry *blocktypes.Registry
}

// NewBlockTypesHandler creates a new block types handler
func NewBlockTypesHandler(registry *blocktypes.Registry) *BlockTypesHandler {
	return &BlockTypesHandler{registry: registry}
}

// ListBlockTypes returns every accepted block type in declaration order
// GET /api/block-types
func (h *BlockTypesHandler) ListBlockTypes(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"block_types": h.registry.List(),
	})
}
