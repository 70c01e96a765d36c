package handler

import (
	"log/slog"
	"net/http"

	"notebook/internal/blocktypes"
	models "notebook/internal/domain/models/docsystem"
	docsysSvc "notebook/internal/domain/services/docsystem"
	"notebook/internal/httputil"
	"notebook/internal/sanitizer"
)

// BlockHandler handles block HTTP requests
type BlockHandler struct {
	blockService docsysSvc.BlockService
	blockTypes   *blocktypes.Registry
	sanitizer    *sanitizer.Sanitizer
	logger       *slog.Logger
}

// NewBlockHandler creates a new block handler
func NewBlockHandler(
	blockService docsysSvc.BlockService,
	blockTypes *blocktypes.Registry,
	sanitizer *sanitizer.Sanitizer,
	logger *slog.Logger,
) *BlockHandler {
	return &BlockHandler{
		blockService: blockService,
		blockTypes:   blockTypes,
		sanitizer:    sanitizer,
		logger:       logger,
	}
}

// CreateBlock appends a block to a document
// POST /api/blocks
func (h *BlockHandler) CreateBlock(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req docsysSvc.CreateBlockRequest
	if !parseBody(w, r, &req) {
		return
	}
	blockType := req.BlockType
	if blockType == "" {
		blockType = models.BlockTypeParagraph
	}
	req.Content = h.cleanContent(blockType, req.Content)

	block, err := h.blockService.CreateBlock(r.Context(), userID, &req)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, block)
}

// GetBlock retrieves a block by ID
// GET /api/blocks/{id}
func (h *BlockHandler) GetBlock(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	block, err := h.blockService.GetBlock(r.Context(), userID, id)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, block)
}

// ListBlocks returns a document's blocks in render order
// GET /api/documents/{id}/blocks
func (h *BlockHandler) ListBlocks(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	documentID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	blocks, err := h.blockService.ListBlocks(r.Context(), userID, documentID)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, blocks)
}

// UpdateBlock changes a block's content and/or type
// PATCH /api/blocks/{id}
func (h *BlockHandler) UpdateBlock(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req docsysSvc.UpdateBlockRequest
	if !parseBody(w, r, &req) {
		return
	}

	if req.Content != nil {
		// Content is cleaned for the type it will have after the update
		var blockType models.BlockType
		if req.BlockType != nil {
			blockType = *req.BlockType
		} else {
			current, err := h.blockService.GetBlock(r.Context(), userID, id)
			if err != nil {
				handleError(w, r, h.logger, err)
				return
			}
			blockType = current.BlockType
		}
		cleaned := h.cleanContent(blockType, *req.Content)
		req.Content = &cleaned
	}

	block, err := h.blockService.UpdateBlock(r.Context(), userID, id, &req)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, block)
}

// DeleteBlock deletes a block
// DELETE /api/blocks/{id}
func (h *BlockHandler) DeleteBlock(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.blockService.DeleteBlock(r.Context(), userID, id); err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ReorderBlocks applies a batch of placements and returns the new order
// PUT /api/documents/{id}/blocks/reorder
func (h *BlockHandler) ReorderBlocks(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	documentID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req docsysSvc.ReorderBlocksRequest
	if !parseBody(w, r, &req) {
		return
	}

	if err := h.blockService.ReorderBlocks(r.Context(), userID, documentID, &req); err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	blocks, err := h.blockService.ListBlocks(r.Context(), userID, documentID)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, blocks)
}

// cleanContent sanitizes rich text; raw types (code, URLs, JSON) pass through
func (h *BlockHandler) cleanContent(blockType models.BlockType, content string) string {
	if def, ok := h.blockTypes.Get(blockType); ok && def.RawContent {
		return content
	}
	return h.sanitizer.Content(content)
}
