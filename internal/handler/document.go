package handler

import (
	"log/slog"
	"net/http"

	docsysSvc "notebook/internal/domain/services/docsystem"
	"notebook/internal/httputil"
	"notebook/internal/sanitizer"
)

// DocumentHandler handles document HTTP requests
type DocumentHandler struct {
	docService docsysSvc.DocumentService
	sanitizer  *sanitizer.Sanitizer
	logger     *slog.Logger
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(docService docsysSvc.DocumentService, sanitizer *sanitizer.Sanitizer, logger *slog.Logger) *DocumentHandler {
	return &DocumentHandler{
		docService: docService,
		sanitizer:  sanitizer,
		logger:     logger,
	}
}

// CreateDocument creates a new document
// POST /api/documents
func (h *DocumentHandler) CreateDocument(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req docsysSvc.CreateDocumentRequest
	if !parseBody(w, r, &req) {
		return
	}
	req.UserID = userID
	req.Title = h.sanitizer.Text(req.Title)

	doc, err := h.docService.CreateDocument(r.Context(), &req)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, doc)
}

// GetDocument retrieves a document by ID
// GET /api/documents/{id}
func (h *DocumentHandler) GetDocument(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	doc, err := h.docService.GetDocument(r.Context(), userID, id)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, doc)
}

// UpdateDocument renames a document; a folder_id key also moves it
// PATCH /api/documents/{id}
func (h *DocumentHandler) UpdateDocument(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req docsysSvc.UpdateDocumentRequest
	if !parseBody(w, r, &req) {
		return
	}
	req.Title = h.sanitizer.TextPtr(req.Title)

	doc, err := h.docService.UpdateDocument(r.Context(), userID, id, &req)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, doc)
}

// MoveDocument reassigns a document's folder; null moves it to root
// PUT /api/documents/{id}/folder
func (h *DocumentHandler) MoveDocument(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req docsysSvc.MoveDocumentRequest
	if !parseBody(w, r, &req) {
		return
	}

	doc, err := h.docService.MoveDocument(r.Context(), userID, id, req.FolderID)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, doc)
}

// DeleteDocument deletes a document and its blocks
// DELETE /api/documents/{id}
func (h *DocumentHandler) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.docService.DeleteDocument(r.Context(), userID, id); err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
