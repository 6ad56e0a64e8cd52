package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/valentinpelus/faqbot/internal/processor"
	"github.com/valentinpelus/faqbot/pkg/feedback"
)

// AdminHandler serves the token-protected maintenance endpoints
type AdminHandler struct {
	processor *processor.ChatProcessor
	logger    *zap.Logger
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(proc *processor.ChatProcessor, logger *zap.Logger) *AdminHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdminHandler{
		processor: proc,
		logger:    logger.Named("admin"),
	}
}

// HandleExport downloads the feedback ledger as JSON
func (h *AdminHandler) HandleExport(w http.ResponseWriter, r *http.Request) {
	doc, err := h.processor.Export()
	if err != nil {
		h.logger.Error("Export failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "export failed")
		return
	}

	filename := fmt.Sprintf("feedback-export-%s.json", time.Now().UTC().Format("2006-01-02"))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	writeJSON(w, http.StatusOK, doc)
}

// importResponse reports how many sessions an import added
type importResponse struct {
	Status   string `json:"status"`
	Sessions int    `json:"sessions"`
}

// HandleImport merges an exported ledger into the current one
func (h *AdminHandler) HandleImport(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxImportBody))
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	n, err := h.processor.Import(r.Context(), data)
	if err != nil {
		if errors.Is(err, feedback.ErrInvalidImport) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("Import failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "import failed")
		return
	}

	writeJSON(w, http.StatusOK, importResponse{Status: "imported", Sessions: n})
}

// HandleRefreshKnowledge reloads the knowledge base from its source
func (h *AdminHandler) HandleRefreshKnowledge(w http.ResponseWriter, r *http.Request) {
	status, err := h.processor.RefreshKnowledge(r.Context())
	if err != nil {
		writeJSON(w, http.StatusBadGateway, struct {
			processor.KnowledgeStatus
			Error string `json:"error"`
		}{status, err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, status)
}
