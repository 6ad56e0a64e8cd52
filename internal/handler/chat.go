package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/valentinpelus/faqbot/internal/processor"
	"github.com/valentinpelus/faqbot/pkg/types"
)

// ChatHandler serves the public chat and feedback endpoints
type ChatHandler struct {
	processor *processor.ChatProcessor
	validate  *validator.Validate
	logger    *zap.Logger
}

// NewChatHandler creates a new chat handler
func NewChatHandler(proc *processor.ChatProcessor, logger *zap.Logger) *ChatHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ChatHandler{
		processor: proc,
		validate:  validator.New(validator.WithRequiredStructEnabled()),
		logger:    logger.Named("http"),
	}
}

// HandleChat answers one message
func (h *ChatHandler) HandleChat(w http.ResponseWriter, r *http.Request) {
	var req types.ChatRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxChatBody)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	resp := h.processor.Chat(r.Context(), req.Message)
	h.logger.Debug("Chat answered",
		zap.String("method", string(resp.Method)),
		zap.Int("score", resp.Score),
		zap.String("category", resp.Category))
	writeJSON(w, http.StatusOK, resp)
}

// HandleFeedback records a like or dislike
func (h *ChatHandler) HandleFeedback(w http.ResponseWriter, r *http.Request) {
	var req types.FeedbackRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxChatBody)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	resp, err := h.processor.Feedback(r.Context(), req)
	if err != nil {
		if errors.Is(err, processor.ErrUnknownTurn) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleStats returns the feedback counters
func (h *ChatHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.processor.Stats())
}

// HandleAnalysis returns the feedback report
func (h *ChatHandler) HandleAnalysis(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.processor.Analysis())
}

// validationMessage turns validator errors into one readable line
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required", "required_without":
			msgs = append(msgs, fmt.Sprintf("%s is required", field))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of: %s", field, fe.Param()))
		case "uuid":
			msgs = append(msgs, fmt.Sprintf("%s must be a UUID", field))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is invalid", field))
		}
	}
	return strings.Join(msgs, "; ")
}
