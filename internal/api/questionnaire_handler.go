package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/onboard-api/internal/api/shared"
	"github.com/phrazzld/onboard-api/internal/domain"
	"github.com/phrazzld/onboard-api/internal/platform/logger"
	"github.com/phrazzld/onboard-api/internal/redact"
	"github.com/phrazzld/onboard-api/internal/store"
)

// QuestionnaireHandler handles questionnaire-related HTTP requests
type QuestionnaireHandler struct {
	questionnaires store.QuestionnaireStore
	logger         *slog.Logger
}

// NewQuestionnaireHandler creates a new QuestionnaireHandler.
// If logger is nil, a default logger will be used.
func NewQuestionnaireHandler(questionnaires store.QuestionnaireStore, logger *slog.Logger) *QuestionnaireHandler {
	if questionnaires == nil {
		panic("questionnaires cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &QuestionnaireHandler{
		questionnaires: questionnaires,
		logger:         logger.With(slog.String("component", "questionnaire_handler")),
	}
}

// CreateQuestionnaire handles POST /questionnaires requests
func (h *QuestionnaireHandler) CreateQuestionnaire(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreateQuestionnaireRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		log.Warn("invalid request format", slog.String("error", redact.Error(err)))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	req.Normalize()
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	id, err := h.questionnaires.Create(r.Context(), domain.NewQuestionnaire{
		UserID:       req.UserID,
		Description:  req.Description,
		Goals:        req.Goals,
		Challenges:   req.Challenges,
		Expectations: req.Expectations,
	})
	if err != nil {
		HandleAPIError(w, r, err, "Failed to add questionnaire")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, CreateQuestionnaireResponse{
		QuestionnaireID: id,
		Message:         "Questionnaire added successfully",
	})
}

// GetQuestionnaire handles GET /users/{id}/questionnaire requests
func (h *QuestionnaireHandler) GetQuestionnaire(w http.ResponseWriter, r *http.Request) {
	userID, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	q, err := h.questionnaires.GetByUserID(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get questionnaire")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, questionnaireToResponse(q))
}

// DeleteQuestionnaire handles DELETE /users/{id}/questionnaire requests
func (h *QuestionnaireHandler) DeleteQuestionnaire(w http.ResponseWriter, r *http.Request) {
	userID, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.questionnaires.DeleteByUserID(r.Context(), userID); err != nil {
		HandleAPIError(w, r, err, "Failed to delete questionnaire")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, MessageResponse{Message: "Questionnaire deleted successfully"})
}
