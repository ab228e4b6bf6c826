package api

import (
	"fmt"
	"net/http"

	"github.com/blattwerk/blattwerk-api/internal/api/middleware"
	"github.com/blattwerk/blattwerk-api/internal/api/shared"
	"github.com/blattwerk/blattwerk-api/internal/domain"
	"github.com/blattwerk/blattwerk-api/internal/service"
)

// WorksheetHandler handles worksheet generation requests
type WorksheetHandler struct {
	worksheetService service.WorksheetService
}

// NewWorksheetHandler creates a new WorksheetHandler.
func NewWorksheetHandler(worksheetService service.WorksheetService) *WorksheetHandler {
	return &WorksheetHandler{worksheetService: worksheetService}
}

// Generate handles worksheet generation (POST /worksheet/generate)
//
// A successful response means one credit was deducted and the worksheet was
// persisted; any error response means neither happened.
func (h *WorksheetHandler) Generate(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req GenerateWorksheetRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid worksheet parameters")
		return
	}

	outcome, err := h.worksheetService.Generate(r.Context(), userID, &domain.GenerationRequest{
		Level:         req.Level,
		Topic:         req.Topic,
		AgeGroup:      req.AgeGroup,
		Duration:      req.Duration,
		ActivityTypes: req.ActivityTypes,
		ThemeWords:    req.ThemeWords,
	})
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, GenerateWorksheetResponse{
		Title:             fmt.Sprintf("Arbeitsblatt: %s", outcome.Worksheet.Topic),
		EstimatedDuration: fmt.Sprintf("%d Minuten", req.Duration),
		Content:           outcome.Worksheet.Content,
		Solutions:         outcome.Worksheet.Solutions,
		RemainingCredits:  outcome.RemainingCredits,
	})
}

// List returns the authenticated user's worksheets (GET /worksheets)
func (h *WorksheetHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	worksheets, err := h.worksheetService.ListWorksheets(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	summaries := make([]WorksheetSummary, 0, len(worksheets))
	for _, ws := range worksheets {
		summaries = append(summaries, WorksheetSummary{
			ID:        ws.ID,
			Level:     ws.Level,
			Topic:     ws.Topic,
			Exercises: len(ws.Content),
			CreatedAt: ws.CreatedAt,
		})
	}

	shared.RespondWithJSON(w, r, http.StatusOK, summaries)
}
