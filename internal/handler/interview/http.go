package interview

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/interviai/backend/pkg/utils"
)

// handleQuestion answers a single question outside any live session and hands
// back a fresh session key the client can join for the follow-up interview.
func (h *Handler) handleQuestion(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Question string `json:"question"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Question == "" {
		utils.RespondError(w, http.StatusBadRequest, "Missing or invalid question")
		return
	}

	if h.generator == nil {
		utils.RespondError(w, http.StatusServiceUnavailable, "ai unavailable")
		return
	}

	answer, err := h.generator.Answer(r.Context(), "", payload.Question, "", nil)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Failed to get answer from AI")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]string{
		"answer":     answer,
		"sessionKey": uuid.NewString(),
	})
}
