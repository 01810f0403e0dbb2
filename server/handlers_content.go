package server

import (
	"encoding/json"
	"net/http"

	"github.com/jrsteele09/rental-portal/api"
	perrors "github.com/jrsteele09/rental-portal/internal/errors"
	"github.com/rs/zerolog"
)

type descriptionResponse struct {
	Description string `json:"description,omitempty"`
	Error       string `json:"error,omitempty"`
}

// ContentDescriptionHandler asks the content service for a listing description.
// The listing context comes from the draft named by draftId, or from a JSON body.
func (s *Server) ContentDescriptionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.content == nil {
			writeJSON(w, http.StatusServiceUnavailable, descriptionResponse{Error: "Content generation is not configured"})
			return
		}

		var req api.DescriptionRequest
		if draftID := r.URL.Query().Get("draftId"); draftID != "" {
			d, err := s.wizard.Load(r.Context(), currentUser(r).ID, draftID)
			if err != nil {
				writeJSON(w, http.StatusNotFound, descriptionResponse{Error: "Draft not found"})
				return
			}
			req = d.DescriptionRequest()
		} else if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 64<<10)).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, descriptionResponse{Error: "Invalid request body"})
			return
		}
		if req.Title == "" || req.PropertyType == "" {
			writeJSON(w, http.StatusUnprocessableEntity, descriptionResponse{Error: "Title and property type are required"})
			return
		}

		content := s.content
		if tokens, err := s.session(w, r).store.Get(); err == nil && tokens != nil {
			content = content.WithTokens(r.Context(), *tokens)
		}
		text, err := content.GenerateDescription(r.Context(), req)
		if err != nil {
			zerolog.Ctx(r.Context()).Err(err).Msg("Description generation failed")
			status := http.StatusBadGateway
			if perrors.Is(err, perrors.ErrValidation) {
				status = http.StatusUnprocessableEntity
			}
			writeJSON(w, status, descriptionResponse{Error: "Unable to generate a description"})
			return
		}
		writeJSON(w, http.StatusOK, descriptionResponse{Description: text})
	}
}
