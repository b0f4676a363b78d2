package server

import (
	"log"
	"net/http"
	"strings"

	"github.com/jonathan/resume-builder/internal/normalize"
	"github.com/jonathan/resume-builder/internal/types"
)

// readSuggestRequest decodes an assistant request and resolves the résumé it refers to:
// a saved résumé when resume_id is set, otherwise the inline content, otherwise an empty one.
func (s *Server) readSuggestRequest(w http.ResponseWriter, r *http.Request) (*types.SuggestRequest, *types.Content, bool) {
	if s.assistant == nil {
		s.errorFromErr(w, &ErrUnavailable{Service: "assistant"})
		return nil, nil, false
	}
	if _, ok := s.currentUser(w, r); !ok {
		return nil, nil, false
	}

	var req types.SuggestRequest
	if !s.decodeJSON(w, r, &req) {
		return nil, nil, false
	}
	if err := s.validator.Struct(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, validationMessage(err))
		return nil, nil, false
	}
	if strings.TrimSpace(req.Message) == "" {
		s.errorResponse(w, http.StatusBadRequest, "validation error: Message - required")
		return nil, nil, false
	}

	if req.ResumeID != "" {
		r.SetPathValue("id", req.ResumeID)
		resume, ok := s.loadResume(w, r)
		if !ok {
			return nil, nil, false
		}
		content := normalize.FromJSON(resume.Content)
		// The stored template wins over one embedded in the content.
		content.Template = resume.Template
		return &req, content, true
	}

	if len(req.Content) > 0 {
		raw, err := types.ParseRawRecord(req.Content)
		if err != nil {
			s.errorResponse(w, http.StatusBadRequest, "Invalid content: "+err.Error())
			return nil, nil, false
		}
		return &req, normalize.Normalize(raw), true
	}
	return &req, types.NewContent(), true
}

// handleSuggest handles POST /assistant/suggest.
func (s *Server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	req, content, ok := s.readSuggestRequest(w, r)
	if !ok {
		return
	}

	suggestions, err := s.assistant.Suggest(r.Context(), content, req.Message)
	if err != nil {
		s.errorFromErr(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, types.SuggestResponse{Suggestions: suggestions})
}

// handleChatStream handles POST /assistant/chat/stream. The reply is sent as "chunk" events
// followed by "done", or an "error" event if the model fails mid-stream.
func (s *Server) handleChatStream(w http.ResponseWriter, r *http.Request) {
	req, content, ok := s.readSuggestRequest(w, r)
	if !ok {
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	err = s.assistant.Chat(r.Context(), content, req.Message, sse.WriteChunk)
	if err != nil {
		if r.Context().Err() != nil {
			return
		}
		log.Printf("[assistant] chat stream failed: %v", err)
		sse.WriteError("The assistant could not finish its reply")
		return
	}
	sse.WriteDone(map[string]string{"status": "complete"})
}
