package server

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/jonathan/resume-builder/internal/db"
	"github.com/jonathan/resume-builder/internal/normalize"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/jonathan/resume-builder/internal/server/middleware"
	"github.com/jonathan/resume-builder/internal/types"
)

// defaultResumeTitle is used when a résumé is saved without a title.
const defaultResumeTitle = "Untitled résumé"

func toAPIResume(r *db.Resume) *types.Resume {
	return &types.Resume{
		ID:        r.ID,
		UserID:    r.UserID,
		Title:     r.Title,
		Template:  r.Template,
		Content:   r.Content,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// currentUser returns the authenticated user ID, writing a 401 when absent.
func (s *Server) currentUser(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return uuid.Nil, false
	}
	return userID, true
}

// resumeID parses the {id} path value, writing a 400 when malformed.
func (s *Server) resumeID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid resume ID")
		return uuid.Nil, false
	}
	return id, true
}

// loadResume fetches the caller's résumé named by the {id} path value.
// Résumés of other users are reported as not found.
func (s *Server) loadResume(w http.ResponseWriter, r *http.Request) (*db.Resume, bool) {
	userID, ok := s.currentUser(w, r)
	if !ok {
		return nil, false
	}
	id, ok := s.resumeID(w, r)
	if !ok {
		return nil, false
	}

	resume, err := s.db.GetResume(r.Context(), userID, id)
	if err != nil {
		s.errorFromErr(w, err)
		return nil, false
	}
	if resume == nil {
		s.errorResponse(w, http.StatusNotFound, "Resume not found")
		return nil, false
	}
	return resume, true
}

// readSaveRequest decodes and checks a create or update body. The template id falls back to
// the one inside the content, and unknown ids are stored as the default template.
func (s *Server) readSaveRequest(w http.ResponseWriter, r *http.Request) (*types.SaveResumeRequest, bool) {
	var req types.SaveResumeRequest
	if !s.decodeJSON(w, r, &req) {
		return nil, false
	}
	if err := s.validator.Struct(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, validationMessage(err))
		return nil, false
	}
	if err := schemas.ValidateResumeRecord(req.Content); err != nil {
		s.errorFromErr(w, err)
		return nil, false
	}

	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		req.Title = defaultResumeTitle
	}
	if strings.TrimSpace(req.Template) == "" {
		req.Template = normalize.FromJSON(req.Content).Template
	}
	req.Template = rendering.Resolve(req.Template)
	return &req, true
}

// handleListResumes handles GET /resumes.
func (s *Server) handleListResumes(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.currentUser(w, r)
	if !ok {
		return
	}

	rows, err := s.db.ListResumes(r.Context(), userID)
	if err != nil {
		s.errorFromErr(w, err)
		return
	}

	out := make([]types.ResumeSummary, 0, len(rows))
	for _, row := range rows {
		out = append(out, types.ResumeSummary{
			ID:        row.ID,
			Title:     row.Title,
			Template:  row.Template,
			UpdatedAt: row.UpdatedAt,
		})
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"resumes": out, "count": len(out)})
}

// handleCreateResume handles POST /resumes.
func (s *Server) handleCreateResume(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.currentUser(w, r)
	if !ok {
		return
	}
	req, ok := s.readSaveRequest(w, r)
	if !ok {
		return
	}

	resume, err := s.db.CreateResume(r.Context(), userID, req.Title, req.Template, req.Content)
	if err != nil {
		s.errorFromErr(w, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, toAPIResume(resume))
}

// handleGetResume handles GET /resumes/{id}.
func (s *Server) handleGetResume(w http.ResponseWriter, r *http.Request) {
	resume, ok := s.loadResume(w, r)
	if !ok {
		return
	}
	s.jsonResponse(w, http.StatusOK, toAPIResume(resume))
}

// handleUpdateResume handles PUT /resumes/{id}.
func (s *Server) handleUpdateResume(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.currentUser(w, r)
	if !ok {
		return
	}
	id, ok := s.resumeID(w, r)
	if !ok {
		return
	}
	req, ok := s.readSaveRequest(w, r)
	if !ok {
		return
	}

	resume, err := s.db.UpdateResume(r.Context(), userID, id, req.Title, req.Template, req.Content)
	if err != nil {
		s.errorFromErr(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, toAPIResume(resume))
}

// handleDeleteResume handles DELETE /resumes/{id}.
func (s *Server) handleDeleteResume(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.currentUser(w, r)
	if !ok {
		return
	}
	id, ok := s.resumeID(w, r)
	if !ok {
		return
	}

	if err := s.db.DeleteResume(r.Context(), userID, id); err != nil {
		s.errorFromErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
