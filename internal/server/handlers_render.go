package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/jonathan/resume-builder/internal/export"
	"github.com/jonathan/resume-builder/internal/normalize"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/storage"
	"github.com/jonathan/resume-builder/internal/types"
)

// ExportUploadResponse is returned by an export with upload=true.
type ExportUploadResponse struct {
	URL       string `json:"url"`
	Key       string `json:"key"`
	Template  string `json:"template"`
	Format    string `json:"format"`
	Size      int    `json:"size"`
	ExpiresAt string `json:"expires_at"`
}

// uploadURLTTL is the lifetime of links returned for uploaded exports.
const uploadURLTTL = 15 * time.Minute

// readRecord reads the request body as a raw résumé record.
func (s *Server) readRecord(w http.ResponseWriter, r *http.Request) (types.RawRecord, bool) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			s.errorResponse(w, http.StatusRequestEntityTooLarge, "Request body too large")
			return nil, false
		}
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return nil, false
	}
	raw, err := types.ParseRawRecord(data)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return nil, false
	}
	return raw, true
}

// themeFromQuery reads optional accent and font overrides. Invalid values are ignored by the renderer.
func themeFromQuery(r *http.Request) *rendering.Theme {
	q := r.URL.Query()
	accent, font := q.Get("accent"), q.Get("font")
	if accent == "" && font == "" {
		return nil
	}
	return &rendering.Theme{Accent: accent, Font: font}
}

// pickTemplate returns the ?template= override, or fallback when absent.
func pickTemplate(r *http.Request, fallback string) string {
	if id := strings.TrimSpace(r.URL.Query().Get("template")); id != "" {
		return id
	}
	return fallback
}

// writeDocument writes a rendered page.
func (s *Server) writeDocument(w http.ResponseWriter, doc *rendering.Document) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("X-Resume-Template", doc.Template)
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, doc.HTML)
}

// handleListTemplates handles GET /templates.
func (s *Server) handleListTemplates(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"templates": rendering.Catalog(),
		"default":   rendering.DefaultTemplate,
	})
}

// handlePreview handles POST /preview: a raw record in, the rendered page out.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	raw, ok := s.readRecord(w, r)
	if !ok {
		return
	}
	content := normalize.Normalize(raw)

	doc, err := rendering.RenderWithTheme(pickTemplate(r, content.Template), content, themeFromQuery(r))
	if err != nil {
		s.errorFromErr(w, err)
		return
	}
	s.writeDocument(w, doc)
}

// handleNormalize handles POST /normalize: a raw record in, canonical content out.
func (s *Server) handleNormalize(w http.ResponseWriter, r *http.Request) {
	raw, ok := s.readRecord(w, r)
	if !ok {
		return
	}
	s.jsonResponse(w, http.StatusOK, normalize.Normalize(raw))
}

// handleResumePreview handles GET /resumes/{id}/preview.
func (s *Server) handleResumePreview(w http.ResponseWriter, r *http.Request) {
	resume, ok := s.loadResume(w, r)
	if !ok {
		return
	}
	content := normalize.FromJSON(resume.Content)

	doc, err := rendering.RenderWithTheme(pickTemplate(r, resume.Template), content, themeFromQuery(r))
	if err != nil {
		s.errorFromErr(w, err)
		return
	}
	s.writeDocument(w, doc)
}

// handleResumeExport handles GET /resumes/{id}/export?format=pdf|jpg|html|txt[&upload=true].
// Without upload the file is returned as an attachment.
func (s *Server) handleResumeExport(w http.ResponseWriter, r *http.Request) {
	format, err := export.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	upload, _ := strconv.ParseBool(r.URL.Query().Get("upload"))
	if upload && s.store == nil {
		s.errorFromErr(w, &ErrUnavailable{Service: "export storage"})
		return
	}

	resume, ok := s.loadResume(w, r)
	if !ok {
		return
	}
	content := normalize.FromJSON(resume.Content)

	doc, err := rendering.RenderWithTheme(pickTemplate(r, resume.Template), content, themeFromQuery(r))
	if err != nil {
		s.errorFromErr(w, err)
		return
	}

	data, err := s.exporter.Export(r.Context(), doc, format)
	if err != nil {
		s.errorFromErr(w, err)
		return
	}

	if !upload {
		filename := fmt.Sprintf("%s-%s%s", fileSlug(resume.Title), doc.Template, format.Extension())
		w.Header().Set("Content-Type", format.ContentType())
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		w.Header().Set("Content-Length", strconv.Itoa(len(data)))
		w.Header().Set("X-Resume-Template", doc.Template)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
		return
	}

	now := time.Now()
	key := storage.ExportKey(resume.UserID.String(), resume.ID.String(), doc.Template, format.Extension(), now)
	if err := s.store.Put(r.Context(), key, format.ContentType(), data); err != nil {
		s.errorFromErr(w, err)
		return
	}
	url, err := s.store.PresignGet(r.Context(), key, uploadURLTTL)
	if err != nil {
		s.errorFromErr(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, ExportUploadResponse{
		URL:       url,
		Key:       key,
		Template:  doc.Template,
		Format:    string(format),
		Size:      len(data),
		ExpiresAt: now.Add(uploadURLTTL).UTC().Format(time.RFC3339),
	})
}

// fileSlug turns a title into a lowercase file name stem.
func fileSlug(title string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(title) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	slug := strings.TrimSuffix(b.String(), "-")
	if slug == "" {
		return "resume"
	}
	return slug
}
