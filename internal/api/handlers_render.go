package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/dgallion1/contentkit/internal/parser"
	"github.com/dgallion1/contentkit/internal/pipeline"
	"github.com/dgallion1/contentkit/internal/tabs"
)

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	// Limit total request size.
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024) // extra 1MB for form overhead

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)
	if !parser.IsSupportedExtension(filename) {
		jsonError(w, fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)), http.StatusBadRequest)
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, s.cfg.MaxUploadBytes+1))
	if err != nil {
		jsonError(w, "failed to read file", http.StatusInternalServerError)
		return
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		jsonError(w, fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
		return
	}

	job := pipeline.NewJob(filename, data, r.FormValue("strict") == "true")
	if err := s.orchestrator.Submit(job); err != nil {
		jsonError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]any{
		"job_id":     job.ID,
		"status":     job.Snapshot().Status,
		"poll_url":   fmt.Sprintf("/api/render/%s/status", job.ID),
		"result_url": fmt.Sprintf("/api/render/%s", job.ID),
	})
}

func (s *Server) handleRenderStatus(w http.ResponseWriter, r *http.Request) {
	job := s.orchestrator.GetJob(chi.URLParam(r, "jobID"))
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, job.Snapshot())
}

// handleRenderResult returns the rendered HTML as JSON, or as text/html when
// format=html is requested.
func (s *Server) handleRenderResult(w http.ResponseWriter, r *http.Request) {
	job := s.orchestrator.GetJob(chi.URLParam(r, "jobID"))
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}
	snap := job.Snapshot()
	switch snap.Status {
	case pipeline.StatusCompleted:
	case pipeline.StatusFailed:
		writeJSON(w, http.StatusUnprocessableEntity, snap)
		return
	default:
		writeJSON(w, http.StatusConflict, map[string]any{
			"job_id": snap.ID,
			"status": snap.Status,
			"error":  "job not finished",
		})
		return
	}

	res := job.Result()
	if r.URL.Query().Get("format") == "html" {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = io.WriteString(w, res.HTML)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"job_id": snap.ID,
		"result": res,
	})
}

type previewRequest struct {
	Filename string `json:"filename"`
	Source   string `json:"source"`
	Strict   bool   `json:"strict"`
}

func (p previewRequest) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Filename, validation.By(supportedFile)),
		validation.Field(&p.Source, validation.Required),
	)
}

func supportedFile(value any) error {
	name, _ := value.(string)
	if name != "" && !parser.IsSupportedExtension(name) {
		return validation.NewError("validation_file_type", "unsupported file type "+filepath.Ext(name))
	}
	return nil
}

// handleRenderPreview renders synchronously; for editor previews.
func (s *Server) handleRenderPreview(w http.ResponseWriter, r *http.Request) {
	var req previewRequest
	if !decodeJSON(w, r, s.cfg.MaxUploadBytes, &req) {
		return
	}
	if req.Filename == "" {
		req.Filename = "preview.md"
	}
	req.Filename = sanitizeFilename(req.Filename)
	if err := req.Validate(); err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	renderer := s.orchestrator.Renderer()
	render := renderer.Render
	if req.Strict {
		render = renderer.RenderStrict
	}
	res, err := render(r.Context(), req.Filename, []byte(req.Source))
	if err != nil {
		var se *tabs.StructureError
		if errors.As(err, &se) {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
				"error":  se.Error(),
				"marker": se.Marker,
				"reason": se.Reason,
			})
			return
		}
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// decodeJSON reads a size-limited JSON body into v, writing the error
// response itself when it fails.
func decodeJSON(w http.ResponseWriter, r *http.Request, limit int64, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			jsonError(w, fmt.Sprintf("body exceeds max size (%d bytes)", limit), http.StatusRequestEntityTooLarge)
			return false
		}
		jsonError(w, "invalid json: "+err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	writeJSON(w, code, map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." || name == "/" {
		name = "unnamed"
	}
	return name
}
