package api

import (
	"net/http"
	"strconv"

	"github.com/dgallion1/edigest/internal/interchange"
	"github.com/dgallion1/edigest/internal/store"
	"github.com/go-chi/chi/v5"
)

func (s *Server) handleListFiles(w http.ResponseWriter, r *http.Request) {
	files, err := s.store.ListFiles(r.Context())
	if err != nil {
		s.log.Error("list files", "error", err)
		jsonError(w, "storage error", http.StatusInternalServerError)
		return
	}
	if files == nil {
		files = []store.FileRecord{}
	}
	count, err := s.store.FileCount(r.Context())
	if err != nil {
		s.log.Error("count files", "error", err)
		jsonError(w, "storage error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"files": files, "count": count})
}

func (s *Server) handleGetFile(w http.ResponseWriter, r *http.Request) {
	fileID, ok := s.fileID(w, r)
	if !ok {
		return
	}
	export, err := s.store.ExportFile(r.Context(), fileID)
	if err != nil {
		s.log.Error("export file", "file_id", fileID, "error", err)
		jsonError(w, "storage error", http.StatusInternalServerError)
		return
	}
	if export == nil {
		jsonError(w, "file not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, export)
}

func (s *Server) handleFileFields(w http.ResponseWriter, r *http.Request) {
	fileID, ok := s.fileID(w, r)
	if !ok {
		return
	}
	fields, err := s.store.FieldsByFile(r.Context(), fileID)
	if err != nil {
		s.log.Error("list fields", "file_id", fileID, "error", err)
		jsonError(w, "storage error", http.StatusInternalServerError)
		return
	}
	if fields == nil {
		fields = []interchange.FieldRecord{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"fields": fields})
}

func (s *Server) handleFileIssues(w http.ResponseWriter, r *http.Request) {
	fileID, ok := s.fileID(w, r)
	if !ok {
		return
	}
	issues, err := s.store.IssuesByFile(r.Context(), fileID)
	if err != nil {
		s.log.Error("list issues", "file_id", fileID, "error", err)
		jsonError(w, "storage error", http.StatusInternalServerError)
		return
	}
	if issues == nil {
		issues = []interchange.ValidationIssue{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"issues": issues})
}

func (s *Server) fileID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "fileID"), 10, 64)
	if err != nil {
		jsonError(w, "invalid file id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}
