package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/filmstash/filmstash/internal/logging"
	"github.com/filmstash/filmstash/internal/resolver"
)

type uploadRequest struct {
	FileID   string `json:"file_id"`
	FileName string `json:"file_name"`
	// Title overrides extraction when set (manual catalog placement).
	Title string `json:"title,omitempty"`
}

type uploadResponse struct {
	Title string `json:"title"`
}

type searchResponse struct {
	Files []searchFile `json:"files"`
}

type searchFile struct {
	FileID   string `json:"file_id"`
	FileName string `json:"file_name"`
}

type deleteRequest struct {
	Query string `json:"query"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	var req uploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.FileID == "" || req.FileName == "" {
		writeError(w, http.StatusBadRequest, "file_id and file_name are required")
		return
	}

	var title string
	var err error
	if req.Title != "" {
		title, err = s.resolver.AddWithTitle(req.Title, req.FileName, req.FileID)
	} else {
		title, err = s.resolver.OnFileUploaded(req.FileName, req.FileID)
	}
	if err != nil {
		s.log.Error("api", "upload failed", err, logging.F("file_id", req.FileID))
		writeError(w, http.StatusInternalServerError, "catalog update failed")
		return
	}

	writeJSON(w, http.StatusOK, uploadResponse{Title: title})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		writeError(w, http.StatusBadRequest, "missing query parameter q")
		return
	}

	files, err := s.resolver.OnSearchQuery(query)
	if errors.Is(err, resolver.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	if err != nil {
		s.log.Error("api", "search failed", err, logging.F("query", query))
		writeError(w, http.StatusInternalServerError, "search failed")
		return
	}

	resp := searchResponse{Files: make([]searchFile, len(files))}
	for i, f := range files {
		resp.Files[i] = searchFile{FileID: f.FileID, FileName: f.FileName}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	var req deleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Query == "" {
		writeError(w, http.StatusBadRequest, "query is required")
		return
	}

	result, err := s.resolver.OnDeleteQuery(req.Query)
	if err != nil {
		s.log.Error("api", "delete failed", err, logging.F("query", req.Query))
		writeError(w, http.StatusInternalServerError, "delete failed")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
