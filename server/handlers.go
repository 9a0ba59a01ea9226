package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/etnz/fxql"
	"github.com/etnz/fxql/logging"
	"github.com/etnz/fxql/store"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// Response codes of the envelope.
const (
	CodeOK         = "FXQL-200"
	CodeBadRequest = "FXQL-400"
	CodeNotFound   = "FXQL-404"
	CodeTooLarge   = "FXQL-413"
	CodeInternal   = "FXQL-500"
)

// BatchHeader carries the id of the batch recorded for a request.
const BatchHeader = "X-FXQL-Batch"

// response is the envelope of every fxql-statements answer.
type response struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Code    string `json:"code"`
}

// parseRequest is the body of POST /fxql-statements.
type parseRequest struct {
	FXQL string `json:"FXQL"`
}

// handleParse parses the FXQL statements of the request body.
func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	logger := logging.FromContext(r.Context())
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Parser.MaxBodyBytes)

	var req parseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, response{Message: "Request body is too large", Code: CodeTooLarge})
			return
		}
		writeJSON(w, http.StatusBadRequest, response{Message: "Invalid request body", Code: CodeBadRequest})
		return
	}

	entries, err := fxql.ParseStatements(req.FXQL)
	var perr *fxql.ParseError
	switch {
	case errors.Is(err, fxql.ErrEmptyStatement):
		writeJSON(w, http.StatusBadRequest, response{Message: "FXQL is required", Code: CodeBadRequest})
		return
	case errors.As(err, &perr):
		logger.Debug("fxql rejected", "error", perr.Message, "line", perr.Line, "column", perr.Column)
		writeJSON(w, http.StatusBadRequest, response{Message: "FXQL Parsing Error", Data: perr, Code: CodeBadRequest})
		return
	case err != nil:
		logger.Error("fxql parse failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, response{Message: "Internal error", Code: CodeInternal})
		return
	}

	if err := fxql.CheckLimit(entries, s.cfg.Parser.MaxEntries); err != nil {
		writeJSON(w, http.StatusBadRequest, response{Message: err.Error(), Code: CodeBadRequest})
		return
	}
	if entries == nil {
		entries = []fxql.Entry{}
	}

	batch, err := s.store.Save(r.Context(), entries)
	if err != nil {
		logger.Error("failed to record entries", "error", err, "entries", len(entries))
		writeJSON(w, http.StatusInternalServerError, response{Message: "Failed to record FXQL statements", Code: CodeInternal})
		return
	}
	logger.Info("fxql parsed", "batch", batch.ID, "entries", len(entries))

	w.Header().Set(BatchHeader, batch.ID.String())
	writeJSON(w, http.StatusOK, response{
		Message: "FXQL Statement Parsed Successfully.",
		Data:    entries,
		Code:    CodeOK,
	})
}

// handleBatch returns the entries recorded for a previous request.
func (s *Server) handleBatch(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "batchID"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, response{Message: "Invalid batch id", Code: CodeBadRequest})
		return
	}

	batch, err := s.store.Load(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, response{Message: "FXQL batch not found", Code: CodeNotFound})
		return
	}
	if err != nil {
		logging.FromContext(r.Context()).Error("failed to load batch", "batch", id, "error", err)
		writeJSON(w, http.StatusInternalServerError, response{Message: "Failed to load FXQL statements", Code: CodeInternal})
		return
	}

	entries := batch.Entries
	if entries == nil {
		entries = []fxql.Entry{}
	}
	w.Header().Set(BatchHeader, batch.ID.String())
	writeJSON(w, http.StatusOK, response{
		Message: "FXQL Statements Retrieved Successfully.",
		Data:    entries,
		Code:    CodeOK,
	})
}

// writeJSON writes v as the JSON body of a response with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("failed to write response", "error", err)
	}
}
