package server

import (
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/dtnitsch/wordcount/pkg/db"
	"github.com/go-chi/chi/v5"
)

const maxBodyBytes = 1 << 20

// decodeInput validates a word_counter request. It returns received_input,
// or a non-empty problem message for the client.
func decodeInput(r *http.Request) (string, string) {
	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		return "", "No Content-Type provided."
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil || mediaType != "application/json" {
		return "", "Content-Type not supported."
	}

	var body map[string]json.RawMessage
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&body); err != nil {
		return "", "Invalid JSON data."
	}
	raw, ok := body["received_input"]
	if !ok || len(body) != 1 {
		return "", "The request contains unexpected keys"
	}
	var input string
	if err := json.Unmarshal(raw, &input); err != nil {
		return "", "The received input type must to be a string"
	}
	if input == "" {
		return "", "The request contains unexpected keys"
	}
	return input, ""
}

// POST /word_counter
func (s *Server) handleWordCounter(w http.ResponseWriter, r *http.Request) {
	input, problem := decodeInput(r)
	if problem != "" {
		s.logger.Error("The request validation failed", "error", problem)
		writeError(w, http.StatusBadRequest, problem)
		return
	}

	result, err := s.svc.Ingest(r.Context(), input)
	if err != nil {
		code := statusFor(err)
		s.logger.Error("Failed to count words", "error", err, "status", code)
		writeError(w, code, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, result)
}

type wordStatistics struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// GET /word_statistics/{word}
func (s *Server) handleWordStatistics(w http.ResponseWriter, r *http.Request) {
	word := chi.URLParam(r, "word")
	count, err := s.svc.Query(r.Context(), word)
	if err != nil {
		code := statusFor(err)
		s.logger.Error("Failed to get word statistics", "word", word, "error", err, "status", code)
		writeError(w, code, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, wordStatistics{Word: word, Count: count})
}

// GET /ingestions?limit=N
func (s *Server) handleIngestions(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	rows, err := s.svc.Ingestions(r.Context(), limit)
	if err != nil {
		s.logger.Error("Failed to list ingestions", "error", err)
		writeError(w, statusFor(err), err.Error())
		return
	}
	if rows == nil {
		rows = []db.Ingestion{}
	}
	writeJSON(w, http.StatusOK, rows)
}
