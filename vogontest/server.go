// Package vogontest provides a scriptable in-memory double of the Vogon
// query service for tests and local development. The server speaks the
// four job endpoints and replays a configured status sequence, so callers
// can exercise the full submit/poll/fetch/cancel lifecycle without a real
// deployment.
package vogontest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// Options scripts the server's behaviour for one test scenario.
type Options struct {
	// AuthToken, when set, must match the vogon-auth-token request header.
	AuthToken string

	// SubmitStatus overrides the submission acknowledgment status.
	// Defaults to "SUBMITTED".
	SubmitStatus string

	// StatusSequence is replayed across progress calls; the last entry
	// repeats once the sequence is exhausted. Defaults to ["SUCCEEDED"].
	StatusSequence []string

	// Rows and Columns form the result payload for a succeeded job.
	Rows    [][]interface{}
	Columns []string

	// ErrorMessage is served in the progress endpoint's error field.
	ErrorMessage string

	// FailProgressTicks lists 1-based progress calls that answer HTTP 500.
	FailProgressTicks []int
}

// Server is a fake Vogon deployment backed by httptest.
type Server struct {
	srv  *httptest.Server
	opts Options

	mu            sync.Mutex
	jobID         string
	lastSQL       string
	lastStart     int
	lastTotal     int
	submitCalls   int
	progressCalls int
	resultCalls   int
	cancelCalls   int
}

// NewServer starts a fake service with the given script. Callers must
// Close it when done.
func NewServer(opts Options) *Server {
	if opts.SubmitStatus == "" {
		opts.SubmitStatus = "SUBMITTED"
	}
	if len(opts.StatusSequence) == 0 {
		opts.StatusSequence = []string{"SUCCEEDED"}
	}

	s := &Server{opts: opts}

	r := chi.NewRouter()
	r.Post("/api/spark/sql", s.handleSubmit)
	r.Get("/api/spark/progress", s.handleProgress)
	r.Get("/api/spark/result/v2", s.handleResult)
	r.Get("/api/spark/cancel", s.handleCancel)

	s.srv = httptest.NewServer(r)
	return s
}

// URL returns the server's base URL.
func (s *Server) URL() string { return s.srv.URL }

// Close shuts the server down.
func (s *Server) Close() { s.srv.Close() }

// SubmitCalls returns how many submissions the server received.
func (s *Server) SubmitCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submitCalls
}

// ProgressCalls returns how many status checks the server received.
func (s *Server) ProgressCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.progressCalls
}

// ResultCalls returns how many result fetches the server received.
func (s *Server) ResultCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resultCalls
}

// CancelCalls returns how many cancellation requests the server received.
func (s *Server) CancelCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cancelCalls
}

// LastSQL returns the most recently submitted query text.
func (s *Server) LastSQL() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSQL
}

// LastResultWindow returns the start and total of the last result fetch.
func (s *Server) LastResultWindow() (start, total int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastStart, s.lastTotal
}

func (s *Server) authorized(r *http.Request) bool {
	return s.opts.AuthToken == "" || r.Header.Get("vogon-auth-token") == s.opts.AuthToken
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	if !s.authorized(r) {
		http.Error(w, "invalid auth token", http.StatusUnauthorized)
		return
	}

	var body struct {
		SQL string `json:"sql"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid submission body", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	s.submitCalls++
	s.lastSQL = body.SQL
	s.jobID = uuid.NewString()
	jobID := s.jobID
	s.mu.Unlock()

	writeJSON(w, map[string]string{"status": s.opts.SubmitStatus, "id": jobID})
}

func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	if !s.authorized(r) {
		http.Error(w, "invalid auth token", http.StatusUnauthorized)
		return
	}

	s.mu.Lock()
	s.progressCalls++
	tick := s.progressCalls
	s.mu.Unlock()

	for _, failTick := range s.opts.FailProgressTicks {
		if tick == failTick {
			http.Error(w, "progress endpoint unavailable", http.StatusInternalServerError)
			return
		}
	}

	idx := tick - 1
	if idx >= len(s.opts.StatusSequence) {
		idx = len(s.opts.StatusSequence) - 1
	}
	writeJSON(w, map[string]string{
		"status": s.opts.StatusSequence[idx],
		"error":  s.opts.ErrorMessage,
	})
}

func (s *Server) handleResult(w http.ResponseWriter, r *http.Request) {
	if !s.authorized(r) {
		http.Error(w, "invalid auth token", http.StatusUnauthorized)
		return
	}

	start, _ := strconv.Atoi(r.URL.Query().Get("start"))
	total, _ := strconv.Atoi(r.URL.Query().Get("total"))

	s.mu.Lock()
	s.resultCalls++
	s.lastStart = start
	s.lastTotal = total
	s.mu.Unlock()

	rows := s.opts.Rows
	if start > len(rows) {
		start = len(rows)
	}
	end := start + total
	if total <= 0 || end > len(rows) {
		end = len(rows)
	}

	writeJSON(w, map[string]interface{}{
		"rows":    rows[start:end],
		"columns": s.opts.Columns,
	})
}

func (s *Server) handleCancel(w http.ResponseWriter, r *http.Request) {
	if !s.authorized(r) {
		http.Error(w, "invalid auth token", http.StatusUnauthorized)
		return
	}

	s.mu.Lock()
	s.cancelCalls++
	s.mu.Unlock()

	writeJSON(w, map[string]string{"status": "CANCELLED"})
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
