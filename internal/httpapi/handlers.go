package httpapi

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/jd3600/sonar/internal/template"
	"github.com/jd3600/sonar/internal/types"
)

const maxExtractBody = 4 << 20

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleData(w http.ResponseWriter, r *http.Request) {
	entries, err := s.deps.Journal.Entries()
	if err != nil {
		s.logger.Error(r.Context(), "Failed to read journal: %v", err)
		writeError(w, http.StatusInternalServerError, "journal unavailable")
		return
	}
	if entries == nil {
		entries = []types.JournalEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleRecords(w http.ResponseWriter, r *http.Request) {
	var kind types.MediaKind
	if q := r.URL.Query().Get("type"); q != "" {
		k, err := types.ParseMediaKind(q)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		kind = k
	}

	recs, err := s.deps.Records.Load()
	if err != nil {
		s.logger.Error(r.Context(), "Failed to load collection: %v", err)
		writeError(w, http.StatusInternalServerError, "collection unavailable")
		return
	}

	out := make([]types.Record, 0, len(recs))
	for _, rec := range recs {
		if kind == "" || rec.MediaKind == kind {
			out = append(out, rec)
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	status, err := s.deps.Collector.Status(r.Context())
	if err != nil {
		s.logger.Error(r.Context(), "Failed to list pending records: %v", err)
		writeError(w, http.StatusInternalServerError, "status unavailable")
		return
	}
	writeJSON(w, http.StatusOK, status)
}

func (s *Server) handleCollect(w http.ResponseWriter, r *http.Request) {
	res, err := s.deps.Collector.Collect(r.Context())
	if err != nil {
		s.logger.Error(r.Context(), "Collect failed: %v", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, res)
}

type extractRequest struct {
	Type     string `json:"type"`
	Filename string `json:"filename"`
	Text     string `json:"text"`
	Duration int    `json:"duration"`
}

// handleExtract runs extraction on pasted analysis text. Nothing is persisted.
func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	var req extractRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxExtractBody)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	kind, err := types.ParseMediaKind(req.Type)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	a, ok := s.deps.Assemblers[kind]
	if !ok {
		writeError(w, http.StatusBadRequest, "pipeline disabled: "+string(kind))
		return
	}

	rec := a.Build(template.Input{Filename: req.Filename, Text: req.Text, DurationSeconds: req.Duration})
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleSpeakers(w http.ResponseWriter, r *http.Request) {
	if s.deps.Archive == nil {
		writeError(w, http.StatusServiceUnavailable, "archive disabled")
		return
	}

	q := r.URL.Query()
	if name := q.Get("name"); name != "" {
		apps, err := s.deps.Archive.Appearances(r.Context(), name)
		if err != nil {
			s.logger.Error(r.Context(), "Failed to query appearances: %v", err)
			writeError(w, http.StatusInternalServerError, "archive query failed")
			return
		}
		writeJSON(w, http.StatusOK, apps)
		return
	}

	var kind types.MediaKind
	if t := q.Get("type"); t != "" {
		k, err := types.ParseMediaKind(t)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		kind = k
	}
	stats, err := s.deps.Archive.AffiliationStats(r.Context(), kind)
	if err != nil {
		s.logger.Error(r.Context(), "Failed to query affiliation stats: %v", err)
		writeError(w, http.StatusInternalServerError, "archive query failed")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
