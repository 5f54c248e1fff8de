package api

import (
	"encoding/json"
	"net/http"

	"mangatan.com/yomitan/tasks"
	"mangatan.com/yomitan/worker"
)

// Request serves ad hoc lookups over HTTP, sharing the Searcher the RMQ worker
// uses. Meant for development and profile debugging, not for the reader path.
type Request struct {
	Search worker.Searcher
}

func (req *Request) ProcessLookup(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	logger := makeRequestLogger(r)

	if r.Method != http.MethodPost {
		logger.Err(nil).Int("status", http.StatusMethodNotAllowed).Msg("Only 'POST' method is allowed here")
		http.Error(w, "", http.StatusMethodNotAllowed)
		return
	}

	var request tasks.LookupRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		logger.Err(err).Int("status", http.StatusBadRequest).Msg("Could not decode request body")
		http.Error(w, "", http.StatusBadRequest)
		return
	}

	logger.Info().Str("language", request.Language).Msg("Starting lookup for request from API")
	entries, err := req.Search(r.Context(), request)
	if err != nil {
		logger.Err(err).Int("status", http.StatusInternalServerError).Msg("Lookup failed")
		http.Error(w, "", http.StatusInternalServerError)
		return
	}
	if err := json.NewEncoder(w).Encode(entries); err != nil {
		logger.Err(err).Msg("Failed to write response")
		return
	}
	logger.Info().Int("status", http.StatusOK).Msg("Finished processing request")
}
