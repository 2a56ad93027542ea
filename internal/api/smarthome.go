package api

import (
	"encoding/json"
	"net/http"

	"github.com/nerrad567/gray-cloud-bridge/internal/smarthome"
)

// handleSmartHome implements the POST /smarthome fulfillment endpoint.
//
// Every well-formed request gets a 200: intent-level problems (including
// unsupported intents) are reported inside the payload, which is what the
// platform expects. Only an unparseable body is an HTTP error.
func (s *Server) handleSmartHome(w http.ResponseWriter, r *http.Request) {
	var req smarthome.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "malformed fulfillment request")
		return
	}

	resp := s.dispatcher.Dispatch(r.Context(), req)
	writeJSON(w, http.StatusOK, resp)
}
