package main

import (
	"encoding/json"
	"net/http"
	"time"
)

// metricsAPIHandler is the JSON twin of the upload route: same
// validation, same engine, machine-readable report.
func (s *server) metricsAPIHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		json.NewEncoder(w).Encode(APIResponse{Success: false, Error: "Method not allowed"})
		return
	}
	result, uerr := s.processUpload(w, r)
	if uerr != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(APIResponse{Success: false, Error: uerr.Message()})
		return
	}
	json.NewEncoder(w).Encode(APIResponse{Success: true, Data: result.Report})
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"version":   "1.0.0",
	})
}
