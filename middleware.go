package main

import (
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// withRequestLog tags each request with a short ID and logs method,
// path, and latency once the handler returns.
func withRequestLog(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()[:8]
		start := time.Now()
		next(w, r)
		log.Printf("[%s] %s %s (%s)", id, r.Method, r.URL.Path, time.Since(start).Round(time.Millisecond))
	}
}
