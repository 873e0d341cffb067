package handler

import (
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
)

// Health reports liveness.
func Health(w http.ResponseWriter, r *http.Request) {
	_ = r
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy","service":"tradesim","timestamp":"` + time.Now().Format(time.RFC3339) + `"}`))
}

// Ready reports readiness: the snapshot store must be reachable.
func Ready(client *redis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := client.Ping(r.Context()).Err(); err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status":"not ready","reason":"snapshot store unavailable"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ready","service":"tradesim"}`))
	}
}
