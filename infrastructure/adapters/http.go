package adapters

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rayafarhadi/text-marketing-app/core"
	"github.com/rayafarhadi/text-marketing-app/infrastructure/types"
)

const maxBodyBytes = 10 << 20

// NewHTTPHandler routes POST /send-sms to the sender and answers GET /ping.
func NewHTTPHandler(sender *Sender) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(corsHeaders)

	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"message": "pong"}, sender.Logger)
	})
	r.Options("/send-sms", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Post("/send-sms", func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
		if err != nil {
			writeJSON(w, http.StatusBadRequest, types.ErrorResponse{Error: "invalid request body: " + err.Error()}, sender.Logger)
			return
		}
		status, response, err := sender.Send(r.Context(), body)
		if err != nil {
			sender.Logger.Error("error on send-sms status=%d: %v", status, err)
		}
		writeJSON(w, status, response, sender.Logger)
	})
	return r
}

func corsHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for key, value := range CORSHeaders() {
			w.Header().Set(key, value)
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, response any, logger core.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.Error("error encoding response status=%d: %v", status, err)
	}
}
