package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"aitekka-quiz/internal/app"
	"aitekka-quiz/internal/domain"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
)

// NewRouter wires the HTTP endpoints: health, bank summaries and the
// websocket play endpoint.
func NewRouter(service *app.QuizService, ws *WSHandler, log logrus.FieldLogger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/api/banks/{bankID}", bankSummaryHandler(service, log))
	r.Get("/ws", ws.ServeWS)
	return r
}

func bankSummaryHandler(service *app.QuizService, log logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bankID := chi.URLParam(r, "bankID")
		summary, err := service.Bank(r.Context(), bankID)
		switch {
		case errors.Is(err, domain.ErrBankNotFound):
			http.Error(w, "bank not found", http.StatusNotFound)
			return
		case err != nil:
			log.WithError(err).WithField("bank_id", bankID).Error("load bank summary")
			http.Error(w, "failed to load bank", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(summary); err != nil {
			log.WithError(err).Warn("write bank summary")
		}
	}
}
