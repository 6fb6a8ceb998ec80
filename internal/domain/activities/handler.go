package activities

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"pet-care-tracker/internal/domain/pets"
	"pet-care-tracker/internal/platform/web"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, petsSvc *pets.Service) {
	r.Route("/pets/{petID}/activities", func(ar chi.Router) {
		ar.Post("/start", startSessionHandler(svc, petsSvc))
		ar.Get("/", listSessionsHandler(svc, petsSvc))
		ar.Get("/stats", activityStatsHandler(svc, petsSvc))

		ar.Post("/{sessionID}/stop", stopSessionHandler(svc, petsSvc))
		ar.Delete("/{sessionID}", deleteSessionHandler(svc, petsSvc))
	})
}

type startSessionRequest struct {
	Kind      string `json:"kind"`
	StartedAt string `json:"started_at"` // RFC3339 opcional
	Notes     string `json:"notes"`
}

func startSessionHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, petID, ok := pets.RequireOwner(w, r, petsSvc)
		if !ok {
			return
		}

		var req startSessionRequest
		if !web.DecodeJSON(w, r, &req) {
			return
		}

		var startedAt time.Time
		if strings.TrimSpace(req.StartedAt) != "" {
			t, err := time.Parse(time.RFC3339, req.StartedAt)
			if err != nil {
				http.Error(w, "started_at must be RFC3339", http.StatusBadRequest)
				return
			}
			startedAt = t
		}

		sess, err := svc.Start(r.Context(), petID, StartInput{
			Kind:      Kind(strings.TrimSpace(req.Kind)),
			StartedAt: startedAt,
			Notes:     req.Notes,
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		web.WriteJSON(w, http.StatusCreated, sess)
	}
}

func stopSessionHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, petID, ok := pets.RequireOwner(w, r, petsSvc)
		if !ok {
			return
		}

		id := chi.URLParam(r, "sessionID")
		if !sessionBelongsToPet(w, r, svc, id, petID) {
			return
		}

		sess, err := svc.Stop(r.Context(), id)
		if err != nil {
			switch err {
			case ErrNotFound:
				http.Error(w, "activity session not found", http.StatusNotFound)
			case ErrBadState:
				http.Error(w, err.Error(), http.StatusConflict)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}
		web.WriteJSON(w, http.StatusOK, sess)
	}
}

func listSessionsHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, petID, ok := pets.RequireOwner(w, r, petsSvc)
		if !ok {
			return
		}

		limit := 100
		if v := r.URL.Query().Get("limit"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 500 {
				limit = n
			}
		}

		items, err := svc.ListByPet(r.Context(), petID, limit)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		if items == nil {
			items = []Session{}
		}
		web.WriteJSON(w, http.StatusOK, items)
	}
}

func activityStatsHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, petID, ok := pets.RequireOwner(w, r, petsSvc)
		if !ok {
			return
		}

		days := 7
		if v := r.URL.Query().Get("days"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 90 {
				days = n
			}
		}

		buckets, err := svc.DailyMinutes(r.Context(), petID, days)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		web.WriteJSON(w, http.StatusOK, buckets)
	}
}

func deleteSessionHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, petID, ok := pets.RequireOwner(w, r, petsSvc)
		if !ok {
			return
		}

		id := chi.URLParam(r, "sessionID")
		if !sessionBelongsToPet(w, r, svc, id, petID) {
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			http.Error(w, "activity session not found", http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func sessionBelongsToPet(w http.ResponseWriter, r *http.Request, svc *Service, id, petID string) bool {
	sess, err := svc.GetByID(r.Context(), id)
	if err != nil || sess.PetID != petID {
		http.Error(w, "activity session not found", http.StatusNotFound)
		return false
	}
	return true
}
