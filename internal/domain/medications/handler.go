package medications

import (
	"net/http"
	"strings"
	"time"

	"pet-care-tracker/internal/domain/pets"
	"pet-care-tracker/internal/platform/web"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, petsSvc *pets.Service) {
	r.Route("/pets/{petID}/medications", func(mr chi.Router) {
		mr.Post("/", createMedicationHandler(svc, petsSvc))
		mr.Get("/", listMedicationsHandler(svc, petsSvc))

		mr.Post("/{medicationID}/complete", finalizeMedicationHandler(svc, petsSvc, StatusCompleted))
		mr.Post("/{medicationID}/discontinue", finalizeMedicationHandler(svc, petsSvc, StatusDiscontinued))
		mr.Delete("/{medicationID}", deleteMedicationHandler(svc, petsSvc))
	})
}

type createMedicationRequest struct {
	Name      string `json:"name"`
	Dosage    string `json:"dosage"`
	Frequency string `json:"frequency"`
	StartDate string `json:"start_date"` // RFC3339 opcional
	Notes     string `json:"notes"`
}

func createMedicationHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, petID, ok := pets.RequireOwner(w, r, petsSvc)
		if !ok {
			return
		}

		var req createMedicationRequest
		if !web.DecodeJSON(w, r, &req) {
			return
		}

		var start time.Time
		if strings.TrimSpace(req.StartDate) != "" {
			t, err := time.Parse(time.RFC3339, req.StartDate)
			if err != nil {
				http.Error(w, "start_date must be RFC3339", http.StatusBadRequest)
				return
			}
			start = t
		}

		m, err := svc.Create(r.Context(), petID, CreateInput{
			Name:      req.Name,
			Dosage:    req.Dosage,
			Frequency: req.Frequency,
			StartDate: start,
			Notes:     req.Notes,
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		web.WriteJSON(w, http.StatusCreated, m)
	}
}

func listMedicationsHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, petID, ok := pets.RequireOwner(w, r, petsSvc)
		if !ok {
			return
		}

		onlyActive := r.URL.Query().Get("active") == "true"

		items, err := svc.ListByPet(r.Context(), petID, onlyActive)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		if items == nil {
			items = []Medication{}
		}
		web.WriteJSON(w, http.StatusOK, items)
	}
}

func finalizeMedicationHandler(svc *Service, petsSvc *pets.Service, target Status) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, petID, ok := pets.RequireOwner(w, r, petsSvc)
		if !ok {
			return
		}

		id := chi.URLParam(r, "medicationID")
		if !medicationBelongsToPet(w, r, svc, id, petID) {
			return
		}

		var (
			m   Medication
			err error
		)
		switch target {
		case StatusDiscontinued:
			m, err = svc.MarkDiscontinued(r.Context(), id)
		default:
			m, err = svc.MarkCompleted(r.Context(), id)
		}
		if err != nil {
			switch err {
			case ErrNotFound:
				http.Error(w, "medication not found", http.StatusNotFound)
			case ErrBadState:
				http.Error(w, err.Error(), http.StatusConflict)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}
		web.WriteJSON(w, http.StatusOK, m)
	}
}

func deleteMedicationHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, petID, ok := pets.RequireOwner(w, r, petsSvc)
		if !ok {
			return
		}

		id := chi.URLParam(r, "medicationID")
		if !medicationBelongsToPet(w, r, svc, id, petID) {
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			http.Error(w, "medication not found", http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func medicationBelongsToPet(w http.ResponseWriter, r *http.Request, svc *Service, id, petID string) bool {
	m, err := svc.GetByID(r.Context(), id)
	if err != nil || m.PetID != petID {
		http.Error(w, "medication not found", http.StatusNotFound)
		return false
	}
	return true
}
