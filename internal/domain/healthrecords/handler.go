package healthrecords

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"pet-care-tracker/internal/domain/pets"
	"pet-care-tracker/internal/platform/web"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, petsSvc *pets.Service) {
	r.Route("/pets/{petID}/health-records", func(hr chi.Router) {
		hr.Post("/", createRecordHandler(svc, petsSvc))
		hr.Get("/", listRecordsHandler(svc, petsSvc))
		hr.Delete("/{recordID}", deleteRecordHandler(svc, petsSvc))
	})

	r.Get("/pets/{petID}/weight-history", weightHistoryHandler(svc, petsSvc))
}

type createRecordRequest struct {
	Type       string  `json:"type"`
	Title      string  `json:"title"`
	Details    string  `json:"details"`
	OccurredAt string  `json:"occurred_at"` // RFC3339 opcional
	Value      float64 `json:"value"`
	Unit       string  `json:"unit"`
}

func createRecordHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, petID, ok := pets.RequireOwner(w, r, petsSvc)
		if !ok {
			return
		}

		var req createRecordRequest
		if !web.DecodeJSON(w, r, &req) {
			return
		}

		var occurredAt time.Time
		if strings.TrimSpace(req.OccurredAt) != "" {
			t, err := time.Parse(time.RFC3339, req.OccurredAt)
			if err != nil {
				http.Error(w, "occurred_at must be RFC3339", http.StatusBadRequest)
				return
			}
			occurredAt = t
		}

		rec, err := svc.Create(r.Context(), petID, CreateInput{
			Type:       RecordType(strings.ToUpper(strings.TrimSpace(req.Type))),
			Title:      req.Title,
			Details:    req.Details,
			OccurredAt: occurredAt,
			Value:      req.Value,
			Unit:       req.Unit,
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		web.WriteJSON(w, http.StatusCreated, rec)
	}
}

func listRecordsHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, petID, ok := pets.RequireOwner(w, r, petsSvc)
		if !ok {
			return
		}

		filter, err := parseListFilter(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		items, err := svc.ListByPet(r.Context(), petID, filter)
		if err != nil {
			if err == ErrInvalidInput {
				http.Error(w, "unknown record type", http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		if items == nil {
			items = []Record{}
		}
		web.WriteJSON(w, http.StatusOK, items)
	}
}

func weightHistoryHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, petID, ok := pets.RequireOwner(w, r, petsSvc)
		if !ok {
			return
		}

		h, err := svc.WeightHistory(r.Context(), petID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		if h.Points == nil {
			h.Points = []WeightPoint{}
		}
		web.WriteJSON(w, http.StatusOK, h)
	}
}

func deleteRecordHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, petID, ok := pets.RequireOwner(w, r, petsSvc)
		if !ok {
			return
		}

		recordID := chi.URLParam(r, "recordID")
		rec, err := svc.GetByID(r.Context(), recordID)
		if err != nil || rec.PetID != petID {
			http.Error(w, "health record not found", http.StatusNotFound)
			return
		}

		if err := svc.Delete(r.Context(), recordID); err != nil {
			http.Error(w, "health record not found", http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func parseListFilter(r *http.Request) (ListFilter, error) {
	limit := 100
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}

	filter := ListFilter{
		Query: strings.TrimSpace(r.URL.Query().Get("q")),
		Limit: limit,
	}

	if v := strings.TrimSpace(r.URL.Query().Get("types")); v != "" {
		for _, raw := range strings.Split(v, ",") {
			t := RecordType(strings.ToUpper(strings.TrimSpace(raw)))
			if t != "" {
				filter.Types = append(filter.Types, t)
			}
		}
	}

	if v := strings.TrimSpace(r.URL.Query().Get("from")); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return ListFilter{}, errors.New("from must be RFC3339")
		}
		filter.From = &t
	}
	if v := strings.TrimSpace(r.URL.Query().Get("to")); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return ListFilter{}, errors.New("to must be RFC3339")
		}
		filter.To = &t
	}

	return filter, nil
}
