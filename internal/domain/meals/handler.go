package meals

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
	r.Route("/pets/{petID}/meals", func(mr chi.Router) {
		mr.Post("/", createMealHandler(svc, petsSvc))
		mr.Get("/", listMealsHandler(svc, petsSvc))
		mr.Get("/stats", mealStatsHandler(svc, petsSvc))
		mr.Delete("/{mealID}", deleteMealHandler(svc, petsSvc))
	})
}

type createMealRequest struct {
	FoodItemID  string  `json:"food_item_id"`
	FedAt       string  `json:"fed_at"` // RFC3339; vacío = ahora
	AmountGrams float64 `json:"amount_grams"`
	Calories    float64 `json:"calories"`
	Notes       string  `json:"notes"`
}

type mealResponse struct {
	ID          string    `json:"id"`
	PetID       string    `json:"pet_id"`
	FoodItemID  string    `json:"food_item_id,omitempty"`
	FedAt       time.Time `json:"fed_at"`
	AmountGrams float64   `json:"amount_grams"`
	Calories    float64   `json:"calories"`
	Notes       string    `json:"notes"`
	CreatedAt   time.Time `json:"created_at"`
}

func createMealHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, petID, ok := pets.RequireOwner(w, r, petsSvc)
		if !ok {
			return
		}

		var req createMealRequest
		if !web.DecodeJSON(w, r, &req) {
			return
		}

		var fedAt time.Time
		if strings.TrimSpace(req.FedAt) != "" {
			t, err := time.Parse(time.RFC3339, req.FedAt)
			if err != nil {
				http.Error(w, "fed_at must be RFC3339", http.StatusBadRequest)
				return
			}
			fedAt = t
		}

		m, err := svc.Create(r.Context(), petID, CreateInput{
			FoodItemID:  req.FoodItemID,
			FedAt:       fedAt,
			AmountGrams: req.AmountGrams,
			Calories:    req.Calories,
			Notes:       req.Notes,
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		web.WriteJSON(w, http.StatusCreated, toMealResponse(m))
	}
}

func listMealsHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
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
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]mealResponse, 0, len(items))
		for _, m := range items {
			out = append(out, toMealResponse(m))
		}
		web.WriteJSON(w, http.StatusOK, out)
	}
}

func mealStatsHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
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

		totals, err := svc.DailyTotals(r.Context(), petID, days)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		web.WriteJSON(w, http.StatusOK, totals)
	}
}

func deleteMealHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, petID, ok := pets.RequireOwner(w, r, petsSvc)
		if !ok {
			return
		}

		mealID := chi.URLParam(r, "mealID")
		m, err := svc.GetByID(r.Context(), mealID)
		if err != nil || m.PetID != petID {
			http.Error(w, "meal not found", http.StatusNotFound)
			return
		}

		if err := svc.Delete(r.Context(), mealID); err != nil {
			http.Error(w, "meal not found", http.StatusNotFound)
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

	filter := ListFilter{Limit: limit}

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

func toMealResponse(m Meal) mealResponse {
	return mealResponse{
		ID:          m.ID,
		PetID:       m.PetID,
		FoodItemID:  m.FoodItemID,
		FedAt:       m.FedAt,
		AmountGrams: m.AmountGrams,
		Calories:    m.Calories,
		Notes:       m.Notes,
		CreatedAt:   m.CreatedAt,
	}
}
