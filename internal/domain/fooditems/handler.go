package fooditems

import (
	"net/http"
	"strings"

	"pet-care-tracker/internal/middleware"
	"pet-care-tracker/internal/platform/web"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/food-items", func(fr chi.Router) {
		fr.Post("/", createFoodItemHandler(svc))
		fr.Get("/", listFoodItemsHandler(svc))

		fr.Get("/{foodItemID}", getFoodItemHandler(svc))
		fr.Patch("/{foodItemID}", updateFoodItemHandler(svc))
		fr.Delete("/{foodItemID}", deleteFoodItemHandler(svc))
	})
}

type createFoodItemRequest struct {
	Name        string  `json:"name"`
	Brand       string  `json:"brand"`
	Kind        string  `json:"kind"`
	KcalPer100g float64 `json:"kcal_per_100g"`
	Notes       string  `json:"notes"`
}

type updateFoodItemRequest struct {
	Name        *string  `json:"name"`
	Brand       *string  `json:"brand"`
	Kind        *string  `json:"kind"`
	KcalPer100g *float64 `json:"kcal_per_100g"`
	Notes       *string  `json:"notes"`
}

func requireUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok || strings.TrimSpace(claims.UserID) == "" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return "", false
	}
	return claims.UserID, true
}

func createFoodItemHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireUser(w, r)
		if !ok {
			return
		}

		var req createFoodItemRequest
		if !web.DecodeJSON(w, r, &req) {
			return
		}

		f, err := svc.Create(r.Context(), userID, CreateInput{
			Name:        req.Name,
			Brand:       req.Brand,
			Kind:        Kind(strings.TrimSpace(req.Kind)),
			KcalPer100g: req.KcalPer100g,
			Notes:       req.Notes,
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		web.WriteJSON(w, http.StatusCreated, f)
	}
}

func listFoodItemsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireUser(w, r)
		if !ok {
			return
		}

		items, err := svc.ListByOwner(r.Context(), userID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		if items == nil {
			items = []FoodItem{}
		}
		web.WriteJSON(w, http.StatusOK, items)
	}
}

func getFoodItemHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireUser(w, r)
		if !ok {
			return
		}

		f, err := svc.GetByID(r.Context(), chi.URLParam(r, "foodItemID"), userID)
		if err != nil {
			writeFoodItemError(w, err)
			return
		}
		web.WriteJSON(w, http.StatusOK, f)
	}
}

func updateFoodItemHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireUser(w, r)
		if !ok {
			return
		}

		var req updateFoodItemRequest
		if !web.DecodeJSON(w, r, &req) {
			return
		}

		var kind *Kind
		if req.Kind != nil {
			k := Kind(strings.TrimSpace(*req.Kind))
			kind = &k
		}

		f, err := svc.Update(r.Context(), chi.URLParam(r, "foodItemID"), userID, UpdateInput{
			Name:        req.Name,
			Brand:       req.Brand,
			Kind:        kind,
			KcalPer100g: req.KcalPer100g,
			Notes:       req.Notes,
		})
		if err != nil {
			writeFoodItemError(w, err)
			return
		}
		web.WriteJSON(w, http.StatusOK, f)
	}
}

func deleteFoodItemHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireUser(w, r)
		if !ok {
			return
		}

		if err := svc.Delete(r.Context(), chi.URLParam(r, "foodItemID"), userID); err != nil {
			writeFoodItemError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func writeFoodItemError(w http.ResponseWriter, err error) {
	switch err {
	case ErrInvalidInput:
		http.Error(w, err.Error(), http.StatusBadRequest)
	case ErrForbidden:
		http.Error(w, "forbidden", http.StatusForbidden)
	case ErrNotFound:
		http.Error(w, "food item not found", http.StatusNotFound)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
