package tasks

import (
	"net/http"
	"strings"
	"time"

	"pet-care-tracker/internal/domain/pets"
	"pet-care-tracker/internal/platform/web"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, petsSvc *pets.Service) {
	r.Route("/pets/{petID}/tasks", func(tr chi.Router) {
		tr.Post("/", createTaskHandler(svc, petsSvc))
		tr.Get("/", listTasksHandler(svc, petsSvc))
		tr.Get("/overdue", listOverdueHandler(svc, petsSvc))

		tr.Post("/{taskID}/complete", completeTaskHandler(svc, petsSvc))
		tr.Delete("/{taskID}", deleteTaskHandler(svc, petsSvc))
	})
}

type createTaskRequest struct {
	Title string `json:"title"`
	Kind  Kind   `json:"kind" enums:"feeding,walk,medication,grooming,vet,other"`
	DueAt string `json:"due_at"` // RFC3339
	Notes string `json:"notes"`
}

type taskResponse struct {
	ID          string     `json:"id"`
	PetID       string     `json:"pet_id"`
	Title       string     `json:"title"`
	Kind        Kind       `json:"kind"`
	Notes       string     `json:"notes"`
	DueAt       time.Time  `json:"due_at"`
	Status      Status     `json:"status"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// createTaskHandler godoc
// @Summary Crear tarea de cuidado
// @Description Crea una tarea (alimentar, paseo, vet, etc.) para la mascota indicada. Solo el dueño. Autenticación: `X-Debug-User-ID` (dev) o `Authorization: Bearer <token>`.
// @Tags tasks
// @Accept json
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Param payload body createTaskRequest true "Datos de la tarea; due_at en RFC3339"
// @Success 201 {object} taskResponse
// @Failure 400 {string} string "invalid json / due_at inválido"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "pet not found"
// @Router /pets/{petID}/tasks [post]
func createTaskHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, petID, ok := pets.RequireOwner(w, r, petsSvc)
		if !ok {
			return
		}

		var req createTaskRequest
		if !web.DecodeJSON(w, r, &req) {
			return
		}

		due, err := time.Parse(time.RFC3339, req.DueAt)
		if err != nil {
			http.Error(w, "due_at must be RFC3339", http.StatusBadRequest)
			return
		}

		t, err := svc.Create(r.Context(), petID, CreateInput{
			Title: req.Title,
			Kind:  req.Kind,
			DueAt: due,
			Notes: req.Notes,
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		web.WriteJSON(w, http.StatusCreated, toTaskResponse(t))
	}
}

// listTasksHandler godoc
// @Summary Listar tareas de una mascota
// @Description Lista las tareas de la mascota, ordenadas por vencimiento. Filtro opcional por status (pending|completed).
// @Tags tasks
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Param status query string false "pending o completed"
// @Success 200 {array} taskResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "pet not found"
// @Router /pets/{petID}/tasks [get]
func listTasksHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, petID, ok := pets.RequireOwner(w, r, petsSvc)
		if !ok {
			return
		}

		items, err := svc.ListByPet(r.Context(), petID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		if st := Status(strings.TrimSpace(r.URL.Query().Get("status"))); st != "" {
			filtered := make([]Task, 0, len(items))
			for _, t := range items {
				if t.Status == st {
					filtered = append(filtered, t)
				}
			}
			items = filtered
		}

		out := make([]taskResponse, 0, len(items))
		for _, t := range items {
			out = append(out, toTaskResponse(t))
		}
		web.WriteJSON(w, http.StatusOK, out)
	}
}

// listOverdueHandler godoc
// @Summary Tareas vencidas
// @Description Devuelve las tareas pendientes con due_at anterior al momento actual, la más atrasada primero.
// @Tags tasks
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Success 200 {array} taskResponse
// @Router /pets/{petID}/tasks/overdue [get]
func listOverdueHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, petID, ok := pets.RequireOwner(w, r, petsSvc)
		if !ok {
			return
		}

		items, err := svc.Overdue(r.Context(), petID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]taskResponse, 0, len(items))
		for _, t := range items {
			out = append(out, toTaskResponse(t))
		}
		web.WriteJSON(w, http.StatusOK, out)
	}
}

// completeTaskHandler godoc
// @Summary Marcar tarea como completada
// @Description Idempotente: completar dos veces devuelve 200 con la misma tarea.
// @Tags tasks
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Param taskID path string true "ID de la tarea"
// @Success 200 {object} taskResponse
// @Failure 404 {string} string "task not found"
// @Router /pets/{petID}/tasks/{taskID}/complete [post]
func completeTaskHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, petID, ok := pets.RequireOwner(w, r, petsSvc)
		if !ok {
			return
		}

		taskID := chi.URLParam(r, "taskID")

		// La tarea debe existir y pertenecer a la mascota
		t, err := svc.GetByID(r.Context(), taskID)
		if err != nil || t.PetID != petID {
			http.Error(w, "task not found", http.StatusNotFound)
			return
		}

		updated, err := svc.MarkCompleted(r.Context(), taskID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		web.WriteJSON(w, http.StatusOK, toTaskResponse(updated))
	}
}

func deleteTaskHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, petID, ok := pets.RequireOwner(w, r, petsSvc)
		if !ok {
			return
		}

		taskID := chi.URLParam(r, "taskID")
		t, err := svc.GetByID(r.Context(), taskID)
		if err != nil || t.PetID != petID {
			http.Error(w, "task not found", http.StatusNotFound)
			return
		}

		if err := svc.Delete(r.Context(), taskID); err != nil {
			http.Error(w, "task not found", http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func toTaskResponse(t Task) taskResponse {
	return taskResponse{
		ID:          t.ID,
		PetID:       t.PetID,
		Title:       t.Title,
		Kind:        t.Kind,
		Notes:       t.Notes,
		DueAt:       t.DueAt,
		Status:      t.Status,
		CompletedAt: t.CompletedAt,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}
