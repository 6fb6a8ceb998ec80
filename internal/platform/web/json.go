package web

import (
	"encoding/json"
	"net/http"
)

// WriteJSON centraliza la respuesta JSON de los handlers.
// Antes estaba duplicado por módulo; con ocho módulos ya conviene el helper común.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// DecodeJSON decodifica el body a dst. Devuelve false si el JSON es inválido
// (ya respondió 400); el handler solo debe retornar.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return false
	}
	return true
}
