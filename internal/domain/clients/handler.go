package clients

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Post("/api/client/identify", identifyHandler(svc))
}

type identifyRequest struct {
	ClientID string `json:"client_id"`
}

type identifyResponse struct {
	ClientID uuid.UUID `json:"client_id"`
}

// identifyHandler resuelve la identidad del caller.
// El header X-Client-Id tiene precedencia sobre el body; ambos opcionales.
func identifyHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var candidate *uuid.UUID

		if h := strings.TrimSpace(r.Header.Get("X-Client-Id")); h != "" {
			id, err := uuid.Parse(h)
			if err != nil {
				http.Error(w, "invalid X-Client-Id", http.StatusBadRequest)
				return
			}
			candidate = &id
		} else if r.Body != nil {
			raw, err := io.ReadAll(r.Body)
			if err != nil {
				http.Error(w, "invalid body", http.StatusBadRequest)
				return
			}
			// Body vacío o ausente es válido: cliente nuevo. Un body
			// presente pero mal formado es un request roto, no anónimo.
			if len(bytes.TrimSpace(raw)) > 0 {
				var req identifyRequest
				if err := json.Unmarshal(raw, &req); err != nil {
					http.Error(w, "invalid json", http.StatusBadRequest)
					return
				}
				if s := strings.TrimSpace(req.ClientID); s != "" {
					id, err := uuid.Parse(s)
					if err != nil {
						http.Error(w, "invalid client_id", http.StatusBadRequest)
						return
					}
					candidate = &id
				}
			}
		}

		clientID, err := svc.IdentifyOrCreate(r.Context(), candidate)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, identifyResponse{ClientID: clientID})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
