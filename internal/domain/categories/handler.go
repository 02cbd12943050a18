package categories

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"place-history/internal/pagination"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/api/categories", func(cr chi.Router) {
		cr.Post("/", createCategoryHandler(svc))
		cr.Get("/", listCategoriesHandler(svc))
		cr.Get("/{id}", getCategoryHandler(svc))
		cr.Put("/{id}", updateCategoryHandler(svc))
	})
}

type categoryRequest struct {
	ClientID     string `json:"client_id"`
	CategoryName string `json:"category_name"`
}

type categoryUpdateRequest struct {
	CategoryName string `json:"category_name"`
}

type categoryResponse struct {
	ID           uuid.UUID `json:"id"`
	CategoryName string    `json:"category_name"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	ClientID     uuid.UUID `json:"client_id"`
}

func createCategoryHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req categoryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		clientID, err := uuid.Parse(req.ClientID)
		if err != nil {
			http.Error(w, "invalid client_id", http.StatusBadRequest)
			return
		}

		c, err := svc.Create(r.Context(), clientID, req.CategoryName)
		if err != nil {
			switch err {
			case ErrInvalidInput:
				http.Error(w, err.Error(), http.StatusBadRequest)
			case ErrNotFound:
				http.Error(w, "client not found", http.StatusNotFound)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusCreated, toCategoryResponse(c))
	}
}

func updateCategoryHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			http.Error(w, "invalid category id", http.StatusBadRequest)
			return
		}
		clientID, err := uuid.Parse(r.URL.Query().Get("clientId"))
		if err != nil {
			http.Error(w, "invalid clientId", http.StatusBadRequest)
			return
		}

		var req categoryUpdateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		c, err := svc.Update(r.Context(), id, clientID, req.CategoryName)
		if err != nil {
			switch err {
			case ErrInvalidInput:
				http.Error(w, err.Error(), http.StatusBadRequest)
			case ErrNotFound:
				http.Error(w, "category not found", http.StatusNotFound)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusOK, toCategoryResponse(c))
	}
}

func getCategoryHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			http.Error(w, "invalid category id", http.StatusBadRequest)
			return
		}
		clientID, err := uuid.Parse(r.URL.Query().Get("clientId"))
		if err != nil {
			http.Error(w, "invalid clientId", http.StatusBadRequest)
			return
		}

		c, err := svc.Get(r.Context(), id, clientID)
		if err != nil {
			switch err {
			case ErrNotFound:
				http.Error(w, "category not found", http.StatusNotFound)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusOK, toCategoryResponse(c))
	}
}

func listCategoriesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clientID, err := uuid.Parse(r.URL.Query().Get("clientId"))
		if err != nil {
			http.Error(w, "invalid clientId", http.StatusBadRequest)
			return
		}

		page, err := svc.List(r.Context(), clientID, pageParams(r))
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := pagination.Page[categoryResponse]{
			Page:          page.Page,
			Size:          page.Size,
			TotalElements: page.TotalElements,
			TotalPages:    page.TotalPages,
			Content:       make([]categoryResponse, 0, len(page.Content)),
		}
		for _, c := range page.Content {
			out.Content = append(out.Content, toCategoryResponse(c))
		}

		writeJSON(w, http.StatusOK, out)
	}
}

func toCategoryResponse(c Category) categoryResponse {
	return categoryResponse{
		ID:           c.ID,
		CategoryName: c.CategoryName,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
		ClientID:     c.ClientID,
	}
}

// pageParams lee page/size/sort. El sort se acepta por compatibilidad
// pero el orden aplicado es siempre created_at desc.
func pageParams(r *http.Request) pagination.Params {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	size, _ := strconv.Atoi(q.Get("size"))
	return pagination.Params{Page: page, Size: size, Sort: q.Get("sort")}.Normalize()
}

// writeJSON está duplicado a propósito en cada módulo de handlers:
// todavía no amerita un helper compartido.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
