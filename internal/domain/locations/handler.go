package locations

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"place-history/internal/domain/weather"
	"place-history/internal/pagination"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func RegisterRoutes(r chi.Router, svc *Service, weatherSvc *weather.Service) {
	r.Route("/api/locations", func(lr chi.Router) {
		lr.Post("/visited", saveVisitedHandler(svc))
		lr.Get("/visited", listVisitedHandler(svc))

		lr.Post("/faved", saveFavedHandler(svc))
		lr.Get("/faved", listFavedHandler(svc))
		lr.Put("/faved/{id}/category", assignCategoryHandler(svc))
		lr.Get("/faved/category/{categoryId}", listFavedByCategoryHandler(svc))

		lr.Get("/weather", weatherHandler(weatherSvc))
	})
}

type locationRequest struct {
	ClientID   string  `json:"client_id"`
	PlaceDesc  string  `json:"place_desc"`
	Latitude   string  `json:"latitude"`
	Longitude  string  `json:"longitude"`
	CategoryID *string `json:"category_id"` // solo faved, opcional
}

type assignCategoryRequest struct {
	ClientID   string  `json:"client_id"`
	CategoryID *string `json:"category_id"` // null limpia la asignación
}

type locationResponse struct {
	ID           uuid.UUID  `json:"id"`
	PlaceDesc    string     `json:"place_desc"`
	Latitude     string     `json:"latitude"`
	Longitude    string     `json:"longitude"`
	CreatedAt    time.Time  `json:"created_at"`
	ClientID     uuid.UUID  `json:"client_id"`
	CategoryID   *uuid.UUID `json:"category_id,omitempty"`
	CategoryName string     `json:"category_name,omitempty"`
	Message      string     `json:"message,omitempty"`
}

type weatherResponse struct {
	Latitude  string        `json:"latitude"`
	Longitude string        `json:"longitude"`
	Weather   *weather.Data `json:"weather"` // null si el upstream falló
}

func saveVisitedHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, in, ok := decodeSaveRequest(w, r)
		if !ok {
			return
		}

		l, err := svc.SaveVisited(r.Context(), in)
		if err != nil {
			writeServiceError(w, err, "client not found")
			return
		}

		writeJSON(w, http.StatusCreated, toVisitedResponse(l))
	}
}

func saveFavedHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, in, ok := decodeSaveRequest(w, r)
		if !ok {
			return
		}

		if req.CategoryID != nil {
			id, err := uuid.Parse(*req.CategoryID)
			if err != nil {
				http.Error(w, "invalid category_id", http.StatusBadRequest)
				return
			}
			in.CategoryID = &id
		}

		v, message, err := svc.SaveFaved(r.Context(), in)
		if err != nil {
			writeServiceError(w, err, "client not found")
			return
		}

		writeJSON(w, http.StatusCreated, toFavedResponse(v, message))
	}
}

func assignCategoryHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		locationID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			http.Error(w, "invalid location id", http.StatusBadRequest)
			return
		}

		var req assignCategoryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		clientID, err := uuid.Parse(req.ClientID)
		if err != nil {
			http.Error(w, "invalid client_id", http.StatusBadRequest)
			return
		}

		var categoryID *uuid.UUID
		if req.CategoryID != nil {
			id, err := uuid.Parse(*req.CategoryID)
			if err != nil {
				http.Error(w, "invalid category_id", http.StatusBadRequest)
				return
			}
			categoryID = &id
		}

		v, message, err := svc.AssignCategory(r.Context(), locationID, clientID, categoryID)
		if err != nil {
			writeServiceError(w, err, "faved location not found")
			return
		}

		writeJSON(w, http.StatusOK, toFavedResponse(v, message))
	}
}

func listVisitedHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clientID, err := uuid.Parse(r.URL.Query().Get("clientId"))
		if err != nil {
			http.Error(w, "invalid clientId", http.StatusBadRequest)
			return
		}

		page, err := svc.GetVisited(r.Context(), clientID, pageParams(r))
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := pagination.Page[locationResponse]{
			Page:          page.Page,
			Size:          page.Size,
			TotalElements: page.TotalElements,
			TotalPages:    page.TotalPages,
			Content:       make([]locationResponse, 0, len(page.Content)),
		}
		for _, l := range page.Content {
			out.Content = append(out.Content, toVisitedResponse(l))
		}

		writeJSON(w, http.StatusOK, out)
	}
}

func listFavedHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clientID, err := uuid.Parse(r.URL.Query().Get("clientId"))
		if err != nil {
			http.Error(w, "invalid clientId", http.StatusBadRequest)
			return
		}

		page, err := svc.GetFaved(r.Context(), clientID, pageParams(r))
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, toFavedPage(page))
	}
}

func listFavedByCategoryHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categoryID, err := uuid.Parse(chi.URLParam(r, "categoryId"))
		if err != nil {
			http.Error(w, "invalid category id", http.StatusBadRequest)
			return
		}
		clientID, err := uuid.Parse(r.URL.Query().Get("clientId"))
		if err != nil {
			http.Error(w, "invalid clientId", http.StatusBadRequest)
			return
		}

		page, err := svc.GetFavedByCategory(r.Context(), categoryID, clientID, pageParams(r))
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, toFavedPage(page))
	}
}

// weatherHandler devuelve el sobre siempre, con weather null si el
// upstream falló: una caída del provider no es error del request.
func weatherHandler(weatherSvc *weather.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		latStr := q.Get("latitude")
		lonStr := q.Get("longitude")

		lat, err := strconv.ParseFloat(latStr, 64)
		if err != nil {
			http.Error(w, "latitude must be a decimal number", http.StatusBadRequest)
			return
		}
		lon, err := strconv.ParseFloat(lonStr, 64)
		if err != nil {
			http.Error(w, "longitude must be a decimal number", http.StatusBadRequest)
			return
		}

		data := weatherSvc.ByCoordinates(r.Context(), lat, lon)

		writeJSON(w, http.StatusOK, weatherResponse{
			Latitude:  latStr, // strings originales, sin re-formatear
			Longitude: lonStr,
			Weather:   data,
		})
	}
}

func decodeSaveRequest(w http.ResponseWriter, r *http.Request) (locationRequest, SaveInput, bool) {
	var req locationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return req, SaveInput{}, false
	}

	clientID, err := uuid.Parse(req.ClientID)
	if err != nil {
		http.Error(w, "invalid client_id", http.StatusBadRequest)
		return req, SaveInput{}, false
	}

	return req, SaveInput{
		ClientID:  clientID,
		PlaceDesc: req.PlaceDesc,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	}, true
}

func writeServiceError(w http.ResponseWriter, err error, notFoundMsg string) {
	switch err {
	case ErrInvalidInput:
		http.Error(w, err.Error(), http.StatusBadRequest)
	case ErrNotFound:
		http.Error(w, notFoundMsg, http.StatusNotFound)
	case ErrForbidden:
		http.Error(w, "forbidden", http.StatusForbidden)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toVisitedResponse(l VisitedLocation) locationResponse {
	return locationResponse{
		ID:        l.ID,
		PlaceDesc: l.PlaceDesc,
		Latitude:  l.Latitude,
		Longitude: l.Longitude,
		CreatedAt: l.CreatedAt,
		ClientID:  l.ClientID,
	}
}

func toFavedResponse(v FavedView, message string) locationResponse {
	return locationResponse{
		ID:           v.ID,
		PlaceDesc:    v.PlaceDesc,
		Latitude:     v.Latitude,
		Longitude:    v.Longitude,
		CreatedAt:    v.CreatedAt,
		ClientID:     v.ClientID,
		CategoryID:   v.CategoryID,
		CategoryName: v.CategoryName,
		Message:      message,
	}
}

func toFavedPage(page pagination.Page[FavedView]) pagination.Page[locationResponse] {
	out := pagination.Page[locationResponse]{
		Page:          page.Page,
		Size:          page.Size,
		TotalElements: page.TotalElements,
		TotalPages:    page.TotalPages,
		Content:       make([]locationResponse, 0, len(page.Content)),
	}
	for _, v := range page.Content {
		out.Content = append(out.Content, toFavedResponse(v, ""))
	}
	return out
}

func pageParams(r *http.Request) pagination.Params {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	size, _ := strconv.Atoi(q.Get("size"))
	// sort se acepta pero el orden aplicado es siempre created_at desc.
	return pagination.Params{Page: page, Size: size, Sort: q.Get("sort")}.Normalize()
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
