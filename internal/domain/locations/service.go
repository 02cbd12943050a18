package locations

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"place-history/internal/domain/categories"
	"place-history/internal/pagination"
	"place-history/internal/platform/identifier"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
)

// ClientChecker y CategoryResolver desacoplan este módulo de los
// services concretos (los *Service de clients/categories los satisfacen).
type ClientChecker interface {
	Exists(ctx context.Context, clientID uuid.UUID) (bool, error)
}

// Get devuelve categories.ErrNotFound cuando la categoría no resuelve
// para ese cliente; solo ese caso degrada con mensaje advisory.
type CategoryResolver interface {
	Get(ctx context.Context, id, clientID uuid.UUID) (categories.Category, error)
}

type Service struct {
	visited    VisitedRepository
	faved      FavedRepository
	clients    ClientChecker
	categories CategoryResolver
	now        func() time.Time
}

func NewService(visited VisitedRepository, faved FavedRepository, clients ClientChecker, cats CategoryResolver) *Service {
	return &Service{
		visited:    visited,
		faved:      faved,
		clients:    clients,
		categories: cats,
		now:        time.Now,
	}
}

type SaveInput struct {
	ClientID  uuid.UUID
	PlaceDesc string
	Latitude  string
	Longitude string

	// Solo para faved; opcional.
	CategoryID *uuid.UUID
}

func (s *Service) SaveVisited(ctx context.Context, in SaveInput) (VisitedLocation, error) {
	if err := s.checkSave(ctx, in); err != nil {
		return VisitedLocation{}, err
	}

	l := VisitedLocation{
		ID:        identifier.New(),
		PlaceDesc: strings.TrimSpace(in.PlaceDesc),
		Latitude:  in.Latitude,
		Longitude: in.Longitude,
		CreatedAt: s.now(),
		ClientID:  in.ClientID,
	}

	if err := s.visited.Create(ctx, l); err != nil {
		return VisitedLocation{}, err
	}
	return l, nil
}

// SaveFaved guarda el lugar siempre; si la categoría pedida no resuelve
// bajo las reglas de ownership, el lugar queda sin categoría y se
// devuelve un mensaje advisory. Eso NO es un error.
func (s *Service) SaveFaved(ctx context.Context, in SaveInput) (FavedView, string, error) {
	if err := s.checkSave(ctx, in); err != nil {
		return FavedView{}, "", err
	}

	l := FavedLocation{
		ID:        identifier.New(),
		PlaceDesc: strings.TrimSpace(in.PlaceDesc),
		Latitude:  in.Latitude,
		Longitude: in.Longitude,
		CreatedAt: s.now(),
		ClientID:  in.ClientID,
	}

	var message string
	var categoryName string

	if in.CategoryID != nil {
		cat, err := s.categories.Get(ctx, *in.CategoryID, in.ClientID)
		switch {
		case err == nil:
			id := cat.ID
			l.CategoryID = &id
			categoryName = cat.CategoryName
		case errors.Is(err, categories.ErrNotFound):
			message = fmt.Sprintf("Category not found: %s. Location saved without category.", *in.CategoryID)
		default:
			// Falla de infraestructura, no una referencia irresoluble.
			return FavedView{}, "", err
		}
	}

	if err := s.faved.Create(ctx, l); err != nil {
		return FavedView{}, "", err
	}
	return FavedView{FavedLocation: l, CategoryName: categoryName}, message, nil
}

// AssignCategory cambia (o limpia, con categoryID nil) el vínculo de
// categoría de un faved location. Si la categoría pedida no resuelve,
// el vínculo anterior queda intacto y se devuelve un mensaje advisory.
func (s *Service) AssignCategory(ctx context.Context, locationID, clientID uuid.UUID, categoryID *uuid.UUID) (FavedView, string, error) {
	l, err := s.faved.GetByID(ctx, locationID)
	if err != nil {
		// El repo ya distingue ErrNotFound de fallas de infraestructura.
		return FavedView{}, "", err
	}
	if l.ClientID != clientID {
		// Existe pero es de otro cliente: distinto de NotFound.
		return FavedView{}, "", ErrForbidden
	}

	if categoryID == nil {
		if err := s.faved.SetCategory(ctx, l.ID, nil); err != nil {
			return FavedView{}, "", err
		}
		l.CategoryID = nil
		return FavedView{FavedLocation: l}, "", nil
	}

	cat, err := s.categories.Get(ctx, *categoryID, clientID)
	if errors.Is(err, categories.ErrNotFound) {
		// No-op sobre el campo categoría: se conserva la asignación previa.
		message := fmt.Sprintf("Category not found: %s. Category not updated.", *categoryID)
		return s.viewOf(ctx, l), message, nil
	}
	if err != nil {
		return FavedView{}, "", err
	}

	id := cat.ID
	if err := s.faved.SetCategory(ctx, l.ID, &id); err != nil {
		return FavedView{}, "", err
	}
	l.CategoryID = &id
	return FavedView{FavedLocation: l, CategoryName: cat.CategoryName}, "", nil
}

func (s *Service) GetVisited(ctx context.Context, clientID uuid.UUID, p pagination.Params) (pagination.Page[VisitedLocation], error) {
	p = p.Normalize()
	items, total, err := s.visited.ListByClient(ctx, clientID, p)
	if err != nil {
		return pagination.Page[VisitedLocation]{}, err
	}
	return pagination.NewPage(items, p, total), nil
}

func (s *Service) GetFaved(ctx context.Context, clientID uuid.UUID, p pagination.Params) (pagination.Page[FavedView], error) {
	p = p.Normalize()
	items, total, err := s.faved.ListByClient(ctx, clientID, p)
	if err != nil {
		return pagination.Page[FavedView]{}, err
	}
	return pagination.NewPage(s.viewsOf(ctx, items), p, total), nil
}

func (s *Service) GetFavedByCategory(ctx context.Context, categoryID, clientID uuid.UUID, p pagination.Params) (pagination.Page[FavedView], error) {
	p = p.Normalize()
	items, total, err := s.faved.ListByCategoryAndClient(ctx, categoryID, clientID, p)
	if err != nil {
		return pagination.Page[FavedView]{}, err
	}
	return pagination.NewPage(s.viewsOf(ctx, items), p, total), nil
}

func (s *Service) checkSave(ctx context.Context, in SaveInput) error {
	if strings.TrimSpace(in.PlaceDesc) == "" {
		return ErrInvalidInput
	}

	known, err := s.clients.Exists(ctx, in.ClientID)
	if err != nil {
		return err
	}
	if !known {
		return ErrNotFound
	}
	return nil
}

func (s *Service) viewOf(ctx context.Context, l FavedLocation) FavedView {
	v := FavedView{FavedLocation: l}
	if l.CategoryID != nil {
		if cat, err := s.categories.Get(ctx, *l.CategoryID, l.ClientID); err == nil {
			v.CategoryName = cat.CategoryName
		}
	}
	return v
}

func (s *Service) viewsOf(ctx context.Context, items []FavedLocation) []FavedView {
	// Cache por página para no repetir lookups de la misma categoría.
	names := map[uuid.UUID]string{}
	out := make([]FavedView, 0, len(items))

	for _, l := range items {
		v := FavedView{FavedLocation: l}
		if l.CategoryID != nil {
			name, ok := names[*l.CategoryID]
			if !ok {
				if cat, err := s.categories.Get(ctx, *l.CategoryID, l.ClientID); err == nil {
					name = cat.CategoryName
				}
				names[*l.CategoryID] = name
			}
			v.CategoryName = name
		}
		out = append(out, v)
	}
	return out
}
