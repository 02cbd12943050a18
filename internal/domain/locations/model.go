package locations

import (
	"time"

	"github.com/google/uuid"
)

// VisitedLocation es historial append-only: se crea una vez por visita,
// nunca se actualiza ni borra.
type VisitedLocation struct {
	ID        uuid.UUID
	PlaceDesc string
	Latitude  string // decimal como string opaco, sin validación de rango
	Longitude string
	CreatedAt time.Time
	ClientID  uuid.UUID
}

// FavedLocation es un lugar guardado, opcionalmente agrupado bajo una
// categoría del mismo cliente.
type FavedLocation struct {
	ID         uuid.UUID
	PlaceDesc  string
	Latitude   string
	Longitude  string
	CreatedAt  time.Time
	ClientID   uuid.UUID
	CategoryID *uuid.UUID
}

// FavedView agrega el nombre de la categoría resuelto para la respuesta.
type FavedView struct {
	FavedLocation
	CategoryName string
}
