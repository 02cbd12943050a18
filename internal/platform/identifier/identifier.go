package identifier

import (
	mrand "math/rand"

	"github.com/google/uuid"
)

// New genera un UUID v7 (epoch millis + random) para mejor localidad
// en índices: ids creados después ordenan después.
// Si no hay randomness segura cae a v4, y en último caso a un relleno
// math/rand con los bits de versión/variante correctos. Nunca falla.
func New() uuid.UUID {
	if id, err := uuid.NewV7(); err == nil {
		return id
	}

	if id, err := uuid.NewRandom(); err == nil {
		return id
	}

	var b [16]byte
	for i := range b {
		b[i] = byte(mrand.Intn(256))
	}
	b[6] = (b[6] & 0x0f) | 0x40 // version 4
	b[8] = (b[8] & 0x3f) | 0x80 // variant RFC 4122
	return uuid.UUID(b)
}
