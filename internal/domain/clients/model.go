package clients

import (
	"time"

	"github.com/google/uuid"
)

// Client es la raíz de particionamiento: un identificador anónimo de
// dispositivo/navegador, no una cuenta autenticada.
type Client struct {
	ClientID  uuid.UUID
	CreatedAt time.Time
}
