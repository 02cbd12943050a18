package pagination

// Params describe una página pedida por el cliente.
// Sort se acepta por compatibilidad pero el orden aplicado es fijo
// (created_at desc); ver handlers.
type Params struct {
	Page int
	Size int
	Sort string
}

const (
	DefaultSize = 10
	MaxSize     = 100
)

// Normalize acota page/size a valores razonables.
func (p Params) Normalize() Params {
	if p.Page < 0 {
		p.Page = 0
	}
	if p.Size <= 0 {
		p.Size = DefaultSize
	}
	if p.Size > MaxSize {
		p.Size = MaxSize
	}
	return p
}

// Offset devuelve el offset absoluto para la página normalizada.
func (p Params) Offset() int {
	return p.Page * p.Size
}

// Page es el sobre estándar de listados paginados.
type Page[T any] struct {
	Content       []T   `json:"content"`
	Page          int   `json:"page"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"total_elements"`
	TotalPages    int   `json:"total_pages"`
}

// NewPage arma el sobre a partir del slice de la página y el total.
func NewPage[T any](content []T, p Params, total int64) Page[T] {
	p = p.Normalize()

	if content == nil {
		content = make([]T, 0)
	}

	pages := 0
	if total > 0 {
		pages = int((total + int64(p.Size) - 1) / int64(p.Size))
	}

	return Page[T]{
		Content:       content,
		Page:          p.Page,
		Size:          p.Size,
		TotalElements: total,
		TotalPages:    pages,
	}
}
