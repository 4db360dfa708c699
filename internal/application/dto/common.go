package dto

// PageRequest paginación para listados (página basada en cero).
type PageRequest struct {
	Page int `query:"page"`
	Size int `query:"size"`
}

// DefaultPage aplica valores por defecto y acota el tamaño.
func (p *PageRequest) DefaultPage() {
	if p.Page < 0 {
		p.Page = 0
	}
	if p.Size <= 0 {
		p.Size = 20
	}
	if p.Size > 100 {
		p.Size = 100
	}
}

// Offset devuelve el desplazamiento equivalente.
func (p PageRequest) Offset() int {
	return p.Page * p.Size
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Page          int  `json:"page"`
	Size          int  `json:"size"`
	TotalElements int  `json:"totalElements"`
	TotalPages    int  `json:"totalPages"`
	First         bool `json:"first"`
	Last          bool `json:"last"`
}

// NewPageResponse calcula los metadatos a partir del total de elementos.
func NewPageResponse(page, size, total int) PageResponse {
	totalPages := 0
	if size > 0 {
		totalPages = (total + size - 1) / size
	}
	return PageResponse{
		Page:          page,
		Size:          size,
		TotalElements: total,
		TotalPages:    totalPages,
		First:         page == 0,
		Last:          page >= totalPages-1,
	}
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
