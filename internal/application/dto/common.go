package dto

import "time"

// PageRequest paginación para listados.
type PageRequest struct {
	Limit  int `query:"limit" validate:"min=1,max=100"`
	Offset int `query:"offset" validate:"min=0"`
}

// DefaultPage aplica valores por defecto si Limit/Offset son cero.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// DateRangeRequest filtro por rango de fechas para los listados del ledger.
// Formato esperado: RFC 3339 o YYYY-MM-DD.
type DateRangeRequest struct {
	From string `query:"from"`
	To   string `query:"to"`
}

// Parse convierte el rango a *time.Time (nil si el campo viene vacío).
func (r *DateRangeRequest) Parse() (from, to *time.Time, err error) {
	parse := func(s string) (*time.Time, error) {
		if s == "" {
			return nil, nil
		}
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			return &t, nil
		}
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return nil, err
		}
		return &t, nil
	}
	if from, err = parse(r.From); err != nil {
		return nil, nil, err
	}
	if to, err = parse(r.To); err != nil {
		return nil, nil, err
	}
	return from, to, nil
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total,omitempty"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
