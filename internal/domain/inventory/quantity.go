// Package inventory contiene los servicios de dominio del motor de lotes.
package inventory

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseQuantity convierte una cantidad en texto libre a decimal (servicio de dominio).
// Las cantidades llegan de los documentos como strings que pueden traer unidades u
// otros caracteres no numéricos ("25 EA", "1,250.5"). Se eliminan los caracteres no
// numéricos (conservando punto decimal y signo) y se parsea; si el resultado no es
// parseable se devuelve cero. La política de tratar cero/negativo como "omitir con
// advertencia" es del caller, no de este parser.
func ParseQuantity(text string) decimal.Decimal {
	cleaned := stripNonNumeric(text)
	if cleaned == "" {
		return decimal.Zero
	}
	q, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}
	return q
}

// stripNonNumeric conserva dígitos, un único punto decimal y un signo menos en la
// primera posición. Las comas de miles y cualquier otro carácter se descartan; un
// guión en medio del texto ("LOTE-25") no vuelve negativa la cantidad.
func stripNonNumeric(text string) string {
	var b strings.Builder
	seenDot := false
	for i, r := range strings.TrimSpace(text) {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' && !seenDot:
			seenDot = true
			b.WriteRune(r)
		case r == '-' && i == 0:
			b.WriteRune(r)
		}
	}
	s := b.String()
	if s == "" || s == "-" || s == "." || s == "-." {
		return ""
	}
	return s
}
