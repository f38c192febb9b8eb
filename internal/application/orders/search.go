package orders

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/architectonquantum-commits/LABDEN/internal/domain/entity"
)

// fold normaliza para búsqueda: sin acentos y sin distinción de mayúsculas ("Pérez" == "perez").
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return cases.Fold().String(strings.TrimSpace(out))
}

// matchPatient filtra por nombre de paciente. q vacío no filtra.
func matchPatient(list []*entity.Order, q string) []*entity.Order {
	needle := fold(q)
	if needle == "" {
		return list
	}
	out := make([]*entity.Order, 0, len(list))
	for _, o := range list {
		if strings.Contains(fold(o.NombrePaciente), needle) {
			out = append(out, o)
		}
	}
	return out
}
