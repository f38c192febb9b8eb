// Package odontogram valida el mapa diente -> condiciones en notación FDI.
package odontogram

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/architectonquantum-commits/LABDEN/internal/domain"
	"github.com/architectonquantum-commits/LABDEN/internal/domain/entity"
)

// Conditions vocabulario cerrado de condiciones por diente.
var Conditions = []string{
	"corona",
	"carilla",
	"carilla_v",
	"puente",
	"implante",
	"corona_sobre_implante",
	"incrustacion",
	"v_onley",
	"onley",
	"chip_ceramico",
	"maryland",
}

var conditionSet = func() map[string]struct{} {
	m := make(map[string]struct{}, len(Conditions))
	for _, c := range Conditions {
		m[c] = struct{}{}
	}
	return m
}()

// ValidTooth indica si n es un diente permanente FDI: cuadrante 1-4, pieza 1-8.
func ValidTooth(n int) bool {
	q, t := n/10, n%10
	return q >= 1 && q <= 4 && t >= 1 && t <= 8
}

// ValidCondition indica si c pertenece al vocabulario.
func ValidCondition(c string) bool {
	_, ok := conditionSet[c]
	return ok
}

// Teeth devuelve los 32 dientes en el orden de la carta: 18-11, 21-28, 48-41, 31-38.
func Teeth() []int {
	out := make([]int, 0, 32)
	for t := 8; t >= 1; t-- {
		out = append(out, 10+t)
	}
	for t := 1; t <= 8; t++ {
		out = append(out, 20+t)
	}
	for t := 8; t >= 1; t-- {
		out = append(out, 40+t)
	}
	for t := 1; t <= 8; t++ {
		out = append(out, 30+t)
	}
	return out
}

// Validate revisa claves y condiciones. Un diente con lista vacía es válido y se conserva.
func Validate(o entity.Odontogram) error {
	for key, conds := range o {
		n, err := strconv.Atoi(key)
		if err != nil || !ValidTooth(n) {
			return fmt.Errorf("%w: diente %q", domain.ErrInvalidOdontogram, key)
		}
		for _, c := range conds {
			if !ValidCondition(c) {
				return fmt.Errorf("%w: condición %q en diente %s", domain.ErrInvalidOdontogram, c, key)
			}
		}
	}
	return nil
}

// Marked devuelve los dientes con al menos una condición, ordenados numéricamente.
func Marked(o entity.Odontogram) []int {
	out := make([]int, 0, len(o))
	for key, conds := range o {
		if len(conds) == 0 {
			continue
		}
		if n, err := strconv.Atoi(key); err == nil {
			out = append(out, n)
		}
	}
	sort.Ints(out)
	return out
}
