// Package lifecycle define la máquina de estados de las órdenes.
package lifecycle

import (
	"fmt"
	"strings"

	"github.com/architectonquantum-commits/LABDEN/internal/domain"
	"github.com/architectonquantum-commits/LABDEN/internal/domain/entity"
)

// transitions estado actual -> siguientes permitidos. terminada y cancelada son terminales.
var transitions = map[string][]string{
	entity.OrderPendiente: {entity.OrderIniciada, entity.OrderEnProceso, entity.OrderCancelada},
	entity.OrderIniciada:  {entity.OrderEnProceso, entity.OrderCancelada},
	entity.OrderEnProceso: {entity.OrderTerminada, entity.OrderCancelada},
	entity.OrderTerminada: {},
	entity.OrderCancelada: {},
}

// Valid indica si status pertenece al enum de órdenes.
func Valid(status string) bool {
	_, ok := transitions[status]
	return ok
}

// Next devuelve los estados alcanzables desde from.
func Next(from string) []string {
	out := make([]string, len(transitions[from]))
	copy(out, transitions[from])
	return out
}

// Terminal indica si no hay transiciones de salida.
func Terminal(status string) bool {
	next, ok := transitions[status]
	return ok && len(next) == 0
}

// Allowed indica si from -> to está en la tabla. Permanecer en el mismo estado siempre es válido.
func Allowed(from, to string) bool {
	if from == to {
		return Valid(to)
	}
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Machine valida cambios de estado. En modo permisivo acepta cualquier valor del enum.
type Machine struct {
	Strict bool
}

// Check devuelve ErrInvalidStatus si to no es un estado conocido y,
// en modo estricto, ErrInvalidTransition si la arista no existe.
func (m Machine) Check(from, to string) error {
	if !Valid(to) {
		return domain.ErrInvalidStatus
	}
	if !m.Strict || Allowed(from, to) {
		return nil
	}
	if Terminal(from) {
		return fmt.Errorf("%w: %s es un estado final", domain.ErrInvalidTransition, from)
	}
	return fmt.Errorf("%w: %s -> %s (permitidos: %s)",
		domain.ErrInvalidTransition, from, to, strings.Join(Next(from), ", "))
}
