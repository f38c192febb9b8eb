package lifecycle_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/architectonquantum-commits/LABDEN/internal/domain"
	"github.com/architectonquantum-commits/LABDEN/internal/domain/entity"
	"github.com/architectonquantum-commits/LABDEN/internal/domain/lifecycle"
)

func TestAllowed_Tabla(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{entity.OrderPendiente, entity.OrderEnProceso, true},
		{entity.OrderPendiente, entity.OrderIniciada, true},
		{entity.OrderPendiente, entity.OrderCancelada, true},
		{entity.OrderPendiente, entity.OrderTerminada, false},
		{entity.OrderIniciada, entity.OrderEnProceso, true},
		{entity.OrderEnProceso, entity.OrderTerminada, true},
		{entity.OrderEnProceso, entity.OrderCancelada, true},
		{entity.OrderEnProceso, entity.OrderPendiente, false},
		{entity.OrderTerminada, entity.OrderPendiente, false},
		{entity.OrderCancelada, entity.OrderEnProceso, false},
		{entity.OrderTerminada, entity.OrderTerminada, true},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, lifecycle.Allowed(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestTerminal(t *testing.T) {
	assert.True(t, lifecycle.Terminal(entity.OrderTerminada))
	assert.True(t, lifecycle.Terminal(entity.OrderCancelada))
	assert.False(t, lifecycle.Terminal(entity.OrderPendiente))
	assert.False(t, lifecycle.Terminal("desconocido"))
}

func TestNext_DevuelveCopia(t *testing.T) {
	next := lifecycle.Next(entity.OrderPendiente)
	next[0] = "mutado"
	assert.Equal(t, entity.OrderIniciada, lifecycle.Next(entity.OrderPendiente)[0])
}

func TestMachine_Permisiva(t *testing.T) {
	m := lifecycle.Machine{}
	assert.NoError(t, m.Check(entity.OrderTerminada, entity.OrderPendiente))
	assert.ErrorIs(t, m.Check(entity.OrderPendiente, "entregada"), domain.ErrInvalidStatus)
}

func TestMachine_Estricta(t *testing.T) {
	m := lifecycle.Machine{Strict: true}
	assert.NoError(t, m.Check(entity.OrderPendiente, entity.OrderEnProceso))
	assert.ErrorIs(t, m.Check(entity.OrderTerminada, entity.OrderPendiente), domain.ErrInvalidTransition)
	assert.ErrorIs(t, m.Check(entity.OrderPendiente, ""), domain.ErrInvalidStatus)

	err := m.Check(entity.OrderPendiente, entity.OrderTerminada)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Contains(t, err.Error(), "permitidos: iniciada, en_proceso, cancelada")
	assert.Contains(t, m.Check(entity.OrderCancelada, entity.OrderEnProceso).Error(), "estado final")
}
