package postgres

import (
	"context"
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/architectonquantum-commits/LABDEN/internal/domain/entity"
)

func TestNotificationRepo_ListByRecipients(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Now()
	mock.ExpectQuery(`FROM notifications WHERE user_id = ANY\(\$1\) ORDER BY created_at DESC`).
		WithArgs([]string{"lab-user", "L1"}).
		WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "type", "message", "status", "created_at"}).
			AddRow("n1", "L1", entity.NotificationNewOrder, "Nueva orden #1 de Dr. Ana", "unread", now))

	repo := NewNotificationRepository(mock)
	list, err := repo.ListByRecipients(context.Background(), []string{"lab-user", "L1"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, entity.NotificationNewOrder, list[0].Type)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationRepo_MarkRead_AjenaNoSeMarca(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(`UPDATE notifications SET status = 'read' WHERE id = \$1 AND user_id = ANY\(\$2\)`).
		WithArgs("n1", []string{"intruso"}).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	ok, err := NewNotificationRepository(mock).MarkRead(context.Background(), "n1", []string{"intruso"})
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}
