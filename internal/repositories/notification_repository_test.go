package repositories

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationRepository_ReplaceByName(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()
	repo := NewPostgresNotificationRepository(db)

	// Delete-then-insert runs inside one transaction.
	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "notifications"`).
		WithArgs(uint(1), "unread_message_count").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO "notifications"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(4))
	mock.ExpectCommit()

	notification, err := repo.ReplaceByName(1, "unread_message_count", "3")
	require.NoError(t, err)
	assert.Equal(t, uint(4), notification.ID)
	assert.Equal(t, "unread_message_count", notification.Name)
	assert.Equal(t, uint(1), notification.UserID)
	assert.Equal(t, "3", notification.PayloadJSON)
	assert.Greater(t, notification.Timestamp, 0.0)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationRepository_ReplaceByNameRollsBackOnInsertFailure(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()
	repo := NewPostgresNotificationRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "notifications"`).
		WithArgs(uint(1), "task_progress").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO "notifications"`).
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	_, err := repo.ReplaceByName(1, "task_progress", "{}")
	require.Error(t, err)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationRepository_GetSince(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()
	repo := NewPostgresNotificationRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "notifications" WHERE user_id = .* ORDER BY timestamp ASC`).
		WithArgs(uint(1), 100.0).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "user_id", "timestamp", "payload_json"}).
			AddRow(1, "unread_message_count", 1, 101.5, "2").
			AddRow(2, "task_progress", 1, 102.5, `{"p":50}`))

	notifications, err := repo.GetSince(1, 100.0)
	require.NoError(t, err)
	require.Len(t, notifications, 2)
	assert.Equal(t, "unread_message_count", notifications[0].Name)

	data, err := notifications[0].GetData()
	require.NoError(t, err)
	assert.Equal(t, float64(2), data)

	require.NoError(t, mock.ExpectationsWereMet())
}
