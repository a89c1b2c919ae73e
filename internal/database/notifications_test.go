package database

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brokerconnect/server/internal/models"
)

func seedNotification(t *testing.T, db *Database, id, userID string) {
	t.Helper()
	err := db.CreateNotification(&models.Notification{
		ID:      id,
		UserID:  userID,
		Type:    models.NotificationBooking,
		Title:   "New Property Visit Request",
		Message: "Jane Client wants to visit Lakeside Villa",
	})
	require.NoError(t, err)
}

func TestListNotifications_LatestTwentyNewestFirst(t *testing.T) {
	db := newTestDatabase(t)
	seedUser(t, db, "user-1", models.RoleClient)

	for i := 0; i < 25; i++ {
		seedNotification(t, db, fmt.Sprintf("notif-%02d", i), "user-1")
	}

	notifications, err := db.ListNotifications("user-1")
	require.NoError(t, err)
	require.Len(t, notifications, 20)

	// Inserts land within the same timestamp second, so ordering falls back
	// to insertion order, newest first
	assert.Equal(t, "notif-24", notifications[0].ID)
	assert.Equal(t, "notif-05", notifications[19].ID)
	assert.False(t, notifications[0].CreatedAt.IsZero())
}

func TestListNotifications_ScopedToUser(t *testing.T) {
	db := newTestDatabase(t)
	seedUser(t, db, "user-1", models.RoleClient)
	seedUser(t, db, "user-2", models.RoleClient)
	seedNotification(t, db, "notif-1", "user-1")

	other, err := db.ListNotifications("user-2")
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestMarkNotificationRead(t *testing.T) {
	db := newTestDatabase(t)
	seedUser(t, db, "user-1", models.RoleClient)
	seedUser(t, db, "user-2", models.RoleClient)
	seedNotification(t, db, "notif-1", "user-1")

	// Someone else's notification looks like it does not exist
	assert.ErrorIs(t, db.MarkNotificationRead("notif-1", "user-2"), ErrNotFound)
	assert.ErrorIs(t, db.MarkNotificationRead("missing", "user-1"), ErrNotFound)

	require.NoError(t, db.MarkNotificationRead("notif-1", "user-1"))

	notifications, err := db.ListNotifications("user-1")
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.True(t, notifications[0].IsRead)
}

func TestUnreadNotificationCount(t *testing.T) {
	db := newTestDatabase(t)
	seedUser(t, db, "user-1", models.RoleClient)
	seedNotification(t, db, "notif-1", "user-1")
	seedNotification(t, db, "notif-2", "user-1")
	seedNotification(t, db, "notif-3", "user-1")

	require.NoError(t, db.MarkNotificationRead("notif-2", "user-1"))

	count, err := db.UnreadNotificationCount("user-1")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}
