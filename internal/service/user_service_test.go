package service

import (
	"testing"
	"workshop_hub_backend/internal/model"
	"workshop_hub_backend/internal/repository"
	"workshop_hub_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdatePreferencesRoundTrips(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(repository.NewUserRepository(db))
	user := seedUser(t, db, "alice", model.Learner, model.DefaultNotificationPreferences())

	prefs := model.NotificationPreferences{Enrollment: false, WorkshopUpdate: true, NewActivity: false}
	require.NoError(t, svc.UpdatePreferences(user.ID, prefs))

	got, err := svc.Get(user.ID)
	require.NoError(t, err)
	assert.Equal(t, prefs, got.NotificationPreferences)
}

func TestUpdatePreferencesUnknownUser(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(repository.NewUserRepository(db))

	err := svc.UpdatePreferences(404, model.DefaultNotificationPreferences())
	assert.ErrorIs(t, err, util.ErrUserNotFound)
}

func TestUpdateAvatar(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(repository.NewUserRepository(db))
	user := seedUser(t, db, "alice", model.Learner, model.DefaultNotificationPreferences())

	require.NoError(t, svc.UpdateAvatar(user.ID, "/uploads/avatars/1_1700000000.png"))

	got, err := svc.Get(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "/uploads/avatars/1_1700000000.png", got.Avatar)
}
