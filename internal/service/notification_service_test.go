package service

import (
	"errors"
	"testing"
	"workshop_hub_backend/internal/model"
	"workshop_hub_backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanNotify(t *testing.T) {
	svc := &NotificationService{}

	tests := []struct {
		name string
		user *model.User
		kind model.NotificationKind
		want bool
	}{
		{"nil user", nil, model.KindEnrollment, false},
		{"enrollment enabled", &model.User{NotificationPreferences: model.NotificationPreferences{Enrollment: true}}, model.KindEnrollment, true},
		{"enrollment disabled", &model.User{NotificationPreferences: model.NotificationPreferences{Enrollment: false}}, model.KindEnrollment, false},
		{"workshop update enabled", &model.User{NotificationPreferences: model.NotificationPreferences{WorkshopUpdate: true}}, model.KindWorkshopUpdate, true},
		{"new activity enabled", &model.User{NotificationPreferences: model.NotificationPreferences{NewActivity: true}}, model.KindNewActivity, true},
		{"zero value preferences", &model.User{}, model.KindEnrollment, false},
		{"unknown kind", &model.User{NotificationPreferences: model.DefaultNotificationPreferences()}, model.NotificationKind("sms"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, svc.CanNotify(tt.user, tt.kind))
		})
	}
}

func TestDispatchDelivers(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "recipient", model.Learner, model.DefaultNotificationPreferences())

	m := &fakeMailer{}
	svc := NewNotificationService(repository.NewUserRepository(db), m, 8)
	go svc.Run()

	svc.Dispatch(user.ID, model.KindEnrollment, "New enrollment request", "A learner has enrolled")
	svc.Stop()

	sent := m.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, user.Email, sent[0].To)
	assert.Equal(t, "New enrollment request", sent[0].Subject)
}

func TestStopDrainsQueue(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "drained", model.Learner, model.DefaultNotificationPreferences())

	m := &fakeMailer{}
	svc := NewNotificationService(repository.NewUserRepository(db), m, 8)

	// 先入队再启动，Stop 必须把排队的全部送完
	svc.Dispatch(user.ID, model.KindEnrollment, "first", "1")
	svc.Dispatch(user.ID, model.KindEnrollment, "second", "2")
	svc.Dispatch(user.ID, model.KindEnrollment, "third", "3")

	go svc.Run()
	svc.Stop()

	assert.Len(t, m.Sent(), 3)
}

func TestDispatchFullQueueDrops(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "flooded", model.Learner, model.DefaultNotificationPreferences())

	m := &fakeMailer{}
	svc := NewNotificationService(repository.NewUserRepository(db), m, 1)

	// 无消费者，第二条溢出被丢弃，调用不得阻塞
	svc.Dispatch(user.ID, model.KindEnrollment, "kept", "1")
	svc.Dispatch(user.ID, model.KindEnrollment, "dropped", "2")

	go svc.Run()
	svc.Stop()

	sent := m.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "kept", sent[0].Subject)
}

func TestDeliverSkipsUnknownRecipient(t *testing.T) {
	db := setupTestDB(t)

	m := &fakeMailer{}
	svc := NewNotificationService(repository.NewUserRepository(db), m, 8)
	go svc.Run()

	svc.Dispatch(9999, model.KindEnrollment, "orphan", "nobody home")
	svc.Stop()

	assert.Empty(t, m.Sent())
	assert.Zero(t, m.Attempts())
}

func TestDeliverSwallowsMailerError(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "unlucky", model.Learner, model.DefaultNotificationPreferences())

	m := &fakeMailer{failWith: errors.New("smtp: connection refused")}
	svc := NewNotificationService(repository.NewUserRepository(db), m, 8)
	go svc.Run()

	svc.Dispatch(user.ID, model.KindEnrollment, "doomed", "never arrives")
	svc.Stop()

	assert.Equal(t, 1, m.Attempts())
	assert.Empty(t, m.Sent())
}

func TestStopIsIdempotent(t *testing.T) {
	db := setupTestDB(t)

	svc := NewNotificationService(repository.NewUserRepository(db), &fakeMailer{}, 1)
	go svc.Run()

	svc.Stop()
	svc.Stop()
}
