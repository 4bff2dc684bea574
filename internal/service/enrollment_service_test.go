package service

import (
	"testing"
	"time"
	"workshop_hub_backend/internal/model"
	"workshop_hub_backend/internal/repository"
	"workshop_hub_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type enrollmentFixture struct {
	db       *gorm.DB
	mailer   *fakeMailer
	notifier *NotificationService
	svc      *EnrollmentService
}

func newEnrollmentFixture(t *testing.T) *enrollmentFixture {
	t.Helper()

	db := setupTestDB(t)
	userRepo := repository.NewUserRepository(db)
	m := &fakeMailer{}
	notifier := NewNotificationService(userRepo, m, 16)
	go notifier.Run()
	t.Cleanup(notifier.Stop)

	svc := NewEnrollmentService(
		userRepo,
		repository.NewWorkshopRepository(db),
		repository.NewEnrollmentRepository(db),
		notifier,
	)
	return &enrollmentFixture{db: db, mailer: m, notifier: notifier, svc: svc}
}

func pendingCount(t *testing.T, db *gorm.DB, learnerID, workshopID uint) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(&model.Enrollment{}).
		Where("learner_id = ? AND workshop_id = ? AND status = ?", learnerID, workshopID, model.EnrollmentPending).
		Count(&count).Error)
	return count
}

func TestRequestCreatesPendingAndNotifiesMentor(t *testing.T) {
	f := newEnrollmentFixture(t)
	mentor := seedUser(t, f.db, "mentor", model.Mentor, model.DefaultNotificationPreferences())
	learner := seedUser(t, f.db, "learner", model.Learner, model.DefaultNotificationPreferences())
	workshop := seedWorkshop(t, f.db, "Go Basics", mentor.ID)

	result, err := f.svc.Request(learner.ID, workshop.ID)
	require.NoError(t, err)
	assert.Equal(t, "Successfully enrolled in the workshop!", result.Message)
	assert.Equal(t, learner.ID, result.User.ID)
	assert.Equal(t, workshop.ID, result.Workshop.ID)

	// pending 记录 + 学员工作坊列表都已写入
	assert.EqualValues(t, 1, pendingCount(t, f.db, learner.ID, workshop.ID))
	enrolled, err := f.svc.ListEnrolled(learner.ID)
	require.NoError(t, err)
	require.Len(t, enrolled, 1)
	assert.Equal(t, workshop.ID, enrolled[0].ID)

	f.notifier.Stop()
	sent := f.mailer.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, mentor.Email, sent[0].To)
	assert.Equal(t, "New enrollment request", sent[0].Subject)
	assert.Contains(t, sent[0].Body, "Go Basics")
}

func TestRequestUnknownWorkshop(t *testing.T) {
	f := newEnrollmentFixture(t)
	learner := seedUser(t, f.db, "learner", model.Learner, model.DefaultNotificationPreferences())

	_, err := f.svc.Request(learner.ID, 404)
	assert.ErrorIs(t, err, util.ErrWorkshopNotFound)
}

func TestRequestUnknownLearner(t *testing.T) {
	f := newEnrollmentFixture(t)
	mentor := seedUser(t, f.db, "mentor", model.Mentor, model.DefaultNotificationPreferences())
	workshop := seedWorkshop(t, f.db, "Go Basics", mentor.ID)

	_, err := f.svc.Request(404, workshop.ID)
	assert.ErrorIs(t, err, util.ErrUserNotFound)
}

func TestRequestRejectsDuplicate(t *testing.T) {
	f := newEnrollmentFixture(t)
	mentor := seedUser(t, f.db, "mentor", model.Mentor, model.DefaultNotificationPreferences())
	learner := seedUser(t, f.db, "learner", model.Learner, model.DefaultNotificationPreferences())
	workshop := seedWorkshop(t, f.db, "Go Basics", mentor.ID)

	_, err := f.svc.Request(learner.ID, workshop.ID)
	require.NoError(t, err)

	_, err = f.svc.Request(learner.ID, workshop.ID)
	assert.ErrorIs(t, err, util.ErrAlreadyEnrolled)
	assert.EqualValues(t, 1, pendingCount(t, f.db, learner.ID, workshop.ID))
}

func TestRequestSkipsMentorWhoOptedOut(t *testing.T) {
	f := newEnrollmentFixture(t)
	prefs := model.DefaultNotificationPreferences()
	prefs.Enrollment = false
	mentor := seedUser(t, f.db, "mentor", model.Mentor, prefs)
	learner := seedUser(t, f.db, "learner", model.Learner, model.DefaultNotificationPreferences())
	workshop := seedWorkshop(t, f.db, "Go Basics", mentor.ID)

	_, err := f.svc.Request(learner.ID, workshop.ID)
	require.NoError(t, err)

	f.notifier.Stop()
	assert.Empty(t, f.mailer.Sent())
	// 通知被跳过不影响报名本身
	assert.EqualValues(t, 1, pendingCount(t, f.db, learner.ID, workshop.ID))
}

func TestConfirmSetsEnrolledAndNotifiesLearner(t *testing.T) {
	f := newEnrollmentFixture(t)
	mentor := seedUser(t, f.db, "mentor", model.Mentor, model.DefaultNotificationPreferences())
	learner := seedUser(t, f.db, "learner", model.Learner, model.DefaultNotificationPreferences())
	workshop := seedWorkshop(t, f.db, "Go Basics", mentor.ID)

	_, err := f.svc.Request(learner.ID, workshop.ID)
	require.NoError(t, err)

	enrollment, err := f.svc.Confirm(workshop.ID, learner.ID)
	require.NoError(t, err)
	assert.Equal(t, model.EnrollmentEnrolled, enrollment.Status)

	var stored model.Enrollment
	require.NoError(t, f.db.Where("learner_id = ? AND workshop_id = ?", learner.ID, workshop.ID).First(&stored).Error)
	assert.Equal(t, model.EnrollmentEnrolled, stored.Status)

	f.notifier.Stop()
	sent := f.mailer.Sent()
	require.Len(t, sent, 2) // 请求通知导师 + 确认通知学员
	assert.Equal(t, learner.Email, sent[1].To)
	assert.Equal(t, "Enrollment confirmed", sent[1].Subject)
	assert.Contains(t, sent[1].Body, "Go Basics")
}

func TestConfirmAbsentPairHasNoSideEffects(t *testing.T) {
	f := newEnrollmentFixture(t)
	mentor := seedUser(t, f.db, "mentor", model.Mentor, model.DefaultNotificationPreferences())
	learner := seedUser(t, f.db, "learner", model.Learner, model.DefaultNotificationPreferences())
	seedWorkshop(t, f.db, "Go Basics", mentor.ID)

	_, err := f.svc.Confirm(12345, learner.ID)
	assert.ErrorIs(t, err, util.ErrEnrollmentNotFound)

	var count int64
	require.NoError(t, f.db.Model(&model.Enrollment{}).Count(&count).Error)
	assert.Zero(t, count)

	f.notifier.Stop()
	assert.Empty(t, f.mailer.Sent())
}

func TestConfirmNeverReverts(t *testing.T) {
	f := newEnrollmentFixture(t)
	mentor := seedUser(t, f.db, "mentor", model.Mentor, model.DefaultNotificationPreferences())
	learner := seedUser(t, f.db, "learner", model.Learner, model.DefaultNotificationPreferences())
	workshop := seedWorkshop(t, f.db, "Go Basics", mentor.ID)

	_, err := f.svc.Request(learner.ID, workshop.ID)
	require.NoError(t, err)

	first, err := f.svc.Confirm(workshop.ID, learner.ID)
	require.NoError(t, err)
	assert.Equal(t, model.EnrollmentEnrolled, first.Status)

	// 重复确认保持 enrolled，不回退 pending
	second, err := f.svc.Confirm(workshop.ID, learner.ID)
	require.NoError(t, err)
	assert.Equal(t, model.EnrollmentEnrolled, second.Status)
}

func TestListEnrolledExpandsActivities(t *testing.T) {
	f := newEnrollmentFixture(t)
	mentor := seedUser(t, f.db, "mentor", model.Mentor, model.DefaultNotificationPreferences())
	learner := seedUser(t, f.db, "learner", model.Learner, model.DefaultNotificationPreferences())
	workshop := seedWorkshop(t, f.db, "Go Basics", mentor.ID)

	workshopSvc := NewWorkshopService(repository.NewWorkshopRepository(f.db), repository.NewActivityRepository(f.db))
	_, err := workshopSvc.AddActivity(workshop.ID, "Intro Session", "getting started with the basics", time.Now().Add(24*time.Hour))
	require.NoError(t, err)

	_, err = f.svc.Request(learner.ID, workshop.ID)
	require.NoError(t, err)

	enrolled, err := f.svc.ListEnrolled(learner.ID)
	require.NoError(t, err)
	require.Len(t, enrolled, 1)
	require.Len(t, enrolled[0].Activities, 1)
	assert.Equal(t, "Intro Session", enrolled[0].Activities[0].Title)
}

func TestListEnrolledUnknownUser(t *testing.T) {
	f := newEnrollmentFixture(t)

	_, err := f.svc.ListEnrolled(404)
	assert.ErrorIs(t, err, util.ErrUserNotFound)
}
