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

func newWorkshopService(t *testing.T) (*WorkshopService, *gorm.DB) {
	t.Helper()

	db := setupTestDB(t)
	return NewWorkshopService(repository.NewWorkshopRepository(db), repository.NewActivityRepository(db)), db
}

func TestListSortsByTitle(t *testing.T) {
	svc, db := newWorkshopService(t)
	mentor := seedUser(t, db, "mentor", model.Mentor, model.DefaultNotificationPreferences())

	_, err := svc.Create(mentor.ID, "Zig Basics", "systems programming workshop")
	require.NoError(t, err)
	_, err = svc.Create(mentor.ID, "API Design", "designing pragmatic web APIs")
	require.NoError(t, err)

	workshops, err := svc.List()
	require.NoError(t, err)
	require.Len(t, workshops, 2)
	assert.Equal(t, "API Design", workshops[0].Title)
	assert.Equal(t, "Zig Basics", workshops[1].Title)
}

func TestGetUnknownWorkshop(t *testing.T) {
	svc, _ := newWorkshopService(t)

	_, err := svc.Get(404)
	assert.ErrorIs(t, err, util.ErrWorkshopNotFound)
}

func TestAddActivityAppendsToWorkshop(t *testing.T) {
	svc, db := newWorkshopService(t)
	mentor := seedUser(t, db, "mentor", model.Mentor, model.DefaultNotificationPreferences())
	workshop := seedWorkshop(t, db, "Go Basics", mentor.ID)

	schedule := time.Now().Add(48 * time.Hour)
	activity, err := svc.AddActivity(workshop.ID, "Intro Session", "getting started with the basics", schedule)
	require.NoError(t, err)
	assert.NotZero(t, activity.ID)
	assert.Equal(t, workshop.ID, activity.WorkshopID)

	got, err := svc.Get(workshop.ID)
	require.NoError(t, err)
	require.Len(t, got.Activities, 1)
	assert.Equal(t, "Intro Session", got.Activities[0].Title)
}

func TestAddActivityUnknownWorkshop(t *testing.T) {
	svc, _ := newWorkshopService(t)

	_, err := svc.AddActivity(404, "Intro Session", "getting started with the basics", time.Now())
	assert.ErrorIs(t, err, util.ErrWorkshopNotFound)
}

func TestUpdateActivityReplacesFields(t *testing.T) {
	svc, db := newWorkshopService(t)
	mentor := seedUser(t, db, "mentor", model.Mentor, model.DefaultNotificationPreferences())
	workshop := seedWorkshop(t, db, "Go Basics", mentor.ID)

	activity, err := svc.AddActivity(workshop.ID, "Intro Session", "getting started with the basics", time.Now().Add(time.Hour))
	require.NoError(t, err)

	newSchedule := time.Now().Add(72 * time.Hour)
	updated, err := svc.UpdateActivity(activity.ID, "Deep Dive", "internals walkthrough for veterans", newSchedule)
	require.NoError(t, err)
	assert.Equal(t, "Deep Dive", updated.Title)

	got, err := svc.GetActivity(activity.ID)
	require.NoError(t, err)
	assert.Equal(t, "Deep Dive", got.Title)
	assert.Equal(t, "internals walkthrough for veterans", got.Description)
}

func TestUpdateActivityUnknown(t *testing.T) {
	svc, _ := newWorkshopService(t)

	_, err := svc.UpdateActivity(404, "Deep Dive", "internals walkthrough for veterans", time.Now())
	assert.ErrorIs(t, err, util.ErrActivityNotFound)
}

func TestDeleteActivityCascades(t *testing.T) {
	svc, db := newWorkshopService(t)
	mentor := seedUser(t, db, "mentor", model.Mentor, model.DefaultNotificationPreferences())
	workshop := seedWorkshop(t, db, "Go Basics", mentor.ID)

	activity, err := svc.AddActivity(workshop.ID, "Intro Session", "getting started with the basics", time.Now().Add(time.Hour))
	require.NoError(t, err)

	deleted, err := svc.DeleteActivity(activity.ID)
	require.NoError(t, err)
	assert.Equal(t, activity.ID, deleted.ID)

	// 关联工作坊的活动列表同步摘除
	var joinRows int64
	require.NoError(t, db.Table("workshop_activities").Where("activity_id = ?", activity.ID).Count(&joinRows).Error)
	assert.Zero(t, joinRows)

	got, err := svc.Get(workshop.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Activities)

	_, err = svc.GetActivity(activity.ID)
	assert.ErrorIs(t, err, util.ErrActivityNotFound)
}

func TestDeleteActivityUnknown(t *testing.T) {
	svc, _ := newWorkshopService(t)

	_, err := svc.DeleteActivity(404)
	assert.ErrorIs(t, err, util.ErrActivityNotFound)
}
