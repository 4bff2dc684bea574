package service

import (
	"errors"
	"time"
	"workshop_hub_backend/internal/model"
	"workshop_hub_backend/internal/repository"
	"workshop_hub_backend/internal/util"

	"gorm.io/gorm"
)

type WorkshopService struct {
	WorkshopRepo *repository.WorkshopRepository
	ActivityRepo *repository.ActivityRepository
}

func NewWorkshopService(workshopRepo *repository.WorkshopRepository, activityRepo *repository.ActivityRepository) *WorkshopService {
	return &WorkshopService{
		WorkshopRepo: workshopRepo,
		ActivityRepo: activityRepo,
	}
}

func (s *WorkshopService) List() ([]model.Workshop, error) {
	return s.WorkshopRepo.ListByTitle()
}

func (s *WorkshopService) Get(id uint) (*model.Workshop, error) {
	workshop, err := s.WorkshopRepo.FindWithActivities(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrWorkshopNotFound
	}
	return workshop, err
}

func (s *WorkshopService) Create(mentorID uint, title, description string) (*model.Workshop, error) {
	workshop := &model.Workshop{
		Title:       title,
		Description: description,
		MentorID:    mentorID,
	}
	if err := s.WorkshopRepo.Create(workshop); err != nil {
		return nil, err
	}
	return workshop, nil
}

// AddActivity 新建活动并追加到工作坊的活动列表
func (s *WorkshopService) AddActivity(workshopID uint, title, description string, schedule time.Time) (*model.Activity, error) {
	workshop, err := s.WorkshopRepo.FindByID(workshopID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrWorkshopNotFound
		}
		return nil, err
	}

	activity := &model.Activity{
		Title:       title,
		Description: description,
		Schedule:    schedule,
		WorkshopID:  workshopID,
	}
	if err := s.ActivityRepo.Create(activity); err != nil {
		return nil, err
	}

	if err := s.WorkshopRepo.AppendActivity(workshop, activity); err != nil {
		return nil, err
	}

	return activity, nil
}

func (s *WorkshopService) GetActivity(id uint) (*model.Activity, error) {
	activity, err := s.ActivityRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrActivityNotFound
	}
	return activity, err
}

func (s *WorkshopService) UpdateActivity(id uint, title, description string, schedule time.Time) (*model.Activity, error) {
	activity, err := s.ActivityRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrActivityNotFound
		}
		return nil, err
	}

	activity.Title = title
	activity.Description = description
	activity.Schedule = schedule

	if err := s.ActivityRepo.Update(activity); err != nil {
		return nil, err
	}
	return activity, nil
}

// DeleteActivity 删除活动，同时从引用它的所有工作坊列表里摘除
func (s *WorkshopService) DeleteActivity(id uint) (*model.Activity, error) {
	activity, err := s.ActivityRepo.DeleteCascade(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrActivityNotFound
		}
		return nil, err
	}
	return activity, nil
}
