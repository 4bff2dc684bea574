package service

import (
	"errors"
	"workshop_hub_backend/internal/model"
	"workshop_hub_backend/internal/repository"
	"workshop_hub_backend/internal/util"

	"gorm.io/gorm"
)

type UserService struct {
	UserRepo *repository.UserRepository
}

func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{UserRepo: userRepo}
}

func (s *UserService) Get(id uint) (*model.User, error) {
	user, err := s.UserRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrUserNotFound
	}
	return user, err
}

// UpdatePreferences 通知偏好整体替换，键集合固定
func (s *UserService) UpdatePreferences(userID uint, prefs model.NotificationPreferences) error {
	if _, err := s.Get(userID); err != nil {
		return err
	}
	return s.UserRepo.UpdatePreferences(userID, prefs)
}

func (s *UserService) UpdateAvatar(userID uint, url string) error {
	user, err := s.Get(userID)
	if err != nil {
		return err
	}
	user.Avatar = url
	return s.UserRepo.Update(user)
}
