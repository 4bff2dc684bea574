package repository

import (
	"time"
	"workshop_hub_backend/internal/model"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(user *model.User) error {
	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	if user.UpdatedAt.IsZero() {
		user.UpdatedAt = now
	}
	return r.DB.Create(user).Error
}

func (r *UserRepository) FindByID(id uint) (*model.User, error) {
	var user model.User
	err := r.DB.First(&user, id).Error
	return &user, err
}

func (r *UserRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("email = ?", email).First(&user).Error
	return &user, err
}

func (r *UserRepository) Update(user *model.User) error {
	return r.DB.Save(user).Error
}

// HasWorkshop 学员的工作坊列表中是否已包含该工作坊
func (r *UserRepository) HasWorkshop(userID, workshopID uint) (bool, error) {
	var count int64
	err := r.DB.Table("user_workshops").
		Where("user_id = ? AND workshop_id = ?", userID, workshopID).
		Count(&count).Error
	return count > 0, err
}

// AppendWorkshop 把工作坊追加到学员的列表，调用前须做重复检查
func (r *UserRepository) AppendWorkshop(user *model.User, workshop *model.Workshop) error {
	return r.DB.Model(user).Association("Workshops").Append(workshop)
}

// FindWithWorkshops 取用户及其报名的工作坊，活动一并展开
func (r *UserRepository) FindWithWorkshops(id uint) (*model.User, error) {
	var user model.User
	err := r.DB.Preload("Workshops.Activities").First(&user, id).Error
	return &user, err
}

func (r *UserRepository) UpdatePreferences(userID uint, prefs model.NotificationPreferences) error {
	return r.DB.Model(&model.User{}).
		Where("id = ?", userID).
		Update("notification_preferences", prefs).
		Error
}
