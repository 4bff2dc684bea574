package repository

import (
	"workshop_hub_backend/internal/model"

	"gorm.io/gorm"
)

type ActivityRepository struct {
	DB *gorm.DB
}

func NewActivityRepository(db *gorm.DB) *ActivityRepository {
	return &ActivityRepository{DB: db}
}

func (r *ActivityRepository) Create(activity *model.Activity) error {
	return r.DB.Create(activity).Error
}

func (r *ActivityRepository) FindByID(id uint) (*model.Activity, error) {
	var activity model.Activity
	err := r.DB.First(&activity, id).Error
	return &activity, err
}

func (r *ActivityRepository) Update(activity *model.Activity) error {
	return r.DB.Save(activity).Error
}

// DeleteCascade 删除活动并从所有工作坊的活动列表里摘除引用
func (r *ActivityRepository) DeleteCascade(id uint) (*model.Activity, error) {
	var activity model.Activity
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&activity, id).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM workshop_activities WHERE activity_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&activity).Error
	})
	if err != nil {
		return nil, err
	}
	return &activity, nil
}
