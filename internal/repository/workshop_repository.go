package repository

import (
	"workshop_hub_backend/internal/model"

	"gorm.io/gorm"
)

type WorkshopRepository struct {
	DB *gorm.DB
}

func NewWorkshopRepository(db *gorm.DB) *WorkshopRepository {
	return &WorkshopRepository{DB: db}
}

func (r *WorkshopRepository) Create(workshop *model.Workshop) error {
	return r.DB.Create(workshop).Error
}

func (r *WorkshopRepository) FindByID(id uint) (*model.Workshop, error) {
	var workshop model.Workshop
	err := r.DB.First(&workshop, id).Error
	return &workshop, err
}

func (r *WorkshopRepository) FindWithActivities(id uint) (*model.Workshop, error) {
	var workshop model.Workshop
	err := r.DB.Preload("Activities").First(&workshop, id).Error
	return &workshop, err
}

// ListByTitle 全部工作坊，按标题排序
func (r *WorkshopRepository) ListByTitle() ([]model.Workshop, error) {
	var workshops []model.Workshop
	err := r.DB.Order("title").Find(&workshops).Error
	return workshops, err
}

// AppendActivity 把活动追加到工作坊的活动列表
func (r *WorkshopRepository) AppendActivity(workshop *model.Workshop, activity *model.Activity) error {
	return r.DB.Model(workshop).Association("Activities").Append(activity)
}
