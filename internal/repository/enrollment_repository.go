package repository

import (
	"workshop_hub_backend/internal/model"
	"workshop_hub_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type EnrollmentRepository struct {
	DB *gorm.DB
}

func NewEnrollmentRepository(db *gorm.DB) *EnrollmentRepository {
	return &EnrollmentRepository{DB: db}
}

// Create 新建 pending 报名记录
// (learnerId, workshopId) 不做唯一约束，与来源行为保持一致：
// 已存在同对 pending 记录时只告警，不去重
func (r *EnrollmentRepository) Create(enrollment *model.Enrollment) error {
	var existing int64
	r.DB.Model(&model.Enrollment{}).
		Where("learner_id = ? AND workshop_id = ? AND status = ?",
			enrollment.LearnerID, enrollment.WorkshopID, model.EnrollmentPending).
		Count(&existing)
	if existing > 0 && logger.Log != nil {
		logger.Log.Warn("duplicate pending enrollment created",
			zap.Uint("learnerId", enrollment.LearnerID),
			zap.Uint("workshopId", enrollment.WorkshopID))
	}

	return r.DB.Create(enrollment).Error
}

func (r *EnrollmentRepository) FindByPair(learnerID, workshopID uint) (*model.Enrollment, error) {
	var enrollment model.Enrollment
	err := r.DB.Where("learner_id = ? AND workshop_id = ?", learnerID, workshopID).
		Order("created_at").
		First(&enrollment).Error
	return &enrollment, err
}

// ConfirmByPair 查找并更新：匹配 (learnerId, workshopId) 的报名置为 enrolled，
// 返回更新后的记录；无匹配返回 gorm.ErrRecordNotFound
func (r *EnrollmentRepository) ConfirmByPair(learnerID, workshopID uint) (*model.Enrollment, error) {
	var enrollment model.Enrollment
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("learner_id = ? AND workshop_id = ?", learnerID, workshopID).
			Order("created_at").
			First(&enrollment).Error; err != nil {
			return err
		}
		enrollment.Status = model.EnrollmentEnrolled
		return tx.Save(&enrollment).Error
	})
	if err != nil {
		return nil, err
	}
	return &enrollment, nil
}
