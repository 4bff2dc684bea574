package model

type EnrollmentStatus string

const (
	EnrollmentPending  EnrollmentStatus = "pending"
	EnrollmentEnrolled EnrollmentStatus = "enrolled"
	// 声明保留但目前没有任何流程会迁移到该状态
	EnrollmentCompleted EnrollmentStatus = "completed"
)

// Enrollment 学员对工作坊的报名记录
// (learnerId, workshopId) 上没有唯一约束，重复的 pending 记录是可能出现的
// swagger:model Enrollment
type Enrollment struct {
	UUIDBase
	LearnerID  uint             `gorm:"index;not null" json:"learnerId"`
	WorkshopID uint             `gorm:"index;not null" json:"workshopId"`
	Status     EnrollmentStatus `gorm:"size:20;not null;default:'pending'" json:"status"`
}

func (Enrollment) TableName() string {
	return "enrollments"
}
