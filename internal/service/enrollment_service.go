package service

import (
	"errors"
	"fmt"
	"workshop_hub_backend/internal/model"
	"workshop_hub_backend/internal/repository"
	"workshop_hub_backend/internal/util"
	"workshop_hub_backend/pkg/logger"
	"workshop_hub_backend/pkg/monitoring"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type EnrollmentService struct {
	UserRepo       *repository.UserRepository
	WorkshopRepo   *repository.WorkshopRepository
	EnrollmentRepo *repository.EnrollmentRepository
	Notifier       *NotificationService
}

func NewEnrollmentService(
	userRepo *repository.UserRepository,
	workshopRepo *repository.WorkshopRepository,
	enrollmentRepo *repository.EnrollmentRepository,
	notifier *NotificationService,
) *EnrollmentService {
	return &EnrollmentService{
		UserRepo:       userRepo,
		WorkshopRepo:   workshopRepo,
		EnrollmentRepo: enrollmentRepo,
		Notifier:       notifier,
	}
}

// EnrollmentRequestResult 报名请求的响应体
type EnrollmentRequestResult struct {
	Message  string           `json:"message"`
	User     model.PublicUser `json:"user"`
	Workshop *model.Workshop  `json:"workshop"`
}

// Request 学员发起报名：pending 记录 + 学员工作坊列表追加 + 通知导师
// 重复判定只看学员的工作坊列表，不查报名表（与来源行为一致，检查顺序不可调换）
func (s *EnrollmentService) Request(learnerID, workshopID uint) (*EnrollmentRequestResult, error) {
	workshop, err := s.WorkshopRepo.FindWithActivities(workshopID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrWorkshopNotFound
		}
		return nil, err
	}

	learner, err := s.UserRepo.FindByID(learnerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}

	enrolled, err := s.UserRepo.HasWorkshop(learnerID, workshopID)
	if err != nil {
		return nil, err
	}
	if enrolled {
		return nil, util.ErrAlreadyEnrolled
	}

	if err := s.UserRepo.AppendWorkshop(learner, workshop); err != nil {
		return nil, err
	}

	enrollment := &model.Enrollment{
		LearnerID:  learnerID,
		WorkshopID: workshopID,
		Status:     model.EnrollmentPending,
	}
	if err := s.EnrollmentRepo.Create(enrollment); err != nil {
		return nil, err
	}

	monitoring.EnrollmentCounter.WithLabelValues("requested").Inc()

	// 通知导师，尽力而为，失败不影响本次请求
	mentor, err := s.UserRepo.FindByID(workshop.MentorID)
	if err != nil {
		logger.Log.Warn("mentor not resolvable for enrollment notification",
			zap.Uint("mentorId", workshop.MentorID),
			zap.Error(err))
	} else if s.Notifier.CanNotify(mentor, model.KindEnrollment) {
		s.Notifier.Dispatch(mentor.ID, model.KindEnrollment,
			"New enrollment request",
			fmt.Sprintf("A learner has enrolled in your workshop: %s", workshop.Title))
	}

	return &EnrollmentRequestResult{
		Message:  "Successfully enrolled in the workshop!",
		User:     learner.Public(),
		Workshop: workshop,
	}, nil
}

// Confirm 导师确认报名：pending -> enrolled，通知学员
func (s *EnrollmentService) Confirm(workshopID, learnerID uint) (*model.Enrollment, error) {
	enrollment, err := s.EnrollmentRepo.ConfirmByPair(learnerID, workshopID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrEnrollmentNotFound
		}
		return nil, err
	}

	learner, err := s.UserRepo.FindByID(learnerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}

	monitoring.EnrollmentCounter.WithLabelValues("confirmed").Inc()

	if s.Notifier.CanNotify(learner, model.KindEnrollment) {
		body := "Your enrollment has been confirmed."
		if workshop, err := s.WorkshopRepo.FindByID(workshopID); err == nil {
			body = fmt.Sprintf("Your enrollment in the workshop %q has been confirmed.", workshop.Title)
		}
		s.Notifier.Dispatch(learner.ID, model.KindEnrollment, "Enrollment confirmed", body)
	}

	return enrollment, nil
}

// ListEnrolled 展开学员报名的全部工作坊，活动一并返回
func (s *EnrollmentService) ListEnrolled(userID uint) ([]model.Workshop, error) {
	user, err := s.UserRepo.FindWithWorkshops(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}
	return user.Workshops, nil
}
