package service

import (
	"sync"
	"workshop_hub_backend/internal/model"
	"workshop_hub_backend/internal/repository"
	"workshop_hub_backend/pkg/logger"
	"workshop_hub_backend/pkg/mailer"
	"workshop_hub_backend/pkg/monitoring"

	"go.uber.org/zap"
)

// Notification 待投递的一封通知邮件
type Notification struct {
	UserID  uint
	Kind    model.NotificationKind
	Subject string
	Body    string
}

// NotificationService 报名事件的通知网关与分发器
// 投递是尽力而为的：入队非阻塞，失败只记日志，绝不影响主流程
type NotificationService struct {
	UserRepo *repository.UserRepository
	Mailer   mailer.Mailer

	queue    chan Notification
	quit     chan struct{}
	finished chan struct{}
	stopOnce sync.Once
}

func NewNotificationService(userRepo *repository.UserRepository, m mailer.Mailer, queueSize int) *NotificationService {
	return &NotificationService{
		UserRepo: userRepo,
		Mailer:   m,
		queue:    make(chan Notification, queueSize),
		quit:     make(chan struct{}),
		finished: make(chan struct{}),
	}
}

// CanNotify 用户缺失或未显式开启对应类别时返回 false
// 偏好可能在请求与确认之间变更，每次分发决策都要用新取的用户记录调用
func (s *NotificationService) CanNotify(user *model.User, kind model.NotificationKind) bool {
	if user == nil {
		return false
	}
	return user.NotificationPreferences.Allows(kind)
}

// Dispatch 非阻塞入队，队列满了直接丢弃并告警
func (s *NotificationService) Dispatch(userID uint, kind model.NotificationKind, subject, body string) {
	n := Notification{UserID: userID, Kind: kind, Subject: subject, Body: body}
	select {
	case s.queue <- n:
	default:
		logger.Log.Warn("notification queue full, dropping",
			zap.Uint("userId", userID),
			zap.String("kind", string(kind)))
		monitoring.NotificationCounter.WithLabelValues(string(kind), "dropped").Inc()
	}
}

// Run 分发协程，进程启动时 go Run()
func (s *NotificationService) Run() {
	defer close(s.finished)
	for {
		select {
		case n := <-s.queue:
			s.deliver(n)
		case <-s.quit:
			// 停机前把队里剩余的送完
			for {
				select {
				case n := <-s.queue:
					s.deliver(n)
				default:
					return
				}
			}
		}
	}
}

// Stop 优雅停机，等待队列排空
func (s *NotificationService) Stop() {
	s.stopOnce.Do(func() {
		close(s.quit)
	})
	<-s.finished
}

func (s *NotificationService) deliver(n Notification) {
	user, err := s.UserRepo.FindByID(n.UserID)
	if err != nil {
		logger.Log.Warn("notification recipient not found",
			zap.Uint("userId", n.UserID),
			zap.Error(err))
		monitoring.NotificationCounter.WithLabelValues(string(n.Kind), "skipped").Inc()
		return
	}

	if err := s.Mailer.Send(user.Email, n.Subject, n.Body); err != nil {
		logger.Log.Warn("notification delivery failed",
			zap.Uint("userId", n.UserID),
			zap.String("kind", string(n.Kind)),
			zap.Error(err))
		monitoring.NotificationCounter.WithLabelValues(string(n.Kind), "failed").Inc()
		return
	}

	logger.Log.Info("notification sent",
		zap.Uint("userId", n.UserID),
		zap.String("kind", string(n.Kind)))
	monitoring.NotificationCounter.WithLabelValues(string(n.Kind), "sent").Inc()
}
