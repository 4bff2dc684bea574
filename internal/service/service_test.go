package service

import (
	"fmt"
	"os"
	"sync"
	"testing"
	"workshop_hub_backend/internal/model"
	"workshop_hub_backend/internal/repository"
	"workshop_hub_backend/pkg/database"
	"workshop_hub_backend/pkg/logger"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	logger.Log = zap.NewNop()
	os.Exit(m.Run())
}

// 每个测试一份内存库，连接数限制为 1 避免拿到不同的内存实例
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	return db
}

// fakeMailer 记录投递结果，可注入失败
type fakeMailer struct {
	mu       sync.Mutex
	sent     []sentMail
	attempts int
	failWith error
}

type sentMail struct {
	To      string
	Subject string
	Body    string
}

func (m *fakeMailer) Send(to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.attempts++
	if m.failWith != nil {
		return m.failWith
	}
	m.sent = append(m.sent, sentMail{To: to, Subject: subject, Body: body})
	return nil
}

func (m *fakeMailer) Sent() []sentMail {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]sentMail, len(m.sent))
	copy(out, m.sent)
	return out
}

func (m *fakeMailer) Attempts() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.attempts
}

func seedUser(t *testing.T, db *gorm.DB, name string, role model.UserRole, prefs model.NotificationPreferences) *model.User {
	t.Helper()

	user := &model.User{
		Name:                    name,
		Email:                   fmt.Sprintf("%s@test.local", name),
		Password:                "hashed-password",
		Role:                    role,
		NotificationPreferences: prefs,
	}
	require.NoError(t, repository.NewUserRepository(db).Create(user))
	return user
}

func seedWorkshop(t *testing.T, db *gorm.DB, title string, mentorID uint) *model.Workshop {
	t.Helper()

	workshop := &model.Workshop{
		Title:       title,
		Description: "a workshop for testing",
		MentorID:    mentorID,
	}
	require.NoError(t, repository.NewWorkshopRepository(db).Create(workshop))
	return workshop
}
