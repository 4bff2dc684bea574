package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

type UserRole string

const (
	Mentor  UserRole = "mentor"
	Learner UserRole = "learner"
)

// Capability 角色能力，路由守卫按能力而非角色字符串放行
type Capability string

const (
	CapManageWorkshops   Capability = "manage_workshops"   // 创建工作坊、增删改活动
	CapConfirmEnrollment Capability = "confirm_enrollment" // 确认学员报名
	CapEnroll            Capability = "enroll"             // 报名参加工作坊
)

var roleCapabilities = map[UserRole][]Capability{
	Mentor:  {CapManageWorkshops, CapConfirmEnrollment},
	Learner: {CapEnroll},
}

func (r UserRole) Can(c Capability) bool {
	for _, cap := range roleCapabilities[r] {
		if cap == c {
			return true
		}
	}
	return false
}

func (r UserRole) Valid() bool {
	return r == Mentor || r == Learner
}

// NotificationKind 用户可订阅的通知类别
type NotificationKind string

const (
	KindEnrollment     NotificationKind = "enrollment"
	KindWorkshopUpdate NotificationKind = "workshopUpdate"
	KindNewActivity    NotificationKind = "newActivity"
)

// NotificationPreferences 以 json 列存储的通知偏好，键集合固定
// swagger:model NotificationPreferences
type NotificationPreferences struct {
	Enrollment     bool `json:"enrollment"`
	WorkshopUpdate bool `json:"workshopUpdate"`
	NewActivity    bool `json:"newActivity"`
}

// DefaultNotificationPreferences 注册时默认全部开启
func DefaultNotificationPreferences() NotificationPreferences {
	return NotificationPreferences{
		Enrollment:     true,
		WorkshopUpdate: true,
		NewActivity:    true,
	}
}

// Allows 仅当对应类别显式开启时返回 true，未知类别一律 false
func (p NotificationPreferences) Allows(kind NotificationKind) bool {
	switch kind {
	case KindEnrollment:
		return p.Enrollment
	case KindWorkshopUpdate:
		return p.WorkshopUpdate
	case KindNewActivity:
		return p.NewActivity
	default:
		return false
	}
}

func (p NotificationPreferences) Value() (driver.Value, error) {
	return json.Marshal(p)
}

func (p *NotificationPreferences) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*p = NotificationPreferences{}
		return nil
	case []byte:
		return json.Unmarshal(v, p)
	case string:
		return json.Unmarshal([]byte(v), p)
	default:
		return fmt.Errorf("unsupported notification preferences column type %T", value)
	}
}

// swagger:model User
type User struct {
	BaseModel
	Name                    string                  `gorm:"size:100;not null" json:"name"`
	Email                   string                  `gorm:"size:100;unique;not null" json:"email"`
	Password                string                  `gorm:"size:100;not null" json:"-"`
	Role                    UserRole                `gorm:"size:20;not null;default:'learner'" json:"role"`
	Avatar                  string                  `gorm:"size:255" json:"avatar"`
	Workshops               []Workshop              `gorm:"many2many:user_workshops" json:"workshops,omitempty"`
	NotificationPreferences NotificationPreferences `gorm:"type:json" json:"notificationPreferences"`
}

func (User) TableName() string {
	return "users"
}

// PublicUser 对外暴露的用户字段
// swagger:model PublicUser
type PublicUser struct {
	ID    uint     `json:"id"`
	Name  string   `json:"name"`
	Email string   `json:"email"`
	Role  UserRole `json:"role"`
}

func (u *User) Public() PublicUser {
	return PublicUser{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
	}
}
