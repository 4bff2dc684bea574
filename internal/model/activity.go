package model

import "time"

// swagger:model Activity
type Activity struct {
	BaseModel
	Title       string    `gorm:"size:50;not null" json:"title"`
	Description string    `gorm:"size:255;not null" json:"description"`
	Schedule    time.Time `json:"schedule"`
	// 所属工作坊的反向引用
	WorkshopID uint `gorm:"index" json:"workshopId"`
}
