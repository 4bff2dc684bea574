package model

// swagger:model Workshop
type Workshop struct {
	BaseModel
	Title       string     `gorm:"size:100;not null" json:"title"`
	Description string     `gorm:"size:255;not null" json:"description"`
	MentorID    uint       `gorm:"index;not null" json:"mentorId"`
	Activities  []Activity `gorm:"many2many:workshop_activities" json:"activities,omitempty"`
}

func (Workshop) TableName() string {
	return "workshops"
}
