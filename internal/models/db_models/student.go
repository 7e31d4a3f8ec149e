package db_models

import "gorm.io/gorm"

type Student struct {
	BaseModel
	StudentID string `gorm:"uniqueIndex;not null" json:"student_id"`
	Name      string `gorm:"not null" json:"name"`
	SchoolID  string `gorm:"index;not null" json:"school_id"`
	Class     string `json:"class"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address,omitempty"`
}

func (Student) TableName() string { return "students" }

func (s *Student) BeforeCreate(tx *gorm.DB) error {
	return s.BaseModel.BeforeCreate(tx)
}
