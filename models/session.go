package models

import (
	"time"
)

// Session is one scored submission. Rows are written once and never updated.
type Session struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	UserID     string    `json:"user_id" gorm:"size:255;not null;index"`
	TestID     uint      `json:"test_id" gorm:"not null;index"`
	Result     string    `json:"result" gorm:"type:text;not null"`
	TotalScore int       `json:"total_score" gorm:"not null"`
	CreatedAt  time.Time `json:"created_at"`

	// Relationships
	Test       *Test              `json:"-"`
	Answers    []UserAnswer       `json:"answers" gorm:"foreignKey:SessionID;constraint:OnDelete:CASCADE"`
	Dimensions []SessionDimension `json:"dimensions" gorm:"foreignKey:SessionID;constraint:OnDelete:CASCADE"`
}

func (Session) TableName() string {
	return "test_sessions"
}
