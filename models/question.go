package models

import (
	"time"

	"gorm.io/gorm"
)

type Question struct {
	ID         uint           `json:"id" gorm:"primaryKey"`
	TestID     uint           `json:"test_id" gorm:"not null;index"`
	Text       string         `json:"text" gorm:"type:text;not null"`
	OrderIndex int            `json:"order_index" gorm:"not null"` // 1-based position in the test
	CreatedAt  time.Time      `json:"-"`
	UpdatedAt  time.Time      `json:"-"`
	DeletedAt  gorm.DeletedAt `json:"-" gorm:"index"`

	// Relationships
	Options []Option `json:"options" gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE"`
}
