package models

import (
	"time"

	"gorm.io/gorm"
)

// Option is an answer choice. Score is a point value, or a trait code for MBTI tests.
type Option struct {
	ID         uint           `json:"id" gorm:"primaryKey"`
	QuestionID uint           `json:"question_id" gorm:"not null;index"`
	Text       string         `json:"text" gorm:"size:255;not null"`
	Score      int            `json:"score" gorm:"not null"`
	CreatedAt  time.Time      `json:"-"`
	UpdatedAt  time.Time      `json:"-"`
	DeletedAt  gorm.DeletedAt `json:"-" gorm:"index"`

	// Relationships
	Question *Question `json:"-"`
}

func (Option) TableName() string {
	return "question_options"
}
