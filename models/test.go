package models

import (
	"time"

	"gorm.io/gorm"
)

type Test struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	TestType    string         `json:"test_type" gorm:"size:100;uniqueIndex;not null"`
	Title       string         `json:"title" gorm:"size:255;not null"`
	Description *string        `json:"description"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"-"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`

	// Relationships
	Questions []Question    `json:"questions" gorm:"foreignKey:TestID;constraint:OnDelete:CASCADE"`
	Results   []ScoringRule `json:"results" gorm:"foreignKey:TestID;constraint:OnDelete:CASCADE"`
	Sessions  []Session     `json:"-" gorm:"foreignKey:TestID"`
}
