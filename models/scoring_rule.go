package models

// ScoringRule maps a score range to a result label. A nil DimensionCode scopes the rule to the
// total score.
type ScoringRule struct {
	ID            uint    `json:"id" gorm:"primaryKey"`
	TestID        uint    `json:"test_id" gorm:"not null;index"`
	MinScore      int     `json:"min_score" gorm:"not null"`
	MaxScore      *int    `json:"max_score"`
	ResultRange   string  `json:"result_range" gorm:"size:255;not null"`
	Description   *string `json:"description" gorm:"type:text"`
	DimensionCode *string `json:"dimension_code" gorm:"size:255;index"`
}

func (ScoringRule) TableName() string {
	return "test_results"
}
