package models

type SessionDimension struct {
	ID            uint   `json:"-" gorm:"primaryKey"`
	SessionID     uint   `json:"-" gorm:"not null;index:idx_session_dimension,priority:1"`
	DimensionCode string `json:"dimension_code" gorm:"size:10;not null;index:idx_session_dimension,priority:2"`
	Score         int    `json:"score" gorm:"not null"`
	ResultRange   string `json:"result_range" gorm:"type:text;not null"`
}

func (SessionDimension) TableName() string {
	return "test_session_dimensions"
}
