package models

// UserAnswer is the submitted (question, option) pair, stored verbatim for audit.
type UserAnswer struct {
	ID               uint `json:"id" gorm:"primaryKey"`
	SessionID        uint `json:"session_id" gorm:"not null;index"`
	QuestionID       uint `json:"question_id" gorm:"not null"`
	SelectedOptionID uint `json:"selected_option_id" gorm:"not null"`
}
