package model

import (
	"time"
)

// TestCase belongs to a coderunner question, keyed by (question_id, input).
type TestCase struct {
	ID             uint      `gorm:"primarykey" json:"id"`
	QuestionID     uint      `json:"question_id" gorm:"not null;uniqueIndex:uq_test_cases_question_input"`
	Code           *string   `json:"code,omitempty" gorm:"type:text"`
	Input          string    `json:"input" gorm:"type:text;not null;uniqueIndex:uq_test_cases_question_input"`
	ExpectedOutput string    `json:"expected_output" gorm:"type:text;not null"`
	Example        bool      `json:"example" gorm:"not null;default:false"`
	DeletedFlg     bool      `json:"-" gorm:"not null;default:false"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
