package model

import (
	"time"
)

// AnswerMultichoice is one selectable option of a multichoice-family question.
// Keyed by (question_id, text) for upserts. Correctness is not stored; it is
// derived from fractions on the read side.
type AnswerMultichoice struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	QuestionID uint      `json:"question_id" gorm:"not null;uniqueIndex:uq_answers_multichoice_question_text"`
	Text       string    `json:"text" gorm:"type:text;not null;uniqueIndex:uq_answers_multichoice_question_text"`
	Fraction   float64   `json:"fraction" gorm:"not null;default:0"`
	DeletedFlg bool      `json:"-" gorm:"not null;default:false"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (AnswerMultichoice) TableName() string { return "answers_multichoice" }

// AnswerCoderunner is a reference ("correct") answer of a code-execution
// question. Presence alone marks it correct; there are no scoring fields.
type AnswerCoderunner struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	QuestionID uint      `json:"question_id" gorm:"not null;uniqueIndex:uq_answers_coderunner_question_text"`
	Text       string    `json:"text" gorm:"type:text;not null;uniqueIndex:uq_answers_coderunner_question_text"`
	DeletedFlg bool      `json:"-" gorm:"not null;default:false"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (AnswerCoderunner) TableName() string { return "answers_coderunner" }
