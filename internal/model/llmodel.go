package model

import (
	"time"
)

// LLModel describes one registered inference engine. Version is assigned at
// creation time, incrementing per distinct BaseModelName, and never changes.
type LLModel struct {
	ID            uint      `gorm:"primarykey" json:"id"`
	BaseModelName string    `json:"base_model_name" gorm:"not null;uniqueIndex:uq_models_base_version"`
	ModelName     string    `json:"model_name" gorm:"not null"`
	Version       int       `json:"version" gorm:"not null;uniqueIndex:uq_models_base_version"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (LLModel) TableName() string { return "models" }

// Inference stores one model response for a question. Thinking holds the
// extracted reasoning block when the model emitted one.
type Inference struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	QuestionID  uint      `json:"question_id" gorm:"not null;index"`
	ModelID     uint      `json:"model_id" gorm:"not null;index"`
	Thinking    *string   `json:"thinking,omitempty" gorm:"type:text"`
	Text        string    `json:"text" gorm:"type:text;not null"`
	Temperature float64   `json:"temperature" gorm:"not null"`
	CreatedAt   time.Time `json:"created_at"`
}
