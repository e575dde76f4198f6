package model

import (
	"time"
)

// Question is the persisted form of an ingested quiz question. Name is the
// natural key used by upserts; rows are never physically deleted, DeletedFlg
// marks them logically absent.
type Question struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	Name       string    `json:"name" gorm:"uniqueIndex;not null"`
	Type       string    `json:"type" gorm:"not null"`
	Text       string    `json:"text" gorm:"type:text;not null"`
	LevelCd    *string   `json:"level_cd,omitempty" gorm:"index"`
	DeletedFlg bool      `json:"-" gorm:"not null;default:false"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
