package model

import (
	"time"
)

// UserGroup is an audience dictionary entry keyed by a short code.
type UserGroup struct {
	UserGroupCd   string    `json:"user_group_cd" gorm:"primarykey;size:100"`
	UserGroupDesc *string   `json:"user_group_desc,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Level is a difficulty-tier dictionary entry keyed by a short code.
type Level struct {
	LevelCd   string    `json:"level_cd" gorm:"primarykey;size:100"`
	LevelDesc *string   `json:"level_desc,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserGroupLevel grants a group visibility into one level. Rows are replaced
// wholesale when access is redefined, never diffed row by row.
type UserGroupLevel struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	UserGroupCd string    `json:"user_group_cd" gorm:"size:100;not null;uniqueIndex:uq_user_group_levels"`
	LevelCd     string    `json:"level_cd" gorm:"size:100;not null;uniqueIndex:uq_user_group_levels"`
	CreatedAt   time.Time `json:"created_at"`
}

func (UserGroupLevel) TableName() string { return "user_group_levels" }
