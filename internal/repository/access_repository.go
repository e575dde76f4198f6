package repository

import (
	"github.com/Thales-OM/hse-prog-task-transformer/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AccessRepository interface {
	CreateUserGroup(group model.UserGroup) error
	CreateLevel(level model.Level) error
	GroupExists(groupCd string) (bool, error)
	LevelExists(levelCd string) (bool, error)
	GroupHasLevel(groupCd, levelCd string) (bool, error)
	// ReplaceGroupLevels swaps out the whole grant set of a group in one
	// transaction (delete then reinsert, no row-by-row diffing).
	ReplaceGroupLevels(groupCd string, levelCds []string) error
	AddGroupLevel(groupCd, levelCd string) error
}

type accessRepository struct {
	db *gorm.DB
}

func NewAccessRepository(db *gorm.DB) AccessRepository {
	return &accessRepository{db: db}
}

func (r *accessRepository) CreateUserGroup(group model.UserGroup) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_group_cd"}},
		DoUpdates: clause.AssignmentColumns([]string{"user_group_desc", "updated_at"}),
	}).Create(&group).Error
}

func (r *accessRepository) CreateLevel(level model.Level) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "level_cd"}},
		DoUpdates: clause.AssignmentColumns([]string{"level_desc", "updated_at"}),
	}).Create(&level).Error
}

func (r *accessRepository) GroupExists(groupCd string) (bool, error) {
	var count int64
	err := r.db.Model(&model.UserGroup{}).Where("user_group_cd = ?", groupCd).Count(&count).Error
	return count > 0, err
}

func (r *accessRepository) LevelExists(levelCd string) (bool, error) {
	var count int64
	err := r.db.Model(&model.Level{}).Where("level_cd = ?", levelCd).Count(&count).Error
	return count > 0, err
}

func (r *accessRepository) GroupHasLevel(groupCd, levelCd string) (bool, error) {
	var count int64
	err := r.db.Model(&model.UserGroupLevel{}).
		Where("user_group_cd = ? AND level_cd = ?", groupCd, levelCd).
		Count(&count).Error
	return count > 0, err
}

func (r *accessRepository) ReplaceGroupLevels(groupCd string, levelCds []string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_group_cd = ?", groupCd).Delete(&model.UserGroupLevel{}).Error; err != nil {
			return err
		}
		if len(levelCds) == 0 {
			return nil
		}
		links := make([]model.UserGroupLevel, 0, len(levelCds))
		for _, levelCd := range levelCds {
			links = append(links, model.UserGroupLevel{UserGroupCd: groupCd, LevelCd: levelCd})
		}
		return tx.Create(&links).Error
	})
}

func (r *accessRepository) AddGroupLevel(groupCd, levelCd string) error {
	link := model.UserGroupLevel{UserGroupCd: groupCd, LevelCd: levelCd}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_group_cd"}, {Name: "level_cd"}},
		DoNothing: true,
	}).Create(&link).Error
}
