package repository

import (
	"github.com/Thales-OM/hse-prog-task-transformer/internal/model"
	"gorm.io/gorm"
)

type LLModelRepository interface {
	// Create inserts the model with the next version for its base name.
	// Versions are assigned once here and are immutable afterwards.
	Create(baseModelName, modelName string) (*model.LLModel, error)
	FindByID(id uint) (*model.LLModel, error)
}

type llModelRepository struct {
	db *gorm.DB
}

func NewLLModelRepository(db *gorm.DB) LLModelRepository {
	return &llModelRepository{db: db}
}

func (r *llModelRepository) Create(baseModelName, modelName string) (*model.LLModel, error) {
	row := model.LLModel{BaseModelName: baseModelName, ModelName: modelName}
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var maxVersion int
		err := tx.Model(&model.LLModel{}).
			Where("base_model_name = ?", baseModelName).
			Select("COALESCE(MAX(version), 0)").
			Scan(&maxVersion).Error
		if err != nil {
			return err
		}
		row.Version = maxVersion + 1
		return tx.Create(&row).Error
	})
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *llModelRepository) FindByID(id uint) (*model.LLModel, error) {
	var m model.LLModel
	if err := r.db.First(&m, id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}
