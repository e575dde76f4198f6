package repository

import (
	"github.com/Thales-OM/hse-prog-task-transformer/internal/model"
	"gorm.io/gorm"
)

type InferenceRepository interface {
	Create(inference *model.Inference) error
	FindIDsByQuestion(questionID uint) ([]uint, error)
}

type inferenceRepository struct {
	db *gorm.DB
}

func NewInferenceRepository(db *gorm.DB) InferenceRepository {
	return &inferenceRepository{db: db}
}

func (r *inferenceRepository) Create(inference *model.Inference) error {
	return r.db.Create(inference).Error
}

func (r *inferenceRepository) FindIDsByQuestion(questionID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&model.Inference{}).
		Where("question_id = ?", questionID).
		Order("id ASC").
		Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}
