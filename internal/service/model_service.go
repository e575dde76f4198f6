package service

import (
	"github.com/Thales-OM/hse-prog-task-transformer/internal/dto"
	"github.com/Thales-OM/hse-prog-task-transformer/internal/repository"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
)

// ModelService manages the inference engine registry.
type ModelService interface {
	CreateModel(req dto.PostModelRequest) (*dto.ModelResponse, error)
}

type modelService struct {
	modelRepo repository.LLModelRepository
}

func NewModelService(modelRepo repository.LLModelRepository) ModelService {
	return &modelService{modelRepo: modelRepo}
}

func (s *modelService) CreateModel(req dto.PostModelRequest) (*dto.ModelResponse, error) {
	created, err := s.modelRepo.Create(req.BaseModelName, req.ModelName)
	if err != nil {
		log.Error().Err(err).Str("base", req.BaseModelName).Msg("Failed to create model")
		return nil, err
	}
	log.Info().Str("base", created.BaseModelName).Int("version", created.Version).Msg("Model registered")

	var resp dto.ModelResponse
	if err := copier.Copy(&resp, created); err != nil {
		return nil, err
	}
	return &resp, nil
}
