package service

import (
	"fmt"

	"github.com/Thales-OM/hse-prog-task-transformer/internal/dto"
	"github.com/Thales-OM/hse-prog-task-transformer/internal/model"
	"github.com/Thales-OM/hse-prog-task-transformer/internal/repository"
	"github.com/rs/zerolog/log"
)

// AccessService administers the group/level dictionaries and the grants
// between them.
type AccessService interface {
	CreateUserGroup(req dto.PostUserGroupRequest) error
	CreateLevel(req dto.PostLevelRequest) error
	// SetGroupLevels replaces the group's grants wholesale.
	SetGroupLevels(groupCd string, levelCds []string) error
	// AddGroupLevel grants one extra level, keeping existing grants.
	AddGroupLevel(groupCd, levelCd string) error
}

type accessService struct {
	accessRepo repository.AccessRepository
}

func NewAccessService(accessRepo repository.AccessRepository) AccessService {
	return &accessService{accessRepo: accessRepo}
}

func (s *accessService) CreateUserGroup(req dto.PostUserGroupRequest) error {
	group := model.UserGroup{UserGroupCd: req.UserGroupCd, UserGroupDesc: req.UserGroupDesc}
	if err := s.accessRepo.CreateUserGroup(group); err != nil {
		return err
	}
	log.Info().Str("group", req.UserGroupCd).Msg("User group created")
	return nil
}

func (s *accessService) CreateLevel(req dto.PostLevelRequest) error {
	level := model.Level{LevelCd: req.LevelCd, LevelDesc: req.LevelDesc}
	if err := s.accessRepo.CreateLevel(level); err != nil {
		return err
	}
	log.Info().Str("level", req.LevelCd).Msg("Level created")
	return nil
}

func (s *accessService) SetGroupLevels(groupCd string, levelCds []string) error {
	if err := s.requireGroup(groupCd); err != nil {
		return err
	}
	for _, levelCd := range levelCds {
		if err := s.requireLevel(levelCd); err != nil {
			return err
		}
	}
	if err := s.accessRepo.ReplaceGroupLevels(groupCd, levelCds); err != nil {
		return err
	}
	log.Info().Str("group", groupCd).Strs("levels", levelCds).Msg("Group levels replaced")
	return nil
}

func (s *accessService) AddGroupLevel(groupCd, levelCd string) error {
	if err := s.requireGroup(groupCd); err != nil {
		return err
	}
	if err := s.requireLevel(levelCd); err != nil {
		return err
	}
	return s.accessRepo.AddGroupLevel(groupCd, levelCd)
}

func (s *accessService) requireGroup(groupCd string) error {
	exists, err := s.accessRepo.GroupExists(groupCd)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: %q", ErrUserGroupNotFound, groupCd)
	}
	return nil
}

func (s *accessService) requireLevel(levelCd string) error {
	exists, err := s.accessRepo.LevelExists(levelCd)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: %q", ErrLevelNotFound, levelCd)
	}
	return nil
}
