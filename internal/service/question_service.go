package service

import (
	"errors"
	"fmt"

	"github.com/Thales-OM/hse-prog-task-transformer/internal/dto"
	"github.com/Thales-OM/hse-prog-task-transformer/internal/model"
	"github.com/Thales-OM/hse-prog-task-transformer/internal/quizxml"
	"github.com/Thales-OM/hse-prog-task-transformer/internal/render"
	"github.com/Thales-OM/hse-prog-task-transformer/internal/repository"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// QuestionService is the read side: questions projected through the
// group/level visibility grants.
type QuestionService interface {
	ListQuestions(groupCd string) ([]dto.QuestionView, error)
	GetQuestion(groupCd string, id uint) (*dto.QuestionView, error)
	RandomQuestionID(groupCd string) (uint, error)
	// GetQuestionAdmin bypasses the access projection; admin-only callers.
	GetQuestionAdmin(id uint) (*dto.QuestionView, error)
	AssignLevel(questionID uint, levelCd string) error
}

type questionService struct {
	questionRepo  repository.QuestionRepository
	accessRepo    repository.AccessRepository
	inferenceRepo repository.InferenceRepository
}

func NewQuestionService(
	questionRepo repository.QuestionRepository,
	accessRepo repository.AccessRepository,
	inferenceRepo repository.InferenceRepository,
) QuestionService {
	return &questionService{
		questionRepo:  questionRepo,
		accessRepo:    accessRepo,
		inferenceRepo: inferenceRepo,
	}
}

func (s *questionService) ListQuestions(groupCd string) ([]dto.QuestionView, error) {
	if err := s.requireGroup(groupCd); err != nil {
		return nil, err
	}

	questions, err := s.questionRepo.FindVisible(groupCd)
	if err != nil {
		return nil, err
	}

	views := make([]dto.QuestionView, 0, len(questions))
	for _, q := range questions {
		view, err := s.buildView(q)
		if err != nil {
			return nil, err
		}
		views = append(views, *view)
	}
	return views, nil
}

func (s *questionService) GetQuestion(groupCd string, id uint) (*dto.QuestionView, error) {
	if err := s.requireGroup(groupCd); err != nil {
		return nil, err
	}

	question, err := s.questionRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuestionNotFound
		}
		return nil, err
	}

	// A question with no level assigned is linked to nobody.
	if question.LevelCd == nil {
		return nil, ErrAccessDenied
	}
	granted, err := s.accessRepo.GroupHasLevel(groupCd, *question.LevelCd)
	if err != nil {
		return nil, err
	}
	if !granted {
		log.Warn().Str("group", groupCd).Uint("questionID", id).Msg("Access denied to question level")
		return nil, ErrAccessDenied
	}

	return s.buildView(*question)
}

func (s *questionService) RandomQuestionID(groupCd string) (uint, error) {
	if err := s.requireGroup(groupCd); err != nil {
		return 0, err
	}
	id, err := s.questionRepo.RandomVisibleID(groupCd)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrQuestionNotFound
		}
		return 0, err
	}
	return id, nil
}

func (s *questionService) GetQuestionAdmin(id uint) (*dto.QuestionView, error) {
	question, err := s.questionRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuestionNotFound
		}
		return nil, err
	}
	return s.buildView(*question)
}

func (s *questionService) AssignLevel(questionID uint, levelCd string) error {
	exists, err := s.accessRepo.LevelExists(levelCd)
	if err != nil {
		return err
	}
	if !exists {
		return ErrLevelNotFound
	}
	if err := s.questionRepo.SetLevel(questionID, levelCd); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrQuestionNotFound
		}
		return err
	}
	return nil
}

func (s *questionService) requireGroup(groupCd string) error {
	exists, err := s.accessRepo.GroupExists(groupCd)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: %q", ErrUserGroupNotFound, groupCd)
	}
	return nil
}

// buildView assembles the outbound projection of one question: answers loaded
// from the variant table of its family, correctness derived from fractions,
// cloze bodies rewritten into readable option blocks.
func (s *questionService) buildView(q model.Question) (*dto.QuestionView, error) {
	text := q.Text
	if quizxml.IsClozeType(q.Type) {
		text = render.RewriteClozeOptions(text)
	}

	view := dto.QuestionView{
		ID:           q.ID,
		Name:         q.Name,
		Type:         q.Type,
		Text:         text,
		TextRendered: render.CodeMarkdownToHTML(text),
	}

	switch {
	case quizxml.IsMultichoiceType(q.Type):
		answers, err := s.questionRepo.FindMultichoiceAnswers(q.ID)
		if err != nil {
			return nil, err
		}
		view.Answers = multichoiceViews(answers)
	case quizxml.IsCoderunnerType(q.Type):
		answers, err := s.questionRepo.FindCoderunnerAnswers(q.ID)
		if err != nil {
			return nil, err
		}
		for _, a := range answers {
			view.Answers = append(view.Answers, dto.AnswerView{
				Text:         a.Text,
				TextRendered: render.WrapCodeHTML(a.Text),
			})
		}
		testCases, err := s.questionRepo.FindTestCases(q.ID)
		if err != nil {
			return nil, err
		}
		if err := copier.Copy(&view.TestCases, &testCases); err != nil {
			return nil, err
		}
	}

	inferenceIDs, err := s.inferenceRepo.FindIDsByQuestion(q.ID)
	if err != nil {
		return nil, err
	}
	view.InferenceIDs = inferenceIDs

	return &view, nil
}

// multichoiceViews marks as correct every answer tied at the maximum fraction,
// provided that maximum is positive. All-zero sets mark nothing correct.
func multichoiceViews(answers []model.AnswerMultichoice) []dto.AnswerView {
	maxFraction := 0.0
	for _, a := range answers {
		if a.Fraction > maxFraction {
			maxFraction = a.Fraction
		}
	}

	views := make([]dto.AnswerView, 0, len(answers))
	for _, a := range answers {
		fraction := a.Fraction
		isCorrect := maxFraction > 0 && a.Fraction == maxFraction
		views = append(views, dto.AnswerView{
			Text:         a.Text,
			TextRendered: render.CodeMarkdownToHTML(a.Text),
			IsCorrect:    &isCorrect,
			Fraction:     &fraction,
		})
	}
	return views
}
