package service

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
	"gorm.io/gorm"

	"github.com/Thales-OM/hse-prog-task-transformer/internal/model"
	"github.com/Thales-OM/hse-prog-task-transformer/internal/quizxml"
	"github.com/Thales-OM/hse-prog-task-transformer/internal/repository"
)

// fakeQuestionRepo emulates the upsert and visibility semantics of the real
// repository in memory, including transactional rollback of a failed ingest.
type fakeQuestionRepo struct {
	questions []model.Question
	mcAnswers []model.AnswerMultichoice
	crAnswers []model.AnswerCoderunner
	testCases []model.TestCase

	access *fakeAccessRepo

	// failAnswerText makes UpsertAnswer fail when it sees this text, so tests
	// can force a mid-document rollback.
	failAnswerText string
}

func (r *fakeQuestionRepo) snapshot() fakeQuestionRepo {
	return fakeQuestionRepo{
		questions:      append([]model.Question(nil), r.questions...),
		mcAnswers:      append([]model.AnswerMultichoice(nil), r.mcAnswers...),
		crAnswers:      append([]model.AnswerCoderunner(nil), r.crAnswers...),
		testCases:      append([]model.TestCase(nil), r.testCases...),
		access:         r.access,
		failAnswerText: r.failAnswerText,
	}
}

func (r *fakeQuestionRepo) Ingest(fn func(store repository.IngestStore) error) error {
	saved := r.snapshot()
	if err := fn(&fakeIngestStore{repo: r}); err != nil {
		*r = saved
		return err
	}
	return nil
}

func (r *fakeQuestionRepo) FindByID(id uint) (*model.Question, error) {
	for i := range r.questions {
		if r.questions[i].ID == id && !r.questions[i].DeletedFlg {
			q := r.questions[i]
			return &q, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeQuestionRepo) findByName(name string) *model.Question {
	for i := range r.questions {
		if r.questions[i].Name == name {
			return &r.questions[i]
		}
	}
	return nil
}

func (r *fakeQuestionRepo) visible(groupCd string) []model.Question {
	var out []model.Question
	for _, q := range r.questions {
		if q.DeletedFlg || q.LevelCd == nil {
			continue
		}
		if r.access != nil && r.access.links[groupCd][*q.LevelCd] {
			out = append(out, q)
		}
	}
	return out
}

func (r *fakeQuestionRepo) FindVisible(groupCd string) ([]model.Question, error) {
	return r.visible(groupCd), nil
}

func (r *fakeQuestionRepo) RandomVisibleID(groupCd string) (uint, error) {
	candidates := r.visible(groupCd)
	if len(candidates) == 0 {
		return 0, gorm.ErrRecordNotFound
	}
	return candidates[0].ID, nil
}

func (r *fakeQuestionRepo) SetLevel(questionID uint, levelCd string) error {
	for i := range r.questions {
		if r.questions[i].ID == questionID && !r.questions[i].DeletedFlg {
			cd := levelCd
			r.questions[i].LevelCd = &cd
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeQuestionRepo) FindMultichoiceAnswers(questionID uint) ([]model.AnswerMultichoice, error) {
	var out []model.AnswerMultichoice
	for _, a := range r.mcAnswers {
		if a.QuestionID == questionID && !a.DeletedFlg {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeQuestionRepo) FindCoderunnerAnswers(questionID uint) ([]model.AnswerCoderunner, error) {
	var out []model.AnswerCoderunner
	for _, a := range r.crAnswers {
		if a.QuestionID == questionID && !a.DeletedFlg {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeQuestionRepo) FindTestCases(questionID uint) ([]model.TestCase, error) {
	var out []model.TestCase
	for _, tc := range r.testCases {
		if tc.QuestionID == questionID && !tc.DeletedFlg {
			out = append(out, tc)
		}
	}
	return out, nil
}

type fakeIngestStore struct {
	repo *fakeQuestionRepo
}

func (s *fakeIngestStore) UpsertQuestion(q quizxml.Question) (uint, error) {
	if existing := s.repo.findByName(q.Name); existing != nil {
		existing.Type = q.Type
		existing.Text = q.Text
		existing.DeletedFlg = false
		return existing.ID, nil
	}
	row := model.Question{ID: uint(len(s.repo.questions) + 1), Name: q.Name, Type: q.Type, Text: q.Text}
	s.repo.questions = append(s.repo.questions, row)
	return row.ID, nil
}

func (s *fakeIngestStore) UpsertAnswer(questionID uint, a quizxml.Answer) error {
	if s.repo.failAnswerText != "" && a.AnswerText() == s.repo.failAnswerText {
		return fmt.Errorf("simulated answer upsert failure")
	}
	switch v := a.(type) {
	case quizxml.AnswerMultichoice:
		for i := range s.repo.mcAnswers {
			row := &s.repo.mcAnswers[i]
			if row.QuestionID == questionID && row.Text == v.Text {
				row.Fraction = v.Fraction
				row.DeletedFlg = false
				return nil
			}
		}
		s.repo.mcAnswers = append(s.repo.mcAnswers, model.AnswerMultichoice{
			ID: uint(len(s.repo.mcAnswers) + 1), QuestionID: questionID, Text: v.Text, Fraction: v.Fraction,
		})
		return nil
	case quizxml.AnswerCoderunner:
		for i := range s.repo.crAnswers {
			row := &s.repo.crAnswers[i]
			if row.QuestionID == questionID && row.Text == v.Text {
				row.DeletedFlg = false
				return nil
			}
		}
		s.repo.crAnswers = append(s.repo.crAnswers, model.AnswerCoderunner{
			ID: uint(len(s.repo.crAnswers) + 1), QuestionID: questionID, Text: v.Text,
		})
		return nil
	default:
		return fmt.Errorf("%w: %T", repository.ErrUnsupportedAnswerVariant, a)
	}
}

func (s *fakeIngestStore) UpsertTestCase(questionID uint, tc quizxml.TestCase) error {
	for i := range s.repo.testCases {
		row := &s.repo.testCases[i]
		if row.QuestionID == questionID && row.Input == tc.Input {
			row.Code = tc.Code
			row.ExpectedOutput = tc.ExpectedOutput
			row.Example = tc.Example
			row.DeletedFlg = false
			return nil
		}
	}
	s.repo.testCases = append(s.repo.testCases, model.TestCase{
		ID:             uint(len(s.repo.testCases) + 1),
		QuestionID:     questionID,
		Code:           tc.Code,
		Input:          tc.Input,
		ExpectedOutput: tc.ExpectedOutput,
		Example:        tc.Example,
	})
	return nil
}

type fakeAccessRepo struct {
	groups map[string]bool
	levels map[string]bool
	links  map[string]map[string]bool
}

func newFakeAccessRepo() *fakeAccessRepo {
	return &fakeAccessRepo{
		groups: map[string]bool{},
		levels: map[string]bool{},
		links:  map[string]map[string]bool{},
	}
}

func (r *fakeAccessRepo) CreateUserGroup(group model.UserGroup) error {
	r.groups[group.UserGroupCd] = true
	return nil
}

func (r *fakeAccessRepo) CreateLevel(level model.Level) error {
	r.levels[level.LevelCd] = true
	return nil
}

func (r *fakeAccessRepo) GroupExists(groupCd string) (bool, error) {
	return r.groups[groupCd], nil
}

func (r *fakeAccessRepo) LevelExists(levelCd string) (bool, error) {
	return r.levels[levelCd], nil
}

func (r *fakeAccessRepo) GroupHasLevel(groupCd, levelCd string) (bool, error) {
	return r.links[groupCd][levelCd], nil
}

func (r *fakeAccessRepo) ReplaceGroupLevels(groupCd string, levelCds []string) error {
	grants := map[string]bool{}
	for _, levelCd := range levelCds {
		grants[levelCd] = true
	}
	r.links[groupCd] = grants
	return nil
}

func (r *fakeAccessRepo) AddGroupLevel(groupCd, levelCd string) error {
	if r.links[groupCd] == nil {
		r.links[groupCd] = map[string]bool{}
	}
	r.links[groupCd][levelCd] = true
	return nil
}

type fakeLLModelRepo struct {
	models []model.LLModel
}

func (r *fakeLLModelRepo) Create(baseModelName, modelName string) (*model.LLModel, error) {
	maxVersion := 0
	for _, m := range r.models {
		if m.BaseModelName == baseModelName && m.Version > maxVersion {
			maxVersion = m.Version
		}
	}
	row := model.LLModel{
		ID:            uint(len(r.models) + 1),
		BaseModelName: baseModelName,
		ModelName:     modelName,
		Version:       maxVersion + 1,
	}
	r.models = append(r.models, row)
	return &row, nil
}

func (r *fakeLLModelRepo) FindByID(id uint) (*model.LLModel, error) {
	for _, m := range r.models {
		if m.ID == id {
			found := m
			return &found, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeInferenceRepo struct {
	inferences []model.Inference
}

func (r *fakeInferenceRepo) Create(inference *model.Inference) error {
	inference.ID = uint(len(r.inferences) + 1)
	r.inferences = append(r.inferences, *inference)
	return nil
}

func (r *fakeInferenceRepo) FindIDsByQuestion(questionID uint) ([]uint, error) {
	var ids []uint
	for _, inf := range r.inferences {
		if inf.QuestionID == questionID {
			ids = append(ids, inf.ID)
		}
	}
	return ids, nil
}

type fakeChatCompleter struct {
	lastRequest openai.ChatCompletionRequest
	respond     func(req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

func (c *fakeChatCompleter) CreateChatCompletion(_ context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	c.lastRequest = req
	if c.respond != nil {
		return c.respond(req)
	}
	return openai.ChatCompletionResponse{}, fmt.Errorf("no responder configured")
}

func chatText(content string) func(openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	return func(openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
		return openai.ChatCompletionResponse{
			Choices: []openai.ChatCompletionChoice{
				{Message: openai.ChatCompletionMessage{Role: "assistant", Content: content}},
			},
		}, nil
	}
}
