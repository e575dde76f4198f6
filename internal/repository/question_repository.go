package repository

import (
	"fmt"
	"time"

	"github.com/Thales-OM/hse-prog-task-transformer/internal/model"
	"github.com/Thales-OM/hse-prog-task-transformer/internal/quizxml"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// IngestStore is the transaction-scoped upsert surface handed to a document
// ingestion. Every operation is keyed on a natural identity and is idempotent:
// re-running the same document can only refresh rows, never duplicate them.
type IngestStore interface {
	UpsertQuestion(q quizxml.Question) (uint, error)
	UpsertAnswer(questionID uint, a quizxml.Answer) error
	UpsertTestCase(questionID uint, tc quizxml.TestCase) error
}

type QuestionRepository interface {
	// Ingest runs fn inside one database transaction; any error rolls the
	// whole document back.
	Ingest(fn func(store IngestStore) error) error

	FindByID(id uint) (*model.Question, error)
	FindVisible(groupCd string) ([]model.Question, error)
	RandomVisibleID(groupCd string) (uint, error)
	SetLevel(questionID uint, levelCd string) error

	FindMultichoiceAnswers(questionID uint) ([]model.AnswerMultichoice, error)
	FindCoderunnerAnswers(questionID uint) ([]model.AnswerCoderunner, error)
	FindTestCases(questionID uint) ([]model.TestCase, error)
}

type questionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) Ingest(fn func(store IngestStore) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&ingestStore{tx: tx})
	})
}

func (r *questionRepository) FindByID(id uint) (*model.Question, error) {
	var question model.Question
	if err := r.db.Where("deleted_flg = ?", false).First(&question, id).Error; err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *questionRepository) FindVisible(groupCd string) ([]model.Question, error) {
	var questions []model.Question
	err := r.db.
		Joins("JOIN user_group_levels ugl ON ugl.level_cd = questions.level_cd AND ugl.user_group_cd = ?", groupCd).
		Where("questions.deleted_flg = ?", false).
		Order("questions.id ASC").
		Find(&questions).Error
	if err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *questionRepository) RandomVisibleID(groupCd string) (uint, error) {
	var id uint
	err := r.db.Model(&model.Question{}).
		Select("questions.id").
		Joins("JOIN user_group_levels ugl ON ugl.level_cd = questions.level_cd AND ugl.user_group_cd = ?", groupCd).
		Where("questions.deleted_flg = ?", false).
		Order("RANDOM()").
		Limit(1).
		Take(&id).Error
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *questionRepository) SetLevel(questionID uint, levelCd string) error {
	result := r.db.Model(&model.Question{}).
		Where("id = ? AND deleted_flg = ?", questionID, false).
		Update("level_cd", levelCd)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *questionRepository) FindMultichoiceAnswers(questionID uint) ([]model.AnswerMultichoice, error) {
	var answers []model.AnswerMultichoice
	err := r.db.Where("question_id = ? AND deleted_flg = ?", questionID, false).
		Order("id ASC").Find(&answers).Error
	if err != nil {
		return nil, err
	}
	return answers, nil
}

func (r *questionRepository) FindCoderunnerAnswers(questionID uint) ([]model.AnswerCoderunner, error) {
	var answers []model.AnswerCoderunner
	err := r.db.Where("question_id = ? AND deleted_flg = ?", questionID, false).
		Order("id ASC").Find(&answers).Error
	if err != nil {
		return nil, err
	}
	return answers, nil
}

func (r *questionRepository) FindTestCases(questionID uint) ([]model.TestCase, error) {
	var testCases []model.TestCase
	err := r.db.Where("question_id = ? AND deleted_flg = ?", questionID, false).
		Order("id ASC").Find(&testCases).Error
	if err != nil {
		return nil, err
	}
	return testCases, nil
}

// ingestStore issues the natural-key upserts inside the document transaction.
// Conflict policy is deliberately unconditional: a conflicting row is always
// rewritten and its updated_at refreshed, even when nothing changed.
type ingestStore struct {
	tx *gorm.DB
}

func (s *ingestStore) UpsertQuestion(q quizxml.Question) (uint, error) {
	row := model.Question{Name: q.Name, Type: q.Type, Text: q.Text}
	err := s.tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "name"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"type":        q.Type,
			"text":        q.Text,
			"deleted_flg": false,
			"updated_at":  time.Now(),
		}),
	}).Create(&row).Error
	if err != nil {
		return 0, fmt.Errorf("upsert question %q: %w", q.Name, err)
	}
	return row.ID, nil
}

func (s *ingestStore) UpsertAnswer(questionID uint, a quizxml.Answer) error {
	switch v := a.(type) {
	case quizxml.AnswerMultichoice:
		row := model.AnswerMultichoice{QuestionID: questionID, Text: v.Text, Fraction: v.Fraction}
		return s.tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "question_id"}, {Name: "text"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"fraction":    v.Fraction,
				"deleted_flg": false,
				"updated_at":  time.Now(),
			}),
		}).Create(&row).Error
	case quizxml.AnswerCoderunner:
		row := model.AnswerCoderunner{QuestionID: questionID, Text: v.Text}
		return s.tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "question_id"}, {Name: "text"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"deleted_flg": false,
				"updated_at":  time.Now(),
			}),
		}).Create(&row).Error
	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedAnswerVariant, a)
	}
}

func (s *ingestStore) UpsertTestCase(questionID uint, tc quizxml.TestCase) error {
	row := model.TestCase{
		QuestionID:     questionID,
		Code:           tc.Code,
		Input:          tc.Input,
		ExpectedOutput: tc.ExpectedOutput,
		Example:        tc.Example,
	}
	return s.tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "question_id"}, {Name: "input"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"code":            tc.Code,
			"expected_output": tc.ExpectedOutput,
			"example":         tc.Example,
			"deleted_flg":     false,
			"updated_at":      time.Now(),
		}),
	}).Create(&row).Error
}
