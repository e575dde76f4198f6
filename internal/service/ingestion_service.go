package service

import (
	"github.com/Thales-OM/hse-prog-task-transformer/internal/quizxml"
	"github.com/Thales-OM/hse-prog-task-transformer/internal/repository"
	"github.com/rs/zerolog/log"
)

// IngestionService turns an uploaded quiz XML document into persisted state.
type IngestionService interface {
	// IngestQuizXML parses, validates and upserts one document inside a
	// single transaction. On success it returns the affected question ids in
	// source order; on any error nothing is written.
	IngestQuizXML(xmlData []byte) ([]uint, error)
}

type ingestionService struct {
	questionRepo repository.QuestionRepository
}

func NewIngestionService(questionRepo repository.QuestionRepository) IngestionService {
	return &ingestionService{questionRepo: questionRepo}
}

func (s *ingestionService) IngestQuizXML(xmlData []byte) ([]uint, error) {
	questions, err := quizxml.Parse(xmlData)
	if err != nil {
		log.Warn().Err(err).Msg("Quiz document rejected at parse stage")
		return nil, err
	}

	affected := make([]uint, 0, len(questions))
	err = s.questionRepo.Ingest(func(store repository.IngestStore) error {
		for _, q := range questions {
			questionID, err := store.UpsertQuestion(q)
			if err != nil {
				return err
			}
			for _, a := range q.Answers {
				if err := store.UpsertAnswer(questionID, a); err != nil {
					return err
				}
			}
			for _, tc := range q.TestCases {
				if err := store.UpsertTestCase(questionID, tc); err != nil {
					return err
				}
			}
			affected = append(affected, questionID)
		}
		return nil
	})
	if err != nil {
		log.Error().Err(err).Msg("Quiz document ingestion rolled back")
		return nil, err
	}

	log.Info().Int("questions", len(affected)).Msg("Quiz document ingested")
	return affected, nil
}
