package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/Thales-OM/hse-prog-task-transformer/config"
	"github.com/Thales-OM/hse-prog-task-transformer/internal/dto"
	"github.com/Thales-OM/hse-prog-task-transformer/internal/model"
	"github.com/Thales-OM/hse-prog-task-transformer/internal/repository"
	"github.com/rs/zerolog/log"
	openai "github.com/sashabaranov/go-openai"
	"gorm.io/gorm"
)

// DefaultTemperature applies when an inference request leaves it unset.
const DefaultTemperature = 0.7

var thinkPattern = regexp.MustCompile(`(?s)<think>(.*?)</think>`)

// ChatCompleter is the slice of the OpenAI-compatible client we depend on.
type ChatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// InferenceService generates and stores model hints for questions.
type InferenceService interface {
	MakeInference(ctx context.Context, req dto.PostInferenceRequest) (uint, error)
	GetPrompt(questionID uint) (*dto.PromptResponse, error)
}

type inferenceService struct {
	client          ChatCompleter
	questionService QuestionService
	modelRepo       repository.LLModelRepository
	inferenceRepo   repository.InferenceRepository
}

// NewOpenAIClient builds the client against the configured OpenAI-compatible
// endpoint. The engine behind it is interchangeable; only the base URL and
// key come from config.
func NewOpenAIClient(cfg *config.Config) ChatCompleter {
	clientConfig := openai.DefaultConfig(cfg.OpenAI.APIKey)
	if cfg.OpenAI.BaseURL != "" {
		clientConfig.BaseURL = cfg.OpenAI.BaseURL
	}
	return openai.NewClientWithConfig(clientConfig)
}

func NewInferenceService(
	client ChatCompleter,
	questionService QuestionService,
	modelRepo repository.LLModelRepository,
	inferenceRepo repository.InferenceRepository,
) InferenceService {
	return &inferenceService{
		client:          client,
		questionService: questionService,
		modelRepo:       modelRepo,
		inferenceRepo:   inferenceRepo,
	}
}

func (s *inferenceService) MakeInference(ctx context.Context, req dto.PostInferenceRequest) (uint, error) {
	llModel, err := s.modelRepo.FindByID(req.ModelID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrModelNotFound
		}
		return 0, err
	}

	question, err := s.questionService.GetQuestionAdmin(req.QuestionID)
	if err != nil {
		return 0, err
	}

	temperature := DefaultTemperature
	if req.Temperature != nil {
		temperature = *req.Temperature
	}

	messages := BuildMessages(question)
	chatMessages := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, m := range messages {
		chatMessages = append(chatMessages, openai.ChatCompletionMessage{Role: m.Role, Content: m.Content})
	}

	completion, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       llModel.ModelName,
		Messages:    chatMessages,
		Temperature: float32(temperature),
	})
	if err != nil {
		log.Error().Err(err).Uint("modelID", req.ModelID).Uint("questionID", req.QuestionID).Msg("Chat completion failed")
		return 0, fmt.Errorf("chat completion: %w", err)
	}
	if len(completion.Choices) == 0 {
		return 0, fmt.Errorf("chat completion returned no choices")
	}

	thinking, text := splitReasoning(completion.Choices[0].Message.Content)
	inference := model.Inference{
		QuestionID:  req.QuestionID,
		ModelID:     req.ModelID,
		Thinking:    thinking,
		Text:        text,
		Temperature: temperature,
	}
	if err := s.inferenceRepo.Create(&inference); err != nil {
		return 0, err
	}

	log.Info().Uint("inferenceID", inference.ID).Uint("questionID", req.QuestionID).Msg("Inference stored")
	return inference.ID, nil
}

func (s *inferenceService) GetPrompt(questionID uint) (*dto.PromptResponse, error) {
	question, err := s.questionService.GetQuestionAdmin(questionID)
	if err != nil {
		return nil, err
	}
	messages := BuildMessages(question)
	return &dto.PromptResponse{Messages: messages, Prompt: messages[1].Content}, nil
}

// splitReasoning extracts the <think>...</think> block reasoning models emit.
// Without one, the whole content is the response text.
func splitReasoning(content string) (*string, string) {
	match := thinkPattern.FindStringSubmatch(content)
	if match == nil {
		return nil, strings.TrimSpace(content)
	}
	thinking := strings.TrimSpace(match[1])
	text := strings.TrimSpace(thinkPattern.ReplaceAllString(content, ""))
	return &thinking, text
}
