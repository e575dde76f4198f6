package dto

// ErrorResponse is the uniform error payload of the API.
type ErrorResponse struct {
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// IngestResponse lists the questions a document upload created or refreshed,
// in source order.
type IngestResponse struct {
	Message     string `json:"message"`
	QuestionIDs []uint `json:"question_ids"`
}

type ModelResponse struct {
	ID            uint   `json:"id"`
	BaseModelName string `json:"base_model_name"`
	ModelName     string `json:"model_name"`
	Version       int    `json:"version"`
}

// AnswerView renders one answer. IsCorrect and Fraction are present only for
// multichoice answers; correctness is derived from fractions at read time.
type AnswerView struct {
	Text         string   `json:"text"`
	TextRendered string   `json:"text_rendered"`
	IsCorrect    *bool    `json:"is_correct,omitempty"`
	Fraction     *float64 `json:"fraction,omitempty"`
}

type TestCaseView struct {
	Code           *string `json:"code,omitempty"`
	Input          string  `json:"input"`
	ExpectedOutput string  `json:"expected_output"`
	Example        bool    `json:"example"`
}

type QuestionView struct {
	ID           uint           `json:"id"`
	Name         string         `json:"name"`
	Type         string         `json:"type"`
	Text         string         `json:"text"`
	TextRendered string         `json:"text_rendered"`
	Answers      []AnswerView   `json:"answers"`
	TestCases    []TestCaseView `json:"test_cases,omitempty"`
	InferenceIDs []uint         `json:"inference_ids,omitempty"`
}

type RandomIDResponse struct {
	ID uint `json:"id"`
}

type RenewTokenResponse struct {
	PrivatePEM string `json:"private_pem"`
}

type InferenceResponse struct {
	ID uint `json:"id"`
}

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type PromptResponse struct {
	Messages []ChatMessage `json:"messages"`
	Prompt   string        `json:"prompt"`
}
