package service

import (
	"fmt"
	"strings"

	"github.com/Thales-OM/hse-prog-task-transformer/internal/dto"
	"github.com/Thales-OM/hse-prog-task-transformer/internal/quizxml"
)

const systemPrompt = "You are an experienced Python instructor teaching students from non-technical majors."

const promptTemplateMultichoice = `You are given a quiz task of type "%s".

Task text:
%s

All answer options:
%s

Correct options:
%s

Write a hint that guides the student towards the correct option without revealing it.`

const promptTemplateCoderunner = `You are given a programming task of type "%s".

Task text:
%s

Reference solutions:
%s

Test cases:
%s

Write a hint that helps the student approach the solution without giving the code away.`

const promptTemplateOther = `You are given a quiz task of type "%s".

Task text:
%s

Write a hint that helps the student reason about the task without revealing the answer.`

// BuildPrompt renders the per-family user prompt for one question view.
func BuildPrompt(question *dto.QuestionView) string {
	switch {
	case quizxml.IsMultichoiceType(question.Type):
		return buildMultichoicePrompt(question)
	case quizxml.IsCoderunnerType(question.Type):
		return buildCoderunnerPrompt(question)
	default:
		return fmt.Sprintf(promptTemplateOther, question.Type, question.Text)
	}
}

func buildMultichoicePrompt(question *dto.QuestionView) string {
	all := make([]string, 0, len(question.Answers))
	correct := make([]string, 0, len(question.Answers))
	for _, a := range question.Answers {
		all = append(all, "- "+a.Text)
		if a.IsCorrect != nil && *a.IsCorrect {
			correct = append(correct, "- "+a.Text)
		}
	}
	return fmt.Sprintf(
		promptTemplateMultichoice,
		question.Type,
		question.Text,
		strings.Join(all, "\n"),
		strings.Join(correct, "\n"),
	)
}

func buildCoderunnerPrompt(question *dto.QuestionView) string {
	// Coderunner answers are all reference solutions by convention.
	solutions := make([]string, 0, len(question.Answers))
	for _, a := range question.Answers {
		solutions = append(solutions, a.Text)
	}

	testCases := make([]string, 0, len(question.TestCases))
	for i, tc := range question.TestCases {
		testCases = append(testCases, fmt.Sprintf("[%d] Input:\n%s\nExpected output:\n%s\n", i+1, tc.Input, tc.ExpectedOutput))
	}

	return fmt.Sprintf(
		promptTemplateCoderunner,
		question.Type,
		question.Text,
		strings.Join(solutions, "\n---\n"),
		strings.Join(testCases, "\n"),
	)
}

// BuildMessages assembles the chat payload sent to the inference engine.
func BuildMessages(question *dto.QuestionView) []dto.ChatMessage {
	return []dto.ChatMessage{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: BuildPrompt(question)},
	}
}
