package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Thales-OM/hse-prog-task-transformer/internal/model"
	"github.com/Thales-OM/hse-prog-task-transformer/internal/quizxml"
)

func strPtr(s string) *string { return &s }

// seedReadSide builds a question repo and access repo with one group
// ("students") granted one level ("easy").
func seedReadSide() (*fakeQuestionRepo, *fakeAccessRepo, *fakeInferenceRepo) {
	access := newFakeAccessRepo()
	access.groups["students"] = true
	access.levels["easy"] = true
	access.levels["hard"] = true
	access.links["students"] = map[string]bool{"easy": true}

	repo := &fakeQuestionRepo{access: access}
	repo.questions = []model.Question{
		{ID: 1, Name: "Even", Type: quizxml.TypeMultichoice, Text: "Pick the even number", LevelCd: strPtr("easy")},
		{ID: 2, Name: "Hardcore", Type: quizxml.TypeMultichoice, Text: "Tricky one", LevelCd: strPtr("hard")},
		{ID: 3, Name: "Unassigned", Type: quizxml.TypeTrueFalse, Text: "No level yet"},
	}
	repo.mcAnswers = []model.AnswerMultichoice{
		{ID: 1, QuestionID: 1, Text: "2", Fraction: 100},
		{ID: 2, QuestionID: 1, Text: "3", Fraction: 0},
	}

	return repo, access, &fakeInferenceRepo{}
}

func TestGetQuestionUnknownGroup(t *testing.T) {
	repo, access, inferences := seedReadSide()
	svc := NewQuestionService(repo, access, inferences)

	_, err := svc.GetQuestion("nobody", 1)
	assert.ErrorIs(t, err, ErrUserGroupNotFound)
}

func TestGetQuestionNotFound(t *testing.T) {
	repo, access, inferences := seedReadSide()
	svc := NewQuestionService(repo, access, inferences)

	_, err := svc.GetQuestion("students", 99)
	assert.ErrorIs(t, err, ErrQuestionNotFound)
}

func TestGetQuestionSoftDeletedLooksAbsent(t *testing.T) {
	repo, access, inferences := seedReadSide()
	repo.questions[0].DeletedFlg = true
	svc := NewQuestionService(repo, access, inferences)

	_, err := svc.GetQuestion("students", 1)
	assert.ErrorIs(t, err, ErrQuestionNotFound)
}

func TestGetQuestionDeniedUngrantedLevel(t *testing.T) {
	repo, access, inferences := seedReadSide()
	svc := NewQuestionService(repo, access, inferences)

	_, err := svc.GetQuestion("students", 2)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetQuestionDeniedWithoutLevel(t *testing.T) {
	repo, access, inferences := seedReadSide()
	svc := NewQuestionService(repo, access, inferences)

	_, err := svc.GetQuestion("students", 3)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetQuestionGranted(t *testing.T) {
	repo, access, inferences := seedReadSide()
	svc := NewQuestionService(repo, access, inferences)

	view, err := svc.GetQuestion("students", 1)
	require.NoError(t, err)

	assert.Equal(t, uint(1), view.ID)
	assert.Equal(t, "Even", view.Name)
	require.Len(t, view.Answers, 2)
	require.NotNil(t, view.Answers[0].IsCorrect)
	assert.True(t, *view.Answers[0].IsCorrect)
	assert.False(t, *view.Answers[1].IsCorrect)
}

func TestListQuestionsFiltersByGrant(t *testing.T) {
	repo, access, inferences := seedReadSide()
	svc := NewQuestionService(repo, access, inferences)

	views, err := svc.ListQuestions("students")
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, uint(1), views[0].ID)
}

func TestRandomQuestionIDNoneVisible(t *testing.T) {
	repo, access, inferences := seedReadSide()
	access.links["students"] = map[string]bool{}
	svc := NewQuestionService(repo, access, inferences)

	_, err := svc.RandomQuestionID("students")
	assert.ErrorIs(t, err, ErrQuestionNotFound)
}

func TestGetQuestionAdminBypassesGating(t *testing.T) {
	repo, access, inferences := seedReadSide()
	svc := NewQuestionService(repo, access, inferences)

	// Question 3 has no level and question 2 an ungranted one; admin reads
	// both without a group.
	for _, id := range []uint{2, 3} {
		view, err := svc.GetQuestionAdmin(id)
		require.NoError(t, err)
		assert.Equal(t, id, view.ID)
	}
}

func TestAssignLevel(t *testing.T) {
	repo, access, inferences := seedReadSide()
	svc := NewQuestionService(repo, access, inferences)

	assert.ErrorIs(t, svc.AssignLevel(3, "nonexistent"), ErrLevelNotFound)
	assert.ErrorIs(t, svc.AssignLevel(99, "easy"), ErrQuestionNotFound)

	require.NoError(t, svc.AssignLevel(3, "easy"))
	require.NotNil(t, repo.questions[2].LevelCd)
	assert.Equal(t, "easy", *repo.questions[2].LevelCd)

	// Now granted through the easy level.
	view, err := svc.GetQuestion("students", 3)
	require.NoError(t, err)
	assert.Equal(t, uint(3), view.ID)
}

func TestGetQuestionRewritesClozeBody(t *testing.T) {
	repo, access, inferences := seedReadSide()
	repo.questions = append(repo.questions, model.Question{
		ID: 4, Name: "Cloze", Type: quizxml.TypeMultianswer,
		Text: "The result is {:MCS:=4~5~6}", LevelCd: strPtr("easy"),
	})
	svc := NewQuestionService(repo, access, inferences)

	view, err := svc.GetQuestion("students", 4)
	require.NoError(t, err)
	assert.Contains(t, view.Text, "<choose option>")
	assert.Contains(t, view.Text, "  - 4\n  - 5\n  - 6")
	assert.NotContains(t, view.Text, "{:MCS:=")
}

func TestGetQuestionIncludesCoderunnerExtras(t *testing.T) {
	repo, access, inferences := seedReadSide()
	code := "print(input())"
	repo.questions = append(repo.questions, model.Question{
		ID: 4, Name: "Echo", Type: quizxml.TypeCoderunner, Text: "Echo stdin", LevelCd: strPtr("easy"),
	})
	repo.crAnswers = []model.AnswerCoderunner{{ID: 1, QuestionID: 4, Text: code}}
	repo.testCases = []model.TestCase{{ID: 1, QuestionID: 4, Input: "hi", ExpectedOutput: "hi", Example: true}}
	inferences.inferences = []model.Inference{{ID: 1, QuestionID: 4, ModelID: 1, Text: "hint"}}
	svc := NewQuestionService(repo, access, inferences)

	view, err := svc.GetQuestion("students", 4)
	require.NoError(t, err)
	require.Len(t, view.Answers, 1)
	assert.Equal(t, code, view.Answers[0].Text)
	assert.Contains(t, view.Answers[0].TextRendered, "<pre><code")
	assert.Nil(t, view.Answers[0].IsCorrect)
	require.Len(t, view.TestCases, 1)
	assert.Equal(t, "hi", view.TestCases[0].Input)
	assert.Equal(t, []uint{1}, view.InferenceIDs)
}

func TestMultichoiceViewsCorrectnessDerivation(t *testing.T) {
	answers := []model.AnswerMultichoice{
		{Text: "a", Fraction: 0},
		{Text: "b", Fraction: 50},
		{Text: "c", Fraction: 100},
		{Text: "d", Fraction: 100},
	}
	views := multichoiceViews(answers)
	require.Len(t, views, 4)

	var correct []string
	for _, v := range views {
		if *v.IsCorrect {
			correct = append(correct, v.Text)
		}
	}
	assert.Equal(t, []string{"c", "d"}, correct)
}

func TestMultichoiceViewsAllZeroMarksNothing(t *testing.T) {
	views := multichoiceViews([]model.AnswerMultichoice{
		{Text: "a", Fraction: 0},
		{Text: "b", Fraction: 0},
	})
	for _, v := range views {
		assert.False(t, *v.IsCorrect)
	}
}
