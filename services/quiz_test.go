package services

import (
	"context"
	"testing"

	"github.com/wahid1099/CourseMaster-Backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoQuestionQuiz() []models.QuizQuestion {
	return []models.QuizQuestion{
		{Text: "2+2?", Options: []string{"3", "4", "5"}, CorrectOption: 1, Points: 1},
		{Text: "Capital of France?", Options: []string{"Paris", "Lyon"}, CorrectOption: 0, Points: 1},
	}
}

func TestScoreQuiz(t *testing.T) {
	tests := []struct {
		name           string
		questions      []models.QuizQuestion
		passingScore   int
		answers        []int
		wantScore      int
		wantTotal      int
		wantPercentage int
		wantPassed     bool
	}{
		{
			name:           "all correct passes",
			questions:      twoQuestionQuiz(),
			passingScore:   70,
			answers:        []int{1, 0},
			wantScore:      2,
			wantTotal:      2,
			wantPercentage: 100,
			wantPassed:     true,
		},
		{
			name:           "half correct fails",
			questions:      twoQuestionQuiz(),
			passingScore:   70,
			answers:        []int{1, 1},
			wantScore:      1,
			wantTotal:      2,
			wantPercentage: 50,
			wantPassed:     false,
		},
		{
			name:           "missing answers are incorrect",
			questions:      twoQuestionQuiz(),
			passingScore:   70,
			answers:        []int{1},
			wantScore:      1,
			wantTotal:      2,
			wantPercentage: 50,
			wantPassed:     false,
		},
		{
			name:           "extra answers are ignored",
			questions:      twoQuestionQuiz(),
			passingScore:   70,
			answers:        []int{1, 0, 2, 2},
			wantScore:      2,
			wantTotal:      2,
			wantPercentage: 100,
			wantPassed:     true,
		},
		{
			name: "weights shift the percentage",
			questions: []models.QuizQuestion{
				{Text: "heavy", Options: []string{"a", "b"}, CorrectOption: 0, Points: 3},
				{Text: "light", Options: []string{"a", "b"}, CorrectOption: 0, Points: 1},
			},
			passingScore:   70,
			answers:        []int{0, 1},
			wantScore:      3,
			wantTotal:      4,
			wantPercentage: 75,
			wantPassed:     true,
		},
		{
			name: "zero weight counts as one",
			questions: []models.QuizQuestion{
				{Text: "q", Options: []string{"a", "b"}, CorrectOption: 0},
			},
			passingScore:   70,
			answers:        []int{0},
			wantScore:      1,
			wantTotal:      1,
			wantPercentage: 100,
			wantPassed:     true,
		},
		{
			name:           "no questions never passes",
			questions:      nil,
			passingScore:   70,
			answers:        []int{0},
			wantScore:      0,
			wantTotal:      0,
			wantPercentage: 0,
			wantPassed:     false,
		},
		{
			name:           "exact passing score passes",
			questions:      twoQuestionQuiz(),
			passingScore:   50,
			answers:        []int{1, 1},
			wantScore:      1,
			wantTotal:      2,
			wantPercentage: 50,
			wantPassed:     true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScoreQuiz(tt.questions, tt.passingScore, tt.answers)
			assert.Equal(t, tt.wantScore, got.Score)
			assert.Equal(t, tt.wantTotal, got.TotalPoints)
			assert.Equal(t, tt.wantPercentage, got.Percentage)
			assert.Equal(t, tt.wantPassed, got.Passed)
			assert.Len(t, got.PerQuestion, len(tt.questions))
		})
	}
}

func TestScoreQuizPerQuestionBreakdown(t *testing.T) {
	got := ScoreQuiz(twoQuestionQuiz(), 70, []int{1})

	require.Len(t, got.PerQuestion, 2)
	assert.True(t, got.PerQuestion[0].Correct)
	assert.Equal(t, 1, got.PerQuestion[0].PointsAwarded)
	assert.False(t, got.PerQuestion[1].Correct)
	assert.Equal(t, 0, got.PerQuestion[1].PointsAwarded)
}

func TestQuizCreateDefaults(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	service := NewQuizService(db, newTestCoordinator())

	quiz, err := service.Create(ctx, QuizInput{
		CourseID: 1,
		Title:    "Module checkpoint",
		Questions: []models.QuizQuestion{
			{Text: "q", Options: []string{"a", "b"}, CorrectOption: 0},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 70, quiz.PassingScore)

	_, questions, err := service.load(ctx, quiz.ID)
	require.NoError(t, err)
	require.Len(t, questions, 1)
	assert.Equal(t, 1, questions[0].Points)
}

func TestQuizGetMasksAnswerKey(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	service := NewQuizService(db, newTestCoordinator())

	created, err := service.Create(ctx, QuizInput{CourseID: 1, Title: "q", Questions: twoQuestionQuiz()})
	require.NoError(t, err)

	_, questions, err := service.Get(ctx, created.ID)
	require.NoError(t, err)
	for _, question := range questions {
		assert.Equal(t, -1, question.CorrectOption)
		assert.NotEmpty(t, question.Options)
	}
}

func TestQuizSubmitAppendsResults(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	service := NewQuizService(db, newTestCoordinator())

	user := createTestUser(t, db, "Gita", "spring-2026", "USER")
	quiz, err := service.Create(ctx, QuizInput{CourseID: 1, Title: "q", Questions: twoQuestionQuiz()})
	require.NoError(t, err)

	first, score, err := service.Submit(ctx, user.ID, quiz.ID, []int{1, 1}, 120)
	require.NoError(t, err)
	assert.Equal(t, 50, score.Percentage)
	assert.False(t, first.Passed)

	second, score, err := service.Submit(ctx, user.ID, quiz.ID, []int{1, 0}, 90)
	require.NoError(t, err)
	assert.Equal(t, 100, score.Percentage)
	assert.True(t, second.Passed)
	assert.NotEqual(t, first.ID, second.ID)

	var count int64
	require.NoError(t, db.Model(&models.QuizResult{}).
		Where("user_id = ? AND quiz_id = ?", user.ID, quiz.ID).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestQuizAttemptsFreshAfterSubmit(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	service := NewQuizService(db, newTestCoordinator())

	user := createTestUser(t, db, "Hari", "spring-2026", "USER")
	quiz, err := service.Create(ctx, QuizInput{CourseID: 1, Title: "q", Questions: twoQuestionQuiz()})
	require.NoError(t, err)

	_, _, err = service.Submit(ctx, user.ID, quiz.ID, []int{1, 0}, 60)
	require.NoError(t, err)

	attempts, err := service.Attempts(ctx, user.ID, quiz.ID)
	require.NoError(t, err)
	require.Len(t, attempts, 1)

	_, _, err = service.Submit(ctx, user.ID, quiz.ID, []int{0, 0}, 45)
	require.NoError(t, err)

	attempts, err = service.Attempts(ctx, user.ID, quiz.ID)
	require.NoError(t, err)
	assert.Len(t, attempts, 2)
}

func TestQuizSubmitUnknownQuiz(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	service := NewQuizService(db, newTestCoordinator())

	_, _, err := service.Submit(ctx, 1, 999, []int{0}, 10)
	assert.ErrorIs(t, err, ErrNotFound)
}
