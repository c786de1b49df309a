package services

import (
	"context"
	"encoding/json"
	"errors"
	"math"

	"github.com/wahid1099/CourseMaster-Backend/cache"
	"github.com/wahid1099/CourseMaster-Backend/models"

	"gorm.io/gorm"
)

// QuestionScore is the per-question breakdown of a scored submission.
type QuestionScore struct {
	Index         int  `json:"index"`
	Correct       bool `json:"correct"`
	Points        int  `json:"points"`
	PointsAwarded int  `json:"points_awarded"`
}

// QuizScore is the outcome of scoring one answer set.
type QuizScore struct {
	Score       int             `json:"score"`
	TotalPoints int             `json:"total_points"`
	Percentage  int             `json:"percentage"`
	Passed      bool            `json:"passed"`
	PerQuestion []QuestionScore `json:"per_question"`
}

// ScoreQuiz grades answers against the ordered question list. Pure and
// deterministic; persisting the result is the caller's job. A missing
// answer counts as incorrect, answers beyond the question count are
// ignored, and a question's weight defaults to 1 when unset.
func ScoreQuiz(questions []models.QuizQuestion, passingScore int, answers []int) QuizScore {
	result := QuizScore{PerQuestion: make([]QuestionScore, len(questions))}

	for i, question := range questions {
		points := question.Points
		if points <= 0 {
			points = 1
		}
		result.TotalPoints += points

		correct := i < len(answers) && answers[i] == question.CorrectOption
		awarded := 0
		if correct {
			awarded = points
			result.Score += awarded
		}
		result.PerQuestion[i] = QuestionScore{
			Index:         i,
			Correct:       correct,
			Points:        points,
			PointsAwarded: awarded,
		}
	}

	if result.TotalPoints > 0 {
		result.Percentage = int(math.Round(float64(result.Score) / float64(result.TotalPoints) * 100))
	}
	result.Passed = result.Percentage >= passingScore
	return result
}

// QuizService owns quiz definitions and submissions.
type QuizService struct {
	db          *gorm.DB
	invalidator *cache.Coordinator
}

func NewQuizService(db *gorm.DB, invalidator *cache.Coordinator) *QuizService {
	return &QuizService{db: db, invalidator: invalidator}
}

// QuizInput is the admin payload for creating a quiz.
type QuizInput struct {
	CourseID     uint
	ModuleID     uint
	Title        string
	Questions    []models.QuizQuestion
	PassingScore int
}

// Create stores a new quiz definition. PassingScore defaults to 70 and
// question weights to 1, matching how submissions are scored.
func (s *QuizService) Create(ctx context.Context, input QuizInput) (*models.Quiz, error) {
	if input.PassingScore <= 0 {
		input.PassingScore = 70
	}
	for i := range input.Questions {
		if input.Questions[i].Points <= 0 {
			input.Questions[i].Points = 1
		}
	}

	questions, err := json.Marshal(input.Questions)
	if err != nil {
		return nil, err
	}

	quiz := models.Quiz{
		CourseID:     input.CourseID,
		ModuleID:     input.ModuleID,
		Title:        input.Title,
		Questions:    questions,
		PassingScore: input.PassingScore,
	}
	if err := s.db.WithContext(ctx).Create(&quiz).Error; err != nil {
		return nil, err
	}

	s.invalidator.InvalidateEntity(ctx, cache.ResourceQuizzes, quiz.ID)
	return &quiz, nil
}

// Get returns a published quiz with the correct-option indexes blanked
// out, so the student-facing payload never carries the answer key.
func (s *QuizService) Get(ctx context.Context, quizID uint) (*models.Quiz, []models.QuizQuestion, error) {
	quiz, questions, err := s.load(ctx, quizID)
	if err != nil {
		return nil, nil, err
	}

	masked := make([]models.QuizQuestion, len(questions))
	for i, question := range questions {
		question.CorrectOption = -1
		masked[i] = question
	}
	return quiz, masked, nil
}

// Submit scores one answer set against the quiz and appends a
// QuizResult. Every submission is a new fact; results are never
// updated, so there is no duplicate detection.
func (s *QuizService) Submit(ctx context.Context, userID, quizID uint, answers []int, timeSpent int) (*models.QuizResult, *QuizScore, error) {
	quiz, questions, err := s.load(ctx, quizID)
	if err != nil {
		return nil, nil, err
	}

	score := ScoreQuiz(questions, quiz.PassingScore, answers)

	rawAnswers, err := json.Marshal(answers)
	if err != nil {
		return nil, nil, err
	}

	result := models.QuizResult{
		UserID:      userID,
		QuizID:      quiz.ID,
		CourseID:    quiz.CourseID,
		Answers:     rawAnswers,
		Score:       score.Score,
		TotalPoints: score.TotalPoints,
		Percentage:  score.Percentage,
		Passed:      score.Passed,
		TimeSpent:   timeSpent,
	}
	if err := s.db.WithContext(ctx).Create(&result).Error; err != nil {
		return nil, nil, err
	}

	s.invalidator.InvalidateEntity(ctx, cache.ResourceQuizResults, result.ID)
	return &result, &score, nil
}

// Attempts lists a user's submissions for one quiz, newest first,
// served cache-aside under a user-scoped key.
func (s *QuizService) Attempts(ctx context.Context, userID, quizID uint) ([]models.QuizResult, error) {
	store := s.invalidator.Store()
	key := cache.UserListKey(cache.ResourceQuizResults, userID, cache.ListFilter{CourseID: quizID}, cache.SortSpec{Field: "created_at", Desc: true}, 0, 0)

	var cached []models.QuizResult
	if store.GetJSON(ctx, key, &cached) {
		return cached, nil
	}

	var results []models.QuizResult
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND quiz_id = ?", userID, quizID).
		Order("created_at desc").Find(&results).Error; err != nil {
		return nil, err
	}

	store.SetJSON(ctx, key, results, 0)
	return results, nil
}

func (s *QuizService) load(ctx context.Context, quizID uint) (*models.Quiz, []models.QuizQuestion, error) {
	var quiz models.Quiz
	if err := s.db.WithContext(ctx).
		Where("id = ? AND is_deleted = ?", quizID, false).First(&quiz).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}

	var questions []models.QuizQuestion
	if len(quiz.Questions) > 0 {
		if err := json.Unmarshal(quiz.Questions, &questions); err != nil {
			return nil, nil, err
		}
	}
	return &quiz, questions, nil
}
