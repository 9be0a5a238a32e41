package quizapi

import (
	"encoding/json"

	"menlo.ai/learning-client/app/domain/common"
)

type NewQuestion struct {
	QuestionText        string            `json:"question_text"`
	Options             map[string]string `json:"options"`
	CorrectAnswer       string            `json:"correct_answer"`
	IRTDifficulty       float64           `json:"irt_difficulty"`
	DiscriminationIndex float64           `json:"discrimination_index"`
}

type NewQuiz struct {
	Title       string        `json:"title"`
	Description string        `json:"description,omitempty"`
	Questions   []NewQuestion `json:"questions"`
}

type Question struct {
	NewQuestion
	ID     int `json:"id"`
	QuizID int `json:"quiz_id"`
}

type Quiz struct {
	ID          int              `json:"id"`
	Title       string           `json:"title"`
	Description *string          `json:"description"`
	TeacherID   int              `json:"teacher_id"`
	CreatedAt   common.Timestamp `json:"created_at"`
	Questions   []Question       `json:"questions"`
}

// StudentQuestion is a question without its answer, as served to students.
type StudentQuestion struct {
	ID           int               `json:"id"`
	QuizID       int               `json:"quiz_id"`
	QuestionText string            `json:"question_text"`
	Options      map[string]string `json:"options"`
}

type StudentQuizView struct {
	ID          int               `json:"id"`
	Title       string            `json:"title"`
	Description *string           `json:"description"`
	TeacherID   int               `json:"teacher_id"`
	CreatedAt   common.Timestamp  `json:"created_at"`
	Questions   []StudentQuestion `json:"questions"`
}

type ClassQuiz struct {
	ClassID int               `json:"class_id"`
	QuizID  int               `json:"quiz_id"`
	DueDate *common.Timestamp `json:"due_date,omitempty"`
}

type StudentQuiz struct {
	ID          int               `json:"id"`
	StudentID   int               `json:"student_id"`
	QuizID      int               `json:"quiz_id"`
	ClassID     int               `json:"class_id"`
	Status      string            `json:"status"`
	Score       *float64          `json:"score"`
	SubmittedAt *common.Timestamp `json:"submitted_at"`
}

type Submission struct {
	StudentQuiz
	StudentName string `json:"student_name"`
}

// Answers maps question ids to the chosen option.
type Answers map[int]string

type Statistics struct {
	QuizID                  int                          `json:"quiz_id"`
	TotalSubmissions        int                          `json:"total_submissions"`
	AverageScore            float64                      `json:"average_score"`
	PassingRate             float64                      `json:"passing_rate"`
	ScoreDistribution       map[string]int               `json:"score_distribution"`
	QuestionStatistics      map[string]map[string]any    `json:"question_statistics"`
	AverageTimeSpentMinutes float64                      `json:"average_time_spent_minutes"`
	QuestionTypeStatistics  map[string]map[string]any    `json:"question_type_statistics"`
	DifficultyAnalysis      map[string][]json.RawMessage `json:"difficulty_analysis"`
}
