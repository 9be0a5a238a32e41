package studentapi

import (
	"encoding/json"

	"menlo.ai/learning-client/app/domain/common"
)

type AssignmentStatus string

const (
	StatusAssigned  AssignmentStatus = "assigned"
	StatusSubmitted AssignmentStatus = "submitted"
	StatusCompleted AssignmentStatus = "completed"
	StatusGraded    AssignmentStatus = "graded"
)

type EngagementType string

const (
	EngagementProjectWork EngagementType = "project_work"
	EngagementAssignment  EngagementType = "assignment"
	EngagementDiscussion  EngagementType = "discussion"
)

// Assignment is an assignment as seen by the student it is assigned to.
type Assignment struct {
	ID              int               `json:"id"`
	ConceptID       int               `json:"concept_id"`
	DifficultyLevel int               `json:"difficulty_level"`
	ContentURL      *string           `json:"content_url"`
	Title           string            `json:"title"`
	Description     string            `json:"description"`
	Status          AssignmentStatus  `json:"status"`
	Score           *float64          `json:"score"`
	SubmittedAt     *common.Timestamp `json:"submitted_at"`
	DueDate         *common.Timestamp `json:"due_date"`
}

type AdaptiveAssignment struct {
	AssignmentID    int    `json:"assignment_id"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	DifficultyLevel int    `json:"difficulty_level"`
	EstimatedTime   int    `json:"estimated_time"`
}

type Submission struct {
	SubmissionURL   string `json:"submission_url"`
	SubmissionNotes string `json:"submission_notes,omitempty"`
}

type SubmissionResult struct {
	Message      string `json:"message"`
	AssignmentID int    `json:"assignment_id"`
}

// QuizAnswers is posted back with the generated questions it answers.
type QuizAnswers struct {
	Questions []json.RawMessage `json:"questions"`
	Answers   []string          `json:"answers"`
}

type Mastery struct {
	ConceptID    int     `json:"concept_id"`
	ConceptName  string  `json:"concept_name"`
	MasteryScore float64 `json:"mastery_score"`
	Level        int     `json:"level"`
}

type LearningProfile struct {
	StudentID                 int              `json:"student_id"`
	LearningPace              string           `json:"learning_pace"`
	PreferredDifficulty       string           `json:"preferred_difficulty"`
	AvgScore                  float64          `json:"avg_score"`
	CompletionRate            float64          `json:"completion_rate"`
	TotalEngagementMinutes    float64          `json:"total_engagement_minutes"`
	AvgDailyEngagementMinutes float64          `json:"avg_daily_engagement_minutes"`
	Strengths                 []map[string]any `json:"strengths"`
	Weaknesses                []map[string]any `json:"weaknesses"`
	TotalAssignments          int              `json:"total_assignments"`
	CompletedAssignments      int              `json:"completed_assignments"`
}

type LeaderboardEntry struct {
	StudentID   int    `json:"student_id"`
	StudentName string `json:"student_name"`
	TotalXP     int    `json:"total_xp"`
	Rank        int    `json:"rank"`
}

type Badge struct {
	BadgeName   string           `json:"badge_name"`
	DateAwarded common.Timestamp `json:"date_awarded"`
}

type Project struct {
	ID               int               `json:"id"`
	TeacherID        int               `json:"teacher_id"`
	Title            string            `json:"title"`
	Description      string            `json:"description"`
	StartDate        *common.Timestamp `json:"start_date"`
	EndDate          *common.Timestamp `json:"end_date"`
	EvaluationRubric []map[string]any  `json:"evaluation_rubric"`
}

type Engagement struct {
	StudentID      int            `json:"student_id"`
	ProjectID      *int           `json:"project_id"`
	EngagementType EngagementType `json:"engagement_type"`
	Value          float64        `json:"value"`
	MetadataJSON   *string        `json:"metadata_json"`
}
