package teacherapi

import "menlo.ai/learning-client/app/domain/common"

type Class struct {
	ID          int              `json:"id"`
	Name        string           `json:"name"`
	Description *string          `json:"description"`
	TeacherID   int              `json:"teacher_id"`
	CreatedAt   common.Timestamp `json:"created_at"`
}

type Student struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type ClassAssignment struct {
	ID              int               `json:"id"`
	ClassID         int               `json:"class_id"`
	ConceptID       int               `json:"concept_id"`
	DifficultyLevel int               `json:"difficulty_level"`
	ContentURL      *string           `json:"content_url"`
	Title           string            `json:"title"`
	Description     string            `json:"description"`
	DueDate         *common.Timestamp `json:"due_date"`
	AssignedAt      common.Timestamp  `json:"assigned_at"`
}

// AssignToClass links an existing assignment to a class.
type AssignToClass struct {
	AssignmentID int               `json:"assignment_id"`
	DueDate      *common.Timestamp `json:"due_date,omitempty"`
}

type Submission struct {
	ID              int              `json:"id"`
	AssignmentID    int              `json:"assignment_id"`
	StudentID       int              `json:"student_id"`
	SubmissionURL   string           `json:"submission_url"`
	SubmissionNotes *string          `json:"submission_notes"`
	SubmittedAt     common.Timestamp `json:"submitted_at"`
	Status          string           `json:"status"`
}

type Grade struct {
	Score    float64 `json:"score"`
	Feedback string  `json:"feedback,omitempty"`
}

type Intervention struct {
	ID          int               `json:"id,omitempty"`
	TeacherID   int               `json:"teacher_id"`
	StudentID   int               `json:"student_id"`
	ConceptID   *int              `json:"concept_id"`
	Message     string            `json:"message"`
	ActionTaken string            `json:"action_taken"`
	Timestamp   *common.Timestamp `json:"timestamp,omitempty"`
}

type InterventionResult struct {
	Message      string       `json:"message"`
	Intervention Intervention `json:"intervention"`
}

type QuizQuestion struct {
	ID            int      `json:"id"`
	Type          string   `json:"type"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
}

type GeneratedQuiz struct {
	Topic      string         `json:"topic"`
	Difficulty int            `json:"difficulty"`
	Questions  []QuizQuestion `json:"questions"`
}
