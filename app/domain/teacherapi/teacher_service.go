package teacherapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"menlo.ai/learning-client/app/infrastructure/apiclient"
	"menlo.ai/learning-client/app/infrastructure/cache"
)

const (
	// GenerateQuizTimeout bounds the AI quiz call, which is much slower than the
	// rest of the API.
	GenerateQuizTimeout = 2 * time.Minute

	minQuizQuestions = 1
	maxQuizQuestions = 10
)

type TeacherService struct {
	client *apiclient.Client
}

func NewService(client *apiclient.Client) *TeacherService {
	return &TeacherService{client: client}
}

// GetDashboard returns the class dashboard. Its shape is owned by the backend and
// passed through as decoded JSON.
func (s *TeacherService) GetDashboard(ctx context.Context, forceRefresh bool) (map[string]any, error) {
	return apiclient.Get[map[string]any](ctx, s.client, "/dashboard", cache.TeacherDashboardKey, forceRefresh)
}

func (s *TeacherService) GetClasses(ctx context.Context, forceRefresh bool) ([]Class, error) {
	return apiclient.Get[[]Class](ctx, s.client, "/classes", cache.TeacherClassesKey, forceRefresh)
}

func (s *TeacherService) GetStudents(ctx context.Context, forceRefresh bool) ([]Student, error) {
	return apiclient.Get[[]Student](ctx, s.client, "/students", cache.TeacherStudentsKey, forceRefresh)
}

func (s *TeacherService) GetClassAssignments(ctx context.Context, classID int, forceRefresh bool) ([]ClassAssignment, error) {
	return apiclient.Get[[]ClassAssignment](ctx, s.client, fmt.Sprintf("/classes/%d/assignments", classID),
		fmt.Sprintf(cache.ClassAssignmentsKeyPattern, classID), forceRefresh)
}

func (s *TeacherService) CreateClassAssignment(ctx context.Context, classID int, req AssignToClass) (map[string]any, error) {
	return apiclient.Send[map[string]any](ctx, s.client, apiclient.Request{
		Method:     http.MethodPost,
		Path:       fmt.Sprintf("/assignments/class/%d", classID),
		Body:       apiclient.JSONBody{Value: req},
		Invalidate: []string{cache.ClassAssignmentsKeyPrefix, cache.TeacherDashboardKey},
	})
}

func (s *TeacherService) GetAssignmentSubmissions(ctx context.Context, assignmentID int, forceRefresh bool) ([]Submission, error) {
	return apiclient.Get[[]Submission](ctx, s.client, fmt.Sprintf("/assignments/%d/submissions", assignmentID),
		fmt.Sprintf(cache.AssignmentSubmissionsPattern, assignmentID), forceRefresh)
}

func (s *TeacherService) GradeProjectSubmission(ctx context.Context, submissionID int, grade Grade) (map[string]any, error) {
	return apiclient.Send[map[string]any](ctx, s.client, apiclient.Request{
		Method:     http.MethodPut,
		Path:       fmt.Sprintf("/projects/submissions/%d/grade", submissionID),
		Body:       apiclient.JSONBody{Value: grade},
		Invalidate: []string{cache.SubmissionsKeyPrefix, cache.TeacherDashboardKey},
	})
}

func (s *TeacherService) Intervene(ctx context.Context, intervention Intervention) (*InterventionResult, error) {
	return apiclient.Send[*InterventionResult](ctx, s.client, apiclient.Request{
		Method:     http.MethodPost,
		Path:       "/intervene",
		Body:       apiclient.JSONBody{Value: intervention},
		Invalidate: []string{cache.InterventionsKey, cache.TeacherDashboardKey},
	})
}

func (s *TeacherService) GetInterventions(ctx context.Context, forceRefresh bool) ([]Intervention, error) {
	return apiclient.Get[[]Intervention](ctx, s.client, "/interventions", cache.InterventionsKey, forceRefresh)
}

// GenerateQuiz asks the backend to draft a quiz on topic. questionCount is clamped
// to 1..10 as the backend does.
func (s *TeacherService) GenerateQuiz(ctx context.Context, topic string, difficulty, questionCount int) (*GeneratedQuiz, error) {
	questionCount = max(minQuizQuestions, min(maxQuizQuestions, questionCount))
	query := url.Values{
		"topic":          {topic},
		"difficulty":     {strconv.Itoa(difficulty)},
		"question_count": {strconv.Itoa(questionCount)},
	}
	return apiclient.Send[*GeneratedQuiz](ctx, s.client, apiclient.Request{
		Method:  http.MethodPost,
		Path:    "/ai/generate-quiz?" + query.Encode(),
		Timeout: GenerateQuizTimeout,
	})
}
