package studentapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"menlo.ai/learning-client/app/infrastructure/apiclient"
	"menlo.ai/learning-client/app/infrastructure/cache"
)

// StudentService wraps the student endpoints. Reads are cached under the logical keys
// in the cache package; submissions drop the assignment entries they make stale.
type StudentService struct {
	client *apiclient.Client
}

func NewService(client *apiclient.Client) *StudentService {
	return &StudentService{client: client}
}

// GetAssignments lists the assignments of the logged in student. studentID only
// scopes the cache entry; the backend identifies the student by token.
func (s *StudentService) GetAssignments(ctx context.Context, studentID int, forceRefresh bool) ([]Assignment, error) {
	return apiclient.Get[[]Assignment](ctx, s.client, "/assignments",
		fmt.Sprintf(cache.AssignmentsKeyPattern, studentID), forceRefresh)
}

func (s *StudentService) GetAssignment(ctx context.Context, assignmentID int, forceRefresh bool) (*Assignment, error) {
	return apiclient.Get[*Assignment](ctx, s.client, fmt.Sprintf("/assignments/%d", assignmentID),
		fmt.Sprintf(cache.AssignmentKeyPattern, assignmentID), forceRefresh)
}

// GetAssignmentStatus always asks the backend.
func (s *StudentService) GetAssignmentStatus(ctx context.Context, assignmentID int) (*Assignment, error) {
	return apiclient.Get[*Assignment](ctx, s.client, fmt.Sprintf("/assignments/%d/status", assignmentID), "", false)
}

func (s *StudentService) SubmitAssignment(ctx context.Context, assignmentID int, submission Submission) (*SubmissionResult, error) {
	return apiclient.Send[*SubmissionResult](ctx, s.client, apiclient.Request{
		Method:     http.MethodPost,
		Path:       fmt.Sprintf("/assignments/%d/submit", assignmentID),
		Body:       apiclient.JSONBody{Value: submission},
		Invalidate: []string{cache.AssignmentsKeyPrefix, cache.LeaderboardKey, cache.BadgesKey},
	})
}

func (s *StudentService) GetAdaptiveAssignments(ctx context.Context, forceRefresh bool) ([]AdaptiveAssignment, error) {
	return apiclient.Get[[]AdaptiveAssignment](ctx, s.client, "/assignments/adaptive",
		cache.AdaptiveAssignmentsKey, forceRefresh)
}

// GetAssignmentQuiz returns the generated quiz for an assignment as the backend sent
// it. Quizzes are generated per request and never cached.
func (s *StudentService) GetAssignmentQuiz(ctx context.Context, assignmentID int) (json.RawMessage, error) {
	return apiclient.Get[json.RawMessage](ctx, s.client, fmt.Sprintf("/assignments/%d/quiz", assignmentID), "", false)
}

func (s *StudentService) SubmitAssignmentQuiz(ctx context.Context, assignmentID int, answers QuizAnswers) (map[string]any, error) {
	return apiclient.Send[map[string]any](ctx, s.client, apiclient.Request{
		Method:     http.MethodPost,
		Path:       fmt.Sprintf("/assignments/%d/quiz/submit", assignmentID),
		Body:       apiclient.JSONBody{Value: answers},
		Invalidate: []string{cache.AssignmentsKeyPrefix, cache.MasteryKey, cache.LeaderboardKey},
	})
}

func (s *StudentService) GetMastery(ctx context.Context, forceRefresh bool) ([]Mastery, error) {
	return apiclient.Get[[]Mastery](ctx, s.client, "/mastery", cache.MasteryKey, forceRefresh)
}

func (s *StudentService) GetLearningProfile(ctx context.Context, forceRefresh bool) (*LearningProfile, error) {
	return apiclient.Get[*LearningProfile](ctx, s.client, "/learning-profile", cache.LearningProfileKey, forceRefresh)
}

func (s *StudentService) GetLeaderboard(ctx context.Context, forceRefresh bool) ([]LeaderboardEntry, error) {
	return apiclient.Get[[]LeaderboardEntry](ctx, s.client, "/leaderboard", cache.LeaderboardKey, forceRefresh)
}

func (s *StudentService) GetBadges(ctx context.Context, forceRefresh bool) ([]Badge, error) {
	return apiclient.Get[[]Badge](ctx, s.client, "/badges", cache.BadgesKey, forceRefresh)
}

func (s *StudentService) GetProjects(ctx context.Context, forceRefresh bool) ([]Project, error) {
	return apiclient.Get[[]Project](ctx, s.client, "/projects", cache.ProjectsKey, forceRefresh)
}

func (s *StudentService) LogEngagement(ctx context.Context, engagement Engagement) error {
	_, err := s.client.Do(ctx, apiclient.Request{
		Method:     http.MethodPost,
		Path:       "/engagement",
		Body:       apiclient.JSONBody{Value: engagement},
		Invalidate: []string{cache.LeaderboardKey},
	})
	return err
}
